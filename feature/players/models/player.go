package models

import (
	"strings"
	"time"

	"bcds-membership/core/reconcile"
	"bcds-membership/core/utils"
)

// Player represents the 'players' table.
type Player struct {
	ID             uint       `gorm:"column:id;primaryKey"`
	RegistryNumber *string    `gorm:"column:registry_number;size:16;uniqueIndex"` // NULL when unknown
	FullName       string     `gorm:"column:full_name;size:255;not null;index"`
	Aliases        string     `gorm:"column:aliases;type:text"` // entries joined by utils.AliasSeparator
	BirthDate      *time.Time `gorm:"column:birth_date;type:date"`
	Email          string     `gorm:"column:email;size:255"`
	Address        string     `gorm:"column:address;size:255"`
	City           string     `gorm:"column:city;size:128"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at"`
}

// TableName overrides the table name.
func (Player) TableName() string {
	return "players"
}

// ToNormalized converts the row to the engine's player.
func (p Player) ToNormalized() *reconcile.Player {
	out := &reconcile.Player{
		ID:       p.ID,
		FullName: p.FullName,
		Aliases:  SplitAliases(p.Aliases),
		Email:    p.Email,
		Address:  p.Address,
		City:     p.City,
	}
	if p.RegistryNumber != nil {
		out.RegistryNumber = *p.RegistryNumber
	}
	if p.BirthDate != nil {
		out.BirthDate = utils.DateOf(*p.BirthDate)
	}
	return out
}

// FromNormalized converts the engine's player to a row. Timestamps are left
// for gorm to fill.
func FromNormalized(p *reconcile.Player) Player {
	row := Player{
		ID:       p.ID,
		FullName: p.FullName,
		Aliases:  JoinAliases(p.Aliases),
		Email:    p.Email,
		Address:  p.Address,
		City:     p.City,
	}
	if p.RegistryNumber != "" {
		number := p.RegistryNumber
		row.RegistryNumber = &number
	}
	if p.HasBirthDate() {
		d := utils.DateOf(p.BirthDate)
		row.BirthDate = &d
	}
	return row
}

// SplitAliases parses the stored alias list.
func SplitAliases(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, a := range strings.Split(s, utils.AliasSeparator) {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}

// JoinAliases renders an alias list for storage.
func JoinAliases(aliases []string) string {
	return strings.Join(aliases, utils.AliasSeparator)
}

// All lists the models of this package for migrations.
func All() []any {
	return []any{&Player{}}
}
