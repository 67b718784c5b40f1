package models

import (
	"time"

	"bcds-membership/core/membership"
	"bcds-membership/core/utils"
)

// Membership represents the 'memberships' table: one validity interval bought
// by one payment.
type Membership struct {
	ID          uint      `gorm:"column:id;primaryKey"`
	PlayerID    uint      `gorm:"column:player_id;not null;index:idx_memberships_player_dates,priority:1"`
	ValidFrom   time.Time `gorm:"column:valid_from;type:date;not null;index:idx_memberships_player_dates,priority:2"`
	ValidUntil  time.Time `gorm:"column:valid_until;type:date;not null"`
	PaymentCode string    `gorm:"column:payment_code;size:64;index"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

// TableName overrides the table name.
func (Membership) TableName() string {
	return "memberships"
}

// Interval returns the membership's validity interval.
func (m Membership) Interval() membership.Interval {
	return membership.Interval{
		ValidFrom:  utils.DateOf(m.ValidFrom),
		ValidUntil: utils.DateOf(m.ValidUntil),
	}
}

// Payment represents the 'payments' table. The confirmation code comes from
// the payment processor and makes re-imports idempotent.
type Payment struct {
	ConfirmationCode string    `gorm:"column:confirmation_code;primaryKey;size:64"`
	PlayerID         uint      `gorm:"column:player_id;index"`
	Name             string    `gorm:"column:name;size:255"`
	Address          string    `gorm:"column:address;size:255"`
	Email            string    `gorm:"column:email;size:255"`
	Date             time.Time `gorm:"column:date;type:date"`
	Amount           string    `gorm:"column:amount;size:32"` // as written on the sheet
	Source           string    `gorm:"column:source;size:128"`
	Detail           string    `gorm:"column:detail;type:text"`
	CreatedAt        time.Time `gorm:"column:created_at"`
}

// TableName overrides the table name.
func (Payment) TableName() string {
	return "payments"
}

// All lists the models of this package for migrations.
func All() []any {
	return []any{&Membership{}, &Payment{}}
}
