package reconcile

import "time"

// Player is a resolved identity as the engine sees it.
type Player struct {
	// ID is assigned by the store on creation and never changes.
	ID uint `json:"id"`

	// FullName is the canonical, normalized name.
	FullName string `json:"full_name"`

	// Aliases holds other names observed for this player, in discovery order.
	// It never contains FullName.
	Aliases []string `json:"aliases"`

	// RegistryNumber is the federation number, empty when unknown.
	RegistryNumber string `json:"registry_number,omitempty"`

	// BirthDate is a calendar date; the zero value means unknown.
	BirthDate time.Time `json:"birth_date"`

	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
}

// Clone returns a deep copy of p, so mutations never leak into the caller's value.
func (p *Player) Clone() *Player {
	if p == nil {
		return nil
	}
	c := *p
	if p.Aliases != nil {
		c.Aliases = append([]string(nil), p.Aliases...)
	}
	return &c
}

// HasBirthDate reports whether the birth date is known.
func (p *Player) HasBirthDate() bool {
	return !p.BirthDate.IsZero()
}

// ImportRecord is one membership payment claim from the sheet.
type ImportRecord struct {
	FullName       string
	RegistryNumber string
	BirthDate      time.Time
	Email          string
	Address        string
	City           string

	// ConfirmationCode identifies the payment; it is the import idempotency key.
	ConfirmationCode string

	ValidFrom  time.Time
	ValidUntil time.Time
}

// ExternalPlayerRef is a player as listed on a tournament roster.
type ExternalPlayerRef struct {
	Name           string `json:"name"`
	RegistryNumber string `json:"registry_number,omitempty"`
}

// Outcome describes how a resolution ended.
type Outcome string

const (
	// OutcomeMatched means an existing player was found (and possibly updated).
	OutcomeMatched Outcome = "matched"
	// OutcomeCreated means a new player was stored.
	OutcomeCreated Outcome = "created"
	// OutcomeUnknown means no player could be found and none was created.
	OutcomeUnknown Outcome = "unknown"
	// OutcomeAmbiguous means several players fit and none was chosen.
	OutcomeAmbiguous Outcome = "ambiguous"
)

// Resolution is the result of resolving a record or a roster ref.
// Player is nil for OutcomeUnknown and OutcomeAmbiguous.
type Resolution struct {
	Player  *Player
	Outcome Outcome
}

// Resolved reports whether a player was found or created.
func (r Resolution) Resolved() bool {
	return r.Player != nil
}
