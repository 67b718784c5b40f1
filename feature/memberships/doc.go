// Package memberships stores membership intervals and payments and answers
// "is this player a member on that day" questions.
//
// Players are looked up read-only: by registry number first (the last name
// must appear in the name we know), then by exact full name. Several players
// with the same name is reported as reconcile.ErrAmbiguousMatch rather than
// guessed.
//
// # HTTP Endpoints
//
//   - GET /memberships/check?firstName=&lastName=&pdgaNumber=&date= : Membership state.
//   - GET /memberships?firstName=&lastName=&pdgaNumber= : Membership history.
package memberships
