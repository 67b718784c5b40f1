// Package players is the player registry: the gorm store behind the
// reconciliation engine and read-only HTTP lookups.
//
// # HTTP Endpoints
//
//   - GET /players/search?q= : Players whose name or an alias contains q.
//   - GET /players/registry/:number : Player carrying a registry number.
//   - GET /players/:id : Player by id.
//
// Registry numbers are unique when present. The store maps the database's
// duplicate-key error to reconcile.ErrDuplicateRegistryNumber so concurrent
// writers surface as identity conflicts.
package players
