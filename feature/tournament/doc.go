// Package tournament reports the membership state of the players of a
// tournament, as of the day it starts.
//
// # HTTP Endpoints
//
//   - GET /tournaments/:id : The tournament as the registry knows it.
//   - GET /tournaments/:id/report : One row per roster entry with its state.
//
// Roster entries go through the reconciliation engine, so a report can attach
// registry numbers, track aliases and create players it has not seen before.
// Names that fit several players are reported with the note "ambiguous name".
package tournament
