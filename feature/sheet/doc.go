// Package sheet imports the membership sheet: the spreadsheet of membership
// payments kept by the club, exported as CSV into the storage bucket.
//
// Each row is a payment. Parse validates rows into Entries; Importer.Run
// then, row by row and in sheet order:
//
//   - skips payments whose confirmation code was already recorded;
//   - resolves the player with reconcile.Engine.ResolveFromImport, skipping
//     the row on an identity conflict;
//   - records the payment and the membership interval it bought.
//
// Runs are gated by a reload latency kept in the cache, so a burst of
// requests triggers a single import.
//
// # HTTP Endpoints
//
//   - POST /sheet/import?force=true : Run an import.
//   - GET /sheet/import/last : Stats of the last import.
package sheet
