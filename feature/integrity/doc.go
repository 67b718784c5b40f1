// Package integrity provides system health checks for the membership server.
//
// # Checks Provided
//
//   - Schema: Validates that the connected database matches the player and membership models (columns, types).
//   - Storage: Checks that the bucket exists and holds the membership sheet export.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/schema : Runs the schema check.
//   - GET /integrity/storage : Runs the storage check.
package integrity
