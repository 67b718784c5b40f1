// Package middleware groups the Fiber middleware of the membership server.
//
//   - auth: requires the X-API-Key header (or api_key query parameter) when
//     server.api_key is set.
//   - rayid: tags each request with an X-Ray-ID, reusing the caller's when
//     present, and stores it for logger.WithRayID.
//
// rayid must be registered before anything that logs.
package middleware
