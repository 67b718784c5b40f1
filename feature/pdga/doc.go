// Package pdga is a client for the PDGA tournament registry.
//
// Event and player data come from the JSON API, which needs a session. The
// Session logs in lazily, reuses the credential until it expires and lets
// concurrent callers share one login. A 401 or 403 drops the credential and
// the request is retried once.
//
// The registry offers no roster endpoint, so TournamentPlayers scrapes the
// public event page with goquery. Events and rosters are cached.
package pdga
