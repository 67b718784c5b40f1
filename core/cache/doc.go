// Package cache wraps Redis for the two pieces of shared state the server
// keeps outside the database:
//
//   - the sheet reload gate: an Acquire'd key with a TTL equal to the reload
//     latency, so repeated import requests within that window are refused
//     across every server instance;
//   - tournament data fetched from the registry, cached as JSON.
//
// When no Redis URL is configured, Noop stands in and the gate always opens.
package cache
