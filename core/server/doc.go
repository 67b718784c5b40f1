// Package server holds the HTTP server configuration.
//
// The main application entry point (cmd start) handles the server startup;
// this package only defines the listen port and the API key protecting the
// membership endpoints.
package server
