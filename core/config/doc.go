// Package config provides configuration management for the membership server.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file. Defaults come from the `default` struct tags of each
// partial configuration.
//
// # Configuration Structure
//
//   - Server: HTTP port and API key
//   - Database: MySQL/MariaDB (or sqlite) connection details
//   - Storage: S3/MinIO credentials and the bucket holding the sheet export
//   - Cache: redis URL, reload latency, tournament cache TTL
//   - Sheet: object name and layout of the membership sheet export
//   - PDGA: tournament registry endpoints and credentials
//   - Log: logging level and format
//
// Environment variables map to nested keys, e.g. DATABASE_HOST -> database.host
// and PDGA_SESSION_TTL_MINUTES -> pdga.session_ttl_minutes.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
