// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM to configure MySQL/MariaDB connections
// based on the application's configuration. The sqlite driver is supported
// for local runs and tests.
//
// # Connect
//
// Connect opens the connection, applies pool settings, enables driver error
// translation (so unique-key violations surface as gorm.ErrDuplicatedKey) and
// verifies the connection with a ping.
//
// # Schema Inspection
//
// GetTableColumns lists the columns of a table. The integrity feature uses it
// to compare the live schema of the players, memberships and payments tables
// against the gorm models.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "players")
package database
