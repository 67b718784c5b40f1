// Package models defines the gorm model of the player registry.
package models
