// Package models defines the gorm models of memberships and payments.
package models
