// Package utils provides small helpers shared by the membership packages:
// name and contact-field normalization, registry number validation, and
// calendar-date handling. Dates are normalized to midnight UTC before they
// reach the reconciliation engine or the membership evaluator.
package utils
