package utils

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MaxRegistryNumber is the exclusive upper bound accepted for registry numbers.
const MaxRegistryNumber = 999999

// AliasSeparator separates alias entries in stored alias lists. It never
// survives NormalizeName.
const AliasSeparator = "|"

// NormalizeName trims a person name, collapses inner whitespace and lower-cases it.
// All name comparisons in the system happen on normalized names.
func NormalizeName(name string) string {
	collapsed := strings.Join(strings.FieldsFunc(name, isNameBreak), " ")
	if collapsed == "" {
		return ""
	}
	// cases.Caser keeps state, so a fresh one per call.
	return cases.Lower(language.Und).String(collapsed)
}

func isNameBreak(r rune) bool {
	return unicode.IsSpace(r) || string(r) == AliasSeparator
}

// NormalizeText trims and lower-cases contact fields (email, address, city).
func NormalizeText(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return cases.Lower(language.Und).String(s)
}

// EqualNames reports whether two names are the same once normalized.
func EqualNames(a, b string) bool {
	return NormalizeName(a) == NormalizeName(b)
}

// ParseRegistryNumber validates a federation registry number.
// It accepts digits only in the range (0, MaxRegistryNumber) and returns the
// canonical form without leading zeros.
func ParseRegistryNumber(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 || n >= MaxRegistryNumber {
		return "", false
	}
	return strconv.Itoa(n), true
}
