// Package membership evaluates whether a resolved player is a member on a date.
//
// A player is an ACTIVE_MEMBER when one of its intervals covers the date
// (both bounds inclusive, compared as calendar dates) and a PREVIOUS_MEMBER
// otherwise, including when it never had an interval. An unresolved player
// is PLAYER_NOT_KNOWN.
package membership
