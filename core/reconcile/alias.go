package reconcile

import "bcds-membership/core/utils"

// IsKnownAs reports whether name equals the player's full name or one of its
// aliases, as whole entries and ignoring case.
func IsKnownAs(p *Player, name string) bool {
	n := utils.NormalizeName(name)
	if p == nil || n == "" {
		return false
	}
	if utils.NormalizeName(p.FullName) == n {
		return true
	}
	for _, alias := range p.Aliases {
		if utils.NormalizeName(alias) == n {
			return true
		}
	}
	return false
}

// TrackAlias appends name to the player's aliases unless the player is
// already known by it. It reports whether an alias was added. Persisting the
// change is up to the caller.
func TrackAlias(p *Player, name string) bool {
	n := utils.NormalizeName(name)
	if p == nil || n == "" || IsKnownAs(p, n) {
		return false
	}
	p.Aliases = append(p.Aliases, n)
	return true
}
