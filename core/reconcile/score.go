package reconcile

import (
	"math"

	"bcds-membership/core/utils"
)

// Disqualified is the score of a candidate contradicted by a hard signal.
const Disqualified = math.MinInt32

const (
	scoreName           = 1
	scoreBirthDate      = 1000
	scoreRegistryNumber = 100
	scoreEmail          = 20
	scoreAddress        = 10
)

// Score rates how well a stored player, already known to share the record's
// name, matches the record. A birth date or registry number mismatch returns
// Disqualified; contact fields only ever add points.
func Score(stored *Player, rec ImportRecord) int {
	score := scoreName

	if stored.HasBirthDate() && !rec.BirthDate.IsZero() {
		if !utils.SameDay(stored.BirthDate, rec.BirthDate) {
			return Disqualified
		}
		score += scoreBirthDate
	}

	if stored.RegistryNumber != "" && rec.RegistryNumber != "" && stored.RegistryNumber != rec.RegistryNumber {
		return Disqualified
	}
	score += scoreRegistryNumber

	if stored.Email != "" && rec.Email != "" && utils.NormalizeText(stored.Email) == utils.NormalizeText(rec.Email) {
		score += scoreEmail
	}
	if stored.Address != "" && rec.Address != "" && utils.NormalizeText(stored.Address) == utils.NormalizeText(rec.Address) {
		score += scoreAddress
	}

	return score
}

// bestCandidate returns the first candidate with the strictly highest
// positive score, or nil.
func bestCandidate(candidates []*Player, rec ImportRecord) (*Player, int) {
	var best *Player
	bestScore := 0
	for _, c := range candidates {
		if s := Score(c, rec); s > bestScore {
			best, bestScore = c, s
		}
	}
	return best, bestScore
}
