package membership

import (
	"encoding/json"
	"fmt"
)

// State is the membership status of a player on a given date.
type State int

const (
	// PlayerNotKnown means the player could not be resolved.
	PlayerNotKnown State = iota
	// ActiveMember means a membership interval covers the date.
	ActiveMember
	// PreviousMember means the player is known but no interval covers the
	// date. Players who never paid are reported the same way.
	PreviousMember
)

var stateNames = map[State]string{
	PlayerNotKnown: "PLAYER_NOT_KNOWN",
	ActiveMember:   "ACTIVE_MEMBER",
	PreviousMember: "PREVIOUS_MEMBER",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// ParseState is the inverse of State.String.
func ParseState(s string) (State, error) {
	for state, name := range stateNames {
		if name == s {
			return state, nil
		}
	}
	return PlayerNotKnown, fmt.Errorf("unknown membership state %q", s)
}

func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *State) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseState(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
