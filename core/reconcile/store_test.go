package reconcile

import (
	"context"
	"strings"
)

// memStore is an in-memory PlayerStore enforcing registry number uniqueness.
type memStore struct {
	players []*Player
	nextID  uint
	saves   int

	// failSave, when set, is returned by the next Save.
	failSave error
	// findErr, when set, is returned by every lookup.
	findErr error
}

func newMemStore(players ...*Player) *memStore {
	s := &memStore{nextID: 1}
	for _, p := range players {
		c := p.Clone()
		c.ID = s.nextID
		s.nextID++
		s.players = append(s.players, c)
	}
	return s
}

func (s *memStore) FindByRegistryNumber(_ context.Context, number string) (*Player, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	for _, p := range s.players {
		if p.RegistryNumber != "" && p.RegistryNumber == number {
			return p.Clone(), nil
		}
	}
	return nil, nil
}

func (s *memStore) FindByExactName(_ context.Context, name string) ([]*Player, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	var out []*Player
	for _, p := range s.players {
		if p.FullName == name {
			out = append(out, p.Clone())
		}
	}
	return out, nil
}

func (s *memStore) FindByNameOrAliasSubstring(_ context.Context, text string) ([]*Player, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	text = strings.ToLower(text)
	var out []*Player
	for _, p := range s.players {
		haystack := strings.ToLower(p.FullName + "|" + strings.Join(p.Aliases, "|"))
		if strings.Contains(haystack, text) {
			out = append(out, p.Clone())
		}
	}
	return out, nil
}

func (s *memStore) Save(_ context.Context, p *Player) (*Player, error) {
	if s.failSave != nil {
		err := s.failSave
		s.failSave = nil
		return nil, err
	}
	if p.RegistryNumber != "" {
		for _, other := range s.players {
			if other.ID != p.ID && other.RegistryNumber == p.RegistryNumber {
				return nil, ErrDuplicateRegistryNumber
			}
		}
	}
	s.saves++

	c := p.Clone()
	if c.ID == 0 {
		c.ID = s.nextID
		s.nextID++
		s.players = append(s.players, c)
		return c.Clone(), nil
	}
	for i, existing := range s.players {
		if existing.ID == c.ID {
			s.players[i] = c
			return c.Clone(), nil
		}
	}
	s.players = append(s.players, c)
	return c.Clone(), nil
}

func (s *memStore) byID(id uint) *Player {
	for _, p := range s.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}
