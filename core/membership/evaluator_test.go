package membership

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"bcds-membership/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockIntervalStore struct {
	mock.Mock
}

func (m *mockIntervalStore) IntervalCovering(ctx context.Context, playerID uint, date time.Time) (*Interval, error) {
	args := m.Called(ctx, playerID, date)
	if i := args.Get(0); i != nil {
		return i.(*Interval), args.Error(1)
	}
	return nil, args.Error(1)
}

// sliceStore answers from a fixed set of intervals per player.
type sliceStore map[uint][]Interval

func (s sliceStore) IntervalCovering(_ context.Context, playerID uint, date time.Time) (*Interval, error) {
	for _, i := range s[playerID] {
		if i.Covers(date) {
			return &i, nil
		}
	}
	return nil, nil
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestState_UnknownPlayer(t *testing.T) {
	ev := NewEvaluator(sliceStore{})
	state, err := ev.State(context.Background(), nil, day("2024-06-01"))
	require.NoError(t, err)
	assert.Equal(t, PlayerNotKnown, state)
}

func TestState_NoIntervals(t *testing.T) {
	ev := NewEvaluator(sliceStore{})
	state, err := ev.State(context.Background(), &reconcile.Player{ID: 7}, day("2024-06-01"))
	require.NoError(t, err)
	assert.Equal(t, PreviousMember, state)
}

func TestState_IntervalBoundsInclusive(t *testing.T) {
	store := sliceStore{1: {{ValidFrom: day("2024-03-10"), ValidUntil: day("2024-12-31")}}}
	ev := NewEvaluator(store)
	p := &reconcile.Player{ID: 1}

	tests := []struct {
		date string
		want State
	}{
		{"2024-03-09", PreviousMember},
		{"2024-03-10", ActiveMember},
		{"2024-07-01", ActiveMember},
		{"2024-12-31", ActiveMember},
		{"2025-01-01", PreviousMember},
	}
	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			state, err := ev.State(context.Background(), p, day(tt.date))
			require.NoError(t, err)
			assert.Equal(t, tt.want, state)
		})
	}

	// Time of day never matters.
	late := time.Date(2024, 12, 31, 23, 59, 0, 0, time.UTC)
	state, err := ev.State(context.Background(), p, late)
	require.NoError(t, err)
	assert.Equal(t, ActiveMember, state)
}

func TestState_DefaultsToToday(t *testing.T) {
	store := new(mockIntervalStore)
	today := time.Date(2024, 6, 1, 14, 0, 0, 0, time.UTC)
	store.On("IntervalCovering", mock.Anything, uint(3), day("2024-06-01")).
		Return(&Interval{ValidFrom: day("2024-01-01"), ValidUntil: day("2024-12-31")}, nil)

	ev := NewEvaluator(store)
	ev.Now = func() time.Time { return today }

	state, err := ev.State(context.Background(), &reconcile.Player{ID: 3}, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, ActiveMember, state)
	store.AssertExpectations(t)
}

func TestState_StoreError(t *testing.T) {
	store := new(mockIntervalStore)
	boom := errors.New("db down")
	store.On("IntervalCovering", mock.Anything, uint(3), mock.Anything).Return(nil, boom)

	_, err := NewEvaluator(store).State(context.Background(), &reconcile.Player{ID: 3}, day("2024-01-01"))
	assert.ErrorIs(t, err, boom)
}

func TestCoverage(t *testing.T) {
	tests := []struct {
		tx, from, until string
	}{
		{"2023-09-15", "2023-09-15", "2023-12-31"},
		{"2023-10-01", "2023-10-01", "2024-12-31"},
		{"2023-12-31", "2023-12-31", "2024-12-31"},
		{"2024-01-01", "2024-01-01", "2024-12-31"},
	}
	for _, tt := range tests {
		t.Run(tt.tx, func(t *testing.T) {
			got := Coverage(day(tt.tx))
			assert.Equal(t, day(tt.from), got.ValidFrom)
			assert.Equal(t, day(tt.until), got.ValidUntil)
		})
	}
}

func TestState_JSON(t *testing.T) {
	data, err := json.Marshal(map[string]State{"state": ActiveMember})
	require.NoError(t, err)
	assert.JSONEq(t, `{"state":"ACTIVE_MEMBER"}`, string(data))

	var s State
	require.NoError(t, json.Unmarshal([]byte(`"PREVIOUS_MEMBER"`), &s))
	assert.Equal(t, PreviousMember, s)
	assert.Error(t, json.Unmarshal([]byte(`"GOLD"`), &s))
	assert.Equal(t, "State(9)", State(9).String())
}
