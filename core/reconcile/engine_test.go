package reconcile

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newTestEngine(store PlayerStore) *Engine {
	return NewEngine(store, zap.NewNop())
}

func TestResolveFromImport_Idempotent(t *testing.T) {
	store := newMemStore()
	engine := newTestEngine(store)
	ctx := context.Background()

	rec := ImportRecord{FullName: "Ted Moens", RegistryNumber: "89924", BirthDate: date("1985-03-04"), Email: "ted@x.com"}

	first, err := engine.ResolveFromImport(ctx, rec)
	require.NoError(t, err)
	assert.Equal(t, OutcomeCreated, first.Outcome)
	assert.Equal(t, "ted moens", first.Player.FullName)

	second, err := engine.ResolveFromImport(ctx, rec)
	require.NoError(t, err)
	assert.Equal(t, OutcomeMatched, second.Outcome)
	assert.Equal(t, first.Player.ID, second.Player.ID)
	assert.Empty(t, second.Player.Aliases)
	assert.Equal(t, 1, store.saves, "an unchanged match is not saved again")
	assert.Len(t, store.players, 1)
}

func TestResolveFromImport_RegistryNumberTracksAlias(t *testing.T) {
	store := newMemStore(&Player{FullName: "john smith", RegistryNumber: "12345"})
	engine := newTestEngine(store)
	ctx := context.Background()

	res, err := engine.ResolveFromImport(ctx, ImportRecord{FullName: "Johnny Smith", RegistryNumber: "12345", City: "Vancouver"})
	require.NoError(t, err)
	assert.Equal(t, OutcomeMatched, res.Outcome)
	assert.Equal(t, "john smith", res.Player.FullName)
	assert.Equal(t, []string{"johnny smith"}, res.Player.Aliases)
	assert.Equal(t, "Vancouver", res.Player.City)

	res, err = engine.ResolveFromImport(ctx, ImportRecord{FullName: "JOHNNY SMITH", RegistryNumber: "12345"})
	require.NoError(t, err)
	assert.Equal(t, []string{"johnny smith"}, res.Player.Aliases)

	res, err = engine.ResolveFromImport(ctx, ImportRecord{FullName: "John Smith", RegistryNumber: "12345"})
	require.NoError(t, err)
	assert.Equal(t, []string{"johnny smith"}, store.byID(res.Player.ID).Aliases)
}

func TestResolveFromImport_BirthDateConflict(t *testing.T) {
	store := newMemStore(&Player{FullName: "john smith", RegistryNumber: "12345", BirthDate: date("1980-01-01")})
	engine := newTestEngine(store)

	_, err := engine.ResolveFromImport(context.Background(), ImportRecord{
		FullName:       "Johnny Smith",
		RegistryNumber: "12345",
		BirthDate:      date("1980-01-02"),
		Email:          "new@x.com",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIdentityConflict)

	var conflict *ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, "birth_date", conflict.Field)
	assert.Equal(t, "1980-01-01", conflict.Stored)
	assert.Equal(t, "1980-01-02", conflict.Incoming)

	stored := store.byID(1)
	assert.Empty(t, stored.Aliases)
	assert.Empty(t, stored.Email)
	assert.Zero(t, store.saves)
}

func TestResolveFromImport_BackfillsWithoutOverwriting(t *testing.T) {
	store := newMemStore(&Player{FullName: "john smith", RegistryNumber: "12345", Email: "old@x.com"})
	engine := newTestEngine(store)

	res, err := engine.ResolveFromImport(context.Background(), ImportRecord{
		FullName:       "John Smith",
		RegistryNumber: "12345",
		BirthDate:      date("1980-01-01"),
		Email:          "new@x.com",
		Address:        "1 Main St",
	})
	require.NoError(t, err)
	assert.Equal(t, "old@x.com", res.Player.Email)
	assert.Equal(t, "1 Main St", res.Player.Address)
	assert.Equal(t, "1980-01-01", res.Player.BirthDate.Format("2006-01-02"))
}

func TestResolveFromImport_ScorerPrefersEmailMatch(t *testing.T) {
	store := newMemStore(
		&Player{FullName: "jane doe", Email: "a@x.com"},
		&Player{FullName: "jane doe", Email: "b@x.com"},
	)
	engine := newTestEngine(store)

	res, err := engine.ResolveFromImport(context.Background(), ImportRecord{FullName: "Jane Doe", Email: "a@x.com"})
	require.NoError(t, err)
	assert.Equal(t, uint(1), res.Player.ID)
	assert.Equal(t, "b@x.com", store.byID(2).Email)

	res, err = engine.ResolveFromImport(context.Background(), ImportRecord{FullName: "Jane Doe", Email: "b@x.com"})
	require.NoError(t, err)
	assert.Equal(t, uint(2), res.Player.ID)
}

func TestResolveFromImport_DisqualifiedCandidateIsNeverMerged(t *testing.T) {
	store := newMemStore(&Player{FullName: "jane doe", BirthDate: date("1980-01-01"), Email: "a@x.com"})
	engine := newTestEngine(store)

	res, err := engine.ResolveFromImport(context.Background(), ImportRecord{
		FullName:  "Jane Doe",
		BirthDate: date("1980-01-02"),
		Email:     "a@x.com",
	})
	require.NoError(t, err)
	assert.Equal(t, OutcomeCreated, res.Outcome)
	assert.NotEqual(t, uint(1), res.Player.ID)
	assert.Len(t, store.players, 2)
}

func TestResolveFromImport_NameMatchAttachesRegistryNumber(t *testing.T) {
	store := newMemStore(
		&Player{FullName: "jane doe", RegistryNumber: "999"},
		&Player{FullName: "jane doe"},
	)
	engine := newTestEngine(store)

	res, err := engine.ResolveFromImport(context.Background(), ImportRecord{FullName: "jane doe", RegistryNumber: "777", BirthDate: date("1990-02-02")})
	require.NoError(t, err)
	assert.Equal(t, OutcomeMatched, res.Outcome)
	assert.Equal(t, uint(2), res.Player.ID)
	assert.Equal(t, "777", store.byID(2).RegistryNumber)
	assert.Equal(t, "999", store.byID(1).RegistryNumber)
}

func TestResolveFromImport_DuplicateOnSaveIsConflict(t *testing.T) {
	store := newMemStore(&Player{FullName: "jane doe"})
	store.failSave = ErrDuplicateRegistryNumber
	engine := newTestEngine(store)

	_, err := engine.ResolveFromImport(context.Background(), ImportRecord{FullName: "jane doe", RegistryNumber: "777"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIdentityConflict)
	assert.ErrorIs(t, err, ErrDuplicateRegistryNumber)
	assert.Empty(t, store.byID(1).RegistryNumber)
}

func TestResolveFromImport_Errors(t *testing.T) {
	boom := errors.New("connection refused")
	store := newMemStore()
	store.findErr = boom
	engine := newTestEngine(store)

	_, err := engine.ResolveFromImport(context.Background(), ImportRecord{FullName: "a b", RegistryNumber: "1"})
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrIdentityConflict)

	_, err = engine.ResolveFromImport(context.Background(), ImportRecord{FullName: "   "})
	assert.ErrorIs(t, err, ErrMissingName)
}

func TestResolveFromImport_LogsConflict(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	store := newMemStore(&Player{FullName: "a b", RegistryNumber: "1", BirthDate: date("1980-01-01")})
	engine := NewEngine(store, zap.New(core))

	_, err := engine.ResolveFromImport(context.Background(), ImportRecord{FullName: "a b", RegistryNumber: "1", BirthDate: date("1981-01-01")})
	require.Error(t, err)
	assert.Equal(t, 1, logs.FilterMessageSnippet("birth date contradicts").Len())
}

func TestResolveFromExternalRef_CreatesFromRegistryNumber(t *testing.T) {
	store := newMemStore(&Player{FullName: "jane doe", RegistryNumber: "1"})
	engine := newTestEngine(store)

	res, err := engine.ResolveFromExternalRef(context.Background(), ExternalPlayerRef{Name: "ted moens", RegistryNumber: "89924"})
	require.NoError(t, err)
	assert.Equal(t, OutcomeCreated, res.Outcome)
	assert.Equal(t, "ted moens", res.Player.FullName)
	assert.Equal(t, "89924", res.Player.RegistryNumber)
	assert.Empty(t, res.Player.Aliases)
	assert.Empty(t, res.Player.Email)
}

func TestResolveFromExternalRef_RegistryNumberTracksAlias(t *testing.T) {
	store := newMemStore(&Player{FullName: "robert paulson", RegistryNumber: "42", Email: "bob@x.com"})
	engine := newTestEngine(store)

	res, err := engine.ResolveFromExternalRef(context.Background(), ExternalPlayerRef{Name: "Bob Paulson", RegistryNumber: "42"})
	require.NoError(t, err)
	assert.Equal(t, OutcomeMatched, res.Outcome)
	assert.Equal(t, []string{"bob paulson"}, store.byID(1).Aliases)
	assert.Equal(t, "bob@x.com", store.byID(1).Email)
}

func TestResolveFromImport_CanonicalRegistryNumber(t *testing.T) {
	store := newMemStore(&Player{FullName: "john smith", RegistryNumber: "12345"})
	engine := newTestEngine(store)
	ctx := context.Background()

	res, err := engine.ResolveFromImport(ctx, ImportRecord{FullName: "John Smith", RegistryNumber: "012345"})
	require.NoError(t, err)
	assert.Equal(t, OutcomeMatched, res.Outcome)
	assert.Equal(t, uint(1), res.Player.ID)
	assert.Equal(t, "12345", res.Player.RegistryNumber)
	assert.Len(t, store.players, 1)

	res, err = engine.ResolveFromImport(ctx, ImportRecord{FullName: "Jane Doe", RegistryNumber: "not-a-number"})
	require.NoError(t, err)
	assert.Equal(t, OutcomeCreated, res.Outcome)
	assert.Empty(t, res.Player.RegistryNumber, "invalid numbers are dropped")
}

func TestResolveFromExternalRef_CanonicalRegistryNumber(t *testing.T) {
	store := newMemStore(&Player{FullName: "john smith", RegistryNumber: "12345"})
	engine := newTestEngine(store)

	res, err := engine.ResolveFromExternalRef(context.Background(), ExternalPlayerRef{Name: "Johnny Smith", RegistryNumber: " 012345"})
	require.NoError(t, err)
	assert.Equal(t, OutcomeMatched, res.Outcome)
	assert.Equal(t, uint(1), res.Player.ID)
	assert.Equal(t, []string{"johnny smith"}, store.byID(1).Aliases)
	assert.Len(t, store.players, 1)
}

func TestResolveFromExternalRef_SubstringFalsePositive(t *testing.T) {
	store := newMemStore(&Player{FullName: "freddie r", Aliases: []string{"fred robertson"}})
	engine := newTestEngine(store)

	res, err := engine.ResolveFromExternalRef(context.Background(), ExternalPlayerRef{Name: "fred roberts"})
	require.NoError(t, err)
	assert.Equal(t, OutcomeUnknown, res.Outcome)
	assert.Nil(t, res.Player)
	assert.Len(t, store.players, 1)
}

func TestResolveFromExternalRef_AliasMatch(t *testing.T) {
	store := newMemStore(&Player{FullName: "jane smith", Aliases: []string{"jane doe"}})
	engine := newTestEngine(store)

	res, err := engine.ResolveFromExternalRef(context.Background(), ExternalPlayerRef{Name: "Jane Doe"})
	require.NoError(t, err)
	assert.Equal(t, OutcomeMatched, res.Outcome)
	assert.Equal(t, uint(1), res.Player.ID)
	assert.Zero(t, store.saves)

	res, err = engine.ResolveFromExternalRef(context.Background(), ExternalPlayerRef{Name: "Jane Doe", RegistryNumber: "555"})
	require.NoError(t, err)
	assert.Equal(t, uint(1), res.Player.ID)
	assert.Equal(t, "555", store.byID(1).RegistryNumber)
}

func TestResolveFromExternalRef_Ambiguous(t *testing.T) {
	store := newMemStore(
		&Player{FullName: "sam lee"},
		&Player{FullName: "samuel lee", Aliases: []string{"sam lee"}},
	)
	engine := newTestEngine(store)

	res, err := engine.ResolveFromExternalRef(context.Background(), ExternalPlayerRef{Name: "Sam Lee"})
	require.NoError(t, err)
	assert.Equal(t, OutcomeAmbiguous, res.Outcome)
	assert.Nil(t, res.Player)

	res, err = engine.ResolveFromExternalRef(context.Background(), ExternalPlayerRef{Name: "Sam Lee", RegistryNumber: "31"})
	require.NoError(t, err)
	assert.Equal(t, OutcomeAmbiguous, res.Outcome)
	assert.Len(t, store.players, 2)
}

func TestResolveFromExternalRef_SkipsPlayersWithOtherNumber(t *testing.T) {
	store := newMemStore(&Player{FullName: "chris wong", RegistryNumber: "100"})
	engine := newTestEngine(store)

	res, err := engine.ResolveFromExternalRef(context.Background(), ExternalPlayerRef{Name: "chris wong", RegistryNumber: "200"})
	require.NoError(t, err)
	assert.Equal(t, OutcomeCreated, res.Outcome)
	assert.Equal(t, "200", res.Player.RegistryNumber)
	assert.Equal(t, "100", store.byID(1).RegistryNumber)
}

func TestResolveFromExternalRef_NoNameNoNumber(t *testing.T) {
	engine := newTestEngine(newMemStore())

	res, err := engine.ResolveFromExternalRef(context.Background(), ExternalPlayerRef{})
	require.NoError(t, err)
	assert.Equal(t, OutcomeUnknown, res.Outcome)

	res, err = engine.ResolveFromExternalRef(context.Background(), ExternalPlayerRef{Name: "nobody here"})
	require.NoError(t, err)
	assert.Equal(t, OutcomeUnknown, res.Outcome)
}

func TestRegistryNumbersStayUnique(t *testing.T) {
	store := newMemStore()
	engine := newTestEngine(store)
	ctx := context.Background()

	steps := []func() error{
		func() error {
			_, err := engine.ResolveFromImport(ctx, ImportRecord{FullName: "a one", RegistryNumber: "1"})
			return err
		},
		func() error {
			_, err := engine.ResolveFromExternalRef(ctx, ExternalPlayerRef{Name: "a uno", RegistryNumber: "1"})
			return err
		},
		func() error {
			_, err := engine.ResolveFromImport(ctx, ImportRecord{FullName: "b two"})
			return err
		},
		func() error {
			_, err := engine.ResolveFromExternalRef(ctx, ExternalPlayerRef{Name: "b two", RegistryNumber: "2"})
			return err
		},
		func() error {
			_, err := engine.ResolveFromImport(ctx, ImportRecord{FullName: "b two", RegistryNumber: "1"})
			return err
		},
	}
	for _, step := range steps {
		err := step()
		if err != nil {
			assert.ErrorIs(t, err, ErrIdentityConflict)
		}
	}

	seen := map[string]uint{}
	for _, p := range store.players {
		if p.RegistryNumber == "" {
			continue
		}
		if id, dup := seen[p.RegistryNumber]; dup {
			t.Fatalf("registry number %s on players %d and %d", p.RegistryNumber, id, p.ID)
		}
		seen[p.RegistryNumber] = p.ID
		assert.NotContains(t, p.Aliases, p.FullName)
	}
}
