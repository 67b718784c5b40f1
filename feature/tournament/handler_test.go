package tournament

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"bcds-membership/core/membership"
	"bcds-membership/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFeatureDisabledWithoutRegistry(t *testing.T) {
	f := NewFeature(nil, new(mockResolver), &activeIDs{}, zap.NewNop())
	assert.False(t, f.IsEnabled())
	assert.Nil(t, f.Service())
	assert.Equal(t, "tournament", f.Name())
}

func TestHandlers(t *testing.T) {
	registry := new(mockRegistry)
	resolver := new(mockResolver)
	ref := reconcile.ExternalPlayerRef{Name: "ted moens", RegistryNumber: "89924"}

	registry.On("Tournament", mock.Anything, "4242").Return(flandersOpen, nil)
	registry.On("Tournament", mock.Anything, "1").Return(nil, nil)
	registry.On("Tournament", mock.Anything, "500").Return(nil, errors.New("timeout"))
	registry.On("TournamentPlayers", mock.Anything, "4242").Return([]reconcile.ExternalPlayerRef{ref}, nil)
	resolver.On("ResolveFromExternalRef", mock.Anything, ref).
		Return(reconcile.Resolution{Player: &reconcile.Player{ID: 1}, Outcome: reconcile.OutcomeMatched}, nil)

	app := fiber.New()
	f := NewFeature(registry, resolver, &activeIDs{ids: map[uint]bool{1: true}}, zap.NewNop())
	require.True(t, f.IsEnabled())
	require.NoError(t, f.Load(app))

	t.Run("tournament", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/tournaments/4242", nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "Flanders Open", body["tournament_name"])
	})

	t.Run("report", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/tournaments/4242/report", nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var body Report
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		require.Len(t, body.Rows, 1)
		assert.Equal(t, membership.ActiveMember, body.Rows[0].State)
		assert.Equal(t, 1, body.Totals["ACTIVE_MEMBER"])
	})

	t.Run("unknown tournament", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/tournaments/1/report", nil))
		require.NoError(t, err)
		assert.Equal(t, 404, resp.StatusCode)
	})

	t.Run("registry failure", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/tournaments/500", nil))
		require.NoError(t, err)
		assert.Equal(t, 500, resp.StatusCode)
	})
}
