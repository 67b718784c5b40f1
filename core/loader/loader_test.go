package loader

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFeature struct {
	name    string
	enabled bool
	err     error
	loaded  bool
}

func (s *stubFeature) Name() string    { return s.name }
func (s *stubFeature) IsEnabled() bool { return s.enabled }
func (s *stubFeature) Load(app fiber.Router) error {
	if s.err != nil {
		return s.err
	}
	s.loaded = true
	app.Get("/"+s.name, func(c *fiber.Ctx) error { return c.SendString(s.name) })
	return nil
}

func TestManager_LoadAll(t *testing.T) {
	app := fiber.New()
	mgr := NewManager(nil)

	on := &stubFeature{name: "players", enabled: true}
	off := &stubFeature{name: "sheet", enabled: false}
	mgr.Register(on)
	mgr.Register(off)
	mgr.Register(nil)

	require.NoError(t, mgr.LoadAll(app))
	assert.Len(t, mgr.Features(), 2)
	assert.True(t, on.loaded)
	assert.False(t, off.loaded)

	resp, err := app.Test(httptest.NewRequest("GET", "/players", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/sheet", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestManager_LoadAllStopsOnError(t *testing.T) {
	mgr := NewManager(nil)
	boom := errors.New("boom")
	mgr.Register(&stubFeature{name: "bad", enabled: true, err: boom})
	after := &stubFeature{name: "after", enabled: true}
	mgr.Register(after)

	err := mgr.LoadAll(fiber.New())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "bad")
	assert.False(t, after.loaded)
}
