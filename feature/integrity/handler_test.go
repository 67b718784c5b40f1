package integrity

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"bcds-membership/core/storage/mocks"
	"bcds-membership/feature/integrity/checks"
	playermodels "bcds-membership/feature/players/models"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T) (*fiber.App, *mocks.Client) {
	app := fiber.New()
	mockClient := new(mocks.Client)
	svc := NewService(mockClient, "membership", "sheet.csv", setupSQLite(t), playermodels.All(), zap.NewNop())
	handler := NewHandler(svc)
	handler.RegisterRoutes(app)
	return app, mockClient
}

func TestHandleSchemaCheck(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity/schema", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var report checks.SchemaReport
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	assert.True(t, report.Matched)
	assert.Equal(t, "ok", report.Tables["players"].Status)
}

func TestHandleSchemaCheck_NoDatabase(t *testing.T) {
	app := fiber.New()
	NewHandler(NewService(nil, "", "", nil, nil, zap.NewNop())).RegisterRoutes(app)

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity/schema", nil))
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)
}

func TestHandleStorageCheck(t *testing.T) {
	t.Run("missing sheet", func(t *testing.T) {
		app, mockClient := setupTestApp(t)
		mockClient.On("BucketExists", mock.Anything, "membership").Return(true, nil)
		mockClient.On("StatObject", mock.Anything, "membership", "sheet.csv", mock.Anything).
			Return(minio.ObjectInfo{}, minio.ErrorResponse{Code: "NoSuchKey"})

		resp, err := app.Test(httptest.NewRequest("GET", "/integrity/storage", nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var report checks.StorageReport
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
		assert.False(t, report.Present)
		assert.Equal(t, "sheet.csv", report.Object)
	})

	t.Run("missing bucket", func(t *testing.T) {
		app, mockClient := setupTestApp(t)
		mockClient.On("BucketExists", mock.Anything, "membership").Return(false, nil)

		resp, err := app.Test(httptest.NewRequest("GET", "/integrity/storage", nil))
		require.NoError(t, err)
		assert.Equal(t, 500, resp.StatusCode)
	})
}

func TestHandleIntegrityCheck(t *testing.T) {
	app, mockClient := setupTestApp(t)
	mockClient.On("BucketExists", mock.Anything, "membership").Return(false, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["schema"]["matched"])
	assert.Equal(t, "error", body["storage"]["status"])
}
