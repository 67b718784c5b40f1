package integrity

import (
	"testing"

	"bcds-membership/core/storage/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestLoader(t *testing.T) {
	mockClient := new(mocks.Client)
	// nil db: nothing is queried until a check runs
	feature := NewFeature(mockClient, "membership", "sheet.csv", nil, nil, zap.NewNop())

	assert.Equal(t, "integrity", feature.Name())
	assert.True(t, feature.IsEnabled())
	assert.NotNil(t, feature.Service())

	app := fiber.New()
	err := feature.Load(app)
	assert.NoError(t, err)
}
