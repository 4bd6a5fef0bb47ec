package runs

import (
	"testing"

	"are-we-consistent-yet/core/backend"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestLoader(t *testing.T) {
	svc := NewService(&backend.Backend{}, nil, Options{Defaults: defaults}, zap.NewNop())
	feature := NewFeature(svc)

	assert.Equal(t, "consistency", feature.Name())
	assert.True(t, feature.IsEnabled())

	app := fiber.New()
	assert.NoError(t, feature.Load(app))
}
