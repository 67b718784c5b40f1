package tournament

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new tournament feature. A nil registry disables it.
func NewFeature(registry Registry, resolver Resolver, evaluator StateEvaluator, logger *zap.Logger) *Feature {
	if registry == nil {
		return &Feature{}
	}
	svc := NewService(registry, resolver, evaluator, logger)
	return &Feature{service: svc, handler: NewHandler(svc)}
}

// Service returns the feature's service, nil when disabled.
func (f *Feature) Service() *Service {
	return f.service
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "tournament"
}

// IsEnabled reports whether a registry client is configured.
func (f *Feature) IsEnabled() bool {
	return f.service != nil
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
