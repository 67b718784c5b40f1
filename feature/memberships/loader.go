package memberships

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	db      *gorm.DB
	service *Service
	handler *Handler
}

// NewFeature creates a new memberships feature.
func NewFeature(db *gorm.DB, players PlayerLookup, refresher Refresher, logger *zap.Logger) *Feature {
	svc := NewService(players, NewStore(db), refresher, logger)
	return &Feature{db: db, service: svc, handler: NewHandler(svc)}
}

// Service returns the feature's service.
func (f *Feature) Service() *Service {
	return f.service
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "memberships"
}

// IsEnabled reports whether a database is available.
func (f *Feature) IsEnabled() bool {
	return f.db != nil
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
