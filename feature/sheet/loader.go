package sheet

import (
	"github.com/gofiber/fiber/v2"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	importer *Importer
	handler  *Handler
}

// NewFeature creates a new sheet feature around an importer, which may be nil
// when the database is unavailable.
func NewFeature(importer *Importer) *Feature {
	return &Feature{importer: importer, handler: NewHandler(importer)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "sheet"
}

// IsEnabled reports whether an importer is configured.
func (f *Feature) IsEnabled() bool {
	return f.importer != nil
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
