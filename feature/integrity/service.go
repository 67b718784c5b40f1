package integrity

import (
	"context"
	"errors"

	"bcds-membership/core/storage"
	"bcds-membership/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrStorageNotConfigured is returned by storage checks without a storage client.
var ErrStorageNotConfigured = errors.New("object storage is not configured")

// Service handles integrity checks.
type Service struct {
	client      storage.Client
	bucket      string
	sheetObject string
	db          *gorm.DB
	models      []any
	logger      *zap.Logger
}

// NewService creates a new integrity service. models are the gorm models the
// schema check compares with the database.
func NewService(client storage.Client, bucket, sheetObject string, db *gorm.DB, models []any, logger *zap.Logger) *Service {
	return &Service{
		client:      client,
		bucket:      bucket,
		sheetObject: sheetObject,
		db:          db,
		models:      models,
		logger:      logger,
	}
}

// CheckSchema compares the database schema with the models.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	return checks.CheckSchema(s.db, s.models...)
}

// CheckStorage verifies the bucket and the membership sheet object.
func (s *Service) CheckStorage(ctx context.Context) (*checks.StorageReport, error) {
	if s.client == nil {
		return nil, ErrStorageNotConfigured
	}
	return checks.CheckStorage(ctx, s.client, s.bucket, s.sheetObject)
}

// RunAll runs every check. A failing check is reported in place of its result.
func (s *Service) RunAll(ctx context.Context) map[string]interface{} {
	report := make(map[string]interface{})

	if schema, err := s.CheckSchema(); err != nil {
		report["schema"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["schema"] = schema
	}

	if st, err := s.CheckStorage(ctx); err != nil {
		report["storage"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["storage"] = st
	}

	return report
}
