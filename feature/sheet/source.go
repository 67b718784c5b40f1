package sheet

import (
	"context"
	"encoding/csv"
	"fmt"

	"bcds-membership/core/storage"

	"github.com/minio/minio-go/v7"
)

// Source produces the raw rows of the membership sheet, header included.
type Source interface {
	Rows(ctx context.Context) ([][]string, error)
}

// ObjectSource reads the sheet's CSV export from object storage.
type ObjectSource struct {
	client storage.Client
	bucket string
	object string
}

// NewObjectSource creates a source reading bucket/object.
func NewObjectSource(client storage.Client, bucket, object string) *ObjectSource {
	return &ObjectSource{client: client, bucket: bucket, object: object}
}

// Location returns "bucket/object".
func (s *ObjectSource) Location() string {
	return s.bucket + "/" + s.object
}

func (s *ObjectSource) Rows(ctx context.Context) ([][]string, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.object, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", s.Location(), err)
	}
	defer obj.Close()

	r := csv.NewReader(obj)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	rows, err := r.ReadAll()
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, fmt.Errorf("sheet export %s not found: %w", s.Location(), err)
		}
		return nil, fmt.Errorf("failed to read %s: %w", s.Location(), err)
	}
	return rows, nil
}
