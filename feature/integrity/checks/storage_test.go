package checks

import (
	"context"
	"testing"
	"time"

	"bcds-membership/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const sheetObject = "sheet/membership.csv"

func TestCheckStorage(t *testing.T) {
	ctx := context.Background()

	t.Run("present", func(t *testing.T) {
		client := new(mocks.Client)
		modified := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
		client.On("BucketExists", mock.Anything, "membership").Return(true, nil)
		client.On("StatObject", mock.Anything, "membership", sheetObject, mock.Anything).
			Return(minio.ObjectInfo{Key: sheetObject, Size: 2048, LastModified: modified}, nil)

		report, err := CheckStorage(ctx, client, "membership", sheetObject)
		require.NoError(t, err)
		assert.True(t, report.Present)
		assert.EqualValues(t, 2048, report.Size)
		assert.Equal(t, modified, report.LastModified)
	})

	t.Run("missing object", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "membership").Return(true, nil)
		client.On("StatObject", mock.Anything, "membership", sheetObject, mock.Anything).
			Return(minio.ObjectInfo{}, minio.ErrorResponse{Code: "NoSuchKey"})

		report, err := CheckStorage(ctx, client, "membership", sheetObject)
		require.NoError(t, err)
		assert.False(t, report.Present)
	})

	t.Run("missing bucket", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "membership").Return(false, nil)

		_, err := CheckStorage(ctx, client, "membership", sheetObject)
		assert.ErrorContains(t, err, "does not exist")
		client.AssertNotCalled(t, "StatObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("stat failure", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "membership").Return(true, nil)
		client.On("StatObject", mock.Anything, "membership", sheetObject, mock.Anything).
			Return(minio.ObjectInfo{}, minio.ErrorResponse{Code: "AccessDenied"})

		_, err := CheckStorage(ctx, client, "membership", sheetObject)
		assert.Error(t, err)
	})
}
