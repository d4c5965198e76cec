package contracts

import (
	"context"
	"time"
)

type Storage interface {
	UploadJSONObject(ctx context.Context, bucketName, objectName string, payload interface{}) (string, error)
	PresignedObjectURL(ctx context.Context, bucketName, objectName string, expiry time.Duration) (string, error)
}
