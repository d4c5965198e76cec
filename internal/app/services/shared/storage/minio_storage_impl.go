package storage

import (
	"bytes"
	"context"
	"meetcue-service/internal/app/contracts"
	"meetcue-service/internal/pkg/constvars"
	"meetcue-service/internal/pkg/exceptions"
	"net/url"
	"time"

	"github.com/goccy/go-json"
	"github.com/minio/minio-go/v7"
)

type minioStorage struct {
	MinioClient *minio.Client
}

func NewMinioStorage(minioClient *minio.Client) contracts.Storage {
	return &minioStorage{
		MinioClient: minioClient,
	}
}

func (m *minioStorage) UploadJSONObject(ctx context.Context, bucketName, objectName string, payload interface{}) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", exceptions.ErrCannotMarshalJSON(err)
	}

	_, err = m.MinioClient.PutObject(
		ctx,
		bucketName,
		objectName,
		bytes.NewReader(body),
		int64(len(body)),
		minio.PutObjectOptions{
			ContentType: constvars.MIMEApplicationJSON,
		},
	)
	if err != nil {
		return "", exceptions.ErrMinioCreateObject(err, bucketName)
	}

	return objectName, nil
}

func (m *minioStorage) PresignedObjectURL(ctx context.Context, bucketName, objectName string, expiry time.Duration) (string, error) {
	presigned, err := m.MinioClient.PresignedGetObject(ctx, bucketName, objectName, expiry, url.Values{})
	if err != nil {
		return "", exceptions.ErrMinioPresignObject(err, bucketName)
	}

	return presigned.String(), nil
}
