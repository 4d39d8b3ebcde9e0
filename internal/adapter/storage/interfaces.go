package storage

import (
	"context"
	"time"
)

//go:generate mockgen -source=interfaces.go -destination=../../mocks/storage_mocks.go -package=mocks

type ImageStorage interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

type ImageProcessor interface {
	Dimensions(data []byte) (width, height int, err error)
	Thumbnail(data []byte, maxWidth, maxHeight int) ([]byte, error)
}
