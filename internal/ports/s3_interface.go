package ports

import (
	"context"
	"mime/multipart"

	"collecto-backend/internal/model"
)

// ImageStorage : внешнее хранилище картинок (S3)
type ImageStorage interface {
	UploadImage(ctx context.Context, file multipart.File, header *multipart.FileHeader, folder string) (*model.UploadedImage, error)
	DeleteImage(ctx context.Context, publicID string) error
}
