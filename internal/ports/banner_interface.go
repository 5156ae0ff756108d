package ports

import (
	"context"
	"mime/multipart"

	"collecto-backend/internal/model"
)

type BannerRepository interface {
	FindByID(ctx context.Context, bannerID int64) (*model.Banner, error)
	List(ctx context.Context, page, limit int) ([]model.Banner, int, error)
	ListActive(ctx context.Context) ([]model.Banner, error)
	Search(ctx context.Context, title string, page, limit int) ([]model.Banner, int, error)
	Create(ctx context.Context, banner *model.Banner) (*model.Banner, error)
	Update(ctx context.Context, banner *model.Banner) error
	ToggleActive(ctx context.Context, bannerID int64) (*model.Banner, error)
	SoftDelete(ctx context.Context, bannerID int64) error
}

type BannerService interface {
	GetBanner(ctx context.Context, bannerID int64) (*model.Banner, error)
	ListBanners(ctx context.Context, title string, page, limit int) ([]model.Banner, int, error)
	ListActiveBanners(ctx context.Context) ([]model.Banner, error)
	CreateBanner(ctx context.Context, banner *model.Banner, image multipart.File, imageHeader *multipart.FileHeader) (*model.Banner, error)
	UpdateBanner(ctx context.Context, banner *model.Banner, image multipart.File, imageHeader *multipart.FileHeader) (*model.Banner, error)
	ToggleBannerActive(ctx context.Context, bannerID int64) (*model.Banner, error)
	DeleteBanner(ctx context.Context, bannerID int64) error
}
