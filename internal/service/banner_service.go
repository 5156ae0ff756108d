package service

import (
	"context"
	"log"
	"mime/multipart"
	"time"

	"collecto-backend/internal/apperror"
	"collecto-backend/internal/model"
	"collecto-backend/internal/ports"
)

const bannerImageFolder = "banners"

type BannerService struct {
	bannerRepository ports.BannerRepository
	imageStorage     ports.ImageStorage
}

func NewBannerService(bannerRepository ports.BannerRepository, imageStorage ports.ImageStorage) *BannerService {
	return &BannerService{bannerRepository, imageStorage}
}

func (s *BannerService) GetBanner(ctx context.Context, bannerID int64) (*model.Banner, error) {
	return s.bannerRepository.FindByID(ctx, bannerID)
}

// ListBanners : список баннеров для админки; непустой заголовок переключает на поиск
func (s *BannerService) ListBanners(ctx context.Context, title string, page, limit int) ([]model.Banner, int, error) {
	if title != "" {
		return s.bannerRepository.Search(ctx, title, page, limit)
	}
	return s.bannerRepository.List(ctx, page, limit)
}

// ListActiveBanners : баннеры для витрины
func (s *BannerService) ListActiveBanners(ctx context.Context) ([]model.Banner, error) {
	return s.bannerRepository.ListActive(ctx)
}

// CreateBanner сохраняет баннер. Картинка обязательна, без неё баннеру
// нечего показывать
func (s *BannerService) CreateBanner(ctx context.Context, banner *model.Banner, image multipart.File, imageHeader *multipart.FileHeader) (*model.Banner, error) {
	if banner.Title == "" {
		return nil, apperror.BadRequest("заголовок баннера обязателен")
	}
	if image == nil || imageHeader == nil {
		return nil, apperror.BadRequest("картинка баннера обязательна")
	}
	if banner.EndDate != nil && banner.EndDate.Before(banner.StartDate) {
		return nil, apperror.BadRequest("дата окончания раньше даты начала")
	}

	uploaded, err := s.imageStorage.UploadImage(ctx, image, imageHeader, bannerImageFolder)
	if err != nil {
		return nil, err
	}
	banner.ImageURL = uploaded.ImageURL
	banner.PublicID = uploaded.PublicID

	if banner.StartDate.IsZero() {
		banner.StartDate = time.Now()
	}
	banner.IsActive = true

	return s.bannerRepository.Create(ctx, banner)
}

// UpdateBanner обновляет баннер, новая картинка замещает старую
func (s *BannerService) UpdateBanner(ctx context.Context, banner *model.Banner, image multipart.File, imageHeader *multipart.FileHeader) (*model.Banner, error) {
	existing, err := s.bannerRepository.FindByID(ctx, banner.ID)
	if err != nil {
		return nil, err
	}
	if banner.Title == "" {
		return nil, apperror.BadRequest("заголовок баннера обязателен")
	}
	if banner.EndDate != nil && banner.EndDate.Before(banner.StartDate) {
		return nil, apperror.BadRequest("дата окончания раньше даты начала")
	}
	// без новой картинки запрос с теми же полями — no-op, отклоняется
	if image == nil && bannerUnchanged(banner, existing) {
		return nil, apperror.BadRequest("данные не отличаются от текущих")
	}

	oldPublicID := ""
	banner.ImageURL = existing.ImageURL
	banner.PublicID = existing.PublicID

	if image != nil && imageHeader != nil {
		uploaded, err := s.imageStorage.UploadImage(ctx, image, imageHeader, bannerImageFolder)
		if err != nil {
			return nil, err
		}
		oldPublicID = existing.PublicID
		banner.ImageURL = uploaded.ImageURL
		banner.PublicID = uploaded.PublicID
	}

	if err := s.bannerRepository.Update(ctx, banner); err != nil {
		return nil, err
	}

	if oldPublicID != "" {
		if err := s.imageStorage.DeleteImage(ctx, oldPublicID); err != nil {
			log.Printf("[BannerService] не удалось удалить старую картинку %s: %v", oldPublicID, err)
		}
	}

	return s.bannerRepository.FindByID(ctx, banner.ID)
}

// bannerUnchanged : редактируемые поля совпадают с текущей строкой.
// Непереданная дата начала изменением не считается
func bannerUnchanged(banner, existing *model.Banner) bool {
	if banner.EndDate != nil || existing.EndDate != nil {
		if banner.EndDate == nil || existing.EndDate == nil || !banner.EndDate.Equal(*existing.EndDate) {
			return false
		}
	}
	if banner.DisplayOrder != nil || existing.DisplayOrder != nil {
		if banner.DisplayOrder == nil || existing.DisplayOrder == nil || *banner.DisplayOrder != *existing.DisplayOrder {
			return false
		}
	}
	return banner.Title == existing.Title &&
		equalStrPtr(banner.Description, existing.Description) &&
		equalStrPtr(banner.RedirectLink, existing.RedirectLink) &&
		(banner.StartDate.IsZero() || banner.StartDate.Equal(existing.StartDate))
}

func (s *BannerService) ToggleBannerActive(ctx context.Context, bannerID int64) (*model.Banner, error) {
	return s.bannerRepository.ToggleActive(ctx, bannerID)
}

func (s *BannerService) DeleteBanner(ctx context.Context, bannerID int64) error {
	banner, err := s.bannerRepository.FindByID(ctx, bannerID)
	if err != nil {
		return err
	}

	if err := s.bannerRepository.SoftDelete(ctx, bannerID); err != nil {
		return err
	}

	if banner.PublicID != "" {
		if err := s.imageStorage.DeleteImage(ctx, banner.PublicID); err != nil {
			log.Printf("[BannerService] не удалось удалить картинку баннера %s: %v", banner.PublicID, err)
		}
	}

	return nil
}
