package service

import (
	"context"
	"log"
	"mime/multipart"

	"collecto-backend/internal/apperror"
	"collecto-backend/internal/model"
	"collecto-backend/internal/ports"
)

const brandLogoFolder = "brands"

type BrandService struct {
	brandRepository ports.BrandRepository
	imageStorage    ports.ImageStorage
}

func NewBrandService(brandRepository ports.BrandRepository, imageStorage ports.ImageStorage) *BrandService {
	return &BrandService{brandRepository, imageStorage}
}

func (s *BrandService) GetBrand(ctx context.Context, brandID int64) (*model.Brand, error) {
	return s.brandRepository.FindByID(ctx, brandID)
}

// ListBrands : список брендов; непустое имя переключает на поиск
func (s *BrandService) ListBrands(ctx context.Context, name string, page, limit int) ([]model.Brand, int, error) {
	if name != "" {
		return s.brandRepository.Search(ctx, name, page, limit)
	}
	return s.brandRepository.List(ctx, page, limit)
}

// CreateBrand сохраняет бренд, при наличии файла логотип сначала
// загружается во внешнее хранилище
func (s *BrandService) CreateBrand(ctx context.Context, brand *model.Brand, logo multipart.File, logoHeader *multipart.FileHeader) (*model.Brand, error) {
	if brand.Name == "" {
		return nil, apperror.BadRequest("имя бренда обязательно")
	}

	if logo != nil && logoHeader != nil {
		uploaded, err := s.imageStorage.UploadImage(ctx, logo, logoHeader, brandLogoFolder)
		if err != nil {
			return nil, err
		}
		brand.LogoURL = &uploaded.ImageURL
		brand.PublicID = &uploaded.PublicID
	}

	brand.IsActive = true
	return s.brandRepository.Create(ctx, brand)
}

// UpdateBrand обновляет бренд. Новый логотип замещает старый,
// старый файл удаляется из хранилища после успешного обновления
func (s *BrandService) UpdateBrand(ctx context.Context, brand *model.Brand, logo multipart.File, logoHeader *multipart.FileHeader) (*model.Brand, error) {
	existing, err := s.brandRepository.FindByID(ctx, brand.ID)
	if err != nil {
		return nil, err
	}
	if brand.Name == "" {
		return nil, apperror.BadRequest("имя бренда обязательно")
	}
	// без нового логотипа запрос с теми же полями — no-op, отклоняется
	if logo == nil && brand.Name == existing.Name &&
		equalStrPtr(brand.Description, existing.Description) &&
		equalStrPtr(brand.Website, existing.Website) &&
		equalStrPtr(brand.Country, existing.Country) {
		return nil, apperror.BadRequest("данные не отличаются от текущих")
	}

	oldPublicID := ""
	brand.LogoURL = existing.LogoURL
	brand.PublicID = existing.PublicID

	if logo != nil && logoHeader != nil {
		uploaded, err := s.imageStorage.UploadImage(ctx, logo, logoHeader, brandLogoFolder)
		if err != nil {
			return nil, err
		}
		if existing.PublicID != nil {
			oldPublicID = *existing.PublicID
		}
		brand.LogoURL = &uploaded.ImageURL
		brand.PublicID = &uploaded.PublicID
	}

	if err := s.brandRepository.Update(ctx, brand); err != nil {
		return nil, err
	}

	if oldPublicID != "" {
		if err := s.imageStorage.DeleteImage(ctx, oldPublicID); err != nil {
			// файл-сирота в бакете не ломает данные, достаточно залогировать
			log.Printf("[BrandService] не удалось удалить старый логотип %s: %v", oldPublicID, err)
		}
	}

	return s.brandRepository.FindByID(ctx, brand.ID)
}

func (s *BrandService) DeleteBrand(ctx context.Context, brandID int64) error {
	brand, err := s.brandRepository.FindByID(ctx, brandID)
	if err != nil {
		return err
	}

	if err := s.brandRepository.SoftDelete(ctx, brandID); err != nil {
		return err
	}

	if brand.PublicID != nil && *brand.PublicID != "" {
		if err := s.imageStorage.DeleteImage(ctx, *brand.PublicID); err != nil {
			log.Printf("[BrandService] не удалось удалить логотип %s: %v", *brand.PublicID, err)
		}
	}

	return nil
}
