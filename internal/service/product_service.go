package service

import (
	"context"
	"log"
	"mime/multipart"

	"collecto-backend/internal/apperror"
	"collecto-backend/internal/model"
	"collecto-backend/internal/ports"
)

const productImageFolder = "products"

// ProductService : каталог продуктов с кэшом карточек в Redis.
// Любая мутация продукта инвалидирует его ключ в кэше
type ProductService struct {
	productRepository  ports.ProductRepository
	categoryRepository ports.CategoryRepository
	brandRepository    ports.BrandRepository
	cacheRepository    ports.CacheRepository
	imageStorage       ports.ImageStorage
}

func NewProductService(
	productRepository ports.ProductRepository,
	categoryRepository ports.CategoryRepository,
	brandRepository ports.BrandRepository,
	cacheRepository ports.CacheRepository,
	imageStorage ports.ImageStorage,
) *ProductService {
	return &ProductService{
		productRepository,
		categoryRepository,
		brandRepository,
		cacheRepository,
		imageStorage,
	}
}

// GetProduct : карточка продукта, сначала из кэша, при промахе — из базы
func (s *ProductService) GetProduct(ctx context.Context, productID int64) (*model.Product, error) {
	cached, err := s.cacheRepository.GetProduct(ctx, productID)
	if err != nil {
		// недоступный Redis не должен ронять чтение каталога
		log.Printf("[ProductService] кэш недоступен: %v", err)
	}
	if cached != nil {
		return cached, nil
	}

	product, err := s.productRepository.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := s.cacheRepository.SetProduct(ctx, product); err != nil {
		log.Printf("[ProductService] не удалось положить продукт в кэш: %v", err)
	}

	return product, nil
}

// ListProducts : список или поиск продуктов, кэш не используется
func (s *ProductService) ListProducts(ctx context.Context, name string, categoryID, brandID int64, page, limit int) ([]model.Product, int, error) {
	if name != "" || categoryID > 0 || brandID > 0 {
		return s.productRepository.Search(ctx, name, categoryID, brandID, page, limit)
	}
	return s.productRepository.List(ctx, page, limit)
}

// CreateProduct сохраняет продукт и его картинки. Картинки сначала
// загружаются во внешнее хранилище, первая из них становится основной
func (s *ProductService) CreateProduct(ctx context.Context, product *model.Product, images []*multipart.FileHeader) (*model.Product, error) {
	if product.SKU == "" || product.Name == "" {
		return nil, apperror.BadRequest("SKU и имя продукта обязательны")
	}
	if product.SellingPrice <= 0 {
		return nil, apperror.BadRequest("цена продукта должна быть положительной")
	}

	// категория и бренд должны существовать
	if _, err := s.categoryRepository.FindByID(ctx, product.CategoryID); err != nil {
		return nil, err
	}
	if _, err := s.brandRepository.FindByID(ctx, product.BrandID); err != nil {
		return nil, err
	}

	productImages, err := s.uploadImages(ctx, images, 0)
	if err != nil {
		return nil, err
	}
	if len(productImages) > 0 {
		productImages[0].IsPrimary = true
	}

	product.IsActive = true
	created, err := s.productRepository.Create(ctx, product, productImages)
	if err != nil {
		s.cleanupImages(ctx, productImages)
		return nil, err
	}

	return created, nil
}

// UpdateProduct обновляет продукт, удаляет перечисленные картинки
// и добавляет новые. Запрос без единого изменения отклоняется
func (s *ProductService) UpdateProduct(ctx context.Context, product *model.Product, deleteImageIDs []int64, newImages []*multipart.FileHeader) (*model.Product, error) {
	existing, err := s.productRepository.FindByID(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	if product.SKU == "" || product.Name == "" {
		return nil, apperror.BadRequest("SKU и имя продукта обязательны")
	}
	if len(deleteImageIDs) == 0 && len(newImages) == 0 && productUnchanged(product, existing) {
		return nil, apperror.BadRequest("данные не отличаются от текущих")
	}

	if product.CategoryID != existing.CategoryID {
		if _, err := s.categoryRepository.FindByID(ctx, product.CategoryID); err != nil {
			return nil, err
		}
	}
	if product.BrandID != existing.BrandID {
		if _, err := s.brandRepository.FindByID(ctx, product.BrandID); err != nil {
			return nil, err
		}
	}

	// картинки, которые уйдут из хранилища после обновления
	removed, err := s.productRepository.FindImagesByIDs(ctx, deleteImageIDs)
	if err != nil {
		return nil, err
	}

	nextSortOrder := len(existing.Images)
	uploaded, err := s.uploadImages(ctx, newImages, nextSortOrder)
	if err != nil {
		return nil, err
	}

	if err := s.productRepository.Update(ctx, product, deleteImageIDs, uploaded); err != nil {
		s.cleanupImages(ctx, uploaded)
		return nil, err
	}

	for i := range removed {
		if err := s.imageStorage.DeleteImage(ctx, removed[i].PublicID); err != nil {
			log.Printf("[ProductService] не удалось удалить картинку %s: %v", removed[i].PublicID, err)
		}
	}

	s.invalidate(ctx, product.ID)
	return s.productRepository.FindByID(ctx, product.ID)
}

// ToggleProductActive : переключает видимость продукта на витрине
func (s *ProductService) ToggleProductActive(ctx context.Context, productID int64) (*model.Product, error) {
	updated, err := s.productRepository.ToggleActive(ctx, productID)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, productID)
	return updated, nil
}

// DeleteProduct мягко удаляет продукт. Картинки остаются в хранилище:
// строка продукта не стирается и может быть восстановлена
func (s *ProductService) DeleteProduct(ctx context.Context, productID int64) error {
	if err := s.productRepository.SoftDelete(ctx, productID); err != nil {
		return err
	}
	s.invalidate(ctx, productID)
	return nil
}

// SetPrimaryImage переносит флаг основной картинки продукта
func (s *ProductService) SetPrimaryImage(ctx context.Context, productID, imageID int64) error {
	product, err := s.productRepository.FindByID(ctx, productID)
	if err != nil {
		return err
	}

	for i := range product.Images {
		if product.Images[i].ID == imageID && product.Images[i].IsPrimary {
			return apperror.BadRequest("картинка уже является основной")
		}
	}

	if err := s.productRepository.SetPrimaryImage(ctx, productID, imageID); err != nil {
		return err
	}

	s.invalidate(ctx, productID)
	return nil
}

func (s *ProductService) uploadImages(ctx context.Context, headers []*multipart.FileHeader, startSortOrder int) ([]model.ProductImage, error) {
	images := make([]model.ProductImage, 0, len(headers))

	for i, header := range headers {
		file, err := header.Open()
		if err != nil {
			s.cleanupImages(ctx, images)
			return nil, apperror.BadRequest("не удалось прочитать файл картинки")
		}

		uploaded, err := s.imageStorage.UploadImage(ctx, file, header, productImageFolder)
		file.Close()
		if err != nil {
			s.cleanupImages(ctx, images)
			return nil, err
		}

		images = append(images, model.ProductImage{
			ImageURL:  uploaded.ImageURL,
			PublicID:  uploaded.PublicID,
			SortOrder: startSortOrder + i,
		})
	}

	return images, nil
}

// cleanupImages убирает из хранилища картинки, не доехавшие до базы
func (s *ProductService) cleanupImages(ctx context.Context, images []model.ProductImage) {
	for i := range images {
		if err := s.imageStorage.DeleteImage(ctx, images[i].PublicID); err != nil {
			log.Printf("[ProductService] не удалось удалить картинку %s: %v", images[i].PublicID, err)
		}
	}
}

// productUnchanged : все редактируемые поля совпадают с текущей строкой
func productUnchanged(product, existing *model.Product) bool {
	return product.SKU == existing.SKU &&
		product.Name == existing.Name &&
		equalStrPtr(product.Description, existing.Description) &&
		equalStrPtr(product.Details, existing.Details) &&
		product.CategoryID == existing.CategoryID &&
		product.BrandID == existing.BrandID &&
		equalStrPtr(product.Scale, existing.Scale) &&
		equalStrPtr(product.DifficultyLevel, existing.DifficultyLevel) &&
		equalStrPtr(product.Material, existing.Material) &&
		equalStrPtr(product.Weight, existing.Weight) &&
		equalStrPtr(product.Dimensions, existing.Dimensions) &&
		equalStrPtr(product.AgeRating, existing.AgeRating) &&
		product.OriginalPrice == existing.OriginalPrice &&
		product.SellingPrice == existing.SellingPrice
}

func equalStrPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (s *ProductService) invalidate(ctx context.Context, productID int64) {
	if err := s.cacheRepository.DeleteProduct(ctx, productID); err != nil {
		log.Printf("[ProductService] не удалось инвалидировать кэш продукта %d: %v", productID, err)
	}
}
