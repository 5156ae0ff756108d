package service_test

import (
	"context"
	"mime/multipart"
	"testing"

	"collecto-backend/internal/apperror"
	"collecto-backend/internal/model"
	"collecto-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockProductRepository struct{ mock.Mock }

func (m *MockProductRepository) FindByID(ctx context.Context, productID int64) (*model.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) List(ctx context.Context, page, limit int) ([]model.Product, int, error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Product), args.Int(1), args.Error(2)
}

func (m *MockProductRepository) Search(ctx context.Context, name string, categoryID, brandID int64, page, limit int) ([]model.Product, int, error) {
	args := m.Called(ctx, name, categoryID, brandID, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Product), args.Int(1), args.Error(2)
}

func (m *MockProductRepository) Create(ctx context.Context, product *model.Product, images []model.ProductImage) (*model.Product, error) {
	args := m.Called(ctx, product, images)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, product *model.Product, deleteImageIDs []int64, newImages []model.ProductImage) error {
	return m.Called(ctx, product, deleteImageIDs, newImages).Error(0)
}

func (m *MockProductRepository) ToggleActive(ctx context.Context, productID int64) (*model.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) SoftDelete(ctx context.Context, productID int64) error {
	return m.Called(ctx, productID).Error(0)
}

func (m *MockProductRepository) FindImagesByIDs(ctx context.Context, imageIDs []int64) ([]model.ProductImage, error) {
	args := m.Called(ctx, imageIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ProductImage), args.Error(1)
}

func (m *MockProductRepository) SetPrimaryImage(ctx context.Context, productID, imageID int64) error {
	return m.Called(ctx, productID, imageID).Error(0)
}

type MockCategoryRepository struct{ mock.Mock }

func (m *MockCategoryRepository) FindByID(ctx context.Context, categoryID int64) (*model.Category, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryRepository) List(ctx context.Context, page, limit int) ([]model.Category, int, error) {
	args := m.Called(ctx, page, limit)
	return args.Get(0).([]model.Category), args.Int(1), args.Error(2)
}

func (m *MockCategoryRepository) Search(ctx context.Context, name string, page, limit int) ([]model.Category, int, error) {
	args := m.Called(ctx, name, page, limit)
	return args.Get(0).([]model.Category), args.Int(1), args.Error(2)
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *model.Category) (*model.Category, error) {
	args := m.Called(ctx, category)
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryRepository) Update(ctx context.Context, category *model.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *MockCategoryRepository) ToggleActive(ctx context.Context, categoryID int64) (*model.Category, error) {
	args := m.Called(ctx, categoryID)
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryRepository) SoftDelete(ctx context.Context, categoryID int64) error {
	return m.Called(ctx, categoryID).Error(0)
}

type MockBrandRepository struct{ mock.Mock }

func (m *MockBrandRepository) FindByID(ctx context.Context, brandID int64) (*model.Brand, error) {
	args := m.Called(ctx, brandID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Brand), args.Error(1)
}

func (m *MockBrandRepository) List(ctx context.Context, page, limit int) ([]model.Brand, int, error) {
	args := m.Called(ctx, page, limit)
	return args.Get(0).([]model.Brand), args.Int(1), args.Error(2)
}

func (m *MockBrandRepository) Search(ctx context.Context, name string, page, limit int) ([]model.Brand, int, error) {
	args := m.Called(ctx, name, page, limit)
	return args.Get(0).([]model.Brand), args.Int(1), args.Error(2)
}

func (m *MockBrandRepository) Create(ctx context.Context, brand *model.Brand) (*model.Brand, error) {
	args := m.Called(ctx, brand)
	return args.Get(0).(*model.Brand), args.Error(1)
}

func (m *MockBrandRepository) Update(ctx context.Context, brand *model.Brand) error {
	return m.Called(ctx, brand).Error(0)
}

func (m *MockBrandRepository) SoftDelete(ctx context.Context, brandID int64) error {
	return m.Called(ctx, brandID).Error(0)
}

type MockCacheRepository struct{ mock.Mock }

func (m *MockCacheRepository) SetProduct(ctx context.Context, product *model.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockCacheRepository) GetProduct(ctx context.Context, productID int64) (*model.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockCacheRepository) DeleteProduct(ctx context.Context, productID int64) error {
	return m.Called(ctx, productID).Error(0)
}

type MockImageStorage struct{ mock.Mock }

func (m *MockImageStorage) UploadImage(ctx context.Context, file multipart.File, header *multipart.FileHeader, folder string) (*model.UploadedImage, error) {
	args := m.Called(ctx, file, header, folder)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UploadedImage), args.Error(1)
}

func (m *MockImageStorage) DeleteImage(ctx context.Context, publicID string) error {
	return m.Called(ctx, publicID).Error(0)
}

func productFixture(id int64) *model.Product {
	return &model.Product{
		ID:           id,
		SKU:          "GP-001",
		Name:         "RX-78-2",
		CategoryID:   1,
		BrandID:      1,
		SellingPrice: 49.99,
		IsActive:     true,
		Images: []model.ProductImage{
			{ID: 10, ProductID: id, IsPrimary: true},
			{ID: 11, ProductID: id, IsPrimary: false},
		},
	}
}

func newProductService(productRepo *MockProductRepository, cacheRepo *MockCacheRepository) *service.ProductService {
	return service.NewProductService(productRepo, new(MockCategoryRepository), new(MockBrandRepository), cacheRepo, new(MockImageStorage))
}

func TestGetProduct_CacheHit(t *testing.T) {
	productRepo := new(MockProductRepository)
	cacheRepo := new(MockCacheRepository)
	productService := newProductService(productRepo, cacheRepo)

	cacheRepo.On("GetProduct", mock.Anything, int64(1)).Return(productFixture(1), nil)

	product, err := productService.GetProduct(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, int64(1), product.ID)
	// при попадании в кэш до базы дело не доходит
	productRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestGetProduct_CacheMiss(t *testing.T) {
	productRepo := new(MockProductRepository)
	cacheRepo := new(MockCacheRepository)
	productService := newProductService(productRepo, cacheRepo)

	cacheRepo.On("GetProduct", mock.Anything, int64(1)).Return(nil, nil)
	productRepo.On("FindByID", mock.Anything, int64(1)).Return(productFixture(1), nil)
	cacheRepo.On("SetProduct", mock.Anything, mock.Anything).Return(nil)

	product, err := productService.GetProduct(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, "GP-001", product.SKU)
	cacheRepo.AssertCalled(t, "SetProduct", mock.Anything, mock.Anything)
}

func TestGetProduct_NotFound(t *testing.T) {
	productRepo := new(MockProductRepository)
	cacheRepo := new(MockCacheRepository)
	productService := newProductService(productRepo, cacheRepo)

	cacheRepo.On("GetProduct", mock.Anything, int64(404)).Return(nil, nil)
	productRepo.On("FindByID", mock.Anything, int64(404)).Return(nil, apperror.NotFound("продукт не найден"))

	_, err := productService.GetProduct(context.Background(), 404)

	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

// обновление без единого отличия от текущих данных отклоняется
func TestUpdateProduct_NoChanges(t *testing.T) {
	productRepo := new(MockProductRepository)
	cacheRepo := new(MockCacheRepository)
	productService := newProductService(productRepo, cacheRepo)

	productRepo.On("FindByID", mock.Anything, int64(1)).Return(productFixture(1), nil)

	_, err := productService.UpdateProduct(context.Background(), productFixture(1), nil, nil)

	assert.True(t, apperror.IsKind(err, apperror.KindBadRequest))
	productRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateProduct_PriceChange(t *testing.T) {
	productRepo := new(MockProductRepository)
	cacheRepo := new(MockCacheRepository)
	productService := newProductService(productRepo, cacheRepo)

	productRepo.On("FindByID", mock.Anything, int64(1)).Return(productFixture(1), nil)
	productRepo.On("FindImagesByIDs", mock.Anything, mock.Anything).Return([]model.ProductImage{}, nil)
	productRepo.On("Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	cacheRepo.On("DeleteProduct", mock.Anything, int64(1)).Return(nil)

	updated := productFixture(1)
	updated.SellingPrice = 59.99
	_, err := productService.UpdateProduct(context.Background(), updated, nil, nil)

	require.NoError(t, err)
	productRepo.AssertCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSetPrimaryImage_AlreadyPrimary(t *testing.T) {
	productRepo := new(MockProductRepository)
	cacheRepo := new(MockCacheRepository)
	productService := newProductService(productRepo, cacheRepo)

	productRepo.On("FindByID", mock.Anything, int64(1)).Return(productFixture(1), nil)

	err := productService.SetPrimaryImage(context.Background(), 1, 10)

	assert.True(t, apperror.IsKind(err, apperror.KindBadRequest))
	productRepo.AssertNotCalled(t, "SetPrimaryImage", mock.Anything, mock.Anything, mock.Anything)
}

func TestSetPrimaryImage_InvalidatesCache(t *testing.T) {
	productRepo := new(MockProductRepository)
	cacheRepo := new(MockCacheRepository)
	productService := newProductService(productRepo, cacheRepo)

	productRepo.On("FindByID", mock.Anything, int64(1)).Return(productFixture(1), nil)
	productRepo.On("SetPrimaryImage", mock.Anything, int64(1), int64(11)).Return(nil)
	cacheRepo.On("DeleteProduct", mock.Anything, int64(1)).Return(nil)

	require.NoError(t, productService.SetPrimaryImage(context.Background(), 1, 11))
	cacheRepo.AssertExpectations(t)
}

func TestDeleteProduct_InvalidatesCache(t *testing.T) {
	productRepo := new(MockProductRepository)
	cacheRepo := new(MockCacheRepository)
	productService := newProductService(productRepo, cacheRepo)

	productRepo.On("SoftDelete", mock.Anything, int64(1)).Return(nil)
	cacheRepo.On("DeleteProduct", mock.Anything, int64(1)).Return(nil)

	require.NoError(t, productService.DeleteProduct(context.Background(), 1))
	cacheRepo.AssertExpectations(t)
}
