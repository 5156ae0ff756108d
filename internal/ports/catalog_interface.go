package ports

import (
	"context"
	"mime/multipart"

	"collecto-backend/internal/model"
)

type CategoryRepository interface {
	FindByID(ctx context.Context, categoryID int64) (*model.Category, error)
	List(ctx context.Context, page, limit int) ([]model.Category, int, error)
	Search(ctx context.Context, name string, page, limit int) ([]model.Category, int, error)
	Create(ctx context.Context, category *model.Category) (*model.Category, error)
	Update(ctx context.Context, category *model.Category) error
	ToggleActive(ctx context.Context, categoryID int64) (*model.Category, error)
	SoftDelete(ctx context.Context, categoryID int64) error
}

type CategoryService interface {
	GetCategory(ctx context.Context, categoryID int64) (*model.Category, error)
	ListCategories(ctx context.Context, name string, page, limit int) ([]model.Category, int, error)
	CreateCategory(ctx context.Context, category *model.Category) (*model.Category, error)
	UpdateCategory(ctx context.Context, category *model.Category) (*model.Category, error)
	ToggleCategoryActive(ctx context.Context, categoryID int64) (*model.Category, error)
	DeleteCategory(ctx context.Context, categoryID int64) error
}

type BrandRepository interface {
	FindByID(ctx context.Context, brandID int64) (*model.Brand, error)
	List(ctx context.Context, page, limit int) ([]model.Brand, int, error)
	Search(ctx context.Context, name string, page, limit int) ([]model.Brand, int, error)
	Create(ctx context.Context, brand *model.Brand) (*model.Brand, error)
	Update(ctx context.Context, brand *model.Brand) error
	SoftDelete(ctx context.Context, brandID int64) error
}

type BrandService interface {
	GetBrand(ctx context.Context, brandID int64) (*model.Brand, error)
	ListBrands(ctx context.Context, name string, page, limit int) ([]model.Brand, int, error)
	CreateBrand(ctx context.Context, brand *model.Brand, logo multipart.File, logoHeader *multipart.FileHeader) (*model.Brand, error)
	UpdateBrand(ctx context.Context, brand *model.Brand, logo multipart.File, logoHeader *multipart.FileHeader) (*model.Brand, error)
	DeleteBrand(ctx context.Context, brandID int64) error
}

type ProductRepository interface {
	FindByID(ctx context.Context, productID int64) (*model.Product, error)
	List(ctx context.Context, page, limit int) ([]model.Product, int, error)
	Search(ctx context.Context, name string, categoryID, brandID int64, page, limit int) ([]model.Product, int, error)
	Create(ctx context.Context, product *model.Product, images []model.ProductImage) (*model.Product, error)
	Update(ctx context.Context, product *model.Product, deleteImageIDs []int64, newImages []model.ProductImage) error
	ToggleActive(ctx context.Context, productID int64) (*model.Product, error)
	SoftDelete(ctx context.Context, productID int64) error
	FindImagesByIDs(ctx context.Context, imageIDs []int64) ([]model.ProductImage, error)
	SetPrimaryImage(ctx context.Context, productID, imageID int64) error
}

type ProductService interface {
	GetProduct(ctx context.Context, productID int64) (*model.Product, error)
	ListProducts(ctx context.Context, name string, categoryID, brandID int64, page, limit int) ([]model.Product, int, error)
	CreateProduct(ctx context.Context, product *model.Product, images []*multipart.FileHeader) (*model.Product, error)
	UpdateProduct(ctx context.Context, product *model.Product, deleteImageIDs []int64, newImages []*multipart.FileHeader) (*model.Product, error)
	ToggleProductActive(ctx context.Context, productID int64) (*model.Product, error)
	DeleteProduct(ctx context.Context, productID int64) error
	SetPrimaryImage(ctx context.Context, productID, imageID int64) error
}
