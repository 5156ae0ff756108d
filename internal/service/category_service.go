package service

import (
	"context"

	"collecto-backend/internal/apperror"
	"collecto-backend/internal/model"
	"collecto-backend/internal/ports"
)

type CategoryService struct {
	categoryRepository ports.CategoryRepository
}

func NewCategoryService(categoryRepository ports.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepository}
}

func (s *CategoryService) GetCategory(ctx context.Context, categoryID int64) (*model.Category, error) {
	return s.categoryRepository.FindByID(ctx, categoryID)
}

// ListCategories : список категорий; непустое имя переключает на поиск
func (s *CategoryService) ListCategories(ctx context.Context, name string, page, limit int) ([]model.Category, int, error) {
	if name != "" {
		return s.categoryRepository.Search(ctx, name, page, limit)
	}
	return s.categoryRepository.List(ctx, page, limit)
}

func (s *CategoryService) CreateCategory(ctx context.Context, category *model.Category) (*model.Category, error) {
	if category.Name == "" {
		return nil, apperror.BadRequest("имя категории обязательно")
	}
	category.IsActive = true
	return s.categoryRepository.Create(ctx, category)
}

// UpdateCategory обновляет категорию. Запрос, совпадающий
// с текущими данными, отклоняется
func (s *CategoryService) UpdateCategory(ctx context.Context, category *model.Category) (*model.Category, error) {
	if category.Name == "" {
		return nil, apperror.BadRequest("имя категории обязательно")
	}

	existing, err := s.categoryRepository.FindByID(ctx, category.ID)
	if err != nil {
		return nil, err
	}
	if category.Name == existing.Name && category.Description == existing.Description {
		return nil, apperror.BadRequest("данные не отличаются от текущих")
	}

	if err := s.categoryRepository.Update(ctx, category); err != nil {
		return nil, err
	}
	return s.categoryRepository.FindByID(ctx, category.ID)
}

func (s *CategoryService) ToggleCategoryActive(ctx context.Context, categoryID int64) (*model.Category, error) {
	return s.categoryRepository.ToggleActive(ctx, categoryID)
}

func (s *CategoryService) DeleteCategory(ctx context.Context, categoryID int64) error {
	return s.categoryRepository.SoftDelete(ctx, categoryID)
}
