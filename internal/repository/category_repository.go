package repository

import (
	"context"
	"database/sql"
	"errors"

	"collecto-backend/config"
	"collecto-backend/internal/apperror"
	"collecto-backend/internal/model"
	"collecto-backend/internal/util"
)

type CategoryRepository struct {
	*config.Database
}

func NewCategoryRepository(database *config.Database) *CategoryRepository {
	return &CategoryRepository{database}
}

// FindByID : ищет категорию по id
func (r *CategoryRepository) FindByID(ctx context.Context, categoryID int64) (*model.Category, error) {
	query := `
	SELECT id, name, description, is_active, created_at, updated_at, deleted_at
	FROM categories
	WHERE id = $1 AND deleted_at IS NULL
	`

	var category model.Category
	err := r.DB.GetContext(ctx, &category, query, categoryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("категория не найдена")
		}
		return nil, util.LogError("[CategoryRepo] не удалось найти категорию", err)
	}
	return &category, nil
}

// List : постраничный список категорий
func (r *CategoryRepository) List(ctx context.Context, page, limit int) ([]model.Category, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	var total int
	if err := r.DB.GetContext(ctx, &total, `SELECT COUNT(*) FROM categories WHERE deleted_at IS NULL`); err != nil {
		return nil, 0, util.LogError("[CategoryRepo] не удалось посчитать категории", err)
	}

	query := `
	SELECT id, name, description, is_active, created_at, updated_at, deleted_at
	FROM categories
	WHERE deleted_at IS NULL
	ORDER BY created_at DESC, id DESC
	LIMIT $1 OFFSET $2
	`

	categories := []model.Category{}
	if err := r.DB.SelectContext(ctx, &categories, query, limit, (page-1)*limit); err != nil {
		return nil, 0, util.LogError("[CategoryRepo] не удалось получить список категорий", err)
	}

	return categories, total, nil
}

// Search : поиск категорий по имени (ILIKE)
func (r *CategoryRepository) Search(ctx context.Context, name string, page, limit int) ([]model.Category, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	pattern := "%" + name + "%"

	var total int
	if err := r.DB.GetContext(ctx, &total, `SELECT COUNT(*) FROM categories WHERE name ILIKE $1 AND deleted_at IS NULL`, pattern); err != nil {
		return nil, 0, util.LogError("[CategoryRepo] не удалось посчитать категории", err)
	}

	query := `
	SELECT id, name, description, is_active, created_at, updated_at, deleted_at
	FROM categories
	WHERE name ILIKE $1 AND deleted_at IS NULL
	ORDER BY created_at DESC, id DESC
	LIMIT $2 OFFSET $3
	`

	categories := []model.Category{}
	if err := r.DB.SelectContext(ctx, &categories, query, pattern, limit, (page-1)*limit); err != nil {
		return nil, 0, util.LogError("[CategoryRepo] не удалось выполнить поиск категорий", err)
	}

	return categories, total, nil
}

// Create : сохраняет новую категорию
func (r *CategoryRepository) Create(ctx context.Context, category *model.Category) (*model.Category, error) {
	query := `
	INSERT INTO categories (name, description, is_active)
	VALUES ($1, $2, $3)
	RETURNING id, name, description, is_active, created_at, updated_at, deleted_at
	`

	created := &model.Category{}
	err := r.DB.QueryRowxContext(ctx, query, category.Name, category.Description, category.IsActive).StructScan(created)
	if err != nil {
		return nil, util.LogError("[CategoryRepo] ошибка вставки данных в БД", err)
	}

	return created, nil
}

// Update : обновляет поля категории
func (r *CategoryRepository) Update(ctx context.Context, category *model.Category) error {
	query := `
	UPDATE categories
	SET name = $2, description = $3, updated_at = NOW()
	WHERE id = $1 AND deleted_at IS NULL
	`
	result, err := r.DB.ExecContext(ctx, query, category.ID, category.Name, category.Description)
	if err != nil {
		return util.LogError("[CategoryRepo] не удалось обновить категорию", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[CategoryRepo] не удалось проверить, обновлена ли категория", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("категория не найдена")
	}

	return nil
}

// ToggleActive : переключает флаг is_active и возвращает свежую строку
func (r *CategoryRepository) ToggleActive(ctx context.Context, categoryID int64) (*model.Category, error) {
	query := `
	UPDATE categories
	SET is_active = NOT is_active, updated_at = NOW()
	WHERE id = $1 AND deleted_at IS NULL
	RETURNING id, name, description, is_active, created_at, updated_at, deleted_at
	`

	updated := &model.Category{}
	err := r.DB.QueryRowxContext(ctx, query, categoryID).StructScan(updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("категория не найдена")
		}
		return nil, util.LogError("[CategoryRepo] не удалось переключить статус категории", err)
	}

	return updated, nil
}

// SoftDelete : помечает категорию удалённой
func (r *CategoryRepository) SoftDelete(ctx context.Context, categoryID int64) error {
	query := `UPDATE categories SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.DB.ExecContext(ctx, query, categoryID)
	if err != nil {
		return util.LogError("[CategoryRepo] не удалось удалить категорию", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[CategoryRepo] не удалось проверить, удалена ли категория", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("категория не найдена")
	}

	return nil
}
