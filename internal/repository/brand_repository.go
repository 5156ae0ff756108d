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

type BrandRepository struct {
	*config.Database
}

func NewBrandRepository(database *config.Database) *BrandRepository {
	return &BrandRepository{database}
}

// FindByID : ищет бренд по id
func (r *BrandRepository) FindByID(ctx context.Context, brandID int64) (*model.Brand, error) {
	query := `
	SELECT id, name, description, logo_url, public_id, website, country, is_active, created_at, updated_at, deleted_at
	FROM brands
	WHERE id = $1 AND deleted_at IS NULL
	`

	var brand model.Brand
	err := r.DB.GetContext(ctx, &brand, query, brandID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("бренд не найден")
		}
		return nil, util.LogError("[BrandRepo] не удалось найти бренд", err)
	}
	return &brand, nil
}

// List : постраничный список брендов
func (r *BrandRepository) List(ctx context.Context, page, limit int) ([]model.Brand, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	var total int
	if err := r.DB.GetContext(ctx, &total, `SELECT COUNT(*) FROM brands WHERE deleted_at IS NULL`); err != nil {
		return nil, 0, util.LogError("[BrandRepo] не удалось посчитать бренды", err)
	}

	query := `
	SELECT id, name, description, logo_url, public_id, website, country, is_active, created_at, updated_at, deleted_at
	FROM brands
	WHERE deleted_at IS NULL
	ORDER BY created_at DESC, id DESC
	LIMIT $1 OFFSET $2
	`

	brands := []model.Brand{}
	if err := r.DB.SelectContext(ctx, &brands, query, limit, (page-1)*limit); err != nil {
		return nil, 0, util.LogError("[BrandRepo] не удалось получить список брендов", err)
	}

	return brands, total, nil
}

// Search : поиск брендов по имени или стране
func (r *BrandRepository) Search(ctx context.Context, name string, page, limit int) ([]model.Brand, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	pattern := "%" + name + "%"

	var total int
	if err := r.DB.GetContext(ctx, &total, `SELECT COUNT(*) FROM brands WHERE (name ILIKE $1 OR country ILIKE $1) AND deleted_at IS NULL`, pattern); err != nil {
		return nil, 0, util.LogError("[BrandRepo] не удалось посчитать бренды", err)
	}

	query := `
	SELECT id, name, description, logo_url, public_id, website, country, is_active, created_at, updated_at, deleted_at
	FROM brands
	WHERE (name ILIKE $1 OR country ILIKE $1) AND deleted_at IS NULL
	ORDER BY created_at DESC, id DESC
	LIMIT $2 OFFSET $3
	`

	brands := []model.Brand{}
	if err := r.DB.SelectContext(ctx, &brands, query, pattern, limit, (page-1)*limit); err != nil {
		return nil, 0, util.LogError("[BrandRepo] не удалось выполнить поиск брендов", err)
	}

	return brands, total, nil
}

// Create : сохраняет новый бренд
func (r *BrandRepository) Create(ctx context.Context, brand *model.Brand) (*model.Brand, error) {
	query := `
	INSERT INTO brands (name, description, logo_url, public_id, website, country, is_active)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING id, name, description, logo_url, public_id, website, country, is_active, created_at, updated_at, deleted_at
	`

	created := &model.Brand{}
	err := r.DB.QueryRowxContext(ctx, query,
		brand.Name,
		brand.Description,
		brand.LogoURL,
		brand.PublicID,
		brand.Website,
		brand.Country,
		brand.IsActive,
	).StructScan(created)

	if err != nil {
		return nil, util.LogError("[BrandRepo] ошибка вставки данных в БД", err)
	}

	return created, nil
}

// Update : обновляет поля бренда, включая ссылку на логотип
func (r *BrandRepository) Update(ctx context.Context, brand *model.Brand) error {
	query := `
	UPDATE brands
	SET name = $2, description = $3, logo_url = $4, public_id = $5, website = $6, country = $7, updated_at = NOW()
	WHERE id = $1 AND deleted_at IS NULL
	`
	result, err := r.DB.ExecContext(ctx, query,
		brand.ID,
		brand.Name,
		brand.Description,
		brand.LogoURL,
		brand.PublicID,
		brand.Website,
		brand.Country,
	)
	if err != nil {
		return util.LogError("[BrandRepo] не удалось обновить бренд", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[BrandRepo] не удалось проверить, обновлён ли бренд", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("бренд не найден")
	}

	return nil
}

// SoftDelete : помечает бренд удалённым
func (r *BrandRepository) SoftDelete(ctx context.Context, brandID int64) error {
	query := `UPDATE brands SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.DB.ExecContext(ctx, query, brandID)
	if err != nil {
		return util.LogError("[BrandRepo] не удалось удалить бренд", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[BrandRepo] не удалось проверить, удалён ли бренд", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("бренд не найден")
	}

	return nil
}
