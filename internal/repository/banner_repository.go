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

type BannerRepository struct {
	*config.Database
}

func NewBannerRepository(database *config.Database) *BannerRepository {
	return &BannerRepository{database}
}

const bannerColumns = `id, title, description, image_url, public_id, redirect_link, display_order,
	start_date, end_date, is_active, created_at, updated_at, deleted_at`

// FindByID : ищет баннер по id
func (r *BannerRepository) FindByID(ctx context.Context, bannerID int64) (*model.Banner, error) {
	query := `SELECT ` + bannerColumns + ` FROM banners WHERE id = $1 AND deleted_at IS NULL`

	var banner model.Banner
	err := r.DB.GetContext(ctx, &banner, query, bannerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("баннер не найден")
		}
		return nil, util.LogError("[BannerRepo] не удалось найти баннер", err)
	}
	return &banner, nil
}

// List : постраничный список баннеров, сортировка по display_order
func (r *BannerRepository) List(ctx context.Context, page, limit int) ([]model.Banner, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	var total int
	if err := r.DB.GetContext(ctx, &total, `SELECT COUNT(*) FROM banners WHERE deleted_at IS NULL`); err != nil {
		return nil, 0, util.LogError("[BannerRepo] не удалось посчитать баннеры", err)
	}

	query := `SELECT ` + bannerColumns + `
	FROM banners
	WHERE deleted_at IS NULL
	ORDER BY display_order ASC NULLS LAST, created_at DESC
	LIMIT $1 OFFSET $2`

	banners := []model.Banner{}
	if err := r.DB.SelectContext(ctx, &banners, query, limit, (page-1)*limit); err != nil {
		return nil, 0, util.LogError("[BannerRepo] не удалось получить список баннеров", err)
	}

	return banners, total, nil
}

// ListActive : баннеры, которые сейчас показываются на витрине:
// активные, стартовавшие и не истёкшие
func (r *BannerRepository) ListActive(ctx context.Context) ([]model.Banner, error) {
	query := `SELECT ` + bannerColumns + `
	FROM banners
	WHERE is_active = TRUE
		AND deleted_at IS NULL
		AND start_date <= NOW()
		AND (end_date IS NULL OR end_date >= NOW())
	ORDER BY display_order ASC NULLS LAST, created_at DESC`

	banners := []model.Banner{}
	if err := r.DB.SelectContext(ctx, &banners, query); err != nil {
		return nil, util.LogError("[BannerRepo] не удалось получить активные баннеры", err)
	}

	return banners, nil
}

// Search : поиск баннеров по заголовку
func (r *BannerRepository) Search(ctx context.Context, title string, page, limit int) ([]model.Banner, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	pattern := "%" + title + "%"

	var total int
	if err := r.DB.GetContext(ctx, &total, `SELECT COUNT(*) FROM banners WHERE title ILIKE $1 AND deleted_at IS NULL`, pattern); err != nil {
		return nil, 0, util.LogError("[BannerRepo] не удалось посчитать баннеры", err)
	}

	query := `SELECT ` + bannerColumns + `
	FROM banners
	WHERE title ILIKE $1 AND deleted_at IS NULL
	ORDER BY display_order ASC NULLS LAST, created_at DESC
	LIMIT $2 OFFSET $3`

	banners := []model.Banner{}
	if err := r.DB.SelectContext(ctx, &banners, query, pattern, limit, (page-1)*limit); err != nil {
		return nil, 0, util.LogError("[BannerRepo] не удалось выполнить поиск баннеров", err)
	}

	return banners, total, nil
}

// Create : сохраняет новый баннер
func (r *BannerRepository) Create(ctx context.Context, banner *model.Banner) (*model.Banner, error) {
	query := `
	INSERT INTO banners (title, description, image_url, public_id, redirect_link, display_order, start_date, end_date, is_active)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING ` + bannerColumns

	created := &model.Banner{}
	err := r.DB.QueryRowxContext(ctx, query,
		banner.Title,
		banner.Description,
		banner.ImageURL,
		banner.PublicID,
		banner.RedirectLink,
		banner.DisplayOrder,
		banner.StartDate,
		banner.EndDate,
		banner.IsActive,
	).StructScan(created)

	if err != nil {
		return nil, util.LogError("[BannerRepo] ошибка вставки данных в БД", err)
	}

	return created, nil
}

// Update : обновляет поля баннера, включая ссылку на картинку
func (r *BannerRepository) Update(ctx context.Context, banner *model.Banner) error {
	query := `
	UPDATE banners
	SET title = $2, description = $3, image_url = $4, public_id = $5, redirect_link = $6,
		display_order = $7, start_date = $8, end_date = $9, updated_at = NOW()
	WHERE id = $1 AND deleted_at IS NULL
	`
	result, err := r.DB.ExecContext(ctx, query,
		banner.ID,
		banner.Title,
		banner.Description,
		banner.ImageURL,
		banner.PublicID,
		banner.RedirectLink,
		banner.DisplayOrder,
		banner.StartDate,
		banner.EndDate,
	)
	if err != nil {
		return util.LogError("[BannerRepo] не удалось обновить баннер", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[BannerRepo] не удалось проверить, обновлён ли баннер", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("баннер не найден")
	}

	return nil
}

// ToggleActive : переключает флаг is_active баннера
func (r *BannerRepository) ToggleActive(ctx context.Context, bannerID int64) (*model.Banner, error) {
	query := `
	UPDATE banners
	SET is_active = NOT is_active, updated_at = NOW()
	WHERE id = $1 AND deleted_at IS NULL
	RETURNING ` + bannerColumns

	updated := &model.Banner{}
	err := r.DB.QueryRowxContext(ctx, query, bannerID).StructScan(updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("баннер не найден")
		}
		return nil, util.LogError("[BannerRepo] не удалось переключить статус баннера", err)
	}

	return updated, nil
}

// SoftDelete : помечает баннер удалённым
func (r *BannerRepository) SoftDelete(ctx context.Context, bannerID int64) error {
	query := `UPDATE banners SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.DB.ExecContext(ctx, query, bannerID)
	if err != nil {
		return util.LogError("[BannerRepo] не удалось удалить баннер", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[BannerRepo] не удалось проверить, удалён ли баннер", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("баннер не найден")
	}

	return nil
}
