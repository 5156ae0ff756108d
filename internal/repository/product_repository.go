package repository

import (
	"context"
	"database/sql"
	"errors"

	"collecto-backend/config"
	"collecto-backend/internal/apperror"
	"collecto-backend/internal/model"
	"collecto-backend/internal/util"

	"github.com/jmoiron/sqlx"
)

type ProductRepository struct {
	*config.Database
}

func NewProductRepository(database *config.Database) *ProductRepository {
	return &ProductRepository{database}
}

const productColumns = `id, sku, name, description, details, category_id, brand_id, scale, difficulty_level,
	material, weight, dimensions, age_rating, original_price, selling_price, is_active, created_at, updated_at, deleted_at`

// FindByID : продукт вместе с его картинками
func (r *ProductRepository) FindByID(ctx context.Context, productID int64) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 AND deleted_at IS NULL`

	var product model.Product
	err := r.DB.GetContext(ctx, &product, query, productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("продукт не найден")
		}
		return nil, util.LogError("[ProductRepo] не удалось найти продукт", err)
	}

	images, err := r.listImages(ctx, r.DB, productID)
	if err != nil {
		return nil, err
	}
	product.Images = images

	return &product, nil
}

// List : постраничный список продуктов без картинок
func (r *ProductRepository) List(ctx context.Context, page, limit int) ([]model.Product, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	var total int
	if err := r.DB.GetContext(ctx, &total, `SELECT COUNT(*) FROM products WHERE deleted_at IS NULL`); err != nil {
		return nil, 0, util.LogError("[ProductRepo] не удалось посчитать продукты", err)
	}

	query := `SELECT ` + productColumns + `
	FROM products
	WHERE deleted_at IS NULL
	ORDER BY created_at DESC, id DESC
	LIMIT $1 OFFSET $2`

	products := []model.Product{}
	if err := r.DB.SelectContext(ctx, &products, query, limit, (page-1)*limit); err != nil {
		return nil, 0, util.LogError("[ProductRepo] не удалось получить список продуктов", err)
	}

	return products, total, nil
}

// Search : поиск по имени/SKU с необязательными фильтрами категории и бренда
func (r *ProductRepository) Search(ctx context.Context, name string, categoryID, brandID int64, page, limit int) ([]model.Product, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	where := ` WHERE deleted_at IS NULL`
	args := []interface{}{}

	if name != "" {
		args = append(args, "%"+name+"%")
		where += ` AND (name ILIKE ? OR sku ILIKE ?)`
		args = append(args, "%"+name+"%")
	}
	if categoryID > 0 {
		args = append(args, categoryID)
		where += ` AND category_id = ?`
	}
	if brandID > 0 {
		args = append(args, brandID)
		where += ` AND brand_id = ?`
	}

	countQuery := r.DB.Rebind(`SELECT COUNT(*) FROM products` + where)
	var total int
	if err := r.DB.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, util.LogError("[ProductRepo] не удалось посчитать продукты", err)
	}

	args = append(args, limit, (page-1)*limit)
	query := r.DB.Rebind(`SELECT ` + productColumns + ` FROM products` + where + ` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`)

	products := []model.Product{}
	if err := r.DB.SelectContext(ctx, &products, query, args...); err != nil {
		return nil, 0, util.LogError("[ProductRepo] не удалось выполнить поиск продуктов", err)
	}

	return products, total, nil
}

// Create сохраняет продукт вместе с картинками в одной транзакции:
// либо появляется всё, либо ничего
func (r *ProductRepository) Create(ctx context.Context, product *model.Product, images []model.ProductImage) (*model.Product, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, util.LogError("[ProductRepo] не удалось начать транзакцию", err)
	}
	defer tx.Rollback()

	query := `
	INSERT INTO products (sku, name, description, details, category_id, brand_id, scale, difficulty_level,
		material, weight, dimensions, age_rating, original_price, selling_price, is_active)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	RETURNING ` + productColumns

	created := &model.Product{}
	err = tx.QueryRowxContext(ctx, query,
		product.SKU,
		product.Name,
		product.Description,
		product.Details,
		product.CategoryID,
		product.BrandID,
		product.Scale,
		product.DifficultyLevel,
		product.Material,
		product.Weight,
		product.Dimensions,
		product.AgeRating,
		product.OriginalPrice,
		product.SellingPrice,
		product.IsActive,
	).StructScan(created)
	if err != nil {
		return nil, util.LogError("[ProductRepo] ошибка вставки продукта в БД", err)
	}

	for i := range images {
		images[i].ProductID = created.ID
		if err := insertImage(ctx, tx, &images[i]); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, util.LogError("[ProductRepo] не удалось закоммитить транзакцию", err)
	}

	created.Images = images
	return created, nil
}

// Update обновляет продукт, удаляет перечисленные картинки и добавляет новые
// одной транзакцией
func (r *ProductRepository) Update(ctx context.Context, product *model.Product, deleteImageIDs []int64, newImages []model.ProductImage) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return util.LogError("[ProductRepo] не удалось начать транзакцию", err)
	}
	defer tx.Rollback()

	query := `
	UPDATE products
	SET sku = $2, name = $3, description = $4, details = $5, category_id = $6, brand_id = $7, scale = $8,
		difficulty_level = $9, material = $10, weight = $11, dimensions = $12, age_rating = $13,
		original_price = $14, selling_price = $15, updated_at = NOW()
	WHERE id = $1 AND deleted_at IS NULL
	`
	result, err := tx.ExecContext(ctx, query,
		product.ID,
		product.SKU,
		product.Name,
		product.Description,
		product.Details,
		product.CategoryID,
		product.BrandID,
		product.Scale,
		product.DifficultyLevel,
		product.Material,
		product.Weight,
		product.Dimensions,
		product.AgeRating,
		product.OriginalPrice,
		product.SellingPrice,
	)
	if err != nil {
		return util.LogError("[ProductRepo] не удалось обновить продукт", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[ProductRepo] не удалось проверить, обновлён ли продукт", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("продукт не найден")
	}

	if len(deleteImageIDs) > 0 {
		deleteQuery, args, err := sqlx.In(`DELETE FROM product_images WHERE product_id = ? AND id IN (?)`, product.ID, deleteImageIDs)
		if err != nil {
			return util.LogError("[ProductRepo] не удалось собрать запрос удаления картинок", err)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(deleteQuery), args...); err != nil {
			return util.LogError("[ProductRepo] не удалось удалить картинки продукта", err)
		}
	}

	for i := range newImages {
		newImages[i].ProductID = product.ID
		if err := insertImage(ctx, tx, &newImages[i]); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return util.LogError("[ProductRepo] не удалось закоммитить транзакцию", err)
	}

	return nil
}

// ToggleActive : переключает флаг is_active продукта
func (r *ProductRepository) ToggleActive(ctx context.Context, productID int64) (*model.Product, error) {
	query := `
	UPDATE products
	SET is_active = NOT is_active, updated_at = NOW()
	WHERE id = $1 AND deleted_at IS NULL
	RETURNING ` + productColumns

	updated := &model.Product{}
	err := r.DB.QueryRowxContext(ctx, query, productID).StructScan(updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("продукт не найден")
		}
		return nil, util.LogError("[ProductRepo] не удалось переключить статус продукта", err)
	}

	return updated, nil
}

// SoftDelete : помечает продукт удалённым
func (r *ProductRepository) SoftDelete(ctx context.Context, productID int64) error {
	query := `UPDATE products SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.DB.ExecContext(ctx, query, productID)
	if err != nil {
		return util.LogError("[ProductRepo] не удалось удалить продукт", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[ProductRepo] не удалось проверить, удалён ли продукт", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("продукт не найден")
	}

	return nil
}

// FindImagesByIDs : картинки по списку id (для удаления из внешнего хранилища)
func (r *ProductRepository) FindImagesByIDs(ctx context.Context, imageIDs []int64) ([]model.ProductImage, error) {
	if len(imageIDs) == 0 {
		return []model.ProductImage{}, nil
	}

	query, args, err := sqlx.In(`
	SELECT id, product_id, image_url, public_id, is_primary, sort_order, created_at
	FROM product_images
	WHERE id IN (?)`, imageIDs)
	if err != nil {
		return nil, util.LogError("[ProductRepo] не удалось собрать запрос по картинкам", err)
	}

	images := []model.ProductImage{}
	if err := r.DB.SelectContext(ctx, &images, r.DB.Rebind(query), args...); err != nil {
		return nil, util.LogError("[ProductRepo] не удалось получить картинки", err)
	}

	return images, nil
}

// SetPrimaryImage атомарно переносит флаг is_primary на указанную картинку.
// Та же схема clear-then-set, что и у дефолтного адреса
func (r *ProductRepository) SetPrimaryImage(ctx context.Context, productID, imageID int64) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return util.LogError("[ProductRepo] не удалось начать транзакцию", err)
	}
	defer tx.Rollback()

	var lockedIDs []int64
	err = tx.SelectContext(ctx, &lockedIDs, `SELECT id FROM product_images WHERE product_id = $1 FOR UPDATE`, productID)
	if err != nil {
		return util.LogError("[ProductRepo] не удалось заблокировать картинки продукта", err)
	}

	_, err = tx.ExecContext(ctx, `UPDATE product_images SET is_primary = FALSE WHERE product_id = $1 AND is_primary = TRUE`, productID)
	if err != nil {
		return util.LogError("[ProductRepo] не удалось снять старую основную картинку", err)
	}

	result, err := tx.ExecContext(ctx, `UPDATE product_images SET is_primary = TRUE WHERE id = $1 AND product_id = $2`, imageID, productID)
	if err != nil {
		return util.LogError("[ProductRepo] не удалось установить основную картинку", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[ProductRepo] не удалось проверить смену основной картинки", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("картинка продукта не найдена")
	}

	if err := tx.Commit(); err != nil {
		return util.LogError("[ProductRepo] не удалось закоммитить транзакцию", err)
	}

	return nil
}

func (r *ProductRepository) listImages(ctx context.Context, exec sqlx.ExtContext, productID int64) ([]model.ProductImage, error) {
	query := `
	SELECT id, product_id, image_url, public_id, is_primary, sort_order, created_at
	FROM product_images
	WHERE product_id = $1
	ORDER BY sort_order ASC, id ASC
	`

	images := []model.ProductImage{}
	if err := sqlx.SelectContext(ctx, exec, &images, query, productID); err != nil {
		return nil, util.LogError("[ProductRepo] не удалось получить картинки продукта", err)
	}
	return images, nil
}

func insertImage(ctx context.Context, exec sqlx.ExtContext, image *model.ProductImage) error {
	query := `
	INSERT INTO product_images (product_id, image_url, public_id, is_primary, sort_order)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id, created_at
	`
	err := exec.QueryRowxContext(ctx, query,
		image.ProductID,
		image.ImageURL,
		image.PublicID,
		image.IsPrimary,
		image.SortOrder,
	).Scan(&image.ID, &image.CreatedAt)

	if err != nil {
		return util.LogError("[ProductRepo] ошибка вставки картинки в БД", err)
	}
	return nil
}
