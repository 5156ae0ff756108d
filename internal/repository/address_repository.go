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

type AddressRepository struct {
	*config.Database
}

func NewAddressRepository(database *config.Database) *AddressRepository {
	return &AddressRepository{database}
}

// FindByID : ищет адрес по id, мягко удалённые не возвращаются
func (r *AddressRepository) FindByID(ctx context.Context, addressID int64) (*model.Address, error) {
	query := `
	SELECT id, user_id, recipient_name, recipient_phone, address, province, ward, is_default, created_at, updated_at, deleted_at
	FROM addresses
	WHERE id = $1 AND deleted_at IS NULL
	`

	var address model.Address
	err := r.DB.GetContext(ctx, &address, query, addressID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("адрес не найден")
		}
		return nil, util.LogError("[AddressRepo] не удалось найти адрес", err)
	}
	return &address, nil
}

// ListByUserID : адреса пользователя, дефолтный первым
func (r *AddressRepository) ListByUserID(ctx context.Context, userID int64, page, limit int) ([]model.Address, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 5
	}

	var total int
	err := r.DB.GetContext(ctx, &total, `SELECT COUNT(*) FROM addresses WHERE user_id = $1 AND deleted_at IS NULL`, userID)
	if err != nil {
		return nil, 0, util.LogError("[AddressRepo] не удалось посчитать адреса", err)
	}

	query := `
	SELECT id, user_id, recipient_name, recipient_phone, address, province, ward, is_default, created_at, updated_at, deleted_at
	FROM addresses
	WHERE user_id = $1 AND deleted_at IS NULL
	ORDER BY is_default DESC, created_at DESC
	LIMIT $2 OFFSET $3
	`

	addresses := []model.Address{}
	err = r.DB.SelectContext(ctx, &addresses, query, userID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, util.LogError("[AddressRepo] не удалось получить список адресов", err)
	}

	return addresses, total, nil
}

// CountByUserID : количество живых адресов пользователя
func (r *AddressRepository) CountByUserID(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.DB.GetContext(ctx, &count, `SELECT COUNT(*) FROM addresses WHERE user_id = $1 AND deleted_at IS NULL`, userID)
	if err != nil {
		return 0, util.LogError("[AddressRepo] не удалось посчитать адреса", err)
	}
	return count, nil
}

// Create : сохраняет новый адрес
func (r *AddressRepository) Create(ctx context.Context, address *model.Address) (*model.Address, error) {
	query := `
	INSERT INTO addresses (user_id, recipient_name, recipient_phone, address, province, ward, is_default)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING id, user_id, recipient_name, recipient_phone, address, province, ward, is_default, created_at, updated_at, deleted_at
	`

	created := &model.Address{}
	err := r.DB.QueryRowxContext(ctx, query,
		address.UserID,
		address.RecipientName,
		address.RecipientPhone,
		address.Address,
		address.Province,
		address.Ward,
		address.IsDefault,
	).StructScan(created)

	if err != nil {
		return nil, util.LogError("[AddressRepo] ошибка вставки данных в БД", err)
	}

	return created, nil
}

// Update : обновляет поля адреса. Флаг is_default этим методом не трогается
func (r *AddressRepository) Update(ctx context.Context, address *model.Address) error {
	query := `
	UPDATE addresses
	SET recipient_name = $2, recipient_phone = $3, address = $4, province = $5, ward = $6, updated_at = NOW()
	WHERE id = $1 AND deleted_at IS NULL
	`
	result, err := r.DB.ExecContext(ctx, query,
		address.ID,
		address.RecipientName,
		address.RecipientPhone,
		address.Address,
		address.Province,
		address.Ward,
	)
	if err != nil {
		return util.LogError("[AddressRepo] не удалось обновить адрес", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[AddressRepo] не удалось проверить, обновлён ли адрес", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("адрес не найден")
	}

	return nil
}

// SoftDelete : помечает адрес удалённым, строка физически остаётся
func (r *AddressRepository) SoftDelete(ctx context.Context, addressID int64) error {
	query := `UPDATE addresses SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.DB.ExecContext(ctx, query, addressID)
	if err != nil {
		return util.LogError("[AddressRepo] не удалось удалить адрес", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[AddressRepo] не удалось проверить, удалён ли адрес", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("адрес не найден")
	}

	return nil
}

// SetDefault атомарно переносит флаг is_default на указанный адрес.
// Строки пользователя блокируются на время транзакции, чтобы два
// конкурентных запроса не оставили ни одного или два дефолтных адреса
func (r *AddressRepository) SetDefault(ctx context.Context, userID, addressID int64) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return util.LogError("[AddressRepo] не удалось начать транзакцию", err)
	}
	defer tx.Rollback()

	// блокировка всех живых адресов пользователя
	var lockedIDs []int64
	err = tx.SelectContext(ctx, &lockedIDs, `SELECT id FROM addresses WHERE user_id = $1 AND deleted_at IS NULL FOR UPDATE`, userID)
	if err != nil {
		return util.LogError("[AddressRepo] не удалось заблокировать адреса", err)
	}

	_, err = tx.ExecContext(ctx, `UPDATE addresses SET is_default = FALSE, updated_at = NOW() WHERE user_id = $1 AND is_default = TRUE AND deleted_at IS NULL`, userID)
	if err != nil {
		return util.LogError("[AddressRepo] не удалось снять старый дефолтный адрес", err)
	}

	result, err := tx.ExecContext(ctx, `UPDATE addresses SET is_default = TRUE, updated_at = NOW() WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL`, addressID, userID)
	if err != nil {
		return util.LogError("[AddressRepo] не удалось установить новый дефолтный адрес", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[AddressRepo] не удалось проверить смену дефолтного адреса", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("адрес не найден")
	}

	if err := tx.Commit(); err != nil {
		return util.LogError("[AddressRepo] не удалось закоммитить транзакцию", err)
	}

	return nil
}
