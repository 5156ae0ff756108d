package repository

import (
	"context"

	"collecto-backend/config"
	"collecto-backend/internal/apperror"
	"collecto-backend/internal/model"
	"collecto-backend/internal/util"

	"golang.org/x/crypto/bcrypt"
)

// TokenRepository хранит refresh токены в виде bcrypt-хэшей.
// Хэш с солью недетерминирован, поэтому прямой поиск по индексу невозможен:
// сырой токен сверяется перебором строк пользователя. Перебор ограничен
// политикой одной активной сессии — активных строк у пользователя почти нет
type TokenRepository struct {
	*config.Database
}

func NewTokenRepository(database *config.Database) *TokenRepository {
	return &TokenRepository{database}
}

// SaveRefreshToken сохраняет хэш refresh токена в базе данных
func (r *TokenRepository) SaveRefreshToken(ctx context.Context, refreshToken *model.RefreshToken) (*model.RefreshToken, error) {
	query := `
	INSERT INTO tokens (user_id, token_hash, is_revoked, expire_at)
	VALUES ($1, $2, $3, $4)
	RETURNING id, user_id, token_hash, is_revoked, created_at, expire_at
	`

	saved := &model.RefreshToken{}
	err := r.DB.QueryRowxContext(ctx, query,
		refreshToken.UserID,
		refreshToken.TokenHash,
		refreshToken.IsRevoked,
		refreshToken.ExpireAt,
	).StructScan(saved)

	if err != nil {
		return nil, util.LogError("[TokenRepo] ошибка вставки данных в БД", err)
	}

	return saved, nil
}

// FindByRawToken сверяет сырой токен со всеми строками пользователя,
// включая отозванные. Отозванная строка нужна, чтобы повторный logout
// распознавался как no-op, а не как неизвестный токен
func (r *TokenRepository) FindByRawToken(ctx context.Context, userID int64, rawToken string) (*model.RefreshToken, error) {
	query := `
	SELECT id, user_id, token_hash, is_revoked, created_at, expire_at
	FROM tokens
	WHERE user_id = $1
	ORDER BY created_at DESC
	`

	var tokens []model.RefreshToken
	if err := r.DB.SelectContext(ctx, &tokens, query, userID); err != nil {
		return nil, util.LogError("[TokenRepo] ошибка выборки токенов пользователя", err)
	}

	for i := range tokens {
		if bcrypt.CompareHashAndPassword([]byte(tokens[i].TokenHash), []byte(rawToken)) == nil {
			return &tokens[i], nil
		}
	}

	return nil, nil
}

// FindActiveByRawToken сверяет сырой токен только с неотозванными строками
func (r *TokenRepository) FindActiveByRawToken(ctx context.Context, userID int64, rawToken string) (*model.RefreshToken, error) {
	query := `
	SELECT id, user_id, token_hash, is_revoked, created_at, expire_at
	FROM tokens
	WHERE user_id = $1 AND is_revoked = FALSE
	ORDER BY created_at DESC
	`

	var tokens []model.RefreshToken
	if err := r.DB.SelectContext(ctx, &tokens, query, userID); err != nil {
		return nil, util.LogError("[TokenRepo] ошибка выборки активных токенов", err)
	}

	for i := range tokens {
		if bcrypt.CompareHashAndPassword([]byte(tokens[i].TokenHash), []byte(rawToken)) == nil {
			return &tokens[i], nil
		}
	}

	return nil, nil
}

// RevokeByID помечает токен отозванным. Отзыв — терминальное состояние
func (r *TokenRepository) RevokeByID(ctx context.Context, tokenID int64) error {
	query := `UPDATE tokens SET is_revoked = TRUE WHERE id = $1 AND is_revoked = FALSE`

	result, err := r.DB.ExecContext(ctx, query, tokenID)
	if err != nil {
		return util.LogError("[TokenRepo] не удалось отозвать токен", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[TokenRepo] не удалось проверить, отозван ли токен", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("токен для отзыва не найден")
	}

	return nil
}

// RevokeAllByUserID отзывает все активные токены пользователя одной транзакцией.
// Ноль активных строк — не ошибка, логин просто выпустит новую сессию
func (r *TokenRepository) RevokeAllByUserID(ctx context.Context, userID int64) (int64, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return 0, util.LogError("[TokenRepo] не удалось начать транзакцию", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `UPDATE tokens SET is_revoked = TRUE WHERE user_id = $1 AND is_revoked = FALSE`, userID)
	if err != nil {
		return 0, util.LogError("[TokenRepo] не удалось отозвать токены пользователя", err)
	}

	revoked, err := result.RowsAffected()
	if err != nil {
		return 0, util.LogError("[TokenRepo] не удалось посчитать отозванные токены", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, util.LogError("[TokenRepo] не удалось закоммитить транзакцию", err)
	}

	return revoked, nil
}
