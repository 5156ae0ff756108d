package repository

import (
	"context"
	"database/sql"
	"errors"

	"collecto-backend/config"
	"collecto-backend/internal/apperror"
	"collecto-backend/internal/model"
	"collecto-backend/internal/util"

	"github.com/lib/pq"
)

// код ошибки Postgres при нарушении уникального индекса
const pqUniqueViolation = "23505"

type UserRepository struct {
	*config.Database
}

func NewUserRepository(database *config.Database) *UserRepository {
	return &UserRepository{database}
}

// CreateUser : сохраняет нового пользователя
func (r *UserRepository) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	query := `
	INSERT INTO users (name, email, phone_number, date_of_birth, gender, password_hash, role, status)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING id, name, email, phone_number, date_of_birth, gender, password_hash, reward_points, role, status, created_at, updated_at, deleted_at
	`

	createdUser := &model.User{}
	err := r.DB.QueryRowxContext(ctx, query,
		user.Name,
		user.Email,
		user.PhoneNumber,
		user.DateOfBirth,
		user.Gender,
		user.PasswordHash,
		user.Role,
		user.Status,
	).StructScan(createdUser)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return nil, apperror.Conflict("пользователь с таким email уже существует")
		}
		return nil, util.LogError("[UserRepo] ошибка вставки данных в БД", err)
	}

	return createdUser, nil
}

// FindByID : ищет пользователя по id, удалённые не возвращаются
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	query := `
	SELECT id, name, email, phone_number, date_of_birth, gender, password_hash, reward_points, role, status, created_at, updated_at, deleted_at
	FROM users
	WHERE id = $1 AND deleted_at IS NULL
	`

	var user model.User
	err := r.DB.GetContext(ctx, &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("пользователь не найден")
		}
		return nil, util.LogError("[UserRepo] не удалось найти пользователя в БД", err)
	}
	return &user, nil
}

// FindByEmail : ищет пользователя по email
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `
	SELECT id, name, email, phone_number, date_of_birth, gender, password_hash, reward_points, role, status, created_at, updated_at, deleted_at
	FROM users
	WHERE email = $1 AND deleted_at IS NULL
	`

	var user model.User
	err := r.DB.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("пользователь с таким email не найден")
		}
		return nil, util.LogError("[UserRepo] не удалось найти пользователя по email", err)
	}
	return &user, nil
}

// ExistsByEmail : проверяет, занят ли email
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 AND deleted_at IS NULL)`
	err := r.DB.GetContext(ctx, &exists, query, email)
	if err != nil {
		return false, util.LogError("[UserRepo] ошибка проверки существования пользователя", err)
	}
	return exists, nil
}

// UpdateUser : обновляет профильные поля пользователя
func (r *UserRepository) UpdateUser(ctx context.Context, user *model.User) error {
	query := `
	UPDATE users
	SET name = $2, phone_number = $3, date_of_birth = $4, gender = $5, updated_at = NOW()
	WHERE id = $1 AND deleted_at IS NULL
	`
	result, err := r.DB.ExecContext(ctx, query, user.ID, user.Name, user.PhoneNumber, user.DateOfBirth, user.Gender)
	if err != nil {
		return util.LogError("[UserRepo] не удалось обновить пользователя", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[UserRepo] не удалось проверить, обновлён ли пользователь", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("пользователь не найден")
	}

	return nil
}

// UpdatePassword : меняет хэш пароля пользователя
func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, newPasswordHash string) error {
	query := `UPDATE users SET password_hash = $2, updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`
	result, err := r.DB.ExecContext(ctx, query, id, newPasswordHash)
	if err != nil {
		return util.LogError("[UserRepo] не удалось обновить пароль", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[UserRepo] не удалось проверить, обновлён ли пароль", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("пользователь не найден")
	}

	return nil
}

// ListUsers : постраничный список пользователей
func (r *UserRepository) ListUsers(ctx context.Context, page, limit int) ([]*model.User, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	var total int
	if err := r.DB.GetContext(ctx, &total, `SELECT COUNT(*) FROM users WHERE deleted_at IS NULL`); err != nil {
		return nil, 0, util.LogError("[UserRepo] не удалось посчитать пользователей", err)
	}

	query := `
	SELECT id, name, email, phone_number, date_of_birth, gender, password_hash, reward_points, role, status, created_at, updated_at, deleted_at
	FROM users
	WHERE deleted_at IS NULL
	ORDER BY created_at DESC, id DESC
	LIMIT $1 OFFSET $2
	`

	var users []*model.User
	err := r.DB.SelectContext(ctx, &users, query, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, util.LogError("[UserRepo] не удалось получить список пользователей", err)
	}

	return users, total, nil
}
