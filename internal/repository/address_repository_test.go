package repository_test

import (
	"context"
	"regexp"
	"testing"

	"collecto-backend/internal/apperror"
	"collecto-backend/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// перенос дефолтного флага идёт одной транзакцией:
// блокировка строк, снятие старого флага, установка нового
func TestAddressRepository_SetDefault(t *testing.T) {
	database, mockSQL := newMockDatabase(t)
	addressRepo := repository.NewAddressRepository(database)

	mockSQL.ExpectBegin()
	mockSQL.ExpectQuery(regexp.QuoteMeta("SELECT id FROM addresses WHERE user_id = $1 AND deleted_at IS NULL FOR UPDATE")).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1).AddRow(2))
	mockSQL.ExpectExec(regexp.QuoteMeta("UPDATE addresses SET is_default = FALSE")).
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mockSQL.ExpectExec(regexp.QuoteMeta("UPDATE addresses SET is_default = TRUE")).
		WithArgs(int64(2), int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mockSQL.ExpectCommit()

	err := addressRepo.SetDefault(context.Background(), 42, 2)

	require.NoError(t, err)
	assert.NoError(t, mockSQL.ExpectationsWereMet())
}

// целевой адрес не принадлежит пользователю или не существует:
// транзакция откатывается, дефолт никуда не переносится
func TestAddressRepository_SetDefault_NotFound(t *testing.T) {
	database, mockSQL := newMockDatabase(t)
	addressRepo := repository.NewAddressRepository(database)

	mockSQL.ExpectBegin()
	mockSQL.ExpectQuery(regexp.QuoteMeta("SELECT id FROM addresses WHERE user_id = $1 AND deleted_at IS NULL FOR UPDATE")).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mockSQL.ExpectExec(regexp.QuoteMeta("UPDATE addresses SET is_default = FALSE")).
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mockSQL.ExpectExec(regexp.QuoteMeta("UPDATE addresses SET is_default = TRUE")).
		WithArgs(int64(99), int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mockSQL.ExpectRollback()

	err := addressRepo.SetDefault(context.Background(), 42, 99)

	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
	assert.NoError(t, mockSQL.ExpectationsWereMet())
}

func TestAddressRepository_SoftDelete_NotFound(t *testing.T) {
	database, mockSQL := newMockDatabase(t)
	addressRepo := repository.NewAddressRepository(database)

	mockSQL.ExpectExec(regexp.QuoteMeta("UPDATE addresses SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL")).
		WithArgs(int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := addressRepo.SoftDelete(context.Background(), 404)

	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}
