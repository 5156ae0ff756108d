package service_test

import (
	"context"
	"testing"

	"collecto-backend/internal/apperror"
	"collecto-backend/internal/model"
	"collecto-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUpdateProfile_NoFields(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockTokenRepository)
	userService := service.NewUserService(userRepo, tokenRepo)

	_, err := userService.UpdateProfile(context.Background(), 42, nil, nil, nil, nil)

	// запрос без единого поля — ошибка, а не тихий no-op
	assert.True(t, apperror.IsKind(err, apperror.KindBadRequest))
	userRepo.AssertNotCalled(t, "UpdateUser", mock.Anything, mock.Anything)
}

func TestUpdateProfile_BadDateOfBirth(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockTokenRepository)
	userService := service.NewUserService(userRepo, tokenRepo)

	userRepo.On("FindByID", mock.Anything, int64(42)).Return(activeUser("hash"), nil)

	badDate := "12.04.1995"
	_, err := userService.UpdateProfile(context.Background(), 42, nil, nil, &badDate, nil)

	assert.True(t, apperror.IsKind(err, apperror.KindBadRequest))
}

func TestUpdateProfile_PartialUpdate(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockTokenRepository)
	userService := service.NewUserService(userRepo, tokenRepo)

	userRepo.On("FindByID", mock.Anything, int64(42)).Return(activeUser("hash"), nil)
	userRepo.On("UpdateUser", mock.Anything, mock.MatchedBy(func(user *model.User) bool {
		return user.Name == "Новое Имя"
	})).Return(nil)

	newName := "Новое Имя"
	_, err := userService.UpdateProfile(context.Background(), 42, &newName, nil, nil, nil)

	require.NoError(t, err)
	userRepo.AssertExpectations(t)
}

// запрос, значения которого совпадают с текущим профилем, отклоняется
func TestUpdateProfile_NoChanges(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockTokenRepository)
	userService := service.NewUserService(userRepo, tokenRepo)

	userRepo.On("FindByID", mock.Anything, int64(42)).Return(activeUser("hash"), nil)

	sameName := "Иван Петров"
	_, err := userService.UpdateProfile(context.Background(), 42, &sameName, nil, nil, nil)

	assert.True(t, apperror.IsKind(err, apperror.KindBadRequest))
	userRepo.AssertNotCalled(t, "UpdateUser", mock.Anything, mock.Anything)
}

func TestChangePassword_WrongOldPassword(t *testing.T) {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte("old-password"), bcrypt.MinCost)
	require.NoError(t, err)

	userRepo := new(MockUserRepository)
	tokenRepo := new(MockTokenRepository)
	userService := service.NewUserService(userRepo, tokenRepo)

	userRepo.On("FindByID", mock.Anything, int64(42)).Return(activeUser(string(passwordHash)), nil)

	err = userService.ChangePassword(context.Background(), 42, "wrong-password", "new-password", "new-password")

	assert.True(t, apperror.IsKind(err, apperror.KindBadRequest))
	userRepo.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
}

func TestChangePassword_RevokesSessions(t *testing.T) {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte("old-password"), bcrypt.MinCost)
	require.NoError(t, err)

	userRepo := new(MockUserRepository)
	tokenRepo := new(MockTokenRepository)
	userService := service.NewUserService(userRepo, tokenRepo)

	userRepo.On("FindByID", mock.Anything, int64(42)).Return(activeUser(string(passwordHash)), nil)
	userRepo.On("UpdatePassword", mock.Anything, int64(42), mock.MatchedBy(func(hash string) bool {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte("new-password")) == nil
	})).Return(nil)
	tokenRepo.On("RevokeAllByUserID", mock.Anything, int64(42)).Return(int64(1), nil)

	require.NoError(t, userService.ChangePassword(context.Background(), 42, "old-password", "new-password", "new-password"))
	tokenRepo.AssertExpectations(t)
}

func TestChangePassword_SameAsOld(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockTokenRepository)
	userService := service.NewUserService(userRepo, tokenRepo)

	err := userService.ChangePassword(context.Background(), 42, "same", "same", "same")

	assert.True(t, apperror.IsKind(err, apperror.KindBadRequest))
}

func TestChangePassword_ConfirmMismatch(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockTokenRepository)
	userService := service.NewUserService(userRepo, tokenRepo)

	err := userService.ChangePassword(context.Background(), 42, "old-password", "new-password", "другой")

	// подтверждение не совпало — до проверки старого пароля дело не доходит
	assert.True(t, apperror.IsKind(err, apperror.KindBadRequest))
	userRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

// админ создаёт пользователя, начальный пароль — номер телефона
func TestCreateUser_InitialPasswordIsPhone(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockTokenRepository)
	userService := service.NewUserService(userRepo, tokenRepo)

	userRepo.On("ExistsByEmail", mock.Anything, "new@example.com").Return(false, nil)
	userRepo.On("CreateUser", mock.Anything, mock.MatchedBy(func(user *model.User) bool {
		return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("+79001234567")) == nil &&
			user.Role == model.RoleUser
	})).Return(activeUser("hash"), nil)

	_, err := userService.CreateUser(context.Background(), "Новый", "new@example.com", "+79001234567", "")

	require.NoError(t, err)
	userRepo.AssertExpectations(t)
}

func TestCreateUser_UnknownRole(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockTokenRepository)
	userService := service.NewUserService(userRepo, tokenRepo)

	_, err := userService.CreateUser(context.Background(), "Новый", "new@example.com", "+79001234567", "superadmin")

	assert.True(t, apperror.IsKind(err, apperror.KindBadRequest))
}
