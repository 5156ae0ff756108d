package service_test

import (
	"context"
	"testing"
	"time"

	"collecto-backend/config"
	"collecto-backend/internal/apperror"
	"collecto-backend/internal/model"
	"collecto-backend/internal/security"
	"collecto-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id int64, newPasswordHash string) error {
	return m.Called(ctx, id, newPasswordHash).Error(0)
}

func (m *MockUserRepository) ListUsers(ctx context.Context, page, limit int) ([]*model.User, int, error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*model.User), args.Int(1), args.Error(2)
}

type MockTokenRepository struct{ mock.Mock }

func (m *MockTokenRepository) SaveRefreshToken(ctx context.Context, refreshToken *model.RefreshToken) (*model.RefreshToken, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RefreshToken), args.Error(1)
}

func (m *MockTokenRepository) FindByRawToken(ctx context.Context, userID int64, rawToken string) (*model.RefreshToken, error) {
	args := m.Called(ctx, userID, rawToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RefreshToken), args.Error(1)
}

func (m *MockTokenRepository) FindActiveByRawToken(ctx context.Context, userID int64, rawToken string) (*model.RefreshToken, error) {
	args := m.Called(ctx, userID, rawToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RefreshToken), args.Error(1)
}

func (m *MockTokenRepository) RevokeByID(ctx context.Context, tokenID int64) error {
	return m.Called(ctx, tokenID).Error(0)
}

func (m *MockTokenRepository) RevokeAllByUserID(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func testJWTConfig() *config.JWTConfig {
	return &config.JWTConfig{
		AccessSecret:    "access-secret-for-tests",
		RefreshSecret:   "refresh-secret-for-tests",
		AccessTokenTTL:  "15m",
		RefreshTokenTTL: "168h",
		Issuer:          "collecto",
	}
}

func newAuthService(userRepo *MockUserRepository, tokenRepo *MockTokenRepository) (*service.AuthenticationService, *security.JWTService) {
	cfg := testJWTConfig()
	jwtService := security.NewJWTService(cfg)
	return service.NewAuthenticationService(tokenRepo, userRepo, jwtService, cfg), jwtService
}

func futureTime() time.Time {
	return time.Now().Add(time.Hour)
}

func activeUser(passwordHash string) *model.User {
	return &model.User{
		ID:           42,
		Name:         "Иван Петров",
		Email:        "user@example.com",
		PasswordHash: passwordHash,
		Role:         model.RoleUser,
		Status:       model.StatusActive,
	}
}

func TestRegister_PasswordMismatch(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockTokenRepository)
	authService, _ := newAuthService(userRepo, tokenRepo)

	_, err := authService.Register(context.Background(), "Иван", "user@example.com", "pass1", "pass2")

	assert.True(t, apperror.IsKind(err, apperror.KindBadRequest))
	userRepo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

func TestRegister_EmailTaken(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockTokenRepository)
	authService, _ := newAuthService(userRepo, tokenRepo)

	userRepo.On("ExistsByEmail", mock.Anything, "user@example.com").Return(true, nil)

	_, err := authService.Register(context.Background(), "Иван", "user@example.com", "pass", "pass")

	assert.True(t, apperror.IsKind(err, apperror.KindConflict))
}

func TestRegister_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockTokenRepository)
	authService, _ := newAuthService(userRepo, tokenRepo)

	userRepo.On("ExistsByEmail", mock.Anything, "user@example.com").Return(false, nil)
	userRepo.On("CreateUser", mock.Anything, mock.MatchedBy(func(user *model.User) bool {
		// в базу уходит хэш, не сам пароль
		return user.PasswordHash != "StrongPass123!" &&
			bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("StrongPass123!")) == nil &&
			user.Role == model.RoleUser
	})).Return(activeUser("hash"), nil)

	created, err := authService.Register(context.Background(), "Иван", "user@example.com", "StrongPass123!", "StrongPass123!")

	require.NoError(t, err)
	assert.Equal(t, int64(42), created.ID)
	userRepo.AssertExpectations(t)
}

func TestLogin_RevokesOldSessions(t *testing.T) {
	passwordHash, err := security.HashPassword("StrongPass123!")
	require.NoError(t, err)

	userRepo := new(MockUserRepository)
	tokenRepo := new(MockTokenRepository)
	authService, jwtService := newAuthService(userRepo, tokenRepo)

	userRepo.On("FindByEmail", mock.Anything, "user@example.com").Return(activeUser(passwordHash), nil)
	tokenRepo.On("RevokeAllByUserID", mock.Anything, int64(42)).Return(int64(2), nil)
	tokenRepo.On("SaveRefreshToken", mock.Anything, mock.MatchedBy(func(token *model.RefreshToken) bool {
		return token.UserID == 42 && !token.IsRevoked && token.TokenHash != ""
	})).Return(&model.RefreshToken{ID: 1}, nil)

	user, tokens, err := authService.Login(context.Background(), "user@example.com", "StrongPass123!")

	require.NoError(t, err)
	assert.Equal(t, int64(42), user.ID)
	tokenRepo.AssertCalled(t, "RevokeAllByUserID", mock.Anything, int64(42))

	// в базе лежит bcrypt-хэш именно выданного refresh токена
	saved := tokenRepo.Calls[1].Arguments.Get(1).(*model.RefreshToken)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.TokenHash), []byte(tokens.RefreshToken)))

	// выданный access токен валиден
	claims, err := jwtService.ValidateAccessToken(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
}

func TestLogin_WrongPassword(t *testing.T) {
	passwordHash, err := security.HashPassword("StrongPass123!")
	require.NoError(t, err)

	userRepo := new(MockUserRepository)
	tokenRepo := new(MockTokenRepository)
	authService, _ := newAuthService(userRepo, tokenRepo)

	userRepo.On("FindByEmail", mock.Anything, "user@example.com").Return(activeUser(passwordHash), nil)

	_, _, err = authService.Login(context.Background(), "user@example.com", "wrong")

	assert.True(t, apperror.IsKind(err, apperror.KindBadRequest))
	tokenRepo.AssertNotCalled(t, "RevokeAllByUserID", mock.Anything, mock.Anything)
}

func TestLogin_BannedUser(t *testing.T) {
	passwordHash, err := security.HashPassword("StrongPass123!")
	require.NoError(t, err)

	banned := activeUser(passwordHash)
	banned.Status = model.StatusBanned

	userRepo := new(MockUserRepository)
	tokenRepo := new(MockTokenRepository)
	authService, _ := newAuthService(userRepo, tokenRepo)

	userRepo.On("FindByEmail", mock.Anything, "user@example.com").Return(banned, nil)

	_, _, err = authService.Login(context.Background(), "user@example.com", "StrongPass123!")

	assert.True(t, apperror.IsKind(err, apperror.KindForbidden))
}

func TestLogout_Idempotent(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockTokenRepository)
	authService, jwtService := newAuthService(userRepo, tokenRepo)

	refreshToken, err := jwtService.GenerateRefreshToken(42, "user@example.com", "user")
	require.NoError(t, err)

	// строка найдена, но уже отозвана: повторный logout — no-op
	tokenRepo.On("FindByRawToken", mock.Anything, int64(42), refreshToken).
		Return(&model.RefreshToken{ID: 5, UserID: 42, IsRevoked: true}, nil)

	err = authService.Logout(context.Background(), refreshToken)

	assert.NoError(t, err)
	tokenRepo.AssertNotCalled(t, "RevokeByID", mock.Anything, mock.Anything)
}

func TestLogout_UnknownToken(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockTokenRepository)
	authService, jwtService := newAuthService(userRepo, tokenRepo)

	refreshToken, err := jwtService.GenerateRefreshToken(42, "user@example.com", "user")
	require.NoError(t, err)

	tokenRepo.On("FindByRawToken", mock.Anything, int64(42), refreshToken).Return(nil, nil)

	err = authService.Logout(context.Background(), refreshToken)

	// токен без строки в базе — ошибка, no-op только для уже отозванной строки
	assert.True(t, apperror.IsKind(err, apperror.KindBadRequest))
	tokenRepo.AssertNotCalled(t, "RevokeByID", mock.Anything, mock.Anything)
}

func TestLogout_RevokesActiveSession(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockTokenRepository)
	authService, jwtService := newAuthService(userRepo, tokenRepo)

	refreshToken, err := jwtService.GenerateRefreshToken(42, "user@example.com", "user")
	require.NoError(t, err)

	tokenRepo.On("FindByRawToken", mock.Anything, int64(42), refreshToken).
		Return(&model.RefreshToken{ID: 5, UserID: 42, IsRevoked: false}, nil)
	tokenRepo.On("RevokeByID", mock.Anything, int64(5)).Return(nil)

	require.NoError(t, authService.Logout(context.Background(), refreshToken))
	tokenRepo.AssertExpectations(t)
}

func TestLogout_MalformedToken(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockTokenRepository)
	authService, _ := newAuthService(userRepo, tokenRepo)

	err := authService.Logout(context.Background(), "not-a-jwt")

	assert.True(t, apperror.IsKind(err, apperror.KindBadRequest))
}

func TestRenewAccessToken_ExpiredToken(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockTokenRepository)

	cfg := testJWTConfig()
	cfg.RefreshTokenTTL = "-1m"
	expiredService := security.NewJWTService(cfg)
	expiredToken, err := expiredService.GenerateRefreshToken(42, "user@example.com", "user")
	require.NoError(t, err)

	authService, _ := newAuthService(userRepo, tokenRepo)

	_, err = authService.RenewAccessToken(context.Background(), expiredToken)

	// просрочка распознаётся до похода в базу
	assert.True(t, apperror.IsKind(err, apperror.KindBadRequest))
	tokenRepo.AssertNotCalled(t, "FindActiveByRawToken", mock.Anything, mock.Anything, mock.Anything)
}

func TestRenewAccessToken_RevokedSession(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockTokenRepository)
	authService, jwtService := newAuthService(userRepo, tokenRepo)

	refreshToken, err := jwtService.GenerateRefreshToken(42, "user@example.com", "user")
	require.NoError(t, err)

	tokenRepo.On("FindActiveByRawToken", mock.Anything, int64(42), refreshToken).Return(nil, nil)

	_, err = authService.RenewAccessToken(context.Background(), refreshToken)

	// отозванная или отсутствующая сессия — 400, пользователь логинится заново
	assert.True(t, apperror.IsKind(err, apperror.KindBadRequest))
	userRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestRenewAccessToken_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockTokenRepository)
	authService, jwtService := newAuthService(userRepo, tokenRepo)

	refreshToken, err := jwtService.GenerateRefreshToken(42, "user@example.com", "user")
	require.NoError(t, err)

	tokenRepo.On("FindActiveByRawToken", mock.Anything, int64(42), refreshToken).
		Return(&model.RefreshToken{ID: 5, UserID: 42, ExpireAt: futureTime()}, nil)
	userRepo.On("FindByID", mock.Anything, int64(42)).Return(activeUser("hash"), nil)

	accessToken, err := authService.RenewAccessToken(context.Background(), refreshToken)

	require.NoError(t, err)
	claims, err := jwtService.ValidateAccessToken(accessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
}
