package service

import (
	"context"
	"errors"
	"log"
	"net/mail"
	"time"

	"collecto-backend/config"
	"collecto-backend/internal/apperror"
	"collecto-backend/internal/model"
	"collecto-backend/internal/ports"
	"collecto-backend/internal/security"
	"collecto-backend/internal/util"

	"golang.org/x/crypto/bcrypt"
)

type AuthenticationService struct {
	tokenRepository ports.TokenRepository
	userRepository  ports.UserRepository
	jwtService      ports.JWTServiceInterface
	*config.JWTConfig
}

func NewAuthenticationService(
	tokenRepository ports.TokenRepository,
	userRepository ports.UserRepository,
	jwtService ports.JWTServiceInterface,
	cfg *config.JWTConfig,
) *AuthenticationService {
	return &AuthenticationService{
		tokenRepository,
		userRepository,
		jwtService,
		cfg,
	}
}

// Register создаёт нового пользователя с ролью user.
// Пароль хранится только в виде bcrypt-хэша
func (s *AuthenticationService) Register(ctx context.Context, name, email, password, confirmPassword string) (*model.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, apperror.BadRequest("имя, email и пароль обязательны")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, apperror.BadRequest("некорректный email")
	}
	if password != confirmPassword {
		return nil, apperror.BadRequest("пароли не совпадают")
	}

	exists, err := s.userRepository.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperror.Conflict("пользователь с таким email уже существует")
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return nil, util.LogError("[AuthService] не удалось захэшировать пароль", err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         model.RoleUser,
		Status:       model.StatusActive,
	}

	created, err := s.userRepository.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}

	log.Printf("[AuthService] зарегистрирован пользователь id=%d", created.ID)
	return created, nil
}

// Login проверяет учётные данные и выпускает новую пару токенов.
// Перед выпуском отзываются все активные сессии пользователя: активной
// может быть только одна. Отзыв и сохранение новой строки идут отдельными
// запросами; упавшее сохранение оставляет пользователя разлогиненным,
// но никогда — с двумя живыми сессиями
func (s *AuthenticationService) Login(ctx context.Context, email, password string) (*model.User, *model.TokensPair, error) {
	user, err := s.userRepository.FindByEmail(ctx, email)
	if err != nil {
		return nil, nil, err
	}

	if user.Status != model.StatusActive {
		return nil, nil, apperror.Forbidden("учётная запись заблокирована")
	}

	if !security.CheckPassword(password, user.PasswordHash) {
		return nil, nil, apperror.BadRequest("неверный пароль")
	}

	revoked, err := s.tokenRepository.RevokeAllByUserID(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	if revoked > 0 {
		log.Printf("[AuthService] отозвано %d старых сессий пользователя id=%d", revoked, user.ID)
	}

	tokens, err := s.jwtService.GenerateTokensPair(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, nil, util.LogError("[AuthService] ошибка генерации токенов", err)
	}

	tokenHash, err := bcrypt.GenerateFromPassword([]byte(tokens.RefreshToken), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, util.LogError("[AuthService] не удалось захэшировать refresh токен", err)
	}

	refreshTTL, err := time.ParseDuration(s.RefreshTokenTTL)
	if err != nil {
		return nil, nil, util.LogError("[AuthService] ошибка парсинга TTL refresh токена", err)
	}

	_, err = s.tokenRepository.SaveRefreshToken(ctx, &model.RefreshToken{
		UserID:    user.ID,
		TokenHash: string(tokenHash),
		IsRevoked: false,
		ExpireAt:  time.Now().Add(refreshTTL),
	})
	if err != nil {
		return nil, nil, err
	}

	return user, tokens, nil
}

// Logout отзывает сессию, которой принадлежит refresh токен.
// Неизвестный токен — ошибка, но повторный logout с тем же токеном — no-op:
// отозванная строка находится и распознаётся как уже отозванная
func (s *AuthenticationService) Logout(ctx context.Context, rawRefreshToken string) error {
	claims, err := s.jwtService.ValidateRefreshToken(rawRefreshToken)
	if err != nil {
		if errors.Is(err, security.ErrTokenExpired) {
			// просроченная сессия и так мертва
			return nil
		}
		return apperror.BadRequest("невалидный refresh токен")
	}

	token, err := s.tokenRepository.FindByRawToken(ctx, claims.UserID, rawRefreshToken)
	if err != nil {
		return err
	}
	if token == nil {
		return apperror.BadRequest("refresh токен не найден")
	}
	if token.IsRevoked {
		return nil
	}

	return s.tokenRepository.RevokeByID(ctx, token.ID)
}

// RenewAccessToken выпускает новый access токен по живому refresh токену.
// Сам refresh токен не ротируется. Просрочка проверяется раньше остального:
// просроченный токен отклоняется, даже если строка в базе ещё не отозвана
func (s *AuthenticationService) RenewAccessToken(ctx context.Context, rawRefreshToken string) (string, error) {
	claims, err := s.jwtService.ValidateRefreshToken(rawRefreshToken)
	if err != nil {
		if errors.Is(err, security.ErrTokenExpired) {
			return "", apperror.BadRequest("refresh токен просрочен")
		}
		return "", apperror.BadRequest("невалидный refresh токен")
	}

	token, err := s.tokenRepository.FindActiveByRawToken(ctx, claims.UserID, rawRefreshToken)
	if err != nil {
		return "", err
	}
	if token == nil {
		return "", apperror.BadRequest("сессия отозвана или не найдена")
	}
	if time.Now().After(token.ExpireAt) {
		return "", apperror.BadRequest("refresh токен просрочен")
	}

	user, err := s.userRepository.FindByID(ctx, claims.UserID)
	if err != nil {
		return "", err
	}
	if user.Status != model.StatusActive {
		return "", apperror.Forbidden("учётная запись заблокирована")
	}

	accessToken, err := s.jwtService.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return "", util.LogError("[AuthService] ошибка генерации access токена", err)
	}

	return accessToken, nil
}
