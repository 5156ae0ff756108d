package security

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"collecto-backend/config"
	"collecto-backend/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var (
	// ErrTokenExpired : подпись верна, но срок жизни истёк.
	// Вызывающий код различает просрочку и все прочие причины отказа
	ErrTokenExpired = errors.New("токен просрочен")
	ErrTokenInvalid = errors.New("невалидный токен")
)

// Claims переносит идентичность пользователя внутри подписанного токена.
// TokenType не даёт использовать access токен вместо refresh и наоборот
type Claims struct {
	UserID    int64  `json:"user_id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

type JWTService struct {
	*config.JWTConfig
}

func NewJWTService(cfg *config.JWTConfig) *JWTService {
	return &JWTService{cfg}
}

// GenerateAccessToken подписывает короткоживущий access токен секретом access токенов
func (service *JWTService) GenerateAccessToken(userID int64, email, role string) (string, error) {
	return service.sign(userID, email, role, TokenTypeAccess, service.AccessSecret, service.AccessTokenTTL)
}

// GenerateRefreshToken подписывает долгоживущий refresh токен отдельным секретом
func (service *JWTService) GenerateRefreshToken(userID int64, email, role string) (string, error) {
	return service.sign(userID, email, role, TokenTypeRefresh, service.RefreshSecret, service.RefreshTokenTTL)
}

// GenerateTokensPair выпускает пару access+refresh для одного пользователя
func (service *JWTService) GenerateTokensPair(userID int64, email, role string) (*model.TokensPair, error) {
	accessToken, err := service.GenerateAccessToken(userID, email, role)
	if err != nil {
		return nil, err
	}

	refreshToken, err := service.GenerateRefreshToken(userID, email, role)
	if err != nil {
		return nil, err
	}

	return &model.TokensPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (service *JWTService) sign(userID int64, email, role, tokenType, secret, ttl string) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("секрет для %s токена не задан в конфигурации", tokenType)
	}

	timeDuration, err := time.ParseDuration(ttl)
	if err != nil {
		return "", fmt.Errorf("ошибка парсинга TTL %s токена: %w", tokenType, err)
	}

	claims := Claims{
		UserID:    userID,
		Email:     email,
		Role:      role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(timeDuration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    service.Issuer,
			Audience:  jwt.ClaimStrings{service.Issuer},
		},
	}

	jwtToken := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := jwtToken.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("ошибка подписи %s токена: %w", tokenType, err)
	}

	return signed, nil
}

// ValidateAccessToken проверяет подпись и срок жизни access токена
func (service *JWTService) ValidateAccessToken(jwtTokenStr string) (*Claims, error) {
	return service.validate(jwtTokenStr, service.AccessSecret, TokenTypeAccess)
}

// ValidateRefreshToken проверяет подпись и срок жизни refresh токена
func (service *JWTService) ValidateRefreshToken(jwtTokenStr string) (*Claims, error) {
	return service.validate(jwtTokenStr, service.RefreshSecret, TokenTypeRefresh)
}

// validate различает две причины отказа: ErrTokenExpired для просроченного токена
// и ErrTokenInvalid для всего остального (подпись, тип, пустой payload).
// Сравнение срока жизни — обычные настенные часы, без допуска на рассинхронизацию
func (service *JWTService) validate(jwtTokenStr string, secret string, wantType string) (*Claims, error) {
	var claims = &Claims{}

	jwtToken, err := jwt.ParseWithClaims(jwtTokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Header["alg"] != jwt.SigningMethodHS512.Alg() {
			return nil, fmt.Errorf("неверный способ подписи токена: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !jwtToken.Valid {
		return nil, ErrTokenInvalid
	}

	if claims.TokenType != wantType {
		return nil, ErrTokenInvalid
	}
	if claims.UserID == 0 || claims.Email == "" || claims.Role == "" {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
