package ports

import (
	"collecto-backend/internal/model"
	"collecto-backend/internal/security"
)

type JWTServiceInterface interface {
	GenerateAccessToken(userID int64, email, role string) (string, error)
	GenerateRefreshToken(userID int64, email, role string) (string, error)
	GenerateTokensPair(userID int64, email, role string) (*model.TokensPair, error)
	ValidateAccessToken(jwtTokenStr string) (*security.Claims, error)
	ValidateRefreshToken(jwtTokenStr string) (*security.Claims, error)
}
