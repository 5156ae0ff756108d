package ports

import (
	"collecto-backend/internal/model"
	"context"
)

type TokenRepository interface {
	SaveRefreshToken(ctx context.Context, refreshToken *model.RefreshToken) (*model.RefreshToken, error)
	FindByRawToken(ctx context.Context, userID int64, rawToken string) (*model.RefreshToken, error)
	FindActiveByRawToken(ctx context.Context, userID int64, rawToken string) (*model.RefreshToken, error)
	RevokeByID(ctx context.Context, tokenID int64) error
	RevokeAllByUserID(ctx context.Context, userID int64) (int64, error)
}

type AuthenticationService interface {
	Register(ctx context.Context, name, email, password, confirmPassword string) (*model.User, error)
	Login(ctx context.Context, email, password string) (*model.User, *model.TokensPair, error)
	Logout(ctx context.Context, rawRefreshToken string) error
	RenewAccessToken(ctx context.Context, rawRefreshToken string) (string, error)
}
