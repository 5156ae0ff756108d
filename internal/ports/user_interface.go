package ports

import (
	"collecto-backend/internal/model"
	"context"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	FindByID(ctx context.Context, id int64) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdateUser(ctx context.Context, user *model.User) error
	UpdatePassword(ctx context.Context, id int64, newPasswordHash string) error
	ListUsers(ctx context.Context, page, limit int) ([]*model.User, int, error)
}

type UserService interface {
	GetProfile(ctx context.Context, userID int64) (*model.User, error)
	UpdateProfile(ctx context.Context, userID int64, name *string, phoneNumber *string, dateOfBirth *string, gender *string) (*model.User, error)
	ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword, confirmNewPassword string) error
	ListUsers(ctx context.Context, page, limit int) ([]*model.User, int, error)
	CreateUser(ctx context.Context, name, email, phoneNumber, role string) (*model.User, error)
}
