package ports

import (
	"collecto-backend/internal/model"
	"context"
)

type AddressRepository interface {
	FindByID(ctx context.Context, addressID int64) (*model.Address, error)
	ListByUserID(ctx context.Context, userID int64, page, limit int) ([]model.Address, int, error)
	CountByUserID(ctx context.Context, userID int64) (int, error)
	Create(ctx context.Context, address *model.Address) (*model.Address, error)
	Update(ctx context.Context, address *model.Address) error
	SoftDelete(ctx context.Context, addressID int64) error
	SetDefault(ctx context.Context, userID, addressID int64) error
}

type AddressService interface {
	ListAddresses(ctx context.Context, userID int64, page, limit int) ([]model.Address, int, error)
	CreateAddress(ctx context.Context, address *model.Address) (*model.Address, error)
	UpdateAddress(ctx context.Context, userID int64, address *model.Address) (*model.Address, error)
	DeleteAddress(ctx context.Context, userID, addressID int64) error
	SetDefaultAddress(ctx context.Context, userID, addressID int64) (*model.Address, error)
}
