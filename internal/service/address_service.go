package service

import (
	"context"

	"collecto-backend/internal/apperror"
	"collecto-backend/internal/model"
	"collecto-backend/internal/ports"
)

type AddressService struct {
	addressRepository ports.AddressRepository
}

func NewAddressService(addressRepository ports.AddressRepository) *AddressService {
	return &AddressService{addressRepository}
}

// ListAddresses : адреса пользователя, дефолтный первым
func (s *AddressService) ListAddresses(ctx context.Context, userID int64, page, limit int) ([]model.Address, int, error) {
	return s.addressRepository.ListByUserID(ctx, userID, page, limit)
}

// CreateAddress сохраняет новый адрес. Самый первый адрес пользователя
// автоматически становится дефолтным, у остальных флаг при создании снят
func (s *AddressService) CreateAddress(ctx context.Context, address *model.Address) (*model.Address, error) {
	if address.RecipientName == "" || address.RecipientPhone == "" || address.Address == "" {
		return nil, apperror.BadRequest("получатель, телефон и адрес обязательны")
	}

	count, err := s.addressRepository.CountByUserID(ctx, address.UserID)
	if err != nil {
		return nil, err
	}
	address.IsDefault = count == 0

	return s.addressRepository.Create(ctx, address)
}

// UpdateAddress обновляет поля адреса. Флаг is_default этой операцией
// поменять нельзя, для переноса дефолта есть SetDefaultAddress
func (s *AddressService) UpdateAddress(ctx context.Context, userID int64, address *model.Address) (*model.Address, error) {
	existing, err := s.addressRepository.FindByID(ctx, address.ID)
	if err != nil {
		return nil, err
	}
	if existing.UserID != userID {
		return nil, apperror.Forbidden("адрес принадлежит другому пользователю")
	}

	if address.RecipientName == "" || address.RecipientPhone == "" || address.Address == "" {
		return nil, apperror.BadRequest("получатель, телефон и адрес обязательны")
	}

	if err := s.addressRepository.Update(ctx, address); err != nil {
		return nil, err
	}

	return s.addressRepository.FindByID(ctx, address.ID)
}

// DeleteAddress мягко удаляет адрес. Дефолтный адрес удалить нельзя:
// сначала дефолт переносится на другой адрес
func (s *AddressService) DeleteAddress(ctx context.Context, userID, addressID int64) error {
	address, err := s.addressRepository.FindByID(ctx, addressID)
	if err != nil {
		return err
	}
	if address.UserID != userID {
		return apperror.Forbidden("адрес принадлежит другому пользователю")
	}
	if address.IsDefault {
		return apperror.BadRequest("нельзя удалить дефолтный адрес, сначала назначьте другой")
	}

	return s.addressRepository.SoftDelete(ctx, addressID)
}

// SetDefaultAddress переносит флаг дефолтного адреса и возвращает
// обновлённый адрес. Повторное назначение уже дефолтного отклоняется
func (s *AddressService) SetDefaultAddress(ctx context.Context, userID, addressID int64) (*model.Address, error) {
	address, err := s.addressRepository.FindByID(ctx, addressID)
	if err != nil {
		return nil, err
	}
	if address.UserID != userID {
		return nil, apperror.Forbidden("адрес принадлежит другому пользователю")
	}
	if address.IsDefault {
		return nil, apperror.BadRequest("адрес уже является дефолтным")
	}

	if err := s.addressRepository.SetDefault(ctx, userID, addressID); err != nil {
		return nil, err
	}

	return s.addressRepository.FindByID(ctx, addressID)
}
