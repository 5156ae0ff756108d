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
)

type MockAddressRepository struct{ mock.Mock }

func (m *MockAddressRepository) FindByID(ctx context.Context, addressID int64) (*model.Address, error) {
	args := m.Called(ctx, addressID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Address), args.Error(1)
}

func (m *MockAddressRepository) ListByUserID(ctx context.Context, userID int64, page, limit int) ([]model.Address, int, error) {
	args := m.Called(ctx, userID, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Address), args.Int(1), args.Error(2)
}

func (m *MockAddressRepository) CountByUserID(ctx context.Context, userID int64) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockAddressRepository) Create(ctx context.Context, address *model.Address) (*model.Address, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Address), args.Error(1)
}

func (m *MockAddressRepository) Update(ctx context.Context, address *model.Address) error {
	return m.Called(ctx, address).Error(0)
}

func (m *MockAddressRepository) SoftDelete(ctx context.Context, addressID int64) error {
	return m.Called(ctx, addressID).Error(0)
}

func (m *MockAddressRepository) SetDefault(ctx context.Context, userID, addressID int64) error {
	return m.Called(ctx, userID, addressID).Error(0)
}

func validAddress(id, userID int64, isDefault bool) *model.Address {
	return &model.Address{
		ID:             id,
		UserID:         userID,
		RecipientName:  "Иван Петров",
		RecipientPhone: "+79001234567",
		Address:        "ул. Ленина, 1",
		IsDefault:      isDefault,
	}
}

// самый первый адрес пользователя становится дефолтным автоматически
func TestCreateAddress_FirstBecomesDefault(t *testing.T) {
	addressRepo := new(MockAddressRepository)
	addressService := service.NewAddressService(addressRepo)

	addressRepo.On("CountByUserID", mock.Anything, int64(42)).Return(0, nil)
	addressRepo.On("Create", mock.Anything, mock.MatchedBy(func(address *model.Address) bool {
		return address.IsDefault
	})).Return(validAddress(1, 42, true), nil)

	created, err := addressService.CreateAddress(context.Background(), validAddress(0, 42, false))

	require.NoError(t, err)
	assert.True(t, created.IsDefault)
}

func TestCreateAddress_SecondNotDefault(t *testing.T) {
	addressRepo := new(MockAddressRepository)
	addressService := service.NewAddressService(addressRepo)

	addressRepo.On("CountByUserID", mock.Anything, int64(42)).Return(1, nil)
	addressRepo.On("Create", mock.Anything, mock.MatchedBy(func(address *model.Address) bool {
		return !address.IsDefault
	})).Return(validAddress(2, 42, false), nil)

	// даже если клиент прислал is_default=true, флаг игнорируется
	request := validAddress(0, 42, true)
	created, err := addressService.CreateAddress(context.Background(), request)

	require.NoError(t, err)
	assert.False(t, created.IsDefault)
}

func TestCreateAddress_MissingFields(t *testing.T) {
	addressRepo := new(MockAddressRepository)
	addressService := service.NewAddressService(addressRepo)

	_, err := addressService.CreateAddress(context.Background(), &model.Address{UserID: 42})

	assert.True(t, apperror.IsKind(err, apperror.KindBadRequest))
	addressRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdateAddress_ForeignAddress(t *testing.T) {
	addressRepo := new(MockAddressRepository)
	addressService := service.NewAddressService(addressRepo)

	addressRepo.On("FindByID", mock.Anything, int64(1)).Return(validAddress(1, 99, false), nil)

	_, err := addressService.UpdateAddress(context.Background(), 42, validAddress(1, 42, false))

	assert.True(t, apperror.IsKind(err, apperror.KindForbidden))
	addressRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDeleteAddress_DefaultGuard(t *testing.T) {
	addressRepo := new(MockAddressRepository)
	addressService := service.NewAddressService(addressRepo)

	addressRepo.On("FindByID", mock.Anything, int64(1)).Return(validAddress(1, 42, true), nil)

	err := addressService.DeleteAddress(context.Background(), 42, 1)

	// дефолтный адрес под защитой от удаления
	assert.True(t, apperror.IsKind(err, apperror.KindBadRequest))
	addressRepo.AssertNotCalled(t, "SoftDelete", mock.Anything, mock.Anything)
}

func TestDeleteAddress_Success(t *testing.T) {
	addressRepo := new(MockAddressRepository)
	addressService := service.NewAddressService(addressRepo)

	addressRepo.On("FindByID", mock.Anything, int64(2)).Return(validAddress(2, 42, false), nil)
	addressRepo.On("SoftDelete", mock.Anything, int64(2)).Return(nil)

	require.NoError(t, addressService.DeleteAddress(context.Background(), 42, 2))
	addressRepo.AssertExpectations(t)
}

func TestSetDefaultAddress_AlreadyDefault(t *testing.T) {
	addressRepo := new(MockAddressRepository)
	addressService := service.NewAddressService(addressRepo)

	addressRepo.On("FindByID", mock.Anything, int64(1)).Return(validAddress(1, 42, true), nil)

	_, err := addressService.SetDefaultAddress(context.Background(), 42, 1)

	assert.True(t, apperror.IsKind(err, apperror.KindBadRequest))
	addressRepo.AssertNotCalled(t, "SetDefault", mock.Anything, mock.Anything, mock.Anything)
}

func TestSetDefaultAddress_ForeignAddress(t *testing.T) {
	addressRepo := new(MockAddressRepository)
	addressService := service.NewAddressService(addressRepo)

	addressRepo.On("FindByID", mock.Anything, int64(1)).Return(validAddress(1, 99, false), nil)

	_, err := addressService.SetDefaultAddress(context.Background(), 42, 1)

	assert.True(t, apperror.IsKind(err, apperror.KindForbidden))
}

func TestSetDefaultAddress_Success(t *testing.T) {
	addressRepo := new(MockAddressRepository)
	addressService := service.NewAddressService(addressRepo)

	addressRepo.On("FindByID", mock.Anything, int64(2)).Return(validAddress(2, 42, false), nil).Once()
	addressRepo.On("SetDefault", mock.Anything, int64(42), int64(2)).Return(nil)
	addressRepo.On("FindByID", mock.Anything, int64(2)).Return(validAddress(2, 42, true), nil).Once()

	updated, err := addressService.SetDefaultAddress(context.Background(), 42, 2)

	require.NoError(t, err)
	// наружу уходит перечитанный адрес с уже перенесённым флагом
	assert.True(t, updated.IsDefault)
	addressRepo.AssertExpectations(t)
}

func TestSetDefaultAddress_NotFound(t *testing.T) {
	addressRepo := new(MockAddressRepository)
	addressService := service.NewAddressService(addressRepo)

	addressRepo.On("FindByID", mock.Anything, int64(404)).Return(nil, apperror.NotFound("адрес не найден"))

	_, err := addressService.SetDefaultAddress(context.Background(), 42, 404)

	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}
