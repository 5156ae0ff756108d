package service

import (
	"context"
	"log"
	"net/mail"
	"time"

	"collecto-backend/internal/apperror"
	"collecto-backend/internal/model"
	"collecto-backend/internal/ports"
	"collecto-backend/internal/security"
	"collecto-backend/internal/util"
)

type UserService struct {
	userRepository  ports.UserRepository
	tokenRepository ports.TokenRepository
}

func NewUserService(userRepository ports.UserRepository, tokenRepository ports.TokenRepository) *UserService {
	return &UserService{userRepository, tokenRepository}
}

// GetProfile : профиль пользователя по id
func (s *UserService) GetProfile(ctx context.Context, userID int64) (*model.User, error) {
	return s.userRepository.FindByID(ctx, userID)
}

// UpdateProfile обновляет только переданные поля профиля.
// Запрос без единого поля и запрос, значения которого совпадают
// с текущими, отклоняются
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, name *string, phoneNumber *string, dateOfBirth *string, gender *string) (*model.User, error) {
	if name == nil && phoneNumber == nil && dateOfBirth == nil && gender == nil {
		return nil, apperror.BadRequest("не передано ни одного поля для обновления")
	}

	user, err := s.userRepository.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	changed := false
	if name != nil {
		if *name == "" {
			return nil, apperror.BadRequest("имя не может быть пустым")
		}
		changed = changed || *name != user.Name
		user.Name = *name
	}
	if phoneNumber != nil {
		changed = changed || !equalStrPtr(phoneNumber, user.PhoneNumber)
		user.PhoneNumber = phoneNumber
	}
	if dateOfBirth != nil {
		parsed, err := time.Parse("2006-01-02", *dateOfBirth)
		if err != nil {
			return nil, apperror.BadRequest("дата рождения должна быть в формате YYYY-MM-DD")
		}
		changed = changed || user.DateOfBirth == nil || !user.DateOfBirth.Equal(parsed)
		user.DateOfBirth = &parsed
	}
	if gender != nil {
		changed = changed || !equalStrPtr(gender, user.Gender)
		user.Gender = gender
	}

	if !changed {
		return nil, apperror.BadRequest("данные не отличаются от текущих")
	}

	if err := s.userRepository.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	return s.userRepository.FindByID(ctx, userID)
}

// ChangePassword меняет пароль после проверки старого.
// Все активные сессии пользователя после смены отзываются
func (s *UserService) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword, confirmNewPassword string) error {
	if newPassword == "" {
		return apperror.BadRequest("новый пароль не может быть пустым")
	}
	if newPassword != confirmNewPassword {
		return apperror.BadRequest("пароли не совпадают")
	}
	if oldPassword == newPassword {
		return apperror.BadRequest("новый пароль совпадает со старым")
	}

	user, err := s.userRepository.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if !security.CheckPassword(oldPassword, user.PasswordHash) {
		return apperror.BadRequest("неверный текущий пароль")
	}

	newHash, err := security.HashPassword(newPassword)
	if err != nil {
		return util.LogError("[UserService] не удалось захэшировать пароль", err)
	}

	if err := s.userRepository.UpdatePassword(ctx, userID, newHash); err != nil {
		return err
	}

	revoked, err := s.tokenRepository.RevokeAllByUserID(ctx, userID)
	if err != nil {
		return err
	}
	log.Printf("[UserService] пароль пользователя id=%d изменён, отозвано %d сессий", userID, revoked)

	return nil
}

// ListUsers : постраничный список пользователей (для админки)
func (s *UserService) ListUsers(ctx context.Context, page, limit int) ([]*model.User, int, error) {
	return s.userRepository.ListUsers(ctx, page, limit)
}

// CreateUser создаёт пользователя от имени администратора.
// Начальный пароль — номер телефона, пользователь меняет его после первого входа
func (s *UserService) CreateUser(ctx context.Context, name, email, phoneNumber, role string) (*model.User, error) {
	if name == "" || email == "" || phoneNumber == "" {
		return nil, apperror.BadRequest("имя, email и телефон обязательны")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, apperror.BadRequest("некорректный email")
	}
	if role == "" {
		role = model.RoleUser
	}
	if role != model.RoleUser && role != model.RoleAdmin {
		return nil, apperror.BadRequest("неизвестная роль")
	}

	exists, err := s.userRepository.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperror.Conflict("пользователь с таким email уже существует")
	}

	passwordHash, err := security.HashPassword(phoneNumber)
	if err != nil {
		return nil, util.LogError("[UserService] не удалось захэшировать пароль", err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PhoneNumber:  &phoneNumber,
		PasswordHash: passwordHash,
		Role:         role,
		Status:       model.StatusActive,
	}

	return s.userRepository.CreateUser(ctx, user)
}
