package handler

import (
	"encoding/json"
	"net/http"

	"collecto-backend/internal/model/requestresponse"
	"collecto-backend/internal/ports"
	"collecto-backend/internal/security"
)

type UserHandler struct {
	ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService}
}

// GetProfile godoc
// @Summary Профиль текущего пользователя
// @Tags Users
// @Produce json
// @Param Authorization header string true "Bearer токен"
// @Success 200 {object} model.User
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/users/me [get]
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		sendErrorResponse(w, http.StatusUnauthorized, "не авторизован")
		return
	}

	user, err := h.UserService.GetProfile(r.Context(), claims.UserID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, user)
}

// UpdateProfile godoc
// @Summary Обновление профиля
// @Description Обновляет только переданные поля. Пустой запрос отклоняется
// @Tags Users
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer токен"
// @Param body body requestresponse.UpdateProfileRequest true "Тело запроса"
// @Success 200 {object} model.User
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Router /api/users/me [put]
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		sendErrorResponse(w, http.StatusUnauthorized, "не авторизован")
		return
	}

	var req requestresponse.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "некорректный JSON")
		return
	}

	user, err := h.UserService.UpdateProfile(r.Context(), claims.UserID, req.Name, req.PhoneNumber, req.DateOfBirth, req.Gender)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, user)
}

// ChangePassword godoc
// @Summary Смена пароля
// @Description Меняет пароль после проверки старого и отзывает все сессии
// @Tags Users
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer токен"
// @Param body body requestresponse.ChangePasswordRequest true "Тело запроса"
// @Success 200 {object} requestresponse.MessageResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Router /api/users/me/password [put]
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		sendErrorResponse(w, http.StatusUnauthorized, "не авторизован")
		return
	}

	var req requestresponse.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "некорректный JSON")
		return
	}

	if err := h.UserService.ChangePassword(r.Context(), claims.UserID, req.OldPassword, req.NewPassword, req.ConfirmNewPassword); err != nil {
		handleServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, requestresponse.MessageResponse{Message: "пароль изменён"})
}

// ListUsers godoc
// @Summary Список пользователей
// @Description Постраничный список, доступен только администратору
// @Tags Users
// @Produce json
// @Param Authorization header string true "Bearer токен"
// @Param page query int false "Номер страницы"
// @Param limit query int false "Размер страницы"
// @Success 200 {object} requestresponse.UserListResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Router /api/admin/users [get]
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)

	users, total, err := h.UserService.ListUsers(r.Context(), page, limit)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, requestresponse.UserListResponse{
		Users: users,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// CreateUser godoc
// @Summary Создание пользователя администратором
// @Description Начальный пароль — номер телефона
// @Tags Users
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer токен"
// @Param body body requestresponse.CreateUserRequest true "Тело запроса"
// @Success 201 {object} model.User
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 409 {object} requestresponse.ErrorResponse
// @Router /api/admin/users [post]
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "некорректный JSON")
		return
	}

	user, err := h.UserService.CreateUser(r.Context(), req.Name, req.Email, req.PhoneNumber, req.Role)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusCreated, user)
}
