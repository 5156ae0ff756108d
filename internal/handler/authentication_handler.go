package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"collecto-backend/config"
	"collecto-backend/internal/model/requestresponse"
	"collecto-backend/internal/ports"
)

const refreshTokenCookie = "refreshToken"

type AuthenticationHandler struct {
	ports.AuthenticationService
	jwtConfig *config.JWTConfig
}

func NewAuthenticationHandler(authenticationService ports.AuthenticationService, jwtConfig *config.JWTConfig) *AuthenticationHandler {
	return &AuthenticationHandler{authenticationService, jwtConfig}
}

// Register godoc
// @Summary Регистрация пользователя
// @Description Создаёт новую учётную запись с ролью user
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.RegisterRequest true "Тело запроса"
// @Success 201 {object} model.User
// @Failure 400 {object} requestresponse.ErrorResponse "Некорректный JSON или пустые поля"
// @Failure 409 {object} requestresponse.ErrorResponse "Email уже занят"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/auth/register [post]
func (h *AuthenticationHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "некорректный JSON")
		return
	}

	user, err := h.AuthenticationService.Register(r.Context(), req.Name, req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusCreated, user)
}

// Login godoc
// @Summary Аутентификация пользователя
// @Description Возвращает access токен, refresh токен кладётся в httpOnly cookie
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.LoginRequest true "Тело запроса"
// @Success 200 {object} requestresponse.LoginResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Неверный пароль"
// @Failure 403 {object} requestresponse.ErrorResponse "Учётная запись заблокирована"
// @Failure 404 {object} requestresponse.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/auth/login [post]
func (h *AuthenticationHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "некорректный JSON")
		return
	}
	if req.Email == "" || req.Password == "" {
		sendErrorResponse(w, http.StatusBadRequest, "email и password обязательны")
		return
	}

	user, tokens, err := h.AuthenticationService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	h.setRefreshCookie(w, tokens.RefreshToken)

	sendJSON(w, http.StatusOK, requestresponse.LoginResponse{
		AccessToken: tokens.AccessToken,
		User:        user,
	})
}

// Logout godoc
// @Summary Выход из системы
// @Description Отзывает текущую сессию. Повторный вызов с тем же токеном — no-op
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.LogoutRequest false "Refresh токен, если не передан в cookie"
// @Success 200 {object} requestresponse.MessageResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Невалидный refresh токен"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/auth/logout [post]
func (h *AuthenticationHandler) Logout(w http.ResponseWriter, r *http.Request) {
	rawToken := h.extractRefreshToken(r)
	if rawToken == "" {
		sendErrorResponse(w, http.StatusBadRequest, "refresh токен не передан")
		return
	}

	if err := h.AuthenticationService.Logout(r.Context(), rawToken); err != nil {
		handleServiceError(w, err)
		return
	}

	h.clearRefreshCookie(w)
	sendJSON(w, http.StatusOK, requestresponse.MessageResponse{Message: "выход выполнен"})
}

// RenewAccessToken godoc
// @Summary Обновление access токена
// @Description Выпускает новый access токен по живому refresh токену, без ротации
// @Tags Authentication
// @Produce json
// @Success 200 {object} requestresponse.RenewTokenResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Токен просрочен или невалиден"
// @Failure 403 {object} requestresponse.ErrorResponse "Сессия отозвана"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/auth/refresh [post]
func (h *AuthenticationHandler) RenewAccessToken(w http.ResponseWriter, r *http.Request) {
	rawToken := h.extractRefreshToken(r)
	if rawToken == "" {
		sendErrorResponse(w, http.StatusBadRequest, "refresh токен не передан")
		return
	}

	accessToken, err := h.AuthenticationService.RenewAccessToken(r.Context(), rawToken)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, requestresponse.RenewTokenResponse{AccessToken: accessToken})
}

// extractRefreshToken достаёт refresh токен: cookie, затем заголовок, затем тело
func (h *AuthenticationHandler) extractRefreshToken(r *http.Request) string {
	if cookie, err := r.Cookie(refreshTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	if headerToken := r.Header.Get("X-Refresh-Token"); headerToken != "" {
		return headerToken
	}

	var req requestresponse.LogoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
		return req.RefreshToken
	}
	return ""
}

func (h *AuthenticationHandler) setRefreshCookie(w http.ResponseWriter, refreshToken string) {
	maxAge := 0
	if ttl, err := time.ParseDuration(h.jwtConfig.RefreshTokenTTL); err == nil {
		maxAge = int(ttl.Seconds())
	}

	http.SetCookie(w, &http.Cookie{
		Name:     refreshTokenCookie,
		Value:    refreshToken,
		Path:     "/api/auth",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthenticationHandler) clearRefreshCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshTokenCookie,
		Value:    "",
		Path:     "/api/auth",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
