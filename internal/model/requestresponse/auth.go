package requestresponse

import "collecto-backend/internal/model"

type RegisterRequest struct {
	Name            string `json:"name" example:"Иван Петров"`
	Email           string `json:"email" example:"user@example.com"`
	Password        string `json:"password" example:"StrongPass123!"`
	ConfirmPassword string `json:"confirm_password" example:"StrongPass123!"`
}

type LoginRequest struct {
	Email    string `json:"email" example:"user@example.com"`
	Password string `json:"password" example:"StrongPass123!"`
}

// LoginResponse : access токен в теле, refresh токен уезжает в httpOnly cookie
type LoginResponse struct {
	AccessToken string      `json:"access_token"`
	User        *model.User `json:"user"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token,omitempty"`
}

type RenewTokenResponse struct {
	AccessToken string `json:"access_token"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
