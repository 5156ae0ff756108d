package handler

import (
	"encoding/json"
	"net/http"

	"collecto-backend/internal/model"
	"collecto-backend/internal/model/requestresponse"
	"collecto-backend/internal/ports"
	"collecto-backend/internal/security"
)

type AddressHandler struct {
	ports.AddressService
}

func NewAddressHandler(addressService ports.AddressService) *AddressHandler {
	return &AddressHandler{addressService}
}

// ListAddresses godoc
// @Summary Адреса текущего пользователя
// @Description Постраничный список, дефолтный адрес первым
// @Tags Addresses
// @Produce json
// @Param Authorization header string true "Bearer токен"
// @Param page query int false "Номер страницы"
// @Param limit query int false "Размер страницы"
// @Success 200 {object} requestresponse.AddressListResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Router /api/addresses [get]
func (h *AddressHandler) ListAddresses(w http.ResponseWriter, r *http.Request) {
	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		sendErrorResponse(w, http.StatusUnauthorized, "не авторизован")
		return
	}

	page, limit := parsePagination(r)
	addresses, total, err := h.AddressService.ListAddresses(r.Context(), claims.UserID, page, limit)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, requestresponse.AddressListResponse{
		Addresses: addresses,
		Total:     total,
		Page:      page,
		Limit:     limit,
	})
}

// CreateAddress godoc
// @Summary Добавление адреса
// @Description Первый адрес пользователя автоматически становится дефолтным
// @Tags Addresses
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer токен"
// @Param body body requestresponse.AddressRequest true "Тело запроса"
// @Success 201 {object} model.Address
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Router /api/addresses [post]
func (h *AddressHandler) CreateAddress(w http.ResponseWriter, r *http.Request) {
	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		sendErrorResponse(w, http.StatusUnauthorized, "не авторизован")
		return
	}

	var req requestresponse.AddressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "некорректный JSON")
		return
	}

	address := &model.Address{
		UserID:         claims.UserID,
		RecipientName:  req.RecipientName,
		RecipientPhone: req.RecipientPhone,
		Address:        req.Address,
		Province:       derefString(req.Province),
		Ward:           derefString(req.Ward),
	}

	created, err := h.AddressService.CreateAddress(r.Context(), address)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusCreated, created)
}

// UpdateAddress godoc
// @Summary Обновление адреса
// @Description Флаг дефолтного адреса этой операцией не меняется
// @Tags Addresses
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer токен"
// @Param id path int true "ID адреса"
// @Param body body requestresponse.AddressRequest true "Тело запроса"
// @Success 200 {object} model.Address
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/addresses/{id} [put]
func (h *AddressHandler) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		sendErrorResponse(w, http.StatusUnauthorized, "не авторизован")
		return
	}

	addressID, err := pathID(r, "id")
	if err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "некорректный id адреса")
		return
	}

	var req requestresponse.AddressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "некорректный JSON")
		return
	}

	address := &model.Address{
		ID:             addressID,
		UserID:         claims.UserID,
		RecipientName:  req.RecipientName,
		RecipientPhone: req.RecipientPhone,
		Address:        req.Address,
		Province:       derefString(req.Province),
		Ward:           derefString(req.Ward),
	}

	updated, err := h.AddressService.UpdateAddress(r.Context(), claims.UserID, address)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, updated)
}

// DeleteAddress godoc
// @Summary Удаление адреса
// @Description Дефолтный адрес удалить нельзя
// @Tags Addresses
// @Produce json
// @Param Authorization header string true "Bearer токен"
// @Param id path int true "ID адреса"
// @Success 200 {object} requestresponse.MessageResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/addresses/{id} [delete]
func (h *AddressHandler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		sendErrorResponse(w, http.StatusUnauthorized, "не авторизован")
		return
	}

	addressID, err := pathID(r, "id")
	if err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "некорректный id адреса")
		return
	}

	if err := h.AddressService.DeleteAddress(r.Context(), claims.UserID, addressID); err != nil {
		handleServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, requestresponse.MessageResponse{Message: "адрес удалён"})
}

// SetDefaultAddress godoc
// @Summary Назначение дефолтного адреса
// @Description Атомарно переносит флаг, дефолтный адрес всегда ровно один
// @Tags Addresses
// @Produce json
// @Param Authorization header string true "Bearer токен"
// @Param id path int true "ID адреса"
// @Success 200 {object} model.Address
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/addresses/{id}/default [put]
func (h *AddressHandler) SetDefaultAddress(w http.ResponseWriter, r *http.Request) {
	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		sendErrorResponse(w, http.StatusUnauthorized, "не авторизован")
		return
	}

	addressID, err := pathID(r, "id")
	if err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "некорректный id адреса")
		return
	}

	updated, err := h.AddressService.SetDefaultAddress(r.Context(), claims.UserID, addressID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, updated)
}
