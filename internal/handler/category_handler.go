package handler

import (
	"encoding/json"
	"net/http"

	"collecto-backend/internal/model"
	"collecto-backend/internal/model/requestresponse"
	"collecto-backend/internal/ports"
)

type CategoryHandler struct {
	ports.CategoryService
}

func NewCategoryHandler(categoryService ports.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService}
}

// ListCategories godoc
// @Summary Список категорий
// @Description Постраничный список, query параметр name включает поиск
// @Tags Categories
// @Produce json
// @Param name query string false "Поиск по имени"
// @Param page query int false "Номер страницы"
// @Param limit query int false "Размер страницы"
// @Success 200 {object} requestresponse.CategoryListResponse
// @Router /api/categories [get]
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)

	categories, total, err := h.CategoryService.ListCategories(r.Context(), r.URL.Query().Get("name"), page, limit)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, requestresponse.CategoryListResponse{
		Categories: categories,
		Total:      total,
		Page:       page,
		Limit:      limit,
	})
}

// GetCategory godoc
// @Summary Категория по id
// @Tags Categories
// @Produce json
// @Param id path int true "ID категории"
// @Success 200 {object} model.Category
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/categories/{id} [get]
func (h *CategoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := pathID(r, "id")
	if err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "некорректный id категории")
		return
	}

	category, err := h.CategoryService.GetCategory(r.Context(), categoryID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, category)
}

// CreateCategory godoc
// @Summary Создание категории
// @Tags Categories
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer токен администратора"
// @Param body body requestresponse.CategoryRequest true "Тело запроса"
// @Success 201 {object} model.Category
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Router /api/admin/categories [post]
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "некорректный JSON")
		return
	}

	created, err := h.CategoryService.CreateCategory(r.Context(), &model.Category{
		Name:        req.Name,
		Description: derefString(req.Description),
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusCreated, created)
}

// UpdateCategory godoc
// @Summary Обновление категории
// @Tags Categories
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer токен администратора"
// @Param id path int true "ID категории"
// @Param body body requestresponse.CategoryRequest true "Тело запроса"
// @Success 200 {object} model.Category
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/admin/categories/{id} [put]
func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := pathID(r, "id")
	if err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "некорректный id категории")
		return
	}

	var req requestresponse.CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "некорректный JSON")
		return
	}

	updated, err := h.CategoryService.UpdateCategory(r.Context(), &model.Category{
		ID:          categoryID,
		Name:        req.Name,
		Description: derefString(req.Description),
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, updated)
}

// ToggleCategoryActive godoc
// @Summary Переключение видимости категории
// @Tags Categories
// @Produce json
// @Param Authorization header string true "Bearer токен администратора"
// @Param id path int true "ID категории"
// @Success 200 {object} model.Category
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/admin/categories/{id}/toggle [put]
func (h *CategoryHandler) ToggleCategoryActive(w http.ResponseWriter, r *http.Request) {
	categoryID, err := pathID(r, "id")
	if err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "некорректный id категории")
		return
	}

	updated, err := h.CategoryService.ToggleCategoryActive(r.Context(), categoryID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, updated)
}

// DeleteCategory godoc
// @Summary Удаление категории
// @Tags Categories
// @Produce json
// @Param Authorization header string true "Bearer токен администратора"
// @Param id path int true "ID категории"
// @Success 200 {object} requestresponse.MessageResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/admin/categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := pathID(r, "id")
	if err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "некорректный id категории")
		return
	}

	if err := h.CategoryService.DeleteCategory(r.Context(), categoryID); err != nil {
		handleServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, requestresponse.MessageResponse{Message: "категория удалена"})
}
