package handler

import (
	"net/http"
	"strconv"
	"strings"

	"collecto-backend/internal/model"
	"collecto-backend/internal/model/requestresponse"
	"collecto-backend/internal/ports"
)

type ProductHandler struct {
	ports.ProductService
}

func NewProductHandler(productService ports.ProductService) *ProductHandler {
	return &ProductHandler{productService}
}

// ListProducts godoc
// @Summary Список продуктов
// @Description Постраничный список с поиском по имени/SKU и фильтрами категории и бренда
// @Tags Products
// @Produce json
// @Param name query string false "Поиск по имени или SKU"
// @Param category_id query int false "Фильтр по категории"
// @Param brand_id query int false "Фильтр по бренду"
// @Param page query int false "Номер страницы"
// @Param limit query int false "Размер страницы"
// @Success 200 {object} requestresponse.ProductListResponse
// @Router /api/products [get]
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)
	categoryID, _ := strconv.ParseInt(r.URL.Query().Get("category_id"), 10, 64)
	brandID, _ := strconv.ParseInt(r.URL.Query().Get("brand_id"), 10, 64)

	products, total, err := h.ProductService.ListProducts(r.Context(), r.URL.Query().Get("name"), categoryID, brandID, page, limit)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, requestresponse.ProductListResponse{
		Products: products,
		Total:    total,
		Page:     page,
		Limit:    limit,
	})
}

// GetProduct godoc
// @Summary Карточка продукта
// @Description Карточка вместе с картинками, читается через кэш
// @Tags Products
// @Produce json
// @Param id path int true "ID продукта"
// @Success 200 {object} model.Product
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/products/{id} [get]
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "id")
	if err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "некорректный id продукта")
		return
	}

	product, err := h.ProductService.GetProduct(r.Context(), productID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, product)
}

// CreateProduct godoc
// @Summary Создание продукта
// @Description Принимает multipart форму, поле images — файлы картинок, первая становится основной
// @Tags Products
// @Accept mpfd
// @Produce json
// @Param Authorization header string true "Bearer токен администратора"
// @Param sku formData string true "Артикул"
// @Param name formData string true "Имя продукта"
// @Param category_id formData int true "ID категории"
// @Param brand_id formData int true "ID бренда"
// @Param original_price formData number false "Цена без скидки"
// @Param selling_price formData number true "Цена продажи"
// @Param images formData file false "Картинки продукта"
// @Success 201 {object} model.Product
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse "Категория или бренд не найдены"
// @Router /api/admin/products [post]
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "некорректная multipart форма")
		return
	}

	product, err := productFromForm(r)
	if err != nil {
		sendErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.ProductService.CreateProduct(r.Context(), product, r.MultipartForm.File["images"])
	if err != nil {
		handleServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusCreated, created)
}

// UpdateProduct godoc
// @Summary Обновление продукта
// @Description Поле delete_image_ids — id картинок на удаление через запятую, images — новые файлы
// @Tags Products
// @Accept mpfd
// @Produce json
// @Param Authorization header string true "Bearer токен администратора"
// @Param id path int true "ID продукта"
// @Param sku formData string true "Артикул"
// @Param name formData string true "Имя продукта"
// @Param category_id formData int true "ID категории"
// @Param brand_id formData int true "ID бренда"
// @Param selling_price formData number true "Цена продажи"
// @Param delete_image_ids formData string false "ID картинок на удаление, через запятую"
// @Param images formData file false "Новые картинки"
// @Success 200 {object} model.Product
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/admin/products/{id} [put]
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "id")
	if err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "некорректный id продукта")
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "некорректная multipart форма")
		return
	}

	product, err := productFromForm(r)
	if err != nil {
		sendErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	product.ID = productID

	deleteImageIDs, err := parseIDList(r.FormValue("delete_image_ids"))
	if err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "некорректный список id картинок")
		return
	}

	updated, err := h.ProductService.UpdateProduct(r.Context(), product, deleteImageIDs, r.MultipartForm.File["images"])
	if err != nil {
		handleServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, updated)
}

// ToggleProductActive godoc
// @Summary Переключение видимости продукта
// @Tags Products
// @Produce json
// @Param Authorization header string true "Bearer токен администратора"
// @Param id path int true "ID продукта"
// @Success 200 {object} model.Product
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/admin/products/{id}/toggle [put]
func (h *ProductHandler) ToggleProductActive(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "id")
	if err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "некорректный id продукта")
		return
	}

	updated, err := h.ProductService.ToggleProductActive(r.Context(), productID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, updated)
}

// DeleteProduct godoc
// @Summary Удаление продукта
// @Tags Products
// @Produce json
// @Param Authorization header string true "Bearer токен администратора"
// @Param id path int true "ID продукта"
// @Success 200 {object} requestresponse.MessageResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/admin/products/{id} [delete]
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "id")
	if err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "некорректный id продукта")
		return
	}

	if err := h.ProductService.DeleteProduct(r.Context(), productID); err != nil {
		handleServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, requestresponse.MessageResponse{Message: "продукт удалён"})
}

// SetPrimaryImage godoc
// @Summary Назначение основной картинки продукта
// @Description Атомарно переносит флаг, основная картинка всегда ровно одна
// @Tags Products
// @Produce json
// @Param Authorization header string true "Bearer токен администратора"
// @Param id path int true "ID продукта"
// @Param imageId path int true "ID картинки"
// @Success 200 {object} requestresponse.MessageResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/admin/products/{id}/images/{imageId}/primary [put]
func (h *ProductHandler) SetPrimaryImage(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "id")
	if err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "некорректный id продукта")
		return
	}

	imageID, err := pathID(r, "imageId")
	if err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "некорректный id картинки")
		return
	}

	if err := h.ProductService.SetPrimaryImage(r.Context(), productID, imageID); err != nil {
		handleServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, requestresponse.MessageResponse{Message: "основная картинка обновлена"})
}

func productFromForm(r *http.Request) (*model.Product, error) {
	categoryID, err := strconv.ParseInt(r.FormValue("category_id"), 10, 64)
	if err != nil {
		return nil, errBadForm("category_id")
	}
	brandID, err := strconv.ParseInt(r.FormValue("brand_id"), 10, 64)
	if err != nil {
		return nil, errBadForm("brand_id")
	}
	sellingPrice, err := strconv.ParseFloat(r.FormValue("selling_price"), 64)
	if err != nil {
		return nil, errBadForm("selling_price")
	}

	originalPrice := sellingPrice
	if raw := r.FormValue("original_price"); raw != "" {
		originalPrice, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, errBadForm("original_price")
		}
	}

	return &model.Product{
		SKU:             r.FormValue("sku"),
		Name:            r.FormValue("name"),
		Description:     optionalFormValue(r, "description"),
		Details:         optionalFormValue(r, "details"),
		CategoryID:      categoryID,
		BrandID:         brandID,
		Scale:           optionalFormValue(r, "scale"),
		DifficultyLevel: optionalFormValue(r, "difficulty_level"),
		Material:        optionalFormValue(r, "material"),
		Weight:          optionalFormValue(r, "weight"),
		Dimensions:      optionalFormValue(r, "dimensions"),
		AgeRating:       optionalFormValue(r, "age_rating"),
		OriginalPrice:   originalPrice,
		SellingPrice:    sellingPrice,
	}, nil
}

// parseIDList : "1,2,3" -> []int64{1,2,3}
func parseIDList(raw string) ([]int64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

type formFieldError struct {
	field string
}

func (e *formFieldError) Error() string {
	return "некорректное значение поля " + e.field
}

func errBadForm(field string) error {
	return &formFieldError{field}
}
