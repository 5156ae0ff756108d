package handler

import (
	"mime/multipart"
	"net/http"

	"collecto-backend/internal/model"
	"collecto-backend/internal/model/requestresponse"
	"collecto-backend/internal/ports"
)

// лимит размера multipart тела с картинками
const maxUploadSize = 32 << 20

type BrandHandler struct {
	ports.BrandService
}

func NewBrandHandler(brandService ports.BrandService) *BrandHandler {
	return &BrandHandler{brandService}
}

// ListBrands godoc
// @Summary Список брендов
// @Description Постраничный список, query параметр name включает поиск по имени и стране
// @Tags Brands
// @Produce json
// @Param name query string false "Поиск по имени или стране"
// @Param page query int false "Номер страницы"
// @Param limit query int false "Размер страницы"
// @Success 200 {object} requestresponse.BrandListResponse
// @Router /api/brands [get]
func (h *BrandHandler) ListBrands(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)

	brands, total, err := h.BrandService.ListBrands(r.Context(), r.URL.Query().Get("name"), page, limit)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, requestresponse.BrandListResponse{
		Brands: brands,
		Total:  total,
		Page:   page,
		Limit:  limit,
	})
}

// GetBrand godoc
// @Summary Бренд по id
// @Tags Brands
// @Produce json
// @Param id path int true "ID бренда"
// @Success 200 {object} model.Brand
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/brands/{id} [get]
func (h *BrandHandler) GetBrand(w http.ResponseWriter, r *http.Request) {
	brandID, err := pathID(r, "id")
	if err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "некорректный id бренда")
		return
	}

	brand, err := h.BrandService.GetBrand(r.Context(), brandID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, brand)
}

// CreateBrand godoc
// @Summary Создание бренда
// @Description Принимает multipart форму, поле logo — файл логотипа
// @Tags Brands
// @Accept mpfd
// @Produce json
// @Param Authorization header string true "Bearer токен администратора"
// @Param name formData string true "Имя бренда"
// @Param description formData string false "Описание"
// @Param website formData string false "Сайт"
// @Param country formData string false "Страна"
// @Param logo formData file false "Логотип"
// @Success 201 {object} model.Brand
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Router /api/admin/brands [post]
func (h *BrandHandler) CreateBrand(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "некорректная multipart форма")
		return
	}

	brand := brandFromForm(r)
	logo, logoHeader := formFile(r, "logo")
	if logo != nil {
		defer logo.Close()
	}

	created, err := h.BrandService.CreateBrand(r.Context(), brand, logo, logoHeader)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusCreated, created)
}

// UpdateBrand godoc
// @Summary Обновление бренда
// @Description Новый логотип замещает старый
// @Tags Brands
// @Accept mpfd
// @Produce json
// @Param Authorization header string true "Bearer токен администратора"
// @Param id path int true "ID бренда"
// @Param name formData string true "Имя бренда"
// @Param description formData string false "Описание"
// @Param website formData string false "Сайт"
// @Param country formData string false "Страна"
// @Param logo formData file false "Логотип"
// @Success 200 {object} model.Brand
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/admin/brands/{id} [put]
func (h *BrandHandler) UpdateBrand(w http.ResponseWriter, r *http.Request) {
	brandID, err := pathID(r, "id")
	if err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "некорректный id бренда")
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "некорректная multipart форма")
		return
	}

	brand := brandFromForm(r)
	brand.ID = brandID
	logo, logoHeader := formFile(r, "logo")
	if logo != nil {
		defer logo.Close()
	}

	updated, err := h.BrandService.UpdateBrand(r.Context(), brand, logo, logoHeader)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, updated)
}

// DeleteBrand godoc
// @Summary Удаление бренда
// @Tags Brands
// @Produce json
// @Param Authorization header string true "Bearer токен администратора"
// @Param id path int true "ID бренда"
// @Success 200 {object} requestresponse.MessageResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/admin/brands/{id} [delete]
func (h *BrandHandler) DeleteBrand(w http.ResponseWriter, r *http.Request) {
	brandID, err := pathID(r, "id")
	if err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "некорректный id бренда")
		return
	}

	if err := h.BrandService.DeleteBrand(r.Context(), brandID); err != nil {
		handleServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, requestresponse.MessageResponse{Message: "бренд удалён"})
}

func brandFromForm(r *http.Request) *model.Brand {
	return &model.Brand{
		Name:        r.FormValue("name"),
		Description: optionalFormValue(r, "description"),
		Website:     optionalFormValue(r, "website"),
		Country:     optionalFormValue(r, "country"),
	}
}

// optionalFormValue : nil, если поле в форме не передано
func optionalFormValue(r *http.Request, name string) *string {
	values, ok := r.MultipartForm.Value[name]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}

// formFile : файл из multipart формы, (nil, nil) если поле не передано
func formFile(r *http.Request, name string) (multipart.File, *multipart.FileHeader) {
	file, header, err := r.FormFile(name)
	if err != nil {
		return nil, nil
	}
	return file, header
}
