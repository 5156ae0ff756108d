package handler

import (
	"net/http"
	"strconv"
	"time"

	"collecto-backend/internal/model"
	"collecto-backend/internal/model/requestresponse"
	"collecto-backend/internal/ports"
)

type BannerHandler struct {
	ports.BannerService
}

func NewBannerHandler(bannerService ports.BannerService) *BannerHandler {
	return &BannerHandler{bannerService}
}

// ListActiveBanners godoc
// @Summary Активные баннеры для витрины
// @Description Только активные, стартовавшие и не истёкшие, в порядке display_order
// @Tags Banners
// @Produce json
// @Success 200 {array} model.Banner
// @Router /api/banners [get]
func (h *BannerHandler) ListActiveBanners(w http.ResponseWriter, r *http.Request) {
	banners, err := h.BannerService.ListActiveBanners(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, banners)
}

// ListBanners godoc
// @Summary Список баннеров для админки
// @Description Постраничный список, query параметр title включает поиск
// @Tags Banners
// @Produce json
// @Param Authorization header string true "Bearer токен администратора"
// @Param title query string false "Поиск по заголовку"
// @Param page query int false "Номер страницы"
// @Param limit query int false "Размер страницы"
// @Success 200 {object} requestresponse.BannerListResponse
// @Router /api/admin/banners [get]
func (h *BannerHandler) ListBanners(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)

	banners, total, err := h.BannerService.ListBanners(r.Context(), r.URL.Query().Get("title"), page, limit)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, requestresponse.BannerListResponse{
		Banners: banners,
		Total:   total,
		Page:    page,
		Limit:   limit,
	})
}

// GetBanner godoc
// @Summary Баннер по id
// @Tags Banners
// @Produce json
// @Param Authorization header string true "Bearer токен администратора"
// @Param id path int true "ID баннера"
// @Success 200 {object} model.Banner
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/admin/banners/{id} [get]
func (h *BannerHandler) GetBanner(w http.ResponseWriter, r *http.Request) {
	bannerID, err := pathID(r, "id")
	if err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "некорректный id баннера")
		return
	}

	banner, err := h.BannerService.GetBanner(r.Context(), bannerID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, banner)
}

// CreateBanner godoc
// @Summary Создание баннера
// @Description Принимает multipart форму, поле image — файл картинки, обязателен
// @Tags Banners
// @Accept mpfd
// @Produce json
// @Param Authorization header string true "Bearer токен администратора"
// @Param title formData string true "Заголовок"
// @Param description formData string false "Описание"
// @Param redirect_link formData string false "Ссылка перехода"
// @Param display_order formData int false "Порядок показа"
// @Param start_date formData string false "Дата начала показа (RFC3339)"
// @Param end_date formData string false "Дата окончания показа (RFC3339)"
// @Param image formData file true "Картинка баннера"
// @Success 201 {object} model.Banner
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Router /api/admin/banners [post]
func (h *BannerHandler) CreateBanner(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "некорректная multipart форма")
		return
	}

	banner, err := bannerFromForm(r)
	if err != nil {
		sendErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	image, imageHeader := formFile(r, "image")
	if image != nil {
		defer image.Close()
	}

	created, err := h.BannerService.CreateBanner(r.Context(), banner, image, imageHeader)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusCreated, created)
}

// UpdateBanner godoc
// @Summary Обновление баннера
// @Description Новая картинка замещает старую
// @Tags Banners
// @Accept mpfd
// @Produce json
// @Param Authorization header string true "Bearer токен администратора"
// @Param id path int true "ID баннера"
// @Param title formData string true "Заголовок"
// @Param image formData file false "Новая картинка"
// @Success 200 {object} model.Banner
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/admin/banners/{id} [put]
func (h *BannerHandler) UpdateBanner(w http.ResponseWriter, r *http.Request) {
	bannerID, err := pathID(r, "id")
	if err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "некорректный id баннера")
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "некорректная multipart форма")
		return
	}

	banner, err := bannerFromForm(r)
	if err != nil {
		sendErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	banner.ID = bannerID

	image, imageHeader := formFile(r, "image")
	if image != nil {
		defer image.Close()
	}

	updated, err := h.BannerService.UpdateBanner(r.Context(), banner, image, imageHeader)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, updated)
}

// ToggleBannerActive godoc
// @Summary Переключение видимости баннера
// @Tags Banners
// @Produce json
// @Param Authorization header string true "Bearer токен администратора"
// @Param id path int true "ID баннера"
// @Success 200 {object} model.Banner
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/admin/banners/{id}/toggle [put]
func (h *BannerHandler) ToggleBannerActive(w http.ResponseWriter, r *http.Request) {
	bannerID, err := pathID(r, "id")
	if err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "некорректный id баннера")
		return
	}

	updated, err := h.BannerService.ToggleBannerActive(r.Context(), bannerID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, updated)
}

// DeleteBanner godoc
// @Summary Удаление баннера
// @Tags Banners
// @Produce json
// @Param Authorization header string true "Bearer токен администратора"
// @Param id path int true "ID баннера"
// @Success 200 {object} requestresponse.MessageResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/admin/banners/{id} [delete]
func (h *BannerHandler) DeleteBanner(w http.ResponseWriter, r *http.Request) {
	bannerID, err := pathID(r, "id")
	if err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "некорректный id баннера")
		return
	}

	if err := h.BannerService.DeleteBanner(r.Context(), bannerID); err != nil {
		handleServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, requestresponse.MessageResponse{Message: "баннер удалён"})
}

func bannerFromForm(r *http.Request) (*model.Banner, error) {
	banner := &model.Banner{
		Title:        r.FormValue("title"),
		Description:  optionalFormValue(r, "description"),
		RedirectLink: optionalFormValue(r, "redirect_link"),
	}

	if raw := r.FormValue("display_order"); raw != "" {
		order, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errBadForm("display_order")
		}
		banner.DisplayOrder = &order
	}

	if raw := r.FormValue("start_date"); raw != "" {
		startDate, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, errBadForm("start_date")
		}
		banner.StartDate = startDate
	}

	if raw := r.FormValue("end_date"); raw != "" {
		endDate, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, errBadForm("end_date")
		}
		banner.EndDate = &endDate
	}

	return banner, nil
}
