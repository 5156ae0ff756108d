package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"collecto-backend/internal/apperror"
	"collecto-backend/internal/util"

	"github.com/go-chi/chi/v5"
)

func sendErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	util.HandleError(w, message, statusCode)
}

// handleServiceError переводит типизированную ошибку сервиса в HTTP ответ.
// Детали внутренних ошибок наружу не уходят
func handleServiceError(w http.ResponseWriter, err error) {
	util.HandleError(w, apperror.UserMessage(err), apperror.HTTPStatus(err))
}

func sendJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

// parsePagination : query параметры page и limit с безопасными дефолтами
func parsePagination(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}

// pathID : числовой параметр из пути
func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}

// derefString : значение опционального строкового поля запроса
func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
