package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind определяет стабильную категорию ошибки.
// Хендлеры отображают категорию в HTTP-статус, сервисы — только назначают её
type Kind int

const (
	KindInternal Kind = iota
	KindBadRequest
	KindNotFound
	KindConflict
	KindForbidden
)

type AppError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

func BadRequest(message string) *AppError { return New(KindBadRequest, message) }
func NotFound(message string) *AppError   { return New(KindNotFound, message) }
func Conflict(message string) *AppError   { return New(KindConflict, message) }
func Forbidden(message string) *AppError  { return New(KindForbidden, message) }
func Internal(message string, err error) *AppError {
	return Wrap(KindInternal, message, err)
}

// KindOf возвращает категорию ошибки; всё неизвестное считается внутренней ошибкой
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// HTTPStatus отображает категорию в HTTP-статус.
// Соответствие фиксированное, клиенты на него полагаются
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// UserMessage возвращает текст для клиента, не раскрывая внутренние детали
func UserMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Kind != KindInternal {
		return appErr.Message
	}
	return "внутренняя ошибка сервера"
}
