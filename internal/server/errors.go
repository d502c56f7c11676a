package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/cloud-ru/deposit-fund-compare-go/internal/calculations"
	"github.com/cloud-ru/deposit-fund-compare-go/internal/funddata"
)

// AppError - ошибка API с кодом, сообщением для клиента и HTTP-статусом
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

func (e *AppError) Error() string { return e.Message }

func (e *AppError) Unwrap() error { return e.Internal }

var (
	ErrInvalidInput        = &AppError{Code: "INVALID_INPUT", Message: "Неверные входные данные", StatusCode: http.StatusBadRequest}
	ErrFundNotFound        = &AppError{Code: "FUND_NOT_FOUND", Message: "Фонд не найден", StatusCode: http.StatusNotFound}
	ErrUnknownTool         = &AppError{Code: "UNKNOWN_TOOL", Message: "Неизвестный инструмент", StatusCode: http.StatusNotFound}
	ErrFundDataUnavailable = &AppError{Code: "FUND_DATA_UNAVAILABLE", Message: "Данные фондов временно недоступны", StatusCode: http.StatusServiceUnavailable}
	ErrInternalServer      = &AppError{Code: "INTERNAL_ERROR", Message: "Внутренняя ошибка сервера", StatusCode: http.StatusInternalServerError}
)

// wrapError копирует код и статус шаблона и сохраняет исходную ошибку
func wrapError(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// withMessage копирует шаблон с сообщением для клиента
func withMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
	}
}

// toAppError сопоставляет доменные ошибки с ответами API.
// Текст ошибок ввода и поиска фонда отдается клиенту, остальные скрываются.
func toAppError(err error) *AppError {
	var appErr *AppError
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, calculations.ErrInvalidInput):
		return withMessage(ErrInvalidInput, err.Error())
	case errors.Is(err, funddata.ErrFundNotFound):
		return withMessage(ErrFundNotFound, err.Error())
	case errors.Is(err, funddata.ErrNoData),
		errors.Is(err, funddata.ErrMalformedData),
		errors.Is(err, funddata.ErrDuplicateFund),
		errors.Is(err, context.DeadlineExceeded):
		return wrapError(ErrFundDataUnavailable, err)
	default:
		return wrapError(ErrInternalServer, err)
	}
}
