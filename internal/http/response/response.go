// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов HTTP‑обработчиков. Пакет упрощает возврат
// успешных ответов, ошибок и сообщений валидации в едином формате.
package response

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/AleFeri/cof-me-up/internal/models"
)

// Response описывает стандартную структуру JSON‑ответа сервера.
// Поле Status — статус запроса ("OK" или "Error").
// Поле Error — текст ошибки (опционально, при неуспехе).
// Поле Data — данные ответа (опционально, при успехе).
type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	Data   any    `json:"data,omitempty"`
}

// ErrorResponse — структура ошибки для Swagger-документации.
// Используется в аннотациях @Failure как возвращаемый тип ошибки.
type ErrorResponse struct {
	Status string `json:"status" example:"Error"`
	Error  string `json:"error" example:"invalid request body"`
}

const (
	// StatusOK — значение статуса для успешного ответа.
	StatusOK = "OK"
	// StatusError — значение статуса для ответа с ошибкой.
	StatusError = "Error"
)

// StatusOKWithData возвращает успешный Response с переданными данными.
func StatusOKWithData(data any) Response {
	return Response{
		Status: StatusOK,
		Data:   data,
	}
}

// Error возвращает Response с ошибкой и переданным сообщением.
func Error(msg string) ErrorResponse {
	return ErrorResponse{
		Status: StatusError,
		Error:  msg,
	}
}

// ValidationError формирует Response со статусом Error на основе ошибок валидации.
// Каждое нарушение формируется в человеко‑читаемый текст, объединённый через запятую.
func ValidationError(errs validator.ValidationErrors) Response {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "alphanum":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s can contain only numbers and letters", err.Field()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email", err.Field()))
		case "url":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid url", err.Field()))
		case "uuid":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s can contain only uuid", err.Field()))
		case "min", "max":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s has invalid length", err.Field()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return Response{
		Status: StatusError,
		Error:  strings.Join(errsMsgs, ", "),
	}
}

// FromError подбирает HTTP-статус и сообщение для ошибки сервисного слоя.
// Внутренние детали (op, текст драйвера) наружу не попадают.
func FromError(err error) (int, string) {
	switch {
	case errors.Is(err, models.ErrWebhookVerification):
		return http.StatusBadRequest, models.ErrWebhookVerification.Error()
	case errors.Is(err, models.ErrValidation):
		return http.StatusUnprocessableEntity, detail(err, models.ErrValidation)
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound, models.ErrNotFound.Error()
	case errors.Is(err, models.ErrUnauthorized):
		return http.StatusForbidden, models.ErrUnauthorized.Error()
	case errors.Is(err, models.ErrConflict):
		return http.StatusConflict, detail(err, models.ErrConflict)
	case errors.Is(err, models.ErrPaymentGateway):
		return http.StatusBadGateway, "payment provider is unavailable"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

// WithError пишет ответ с ошибкой, статус выбирается через FromError.
func WithError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := FromError(err)
	render.Status(r, status)
	render.JSON(w, r, Error(msg))
}

// detail отрезает от текста ошибки всё, что стоит до сентинела: "auth.Register: already exists: email" -> "already exists: email".
func detail(err, sentinel error) string {
	msg := err.Error()
	if idx := strings.Index(msg, sentinel.Error()); idx >= 0 {
		return msg[idx:]
	}
	return sentinel.Error()
}
