package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/m04kA/SMC-SpaceBookingService/internal/engine"
)

const (
	msgInternalError = "внутренняя ошибка сервера"

	// maxBodyBytes ограничение на размер тела запроса
	maxBodyBytes = 1 << 20
)

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"` // код отказа движка, например OVERLAP
}

// ValidationErrorResponse тело ответа при невалидных правилах
type ValidationErrorResponse struct {
	Error   string          `json:"error"`
	Reasons []engine.Reason `json:"reasons"`
}

// RespondJSON пишет v в формате JSON с указанным статусом
func RespondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// RespondError пишет ошибку с указанным статусом
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Error: message})
}

// RespondBadRequest 400
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

// RespondUnauthorized 401
func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

// RespondForbidden 403
func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

// RespondNotFound 404
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

// RespondInternalError 500 без деталей
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// RejectionStatus HTTP статус для отказа движка: занятость интервала - 409,
// остальные отказы - 422
func RejectionStatus(reason engine.Reason) int {
	switch reason {
	case engine.ReasonOverlap, engine.ReasonConflict, engine.ReasonInvalidTransition:
		return http.StatusConflict
	default:
		return http.StatusUnprocessableEntity
	}
}

// RespondRejection пишет отказ движка с кодом причины.
// Возвращает false, если err не содержит отказа.
func RespondRejection(w http.ResponseWriter, err error, message string) bool {
	reason, ok := engine.ReasonOf(err)
	if !ok {
		return false
	}
	RespondJSON(w, RejectionStatus(reason), ErrorResponse{Error: message, Reason: string(reason)})
	return true
}

// RespondValidation 400 со списком всех нарушенных правил
func RespondValidation(w http.ResponseWriter, err error, message string) {
	RespondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
		Error:   message,
		Reasons: engine.ValidationReasons(err),
	})
}

// DecodeJSON читает тело запроса в v, отклоняя неизвестные поля
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("empty body")
	}

	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}
