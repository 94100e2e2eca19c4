// Package handlers содержит общие помощники HTTP слоя; обработчики лежат в подпакетах.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

const (
	msgInternalError = "внутренняя ошибка сервера"
	msgTooMany       = "слишком много запросов, попробуйте позже"

	// maxBodySize ограничение размера тела запроса
	maxBodySize = 1 << 20
)

// ErrEmptyBody тело запроса пустое
var ErrEmptyBody = errors.New("request body is empty")

// ErrorResponse модель ошибки API
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// DecodeJSON декодирует тело запроса, неизвестные поля запрещены
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil || r.Body == http.NoBody {
		return ErrEmptyBody
	}

	decoder := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodySize))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}

	return nil
}

// PathInt64 извлекает положительный int64 параметр пути
func PathInt64(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", name, err)
	}
	if id <= 0 {
		return 0, fmt.Errorf("%s must be positive", name)
	}

	return id, nil
}

// RespondJSON пишет JSON ответ. При nil data пишется только статус.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	if data == nil {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// RespondError пишет ошибку в формате ErrorResponse
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Code: status, Message: message})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, message)
}

func RespondUnprocessable(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnprocessableEntity, message)
}

func RespondTooManyRequests(w http.ResponseWriter) {
	RespondError(w, http.StatusTooManyRequests, msgTooMany)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}
