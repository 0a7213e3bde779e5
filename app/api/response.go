package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/aurumatelier/jewelry-catalog/models"
	"go.uber.org/zap"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func OKResponse(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, data)
}

func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func WriteFieldError(w http.ResponseWriter, status int, message, field string) {
	WriteJSON(w, status, ErrorResponse{Error: message, Field: field})
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteFieldError(w, status, message, "")
}

// DomainError writes the response for an error coming out of the models
// package. Unknown errors are logged and answered with fallback as a 500.
func DomainError(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error, fallback string) {
	var verr *models.ValidationError
	var rerr *models.ReferentialIntegrityError
	fields := []zap.Field{zap.Error(err), zap.String("request_id", RequestID(r.Context()))}

	switch {
	case errors.As(err, &verr):
		log.Debug("validation failed", fields...)
		WriteFieldError(w, http.StatusBadRequest, verr.Reason, verr.Field)
	case errors.As(err, &rerr):
		log.Debug("delete blocked", fields...)
		WriteError(w, http.StatusConflict, rerr.Error())
	case models.IsNotFound(err):
		log.Debug("not found", fields...)
		WriteError(w, http.StatusNotFound, err.Error())
	default:
		log.Error(fallback, fields...)
		WriteError(w, http.StatusInternalServerError, fallback)
	}
}

// DecodeJSON reads the request body into v, answering 400 on malformed input.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return false
	}
	return true
}

// PathID parses the {id} path value, answering 400 when it is not a positive integer.
func PathID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil || id == 0 {
		WriteError(w, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return uint(id), true
}
