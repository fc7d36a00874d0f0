package respond

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	apperrors "orderdesk/internal/errors"
)

type ErrorResponse struct {
	TraceID   string                       `json:"traceId"`
	Status    int                          `json:"status"`
	Code      string                       `json:"code"`
	Message   string                       `json:"message"`
	Details   []apperrors.ValidationDetail `json:"details,omitempty"`
	Timestamp time.Time                    `json:"timestamp"`
}

func JSON(w http.ResponseWriter, status int, data interface{}, logger *zap.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}

func Validation(w http.ResponseWriter, traceID string, message string, logger *zap.Logger, details ...apperrors.ValidationDetail) {
	JSON(w, http.StatusBadRequest, ErrorResponse{
		TraceID:   traceID,
		Status:    http.StatusBadRequest,
		Code:      "VALIDATION_ERROR",
		Message:   message,
		Details:   details,
		Timestamp: time.Now().UTC(),
	}, logger)
}

// Error maps a typed application error onto its status code. Anything
// untyped is logged and reported as a 500 without leaking the cause.
func Error(w http.ResponseWriter, traceID string, err error, logger *zap.Logger) {
	status, code, message := Classify(err)
	if status == http.StatusInternalServerError {
		logger.Error("unexpected error", zap.String("traceId", traceID), zap.Error(err))
	}

	resp := ErrorResponse{
		TraceID:   traceID,
		Status:    status,
		Code:      code,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
	if ve, ok := apperrors.IsValidationError(err); ok {
		resp.Details = ve.Details
	}

	JSON(w, status, resp, logger)
}

func Classify(err error) (int, string, string) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		return http.StatusBadRequest, "VALIDATION_ERROR", ve.Message
	}
	if ice, ok := apperrors.IsInvalidCredentialsError(err); ok {
		return http.StatusUnauthorized, "INVALID_CREDENTIALS", ice.Error()
	}
	if ue, ok := apperrors.IsUnauthorizedError(err); ok {
		return http.StatusUnauthorized, "UNAUTHORIZED", ue.Message
	}
	if fe, ok := apperrors.IsForbiddenError(err); ok {
		return http.StatusForbidden, "FORBIDDEN", fe.Message
	}
	if nfe, ok := apperrors.IsNotFoundError(err); ok {
		return http.StatusNotFound, "NOT_FOUND", nfe.Message
	}
	if sue, ok := apperrors.IsSourceUnavailableError(err); ok {
		return http.StatusServiceUnavailable, "SOURCE_UNAVAILABLE", sue.Source + " unavailable"
	}
	return http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred"
}
