package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"ilas-backend/internal/domain"
	"ilas-backend/internal/logger"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// writeError maps domain errors onto HTTP statuses. Every rejection body
// names the rule that failed; only unknown failures collapse to a generic
// 500.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrAlreadyIssued):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrItemUnavailable),
		errors.Is(err, domain.ErrBorrowerInactive),
		errors.Is(err, domain.ErrLoanLimitExceeded),
		errors.Is(err, domain.ErrNoActiveIssue),
		errors.Is(err, domain.ErrTerminalState),
		errors.Is(err, domain.ErrReturnRequiredFirst),
		errors.Is(err, domain.ErrInvalidStatusType):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrReturnMismatch),
		errors.Is(err, domain.ErrNotAuthorized):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrBookNotFound),
		errors.Is(err, domain.ErrMemberNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrLockWaitTimeout):
		// Retryable: the row lock was held by a concurrent operation.
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
	default:
		logger.Error("unhandled error", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}
