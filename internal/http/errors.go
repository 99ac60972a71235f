package httpapi

import (
	"errors"
	"net/http"

	"hda-data/internal/domain"

	"go.uber.org/zap"
)

const retryMessage = "Could not reach the database. Please try again."

// writeError maps the domain error taxonomy onto status codes.
// Validation problems name the field; store failures get a retryable message.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var (
		vErr    *domain.ValidationError
		aErr    *domain.AuthError
		pErr    *domain.PersistenceError
		iErr    *domain.IntegrationError
		message string
		status  int
	)

	switch {
	case errors.As(err, &vErr):
		status, message = http.StatusBadRequest, vErr.Error()
	case errors.Is(err, domain.ErrLoginRejected):
		status, message = http.StatusUnauthorized, "login rejected"
	case errors.As(err, &aErr):
		writeJSON(w, http.StatusUnauthorized, Result[any]{
			Code:    ResultTokenExpired,
			Type:    "error",
			Message: aErr.Reason,
		})
		return
	case domain.IsNotFound(err):
		status, message = http.StatusNotFound, "record not found"
	case errors.As(err, &pErr):
		logger.Error("Persistence failure",
			zap.String("op", pErr.Op),
			zap.String("collection", string(pErr.Collection)),
			zap.String("code", pErr.Code),
			zap.Error(err),
		)
		status, message = http.StatusServiceUnavailable, retryMessage
	case errors.As(err, &iErr):
		status, message = http.StatusBadGateway, iErr.Error()
	case errors.Is(err, errBodyTooLarge):
		status, message = http.StatusRequestEntityTooLarge, err.Error()
	default:
		logger.Error("Unhandled error", zap.Error(err))
		status, message = http.StatusInternalServerError, "internal error"
	}
	writeJSON(w, status, Fail(message))
}
