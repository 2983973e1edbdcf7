package api

import (
	"net/http"

	apperrors "github.com/vytor/stageboard/internal/errors"
	"github.com/vytor/stageboard/internal/logger"
)

// handleError centralizes error handling for HTTP responses. Only the
// AppError message reaches the client; the wrapped cause is logged.
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())
	appErr := apperrors.As(err)

	if appErr.Status >= 500 {
		log.Error("server error: %v", appErr)
	} else if appErr.Status >= 400 {
		log.Warn("client error: %v", appErr)
	} else {
		log.Debug("error: %v", appErr)
	}

	writeJSON(w, appErr.Status, errorResponse{Success: false, Message: appErr.Message})
}
