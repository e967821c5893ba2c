package handler

import (
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/wadjakorntonsri/weblinks/pkg/core/domain"
)

// writeError maps service errors onto status codes. Server-side failures
// are logged; the others are the caller's mistake.
func writeError(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrLinkNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrTitleRequired),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrUnknownIndex),
		errors.Is(err, domain.ErrUnknownAction):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		log.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", RequestIDFrom(r.Context())),
			zap.String("user", UserEmailFrom(r.Context())),
			zap.Error(err),
		)
	}
	http.Error(w, err.Error(), status)
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
