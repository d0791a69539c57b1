package http

import (
	"errors"
	"net/http"

	"github.com/xlevchenko/TwinTalk/internal/service"
	"github.com/xlevchenko/TwinTalk/internal/store"
	"github.com/xlevchenko/TwinTalk/internal/validators"
)

var errorStatusMap = map[error]int{
	ErrInvalidJSON: http.StatusBadRequest,

	validators.ErrEmptySessionID:   http.StatusBadRequest,
	validators.ErrEmptyMessageText: http.StatusBadRequest,
	validators.ErrUnknownSender:    http.StatusBadRequest,
	validators.ErrInvalidTimestamp: http.StatusBadRequest,

	service.ErrSessionNotFound: http.StatusNotFound,

	store.ErrSessionNotFound: http.StatusNotFound,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
