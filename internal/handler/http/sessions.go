package http

import (
	"net/http"

	"github.com/xlevchenko/TwinTalk/internal/logger"
	"github.com/xlevchenko/TwinTalk/internal/utils"
)

func (h *Handler) listSessions(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	sessions, err := h.services.Backend.ListSessions(r.Context())
	if err != nil {
		log.Err(err).Str("func", "*Handler.listSessions").Msg("error listing sessions")
		utils.WriteError(w, "error listing sessions", statusFromError(err))
		return
	}

	if _, err = utils.WriteJSON(w, sessions, http.StatusOK); err != nil {
		log.Err(err).Str("func", "*Handler.listSessions").Msg("error writing response")
	}
}
