package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/xlevchenko/TwinTalk/internal/logger"
	"github.com/xlevchenko/TwinTalk/internal/utils"
	"github.com/xlevchenko/TwinTalk/models"
)

func (h *Handler) postMessage(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.postMessage").Msg("Invalid JSON was passed")
		utils.WriteError(w, fmt.Sprintf("%s: %s", ErrInvalidJSON, err), http.StatusBadRequest)
		return
	}

	stored, err := h.services.Backend.PostMessage(r.Context(), req)
	if err != nil {
		log.Err(err).Str("func", "*Handler.postMessage").Str("session_id", req.SessionID).Msg("error posting message")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}

	if _, err = utils.WriteJSON(w, stored, http.StatusCreated); err != nil {
		log.Err(err).Str("func", "*Handler.postMessage").Msg("error writing response")
	}
}
