package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/xlevchenko/TwinTalk/internal/logger"
	"github.com/xlevchenko/TwinTalk/models"
)

// pushReplies upgrades the request to a WebSocket. Every "user" frame is
// stored and answered with an "ai" frame once the reply is ready. Frames of
// other types are ignored.
func (h *Handler) pushReplies(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Err(err).Str("func", "*Handler.pushReplies").Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.WithoutCancel(r.Context()))
	var (
		writeMu sync.Mutex
		wg      sync.WaitGroup
	)
	defer func() {
		cancel()
		wg.Wait()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug().Err(err).Str("func", "*Handler.pushReplies").Msg("websocket read loop finished")
			}
			return
		}

		var frame models.PushEnvelope
		if err = json.Unmarshal(data, &frame); err != nil {
			log.Warn().Err(errors.Join(ErrInvalidJSON, err)).Str("func", "*Handler.pushReplies").Msg("skipping frame")
			continue
		}
		if frame.Type != models.SenderUser {
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()

			reply, err := h.services.Backend.Converse(ctx, frame.SessionID, frame.Message)
			if err != nil {
				if ctx.Err() == nil {
					log.Err(err).
						Str("func", "*Handler.pushReplies").
						Str("session_id", frame.SessionID).
						Msg("error answering frame")
				}
				return
			}

			payload, err := json.Marshal(models.PushEnvelope{Type: models.SenderAI, SessionID: frame.SessionID, Message: reply})
			if err != nil {
				log.Err(err).Str("func", "*Handler.pushReplies").Msg("error encoding reply frame")
				return
			}

			writeMu.Lock()
			defer writeMu.Unlock()
			if err = conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				log.Err(err).Str("func", "*Handler.pushReplies").Msg("error writing reply frame")
			}
		}()
	}
}
