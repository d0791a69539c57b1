package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/xlevchenko/TwinTalk/internal/config"
	"github.com/xlevchenko/TwinTalk/internal/logger"
	"github.com/xlevchenko/TwinTalk/internal/utils"
	"github.com/xlevchenko/TwinTalk/models"
)

type httpSessionAdapter struct {
	client *utils.HTTPClient

	sessionsPath string
	messagesPath string

	logger *logger.Logger
}

// NewHTTPSessionAdapter constructs the HTTP/JSON implementation of
// [SessionAdapter]. It normalises the base URL from adapterCfg.HTTPAddress
// and configures the underlying client with the request timeout.
//
// An unusable address is reported as an [ErrInvalidEndpoint] error.
func NewHTTPSessionAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (SessionAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, newError(KindInvalidEndpoint, fmt.Errorf("adapter http address: %w", err))
	}

	client := utils.NewHTTPClient().WithBaseURL(baseURL, adapterCfg.RequestTimeout)

	return &httpSessionAdapter{
		client:       client,
		sessionsPath: normalizePath(adapterCfg.SessionsPath),
		messagesPath: normalizePath(adapterCfg.MessagesPath),
		logger:       logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func normalizePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" || strings.HasPrefix(p, "/") {
		return p
	}
	return "/" + p
}

// FetchSessions implements [SessionAdapter]. It issues GET <sessionsPath>.
func (h *httpSessionAdapter) FetchSessions(ctx context.Context) ([]models.Session, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		Get(h.sessionsPath)
	if err != nil {
		err = mapTransportError(err)
		h.logFailure("httpSessionAdapter.FetchSessions", err)
		return nil, err
	}
	if err = mapHTTPError(resp); err != nil {
		h.logFailure("httpSessionAdapter.FetchSessions", err)
		return nil, err
	}

	body := bytes.TrimSpace(resp.Body())
	if len(body) == 0 {
		return nil, newError(KindEmptyBody, errors.New("list sessions returned no content"))
	}

	var sessions []models.Session
	if err = json.Unmarshal(body, &sessions); err != nil {
		return nil, newError(KindDecodingFailed, fmt.Errorf("decode sessions response: %w", err))
	}
	if sessions == nil {
		return nil, newError(KindMalformedResponse, errors.New("sessions response is null"))
	}

	for i := range sessions {
		if sessions[i].Messages == nil {
			sessions[i].Messages = []models.Message{}
		}
		for j := range sessions[i].Messages {
			sessions[i].Messages[j].Status = models.StatusSent
		}
	}

	h.logger.Debug().
		Str("func", "httpSessionAdapter.FetchSessions").
		Int("count", len(sessions)).
		Msg("fetched remote sessions")

	return sessions, nil
}

// SendMessage implements [SessionAdapter]. It issues POST <messagesPath> with
// body {"sessionId", "message": {"text", "sender", "timestamp"}}.
func (h *httpSessionAdapter) SendMessage(ctx context.Context, message models.Message, sessionID string) error {
	payload, err := json.Marshal(models.NewSendMessageRequest(sessionID, message))
	if err != nil {
		return newError(KindEncodingFailed, fmt.Errorf("encode send message request: %w", err))
	}

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(h.messagesPath)
	if err != nil {
		err = mapTransportError(err)
		h.logFailure("httpSessionAdapter.SendMessage", err)
		return err
	}
	if err = mapHTTPError(resp); err != nil {
		h.logFailure("httpSessionAdapter.SendMessage", err)
		return err
	}

	return nil
}

func (h *httpSessionAdapter) logFailure(fn string, err error) {
	h.logger.Warn().
		Err(err).
		Str("func", fn).
		Str("kind", KindOf(err).String()).
		Int("status", StatusCode(err)).
		Msg("transport request failed")
}
