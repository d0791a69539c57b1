package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/xlevchenko/TwinTalk/internal/config"
	"github.com/xlevchenko/TwinTalk/internal/logger"
	"github.com/xlevchenko/TwinTalk/models"
)

// PushConnection is the WebSocket implementation of [PushChannel]. Once
// started it keeps one connection open, reconnecting after ReconnectDelay
// whenever the read loop fails, and dispatches AI frames to per-session
// subscribers.
type PushConnection struct {
	url            string
	reconnectDelay time.Duration
	writeTimeout   time.Duration
	dialer         *websocket.Dialer

	mu          sync.Mutex
	conn        *websocket.Conn
	subscribers map[string]map[int]chan models.Message
	nextSubID   int

	writeMu sync.Mutex

	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *logger.Logger
}

// NewPushConnection validates adapterCfg.PushAddress and returns an idle
// connection. http and https addresses are rewritten to ws and wss.
func NewPushConnection(adapterCfg config.ClientAdapter, logger *logger.Logger) (*PushConnection, error) {
	pushURL, err := normalizePushURL(adapterCfg.PushAddress)
	if err != nil {
		return nil, newError(KindInvalidEndpoint, fmt.Errorf("adapter push address: %w", err))
	}

	reconnectDelay := adapterCfg.ReconnectDelay
	if reconnectDelay <= 0 {
		reconnectDelay = 2 * time.Second
	}

	return &PushConnection{
		url:            pushURL,
		reconnectDelay: reconnectDelay,
		writeTimeout:   adapterCfg.RequestTimeout,
		dialer: &websocket.Dialer{
			HandshakeTimeout: adapterCfg.RequestTimeout,
		},
		subscribers: make(map[string]map[int]chan models.Message),
		logger:      logger,
	}, nil
}

func normalizePushURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}
	if !strings.Contains(raw, "://") {
		raw = "ws://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	switch u.Scheme {
	case "ws", "wss":
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("address must include host")
	}

	return u.String(), nil
}

// Start launches the connect/read/reconnect loop. It returns immediately;
// calling Start on a running connection restarts it.
func (p *PushConnection) Start(ctx context.Context) {
	p.Stop()

	p.mu.Lock()
	loopCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.wg.Add(1)
	p.mu.Unlock()

	go func() {
		defer p.wg.Done()
		p.run(loopCtx)
	}()
}

// Stop closes the connection, stops reconnecting and waits for the loop to
// exit. Subscribers stay registered.
func (p *PushConnection) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	p.cancel = nil
	conn := p.conn
	p.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if conn != nil {
		_ = conn.Close()
	}
	p.wg.Wait()
}

// Connected reports whether a connection is currently open.
func (p *PushConnection) Connected() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.conn != nil
}

func (p *PushConnection) run(ctx context.Context) {
	for {
		conn, _, err := p.dialer.DialContext(ctx, p.url, nil)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			p.logger.Warn().
				Err(err).
				Str("func", "PushConnection.run").
				Str("url", p.url).
				Dur("retry_in", p.reconnectDelay).
				Msg("push channel dial failed")
		} else {
			p.setConn(conn)
			p.logger.Info().Str("func", "PushConnection.run").Str("url", p.url).Msg("push channel connected")

			stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
			readErr := p.readLoop(conn)
			stop()

			p.setConn(nil)
			_ = conn.Close()
			if ctx.Err() != nil {
				return
			}
			p.logger.Warn().
				Err(readErr).
				Str("func", "PushConnection.run").
				Dur("retry_in", p.reconnectDelay).
				Msg("push channel disconnected")
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(p.reconnectDelay):
		}
	}
}

func (p *PushConnection) setConn(conn *websocket.Conn) {
	p.mu.Lock()
	p.conn = conn
	p.mu.Unlock()
}

func (p *PushConnection) readLoop(conn *websocket.Conn) error {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		var envelope models.PushEnvelope
		if err = json.Unmarshal(data, &envelope); err != nil {
			p.logger.Warn().
				Err(err).
				Str("func", "PushConnection.readLoop").
				Msg("skipping undecodable push frame")
			continue
		}
		if envelope.Type != models.SenderAI || envelope.SessionID == "" {
			continue
		}

		envelope.Message.Status = models.StatusSent
		p.dispatch(envelope.SessionID, envelope.Message)
	}
}

// dispatch hands message to the oldest subscription of sessionID and retires
// it, so concurrent waiters on one session each receive a distinct frame.
func (p *PushConnection) dispatch(sessionID string, message models.Message) {
	p.mu.Lock()
	defer p.mu.Unlock()

	subs := p.subscribers[sessionID]
	if len(subs) == 0 {
		p.logger.Debug().
			Str("func", "PushConnection.dispatch").
			Str("session_id", sessionID).
			Msg("no subscriber, dropping pushed message")
		return
	}

	oldest := -1
	for id := range subs {
		if oldest < 0 || id < oldest {
			oldest = id
		}
	}

	// buffered and claimed at most once, so this never blocks
	subs[oldest] <- message
	delete(subs, oldest)
	if len(subs) == 0 {
		delete(p.subscribers, sessionID)
	}
}

// Subscribe implements [PushChannel].
func (p *PushConnection) Subscribe(sessionID string) (<-chan models.Message, func()) {
	ch := make(chan models.Message, 1)

	p.mu.Lock()
	id := p.nextSubID
	p.nextSubID++
	if p.subscribers[sessionID] == nil {
		p.subscribers[sessionID] = make(map[int]chan models.Message)
	}
	p.subscribers[sessionID][id] = ch
	p.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			p.mu.Lock()
			if subs, ok := p.subscribers[sessionID]; ok {
				delete(subs, id)
				if len(subs) == 0 {
					delete(p.subscribers, sessionID)
				}
			}
			p.mu.Unlock()
			close(ch)
		})
	}
}

// Send implements [PushChannel].
func (p *PushConnection) Send(ctx context.Context, sessionID string, message models.Message) error {
	payload, err := json.Marshal(models.PushEnvelope{Type: models.SenderUser, SessionID: sessionID, Message: message})
	if err != nil {
		return newError(KindEncodingFailed, fmt.Errorf("encode push frame: %w", err))
	}

	p.mu.Lock()
	conn := p.conn
	p.mu.Unlock()
	if conn == nil {
		return newError(KindNetworkUnavailable, errPushNotConnected)
	}

	p.writeMu.Lock()
	defer p.writeMu.Unlock()

	deadline := time.Time{}
	if p.writeTimeout > 0 {
		deadline = time.Now().Add(p.writeTimeout)
	}
	if d, ok := ctx.Deadline(); ok && (deadline.IsZero() || d.Before(deadline)) {
		deadline = d
	}
	_ = conn.SetWriteDeadline(deadline)

	if err = conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		mapped := mapTransportError(err)
		if KindOf(mapped) == KindUnknown && errors.Is(err, websocket.ErrCloseSent) {
			mapped = newError(KindNetworkUnavailable, err)
		}
		return mapped
	}

	return nil
}
