package service

import (
	"fmt"

	"github.com/xlevchenko/TwinTalk/internal/adapter"
	"github.com/xlevchenko/TwinTalk/internal/config"
)

// NewReplySource picks the reply source named by appCfg.ReplyMode. push may
// be nil unless the mode is [config.ReplyModePush].
func NewReplySource(appCfg config.ClientApp, sessionAdapter adapter.SessionAdapter, push adapter.PushChannel) (ReplySource, error) {
	switch appCfg.ReplyMode {
	case "", config.ReplyModeSimulated:
		return NewSimulatedReplySource(appCfg.ReplyDelay, appCfg.ReplyText), nil
	case config.ReplyModeHTTP:
		return NewHTTPReplySource(sessionAdapter), nil
	case config.ReplyModePush:
		if push == nil {
			return nil, ErrPushChannelRequired
		}
		return NewPushReplySource(push, appCfg.ReplyTimeout), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownReplyMode, appCfg.ReplyMode)
	}
}
