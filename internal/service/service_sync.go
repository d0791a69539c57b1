package service

import (
	"context"

	"github.com/xlevchenko/TwinTalk/models"
)

// sessionMerger is the concrete implementation of SessionMerger. It holds
// no state: the merge is an in-memory operation without side effects.
type sessionMerger struct{}

// NewSessionMerger constructs a SessionMerger ready for use.
func NewSessionMerger() SessionMerger {
	return &sessionMerger{}
}

// MergeSessions implements SessionMerger. Every remote message is marked
// [models.StatusSent].
func (m *sessionMerger) MergeSessions(ctx context.Context, local, remote []models.Session) ([]models.Session, error) {
	return unionSessions(ctx, local, remote, true)
}

// unionSessions merges overlay into base. Overlay sessions come first in
// their own order, base-only sessions follow ordered by date descending and
// then ID. When fromRemote is set overlay messages are stamped as sent.
func unionSessions(ctx context.Context, base, overlay []models.Session, fromRemote bool) ([]models.Session, error) {
	baseIndex := make(map[string]models.Session, len(base))
	for _, s := range base {
		if prev, ok := baseIndex[s.ID]; ok {
			s = mergeSession(prev, s, false)
		}
		baseIndex[s.ID] = s
	}

	merged := make([]models.Session, 0, len(overlay)+len(base))
	position := make(map[string]int, len(overlay))

	// ── Pass 1: overlay sessions, merged with their base match ──────────────
	for _, o := range overlay {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if idx, dup := position[o.ID]; dup {
			merged[idx] = mergeSession(merged[idx], o, fromRemote)
			continue
		}

		b, ok := baseIndex[o.ID]
		if !ok {
			b = models.Session{ID: o.ID}
		}
		position[o.ID] = len(merged)
		merged = append(merged, mergeSession(b, o, fromRemote))
	}

	// ── Pass 2: sessions known only to base ─────────────────────────────────
	baseOnly := make([]models.Session, 0, len(baseIndex))
	for id, b := range baseIndex {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if _, seen := position[id]; seen {
			continue
		}
		s := b.Clone()
		if s.Messages == nil {
			s.Messages = []models.Message{}
		}
		models.SortMessages(s.Messages)
		baseOnly = append(baseOnly, s)
	}

	models.SortSessions(baseOnly)

	return append(merged, baseOnly...), nil
}

// mergeSession returns winner's scalar fields with the union of both
// message lists. On a key clash the winner's message is kept.
func mergeSession(loser, winner models.Session, markSent bool) models.Session {
	out := winner.Clone()

	winnerMessages := make([]models.Message, len(winner.Messages))
	copy(winnerMessages, winner.Messages)
	if markSent {
		for i := range winnerMessages {
			winnerMessages[i].Status = models.StatusSent
		}
	}

	byKey := make(map[string]int, len(loser.Messages)+len(winnerMessages))
	messages := make([]models.Message, 0, len(loser.Messages)+len(winnerMessages))
	for _, msg := range winnerMessages {
		if idx, ok := byKey[msg.Key()]; ok {
			messages[idx] = msg
			continue
		}
		byKey[msg.Key()] = len(messages)
		messages = append(messages, msg)
	}

	for _, msg := range loser.Messages {
		if _, ok := byKey[msg.Key()]; ok {
			continue
		}
		if markSent && isEchoed(msg, winnerMessages) {
			continue
		}
		byKey[msg.Key()] = len(messages)
		messages = append(messages, msg)
	}

	models.SortMessages(messages)
	out.Messages = messages
	return out
}

// isEchoed reports whether the backend already holds msg under an ID it
// assigned itself: same sender, same text, same instant.
func isEchoed(msg models.Message, remote []models.Message) bool {
	for _, r := range remote {
		if r.Sender != msg.Sender || r.Text != msg.Text {
			continue
		}
		if r.Timestamp == msg.Timestamp {
			return true
		}
		if !models.TimestampBefore(r.Timestamp, msg.Timestamp) && !models.TimestampBefore(msg.Timestamp, r.Timestamp) {
			return true
		}
	}
	return false
}
