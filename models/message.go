// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Sender identifies the author of a [Message].
type Sender string

const (
	SenderUser Sender = "user"
	SenderAI   Sender = "ai"
)

// UnmarshalJSON accepts "user" and "ai" case-insensitively, so the legacy
// "AI" raw value decodes to [SenderAI].
func (s *Sender) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(SenderUser):
		*s = SenderUser
	case string(SenderAI):
		*s = SenderAI
	default:
		return fmt.Errorf("unknown sender %q", raw)
	}

	return nil
}

// DeliveryStatus tracks whether a locally authored message reached the
// backend. It never travels over the wire.
type DeliveryStatus string

const (
	StatusPending DeliveryStatus = "pending"
	StatusSent    DeliveryStatus = "sent"
	StatusFailed  DeliveryStatus = "failed"
)

// Message is one utterance inside a [Session].
type Message struct {
	ID        string         `json:"id"`
	Text      string         `json:"text"`
	Sender    Sender         `json:"sender"`
	Timestamp string         `json:"timestamp"`
	Status    DeliveryStatus `json:"-"`
}

// Key returns the identity of m inside its session: the ID when present,
// otherwise the timestamp.
func (m Message) Key() string {
	if m.ID != "" {
		return m.ID
	}
	return "ts:" + m.Timestamp
}

// TimestampLayout is the layout used for timestamps produced by this client.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatTimestamp renders t in UTC with millisecond precision.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp parses an ISO-8601 timestamp with or without fractional
// seconds.
func ParseTimestamp(raw string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, strings.TrimSpace(raw))
}

// TimestampBefore orders two timestamps by instant. Unparseable values fall
// back to lexical order.
func TimestampBefore(a, b string) bool {
	ta, errA := ParseTimestamp(a)
	tb, errB := ParseTimestamp(b)
	if errA != nil || errB != nil {
		return a < b
	}
	return ta.Before(tb)
}

// SortMessages orders messages ascending by timestamp. Equal timestamps are
// ordered by key so the result is deterministic.
func SortMessages(messages []Message) {
	sort.SliceStable(messages, func(i, j int) bool {
		if messages[i].Timestamp == messages[j].Timestamp {
			return messages[i].Key() < messages[j].Key()
		}
		return TimestampBefore(messages[i].Timestamp, messages[j].Timestamp)
	})
}
