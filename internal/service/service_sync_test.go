// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xlevchenko/TwinTalk/models"
)

// ─────────────────────────────────────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────────────────────────────────────

func msg(id, ts string, sender models.Sender) models.Message {
	return models.Message{ID: id, Text: "text " + id, Sender: sender, Timestamp: ts}
}

func sess(id, date string, messages ...models.Message) models.Session {
	if messages == nil {
		messages = []models.Message{}
	}
	return models.Session{ID: id, Date: date, Title: "title " + id, Category: models.CategoryCareer, Messages: messages}
}

func ids(sessions []models.Session) []string {
	out := make([]string, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, s.ID)
	}
	return out
}

func keys(messages []models.Message) []string {
	out := make([]string, 0, len(messages))
	for _, m := range messages {
		out = append(out, m.Key())
	}
	return out
}

// ─────────────────────────────────────────────────────────────────────────────
// MergeSessions
// ─────────────────────────────────────────────────────────────────────────────

func TestMergeSessions_Ordering(t *testing.T) {
	local := []models.Session{
		sess("old", "2024-01-01T00:00:00Z"),
		sess("b", "2024-03-01T00:00:00Z"),
		sess("new", "2024-06-01T00:00:00Z"),
		sess("a", "2024-03-01T00:00:00Z"),
	}
	remote := []models.Session{
		sess("r2", "2024-02-01T00:00:00Z"),
		sess("r1", "2024-05-01T00:00:00Z"),
		sess("b", "2024-03-01T00:00:00Z"),
	}

	merged, err := NewSessionMerger().MergeSessions(context.Background(), local, remote)

	require.NoError(t, err)
	// remote order first, then local-only newest first with ID tie-break
	assert.Equal(t, []string{"r2", "r1", "b", "new", "a", "old"}, ids(merged))
}

func TestMergeSessions_MessageUnion(t *testing.T) {
	tests := []struct {
		name     string
		local    []models.Message
		remote   []models.Message
		wantKeys []string
	}{
		{
			name:     "pending local message is kept",
			local:    []models.Message{msg("m1", "2024-05-01T10:00:00Z", models.SenderUser)},
			remote:   []models.Message{},
			wantKeys: []string{"m1"},
		},
		{
			name:     "union sorted by timestamp",
			local:    []models.Message{msg("l1", "2024-05-01T10:00:03Z", models.SenderUser)},
			remote:   []models.Message{msg("r2", "2024-05-01T10:00:05Z", models.SenderAI), msg("r1", "2024-05-01T10:00:01Z", models.SenderUser)},
			wantKeys: []string{"r1", "l1", "r2"},
		},
		{
			name:     "same key appears once",
			local:    []models.Message{msg("m1", "2024-05-01T10:00:00Z", models.SenderUser)},
			remote:   []models.Message{msg("m1", "2024-05-01T10:00:00Z", models.SenderUser)},
			wantKeys: []string{"m1"},
		},
		{
			name:     "missing ids fall back to timestamp",
			local:    []models.Message{msg("", "2024-05-01T10:00:00Z", models.SenderUser), msg("", "2024-05-01T10:00:09Z", models.SenderUser)},
			remote:   []models.Message{msg("", "2024-05-01T10:00:00Z", models.SenderUser)},
			wantKeys: []string{"ts:2024-05-01T10:00:00Z", "ts:2024-05-01T10:00:09Z"},
		},
		{
			name:     "mixed precision timestamps order by instant",
			local:    []models.Message{msg("a", "2024-05-01T10:00:00.500Z", models.SenderUser)},
			remote:   []models.Message{msg("b", "2024-05-01T10:00:00Z", models.SenderAI), msg("c", "2024-05-01T10:00:01Z", models.SenderAI)},
			wantKeys: []string{"b", "a", "c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			local := []models.Session{sess("s", "2024-05-01T00:00:00Z", tt.local...)}
			remote := []models.Session{sess("s", "2024-05-01T00:00:00Z", tt.remote...)}

			merged, err := NewSessionMerger().MergeSessions(context.Background(), local, remote)

			require.NoError(t, err)
			require.Len(t, merged, 1)
			assert.Equal(t, tt.wantKeys, keys(merged[0].Messages))
		})
	}
}

func TestMergeSessions_RemoteWins(t *testing.T) {
	localMsg := msg("m1", "2024-05-01T10:00:00Z", models.SenderUser)
	localMsg.Text = "local edit"
	localMsg.Status = models.StatusPending
	local := []models.Session{{ID: "s", Title: "local title", Summary: "local", Messages: []models.Message{localMsg}}}

	remoteMsg := msg("m1", "2024-05-01T10:00:00Z", models.SenderUser)
	remoteMsg.Text = "server copy"
	remote := []models.Session{{ID: "s", Title: "remote title", Summary: "remote", Messages: []models.Message{remoteMsg}}}

	merged, err := NewSessionMerger().MergeSessions(context.Background(), local, remote)

	require.NoError(t, err)
	require.Len(t, merged[0].Messages, 1)
	assert.Equal(t, "remote title", merged[0].Title)
	assert.Equal(t, "remote", merged[0].Summary)
	assert.Equal(t, "server copy", merged[0].Messages[0].Text)
	assert.Equal(t, models.StatusSent, merged[0].Messages[0].Status)
}

func TestMergeSessions_DropsEchoedLocalMessage(t *testing.T) {
	local := models.Message{ID: "local-uuid", Text: "hello", Sender: models.SenderUser, Timestamp: "2024-05-01T10:00:00.000Z", Status: models.StatusPending}
	echo := models.Message{ID: "srv-7", Text: "hello", Sender: models.SenderUser, Timestamp: "2024-05-01T10:00:00Z"}
	other := models.Message{ID: "local-2", Text: "hello", Sender: models.SenderUser, Timestamp: "2024-05-01T10:05:00.000Z"}

	merged, err := NewSessionMerger().MergeSessions(context.Background(),
		[]models.Session{sess("s", "d", local, other)},
		[]models.Session{sess("s", "d", echo)},
	)

	require.NoError(t, err)
	assert.Equal(t, []string{"srv-7", "local-2"}, keys(merged[0].Messages))
}

func TestMergeSessions_Idempotent(t *testing.T) {
	local := []models.Session{
		sess("s1", "2024-05-01T00:00:00Z", msg("p1", "2024-05-01T11:00:00Z", models.SenderUser)),
		sess("only-local", "2024-04-01T00:00:00Z"),
	}
	remote := []models.Session{
		sess("s2", "2024-05-02T00:00:00Z", msg("r3", "2024-05-02T10:00:00Z", models.SenderAI)),
		sess("s1", "2024-05-01T00:00:00Z", msg("r1", "2024-05-01T10:00:00Z", models.SenderUser), msg("r2", "2024-05-01T10:00:01Z", models.SenderAI)),
	}
	merger := NewSessionMerger()

	once, err := merger.MergeSessions(context.Background(), local, remote)
	require.NoError(t, err)
	twice, err := merger.MergeSessions(context.Background(), once, remote)
	require.NoError(t, err)

	assert.Equal(t, once, twice)
}

func TestMergeSessions_DoesNotAliasInputs(t *testing.T) {
	remote := []models.Session{sess("s", "d", msg("r1", "2024-05-01T10:00:00Z", models.SenderAI))}

	merged, err := NewSessionMerger().MergeSessions(context.Background(), nil, remote)
	require.NoError(t, err)

	merged[0].Messages[0].Text = "changed"
	assert.Equal(t, "text r1", remote[0].Messages[0].Text)
	assert.Equal(t, models.DeliveryStatus(""), remote[0].Messages[0].Status)
}

func TestMergeSessions_Empty(t *testing.T) {
	merged, err := NewSessionMerger().MergeSessions(context.Background(), nil, nil)

	require.NoError(t, err)
	assert.NotNil(t, merged)
	assert.Empty(t, merged)
}

func TestMergeSessions_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSessionMerger().MergeSessions(ctx, nil, []models.Session{sess("s", "d")})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestUnionSessions_OverlayKeepsStatus(t *testing.T) {
	cached := sess("s", "d", msg("m1", "2024-05-01T10:00:00Z", models.SenderUser))
	pending := msg("m2", "2024-05-01T10:01:00Z", models.SenderUser)
	pending.Status = models.StatusPending
	inMemory := sess("s", "d", msg("m1", "2024-05-01T10:00:00Z", models.SenderUser), pending)

	out, err := unionSessions(context.Background(), []models.Session{cached}, []models.Session{inMemory}, false)

	require.NoError(t, err)
	require.Len(t, out[0].Messages, 2)
	assert.Equal(t, models.StatusPending, out[0].Messages[1].Status)
}
