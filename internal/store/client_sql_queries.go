// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/xlevchenko/TwinTalk/models"
)

// messagesPerInsert bounds the rows of one multi-row INSERT so a long
// session stays well below SQLite's bound-parameter limit.
const messagesPerInsert = 100

var (
	sqlite = sq.StatementBuilder.PlaceholderFormat(sq.Question)

	sessionColumns = []string{"id", "date", "title", "category", "summary"}
	messageColumns = []string{"session_id", "message_key", "message_id", "text", "sender", "timestamp", "status"}
)

func buildSelectSessionsQuery() (string, []any, error) {
	return sqlite.
		Select(sessionColumns...).
		From("sessions").
		OrderBy("date DESC", "id").
		ToSql()
}

func buildSelectMessagesQuery() (string, []any, error) {
	return sqlite.
		Select("session_id", "message_id", "text", "sender", "timestamp", "status").
		From("messages").
		OrderBy("session_id", "timestamp", "message_key").
		ToSql()
}

func buildUpsertSessionQuery(session models.Session) (string, []any, error) {
	return sqlite.
		Insert("sessions").
		Columns(sessionColumns...).
		Values(session.ID, session.Date, session.Title, string(session.Category), session.Summary).
		Suffix(`ON CONFLICT(id) DO UPDATE SET
			date = excluded.date,
			title = excluded.title,
			category = excluded.category,
			summary = excluded.summary`).
		ToSql()
}

func buildDeleteMessagesQuery(sessionID string) (string, []any, error) {
	return sqlite.
		Delete("messages").
		Where(sq.Eq{"session_id": sessionID}).
		ToSql()
}

// buildInsertMessagesQuery renders one INSERT for messages. Rows sharing a
// key replace each other so that the last copy wins.
func buildInsertMessagesQuery(sessionID string, messages []models.Message) (string, []any, error) {
	q := sqlite.
		Insert("messages").
		Options("OR REPLACE").
		Columns(messageColumns...)

	for _, m := range messages {
		status := m.Status
		if status == "" {
			status = models.StatusSent
		}
		q = q.Values(sessionID, m.Key(), m.ID, m.Text, string(m.Sender), m.Timestamp, string(status))
	}

	return q.ToSql()
}

// chunkMessages splits messages into slices of at most size elements.
func chunkMessages(messages []models.Message, size int) [][]models.Message {
	var chunks [][]models.Message
	for len(messages) > size {
		chunks = append(chunks, messages[:size])
		messages = messages[size:]
	}
	if len(messages) > 0 {
		chunks = append(chunks, messages)
	}
	return chunks
}
