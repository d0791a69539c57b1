package store

import (
	"context"
	"fmt"

	"github.com/xlevchenko/TwinTalk/internal/logger"
	"github.com/xlevchenko/TwinTalk/models"
)

type localSessionRepository struct {
	*DB
	logger *logger.Logger
}

// NewLocalSessionRepository returns the SQLite-backed [LocalSessionRepository].
func NewLocalSessionRepository(db *DB, logger *logger.Logger) LocalSessionRepository {
	return &localSessionRepository{
		DB:     db,
		logger: logger,
	}
}

// ReadAll loads sessions newest first and attaches their messages in
// chronological order. Two queries are issued regardless of the number of
// sessions.
func (l *localSessionRepository) ReadAll(ctx context.Context) ([]models.Session, error) {
	sessions, err := l.readSessions(ctx)
	if err != nil {
		return nil, err
	}

	messages, err := l.readMessages(ctx)
	if err != nil {
		return nil, err
	}

	// the column is TEXT, so mixed offsets sort wrongly in SQL
	models.SortSessions(sessions)

	for i := range sessions {
		list := messages[sessions[i].ID]
		if list == nil {
			list = []models.Message{}
		}
		models.SortMessages(list)
		sessions[i].Messages = list
	}

	l.logger.Debug().
		Str("func", "localSessionRepository.ReadAll").
		Int("sessions", len(sessions)).
		Msg("read local sessions")

	return sessions, nil
}

func (l *localSessionRepository) readSessions(ctx context.Context) ([]models.Session, error) {
	query, args, err := buildSelectSessionsQuery()
	if err != nil {
		l.logger.Err(err).Str("func", "localSessionRepository.ReadAll").Msg("failed to build select sessions query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := l.DB.QueryContext(ctx, query, args...)
	if err != nil {
		l.logger.Err(err).Str("func", "localSessionRepository.ReadAll").Msg("failed to query sessions")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	sessions := make([]models.Session, 0, 16)
	for rows.Next() {
		var s models.Session
		if err = rows.Scan(&s.ID, &s.Date, &s.Title, &s.Category, &s.Summary); err != nil {
			l.logger.Err(err).Str("func", "localSessionRepository.ReadAll").Msg("failed to scan session row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		sessions = append(sessions, s)
	}
	if err = rows.Err(); err != nil {
		l.logger.Err(err).Str("func", "localSessionRepository.ReadAll").Msg("error occurred during session rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return sessions, nil
}

func (l *localSessionRepository) readMessages(ctx context.Context) (map[string][]models.Message, error) {
	query, args, err := buildSelectMessagesQuery()
	if err != nil {
		l.logger.Err(err).Str("func", "localSessionRepository.ReadAll").Msg("failed to build select messages query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := l.DB.QueryContext(ctx, query, args...)
	if err != nil {
		l.logger.Err(err).Str("func", "localSessionRepository.ReadAll").Msg("failed to query messages")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	bySession := make(map[string][]models.Message)
	for rows.Next() {
		var (
			sessionID string
			m         models.Message
		)
		if err = rows.Scan(&sessionID, &m.ID, &m.Text, &m.Sender, &m.Timestamp, &m.Status); err != nil {
			l.logger.Err(err).Str("func", "localSessionRepository.ReadAll").Msg("failed to scan message row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		bySession[sessionID] = append(bySession[sessionID], m)
	}
	if err = rows.Err(); err != nil {
		l.logger.Err(err).Str("func", "localSessionRepository.ReadAll").Msg("error occurred during message rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return bySession, nil
}

// UpsertAll writes every session in one transaction: the session row is
// upserted, its message rows are deleted and then re-inserted. Any failure
// rolls the whole batch back.
func (l *localSessionRepository) UpsertAll(ctx context.Context, sessions ...models.Session) error {
	if len(sessions) == 0 {
		return nil
	}

	tx, err := l.DB.BeginTx(ctx, nil)
	if err != nil {
		l.logger.Err(err).
			Str("func", "localSessionRepository.UpsertAll").
			Int("sessions", len(sessions)).
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	for _, session := range sessions {
		statements, err := buildSessionStatements(session)
		if err != nil {
			l.logger.Err(err).
				Str("func", "localSessionRepository.UpsertAll").
				Str("session_id", session.ID).
				Msg("failed to build session statements")
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}

		for _, st := range statements {
			if _, err = tx.ExecContext(ctx, st.query, st.args...); err != nil {
				l.logger.Err(err).
					Str("func", "localSessionRepository.UpsertAll").
					Str("session_id", session.ID).
					Msg("failed to execute statement")
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		l.logger.Err(err).
			Str("func", "localSessionRepository.UpsertAll").
			Int("sessions", len(sessions)).
			Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	l.logger.Debug().
		Str("func", "localSessionRepository.UpsertAll").
		Int("sessions", len(sessions)).
		Msg("local sessions saved")

	return nil
}

type statement struct {
	query string
	args  []any
}

func buildSessionStatements(session models.Session) ([]statement, error) {
	statements := make([]statement, 0, 3)

	query, args, err := buildUpsertSessionQuery(session)
	if err != nil {
		return nil, err
	}
	statements = append(statements, statement{query, args})

	query, args, err = buildDeleteMessagesQuery(session.ID)
	if err != nil {
		return nil, err
	}
	statements = append(statements, statement{query, args})

	for _, chunk := range chunkMessages(session.Messages, messagesPerInsert) {
		query, args, err = buildInsertMessagesQuery(session.ID, chunk)
		if err != nil {
			return nil, err
		}
		statements = append(statements, statement{query, args})
	}

	return statements, nil
}
