package session

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// expires_at is scanned into time.Time, so the connection needs parseTime.
const createSessionsTable = `
	CREATE TABLE IF NOT EXISTS sessions (
		id         CHAR(64)    NOT NULL PRIMARY KEY,
		user_id    VARCHAR(64) NOT NULL,
		expires_at DATETIME(6) NOT NULL,
		created_at TIMESTAMP   NOT NULL DEFAULT CURRENT_TIMESTAMP,
		INDEX idx_sessions_expires_at (expires_at)
	)`

// MySQLStore keeps sessions in a MySQL table so they survive restarts.
type MySQLStore struct {
	db *sql.DB
}

// NewMySQLStore creates a MySQLStore.
func NewMySQLStore(db *sql.DB) *MySQLStore {
	return &MySQLStore{db: db}
}

// EnsureSchema creates the sessions table if it does not exist.
func (s *MySQLStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, createSessionsTable)
	return err
}

func (s *MySQLStore) Create(ctx context.Context, sess Session) error {
	query := `INSERT INTO sessions (id, user_id, expires_at) VALUES (?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query, sess.ID, sess.UserID, sess.ExpiresAt.UTC())
	return err
}

func (s *MySQLStore) Get(ctx context.Context, id string) (*Session, error) {
	query := `SELECT id, user_id, expires_at FROM sessions WHERE id = ?`

	sess := &Session{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(&sess.ID, &sess.UserID, &sess.ExpiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return sess, nil
}

func (s *MySQLStore) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM sessions WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *MySQLStore) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `DELETE FROM sessions WHERE expires_at <= ?`

	result, err := s.db.ExecContext(ctx, query, now.UTC())
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
