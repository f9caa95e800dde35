// Package history persists archived sessions to SQLite so chat history
// survives restarts. The in-memory session store stays authoritative; this
// store only mirrors archive and delete events.
package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/zenochat/zenochat/internal/session"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dataSourceName string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err = store.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS sessions (
        id TEXT PRIMARY KEY, -- UUID
        title TEXT NOT NULL,
        last_activity_at DATETIME NOT NULL,
        archived_at DATETIME DEFAULT CURRENT_TIMESTAMP
    );

    CREATE TABLE IF NOT EXISTS messages (
        id TEXT PRIMARY KEY, -- UUID
        session_id TEXT NOT NULL,
        position INTEGER NOT NULL,
        sender TEXT NOT NULL CHECK (sender IN ('user', 'assistant')),
        text TEXT NOT NULL,
        created_at DATETIME NOT NULL,
        is_error BOOLEAN DEFAULT FALSE,
        attachments_json TEXT, -- attachment metadata, content excluded
        FOREIGN KEY (session_id) REFERENCES sessions (id)
    );
    `
	_, err := s.db.Exec(schema)
	return err
}

// Save stores a session snapshot, replacing any previous snapshot with the
// same id so re-archiving never duplicates history entries.
func (s *SQLiteStore) Save(sess session.Session) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err = tx.Exec("DELETE FROM messages WHERE session_id = ?", sess.ID); err != nil {
		return fmt.Errorf("failed to clear old messages: %w", err)
	}
	if _, err = tx.Exec("DELETE FROM sessions WHERE id = ?", sess.ID); err != nil {
		return fmt.Errorf("failed to clear old session: %w", err)
	}

	_, err = tx.Exec("INSERT INTO sessions (id, title, last_activity_at, archived_at) VALUES (?, ?, ?, ?)",
		sess.ID, sess.Title, sess.LastActivityAt, time.Now())
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO messages (id, session_id, position, sender, text, created_at, is_error, attachments_json) VALUES (?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare message insert: %w", err)
	}
	defer stmt.Close()

	for i, msg := range sess.Messages {
		attachments, err := marshalAttachments(msg.Attachments)
		if err != nil {
			return err
		}
		if _, err = stmt.Exec(msg.ID, sess.ID, i, string(msg.Sender), msg.Text, msg.CreatedAt, msg.IsError, attachments); err != nil {
			return fmt.Errorf("failed to insert message: %w", err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) Delete(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err = tx.Exec("DELETE FROM messages WHERE session_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete messages: %w", err)
	}
	if _, err = tx.Exec("DELETE FROM sessions WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return tx.Commit()
}

// Load returns all persisted sessions, most recently archived first, each
// with its messages in conversation order.
func (s *SQLiteStore) Load() ([]session.Session, error) {
	rows, err := s.db.Query("SELECT id, title, last_activity_at FROM sessions ORDER BY archived_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []session.Session
	for rows.Next() {
		var sess session.Session
		if err := rows.Scan(&sess.ID, &sess.Title, &sess.LastActivityAt); err != nil {
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}
		sessions = append(sessions, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sessions: %w", err)
	}

	for i := range sessions {
		messages, err := s.loadMessages(sessions[i].ID)
		if err != nil {
			return nil, err
		}
		sessions[i].Messages = messages
	}
	return sessions, nil
}

func (s *SQLiteStore) loadMessages(sessionID string) ([]session.Message, error) {
	query := "SELECT id, sender, text, created_at, is_error, attachments_json FROM messages WHERE session_id = ? ORDER BY position ASC"
	rows, err := s.db.Query(query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	var messages []session.Message
	for rows.Next() {
		var msg session.Message
		var sender string
		var attachments sql.NullString
		if err := rows.Scan(&msg.ID, &sender, &msg.Text, &msg.CreatedAt, &msg.IsError, &attachments); err != nil {
			return nil, fmt.Errorf("failed to scan message row: %w", err)
		}
		msg.Sender = session.Sender(sender)
		if attachments.Valid && attachments.String != "" {
			if err := json.Unmarshal([]byte(attachments.String), &msg.Attachments); err != nil {
				return nil, fmt.Errorf("failed to decode attachments: %w", err)
			}
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

// marshalAttachments keeps attachment metadata only; blob content is not
// worth persisting for history browsing.
func marshalAttachments(files []session.FileRef) (sql.NullString, error) {
	if len(files) == 0 {
		return sql.NullString{}, nil
	}

	meta := make([]session.FileRef, len(files))
	for i, f := range files {
		meta[i] = session.FileRef{Name: f.Name, SizeBytes: f.SizeBytes}
	}
	data, err := json.Marshal(meta)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("failed to encode attachments: %w", err)
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}
