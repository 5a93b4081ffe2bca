package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"resto-notify/internal/model"
	"resto-notify/pkg/log"
)

// Persisted setting keys.
const (
	keySoundEnabled        = "sound_enabled"
	keyPermissionState     = "permission_state"
	keyPermissionCheckedAt = "permission_checked_at"
	keyDeviceToken         = "device_token"
	keyLastRegisteredToken = "last_registered_token"
)

const schema = `
CREATE TABLE IF NOT EXISTS settings (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

// sqliteStore implements Store with a local SQLite database for the
// persisted subset and plain memory for the transient part.
type sqliteStore struct {
	l  log.Logger
	db *sqlx.DB

	mu      sync.RWMutex
	events  []model.NotificationEvent
	unread  int
	focused bool
}

func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// New opens (or creates) the store database at path and prepares the schema.
func New(l log.Logger, path string) (Store, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &sqliteStore{l: l, db: db}, nil
}

func (s *sqliteStore) AddEvent(ctx context.Context, ev model.NotificationEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	if !ev.IsSeen {
		s.unread++
	}
}

func (s *sqliteStore) Events(ctx context.Context) []model.NotificationEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.NotificationEvent, len(s.events))
	copy(out, s.events)
	return out
}

func (s *sqliteStore) MarkEventSeen(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.events {
		if s.events[i].ID == id && !s.events[i].IsSeen {
			s.events[i].IsSeen = true
			if s.unread > 0 {
				s.unread--
			}
		}
	}
}

func (s *sqliteStore) Unread(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.unread
}

func (s *sqliteStore) SoundEnabled(ctx context.Context) bool {
	value, err := s.get(ctx, keySoundEnabled)
	if err != nil {
		// Sound is on by default.
		return true
	}
	return value == "1"
}

func (s *sqliteStore) SetSoundEnabled(ctx context.Context, enabled bool) error {
	value := "0"
	if enabled {
		value = "1"
	}
	return s.set(ctx, keySoundEnabled, value)
}

func (s *sqliteStore) PermissionState(ctx context.Context) model.PermissionState {
	value, err := s.get(ctx, keyPermissionState)
	if err != nil {
		return model.PermissionUnset
	}
	switch model.PermissionState(value) {
	case model.PermissionGranted:
		return model.PermissionGranted
	case model.PermissionDenied:
		return model.PermissionDenied
	default:
		return model.PermissionUnset
	}
}

func (s *sqliteStore) SetPermissionState(ctx context.Context, state model.PermissionState) error {
	if err := s.set(ctx, keyPermissionCheckedAt, nowUTC()); err != nil {
		s.l.Warnf(ctx, "internal.store.SetPermissionState: timestamp write failed: %v", err)
	}
	return s.set(ctx, keyPermissionState, string(state))
}

func (s *sqliteStore) DeviceToken(ctx context.Context) string {
	value, err := s.get(ctx, keyDeviceToken)
	if err != nil {
		return ""
	}
	return value
}

func (s *sqliteStore) SetDeviceToken(ctx context.Context, token string) error {
	if token == "" {
		return s.del(ctx, keyDeviceToken)
	}
	return s.set(ctx, keyDeviceToken, token)
}

func (s *sqliteStore) LastRegisteredToken(ctx context.Context) string {
	value, err := s.get(ctx, keyLastRegisteredToken)
	if err != nil {
		return ""
	}
	return value
}

func (s *sqliteStore) SetLastRegisteredToken(ctx context.Context, token string) error {
	if token == "" {
		return s.del(ctx, keyLastRegisteredToken)
	}
	return s.set(ctx, keyLastRegisteredToken, token)
}

func (s *sqliteStore) SetFocusSnapshot(focused bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.focused = focused
}

func (s *sqliteStore) FocusSnapshot() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.focused
}

func (s *sqliteStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = nil
	s.unread = 0
	return nil
}

func (s *sqliteStore) ClearPersisted(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM settings")
	if err != nil {
		return fmt.Errorf("clearing settings: %w", err)
	}
	return nil
}

func (s *sqliteStore) Close() error {
	return s.db.Close()
}

func (s *sqliteStore) get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.GetContext(ctx, &value, "SELECT value FROM settings WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", err
	}
	return value, err
}

func (s *sqliteStore) set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	return err
}

func (s *sqliteStore) del(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM settings WHERE key = ?", key)
	return err
}
