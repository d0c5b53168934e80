package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/vovakirdan/twisty-blades/internal/knife"
)

// Progress keys are stored as "<game>.<name>".
const (
	KeyHighestCompleted = "highest_completed_level"
	KeyLevelCompleted   = "level_completed"
)

// ProgressKey returns the storage key for a game's progress value.
func ProgressKey(gameID, name string) string {
	return gameID + "." + name
}

// ProgressValue reads an integer progress value. ok is false when the key
// has never been written.
func (s *Store) ProgressValue(key string) (value int, ok bool, err error) {
	err = s.db.QueryRow("SELECT value FROM progress WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot read progress %s: %w", key, err)
	}
	return value, true, nil
}

// SetProgressValue writes an integer progress value.
func (s *Store) SetProgressValue(key string, value int) error {
	_, err := s.db.Exec(
		`INSERT INTO progress (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write progress %s: %w", key, err)
	}
	return nil
}

// ResetProgress deletes every progress value of a game.
func (s *Store) ResetProgress(gameID string) error {
	_, err := s.db.Exec("DELETE FROM progress WHERE key LIKE ? ESCAPE '\\'", escapeLike(gameID)+".%")
	if err != nil {
		return fmt.Errorf("storage: cannot reset progress: %w", err)
	}
	return nil
}

// escapeLike escapes LIKE wildcards in s.
func escapeLike(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '%' || r == '_' || r == '\\' {
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(out)
}

// GameProgress persists the level progress of one game. It implements
// knife.ProgressStore.
type GameProgress struct {
	store  *Store
	gameID string
}

var _ knife.ProgressStore = (*GameProgress)(nil)

// Progress returns the progress store for gameID.
func (s *Store) Progress(gameID string) *GameProgress {
	return &GameProgress{store: s, gameID: gameID}
}

// SaveProgress marks levelIndex completed. The highest completed level is
// kept with max semantics so replaying an earlier level never lowers it.
func (p *GameProgress) SaveProgress(levelIndex int) error {
	if levelIndex < 0 {
		return fmt.Errorf("storage: negative level index %d", levelIndex)
	}

	tx, err := p.store.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin progress update: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO progress (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = MAX(value, excluded.value), updated_at = CURRENT_TIMESTAMP`,
		ProgressKey(p.gameID, KeyHighestCompleted), levelIndex,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save highest level: %w", err)
	}

	_, err = tx.Exec(
		`INSERT INTO progress (key, value) VALUES (?, 1)
		 ON CONFLICT(key) DO UPDATE SET value = 1, updated_at = CURRENT_TIMESTAMP`,
		ProgressKey(p.gameID, KeyLevelCompleted),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save completed flag: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit progress: %w", err)
	}
	return nil
}

// LoadProgress returns the highest completed level, or -1 when none.
func (p *GameProgress) LoadProgress() (int, error) {
	v, ok, err := p.store.ProgressValue(ProgressKey(p.gameID, KeyHighestCompleted))
	if err != nil {
		return -1, err
	}
	if !ok {
		return -1, nil
	}
	return v, nil
}

// LevelCompleted reports whether any level has ever been completed.
func (p *GameProgress) LevelCompleted() (bool, error) {
	v, _, err := p.store.ProgressValue(ProgressKey(p.gameID, KeyLevelCompleted))
	return v == 1, err
}

// Reset clears the game's progress.
func (p *GameProgress) Reset() error {
	return p.store.ResetProgress(p.gameID)
}
