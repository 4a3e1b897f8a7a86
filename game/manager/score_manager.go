package manager

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// ScoreFile is the on-disk shape of the persisted best score
type ScoreFile struct {
	HighScore int `json:"highScore"`
}

// ScoreManager owns the best score. It only ever moves upward and is written
// to disk on every increase. An empty path keeps it in memory.
type ScoreManager struct {
	mu        sync.Mutex
	path      string
	highScore int
}

// NewScoreManager loads the best score from path. A missing file starts at 0.
// A file that cannot be parsed also starts at 0 and the error is returned so the
// caller can report it; the manager is usable either way.
func NewScoreManager(path string) (*ScoreManager, error) {
	sm := &ScoreManager{path: path}
	if path == "" {
		return sm, nil
	}
	if err := sm.load(); err != nil {
		return sm, err
	}
	return sm, nil
}

func (sm *ScoreManager) load() error {
	data, err := os.ReadFile(sm.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read best score: %w", err)
	}

	var stats ScoreFile
	if err := json.Unmarshal(data, &stats); err != nil {
		return fmt.Errorf("parse best score %s: %w", sm.path, err)
	}
	if stats.HighScore > 0 {
		sm.highScore = stats.HighScore
	}
	return nil
}

// Best returns the current best score
func (sm *ScoreManager) Best() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.highScore
}

// Record raises the best score to score if it is higher and persists it.
// The in-memory value is raised even when the write fails.
func (sm *ScoreManager) Record(score int) (bool, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if score <= sm.highScore {
		return false, nil
	}
	sm.highScore = score
	if sm.path == "" {
		return true, nil
	}
	return true, sm.save()
}

// save writes through a temp file so a crash never leaves a truncated score
func (sm *ScoreManager) save() error {
	data, err := json.MarshalIndent(ScoreFile{HighScore: sm.highScore}, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(sm.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create score dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".highscore-*")
	if err != nil {
		return fmt.Errorf("write best score: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write best score: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write best score: %w", err)
	}
	if err := os.Rename(tmp.Name(), sm.path); err != nil {
		return fmt.Errorf("write best score: %w", err)
	}
	return nil
}

// Path returns the backing file, empty when in-memory
func (sm *ScoreManager) Path() string {
	return sm.path
}
