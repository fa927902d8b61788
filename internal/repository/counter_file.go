package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"littlego/internal/domain/game"
	ownErrors "littlego/internal/errors"
)

// FileCounterStorage keeps the turn states in a JSON side file next to the
// input and output files, one entry per game id:
// {"<game id>": {"moves": n, "history": [...]}, ...}.
type FileCounterStorage struct {
	path   string
	mu     sync.Mutex
	rename func(oldpath, newpath string) error
}

func NewFileCounterStorage(path string) *FileCounterStorage {
	return &FileCounterStorage{path: path, rename: os.Rename}
}

func (f *FileCounterStorage) Load(_ context.Context, gameID string) (game.TurnState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	states, err := f.read()
	if err != nil {
		return game.TurnState{}, err
	}
	state, ok := states[gameID]
	if !ok {
		return game.TurnState{}, ownErrors.ErrCounterNotFound
	}
	return state, nil
}

// Save replaces the game's entry. The file is rewritten through a temporary
// file so a crash never leaves a half-written counter behind.
func (f *FileCounterStorage) Save(_ context.Context, gameID string, state game.TurnState) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	states, err := f.read()
	if err != nil {
		return err
	}
	if state.History == nil {
		state.History = []game.HistoryEntry{}
	}
	states[gameID] = state

	data, err := json.Marshal(states)
	if err != nil {
		return fmt.Errorf("failed to encode turn state: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), filepath.Base(f.path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write turn state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write turn state: %w", err)
	}
	if err := f.rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", f.path, err)
	}
	return nil
}

// read returns an empty map when the file does not exist yet.
func (f *FileCounterStorage) read() (map[string]game.TurnState, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]game.TurnState{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", f.path, err)
	}

	states := map[string]game.TurnState{}
	if err := json.Unmarshal(data, &states); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", f.path, err)
	}
	return states, nil
}
