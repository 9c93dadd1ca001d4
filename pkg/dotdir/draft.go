package dotdir

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	draftFile = "draft.json"
)

// Draft is fact text typed into the terminal board that was never accepted
// by the collection. It is restored into the input the next time the board
// starts.
type Draft struct {
	Text string `json:"text"`

	// Target is the collection the text was meant for.
	Target string `json:"target"`

	SavedAt time.Time `json:"saved_at"`

	// Error is the last submission error, if any.
	Error string `json:"error,omitempty"`
}

// LoadDraft loads the draft from a target .factboard/draft.json.
// Returns nil, nil if no draft exists.
func (m *Manager) LoadDraft(overrideDir string) (*Draft, error) {
	dir, err := m.Target(overrideDir)
	if err != nil {
		return nil, err
	}
	if dir == "" {
		return nil, nil
	}

	data, err := os.ReadFile(filepath.Join(dir, draftFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading draft: %w", err)
	}

	draft := &Draft{}
	if err := json.Unmarshal(data, draft); err != nil {
		return nil, fmt.Errorf("parsing draft: %w", err)
	}

	return draft, nil
}

// SaveDraft persists the draft to a target .factboard/draft.json, creating
// ~/.factboard/ if needed.
func (m *Manager) SaveDraft(draft *Draft, overrideDir string) error {
	if draft == nil {
		return errors.New("cannot save nil draft")
	}

	dir, err := m.Ensure(overrideDir)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(draft, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling draft: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, draftFile), data, 0o600); err != nil {
		return fmt.Errorf("writing draft: %w", err)
	}

	return nil
}

// ClearDraft removes the draft file. Returns nil if there is none.
func (m *Manager) ClearDraft(overrideDir string) error {
	dir, err := m.Target(overrideDir)
	if err != nil || dir == "" {
		return err
	}

	if err := os.Remove(filepath.Join(dir, draftFile)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("removing draft: %w", err)
	}

	return nil
}
