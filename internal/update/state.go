package update

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/sandeepkv93/todio/internal/view"
)

// uiState is the part of the session worth restoring: which view the
// user was in and how it was ordered. Task data itself lives in SQLite.
type uiState struct {
	Mode              string `json:"mode"`
	SortBy            string `json:"sort_by,omitempty"`
	SortDirection     string `json:"sort_direction,omitempty"`
	FilterCompleted   bool   `json:"filter_completed"`
	FilterUncompleted bool   `json:"filter_uncompleted"`
	CustomOrder       bool   `json:"custom_order"`
}

func (m *Model) saveUIState() {
	if strings.TrimSpace(m.stateFilePath) == "" {
		return
	}
	state := uiState{
		Mode:              string(m.Selection.Mode),
		FilterCompleted:   m.Selection.Status.Completed,
		FilterUncompleted: m.Selection.Status.Uncompleted,
		CustomOrder:       m.Selection.CustomOrder,
	}
	if m.Selection.Sort != nil {
		state.SortBy = string(m.Selection.Sort.By)
		state.SortDirection = string(m.Selection.Sort.Direction)
	}
	_ = persistUIState(m.stateFilePath, state)
}

func (m *Model) applyUIState(state uiState) {
	if mode := view.Mode(state.Mode); mode.IsValid() {
		m.Selection.Mode = mode
	}
	if state.SortBy != "" {
		m.Selection.Sort = &view.Sort{
			By:        view.SortBy(state.SortBy),
			Direction: view.Direction(state.SortDirection),
		}
	}
	m.Selection.Status = view.StatusFilter{
		Completed:   state.FilterCompleted,
		Uncompleted: state.FilterUncompleted,
	}
	m.Selection.CustomOrder = state.CustomOrder
}

func persistUIState(path string, state uiState) error {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	payload, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(payload, '\n'), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func loadUIState(path string) (uiState, error) {
	var state uiState
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return state, nil
	}
	raw, err := os.ReadFile(trimmed)
	if err != nil {
		if os.IsNotExist(err) {
			return state, nil
		}
		return state, err
	}
	if strings.TrimSpace(string(raw)) == "" {
		return state, nil
	}
	if err := json.Unmarshal(raw, &state); err != nil {
		return state, err
	}
	return state, nil
}
