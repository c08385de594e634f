package store

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/roach88/scorekeeper/internal/model"
)

// marshalMatch converts a match to JSON TEXT for storage.
// HTML escaping is disabled so player names are stored as written.
func marshalMatch(m *model.Match) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(m); err != nil {
		return "", fmt.Errorf("marshal match: %w", err)
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

// unmarshalMatch parses a stored snapshot.
func unmarshalMatch(data string) (*model.Match, error) {
	var m model.Match
	if err := json.Unmarshal([]byte(data), &m); err != nil {
		return nil, fmt.Errorf("unmarshal match: %w", err)
	}
	if m.Sets == nil {
		m.Sets = []*model.Set{}
	}
	return &m, nil
}
