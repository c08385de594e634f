package model

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Player is one participant of a match. ID is the stable reference used by
// strokes, points and winners; Name is for display only.
type Player struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"name,omitempty"`
}

// NewPlayer returns a Player with NFC-normalised, trimmed ID and name, so
// that visually identical identifiers compare equal.
func NewPlayer(id, name string) Player {
	id = norm.NFC.String(strings.TrimSpace(id))
	name = norm.NFC.String(strings.TrimSpace(name))
	if name == "" {
		name = id
	}
	return Player{ID: id, Name: name}
}
