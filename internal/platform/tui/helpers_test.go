package tui

import (
	"testing"

	"github.com/vovakirdan/doodle/internal/registry"
)

func mustCreate(t *testing.T, id string) registry.Game {
	t.Helper()
	g, err := registry.Create(id)
	if err != nil {
		t.Fatalf("Create(%q) failed: %v", id, err)
	}
	return g
}
