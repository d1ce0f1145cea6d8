package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rohithprakash15/dripadvisor/internal/advisor"
	"github.com/rohithprakash15/dripadvisor/internal/wardrobe"
)

func wardrobeModel(t *testing.T, items []advisor.ClothingItem) Model {
	t.Helper()
	m := newTestModel(t, true)
	m.currentView = ViewWardrobe
	m.store.Update(items, nil)
	m.snapshot = m.store.Snapshot()
	return m
}

func TestWardrobe_TapUnavailableRefusedWithMessage(t *testing.T) {
	m := wardrobeModel(t, []advisor.ClothingItem{
		{ID: "c1", Description: "wet jeans", Available: false},
	})

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m = updated.(Model)

	if m.wardrobe.selection.Count() != 0 {
		t.Fatal("unavailable item got selected")
	}
	if !strings.Contains(m.wardrobe.info, "unavailable") {
		t.Fatalf("info = %q, want unavailable notice", m.wardrobe.info)
	}
}

func TestWardrobe_TapSelectsAvailableItem(t *testing.T) {
	m := wardrobeModel(t, []advisor.ClothingItem{
		{ID: "c1", Description: "linen shirt", Available: true},
	})

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m = updated.(Model)

	if !m.wardrobe.selection.Selected("c1") {
		t.Fatal("available item not selected")
	}
	if m.wardrobe.selection.Mode() != wardrobe.ModeTap {
		t.Fatalf("mode = %v, want tap", m.wardrobe.selection.Mode())
	}
}

func TestWardrobe_DeleteWithoutManageSelectionIsLocal(t *testing.T) {
	m := wardrobeModel(t, []advisor.ClothingItem{
		{ID: "c1", Description: "linen shirt", Available: true},
	})

	updated, cmd := m.Update(keyRunes("d"))
	m = updated.(Model)

	if cmd != nil {
		t.Fatal("delete without selection produced a command")
	}
	if m.wardrobe.info == "" {
		t.Fatal("delete without selection gave no hint")
	}
}

func TestWardrobe_EmptyStateRendered(t *testing.T) {
	m := wardrobeModel(t, nil)

	if got := m.renderWardrobe(); !strings.Contains(got, "No clothing items found") {
		t.Fatal("empty wardrobe view missing empty state text")
	}
}

func TestWardrobe_SnapshotPrunesStaleSelection(t *testing.T) {
	m := wardrobeModel(t, []advisor.ClothingItem{
		{ID: "c1", Description: "linen shirt", Available: true},
		{ID: "c2", Description: "denim jacket", Available: true},
	})
	m.wardrobe.selection.ToggleManage(advisor.ClothingItem{ID: "c1"})
	m.wardrobe.selection.ToggleManage(advisor.ClothingItem{ID: "c2"})

	// c1 was deleted server-side; next snapshot only carries c2
	m.store.Update([]advisor.ClothingItem{{ID: "c2", Available: true}}, nil)
	updated, _ := m.Update(snapshotMsg(m.store.Snapshot()))
	m = updated.(Model)

	if m.wardrobe.selection.Selected("c1") {
		t.Fatal("stale selection survived snapshot")
	}
	if !m.wardrobe.selection.Selected("c2") {
		t.Fatal("live selection dropped by snapshot")
	}
}

func TestWardrobe_CursorClampedAfterShrink(t *testing.T) {
	m := wardrobeModel(t, []advisor.ClothingItem{
		{ID: "c1", Available: true}, {ID: "c2", Available: true}, {ID: "c3", Available: true},
	})
	m.wardrobe.cursor = 2

	m.store.Update([]advisor.ClothingItem{{ID: "c1", Available: true}}, nil)
	updated, _ := m.Update(snapshotMsg(m.store.Snapshot()))
	m = updated.(Model)

	if m.wardrobe.cursor != 0 {
		t.Fatalf("cursor = %d after shrink to one item, want 0", m.wardrobe.cursor)
	}
}
