package wardrobe

import (
	"reflect"
	"testing"

	"github.com/rohithprakash15/dripadvisor/internal/advisor"
)

func TestSelection_TapRefusesUnavailable(t *testing.T) {
	s := NewSelection()

	if s.ToggleTap(advisor.ClothingItem{ID: "wet-jeans", Available: false}) {
		t.Fatal("ToggleTap accepted an unavailable item")
	}
	if s.Mode() != ModeNone || s.Count() != 0 {
		t.Fatalf("selection after refused tap: mode=%v count=%d, want empty", s.Mode(), s.Count())
	}
}

func TestSelection_TapSelectsAndDeselects(t *testing.T) {
	s := NewSelection()
	shirt := advisor.ClothingItem{ID: "shirt", Available: true}

	if !s.ToggleTap(shirt) {
		t.Fatal("ToggleTap refused an available item")
	}
	if s.Mode() != ModeTap || !s.Selected("shirt") {
		t.Fatalf("mode=%v selected=%v, want tap mode with shirt", s.Mode(), s.Selected("shirt"))
	}

	if !s.ToggleTap(shirt) {
		t.Fatal("ToggleTap refused to deselect")
	}
	if s.Mode() != ModeNone || s.Count() != 0 {
		t.Fatalf("mode=%v count=%d after deselect, want empty", s.Mode(), s.Count())
	}
}

func TestSelection_ManageAcceptsUnavailable(t *testing.T) {
	s := NewSelection()

	s.ToggleManage(advisor.ClothingItem{ID: "wet-jeans", Available: false})
	if s.Mode() != ModeManage || !s.Selected("wet-jeans") {
		t.Fatalf("mode=%v selected=%v, want manage mode with wet-jeans", s.Mode(), s.Selected("wet-jeans"))
	}
}

func TestSelection_ModesAreExclusive(t *testing.T) {
	s := NewSelection()
	shirt := advisor.ClothingItem{ID: "shirt", Available: true}
	jeans := advisor.ClothingItem{ID: "jeans", Available: true}

	s.ToggleTap(shirt)
	s.ToggleManage(jeans)
	if s.Mode() != ModeManage {
		t.Fatalf("mode = %v after manage toggle, want manage", s.Mode())
	}
	if s.Selected("shirt") {
		t.Fatal("tap selection survived entering manage mode")
	}

	s.ToggleTap(shirt)
	if s.Mode() != ModeTap {
		t.Fatalf("mode = %v after tap toggle, want tap", s.Mode())
	}
	if s.Selected("jeans") {
		t.Fatal("manage selection survived entering tap mode")
	}
}

func TestSelection_IDsKeepPickOrder(t *testing.T) {
	s := NewSelection()
	s.ToggleTap(advisor.ClothingItem{ID: "b", Available: true})
	s.ToggleTap(advisor.ClothingItem{ID: "a", Available: true})
	s.ToggleTap(advisor.ClothingItem{ID: "c", Available: true})

	if got := s.IDs(); !reflect.DeepEqual(got, []string{"b", "a", "c"}) {
		t.Fatalf("IDs = %v, want pick order [b a c]", got)
	}

	s.ToggleTap(advisor.ClothingItem{ID: "a", Available: true})
	if got := s.IDs(); !reflect.DeepEqual(got, []string{"b", "c"}) {
		t.Fatalf("IDs after deselect = %v, want [b c]", got)
	}
}

func TestSelection_PruneDropsDeletedItems(t *testing.T) {
	s := NewSelection()
	s.ToggleManage(advisor.ClothingItem{ID: "gone"})
	s.ToggleManage(advisor.ClothingItem{ID: "kept"})

	s.Prune([]advisor.ClothingItem{{ID: "kept"}})
	if got := s.IDs(); !reflect.DeepEqual(got, []string{"kept"}) {
		t.Fatalf("IDs after prune = %v, want [kept]", got)
	}
	if s.Selected("gone") {
		t.Fatal("pruned id still reported selected")
	}

	s.Prune(nil)
	if s.Mode() != ModeNone || s.Count() != 0 {
		t.Fatalf("mode=%v count=%d after pruning everything, want empty", s.Mode(), s.Count())
	}
}
