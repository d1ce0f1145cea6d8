package wardrobe

import (
	"github.com/rohithprakash15/dripadvisor/internal/advisor"
)

// Mode identifies which selection gesture is active. Tap selection gathers
// base items for outfit building and only admits available items; manage
// selection drives bulk delete / mark-available and admits anything. The two
// are mutually exclusive.
type Mode int

const (
	ModeNone Mode = iota
	ModeTap
	ModeManage
)

// Selection tracks which wardrobe items are picked and under which mode.
type Selection struct {
	mode  Mode
	ids   map[string]bool
	order []string
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{ids: make(map[string]bool)}
}

// Mode returns the active selection mode.
func (s *Selection) Mode() Mode {
	return s.mode
}

// Count returns the number of selected items.
func (s *Selection) Count() int {
	return len(s.order)
}

// Selected reports whether the given item id is selected.
func (s *Selection) Selected(id string) bool {
	return s.ids[id]
}

// IDs returns the selected ids in the order they were picked.
func (s *Selection) IDs() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Clear empties the selection and resets the mode.
func (s *Selection) Clear() {
	s.mode = ModeNone
	s.ids = make(map[string]bool)
	s.order = nil
}

// ToggleTap toggles an item in tap mode. Entering tap mode discards any
// manage selection. Unavailable items are refused; the return value reports
// whether the toggle happened.
func (s *Selection) ToggleTap(item advisor.ClothingItem) bool {
	if s.mode == ModeManage {
		s.Clear()
	}
	if s.ids[item.ID] {
		s.remove(item.ID)
		return true
	}
	if !item.Available {
		return false
	}
	s.mode = ModeTap
	s.add(item.ID)
	return true
}

// ToggleManage toggles an item in manage mode regardless of availability.
// Entering manage mode discards any tap selection.
func (s *Selection) ToggleManage(item advisor.ClothingItem) {
	if s.mode == ModeTap {
		s.Clear()
	}
	if s.ids[item.ID] {
		s.remove(item.ID)
		return
	}
	s.mode = ModeManage
	s.add(item.ID)
}

// Prune drops selected ids that no longer exist in the wardrobe. Called
// after each refresh so stale selections cannot reference deleted items.
func (s *Selection) Prune(items []advisor.ClothingItem) {
	present := make(map[string]bool, len(items))
	for _, item := range items {
		present[item.ID] = true
	}
	kept := s.order[:0]
	for _, id := range s.order {
		if present[id] {
			kept = append(kept, id)
		} else {
			delete(s.ids, id)
		}
	}
	s.order = kept
	if len(s.order) == 0 {
		s.mode = ModeNone
	}
}

func (s *Selection) add(id string) {
	s.ids[id] = true
	s.order = append(s.order, id)
}

func (s *Selection) remove(id string) {
	delete(s.ids, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	if len(s.order) == 0 {
		s.mode = ModeNone
	}
}
