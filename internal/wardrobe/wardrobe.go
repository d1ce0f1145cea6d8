// Package wardrobe implements the display-side wardrobe logic: list
// filtering, the two-key sort, and the item selection modes. Nothing here is
// persisted; the backend owns the wardrobe itself.
package wardrobe

import (
	"sort"

	"github.com/rohithprakash15/dripadvisor/internal/advisor"
)

// Filter restricts the visible wardrobe by availability.
type Filter int

const (
	FilterAll Filter = iota
	FilterAvailable
	FilterUnavailable
)

// Label returns the display label for a filter.
func (f Filter) Label() string {
	switch f {
	case FilterAvailable:
		return "Available"
	case FilterUnavailable:
		return "Unavailable"
	default:
		return "All"
	}
}

// Next cycles to the following filter mode.
func (f Filter) Next() Filter {
	switch f {
	case FilterAll:
		return FilterAvailable
	case FilterAvailable:
		return FilterUnavailable
	default:
		return FilterAll
	}
}

// SortSpec is the two-key sort: usage frequency first, creation date as the
// tie break. Each direction flips independently.
type SortSpec struct {
	FrequencyDesc bool
	CreatedDesc   bool
}

// DefaultSort shows the most worn, most recent items first.
func DefaultSort() SortSpec {
	return SortSpec{FrequencyDesc: true, CreatedDesc: true}
}

// Apply returns a new slice filtered and then sorted. The input is never
// mutated, and equal-key items keep their incoming order.
func Apply(items []advisor.ClothingItem, filter Filter, spec SortSpec) []advisor.ClothingItem {
	out := make([]advisor.ClothingItem, 0, len(items))
	for _, item := range items {
		switch filter {
		case FilterAvailable:
			if !item.Available {
				continue
			}
		case FilterUnavailable:
			if item.Available {
				continue
			}
		}
		out = append(out, item)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Frequency != out[j].Frequency {
			if spec.FrequencyDesc {
				return out[i].Frequency > out[j].Frequency
			}
			return out[i].Frequency < out[j].Frequency
		}
		ti := out[i].ParsedCreatedAt()
		tj := out[j].ParsedCreatedAt()
		if !ti.Equal(tj) {
			if spec.CreatedDesc {
				return ti.After(tj)
			}
			return ti.Before(tj)
		}
		return false
	})

	return out
}
