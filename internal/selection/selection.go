// Package selection holds the checked state over a scanned link list.
// Every function returns a fresh slice and leaves its input untouched.
package selection

import (
	"errors"
	"fmt"

	"github.com/nikbrunner/linkscan/internal/model"
)

// ErrIndexOutOfRange is returned by ToggleOne for an index outside the list.
var ErrIndexOutOfRange = errors.New("index out of range")

// ToggleOne returns a copy of items with the checked state of items[index]
// inverted. An out-of-range index returns an unchanged copy and
// ErrIndexOutOfRange.
func ToggleOne(items []model.LinkItem, index int) ([]model.LinkItem, error) {
	out := clone(items)
	if index < 0 || index >= len(out) {
		return out, fmt.Errorf("toggle %d of %d: %w", index, len(items), ErrIndexOutOfRange)
	}
	out[index].Checked = !out[index].Checked
	return out, nil
}

// ToggleAll returns a copy of items where every item is unchecked if all
// were checked, and checked otherwise. An empty list counts as all checked.
func ToggleAll(items []model.LinkItem) []model.LinkItem {
	target := !Every(items)
	out := clone(items)
	for i := range out {
		out[i].Checked = target
	}
	return out
}

// Every reports whether every item is checked. It is vacuously true for an
// empty list; use IsAllChecked for display.
func Every(items []model.LinkItem) bool {
	for _, it := range items {
		if !it.Checked {
			return false
		}
	}
	return true
}

// IsAllChecked reports whether the list is non-empty and fully checked.
func IsAllChecked(items []model.LinkItem) bool {
	return len(items) > 0 && Every(items)
}

// Checked returns the URLs of checked items in list order.
func Checked(items []model.LinkItem) []string {
	urls := []string{}
	for _, it := range items {
		if it.Checked {
			urls = append(urls, it.URL)
		}
	}
	return urls
}

// Count returns the number of checked items.
func Count(items []model.LinkItem) int {
	n := 0
	for _, it := range items {
		if it.Checked {
			n++
		}
	}
	return n
}

func clone(items []model.LinkItem) []model.LinkItem {
	out := make([]model.LinkItem, len(items))
	copy(out, items)
	return out
}
