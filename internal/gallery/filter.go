package gallery

import (
	"strings"

	"golang.org/x/text/cases"
)

// Filter returns the items visible for the given sub-category selection and
// search keyword.
//
// A non-empty selection keeps items whose sub-categories include any selected
// value. A non-empty keyword keeps items whose title, tags or description
// contain it, ignoring case. Both conditions must hold; an empty selection or
// keyword filters nothing. Order follows items and items is not modified.
func Filter(items []Item, selected Set, keyword string) []Item {
	keyword = strings.TrimSpace(keyword)
	fold := cases.Fold()
	needle := fold.String(keyword)

	out := make([]Item, 0, len(items))
	for _, it := range items {
		if !selected.Empty() && !it.SubCategory.Intersects(selected) {
			continue
		}
		if needle != "" && !matchesKeyword(it, needle, fold) {
			continue
		}
		out = append(out, it)
	}
	return out
}

func matchesKeyword(it Item, needle string, fold cases.Caser) bool {
	if strings.Contains(fold.String(it.Title), needle) {
		return true
	}
	for _, tag := range it.Tags {
		if strings.Contains(fold.String(tag), needle) {
			return true
		}
	}
	return it.Description != "" && strings.Contains(fold.String(it.Description), needle)
}

// SubCategories lists the distinct sub-categories present in items, in first-seen
// order. Gallery pages render their filter chips from it.
func SubCategories(items []Item) Set {
	var all []string
	for _, it := range items {
		all = append(all, it.SubCategory...)
	}
	return NewSet(all...)
}
