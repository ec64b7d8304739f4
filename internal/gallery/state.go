package gallery

import (
	"net/url"
	"strings"
)

// Query parameter names used by gallery pages.
const (
	ParamSubCategory = "sub"
	ParamKeyword     = "q"
	ParamItem        = "item"
)

// State is the per-page filter, search and selection state. Transitions return
// a new State and never modify the receiver.
type State struct {
	Selected Set
	Keyword  string
	// SelectedID is the item shown in the detail overlay; empty when closed.
	SelectedID string
}

// ApplyFilter replaces the selected sub-categories.
func (s State) ApplyFilter(subCategories ...string) State {
	s.Selected = NewSet(subCategories...)
	return s
}

// ToggleSubCategory adds v to the selection, or removes it when present.
func (s State) ToggleSubCategory(v string) State {
	v = strings.TrimSpace(v)
	if v == "" {
		return s
	}
	if s.Selected.Has(v) {
		s.Selected = s.Selected.Without(v)
	} else {
		s.Selected = s.Selected.With(v)
	}
	return s
}

// ClearFilter drops the sub-category selection.
func (s State) ClearFilter() State {
	s.Selected = nil
	return s
}

// SetKeyword replaces the search keyword.
func (s State) SetKeyword(keyword string) State {
	s.Keyword = strings.TrimSpace(keyword)
	return s
}

// SelectItem opens the detail overlay for id.
func (s State) SelectItem(id string) State {
	s.SelectedID = strings.TrimSpace(id)
	return s
}

// CloseDetail closes the detail overlay.
func (s State) CloseDetail() State {
	s.SelectedID = ""
	return s
}

// Visible returns the filtered list for this state.
func (s State) Visible(items []Item) []Item {
	return Filter(items, s.Selected, s.Keyword)
}

// Detail returns the selected item and its related refs. ok is false when the
// overlay is closed or the id no longer exists.
func (s State) Detail(items []Item) (Item, []RelatedRef, bool) {
	if s.SelectedID == "" {
		return Item{}, nil, false
	}
	it, ok := Find(items, s.SelectedID)
	if !ok {
		return Item{}, nil, false
	}
	return it, Related(it, items), true
}

// Filtering reports whether any filter or keyword is active.
func (s State) Filtering() bool {
	return !s.Selected.Empty() || s.Keyword != ""
}

// StateFromQuery reads the state from gallery query parameters.
func StateFromQuery(q url.Values) State {
	var subs []string
	for _, raw := range q[ParamSubCategory] {
		// accept both ?sub=a&sub=b and ?sub=a,b
		subs = append(subs, strings.Split(raw, ",")...)
	}
	return State{}.
		ApplyFilter(subs...).
		SetKeyword(q.Get(ParamKeyword)).
		SelectItem(q.Get(ParamItem))
}

// Query encodes the state back into query parameters.
func (s State) Query() url.Values {
	q := url.Values{}
	for _, v := range s.Selected {
		q.Add(ParamSubCategory, v)
	}
	if s.Keyword != "" {
		q.Set(ParamKeyword, s.Keyword)
	}
	if s.SelectedID != "" {
		q.Set(ParamItem, s.SelectedID)
	}
	return q
}
