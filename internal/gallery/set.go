package gallery

import "strings"

// Set is an ordered collection of distinct, trimmed strings. Sub-categories and
// filter selections use it regardless of whether the CMS sent one value or many.
type Set []string

// NewSet trims values, drops empties and duplicates, and keeps first-seen order.
func NewSet(values ...string) Set {
	if len(values) == 0 {
		return nil
	}
	out := make(Set, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Has reports whether v is a member.
func (s Set) Has(v string) bool {
	for _, item := range s {
		if item == v {
			return true
		}
	}
	return false
}

// Intersects reports whether s and other share at least one value.
func (s Set) Intersects(other Set) bool {
	if len(s) == 0 || len(other) == 0 {
		return false
	}
	for _, v := range s {
		if other.Has(v) {
			return true
		}
	}
	return false
}

// Empty reports whether the set has no members.
func (s Set) Empty() bool { return len(s) == 0 }

// With returns a copy of s that includes v.
func (s Set) With(v string) Set {
	return NewSet(append(s.Clone(), v)...)
}

// Without returns a copy of s with v removed.
func (s Set) Without(v string) Set {
	out := make(Set, 0, len(s))
	for _, item := range s {
		if item != v {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Clone returns an independent copy.
func (s Set) Clone() Set {
	if s == nil {
		return nil
	}
	return append(Set(nil), s...)
}
