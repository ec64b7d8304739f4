package gallery

import (
	"strings"
	"time"
)

// ReopenDelay is how long the detail overlay stays closed when the visitor
// jumps from one item to a related one.
const ReopenDelay = 300 * time.Millisecond

// RelatedRef is the "more like this" projection of an item. Presentation code
// turns ID/Slug into links; the ref itself carries no behaviour.
type RelatedRef struct {
	ID        string
	Title     string
	Thumbnail string
	Date      time.Time
	Slug      string
}

// Related lists the items in all that share selected's category and at least
// one of its sub-categories, excluding selected itself. When selected has no
// sub-category every item of the category qualifies; when it has no category
// nothing does. Order follows all.
func Related(selected Item, all []Item) []RelatedRef {
	category := strings.TrimSpace(selected.Category)
	if category == "" {
		return []RelatedRef{}
	}
	out := make([]RelatedRef, 0)
	for _, cand := range all {
		if cand.ID == selected.ID {
			continue
		}
		if strings.TrimSpace(cand.Category) != category {
			continue
		}
		if !selected.SubCategory.Empty() && !cand.SubCategory.Intersects(selected.SubCategory) {
			continue
		}
		out = append(out, RelatedRef{
			ID:        cand.ID,
			Title:     cand.Title,
			Thumbnail: cand.Thumbnail(),
			Date:      cand.Date(),
			Slug:      cand.Slug,
		})
	}
	return out
}
