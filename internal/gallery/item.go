// Package gallery holds the content pipeline behind the work, branded and content
// pages: record normalization, category/keyword filtering, related-content lookup
// and template dispatch for list cards and the detail overlay.
package gallery

import (
	"time"

	"finitefield.org/studio-web/internal/youtube"
)

// ContentType selects the rendering template for a record.
type ContentType int

const (
	// TypeUnset marks records that carry no template hint.
	TypeUnset ContentType = 0
	// TypeSingleMedia is a single 16:9 video or an image grid.
	TypeSingleMedia ContentType = 1
	// TypeMultiVideo groups several vertical videos into one carousel.
	TypeMultiVideo ContentType = 2
	// TypeImageSlider is a free-length image slider.
	TypeImageSlider ContentType = 3
	// TypeImageGrid is a fixed 2x2 image grid.
	TypeImageGrid ContentType = 4
)

// Role distinguishes the fragments of a multi-video content unit.
type Role string

const (
	RoleNone   Role = ""
	RoleBase   Role = "base"
	RoleAttach Role = "attach"
)

// Record is a content document as delivered by the CMS, with asset references
// already resolved to URLs.
type Record struct {
	ID          string
	DocType     string
	Title       string
	Tags        []string
	Category    string
	SubCategory Set
	ContentType ContentType
	Image       string
	Images      []string
	VideoURL    string
	VideoURLs   []string
	Description string
	PublishedAt time.Time
	ContentDate time.Time
	Slug        string

	Role     Role
	AttachTo string
}

// Item is a display-ready gallery entry.
type Item struct {
	ID          string
	DocType     string
	Title       string
	Tags        []string
	Category    string
	SubCategory Set
	ContentType ContentType
	Image       string
	Images      []string
	VideoURL    string
	VideoURLs   []string
	Description string
	PublishedAt time.Time
	ContentDate time.Time
	Slug        string
}

// Date returns the content date when set, otherwise the publish date.
func (it Item) Date() time.Time {
	if !it.ContentDate.IsZero() {
		return it.ContentDate
	}
	return it.PublishedAt
}

// PrimaryVideo returns the video consulted first for thumbnails.
func (it Item) PrimaryVideo() string {
	if it.VideoURL != "" {
		return it.VideoURL
	}
	for _, u := range it.VideoURLs {
		if u != "" {
			return u
		}
	}
	return ""
}

// Thumbnail picks the card image: video still first, then the cover image,
// then the first gallery image.
func (it Item) Thumbnail() string {
	if id := youtube.ExtractID(it.PrimaryVideo()); id != "" {
		return youtube.ThumbnailURL(id)
	}
	if it.Image != "" {
		return it.Image
	}
	for _, img := range it.Images {
		if img != "" {
			return img
		}
	}
	return ""
}

// AllImages returns the cover image followed by the gallery images, without
// repeating the cover.
func (it Item) AllImages() []string {
	out := make([]string, 0, len(it.Images)+1)
	if it.Image != "" {
		out = append(out, it.Image)
	}
	for _, img := range it.Images {
		if img == "" || img == it.Image {
			continue
		}
		out = append(out, img)
	}
	return out
}

// Items converts records to display items, in order.
func Items(records []Record) []Item {
	out := make([]Item, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.item())
	}
	return out
}

// Build normalizes records and converts them to display items.
func Build(records []Record) []Item {
	return Items(Normalize(records))
}

// Find returns the item with the given id.
func Find(items []Item, id string) (Item, bool) {
	for _, it := range items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// FindBySlug returns the item published under slug, falling back to an id match.
func FindBySlug(items []Item, slug string) (Item, bool) {
	for _, it := range items {
		if it.Slug != "" && it.Slug == slug {
			return it, true
		}
	}
	return Find(items, slug)
}

func (r Record) item() Item {
	return Item{
		ID:          r.ID,
		DocType:     r.DocType,
		Title:       r.Title,
		Tags:        append([]string(nil), r.Tags...),
		Category:    r.Category,
		SubCategory: r.SubCategory.Clone(),
		ContentType: r.ContentType,
		Image:       r.Image,
		Images:      append([]string(nil), r.Images...),
		VideoURL:    r.VideoURL,
		VideoURLs:   append([]string(nil), r.VideoURLs...),
		Description: r.Description,
		PublishedAt: r.PublishedAt,
		ContentDate: r.ContentDate,
		Slug:        r.Slug,
	}
}

func (r Record) clone() Record {
	cp := r
	cp.Tags = append([]string(nil), r.Tags...)
	cp.SubCategory = r.SubCategory.Clone()
	cp.Images = append([]string(nil), r.Images...)
	cp.VideoURLs = append([]string(nil), r.VideoURLs...)
	return cp
}
