package cms

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"finitefield.org/studio-web/internal/gallery"
)

// Document types served by the CMS.
const (
	DocWork              = "work"
	DocBranded           = "branded"
	DocContent           = "content"
	DocAbout             = "about"
	DocClient            = "client"
	DocSocialLink        = "socialLink"
	DocPortfolioDownload = "portfolioDownload"
)

// GallerySections lists the document types rendered as gallery pages.
var GallerySections = []string{DocWork, DocBranded, DocContent}

// IsGallerySection reports whether docType backs a gallery page.
func IsGallerySection(docType string) bool {
	for _, s := range GallerySections {
		if s == docType {
			return true
		}
	}
	return false
}

// About is the studio introduction shown on /about.
type About struct {
	Title    string
	Headline string
	Body     string
	Image    string
	Stats    []Stat
}

// Stat is a highlighted number on the about page.
type Stat struct {
	Label string
	Value string
}

// ClientLogo is a client shown in the home page logo wall.
type ClientLogo struct {
	Name string
	Logo string
	URL  string
}

// SocialLink is a footer link to one of the studio's channels.
type SocialLink struct {
	Platform string
	Label    string
	URL      string
}

// PortfolioDownload points at the downloadable portfolio deck.
type PortfolioDownload struct {
	Title string
	URL   string
}

// rawRecord is the wire shape shared by every document type. JSON comes from the
// CMS API, YAML from local seed files.
type rawRecord struct {
	ID                string      `json:"_id" yaml:"id"`
	Type              string      `json:"_type" yaml:"type"`
	Title             string      `json:"title" yaml:"title"`
	Tags              flexStrings `json:"tags" yaml:"tags"`
	Category          string      `json:"category" yaml:"category"`
	SubCategory       flexStrings `json:"subCategory" yaml:"subCategory"`
	ContentType       int         `json:"contentType" yaml:"contentType"`
	Image             string      `json:"image" yaml:"image"`
	Images            []string    `json:"images" yaml:"images"`
	VideoURL          string      `json:"videoUrl" yaml:"videoUrl"`
	VideoURLs         []string    `json:"videoUrls" yaml:"videoUrls"`
	Description       string      `json:"description" yaml:"description"`
	PublishedAt       string      `json:"publishedAt" yaml:"publishedAt"`
	ContentDate       string      `json:"contentDate" yaml:"contentDate"`
	Slug              flexSlug    `json:"slug" yaml:"slug"`
	Content2Role      string      `json:"content2Role" yaml:"content2Role"`
	AttachToContentID string      `json:"attachToContentId" yaml:"attachToContentId"`

	// about
	Headline string    `json:"headline" yaml:"headline"`
	Body     string    `json:"body" yaml:"body"`
	Stats    []rawStat `json:"stats" yaml:"stats"`

	// client / socialLink / portfolioDownload
	Name     string `json:"name" yaml:"name"`
	Logo     string `json:"logo" yaml:"logo"`
	URL      string `json:"url" yaml:"url"`
	Platform string `json:"platform" yaml:"platform"`
	Label    string `json:"label" yaml:"label"`
	FileURL  string `json:"fileUrl" yaml:"fileUrl"`
}

type rawStat struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// flexStrings accepts either a single string or a list.
type flexStrings []string

func (f *flexStrings) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = nil
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = splitSingle(s)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*f = list
	return nil
}

func (f *flexStrings) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			*f = nil
			return nil
		}
		*f = splitSingle(node.Value)
		return nil
	default:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*f = list
		return nil
	}
}

func splitSingle(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return []string{s}
}

// flexSlug accepts "slug" or {"current": "slug"}.
type flexSlug string

func (f *flexSlug) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexSlug(s)
		return nil
	}
	var obj struct {
		Current string `json:"current"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*f = flexSlug(obj.Current)
	return nil
}

func (f *flexSlug) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*f = flexSlug(node.Value)
		return nil
	}
	var obj struct {
		Current string `yaml:"current"`
	}
	if err := node.Decode(&obj); err != nil {
		return err
	}
	*f = flexSlug(obj.Current)
	return nil
}

func mapGalleryRecord(raw rawRecord, docType string) (gallery.Record, bool) {
	id := strings.TrimSpace(raw.ID)
	if id == "" {
		return gallery.Record{}, false
	}
	ct := gallery.ContentType(raw.ContentType)
	if ct == gallery.TypeUnset && docType != DocContent {
		// work and branded projects do not carry a template hint
		ct = gallery.TypeSingleMedia
	}
	return gallery.Record{
		ID:          id,
		DocType:     docType,
		Title:       strings.TrimSpace(raw.Title),
		Tags:        trimAll(raw.Tags),
		Category:    strings.ToLower(strings.TrimSpace(raw.Category)),
		SubCategory: gallery.NewSet(lowerSlice(raw.SubCategory)...),
		ContentType: ct,
		Image:       strings.TrimSpace(raw.Image),
		Images:      trimAll(raw.Images),
		VideoURL:    strings.TrimSpace(raw.VideoURL),
		VideoURLs:   trimAll(raw.VideoURLs),
		Description: strings.TrimSpace(raw.Description),
		PublishedAt: parseContentDate(raw.PublishedAt),
		ContentDate: parseContentDate(raw.ContentDate),
		Slug:        sanitizeSlug(string(raw.Slug)),
		Role:        gallery.Role(strings.ToLower(strings.TrimSpace(raw.Content2Role))),
		AttachTo:    strings.TrimSpace(raw.AttachToContentID),
	}, true
}

func mapAbout(raw rawRecord) About {
	a := About{
		Title:    strings.TrimSpace(raw.Title),
		Headline: strings.TrimSpace(raw.Headline),
		Body:     raw.Body,
		Image:    strings.TrimSpace(raw.Image),
	}
	for _, s := range raw.Stats {
		if strings.TrimSpace(s.Label) == "" {
			continue
		}
		a.Stats = append(a.Stats, Stat{Label: strings.TrimSpace(s.Label), Value: strings.TrimSpace(s.Value)})
	}
	return a
}

func mapClient(raw rawRecord) (ClientLogo, bool) {
	name := firstNonEmpty(raw.Name, raw.Title)
	if strings.TrimSpace(name) == "" {
		return ClientLogo{}, false
	}
	return ClientLogo{
		Name: strings.TrimSpace(name),
		Logo: strings.TrimSpace(firstNonEmpty(raw.Logo, raw.Image)),
		URL:  strings.TrimSpace(raw.URL),
	}, true
}

func mapSocialLink(raw rawRecord) (SocialLink, bool) {
	u := strings.TrimSpace(raw.URL)
	if u == "" {
		return SocialLink{}, false
	}
	platform := strings.ToLower(strings.TrimSpace(raw.Platform))
	return SocialLink{
		Platform: platform,
		Label:    strings.TrimSpace(firstNonEmpty(raw.Label, raw.Title, prettifySlug(platform))),
		URL:      u,
	}, true
}

func mapPortfolioDownload(raw rawRecord) (PortfolioDownload, bool) {
	u := strings.TrimSpace(firstNonEmpty(raw.FileURL, raw.URL))
	if u == "" {
		return PortfolioDownload{}, false
	}
	return PortfolioDownload{
		Title: strings.TrimSpace(firstNonEmpty(raw.Title, "Portfolio")),
		URL:   u,
	}, true
}

func parseContentDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006/01/02",
		"2006-1-2",
		"2006.01.02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

func sanitizeSlug(slug string) string {
	slug = strings.TrimSpace(strings.ToLower(slug))
	slug = strings.Trim(slug, "/")
	if slug == "" || strings.Contains(slug, "..") || strings.ContainsAny(slug, `/\`) {
		return ""
	}
	return slug
}

func prettifySlug(slug string) string {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return slug
	}
	parts := strings.Split(slug, "-")
	for i, part := range parts {
		if part == "" {
			continue
		}
		runes := []rune(part)
		runes[0] = asciiUpper(runes[0])
		parts[i] = string(runes)
	}
	return strings.Join(parts, " ")
}

func trimAll(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func lowerSlice(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(strings.TrimSpace(v))
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func asciiUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
