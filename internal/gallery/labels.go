package gallery

import "strings"

// Labels maps category and sub-category keys to display names. Keys without an
// entry are shown as-is.
type Labels struct {
	Categories    map[string]string
	SubCategories map[string]string
}

var labelTables = map[string]Labels{
	"en": {
		Categories: map[string]string{
			"video":  "Video",
			"design": "Design",
			"photo":  "Photo",
		},
		SubCategories: map[string]string{
			"short-form":    "Short-form",
			"branded-video": "Branded Video",
			"youtube":       "YouTube",
			"motion":        "Motion Graphics",
			"interview":     "Interview",
			"branding":      "Branding",
			"editorial":     "Editorial",
			"package":       "Package",
			"web":           "Web",
			"product":       "Product",
			"profile":       "Profile",
			"space":         "Space",
		},
	},
	"ko": {
		Categories: map[string]string{
			"video":  "영상",
			"design": "디자인",
			"photo":  "사진",
		},
		SubCategories: map[string]string{
			"short-form":    "숏폼",
			"branded-video": "브랜디드 영상",
			"youtube":       "유튜브",
			"motion":        "모션그래픽",
			"interview":     "인터뷰",
			"branding":      "브랜딩",
			"editorial":     "편집 디자인",
			"package":       "패키지",
			"web":           "웹",
			"product":       "제품",
			"profile":       "프로필",
			"space":         "공간",
		},
	},
}

// LabelsFor returns the label table for lang, defaulting to English.
func LabelsFor(lang string) Labels {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if l, ok := labelTables[lang]; ok {
		return l
	}
	return labelTables["en"]
}

// Category returns the display name for a category key.
func (l Labels) Category(key string) string {
	if v, ok := l.Categories[key]; ok {
		return v
	}
	return key
}

// SubCategory returns the display name for a sub-category key.
func (l Labels) SubCategory(key string) string {
	if v, ok := l.SubCategories[key]; ok {
		return v
	}
	return key
}

// SubCategoryList resolves every key in s.
func (l Labels) SubCategoryList(s Set) []string {
	out := make([]string, 0, len(s))
	for _, key := range s {
		out = append(out, l.SubCategory(key))
	}
	return out
}
