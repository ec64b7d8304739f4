package gallery

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRelatedScenario(t *testing.T) {
	t.Parallel()

	items := scenarioItems()
	selected := Item{ID: "2", Category: "video", SubCategory: NewSet("branded-video")}

	require.Empty(t, Related(selected, items))

	items[0].SubCategory = NewSet("branded-video")
	got := Related(selected, items)
	require.Len(t, got, 1)
	require.Equal(t, "1", got[0].ID)
	require.Equal(t, "Foo", got[0].Title)
}

func TestRelatedWithoutCategoryIsEmpty(t *testing.T) {
	t.Parallel()

	got := Related(Item{ID: "x", SubCategory: NewSet("short-form")}, scenarioItems())
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestRelatedWithoutSubCategoryMatchesWholeCategory(t *testing.T) {
	t.Parallel()

	got := Related(Item{ID: "1", Category: "video"}, scenarioItems())
	require.Len(t, got, 1)
	require.Equal(t, "2", got[0].ID)
}

func TestRelatedExcludesSelectedAndKeepsOrder(t *testing.T) {
	t.Parallel()

	published := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	all := []Item{
		{ID: "c", Category: "design", SubCategory: NewSet("branding", "web"), Slug: "c-slug"},
		{ID: "a", Category: "design", SubCategory: NewSet("branding")},
		{ID: "b", Category: "design", SubCategory: NewSet("package", "web"), PublishedAt: published, VideoURL: "https://youtu.be/vid1"},
		{ID: "d", Category: "photo", SubCategory: NewSet("branding")},
		{ID: "e", Category: "design"},
	}
	got := Related(all[1], all)
	require.Len(t, got, 1)
	require.Equal(t, RelatedRef{ID: "c", Slug: "c-slug"}, got[0])

	got = Related(Item{ID: "z", Category: "design", SubCategory: NewSet("web", "package")}, all)
	require.Equal(t, []RelatedRef{
		{ID: "c", Slug: "c-slug"},
		{ID: "b", Date: published, Thumbnail: "https://img.youtube.com/vi/vid1/maxresdefault.jpg"},
	}, got)

	for _, ref := range Related(all[0], all) {
		require.NotEqual(t, "c", ref.ID)
	}
}
