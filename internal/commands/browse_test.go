package commands

import (
	"fmt"
	"strings"
	"testing"

	"github.com/latrommi/cinebot/pkg/emby"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeEpisodes(n int) []emby.Item {
	items := make([]emby.Item, n)
	for i := range items {
		items[i] = emby.Item{
			ID:   emby.FlexString(fmt.Sprintf("ep%d", i+1)),
			Name: fmt.Sprintf("Episode %d", i+1),
		}
	}
	return items
}

func TestEpisodeOptionsShortSeasonFitsOnePage(t *testing.T) {
	options := episodeOptions(makeEpisodes(25), 1)

	require.Len(t, options, 25)
	for _, opt := range options {
		assert.False(t, strings.HasPrefix(opt.Value, "page:"))
	}
}

func TestEpisodeOptionsFirstPageHasOnlyNext(t *testing.T) {
	options := episodeOptions(makeEpisodes(30), 1)

	require.Len(t, options, 24)
	assert.Equal(t, "ep1", options[0].Value)
	assert.Equal(t, "page:2", options[len(options)-1].Value)
}

func TestEpisodeOptionsLastPageHasOnlyPrev(t *testing.T) {
	options := episodeOptions(makeEpisodes(30), 2)

	require.Len(t, options, 8)
	assert.Equal(t, "page:1", options[0].Value)
	assert.Equal(t, "ep24", options[1].Value)
	assert.Equal(t, "ep30", options[len(options)-1].Value)
}

func TestEpisodeOptionsMiddlePageHasBoth(t *testing.T) {
	options := episodeOptions(makeEpisodes(60), 2)

	require.Len(t, options, 25)
	assert.Equal(t, "page:1", options[0].Value)
	assert.Equal(t, "page:3", options[len(options)-1].Value)
	assert.Equal(t, "ep24", options[1].Value)
}

func TestEpisodeOptionsClampsPastLastPage(t *testing.T) {
	options := episodeOptions(makeEpisodes(30), 99)

	require.NotEmpty(t, options)
	assert.Equal(t, "page:1", options[0].Value)
	assert.Equal(t, "ep30", options[len(options)-1].Value)
}

func TestItemDisplayName(t *testing.T) {
	episode := emby.Item{
		Name:    "The Heist",
		Episode: "5",
		Season:  "2",
	}
	assert.Equal(t, "S2E5 - The Heist", itemDisplayName(episode))

	episode.UserData = &emby.UserItemData{Played: true}
	assert.Equal(t, "🟢 S2E5 - The Heist", itemDisplayName(episode))

	episode.UserData.Played = false
	assert.Equal(t, "🔴 S2E5 - The Heist", itemDisplayName(episode))

	movie := emby.Item{Name: "Heat"}
	assert.Equal(t, "Movie - Heat", itemDisplayName(movie))
}

func TestTruncateLabel(t *testing.T) {
	assert.Equal(t, "short", truncateLabel("short"))

	long := strings.Repeat("a", 80)
	got := truncateLabel(long)
	assert.LessOrEqual(t, len([]rune(got)), maxLabelLen)
	assert.True(t, strings.HasSuffix(got, "…"))

	// Counted in runes, not bytes: 60 two-byte runes fit untouched.
	wide := strings.Repeat("é", 60)
	assert.Equal(t, wide, truncateLabel(wide))

	got = truncateLabel(strings.Repeat("é", 70))
	assert.Equal(t, maxLabelLen, len([]rune(got)))
	assert.True(t, strings.HasSuffix(got, "…"))
}
