package commands

import (
	"fmt"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/latrommi/cinebot/pkg/emby"
	"github.com/latrommi/cinebot/pkg/player"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// idleDriver satisfies player.Driver for tests that never start
// playback.
type idleDriver struct{}

func (idleDriver) State() player.State           { return player.StateNull }
func (idleDriver) SetSource(string) error        { return nil }
func (idleDriver) Start() (string, error)        { return "", player.ErrNoSource }
func (idleDriver) Stop() error                   { return nil }
func (idleDriver) Pause() error                  { return player.ErrNotPlaying }
func (idleDriver) Seek(int64) (uint64, error)    { return 0, player.ErrNotPlaying }
func (idleDriver) Bus() <-chan player.BusMessage { return nil }

func TestRewritePath(t *testing.T) {
	h := New(nil, nil, "/mnt/storage", "/mnt/zfspool/storage")

	assert.Equal(t, "/mnt/zfspool/storage/tv/show.mkv", h.rewritePath("/mnt/storage/tv/show.mkv"))
	assert.Equal(t, "/srv/media/movie.mkv", h.rewritePath("/srv/media/movie.mkv"))
}

func TestRewritePathDisabledWhenUnset(t *testing.T) {
	h := New(nil, nil, "", "/mnt/other")

	assert.Equal(t, "/mnt/storage/tv/show.mkv", h.rewritePath("/mnt/storage/tv/show.mkv"))
}

func TestDisplayNameFromPath(t *testing.T) {
	assert.Equal(t, "show.mkv", displayNameFromPath("/mnt/storage/tv/show.mkv"))
	assert.Equal(t, "show.mkv", displayNameFromPath("show.mkv"))
	assert.Equal(t, "tv", displayNameFromPath("/mnt/storage/tv/"))
}

func TestChannelUserState(t *testing.T) {
	h := New(nil, nil, "", "")

	assert.Nil(t, h.userFor("chan1"))

	user := &emby.Item{ID: "u1", Name: "alice"}
	h.setUserFor("chan1", user)
	assert.Equal(t, user, h.userFor("chan1"))
	assert.Nil(t, h.userFor("chan2"))

	h.setUserFor("chan1", nil)
	assert.Nil(t, h.userFor("chan1"))
}

func queueMenu(t *testing.T, row discordgo.MessageComponent) discordgo.SelectMenu {
	t.Helper()
	actionsRow, ok := row.(discordgo.ActionsRow)
	require.True(t, ok)
	require.Len(t, actionsRow.Components, 1)
	menu, ok := actionsRow.Components[0].(discordgo.SelectMenu)
	require.True(t, ok)
	return menu
}

func TestQueueRowPagesLongQueues(t *testing.T) {
	ctrl := player.NewController(idleDriver{})
	h := New(ctrl, nil, "", "")

	for i := 0; i < 30; i++ {
		_, err := ctrl.Add(fmt.Sprintf("http://media.local/v%d", i+1), fmt.Sprintf("video %d", i+1), nil)
		require.NoError(t, err)
	}

	first := queueMenu(t, h.queueRow(1))
	assert.Equal(t, "30 queue items", first.Placeholder)
	require.Len(t, first.Options, 24)
	assert.Equal(t, "video 1", first.Options[0].Label)
	assert.Equal(t, "page:2", first.Options[len(first.Options)-1].Value)

	second := queueMenu(t, h.queueRow(2))
	require.Len(t, second.Options, 8)
	assert.Equal(t, "page:1", second.Options[0].Value)
	assert.Equal(t, "video 24", second.Options[1].Label)
	assert.Equal(t, "video 30", second.Options[len(second.Options)-1].Label)
}

func TestQueueRowShortQueueSinglePage(t *testing.T) {
	ctrl := player.NewController(idleDriver{})
	h := New(ctrl, nil, "", "")

	for i := 0; i < 5; i++ {
		_, err := ctrl.Add(fmt.Sprintf("http://media.local/v%d", i+1), fmt.Sprintf("video %d", i+1), nil)
		require.NoError(t, err)
	}

	menu := queueMenu(t, h.queueRow(1))
	require.Len(t, menu.Options, 5)
	for _, opt := range menu.Options {
		assert.NotContains(t, opt.Value, "page:")
	}
}

func TestQueueRowEmptyQueuePlaceholderEntry(t *testing.T) {
	h := New(player.NewController(idleDriver{}), nil, "", "")

	menu := queueMenu(t, h.queueRow(1))
	require.Len(t, menu.Options, 1)
	assert.Equal(t, "empty", menu.Options[0].Value)
}

func TestChannelSeasonState(t *testing.T) {
	h := New(nil, nil, "", "")

	assert.Empty(t, h.seasonFor("chan1"))
	h.setSeasonFor("chan1", "season42")
	assert.Equal(t, "season42", h.seasonFor("chan1"))
}
