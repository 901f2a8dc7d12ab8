package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "dtoken")
	t.Setenv("EMBY_API_TOKEN", "etoken")
	t.Setenv("EMBY_API_URL", "")
	t.Setenv("RTMP_URI", "")
	t.Setenv("DISCORD_GUILD_IDS", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "dtoken", cfg.DiscordToken)
	assert.Equal(t, "etoken", cfg.EmbyAPIToken)
	assert.Equal(t, defaultEmbyURL, cfg.EmbyURL)
	assert.Equal(t, defaultRTMPAddress, cfg.RTMPAddress)
	assert.Empty(t, cfg.GuildIDs)
}

func TestLoadConfigRequiresTokens(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "")
	t.Setenv("EMBY_API_TOKEN", "etoken")

	_, err := LoadConfig()
	assert.ErrorIs(t, err, ErrDiscordTokenNotSet)

	t.Setenv("DISCORD_TOKEN", "dtoken")
	t.Setenv("EMBY_API_TOKEN", "")

	_, err = LoadConfig()
	assert.ErrorIs(t, err, ErrEmbyTokenNotSet)
}

func TestLoadConfigSplitsGuildIDs(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "dtoken")
	t.Setenv("EMBY_API_TOKEN", "etoken")
	t.Setenv("DISCORD_GUILD_IDS", "123, 456,,789")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"123", "456", "789"}, cfg.GuildIDs)
}
