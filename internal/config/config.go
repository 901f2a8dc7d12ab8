package config

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultEmbyURL     = "http://localhost:8096"
	defaultRTMPAddress = "rtmp://localhost:7788/live/livestream"
)

var (
	ErrDiscordTokenNotSet = errors.New("DISCORD_TOKEN is not set")
	ErrEmbyTokenNotSet    = errors.New("EMBY_API_TOKEN is not set")
)

type Config struct {
	DiscordToken string
	EmbyURL      string
	EmbyAPIToken string
	RTMPAddress  string
	GuildIDs     []string

	// Optional prefix rewrite applied to library paths before queueing,
	// for when the media mount differs between the Emby server and the
	// streaming host.
	MediaPathFrom string
	MediaPathTo   string
}

func LoadConfig() (*Config, error) {
	// A .env file is optional; real deployments set the environment
	// directly.
	_ = godotenv.Load()

	discordToken := os.Getenv("DISCORD_TOKEN")
	if discordToken == "" {
		return nil, ErrDiscordTokenNotSet
	}

	embyToken := os.Getenv("EMBY_API_TOKEN")
	if embyToken == "" {
		return nil, ErrEmbyTokenNotSet
	}

	return &Config{
		DiscordToken:  discordToken,
		EmbyURL:       getenvDefault("EMBY_API_URL", defaultEmbyURL),
		EmbyAPIToken:  embyToken,
		RTMPAddress:   getenvDefault("RTMP_URI", defaultRTMPAddress),
		GuildIDs:      splitList(os.Getenv("DISCORD_GUILD_IDS")),
		MediaPathFrom: os.Getenv("MEDIA_PATH_FROM"),
		MediaPathTo:   os.Getenv("MEDIA_PATH_TO"),
	}, nil
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
