package media

import (
	"context"
	"fmt"
	"strings"

	"github.com/kkdai/youtube/v2"
)

// IsYouTubeURL reports whether a URL appears to be from YouTube.
func IsYouTubeURL(raw string) bool {
	return strings.Contains(raw, "youtube.com") || strings.Contains(raw, "youtu.be")
}

// ResolveYouTube resolves a YouTube watch URL into a direct stream URL
// the pipeline can decode, plus the video title for display. Formats
// without audio are skipped.
func ResolveYouTube(ctx context.Context, rawURL string) (streamURL, title string, err error) {
	client := youtube.Client{}

	video, err := client.GetVideoContext(ctx, rawURL)
	if err != nil {
		return "", "", fmt.Errorf("failed to resolve youtube video: %w", err)
	}

	formats := video.Formats.WithAudioChannels()
	if len(formats) == 0 {
		return "", "", fmt.Errorf("no playable formats for %q", video.Title)
	}

	streamURL, err = client.GetStreamURLContext(ctx, video, &formats[0])
	if err != nil {
		return "", "", fmt.Errorf("failed to get stream url: %w", err)
	}
	return streamURL, video.Title, nil
}
