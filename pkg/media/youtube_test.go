package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsYouTubeURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", true},
		{"https://youtu.be/dQw4w9WgXcQ", true},
		{"http://media.local/movie.mkv", false},
		{"/mnt/media/movie.mkv", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsYouTubeURL(tt.url), tt.url)
	}
}
