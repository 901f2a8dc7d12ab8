package presence

import (
	"context"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/latrommi/cinebot/pkg/player"
)

const refreshInterval = 30 * time.Second

// Manager mirrors the playback state into the bot's Discord presence:
// "Watching <item>" while something plays, an idle status otherwise.
type Manager struct {
	session *discordgo.Session
	player  *player.Controller

	lastShown string
}

func NewManager(session *discordgo.Session, ctrl *player.Controller) *Manager {
	return &Manager{session: session, player: ctrl}
}

// Run refreshes the presence until ctx is cancelled. Updates are only
// sent when the shown title actually changes.
func (m *Manager) Run(ctx context.Context) {
	m.Refresh()
	ticker := time.NewTicker(refreshInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Refresh()
		}
	}
}

// Refresh pushes the current playback title to Discord.
func (m *Manager) Refresh() {
	title := ""
	if current := m.player.Current(); current != nil {
		title = current.Name()
	}
	if title == m.lastShown {
		return
	}

	status := &discordgo.UpdateStatusData{Status: "online"}
	if title != "" {
		status.Activities = []*discordgo.Activity{{
			Name: title,
			Type: discordgo.ActivityTypeWatching,
		}}
	}
	if err := m.session.UpdateStatusComplex(*status); err != nil {
		log.Printf("error updating presence: %v", err)
		return
	}
	m.lastShown = title
}
