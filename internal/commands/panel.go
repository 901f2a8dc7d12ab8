package commands

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
)

// handlePanel posts the interactive player panel: transport and seek
// buttons plus entry points into the library browser.
func (h *Handler) handlePanel(s *discordgo.Session, i *discordgo.InteractionCreate) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:    "I want to watch something 🍆",
			Components: h.panelComponents(i.ChannelID),
		},
	})
	if err != nil {
		log.Printf("error sending player panel: %v", err)
	}
}

func (h *Handler) panelComponents(channelID string, extra ...discordgo.MessageComponent) []discordgo.MessageComponent {
	userLabel := "User: (none)"
	if u := h.userFor(channelID); u != nil {
		userLabel = "User: " + u.Name
	}
	rows := []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			panelButton("play", "Play"),
			panelButton("pause", "Pause"),
			panelButton("stop", "Stop"),
			panelButton("skip", "Skip"),
		}},
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			panelButton("search", "Search"),
			panelButton("queue", "Queue"),
			panelButton("nowplaying", "Now Playing"),
			panelButton("user", userLabel),
		}},
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			panelButton("seek:-300", "-5m"),
			panelButton("seek:-60", "-1m"),
			panelButton("seek:60", "+1m"),
			panelButton("seek:300", "+5m"),
			panelButton("seek:900", "+15m"),
		}},
	}
	return append(rows, extra...)
}

func panelButton(action, label string) discordgo.Button {
	return discordgo.Button{
		CustomID: customIDPrefix + action,
		Label:    label,
		Style:    discordgo.PrimaryButton,
	}
}

// HandleComponent dispatches button and select-menu interactions from
// the player panel.
func (h *Handler) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.MessageComponentData()
	if !strings.HasPrefix(data.CustomID, customIDPrefix) {
		return
	}
	action := strings.TrimPrefix(data.CustomID, customIDPrefix)

	switch {
	case action == "play":
		item, err := h.player.Start()
		if err != nil {
			respondUpdate(s, i, "Error starting playback: "+err.Error(), nil)
			return
		}
		if item != nil {
			respondUpdate(s, i, fmt.Sprintf("Playing **%s**.", item.Name()), nil)
			return
		}
		respondUpdate(s, i, "Playback started.", nil)

	case action == "pause":
		if err := h.player.Pause(); err != nil {
			respondUpdate(s, i, "Error pausing video: "+err.Error(), nil)
			return
		}
		respondUpdate(s, i, "Video paused.", nil)

	case action == "stop":
		if err := h.player.Stop(); err != nil {
			respondUpdate(s, i, "Error stopping video: "+err.Error(), nil)
			return
		}
		respondUpdate(s, i, "Video stopped.", nil)

	case action == "skip":
		if err := h.player.Skip(); err != nil {
			respondUpdate(s, i, "Error skipping video: "+err.Error(), nil)
			return
		}
		respondUpdate(s, i, "Skipped. "+h.nowPlayingText(), nil)

	case strings.HasPrefix(action, "seek:"):
		h.handleSeekButton(s, i, strings.TrimPrefix(action, "seek:"))

	case action == "nowplaying":
		respondUpdate(s, i, h.nowPlayingText(), nil)

	case action == "queue":
		respondUpdate(s, i, "Select a queue item to remove it.",
			h.panelComponents(i.ChannelID, h.queueRow(1)))

	case action == "queue_list":
		h.handleQueueRemoval(s, i, data.Values)

	case action == "search":
		h.openSearchModal(s, i)

	case action == "result":
		h.handleSearchResult(s, i, data.Values)

	case action == "season":
		h.handleSeasonSelection(s, i, data.Values)

	case action == "episode":
		h.handleEpisodeSelection(s, i, data.Values)

	case action == "user":
		h.showUserMenu(s, i)

	case action == "user_list":
		h.handleUserSelection(s, i, data.Values)

	default:
		log.Printf("unhandled component action %q", action)
	}
}

func (h *Handler) handleSeekButton(s *discordgo.Session, i *discordgo.InteractionCreate, raw string) {
	seconds, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		respondUpdate(s, i, "Error reading seek amount.", nil)
		return
	}
	pos, err := h.player.Seek(seconds)
	if err != nil {
		respondUpdate(s, i, "Error seeking: "+err.Error(), nil)
		return
	}
	respondUpdate(s, i, fmt.Sprintf("Seeked to %ds.", pos), nil)
}

// queueRow renders one page of the queue as a select menu; selecting
// an entry removes it. Queues past the option cap page like the
// episode menu does.
func (h *Handler) queueRow(page int) discordgo.MessageComponent {
	items := h.player.List()
	options := make([]discordgo.SelectMenuOption, 0, len(items))
	for _, item := range items {
		options = append(options, discordgo.SelectMenuOption{
			Label: truncateLabel(item.Name()),
			Value: item.ID().String(),
		})
	}
	if len(options) == 0 {
		options = []discordgo.SelectMenuOption{{Label: "No items in queue!", Value: "empty"}}
	}
	return discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		discordgo.SelectMenu{
			CustomID:    customIDPrefix + "queue_list",
			Placeholder: fmt.Sprintf("%d queue items", len(items)),
			Options:     pagedOptions(options, page),
		},
	}}
}

func (h *Handler) handleQueueRemoval(s *discordgo.Session, i *discordgo.InteractionCreate, values []string) {
	if len(values) == 0 || values[0] == "empty" {
		ackComponent(s, i)
		return
	}
	if rawPage, ok := strings.CutPrefix(values[0], "page:"); ok {
		page, err := strconv.Atoi(rawPage)
		if err != nil || page < 1 {
			respondUpdate(s, i, "Error reading page number.", nil)
			return
		}
		respondUpdate(s, i, "Select a queue item to remove it.",
			h.panelComponents(i.ChannelID, h.queueRow(page)))
		return
	}
	id, err := uuid.Parse(values[0])
	if err != nil {
		respondUpdate(s, i, "Error reading queue item id.", nil)
		return
	}
	if err := h.player.Remove(id); err != nil {
		respondUpdate(s, i, "Error removing queue item: "+err.Error(), nil)
		return
	}
	respondUpdate(s, i, "Removed item from the queue.",
		h.panelComponents(i.ChannelID, h.queueRow(1)))
}

// ackComponent acknowledges a component interaction without changing
// the message.
func ackComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	})
	if err != nil {
		log.Printf("error acknowledging interaction: %v", err)
	}
}

func (h *Handler) browseContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), libraryTimeout)
}
