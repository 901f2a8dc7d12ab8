package commands

import (
	"log"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/latrommi/cinebot/pkg/emby"
	"github.com/latrommi/cinebot/pkg/player"
)

// customIDPrefix namespaces every component the bot creates so the
// dispatcher can ignore components from other bots.
const customIDPrefix = "cinebot:"

// Handler holds the shared controller and clients every command needs.
// One instance is constructed at startup and registered with the
// session; there are no package-level globals.
type Handler struct {
	player *player.Controller
	emby   *emby.Client

	// Path prefix rewrite applied to library paths before queueing.
	pathFrom string
	pathTo   string

	// Per-channel panel state: the user whose watched flags get
	// updated, and the season backing the episode menu (for paging).
	mu           sync.Mutex
	selectedUser map[string]*emby.Item
	activeSeason map[string]string
}

// New creates the command handler around the shared controller and
// media-library client.
func New(ctrl *player.Controller, embyClient *emby.Client, pathFrom, pathTo string) *Handler {
	return &Handler{
		player:       ctrl,
		emby:         embyClient,
		pathFrom:     pathFrom,
		pathTo:       pathTo,
		selectedUser: make(map[string]*emby.Item),
		activeSeason: make(map[string]string),
	}
}

// Definitions returns the slash commands the bot registers per guild.
func Definitions() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "add",
			Description: "Queue a video by path or URL",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "url",
					Description: "Path or URL of the video to play",
					Required:    true,
				},
			},
		},
		{Name: "play", Description: "Start or resume playback"},
		{Name: "pause", Description: "Pause the current video"},
		{Name: "stop", Description: "Stop playback"},
		{Name: "skip", Description: "Skip to the next queued video"},
		{
			Name:        "seek",
			Description: "Seek relative to the current position",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "seconds",
					Description: "Seconds to seek by (negative seeks backwards)",
					Required:    true,
				},
			},
		},
		{Name: "queue", Description: "Show the playback queue"},
		{Name: "nowplaying", Description: "Show the currently playing video"},
		{Name: "series", Description: "List every series in the library"},
		{Name: "movies", Description: "List every movie in the library"},
		{Name: "player", Description: "Open the interactive player panel"},
	}
}

// HandleSlash dispatches application command interactions.
func (h *Handler) HandleSlash(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	switch data.Name {
	case "add":
		h.handleAdd(s, i, data)
	case "play":
		h.handlePlay(s, i)
	case "pause":
		h.handlePause(s, i)
	case "stop":
		h.handleStop(s, i)
	case "skip":
		h.handleSkip(s, i)
	case "seek":
		h.handleSeek(s, i, data)
	case "queue":
		h.handleQueue(s, i)
	case "nowplaying":
		h.handleNowPlaying(s, i)
	case "series":
		h.handleSeries(s, i)
	case "movies":
		h.handleMovies(s, i)
	case "player":
		h.handlePanel(s, i)
	default:
		respondText(s, i, "Unknown command.")
	}
}

func respondText(s *discordgo.Session, i *discordgo.InteractionCreate, msg string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: msg},
	})
	if err != nil {
		log.Printf("error responding to interaction: %v", err)
	}
}

// respondUpdate edits the message the component interaction came from.
// A nil components slice leaves the existing components in place.
func respondUpdate(s *discordgo.Session, i *discordgo.InteractionCreate, content string, components []discordgo.MessageComponent) {
	data := &discordgo.InteractionResponseData{Content: content}
	if components != nil {
		data.Components = components
	}
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: data,
	})
	if err != nil {
		log.Printf("error updating interaction message: %v", err)
	}
}

func (h *Handler) userFor(channelID string) *emby.Item {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.selectedUser[channelID]
}

func (h *Handler) setUserFor(channelID string, user *emby.Item) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if user == nil {
		delete(h.selectedUser, channelID)
		return
	}
	h.selectedUser[channelID] = user
}

func (h *Handler) seasonFor(channelID string) string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.activeSeason[channelID]
}

func (h *Handler) setSeasonFor(channelID, seasonID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.activeSeason[channelID] = seasonID
}

func (h *Handler) rewritePath(p string) string {
	if h.pathFrom == "" {
		return p
	}
	if len(p) >= len(h.pathFrom) && p[:len(h.pathFrom)] == h.pathFrom {
		return h.pathTo + p[len(h.pathFrom):]
	}
	return p
}
