package commands

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/latrommi/cinebot/pkg/emby"
	"github.com/latrommi/cinebot/pkg/player"
)

// Discord caps a select menu at 25 options; paginated menus reserve two
// slots for the prev/next entries.
const (
	maxMenuOptions = 25
	pageSize       = maxMenuOptions - 2
	maxLabelLen    = 64
)

func (h *Handler) openSearchModal(s *discordgo.Session, i *discordgo.InteractionCreate) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: customIDPrefix + "search_modal",
			Title:    "Search the library",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:    "query",
						Label:       "Title",
						Style:       discordgo.TextInputShort,
						Placeholder: "Name of a series or movie",
						Required:    true,
					},
				}},
			},
		},
	})
	if err != nil {
		log.Printf("error opening search modal: %v", err)
	}
}

// HandleModal receives the submitted search query and posts a result
// menu covering both series and movies.
func (h *Handler) HandleModal(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ModalSubmitData()
	if data.CustomID != customIDPrefix+"search_modal" {
		return
	}
	query := modalInput(data, "query")
	if query == "" {
		respondText(s, i, "Empty search query.")
		return
	}

	ctx, cancel := h.browseContext()
	defer cancel()
	results, err := h.emby.SearchItems(ctx, query, []string{emby.TypeSeries, emby.TypeMovie})
	if err != nil {
		log.Printf("error searching library for %q: %v", query, err)
		respondText(s, i, "Error searching library: "+err.Error())
		return
	}
	if len(results) == 0 {
		respondText(s, i, fmt.Sprintf("Nothing found for **%s**.", query))
		return
	}

	options := make([]discordgo.SelectMenuOption, 0, len(results))
	for _, item := range results {
		icon := "📺"
		if item.Type == emby.TypeMovie {
			icon = "📽"
		}
		options = append(options, discordgo.SelectMenuOption{
			Label: truncateLabel(icon + " " + item.Name),
			Value: strings.ToLower(item.Type) + ":" + item.ID.String(),
		})
	}
	if len(options) > maxMenuOptions {
		options = options[:maxMenuOptions]
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("Results for **%s**:", query),
			Components: []discordgo.MessageComponent{menuRow("result",
				"Pick a series or movie", options)},
		},
	})
	if err != nil {
		log.Printf("error sending search results: %v", err)
	}
}

func modalInput(data discordgo.ModalSubmitInteractionData, customID string) string {
	for _, row := range data.Components {
		ar, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, comp := range ar.Components {
			if ti, ok := comp.(*discordgo.TextInput); ok && ti.CustomID == customID {
				return strings.TrimSpace(ti.Value)
			}
		}
	}
	return ""
}

// handleSearchResult queues a movie directly or descends into a series'
// seasons.
func (h *Handler) handleSearchResult(s *discordgo.Session, i *discordgo.InteractionCreate, values []string) {
	if len(values) == 0 {
		ackComponent(s, i)
		return
	}
	kind, id, found := strings.Cut(values[0], ":")
	if !found {
		respondUpdate(s, i, "Error reading selection.", nil)
		return
	}

	if kind == "movie" {
		respondUpdate(s, i, h.queueLibraryItem(i.ChannelID, id), []discordgo.MessageComponent{})
		return
	}

	ctx, cancel := h.browseContext()
	defer cancel()
	seasons, err := h.emby.GetSeasons(ctx, id)
	if err != nil {
		log.Printf("error listing seasons for %s: %v", id, err)
		respondUpdate(s, i, "Error listing seasons: "+err.Error(), nil)
		return
	}
	if len(seasons) == 0 {
		respondUpdate(s, i, "That series has no seasons.", []discordgo.MessageComponent{})
		return
	}

	options := make([]discordgo.SelectMenuOption, 0, len(seasons))
	for _, season := range seasons {
		options = append(options, discordgo.SelectMenuOption{
			Label: truncateLabel(season.Name),
			Value: season.ID.String(),
		})
	}
	if len(options) > maxMenuOptions {
		options = options[:maxMenuOptions]
	}
	respondUpdate(s, i, "Pick a season:",
		[]discordgo.MessageComponent{menuRow("season", "Season", options)})
}

func (h *Handler) handleSeasonSelection(s *discordgo.Session, i *discordgo.InteractionCreate, values []string) {
	if len(values) == 0 {
		ackComponent(s, i)
		return
	}
	h.setSeasonFor(i.ChannelID, values[0])
	h.showEpisodePage(s, i, values[0], 1)
}

// handleEpisodeSelection queues the chosen episode, or repages the menu
// when a prev/next entry was picked.
func (h *Handler) handleEpisodeSelection(s *discordgo.Session, i *discordgo.InteractionCreate, values []string) {
	if len(values) == 0 {
		ackComponent(s, i)
		return
	}
	if rawPage, ok := strings.CutPrefix(values[0], "page:"); ok {
		page, err := strconv.Atoi(rawPage)
		if err != nil || page < 1 {
			respondUpdate(s, i, "Error reading page number.", nil)
			return
		}
		seasonID := h.seasonFor(i.ChannelID)
		if seasonID == "" {
			respondUpdate(s, i, "Season selection expired; search again.", []discordgo.MessageComponent{})
			return
		}
		h.showEpisodePage(s, i, seasonID, page)
		return
	}
	respondUpdate(s, i, h.queueLibraryItem(i.ChannelID, values[0]), []discordgo.MessageComponent{})
}

func (h *Handler) showEpisodePage(s *discordgo.Session, i *discordgo.InteractionCreate, seasonID string, page int) {
	userID := ""
	if u := h.userFor(i.ChannelID); u != nil {
		userID = u.ID.String()
	}

	ctx, cancel := h.browseContext()
	defer cancel()
	episodes, err := h.emby.GetEpisodes(ctx, seasonID, userID)
	if err != nil {
		log.Printf("error listing episodes for season %s: %v", seasonID, err)
		respondUpdate(s, i, "Error listing episodes: "+err.Error(), nil)
		return
	}
	if len(episodes) == 0 {
		respondUpdate(s, i, "That season has no episodes.", []discordgo.MessageComponent{})
		return
	}

	options := episodeOptions(episodes, page)
	respondUpdate(s, i, "Pick an episode:",
		[]discordgo.MessageComponent{menuRow("episode", "Episode", options)})
}

// pagedOptions renders one page of a select menu. Sets that fit under
// Discord's option cap come back whole; larger ones get prev/next page
// entries around a pageSize slice. page is clamped to the last page.
func pagedOptions(all []discordgo.SelectMenuOption, page int) []discordgo.SelectMenuOption {
	if len(all) <= maxMenuOptions {
		return all
	}

	lastPage := (len(all) + pageSize - 1) / pageSize
	if page > lastPage {
		page = lastPage
	}
	start := (page - 1) * pageSize
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}

	options := make([]discordgo.SelectMenuOption, 0, maxMenuOptions)
	if page > 1 {
		options = append(options, discordgo.SelectMenuOption{
			Label: fmt.Sprintf("⬅ Page %d", page-1),
			Value: fmt.Sprintf("page:%d", page-1),
		})
	}
	options = append(options, all[start:end]...)
	if page < lastPage {
		options = append(options, discordgo.SelectMenuOption{
			Label: fmt.Sprintf("Page %d ➡", page+1),
			Value: fmt.Sprintf("page:%d", page+1),
		})
	}
	return options
}

func episodeOptions(episodes []emby.Item, page int) []discordgo.SelectMenuOption {
	options := make([]discordgo.SelectMenuOption, 0, len(episodes))
	for _, ep := range episodes {
		options = append(options, episodeOption(ep))
	}
	return pagedOptions(options, page)
}

func episodeOption(ep emby.Item) discordgo.SelectMenuOption {
	return discordgo.SelectMenuOption{
		Label: truncateLabel(itemDisplayName(ep)),
		Value: ep.ID.String(),
	}
}

// showUserMenu lets the channel pick whose watched flags get updated
// when an item finishes.
func (h *Handler) showUserMenu(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx, cancel := h.browseContext()
	defer cancel()
	users, err := h.emby.GetUsers(ctx)
	if err != nil {
		log.Printf("error listing users: %v", err)
		respondUpdate(s, i, "Error listing users: "+err.Error(), nil)
		return
	}

	options := []discordgo.SelectMenuOption{{Label: "None", Value: "none"}}
	for _, user := range users {
		options = append(options, discordgo.SelectMenuOption{
			Label: truncateLabel(user.Name),
			Value: user.ID.String(),
		})
	}
	if len(options) > maxMenuOptions {
		options = options[:maxMenuOptions]
	}
	respondUpdate(s, i, "Whose watched status should I track?",
		h.panelComponents(i.ChannelID, menuRow("user_list", "User", options)))
}

func (h *Handler) handleUserSelection(s *discordgo.Session, i *discordgo.InteractionCreate, values []string) {
	if len(values) == 0 {
		ackComponent(s, i)
		return
	}
	if values[0] == "none" {
		h.setUserFor(i.ChannelID, nil)
		respondUpdate(s, i, "Watched tracking disabled.", h.panelComponents(i.ChannelID))
		return
	}

	ctx, cancel := h.browseContext()
	defer cancel()
	user, err := h.emby.GetUser(ctx, values[0])
	if err != nil {
		log.Printf("error fetching user %s: %v", values[0], err)
		respondUpdate(s, i, "Error fetching user: "+err.Error(), nil)
		return
	}
	h.setUserFor(i.ChannelID, &user)
	respondUpdate(s, i, fmt.Sprintf("Tracking watched status for **%s**.", user.Name),
		h.panelComponents(i.ChannelID))
}

// queueLibraryItem resolves a library item to its on-disk path and adds
// it to the queue. When a user is selected the item is marked played on
// completion.
func (h *Handler) queueLibraryItem(channelID, itemID string) string {
	ctx, cancel := h.browseContext()
	defer cancel()
	item, err := h.emby.GetItem(ctx, itemID)
	if err != nil {
		log.Printf("error fetching item %s: %v", itemID, err)
		return "Error fetching item: " + err.Error()
	}
	if item.Path == "" {
		return fmt.Sprintf("**%s** has no playable path.", item.Name)
	}

	var onComplete player.CompletionFunc
	if user := h.userFor(channelID); user != nil {
		onComplete = h.emby.WatchedCallback(user.ID.String(), item.ID.String())
	}

	queued, err := h.player.Add(h.rewritePath(item.Path), itemDisplayName(item), onComplete)
	if err != nil {
		log.Printf("error queueing %q: %v", item.Path, err)
		return fmt.Sprintf("Error queueing **%s**: %s", item.Name, err.Error())
	}
	return fmt.Sprintf("Added **%s** to the queue.", queued.Name())
}

// itemDisplayName renders "S2E5 - Name" for episodes and "Movie - Name"
// otherwise, prefixed with a watched marker when user data is present.
func itemDisplayName(it emby.Item) string {
	icon := ""
	if it.UserData != nil {
		if it.Watched() {
			icon = "🟢 "
		} else {
			icon = "🔴 "
		}
	}
	if it.Episode != "" || it.Season != "" {
		return fmt.Sprintf("%sS%sE%s - %s", icon, it.Season, it.Episode, it.Name)
	}
	return icon + "Movie - " + it.Name
}

func menuRow(action, placeholder string, options []discordgo.SelectMenuOption) discordgo.MessageComponent {
	return discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		discordgo.SelectMenu{
			CustomID:    customIDPrefix + action,
			Placeholder: placeholder,
			Options:     options,
		},
	}}
}

func truncateLabel(s string) string {
	runes := []rune(s)
	if len(runes) <= maxLabelLen {
		return s
	}
	return string(runes[:maxLabelLen-1]) + "…"
}
