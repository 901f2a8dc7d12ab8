package emby

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/latrommi/cinebot/pkg/player"
)

// Client is a thin REST client for an Emby media server. All requests
// authenticate with the configured API token.
type Client struct {
	baseURL    *url.URL
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a client for the server at baseURL.
func NewClient(baseURL, apiKey string) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid emby url %q: %w", baseURL, err)
	}
	return &Client{
		baseURL: u,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}, nil
}

func (c *Client) endpoint(p string, query url.Values) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + "/emby/" + p
	if query != nil {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func (c *Client) do(ctx context.Context, method, p string, query url.Values, out interface{}) error {
	reqURL := c.endpoint(p, query)
	req, err := http.NewRequestWithContext(ctx, method, reqURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("X-Emby-Token", c.apiKey)

	log.Printf("emby: %s %s", method, reqURL)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error calling %s: %w", reqURL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response from %s: %w", reqURL, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("emby returned %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("error decoding response from %s: %w", reqURL, err)
	}
	return nil
}

// SearchItems looks up library items by name, restricted to the given
// item types (TypeSeries, TypeMovie).
func (c *Client) SearchItems(ctx context.Context, name string, types []string) ([]Item, error) {
	if name == "" {
		return nil, fmt.Errorf("empty search term")
	}
	q := url.Values{}
	q.Set("Recursive", "true")
	q.Set("IncludeItemTypes", strings.Join(types, ","))
	q.Set("SortBy", "SortName")
	q.Set("SearchTerm", name)

	var result itemsResult
	if err := c.do(ctx, http.MethodGet, "Items", q, &result); err != nil {
		return nil, err
	}
	return result.Items, nil
}

// GetAllSeries lists every series in the library.
func (c *Client) GetAllSeries(ctx context.Context) ([]Item, error) {
	return c.getAllOfType(ctx, TypeSeries)
}

// GetAllMovies lists every movie in the library.
func (c *Client) GetAllMovies(ctx context.Context) ([]Item, error) {
	return c.getAllOfType(ctx, TypeMovie)
}

func (c *Client) getAllOfType(ctx context.Context, itemType string) ([]Item, error) {
	q := url.Values{}
	q.Set("Recursive", "true")
	q.Set("IncludeItemTypes", itemType)
	q.Set("SortBy", "SortName")

	var result itemsResult
	if err := c.do(ctx, http.MethodGet, "Items", q, &result); err != nil {
		return nil, err
	}
	return result.Items, nil
}

// GetSeasons lists the seasons of a series.
func (c *Client) GetSeasons(ctx context.Context, seriesID string) ([]Item, error) {
	var result itemsResult
	if err := c.do(ctx, http.MethodGet, "Shows/"+seriesID+"/Seasons", nil, &result); err != nil {
		return nil, err
	}
	return result.Items, nil
}

// GetEpisodes lists the episodes of a season in episode order. When
// userID is non-empty the request is user-scoped so watched flags come
// back with each item.
func (c *Client) GetEpisodes(ctx context.Context, seasonID, userID string) ([]Item, error) {
	p := "Items"
	if userID != "" {
		p = "Users/" + userID + "/Items"
	}
	q := url.Values{}
	q.Set("ParentId", seasonID)
	q.Set("Fields", "Path")
	q.Set("IsMissing", "false")
	q.Set("SortBy", "PremiereDate")

	var result itemsResult
	if err := c.do(ctx, http.MethodGet, p, q, &result); err != nil {
		return nil, err
	}

	episodes := result.Items
	sort.SliceStable(episodes, func(i, j int) bool {
		return episodeOrdinal(episodes[i]) < episodeOrdinal(episodes[j])
	})
	return episodes, nil
}

func episodeOrdinal(it Item) int {
	n, err := strconv.Atoi(it.Episode.String())
	if err != nil {
		return 0
	}
	return n
}

// GetItem fetches a single item, including its path.
func (c *Client) GetItem(ctx context.Context, itemID string) (Item, error) {
	q := url.Values{}
	q.Set("Ids", itemID)
	q.Set("Fields", "Path")
	q.Set("IsMissing", "false")

	var result itemsResult
	if err := c.do(ctx, http.MethodGet, "Items", q, &result); err != nil {
		return Item{}, err
	}
	if len(result.Items) == 0 {
		return Item{}, fmt.Errorf("item %s not found", itemID)
	}
	return result.Items[0], nil
}

// GetUsers lists the server's users.
func (c *Client) GetUsers(ctx context.Context) ([]Item, error) {
	var result itemsResult
	if err := c.do(ctx, http.MethodGet, "Users/Query", nil, &result); err != nil {
		return nil, err
	}
	return result.Items, nil
}

// GetUser fetches a single user.
func (c *Client) GetUser(ctx context.Context, userID string) (Item, error) {
	var user Item
	if err := c.do(ctx, http.MethodGet, "Users/"+userID, nil, &user); err != nil {
		return Item{}, err
	}
	return user, nil
}

// MarkPlayed flags an item as played for a user.
func (c *Client) MarkPlayed(ctx context.Context, userID, itemID string) error {
	return c.do(ctx, http.MethodPost, "Users/"+userID+"/PlayedItems/"+itemID, nil, nil)
}

// WatchedCallback returns a completion callback that marks the item
// played for the user when it finishes streaming or is skipped.
func (c *Client) WatchedCallback(userID, itemID string) player.CompletionFunc {
	return func(ctx context.Context) error {
		return c.MarkPlayed(ctx, userID, itemID)
	}
}
