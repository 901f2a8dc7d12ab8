package emby

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Item types the search endpoints understand.
const (
	TypeSeries = "Series"
	TypeMovie  = "Movie"
)

// FlexString decodes JSON fields Emby serves inconsistently as either a
// string or a number (ids and episode/season ordinals).
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number: %w", err)
	}
	*f = FlexString(n.String())
	return nil
}

func (f FlexString) String() string {
	return string(f)
}

// UserItemData carries per-user playback state for an item.
type UserItemData struct {
	Played bool `json:"Played"`
}

// Item is one media-library record: a movie, series, season, episode or
// user. Path is empty when the server cannot resolve a local locator
// for the item, which makes it unqueueable.
type Item struct {
	ID       FlexString    `json:"Id"`
	Name     string        `json:"Name"`
	Type     string        `json:"Type"`
	Path     string        `json:"Path"`
	Episode  FlexString    `json:"IndexNumber"`
	Season   FlexString    `json:"ParentIndexNumber"`
	UserData *UserItemData `json:"UserData"`
}

// Watched reports whether the item is marked played for the user the
// query was scoped to.
func (it Item) Watched() bool {
	return it.UserData != nil && it.UserData.Played
}

type itemsResult struct {
	Items []Item `json:"Items"`
}
