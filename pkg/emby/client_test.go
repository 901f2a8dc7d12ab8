package emby

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexStringDecodesStringsAndNumbers(t *testing.T) {
	tests := []struct {
		name string
		json string
		want string
	}{
		{"string id", `{"Id": "abc123", "Name": "x"}`, "abc123"},
		{"numeric id", `{"Id": 42, "Name": "x"}`, "42"},
		{"null ordinal", `{"Id": "a", "IndexNumber": null}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var item Item
			require.NoError(t, json.Unmarshal([]byte(tt.json), &item))
			if tt.name == "null ordinal" {
				assert.Equal(t, tt.want, item.Episode.String())
			} else {
				assert.Equal(t, tt.want, item.ID.String())
			}
		})
	}
}

func TestSearchItemsSendsTokenAndQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "token123", r.Header.Get("X-Emby-Token"))
		assert.Equal(t, "/emby/Items", r.URL.Path)
		assert.Equal(t, "Series,Movie", r.URL.Query().Get("IncludeItemTypes"))
		assert.Equal(t, "cowboy", r.URL.Query().Get("SearchTerm"))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"Items": []map[string]interface{}{
				{"Id": 7, "Name": "Cowboy Bebop", "Type": "Series"},
			},
		})
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, "token123")
	require.NoError(t, err)

	items, err := c.SearchItems(context.Background(), "cowboy", []string{TypeSeries, TypeMovie})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "7", items[0].ID.String())
	assert.Equal(t, "Cowboy Bebop", items[0].Name)
}

func TestSearchItemsRejectsEmptyTerm(t *testing.T) {
	c, err := NewClient("http://localhost:8096", "t")
	require.NoError(t, err)

	_, err = c.SearchItems(context.Background(), "", nil)
	assert.Error(t, err)
}

func TestGetEpisodesSortsByOrdinalAndScopesToUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/emby/Users/u1/Items", r.URL.Path)
		assert.Equal(t, "season9", r.URL.Query().Get("ParentId"))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"Items": []map[string]interface{}{
				{"Id": "e3", "Name": "third", "IndexNumber": 3},
				{"Id": "e1", "Name": "first", "IndexNumber": "1"},
				{"Id": "e2", "Name": "second", "IndexNumber": 2, "UserData": map[string]bool{"Played": true}},
			},
		})
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, "t")
	require.NoError(t, err)

	episodes, err := c.GetEpisodes(context.Background(), "season9", "u1")
	require.NoError(t, err)
	require.Len(t, episodes, 3)
	assert.Equal(t, "first", episodes[0].Name)
	assert.Equal(t, "second", episodes[1].Name)
	assert.Equal(t, "third", episodes[2].Name)
	assert.True(t, episodes[1].Watched())
	assert.False(t, episodes[0].Watched())
}

func TestGetItemNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"Items": []interface{}{}})
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, "t")
	require.NoError(t, err)

	_, err = c.GetItem(context.Background(), "nope")
	assert.Error(t, err)
}

func TestMarkPlayedPostsToPlayedItems(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, "t")
	require.NoError(t, err)

	require.NoError(t, c.MarkPlayed(context.Background(), "u1", "m42"))
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/emby/Users/u1/PlayedItems/m42", gotPath)
}

func TestWatchedCallbackMarksPlayed(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, "t")
	require.NoError(t, err)

	cb := c.WatchedCallback("u1", "m42")
	require.NoError(t, cb(context.Background()))
	assert.Equal(t, 1, hits)
}

func TestErrorStatusSurfacesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such user", http.StatusNotFound)
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, "t")
	require.NoError(t, err)

	_, err = c.GetUser(context.Background(), "ghost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no such user")
}
