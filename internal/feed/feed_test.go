package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const feedJSON = `[
	{
		"group_title": "Top Stories",
		"articles": [
			{
				"title": "Markets rally",
				"description": "Stocks climbed.",
				"date": "August 29, 2026",
				"category": "US Finance",
				"link": "https://example.com/markets",
				"source_name": "Example Wire"
			},
			{
				"title": "No link here",
				"description": "Radio segment.",
				"date": "August 29, 2026",
				"category": "EU Politics",
				"link": "NA",
				"source_name": "Example Radio"
			}
		]
	}
]`

func TestFetchGroups(t *testing.T) {
	var gotCacheBuster string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCacheBuster = r.URL.Query().Get("cb")
		w.Write([]byte(feedJSON))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	groups, err := c.FetchGroups(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, gotCacheBuster)
	require.Len(t, groups, 1)
	assert.Equal(t, "Top Stories", groups[0].GroupTitle)
	require.Len(t, groups[0].Articles, 2)
	assert.Equal(t, "Markets rally", groups[0].Articles[0].Title)
	assert.Equal(t, "NA", groups[0].Articles[1].Link)
}

func TestFetchGroupsNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "denied", http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	_, err := c.FetchGroups(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestFetchGroupsMalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not":"an array"`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	_, err := c.FetchGroups(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}
