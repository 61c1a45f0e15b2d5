package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSubscription(t *testing.T) {
	raw := `{
		"cache_time": 3600,
		"api_site": {
			"zzz": {"name": "Last Alphabetically", "api": "http://z.example/api.php"},
			"aaa": {"name": "First Alphabetically", "api": "http://a.example/api.php", "detail": "http://a.example"}
		},
		"custom_category": [
			{"name": "热门", "type": "movie", "query": "热门电影"},
			{"type": "tv", "query": "美剧"}
		],
		"lives": {
			"cctv": {"name": "央视", "url": "http://live.example/cctv.m3u", "epg": "http://epg.example", "isTvBox": true}
		}
	}`

	sub := ParseSubscription(raw)

	assert.Equal(t, 3600, sub.CacheTime)

	// Object entries must keep file order, not map order.
	assert.Equal(t, []APISiteEntry{
		{Key: "zzz", Name: "Last Alphabetically", API: "http://z.example/api.php"},
		{Key: "aaa", Name: "First Alphabetically", API: "http://a.example/api.php", Detail: "http://a.example"},
	}, sub.APISites)

	assert.Equal(t, []CategoryEntry{
		{Name: "热门", Type: "movie", Query: "热门电影"},
		{Name: "", Type: "tv", Query: "美剧"},
	}, sub.Categories)

	assert.Len(t, sub.Lives, 1)
	assert.Equal(t, "cctv", sub.Lives[0].Key)
	assert.Equal(t, "http://epg.example", sub.Lives[0].EPG)
	assert.True(t, sub.Lives[0].IsTVBox)
}

func TestParseSubscriptionFailSoft(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty input", ""},
		{"not json", "#EXTM3U\nhttp://example/stream"},
		{"truncated json", `{"api_site": {"a": {"name":`},
		{"wrong shape", `[1, 2, 3]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := ParseSubscription(tt.raw)
			assert.Empty(t, sub.APISites)
			assert.Empty(t, sub.Categories)
			assert.Empty(t, sub.Lives)
		})
	}
}

func TestParseSubscriptionSkipsEmptyQueries(t *testing.T) {
	sub := ParseSubscription(`{"custom_category": [{"type": "movie", "query": ""}]}`)
	assert.Empty(t, sub.Categories)
}

func TestParseSubscriptionIgnoresUnknownSections(t *testing.T) {
	sub := ParseSubscription(`{"api_site": {"a": {"name": "A", "api": "http://x/a"}}, "something_else": {"k": 1}}`)
	assert.Len(t, sub.APISites, 1)
}
