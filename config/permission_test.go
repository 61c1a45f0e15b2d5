package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adultTestConfig() *AdminConfig {
	return &AdminConfig{
		SiteConfig: SiteConfig{ShowAdultContent: false},
		UserConfig: UserConfig{
			Users: []UserEntry{
				{Username: "plain", Role: RoleUser},
				{Username: "denier", Role: RoleUser, ShowAdultContent: boolPtr(false), Tags: []string{"allowing"}},
				{Username: "grouped", Role: RoleUser, Tags: []string{"allowing", "denying"}},
				{Username: "restrained", Role: RoleUser, Tags: []string{"denying"}},
			},
			Tags: []Tag{
				{Name: "allowing", ShowAdultContent: boolPtr(true)},
				{Name: "denying", ShowAdultContent: boolPtr(false)},
				{Name: "neutral"},
			},
		},
		SourceConfig: []SourceConfig{
			{Key: "normal", Name: "Normal", API: "http://n/api"},
			{Key: "adult", Name: "Adult", API: "http://a/api", IsAdult: true},
			{Key: "off", Name: "Off", API: "http://o/api", Disabled: true},
		},
	}
}

func sourceKeys(sites []SourceConfig) []string {
	keys := make([]string, 0, len(sites))
	for _, s := range sites {
		keys = append(keys, s.Key)
	}
	return keys
}

func TestAvailableAPISitesAdultPrecedence(t *testing.T) {
	t.Setenv("ADMIN_USERNAME", "boss")
	tests := []struct {
		name     string
		username string
		want     []string
	}{
		{"global default denies for plain user", "plain", []string{"normal"}},
		{"user override beats allowing tag", "denier", []string{"normal"}},
		{"one allowing tag beats a denying one", "grouped", []string{"normal", "adult"}},
		{"denying tag beats global default", "restrained", []string{"normal"}},
		{"anonymous falls back to global", "", []string{"normal"}},
		{"owner sees everything", "boss", []string{"normal", "adult"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := adultTestConfig()
			sites := AvailableAPISites(cfg, tt.username)
			assert.Equal(t, tt.want, sourceKeys(sites))
		})
	}
}

func TestAvailableAPISitesGlobalAllow(t *testing.T) {
	t.Setenv("ADMIN_USERNAME", "boss")
	cfg := adultTestConfig()
	cfg.SiteConfig.ShowAdultContent = true

	sites := AvailableAPISites(cfg, "plain")

	assert.Equal(t, []string{"normal", "adult"}, sourceKeys(sites))
}

func TestAvailableAPISitesNoScopingReturnsAll(t *testing.T) {
	t.Setenv("ADMIN_USERNAME", "boss")
	cfg := &AdminConfig{
		UserConfig: UserConfig{Users: []UserEntry{{Username: "plain", Role: RoleUser}}},
		SourceConfig: []SourceConfig{
			{Key: "one", API: "http://1/api"},
			{Key: "two", API: "http://2/api"},
			{Key: "three", API: "http://3/api"},
		},
	}

	sites := AvailableAPISites(cfg, "plain")

	assert.Equal(t, []string{"one", "two", "three"}, sourceKeys(sites))
}

func TestAvailableAPISitesUserAllowListBeatsTags(t *testing.T) {
	t.Setenv("ADMIN_USERNAME", "boss")
	cfg := &AdminConfig{
		UserConfig: UserConfig{
			Users: []UserEntry{
				{Username: "scoped", Role: RoleUser, EnabledAPIs: []string{"two"}, Tags: []string{"wide"}},
			},
			Tags: []Tag{{Name: "wide", EnabledAPIs: []string{"one", "two", "three"}}},
		},
		SourceConfig: []SourceConfig{
			{Key: "one", API: "http://1/api"},
			{Key: "two", API: "http://2/api"},
			{Key: "three", API: "http://3/api"},
		},
	}

	sites := AvailableAPISites(cfg, "scoped")

	assert.Equal(t, []string{"two"}, sourceKeys(sites))
}

func TestAvailableAPISitesTagUnion(t *testing.T) {
	t.Setenv("ADMIN_USERNAME", "boss")
	cfg := &AdminConfig{
		UserConfig: UserConfig{
			Users: []UserEntry{
				{Username: "grouped", Role: RoleUser, Tags: []string{"left", "right"}},
			},
			Tags: []Tag{
				{Name: "left", EnabledAPIs: []string{"one"}},
				{Name: "right", EnabledAPIs: []string{"two"}},
			},
		},
		SourceConfig: []SourceConfig{
			{Key: "one", API: "http://1/api"},
			{Key: "two", API: "http://2/api"},
			{Key: "three", API: "http://3/api"},
		},
	}

	sites := AvailableAPISites(cfg, "grouped")

	assert.Equal(t, []string{"one", "two"}, sourceKeys(sites))
}

func TestAvailableAPISitesUnknownUser(t *testing.T) {
	t.Setenv("ADMIN_USERNAME", "boss")
	cfg := adultTestConfig()

	// Unknown usernames get no user-specific scoping, only the global path.
	sites := AvailableAPISites(cfg, "stranger")

	assert.Equal(t, []string{"normal"}, sourceKeys(sites))
}

func TestHasFeature(t *testing.T) {
	t.Setenv("ADMIN_USERNAME", "boss")
	cfg := &AdminConfig{
		UserConfig: UserConfig{
			Users: []UserEntry{
				{Username: "admin1", Role: RoleAdmin},
				{Username: "direct", Role: RoleUser, EnabledAPIs: []string{"ai-recommend"}},
				{Username: "both", Role: RoleUser, EnabledAPIs: []string{"ai-recommend"}, Tags: []string{"power"}},
				{Username: "viatag", Role: RoleUser, Tags: []string{"power"}},
				{Username: "banned", Role: RoleUser, Banned: true},
			},
			Tags: []Tag{{Name: "power", EnabledAPIs: []string{"youtube-search"}}},
		},
	}

	tests := []struct {
		name     string
		username string
		feature  string
		want     bool
	}{
		{"owner always allowed", "boss", "ai-recommend", true},
		{"unknown user denied", "nobody", "ai-recommend", false},
		{"admin always allowed", "admin1", "youtube-search", true},
		{"direct allow-list", "direct", "ai-recommend", true},
		{"direct allow-list misses", "direct", "youtube-search", false},
		{"tag grant survives a missing user-list entry", "both", "youtube-search", true},
		{"allowed via tag", "viatag", "youtube-search", true},
		{"tag misses feature", "viatag", "ai-recommend", false},
		{"banned user with no entitlements", "banned", "ai-recommend", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasFeature(cfg, tt.username, tt.feature))
		})
	}
}

func TestApplyVideoProxy(t *testing.T) {
	t.Setenv("ADMIN_USERNAME", "boss")
	cfg := &AdminConfig{
		VideoProxyConfig: &VideoProxyConfig{Enabled: true, ProxyURL: "https://proxy.example/"},
		SourceConfig: []SourceConfig{
			{Key: "s1", Name: "Caiji", API: "https://caiji.dbzy.com/api.php/provide/vod"},
			{Key: "s2", Name: "Suffix", API: "https://okzyapi.com/api.php/provide/vod"},
			{Key: "s3", Name: "Plain", API: "https://feisu.example.com/api.php"},
		},
	}

	sites := AvailableAPISites(cfg, "")

	require.Len(t, sites, 3)
	// caiji.* prefix: second-to-last hostname label.
	assert.Equal(t, "https://proxy.example/p/dbzy?url=https%3A%2F%2Fcaiji.dbzy.com%2Fapi.php%2Fprovide%2Fvod", sites[0].API)
	// zyapi suffix stripped from the first label.
	assert.Contains(t, sites[1].API, "/p/ok?url=")
	// ordinary host: first label as-is.
	assert.Contains(t, sites[2].API, "/p/feisu?url=")
}

func TestApplyVideoProxyUnwrapsOldProxy(t *testing.T) {
	t.Setenv("ADMIN_USERNAME", "boss")
	cfg := &AdminConfig{
		VideoProxyConfig: &VideoProxyConfig{Enabled: true, ProxyURL: "https://new-proxy.example"},
		SourceConfig: []SourceConfig{
			{Key: "s1", Name: "Wrapped", API: "https://old-proxy.example/p/dbzy?url=https%3A%2F%2Fcaiji.dbzy.com%2Fapi.php"},
		},
	}

	sites := AvailableAPISites(cfg, "")

	require.Len(t, sites, 1)
	assert.Equal(t, "https://new-proxy.example/p/dbzy?url=https%3A%2F%2Fcaiji.dbzy.com%2Fapi.php", sites[0].API)
}

func TestApplyVideoProxyDisabled(t *testing.T) {
	t.Setenv("ADMIN_USERNAME", "boss")
	cfg := &AdminConfig{
		VideoProxyConfig: &VideoProxyConfig{Enabled: false, ProxyURL: "https://proxy.example"},
		SourceConfig:     []SourceConfig{{Key: "s1", API: "https://x.example/api"}},
	}

	sites := AvailableAPISites(cfg, "")

	assert.Equal(t, "https://x.example/api", sites[0].API)
}
