package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func TestSelfCheckSingleOwner(t *testing.T) {
	t.Setenv("ADMIN_USERNAME", "boss")
	store := &memStore{usernames: []string{"boss", "alice", "bob"}}

	cfg := &AdminConfig{
		UserConfig: UserConfig{Users: []UserEntry{
			{Username: "alice", Role: RoleOwner},
			{Username: "boss", Role: RoleUser, EnabledAPIs: []string{"src1"}, Tags: []string{"vip"}},
			{Username: "bob", Role: RoleUser},
			{Username: "alice", Role: RoleAdmin}, // duplicate, first wins
		}},
	}

	SelfCheck(cfg, store)

	owners := 0
	for _, u := range cfg.UserConfig.Users {
		if u.Role == RoleOwner {
			owners++
		}
	}
	assert.Equal(t, 1, owners)
	require.NotEmpty(t, cfg.UserConfig.Users)
	assert.Equal(t, "boss", cfg.UserConfig.Users[0].Username)
	assert.Equal(t, RoleOwner, cfg.UserConfig.Users[0].Role)
	// The rebuilt owner entry keeps only its allow-list and tags.
	assert.Equal(t, []string{"src1"}, cfg.UserConfig.Users[0].EnabledAPIs)
	assert.Equal(t, []string{"vip"}, cfg.UserConfig.Users[0].Tags)

	for _, u := range cfg.UserConfig.Users[1:] {
		assert.NotEqual(t, RoleOwner, u.Role, "user %s must not keep owner role", u.Username)
	}
}

func TestSelfCheckConverges(t *testing.T) {
	t.Setenv("ADMIN_USERNAME", "boss")
	store := &memStore{usernames: []string{"boss", "alice"}}

	cfg := SelfCheck(&AdminConfig{}, store)
	onceUsers := append([]UserEntry(nil), cfg.UserConfig.Users...)

	SelfCheck(cfg, store)

	assert.Equal(t, onceUsers, cfg.UserConfig.Users)
	assert.Len(t, cfg.UserConfig.Users, 2)
}

func TestSelfCheckSyncsUsersFromStore(t *testing.T) {
	t.Setenv("ADMIN_USERNAME", "boss")
	store := &memStore{
		usernames: []string{"boss", "newcomer", "veteran"},
		profiles: map[string]*UserProfile{
			"newcomer": {
				CreatedAt:   1700000000000,
				OidcSub:     "oidc|12345",
				Tags:        []string{"family"},
				EnabledAPIs: []string{"src1", "src2"},
			},
		},
	}

	cfg := &AdminConfig{
		UserConfig: UserConfig{Users: []UserEntry{
			{Username: "boss", Role: RoleOwner},
			{Username: "veteran", Role: RoleAdmin, Banned: true}, // manual edits survive
			{Username: "departed", Role: RoleUser},               // no longer registered
		}},
	}

	SelfCheck(cfg, store)

	names := make([]string, 0, len(cfg.UserConfig.Users))
	for _, u := range cfg.UserConfig.Users {
		names = append(names, u.Username)
	}
	assert.NotContains(t, names, "departed")

	var newcomer, veteran *UserEntry
	for i := range cfg.UserConfig.Users {
		switch cfg.UserConfig.Users[i].Username {
		case "newcomer":
			newcomer = &cfg.UserConfig.Users[i]
		case "veteran":
			veteran = &cfg.UserConfig.Users[i]
		}
	}
	require.NotNil(t, newcomer)
	assert.Equal(t, RoleUser, newcomer.Role)
	assert.Equal(t, int64(1700000000000), newcomer.CreatedAt)
	assert.Equal(t, "oidc|12345", newcomer.OidcSub)
	assert.Equal(t, []string{"family"}, newcomer.Tags)
	assert.Equal(t, []string{"src1", "src2"}, newcomer.EnabledAPIs)

	require.NotNil(t, veteran)
	assert.Equal(t, RoleAdmin, veteran.Role)
	assert.True(t, veteran.Banned)
}

func TestSelfCheckStoreFailureKeepsUsers(t *testing.T) {
	t.Setenv("ADMIN_USERNAME", "boss")
	store := &memStore{failList: true}

	cfg := &AdminConfig{
		UserConfig: UserConfig{Users: []UserEntry{
			{Username: "boss", Role: RoleOwner},
			{Username: "alice", Role: RoleUser},
		}},
	}

	SelfCheck(cfg, store)

	assert.Len(t, cfg.UserConfig.Users, 2)
	assert.Equal(t, "boss", cfg.UserConfig.Users[0].Username)
}

func TestSelfCheckInstallsDefaults(t *testing.T) {
	t.Setenv("ADMIN_USERNAME", "boss")
	cfg := SelfCheck(&AdminConfig{}, &memStore{})

	require.NotNil(t, cfg.UserConfig.AllowRegister)
	assert.True(t, *cfg.UserConfig.AllowRegister)
	assert.NotNil(t, cfg.SourceConfig)
	assert.NotNil(t, cfg.CustomCategories)
	assert.NotNil(t, cfg.LiveConfig)

	require.NotNil(t, cfg.NetDiskConfig)
	assert.True(t, cfg.NetDiskConfig.Enabled)
	assert.Equal(t, 30, cfg.NetDiskConfig.Timeout)
	assert.Equal(t, []string{"baidu", "aliyun", "quark"}, cfg.NetDiskConfig.EnabledCloudTypes)

	require.NotNil(t, cfg.AIRecommendConfig)
	assert.False(t, cfg.AIRecommendConfig.Enabled)
	assert.Equal(t, "gpt-3.5-turbo", cfg.AIRecommendConfig.Model)
	assert.Equal(t, 0.7, cfg.AIRecommendConfig.Temperature)
	assert.Equal(t, 3000, cfg.AIRecommendConfig.MaxTokens)

	require.NotNil(t, cfg.YouTubeConfig)
	assert.False(t, cfg.YouTubeConfig.Enabled)
	assert.True(t, cfg.YouTubeConfig.EnableDemo)
	assert.Equal(t, 25, cfg.YouTubeConfig.MaxResults)

	require.NotNil(t, cfg.ShortDramaConfig)
	assert.NotEmpty(t, cfg.ShortDramaConfig.PrimaryAPIURL)
	assert.False(t, cfg.ShortDramaConfig.EnableAlternative)

	require.NotNil(t, cfg.DownloadConfig)
	assert.True(t, cfg.DownloadConfig.Enabled)

	require.NotNil(t, cfg.DoubanConfig)
	assert.False(t, cfg.DoubanConfig.EnablePuppeteer)

	require.NotNil(t, cfg.CronConfig)
	assert.True(t, cfg.CronConfig.EnableAutoRefresh)
	assert.Equal(t, 100, cfg.CronConfig.MaxRecordsPerRun)
	assert.True(t, cfg.CronConfig.OnlyRefreshRecent)
	assert.Equal(t, 30, cfg.CronConfig.RecentDays)
	assert.True(t, cfg.CronConfig.OnlyRefreshOngoing)
}

func TestSelfCheckDoesNotOverwriteExistingSections(t *testing.T) {
	t.Setenv("ADMIN_USERNAME", "boss")
	cfg := &AdminConfig{
		NetDiskConfig: &NetDiskConfig{Enabled: false, Timeout: 5},
		UserConfig:    UserConfig{AllowRegister: boolPtr(false)},
	}

	SelfCheck(cfg, &memStore{})

	assert.False(t, cfg.NetDiskConfig.Enabled)
	assert.Equal(t, 5, cfg.NetDiskConfig.Timeout)
	assert.False(t, *cfg.UserConfig.AllowRegister)
}

func TestSelfCheckDeduplicatesCollections(t *testing.T) {
	t.Setenv("ADMIN_USERNAME", "boss")
	cfg := &AdminConfig{
		SourceConfig: []SourceConfig{
			{Key: "dup", Name: "First"},
			{Key: "dup", Name: "Second"},
			{Key: "other"},
		},
		CustomCategories: []CustomCategory{
			{Query: "热门", Type: "movie", Name: "First"},
			{Query: "热门", Type: "movie", Name: "Second"},
			{Query: "热门", Type: "tv"},
		},
		LiveConfig: []LiveConfig{
			{Key: "cctv", Name: "First"},
			{Key: "cctv", Name: "Second"},
		},
	}

	SelfCheck(cfg, &memStore{})

	require.Len(t, cfg.SourceConfig, 2)
	assert.Equal(t, "First", cfg.SourceConfig[0].Name)
	require.Len(t, cfg.CustomCategories, 2)
	assert.Equal(t, "First", cfg.CustomCategories[0].Name)
	require.Len(t, cfg.LiveConfig, 1)
	assert.Equal(t, "First", cfg.LiveConfig[0].Name)
}

func TestOIDCProviderMigration(t *testing.T) {
	t.Setenv("ADMIN_USERNAME", "boss")
	tests := []struct {
		name     string
		issuer   string
		expected string
	}{
		{"google", "https://accounts.google.com", "google"},
		{"github", "https://github.com/login/oauth", "github"},
		{"microsoft", "https://login.microsoftonline.com/common/v2.0", "microsoft"},
		{"linuxdo", "https://connect.linux.do", "linuxdo"},
		{"custom", "https://auth.example.com/realms/tv", "custom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &AdminConfig{
				OIDCAuthConfig: &OIDCAuthConfig{
					Enabled:  true,
					Issuer:   tt.issuer,
					ClientID: "client",
				},
			}

			SelfCheck(cfg, &memStore{})

			require.Len(t, cfg.OIDCProviders, 1)
			assert.Equal(t, tt.expected, cfg.OIDCProviders[0].ID)
			assert.True(t, cfg.OIDCProviders[0].Enabled)
			assert.Equal(t, "client", cfg.OIDCProviders[0].ClientID)
			// The old block stays for rollback safety.
			assert.NotNil(t, cfg.OIDCAuthConfig)
		})
	}
}

func TestOIDCProviderMigrationRunsOnce(t *testing.T) {
	t.Setenv("ADMIN_USERNAME", "boss")
	cfg := &AdminConfig{
		OIDCAuthConfig: &OIDCAuthConfig{Enabled: true, Issuer: "https://github.com"},
	}

	SelfCheck(cfg, &memStore{})
	cfg.OIDCProviders[0].Name = "edited by admin"
	SelfCheck(cfg, &memStore{})

	require.Len(t, cfg.OIDCProviders, 1)
	assert.Equal(t, "edited by admin", cfg.OIDCProviders[0].Name)
}

func TestGetInitializesMissingDocument(t *testing.T) {
	t.Setenv("ADMIN_USERNAME", "boss")
	store := &memStore{usernames: []string{"boss", "alice"}}

	cfg := Get(store)

	require.NotNil(t, cfg)
	assert.Equal(t, "boss", cfg.UserConfig.Users[0].Username)
	assert.Equal(t, RoleOwner, cfg.UserConfig.Users[0].Role)
	assert.NotNil(t, cfg.CronConfig)
}

func TestGetSurvivesStoreFailure(t *testing.T) {
	t.Setenv("ADMIN_USERNAME", "boss")
	store := &memStore{failLoad: true, failList: true}

	cfg := Get(store)

	require.NotNil(t, cfg)
	assert.Equal(t, "boss", cfg.UserConfig.Users[0].Username)
}

func TestResetKeepsSubscription(t *testing.T) {
	t.Setenv("ADMIN_USERNAME", "boss")
	raw := `{"api_site": {"a": {"name": "A", "api": "http://x/a"}}}`
	store := &memStore{
		doc: &AdminConfig{
			ConfigFile:         raw,
			ConfigSubscription: ConfigSubscription{URL: "http://sub.example/config.json", AutoUpdate: true},
			SourceConfig: []SourceConfig{
				{Key: "a", From: FromConfig, Name: "Renamed By Admin", API: "http://x/a", Disabled: true},
				{Key: "mine", From: FromCustom, Name: "Mine", API: "http://mine"},
			},
		},
	}

	err := Reset(store)

	require.NoError(t, err)
	cfg := store.doc
	assert.Equal(t, raw, cfg.ConfigFile)
	assert.Equal(t, "http://sub.example/config.json", cfg.ConfigSubscription.URL)
	assert.True(t, cfg.ConfigSubscription.AutoUpdate)
	// Manual edits are gone: the document is rebuilt from the file alone.
	require.Len(t, cfg.SourceConfig, 1)
	assert.Equal(t, "A", cfg.SourceConfig[0].Name)
	assert.False(t, cfg.SourceConfig[0].Disabled)
}

func TestCacheTime(t *testing.T) {
	assert.Equal(t, 7200, CacheTime(&AdminConfig{}))
	assert.Equal(t, 3600, CacheTime(&AdminConfig{
		SiteConfig: SiteConfig{SiteInterfaceCacheTime: 3600},
	}))
}
