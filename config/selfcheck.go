package config

import (
	"log"
	"os"
	"strings"
	"time"
)

// OwnerUsername returns the environment-designated owner identity. There is
// always exactly one owner and it is always this username.
func OwnerUsername() string {
	if u := os.Getenv("ADMIN_USERNAME"); u != "" {
		return u
	}
	return "admin"
}

// SelfCheck repairs the document in place and returns it. It runs on every
// read, so every step must converge: calling it twice with no underlying
// state change is a no-op beyond the user-list refresh from the store.
// Nothing here ever fails; store errors degrade to keeping what is already
// in the document.
func SelfCheck(cfg *AdminConfig, store Store) *AdminConfig {
	if cfg.UserConfig.Users == nil {
		cfg.UserConfig.Users = []UserEntry{}
	}

	syncUsers(cfg, store)

	if cfg.UserConfig.AllowRegister == nil {
		allow := true
		cfg.UserConfig.AllowRegister = &allow
	}
	if cfg.SourceConfig == nil {
		cfg.SourceConfig = []SourceConfig{}
	}
	if cfg.CustomCategories == nil {
		cfg.CustomCategories = []CustomCategory{}
	}
	if cfg.LiveConfig == nil {
		cfg.LiveConfig = []LiveConfig{}
	}

	ensureSectionDefaults(cfg)
	runMigrations(cfg)
	enforceOwner(cfg)
	dedupeCollections(cfg)

	return cfg
}

// syncUsers rebuilds the document user list from the store's authoritative
// username set. Entries for still-registered users keep their manual edits;
// unknown usernames get a fresh entry seeded from the store profile; users
// no longer registered fall away.
func syncUsers(cfg *AdminConfig, store Store) {
	usernames, err := store.ListUsernames()
	if err != nil {
		log.Printf("config: failed to list users, keeping current list: %v", err)
		return
	}

	owner := OwnerUsername()
	updated := make([]UserEntry, 0, len(usernames))
	for _, username := range usernames {
		if existing := findUser(cfg, username); existing != nil {
			updated = append(updated, *existing)
			continue
		}

		entry := UserEntry{
			Username:  username,
			Role:      RoleUser,
			CreatedAt: time.Now().UnixMilli(),
		}
		if username == owner {
			entry.Role = RoleOwner
		}
		if profile, err := store.LoadUserProfile(username); err != nil {
			log.Printf("config: failed to load profile for %q: %v", username, err)
		} else if profile != nil {
			if profile.CreatedAt != 0 {
				entry.CreatedAt = profile.CreatedAt
			}
			entry.OidcSub = profile.OidcSub
			entry.Tags = profile.Tags
			entry.EnabledAPIs = profile.EnabledAPIs
			entry.Banned = profile.Banned
			if profile.Role != "" {
				entry.Role = profile.Role
			}
		}
		updated = append(updated, entry)
	}
	cfg.UserConfig.Users = updated
}

func findUser(cfg *AdminConfig, username string) *UserEntry {
	for i := range cfg.UserConfig.Users {
		if cfg.UserConfig.Users[i].Username == username {
			return &cfg.UserConfig.Users[i]
		}
	}
	return nil
}

// ensureSectionDefaults fills in every named sub-config block that is
// missing from the document.
func ensureSectionDefaults(cfg *AdminConfig) {
	if cfg.NetDiskConfig == nil {
		cfg.NetDiskConfig = &NetDiskConfig{
			Enabled:           true,
			PansouURL:         "https://so.252035.xyz",
			Timeout:           30,
			EnabledCloudTypes: []string{"baidu", "aliyun", "quark"},
		}
	}
	if cfg.AIRecommendConfig == nil {
		cfg.AIRecommendConfig = &AIRecommendConfig{
			Enabled:     false,
			APIURL:      "https://api.openai.com/v1",
			Model:       "gpt-3.5-turbo",
			Temperature: 0.7,
			MaxTokens:   3000,
		}
	}
	if cfg.YouTubeConfig == nil {
		cfg.YouTubeConfig = &YouTubeConfig{
			Enabled:           false,
			EnableDemo:        true,
			MaxResults:        25,
			EnabledRegions:    []string{"US", "CN", "JP", "KR", "GB", "DE", "FR"},
			EnabledCategories: []string{"Film & Animation", "Music", "Gaming", "News & Politics", "Entertainment"},
		}
	}
	if cfg.ShortDramaConfig == nil {
		cfg.ShortDramaConfig = &ShortDramaConfig{
			PrimaryAPIURL:     "https://wwzy.tv/api.php/provide/vod",
			EnableAlternative: false,
		}
	}
	if cfg.DownloadConfig == nil {
		cfg.DownloadConfig = &DownloadConfig{Enabled: true}
	}
	if cfg.DoubanConfig == nil {
		cfg.DoubanConfig = &DoubanConfig{EnablePuppeteer: false}
	}
	if cfg.CronConfig == nil {
		cfg.CronConfig = &CronConfig{
			EnableAutoRefresh:  true,
			MaxRecordsPerRun:   100,
			OnlyRefreshRecent:  true,
			RecentDays:         30,
			OnlyRefreshOngoing: true,
		}
	}
}

// A migration is a one-shot, detection-gated document transformation. Each
// entry must be idempotent: once applied, the detection gate keeps it from
// running again. Append future schema changes here.
type migration struct {
	name  string
	apply func(cfg *AdminConfig) bool
}

var migrations = []migration{
	{name: "oidc-multi-provider", apply: migrateOIDCProviders},
}

func runMigrations(cfg *AdminConfig) {
	for _, m := range migrations {
		if m.apply(cfg) {
			log.Printf("config: applied migration %s", m.name)
		}
	}
}

// migrateOIDCProviders lifts the deprecated single-provider auth config
// into the multi-provider list. The old block is left in place so a
// rollback still finds it.
func migrateOIDCProviders(cfg *AdminConfig) bool {
	if cfg.OIDCAuthConfig == nil || cfg.OIDCProviders != nil {
		return false
	}
	old := cfg.OIDCAuthConfig

	providerID := "custom"
	issuer := strings.ToLower(old.Issuer)
	switch {
	case strings.Contains(issuer, "google") || strings.Contains(issuer, "accounts.google.com"):
		providerID = "google"
	case strings.Contains(issuer, "github"):
		providerID = "github"
	case strings.Contains(issuer, "microsoft") || strings.Contains(issuer, "login.microsoftonline.com"):
		providerID = "microsoft"
	case strings.Contains(issuer, "linux.do") || strings.Contains(issuer, "connect.linux.do"):
		providerID = "linuxdo"
	}

	name := old.ButtonText
	if name == "" {
		name = strings.ToUpper(providerID)
	}
	cfg.OIDCProviders = []OIDCProvider{{
		ID:                    providerID,
		Name:                  name,
		Enabled:               old.Enabled,
		EnableRegistration:    old.EnableRegistration,
		Issuer:                old.Issuer,
		AuthorizationEndpoint: old.AuthorizationEndpoint,
		TokenEndpoint:         old.TokenEndpoint,
		UserInfoEndpoint:      old.UserInfoEndpoint,
		ClientID:              old.ClientID,
		ClientSecret:          old.ClientSecret,
		ButtonText:            old.ButtonText,
		MinTrustLevel:         old.MinTrustLevel,
	}}
	return true
}

// enforceOwner makes the single-owner invariant hold: duplicate usernames
// collapse to the first occurrence, nobody but the designated owner keeps
// the owner role, and a fresh owner entry is prepended carrying over only
// that owner's previously configured enabledApis and tags.
func enforceOwner(cfg *AdminConfig) {
	owner := OwnerUsername()

	seen := make(map[string]bool)
	users := cfg.UserConfig.Users[:0]
	for _, u := range cfg.UserConfig.Users {
		if seen[u.Username] {
			continue
		}
		seen[u.Username] = true
		users = append(users, u)
	}

	var prevOwner *UserEntry
	withoutOwner := make([]UserEntry, 0, len(users))
	for _, u := range users {
		if u.Username == owner {
			prev := u
			prevOwner = &prev
			continue
		}
		if u.Role == RoleOwner {
			u.Role = RoleUser
		}
		withoutOwner = append(withoutOwner, u)
	}

	ownerEntry := UserEntry{
		Username: owner,
		Role:     RoleOwner,
		Banned:   false,
	}
	if prevOwner != nil {
		ownerEntry.EnabledAPIs = prevOwner.EnabledAPIs
		ownerEntry.Tags = prevOwner.Tags
	}
	cfg.UserConfig.Users = append([]UserEntry{ownerEntry}, withoutOwner...)
}

// dedupeCollections drops duplicate identity keys, keeping the first
// occurrence of each.
func dedupeCollections(cfg *AdminConfig) {
	seenSources := make(map[string]bool)
	sources := cfg.SourceConfig[:0]
	for _, s := range cfg.SourceConfig {
		if seenSources[s.Key] {
			continue
		}
		seenSources[s.Key] = true
		sources = append(sources, s)
	}
	cfg.SourceConfig = sources

	seenCategories := make(map[string]bool)
	categories := cfg.CustomCategories[:0]
	for _, c := range cfg.CustomCategories {
		key := categoryKey(c.Query, c.Type)
		if seenCategories[key] {
			continue
		}
		seenCategories[key] = true
		categories = append(categories, c)
	}
	cfg.CustomCategories = categories

	seenLives := make(map[string]bool)
	lives := cfg.LiveConfig[:0]
	for _, l := range cfg.LiveConfig {
		if seenLives[l.Key] {
			continue
		}
		seenLives[l.Key] = true
		lives = append(lives, l)
	}
	cfg.LiveConfig = lives
}
