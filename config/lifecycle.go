package config

import (
	"log"
	"os"
)

const defaultAnnouncement = "本网站仅提供影视信息搜索服务，所有内容均来自第三方网站。" +
	"本站不存储任何视频资源，不对任何内容的准确性、合法性、完整性负责。"

// Get loads the current document from the store. Every call reads fresh,
// there is no process-wide cache. A missing document is initialized once;
// every read passes through SelfCheck before use.
func Get(store Store) *AdminConfig {
	cfg, err := store.LoadDocument()
	if err != nil {
		log.Printf("config: failed to load document: %v", err)
	}
	if cfg == nil {
		cfg = initConfig("", ConfigSubscription{}, store)
	}
	return SelfCheck(cfg, store)
}

// Reset reinitializes the document, discarding all manual edits except the
// subscription text and its meta, and persists the result.
func Reset(store Store) error {
	origin, err := store.LoadDocument()
	if err != nil {
		log.Printf("config: failed to load document for reset: %v", err)
	}
	if origin == nil {
		origin = &AdminConfig{}
	}
	cfg := initConfig(origin.ConfigFile, origin.ConfigSubscription, store)
	return store.SaveDocument(cfg)
}

// CacheTime returns the site interface cache TTL in seconds.
func CacheTime(cfg *AdminConfig) int {
	if cfg.SiteConfig.SiteInterfaceCacheTime > 0 {
		return cfg.SiteConfig.SiteInterfaceCacheTime
	}
	return 7200
}

// initConfig builds a fresh document from environment defaults, the given
// subscription text and the store's registered users.
func initConfig(configFile string, sub ConfigSubscription, store Store) *AdminConfig {
	file := ParseSubscription(configFile)

	cacheTime := file.CacheTime
	if cacheTime == 0 {
		cacheTime = 7200
	}

	allowRegister := true
	cfg := &AdminConfig{
		ConfigFile:         configFile,
		ConfigSubscription: sub,
		SiteConfig: SiteConfig{
			SiteName:                envOr("SITE_NAME", "LunaTV"),
			Announcement:            envOr("ANNOUNCEMENT", defaultAnnouncement),
			SearchDownstreamMaxPage: 5,
			SiteInterfaceCacheTime:  cacheTime,
			DoubanProxyType:         envOr("DOUBAN_PROXY_TYPE", "direct"),
			DoubanProxy:             os.Getenv("DOUBAN_PROXY"),
			DoubanImageProxyType:    envOr("DOUBAN_IMAGE_PROXY_TYPE", "server"),
			DoubanImageProxy:        os.Getenv("DOUBAN_IMAGE_PROXY"),
			DisableYellowFilter:     os.Getenv("DISABLE_YELLOW_FILTER") == "true",
			ShowAdultContent:        false,
			FluidSearch:             os.Getenv("FLUID_SEARCH") != "false",
			TMDBAPIKey:              os.Getenv("TMDB_API_KEY"),
			TMDBLanguage:            "zh-CN",
			EnableTMDBActorSearch:   false,
		},
		UserConfig: UserConfig{
			AllowRegister: &allowRegister,
			Users:         []UserEntry{},
		},
		SourceConfig:     []SourceConfig{},
		CustomCategories: []CustomCategory{},
		LiveConfig:       []LiveConfig{},
	}

	owner := OwnerUsername()
	usernames, err := store.ListUsernames()
	if err != nil {
		log.Printf("config: failed to list users during init: %v", err)
	}
	users := []UserEntry{{Username: owner, Role: RoleOwner}}
	for _, username := range usernames {
		if username == owner {
			continue
		}
		users = append(users, UserEntry{Username: username, Role: RoleUser})
	}
	cfg.UserConfig.Users = users

	for _, site := range file.APISites {
		cfg.SourceConfig = append(cfg.SourceConfig, SourceConfig{
			Key:    site.Key,
			Name:   site.Name,
			API:    site.API,
			Detail: site.Detail,
			From:   FromConfig,
		})
	}
	for _, c := range file.Categories {
		name := c.Name
		if name == "" {
			name = c.Query
		}
		cfg.CustomCategories = append(cfg.CustomCategories, CustomCategory{
			Name:  name,
			Type:  c.Type,
			Query: c.Query,
			From:  FromConfig,
		})
	}
	for _, l := range file.Lives {
		cfg.LiveConfig = append(cfg.LiveConfig, LiveConfig{
			Key:     l.Key,
			Name:    l.Name,
			URL:     l.URL,
			UA:      l.UA,
			EPG:     l.EPG,
			IsTVBox: l.IsTVBox,
			From:    FromConfig,
		})
	}

	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
