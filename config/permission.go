package config

import (
	"net/url"
	"regexp"
	"strings"
)

// AvailableAPISites resolves the source list visible to a user. Precedence
// for adult-content visibility, highest first: owner, the user's own
// override, any allowing tag, any denying tag, the site-wide default.
// Disabled sources are always dropped. After filtering, a non-empty
// per-user enabledApis allow-list restricts the set; otherwise the union
// of the user's tag allow-lists does; otherwise the full filtered set is
// returned. The video proxy rewrite, when enabled, applies last.
func AvailableAPISites(cfg *AdminConfig, username string) []SourceConfig {
	showAdultContent := cfg.SiteConfig.ShowAdultContent

	var user *UserEntry
	if username != "" {
		if username == OwnerUsername() {
			showAdultContent = true
		}
		user = findUser(cfg, username)
		if user != nil && username != OwnerUsername() {
			switch {
			case user.ShowAdultContent != nil:
				showAdultContent = *user.ShowAdultContent
			case len(user.Tags) > 0 && len(cfg.UserConfig.Tags) > 0:
				if anyTagAllowsAdult(cfg, user.Tags) {
					showAdultContent = true
				} else if anyTagDeniesAdult(cfg, user.Tags) {
					showAdultContent = false
				}
			}
		}
	}

	all := make([]SourceConfig, 0, len(cfg.SourceConfig))
	for _, s := range cfg.SourceConfig {
		if s.Disabled {
			continue
		}
		if !showAdultContent && s.IsAdult {
			continue
		}
		all = append(all, s)
	}

	if user == nil {
		return applyVideoProxy(all, cfg)
	}

	// The user's own allow-list beats any tag scoping.
	if len(user.EnabledAPIs) > 0 {
		allowed := make(map[string]bool, len(user.EnabledAPIs))
		for _, key := range user.EnabledAPIs {
			allowed[key] = true
		}
		scoped := make([]SourceConfig, 0, len(all))
		for _, s := range all {
			if allowed[s.Key] {
				scoped = append(scoped, s)
			}
		}
		return applyVideoProxy(scoped, cfg)
	}

	// Tag scoping: the union of all the user's tag allow-lists.
	if len(user.Tags) > 0 && len(cfg.UserConfig.Tags) > 0 {
		allowed := make(map[string]bool)
		for _, tagName := range user.Tags {
			if tag := findTag(cfg, tagName); tag != nil {
				for _, key := range tag.EnabledAPIs {
					allowed[key] = true
				}
			}
		}
		if len(allowed) > 0 {
			scoped := make([]SourceConfig, 0, len(all))
			for _, s := range all {
				if allowed[s.Key] {
					scoped = append(scoped, s)
				}
			}
			return applyVideoProxy(scoped, cfg)
		}
	}

	return applyVideoProxy(all, cfg)
}

// HasFeature reports whether a user may use a named feature such as
// "ai-recommend" or "youtube-search". First match wins: the owner always
// may, unknown users never may, admins always may, then the user's own
// allow-list, then any of the user's tags.
func HasFeature(cfg *AdminConfig, username, feature string) bool {
	if username == OwnerUsername() {
		return true
	}
	user := findUser(cfg, username)
	if user == nil {
		return false
	}
	if user.Role == RoleAdmin {
		return true
	}
	for _, f := range user.EnabledAPIs {
		if f == feature {
			return true
		}
	}
	for _, tagName := range user.Tags {
		tag := findTag(cfg, tagName)
		if tag == nil {
			continue
		}
		for _, f := range tag.EnabledAPIs {
			if f == feature {
				return true
			}
		}
	}
	return false
}

func findTag(cfg *AdminConfig, name string) *Tag {
	for i := range cfg.UserConfig.Tags {
		if cfg.UserConfig.Tags[i].Name == name {
			return &cfg.UserConfig.Tags[i]
		}
	}
	return nil
}

func anyTagAllowsAdult(cfg *AdminConfig, tagNames []string) bool {
	for _, name := range tagNames {
		if tag := findTag(cfg, name); tag != nil && tag.ShowAdultContent != nil && *tag.ShowAdultContent {
			return true
		}
	}
	return false
}

func anyTagDeniesAdult(cfg *AdminConfig, tagNames []string) bool {
	for _, name := range tagNames {
		if tag := findTag(cfg, name); tag != nil && tag.ShowAdultContent != nil && !*tag.ShowAdultContent {
			return true
		}
	}
	return false
}

var (
	proxyURLParam = regexp.MustCompile(`[?&]url=([^&]+)`)
	nonAlnum      = regexp.MustCompile(`[^a-z0-9]`)
)

// applyVideoProxy rewrites every endpoint through the configured proxy,
// deriving a stable per-source routing id from the endpoint hostname.
func applyVideoProxy(sites []SourceConfig, cfg *AdminConfig) []SourceConfig {
	proxy := cfg.VideoProxyConfig
	if proxy == nil || !proxy.Enabled || proxy.ProxyURL == "" {
		return sites
	}
	base := strings.TrimRight(proxy.ProxyURL, "/")

	out := make([]SourceConfig, 0, len(sites))
	for _, s := range sites {
		// A previously proxied endpoint carries the real URL in its
		// url= parameter; unwrap it before re-wrapping.
		realAPI := s.API
		if m := proxyURLParam.FindStringSubmatch(s.API); m != nil {
			if unescaped, err := url.QueryUnescape(m[1]); err == nil {
				realAPI = unescaped
			}
		}

		id := sourceRouteID(realAPI, s)
		s.API = base + "/p/" + id + "?url=" + url.QueryEscape(realAPI)
		out = append(out, s)
	}
	return out
}

// sourceRouteID derives a short routing slug from an endpoint hostname.
// For caiji.xxx.com style hosts the second-to-last label wins; otherwise
// the first label with common collector suffixes stripped. Collisions are
// tolerated; this is routing sugar, not identity.
func sourceRouteID(apiURL string, s SourceConfig) string {
	u, err := url.Parse(apiURL)
	if err != nil || u.Hostname() == "" {
		if s.Key != "" {
			return s.Key
		}
		return nonAlnum.ReplaceAllString(strings.ToLower(s.Name), "")
	}

	parts := strings.Split(u.Hostname(), ".")
	if len(parts) >= 3 {
		switch parts[0] {
		case "caiji", "api", "cj", "www":
			return nonAlnum.ReplaceAllString(strings.ToLower(parts[len(parts)-2]), "")
		}
	}

	name := strings.ToLower(parts[0])
	name = strings.TrimSuffix(name, "zyapi")
	name = strings.TrimSuffix(name, "zy")
	name = strings.TrimSuffix(name, "api")
	name = nonAlnum.ReplaceAllString(name, "")
	if name == "" {
		return "source"
	}
	return name
}
