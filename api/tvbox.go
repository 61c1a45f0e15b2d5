package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zt6453928/lunatv-enhanced/config"
	"github.com/zt6453928/lunatv-enhanced/database/store"
)

// GetTVBoxConfig returns the sanitized TVBox view for the logged-in user:
// the security config, the user's own token and source selection, and the
// non-disabled source key/name pairs. Never the full admin document.
func GetTVBoxConfig(c *gin.Context) {
	user, ok := SessionUser(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	cfg := config.Get(store.New())

	security := cfg.TVBoxSecurity
	if security == nil {
		security = &config.TVBoxSecurityConfig{
			EnableAuth: false,
			AllowedIPs: []string{},
			RateLimit:  60,
		}
	}

	userToken := ""
	var userEnabledSources []string
	if entry := userEntry(cfg, user.Username); entry != nil {
		userToken = entry.TVBoxToken
		userEnabledSources = entry.TVBoxEnabledSources
	}

	allSources := make([]gin.H, 0, len(cfg.SourceConfig))
	for _, s := range cfg.SourceConfig {
		if s.Disabled {
			continue
		}
		allSources = append(allSources, gin.H{"key": s.Key, "name": s.Name})
	}

	RespondSuccess(c, gin.H{
		"securityConfig":     security,
		"siteName":           cfg.SiteConfig.SiteName,
		"userToken":          userToken,
		"userEnabledSources": userEnabledSources,
		"allSources":         allSources,
	})
}

func userEntry(cfg *config.AdminConfig, username string) *config.UserEntry {
	for i := range cfg.UserConfig.Users {
		if cfg.UserConfig.Users[i].Username == username {
			return &cfg.UserConfig.Users[i]
		}
	}
	return nil
}
