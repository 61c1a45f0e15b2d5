package admin

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"
	"github.com/zt6453928/lunatv-enhanced/api"
	"github.com/zt6453928/lunatv-enhanced/config"
	"github.com/zt6453928/lunatv-enhanced/database/store"
)

// GetSettings 获取管理配置
func GetSettings(c *gin.Context) {
	cfg := config.Get(store.New())
	c.JSON(200, cfg)
}

// EditSettings 更新管理配置
//
// The body is a loose JSON object: scalar SiteConfig fields arrive as
// whatever type the frontend sent them in, named sub-config blocks are
// replaced wholesale.
func EditSettings(c *gin.Context) {
	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		api.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	st := store.New()
	cfg := config.Get(st)

	applySiteConfig(&cfg.SiteConfig, req)
	applySections(cfg, req)

	if v, ok := req["AllowRegister"]; ok {
		allow := cast.ToBool(v)
		cfg.UserConfig.AllowRegister = &allow
	}

	// The result goes through another self-check so a bad patch can never
	// persist a structurally broken document.
	cfg = config.SelfCheck(cfg, st)
	if err := st.SaveDocument(cfg); err != nil {
		api.RespondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	api.RespondSuccess(c, nil)
}

func applySiteConfig(site *config.SiteConfig, req map[string]interface{}) {
	if v, ok := req["SiteName"]; ok {
		site.SiteName = cast.ToString(v)
	}
	if v, ok := req["Announcement"]; ok {
		site.Announcement = cast.ToString(v)
	}
	if v, ok := req["SearchDownstreamMaxPage"]; ok {
		site.SearchDownstreamMaxPage = cast.ToInt(v)
	}
	if v, ok := req["SiteInterfaceCacheTime"]; ok {
		site.SiteInterfaceCacheTime = cast.ToInt(v)
	}
	if v, ok := req["DoubanProxyType"]; ok {
		site.DoubanProxyType = cast.ToString(v)
	}
	if v, ok := req["DoubanProxy"]; ok {
		site.DoubanProxy = cast.ToString(v)
	}
	if v, ok := req["DoubanImageProxyType"]; ok {
		site.DoubanImageProxyType = cast.ToString(v)
	}
	if v, ok := req["DoubanImageProxy"]; ok {
		site.DoubanImageProxy = cast.ToString(v)
	}
	if v, ok := req["DisableYellowFilter"]; ok {
		site.DisableYellowFilter = cast.ToBool(v)
	}
	if v, ok := req["ShowAdultContent"]; ok {
		site.ShowAdultContent = cast.ToBool(v)
	}
	if v, ok := req["FluidSearch"]; ok {
		site.FluidSearch = cast.ToBool(v)
	}
	if v, ok := req["TMDBApiKey"]; ok {
		site.TMDBAPIKey = cast.ToString(v)
	}
	if v, ok := req["TMDBLanguage"]; ok {
		site.TMDBLanguage = cast.ToString(v)
	}
	if v, ok := req["EnableTMDBActorSearch"]; ok {
		site.EnableTMDBActorSearch = cast.ToBool(v)
	}
}

// applySections replaces whole named sub-config blocks from the patch.
func applySections(cfg *config.AdminConfig, req map[string]interface{}) {
	replace := func(key string, target interface{}) {
		raw, ok := req[key]
		if !ok {
			return
		}
		data, err := json.Marshal(raw)
		if err != nil {
			return
		}
		_ = json.Unmarshal(data, target)
	}

	if _, ok := req["NetDiskConfig"]; ok {
		cfg.NetDiskConfig = &config.NetDiskConfig{}
		replace("NetDiskConfig", cfg.NetDiskConfig)
	}
	if _, ok := req["AIRecommendConfig"]; ok {
		cfg.AIRecommendConfig = &config.AIRecommendConfig{}
		replace("AIRecommendConfig", cfg.AIRecommendConfig)
	}
	if _, ok := req["YouTubeConfig"]; ok {
		cfg.YouTubeConfig = &config.YouTubeConfig{}
		replace("YouTubeConfig", cfg.YouTubeConfig)
	}
	if _, ok := req["ShortDramaConfig"]; ok {
		cfg.ShortDramaConfig = &config.ShortDramaConfig{}
		replace("ShortDramaConfig", cfg.ShortDramaConfig)
	}
	if _, ok := req["DownloadConfig"]; ok {
		cfg.DownloadConfig = &config.DownloadConfig{}
		replace("DownloadConfig", cfg.DownloadConfig)
	}
	if _, ok := req["DoubanConfig"]; ok {
		cfg.DoubanConfig = &config.DoubanConfig{}
		replace("DoubanConfig", cfg.DoubanConfig)
	}
	if _, ok := req["CronConfig"]; ok {
		cfg.CronConfig = &config.CronConfig{}
		replace("CronConfig", cfg.CronConfig)
	}
	if _, ok := req["VideoProxyConfig"]; ok {
		cfg.VideoProxyConfig = &config.VideoProxyConfig{}
		replace("VideoProxyConfig", cfg.VideoProxyConfig)
	}
	if _, ok := req["TVBoxSecurityConfig"]; ok {
		cfg.TVBoxSecurity = &config.TVBoxSecurityConfig{}
		replace("TVBoxSecurityConfig", cfg.TVBoxSecurity)
	}
	if _, ok := req["OIDCProviders"]; ok {
		cfg.OIDCProviders = nil
		replace("OIDCProviders", &cfg.OIDCProviders)
	}
}
