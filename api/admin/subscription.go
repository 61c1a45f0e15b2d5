package admin

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/zt6453928/lunatv-enhanced/api"
	"github.com/zt6453928/lunatv-enhanced/config"
	"github.com/zt6453928/lunatv-enhanced/database/store"
	"github.com/zt6453928/lunatv-enhanced/utils/subscription"
)

// refreshGuard keeps a repeatedly clicked refresh button from hammering
// the upstream. It guards the fetch only; config reads never go through
// any cache.
var refreshGuard = cache.New(30*time.Second, time.Minute)

type SetSubscriptionRequest struct {
	URL        string `json:"url"`
	AutoUpdate bool   `json:"autoUpdate"`
}

// SetSubscription 设置订阅地址
func SetSubscription(c *gin.Context) {
	var req SetSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	st := store.New()
	cfg := config.Get(st)
	cfg.ConfigSubscription.URL = req.URL
	cfg.ConfigSubscription.AutoUpdate = req.AutoUpdate
	if err := st.SaveDocument(cfg); err != nil {
		api.RespondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	api.RespondSuccess(c, nil)
}

// RefreshSubscription 立即拉取并合并订阅
func RefreshSubscription(c *gin.Context) {
	st := store.New()
	cfg := config.Get(st)
	if cfg.ConfigSubscription.URL == "" {
		api.RespondError(c, http.StatusBadRequest, "No subscription URL configured")
		return
	}
	if _, pending := refreshGuard.Get(cfg.ConfigSubscription.URL); pending {
		api.RespondError(c, http.StatusTooManyRequests, "Refresh already in progress, try again shortly")
		return
	}
	refreshGuard.Set(cfg.ConfigSubscription.URL, true, cache.DefaultExpiration)

	if err := subscription.Refresh(st); err != nil {
		api.RespondError(c, http.StatusBadGateway, err.Error())
		return
	}
	api.RespondSuccessMessage(c, "Subscription refreshed", nil)
}
