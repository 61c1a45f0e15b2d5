package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/zt6453928/lunatv-enhanced/config"
	"github.com/zt6453928/lunatv-enhanced/database/store"
)

// GetSites returns the source list visible to the requesting user.
// Anonymous requests get the global-default view.
func GetSites(c *gin.Context) {
	username := ""
	if user, ok := SessionUser(c); ok {
		username = user.Username
	}

	cfg := config.Get(store.New())
	sites := config.AvailableAPISites(cfg, username)

	c.Header("Cache-Control", fmt.Sprintf("private, max-age=%d", config.CacheTime(cfg)))

	out := make([]gin.H, 0, len(sites))
	for _, s := range sites {
		out = append(out, gin.H{
			"key":    s.Key,
			"name":   s.Name,
			"api":    s.API,
			"detail": s.Detail,
		})
	}
	RespondSuccess(c, out)
}
