package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zt6453928/lunatv-enhanced/api"
	"github.com/zt6453928/lunatv-enhanced/config"
	"github.com/zt6453928/lunatv-enhanced/database/store"
)

// ResetConfig 恢复出厂配置
//
// The subscription settings survive the reset so the next refresh can
// repopulate the source list.
func ResetConfig(c *gin.Context) {
	st := store.New()
	if err := config.Reset(st); err != nil {
		api.RespondError(c, http.StatusInternalServerError, "Failed to reset config: "+err.Error())
		return
	}
	api.RespondSuccessMessage(c, "Config reset", config.Get(st))
}
