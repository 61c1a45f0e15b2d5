package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zt6453928/lunatv-enhanced/api"
	"github.com/zt6453928/lunatv-enhanced/database/accounts"
)

// ListSessions 列出全部登录会话
func ListSessions(c *gin.Context) {
	ss, err := accounts.GetAllSessions()
	if err != nil {
		api.RespondError(c, http.StatusInternalServerError, "Failed to retrieve sessions: "+err.Error())
		return
	}
	current, _ := c.Cookie("session_token")
	c.JSON(http.StatusOK, gin.H{"status": "success", "current": current, "data": ss})
}

// ClearSessions 清除全部登录会话
func ClearSessions(c *gin.Context) {
	if err := accounts.DeleteAllSessions(); err != nil {
		api.RespondError(c, http.StatusInternalServerError, "Failed to delete all sessions: "+err.Error())
		return
	}
	api.RespondSuccess(c, nil)
}
