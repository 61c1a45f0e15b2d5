package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/zt6453928/lunatv-enhanced/database/accounts"

	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Username      string `json:"username"`
	Password      string `json:"password"`
	TwoFactorCode string `json:"two_factor_code,omitempty"`
}

func Login(c *gin.Context) {
	bodyBytes, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": "Invalid request body"})
		return
	}
	var data LoginRequest
	err = json.Unmarshal(bodyBytes, &data)
	if err != nil || data.Username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": "Invalid request body"})
		return
	}

	uuid, success := accounts.CheckPassword(data.Username, data.Password)
	if !success {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "error": "Invalid credentials"})
		return
	}

	user, err := accounts.GetUserByUUID(uuid)
	if err == nil && user.TwoFactor != "" {
		ok, err := accounts.Verify2Fa(uuid, data.TwoFactorCode)
		if err != nil || !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "error": "Invalid 2FA code"})
			return
		}
	}

	session, err := accounts.CreateSession(uuid, 2592000)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "error": "Failed to create session" + err.Error()})
		return
	}
	c.SetCookie("session_token", session, 2592000, "/", "", false, true)
	c.JSON(200, gin.H{"set-cookie": map[string]interface{}{"session_token": session}})
}
