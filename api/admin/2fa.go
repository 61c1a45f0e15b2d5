package admin

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pquerna/otp/totp"
	"github.com/zt6453928/lunatv-enhanced/api"
	"github.com/zt6453928/lunatv-enhanced/database/accounts"
)

// Generate2Fa 生成 2FA 密钥与二维码
func Generate2Fa(c *gin.Context) {
	user, ok := api.SessionUser(c)
	if !ok {
		api.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	secret, img, err := accounts.Generate2Fa(user.Username)
	if err != nil {
		api.RespondError(c, http.StatusInternalServerError, "Failed to generate 2FA: "+err.Error())
		return
	}
	c.SetCookie("2fa_secret", secret, 1800, "/", "", false, true)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		api.RespondError(c, http.StatusInternalServerError, "Failed to encode QR code: "+err.Error())
		return
	}
	api.RespondSuccess(c, gin.H{
		"secret": secret,
		"qrcode": "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()),
	})
}

// Enable2Fa 校验验证码并启用 2FA
func Enable2Fa(c *gin.Context) {
	user, ok := api.SessionUser(c)
	if !ok {
		api.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	secret, _ := c.Cookie("2fa_secret")
	var req struct {
		Code string `json:"code"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || secret == "" || req.Code == "" {
		api.RespondError(c, http.StatusBadRequest, "2FA secret or code not provided")
		return
	}
	if !totp.Validate(req.Code, secret) {
		api.RespondError(c, http.StatusBadRequest, "Invalid 2FA code")
		return
	}
	if err := accounts.Enable2Fa(user.UUID, secret); err != nil {
		api.RespondError(c, http.StatusInternalServerError, "Failed to enable 2FA: "+err.Error())
		return
	}
	c.SetCookie("2fa_secret", "", -1, "/", "", false, true)
	api.RespondSuccessMessage(c, "2FA enabled successfully", nil)
}

// Disable2Fa 关闭当前用户的 2FA
func Disable2Fa(c *gin.Context) {
	user, ok := api.SessionUser(c)
	if !ok {
		api.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if err := accounts.Disable2Fa(user.UUID); err != nil {
		api.RespondError(c, http.StatusInternalServerError, "Failed to disable 2FA: "+err.Error())
		return
	}
	api.RespondSuccess(c, nil)
}
