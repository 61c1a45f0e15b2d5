package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zt6453928/lunatv-enhanced/api"
	"github.com/zt6453928/lunatv-enhanced/config"
	"github.com/zt6453928/lunatv-enhanced/database/accounts"
	"github.com/zt6453928/lunatv-enhanced/database/store"
)

type UserRequest struct {
	Username    string   `json:"username"`
	Role        string   `json:"role"`
	Tags        []string `json:"tags"`
	EnabledAPIs []string `json:"enabledApis"`
}

// BanUser 封禁用户
func BanUser(c *gin.Context) {
	setBanned(c, true)
}

// UnbanUser 解封用户
func UnbanUser(c *gin.Context) {
	setBanned(c, false)
}

func setBanned(c *gin.Context, banned bool) {
	var req UserRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" {
		api.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == config.OwnerUsername() {
		api.RespondError(c, http.StatusBadRequest, "The owner cannot be banned")
		return
	}
	if err := accounts.SetBanned(req.Username, banned); err != nil {
		api.RespondError(c, http.StatusNotFound, "User not found")
		return
	}

	st := store.New()
	cfg := config.Get(st)
	for i := range cfg.UserConfig.Users {
		if cfg.UserConfig.Users[i].Username == req.Username {
			cfg.UserConfig.Users[i].Banned = banned
		}
	}
	saveAndRespond(c, st, cfg)
}

// SetUserRole 设置用户角色
//
// Only admin and user are assignable; the owner role belongs to the
// environment-designated identity and is restored by self-check no matter
// what was stored.
func SetUserRole(c *gin.Context) {
	var req UserRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" {
		api.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Role != config.RoleAdmin && req.Role != config.RoleUser {
		api.RespondError(c, http.StatusBadRequest, "Role must be admin or user")
		return
	}
	if req.Username == config.OwnerUsername() {
		api.RespondError(c, http.StatusBadRequest, "The owner role cannot be changed")
		return
	}

	st := store.New()
	cfg := config.Get(st)
	found := false
	for i := range cfg.UserConfig.Users {
		if cfg.UserConfig.Users[i].Username == req.Username {
			cfg.UserConfig.Users[i].Role = req.Role
			found = true
		}
	}
	if !found {
		api.RespondError(c, http.StatusNotFound, "User not found")
		return
	}
	// Mirror into the users table so a rebuilt document entry keeps the
	// assigned role.
	if err := accounts.SetUserRole(req.Username, req.Role); err != nil {
		api.RespondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	saveAndRespond(c, st, cfg)
}

// SetUserTags 设置用户的用户组
func SetUserTags(c *gin.Context) {
	var req UserRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" {
		api.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	st := store.New()
	cfg := config.Get(st)
	found := false
	for i := range cfg.UserConfig.Users {
		if cfg.UserConfig.Users[i].Username == req.Username {
			cfg.UserConfig.Users[i].Tags = req.Tags
			found = true
		}
	}
	if !found {
		api.RespondError(c, http.StatusNotFound, "User not found")
		return
	}
	// Mirror into the users table so a rebuilt document entry keeps them.
	if err := accounts.SetUserTags(req.Username, req.Tags); err != nil {
		api.RespondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	saveAndRespond(c, st, cfg)
}

// SetUserEnabledAPIs 设置用户的源/功能允许列表
func SetUserEnabledAPIs(c *gin.Context) {
	var req UserRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" {
		api.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	st := store.New()
	cfg := config.Get(st)
	found := false
	for i := range cfg.UserConfig.Users {
		if cfg.UserConfig.Users[i].Username == req.Username {
			cfg.UserConfig.Users[i].EnabledAPIs = req.EnabledAPIs
			found = true
		}
	}
	if !found {
		api.RespondError(c, http.StatusNotFound, "User not found")
		return
	}
	if err := accounts.SetUserEnabledAPIs(req.Username, req.EnabledAPIs); err != nil {
		api.RespondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	saveAndRespond(c, st, cfg)
}

type TagRequest struct {
	Name             string   `json:"name"`
	EnabledAPIs      []string `json:"enabledApis"`
	ShowAdultContent *bool    `json:"showAdultContent"`
}

// SaveTag 新建或更新用户组
func SaveTag(c *gin.Context) {
	var req TagRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		api.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	st := store.New()
	cfg := config.Get(st)
	for i := range cfg.UserConfig.Tags {
		if cfg.UserConfig.Tags[i].Name == req.Name {
			cfg.UserConfig.Tags[i].EnabledAPIs = req.EnabledAPIs
			cfg.UserConfig.Tags[i].ShowAdultContent = req.ShowAdultContent
			saveAndRespond(c, st, cfg)
			return
		}
	}
	cfg.UserConfig.Tags = append(cfg.UserConfig.Tags, config.Tag{
		Name:             req.Name,
		EnabledAPIs:      req.EnabledAPIs,
		ShowAdultContent: req.ShowAdultContent,
	})
	saveAndRespond(c, st, cfg)
}

// RemoveTag 删除用户组并从所有用户上摘除
func RemoveTag(c *gin.Context) {
	var req TagRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		api.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	st := store.New()
	cfg := config.Get(st)
	tags := cfg.UserConfig.Tags[:0]
	for _, tag := range cfg.UserConfig.Tags {
		if tag.Name != req.Name {
			tags = append(tags, tag)
		}
	}
	cfg.UserConfig.Tags = tags

	for i := range cfg.UserConfig.Users {
		user := &cfg.UserConfig.Users[i]
		kept := user.Tags[:0]
		for _, name := range user.Tags {
			if name != req.Name {
				kept = append(kept, name)
			}
		}
		if len(kept) != len(user.Tags) {
			user.Tags = kept
			// Mirror into the users table, otherwise a rebuilt document
			// entry would bring the deleted tag back.
			if err := accounts.SetUserTags(user.Username, user.Tags); err != nil {
				api.RespondError(c, http.StatusInternalServerError, err.Error())
				return
			}
		}
	}
	saveAndRespond(c, st, cfg)
}
