package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zt6453928/lunatv-enhanced/api"
	"github.com/zt6453928/lunatv-enhanced/config"
	"github.com/zt6453928/lunatv-enhanced/database/store"
)

type SourceRequest struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	API      string `json:"api"`
	Detail   string `json:"detail"`
	Disabled *bool  `json:"disabled"`
	IsAdult  *bool  `json:"is_adult"`
	Type     string `json:"type"`
}

// AddSource 添加自定义采集源
func AddSource(c *gin.Context) {
	var req SourceRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Key == "" || req.API == "" {
		api.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	st := store.New()
	cfg := config.Get(st)
	for _, s := range cfg.SourceConfig {
		if s.Key == req.Key {
			api.RespondError(c, http.StatusConflict, "Source key already exists")
			return
		}
	}

	entry := config.SourceConfig{
		Key:    req.Key,
		Name:   req.Name,
		API:    req.API,
		Detail: req.Detail,
		From:   config.FromCustom,
		Type:   "vod",
	}
	if req.Type != "" {
		entry.Type = req.Type
	}
	if req.IsAdult != nil {
		entry.IsAdult = *req.IsAdult
	}
	cfg.SourceConfig = append(cfg.SourceConfig, entry)

	saveAndRespond(c, st, cfg)
}

// EditSource 修改采集源的本地字段
//
// Only the admin-owned fields change here. Name and endpoint of a
// subscribed source stay under subscription control and would be
// overwritten on the next reconcile anyway.
func EditSource(c *gin.Context) {
	var req SourceRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Key == "" {
		api.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	st := store.New()
	cfg := config.Get(st)
	for i := range cfg.SourceConfig {
		s := &cfg.SourceConfig[i]
		if s.Key != req.Key {
			continue
		}
		if req.Disabled != nil {
			s.Disabled = *req.Disabled
		}
		if req.IsAdult != nil {
			s.IsAdult = *req.IsAdult
		}
		if req.Type != "" {
			s.Type = req.Type
		}
		if s.From == config.FromCustom {
			if req.Name != "" {
				s.Name = req.Name
			}
			if req.API != "" {
				s.API = req.API
			}
			if req.Detail != "" {
				s.Detail = req.Detail
			}
		}
		saveAndRespond(c, st, cfg)
		return
	}
	api.RespondError(c, http.StatusNotFound, "Source not found")
}

// RemoveSource 删除自定义采集源
func RemoveSource(c *gin.Context) {
	var req SourceRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Key == "" {
		api.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	st := store.New()
	cfg := config.Get(st)
	for i, s := range cfg.SourceConfig {
		if s.Key != req.Key {
			continue
		}
		if s.From != config.FromCustom {
			// Subscribed entries come back on the next reconcile;
			// disabling is the supported way to hide them.
			api.RespondError(c, http.StatusBadRequest, "Subscribed sources can only be disabled")
			return
		}
		cfg.SourceConfig = append(cfg.SourceConfig[:i], cfg.SourceConfig[i+1:]...)
		saveAndRespond(c, st, cfg)
		return
	}
	api.RespondError(c, http.StatusNotFound, "Source not found")
}

type CategoryRequest struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Query    string `json:"query"`
	Disabled *bool  `json:"disabled"`
}

// AddCategory 添加自定义分类
func AddCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Query == "" || (req.Type != "movie" && req.Type != "tv") {
		api.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	st := store.New()
	cfg := config.Get(st)
	for _, cat := range cfg.CustomCategories {
		if cat.Query == req.Query && cat.Type == req.Type {
			api.RespondError(c, http.StatusConflict, "Category already exists")
			return
		}
	}

	name := req.Name
	if name == "" {
		name = req.Query
	}
	cfg.CustomCategories = append(cfg.CustomCategories, config.CustomCategory{
		Name:  name,
		Type:  req.Type,
		Query: req.Query,
		From:  config.FromCustom,
	})

	saveAndRespond(c, st, cfg)
}

// EditCategory 修改自定义分类
func EditCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Query == "" {
		api.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	st := store.New()
	cfg := config.Get(st)
	for i := range cfg.CustomCategories {
		cat := &cfg.CustomCategories[i]
		if cat.Query != req.Query || cat.Type != req.Type {
			continue
		}
		if req.Disabled != nil {
			cat.Disabled = *req.Disabled
		}
		if cat.From == config.FromCustom && req.Name != "" {
			cat.Name = req.Name
		}
		saveAndRespond(c, st, cfg)
		return
	}
	api.RespondError(c, http.StatusNotFound, "Category not found")
}

// RemoveCategory 删除自定义分类
func RemoveCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Query == "" {
		api.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	st := store.New()
	cfg := config.Get(st)
	for i, cat := range cfg.CustomCategories {
		if cat.Query != req.Query || cat.Type != req.Type {
			continue
		}
		if cat.From != config.FromCustom {
			api.RespondError(c, http.StatusBadRequest, "Subscribed categories can only be disabled")
			return
		}
		cfg.CustomCategories = append(cfg.CustomCategories[:i], cfg.CustomCategories[i+1:]...)
		saveAndRespond(c, st, cfg)
		return
	}
	api.RespondError(c, http.StatusNotFound, "Category not found")
}

type LiveRequest struct {
	Key           string `json:"key"`
	Name          string `json:"name"`
	URL           string `json:"url"`
	UA            string `json:"ua"`
	EPG           string `json:"epg"`
	ChannelNumber *int   `json:"channelNumber"`
	Disabled      *bool  `json:"disabled"`
}

// AddLive 添加自定义直播源
func AddLive(c *gin.Context) {
	var req LiveRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Key == "" || req.URL == "" {
		api.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	st := store.New()
	cfg := config.Get(st)
	for _, l := range cfg.LiveConfig {
		if l.Key == req.Key {
			api.RespondError(c, http.StatusConflict, "Live key already exists")
			return
		}
	}

	entry := config.LiveConfig{
		Key:  req.Key,
		Name: req.Name,
		URL:  req.URL,
		UA:   req.UA,
		EPG:  req.EPG,
		From: config.FromCustom,
	}
	if req.ChannelNumber != nil {
		entry.ChannelNumber = *req.ChannelNumber
	}
	cfg.LiveConfig = append(cfg.LiveConfig, entry)

	saveAndRespond(c, st, cfg)
}

// EditLive 修改直播源的本地字段
func EditLive(c *gin.Context) {
	var req LiveRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Key == "" {
		api.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	st := store.New()
	cfg := config.Get(st)
	for i := range cfg.LiveConfig {
		l := &cfg.LiveConfig[i]
		if l.Key != req.Key {
			continue
		}
		if req.Disabled != nil {
			l.Disabled = *req.Disabled
		}
		if req.ChannelNumber != nil {
			l.ChannelNumber = *req.ChannelNumber
		}
		if l.From == config.FromCustom {
			if req.Name != "" {
				l.Name = req.Name
			}
			if req.URL != "" {
				l.URL = req.URL
			}
			if req.UA != "" {
				l.UA = req.UA
			}
			if req.EPG != "" {
				l.EPG = req.EPG
			}
		}
		saveAndRespond(c, st, cfg)
		return
	}
	api.RespondError(c, http.StatusNotFound, "Live channel not found")
}

// RemoveLive 删除自定义直播源
func RemoveLive(c *gin.Context) {
	var req LiveRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Key == "" {
		api.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	st := store.New()
	cfg := config.Get(st)
	for i, l := range cfg.LiveConfig {
		if l.Key != req.Key {
			continue
		}
		if l.From != config.FromCustom {
			api.RespondError(c, http.StatusBadRequest, "Subscribed live channels can only be disabled")
			return
		}
		cfg.LiveConfig = append(cfg.LiveConfig[:i], cfg.LiveConfig[i+1:]...)
		saveAndRespond(c, st, cfg)
		return
	}
	api.RespondError(c, http.StatusNotFound, "Live channel not found")
}

func saveAndRespond(c *gin.Context, st *store.GormStore, cfg *config.AdminConfig) {
	if err := st.SaveDocument(cfg); err != nil {
		api.RespondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	api.RespondSuccess(c, nil)
}
