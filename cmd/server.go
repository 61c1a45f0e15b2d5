package cmd

import (
	"log"
	"time"

	"github.com/zt6453928/lunatv-enhanced/api"
	"github.com/zt6453928/lunatv-enhanced/api/admin"
	"github.com/zt6453928/lunatv-enhanced/cmd/flags"
	"github.com/zt6453928/lunatv-enhanced/config"
	"github.com/zt6453928/lunatv-enhanced/database/accounts"
	"github.com/zt6453928/lunatv-enhanced/database/dbcore"
	"github.com/zt6453928/lunatv-enhanced/database/store"
	"github.com/zt6453928/lunatv-enhanced/utils/subscription"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
)

var ServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the server",
	Long:  `Start the server`,
	Run: func(cmd *cobra.Command, args []string) {
		InitDatabase()

		st := store.New()
		startAutoRefresh(st)

		r := gin.Default()

		// TVBox clients and the separate admin frontend both fetch from
		// other origins.
		r.Use(cors.New(cors.Config{
			AllowOrigins:     []string{"*"},
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))

		r.Any("/ping", func(c *gin.Context) {
			c.String(200, "pong")
		})

		r.POST("/api/login", api.Login)
		r.GET("/api/logout", api.Logout)
		r.GET("/api/me", api.GetMe)
		r.GET("/api/sites", api.GetSites)
		r.GET("/api/tvbox-config", api.GetTVBoxConfig)
		r.GET("/api/oauth/:provider", api.OAuthAuthorize)
		r.GET("/api/oauth_callback", api.OAuthCallback)

		adminAuthrized := r.Group("/api/admin", api.AdminAuthMiddleware())
		{
			// settings
			adminAuthrized.GET("/settings", admin.GetSettings)
			adminAuthrized.POST("/settings", admin.EditSettings)
			adminAuthrized.POST("/reset", admin.ResetConfig)
			// subscription
			adminAuthrized.POST("/subscription", admin.SetSubscription)
			adminAuthrized.POST("/subscription/refresh", admin.RefreshSubscription)
			// sources, categories, live channels
			adminAuthrized.POST("/source/add", admin.AddSource)
			adminAuthrized.POST("/source/edit", admin.EditSource)
			adminAuthrized.POST("/source/remove", admin.RemoveSource)
			adminAuthrized.POST("/category/add", admin.AddCategory)
			adminAuthrized.POST("/category/edit", admin.EditCategory)
			adminAuthrized.POST("/category/remove", admin.RemoveCategory)
			adminAuthrized.POST("/live/add", admin.AddLive)
			adminAuthrized.POST("/live/edit", admin.EditLive)
			adminAuthrized.POST("/live/remove", admin.RemoveLive)
			// users and tags
			adminAuthrized.POST("/user/ban", admin.BanUser)
			adminAuthrized.POST("/user/unban", admin.UnbanUser)
			adminAuthrized.POST("/user/role", admin.SetUserRole)
			adminAuthrized.POST("/user/tags", admin.SetUserTags)
			adminAuthrized.POST("/user/apis", admin.SetUserEnabledAPIs)
			adminAuthrized.POST("/tag/save", admin.SaveTag)
			adminAuthrized.POST("/tag/remove", admin.RemoveTag)
			// account security
			adminAuthrized.GET("/2fa", admin.Generate2Fa)
			adminAuthrized.POST("/2fa", admin.Enable2Fa)
			adminAuthrized.DELETE("/2fa", admin.Disable2Fa)
			adminAuthrized.GET("/sessions", admin.ListSessions)
			adminAuthrized.DELETE("/sessions", admin.ClearSessions)
		}

		r.Run(flags.Listen)
	},
}

func init() {
	RootCmd.AddCommand(ServerCmd)
}

func InitDatabase() {
	if !dbcore.InitDatabase() {
		user, passwd, err := accounts.CreateDefaultOwnerAccount()
		if err != nil {
			panic(err)
		}
		log.Println("Default owner account created. Username:", user, ", Password:", passwd)
	}
}

// startAutoRefresh re-pulls the subscribed config file on a schedule. The
// toggles live in the document itself, so they are re-read on every tick
// rather than captured at startup.
func startAutoRefresh(st *store.GormStore) {
	c := cron.New()
	_, err := c.AddFunc("@every 1h", func() {
		cfg := config.Get(st)
		if cfg.CronConfig == nil || !cfg.CronConfig.EnableAutoRefresh {
			return
		}
		if !cfg.ConfigSubscription.AutoUpdate || cfg.ConfigSubscription.URL == "" {
			return
		}
		if err := subscription.Refresh(st); err != nil {
			log.Printf("subscription auto refresh failed: %v", err)
		}
	})
	if err != nil {
		log.Printf("failed to schedule subscription refresh: %v", err)
		return
	}
	c.Start()
}
