package api

import (
	stdhttp "net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"recruitadmin/internal/apiclient"
	h "recruitadmin/internal/http/handlers"
	"recruitadmin/internal/http/middleware"
	"recruitadmin/internal/http/views"
	"recruitadmin/internal/screens"
	"recruitadmin/internal/session"
	"recruitadmin/internal/utils"
)

// Deps is what the router wires into the handlers.
type Deps struct {
	Client      *apiclient.Client
	Screens     *screens.Registry
	Sessions    *session.Manager
	Gatherer    prometheus.Gatherer
	Cookie      middleware.CookieConfig
	CORSOrigins []string
	ViewTimeout time.Duration
}

func NewRouter(d Deps) *gin.Engine {
	hd := &h.Handler{Client: d.Client, Screens: d.Screens, Gatherer: d.Gatherer, ViewTimeout: d.ViewTimeout}

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(d.CORSOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		utils.LogError("", "http", "trusted_proxies", err)
	}
	r.SetHTMLTemplate(views.Templates())

	r.OPTIONS("/*path", func(c *gin.Context) { c.AbortWithStatus(stdhttp.StatusNoContent) })

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", hd.Health)
		api.GET("/busy", hd.Busy)
	}
	r.GET("/metrics", hd.Metrics())

	app := r.Group("", middleware.Sessions(d.Sessions, d.Cookie))

	// Auth
	auth := app.Group("/auth")
	auth.GET("/login", middleware.AnonymousOnly(), hd.LoginPage)
	auth.POST("/login", middleware.AnonymousOnly(), hd.Login)
	auth.POST("/logout", hd.Logout)
	auth.GET("/logout", hd.Logout)

	app.GET(middleware.ForbiddenPath, hd.Forbidden)

	// Toasts
	app.GET("/toasts", hd.Toasts)
	app.POST("/toasts/:id/dismiss", hd.DismissToast)

	managed := app.Group("", middleware.RequireRoles(screens.ManagerRoles...))
	managed.GET(middleware.HomePath, hd.Home)

	profile := managed.Group("/profile")
	profile.GET("", hd.ProfilePage)
	profile.POST("", hd.UpdateProfile)
	profile.POST("/password", hd.ChangePassword)
	profile.GET("/option", hd.SelfOption)

	managed.GET("/options/:source", hd.Options)
	managed.POST("/options/:source/combobox", hd.Combobox)
	managed.POST("/files/upload", hd.UploadFile)

	// Screens
	for _, sc := range d.Screens.All() {
		meta := sc.Describe()
		g := app.Group(meta.Path, middleware.RequireRoles(meta.Roles...))
		hd.MountScreen(g, sc)
		switch meta.Name {
		case "users":
			g.POST("/:id/active", hd.SetUserActive(sc))
			g.GET("/:id/info", hd.UserInfo)
		case "candidates":
			g.GET("/:id/cv", hd.CandidateCV)
		}
	}

	return r
}
