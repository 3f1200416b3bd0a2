// Package router wires handlers and middleware onto an echo instance.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/stylemate/marketplace-api/internal/config"
	"github.com/stylemate/marketplace-api/internal/handler"
	"github.com/stylemate/marketplace-api/internal/middleware"
	"github.com/stylemate/marketplace-api/internal/model"
)

// Deps is everything the route table needs.
type Deps struct {
	Log      *zap.Logger
	Resolver middleware.PrincipalResolver
	Redis    *redis.Client // nil disables rate limiting and caching
	DB       handler.Pinger

	RateLimit config.RateLimitConfig
	Cache     config.CacheConfig

	Auth           *handler.AuthHandler
	Users          *handler.UserHandler
	PartnerClothes *handler.ClothHandler
	StylerClothes  *handler.ClothHandler
	Occasions      *handler.OccasionHandler
	Payments       *handler.PaymentHandler
	Profiles       *handler.ProfileHandler
}

const (
	styler  = model.RoleStyler
	partner = model.RolePartner
	admin   = model.RoleAdmin
)

// New builds the echo instance with the full route table.
func New(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handler.ErrorHandler(d.Log)
	e.Use(middleware.Recover(d.Log))
	e.Use(middleware.RequestLogger(d.Log))

	Register(e, d)
	return e
}

// Register adds every route to e.
func Register(e *echo.Echo, d Deps) {
	auth := middleware.Authenticate(d.Resolver)
	role := middleware.RequireRole

	e.GET("/healthz", handler.Health(d.DB))
	e.GET("/partners", d.Users.Partners)

	a := e.Group("/auth", middleware.NewTokenBucket(d.RateLimit, d.Redis, d.Log))
	a.POST("/register", d.Auth.Register)
	a.POST("/login", d.Auth.Login)
	a.GET("/profile", d.Auth.Profile, auth)
	a.POST("/logout", d.Auth.Logout, auth)

	adm := e.Group("/admin", auth, role(admin))
	adm.GET("/pending", d.Auth.Pending)
	adm.PUT("/approve/:id", d.Auth.Approve)

	pc := e.Group("/partnerclothes")
	pc.GET("/public", d.PartnerClothes.Public, middleware.NewRedisCache(d.Cache, d.Redis, d.Log))
	pc.GET("/mine", d.PartnerClothes.Mine, auth)
	pc.GET("/suggestions", d.PartnerClothes.Suggestions, auth, role(styler))
	pc.POST("", d.PartnerClothes.Create, auth, role(partner))
	pc.GET("/:id", d.PartnerClothes.Get, middleware.OptionalAuth(d.Resolver))
	pc.PUT("/:id", d.PartnerClothes.Update, auth, role(partner, admin))
	pc.DELETE("/:id", d.PartnerClothes.Delete, auth, role(partner, admin))

	sc := e.Group("/stylerclothes", auth, role(styler, admin))
	sc.GET("", d.StylerClothes.List)
	sc.GET("/mine", d.StylerClothes.Mine)
	sc.POST("", d.StylerClothes.Create)
	sc.GET("/:id", d.StylerClothes.Get)
	sc.PUT("/:id", d.StylerClothes.Update)
	sc.DELETE("/:id", d.StylerClothes.Delete)

	oc := e.Group("/occasion", auth, role(styler, partner, admin))
	oc.GET("", d.Occasions.List)
	oc.POST("", d.Occasions.Create, role(styler))
	oc.GET("/:id", d.Occasions.Get)
	oc.PUT("/:id", d.Occasions.Update)
	oc.DELETE("/:id", d.Occasions.Delete)

	pay := e.Group("/payment", auth, role(styler, partner, admin))
	pay.GET("", d.Payments.List)
	pay.POST("", d.Payments.Create, role(styler, partner))
	pay.GET("/:id", d.Payments.Get)
	pay.PUT("/:id", d.Payments.Update)
	pay.DELETE("/:id", d.Payments.Delete)

	pp := e.Group("/partner", auth)
	pp.GET("", d.Profiles.ListPartners, role(admin, partner))
	pp.POST("", d.Profiles.CreatePartner, role(partner))
	pp.GET("/:id", d.Profiles.GetPartner, role(admin, partner))
	pp.PUT("/:id", d.Profiles.UpdatePartner, role(partner, admin))
	pp.DELETE("/:id", d.Profiles.DeletePartner, role(partner, admin))

	sp := e.Group("/styler", auth)
	sp.POST("", d.Profiles.CreateStyler, role(styler))
	sp.GET("", d.Profiles.ListStylers, role(admin))
	sp.GET("/:id", d.Profiles.GetStyler, role(styler, admin))
	sp.PUT("/:id", d.Profiles.UpdateStyler, role(styler, admin))
	sp.DELETE("/:id", d.Profiles.DeleteStyler, role(styler, admin))

	u := e.Group("/users", auth)
	u.GET("/profile", d.Users.Profile)
	u.GET("/profile/:id", d.Users.Get)
	u.POST("", d.Users.Create, role(admin))
	u.GET("", d.Users.List, role(admin))
	u.GET("/:id", d.Users.Get, role(admin))
	u.PUT("/:id", d.Users.Update, role(admin))
	u.DELETE("/:id", d.Users.Delete, role(admin))
}
