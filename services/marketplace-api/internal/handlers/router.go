package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/you/agrigo/pkg/ratelimit"
	"github.com/you/agrigo/services/marketplace-api/internal/domain"
	mw "github.com/you/agrigo/services/marketplace-api/internal/middlewares"
	"github.com/you/agrigo/services/marketplace-api/internal/service"
)

type Deps struct {
	Auth      *service.AuthSvc
	Resources *service.ResourceSvc
	Bookings  *service.BookingSvc
	Chats     *service.ChatSvc
	Recommend *service.RecommendSvc

	// AuthLimiter guards register and login; nil disables limiting.
	AuthLimiter ratelimit.Limiter
	Origins     []string
	ServiceName string
	BaseURL     string
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), mw.Tracing(d.ServiceName), mw.RequestLogger(), mw.CORS(d.Origins))

	r.GET("/health", Health)
	r.GET("/api/docs", Docs(d.BaseURL))

	jwt := mw.JWTAuth(d.Auth)
	limited := func(h gin.HandlerFunc) []gin.HandlerFunc {
		if d.AuthLimiter == nil {
			return []gin.HandlerFunc{h}
		}
		return []gin.HandlerFunc{mw.RateLimit(d.AuthLimiter), h}
	}

	a := NewAuthHandler(d.Auth)
	auth := r.Group("/auth")
	{
		auth.POST("/register", limited(a.Register)...)
		auth.POST("/login", limited(a.Login)...)
		auth.POST("/refresh", a.Refresh)
		auth.GET("/profile", jwt, a.Profile)
		auth.PUT("/profile", jwt, a.UpdateProfile)
	}

	rh := NewResourceHandler(d.Resources)
	provider := mw.RequireRole(domain.RoleProvider)
	res := r.Group("/resources")
	{
		res.GET("", rh.List)
		res.GET("/:id", rh.Get)
		res.POST("", jwt, provider, rh.Create)
		res.PUT("/:id", jwt, provider, rh.Update)
		res.DELETE("/:id", jwt, provider, rh.Delete)
	}

	bh := NewBookingHandler(d.Bookings)
	farmer := mw.RequireRole(domain.RoleFarmer)
	bk := r.Group("/bookings")
	bk.Use(jwt)
	{
		bk.POST("", farmer, bh.Create)
		bk.GET("", bh.List)
		bk.GET("/:id", bh.Get)
		bk.PUT("/:id/status", bh.UpdateStatus)
		bk.PUT("/:id/cancel", farmer, bh.Cancel)
	}

	ch := NewChatHandler(d.Chats)
	chats := r.Group("/chats")
	chats.Use(jwt)
	{
		chats.POST("", ch.Send)
		chats.GET("/:booking_id", ch.Messages)
		chats.PUT("/:booking_id/read", ch.MarkRead)
	}

	r.GET("/ml/recommendations", NewRecommendHandler(d.Recommend).List)

	r.NoRoute(NotFound)
	return r
}
