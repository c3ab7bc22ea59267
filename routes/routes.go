package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotel-api/controllers"
	"hotel-api/middleware"
	"hotel-api/services"
)

// Deps is everything the router mounts.
type Deps struct {
	Log       *zap.Logger
	Origins   []string
	UploadDir string

	Auth     services.Authenticator
	AuthCtrl *controllers.AuthController
	Rooms    *controllers.RoomController
	Bookings *controllers.BookingController
	Menu     *controllers.MenuController
	Orders   *controllers.OrderController
	Events   *controllers.EventController
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(d.Log), middleware.Recovery(d.Log))

	if d.UploadDir != "" {
		r.Static("/uploads", d.UploadDir)
	}

	origins := d.Origins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Route not found"})
	})

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Server running successfully")
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	requireAuth := middleware.RequireAuth(d.Auth, d.Log)

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", d.AuthCtrl.Register)
			auth.POST("/login", d.AuthCtrl.Login)
			auth.GET("/me", requireAuth, d.AuthCtrl.Me)
		}

		mount(api.Group("/rooms"), d.Rooms.Rooms)
		mount(api.Group("/room-catalog"), d.Rooms.Catalog)

		bookings := api.Group("/bookings")
		{
			bookings.GET("", d.Bookings.List)
			// must be registered ahead of /:id
			bookings.GET("/mybookings", requireAuth, d.Bookings.MyBookings)
			bookings.POST("", requireAuth, d.Bookings.Create)
			bookings.GET("/:id", d.Bookings.Get)
			bookings.PUT("/:id", d.Bookings.Update)
			bookings.DELETE("/:id", d.Bookings.Delete)
		}

		mount(api.Group("/menu"), d.Menu.Resource)
		mount(api.Group("/orders"), d.Orders.Resource)
		mount(api.Group("/events"), d.Events.Resource)
	}

	return r
}

type crud interface {
	List(*gin.Context)
	Get(*gin.Context)
	Create(*gin.Context)
	Update(*gin.Context)
	Delete(*gin.Context)
}

func mount(g *gin.RouterGroup, h crud) {
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}
