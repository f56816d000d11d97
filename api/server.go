package api

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ininahazwe/mfwa-memorial/auth"
	"github.com/ininahazwe/mfwa-memorial/handler"
	"github.com/ininahazwe/mfwa-memorial/middleware"
)

// Deps is everything the router needs wired in.
type Deps struct {
	Auth    *handler.AuthHandler
	Records *handler.RecordHandler
	Photos  *handler.PhotoHandler
	Gate    *auth.Gate
}

func Setup(deps Deps) *gin.Engine {
	r := gin.Default()

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowCredentials = false
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	r.Use(cors.New(config))

	r.Use(middleware.PrometheusMiddleware("memorial-admin"))

	// Health check routes
	r.GET("/", healthCheck)
	r.GET("/health", healthCheck)
	r.GET("/ready", healthCheck)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Session gate routes
	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/login", deps.Auth.Login)
		authRoutes.POST("/logout", deps.Auth.Logout)
		authRoutes.GET("/check", deps.Auth.Check)
		authRoutes.GET("/identity", deps.Auth.Identity)
		authRoutes.GET("/permissions", deps.Auth.Permissions)
	}

	// Record routes, admin only
	admin := r.Group("/admin-api")
	admin.Use(middleware.RequireAdmin(deps.Gate))
	{
		admin.GET("/journalists", deps.Records.ListJournalists)
		admin.POST("/journalists", deps.Records.CreateJournalist)
		admin.GET("/journalists/:id", deps.Records.GetJournalist)
		admin.PUT("/journalists/:id", deps.Records.UpdateJournalist)
		admin.DELETE("/journalists/:id", deps.Records.DeleteJournalist)

		admin.GET("/countries", deps.Records.ListCountries)
		admin.POST("/countries", deps.Records.CreateCountry)
		admin.GET("/countries/:id", deps.Records.GetCountry)
		admin.PUT("/countries/:id", deps.Records.UpdateCountry)
		admin.DELETE("/countries/:id", deps.Records.DeleteCountry)

		admin.POST("/photos", deps.Photos.Upload)
	}

	// Public blob reads, embedded by the memorial site
	r.GET("/media/files/:name", deps.Photos.Serve)

	return r
}

func StartServer(deps Deps, port string) {
	r := Setup(deps)

	log.Printf("Memorial admin API is running at :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(200, gin.H{"status": "healthy", "service": "memorial-admin"})
}
