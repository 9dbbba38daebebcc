package router

import (
	"ClassroomAnswerLog/internal/auth"
	"ClassroomAnswerLog/internal/handler"
	"ClassroomAnswerLog/internal/middleware"
	"ClassroomAnswerLog/pkg/monitoring"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Options configures the outer surface. RatePerSecond and RateBurst apply to
// each student's submissions; the Login pair applies per client address.
type Options struct {
	AllowedOrigins []string
	RatePerSecond  float64
	RateBurst      int
	LoginPerSecond float64
	LoginBurst     int
}

func New(h *handler.Handler, opts Options) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), monitoring.MetricsMiddleware())

	config := cors.DefaultConfig()
	if len(opts.AllowedOrigins) == 0 || (len(opts.AllowedOrigins) == 1 && opts.AllowedOrigins[0] == "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = opts.AllowedOrigins
	}
	config.AllowHeaders = append(config.AllowHeaders, "Authorization")
	router.Use(cors.New(config))

	loginLimiter := middleware.RateLimitByIP(opts.LoginPerSecond, opts.LoginBurst)
	submitLimiter := middleware.RateLimitByStudent(opts.RatePerSecond, opts.RateBurst)

	router.GET("/health", h.Health)
	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.POST("/login", loginLimiter, h.StudentLogin)
	router.POST("/teacher/login", loginLimiter, h.TeacherLogin)

	api := router.Group("/api")
	{
		api.POST("/submissions", middleware.AuthMiddleware(auth.RoleStudent), submitLimiter, h.Submit)
		api.GET("/progress", middleware.AuthMiddleware(), h.GetProgress)
		api.GET("/teacher/submissions", middleware.AuthMiddleware(auth.RoleTeacher), h.ListSubmissions)
	}

	router.GET("/ws/feed", h.HandleFeed)
	return router
}
