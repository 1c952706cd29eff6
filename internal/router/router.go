package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/quizdeck/quizdeck-backend/internal/config"
	"github.com/quizdeck/quizdeck-backend/internal/handler"
	"github.com/quizdeck/quizdeck-backend/internal/middleware"
	"github.com/quizdeck/quizdeck-backend/internal/response"
	"github.com/quizdeck/quizdeck-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Quiz     *handler.QuizHandler
	Template *handler.TemplateHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
// Every API route requires an authenticated caller; /health is public.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	api.Use(middleware.RequireAuth(authService))

	// Quiz taking.
	quizzes := api.Group("/quizzes")
	{
		quizzes.POST("/:quiz_id/submissions", handlers.Quiz.SubmitQuiz)
		quizzes.GET("/:quiz_id/questions", handlers.Quiz.GetQuestions)
	}

	// Template authoring.
	templates := api.Group("/templates")
	{
		templates.POST("", handlers.Template.CreateTemplate)
		templates.GET("", handlers.Template.ListTemplates)
		templates.GET("/:template_id", handlers.Template.GetTemplate)
		templates.PATCH("/:template_id", handlers.Template.UpdateTemplate)
		templates.DELETE("/:template_id", handlers.Template.DeleteTemplate)
		templates.POST("/:template_id/duplicate", handlers.Template.DuplicateTemplate)
		templates.GET("/:template_id/stats", handlers.Template.GetTemplateStats)
		templates.POST("/:template_id/quizzes", handlers.Template.CreateQuizFromTemplate)
	}

	// Public template browsing, kept outside /templates so the static path
	// never competes with the :template_id wildcard.
	api.GET("/public/templates", handlers.Template.ListPublicTemplates)

	return router
}
