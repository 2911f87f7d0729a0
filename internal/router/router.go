package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/cpusim/schedview/internal/config"
	"github.com/cpusim/schedview/internal/handler"
	"github.com/cpusim/schedview/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Session    *handler.SessionHandler
	Process    *handler.ProcessHandler
	Simulation *handler.SimulationHandler
	Quiz       *handler.QuizHandler
	WS         *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(handlers *Handlers, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// ─── Session API ───────────────────────────────────────────────────
	sessions := router.Group("/api/v1/sessions")
	{
		sessions.POST("", handlers.Session.CreateSession)
		sessions.GET("/:id", handlers.Session.GetSession)
		sessions.DELETE("/:id", handlers.Session.DeleteSession)

		// Process editing
		sessions.PUT("/:id/processes", handlers.Process.ReplaceProcesses)
		sessions.POST("/:id/processes", handlers.Process.AddProcess)
		sessions.DELETE("/:id/processes/:pid", handlers.Process.RemoveProcess)

		// Simulation
		sessions.POST("/:id/simulate", handlers.Simulation.Simulate)

		// Quiz mode
		sessions.POST("/:id/quiz/start", handlers.Quiz.StartQuiz)
		sessions.POST("/:id/quiz/again", handlers.Quiz.StartQuiz)
		sessions.POST("/:id/quiz/submit", handlers.Quiz.SubmitAnswers)
		sessions.POST("/:id/quiz/exit", handlers.Quiz.ExitQuiz)
	}

	// ─── WebSocket stream ──────────────────────────────────────────────
	ws := router.Group("/ws/v1")
	{
		ws.GET("/sessions/:id/stream", handlers.WS.StreamSession)
	}

	return router
}
