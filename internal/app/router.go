package app

import (
	"github.com/Shibo14/ielts-mock/internal/config"
	"github.com/Shibo14/ielts-mock/internal/middleware"
	"github.com/Shibo14/ielts-mock/internal/model"
	"github.com/Shibo14/ielts-mock/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerStudentRoutes(authGroup, c)
		a.registerAdminRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/login", c.auth.Login)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)

	rg.GET("/tests", c.test.ListTests)
	rg.GET("/tests/:slug", c.test.GetTest)
	rg.POST("/tests/:slug/start", c.submission.Start)

	rg.GET("/submissions", c.submission.ListMine)
	rg.GET("/submissions/:id/paper", c.submission.GetPaper)
	rg.POST("/submissions/:id/finish", c.submission.Finish)
	rg.GET("/submissions/:id/result", c.submission.Result)

	// the exam page posts here on every input change
	rg.POST("/answer", c.submission.SaveAnswer)

	// auth via ?token=, the <audio> element cannot send headers
	rg.GET("/audio/:filename", c.audio.Serve)
}

func (a *App) registerAdminRoutes(rg *gin.RouterGroup, c *controllers) {
	admin := rg.Group("/admin")
	admin.Use(middleware.RoleMiddleware(model.Admin))
	{
		admin.POST("/tests", c.admin.CreateTest)
		admin.POST("/tests/:slug/audio", c.admin.UploadAudio)
		admin.POST("/tests/:slug/questions", c.admin.ImportQuestions)
		admin.GET("/results", c.admin.ListResults)
	}
}
