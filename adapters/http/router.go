package http

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/mozzabt/portfolio/internal/domain/portfolio"
	"github.com/mozzabt/portfolio/pkg/apperror"
	"github.com/mozzabt/portfolio/pkg/logger"
)

//go:embed templates/*.html
var templatesFS embed.FS

type RouterDeps struct {
	PortfolioHandler *PortfolioHandler
	AdminHandler     *AdminHandler
	Logger           logger.Logger
	StaticDir        string
}

func NewRouter(deps RouterDeps) *gin.Engine {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		portfolio.RegisterValidations(v)
	}

	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(deps.Logger), ErrorMiddleware(deps.Logger))
	router.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/*.html")))

	if deps.StaticDir != "" {
		router.Static(staticPrefix, deps.StaticDir)
	}

	router.NoRoute(func(c *gin.Context) {
		c.Error(apperror.NewNotFound("route", c.Request.URL.Path))
	})

	router.GET("/", deps.PortfolioHandler.Index)

	api := router.Group("/api")
	{
		public := api.Group("/")
		{
			public.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })
			public.GET("/portfolio", deps.PortfolioHandler.GetPortfolio)
			public.GET("/experience", deps.PortfolioHandler.ListCollection(portfolio.KindExperience))
			public.GET("/projects", deps.PortfolioHandler.ListCollection(portfolio.KindProject))
			public.GET("/skills", deps.PortfolioHandler.ListCollection(portfolio.KindSkill))
		}

		admin := api.Group("/admin")
		{
			admin.GET("/overrides", deps.AdminHandler.GetOverrides)
			admin.POST("/overrides/:kind", deps.AdminHandler.AddOverride)
			admin.DELETE("/overrides/:kind/:index", deps.AdminHandler.DeleteOverride)
			admin.PUT("/hero-image", deps.AdminHandler.UploadHeroImage)
			admin.DELETE("/hero-image", deps.AdminHandler.ResetHeroImage)
			admin.GET("/export", deps.AdminHandler.Export)
		}
	}

	return router
}
