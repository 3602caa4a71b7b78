package http

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	profileUC "github.com/mozzabt/portfolio/internal/application/usecase/profile"
	"github.com/mozzabt/portfolio/internal/domain/portfolio"
	"github.com/mozzabt/portfolio/pkg/logger"
)

const staticPrefix = "/static"

type PortfolioHandler struct {
	profileUseCase *profileUC.ProfileUseCase
	logger         logger.Logger
}

func NewPortfolioHandler(uc *profileUC.ProfileUseCase, log logger.Logger) *PortfolioHandler {
	return &PortfolioHandler{
		profileUseCase: uc,
		logger:         log,
	}
}

func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	output, err := h.profileUseCase.ExecuteGetPortfolio(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToPortfolioDTO(output.Profile, output.HeroImage, output.Merged))
}

// ListCollection serves one merged collection: overrides first, then bundled.
func (h *PortfolioHandler) ListCollection(kind portfolio.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		output, err := h.profileUseCase.ExecuteGetCollection(c.Request.Context(), profileUC.GetCollectionInput{Kind: kind})
		if err != nil {
			c.Error(err)
			return
		}
		switch kind {
		case portfolio.KindExperience:
			c.JSON(http.StatusOK, output.Experience)
		case portfolio.KindProject:
			c.JSON(http.StatusOK, output.Projects)
		case portfolio.KindSkill:
			c.JSON(http.StatusOK, output.Skills)
		}
	}
}

// Index renders the single page.
func (h *PortfolioHandler) Index(c *gin.Context) {
	output, err := h.profileUseCase.ExecuteGetPortfolio(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.HTML(http.StatusOK, "index.html", gin.H{
		"profile":  output.Profile,
		"heroSrc":  heroSrc(output.HeroImage),
		"fallback": portfolio.FallbackHeroImageURL,
		"merged":   output.Merged,
		"sections": []string{"about", "experience", "skills", "projects", "contact"},
	})
}

// heroSrc marks the resolved hero image as a trusted URL so html/template
// keeps data URIs intact.
func heroSrc(image string) template.URL {
	return template.URL(portfolio.HeroImageSrc(image, staticPrefix))
}
