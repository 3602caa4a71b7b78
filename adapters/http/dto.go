package http

import (
	"strconv"
	"time"

	"github.com/mozzabt/portfolio/internal/domain/portfolio"
)

const DefaultExperienceType = "Professional"

// Override requests

type ExperienceRequest struct {
	Role         string   `json:"role"`
	Company      string   `json:"company"`
	Period       string   `json:"period"`
	Location     string   `json:"location"`
	Type         string   `json:"type"`
	Achievements []string `json:"achievements" binding:"dive,notblank"`
}

func (r ExperienceRequest) ToDomain() portfolio.ExperienceEntry {
	entryType := r.Type
	if entryType == "" {
		entryType = DefaultExperienceType
	}
	return portfolio.ExperienceEntry{
		Role:         r.Role,
		Company:      r.Company,
		Period:       r.Period,
		Location:     r.Location,
		Type:         entryType,
		Achievements: r.Achievements,
	}
}

type ProjectRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Year        string   `json:"year"`
	Stack       []string `json:"stack" binding:"dive,notblank"`
	Impact      string   `json:"impact"`
}

// ToDomain fills an omitted year with the current calendar year.
func (r ProjectRequest) ToDomain(now time.Time) portfolio.ProjectEntry {
	year := r.Year
	if year == "" {
		year = strconv.Itoa(now.Year())
	}
	return portfolio.ProjectEntry{
		Title:       r.Title,
		Description: r.Description,
		Year:        year,
		Stack:       r.Stack,
		Impact:      r.Impact,
	}
}

type SkillRequest struct {
	Category string   `json:"category"`
	Items    []string `json:"items" binding:"dive,notblank"`
}

func (r SkillRequest) ToDomain() portfolio.SkillGroup {
	return portfolio.SkillGroup{Category: r.Category, Items: r.Items}
}

// Override responses

type OverrideStateDTO struct {
	Experience []portfolio.ExperienceEntry `json:"experience"`
	Projects   []portfolio.ProjectEntry    `json:"projects"`
	Skills     []portfolio.SkillGroup      `json:"skills"`
	HeroImage  string                      `json:"hero_image"`
	IsDefault  bool                        `json:"hero_image_is_default"`
}

func ToOverrideStateDTO(s portfolio.OverrideState) OverrideStateDTO {
	snap := s.Snapshot()
	return OverrideStateDTO{
		Experience: snap.Experience,
		Projects:   snap.Projects,
		Skills:     snap.Skills,
		HeroImage:  s.HeroImage,
		IsDefault:  s.HeroImage == portfolio.DefaultHeroImage,
	}
}

// Public portfolio DTOs

type PortfolioDTO struct {
	Profile       portfolio.Profile           `json:"profile"`
	HeroImage     string                      `json:"hero_image"`
	HeroImageSrc  string                      `json:"hero_image_src"`
	FallbackImage string                      `json:"fallback_image"`
	Experience    []portfolio.ExperienceEntry `json:"experience"`
	Projects      []portfolio.ProjectEntry    `json:"projects"`
	Skills        []portfolio.SkillGroup      `json:"skills"`
}

func ToPortfolioDTO(profile portfolio.Profile, heroImage string, merged portfolio.MergedView) PortfolioDTO {
	return PortfolioDTO{
		Profile:       profile,
		HeroImage:     heroImage,
		HeroImageSrc:  portfolio.HeroImageSrc(heroImage, staticPrefix),
		FallbackImage: portfolio.FallbackHeroImageURL,
		Experience:    merged.Experience,
		Projects:      merged.Projects,
		Skills:        merged.Skills,
	}
}
