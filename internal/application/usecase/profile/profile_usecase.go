package profile

import (
	"context"

	"github.com/mozzabt/portfolio/internal/domain/portfolio"
	"github.com/mozzabt/portfolio/pkg/apperror"
)

// OverrideReader is the read side of the override store.
type OverrideReader interface {
	State() portfolio.OverrideState
}

// ProfileUseCase assembles what the public page shows: bundled profile
// metadata plus overrides layered over bundled collections.
type ProfileUseCase struct {
	overrides OverrideReader
	bundled   func() portfolio.BundledDataset
}

func NewProfileUseCase(overrides OverrideReader, bundled func() portfolio.BundledDataset) *ProfileUseCase {
	if bundled == nil {
		bundled = portfolio.Bundled
	}
	return &ProfileUseCase{
		overrides: overrides,
		bundled:   bundled,
	}
}

type GetPortfolioOutput struct {
	Profile   portfolio.Profile
	HeroImage string
	Merged    portfolio.MergedView
}

func (uc *ProfileUseCase) ExecuteGetPortfolio(ctx context.Context) (*GetPortfolioOutput, error) {
	state := uc.overrides.State()
	data := uc.bundled()
	return &GetPortfolioOutput{
		Profile:   data.Profile,
		HeroImage: state.HeroImage,
		Merged:    portfolio.NewMergedView(state, data),
	}, nil
}

type GetCollectionInput struct {
	Kind portfolio.Kind
}

// GetCollectionOutput carries exactly one merged collection, picked by Kind.
type GetCollectionOutput struct {
	Kind       portfolio.Kind
	Experience []portfolio.ExperienceEntry
	Projects   []portfolio.ProjectEntry
	Skills     []portfolio.SkillGroup
}

func (uc *ProfileUseCase) ExecuteGetCollection(ctx context.Context, input GetCollectionInput) (*GetCollectionOutput, error) {
	merged := portfolio.NewMergedView(uc.overrides.State(), uc.bundled())
	out := &GetCollectionOutput{Kind: input.Kind}
	switch input.Kind {
	case portfolio.KindExperience:
		out.Experience = merged.Experience
	case portfolio.KindProject:
		out.Projects = merged.Projects
	case portfolio.KindSkill:
		out.Skills = merged.Skills
	default:
		return nil, apperror.NewInvalidInput("unknown collection", portfolio.ErrUnknownKind)
	}
	return out, nil
}
