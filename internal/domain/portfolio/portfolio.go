package portfolio

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// Kind identifies one of the three override collections.
type Kind int

const (
	KindExperience Kind = iota + 1
	KindProject
	KindSkill
)

var ErrUnknownKind = errors.New("unknown collection kind")

func (k Kind) String() string {
	switch k {
	case KindExperience:
		return "experience"
	case KindProject:
		return "projects"
	case KindSkill:
		return "skills"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind accepts both singular and plural forms.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "experience", "experiences":
		return KindExperience, nil
	case "project", "projects":
		return KindProject, nil
	case "skill", "skills":
		return KindSkill, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Record is a value that can be layered in front of the bundled dataset.
type Record interface {
	Kind() Kind
	Validate() error
}

type ExperienceEntry struct {
	Role         string   `json:"role"`
	Company      string   `json:"company"`
	Period       string   `json:"period"`
	Location     string   `json:"location"`
	Type         string   `json:"type"`
	Achievements []string `json:"achievements" validate:"dive,notblank"`
}

type ProjectEntry struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Year        string   `json:"year"`
	Stack       []string `json:"stack" validate:"dive,notblank"`
	Impact      string   `json:"impact,omitempty"`
}

type SkillGroup struct {
	Category string   `json:"category"`
	Items    []string `json:"items" validate:"dive,notblank"`
}

func (ExperienceEntry) Kind() Kind { return KindExperience }
func (ProjectEntry) Kind() Kind    { return KindProject }
func (SkillGroup) Kind() Kind      { return KindSkill }

var ErrEmptyItem = errors.New("list items must not be blank")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	RegisterValidations(v)
	return v
}

// RegisterValidations teaches v the notblank rule and makes it report fields
// by their JSON names, so a failure reads "items[1]" rather than "Items[1]".
func RegisterValidations(v *validator.Validate) {
	v.RegisterTagNameFunc(jsonFieldName)
	// only fails on an empty tag name
	_ = v.RegisterValidation("notblank", validators.NotBlank)
}

func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	}
	return name
}

// Top-level labels may be empty; only list items are checked.
func (e ExperienceEntry) Validate() error {
	return ValidationError(validate.Struct(e))
}

func (p ProjectEntry) Validate() error {
	return ValidationError(validate.Struct(p))
}

func (s SkillGroup) Validate() error {
	return ValidationError(validate.Struct(s))
}

// ValidationError reduces validator failures to the first offending field,
// e.g. "stack[2]: list items must not be blank". Other errors pass through.
func ValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	if fe.Tag() == "notblank" {
		return fmt.Errorf("%s: %w", fe.Field(), ErrEmptyItem)
	}
	return fmt.Errorf("%s: failed %q rule", fe.Field(), fe.Tag())
}

// Normalize returns a copy with list items trimmed and nil lists replaced by
// empty ones, so stored collections always encode as [] rather than null.
func (e ExperienceEntry) Normalize() ExperienceEntry {
	e.Achievements = trimItems(e.Achievements)
	return e
}

func (p ProjectEntry) Normalize() ProjectEntry {
	p.Stack = trimItems(p.Stack)
	return p
}

func (s SkillGroup) Normalize() SkillGroup {
	s.Items = trimItems(s.Items)
	return s
}

func trimItems(items []string) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = strings.TrimSpace(it)
	}
	return out
}

// OverrideState is the locally added data, newest first in every collection.
type OverrideState struct {
	Experience []ExperienceEntry `json:"experience"`
	Projects   []ProjectEntry    `json:"projects"`
	Skills     []SkillGroup      `json:"skills"`
	HeroImage  string            `json:"hero_image"`
}

// EmptyState is what a first visit, or a wiped storage, yields.
func EmptyState() OverrideState {
	return OverrideState{
		Experience: []ExperienceEntry{},
		Projects:   []ProjectEntry{},
		Skills:     []SkillGroup{},
		HeroImage:  DefaultHeroImage,
	}
}

// Len returns the size of one override collection.
func (s OverrideState) Len(k Kind) int {
	switch k {
	case KindExperience:
		return len(s.Experience)
	case KindProject:
		return len(s.Projects)
	case KindSkill:
		return len(s.Skills)
	}
	return 0
}

// Snapshot is the export payload: override collections only.
type Snapshot struct {
	Experience []ExperienceEntry `json:"experience"`
	Projects   []ProjectEntry    `json:"projects"`
	Skills     []SkillGroup      `json:"skills"`
}

func (s OverrideState) Snapshot() Snapshot {
	return Snapshot{
		Experience: nonNil(s.Experience),
		Projects:   nonNil(s.Projects),
		Skills:     nonNil(s.Skills),
	}
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}

// SlotStorage is the durable per-operator key/value store behind the overrides.
// Read reports ok=false for an absent key; that is not an error.
type SlotStorage interface {
	Read(ctx context.Context, key string) (value string, ok bool, err error)
	Write(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

const DefaultNamespace = "mozza"

// SlotKeys names the four independent storage slots.
type SlotKeys struct {
	ProfileImage string
	Experience   string
	Projects     string
	Skills       string
}

func NewSlotKeys(namespace string) SlotKeys {
	if namespace = strings.TrimSpace(namespace); namespace == "" {
		namespace = DefaultNamespace
	}
	return SlotKeys{
		ProfileImage: namespace + "_profile_img",
		Experience:   namespace + "_custom_experience",
		Projects:     namespace + "_custom_projects",
		Skills:       namespace + "_custom_skills",
	}
}

func (k SlotKeys) For(kind Kind) (string, error) {
	switch kind {
	case KindExperience:
		return k.Experience, nil
	case KindProject:
		return k.Projects, nil
	case KindSkill:
		return k.Skills, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownKind, kind)
}
