package override

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/mozzabt/portfolio/internal/application/service"
	"github.com/mozzabt/portfolio/internal/domain/portfolio"
	"github.com/mozzabt/portfolio/pkg/apperror"
	"github.com/mozzabt/portfolio/pkg/logger"
)

// Store owns the three override collections and the hero image override,
// each mirrored to its own storage slot. One Store per storage namespace.
//
// Mutations write the slot first and only then update memory, so a failed
// write leaves both sides at the last persisted value.
type Store struct {
	mu        sync.Mutex
	storage   portfolio.SlotStorage
	keys      portfolio.SlotKeys
	publisher service.EventPublisher
	logger    logger.Logger
	tracer    trace.Tracer
	strict    bool
	state     portfolio.OverrideState
}

type Option func(*Store)

// WithStrictDecode makes Load fail on a corrupted slot instead of resetting
// that slot to its empty default.
func WithStrictDecode(strict bool) Option {
	return func(s *Store) { s.strict = strict }
}

func NewStore(
	storage portfolio.SlotStorage,
	keys portfolio.SlotKeys,
	publisher service.EventPublisher,
	log logger.Logger,
	opts ...Option,
) *Store {
	if publisher == nil {
		publisher = service.NoopPublisher{}
	}
	s := &Store{
		storage:   storage,
		keys:      keys,
		publisher: publisher,
		logger:    log,
		tracer:    otel.Tracer("github.com/mozzabt/portfolio/override"),
		state:     portfolio.EmptyState(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load rehydrates every slot from storage. Absent or empty slots yield the
// empty default.
func (s *Store) Load(ctx context.Context) (state portfolio.OverrideState, err error) {
	ctx, span := s.tracer.Start(ctx, "override.Load")
	defer func() { endSpan(span, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	next := portfolio.EmptyState()

	hero, ok, err := s.storage.Read(ctx, s.keys.ProfileImage)
	if err != nil {
		return cloneState(s.state), storageError(fmt.Sprintf("failed to read slot %s", s.keys.ProfileImage), err)
	}
	if ok && hero != "" {
		next.HeroImage = hero
	}

	if next.Experience, err = loadSlot[portfolio.ExperienceEntry](ctx, s, s.keys.Experience); err != nil {
		return cloneState(s.state), err
	}
	if next.Projects, err = loadSlot[portfolio.ProjectEntry](ctx, s, s.keys.Projects); err != nil {
		return cloneState(s.state), err
	}
	if next.Skills, err = loadSlot[portfolio.SkillGroup](ctx, s, s.keys.Skills); err != nil {
		return cloneState(s.state), err
	}

	s.state = next
	s.logger.Debug("Override state loaded",
		zap.Int("experience", len(next.Experience)),
		zap.Int("projects", len(next.Projects)),
		zap.Int("skills", len(next.Skills)),
	)
	return cloneState(next), nil
}

func loadSlot[T any](ctx context.Context, s *Store, key string) ([]T, error) {
	raw, ok, err := s.storage.Read(ctx, key)
	if err != nil {
		return nil, storageError(fmt.Sprintf("failed to read slot %s", key), err)
	}
	if !ok || raw == "" {
		return []T{}, nil
	}

	var out []T
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		decodeErr := &DecodeError{Slot: key, Err: err}
		if s.strict {
			return nil, apperror.NewInternal("corrupted override slot", decodeErr)
		}
		s.logger.Warn("Discarding undecodable override slot", zap.String("slot", key), zap.Error(err))
		return []T{}, nil
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// Add prepends rec to the collection of its kind and persists that collection.
func (s *Store) Add(ctx context.Context, rec portfolio.Record) (state portfolio.OverrideState, err error) {
	rec, err = deref(rec)
	if err != nil {
		return s.State(), err
	}
	if err := rec.Validate(); err != nil {
		return s.State(), apperror.NewInvalidInput(err.Error(), err)
	}

	ctx, span := s.tracer.Start(ctx, "override.Add", trace.WithAttributes(attribute.String("override.kind", rec.Kind().String())))
	defer func() { endSpan(span, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state
	var key string
	switch r := rec.(type) {
	case portfolio.ExperienceEntry:
		key = s.keys.Experience
		next.Experience = prepend(r.Normalize(), s.state.Experience)
		err = s.commit(ctx, key, next.Experience)
	case portfolio.ProjectEntry:
		key = s.keys.Projects
		next.Projects = prepend(r.Normalize(), s.state.Projects)
		err = s.commit(ctx, key, next.Projects)
	case portfolio.SkillGroup:
		key = s.keys.Skills
		next.Skills = prepend(r.Normalize(), s.state.Skills)
		err = s.commit(ctx, key, next.Skills)
	}
	if err != nil {
		return cloneState(s.state), err
	}

	s.state = next
	s.publish(portfolio.NewOverrideEvent(portfolio.EventTypeOverrideAdded, key, rec.Kind(), 0))
	return cloneState(next), nil
}

func (s *Store) AddExperience(ctx context.Context, e portfolio.ExperienceEntry) (portfolio.OverrideState, error) {
	return s.Add(ctx, e)
}

func (s *Store) AddProject(ctx context.Context, p portfolio.ProjectEntry) (portfolio.OverrideState, error) {
	return s.Add(ctx, p)
}

func (s *Store) AddSkill(ctx context.Context, g portfolio.SkillGroup) (portfolio.OverrideState, error) {
	return s.Add(ctx, g)
}

// Delete removes the element at index from the override collection of kind.
// The index addresses the override collection, never the merged view. An
// index outside the collection removes nothing.
func (s *Store) Delete(ctx context.Context, kind portfolio.Kind, index int) (state portfolio.OverrideState, err error) {
	key, err := s.keys.For(kind)
	if err != nil {
		return s.State(), apperror.NewInvalidInput(err.Error(), err)
	}

	ctx, span := s.tracer.Start(ctx, "override.Delete", trace.WithAttributes(
		attribute.String("override.kind", kind.String()),
		attribute.Int("override.index", index),
	))
	defer func() { endSpan(span, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := index >= 0 && index < s.state.Len(kind)
	next := s.state
	switch kind {
	case portfolio.KindExperience:
		next.Experience = removeAt(s.state.Experience, index)
		err = s.commit(ctx, key, next.Experience)
	case portfolio.KindProject:
		next.Projects = removeAt(s.state.Projects, index)
		err = s.commit(ctx, key, next.Projects)
	case portfolio.KindSkill:
		next.Skills = removeAt(s.state.Skills, index)
		err = s.commit(ctx, key, next.Skills)
	}
	if err != nil {
		return cloneState(s.state), err
	}

	s.state = next
	if removed {
		s.publish(portfolio.NewOverrideEvent(portfolio.EventTypeOverrideDeleted, key, kind, index))
	}
	return cloneState(next), nil
}

// SetHeroImage stores a self-contained image (usually a data URI) as the
// hero image override.
func (s *Store) SetHeroImage(ctx context.Context, dataURI string) (err error) {
	if strings.TrimSpace(dataURI) == "" {
		return apperror.NewInvalidInput("hero image must not be empty", nil)
	}

	ctx, span := s.tracer.Start(ctx, "override.SetHeroImage", trace.WithAttributes(attribute.Int("override.hero_bytes", len(dataURI))))
	defer func() { endSpan(span, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Write(ctx, s.keys.ProfileImage, dataURI); err != nil {
		return storageError(fmt.Sprintf("failed to write slot %s", s.keys.ProfileImage), err)
	}
	s.state.HeroImage = dataURI
	s.publish(portfolio.NewOverrideEvent(portfolio.EventTypeHeroUpdated, s.keys.ProfileImage, 0, 0))
	return nil
}

// ResetHeroImage drops the hero override slot and restores the default image.
func (s *Store) ResetHeroImage(ctx context.Context) (err error) {
	ctx, span := s.tracer.Start(ctx, "override.ResetHeroImage")
	defer func() { endSpan(span, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Remove(ctx, s.keys.ProfileImage); err != nil {
		return storageError(fmt.Sprintf("failed to remove slot %s", s.keys.ProfileImage), err)
	}
	s.state.HeroImage = portfolio.DefaultHeroImage
	s.publish(portfolio.NewOverrideEvent(portfolio.EventTypeHeroReset, s.keys.ProfileImage, 0, 0))
	return nil
}

func (s *Store) HeroImage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.HeroImage
}

// State returns a copy of the in-memory override state.
func (s *Store) State() portfolio.OverrideState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneState(s.state)
}

// Merged layers the current overrides in front of bundled.
func (s *Store) Merged(bundled portfolio.BundledDataset) portfolio.MergedView {
	return portfolio.NewMergedView(s.State(), bundled)
}

// ExportSnapshot renders the override collections, and nothing bundled, as
// indented JSON ready to be pasted into the bundled dataset by hand.
func (s *Store) ExportSnapshot() (string, error) {
	snap := s.State().Snapshot()
	raw, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", apperror.NewInternal("failed to encode snapshot", err)
	}
	return string(raw), nil
}

func (s *Store) commit(ctx context.Context, key string, list any) error {
	raw, err := json.Marshal(list)
	if err != nil {
		return apperror.NewInternal(fmt.Sprintf("failed to encode slot %s", key), err)
	}
	if err := s.storage.Write(ctx, key, string(raw)); err != nil {
		return storageError(fmt.Sprintf("failed to write slot %s", key), err)
	}
	return nil
}

func (s *Store) publish(ev portfolio.OverrideEvent) {
	go func() {
		if err := s.publisher.PublishOverrideEvent(context.Background(), ev); err != nil {
			s.logger.Error("Failed to publish override event", err,
				zap.String("event_type", ev.EventType),
				zap.String("slot", ev.Slot),
			)
		}
	}()
}

// storageError keeps an unavailable backend distinguishable from a broken one.
func storageError(msg string, err error) error {
	if errors.Is(err, apperror.ErrUnavailable) {
		return apperror.NewUnavailable(msg, err)
	}
	return apperror.NewInternal(msg, err)
}

func deref(rec portfolio.Record) (portfolio.Record, error) {
	switch r := rec.(type) {
	case portfolio.ExperienceEntry, portfolio.ProjectEntry, portfolio.SkillGroup:
		return rec, nil
	case *portfolio.ExperienceEntry:
		if r != nil {
			return *r, nil
		}
	case *portfolio.ProjectEntry:
		if r != nil {
			return *r, nil
		}
	case *portfolio.SkillGroup:
		if r != nil {
			return *r, nil
		}
	}
	return nil, apperror.NewInvalidInput(fmt.Sprintf("unsupported record %T", rec), portfolio.ErrUnknownKind)
}

func prepend[T any](item T, list []T) []T {
	out := make([]T, 0, len(list)+1)
	out = append(out, item)
	return append(out, list...)
}

func removeAt[T any](list []T, index int) []T {
	out := make([]T, 0, len(list))
	for i, v := range list {
		if i != index {
			out = append(out, v)
		}
	}
	return out
}

func cloneState(st portfolio.OverrideState) portfolio.OverrideState {
	st.Experience = slices.Clone(st.Experience)
	st.Projects = slices.Clone(st.Projects)
	st.Skills = slices.Clone(st.Skills)
	return st
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
