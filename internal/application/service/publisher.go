package service

import (
	"context"

	"github.com/mozzabt/portfolio/internal/domain/portfolio"
)

// EventPublisher fans out override changes to whoever archives them.
type EventPublisher interface {
	PublishOverrideEvent(ctx context.Context, ev portfolio.OverrideEvent) error
}

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishOverrideEvent(context.Context, portfolio.OverrideEvent) error {
	return nil
}
