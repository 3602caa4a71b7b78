package backup

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mozzabt/portfolio/internal/application/service"
	"github.com/mozzabt/portfolio/internal/domain/portfolio"
	"github.com/mozzabt/portfolio/pkg/logger"
)

const archiveFolder = "backups/overrides"

// SnapshotSource reloads overrides from durable storage and exports them.
type SnapshotSource interface {
	Load(ctx context.Context) (portfolio.OverrideState, error)
	ExportSnapshot() (string, error)
}

// BackupUseCase archives the exported snapshot after every override change,
// so the hand-merge into the bundled dataset can happen from any machine.
type BackupUseCase struct {
	source   SnapshotSource
	uploader service.Uploader
	logger   logger.Logger
	now      func() time.Time

	mu       sync.Mutex
	keep     int
	archived []string // full public IDs, oldest first
}

type Option func(*BackupUseCase)

// WithRetention keeps only the newest keep archives uploaded by this process
// and deletes older ones. Zero or less keeps everything.
func WithRetention(keep int) Option {
	return func(uc *BackupUseCase) { uc.keep = keep }
}

func NewBackupUseCase(source SnapshotSource, uploader service.Uploader, log logger.Logger, opts ...Option) *BackupUseCase {
	uc := &BackupUseCase{
		source:   source,
		uploader: uploader,
		logger:   log,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

type BackupOutput struct {
	URL      string
	PublicID string
}

func (uc *BackupUseCase) Execute(ctx context.Context, ev portfolio.OverrideEvent) (*BackupOutput, error) {
	uc.logger.Info("Starting override snapshot archive...",
		zap.String("event_type", ev.EventType),
		zap.String("event_id", ev.EventID.String()),
	)

	// Another process wrote the slot; reload rather than trust memory.
	if _, err := uc.source.Load(ctx); err != nil {
		return nil, fmt.Errorf("reload overrides failed: %w", err)
	}

	snapshot, err := uc.source.ExportSnapshot()
	if err != nil {
		return nil, fmt.Errorf("export snapshot failed: %w", err)
	}

	timestamp := uc.now().UTC().Format("2006-01-02_15-04-05")
	publicID := fmt.Sprintf("snapshot-%s.json", timestamp)

	uploadURL, err := uc.uploader.Upload(ctx, strings.NewReader(snapshot), archiveFolder, publicID)
	if err != nil {
		return nil, fmt.Errorf("upload snapshot failed: %w", err)
	}

	uc.logger.Info("Override snapshot archived successfully",
		zap.String("url", uploadURL),
		zap.String("public_id", publicID),
	)
	uc.prune(ctx, archiveFolder+"/"+publicID)
	return &BackupOutput{URL: uploadURL, PublicID: publicID}, nil
}

// prune records the archive just written and deletes the oldest ones beyond
// the retention limit. Archives from earlier runs of the worker are left
// alone. A failed delete is logged and not retried.
func (uc *BackupUseCase) prune(ctx context.Context, fullID string) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	// same-second events overwrite the same asset
	if n := len(uc.archived); n > 0 && uc.archived[n-1] == fullID {
		return
	}
	uc.archived = append(uc.archived, fullID)
	if uc.keep <= 0 {
		return
	}
	for len(uc.archived) > uc.keep {
		oldest := uc.archived[0]
		uc.archived = uc.archived[1:]
		if err := uc.uploader.Delete(ctx, oldest); err != nil {
			uc.logger.Warn("Failed to delete old snapshot", zap.String("public_id", oldest), zap.Error(err))
			continue
		}
		uc.logger.Info("Deleted old snapshot", zap.String("public_id", oldest))
	}
}
