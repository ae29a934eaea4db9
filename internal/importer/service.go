package importer

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/compliance-management/internal"
	"github.com/frahmantamala/compliance-management/internal/core/events"
	"github.com/frahmantamala/compliance-management/internal/staff"
)

// RecordStore is the slice of the staff repository the engine needs: the full
// current set for matching, and an atomic batch write for applying.
type RecordStore interface {
	GetAll() ([]*staff.StaffRecord, error)
	UpsertBatch(records []*staff.StaffRecord) error
}

type EventPublisher interface {
	PublishSync(ctx context.Context, event events.Event) error
}

type ImportResult struct {
	NewCount     int `json:"new_count"`
	UpdatedCount int `json:"updated_count"`
	SkippedRows  int `json:"skipped_rows"`
}

type Service struct {
	store     RecordStore
	publisher EventPublisher
	logger    *slog.Logger
	now       func() time.Time
}

func NewService(store RecordStore, publisher EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		store:     store,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// Import runs one reconciliation pass: parse the workbook, merge against the
// known record set, and apply the staged upserts as a single batch. Nothing
// is written when parsing or validation fails.
func (s *Service) Import(ctx context.Context, filename string, data []byte) (*ImportResult, error) {
	rows, err := ParseWorkbook(filename, data)
	if err != nil {
		s.logger.Error("workbook parse failed", "error", err, "filename", filename)
		return nil, err
	}

	existing, err := s.store.GetAll()
	if err != nil {
		s.logger.Error("failed to load existing records", "error", err)
		return nil, err
	}

	batch, err := Reconcile(rows, existing, s.now())
	if err != nil {
		return nil, err
	}

	if len(batch.Upserts) > 0 {
		if err := s.store.UpsertBatch(batch.Upserts); err != nil {
			s.logger.Error("import batch write failed", "error", err,
				"staged", len(batch.Upserts))
			return nil, err
		}
	}

	if s.publisher != nil {
		event := events.NewBulkImport(batch.NewCount, batch.UpdatedCount, internal.ActorFromContext(ctx))
		if err := s.publisher.PublishSync(ctx, event); err != nil {
			s.logger.Error("failed to publish import event", "error", err)
		}
	}

	s.logger.Info("bulk import applied",
		"filename", filename,
		"new", batch.NewCount,
		"updated", batch.UpdatedCount,
		"skipped_rows", batch.SkippedRows)

	return &ImportResult{
		NewCount:     batch.NewCount,
		UpdatedCount: batch.UpdatedCount,
		SkippedRows:  batch.SkippedRows,
	}, nil
}
