package portal

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/compliance-management/internal"
	"github.com/frahmantamala/compliance-management/internal/core/events"
	"github.com/frahmantamala/compliance-management/internal/staff"
)

type RecordStore interface {
	GetByEmail(email string) (*staff.StaffRecord, error)
	Save(record *staff.StaffRecord) error
}

type EventPublisher interface {
	PublishSync(ctx context.Context, event events.Event) error
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

// Lookup resolves an email to its public compliance view. An unknown email is
// not an error: the portal reports exists=false and nothing else.
func (s *Service) Lookup(email string) (*LookupResult, error) {
	record, err := s.store.GetByEmail(email)
	if err != nil {
		if err == internal.ErrRecordNotFound {
			return &LookupResult{Exists: false}, nil
		}
		s.logger.Error("portal lookup failed", "error", err)
		return nil, err
	}
	return lookupResultFor(record), nil
}

// UploadUndertaking marks the record as having returned its signed
// undertaking. The document itself is not stored; only the fact and the file
// name survive, the latter in the audit trail. Refused once the undertaking
// is already on file.
func (s *Service) UploadUndertaking(ctx context.Context, email, fileName string) (*LookupResult, error) {
	record, err := s.store.GetByEmail(email)
	if err != nil {
		return nil, err
	}

	if record.UndertakingReceived {
		return nil, internal.ErrUploadNotPermitted
	}

	record.ApplyCompliance(record.NotificationSent, true, s.now())

	if err := s.store.Save(record); err != nil {
		s.logger.Error("failed to save portal upload", "error", err, "email", record.Email)
		return nil, err
	}

	if s.publisher != nil {
		event := events.NewPortalUpload(record.Email, fileName)
		if err := s.publisher.PublishSync(ctx, event); err != nil {
			s.logger.Error("failed to publish portal upload event", "error", err)
		}
	}

	s.logger.Info("portal undertaking recorded", "email", record.Email, "file", fileName)
	return lookupResultFor(record), nil
}
