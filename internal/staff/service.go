package staff

import (
	"context"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/frahmantamala/compliance-management/internal"
	"github.com/frahmantamala/compliance-management/internal/core/events"
)

// Repository is the persistence contract for staff records. Lookups by email
// are case-insensitive; stored emails keep their original casing.
type Repository interface {
	GetAll() ([]*StaffRecord, error)
	GetByEmail(email string) (*StaffRecord, error)
	Save(record *StaffRecord) error
	Delete(email string) error
	DeleteAll() (int64, error)
}

// EventPublisher decouples the service from the bus wiring.
type EventPublisher interface {
	PublishSync(ctx context.Context, event events.Event) error
}

type Service struct {
	repo      Repository
	publisher EventPublisher
	logger    *slog.Logger
	now       func() time.Time
}

func NewService(repo Repository, publisher EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// SaveRecord creates or updates one record from the admin form. The record is
// merged onto any existing record for the same email so that previously
// stamped dates survive; status is always recomputed from the booleans.
func (s *Service) SaveRecord(ctx context.Context, dto SaveRecordDTO) (*StaffRecord, bool, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("staff record validation failed", "error", err, "email", dto.Email)
		return nil, false, err
	}

	email := strings.TrimSpace(dto.Email)
	now := s.now()

	existing, err := s.repo.GetByEmail(email)
	if err != nil && err != internal.ErrRecordNotFound {
		s.logger.Error("failed to look up staff record", "error", err, "email", email)
		return nil, false, err
	}

	created := existing == nil
	record := existing
	if created {
		record = &StaffRecord{Email: email, CreatedAt: now}
	}

	record.SrNo = dto.SrNo
	record.FirstName = dto.FirstName
	record.LastName = dto.LastName
	record.Department = strings.TrimSpace(dto.Department)
	record.Mobile = dto.Mobile
	record.ContactPerson = dto.ContactPerson

	// Manual edits may override the automatic date stamps.
	if dto.SentDate != nil {
		record.SentDate = dto.SentDate
	}
	if dto.ReceivedDate != nil {
		record.ReceivedDate = dto.ReceivedDate
	}

	record.ApplyCompliance(dto.NotificationSent, dto.UndertakingReceived, now)

	if err := s.repo.Save(record); err != nil {
		s.logger.Error("failed to save staff record", "error", err, "email", email)
		return nil, false, err
	}

	s.publish(ctx, events.NewRecordSaved(record.Email, internal.ActorFromContext(ctx), created))
	s.logger.Info("staff record saved", "email", record.Email, "created", created, "status", record.Status)

	return record, created, nil
}

func (s *Service) GetRecord(email string) (*StaffRecord, error) {
	return s.repo.GetByEmail(email)
}

// ListRecords applies the registry filter and slices one display page out of
// the filtered set. Records are ordered by their external ordinal; records
// without one sort last.
func (s *Service) ListRecords(query string, status StatusFilter, page, perPage int) (*ListResponse, error) {
	records, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to load staff records", "error", err)
		return nil, err
	}

	SortBySrNo(records)
	filtered := FilterRecords(records, query, status)

	if perPage <= 0 {
		perPage = 20
	}
	if page <= 0 {
		page = 1
	}

	total := len(filtered)
	totalPages := (total + perPage - 1) / perPage

	start := (page - 1) * perPage
	if start > total {
		start = total
	}
	end := start + perPage
	if end > total {
		end = total
	}

	return &ListResponse{
		Records:    filtered[start:end],
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages,
	}, nil
}

// ToggleNotification flips the notification flag on one record, recomputing
// status and stamping the sent date on the first flip to true.
func (s *Service) ToggleNotification(ctx context.Context, email string, value bool) (*StaffRecord, error) {
	return s.toggle(ctx, email, "notificationSent", func(r *StaffRecord, now time.Time) {
		r.ApplyCompliance(value, r.UndertakingReceived, now)
	}, value)
}

// ToggleUndertaking flips the undertaking flag on one record, recomputing
// status and stamping the received date on the first flip to true.
func (s *Service) ToggleUndertaking(ctx context.Context, email string, value bool) (*StaffRecord, error) {
	return s.toggle(ctx, email, "undertakingReceived", func(r *StaffRecord, now time.Time) {
		r.ApplyCompliance(r.NotificationSent, value, now)
	}, value)
}

func (s *Service) toggle(ctx context.Context, email, field string, apply func(*StaffRecord, time.Time), value bool) (*StaffRecord, error) {
	record, err := s.repo.GetByEmail(email)
	if err != nil {
		return nil, err
	}

	apply(record, s.now())

	if err := s.repo.Save(record); err != nil {
		s.logger.Error("failed to save toggled record", "error", err, "email", email, "field", field)
		return nil, err
	}

	s.publish(ctx, events.NewStatusToggled(record.Email, field, value, internal.ActorFromContext(ctx)))
	return record, nil
}

func (s *Service) DeleteRecord(ctx context.Context, email string) error {
	record, err := s.repo.GetByEmail(email)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(email); err != nil {
		s.logger.Error("failed to delete staff record", "error", err, "email", email)
		return err
	}

	s.publish(ctx, events.NewRecordDeleted(record.Email, internal.ActorFromContext(ctx)))
	return nil
}

// WipeAll deletes every staff record. The wipe is published (and therefore
// audited) before any rows are removed, so the action survives in the trail
// even though it empties the registry.
func (s *Service) WipeAll(ctx context.Context) (int64, error) {
	records, err := s.repo.GetAll()
	if err != nil {
		return 0, err
	}

	s.publish(ctx, events.NewDatabaseWiped(len(records), internal.ActorFromContext(ctx)))

	deleted, err := s.repo.DeleteAll()
	if err != nil {
		s.logger.Error("failed to wipe staff records", "error", err)
		return 0, err
	}

	s.logger.Warn("staff registry wiped", "deleted", deleted, "actor", internal.ActorFromContext(ctx))
	return deleted, nil
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishSync(ctx, event); err != nil {
		s.logger.Error("failed to publish compliance event", "error", err, "event_type", event.EventType())
	}
}

// SortBySrNo orders records by their numeric external ordinal; records with
// a missing or non-numeric ordinal sort last.
func SortBySrNo(records []*StaffRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return srNoValue(records[i].SrNo) < srNoValue(records[j].SrNo)
	})
}

func srNoValue(srNo string) int {
	n, err := strconv.Atoi(strings.TrimSpace(srNo))
	if err != nil {
		return 999999
	}
	return n
}
