package report

import (
	"context"
	"encoding/csv"
	"io"
	"log/slog"
	"time"

	"github.com/frahmantamala/compliance-management/internal"
	"github.com/frahmantamala/compliance-management/internal/core/events"
	"github.com/frahmantamala/compliance-management/internal/staff"
)

// RecordSource supplies the full in-memory record set every view reads. The
// whole roster fits in memory; pagination is a display concern only.
type RecordSource interface {
	GetAll() ([]*staff.StaffRecord, error)
}

type EventPublisher interface {
	PublishSync(ctx context.Context, event events.Event) error
}

type Service struct {
	records   RecordSource
	publisher EventPublisher
	logger    *slog.Logger
}

func NewService(records RecordSource, publisher EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		records:   records,
		publisher: publisher,
		logger:    logger,
	}
}

// Dashboard recomputes the portfolio summary from the current record set.
func (s *Service) Dashboard() (*Summary, error) {
	records, err := s.records.GetAll()
	if err != nil {
		s.logger.Error("failed to load records for dashboard", "error", err)
		return nil, err
	}
	return Aggregate(records), nil
}

var exportHeader = []string{
	"Sr No", "First Name", "Last Name", "Email", "Department", "Contact Person",
	"Mobile", "Status", "Undertaking Received", "Notified", "Sent Date", "Received Date",
}

// ExportCSV writes the full registry as CSV, one row per record, booleans
// rendered Yes/No. The export is recorded in the audit trail.
func (s *Service) ExportCSV(ctx context.Context, w io.Writer) (int, error) {
	records, err := s.records.GetAll()
	if err != nil {
		s.logger.Error("failed to load records for export", "error", err)
		return 0, err
	}

	staff.SortBySrNo(records)

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return 0, err
	}

	for _, r := range records {
		row := []string{
			r.SrNo,
			r.FirstName,
			r.LastName,
			r.Email,
			r.Department,
			r.ContactPerson,
			r.Mobile,
			r.Status,
			yesNo(r.UndertakingReceived),
			yesNo(r.NotificationSent),
			formatDate(r.SentDate),
			formatDate(r.ReceivedDate),
		}
		if err := cw.Write(row); err != nil {
			return 0, err
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, err
	}

	if s.publisher != nil {
		event := events.NewDataExported(len(records), internal.ActorFromContext(ctx))
		if err := s.publisher.PublishSync(ctx, event); err != nil {
			s.logger.Error("failed to publish export event", "error", err)
		}
	}

	return len(records), nil
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
