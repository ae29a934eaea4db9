package audit

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/compliance-management/internal/core/events"
)

const DefaultListLimit = 100

type Repository interface {
	Append(entry *LogEntry) error
	List(limit int) ([]*LogEntry, error)
}

type Subscriber interface {
	Subscribe(eventType string, handler events.Handler)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// RegisterRecorder subscribes the audit recorder to every compliance event
// type. The recorder never returns an error: a failed audit write must not
// fail the mutation it describes, so failures are logged and swallowed.
func (s *Service) RegisterRecorder(bus Subscriber) {
	for _, eventType := range events.AllEventTypes() {
		bus.Subscribe(eventType, s.record)
	}
}

func (s *Service) record(_ context.Context, event events.Event) error {
	ce, ok := event.(*events.ComplianceEvent)
	if !ok {
		s.logger.Warn("audit recorder received unknown event shape",
			"event_type", event.EventType(), "event_id", event.EventID())
		return nil
	}

	entry := &LogEntry{
		ID:        ce.ID,
		Action:    ce.Action,
		Details:   ce.Details,
		Type:      ce.Severity,
		Actor:     ce.Actor,
		Timestamp: ce.Timestamp,
	}

	if err := s.repo.Append(entry); err != nil {
		s.logger.Error("failed to write audit entry",
			"action", entry.Action, "actor", entry.Actor, "error", err)
	}
	return nil
}

// List returns the most recent entries, newest first. The limit is a display
// concern; zero or negative falls back to the default.
func (s *Service) List(limit int) ([]*LogEntry, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	entries, err := s.repo.List(limit)
	if err != nil {
		s.logger.Error("failed to list audit entries", "error", err)
		return nil, err
	}
	return entries, nil
}
