package department

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/frahmantamala/compliance-management/internal"
	"github.com/frahmantamala/compliance-management/internal/core/events"
	"github.com/frahmantamala/compliance-management/internal/report"
	"github.com/frahmantamala/compliance-management/internal/staff"
)

type MetadataRepository interface {
	GetAll() ([]*Metadata, error)
	GetByName(name string) (*Metadata, error)
	Upsert(meta *Metadata) error
}

// StaffAssigner is the slice of the staff repository this service needs:
// relabeling a set of records into a department in one transaction.
type StaffAssigner interface {
	AssignDepartment(emails []string, department string, now time.Time) (int64, error)
}

type RecordSource interface {
	GetAll() ([]*staff.StaffRecord, error)
}

type EventPublisher interface {
	PublishSync(ctx context.Context, event events.Event) error
}

type Service struct {
	metadata  MetadataRepository
	assigner  StaffAssigner
	records   RecordSource
	publisher EventPublisher
	logger    *slog.Logger
	now       func() time.Time
}

func NewService(metadata MetadataRepository, assigner StaffAssigner, records RecordSource, publisher EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		metadata:  metadata,
		assigner:  assigner,
		records:   records,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// List joins the per-department compliance rollups with whatever metadata
// exists, sorted by name. Departments with metadata but no members appear
// with zero counts.
func (s *Service) List() ([]*DepartmentView, error) {
	records, err := s.records.GetAll()
	if err != nil {
		s.logger.Error("failed to load records for department view", "error", err)
		return nil, err
	}

	summary := report.Aggregate(records)

	metaByName := make(map[string]*Metadata)
	metas, err := s.metadata.GetAll()
	if err != nil {
		s.logger.Error("failed to load department metadata", "error", err)
		return nil, err
	}
	for _, m := range metas {
		metaByName[m.Name] = m
	}

	views := make(map[string]*DepartmentView)
	for name, rollup := range summary.Departments {
		views[name] = &DepartmentView{
			Name:      name,
			Total:     rollup.Total,
			Compliant: rollup.Compliant,
			Pending:   rollup.Pending,
		}
	}
	for name := range metaByName {
		if _, ok := views[name]; !ok {
			views[name] = &DepartmentView{Name: name}
		}
	}

	for name, view := range views {
		if meta, ok := metaByName[name]; ok {
			view.HodName = meta.HodName
			view.HodEmail = meta.HodEmail
			view.HodPhone = meta.HodPhone
		}
		if view.HodName == "" {
			view.HodName = HodNotAssigned
		}
	}

	result := make([]*DepartmentView, 0, len(views))
	for _, view := range views {
		result = append(result, view)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })

	return result, nil
}

// Create relabels the selected members into a new department. The department
// has no row of its own; it exists through the records that carry its label.
func (s *Service) Create(ctx context.Context, dto CreateDepartmentDTO) error {
	if err := dto.Validate(); err != nil {
		return internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	name := strings.TrimSpace(dto.Name)
	if len(dto.Members) > 0 {
		if _, err := s.assigner.AssignDepartment(dto.Members, name, s.now()); err != nil {
			s.logger.Error("failed to assign members to new department", "error", err, "department", name)
			return err
		}
	}

	s.publish(ctx, events.NewDepartmentCreated(name, len(dto.Members), internal.ActorFromContext(ctx)))
	return nil
}

// MoveMembers moves existing records into a department.
func (s *Service) MoveMembers(ctx context.Context, name string, dto MoveMembersDTO) (int64, error) {
	if err := dto.Validate(); err != nil {
		return 0, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	moved, err := s.assigner.AssignDepartment(dto.Members, name, s.now())
	if err != nil {
		s.logger.Error("failed to move staff", "error", err, "department", name)
		return 0, err
	}

	s.publish(ctx, events.NewStaffMoved(len(dto.Members), name, internal.ActorFromContext(ctx)))
	return moved, nil
}

// UpsertMetadata sets head-of-department fields for a department name,
// creating the metadata row when absent.
func (s *Service) UpsertMetadata(ctx context.Context, name string, dto UpsertMetadataDTO) (*Metadata, error) {
	if strings.TrimSpace(name) == "" {
		return nil, internal.NewValidationError("department name is required", internal.ErrCodeValidationFailed)
	}

	meta := &Metadata{
		Name:      strings.TrimSpace(name),
		HodName:   dto.HodName,
		HodEmail:  dto.HodEmail,
		HodPhone:  dto.HodPhone,
		UpdatedAt: s.now(),
	}

	if err := s.metadata.Upsert(meta); err != nil {
		s.logger.Error("failed to upsert department metadata", "error", err, "department", name)
		return nil, err
	}

	s.publish(ctx, events.NewDepartmentMetaUpdated(meta.Name, internal.ActorFromContext(ctx)))
	return meta, nil
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishSync(ctx, event); err != nil {
		s.logger.Error("failed to publish department event", "error", err, "event_type", event.EventType())
	}
}
