package department_test

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/compliance-management/internal"
	"github.com/frahmantamala/compliance-management/internal/core/events"
	"github.com/frahmantamala/compliance-management/internal/department"
	"github.com/frahmantamala/compliance-management/internal/staff"
)

func TestDepartment(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Department Suite")
}

type mockMetadataRepo struct {
	metas    map[string]*department.Metadata
	upserted []*department.Metadata
	getErr   error
	upErr    error
}

func newMockMetadataRepo() *mockMetadataRepo {
	return &mockMetadataRepo{metas: make(map[string]*department.Metadata)}
}

func (m *mockMetadataRepo) GetAll() ([]*department.Metadata, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	out := make([]*department.Metadata, 0, len(m.metas))
	for _, meta := range m.metas {
		out = append(out, meta)
	}
	return out, nil
}

func (m *mockMetadataRepo) GetByName(name string) (*department.Metadata, error) {
	meta, ok := m.metas[name]
	if !ok {
		return nil, internal.ErrDepartmentNotFound
	}
	return meta, nil
}

func (m *mockMetadataRepo) Upsert(meta *department.Metadata) error {
	if m.upErr != nil {
		return m.upErr
	}
	m.metas[meta.Name] = meta
	m.upserted = append(m.upserted, meta)
	return nil
}

type mockAssigner struct {
	calls []assignCall
	moved int64
	err   error
}

type assignCall struct {
	emails     []string
	department string
}

func (m *mockAssigner) AssignDepartment(emails []string, dept string, now time.Time) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.calls = append(m.calls, assignCall{emails: emails, department: dept})
	return m.moved, nil
}

type mockRecordSource struct {
	records []*staff.StaffRecord
	err     error
}

func (m *mockRecordSource) GetAll() ([]*staff.StaffRecord, error) {
	return m.records, m.err
}

type mockDeptPublisher struct {
	events []events.Event
}

func (m *mockDeptPublisher) PublishSync(ctx context.Context, event events.Event) error {
	m.events = append(m.events, event)
	return nil
}

var _ = Describe("Department Service", func() {
	var (
		metadata  *mockMetadataRepo
		assigner  *mockAssigner
		records   *mockRecordSource
		publisher *mockDeptPublisher
		service   *department.Service
		ctx       context.Context
	)

	BeforeEach(func() {
		metadata = newMockMetadataRepo()
		assigner = &mockAssigner{}
		records = &mockRecordSource{}
		publisher = &mockDeptPublisher{}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
		service = department.NewService(metadata, assigner, records, publisher, logger)
		ctx = internal.ContextWithActor(context.Background(), "dept-test")
	})

	Describe("List", func() {
		It("joins rollups with metadata sorted by name", func() {
			records.records = []*staff.StaffRecord{
				{Email: "a@x.org", Department: "Radiology", UndertakingReceived: true},
				{Email: "b@x.org", Department: "Cardiology"},
			}
			metadata.metas["Cardiology"] = &department.Metadata{
				Name: "Cardiology", HodName: "Dr. Hart", HodEmail: "hart@x.org",
			}

			views, err := service.List()
			Expect(err).NotTo(HaveOccurred())
			Expect(views).To(HaveLen(2))

			Expect(views[0].Name).To(Equal("Cardiology"))
			Expect(views[0].HodName).To(Equal("Dr. Hart"))
			Expect(views[0].Total).To(Equal(1))
			Expect(views[0].Pending).To(Equal(1))

			Expect(views[1].Name).To(Equal("Radiology"))
			Expect(views[1].HodName).To(Equal(department.HodNotAssigned))
			Expect(views[1].Compliant).To(Equal(1))
		})

		It("shows metadata-only departments with zero counts", func() {
			metadata.metas["Oncology"] = &department.Metadata{Name: "Oncology", HodName: "Dr. Onco"}

			views, err := service.List()
			Expect(err).NotTo(HaveOccurred())
			Expect(views).To(HaveLen(1))
			Expect(views[0].Name).To(Equal("Oncology"))
			Expect(views[0].Total).To(BeZero())
			Expect(views[0].HodName).To(Equal("Dr. Onco"))
		})

		It("buckets blank department labels under Unassigned", func() {
			records.records = []*staff.StaffRecord{{Email: "a@x.org"}}

			views, err := service.List()
			Expect(err).NotTo(HaveOccurred())
			Expect(views).To(HaveLen(1))
			Expect(views[0].Name).To(Equal(staff.DepartmentUnassigned))
			Expect(views[0].HodName).To(Equal(department.HodNotAssigned))
		})
	})

	Describe("Create", func() {
		It("relabels the selected members and publishes", func() {
			Expect(service.Create(ctx, department.CreateDepartmentDTO{
				Name:    " Oncology ",
				Members: []string{"a@x.org", "b@x.org"},
			})).To(Succeed())

			Expect(assigner.calls).To(HaveLen(1))
			Expect(assigner.calls[0].department).To(Equal("Oncology"))
			Expect(assigner.calls[0].emails).To(HaveLen(2))

			Expect(publisher.events).To(HaveLen(1))
			Expect(publisher.events[0].EventType()).To(Equal(events.EventTypeDeptCreated))
		})

		It("allows an empty member list without touching records", func() {
			Expect(service.Create(ctx, department.CreateDepartmentDTO{Name: "Oncology"})).To(Succeed())
			Expect(assigner.calls).To(BeEmpty())
			Expect(publisher.events).To(HaveLen(1))
		})

		It("rejects a blank name", func() {
			err := service.Create(ctx, department.CreateDepartmentDTO{Name: "  "})
			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})
	})

	Describe("MoveMembers", func() {
		It("moves members and reports the affected count", func() {
			assigner.moved = 2

			moved, err := service.MoveMembers(ctx, "Cardiology", department.MoveMembersDTO{
				Members: []string{"a@x.org", "b@x.org", "ghost@x.org"},
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(moved).To(Equal(int64(2)))
			Expect(publisher.events[0].EventType()).To(Equal(events.EventTypeStaffMoved))
		})

		It("rejects an empty member list", func() {
			_, err := service.MoveMembers(ctx, "Cardiology", department.MoveMembersDTO{})
			Expect(err).To(HaveOccurred())
			Expect(assigner.calls).To(BeEmpty())
		})
	})

	Describe("UpsertMetadata", func() {
		It("stores trimmed metadata and publishes", func() {
			meta, err := service.UpsertMetadata(ctx, " Cardiology ", department.UpsertMetadataDTO{
				HodName:  "Dr. Hart",
				HodEmail: "hart@x.org",
				HodPhone: "555-0100",
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(meta.Name).To(Equal("Cardiology"))
			Expect(metadata.upserted).To(HaveLen(1))
			Expect(publisher.events[0].EventType()).To(Equal(events.EventTypeDeptMetaUpdated))
		})

		It("rejects a blank department name", func() {
			_, err := service.UpsertMetadata(ctx, "  ", department.UpsertMetadataDTO{})
			Expect(err).To(HaveOccurred())
			Expect(metadata.upserted).To(BeEmpty())
		})
	})
})
