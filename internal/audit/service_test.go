package audit_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/compliance-management/internal/audit"
	"github.com/frahmantamala/compliance-management/internal/core/events"
)

func TestAudit(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Audit Suite")
}

type mockAuditRepo struct {
	entries   []*audit.LogEntry
	appendErr error
	listErr   error

	lastLimit int
}

func (m *mockAuditRepo) Append(entry *audit.LogEntry) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockAuditRepo) List(limit int) ([]*audit.LogEntry, error) {
	m.lastLimit = limit
	if m.listErr != nil {
		return nil, m.listErr
	}
	if limit > len(m.entries) {
		limit = len(m.entries)
	}
	return m.entries[:limit], nil
}

var _ = Describe("Audit Service", func() {
	var (
		repo    *mockAuditRepo
		service *audit.Service
		bus     *events.Bus
		logger  *slog.Logger
	)

	BeforeEach(func() {
		repo = &mockAuditRepo{}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
		service = audit.NewService(repo, logger)
		bus = events.NewBus(logger)
		service.RegisterRecorder(bus)
	})

	Describe("Recorder", func() {
		It("turns every published compliance event into an audit entry", func() {
			err := bus.PublishSync(context.Background(), events.NewRecordSaved("ann@x.org", "tester", true))
			Expect(err).NotTo(HaveOccurred())

			err = bus.PublishSync(context.Background(), events.NewDatabaseWiped(3, "admin"))
			Expect(err).NotTo(HaveOccurred())

			Expect(repo.entries).To(HaveLen(2))
			Expect(repo.entries[0].Action).To(Equal("Created Record"))
			Expect(repo.entries[0].Actor).To(Equal("tester"))
			Expect(repo.entries[0].Type).To(Equal(events.SeveritySuccess))
			Expect(repo.entries[1].Action).To(Equal("Database Wipe"))
			Expect(repo.entries[1].Type).To(Equal(events.SeverityDanger))
		})

		It("covers every declared event type", func() {
			publishers := []events.Event{
				events.NewRecordSaved("a@x.org", "t", false),
				events.NewRecordDeleted("a@x.org", "t"),
				events.NewStatusToggled("a@x.org", "notificationSent", true, "t"),
				events.NewBulkImport(1, 2, "t"),
				events.NewDataExported(3, "t"),
				events.NewDatabaseWiped(3, "t"),
				events.NewDepartmentCreated("Cardiology", 2, "t"),
				events.NewDepartmentMetaUpdated("Cardiology", "t"),
				events.NewStaffMoved(2, "Cardiology", "t"),
				events.NewPortalUpload("a@x.org", "f.pdf"),
			}
			Expect(publishers).To(HaveLen(len(events.AllEventTypes())))

			for _, e := range publishers {
				Expect(bus.PublishSync(context.Background(), e)).To(Succeed())
			}
			Expect(repo.entries).To(HaveLen(len(publishers)))
		})

		It("never fails the mutation when the audit write fails", func() {
			repo.appendErr = errors.New("disk full")

			err := bus.PublishSync(context.Background(), events.NewRecordSaved("a@x.org", "t", true))
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("List", func() {
		It("passes the requested limit through", func() {
			_, err := service.List(5)
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.lastLimit).To(Equal(5))
		})

		It("falls back to the default for zero or negative limits", func() {
			_, err := service.List(0)
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.lastLimit).To(Equal(audit.DefaultListLimit))

			_, err = service.List(-3)
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.lastLimit).To(Equal(audit.DefaultListLimit))
		})
	})
})
