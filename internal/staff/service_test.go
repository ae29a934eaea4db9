package staff_test

import (
	"context"
	"log/slog"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/compliance-management/internal"
	"github.com/frahmantamala/compliance-management/internal/core/events"
	"github.com/frahmantamala/compliance-management/internal/staff"
)

type mockRepository struct {
	records map[string]*staff.StaffRecord

	getAllErr error
	saveErr   error
	deleteErr error

	saved   []*staff.StaffRecord
	deleted []string
}

func newMockRepository() *mockRepository {
	return &mockRepository{records: make(map[string]*staff.StaffRecord)}
}

func (m *mockRepository) put(r *staff.StaffRecord) {
	m.records[staff.NormalizeEmail(r.Email)] = r
}

func (m *mockRepository) GetAll() ([]*staff.StaffRecord, error) {
	if m.getAllErr != nil {
		return nil, m.getAllErr
	}
	out := make([]*staff.StaffRecord, 0, len(m.records))
	for _, r := range m.records {
		out = append(out, r)
	}
	return out, nil
}

func (m *mockRepository) GetByEmail(email string) (*staff.StaffRecord, error) {
	r, ok := m.records[staff.NormalizeEmail(email)]
	if !ok {
		return nil, internal.ErrRecordNotFound
	}
	copied := *r
	return &copied, nil
}

func (m *mockRepository) Save(record *staff.StaffRecord) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, record)
	m.put(record)
	return nil
}

func (m *mockRepository) Delete(email string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	key := staff.NormalizeEmail(email)
	if _, ok := m.records[key]; !ok {
		return internal.ErrRecordNotFound
	}
	delete(m.records, key)
	m.deleted = append(m.deleted, email)
	return nil
}

func (m *mockRepository) DeleteAll() (int64, error) {
	n := int64(len(m.records))
	m.records = make(map[string]*staff.StaffRecord)
	return n, nil
}

type mockPublisher struct {
	events []events.Event
	err    error
}

func (m *mockPublisher) PublishSync(ctx context.Context, event events.Event) error {
	m.events = append(m.events, event)
	return m.err
}

func (m *mockPublisher) lastType() string {
	if len(m.events) == 0 {
		return ""
	}
	return m.events[len(m.events)-1].EventType()
}

var _ = Describe("Staff Service", func() {
	var (
		repo      *mockRepository
		publisher *mockPublisher
		service   *staff.Service
		ctx       context.Context
	)

	BeforeEach(func() {
		repo = newMockRepository()
		publisher = &mockPublisher{}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
		service = staff.NewService(repo, publisher, logger)
		ctx = internal.ContextWithActor(context.Background(), "tester")
	})

	Describe("SaveRecord", func() {
		It("creates a new record and derives its status", func() {
			record, created, err := service.SaveRecord(ctx, staff.SaveRecordDTO{
				Email:            "new@hospital.org",
				FirstName:        "New",
				Department:       " Cardiology ",
				NotificationSent: true,
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(created).To(BeTrue())
			Expect(record.Status).To(Equal(staff.StatusNotified))
			Expect(record.Department).To(Equal("Cardiology"))
			Expect(record.SentDate).NotTo(BeNil())
			Expect(publisher.lastType()).To(Equal(events.EventTypeRecordSaved))
		})

		It("merges onto an existing record and keeps stamped dates", func() {
			sent := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
			repo.put(&staff.StaffRecord{
				Email:            "ann@hospital.org",
				FirstName:        "Ann",
				NotificationSent: true,
				SentDate:         &sent,
			})

			record, created, err := service.SaveRecord(ctx, staff.SaveRecordDTO{
				Email:               "ann@hospital.org",
				FirstName:           "Anne",
				NotificationSent:    true,
				UndertakingReceived: true,
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(created).To(BeFalse())
			Expect(record.FirstName).To(Equal("Anne"))
			Expect(record.Status).To(Equal(staff.StatusAccepted))
			Expect(*record.SentDate).To(Equal(sent))
			Expect(record.ReceivedDate).NotTo(BeNil())
		})

		It("lets a manual edit override a stamped date", func() {
			sent := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
			repo.put(&staff.StaffRecord{Email: "ann@hospital.org", NotificationSent: true, SentDate: &sent})

			manual := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
			record, _, err := service.SaveRecord(ctx, staff.SaveRecordDTO{
				Email:            "ann@hospital.org",
				NotificationSent: true,
				SentDate:         &manual,
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(*record.SentDate).To(Equal(manual))
		})

		It("rejects a payload without an email", func() {
			_, _, err := service.SaveRecord(ctx, staff.SaveRecordDTO{FirstName: "No"})

			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
			Expect(publisher.events).To(BeEmpty())
		})

		It("rejects an email without an at sign", func() {
			_, _, err := service.SaveRecord(ctx, staff.SaveRecordDTO{Email: "not-an-email"})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("ListRecords", func() {
		BeforeEach(func() {
			repo.put(&staff.StaffRecord{Email: "a@x.org", SrNo: "1", UndertakingReceived: true})
			repo.put(&staff.StaffRecord{Email: "b@x.org", SrNo: "2", NotificationSent: true})
			repo.put(&staff.StaffRecord{Email: "c@x.org", SrNo: "3"})
		})

		It("filters before paging so the total reflects the filter", func() {
			resp, err := service.ListRecords("", staff.FilterPending, 1, 20)

			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Total).To(Equal(1))
			Expect(resp.Records).To(HaveLen(1))
			Expect(resp.Records[0].Email).To(Equal("c@x.org"))
		})

		It("slices display pages out of the ordered set", func() {
			resp, err := service.ListRecords("", staff.FilterAll, 2, 2)

			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Total).To(Equal(3))
			Expect(resp.TotalPages).To(Equal(2))
			Expect(resp.Records).To(HaveLen(1))
			Expect(resp.Records[0].Email).To(Equal("c@x.org"))
		})

		It("returns an empty page past the end instead of failing", func() {
			resp, err := service.ListRecords("", staff.FilterAll, 9, 20)

			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Records).To(BeEmpty())
			Expect(resp.Total).To(Equal(3))
		})
	})

	Describe("Toggles", func() {
		BeforeEach(func() {
			repo.put(&staff.StaffRecord{Email: "ann@hospital.org"})
		})

		It("flips notification and stamps the sent date once", func() {
			record, err := service.ToggleNotification(ctx, "ann@hospital.org", true)

			Expect(err).NotTo(HaveOccurred())
			Expect(record.NotificationSent).To(BeTrue())
			Expect(record.Status).To(Equal(staff.StatusNotified))
			Expect(record.SentDate).NotTo(BeNil())
			Expect(publisher.lastType()).To(Equal(events.EventTypeStatusToggled))
		})

		It("flips undertaking independently of notification", func() {
			record, err := service.ToggleUndertaking(ctx, "ann@hospital.org", true)

			Expect(err).NotTo(HaveOccurred())
			Expect(record.UndertakingReceived).To(BeTrue())
			Expect(record.Status).To(Equal(staff.StatusAccepted))
			Expect(record.NotificationSent).To(BeFalse())
		})

		It("propagates not-found for unknown emails", func() {
			_, err := service.ToggleNotification(ctx, "ghost@hospital.org", true)
			Expect(err).To(Equal(internal.ErrRecordNotFound))
		})
	})

	Describe("DeleteRecord", func() {
		It("deletes and publishes", func() {
			repo.put(&staff.StaffRecord{Email: "ann@hospital.org"})

			Expect(service.DeleteRecord(ctx, "ann@hospital.org")).To(Succeed())
			Expect(repo.deleted).To(ConsistOf("ann@hospital.org"))
			Expect(publisher.lastType()).To(Equal(events.EventTypeRecordDeleted))
		})

		It("fails for an unknown email without publishing", func() {
			err := service.DeleteRecord(ctx, "ghost@hospital.org")
			Expect(err).To(Equal(internal.ErrRecordNotFound))
			Expect(publisher.events).To(BeEmpty())
		})
	})

	Describe("WipeAll", func() {
		It("publishes the wipe before deleting so it survives in the trail", func() {
			repo.put(&staff.StaffRecord{Email: "a@x.org"})
			repo.put(&staff.StaffRecord{Email: "b@x.org"})

			deleted, err := service.WipeAll(ctx)

			Expect(err).NotTo(HaveOccurred())
			Expect(deleted).To(Equal(int64(2)))
			Expect(publisher.lastType()).To(Equal(events.EventTypeDatabaseWiped))
			Expect(repo.records).To(BeEmpty())
		})
	})
})
