package importer_test

import (
	"context"
	"errors"
	"log/slog"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/compliance-management/internal"
	"github.com/frahmantamala/compliance-management/internal/core/events"
	"github.com/frahmantamala/compliance-management/internal/importer"
	"github.com/frahmantamala/compliance-management/internal/staff"
)

type mockRecordStore struct {
	records  []*staff.StaffRecord
	getErr   error
	batchErr error

	batches [][]*staff.StaffRecord
}

func (m *mockRecordStore) GetAll() ([]*staff.StaffRecord, error) {
	return m.records, m.getErr
}

func (m *mockRecordStore) UpsertBatch(records []*staff.StaffRecord) error {
	if m.batchErr != nil {
		return m.batchErr
	}
	m.batches = append(m.batches, records)
	return nil
}

type mockImportPublisher struct {
	events []events.Event
}

func (m *mockImportPublisher) PublishSync(ctx context.Context, event events.Event) error {
	m.events = append(m.events, event)
	return nil
}

var _ = Describe("Importer Service", func() {
	var (
		store     *mockRecordStore
		publisher *mockImportPublisher
		service   *importer.Service
		ctx       context.Context
	)

	BeforeEach(func() {
		store = &mockRecordStore{}
		publisher = &mockImportPublisher{}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
		service = importer.NewService(store, publisher, logger)
		ctx = internal.ContextWithActor(context.Background(), "importer-test")
	})

	It("parses, reconciles and applies one atomic batch", func() {
		store.records = []*staff.StaffRecord{{Email: "ann@x.org", FirstName: "Ann"}}
		data := []byte("Email,First Name,Undertaking\nann@x.org,,yes\nbob@x.org,Bob,\n")

		result, err := service.Import(ctx, "upload.csv", data)

		Expect(err).NotTo(HaveOccurred())
		Expect(result.NewCount).To(Equal(1))
		Expect(result.UpdatedCount).To(Equal(1))
		Expect(result.SkippedRows).To(BeZero())

		Expect(store.batches).To(HaveLen(1))
		Expect(store.batches[0]).To(HaveLen(2))

		Expect(publisher.events).To(HaveLen(1))
		Expect(publisher.events[0].EventType()).To(Equal(events.EventTypeBulkImport))
	})

	It("writes nothing when the sheet has no data rows", func() {
		_, err := service.Import(ctx, "upload.csv", []byte("Email\n"))

		Expect(err).To(Equal(internal.ErrWorkbookEmpty))
		Expect(store.batches).To(BeEmpty())
		Expect(publisher.events).To(BeEmpty())
	})

	It("writes nothing when the workbook is unreadable", func() {
		_, err := service.Import(ctx, "upload.xlsx", []byte("garbage"))

		Expect(err).To(HaveOccurred())
		Expect(store.batches).To(BeEmpty())
	})

	It("propagates a batch write failure", func() {
		store.batchErr = errors.New("connection reset")
		data := []byte("Email\nann@x.org\n")

		_, err := service.Import(ctx, "upload.csv", data)
		Expect(err).To(MatchError("connection reset"))
		Expect(publisher.events).To(BeEmpty())
	})
})
