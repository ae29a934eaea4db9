package staff_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/compliance-management/internal"
	"github.com/frahmantamala/compliance-management/internal/staff"
	"github.com/frahmantamala/compliance-management/internal/transport"
)

type mockStaffService struct {
	listResp  *staff.ListResponse
	record    *staff.StaffRecord
	created   bool
	err       error
	wiped     int64
	lastQuery string
	lastPage  int
}

func (m *mockStaffService) SaveRecord(ctx context.Context, dto staff.SaveRecordDTO) (*staff.StaffRecord, bool, error) {
	return m.record, m.created, m.err
}

func (m *mockStaffService) GetRecord(email string) (*staff.StaffRecord, error) {
	return m.record, m.err
}

func (m *mockStaffService) ListRecords(query string, status staff.StatusFilter, page, perPage int) (*staff.ListResponse, error) {
	m.lastQuery = query
	m.lastPage = page
	return m.listResp, m.err
}

func (m *mockStaffService) ToggleNotification(ctx context.Context, email string, value bool) (*staff.StaffRecord, error) {
	return m.record, m.err
}

func (m *mockStaffService) ToggleUndertaking(ctx context.Context, email string, value bool) (*staff.StaffRecord, error) {
	return m.record, m.err
}

func (m *mockStaffService) DeleteRecord(ctx context.Context, email string) error {
	return m.err
}

func (m *mockStaffService) WipeAll(ctx context.Context) (int64, error) {
	return m.wiped, m.err
}

var _ = Describe("Staff Handler", func() {
	var (
		service *mockStaffService
		router  *chi.Mux
	)

	BeforeEach(func() {
		service = &mockStaffService{}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
		handler := staff.NewHandler(&transport.BaseHandler{Logger: logger}, service)

		router = chi.NewRouter()
		router.Get("/staff", handler.ListRecords)
		router.Post("/staff", handler.SaveRecord)
		router.Delete("/staff", handler.WipeAll)
		router.Get("/staff/{email}", handler.GetRecord)
		router.Delete("/staff/{email}", handler.DeleteRecord)
		router.Patch("/staff/{email}/notification", handler.ToggleNotification)
	})

	Describe("GET /staff", func() {
		It("returns the filtered page", func() {
			service.listResp = &staff.ListResponse{
				Records: []*staff.StaffRecord{{Email: "ann@x.org"}},
				Total:   1, Page: 1, PerPage: 20, TotalPages: 1,
			}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/staff?q=ann&page=2", nil))

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(service.lastQuery).To(Equal("ann"))
			Expect(service.lastPage).To(Equal(2))

			var resp staff.ListResponse
			Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Total).To(Equal(1))
		})
	})

	Describe("POST /staff", func() {
		It("answers 201 when the record was created", func() {
			service.record = &staff.StaffRecord{Email: "new@x.org", Status: staff.StatusPending}
			service.created = true

			body, _ := json.Marshal(staff.SaveRecordDTO{Email: "new@x.org"})
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/staff", bytes.NewReader(body)))

			Expect(rec.Code).To(Equal(http.StatusCreated))
		})

		It("answers 200 when the record was updated", func() {
			service.record = &staff.StaffRecord{Email: "old@x.org"}

			body, _ := json.Marshal(staff.SaveRecordDTO{Email: "old@x.org"})
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/staff", bytes.NewReader(body)))

			Expect(rec.Code).To(Equal(http.StatusOK))
		})

		It("maps a validation failure to 400 with the error envelope", func() {
			service.err = internal.NewValidationError("email is required", internal.ErrCodeValidationFailed)

			body, _ := json.Marshal(staff.SaveRecordDTO{})
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/staff", bytes.NewReader(body)))

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(rec.Body.String()).To(ContainSubstring("VALIDATION_ERROR"))
		})

		It("rejects a body that is not JSON", func() {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/staff", bytes.NewReader([]byte("{"))))

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("GET /staff/{email}", func() {
		It("maps not-found to 404", func() {
			service.err = internal.ErrRecordNotFound

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/staff/ghost@x.org", nil))

			Expect(rec.Code).To(Equal(http.StatusNotFound))
			Expect(rec.Body.String()).To(ContainSubstring("RECORD_NOT_FOUND"))
		})
	})

	Describe("PATCH /staff/{email}/notification", func() {
		It("returns the recomputed record", func() {
			service.record = &staff.StaffRecord{
				Email:            "ann@x.org",
				NotificationSent: true,
				Status:           staff.StatusNotified,
			}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/staff/ann@x.org/notification",
				bytes.NewReader([]byte(`{"value":true}`))))

			Expect(rec.Code).To(Equal(http.StatusOK))

			var got staff.StaffRecord
			Expect(json.Unmarshal(rec.Body.Bytes(), &got)).To(Succeed())
			Expect(got.Status).To(Equal(staff.StatusNotified))
		})
	})

	Describe("DELETE /staff", func() {
		It("reports how many rows the wipe removed", func() {
			service.wiped = 42

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/staff", nil))

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(ContainSubstring(`"deleted":42`))
		})
	})
})
