package staff

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/frahmantamala/compliance-management/internal"
	"github.com/frahmantamala/compliance-management/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	SaveRecord(ctx context.Context, dto SaveRecordDTO) (*StaffRecord, bool, error)
	GetRecord(email string) (*StaffRecord, error)
	ListRecords(query string, status StatusFilter, page, perPage int) (*ListResponse, error)
	ToggleNotification(ctx context.Context, email string, value bool) (*StaffRecord, error)
	ToggleUndertaking(ctx context.Context, email string, value bool) (*StaffRecord, error)
	DeleteRecord(ctx context.Context, email string) error
	WipeAll(ctx context.Context) (int64, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(base *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: base,
		Service:     service,
	}
}

// ListRecords handles GET /staff?q=&status=&page=&per_page=
func (h *Handler) ListRecords(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	status := ParseStatusFilter(r.URL.Query().Get("status"))

	page := 1
	perPage := 20
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}
	if perPageStr := r.URL.Query().Get("per_page"); perPageStr != "" {
		if pp, err := strconv.Atoi(perPageStr); err == nil && pp > 0 && pp <= 100 {
			perPage = pp
		}
	}

	resp, err := h.Service.ListRecords(query, status, page, perPage)
	if err != nil {
		h.Logger.Error("ListRecords: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) SaveRecord(w http.ResponseWriter, r *http.Request) {
	var dto SaveRecordDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("SaveRecord: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	record, created, err := h.Service.SaveRecord(r.Context(), dto)
	if err != nil {
		h.Logger.Error("SaveRecord: service error", "error", err, "email", dto.Email)
		h.HandleServiceError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	h.WriteJSON(w, status, record)
}

func (h *Handler) GetRecord(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	record, err := h.Service.GetRecord(email)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, record)
}

func (h *Handler) ToggleNotification(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.Service.ToggleNotification)
}

func (h *Handler) ToggleUndertaking(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.Service.ToggleUndertaking)
}

func (h *Handler) toggle(w http.ResponseWriter, r *http.Request, op func(context.Context, string, bool) (*StaffRecord, error)) {
	email := chi.URLParam(r, "email")

	var dto ToggleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("toggle: invalid request body", "error", err, "email", email)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	record, err := op(r.Context(), email, dto.Value)
	if err != nil {
		h.Logger.Error("toggle: service error", "error", err, "email", email)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, record)
}

func (h *Handler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	if err := h.Service.DeleteRecord(r.Context(), email); err != nil {
		h.Logger.Error("DeleteRecord: service error", "error", err, "email", email)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) WipeAll(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.Service.WipeAll(r.Context())
	if err != nil {
		h.Logger.Error("WipeAll: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Warn("WipeAll: registry cleared", "deleted", deleted, "actor", internal.ActorFromContext(r.Context()))
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"status": "wiped", "deleted": deleted})
}
