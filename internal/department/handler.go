package department

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/frahmantamala/compliance-management/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	List() ([]*DepartmentView, error)
	Create(ctx context.Context, dto CreateDepartmentDTO) error
	MoveMembers(ctx context.Context, name string, dto MoveMembersDTO) (int64, error)
	UpsertMetadata(ctx context.Context, name string, dto UpsertMetadataDTO) (*Metadata, error)
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

// List handles GET /departments.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	views, err := h.Service.List()
	if err != nil {
		h.Logger.Error("List: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"departments": views})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto CreateDepartmentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("Create: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.Create(r.Context(), dto); err != nil {
		h.Logger.Error("Create: service error", "error", err, "department", dto.Name)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, map[string]string{"status": "created", "name": dto.Name})
}

func (h *Handler) MoveMembers(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var dto MoveMembersDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("MoveMembers: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	moved, err := h.Service.MoveMembers(r.Context(), name, dto)
	if err != nil {
		h.Logger.Error("MoveMembers: service error", "error", err, "department", name)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"status": "moved", "moved": moved})
}

func (h *Handler) UpsertMetadata(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var dto UpsertMetadataDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpsertMetadata: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	meta, err := h.Service.UpsertMetadata(r.Context(), name, dto)
	if err != nil {
		h.Logger.Error("UpsertMetadata: service error", "error", err, "department", name)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, meta)
}
