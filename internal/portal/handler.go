package portal

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/frahmantamala/compliance-management/internal"
	"github.com/frahmantamala/compliance-management/internal/transport"
)

type ServiceAPI interface {
	Lookup(email string) (*LookupResult, error)
	UploadUndertaking(ctx context.Context, email, fileName string) (*LookupResult, error)
}

// Handler serves the unauthenticated self-service endpoints. This is the
// system's front door for staff who only need to check and settle their own
// undertaking.
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

// Lookup handles POST /portal/lookup.
func (h *Handler) Lookup(w http.ResponseWriter, r *http.Request) {
	var dto LookupDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.HandleServiceError(w, internal.NewValidationError(err.Error(), internal.ErrCodeInvalidEmail))
		return
	}

	result, err := h.Service.Lookup(dto.Email)
	if err != nil {
		h.Logger.Error("Lookup: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}

// Upload handles POST /portal/upload.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	var dto UploadDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.HandleServiceError(w, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed))
		return
	}

	result, err := h.Service.UploadUndertaking(r.Context(), dto.Email, dto.FileName)
	if err != nil {
		h.Logger.Error("Upload: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}
