package contact

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/noah-isme/sivakasi-crackers/internal/common"
)

// Handler exposes the contact form.
type Handler struct {
	Svc *Service
}

// Submit handles POST /api/v1/contact.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "contact service not configured", nil)
		return
	}
	var payload Form
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	sub, err := h.Svc.Submit(r.Context(), payload)
	if err != nil {
		var appErr *common.AppError
		if errors.As(err, &appErr) {
			common.WriteAppError(w, appErr)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "internal error", nil)
		return
	}
	common.Data(w, http.StatusAccepted, sub)
}
