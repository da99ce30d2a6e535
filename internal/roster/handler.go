package roster

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/rosterguard/roster-guardian/internal"
	"github.com/rosterguard/roster-guardian/internal/transport"
)

type Handler struct {
	*transport.BaseHandler
	Service *Service
}

func NewHandler(baseHandler *transport.BaseHandler, service *Service) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) Assign(w http.ResponseWriter, r *http.Request) {
	var dto AssignDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.Service.Assign(dto)
	if err != nil {
		h.writeServiceError(w, err, "Assign")
		return
	}

	h.WriteJSON(w, http.StatusCreated, entry)
}

func (h *Handler) Reassign(w http.ResponseWriter, r *http.Request) {
	entryID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid roster entry id")
		return
	}

	var dto ReassignDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.Reassign(entryID, dto); err != nil {
		h.writeServiceError(w, err, "Reassign")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Roster entry updated successfully"})
}

func (h *Handler) Unassign(w http.ResponseWriter, r *http.Request) {
	entryID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid roster entry id")
		return
	}

	if err := h.Service.Unassign(entryID); err != nil {
		h.writeServiceError(w, err, "Unassign")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Roster entry deleted successfully"})
}

func (h *Handler) ListRange(w http.ResponseWriter, r *http.Request) {
	startDate := r.URL.Query().Get("startDate")
	endDate := r.URL.Query().Get("endDate")
	if startDate == "" || endDate == "" {
		h.WriteError(w, http.StatusBadRequest, "startDate and endDate are required")
		return
	}

	grouped, err := h.Service.ListRange(startDate, endDate)
	if err != nil {
		h.writeServiceError(w, err, "ListRange")
		return
	}

	h.WriteJSON(w, http.StatusOK, grouped)
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error, op string) {
	if appErr, ok := internal.IsAppError(err); ok {
		h.WriteError(w, appErr.StatusCode, appErr.Message)
		return
	}
	h.Logger.Error(op+": unexpected error", "error", err)
	h.WriteError(w, http.StatusInternalServerError, "internal server error")
}
