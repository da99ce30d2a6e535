package status

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/rosterguard/roster-guardian/internal"
	"github.com/rosterguard/roster-guardian/internal/transport"
)

type ServiceAPI interface {
	ListActive() ([]*Status, error)
	GetByID(id int64) (*Status, error)
	Create(dto CreateStatusDTO) (*Status, error)
	Update(id int64, dto UpdateStatusDTO) (*Status, error)
	Delete(id int64) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) ListStatuses(w http.ResponseWriter, r *http.Request) {
	statuses, err := h.Service.ListActive()
	if err != nil {
		h.Logger.Error("ListStatuses: failed to list statuses", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to get statuses")
		return
	}

	h.WriteJSON(w, http.StatusOK, statuses)
}

func (h *Handler) CreateStatus(w http.ResponseWriter, r *http.Request) {
	var dto CreateStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.Create(dto)
	if err != nil {
		h.writeServiceError(w, err, "CreateStatus")
		return
	}

	h.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid status id")
		return
	}

	var dto UpdateStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.Service.Update(id, dto)
	if err != nil {
		h.writeServiceError(w, err, "UpdateStatus")
		return
	}

	h.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid status id")
		return
	}

	if err := h.Service.Delete(id); err != nil {
		h.writeServiceError(w, err, "DeleteStatus")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Status deleted successfully"})
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error, op string) {
	if appErr, ok := internal.IsAppError(err); ok {
		h.WriteError(w, appErr.StatusCode, appErr.Message)
		return
	}
	h.Logger.Error(op+": unexpected error", "error", err)
	h.WriteError(w, http.StatusInternalServerError, "internal server error")
}
