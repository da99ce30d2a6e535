package issue

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/rosterguard/roster-guardian/internal"
	"github.com/rosterguard/roster-guardian/internal/auth"
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

func (h *Handler) CreateIssue(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateIssueDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.Service.Create(r.Context(), user.ID, dto)
	if err != nil {
		h.writeServiceError(w, err, "CreateIssue")
		return
	}

	h.WriteJSON(w, http.StatusCreated, result)
}

func (h *Handler) GetIssue(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid issue id")
		return
	}

	detail, err := h.Service.GetByID(id)
	if err != nil {
		h.writeServiceError(w, err, "GetIssue")
		return
	}

	h.WriteJSON(w, http.StatusOK, detail)
}

func (h *Handler) ListByDate(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")

	summaries, err := h.Service.ListByDate(date)
	if err != nil {
		h.writeServiceError(w, err, "ListByDate")
		return
	}

	h.WriteJSON(w, http.StatusOK, summaries)
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

func (h *Handler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid issue id")
		return
	}

	var dto ChangeStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.Service.ChangeStatus(r.Context(), id, dto.StatusID, user.ID)
	if err != nil {
		h.writeServiceError(w, err, "ChangeStatus")
		return
	}

	if !result.Changed {
		h.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"message": "Issue status unchanged",
			"changed": false,
		})
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Issue status updated successfully",
		"changed": true,
	})
}

func (h *Handler) DeleteIssue(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid issue id")
		return
	}

	if err := h.Service.Delete(id); err != nil {
		h.writeServiceError(w, err, "DeleteIssue")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Issue deleted successfully"})
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error, op string) {
	if appErr, ok := internal.IsAppError(err); ok {
		h.WriteError(w, appErr.StatusCode, appErr.Message)
		return
	}
	h.Logger.Error(op+": unexpected error", "error", err)
	h.WriteError(w, http.StatusInternalServerError, "internal server error")
}
