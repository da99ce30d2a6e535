package comment

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

func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	issueID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid issue id")
		return
	}

	var dto CreateCommentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.Service.Add(r.Context(), issueID, user.ID, dto)
	if err != nil {
		h.writeServiceError(w, err, "AddComment")
		return
	}

	h.WriteJSON(w, http.StatusCreated, result)
}

func (h *Handler) ListComments(w http.ResponseWriter, r *http.Request) {
	issueID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid issue id")
		return
	}

	details, err := h.Service.ListForIssue(issueID)
	if err != nil {
		h.writeServiceError(w, err, "ListComments")
		return
	}

	h.WriteJSON(w, http.StatusOK, details)
}

func (h *Handler) AddReaction(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	commentID, err := strconv.ParseInt(chi.URLParam(r, "commentId"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid comment id")
		return
	}

	var dto ReactionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.React(commentID, user.ID, dto); err != nil {
		h.writeServiceError(w, err, "AddReaction")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Reaction recorded"})
}

func (h *Handler) RemoveReaction(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	commentID, err := strconv.ParseInt(chi.URLParam(r, "commentId"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid comment id")
		return
	}

	dto := ReactionDTO{ReactionType: r.URL.Query().Get("reaction_type")}
	if dto.ReactionType == "" {
		var body ReactionDTO
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
			dto = body
		}
	}

	if err := h.Service.Unreact(commentID, user.ID, dto); err != nil {
		h.writeServiceError(w, err, "RemoveReaction")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Reaction removed"})
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error, op string) {
	if appErr, ok := internal.IsAppError(err); ok {
		h.WriteError(w, appErr.StatusCode, appErr.Message)
		return
	}
	h.Logger.Error(op+": unexpected error", "error", err)
	h.WriteError(w, http.StatusInternalServerError, "internal server error")
}
