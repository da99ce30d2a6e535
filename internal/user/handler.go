package user

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

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var dto RegisterDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.Register(dto)
	if err != nil {
		h.writeServiceError(w, err, "Register")
		return
	}

	h.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.List()
	if err != nil {
		h.writeServiceError(w, err, "ListUsers")
		return
	}

	h.WriteJSON(w, http.StatusOK, users)
}

// Me returns the authenticated caller's own profile.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	authUser, ok := auth.UserFromContext(r.Context())
	if !ok || authUser == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	profile, err := h.Service.GetByID(authUser.ID)
	if err != nil {
		h.writeServiceError(w, err, "Me")
		return
	}

	h.WriteJSON(w, http.StatusOK, profile)
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	profile, err := h.Service.GetByID(userID)
	if err != nil {
		h.writeServiceError(w, err, "GetUser")
		return
	}

	h.WriteJSON(w, http.StatusOK, profile)
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var dto UpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.Service.Update(userID, dto)
	if err != nil {
		h.writeServiceError(w, err, "UpdateUser")
		return
	}

	h.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := h.Service.Delete(userID); err != nil {
		h.writeServiceError(w, err, "DeleteUser")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "User deleted successfully"})
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error, op string) {
	if appErr, ok := internal.IsAppError(err); ok {
		h.WriteError(w, appErr.StatusCode, appErr.Message)
		return
	}
	h.Logger.Error(op+": unexpected error", "error", err)
	h.WriteError(w, http.StatusInternalServerError, "internal server error")
}
