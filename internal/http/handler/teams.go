package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"teammarks/internal/auth"
	"teammarks/internal/identity"
	"teammarks/internal/team"

	"github.com/go-chi/chi/v5"
)

type TeamHandler struct {
	Svc      *team.Service
	Identity *identity.Service
}

func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	rows, err := h.Svc.List(r.Context(), uid)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(rows)
}

type createTeamReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	var req createTeamReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		http.Error(w, "name required", http.StatusBadRequest)
		return
	}

	actor := team.Actor{ID: uid}
	if profile, err := h.Identity.Profile(r.Context(), uid); err == nil && profile != nil {
		actor.Email = profile.Email
		actor.Name = profile.DisplayName
	}

	t, err := h.Svc.Create(r.Context(), actor, team.CreateInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		writeTeamError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(t)
}

type updateTeamReq struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (h *TeamHandler) Update(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	var req updateTeamReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	err := h.Svc.Update(r.Context(), uid, id, team.UpdateInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		writeTeamError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TeamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	if err := h.Svc.Delete(r.Context(), uid, id); err != nil {
		writeTeamError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type addMemberReq struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

func (h *TeamHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	teamID := chi.URLParam(r, "id")

	var req addMemberReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if req.UserID == "" {
		http.Error(w, "userId required", http.StatusBadRequest)
		return
	}

	err := h.Svc.AddMember(r.Context(), uid, teamID, team.MemberInput{
		UserID: req.UserID,
		Role:   team.Role(req.Role),
		Email:  req.Email,
		Name:   req.Name,
	})
	if err != nil {
		writeTeamError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type updateRoleReq struct {
	Role string `json:"role"`
}

func (h *TeamHandler) UpdateMemberRole(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	teamID := chi.URLParam(r, "id")
	userID := chi.URLParam(r, "userId")

	var req updateRoleReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	err := h.Svc.UpdateMemberRole(r.Context(), uid, teamID, userID, team.Role(req.Role))
	if err != nil {
		writeTeamError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TeamHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	teamID := chi.URLParam(r, "id")
	userID := chi.URLParam(r, "userId")

	if err := h.Svc.RemoveMember(r.Context(), uid, teamID, userID); err != nil {
		writeTeamError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeTeamError(w http.ResponseWriter, err error) {
	switch err {
	case team.ErrUnauthenticated:
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	case team.ErrForbidden:
		http.Error(w, "forbidden", http.StatusForbidden)
	case team.ErrNotFound:
		http.Error(w, "not found", http.StatusNotFound)
	case team.ErrInvalidRole:
		http.Error(w, "invalid role", http.StatusBadRequest)
	default:
		http.Error(w, "server error", http.StatusInternalServerError)
	}
}
