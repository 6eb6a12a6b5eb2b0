package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"teammarks/internal/auth"
	"teammarks/internal/bookmark"

	"github.com/go-chi/chi/v5"
)

type CategoryHandler struct {
	Svc *bookmark.Service
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	rows, err := h.Svc.ListCategories(r.Context(), uid)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(rows)
}

type categoryReq struct {
	Name        *string   `json:"name"`
	TeamID      *string   `json:"teamId"`
	BookmarkIDs *[]string `json:"bookmarkIds"`
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	var req categoryReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		http.Error(w, "name required", http.StatusBadRequest)
		return
	}

	in := bookmark.CategoryInput{Name: strings.TrimSpace(*req.Name)}
	if req.TeamID != nil {
		in.TeamID = *req.TeamID
	}
	if req.BookmarkIDs != nil {
		in.BookmarkIDs = *req.BookmarkIDs
	}

	c, err := h.Svc.AddCategory(r.Context(), uid, in)
	if err != nil {
		if err == bookmark.ErrUnauthenticated {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(c)
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	var req categoryReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	err := h.Svc.UpdateCategory(r.Context(), uid, id, bookmark.CategoryUpdate{
		Name:        req.Name,
		TeamID:      req.TeamID,
		BookmarkIDs: req.BookmarkIDs,
	})
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	if err := h.Svc.DeleteCategory(r.Context(), uid, id); err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
