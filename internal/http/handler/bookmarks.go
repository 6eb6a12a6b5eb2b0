package handler

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"teammarks/internal/auth"
	"teammarks/internal/bookmark"
	"teammarks/internal/jobs"
	"teammarks/internal/logger"

	"github.com/go-chi/chi/v5"
)

type BookmarkHandler struct {
	Svc  *bookmark.Service
	Jobs *jobs.Repo
	Log  logger.Logger
}

func (h *BookmarkHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	var (
		rows []bookmark.Bookmark
		err  error
	)
	switch {
	case r.URL.Query().Get("category") != "":
		rows, err = h.Svc.ByCategory(r.Context(), uid, r.URL.Query().Get("category"))
	case r.URL.Query().Get("team") != "":
		rows, err = h.Svc.ByTeam(r.Context(), uid, r.URL.Query().Get("team"))
	default:
		rows, err = h.Svc.List(r.Context(), uid)
	}
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(rows)
}

type createBookmarkReq struct {
	Title           string   `json:"title"`
	URL             string   `json:"url"`
	Description     string   `json:"description"`
	Tags            []string `json:"tags"`
	AISummary       string   `json:"aiSummary"`
	Favicon         string   `json:"favicon"`
	Category        string   `json:"category"`
	TeamID          string   `json:"teamId"`
	Public          bool     `json:"isPublic"`
	GenerateSummary bool     `json:"generateSummary"`
}

func (h *BookmarkHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	var req createBookmarkReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	req.URL = strings.TrimSpace(req.URL)
	if req.Title == "" {
		http.Error(w, "title required", http.StatusBadRequest)
		return
	}
	if u, err := url.Parse(req.URL); err != nil || !u.IsAbs() || u.Host == "" {
		http.Error(w, "url must be absolute", http.StatusBadRequest)
		return
	}

	b, err := h.Svc.Create(r.Context(), uid, bookmark.CreateInput{
		Title:       req.Title,
		URL:         req.URL,
		Description: req.Description,
		Tags:        req.Tags,
		AISummary:   req.AISummary,
		Favicon:     req.Favicon,
		Category:    req.Category,
		TeamID:      req.TeamID,
		Public:      req.Public,
	})
	if err != nil {
		if err == bookmark.ErrUnauthenticated {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	if req.GenerateSummary {
		if err := h.Jobs.EnqueueSummary(uid, b.ID, time.Now()); err != nil {
			// bookmark is saved; the summary can be requested again later
			h.Log.Error("enqueue summary failed", logger.String("bookmark_id", b.ID), logger.Error(err))
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(b)
}

type updateBookmarkReq struct {
	Title       *string   `json:"title"`
	URL         *string   `json:"url"`
	Description *string   `json:"description"`
	Tags        *[]string `json:"tags"`
	AISummary   *string   `json:"aiSummary"`
	Favicon     *string   `json:"favicon"`
	Category    *string   `json:"category"`
	TeamID      *string   `json:"teamId"`
	Public      *bool     `json:"isPublic"`
}

func (h *BookmarkHandler) Update(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	var req updateBookmarkReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if req.URL != nil {
		if u, err := url.Parse(strings.TrimSpace(*req.URL)); err != nil || !u.IsAbs() || u.Host == "" {
			http.Error(w, "url must be absolute", http.StatusBadRequest)
			return
		}
	}

	err := h.Svc.Update(r.Context(), uid, id, bookmark.UpdateInput{
		Title:       req.Title,
		URL:         req.URL,
		Description: req.Description,
		Tags:        req.Tags,
		AISummary:   req.AISummary,
		Favicon:     req.Favicon,
		Category:    req.Category,
		TeamID:      req.TeamID,
		Public:      req.Public,
	})
	if err != nil {
		writeBookmarkError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *BookmarkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	if err := h.Svc.Delete(r.Context(), uid, id); err != nil {
		writeBookmarkError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeBookmarkError(w http.ResponseWriter, err error) {
	switch err {
	case bookmark.ErrUnauthenticated:
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	case bookmark.ErrForbidden:
		http.Error(w, "forbidden", http.StatusForbidden)
	default:
		http.Error(w, "server error", http.StatusInternalServerError)
	}
}
