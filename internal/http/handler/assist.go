package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"teammarks/internal/assist"
)

type AssistHandler struct {
	Engine *assist.Engine
}

type summaryReq struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

func (h *AssistHandler) Summary(w http.ResponseWriter, r *http.Request) {
	var req summaryReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.URL) == "" {
		http.Error(w, "url required", http.StatusBadRequest)
		return
	}

	sg, err := h.Engine.Summarize(r.Context(), req.URL, strings.TrimSpace(req.Title))
	if err != nil {
		if err == assist.ErrBadURL {
			http.Error(w, "url must be absolute", http.StatusBadRequest)
			return
		}
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(sg)
}
