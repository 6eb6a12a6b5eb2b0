package http

import (
	"net/http"

	"teammarks/internal/assist"
	"teammarks/internal/auth"
	"teammarks/internal/bookmark"
	"teammarks/internal/config"
	"teammarks/internal/http/handler"
	mw "teammarks/internal/http/middleware"
	"teammarks/internal/identity"
	"teammarks/internal/jobs"
	"teammarks/internal/logger"
	"teammarks/internal/team"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type Deps struct {
	Identity  *identity.Service
	Bookmarks *bookmark.Service
	Teams     *team.Service
	Assist    *assist.Engine
	Jobs      *jobs.Repo
	JWT       *auth.JWT
	Log       logger.Logger
}

func NewRouter(cfg config.Config, d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(mw.CORS(cfg.CORSAllowedOrigins, cfg.CORSAllowCredentials))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	ah := &handler.AuthHandler{Identity: d.Identity}
	r.Post("/auth/register", ah.Register)
	r.Post("/auth/login", ah.Login)

	me := &handler.MeHandler{Identity: d.Identity}
	r.Route("/me", func(r chi.Router) {
		r.Use(auth.RequireAuth(d.JWT))
		r.Get("/", me.Me)
		r.Patch("/", me.UpdateProfile)
	})

	bh := &handler.BookmarkHandler{Svc: d.Bookmarks, Jobs: d.Jobs, Log: d.Log}
	r.Route("/bookmarks", func(r chi.Router) {
		r.Use(auth.RequireAuth(d.JWT))
		r.Get("/", bh.List)
		r.Post("/", bh.Create)
		r.Patch("/{id}", bh.Update)
		r.Delete("/{id}", bh.Delete)
	})

	ch := &handler.CategoryHandler{Svc: d.Bookmarks}
	r.Route("/categories", func(r chi.Router) {
		r.Use(auth.RequireAuth(d.JWT))
		r.Get("/", ch.List)
		r.Post("/", ch.Create)
		r.Patch("/{id}", ch.Update)
		r.Delete("/{id}", ch.Delete)
	})

	th := &handler.TeamHandler{Svc: d.Teams, Identity: d.Identity}
	r.Route("/teams", func(r chi.Router) {
		r.Use(auth.RequireAuth(d.JWT))
		r.Get("/", th.List)
		r.Post("/", th.Create)
		r.Patch("/{id}", th.Update)
		r.Delete("/{id}", th.Delete)

		r.Post("/{id}/members", th.AddMember)
		r.Patch("/{id}/members/{userId}", th.UpdateMemberRole)
		r.Delete("/{id}/members/{userId}", th.RemoveMember)
	})

	sh := &handler.AssistHandler{Engine: d.Assist}
	r.With(auth.RequireAuth(d.JWT)).Post("/assist/summary", sh.Summary)

	return r
}
