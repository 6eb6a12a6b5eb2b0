package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"teammarks/internal/assist"
	"teammarks/internal/auth"
	"teammarks/internal/bookmark"
	"teammarks/internal/config"
	"teammarks/internal/db"
	httpx "teammarks/internal/http"
	"teammarks/internal/identity"
	"teammarks/internal/jobs"
	"teammarks/internal/logger"
	"teammarks/internal/team"
)

func main() {
	cfg, _ := config.Load()

	log := logger.New(cfg.LogLevel, cfg.LogPretty)
	defer func() { _ = log.Sync() }()

	gdb, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("db connect failed", logger.Error(err))
	}
	if err := db.AutoMigrateAndIndexes(gdb); err != nil {
		log.Fatal("db migrate failed", logger.Error(err))
	}

	jwtSvc := auth.NewJWT(cfg.JWTSecret)

	identitySvc := &identity.Service{Repo: identity.NewGormRepository(gdb), JWT: jwtSvc}
	teamSvc := &team.Service{Repo: team.NewGormRepository(gdb)}
	bookmarkSvc := &bookmark.Service{Repo: bookmark.NewGormRepository(gdb), Roles: teamSvc}
	engine := &assist.Engine{Delay: cfg.AssistDelay}
	jobsRepo := &jobs.Repo{DB: gdb}

	r := httpx.NewRouter(cfg, httpx.Deps{
		Identity:  identitySvc,
		Bookmarks: bookmarkSvc,
		Teams:     teamSvc,
		Assist:    engine,
		Jobs:      jobsRepo,
		JWT:       jwtSvc,
		Log:       log,
	})

	worker := &jobs.Worker{
		ID:        "worker-1",
		Repo:      jobsRepo,
		Bookmarks: bookmarkSvc,
		Assist:    engine,
		Log:       log,
	}

	ctx, cancel := context.WithCancel(context.Background())
	go worker.Run(ctx)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("listening", logger.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed", logger.Error(err))
		}
	}()

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
}
