package jobs

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"teammarks/internal/assist"
	"teammarks/internal/bookmark"
	"teammarks/internal/logger"
)

// Worker drains SUMMARY_GENERATE jobs: it runs the assist engine against the
// bookmark's URL and patches the stored summary and tags.
type Worker struct {
	ID        string
	Repo      *Repo
	Bookmarks *bookmark.Service
	Assist    *assist.Engine
	Log       logger.Logger
}

func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(800 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			job, err := w.Repo.Claim(w.ID)
			if err != nil {
				w.Log.Error("worker claim failed", logger.Error(err))
				continue
			}
			if job == nil {
				continue
			}
			w.handle(ctx, job)
		}
	}
}

func (w *Worker) handle(ctx context.Context, job *Job) {
	switch job.Type {
	case "SUMMARY_GENERATE":
		w.handleSummary(ctx, job)
	default:
		_ = w.Repo.MarkFailed(job.ID, "unknown job type")
	}
}

func (w *Worker) handleSummary(ctx context.Context, job *Job) {
	type payload struct {
		BookmarkID string `json:"bookmark_id"`
	}
	var p payload
	if err := json.Unmarshal(job.Payload, &p); err != nil {
		_ = w.Repo.MarkFailed(job.ID, "bad payload")
		return
	}

	b, err := w.Bookmarks.Repo.Get(ctx, p.BookmarkID)
	if err != nil {
		w.retry(job, "db read error")
		return
	}
	if b == nil || b.OwnerID != job.UserID {
		// bookmark deleted (or never this user's) before the job ran
		_ = w.Repo.MarkDone(job.ID)
		return
	}

	sg, err := w.Assist.Summarize(ctx, b.URL, b.Title)
	if err != nil {
		_ = w.Repo.MarkFailed(job.ID, err.Error())
		return
	}

	if err := w.Bookmarks.SetSummary(ctx, b.ID, sg.Summary, sg.Tags); err != nil {
		w.retry(job, "db write error")
		return
	}

	w.Log.Info("summary generated",
		logger.String("bookmark_id", b.ID),
		logger.String("user_id", job.UserID))
	_ = w.Repo.MarkDone(job.ID)
}

func (w *Worker) retry(job *Job, errMsg string) {
	attempts := job.Attempts + 1
	if attempts >= job.MaxAttempts {
		_ = w.Repo.MarkFailed(job.ID, errMsg)
		return
	}

	sec := math.Min(math.Pow(2, float64(attempts)), 600)
	next := time.Now().Add(time.Duration(sec) * time.Second)

	_ = w.Repo.RetryLater(job.ID, attempts, next, errMsg)
}
