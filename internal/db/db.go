package db

import (
	"fmt"

	"teammarks/internal/auth"
	"teammarks/internal/bookmark"
	"teammarks/internal/identity"
	"teammarks/internal/jobs"
	"teammarks/internal/team"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(dsn string) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return gdb, nil
}

func AutoMigrateAndIndexes(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(
		&auth.User{},
		&identity.Profile{},
		&bookmark.Bookmark{},
		&bookmark.Category{},
		&team.Team{},
		&team.Member{},
		&jobs.Job{},
	); err != nil {
		return err
	}

	// One membership row per (team, user); addMember relies on it.
	if err := gdb.Exec(`create unique index if not exists uq_team_members_team_user on team_members(team_id, user_id);`).Error; err != nil {
		return err
	}

	stmts := []string{
		`create index if not exists idx_bookmarks_owner_created on bookmarks(owner_id, created_at);`,
		`create index if not exists idx_bookmarks_owner_team on bookmarks(owner_id, team_id);`,
		`create index if not exists idx_categories_owner on categories(owner_id);`,
		`create index if not exists idx_team_members_user on team_members(user_id);`,
		`create index if not exists idx_jobs_due on jobs(status, run_at);`,
		`create index if not exists idx_jobs_lock on jobs(status, locked_at);`,
	}
	for _, s := range stmts {
		if err := gdb.Exec(s).Error; err != nil {
			return fmt.Errorf("index exec failed: %w (sql=%s)", err, s)
		}
	}

	return nil
}
