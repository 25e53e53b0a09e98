// Package storage opens the configured storage backend and builds its repositories.
package storage

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/kelasdev/kelas/core"
	"github.com/kelasdev/kelas/core/course"
	"github.com/kelasdev/kelas/core/onboarding"
	"github.com/kelasdev/kelas/core/progress"
	"github.com/kelasdev/kelas/core/stats"
	"github.com/kelasdev/kelas/storage/database"
	inmemdb "github.com/kelasdev/kelas/storage/database/inmem"
	sqlxrepos "github.com/kelasdev/kelas/storage/database/sqlx"
)

// Storage groups the repositories of the configured backend.
type Storage struct {
	DB         core.Pinger
	SQL        *sqlx.DB // nil for in-memory storage
	Courses    course.Repository
	Onboarding onboarding.Repository
	Progress   progress.Repository
	Stats      stats.Repository
}

// Open opens the database of conf.Database.Engine. SQL databases are created if needed and migrated when migrate is set.
func Open(ctx context.Context, conf *core.Config, migrate bool) (*Storage, error) {
	if conf.Database.Engine == core.EngineMemory {
		db := inmemdb.Open()
		return &Storage{
			DB:         db,
			Courses:    inmemdb.NewCourseRepository(db),
			Onboarding: inmemdb.NewOnboardingRepository(db),
			Progress:   inmemdb.NewProgressRepository(db),
			Stats:      inmemdb.NewStatsRepository(db),
		}, nil
	}

	if err := database.CreateIfNotExist(conf); err != nil {
		return nil, errors.Wrap(err, "creating database")
	}
	db, err := database.Open(conf)
	if err != nil {
		return nil, err
	}
	if migrate {
		if err = database.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, errors.Wrap(err, "migrating database")
		}
	}
	return &Storage{
		DB:         db,
		SQL:        db,
		Courses:    sqlxrepos.NewCourseRepository(db),
		Onboarding: sqlxrepos.NewOnboardingRepository(db),
		Progress:   sqlxrepos.NewProgressRepository(db),
		Stats:      sqlxrepos.NewStatsRepository(db),
	}, nil
}

func (s *Storage) Close() error {
	if s.SQL == nil {
		return nil
	}
	return s.SQL.Close()
}
