package sqlxrepos

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/kelasdev/kelas/core/stats"
)

type statsRepository struct {
	db *sqlx.DB
}

var _ stats.Repository = (*statsRepository)(nil) // interface compliance check

func NewStatsRepository(db *sqlx.DB) stats.Repository {
	return &statsRepository{db: db}
}

func (repo *statsRepository) Counts(ctx context.Context, since time.Time) (stats.Counts, error) {
	var counts stats.Counts
	queries := []struct {
		dest  *int
		query string
		args  []interface{}
	}{
		{&counts.TotalUsers, "SELECT COUNT(*) FROM users", nil},
		{&counts.NewUsers, "SELECT COUNT(*) FROM users WHERE created_at >= ?", []interface{}{toMillis(since)}},
		{&counts.CompletedOnboardings, "SELECT COUNT(*) FROM user_profiles WHERE has_completed_onboarding = ?", []interface{}{true}},
		{&counts.TotalCourses, "SELECT COUNT(*) FROM courses", nil},
		{&counts.PublishedCourses, "SELECT COUNT(*) FROM courses WHERE is_published = ?", []interface{}{true}},
		{&counts.Enrollments, "SELECT COUNT(*) FROM enrollments", nil},
	}

	for _, q := range queries {
		if err := repo.db.GetContext(ctx, q.dest, repo.db.Rebind(q.query), q.args...); err != nil {
			return stats.Counts{}, errors.Wrap(err, "counting")
		}
	}
	return counts, nil
}
