package inmemdb

import (
	"context"
	"time"

	"github.com/kelasdev/kelas/core/stats"
)

type statsRepository struct {
	db *DB
}

var _ stats.Repository = (*statsRepository)(nil) // interface compliance check

func NewStatsRepository(db *DB) stats.Repository {
	return &statsRepository{db: db}
}

func (repo *statsRepository) Counts(_ context.Context, since time.Time) (stats.Counts, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	counts := stats.Counts{
		TotalUsers:   len(repo.db.users),
		TotalCourses: len(repo.db.courses),
		Enrollments:  len(repo.db.enrollments),
	}
	for _, usr := range repo.db.users {
		if !usr.createdAt.Before(since) {
			counts.NewUsers++
		}
	}
	for _, prof := range repo.db.profiles {
		if prof.HasCompletedOnboarding {
			counts.CompletedOnboardings++
		}
	}
	for _, c := range repo.db.courses {
		if c.IsPublished {
			counts.PublishedCourses++
		}
	}
	return counts, nil
}
