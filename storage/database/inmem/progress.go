package inmemdb

import (
	"context"
	"sort"
	"time"

	"github.com/kelasdev/kelas/core/progress"
)

type progressRepository struct {
	db *DB
}

var _ progress.Repository = (*progressRepository)(nil) // interface compliance check

func NewProgressRepository(db *DB) progress.Repository {
	return &progressRepository{db: db}
}

func (repo *progressRepository) Enroll(_ context.Context, userID, courseID string, at time.Time) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	key := enrollmentKey{userID, courseID}
	if _, ok := repo.db.enrollments[key]; !ok {
		repo.db.enrollments[key] = at
	}
	return nil
}

func (repo *progressRepository) IsEnrolled(_ context.Context, userID, courseID string) (bool, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	_, ok := repo.db.enrollments[enrollmentKey{userID, courseID}]
	return ok, nil
}

func (repo *progressRepository) CompleteModule(_ context.Context, userID, courseID, moduleID string, at time.Time) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	key := enrollmentKey{userID, courseID}
	done, ok := repo.db.completed[key]
	if !ok {
		done = make(map[string]time.Time)
		repo.db.completed[key] = done
	}
	if _, ok = done[moduleID]; !ok {
		done[moduleID] = at
	}
	return nil
}

func (repo *progressRepository) CompletedModules(_ context.Context, userID, courseID string) ([]string, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	done := repo.db.completed[enrollmentKey{userID, courseID}]
	ids := make([]string, 0, len(done))
	for id := range done {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		ti, tj := done[ids[i]], done[ids[j]]
		if !ti.Equal(tj) {
			return ti.Before(tj)
		}
		return ids[i] < ids[j]
	})
	return ids, nil
}

func (repo *progressRepository) Enrollments(_ context.Context, userID string) ([]progress.Enrollment, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	enrollments := make([]progress.Enrollment, 0)
	for key, at := range repo.db.enrollments {
		if key.userID == userID {
			enrollments = append(enrollments, progress.Enrollment{CourseID: key.courseID, EnrolledAt: at})
		}
	}
	sort.Slice(enrollments, func(i, j int) bool {
		ei, ej := enrollments[i], enrollments[j]
		if !ei.EnrolledAt.Equal(ej.EnrolledAt) {
			return ei.EnrolledAt.After(ej.EnrolledAt)
		}
		return ei.CourseID < ej.CourseID
	})
	return enrollments, nil
}
