package inmemdb

import (
	"context"
	"sort"
	"time"

	"github.com/kelasdev/kelas/core/course"
)

type courseRepository struct {
	db *DB
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *DB) course.Repository {
	return &courseRepository{db: db}
}

func (repo *courseRepository) CreateCourse(_ context.Context, c course.Course) (course.Course, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	c = c.Clone()
	repo.db.courses[c.ID] = c
	return c.Clone(), nil
}

func (repo *courseRepository) QueryPublishedCourses(context.Context) ([]course.Course, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	courses := make([]course.Course, 0, len(repo.db.courses))
	for _, c := range repo.db.courses {
		if c.IsPublished {
			courses = append(courses, c.Clone())
		}
	}
	sort.Slice(courses, func(i, j int) bool {
		if !courses[i].CreatedAt.Equal(courses[j].CreatedAt) {
			return courses[i].CreatedAt.After(courses[j].CreatedAt)
		}
		return courses[i].ID < courses[j].ID
	})
	return courses, nil
}

func (repo *courseRepository) GetCourseByID(_ context.Context, id string) (course.Course, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if c, ok := repo.db.courses[id]; ok {
		return c.Clone(), nil
	}
	return course.Course{}, course.ErrNotFound
}

func (repo *courseRepository) ReplaceCourseModules(_ context.Context, courseID string, modules []course.Module, updatedAt time.Time) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	c, ok := repo.db.courses[courseID]
	if !ok {
		return course.ErrNotFound
	}
	c.Modules = modules
	c = c.Clone()
	c.UpdatedAt = updatedAt
	repo.db.courses[courseID] = c
	return nil
}
