package course

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/kelasdev/kelas/core"
	"github.com/kelasdev/kelas/core/content"
)

// errors
var ErrNotFound = errors.New("course not found")

type (
	Repository interface {
		CreateCourse(ctx context.Context, c Course) (Course, error)
		// QueryPublishedCourses returns published courses, newest first.
		QueryPublishedCourses(ctx context.Context) ([]Course, error)
		GetCourseByID(ctx context.Context, id string) (Course, error)
		// ReplaceCourseModules replaces the whole module list of a course.
		ReplaceCourseModules(ctx context.Context, courseID string, modules []Module, updatedAt time.Time) error
	}

	Service struct {
		repo     Repository
		validate *validator.Validate
	}
)

func NewService(repo Repository, validate *validator.Validate) *Service {
	return &Service{repo: repo, validate: validate}
}

// Create validates nc and stores it as a published course without modules.
func (svc *Service) Create(ctx context.Context, nc NewCourse) (Course, error) {
	nc.Title = core.CleanString(nc.Title)
	nc.Language = core.CleanString(nc.Language, true /* lower */)
	nc.ImageURL = core.CleanString(nc.ImageURL)
	if err := svc.validate.Struct(nc); err != nil {
		return Course{}, err
	}

	now := core.Now()
	c := Course{
		ID:          content.NewID(),
		Title:       nc.Title,
		Description: nc.Description,
		Difficulty:  nc.Difficulty,
		Language:    nc.Language,
		ImageURL:    nc.ImageURL,
		IsPublished: true,
		Modules:     make([]Module, 0),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return svc.repo.CreateCourse(ctx, c)
}

// ListPublished returns the published courses, newest first.
func (svc *Service) ListPublished(ctx context.Context) ([]Course, error) {
	courses, err := svc.repo.QueryPublishedCourses(ctx)
	if err != nil {
		return nil, err
	}
	for i := range courses {
		courses[i].Normalize()
	}
	return courses, nil
}

func (svc *Service) Get(ctx context.Context, id string) (Course, error) {
	c, err := svc.repo.GetCourseByID(ctx, id)
	if err != nil {
		return Course{}, err
	}
	c.Normalize()
	return c, nil
}

// SaveContent validates every module of c and replaces the stored module list with it.
func (svc *Service) SaveContent(ctx context.Context, c Course) (Course, error) {
	c = c.Clone()
	c.Normalize()
	if err := svc.validate.Struct(c); err != nil {
		return Course{}, err
	}
	c.UpdatedAt = core.Now()
	if err := svc.repo.ReplaceCourseModules(ctx, c.ID, c.Modules, c.UpdatedAt); err != nil {
		return Course{}, err
	}
	return c, nil
}

// Edit loads the course, runs edit on an Editor over it and saves the result when edit reports a change.
// The returned course is the stored one, edited or not.
func (svc *Service) Edit(ctx context.Context, id string, edit func(e *Editor) (bool, error)) (Course, error) {
	c, err := svc.Get(ctx, id)
	if err != nil {
		return Course{}, err
	}

	e := NewEditor(c)
	changed, err := edit(e)
	if err != nil {
		return Course{}, err
	}
	if !changed {
		return c, nil
	}
	return svc.SaveContent(ctx, e.Course())
}
