// Package progress tracks course enrollments and completed modules.
package progress

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/kelasdev/kelas/core"
	"github.com/kelasdev/kelas/core/course"
	"github.com/kelasdev/kelas/core/onboarding"
)

var (
	// errors
	ErrOnboardingRequired = errors.New("onboarding must be completed first")
	ErrNotEnrolled        = errors.New("not enrolled in this course")
	ErrModuleNotFound     = errors.New("module not found in this course")
)

type (
	Repository interface {
		// Enroll is a no-op if the user is already enrolled.
		Enroll(ctx context.Context, userID, courseID string, at time.Time) error
		IsEnrolled(ctx context.Context, userID, courseID string) (bool, error)
		// CompleteModule is a no-op if the module is already completed.
		CompleteModule(ctx context.Context, userID, courseID, moduleID string, at time.Time) error
		CompletedModules(ctx context.Context, userID, courseID string) ([]string, error)
		// Enrollments returns the enrollments of the user, most recent first.
		Enrollments(ctx context.Context, userID string) ([]Enrollment, error)
	}

	CourseGetter interface {
		Get(ctx context.Context, id string) (course.Course, error)
	}

	ProfileGetter interface {
		GetProfile(ctx context.Context, externalID string) (onboarding.Profile, error)
	}

	Enrollment struct {
		CourseID   string    `json:"course_id"`
		EnrolledAt time.Time `json:"enrolled_at"`
	}

	CourseProgress struct {
		CourseID         string   `json:"course_id"`
		CompletedModules []string `json:"completed_modules"`
		TotalModules     int      `json:"total_modules"`
		Percent          int      `json:"percent"`
	}

	CourseSummary struct {
		ID          string            `json:"id"`
		Title       string            `json:"title"`
		Description string            `json:"description"`
		Difficulty  course.Difficulty `json:"difficulty"`
		Language    string            `json:"language"`
		ImageURL    string            `json:"image_url,omitempty"`
	}

	DashboardEntry struct {
		Course     CourseSummary  `json:"course"`
		EnrolledAt time.Time      `json:"enrolled_at"`
		Progress   CourseProgress `json:"progress"`
	}

	Dashboard struct {
		Profile onboarding.Profile `json:"profile"`
		Courses []DashboardEntry   `json:"courses"`
	}

	Service struct {
		repo     Repository
		courses  CourseGetter
		profiles ProfileGetter
	}
)

func NewService(repo Repository, courses CourseGetter, profiles ProfileGetter) *Service {
	return &Service{repo: repo, courses: courses, profiles: profiles}
}

// profile returns the profile of a user who completed the onboarding.
func (svc *Service) profile(ctx context.Context, externalID string) (onboarding.Profile, error) {
	prof, err := svc.profiles.GetProfile(ctx, externalID)
	if errors.Is(err, onboarding.ErrNotFound) {
		return onboarding.Profile{}, ErrOnboardingRequired
	}
	if err != nil {
		return onboarding.Profile{}, err
	}
	if !prof.HasCompletedOnboarding {
		return onboarding.Profile{}, ErrOnboardingRequired
	}
	return prof, nil
}

// Enroll enrolls the user in a published course. Enrolling twice is a no-op.
func (svc *Service) Enroll(ctx context.Context, externalID, courseID string) (Enrollment, error) {
	prof, err := svc.profile(ctx, externalID)
	if err != nil {
		return Enrollment{}, err
	}
	c, err := svc.courses.Get(ctx, courseID)
	if err != nil {
		return Enrollment{}, err
	}
	if !c.IsPublished {
		return Enrollment{}, course.ErrNotFound
	}

	now := core.Now()
	if err = svc.repo.Enroll(ctx, prof.UserID, c.ID, now); err != nil {
		return Enrollment{}, errors.Wrap(err, "enrolling")
	}
	return Enrollment{CourseID: c.ID, EnrolledAt: now}, nil
}

// CompleteModule marks a module of a course the user is enrolled in as completed.
func (svc *Service) CompleteModule(ctx context.Context, externalID, courseID, moduleID string) (CourseProgress, error) {
	prof, err := svc.profile(ctx, externalID)
	if err != nil {
		return CourseProgress{}, err
	}
	c, err := svc.courses.Get(ctx, courseID)
	if err != nil {
		return CourseProgress{}, err
	}
	if _, ok := c.Module(moduleID); !ok {
		return CourseProgress{}, ErrModuleNotFound
	}
	if err = svc.checkEnrolled(ctx, prof.UserID, c.ID); err != nil {
		return CourseProgress{}, err
	}

	if err = svc.repo.CompleteModule(ctx, prof.UserID, c.ID, moduleID, core.Now()); err != nil {
		return CourseProgress{}, errors.Wrap(err, "completing module")
	}
	return svc.progress(ctx, prof.UserID, c)
}

// CourseProgress returns the completed modules of a course the user is enrolled in.
func (svc *Service) CourseProgress(ctx context.Context, externalID, courseID string) (CourseProgress, error) {
	prof, err := svc.profile(ctx, externalID)
	if err != nil {
		return CourseProgress{}, err
	}
	c, err := svc.courses.Get(ctx, courseID)
	if err != nil {
		return CourseProgress{}, err
	}
	if err = svc.checkEnrolled(ctx, prof.UserID, c.ID); err != nil {
		return CourseProgress{}, err
	}
	return svc.progress(ctx, prof.UserID, c)
}

// Dashboard returns the user's profile with every enrolled course and its progress.
// Courses deleted or unpublished since enrollment are skipped.
func (svc *Service) Dashboard(ctx context.Context, externalID string) (Dashboard, error) {
	prof, err := svc.profile(ctx, externalID)
	if err != nil {
		return Dashboard{}, err
	}
	enrollments, err := svc.repo.Enrollments(ctx, prof.UserID)
	if err != nil {
		return Dashboard{}, errors.Wrap(err, "querying enrollments")
	}

	dash := Dashboard{Profile: prof, Courses: make([]DashboardEntry, 0, len(enrollments))}
	for _, enr := range enrollments {
		c, err := svc.courses.Get(ctx, enr.CourseID)
		if errors.Is(err, course.ErrNotFound) {
			continue
		}
		if err != nil {
			return Dashboard{}, err
		}
		if !c.IsPublished {
			continue
		}
		prog, err := svc.progress(ctx, prof.UserID, c)
		if err != nil {
			return Dashboard{}, err
		}
		dash.Courses = append(dash.Courses, DashboardEntry{
			Course:     summarize(c),
			EnrolledAt: enr.EnrolledAt,
			Progress:   prog,
		})
	}
	return dash, nil
}

func (svc *Service) checkEnrolled(ctx context.Context, userID, courseID string) error {
	enrolled, err := svc.repo.IsEnrolled(ctx, userID, courseID)
	if err != nil {
		return errors.Wrap(err, "checking enrollment")
	}
	if !enrolled {
		return ErrNotEnrolled
	}
	return nil
}

// progress computes the progress on c. Completed modules no longer part of c are ignored.
func (svc *Service) progress(ctx context.Context, userID string, c course.Course) (CourseProgress, error) {
	done, err := svc.repo.CompletedModules(ctx, userID, c.ID)
	if err != nil {
		return CourseProgress{}, errors.Wrap(err, "querying completed modules")
	}
	completed := make(map[string]struct{}, len(done))
	for _, id := range done {
		completed[id] = struct{}{}
	}

	prog := CourseProgress{CourseID: c.ID, CompletedModules: make([]string, 0, len(done)), TotalModules: len(c.Modules)}
	for _, m := range c.Modules {
		if _, ok := completed[m.ID]; ok {
			prog.CompletedModules = append(prog.CompletedModules, m.ID)
		}
	}
	if prog.TotalModules > 0 {
		prog.Percent = len(prog.CompletedModules) * 100 / prog.TotalModules
	}
	return prog, nil
}

func summarize(c course.Course) CourseSummary {
	return CourseSummary{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Difficulty:  c.Difficulty,
		Language:    c.Language,
		ImageURL:    c.ImageURL,
	}
}
