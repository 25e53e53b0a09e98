// Package stats computes the aggregate numbers shown on the admin panel.
package stats

import (
	"context"
	"math"
	"time"

	"github.com/pkg/errors"

	"github.com/kelasdev/kelas/core"
)

// SignupWindow is the period new signups are counted over.
const SignupWindow = 30 * 24 * time.Hour

type (
	Counts struct {
		TotalUsers           int
		NewUsers             int // created since the given time
		CompletedOnboardings int
		TotalCourses         int
		PublishedCourses     int
		Enrollments          int
	}

	Repository interface {
		Counts(ctx context.Context, since time.Time) (Counts, error)
	}

	Stats struct {
		TotalUsers       int     `json:"total_users"`
		NewSignups       int     `json:"new_signups"`
		PublishedCourses int     `json:"published_courses"`
		TotalCourses     int     `json:"total_courses"`
		Enrollments      int     `json:"enrollments"`
		OnboardingRate   float64 `json:"onboarding_rate"` // percent of users who completed the onboarding
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Get(ctx context.Context) (Stats, error) {
	counts, err := svc.repo.Counts(ctx, core.Now().Add(-SignupWindow))
	if err != nil {
		return Stats{}, errors.Wrap(err, "counting")
	}

	st := Stats{
		TotalUsers:       counts.TotalUsers,
		NewSignups:       counts.NewUsers,
		PublishedCourses: counts.PublishedCourses,
		TotalCourses:     counts.TotalCourses,
		Enrollments:      counts.Enrollments,
	}
	if counts.TotalUsers > 0 {
		rate := float64(counts.CompletedOnboardings) * 100 / float64(counts.TotalUsers)
		st.OnboardingRate = math.Round(rate*10) / 10
	}
	return st, nil
}
