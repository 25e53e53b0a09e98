// Package storagetest holds the behaviour every repository implementation must share.
// Each storage backend runs these tests against its own repositories.
package storagetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kelasdev/kelas/core/content"
	"github.com/kelasdev/kelas/core/course"
	"github.com/kelasdev/kelas/core/onboarding"
	"github.com/kelasdev/kelas/core/progress"
	"github.com/kelasdev/kelas/core/stats"
)

// Repositories groups the repositories of one backend, sharing the same storage.
type Repositories struct {
	Courses    course.Repository
	Onboarding onboarding.Repository
	Progress   progress.Repository
	Stats      stats.Repository
}

var epoch = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func NewCourse(id string, createdAt time.Time, published bool) course.Course {
	return course.Course{
		ID:          id,
		Title:       "Course " + id,
		Description: "About " + id,
		Difficulty:  course.Beginner,
		Language:    "javascript",
		IsPublished: published,
		Modules:     make([]course.Module, 0),
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
}

func NewProfile(userID, externalID string, at time.Time) onboarding.Profile {
	return onboarding.Profile{
		UserID:                 userID,
		ExternalID:             externalID,
		Email:                  externalID + "@kelas.test",
		Name:                   "User " + externalID,
		ExperienceLevel:        "Some experience",
		PreferredLanguage:      "Python",
		LearningGoal:           "Career change",
		WeeklyTime:             "4-7 hours",
		ProjectType:            "Web applications",
		HasCompletedOnboarding: true,
		SubscriptionTier:       onboarding.TierFree,
		CreatedAt:              at,
		UpdatedAt:              at,
	}
}

func Answers() onboarding.Answers {
	return onboarding.Answers{
		onboarding.QuestionExperience:  "Some experience",
		onboarding.QuestionLanguage:    "Python",
		onboarding.QuestionGoal:        "Career change",
		onboarding.QuestionWeeklyTime:  "4-7 hours",
		onboarding.QuestionProjectType: "Web applications",
	}
}

func sampleModules() []course.Module {
	timeLimit := 30
	return []course.Module{
		{ID: "m1", Type: content.TypeIntroduction, Title: "Intro", Order: 0, Content: content.DefaultContentFor(content.TypeIntroduction)},
		{ID: "m2", Type: content.TypeMultipleChoice, Title: "Quiz", Order: 1, Content: content.MultipleChoice{
			Question:  "2+2?",
			Options:   []content.Option{{ID: "a", Text: "4", IsCorrect: true}, {ID: "b", Text: "5"}},
			TimeLimit: &timeLimit,
		}},
		{ID: "m3", Type: content.TypeDragDrop, Title: "Sort", Order: 2, Content: content.DefaultContentFor(content.TypeDragDrop)},
		{ID: "m4", Type: content.TypeCodeQuestion, Title: "Code", Order: 3, Content: content.DefaultContentFor(content.TypeCodeQuestion)},
	}
}

func TestCourseRepository(t *testing.T, repos Repositories) {
	ctx := context.Background()
	repo := repos.Courses

	old := NewCourse("c-old", epoch, true)
	recent := NewCourse("c-new", epoch.Add(time.Hour), true)
	recent.ImageURL = "https://img.test/c.png"
	draft := NewCourse("c-draft", epoch.Add(2*time.Hour), false)
	for _, c := range []course.Course{old, recent, draft} {
		created, err := repo.CreateCourse(ctx, c)
		require.NoError(t, err)
		assert.Equal(t, c, created)
	}

	t.Run("published newest first", func(t *testing.T) {
		courses, err := repo.QueryPublishedCourses(ctx)
		require.NoError(t, err)
		require.Len(t, courses, 2)
		assert.Equal(t, recent, courses[0])
		assert.Equal(t, old, courses[1])
	})

	t.Run("get unknown course", func(t *testing.T) {
		_, err := repo.GetCourseByID(ctx, "ghost")
		assert.ErrorIs(t, err, course.ErrNotFound)
	})

	t.Run("replace modules", func(t *testing.T) {
		mods := sampleModules()
		updatedAt := epoch.Add(3 * time.Hour)
		require.NoError(t, repo.ReplaceCourseModules(ctx, old.ID, mods, updatedAt))

		got, err := repo.GetCourseByID(ctx, old.ID)
		require.NoError(t, err)
		assert.Equal(t, mods, got.Modules)
		assert.Equal(t, updatedAt, got.UpdatedAt)

		// stored modules are returned with the published list too
		courses, err := repo.QueryPublishedCourses(ctx)
		require.NoError(t, err)
		assert.Equal(t, mods, courses[1].Modules)

		// replacing drops the modules not in the new list
		require.NoError(t, repo.ReplaceCourseModules(ctx, old.ID, mods[2:], updatedAt))
		got, err = repo.GetCourseByID(ctx, old.ID)
		require.NoError(t, err)
		assert.Equal(t, mods[2:], got.Modules)

		require.NoError(t, repo.ReplaceCourseModules(ctx, old.ID, nil, updatedAt))
		got, err = repo.GetCourseByID(ctx, old.ID)
		require.NoError(t, err)
		assert.Empty(t, got.Modules)
	})

	t.Run("replace modules of unknown course", func(t *testing.T) {
		err := repo.ReplaceCourseModules(ctx, "ghost", sampleModules(), epoch)
		assert.ErrorIs(t, err, course.ErrNotFound)
	})
}

func TestOnboardingRepository(t *testing.T, repos Repositories) {
	ctx := context.Background()
	repo := repos.Onboarding

	_, err := repo.GetProfile(ctx, "ext-1")
	assert.ErrorIs(t, err, onboarding.ErrNotFound)
	_, err = repo.GetAnswers(ctx, "ext-1")
	assert.ErrorIs(t, err, onboarding.ErrNotFound)

	prof := NewProfile("u-1", "ext-1", epoch)
	saved, err := repo.SaveOnboarding(ctx, prof, Answers())
	require.NoError(t, err)
	assert.Equal(t, prof, saved)

	got, err := repo.GetProfile(ctx, "ext-1")
	require.NoError(t, err)
	assert.Equal(t, prof, got)

	answers, err := repo.GetAnswers(ctx, "ext-1")
	require.NoError(t, err)
	assert.Equal(t, Answers(), answers)

	t.Run("resubmission overwrites answers", func(t *testing.T) {
		later := epoch.Add(time.Hour)
		again := NewProfile("u-other", "ext-1", later)
		again.Email = ""
		again.ExperienceLevel = "Advanced"
		newAnswers := Answers()
		newAnswers[onboarding.QuestionExperience] = "Advanced"

		saved, err := repo.SaveOnboarding(ctx, again, newAnswers)
		require.NoError(t, err)
		assert.Equal(t, "u-1", saved.UserID)
		assert.Equal(t, prof.Email, saved.Email)
		assert.Equal(t, "Advanced", saved.ExperienceLevel)
		assert.Equal(t, epoch, saved.CreatedAt)
		assert.Equal(t, later, saved.UpdatedAt)

		answers, err := repo.GetAnswers(ctx, "ext-1")
		require.NoError(t, err)
		assert.Equal(t, newAnswers, answers)
	})

	t.Run("subscription tier", func(t *testing.T) {
		updated, err := repo.SetSubscriptionTier(ctx, "ext-1", onboarding.TierPro, epoch.Add(2*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, onboarding.TierPro, updated.SubscriptionTier)

		// resubmitting keeps the tier
		_, err = repo.SaveOnboarding(ctx, NewProfile("u-1", "ext-1", epoch.Add(3*time.Hour)), Answers())
		require.NoError(t, err)
		got, err := repo.GetProfile(ctx, "ext-1")
		require.NoError(t, err)
		assert.Equal(t, onboarding.TierPro, got.SubscriptionTier)

		_, err = repo.SetSubscriptionTier(ctx, "ghost", onboarding.TierPro, epoch)
		assert.ErrorIs(t, err, onboarding.ErrNotFound)
	})

	t.Run("reset", func(t *testing.T) {
		require.NoError(t, repo.ResetOnboarding(ctx, "ext-1", epoch.Add(4*time.Hour)))
		got, err := repo.GetProfile(ctx, "ext-1")
		require.NoError(t, err)
		assert.False(t, got.HasCompletedOnboarding)
		assert.Equal(t, epoch.Add(4*time.Hour), got.UpdatedAt)

		assert.ErrorIs(t, repo.ResetOnboarding(ctx, "ghost", epoch), onboarding.ErrNotFound)
	})
}

func TestProgressRepository(t *testing.T, repos Repositories) {
	ctx := context.Background()
	repo := repos.Progress

	_, err := repos.Onboarding.SaveOnboarding(ctx, NewProfile("u-1", "ext-1", epoch), Answers())
	require.NoError(t, err)
	for i, id := range []string{"c-1", "c-2"} {
		_, err = repos.Courses.CreateCourse(ctx, NewCourse(id, epoch.Add(time.Duration(i)*time.Hour), true))
		require.NoError(t, err)
	}

	enrolled, err := repo.IsEnrolled(ctx, "u-1", "c-1")
	require.NoError(t, err)
	assert.False(t, enrolled)

	require.NoError(t, repo.Enroll(ctx, "u-1", "c-1", epoch))
	require.NoError(t, repo.Enroll(ctx, "u-1", "c-2", epoch.Add(time.Minute)))
	require.NoError(t, repo.Enroll(ctx, "u-1", "c-1", epoch.Add(time.Hour))) // no-op

	enrolled, err = repo.IsEnrolled(ctx, "u-1", "c-1")
	require.NoError(t, err)
	assert.True(t, enrolled)

	enrollments, err := repo.Enrollments(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, []progress.Enrollment{
		{CourseID: "c-2", EnrolledAt: epoch.Add(time.Minute)},
		{CourseID: "c-1", EnrolledAt: epoch},
	}, enrollments)

	done, err := repo.CompletedModules(ctx, "u-1", "c-1")
	require.NoError(t, err)
	assert.Empty(t, done)

	require.NoError(t, repo.CompleteModule(ctx, "u-1", "c-1", "m2", epoch))
	require.NoError(t, repo.CompleteModule(ctx, "u-1", "c-1", "m1", epoch.Add(time.Second)))
	require.NoError(t, repo.CompleteModule(ctx, "u-1", "c-1", "m2", epoch.Add(time.Hour))) // no-op

	done, err = repo.CompletedModules(ctx, "u-1", "c-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"m2", "m1"}, done)
}

func TestStatsRepository(t *testing.T, repos Repositories) {
	ctx := context.Background()

	for i, ext := range []string{"ext-1", "ext-2", "ext-3"} {
		at := epoch.AddDate(0, 0, -40+20*i) // -40, -20, 0 days
		_, err := repos.Onboarding.SaveOnboarding(ctx, NewProfile("u-"+ext, ext, at), Answers())
		require.NoError(t, err)
	}
	require.NoError(t, repos.Onboarding.ResetOnboarding(ctx, "ext-3", epoch))

	for i, published := range []bool{true, true, false} {
		_, err := repos.Courses.CreateCourse(ctx, NewCourse(string(rune('a'+i)), epoch, published))
		require.NoError(t, err)
	}
	require.NoError(t, repos.Progress.Enroll(ctx, "u-ext-1", "a", epoch))
	require.NoError(t, repos.Progress.Enroll(ctx, "u-ext-2", "a", epoch))

	counts, err := repos.Stats.Counts(ctx, epoch.AddDate(0, 0, -30))
	require.NoError(t, err)
	assert.Equal(t, stats.Counts{
		TotalUsers:           3,
		NewUsers:             2,
		CompletedOnboardings: 2,
		TotalCourses:         3,
		PublishedCourses:     2,
		Enrollments:          2,
	}, counts)
}
