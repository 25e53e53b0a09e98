package onboarding_test

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kelasdev/kelas/core"
	"github.com/kelasdev/kelas/core/onboarding"
	appfs "github.com/kelasdev/kelas/fs"
	emailsvc "github.com/kelasdev/kelas/services/email"
	logsvc "github.com/kelasdev/kelas/services/logger"
	inmemdb "github.com/kelasdev/kelas/storage/database/inmem"
)

func newService(t *testing.T, conf *core.Config) (*onboarding.Service, *emailsvc.ConsoleServiceMock) {
	t.Helper()
	tmpls, err := core.ParseEmailTemplates(appfs.EmailTemplates(), conf)
	require.NoError(t, err)
	logger := logsvc.NewRollbarLogger(log.New(io.Discard, "", 0), conf)
	mailSvc := emailsvc.NewConsoleServiceMock(conf, tmpls, logger)
	return onboarding.NewService(inmemdb.NewOnboardingRepository(inmemdb.Open()), mailSvc, conf), mailSvc
}

func answers() onboarding.Answers {
	return onboarding.Answers{
		onboarding.QuestionExperience:  "Some experience",
		onboarding.QuestionLanguage:    "Python",
		onboarding.QuestionGoal:        "Career change",
		onboarding.QuestionWeeklyTime:  "4-7 hours",
		onboarding.QuestionProjectType: "Web applications",
	}
}

func TestService_Submit(t *testing.T) {
	ctx := context.Background()
	svc, mailSvc := newService(t, core.NewTestConfig())
	ident := onboarding.Identity{ExternalID: "ext-1", Email: " Ada@Kelas.Test ", Name: "Ada"}

	t.Run("missing identity", func(t *testing.T) {
		_, err := svc.Submit(ctx, onboarding.Identity{}, answers())
		assert.True(t, core.IsValidationError(err))
	})

	t.Run("incomplete answers", func(t *testing.T) {
		a := answers()
		delete(a, onboarding.QuestionGoal)
		_, err := svc.Submit(ctx, ident, a)
		require.True(t, core.IsValidationError(err))
		assert.EqualError(t, err, "answers.3: this question must be answered")

		status, err := svc.Status(ctx, ident.ExternalID)
		require.NoError(t, err)
		assert.False(t, status.Completed)
		assert.Nil(t, status.Profile)
	})

	var first onboarding.Profile
	t.Run("first submission", func(t *testing.T) {
		prof, err := svc.Submit(ctx, ident, answers())
		require.NoError(t, err)
		first = prof
		assert.NotEmpty(t, prof.UserID)
		assert.Equal(t, "ada@kelas.test", prof.Email)
		assert.True(t, prof.HasCompletedOnboarding)
		assert.Equal(t, onboarding.TierFree, prof.SubscriptionTier)
		assert.Equal(t, "Python", prof.PreferredLanguage)
		assert.Equal(t, "Web applications", prof.ProjectType)

		sent := mailSvc.SentMessages()
		require.Len(t, sent, 1)
		assert.Equal(t, "ada@kelas.test", sent[0].To[0].Address)
		assert.Contains(t, sent[0].TextContent, "Hi Ada,")
		assert.Contains(t, sent[0].TextContent, "goal: Career change")
		assert.Contains(t, sent[0].HTMLContent, "<li>plan: Free</li>")
	})

	t.Run("resubmission overwrites answers", func(t *testing.T) {
		a := answers()
		a[onboarding.QuestionLanguage] = "Java"
		prof, err := svc.Submit(ctx, onboarding.Identity{ExternalID: ident.ExternalID}, a)
		require.NoError(t, err)
		assert.Equal(t, first.UserID, prof.UserID)
		assert.Equal(t, "Java", prof.PreferredLanguage)
		assert.Equal(t, "ada@kelas.test", prof.Email, "empty identity fields keep the stored ones")

		stored, err := svc.Answers(ctx, ident.ExternalID)
		require.NoError(t, err)
		assert.Equal(t, a, stored)

		assert.Len(t, mailSvc.SentMessages(), 1, "no welcome email on resubmission")
	})
}

func TestService_Status(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, core.NewTestConfig())

	status, err := svc.Status(ctx, "unknown")
	require.NoError(t, err)
	assert.Equal(t, onboarding.Status{}, status)

	_, err = svc.Submit(ctx, onboarding.Identity{ExternalID: "ext-1"}, answers())
	require.NoError(t, err)

	status, err = svc.Status(ctx, "ext-1")
	require.NoError(t, err)
	assert.True(t, status.Completed)
	require.NotNil(t, status.Profile)
	assert.Equal(t, "ext-1", status.Profile.ExternalID)
}

func TestService_Reset(t *testing.T) {
	ctx := context.Background()

	t.Run("production", func(t *testing.T) {
		conf := core.NewTestConfig()
		conf.Env = "PROD"
		svc, _ := newService(t, conf)
		assert.Equal(t, onboarding.ErrResetForbidden, svc.Reset(ctx, "ext-1"))
	})

	t.Run("unknown user", func(t *testing.T) {
		svc, _ := newService(t, core.NewTestConfig())
		assert.True(t, errors.Is(svc.Reset(ctx, "ext-1"), onboarding.ErrNotFound))
	})

	t.Run("reset then resubmit", func(t *testing.T) {
		orig := core.NowFunc
		t.Cleanup(func() { core.NowFunc = orig })
		core.NowFunc = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }

		svc, mailSvc := newService(t, core.NewTestConfig())
		ident := onboarding.Identity{ExternalID: "ext-1", Email: "a@kelas.test"}
		_, err := svc.Submit(ctx, ident, answers())
		require.NoError(t, err)

		core.NowFunc = func() time.Time { return time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC) }
		require.NoError(t, svc.Reset(ctx, ident.ExternalID))

		status, err := svc.Status(ctx, ident.ExternalID)
		require.NoError(t, err)
		assert.False(t, status.Completed)
		require.NotNil(t, status.Profile)
		assert.Equal(t, time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC), status.Profile.UpdatedAt)

		_, err = svc.Submit(ctx, ident, answers())
		require.NoError(t, err)
		assert.Len(t, mailSvc.SentMessages(), 2, "completing again after a reset sends the welcome email")
	})
}

func TestService_SelectTier(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, core.NewTestConfig())

	_, err := svc.SelectTier(ctx, "ext-1", onboarding.TierPro)
	assert.True(t, errors.Is(err, onboarding.ErrNotFound))

	_, err = svc.Submit(ctx, onboarding.Identity{ExternalID: "ext-1"}, answers())
	require.NoError(t, err)

	_, err = svc.SelectTier(ctx, "ext-1", "platinum")
	require.True(t, core.IsValidationError(err))

	prof, err := svc.SelectTier(ctx, "ext-1", onboarding.TierPro)
	require.NoError(t, err)
	assert.Equal(t, onboarding.TierPro, prof.SubscriptionTier)

	prof, err = svc.Submit(ctx, onboarding.Identity{ExternalID: "ext-1"}, answers())
	require.NoError(t, err)
	assert.Equal(t, onboarding.TierPro, prof.SubscriptionTier, "resubmitting keeps the tier")
}

func TestPlans(t *testing.T) {
	pro, ok := onboarding.PlanByTier(onboarding.TierPro)
	require.True(t, ok)
	assert.Equal(t, 19, pro.MonthlyPrice)
	assert.Equal(t, 190, pro.YearlyPrice)
	assert.True(t, pro.Popular)

	_, ok = onboarding.PlanByTier("platinum")
	assert.False(t, ok)
}
