package onboarding

import (
	"context"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/kelasdev/kelas/core"
)

var (
	// errors
	ErrNotFound       = errors.New("profile not found")
	ErrResetForbidden = errors.New("onboarding reset is only available outside production")
)

var newUserID = uuid.NewString

type (
	Repository interface {
		// SaveOnboarding upserts the user & profile keyed by Profile.ExternalID and records the raw answers.
		// An existing user keeps its id, subscription tier and creation date.
		SaveOnboarding(ctx context.Context, prof Profile, answers Answers) (Profile, error)
		GetProfile(ctx context.Context, externalID string) (Profile, error)
		// GetAnswers returns the latest answer of every question answered by the user.
		GetAnswers(ctx context.Context, externalID string) (Answers, error)
		ResetOnboarding(ctx context.Context, externalID string, at time.Time) error
		SetSubscriptionTier(ctx context.Context, externalID string, tier Tier, at time.Time) (Profile, error)
	}

	Service struct {
		repo    Repository
		mailSvc core.EmailService
		conf    *core.Config
	}
)

func NewService(repo Repository, mailSvc core.EmailService, conf *core.Config) *Service {
	return &Service{repo: repo, mailSvc: mailSvc, conf: conf}
}

// Submit validates and stores the answers of ident, marking the onboarding as completed.
// Resubmitting overwrites the previous answers. A welcome email is sent on first completion.
func (svc *Service) Submit(ctx context.Context, ident Identity, answers Answers) (Profile, error) {
	if core.CleanString(ident.ExternalID) == "" {
		return Profile{}, core.NewValidationError(nil, core.FieldError{Field: "identity", Error: "this field is required"})
	}
	if err := answers.Validate(); err != nil {
		return Profile{}, err
	}

	var firstCompletion bool
	prev, err := svc.repo.GetProfile(ctx, ident.ExternalID)
	switch {
	case errors.Is(err, ErrNotFound):
		firstCompletion = true
	case err != nil:
		return Profile{}, errors.Wrap(err, "loading profile")
	default:
		firstCompletion = !prev.HasCompletedOnboarding
	}

	now := core.Now()
	prof := Profile{
		UserID:                 newUserID(),
		ExternalID:             ident.ExternalID,
		Email:                  core.CleanString(ident.Email, true /* lower */),
		Name:                   core.CleanString(ident.Name),
		HasCompletedOnboarding: true,
		SubscriptionTier:       TierFree,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
	prof.apply(answers)

	saved, err := svc.repo.SaveOnboarding(ctx, prof, answers)
	if err != nil {
		return Profile{}, errors.Wrap(err, "saving onboarding")
	}

	if firstCompletion && saved.Email != "" {
		svc.sendWelcomeMail(saved)
	}
	return saved, nil
}

// Submitter returns a Submitter storing the answers of ident, for use by a Flow.
func (svc *Service) Submitter(ident Identity) Submitter {
	return SubmitterFunc(func(ctx context.Context, answers Answers) error {
		_, err := svc.Submit(ctx, ident, answers)
		return err
	})
}

// Status reports whether the user completed the onboarding. A missing user is reported as not completed.
func (svc *Service) Status(ctx context.Context, externalID string) (Status, error) {
	prof, err := svc.repo.GetProfile(ctx, externalID)
	if errors.Is(err, ErrNotFound) {
		return Status{}, nil
	}
	if err != nil {
		return Status{}, err
	}
	return Status{Completed: prof.HasCompletedOnboarding, Profile: &prof}, nil
}

func (svc *Service) Answers(ctx context.Context, externalID string) (Answers, error) {
	return svc.repo.GetAnswers(ctx, externalID)
}

// Reset clears the completed flag of the user so that the questionnaire is asked again.
// It is refused in production.
func (svc *Service) Reset(ctx context.Context, externalID string) error {
	if svc.conf.IsProduction() {
		return ErrResetForbidden
	}
	return svc.repo.ResetOnboarding(ctx, externalID, core.Now())
}

// SelectTier stores the chosen subscription tier on the user's profile.
func (svc *Service) SelectTier(ctx context.Context, externalID string, tier Tier) (Profile, error) {
	if _, ok := PlanByTier(tier); !ok {
		return Profile{}, core.NewValidationError(nil, core.FieldError{Field: "tier", Error: "unknown subscription tier"})
	}
	return svc.repo.SetSubscriptionTier(ctx, externalID, tier, core.Now())
}

func (svc *Service) sendWelcomeMail(prof Profile) {
	plan, _ := PlanByTier(prof.SubscriptionTier)
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: prof.Name, Address: prof.Email}},
		Subject:      "Welcome aboard!",
		TemplateName: "welcome",
		TemplateData: map[string]interface{}{
			"Name":     prof.Name,
			"Goal":     prof.LearningGoal,
			"Language": prof.PreferredLanguage,
			"Plan":     plan.Name.En,
		},
	})
}
