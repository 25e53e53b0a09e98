package inmemdb

import (
	"context"
	"time"

	"github.com/kelasdev/kelas/core/onboarding"
)

type onboardingRepository struct {
	db *DB
}

var _ onboarding.Repository = (*onboardingRepository)(nil) // interface compliance check

func NewOnboardingRepository(db *DB) onboarding.Repository {
	return &onboardingRepository{db: db}
}

// profile must be called with the lock held.
func (repo *onboardingRepository) profile(externalID string) (*userRow, *profileRow, bool) {
	usr, ok := repo.db.users[externalID]
	if !ok {
		return nil, nil, false
	}
	prof, ok := repo.db.profiles[usr.id]
	if !ok {
		return usr, nil, false
	}
	return usr, prof, true
}

func (repo *onboardingRepository) view(usr *userRow, prof *profileRow) onboarding.Profile {
	p := prof.Profile
	p.UserID = usr.id
	p.ExternalID = usr.externalID
	p.Email = usr.email
	p.Name = usr.name
	return p
}

func (repo *onboardingRepository) SaveOnboarding(_ context.Context, prof onboarding.Profile, answers onboarding.Answers) (onboarding.Profile, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	usr, ok := repo.db.users[prof.ExternalID]
	if !ok {
		usr = &userRow{
			id:         prof.UserID,
			externalID: prof.ExternalID,
			createdAt:  prof.CreatedAt,
		}
		repo.db.users[prof.ExternalID] = usr
	}
	if prof.Email != "" {
		usr.email = prof.Email
	}
	if prof.Name != "" {
		usr.name = prof.Name
	}
	usr.updatedAt = prof.UpdatedAt

	row, ok := repo.db.profiles[usr.id]
	if !ok {
		row = &profileRow{Profile: prof}
		repo.db.profiles[usr.id] = row
	} else {
		row.ExperienceLevel = prof.ExperienceLevel
		row.PreferredLanguage = prof.PreferredLanguage
		row.LearningGoal = prof.LearningGoal
		row.WeeklyTime = prof.WeeklyTime
		row.ProjectType = prof.ProjectType
		row.HasCompletedOnboarding = prof.HasCompletedOnboarding
		row.UpdatedAt = prof.UpdatedAt
	}
	row.answers = answers.Clone()

	return repo.view(usr, row), nil
}

func (repo *onboardingRepository) GetProfile(_ context.Context, externalID string) (onboarding.Profile, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	usr, prof, ok := repo.profile(externalID)
	if !ok {
		return onboarding.Profile{}, onboarding.ErrNotFound
	}
	return repo.view(usr, prof), nil
}

func (repo *onboardingRepository) GetAnswers(_ context.Context, externalID string) (onboarding.Answers, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	usr, prof, ok := repo.profile(externalID)
	if usr == nil {
		return nil, onboarding.ErrNotFound
	}
	if !ok {
		return make(onboarding.Answers), nil
	}
	return prof.answers.Clone(), nil
}

func (repo *onboardingRepository) ResetOnboarding(_ context.Context, externalID string, at time.Time) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	_, prof, ok := repo.profile(externalID)
	if !ok {
		return onboarding.ErrNotFound
	}
	prof.HasCompletedOnboarding = false
	prof.UpdatedAt = at
	return nil
}

func (repo *onboardingRepository) SetSubscriptionTier(_ context.Context, externalID string, tier onboarding.Tier, at time.Time) (onboarding.Profile, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	usr, prof, ok := repo.profile(externalID)
	if !ok {
		return onboarding.Profile{}, onboarding.ErrNotFound
	}
	prof.SubscriptionTier = tier
	prof.UpdatedAt = at
	return repo.view(usr, prof), nil
}
