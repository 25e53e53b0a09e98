package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/kelasdev/kelas/core/onboarding"
)

const profileQuery = `
SELECT u.id, u.external_id, u.email, u.name,
       p.experience_level, p.preferred_language, p.learning_goal, p.weekly_time, p.project_type,
       p.has_completed_onboarding, p.subscription_tier, p.created_at, p.updated_at
FROM users u
JOIN user_profiles p ON p.user_id = u.id
WHERE u.external_id = ?`

type (
	profileRow struct {
		UserID                 string      `db:"id"`
		ExternalID             string      `db:"external_id"`
		Email                  string      `db:"email"`
		Name                   string      `db:"name"`
		ExperienceLevel        null.String `db:"experience_level"`
		PreferredLanguage      null.String `db:"preferred_language"`
		LearningGoal           null.String `db:"learning_goal"`
		WeeklyTime             null.String `db:"weekly_time"`
		ProjectType            null.String `db:"project_type"`
		HasCompletedOnboarding bool        `db:"has_completed_onboarding"`
		SubscriptionTier       string      `db:"subscription_tier"`
		CreatedAt              int64       `db:"created_at"`
		UpdatedAt              int64       `db:"updated_at"`
	}

	responseRow struct {
		QuestionID int    `db:"question_id"`
		Answer     string `db:"answer"`
	}

	onboardingRepository struct {
		db *sqlx.DB
	}
)

var _ onboarding.Repository = (*onboardingRepository)(nil) // interface compliance check

func NewOnboardingRepository(db *sqlx.DB) onboarding.Repository {
	return &onboardingRepository{db: db}
}

func (r profileRow) profile() onboarding.Profile {
	return onboarding.Profile{
		UserID:                 r.UserID,
		ExternalID:             r.ExternalID,
		Email:                  r.Email,
		Name:                   r.Name,
		ExperienceLevel:        r.ExperienceLevel.String,
		PreferredLanguage:      r.PreferredLanguage.String,
		LearningGoal:           r.LearningGoal.String,
		WeeklyTime:             r.WeeklyTime.String,
		ProjectType:            r.ProjectType.String,
		HasCompletedOnboarding: r.HasCompletedOnboarding,
		SubscriptionTier:       onboarding.Tier(r.SubscriptionTier),
		CreatedAt:              fromMillis(r.CreatedAt),
		UpdatedAt:              fromMillis(r.UpdatedAt),
	}
}

func nullable(s string) null.String {
	return null.NewString(s, s != "")
}

// trapNoRowsErr maps "no rows" err to onboarding.ErrNotFound
func (repo *onboardingRepository) trapNoRowsErr(err error, msg string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return onboarding.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo *onboardingRepository) getProfile(ctx context.Context, q sqlx.QueryerContext, externalID string) (onboarding.Profile, error) {
	var row profileRow
	if err := sqlx.GetContext(ctx, q, &row, repo.db.Rebind(profileQuery), externalID); err != nil {
		return onboarding.Profile{}, repo.trapNoRowsErr(err, "getting profile")
	}
	return row.profile(), nil
}

// upsertUser returns the id of the user with prof.ExternalID, creating it if needed.
// Known email & name are only overwritten by non-empty values.
func (repo *onboardingRepository) upsertUser(ctx context.Context, tx *sqlx.Tx, prof onboarding.Profile) (string, error) {
	var userID string
	err := tx.GetContext(ctx, &userID, tx.Rebind("SELECT id FROM users WHERE external_id = ?"), prof.ExternalID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		q := tx.Rebind("INSERT INTO users (id, external_id, email, name, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)")
		if _, err = tx.ExecContext(ctx, q,
			prof.UserID, prof.ExternalID, prof.Email, prof.Name, toMillis(prof.CreatedAt), toMillis(prof.UpdatedAt)); err != nil {
			return "", errors.Wrap(err, "inserting user")
		}
		return prof.UserID, nil
	case err != nil:
		return "", errors.Wrap(err, "getting user")
	}

	q := tx.Rebind(`
UPDATE users
SET email = CASE WHEN ? = '' THEN email ELSE ? END,
    name = CASE WHEN ? = '' THEN name ELSE ? END,
    updated_at = ?
WHERE id = ?`)
	if _, err = tx.ExecContext(ctx, q, prof.Email, prof.Email, prof.Name, prof.Name, toMillis(prof.UpdatedAt), userID); err != nil {
		return "", errors.Wrap(err, "updating user")
	}
	return userID, nil
}

func (repo *onboardingRepository) SaveOnboarding(ctx context.Context, prof onboarding.Profile, answers onboarding.Answers) (onboarding.Profile, error) {
	var saved onboarding.Profile
	err := withTx(ctx, repo.db, func(tx *sqlx.Tx) error {
		userID, err := repo.upsertUser(ctx, tx, prof)
		if err != nil {
			return err
		}

		// answers
		if _, err = tx.ExecContext(ctx, tx.Rebind("DELETE FROM onboarding_responses WHERE user_id = ?"), userID); err != nil {
			return errors.Wrap(err, "deleting previous answers")
		}
		insAnswer := tx.Rebind("INSERT INTO onboarding_responses (id, user_id, question_id, answer, created_at) VALUES (?, ?, ?, ?, ?)")
		for _, qID := range answers.QuestionIDs() {
			if _, err = tx.ExecContext(ctx, insAnswer, uuid.NewString(), userID, qID, answers[qID], toMillis(prof.UpdatedAt)); err != nil {
				return errors.Wrap(err, "inserting answer")
			}
		}

		// profile
		res, err := tx.ExecContext(ctx, tx.Rebind(`
UPDATE user_profiles
SET experience_level = ?, preferred_language = ?, learning_goal = ?, weekly_time = ?, project_type = ?,
    has_completed_onboarding = ?, updated_at = ?
WHERE user_id = ?`),
			nullable(prof.ExperienceLevel), nullable(prof.PreferredLanguage), nullable(prof.LearningGoal),
			nullable(prof.WeeklyTime), nullable(prof.ProjectType), prof.HasCompletedOnboarding, toMillis(prof.UpdatedAt), userID)
		if err != nil {
			return errors.Wrap(err, "updating profile")
		}
		found, err := rowsAffected(res)
		if err != nil {
			return errors.Wrap(err, "updating profile")
		}
		if !found {
			_, err = tx.ExecContext(ctx, tx.Rebind(`
INSERT INTO user_profiles (user_id, experience_level, preferred_language, learning_goal, weekly_time, project_type,
                           has_completed_onboarding, subscription_tier, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
				userID, nullable(prof.ExperienceLevel), nullable(prof.PreferredLanguage), nullable(prof.LearningGoal),
				nullable(prof.WeeklyTime), nullable(prof.ProjectType), prof.HasCompletedOnboarding, string(prof.SubscriptionTier),
				toMillis(prof.CreatedAt), toMillis(prof.UpdatedAt))
			if err != nil {
				return errors.Wrap(err, "inserting profile")
			}
		}

		saved, err = repo.getProfile(ctx, tx, prof.ExternalID)
		return err
	})
	if err != nil {
		return onboarding.Profile{}, err
	}
	return saved, nil
}

func (repo *onboardingRepository) GetProfile(ctx context.Context, externalID string) (onboarding.Profile, error) {
	return repo.getProfile(ctx, repo.db, externalID)
}

func (repo *onboardingRepository) GetAnswers(ctx context.Context, externalID string) (onboarding.Answers, error) {
	var userID string
	err := repo.db.GetContext(ctx, &userID, repo.db.Rebind("SELECT id FROM users WHERE external_id = ?"), externalID)
	if err != nil {
		return nil, repo.trapNoRowsErr(err, "getting user")
	}

	var rows []responseRow
	q := repo.db.Rebind("SELECT question_id, answer FROM onboarding_responses WHERE user_id = ? ORDER BY question_id")
	if err = repo.db.SelectContext(ctx, &rows, q, userID); err != nil {
		return nil, errors.Wrap(err, "querying answers")
	}

	answers := make(onboarding.Answers, len(rows))
	for _, r := range rows {
		answers[r.QuestionID] = r.Answer
	}
	return answers, nil
}

// updateProfile runs set (a `SET ...` clause) on the profile of externalID.
func (repo *onboardingRepository) updateProfile(ctx context.Context, set string, externalID string, args ...interface{}) error {
	q := repo.db.Rebind("UPDATE user_profiles " + set + " WHERE user_id = (SELECT id FROM users WHERE external_id = ?)")
	res, err := repo.db.ExecContext(ctx, q, append(args, externalID)...)
	if err != nil {
		return errors.Wrap(err, "updating profile")
	}
	found, err := rowsAffected(res)
	if err != nil {
		return errors.Wrap(err, "updating profile")
	}
	if !found {
		return onboarding.ErrNotFound
	}
	return nil
}

func (repo *onboardingRepository) ResetOnboarding(ctx context.Context, externalID string, at time.Time) error {
	return repo.updateProfile(ctx, "SET has_completed_onboarding = ?, updated_at = ?", externalID, false, toMillis(at))
}

func (repo *onboardingRepository) SetSubscriptionTier(ctx context.Context, externalID string, tier onboarding.Tier, at time.Time) (onboarding.Profile, error) {
	if err := repo.updateProfile(ctx, "SET subscription_tier = ?, updated_at = ?", externalID, string(tier), toMillis(at)); err != nil {
		return onboarding.Profile{}, err
	}
	return repo.GetProfile(ctx, externalID)
}
