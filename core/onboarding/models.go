package onboarding

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/kelasdev/kelas/core"
)

type (
	// Answers maps question ids to the chosen option.
	Answers map[int]string

	// Identity is the user as known by the external identity provider.
	Identity struct {
		ExternalID string
		Email      string
		Name       string
	}

	Profile struct {
		UserID                 string    `json:"user_id"`
		ExternalID             string    `json:"external_id"`
		Email                  string    `json:"email"`
		Name                   string    `json:"name"`
		ExperienceLevel        string    `json:"experience_level"`
		PreferredLanguage      string    `json:"preferred_language"`
		LearningGoal           string    `json:"learning_goal"`
		WeeklyTime             string    `json:"weekly_time"`
		ProjectType            string    `json:"project_type"`
		HasCompletedOnboarding bool      `json:"has_completed_onboarding"`
		SubscriptionTier       Tier      `json:"subscription_tier"`
		CreatedAt              time.Time `json:"created_at"`
		UpdatedAt              time.Time `json:"updated_at"`
	}

	Status struct {
		Completed bool     `json:"has_completed_onboarding"`
		Profile   *Profile `json:"profile"`
	}
)

func (a Answers) Clone() Answers {
	out := make(Answers, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// QuestionIDs returns the answered question ids in ascending order.
func (a Answers) QuestionIDs() []int {
	ids := make([]int, 0, len(a))
	for id := range a {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Validate checks that every question is answered with one of its options and that no unknown question is.
func (a Answers) Validate() error {
	var flds []core.FieldError
	for _, id := range a.QuestionIDs() {
		if _, ok := QuestionByID(id); !ok {
			flds = append(flds, core.FieldError{Field: fmt.Sprintf("answers.%d", id), Error: "unknown question"})
		}
	}
	for _, q := range Questions {
		field := fmt.Sprintf("answers.%d", q.ID)
		answer, ok := a[q.ID]
		switch {
		case !ok || strings.TrimSpace(answer) == "":
			flds = append(flds, core.FieldError{Field: field, Error: "this question must be answered"})
		case !q.Accepts(answer):
			flds = append(flds, core.FieldError{Field: field, Error: "invalid answer"})
		}
	}
	if len(flds) > 0 {
		return core.NewValidationError(nil, flds...)
	}
	return nil
}

// apply copies the answers onto the profile fields.
func (p *Profile) apply(a Answers) {
	p.ExperienceLevel = a[QuestionExperience]
	p.PreferredLanguage = a[QuestionLanguage]
	p.LearningGoal = a[QuestionGoal]
	p.WeeklyTime = a[QuestionWeeklyTime]
	p.ProjectType = a[QuestionProjectType]
}

func (p Profile) Person() core.Person {
	return core.Person{ID: p.ExternalID, Name: p.Name, Email: p.Email}
}
