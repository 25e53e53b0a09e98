package onboarding

import "sort"

// Languages
const (
	English Language = "en"
	Malay   Language = "id"
)

// Question ids, in questionnaire order.
const (
	QuestionExperience = iota + 1
	QuestionLanguage
	QuestionGoal
	QuestionWeeklyTime
	QuestionProjectType
)

type (
	Language string

	Localized struct {
		En string `json:"en"`
		ID string `json:"id"`
	}

	LocalizedList struct {
		En []string `json:"en"`
		ID []string `json:"id"`
	}

	Question struct {
		ID       int           `json:"id"`
		Question Localized     `json:"question"`
		Options  LocalizedList `json:"options"`
	}

	// QuestionView is a Question rendered in a single language.
	QuestionView struct {
		ID       int      `json:"id"`
		Question string   `json:"question"`
		Options  []string `json:"options"`
	}
)

var Questions = []Question{
	{
		ID: QuestionExperience,
		Question: Localized{
			En: "What's your current programming experience level?",
			ID: "Apakah tahap pengalaman pengaturcaraan anda sekarang?",
		},
		Options: LocalizedList{
			En: []string{"Complete beginner", "Some experience", "Intermediate", "Advanced"},
			ID: []string{"Pemula sepenuhnya", "Ada sedikit pengalaman", "Pertengahan", "Mahir"},
		},
	},
	{
		ID: QuestionLanguage,
		Question: Localized{
			En: "Which programming languages are you most interested in learning?",
			ID: "Bahasa pengaturcaraan manakah yang paling anda berminat untuk dipelajari?",
		},
		Options: LocalizedList{
			En: []string{"JavaScript", "Python", "Java", "C++", "React", "TypeScript"},
			ID: []string{"JavaScript", "Python", "Java", "C++", "React", "TypeScript"},
		},
	},
	{
		ID: QuestionGoal,
		Question: Localized{
			En: "What's your primary goal for learning to code?",
			ID: "Apakah matlamat utama anda untuk belajar mengkod?",
		},
		Options: LocalizedList{
			En: []string{"Career change", "Build personal projects", "Improve current job skills", "Academic purposes", "Just for fun"},
			ID: []string{"Tukar kerjaya", "Bina projek peribadi", "Tingkatkan kemahiran kerja semasa", "Tujuan akademik", "Sekadar untuk keseronokan"},
		},
	},
	{
		ID: QuestionWeeklyTime,
		Question: Localized{
			En: "How much time can you dedicate to learning per week?",
			ID: "Berapa banyak masa yang boleh anda dedikasikan untuk belajar setiap minggu?",
		},
		Options: LocalizedList{
			En: []string{"1-3 hours", "4-7 hours", "8-15 hours", "16+ hours"},
			ID: []string{"1-3 jam", "4-7 jam", "8-15 jam", "16+ jam"},
		},
	},
	{
		ID: QuestionProjectType,
		Question: Localized{
			En: "What type of projects would you like to build?",
			ID: "Jenis projek apakah yang anda ingin bina?",
		},
		Options: LocalizedList{
			En: []string{"Web applications", "Mobile apps", "Games", "Data analysis", "AI/Machine Learning", "Desktop applications"},
			ID: []string{"Aplikasi web", "Aplikasi mudah alih", "Permainan", "Analisis data", "AI/Pembelajaran Mesin", "Aplikasi desktop"},
		},
	},
}

// ParseLanguage returns the Language matching s, defaulting to English.
func ParseLanguage(s string) Language {
	if Language(s) == Malay {
		return Malay
	}
	return English
}

func (l Localized) In(lang Language) string {
	if lang == Malay {
		return l.ID
	}
	return l.En
}

func (l LocalizedList) In(lang Language) []string {
	if lang == Malay {
		return l.ID
	}
	return l.En
}

func (q Question) In(lang Language) QuestionView {
	return QuestionView{ID: q.ID, Question: q.Question.In(lang), Options: q.Options.In(lang)}
}

// Accepts reports whether answer is one of the options of q, in any language.
func (q Question) Accepts(answer string) bool {
	for _, opts := range [][]string{q.Options.En, q.Options.ID} {
		for _, opt := range opts {
			if opt == answer {
				return true
			}
		}
	}
	return false
}

// QuestionByID returns the question with the given id.
func QuestionByID(id int) (Question, bool) {
	i := sort.Search(len(Questions), func(i int) bool { return Questions[i].ID >= id })
	if i < len(Questions) && Questions[i].ID == id {
		return Questions[i], true
	}
	return Question{}, false
}

// QuestionsIn renders every question in lang.
func QuestionsIn(lang Language) []QuestionView {
	views := make([]QuestionView, len(Questions))
	for i, q := range Questions {
		views[i] = q.In(lang)
	}
	return views
}
