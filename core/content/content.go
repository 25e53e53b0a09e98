// Package content defines the payloads a course module can carry.
//
// Content is a closed sum type: Introduction, DragDrop, MultipleChoice and CodeQuestion are its only
// variants. Consumers use Match to handle every variant.
package content

import "github.com/google/uuid"

// Type is the tag identifying the shape of a module's content.
type Type string

// Content types
const (
	TypeIntroduction   Type = "introduction"
	TypeDragDrop       Type = "drag-drop"
	TypeMultipleChoice Type = "multiple-choice"
	TypeCodeQuestion   Type = "code-question"
)

var (
	Types = []Type{TypeIntroduction, TypeDragDrop, TypeMultipleChoice, TypeCodeQuestion}

	displayNames = map[Type]string{
		TypeIntroduction:   "Introduction & Background",
		TypeDragDrop:       "Drag & Drop Quiz",
		TypeMultipleChoice: "Multiple Choice",
		TypeCodeQuestion:   "Code Challenge",
	}
)

// NewID generates ids for modules, drag-drop items & zones and multiple-choice options.
var NewID = func() string { return uuid.NewString() } // mockable

func (t Type) Valid() bool {
	_, ok := displayNames[t]
	return ok
}

// DisplayName returns the human-readable name of t, or t itself when unknown.
func (t Type) DisplayName() string {
	if name, ok := displayNames[t]; ok {
		return name
	}
	return string(t)
}

// Content is implemented by the four module payloads only.
type Content interface {
	Type() Type
	sealed()
}

type (
	Introduction struct {
		Text            string `json:"text" validate:"notblank"`
		Icon            string `json:"icon" validate:"notblank"`
		Image           string `json:"image,omitempty" validate:"omitempty,max=500"`
		BackgroundColor string `json:"background_color" validate:"required,hexcolor"`
	}

	DragItem struct {
		ID   string `json:"id" validate:"notblank"`
		Text string `json:"text"`
	}

	DropZone struct {
		ID           string   `json:"id" validate:"notblank"`
		Label        string   `json:"label"`
		CorrectItems []string `json:"correct_items"`
	}

	DragDrop struct {
		Question     string     `json:"question" validate:"notblank"`
		Items        []DragItem `json:"items" validate:"dive"`
		DropZones    []DropZone `json:"drop_zones" validate:"dive"`
		Instructions string     `json:"instructions"`
	}

	Option struct {
		ID        string `json:"id" validate:"notblank"`
		Text      string `json:"text"`
		IsCorrect bool   `json:"is_correct"`
	}

	MultipleChoice struct {
		Question    string   `json:"question" validate:"notblank"`
		Options     []Option `json:"options" validate:"required,min=1,dive"`
		Explanation string   `json:"explanation"`
		TimeLimit   *int     `json:"time_limit,omitempty" validate:"omitempty,gt=0"` // seconds
	}

	TestCase struct {
		Input          string `json:"input"`
		ExpectedOutput string `json:"expected_output"`
	}

	CodeQuestion struct {
		Question       string     `json:"question" validate:"notblank"`
		InitialCode    string     `json:"initial_code"`
		ExpectedOutput string     `json:"expected_output"`
		Language       string     `json:"language" validate:"max=50"`
		Hints          []string   `json:"hints"`
		TestCases      []TestCase `json:"test_cases"`
	}
)

func (Introduction) Type() Type   { return TypeIntroduction }
func (DragDrop) Type() Type       { return TypeDragDrop }
func (MultipleChoice) Type() Type { return TypeMultipleChoice }
func (CodeQuestion) Type() Type   { return TypeCodeQuestion }

func (Introduction) sealed()   {}
func (DragDrop) sealed()       {}
func (MultipleChoice) sealed() {}
func (CodeQuestion) sealed()   {}

// Match calls the function matching the variant of c and returns its result.
// It panics if c is nil.
func Match[T any](
	c Content,
	intro func(Introduction) T,
	dragDrop func(DragDrop) T,
	multipleChoice func(MultipleChoice) T,
	codeQuestion func(CodeQuestion) T,
) T {
	switch v := c.(type) {
	case Introduction:
		return intro(v)
	case DragDrop:
		return dragDrop(v)
	case MultipleChoice:
		return multipleChoice(v)
	case CodeQuestion:
		return codeQuestion(v)
	}
	panic("content: unmatched variant")
}

// Item returns the drag-drop item with the given id.
func (dd DragDrop) Item(id string) (DragItem, bool) {
	for _, it := range dd.Items {
		if it.ID == id {
			return it, true
		}
	}
	return DragItem{}, false
}

// CorrectOption returns the index of the first correct option, or -1.
func (mc MultipleChoice) CorrectOption() int {
	for i, opt := range mc.Options {
		if opt.IsCorrect {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of c, so that editing the copy never aliases the original slices.
// Nil slices of the copy are replaced by empty ones.
func Clone(c Content) Content {
	if c == nil {
		return nil
	}
	return Match(c,
		func(v Introduction) Content { return v },
		func(v DragDrop) Content {
			v.Items = cloneSlice(v.Items)
			zones := make([]DropZone, len(v.DropZones))
			for i, z := range v.DropZones {
				z.CorrectItems = cloneSlice(z.CorrectItems)
				zones[i] = z
			}
			v.DropZones = zones
			return v
		},
		func(v MultipleChoice) Content {
			v.Options = cloneSlice(v.Options)
			if v.TimeLimit != nil {
				tl := *v.TimeLimit
				v.TimeLimit = &tl
			}
			return v
		},
		func(v CodeQuestion) Content {
			v.Hints = cloneSlice(v.Hints)
			v.TestCases = cloneSlice(v.TestCases)
			return v
		},
	)
}

func cloneSlice[T any](s []T) []T {
	out := make([]T, len(s))
	copy(out, s)
	return out
}
