package content

// default payload values
const (
	defaultIntroText       = "Enter your introduction text here..."
	defaultIntroIcon       = "📚"
	defaultIntroBackground = "#f0f9ff"

	defaultDragDropQuestion     = "Drag the items to the correct zones"
	defaultDragDropInstructions = "Drag and drop instructions"

	defaultMCQuestion    = "Enter your question here"
	defaultMCExplanation = "Explanation for the correct answer"

	defaultCodeQuestion = "Write a function that..."
	defaultCodeTemplate = "// Write your code here\nfunction solution() {\n  \n}"
	defaultCodeOutput   = "Expected output"
	defaultCodeLanguage = "javascript"
)

// DefaultContentFor returns the starting payload of a freshly added module of type t.
// It returns nil for an unknown type.
func DefaultContentFor(t Type) Content {
	switch t {
	case TypeIntroduction:
		return Introduction{
			Text:            defaultIntroText,
			Icon:            defaultIntroIcon,
			BackgroundColor: defaultIntroBackground,
		}
	case TypeDragDrop:
		return DragDrop{
			Question:     defaultDragDropQuestion,
			Items:        []DragItem{{ID: "item1", Text: "Item 1"}},
			DropZones:    []DropZone{{ID: "zone1", Label: "Zone 1", CorrectItems: []string{"item1"}}},
			Instructions: defaultDragDropInstructions,
		}
	case TypeMultipleChoice:
		return MultipleChoice{
			Question: defaultMCQuestion,
			Options: []Option{
				{ID: "opt1", Text: "Option 1", IsCorrect: true},
				{ID: "opt2", Text: "Option 2"},
			},
			Explanation: defaultMCExplanation,
		}
	case TypeCodeQuestion:
		return CodeQuestion{
			Question:       defaultCodeQuestion,
			InitialCode:    defaultCodeTemplate,
			ExpectedOutput: defaultCodeOutput,
			Language:       defaultCodeLanguage,
			Hints:          []string{"Hint 1"},
			TestCases:      []TestCase{{Input: "test input", ExpectedOutput: "expected output"}},
		}
	}
	return nil
}
