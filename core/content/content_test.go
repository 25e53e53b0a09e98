package content_test

import (
	"encoding/json"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kelasdev/kelas/core"
	"github.com/kelasdev/kelas/core/content"
)

func newValidator() *validator.Validate {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	content.InitValidators(validate, translator)
	return validate
}

// failedTags returns {field: tag} of the validation errors in err.
func failedTags(t *testing.T, err error) map[string]string {
	t.Helper()
	var vErrs validator.ValidationErrors
	require.True(t, errors.As(err, &vErrs), "expected validation errors, got %v", err)
	tags := make(map[string]string, len(vErrs))
	for _, fe := range vErrs {
		tags[fe.Field()] = fe.Tag()
	}
	return tags
}

func intPtr(i int) *int { return &i }

func TestDefaultContentFor(t *testing.T) {
	validate := newValidator()

	for _, typ := range content.Types {
		t.Run(string(typ), func(t *testing.T) {
			c := content.DefaultContentFor(typ)
			require.NotNil(t, c)
			assert.Equal(t, typ, c.Type())
			assert.NoError(t, content.Validate(validate, c))
		})
	}

	t.Run("unknown", func(t *testing.T) {
		assert.Nil(t, content.DefaultContentFor("video"))
	})

	t.Run("multiple choice", func(t *testing.T) {
		mc := content.DefaultContentFor(content.TypeMultipleChoice).(content.MultipleChoice)
		require.Len(t, mc.Options, 2)
		assert.True(t, mc.Options[0].IsCorrect)
		assert.False(t, mc.Options[1].IsCorrect)
		assert.Equal(t, 0, mc.CorrectOption())
	})

	t.Run("drag drop", func(t *testing.T) {
		dd := content.DefaultContentFor(content.TypeDragDrop).(content.DragDrop)
		require.Len(t, dd.DropZones, 1)
		assert.Equal(t, []string{"item1"}, dd.DropZones[0].CorrectItems)
		_, ok := dd.Item("item1")
		assert.True(t, ok)
	})
}

func TestTypeDisplayName(t *testing.T) {
	assert.Equal(t, "Multiple Choice", content.TypeMultipleChoice.DisplayName())
	assert.Equal(t, "Code Challenge", content.TypeCodeQuestion.DisplayName())
	assert.Equal(t, "video", content.Type("video").DisplayName())
	assert.True(t, content.TypeDragDrop.Valid())
	assert.False(t, content.Type("video").Valid())
}

func TestValidate(t *testing.T) {
	validate := newValidator()

	tests := []struct {
		name    string
		content content.Content
		want    map[string]string
	}{
		{
			name:    "blank introduction text",
			content: content.Introduction{Text: "  ", Icon: "📚", BackgroundColor: "#fff"},
			want:    map[string]string{"text": "notblank"},
		},
		{
			name:    "invalid background color",
			content: content.Introduction{Text: "Hi", Icon: "📚", BackgroundColor: "blue-ish"},
			want:    map[string]string{"background_color": "hexcolor"},
		},
		{
			name: "duplicate drag drop items",
			content: content.DragDrop{
				Question: "Sort",
				Items:    []content.DragItem{{ID: "a", Text: "A"}, {ID: "a", Text: "B"}},
			},
			want: map[string]string{"items": "uniqueids"},
		},
		{
			name: "zone referencing unknown item",
			content: content.DragDrop{
				Question:  "Sort",
				Items:     []content.DragItem{{ID: "a", Text: "A"}},
				DropZones: []content.DropZone{{ID: "z", Label: "Z", CorrectItems: []string{"a", "ghost"}}},
			},
			want: map[string]string{"drop_zones": "knownitems"},
		},
		{
			name: "two correct options",
			content: content.MultipleChoice{
				Question: "Pick",
				Options:  []content.Option{{ID: "1", IsCorrect: true}, {ID: "2", IsCorrect: true}},
			},
			want: map[string]string{"options": "onecorrect"},
		},
		{
			name: "no correct option",
			content: content.MultipleChoice{
				Question: "Pick",
				Options:  []content.Option{{ID: "1"}, {ID: "2"}},
			},
			want: map[string]string{"options": "onecorrect"},
		},
		{
			name:    "no options",
			content: content.MultipleChoice{Question: "Pick"},
			want:    map[string]string{"options": "required"},
		},
		{
			name: "zero time limit",
			content: content.MultipleChoice{
				Question:  "Pick",
				Options:   []content.Option{{ID: "1", IsCorrect: true}},
				TimeLimit: intPtr(0),
			},
			want: map[string]string{"time_limit": "gt"},
		},
		{
			name:    "blank code question",
			content: content.CodeQuestion{Language: "go"},
			want:    map[string]string{"question": "notblank"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := content.Validate(validate, tc.content)
			assert.Equal(t, tc.want, failedTags(t, err))
		})
	}

	t.Run("valid time limit", func(t *testing.T) {
		mc := content.MultipleChoice{
			Question:  "Pick",
			Options:   []content.Option{{ID: "1", IsCorrect: true}},
			TimeLimit: intPtr(30),
		}
		assert.NoError(t, content.Validate(validate, mc))
	})

	t.Run("nil content", func(t *testing.T) {
		err := content.Validate(validate, nil)
		assert.True(t, core.IsValidationError(err))
	})
}

func TestDecode(t *testing.T) {
	t.Run("multiple choice", func(t *testing.T) {
		data := []byte(`{"question":"Q?","options":[{"id":"a","text":"A","is_correct":true}],"time_limit":20}`)
		c, err := content.Decode(content.TypeMultipleChoice, data)
		require.NoError(t, err)

		mc, ok := c.(content.MultipleChoice)
		require.True(t, ok)
		assert.Equal(t, "Q?", mc.Question)
		assert.Equal(t, []content.Option{{ID: "a", Text: "A", IsCorrect: true}}, mc.Options)
		require.NotNil(t, mc.TimeLimit)
		assert.Equal(t, 20, *mc.TimeLimit)
	})

	t.Run("empty payload", func(t *testing.T) {
		c, err := content.Decode(content.TypeCodeQuestion, nil)
		require.NoError(t, err)
		cq := c.(content.CodeQuestion)
		assert.NotNil(t, cq.Hints)
		assert.Empty(t, cq.Hints)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := content.Decode("video", []byte(`{}`))
		assert.Equal(t, content.ErrUnknownType, errors.Cause(err))
	})

	t.Run("malformed payload", func(t *testing.T) {
		_, err := content.Decode(content.TypeIntroduction, []byte(`{"text":1}`))
		assert.Error(t, err)
	})
}

func TestMerge(t *testing.T) {
	orig := content.DefaultContentFor(content.TypeMultipleChoice)

	t.Run("overlays given fields only", func(t *testing.T) {
		p := content.Patch{}.Set("question", "What is Go?").Set("time_limit", 45)
		merged, err := content.Merge(orig, p)
		require.NoError(t, err)

		mc := merged.(content.MultipleChoice)
		assert.Equal(t, "What is Go?", mc.Question)
		assert.Equal(t, 45, *mc.TimeLimit)
		assert.Equal(t, orig.(content.MultipleChoice).Options, mc.Options)
		assert.Equal(t, orig.(content.MultipleChoice).Explanation, mc.Explanation)
	})

	t.Run("ignores unknown fields", func(t *testing.T) {
		merged, err := content.Merge(orig, content.Patch{"icon": json.RawMessage(`"🚀"`)})
		require.NoError(t, err)
		assert.Equal(t, orig, merged)
	})

	t.Run("does not alias the original", func(t *testing.T) {
		merged, err := content.Merge(orig, nil)
		require.NoError(t, err)
		mc := merged.(content.MultipleChoice)
		mc.Options[0].Text = "changed"
		assert.Equal(t, "Option 1", orig.(content.MultipleChoice).Options[0].Text)
	})

	t.Run("wrong field type", func(t *testing.T) {
		_, err := content.Merge(orig, content.Patch{"options": json.RawMessage(`"nope"`)})
		assert.Error(t, err)
	})
}

func TestMatch(t *testing.T) {
	name := func(c content.Content) string {
		return content.Match(c,
			func(content.Introduction) string { return "intro" },
			func(content.DragDrop) string { return "dd" },
			func(content.MultipleChoice) string { return "mc" },
			func(content.CodeQuestion) string { return "code" },
		)
	}
	assert.Equal(t, "intro", name(content.Introduction{}))
	assert.Equal(t, "dd", name(content.DragDrop{}))
	assert.Equal(t, "mc", name(content.MultipleChoice{}))
	assert.Equal(t, "code", name(content.CodeQuestion{}))
	assert.Panics(t, func() { name(nil) })
}
