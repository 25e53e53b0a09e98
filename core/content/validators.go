package content

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/kelasdev/kelas/core"
)

var (
	uniqueIDsTag  = "uniqueids"
	uniqueIDsText = "{0} must have unique ids"

	knownItemsTag  = "knownitems"
	knownItemsText = "{0} must only reference existing items"

	oneCorrectTag  = "onecorrect"
	oneCorrectText = "exactly one option must be correct"
)

// InitValidators registers the struct level rules of the content variants on validate.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	validate.RegisterStructValidation(contentStructValidation, DragDrop{}, MultipleChoice{})
	core.RegisterCustomTranslation(validate, translator, uniqueIDsTag, uniqueIDsText)
	core.RegisterCustomTranslation(validate, translator, knownItemsTag, knownItemsText)
	core.RegisterCustomTranslation(validate, translator, oneCorrectTag, oneCorrectText)
}

// Validate checks c against the constraints of its variant.
func Validate(validate *validator.Validate, c Content) error {
	if c == nil {
		return core.NewValidationError(nil, core.FieldError{Field: "content", Error: "content is required"})
	}
	return validate.Struct(c)
}

func contentStructValidation(sl validator.StructLevel) {
	switch c := sl.Current().Interface().(type) {
	case DragDrop:
		validateDragDrop(c, sl)
	case MultipleChoice:
		validateMultipleChoice(c, sl)
	}
}

// validateDragDrop checks that item & zone ids are unique and that zones only reference existing items.
func validateDragDrop(dd DragDrop, sl validator.StructLevel) {
	items := make(map[string]struct{}, len(dd.Items))
	for _, it := range dd.Items {
		if _, dup := items[it.ID]; dup {
			sl.ReportError(dd.Items, "items", "Items", uniqueIDsTag, "")
			break
		}
		items[it.ID] = struct{}{}
	}

	zones := make(map[string]struct{}, len(dd.DropZones))
	for _, z := range dd.DropZones {
		if _, dup := zones[z.ID]; dup {
			sl.ReportError(dd.DropZones, "drop_zones", "DropZones", uniqueIDsTag, "")
			break
		}
		zones[z.ID] = struct{}{}
	}

	for _, z := range dd.DropZones {
		for _, id := range z.CorrectItems {
			if _, ok := items[id]; !ok {
				sl.ReportError(dd.DropZones, "drop_zones", "DropZones", knownItemsTag, "")
				return
			}
		}
	}
}

// validateMultipleChoice checks that option ids are unique and that exactly one option is correct.
func validateMultipleChoice(mc MultipleChoice, sl validator.StructLevel) {
	var correct int
	ids := make(map[string]struct{}, len(mc.Options))
	for _, opt := range mc.Options {
		if _, dup := ids[opt.ID]; dup {
			sl.ReportError(mc.Options, "options", "Options", uniqueIDsTag, "")
			return
		}
		ids[opt.ID] = struct{}{}
		if opt.IsCorrect {
			correct++
		}
	}
	if len(mc.Options) > 0 && correct != 1 {
		sl.ReportError(mc.Options, "options", "Options", oneCorrectTag, "")
	}
}
