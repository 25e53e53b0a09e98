package course

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/kelasdev/kelas/core"
)

var (
	contentTypeTag  = "contenttype"
	contentTypeText = "unknown module type"

	contentMatchTag  = "contentmatch"
	contentMatchText = "content does not match the module type"

	uniqueModulesTag  = "uniquemodules"
	uniqueModulesText = "module ids must be unique"
)

// InitValidators registers the course & module rules on validate.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	validate.RegisterStructValidation(moduleStructValidation, Module{})
	validate.RegisterStructValidation(courseStructValidation, Course{})
	core.RegisterCustomTranslation(validate, translator, contentTypeTag, contentTypeText)
	core.RegisterCustomTranslation(validate, translator, contentMatchTag, contentMatchText)
	core.RegisterCustomTranslation(validate, translator, uniqueModulesTag, uniqueModulesText)
}

// moduleStructValidation checks that the module content has the shape tagged by its type.
func moduleStructValidation(sl validator.StructLevel) {
	m := sl.Current().Interface().(Module)
	if !m.Type.Valid() {
		sl.ReportError(m.Type, "type", "Type", contentTypeTag, "")
		return
	}
	if m.Content != nil && m.Content.Type() != m.Type {
		sl.ReportError(m.Content, "content", "Content", contentMatchTag, "")
	}
}

func courseStructValidation(sl validator.StructLevel) {
	c := sl.Current().Interface().(Course)
	ids := make(map[string]struct{}, len(c.Modules))
	for _, m := range c.Modules {
		if _, dup := ids[m.ID]; dup {
			sl.ReportError(c.Modules, "modules", "Modules", uniqueModulesTag, "")
			return
		}
		ids[m.ID] = struct{}{}
	}
}
