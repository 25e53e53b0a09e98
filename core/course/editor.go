package course

import (
	"encoding/json"

	"github.com/kelasdev/kelas/core"
	"github.com/kelasdev/kelas/core/content"
)

// Move directions
const (
	Up   Direction = "up"
	Down Direction = "down"
)

type (
	Direction string

	// ModuleUpdate is a partial update of a module. Nil/empty fields are left untouched.
	ModuleUpdate struct {
		Title   *string       `json:"title"`
		Content content.Patch `json:"content"`
	}

	// Editor is the only mutation surface of a course's module list.
	// It also tracks the selected module of the editing session.
	// An Editor is not safe for concurrent use.
	Editor struct {
		course   Course
		selected string
	}
)

// NewEditor returns an Editor working on a copy of c.
func NewEditor(c Course) *Editor {
	c = c.Clone()
	c.Normalize()
	return &Editor{course: c}
}

// Course returns a copy of the edited course.
func (e *Editor) Course() Course {
	return e.course.Clone()
}

// Modules returns a copy of the edited module list.
func (e *Editor) Modules() []Module {
	return e.course.Clone().Modules
}

// Selected returns the selected module, if any.
func (e *Editor) Selected() (Module, bool) {
	if e.selected == "" {
		return Module{}, false
	}
	return e.course.Module(e.selected)
}

// Select marks the module with the given id as selected.
func (e *Editor) Select(id string) bool {
	if e.course.moduleIndex(id) < 0 {
		return false
	}
	e.selected = id
	return true
}

func (e *Editor) touch() {
	e.course.UpdatedAt = core.Now()
}

// AddModule appends a module of type t with its default content and selects it.
// An empty title defaults to "New <type display name>".
// It returns false only if t is not a known content type.
func (e *Editor) AddModule(t content.Type, title string) (Module, bool) {
	c := content.DefaultContentFor(t)
	if c == nil {
		return Module{}, false
	}
	if title = core.CleanString(title); title == "" {
		title = "New " + t.DisplayName()
	}

	m := Module{
		ID:      content.NewID(),
		Type:    t,
		Title:   title,
		Order:   len(e.course.Modules),
		Content: c,
	}
	e.course.Modules = append(e.course.Modules, m)
	e.course.resequence()
	e.selected = m.ID
	e.touch()
	return m, true
}

// UpdateModule applies upd to the module with the given id, shallow-merging the content patch.
// It returns false if no such module exists.
// The error is a *core.ValidationError when the content patch does not fit the module type.
func (e *Editor) UpdateModule(id string, upd ModuleUpdate) (bool, error) {
	i := e.course.moduleIndex(id)
	if i < 0 {
		return false, nil
	}

	m := e.course.Modules[i]
	if upd.Title != nil {
		m.Title = *upd.Title
	}
	if len(upd.Content) > 0 {
		c, err := content.Merge(m.Content, upd.Content)
		if err != nil {
			return false, core.NewValidationError(err, core.FieldError{Field: "content", Error: "invalid content for " + string(m.Type)})
		}
		m.Content = c
	}

	e.course.Modules[i] = m
	e.touch()
	return true, nil
}

// DeleteModule removes the module with the given id and clears the selection if it was selected.
func (e *Editor) DeleteModule(id string) bool {
	i := e.course.moduleIndex(id)
	if i < 0 {
		return false
	}

	e.course.Modules = append(e.course.Modules[:i], e.course.Modules[i+1:]...)
	e.course.resequence()
	if e.selected == id {
		e.selected = ""
	}
	e.touch()
	return true
}

// MoveModule swaps the module with its neighbour in the given direction.
// Moving the first module up or the last one down is a no-op and returns false.
func (e *Editor) MoveModule(id string, dir Direction) bool {
	i := e.course.moduleIndex(id)
	if i < 0 {
		return false
	}

	var j int
	switch dir {
	case Up:
		j = i - 1
	case Down:
		j = i + 1
	default:
		return false
	}
	if j < 0 || j >= len(e.course.Modules) {
		return false
	}

	mods := e.course.Modules
	mods[i], mods[j] = mods[j], mods[i]
	e.course.resequence()
	e.touch()
	return true
}

// updateContent funnels a typed content mutation into UpdateModule.
// It returns false if the module does not exist, is not of type T or if mutate reports no change.
func updateContent[T content.Content](e *Editor, moduleID string, mutate func(c *T) bool) bool {
	m, ok := e.course.Module(moduleID)
	if !ok {
		return false
	}
	c, ok := content.Clone(m.Content).(T)
	if !ok || !mutate(&c) {
		return false
	}

	raw, err := json.Marshal(c)
	if err != nil {
		return false
	}
	var patch content.Patch
	if err = json.Unmarshal(raw, &patch); err != nil {
		return false
	}
	updated, err := e.UpdateModule(moduleID, ModuleUpdate{Content: patch})
	return updated && err == nil
}
