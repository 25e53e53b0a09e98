package course

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/kelasdev/kelas/core/content"
)

// Difficulty levels
const (
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"
	Advanced     Difficulty = "advanced"
)

var Difficulties = []Difficulty{Beginner, Intermediate, Advanced}

type (
	Difficulty string

	Course struct {
		ID          string     `json:"id"`
		Title       string     `json:"title" validate:"notblank,max=255"`
		Description string     `json:"description"`
		Difficulty  Difficulty `json:"difficulty" validate:"oneof=beginner intermediate advanced"`
		Language    string     `json:"language" validate:"notblank,max=50"`
		ImageURL    string     `json:"image_url,omitempty" validate:"omitempty,max=500"`
		IsPublished bool       `json:"is_published"`
		Modules     []Module   `json:"modules" validate:"dive"`
		CreatedAt   time.Time  `json:"created_at"`
		UpdatedAt   time.Time  `json:"updated_at"`
	}

	// Module is one content unit of a course. Content always has the shape tagged by Type.
	Module struct {
		ID      string          `json:"id" validate:"notblank"`
		Type    content.Type    `json:"type" validate:"required"`
		Title   string          `json:"title" validate:"max=255"`
		Order   int             `json:"order"`
		Content content.Content `json:"content" validate:"required"`
	}

	NewCourse struct {
		Title       string     `json:"title" validate:"notblank,max=255"`
		Description string     `json:"description"`
		Difficulty  Difficulty `json:"difficulty" validate:"oneof=beginner intermediate advanced"`
		Language    string     `json:"language" validate:"notblank,max=50"`
		ImageURL    string     `json:"image_url" validate:"omitempty,max=500"`
	}
)

type moduleJSON struct {
	ID      string          `json:"id"`
	Type    content.Type    `json:"type"`
	Title   string          `json:"title"`
	Order   int             `json:"order"`
	Content json.RawMessage `json:"content"`
}

func (m *Module) UnmarshalJSON(data []byte) error {
	var aux moduleJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	c, err := content.Decode(aux.Type, aux.Content)
	if err != nil {
		return err
	}
	*m = Module{ID: aux.ID, Type: aux.Type, Title: aux.Title, Order: aux.Order, Content: c}
	return nil
}

// Module returns the module with the given id.
func (c Course) Module(id string) (Module, bool) {
	if i := c.moduleIndex(id); i >= 0 {
		return c.Modules[i], true
	}
	return Module{}, false
}

func (c Course) moduleIndex(id string) int {
	for i, m := range c.Modules {
		if m.ID == id {
			return i
		}
	}
	return -1
}

// Normalize sorts the modules by their stored order then re-sequences them to 0..n-1.
// Stored orders are never trusted as-is.
func (c *Course) Normalize() {
	sort.SliceStable(c.Modules, func(i, j int) bool { return c.Modules[i].Order < c.Modules[j].Order })
	c.resequence()
}

func (c *Course) resequence() {
	if c.Modules == nil {
		c.Modules = make([]Module, 0)
	}
	for i := range c.Modules {
		c.Modules[i].Order = i
	}
}

// Clone returns a copy of c sharing no module or content memory with it.
func (c Course) Clone() Course {
	mods := make([]Module, len(c.Modules))
	for i, m := range c.Modules {
		m.Content = content.Clone(m.Content)
		mods[i] = m
	}
	c.Modules = mods
	return c
}

// DecodeModules parses a JSON array of modules, as stored or received from clients.
func DecodeModules(data []byte) ([]Module, error) {
	mods := make([]Module, 0)
	if len(data) == 0 {
		return mods, nil
	}
	if err := json.Unmarshal(data, &mods); err != nil {
		return nil, errors.Wrap(err, "decoding modules")
	}
	if mods == nil {
		mods = make([]Module, 0)
	}
	return mods, nil
}
