package course

import (
	"github.com/pkg/errors"

	"github.com/kelasdev/kelas/core/content"
)

// Sub-editor operation names
const (
	OpAddItem             = "add_item"
	OpRemoveItem          = "remove_item"
	OpRenameItem          = "rename_item"
	OpAddDropZone         = "add_drop_zone"
	OpRemoveDropZone      = "remove_drop_zone"
	OpRenameDropZone      = "rename_drop_zone"
	OpToggleZoneItem      = "toggle_zone_item"
	OpAddOption           = "add_option"
	OpRemoveOption        = "remove_option"
	OpSetOptionText       = "set_option_text"
	OpSelectCorrectOption = "select_correct_option"
	OpAddHint             = "add_hint"
	OpSetHint             = "set_hint"
	OpRemoveHint          = "remove_hint"
	OpAddTestCase         = "add_test_case"
	OpSetTestCase         = "set_test_case"
	OpRemoveTestCase      = "remove_test_case"
)

var ErrUnknownOp = errors.New("unknown module operation")

// Op is a serialized sub-editor call targeting one module.
type Op struct {
	Name     string           `json:"op" validate:"required"`
	TargetID string           `json:"target_id"` // item, zone or option id
	ItemID   string           `json:"item_id"`   // toggle_zone_item only
	Index    int              `json:"index"`
	Text     string           `json:"text"`
	TestCase content.TestCase `json:"test_case"`
}

// Apply runs op on the given module.
// It returns whether the module changed and, for the add_* operations creating an entity, the new id.
func (e *Editor) Apply(moduleID string, op Op) (changed bool, newID string, err error) {
	switch op.Name {
	case OpAddItem:
		newID, changed = e.AddItem(moduleID, op.Text)
	case OpRemoveItem:
		changed = e.RemoveItem(moduleID, op.TargetID)
	case OpRenameItem:
		changed = e.RenameItem(moduleID, op.TargetID, op.Text)
	case OpAddDropZone:
		newID, changed = e.AddDropZone(moduleID, op.Text)
	case OpRemoveDropZone:
		changed = e.RemoveDropZone(moduleID, op.TargetID)
	case OpRenameDropZone:
		changed = e.RenameDropZone(moduleID, op.TargetID, op.Text)
	case OpToggleZoneItem:
		changed = e.ToggleZoneItem(moduleID, op.TargetID, op.ItemID)
	case OpAddOption:
		newID, changed = e.AddOption(moduleID, op.Text)
	case OpRemoveOption:
		changed = e.RemoveOption(moduleID, op.TargetID)
	case OpSetOptionText:
		changed = e.SetOptionText(moduleID, op.TargetID, op.Text)
	case OpSelectCorrectOption:
		changed = e.SelectCorrectOption(moduleID, op.TargetID)
	case OpAddHint:
		changed = e.AddHint(moduleID, op.Text)
	case OpSetHint:
		changed = e.SetHint(moduleID, op.Index, op.Text)
	case OpRemoveHint:
		changed = e.RemoveHint(moduleID, op.Index)
	case OpAddTestCase:
		changed = e.AddTestCase(moduleID, op.TestCase)
	case OpSetTestCase:
		changed = e.SetTestCase(moduleID, op.Index, op.TestCase)
	case OpRemoveTestCase:
		changed = e.RemoveTestCase(moduleID, op.Index)
	default:
		return false, "", errors.Wrapf(ErrUnknownOp, "%q", op.Name)
	}
	return changed, newID, nil
}
