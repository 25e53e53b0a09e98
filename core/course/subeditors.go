package course

import (
	"fmt"

	"github.com/kelasdev/kelas/core/content"
)

// Drag-drop sub-editors

// AddItem appends a drag-drop item and returns its id. An empty text defaults to "Item <n>".
func (e *Editor) AddItem(moduleID, text string) (string, bool) {
	id := content.NewID()
	ok := updateContent(e, moduleID, func(dd *content.DragDrop) bool {
		if text == "" {
			text = fmt.Sprintf("Item %d", len(dd.Items)+1)
		}
		dd.Items = append(dd.Items, content.DragItem{ID: id, Text: text})
		return true
	})
	if !ok {
		return "", false
	}
	return id, true
}

// RemoveItem removes a drag-drop item and every reference to it from the drop zones.
func (e *Editor) RemoveItem(moduleID, itemID string) bool {
	return updateContent(e, moduleID, func(dd *content.DragDrop) bool {
		i := indexOf(dd.Items, func(it content.DragItem) bool { return it.ID == itemID })
		if i < 0 {
			return false
		}
		dd.Items = append(dd.Items[:i], dd.Items[i+1:]...)
		for z := range dd.DropZones {
			dd.DropZones[z].CorrectItems = without(dd.DropZones[z].CorrectItems, itemID)
		}
		return true
	})
}

func (e *Editor) RenameItem(moduleID, itemID, text string) bool {
	return updateContent(e, moduleID, func(dd *content.DragDrop) bool {
		i := indexOf(dd.Items, func(it content.DragItem) bool { return it.ID == itemID })
		if i < 0 {
			return false
		}
		dd.Items[i].Text = text
		return true
	})
}

// AddDropZone appends an empty drop zone and returns its id. An empty label defaults to "Zone <n>".
func (e *Editor) AddDropZone(moduleID, label string) (string, bool) {
	id := content.NewID()
	ok := updateContent(e, moduleID, func(dd *content.DragDrop) bool {
		if label == "" {
			label = fmt.Sprintf("Zone %d", len(dd.DropZones)+1)
		}
		dd.DropZones = append(dd.DropZones, content.DropZone{ID: id, Label: label, CorrectItems: []string{}})
		return true
	})
	if !ok {
		return "", false
	}
	return id, true
}

func (e *Editor) RemoveDropZone(moduleID, zoneID string) bool {
	return updateContent(e, moduleID, func(dd *content.DragDrop) bool {
		i := indexOf(dd.DropZones, func(z content.DropZone) bool { return z.ID == zoneID })
		if i < 0 {
			return false
		}
		dd.DropZones = append(dd.DropZones[:i], dd.DropZones[i+1:]...)
		return true
	})
}

func (e *Editor) RenameDropZone(moduleID, zoneID, label string) bool {
	return updateContent(e, moduleID, func(dd *content.DragDrop) bool {
		i := indexOf(dd.DropZones, func(z content.DropZone) bool { return z.ID == zoneID })
		if i < 0 {
			return false
		}
		dd.DropZones[i].Label = label
		return true
	})
}

// ToggleZoneItem adds the item to the zone's correct set, or removes it if already there.
func (e *Editor) ToggleZoneItem(moduleID, zoneID, itemID string) bool {
	return updateContent(e, moduleID, func(dd *content.DragDrop) bool {
		if _, ok := dd.Item(itemID); !ok {
			return false
		}
		i := indexOf(dd.DropZones, func(z content.DropZone) bool { return z.ID == zoneID })
		if i < 0 {
			return false
		}
		zone := &dd.DropZones[i]
		if indexOf(zone.CorrectItems, func(id string) bool { return id == itemID }) >= 0 {
			zone.CorrectItems = without(zone.CorrectItems, itemID)
		} else {
			zone.CorrectItems = append(zone.CorrectItems, itemID)
		}
		return true
	})
}

// Multiple-choice sub-editors

// AddOption appends an incorrect option and returns its id. An empty text defaults to "Option <n>".
func (e *Editor) AddOption(moduleID, text string) (string, bool) {
	id := content.NewID()
	ok := updateContent(e, moduleID, func(mc *content.MultipleChoice) bool {
		if text == "" {
			text = fmt.Sprintf("Option %d", len(mc.Options)+1)
		}
		mc.Options = append(mc.Options, content.Option{ID: id, Text: text})
		return true
	})
	if !ok {
		return "", false
	}
	return id, true
}

// RemoveOption removes an option. The last remaining option cannot be removed.
// If the removed option was the correct one, the first remaining option becomes correct.
func (e *Editor) RemoveOption(moduleID, optionID string) bool {
	return updateContent(e, moduleID, func(mc *content.MultipleChoice) bool {
		i := indexOf(mc.Options, func(o content.Option) bool { return o.ID == optionID })
		if i < 0 || len(mc.Options) == 1 {
			return false
		}
		wasCorrect := mc.Options[i].IsCorrect
		mc.Options = append(mc.Options[:i], mc.Options[i+1:]...)
		if wasCorrect {
			mc.Options[0].IsCorrect = true
		}
		return true
	})
}

func (e *Editor) SetOptionText(moduleID, optionID, text string) bool {
	return updateContent(e, moduleID, func(mc *content.MultipleChoice) bool {
		i := indexOf(mc.Options, func(o content.Option) bool { return o.ID == optionID })
		if i < 0 {
			return false
		}
		mc.Options[i].Text = text
		return true
	})
}

// SelectCorrectOption marks optionID as the only correct option.
func (e *Editor) SelectCorrectOption(moduleID, optionID string) bool {
	return updateContent(e, moduleID, func(mc *content.MultipleChoice) bool {
		if indexOf(mc.Options, func(o content.Option) bool { return o.ID == optionID }) < 0 {
			return false
		}
		for i := range mc.Options {
			mc.Options[i].IsCorrect = mc.Options[i].ID == optionID
		}
		return true
	})
}

// Code-question sub-editors

// AddHint appends a hint. An empty text defaults to "Hint <n>".
func (e *Editor) AddHint(moduleID, text string) bool {
	return updateContent(e, moduleID, func(cq *content.CodeQuestion) bool {
		if text == "" {
			text = fmt.Sprintf("Hint %d", len(cq.Hints)+1)
		}
		cq.Hints = append(cq.Hints, text)
		return true
	})
}

func (e *Editor) SetHint(moduleID string, index int, text string) bool {
	return updateContent(e, moduleID, func(cq *content.CodeQuestion) bool {
		if index < 0 || index >= len(cq.Hints) {
			return false
		}
		cq.Hints[index] = text
		return true
	})
}

func (e *Editor) RemoveHint(moduleID string, index int) bool {
	return updateContent(e, moduleID, func(cq *content.CodeQuestion) bool {
		if index < 0 || index >= len(cq.Hints) {
			return false
		}
		cq.Hints = append(cq.Hints[:index], cq.Hints[index+1:]...)
		return true
	})
}

func (e *Editor) AddTestCase(moduleID string, tc content.TestCase) bool {
	return updateContent(e, moduleID, func(cq *content.CodeQuestion) bool {
		cq.TestCases = append(cq.TestCases, tc)
		return true
	})
}

func (e *Editor) SetTestCase(moduleID string, index int, tc content.TestCase) bool {
	return updateContent(e, moduleID, func(cq *content.CodeQuestion) bool {
		if index < 0 || index >= len(cq.TestCases) {
			return false
		}
		cq.TestCases[index] = tc
		return true
	})
}

func (e *Editor) RemoveTestCase(moduleID string, index int) bool {
	return updateContent(e, moduleID, func(cq *content.CodeQuestion) bool {
		if index < 0 || index >= len(cq.TestCases) {
			return false
		}
		cq.TestCases = append(cq.TestCases[:index], cq.TestCases[index+1:]...)
		return true
	})
}

func indexOf[T any](s []T, match func(T) bool) int {
	for i, v := range s {
		if match(v) {
			return i
		}
	}
	return -1
}

func without(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
