package history

// CardMode is the exclusive display mode of one session card. Modeling it
// as an enum makes illegal combinations (renaming while confirming a
// delete) unrepresentable.
type CardMode int

const (
	Viewing CardMode = iota
	Renaming
	ConfirmingDelete
)

func (m CardMode) String() string {
	switch m {
	case Renaming:
		return "renaming"
	case ConfirmingDelete:
		return "confirming-delete"
	default:
		return "viewing"
	}
}

// CardState is the transient, per-record UI state. It is never persisted.
// The expanded flag is orthogonal to the mode and toggles freely.
type CardState struct {
	mode     CardMode
	draft    string
	Expanded bool
}

// Mode returns the current display mode.
func (c *CardState) Mode() CardMode { return c.mode }

// BeginRename enters Renaming with the stored name as the editable draft.
// It is a no-op outside Viewing.
func (c *CardState) BeginRename(currentName string) bool {
	if c.mode != Viewing {
		return false
	}
	c.mode = Renaming
	c.draft = currentName
	return true
}

// Draft returns the rename input buffer.
func (c *CardState) Draft() string { return c.draft }

// SetDraft updates the rename input buffer while Renaming.
func (c *CardState) SetDraft(s string) {
	if c.mode == Renaming {
		c.draft = s
	}
}

// ConfirmRename leaves Renaming and hands the draft to the caller, which is
// expected to run Cache.Rename with it. Returns false outside Renaming.
func (c *CardState) ConfirmRename() (string, bool) {
	if c.mode != Renaming {
		return "", false
	}
	draft := c.draft
	c.mode = Viewing
	c.draft = ""
	return draft, true
}

// CancelRename discards the draft and reverts to Viewing without any
// rename call.
func (c *CardState) CancelRename() bool {
	if c.mode != Renaming {
		return false
	}
	c.mode = Viewing
	c.draft = ""
	return true
}

// RequestDelete enters ConfirmingDelete. It is a no-op outside Viewing.
func (c *CardState) RequestDelete() bool {
	if c.mode != Viewing {
		return false
	}
	c.mode = ConfirmingDelete
	return true
}

// CancelDelete reverts to Viewing without deleting.
func (c *CardState) CancelDelete() bool {
	if c.mode != ConfirmingDelete {
		return false
	}
	c.mode = Viewing
	return true
}

// ConfirmDelete leaves ConfirmingDelete; the caller runs Cache.Remove. When
// the removal fails the record simply stays and the card is back in
// Viewing, consistent with the write-through contract.
func (c *CardState) ConfirmDelete() bool {
	if c.mode != ConfirmingDelete {
		return false
	}
	c.mode = Viewing
	return true
}

// ToggleExpanded flips the orthogonal detail-pane flag.
func (c *CardState) ToggleExpanded() { c.Expanded = !c.Expanded }
