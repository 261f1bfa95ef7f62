package scene

// SelectionSet tracks which items are currently selected. Members are kept in
// selection order; the anchor is the most recently added member and serves as
// the reference frame for multi-item drags. The owning scene evicts items
// from the set when they are removed, so the set never outlives its members.
type SelectionSet struct {
	members []*PlacedItem
}

// NewSelectionSet creates an empty selection.
func NewSelectionSet() *SelectionSet {
	return &SelectionSet{}
}

// Len returns the number of selected items.
func (s *SelectionSet) Len() int {
	return len(s.members)
}

// Contains reports whether the item is selected.
func (s *SelectionSet) Contains(item *PlacedItem) bool {
	return s.indexOf(item) >= 0
}

// Items returns the selected items in selection order. The returned slice is
// a copy.
func (s *SelectionSet) Items() []*PlacedItem {
	out := make([]*PlacedItem, len(s.members))
	copy(out, s.members)
	return out
}

// Anchor returns the most recently added member, or nil when empty.
func (s *SelectionSet) Anchor() *PlacedItem {
	if len(s.members) == 0 {
		return nil
	}
	return s.members[len(s.members)-1]
}

// Add adds an item to the selection, making it the anchor. Adding an already
// selected item re-anchors it.
func (s *SelectionSet) Add(item *PlacedItem) {
	if item == nil {
		return
	}
	s.remove(item)
	s.members = append(s.members, item)
}

// Toggle adds the item if absent and removes it if present (ctrl/cmd-click).
func (s *SelectionSet) Toggle(item *PlacedItem) {
	if item == nil {
		return
	}
	if s.Contains(item) {
		s.remove(item)
		return
	}
	s.members = append(s.members, item)
}

// SetSingle replaces the selection with the single given item.
func (s *SelectionSet) SetSingle(item *PlacedItem) {
	s.members = s.members[:0]
	if item != nil {
		s.members = append(s.members, item)
	}
}

// Clear empties the selection.
func (s *SelectionSet) Clear() {
	s.members = s.members[:0]
}

// remove drops the item from the selection if present.
func (s *SelectionSet) remove(item *PlacedItem) {
	if i := s.indexOf(item); i >= 0 {
		s.members = append(s.members[:i], s.members[i+1:]...)
	}
}

func (s *SelectionSet) indexOf(item *PlacedItem) int {
	for i, m := range s.members {
		if m == item {
			return i
		}
	}
	return -1
}
