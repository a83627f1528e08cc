package modes

// SelectableVec is a list with one selected element. Moving the selection
// wraps around at either end.
type SelectableVec[T any] struct {
	items    []T
	selected int
}

// NewSelectableVec selects the first of items.
func NewSelectableVec[T any](items []T) *SelectableVec[T] {
	return &SelectableVec[T]{items: items}
}

// Set replaces the items and selects the first one.
func (v *SelectableVec[T]) Set(items []T) {
	v.items = items
	v.selected = 0
}

func (v *SelectableVec[T]) Items() []T { return v.items }
func (v *SelectableVec[T]) Len() int   { return len(v.items) }
func (v *SelectableVec[T]) Empty() bool {
	return len(v.items) == 0
}

// SelectedIndex is the index of the selection; meaningless when empty.
func (v *SelectableVec[T]) SelectedIndex() int { return v.selected }

// Selection returns the selected element.
func (v *SelectableVec[T]) Selection() (T, bool) {
	var zero T
	if v.selected < 0 || v.selected >= len(v.items) {
		return zero, false
	}
	return v.items[v.selected], true
}

// SetSelectedIndex selects index, reporting false when it is out of range.
func (v *SelectableVec[T]) SetSelectedIndex(index int) bool {
	if index < 0 || index >= len(v.items) {
		return false
	}
	v.selected = index
	return true
}

// SelectNext advances the selection, wrapping to the first item.
func (v *SelectableVec[T]) SelectNext() {
	if len(v.items) == 0 {
		return
	}
	v.selected = (v.selected + 1) % len(v.items)
}

// SelectPrevious moves the selection back, wrapping to the last item.
func (v *SelectableVec[T]) SelectPrevious() {
	if len(v.items) == 0 {
		return
	}
	v.selected = (v.selected - 1 + len(v.items)) % len(v.items)
}
