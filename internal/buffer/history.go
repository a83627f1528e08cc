package buffer

type opKind int

const (
	opInsert opKind = iota
	opDelete
)

type operation struct {
	kind opKind
	pos  Position
	text string
}

type group []operation

// history keeps undo and redo stacks of operation groups. Operations recorded
// outside an explicit group form a group of their own.
type history struct {
	undo    []group
	redo    []group
	current group
	open    bool
}

func (h *history) start() {
	h.end()
	h.open = true
}

func (h *history) end() {
	if h.open && len(h.current) > 0 {
		h.undo = append(h.undo, h.current)
	}
	h.current = nil
	h.open = false
}

func (h *history) record(op operation) {
	h.redo = nil
	if h.open {
		h.current = append(h.current, op)
		return
	}
	h.undo = append(h.undo, group{op})
}

func (h *history) popUndo() (group, bool) {
	if len(h.undo) == 0 {
		return nil, false
	}
	g := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, g)
	return g, true
}

func (h *history) popRedo() (group, bool) {
	if len(h.redo) == 0 {
		return nil, false
	}
	g := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, g)
	return g, true
}
