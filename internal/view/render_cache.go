package view

import "sort"

// RenderCacheFrequency is the line interval at which highlight state is
// checkpointed.
const RenderCacheFrequency = 100

// RenderState is what the renderer needs to resume highlighting at the start
// of a checkpointed line: the lexer state in effect there. Only lines where
// that state is the whole lexer stack are checkpointed.
type RenderState struct {
	State string
}

// RenderCache maps checkpointed line numbers to their RenderState.
type RenderCache struct {
	states map[int]RenderState
}

// NewRenderCache returns an empty cache.
func NewRenderCache() *RenderCache {
	return &RenderCache{states: make(map[int]RenderState)}
}

// Get returns the checkpoint recorded for line.
func (c *RenderCache) Get(line int) (RenderState, bool) {
	s, ok := c.states[line]
	return s, ok
}

// Set records a checkpoint for line.
func (c *RenderCache) Set(line int, s RenderState) {
	c.states[line] = s
}

// Nearest returns the closest checkpoint at or before line.
func (c *RenderCache) Nearest(line int) (int, RenderState, bool) {
	best, found := -1, false
	for l := range c.states {
		if l <= line && l > best {
			best, found = l, true
		}
	}
	if !found {
		return 0, RenderState{}, false
	}
	return best, c.states[best], true
}

// InvalidateFrom drops every checkpoint at or after line.
func (c *RenderCache) InvalidateFrom(line int) {
	for l := range c.states {
		if l >= line {
			delete(c.states, l)
		}
	}
}

// Lines returns the checkpointed line numbers in order.
func (c *RenderCache) Lines() []int {
	lines := make([]int, 0, len(c.states))
	for l := range c.states {
		lines = append(lines, l)
	}
	sort.Ints(lines)
	return lines
}
