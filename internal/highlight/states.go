package highlight

import (
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// RootState is the state chroma lexers start in.
const RootState = "root"

// LineStates tokenises text with lexer, starting in state, and reports per
// line index the lexer state at the start of the line whenever the state stack
// holds nothing else. Lexing from such a line in that state yields the same
// tokens as lexing from the top. Lines that start inside a multi-state
// construct, such as a string with escapes or an embedded language, are
// absent. Line 0 is always present.
//
// Only regex lexers expose their state stack; any other lexer reports line 0
// alone.
func LineStates(lexer chroma.Lexer, state, text string) (map[int]string, error) {
	states := map[int]string{0: state}
	t := trackerFor(lexer)
	if t == nil {
		return states, nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.outer, t.starts = nil, make(map[int]string)

	it, err := t.lexer.Tokenise(&chroma.TokeniseOptions{State: state, EnsureLF: true}, text)
	if err != nil {
		return nil, err
	}
	for it() != chroma.EOF {
	}
	if t.outer == nil {
		return states, nil
	}

	// Positions are runes into the lexer's own copy of the text.
	line := 0
	for i, r := range t.outer.Text {
		if r != '\n' {
			continue
		}
		line++
		if state, ok := t.starts[i+1]; ok {
			states[line] = state
		}
	}
	return states, nil
}

// stackTracker is a copy of a regex lexer whose emitters report the state
// stack after each rule fires.
type stackTracker struct {
	mu     sync.Mutex
	lexer  *chroma.RegexLexer
	outer  *chroma.LexerState
	starts map[int]string // rune offset of a line start -> sole state
}

var trackers sync.Map // chroma.Lexer -> *stackTracker

func trackerFor(lexer chroma.Lexer) *stackTracker {
	if t, ok := trackers.Load(lexer); ok {
		return t.(*stackTracker)
	}
	base, ok := lexer.(*chroma.RegexLexer)
	if !ok {
		return nil
	}
	rules, err := base.Rules()
	if err != nil {
		return nil
	}

	t := &stackTracker{}
	wrapped := make(chroma.Rules, len(rules))
	for state, rs := range rules {
		out := make([]chroma.Rule, len(rs))
		for i, rule := range rs {
			if rule.Type != nil {
				rule.Type = trackingEmitter{Emitter: rule.Type, t: t}
			}
			out[i] = rule
		}
		wrapped[state] = out
	}
	copied, err := chroma.NewLexer(base.Config(), func() chroma.Rules { return wrapped })
	if err != nil {
		return nil
	}
	copied.SetRegistry(lexers.GlobalLexerRegistry)
	t.lexer = copied

	actual, _ := trackers.LoadOrStore(lexer, t)
	return actual.(*stackTracker)
}

type trackingEmitter struct {
	chroma.Emitter
	t *stackTracker
}

// Emit runs after the rule's mutators, so the stack already describes the
// text following the match.
func (e trackingEmitter) Emit(groups []string, s *chroma.LexerState) chroma.Iterator {
	if e.t.outer == nil {
		e.t.outer = s
	}
	// Nested tokenisers run with their own state and relative positions.
	if s == e.t.outer && s.Pos > 0 && s.Text[s.Pos-1] == '\n' {
		if len(s.Stack) == 1 {
			e.t.starts[s.Pos] = s.Stack[0]
		} else {
			delete(e.t.starts, s.Pos)
		}
	}
	return e.Emitter.Emit(groups, s)
}
