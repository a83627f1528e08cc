package modes

import (
	"slices"

	"github.com/sahilm/fuzzy"
)

// DefaultMaxResults is the result list length when none is configured.
const DefaultMaxResults = 5

// NoResultsMessage is shown in place of an empty result list.
const NoResultsMessage = "No matching entries found."

// SearchSelect is the behaviour shared by the modes that filter a list with
// a typed query and act on the selected entry: Open, Command, SymbolJump,
// Theme and Syntax.
type SearchSelect interface {
	Mode
	// Title labels the mode in the status line.
	Title() string
	Query() string
	PushSearchChar(c rune)
	PopSearchChar()
	// Search refreshes the results for the current query.
	Search()
	InsertMode() bool
	SetInsertMode(insert bool)
	// Results are the labels of the matching entries, best first.
	Results() []string
	SelectedIndex() int
	SelectNext()
	SelectPrevious()
	// Message is shown instead of an empty result list.
	Message() string
}

// picker implements SearchSelect for a list of T, ranking entries by fuzzy
// match on their label.
type picker[T any] struct {
	query      string
	insert     bool
	maxResults int
	label      func(T) string
	items      []T
	results    SelectableVec[T]
}

func newPicker[T any](items []T, label func(T) string, maxResults int) picker[T] {
	if maxResults < 1 {
		maxResults = DefaultMaxResults
	}
	return picker[T]{insert: true, maxResults: maxResults, label: label, items: items}
}

// Name selects the keymap section; typing a query and browsing results are
// bound separately.
func (p *picker[T]) Name() string {
	if p.insert {
		return "search_select_insert"
	}
	return "search_select"
}

func (p *picker[T]) Query() string { return p.query }

func (p *picker[T]) PushSearchChar(c rune) { p.query += string(c) }
func (p *picker[T]) PopSearchChar()        { p.query = popRune(p.query) }

func (p *picker[T]) InsertMode() bool          { return p.insert }
func (p *picker[T]) SetInsertMode(insert bool) { p.insert = insert }

type labelSource[T any] struct {
	items []T
	label func(T) string
}

func (s labelSource[T]) String(i int) string { return s.label(s.items[i]) }
func (s labelSource[T]) Len() int            { return len(s.items) }

// Search refilters the items against the query.
func (p *picker[T]) Search() {
	if p.query == "" {
		p.results.Set(slices.Clone(p.items[:min(len(p.items), p.maxResults)]))
		return
	}
	matches := fuzzy.FindFrom(p.query, labelSource[T]{items: p.items, label: p.label})
	found := make([]T, 0, min(len(matches), p.maxResults))
	for _, m := range matches {
		if len(found) == p.maxResults {
			break
		}
		found = append(found, p.items[m.Index])
	}
	p.results.Set(found)
}

// Results returns the labels of the current matches, best first.
func (p *picker[T]) Results() []string {
	labels := make([]string, 0, p.results.Len())
	for _, item := range p.results.Items() {
		labels = append(labels, p.label(item))
	}
	return labels
}

func (p *picker[T]) SelectedIndex() int { return p.results.SelectedIndex() }
func (p *picker[T]) SelectNext()        { p.results.SelectNext() }
func (p *picker[T]) SelectPrevious()    { p.results.SelectPrevious() }

// Selection returns the selected entry.
func (p *picker[T]) Selection() (T, bool) { return p.results.Selection() }

// Message explains an empty result list.
func (p *picker[T]) Message() string {
	if p.results.Empty() {
		return NoResultsMessage
	}
	return ""
}

func identity(s string) string { return s }
