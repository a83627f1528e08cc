package modes

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/xonecas/amble/internal/filesearch"
	"github.com/xonecas/amble/internal/input"
)

// IndexingMessage is shown while the workspace is being indexed.
const IndexingMessage = "Indexing..."

type indexState int

const (
	indexPending indexState = iota
	indexComplete
	indexFailed
)

// Open finds a workspace file to open. The file list is built in the
// background; results appear once the index completes.
type Open struct {
	picker[string]
	root     string
	state    indexState
	indexErr error
	cancel   context.CancelFunc
	recent   []string
}

// NewOpen creates an Open mode for the workspace at root. Call StartIndexing
// to populate it.
func NewOpen(root string, maxResults int) *Open {
	return &Open{
		picker: newPicker[string](nil, identity, maxResults),
		root:   root,
	}
}

func (*Open) Title() string { return "OPEN" }

// Root is the workspace directory results are relative to.
func (o *Open) Root() string { return o.root }

// StartIndexing walks the workspace on a new goroutine and posts an
// input.OpenModeIndexComplete to events when done.
func (o *Open) StartIndexing(ctx context.Context, exclusions []string, events chan<- input.Event) {
	ctx, o.cancel = context.WithCancel(ctx)
	indexer := filesearch.NewIndexer(o.root, exclusions)
	go func() {
		paths, err := indexer.Index(ctx)
		if err != nil {
			log.Warn().Err(err).Str("root", o.root).Msg("Workspace indexing failed")
		} else {
			log.Debug().Int("files", len(paths)).Str("root", o.root).Msg("Workspace indexed")
		}
		if ctx.Err() != nil {
			return
		}
		select {
		case events <- input.OpenModeIndexComplete{Source: o, Paths: paths, Err: err}:
		case <-ctx.Done():
		}
	}()
}

// Cancel stops an indexing run that is still in progress.
func (o *Open) Cancel() {
	if o.cancel != nil {
		o.cancel()
	}
}

// SetRecent lists recently edited absolute paths, most recent first. Those
// inside the workspace lead the results of an empty query.
func (o *Open) SetRecent(paths []string) { o.recent = paths }

// Indexed reports whether the file list is available.
func (o *Open) Indexed() bool { return o.state == indexComplete }

// SetIndex installs the result of an indexing run and refreshes the results.
func (o *Open) SetIndex(paths []string, err error) {
	if err != nil {
		o.state = indexFailed
		o.indexErr = err
		o.items = nil
	} else {
		o.state = indexComplete
		o.items = o.recentFirst(paths)
	}
	o.Search()
}

func (o *Open) recentFirst(paths []string) []string {
	if len(o.recent) == 0 {
		return paths
	}
	indexed := make(map[string]bool, len(paths))
	for _, p := range paths {
		indexed[p] = true
	}
	out := make([]string, 0, len(paths))
	placed := make(map[string]bool)
	for _, abs := range o.recent {
		rel, err := filepath.Rel(o.root, abs)
		if err != nil {
			continue
		}
		rel = filepath.ToSlash(rel)
		if indexed[rel] && !placed[rel] {
			out = append(out, rel)
			placed[rel] = true
		}
	}
	for _, p := range paths {
		if !placed[p] {
			out = append(out, p)
		}
	}
	return out
}

// SelectedPath returns the absolute path of the selected entry.
func (o *Open) SelectedPath() (string, bool) {
	rel, ok := o.Selection()
	if !ok {
		return "", false
	}
	return filepath.Join(o.root, filepath.FromSlash(rel)), true
}

// Message reports indexing progress until the index is ready.
func (o *Open) Message() string {
	switch o.state {
	case indexPending:
		return IndexingMessage
	case indexFailed:
		return "Indexing failed: " + o.indexErr.Error()
	}
	return o.picker.Message()
}
