package walker

import (
	"iter"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/karrick/godirwalk"

	"github.com/nao1215/cargosweep/internal/model"
)

// Walker discovers Cargo project roots beneath a start directory.
// A Walker is single-use: Walk returns a lazy, non-restartable sequence,
// and Warnings reports the traversal problems encountered while the
// sequence was consumed.
type Walker struct {
	// root is the directory the traversal starts from.
	root string

	// maxDepth limits how many directory levels are visited, counting
	// the start directory as one. Guards against runaway trees.
	maxDepth int

	// skips holds directory names that are never descended into,
	// regardless of where they appear (e.g. .git).
	skips map[string]struct{}

	// logger receives debug and warning messages during traversal.
	logger *slog.Logger

	// warnings accumulates unreadable directories as the sequence is
	// consumed.
	warnings []model.TraversalWarning
}

// DefaultMaxDepth is the default recursion depth limit, counting the
// start directory as level one. Deep enough for any sane workspace while
// bounding pathological trees.
const DefaultMaxDepth = 64

// Option configures a Walker.
type Option func(*Walker)

// WithMaxDepth sets the traversal depth limit. Values below one are
// ignored and the default is kept.
func WithMaxDepth(depth int) Option {
	return func(w *Walker) {
		if depth > 0 {
			w.maxDepth = depth
		}
	}
}

// WithSkipNames sets directory names the walker never descends into.
func WithSkipNames(names []string) Option {
	return func(w *Walker) {
		w.skips = make(map[string]struct{}, len(names))
		for _, name := range names {
			w.skips[name] = struct{}{}
		}
	}
}

// WithLogger sets a custom logger for the walker.
// If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Walker) {
		w.logger = logger
	}
}

// New creates a Walker rooted at the given directory.
// The root is resolved to an absolute path so that yielded project roots
// have a stable identity regardless of the working directory.
func New(root string, opts ...Option) *Walker {
	w := &Walker{
		root:     root,
		maxDepth: DefaultMaxDepth,
		skips:    make(map[string]struct{}),
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.logger == nil {
		w.logger = slog.Default()
	}

	if abs, err := filepath.Abs(w.root); err == nil {
		w.root = abs
	}

	return w
}

// pending is one stack entry: a directory awaiting its pre-order visit.
type pending struct {
	path  string
	depth int
}

// Walk returns a lazy sequence of discovered project roots.
//
// The traversal is depth-first pre-order: a directory is classified
// (project root or not) before any of its children are visited, and a
// root's artifact output directory is excluded from the children pushed
// onto the work stack. Nested projects under a root's other
// subdirectories are still discovered.
//
// The sequence is finite and single-use. Warnings collected during
// iteration are available from Warnings once the consumer is done.
func (w *Walker) Walk() iter.Seq[model.ProjectRoot] {
	return func(yield func(model.ProjectRoot) bool) {
		stack := []pending{{path: w.root, depth: w.maxDepth}}

		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if cur.depth <= 0 {
				continue
			}

			isRoot := w.isProjectRoot(cur.path)
			if isRoot {
				w.logger.Debug("found project root", "path", cur.path)
				if !yield(model.ProjectRoot{Path: cur.path}) {
					return
				}
			}

			dirents, err := godirwalk.ReadDirents(cur.path, nil)
			if err != nil {
				w.warn(cur.path, err)
				continue
			}

			// Push in reverse so the stack pops children in directory
			// listing order.
			for i := len(dirents) - 1; i >= 0; i-- {
				dirent := dirents[i]
				if !dirent.IsDir() {
					// Symlinked directories are skipped with everything
					// else that is not a plain directory. Not following
					// links rules out cycles and duplicate yields.
					if dirent.IsSymlink() {
						w.logger.Debug("skipping symlink", "path", filepath.Join(cur.path, dirent.Name()))
					}
					continue
				}
				if w.prune(dirent.Name(), isRoot) {
					continue
				}
				stack = append(stack, pending{
					path:  filepath.Join(cur.path, dirent.Name()),
					depth: cur.depth - 1,
				})
			}
		}
	}
}

// Warnings returns the traversal warnings recorded so far.
// Call after the sequence returned by Walk has been fully consumed.
func (w *Walker) Warnings() []model.TraversalWarning {
	return w.warnings
}

// isProjectRoot reports whether dir contains a Cargo manifest file.
// Stat failures other than absence are recorded as warnings because they
// could hide a real project.
func (w *Walker) isProjectRoot(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, model.ManifestFileName))
	if err != nil {
		if !os.IsNotExist(err) {
			w.warn(dir, err)
		}
		return false
	}
	return !info.IsDir()
}

// prune decides whether a child directory name is excluded from the work
// stack. This is the single decision point for both the skip list and the
// artifact directory of a directory just classified as a project root.
func (w *Walker) prune(name string, isRoot bool) bool {
	if _, ok := w.skips[name]; ok {
		return true
	}
	return isRoot && name == model.ArtifactDirName
}

// warn records a recoverable traversal problem and logs it. A directory
// can fail both the manifest stat and the dirent listing; it is recorded
// once so the final report lists each path a single time.
func (w *Walker) warn(path string, err error) {
	for _, warning := range w.warnings {
		if warning.Path == path {
			return
		}
	}
	w.logger.Warn("skipping unreadable directory", "path", path, "error", err)
	w.warnings = append(w.warnings, model.TraversalWarning{
		Path:    path,
		Message: err.Error(),
	})
}
