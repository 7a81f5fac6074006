package schema

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/idryzhov/libyang/lyerr"
)

// SourceFunc supplies module source text by name and optional
// revision.  A (nil, nil) return means the callback has no source for
// that module; any error aborts loading.
type SourceFunc func(name, revision string) ([]byte, error)

// Loader locates module source text.  Two strategies exist: the
// import callback and the local search directories.  They are tried in
// order, callback first unless PreferSearchDirs is set, and the first
// strategy that yields source wins.
type Loader struct {
	SearchDirs       []string
	Callback         SourceFunc
	PreferSearchDirs bool
	Log              *slog.Logger
}

type loadStrategy func(name, revision string) ([]byte, string, error)

// Load returns the source text for the named module and the file path
// it came from (empty when supplied by the callback).  A module
// neither strategy can supply yields a not-found error.
func (l *Loader) Load(name, revision string) ([]byte, string, error) {
	for _, strategy := range l.strategies() {
		data, path, err := strategy(name, revision)
		if err != nil {
			return nil, "", err
		}
		if data != nil {
			return data, path, nil
		}
	}
	return nil, "", lyerr.NotFound(lyerr.WithMessagef(
		"data model %q%s not found", name, atRevision(revision)))
}

func (l *Loader) strategies() []loadStrategy {
	if l.PreferSearchDirs {
		return []loadStrategy{l.fromSearchDirs, l.fromCallback}
	}
	return []loadStrategy{l.fromCallback, l.fromSearchDirs}
}

func (l *Loader) fromCallback(name, revision string) ([]byte, string, error) {
	if l.Callback == nil {
		return nil, "", nil
	}
	data, err := l.Callback(name, revision)
	if err != nil {
		return nil, "", errors.Wrapf(err, "import callback for module %q", name)
	}
	return data, "", nil
}

func (l *Loader) fromSearchDirs(name, revision string) ([]byte, string, error) {
	for _, dir := range l.SearchDirs {
		for _, fn := range l.candidates(dir, name, revision) {
			data, err := os.ReadFile(fn)
			if err != nil {
				if os.IsNotExist(err) {
					continue
				}
				return nil, "", errors.Wrapf(err, "reading schema file %q", fn)
			}
			l.log().Debug("loading schema from file", "path", fn)
			return data, fn, nil
		}
	}
	return nil, "", nil
}

// candidates lists the file names to try under dir.  A request for an
// exact revision admits only its revision-stamped file; without one the
// plain file wins, then any revision-stamped file, newest first.
func (l *Loader) candidates(dir, name, revision string) []string {
	if revision != "" {
		return []string{filepath.Join(dir, name+atRevision(revision)+".yin")}
	}
	out := []string{filepath.Join(dir, name+".yin")}
	matches, _ := filepath.Glob(filepath.Join(dir, name+"@*.yin"))
	for i := len(matches) - 1; i >= 0; i-- {
		out = append(out, matches[i])
	}
	return out
}

func (l *Loader) log() *slog.Logger {
	if l.Log != nil {
		return l.Log
	}
	return slog.Default()
}

func atRevision(revision string) string {
	if revision == "" {
		return ""
	}
	return "@" + revision
}
