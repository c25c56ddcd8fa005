// Package writer maps artifact identifiers onto the file system and persists
// rendered content.
package writer

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/conneroisu/modforge/internal/errors"
	"github.com/conneroisu/modforge/internal/naming"
	"github.com/spf13/afero"
)

// DirPerm is the permissive mode used for created directories; the process
// umask narrows it.
const DirPerm os.FileMode = 0777

// FilePerm is the mode used for written artifacts.
const FilePerm os.FileMode = 0644

// Writer writes artifacts below a base directory.
type Writer struct {
	fs        afero.Fs
	base      string
	ext       string
	overwrite bool

	mu     sync.Mutex
	writes int
}

// Option configures a Writer.
type Option func(*Writer)

// WithOverwrite controls whether an existing artifact file is replaced
// (true) or rejected with ArtifactExists (false, the default).
func WithOverwrite(overwrite bool) Option {
	return func(w *Writer) {
		w.overwrite = overwrite
	}
}

// New creates a writer rooted at base. ext is the artifact file extension
// without the leading dot.
func New(fsys afero.Fs, base, ext string, opts ...Option) *Writer {
	w := &Writer{
		fs:   fsys,
		base: base,
		ext:  strings.TrimPrefix(ext, "."),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Path returns the file path of id.
func (w *Writer) Path(id naming.Identifier) string {
	p := filepath.Join(w.base, toPath(id.String()))
	if w.ext != "" {
		p += "." + w.ext
	}
	return p
}

// ModuleRoot returns the directory holding every artifact of m, with a
// trailing separator.
func (w *Writer) ModuleRoot(m naming.ModuleName) string {
	return filepath.Join(w.base, toPath(m.String())) + string(filepath.Separator)
}

// Exists reports whether path exists.
func (w *Writer) Exists(path string) (bool, error) {
	return afero.Exists(w.fs, path)
}

// Write creates the parent directories of id's path and writes content to it.
// It returns the path written.
func (w *Writer) Write(id naming.Identifier, content string) (string, error) {
	path := w.Path(id)

	if err := w.fs.MkdirAll(filepath.Dir(path), DirPerm); err != nil {
		return path, errors.NewWriteError(path, err)
	}

	if !w.overwrite {
		exists, err := afero.Exists(w.fs, path)
		if err != nil {
			return path, errors.NewWriteError(path, err)
		}
		if exists {
			return path, errors.NewArtifactExistsError(path)
		}
	}

	if err := afero.WriteFile(w.fs, path, []byte(content), FilePerm); err != nil {
		return path, errors.NewWriteError(path, err)
	}

	w.mu.Lock()
	w.writes++
	w.mu.Unlock()

	return path, nil
}

// Writes returns the number of files written so far.
func (w *Writer) Writes() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.writes
}

func toPath(name string) string {
	return filepath.FromSlash(strings.ReplaceAll(name, naming.Separator, "/"))
}
