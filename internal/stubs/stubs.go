// Package stubs provides the template text for every artifact kind. Stubs ship
// embedded in the binary; a project may publish them to a directory, edit them,
// and point the loader at that directory to override individual files.
package stubs

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"

	"github.com/conneroisu/modforge/internal/naming"
	"github.com/spf13/afero"
)

const embeddedDir = "templates"

//go:embed templates/*.stub
var embedded embed.FS

var fileNames = map[naming.Kind]string{
	naming.KindInterface:     "interface.stub",
	naming.KindModel:         "model.stub",
	naming.KindRepository:    "repository.stub",
	naming.KindRequest:       "request.stub",
	naming.KindController:    "controller.stub",
	naming.KindRoutes:        "routes.stub",
	naming.KindRouteProvider: "routeserviceprovider.stub",
	naming.KindProvider:      "provider.stub",
}

// Loader returns the stub text for an artifact kind.
type Loader interface {
	Load(kind naming.Kind) (string, error)
}

// FileName returns the stub file name of kind, or "" for unknown kinds.
func FileName(kind naming.Kind) string {
	return fileNames[kind]
}

// DirLoader reads stubs from an override directory and falls back to the
// embedded copies for files the directory does not contain.
type DirLoader struct {
	fs  afero.Fs
	dir string
}

// NewLoader creates a loader. An empty dir disables overrides.
func NewLoader(fsys afero.Fs, dir string) *DirLoader {
	return &DirLoader{fs: fsys, dir: dir}
}

// Load returns the stub for kind, reading it fresh on every call.
func (l *DirLoader) Load(kind naming.Kind) (string, error) {
	name := FileName(kind)
	if name == "" {
		return "", fmt.Errorf("no stub registered for artifact kind %q", kind)
	}

	if l.dir != "" && l.fs != nil {
		override := filepath.Join(l.dir, name)
		exists, err := afero.Exists(l.fs, override)
		if err != nil {
			return "", fmt.Errorf("failed to stat stub override %s: %w", override, err)
		}
		if exists {
			data, err := afero.ReadFile(l.fs, override)
			if err != nil {
				return "", fmt.Errorf("failed to read stub override %s: %w", override, err)
			}
			return string(data), nil
		}
	}

	return Embedded(kind)
}

// Source reports where the stub for kind would be loaded from.
func (l *DirLoader) Source(kind naming.Kind) string {
	name := FileName(kind)
	if l.dir != "" && l.fs != nil {
		override := filepath.Join(l.dir, name)
		if ok, _ := afero.Exists(l.fs, override); ok {
			return override
		}
	}
	return "embedded:" + name
}

// Embedded returns the built-in stub for kind.
func Embedded(kind naming.Kind) (string, error) {
	name := FileName(kind)
	if name == "" {
		return "", fmt.Errorf("no stub registered for artifact kind %q", kind)
	}
	data, err := embedded.ReadFile(path.Join(embeddedDir, name))
	if err != nil {
		return "", fmt.Errorf("failed to read embedded stub %s: %w", name, err)
	}
	return string(data), nil
}

// Names returns the embedded stub file names, sorted.
func Names() ([]string, error) {
	entries, err := fs.ReadDir(embedded, embeddedDir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Publish copies the embedded stubs into dir. Existing files are left alone
// unless force is set. It returns the paths written.
func Publish(fsys afero.Fs, dir string, force bool) ([]string, error) {
	if err := fsys.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create stub directory %s: %w", dir, err)
	}

	names, err := Names()
	if err != nil {
		return nil, err
	}

	var written []string
	for _, name := range names {
		target := filepath.Join(dir, name)
		if !force {
			if ok, err := afero.Exists(fsys, target); err != nil {
				return written, err
			} else if ok {
				continue
			}
		}

		data, err := embedded.ReadFile(path.Join(embeddedDir, name))
		if err != nil {
			return written, err
		}
		if err := afero.WriteFile(fsys, target, data, 0644); err != nil {
			return written, fmt.Errorf("failed to write stub %s: %w", target, err)
		}
		written = append(written, target)
	}

	return written, nil
}
