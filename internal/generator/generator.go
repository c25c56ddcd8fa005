// Package generator drives the module build pipeline: resolve the module
// name, refuse to touch an existing module, render and write every artifact
// in a fixed order, then run the migration and config cache hooks.
//
// The pipeline is synchronous and has no rollback. A failing step stops the
// run and leaves the files of earlier steps on disk.
package generator

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/conneroisu/modforge/internal/errors"
	"github.com/conneroisu/modforge/internal/hooks"
	"github.com/conneroisu/modforge/internal/logging"
	"github.com/conneroisu/modforge/internal/naming"
	"github.com/conneroisu/modforge/internal/render"
	"github.com/conneroisu/modforge/internal/stubs"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// FileWriter persists rendered artifacts.
type FileWriter interface {
	Path(id naming.Identifier) string
	ModuleRoot(m naming.ModuleName) string
	Exists(path string) (bool, error)
	Write(id naming.Identifier, content string) (string, error)
}

// Notifier receives one human-readable line per completed step.
type Notifier interface {
	Notify(ctx context.Context, message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, message string)

// Notify calls f.
func (f NotifierFunc) Notify(ctx context.Context, message string) { f(ctx, message) }

// Request describes one generator run.
type Request struct {
	// Name is the raw module name; "/" may separate namespace segments.
	Name string
	// Namespace overrides the generator's root namespace when set.
	Namespace string
	// Migrate enables the migration hook.
	Migrate bool
	// Table overrides the migration table name. Empty means the plural
	// route segment.
	Table string
}

// Artifact is one file written by a run.
type Artifact struct {
	Kind       naming.Kind
	Identifier naming.Identifier
	Path       string
}

// Result records what a run did, including runs that failed part way.
type Result struct {
	Module    naming.ModuleName
	Root      string
	Artifacts []Artifact
	Table     string
	Migrated  bool
	State     State
	States    []State
}

func (r *Result) enter(state State) {
	r.State = state
	r.States = append(r.States, state)
}

// Generator runs the module pipeline with injected collaborators.
type Generator struct {
	renderer      *render.Renderer
	writer        FileWriter
	rootNamespace string
	migrations    hooks.MigrationCreator
	autoload      hooks.AutoloadDumper
	cache         hooks.ConfigCacher
	notifier      Notifier
	logger        logging.Logger
	locks         *rootLocks
}

// Option configures a Generator.
type Option func(*Generator)

// WithRootNamespace sets the default root namespace.
func WithRootNamespace(ns string) Option {
	return func(g *Generator) { g.rootNamespace = ns }
}

// WithMigrationCreator sets the migration hook collaborator.
func WithMigrationCreator(m hooks.MigrationCreator) Option {
	return func(g *Generator) { g.migrations = m }
}

// WithAutoloadDumper sets the autoload refresh collaborator.
func WithAutoloadDumper(a hooks.AutoloadDumper) Option {
	return func(g *Generator) { g.autoload = a }
}

// WithConfigCacher sets the config cache collaborator.
func WithConfigCacher(c hooks.ConfigCacher) Option {
	return func(g *Generator) { g.cache = c }
}

// Collaborators is implemented by types providing every hook, such as
// hooks.Shell.
type Collaborators interface {
	hooks.MigrationCreator
	hooks.AutoloadDumper
	hooks.ConfigCacher
}

// WithCollaborators sets all three hook collaborators at once.
func WithCollaborators(c Collaborators) Option {
	return func(g *Generator) {
		g.migrations = c
		g.autoload = c
		g.cache = c
	}
}

// WithNotifier sets the notification sink.
func WithNotifier(n Notifier) Option {
	return func(g *Generator) { g.notifier = n }
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(g *Generator) { g.logger = l }
}

// New creates a Generator reading stubs from loader and writing through w.
func New(loader stubs.Loader, w FileWriter, opts ...Option) *Generator {
	g := &Generator{
		renderer:      render.New(loader),
		writer:        w,
		rootNamespace: "App",
		migrations:    hooks.Noop{},
		autoload:      hooks.Noop{},
		cache:         hooks.Noop{},
		notifier:      NotifierFunc(func(context.Context, string) {}),
		logger:        logging.NewNopLogger(),
		locks:         newRootLocks(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = g.logger.WithComponent("generator")
	return g
}

// Generate runs the pipeline for req. The returned Result is never nil and
// reflects how far the run got, also when an error is returned.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	result := &Result{}
	result.enter(StateStart)

	root := req.Namespace
	if strings.TrimSpace(root) == "" {
		root = g.rootNamespace
	}

	module, err := naming.Resolve(req.Name, root)
	if err != nil {
		result.enter(StateFailed)
		return result, err
	}
	result.Module = module

	if req.Table != "" && !tableNamePattern.MatchString(req.Table) {
		result.enter(StateFailed)
		return result, errors.NewInvalidNameError(req.Table, "migration table must be a plain identifier")
	}

	moduleRoot := g.writer.ModuleRoot(module)
	result.Root = moduleRoot
	unlock := g.locks.lock(moduleRoot)
	defer unlock()

	logger := g.logger.With("module", module.String())

	result.enter(StateCheckExists)
	exists, err := g.writer.Exists(moduleRoot)
	if err != nil {
		result.enter(StateFailed)
		return result, errors.NewInternalError("failed to check module root", err).WithPath(moduleRoot)
	}
	if exists {
		result.enter(StateAborted)
		err := errors.NewModuleExistsError(module.Input(), moduleRoot)
		logger.Warn(ctx, err, "Module already exists", "root", moduleRoot)
		return result, err
	}

	result.enter(StateBuilding)
	namer := naming.NewNamer(module)

	for _, step := range buildSteps {
		if err := ctx.Err(); err != nil {
			result.enter(StateFailed)
			return result, err
		}

		result.enter(step.State)
		artifact, err := g.build(step, namer)
		if err != nil {
			result.enter(StateFailed)
			logger.Error(ctx, err, "Build step failed", "step", step.State)
			return result, fmt.Errorf("%s step: %w", step.State, err)
		}
		result.Artifacts = append(result.Artifacts, artifact)

		logger.Debug(ctx, "Artifact written", "kind", step.Kind, "path", artifact.Path)
		g.notifier.Notify(ctx, step.Message)
	}

	if req.Migrate {
		if err := ctx.Err(); err != nil {
			result.enter(StateFailed)
			return result, err
		}

		result.enter(StateMigrationHook)
		table := req.Table
		if table == "" {
			table = namer.PluralSegment()
		}
		result.Table = table

		if err := g.migrate(ctx, table); err != nil {
			result.enter(StateFailed)
			logger.Error(ctx, err, "Migration hook failed", "table", table)
			return result, err
		}
		result.Migrated = true
		g.notifier.Notify(ctx, migrationMessage)
	}

	result.enter(StateCacheClearHook)
	if err := g.cache.CacheConfig(ctx); err != nil {
		logger.Warn(ctx, err, "Config cache rebuild failed")
	}

	result.enter(StateDone)
	logger.Info(ctx, "Module generated", "files", len(result.Artifacts), "root", moduleRoot)

	return result, nil
}

func (g *Generator) build(step Step, namer naming.Namer) (Artifact, error) {
	id := namer.Identifier(step.Kind)

	content, err := g.renderer.RenderKind(step.Kind, namer)
	if err != nil {
		return Artifact{}, err
	}

	path, err := g.writer.Write(id, content)
	if err != nil {
		return Artifact{}, err
	}

	return Artifact{Kind: step.Kind, Identifier: id, Path: path}, nil
}

// MigrationName returns the migration name created for table.
func MigrationName(table string) string {
	return "create_" + table + "_table"
}

func (g *Generator) migrate(ctx context.Context, table string) error {
	if err := g.migrations.CreateMigration(ctx, MigrationName(table), table); err != nil {
		return errors.NewCollaboratorError("migration", err)
	}
	if err := g.autoload.DumpAutoloads(ctx); err != nil {
		return errors.NewCollaboratorError("autoload", err)
	}
	return nil
}

// rootLocks serializes runs targeting the same module root within one
// process. Entries are dropped once no run holds or waits for them.
type rootLocks struct {
	mu    sync.Mutex
	locks map[string]*rootLock
}

type rootLock struct {
	mu   sync.Mutex
	refs int
}

func newRootLocks() *rootLocks {
	return &rootLocks{locks: make(map[string]*rootLock)}
}

func (l *rootLocks) lock(root string) func() {
	l.mu.Lock()
	entry, ok := l.locks[root]
	if !ok {
		entry = &rootLock{}
		l.locks[root] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, root)
		}
		l.mu.Unlock()
	}
}
