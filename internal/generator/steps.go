package generator

import (
	"github.com/conneroisu/modforge/internal/naming"
	"github.com/conneroisu/modforge/internal/render"
	"github.com/conneroisu/modforge/internal/stubs"
)

// State is a position in the pipeline state machine.
type State string

const (
	StateStart                State = "start"
	StateCheckExists          State = "check-exists"
	StateAborted              State = "aborted"
	StateBuilding             State = "building"
	StateInterface            State = "interface"
	StateModel                State = "model"
	StateRepository           State = "repository"
	StateRequest              State = "request"
	StateController           State = "controller"
	StateRoutes               State = "routes"
	StateRouteServiceProvider State = "route-service-provider"
	StateProvider             State = "provider"
	StateMigrationHook        State = "migration-hook"
	StateCacheClearHook       State = "cache-clear-hook"
	StateDone                 State = "done"
	StateFailed               State = "failed"
)

// Step is one artifact build step of the pipeline.
type Step struct {
	State   State
	Kind    naming.Kind
	Message string
}

// Stub returns the stub file the step renders.
func (s Step) Stub() string { return stubs.FileName(s.Kind) }

// Categories returns the token categories the step resolves.
func (s Step) Categories() []render.Category { return render.Categories(s.Kind) }

var buildSteps = []Step{
	{State: StateInterface, Kind: naming.KindInterface, Message: "Interface created successfully!"},
	{State: StateModel, Kind: naming.KindModel, Message: "Model created successfully!"},
	{State: StateRepository, Kind: naming.KindRepository, Message: "Repository created successfully!"},
	{State: StateRequest, Kind: naming.KindRequest, Message: "FormRequest created successfully!"},
	{State: StateController, Kind: naming.KindController, Message: "Controller created successfully!"},
	{State: StateRoutes, Kind: naming.KindRoutes, Message: "Routes created successfully!"},
	{State: StateRouteServiceProvider, Kind: naming.KindRouteProvider, Message: "RouteServiceProvider created successfully!"},
	{State: StateProvider, Kind: naming.KindProvider, Message: "Provider created successfully!"},
}

// migrationMessage is emitted after the migration hook succeeds.
const migrationMessage = "Table created successfully!"

// Steps returns the artifact build steps in execution order.
func Steps() []Step {
	return append([]Step(nil), buildSteps...)
}
