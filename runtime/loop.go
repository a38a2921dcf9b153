// Package runtime implements the core's per-tick driver: a fixed-timestep
// accumulator loop that applies input, steps physics/layout exactly once,
// and then hands the post-tick Scene to the renderer, preserving a strict
// input-then-simulate-then-render ordering each tick across the Physics/
// Layout/Render stages.
package runtime

import (
	"time"

	"github.com/graphscene/core"
	"github.com/graphscene/core/camera"
	"github.com/graphscene/core/clusters"
	"github.com/graphscene/core/edges"
	"github.com/graphscene/core/layout"
	"github.com/graphscene/core/physics"
	"github.com/graphscene/core/render"
)

// DrivePhase selects whether a tick advances Physics or runs a Layout
// algorithm — position and velocity are owned by whichever of the two last
// wrote them this tick. Loop exposes both and lets the host pick per tick:
// DriveLayout runs the active algorithm's full CalculateLayout through the
// layout Manager, DrivePhysics runs one physics step.
type DrivePhase uint8

const (
	DriveNone DrivePhase = iota
	DrivePhysics
	DriveLayout
)

// InputEvent is a host-reported pointer action, applied before the
// tick's simulation step.
type InputEvent struct {
	ScreenX, ScreenY float64
	Action InputAction
}

type InputAction uint8

const (
	InputNone InputAction = iota
	InputClick
	InputHover
)

// RendererErrorHandler receives the renderer errors a tick passes on to the
// host: RendererFatal and unclassified errors reach it; a RendererTransient
// error is logged and flags the loop as reconfiguring instead. The loop does
// not stop itself on a fatal error; later Advance calls keep ticking.
type RendererErrorHandler func(err error)

// Loop drives one fixed-timestep tick at a time. It owns no goroutines —
// the host calls Advance once per frame (e.g. from ebiten's Update), and
// nothing in a tick suspends partway through.
type Loop struct {
	Scene *graphscene.Scene
	Physics *physics.Simulation
	Edges *edges.Manager
	Clusters *clusters.Manager
	Layout *layout.Manager
	Renderer *render.Renderer
	Camera *camera.Camera

	Logger graphscene.Logger

	TimeStep float64 // fixed simulation timestep, defaults to 1/60s
	accumulator float64
	animClock float64

	activeLayout layout.Algorithm
	lastDrivePhase DrivePhase

	reconfiguring bool // set for one frame after a RendererTransient recovery
}

// New constructs a Loop wired to scene and the supporting managers, with
// TimeStep set to timeStep, or to 1/60s when timeStep is not positive.
func New(scene *graphscene.Scene, sim *physics.Simulation, em *edges.Manager, cm *clusters.Manager, lm *layout.Manager, renderer *render.Renderer, cam *camera.Camera, timeStep float64) *Loop {
	if timeStep <= 0 {
 timeStep = 1.0 / 60.0
	}
	return &Loop{
 Scene: scene,
 Physics: sim,
 Edges: em,
 Clusters: cm,
 Layout: lm,
 Renderer: renderer,
 Camera: cam,
 Logger: graphscene.NoopLogger(),
 TimeStep: timeStep,
	}
}

// SetActiveLayout selects the Layout algorithm DriveLayout ticks run, or
// nil to disable layout-driven stepping.
func (l *Loop) SetActiveLayout(algo layout.Algorithm) { l.activeLayout = algo }

// Advance accumulates wall-clock dt and runs as many fixed TimeStep ticks
// as have accumulated, draining fractional leftovers into the next call.
// ebiten's own fixed-TPS scheduler does this for the whole game loop;
// Loop reimplements the same accumulator explicitly since the core has no
// engine of its own to lean on.
func (l *Loop) Advance(dt float64, drive DrivePhase, inputs []InputEvent, onRendererError RendererErrorHandler) int {
	l.reconfiguring = false
	l.accumulator += dt
	ticks := 0
	for l.accumulator >= l.TimeStep {
 l.tick(drive, inputs, onRendererError)
 inputs = nil // only the first sub-tick this frame sees host input
 l.accumulator -= l.TimeStep
 ticks++
	}
	return ticks
}

func (l *Loop) tick(drive DrivePhase, inputs []InputEvent, onRendererError RendererErrorHandler) {
	// 1. Input applied first.
	for _, ev := range inputs {
 l.applyInput(ev)
	}

	// 2. Layout/physics runs exactly once.
	switch drive {
	case DrivePhysics:
 l.stepPhysics()
	case DriveLayout:
 l.stepLayout()
	}
	l.lastDrivePhase = drive

	// 3. Edge maintenance: expire edges whose TTL passed this tick, cheap
	// enough to run unconditionally.
	if l.Edges != nil {
 l.Edges.CleanupExpiredEdges(time.Now())
 l.Edges.SyncToScene(l.Scene)
	}

	l.Scene.Update(l.TimeStep)
	l.animClock += l.TimeStep

	// 4. The renderer sees the post-tick state. Errors are classified:
	// Fatal propagates to the host's handler (ticking itself continues);
	// Transient is logged and swallowed, setting the reconfiguring flag
	// until the next Advance call.
	if err := l.classifyRendererError(recoverRenderer(l.Renderer)); err != nil && onRendererError != nil {
 onRendererError(err)
	}
}

// recoverRenderer is a seam for host render-path errors (surface lost,
// device reset) to be reported into the loop; the renderer package itself
// has no fallible Draw path on the host's ebiten.Image target, so this
// always returns nil today and exists so an embedder wiring a real GPU
// backend has a single place to plug a fallible present/submit call.
func recoverRenderer(r *render.Renderer) error { return nil }

func (l *Loop) classifyRendererError(err error) error {
	if err == nil {
 return nil
	}
	se, ok := err.(*graphscene.SceneError)
	if !ok {
 return err
	}
	switch se.Kind {
	case graphscene.KindRendererTransient:
 l.reconfiguring = true
 l.Logger.Warnf("renderer transient error, reconfiguring: %v", se)
 return nil
	case graphscene.KindRendererFatal:
 l.Logger.Errorf("renderer fatal error, stopping loop: %v", se)
 return se
	default:
 return se
	}
}

func (l *Loop) stepPhysics() {
	if l.Physics == nil {
 return
	}
	l.Physics.SyncFromScene(l.Scene)
	l.Physics.Step(l.visibleEdges())
	l.Physics.SyncToScene(l.Scene)
}

func (l *Loop) stepLayout() {
	if l.Layout == nil || l.activeLayout == nil {
 return
	}
	nodes := l.Scene.Nodes()
	edgePairs := l.visibleEdges()
	layoutEdges := make([]layout.Edge, len(edgePairs))
	for i, e := range edgePairs {
 layoutEdges[i] = layout.Edge{Source: e.Source, Target: e.Target}
	}
	if _, err := l.Layout.Run(l.activeLayout, nodes, layoutEdges, nil); err != nil {
 l.Logger.Warnf("layout run failed: %v", err)
	}
}

func (l *Loop) visibleEdges() []physics.Edge {
	ids := l.Scene.Edges()
	out := make([]physics.Edge, 0, len(ids))
	for _, id := range ids {
 e := l.Scene.GetEdge(id)
 if e == nil || !e.Visible {
 continue
 }
 out = append(out, physics.Edge{Source: e.Source, Target: e.Target})
	}
	return out
}

func (l *Loop) applyInput(ev InputEvent) {
	// Concrete pick resolution and action dispatch live in the ecs bridge,
	// which needs the host's Registry/Picker; Loop only marks that input
	// was seen this tick so a host assembling its own input pipeline has a
	// documented extension point rather than a silent no-op.
	switch ev.Action {
	case InputClick, InputHover:
 l.Logger.Debugf("input %v at (%.1f, %.1f)", ev.Action, ev.ScreenX, ev.ScreenY)
	}
}

// AnimClock returns the accumulated simulation time, used to drive the edge
// pass's animated-edge pulse phase.
func (l *Loop) AnimClock() float64 { return l.animClock }
