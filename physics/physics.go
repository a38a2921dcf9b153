// Package physics implements the per-tick force integrator: pairwise
// force-directed springs, pairwise repulsion, collision response, and
// external forces, integrated with semi-implicit Euler and written back to
// the Scene via SyncToScene.
package physics

import (
	"math"
	"sort"

	"github.com/graphscene/core"
)

// Body is a physics body mirroring a visible SceneNode.
type Body struct {
	ID graphscene.SceneId
	Position graphscene.Vec3
	Velocity graphscene.Vec3
	Mass float64
	Radius float64
	Fixed bool

	force graphscene.Vec3 // scratch accumulator, cleared after each Step
}

// Settings holds the global physics knobs: damping, velocity/force limits,
// collision toggle, and the force-directed spring/repulsion constants.
type Settings struct {
	Damping float64
	MaxVelocity float64
	MinDistance float64
	CollisionEnabled bool
	TimeStep float64 // fixed timestep, default 1/60s

	OptimalEdgeLength float64
	AttractionStrength float64
	RepulsionStrength float64
	MaxForce float64

	// RepulsionBase/Falloff/Threshold parametrize the independent pairwise
	// repulsion force: magnitude base/d^falloff for
	// d < threshold.
	RepulsionBase float64
	RepulsionFalloff float64
	RepulsionThreshold float64
}

// DefaultSettings returns the documented defaults.
func DefaultSettings() Settings {
	return Settings{
 Damping: 0.1,
 MaxVelocity: 50,
 MinDistance: 0.01,
 CollisionEnabled: true,
 TimeStep: 1.0 / 60.0,
 OptimalEdgeLength: 5.0,
 AttractionStrength: 1.0,
 RepulsionStrength: 1.0,
 MaxForce: 50,
 RepulsionBase: 20,
 RepulsionFalloff: 2,
 RepulsionThreshold: 10,
	}
}

// Edge is a spring edge driving the force-directed spring force, given by
// the caller each Step — typically every visible SceneEdge's (Source, Target).
type Edge struct {
	Source, Target graphscene.SceneId
}

// Simulation holds the set of physics bodies and runs one fixed timestep at
// a time. Bodies are plain structs integrated with semi-implicit Euler in 3D,
// with springs driven by Scene edges rather than ad hoc collision shapes.
type Simulation struct {
	bodies map[graphscene.SceneId]*Body
	Settings Settings
}

// NewSimulation creates an empty Simulation with the given settings.
func NewSimulation(settings Settings) *Simulation {
	return &Simulation{
 bodies: make(map[graphscene.SceneId]*Body),
 Settings: settings,
	}
}

// SyncFromScene adds a Body for every visible SceneNode not yet tracked,
// removes bodies for nodes no longer visible or present, and leaves
// existing bodies' Position/Velocity untouched so momentum survives scene
// edits between ticks: a body should not reset just because the Scene
// changed elsewhere.
func (s *Simulation) SyncFromScene(scene *graphscene.Scene) {
	live := make(map[graphscene.SceneId]bool)
	for _, id := range scene.Nodes() {
 n := scene.GetNode(id)
 if n == nil || !n.Visible {
 continue
 }
 live[id] = true
 if _, ok := s.bodies[id]; !ok {
 s.bodies[id] = &Body{
 ID: id,
 Position: n.Position,
 Velocity: n.Velocity,
 Mass: 1,
 Radius: n.Radius,
 }
 } else {
 s.bodies[id].Radius = n.Radius
 }
	}
	for id := range s.bodies {
 if !live[id] {
 delete(s.bodies, id)
 }
	}
}

// Body returns the tracked body for id, or nil.
func (s *Simulation) Body(id graphscene.SceneId) *Body { return s.bodies[id] }

// SetFixed marks a body as fixed (skipped during integration), e.g. for a
// node the user is actively dragging.
func (s *Simulation) SetFixed(id graphscene.SceneId, fixed bool) {
	if b, ok := s.bodies[id]; ok {
 b.Fixed = fixed
	}
}

// ApplyForce accumulates an arbitrary external force vector into the
// current tick for body id. Cleared after the next
// Step's integration.
func (s *Simulation) ApplyForce(id graphscene.SceneId, force graphscene.Vec3) {
	if b, ok := s.bodies[id]; ok {
 b.force = b.force.Add(force)
	}
}

// Step runs one fixed-timestep tick: force accumulation in order (pairwise
// repulsion, springs, collision response when enabled) on top of any
// external forces applied since the last Step, then semi-implicit Euler
// integration with damping, which clears the force accumulator. edges drives
// the spring force;
// pass the Scene's current visible edges each tick.
//
// Physics with zero bodies is a no-op.
func (s *Simulation) Step(edges []Edge) {
	if len(s.bodies) == 0 {
 return
	}
	ids := s.sortedIDs()

	// Pairwise force-directed spring forces (via edges) and pairwise
	// repulsion (independent of edges, over every pair). O(n^2), acceptable
	// to ~1000 nodes; an embedder past that can substitute a Barnes-Hut or
	// grid approximation.
	s.applyPairwiseRepulsion(ids)
	s.applySprings(edges)

	if s.Settings.CollisionEnabled {
 s.applyCollisions(ids)
	}

	s.integrate(ids)
}

func (s *Simulation) sortedIDs() []graphscene.SceneId {
	ids := make([]graphscene.SceneId, 0, len(s.bodies))
	for id := range s.bodies {
 ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// applyPairwiseRepulsion combines two repulsive terms per pair: the
// force-directed repulsive term for d < L, plus the independent short-range
// repulsion for d < threshold.
func (s *Simulation) applyPairwiseRepulsion(ids []graphscene.SceneId) {
	st := s.Settings
	L := st.OptimalEdgeLength
	for i := 0; i < len(ids); i++ {
 a := s.bodies[ids[i]]
 for j := i + 1; j < len(ids); j++ {
 b := s.bodies[ids[j]]
 delta := a.Position.Sub(b.Position)
 d := delta.Length()
 if d < st.MinDistance {
 d = st.MinDistance
 delta = graphscene.Vec3{X: st.MinDistance}
 }
 dir := delta.Scale(1 / d)

 var mag float64
 if d < L {
 mag += st.RepulsionStrength * (L - d) / L
 } else {
 // the attractive branch is handled per-edge in applySprings;
 // unconnected far pairs exert no force here.
 }
 if d < st.RepulsionThreshold {
 mag += st.RepulsionBase / math.Pow(d, st.RepulsionFalloff)
 }
 mag = clampAbs(mag, st.MaxForce)

 f := dir.Scale(mag)
 if !a.Fixed {
 a.force = a.force.Add(f)
 }
 if !b.Fixed {
 b.force = b.force.Sub(f)
 }
 }
	}
}

// applySprings applies the spring force for every edge: attraction
// k_a*(d-L)/L pulling endpoints together when d > L, and a repulsive branch
// when d < L (symmetric with applyPairwiseRepulsion's general repulsion,
// applied again here per-edge so directly connected nodes settle at L even
// when the general repulsion alone would not separate them).
func (s *Simulation) applySprings(edges []Edge) {
	st := s.Settings
	L := st.OptimalEdgeLength
	for _, e := range edges {
 a, ok1 := s.bodies[e.Source]
 b, ok2 := s.bodies[e.Target]
 if !ok1 || !ok2 || a == b {
 continue
 }
 delta := a.Position.Sub(b.Position)
 d := delta.Length()
 if d < st.MinDistance {
 d = st.MinDistance
 delta = graphscene.Vec3{X: st.MinDistance}
 }
 dir := delta.Scale(1 / d)

 var mag float64
 if d < L {
 mag = st.RepulsionStrength * (L - d) / L
 } else {
 mag = -st.AttractionStrength * (d - L) / L
 }
 mag = clampAbs(mag, st.MaxForce)

 f := dir.Scale(mag)
 if !a.Fixed {
 a.force = a.force.Add(f)
 }
 if !b.Fixed {
 b.force = b.force.Sub(f)
 }
	}
}

// applyCollisions resolves overlapping bodies with a stiff spring push,
// separating them over a few ticks.
func (s *Simulation) applyCollisions(ids []graphscene.SceneId) {
	const stiffness = 8.0
	for i := 0; i < len(ids); i++ {
 a := s.bodies[ids[i]]
 for j := i + 1; j < len(ids); j++ {
 b := s.bodies[ids[j]]
 minDist := a.Radius + b.Radius
 delta := a.Position.Sub(b.Position)
 d := delta.Length()
 if d >= minDist || minDist <= 0 {
 continue
 }
 if d < s.Settings.MinDistance {
 d = s.Settings.MinDistance
 delta = graphscene.Vec3{X: s.Settings.MinDistance}
 }
 overlap := minDist - d
 dir := delta.Scale(1 / d)
 f := dir.Scale(overlap * stiffness)
 if !a.Fixed {
 a.force = a.force.Add(f)
 }
 if !b.Fixed {
 b.force = b.force.Sub(f)
 }
 }
	}
}

// integrate performs semi-implicit Euler integration for every body, then
// clears the force accumulator.
func (s *Simulation) integrate(ids []graphscene.SceneId) {
	dt := s.Settings.TimeStep
	damping := s.Settings.Damping
	maxV := s.Settings.MaxVelocity
	for _, id := range ids {
 b := s.bodies[id]
 if b.Fixed {
 b.force = graphscene.Vec3{}
 continue
 }
 mass := b.Mass
 if mass <= 0 {
 mass = 1
 }
 accel := b.force.Scale(1 / mass)
 v := b.Velocity.Add(accel.Scale(dt)).Scale(1 - damping*dt)
 if speed := v.Length(); speed > maxV && speed > 0 {
 v = v.Scale(maxV / speed)
 }
 b.Velocity = v
 b.Position = b.Position.Add(v.Scale(dt))
 b.force = graphscene.Vec3{}
	}
}

// SyncToScene writes every tracked body's position and velocity back into
// the Scene, the counterpart of SyncFromScene.
func (s *Simulation) SyncToScene(scene *graphscene.Scene) {
	for id, b := range s.bodies {
 scene.SetNodePosition(id, b.Position)
 if n := scene.GetNodeMut(id); n != nil {
 n.Velocity = b.Velocity
 }
	}
}

func clampAbs(v, max float64) float64 {
	if v > max {
 return max
	}
	if v < -max {
 return -max
	}
	return v
}
