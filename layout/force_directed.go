package layout

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/graphscene/core"
)

// ForceDirectedConfig holds the knobs of , mirroring
// graphscene.ForceDirectedConfig plus the batch-specific iteration budget.
type ForceDirectedConfig struct {
	AttractionStrength float64
	RepulsionStrength float64
	OptimalEdgeLength float64
	MaxForce float64

	MaxIterations int
	ConvergenceThreshold float64
	BoundsMin, BoundsMax graphscene.Vec3
	RandomSeed *int64

	// FruchtermanReingold switches to the k=sqrt(area/n) variant instead of
	// the default pairwise spring model.
	FruchtermanReingold bool
}

// DefaultForceDirectedConfig returns the package's documented default
// tuning values.
func DefaultForceDirectedConfig() ForceDirectedConfig {
	return ForceDirectedConfig{
 AttractionStrength: 1.0,
 RepulsionStrength: 1.0,
 OptimalEdgeLength: 5.0,
 MaxForce: 50,
 MaxIterations: 500,
 ConvergenceThreshold: 0.1,
 BoundsMin: graphscene.Vec3{X: -50, Y: -50, Z: -50},
 BoundsMax: graphscene.Vec3{X: 50, Y: 50, Z: 50},
	}
}

type fdBody struct {
	id graphscene.SceneId
	position graphscene.Vec3
	velocity graphscene.Vec3
}

// ForceDirected is the authoritative default layout algorithm: the same
// pairwise model as Physics run as a batch to
// convergence, with a cooling schedule and an incremental ministep path for
// scene changes.
type ForceDirected struct {
	Config ForceDirectedConfig

	scene *graphscene.Scene
	bodies map[graphscene.SceneId]*fdBody
	rng *rand.Rand
}

// NewForceDirected binds a ForceDirected layout to scene (needed by
// ApplyIncremental to read/write positions between ticks).
func NewForceDirected(scene *graphscene.Scene, cfg ForceDirectedConfig) *ForceDirected {
	seed := time.Now().UnixNano()
	if cfg.RandomSeed != nil {
 seed = *cfg.RandomSeed
	}
	return &ForceDirected{
 Config: cfg,
 scene: scene,
 bodies: make(map[graphscene.SceneId]*fdBody),
 rng: rand.New(rand.NewSource(seed)),
	}
}

func (f *ForceDirected) Name() string { return "force-directed" }

func (f *ForceDirected) randomPosition() graphscene.Vec3 {
	lerp := func(min, max, t float64) float64 { return min + (max-min)*t }
	return graphscene.Vec3{
 X: lerp(f.Config.BoundsMin.X, f.Config.BoundsMax.X, f.rng.Float64()),
 Y: lerp(f.Config.BoundsMin.Y, f.Config.BoundsMax.Y, f.rng.Float64()),
 Z: lerp(f.Config.BoundsMin.Z, f.Config.BoundsMax.Z, f.rng.Float64()),
	}
}

// CalculateLayout runs the batch force-directed algorithm to convergence or
// MaxIterations, whichever comes first.
func (f *ForceDirected) CalculateLayout(nodes []graphscene.SceneId, edges []Edge) (Result, error) {
	if len(nodes) < 2 {
 return Result{}, graphscene.NewError(graphscene.KindInsufficientNodes, "force-directed layout requires at least 2 nodes")
	}
	start := time.Now()

	positions := currentPositions(f.scene, nodes)
	bodies := make(map[graphscene.SceneId]*fdBody, len(nodes))
	for _, id := range nodes {
 pos, ok := positions[id]
 if !ok || pos == (graphscene.Vec3{}) {
 pos = f.randomPosition()
 }
 bodies[id] = &fdBody{id: id, position: pos}
	}

	ids := append([]graphscene.SceneId(nil), nodes...)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	cfg := f.Config
	repulsion := cfg.RepulsionStrength
	dt := 1.0 / 60.0
	area := (cfg.BoundsMax.X - cfg.BoundsMin.X) * (cfg.BoundsMax.Z - cfg.BoundsMin.Z)
	k := math.Sqrt(area / math.Max(float64(len(ids)), 1))

	var energy float64
	converged := false
	iterations := 0

	for iter := 0; iter < cfg.MaxIterations; iter++ {
 iterations = iter + 1
 forces := make(map[graphscene.SceneId]graphscene.Vec3, len(ids))

 for i := 0; i < len(ids); i++ {
 a := bodies[ids[i]]
 for j := i + 1; j < len(ids); j++ {
 b := bodies[ids[j]]
 delta := a.position.Sub(b.position)
 d := delta.Length()
 if d < 0.01 {
 d = 0.01
 delta = graphscene.Vec3{X: 0.01}
 }
 dir := delta.Scale(1 / d)

 var mag float64
 if cfg.FruchtermanReingold {
 mag = (k * k) / d
 } else if d < cfg.OptimalEdgeLength {
 mag = repulsion * (cfg.OptimalEdgeLength - d) / cfg.OptimalEdgeLength
 }
 mag = clampAbs(mag, cfg.MaxForce)
 fv := dir.Scale(mag)
 forces[a.id] = forces[a.id].Add(fv)
 forces[b.id] = forces[b.id].Sub(fv)
 }
 }

 for _, e := range edges {
 a, ok1 := bodies[e.Source]
 b, ok2 := bodies[e.Target]
 if !ok1 || !ok2 || a == b {
 continue
 }
 delta := a.position.Sub(b.position)
 d := delta.Length()
 if d < 0.01 {
 d = 0.01
 delta = graphscene.Vec3{X: 0.01}
 }
 dir := delta.Scale(1 / d)

 var mag float64
 if cfg.FruchtermanReingold {
 mag = -(d * d) / k
 } else if d < cfg.OptimalEdgeLength {
 mag = repulsion * (cfg.OptimalEdgeLength - d) / cfg.OptimalEdgeLength
 } else {
 mag = -cfg.AttractionStrength * (d - cfg.OptimalEdgeLength) / cfg.OptimalEdgeLength
 }
 mag = clampAbs(mag, cfg.MaxForce)
 fv := dir.Scale(mag)
 forces[a.id] = forces[a.id].Add(fv)
 forces[b.id] = forces[b.id].Sub(fv)
 }

 energy = 0
 for _, id := range ids {
 body := bodies[id]
 force := forces[id]
 body.velocity = body.velocity.Add(force.Scale(dt)).Scale(0.9)
 body.position = body.position.Add(body.velocity.Scale(dt))
 energy += body.velocity.Dot(body.velocity)
 }

 // Cooling schedule: every 100 iterations scale repulsion and dt by
 // 0.99.
 if (iter+1)%100 == 0 {
 repulsion *= 0.99
 dt *= 0.99
 }

 if energy < cfg.ConvergenceThreshold {
 converged = true
 break
 }
	}

	f.bodies = bodies
	out := make(map[graphscene.SceneId]graphscene.Vec3, len(ids))
	for _, id := range ids {
 out[id] = bodies[id].position
	}
	return Result{
 Positions: out,
 Iterations: iterations,
 Energy: energy,
 Converged: converged,
 Elapsed: time.Since(start),
	}, nil
}

// ApplyIncremental implements its incremental path: seed new
// nodes at a random position with zero velocity, drop velocity for removed
// nodes, and absorb edge changes implicitly (the next ministep's forces see
// them). Then runs up to 50 ministeps at a tighter threshold.
func (f *ForceDirected) ApplyIncremental(scene *graphscene.Scene, changes []graphscene.Change) error {
	for _, c := range changes {
 switch c.Kind {
 case graphscene.ChangeNodeAdded:
 if _, ok := f.bodies[c.NodeID]; !ok {
 f.bodies[c.NodeID] = &fdBody{id: c.NodeID, position: f.randomPosition()}
 }
 case graphscene.ChangeNodeRemoved:
 delete(f.bodies, c.NodeID)
 }
	}

	var ids []graphscene.SceneId
	for id := range f.bodies {
 ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var edges []Edge
	for _, eid := range scene.Edges() {
 e := scene.GetEdge(eid)
 if e != nil {
 edges = append(edges, Edge{Source: e.Source, Target: e.Target})
 }
	}

	const ministeps = 50
	const tightThreshold = 0.01
	cfg := f.Config
	for step := 0; step < ministeps; step++ {
 forces := make(map[graphscene.SceneId]graphscene.Vec3, len(ids))
 for i := 0; i < len(ids); i++ {
 a := f.bodies[ids[i]]
 for j := i + 1; j < len(ids); j++ {
 b := f.bodies[ids[j]]
 delta := a.position.Sub(b.position)
 d := delta.Length()
 if d < 0.01 {
 d = 0.01
 delta = graphscene.Vec3{X: 0.01}
 }
 dir := delta.Scale(1 / d)
 var mag float64
 if d < cfg.OptimalEdgeLength {
 mag = cfg.RepulsionStrength * (cfg.OptimalEdgeLength - d) / cfg.OptimalEdgeLength
 }
 mag = clampAbs(mag, cfg.MaxForce)
 fv := dir.Scale(mag)
 forces[a.id] = forces[a.id].Add(fv)
 forces[b.id] = forces[b.id].Sub(fv)
 }
 }
 for _, e := range edges {
 a, ok1 := f.bodies[e.Source]
 b, ok2 := f.bodies[e.Target]
 if !ok1 || !ok2 || a == b {
 continue
 }
 delta := a.position.Sub(b.position)
 d := delta.Length()
 if d < 0.01 {
 d = 0.01
 }
 dir := delta.Scale(1 / d)
 mag := -cfg.AttractionStrength * (d - cfg.OptimalEdgeLength) / cfg.OptimalEdgeLength
 mag = clampAbs(mag, cfg.MaxForce)
 fv := dir.Scale(mag)
 forces[a.id] = forces[a.id].Add(fv)
 forces[b.id] = forces[b.id].Sub(fv)
 }

 var energy float64
 dt := 1.0 / 60.0
 for _, id := range ids {
 body := f.bodies[id]
 force := forces[id]
 body.velocity = body.velocity.Add(force.Scale(dt)).Scale(0.9)
 body.position = body.position.Add(body.velocity.Scale(dt))
 energy += body.velocity.Dot(body.velocity)
 }
 if energy < tightThreshold {
 break
 }
	}

	for _, id := range ids {
 scene.SetNodePosition(id, f.bodies[id].position)
	}
	return nil
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
