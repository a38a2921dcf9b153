// Package layout implements the graph layout algorithm family: a single
// Algorithm interface behind force-directed, hierarchical, circular, and
// grid implementations, plus a Manager with undo history and quality
// metrics.
package layout

import (
	"time"

	"github.com/graphscene/core"
)

// Edge is the minimal edge shape every layout algorithm needs: its two
// endpoints. Callers derive this from Scene edges or EdgeManager's managed
// edges.
type Edge struct {
	Source, Target graphscene.SceneId
}

// Result is calculate_layout's return value.
type Result struct {
	Positions map[graphscene.SceneId]graphscene.Vec3
	Iterations int
	Energy float64
	Converged bool
	Elapsed time.Duration
}

// Algorithm is the single interface every layout implementation satisfies.
type Algorithm interface {
	Name() string
	CalculateLayout(nodes []graphscene.SceneId, edges []Edge) (Result, error)
}

// Incremental is optionally satisfied by algorithms that can react to scene
// changes without a full recompute (force-directed only).
type Incremental interface {
	ApplyIncremental(scene *graphscene.Scene, changes []graphscene.Change) error
}

// currentPositions reads each node's position from scene, defaulting to the
// zero vector for nodes the Scene has never positioned.
func currentPositions(scene *graphscene.Scene, nodes []graphscene.SceneId) map[graphscene.SceneId]graphscene.Vec3 {
	out := make(map[graphscene.SceneId]graphscene.Vec3, len(nodes))
	for _, id := range nodes {
 if pos, ok := scene.GetNodePosition(id); ok {
 out[id] = pos
 }
	}
	return out
}
