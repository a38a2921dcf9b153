package layout

import (
	"math"
	"sort"
	"time"

	"github.com/graphscene/core"
)

// CircularConfig holds its circular layout knobs.
type CircularConfig struct {
	Radius float64
	Center graphscene.Vec3
}

// Circular places nodes evenly on a circle of configured radius around a
// center. Deterministic, trivial.
type Circular struct{ Config CircularConfig }

func NewCircular(cfg CircularConfig) *Circular { return &Circular{Config: cfg} }

func (c *Circular) Name() string { return "circular" }

func (c *Circular) CalculateLayout(nodes []graphscene.SceneId, _ []Edge) (Result, error) {
	if len(nodes) < 2 {
 return Result{}, graphscene.NewError(graphscene.KindInsufficientNodes, "circular layout requires at least 2 nodes")
	}
	start := time.Now()

	ids := append([]graphscene.SceneId(nil), nodes...)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	positions := make(map[graphscene.SceneId]graphscene.Vec3, len(ids))
	n := float64(len(ids))
	for i, id := range ids {
 theta := 2 * math.Pi * float64(i) / n
 positions[id] = graphscene.Vec3{
 X: c.Config.Center.X + c.Config.Radius*math.Cos(theta),
 Y: c.Config.Center.Y,
 Z: c.Config.Center.Z + c.Config.Radius*math.Sin(theta),
 }
	}

	return Result{Positions: positions, Iterations: 1, Converged: true, Elapsed: time.Since(start)}, nil
}

// GridConfig holds its grid layout knobs.
type GridConfig struct {
	CellSize float64
	Columns *int // optional cap; nil means ceil(sqrt(n))
}

// Grid fills cells of configured size in row-major order, with an optional
// column cap. Deterministic, trivial.
type Grid struct{ Config GridConfig }

func NewGrid(cfg GridConfig) *Grid { return &Grid{Config: cfg} }

func (g *Grid) Name() string { return "grid" }

func (g *Grid) CalculateLayout(nodes []graphscene.SceneId, _ []Edge) (Result, error) {
	if len(nodes) < 2 {
 return Result{}, graphscene.NewError(graphscene.KindInsufficientNodes, "grid layout requires at least 2 nodes")
	}
	start := time.Now()

	ids := append([]graphscene.SceneId(nil), nodes...)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	columns := g.Config.Columns
	cols := int(math.Ceil(math.Sqrt(float64(len(ids)))))
	if columns != nil && *columns > 0 {
 cols = *columns
	}

	positions := make(map[graphscene.SceneId]graphscene.Vec3, len(ids))
	for i, id := range ids {
 row := i / cols
 col := i % cols
 positions[id] = graphscene.Vec3{
 X: float64(col) * g.Config.CellSize,
 Y: 0,
 Z: float64(row) * g.Config.CellSize,
 }
	}

	return Result{Positions: positions, Iterations: 1, Converged: true, Elapsed: time.Since(start)}, nil
}
