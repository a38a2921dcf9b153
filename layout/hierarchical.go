package layout

import (
	"sort"
	"time"

	"github.com/graphscene/core"
)

// Direction is the axis hierarchical layers are aligned along (the
// "Layout" config row's hierarchical{direction,...}).
type Direction uint8

const (
	TopToBottom Direction = iota
	BottomToTop
	LeftToRight
	RightToLeft
)

// HierarchicalConfig holds its knobs.
type HierarchicalConfig struct {
	Direction Direction
	LayerSpacing float64
	NodeSpacing float64
}

// DefaultHierarchicalConfig returns reasonable defaults.
func DefaultHierarchicalConfig() HierarchicalConfig {
	return HierarchicalConfig{Direction: TopToBottom, LayerSpacing: 5, NodeSpacing: 3}
}

// Hierarchical is : directed edges define child-of; layer is
// the longest-path-from-roots topological order; within-layer ordering
// minimizes crossings by iterated barycenter. Deterministic, non-incremental.
type Hierarchical struct {
	Config HierarchicalConfig
}

func NewHierarchical(cfg HierarchicalConfig) *Hierarchical { return &Hierarchical{Config: cfg} }

func (h *Hierarchical) Name() string { return "hierarchical" }

// CalculateLayout assigns layer(node) via longest-path-from-roots, orders
// each layer by 5 passes of barycenter sorting, then maps to world
// positions along Config.Direction.
func (h *Hierarchical) CalculateLayout(nodes []graphscene.SceneId, edges []Edge) (Result, error) {
	if len(nodes) < 2 {
 return Result{}, graphscene.NewError(graphscene.KindInsufficientNodes, "hierarchical layout requires at least 2 nodes")
	}
	start := time.Now()

	children := make(map[graphscene.SceneId][]graphscene.SceneId)
	parents := make(map[graphscene.SceneId][]graphscene.SceneId)
	hasIncoming := make(map[graphscene.SceneId]bool)
	for _, e := range edges {
 children[e.Source] = append(children[e.Source], e.Target)
 parents[e.Target] = append(parents[e.Target], e.Source)
 hasIncoming[e.Target] = true
	}

	layer := make(map[graphscene.SceneId]int)
	for _, id := range nodes {
 layer[id] = 0
	}

	// Longest path from roots: relax repeatedly until stable (nodes count
	// bounds the number of passes needed since layers only increase).
	for pass := 0; pass < len(nodes)+1; pass++ {
 changed := false
 for _, e := range edges {
 if layer[e.Target] < layer[e.Source]+1 {
 layer[e.Target] = layer[e.Source] + 1
 changed = true
 }
 }
 if !changed {
 break
 }
	}

	maxLayer := 0
	byLayer := make(map[int][]graphscene.SceneId)
	for _, id := range nodes {
 l := layer[id]
 byLayer[l] = append(byLayer[l], id)
 if l > maxLayer {
 maxLayer = l
 }
	}
	for l := range byLayer {
 sort.Slice(byLayer[l], func(i, j int) bool { return byLayer[l][i] < byLayer[l][j] })
	}

	ordinal := make(map[graphscene.SceneId]int)
	for l := 0; l <= maxLayer; l++ {
 for i, id := range byLayer[l] {
 ordinal[id] = i
 }
	}

	// Iterated barycenter: each node's target ordinal is the mean ordinal
	// of its neighbors in adjacent layers; sort, repeat <=5 passes.
	for pass := 0; pass < 5; pass++ {
 for l := 0; l <= maxLayer; l++ {
 layerNodes := byLayer[l]
 type scored struct {
 id graphscene.SceneId
 score float64
 }
 scores := make([]scored, 0, len(layerNodes))
 for _, id := range layerNodes {
 var sum float64
 var count int
 for _, p := range parents[id] {
 sum += float64(ordinal[p])
 count++
 }
 for _, c := range children[id] {
 sum += float64(ordinal[c])
 count++
 }
 sc := float64(ordinal[id])
 if count > 0 {
 sc = sum / float64(count)
 }
 scores = append(scores, scored{id: id, score: sc})
 }
 sort.SliceStable(scores, func(i, j int) bool {
 if scores[i].score != scores[j].score {
 return scores[i].score < scores[j].score
 }
 return scores[i].id < scores[j].id
 })
 newLayer := make([]graphscene.SceneId, len(scores))
 for i, s := range scores {
 newLayer[i] = s.id
 ordinal[s.id] = i
 }
 byLayer[l] = newLayer
 }
	}

	cfg := h.Config
	positions := make(map[graphscene.SceneId]graphscene.Vec3, len(nodes))
	for l := 0; l <= maxLayer; l++ {
 layerNodes := byLayer[l]
 n := len(layerNodes)
 for i, id := range layerNodes {
 along := (float64(i) - float64(n-1)/2.0) * cfg.NodeSpacing
 depth := float64(l) * cfg.LayerSpacing
 positions[id] = placeOnAxis(cfg.Direction, along, depth)
 }
	}

	return Result{
 Positions: positions,
 Iterations: 1,
 Energy: 0,
 Converged: true,
 Elapsed: time.Since(start),
	}, nil
}

// placeOnAxis maps (along-layer, depth) to world coordinates per
// Direction, matching its scenario S4 expectation that
// y(shallower layer) > y(deeper layer) for TopToBottom.
func placeOnAxis(dir Direction, along, depth float64) graphscene.Vec3 {
	switch dir {
	case TopToBottom:
 return graphscene.Vec3{X: along, Y: -depth, Z: 0}
	case BottomToTop:
 return graphscene.Vec3{X: along, Y: depth, Z: 0}
	case LeftToRight:
 return graphscene.Vec3{X: depth, Y: along, Z: 0}
	case RightToLeft:
 return graphscene.Vec3{X: -depth, Y: along, Z: 0}
	default:
 return graphscene.Vec3{X: along, Y: -depth, Z: 0}
	}
}
