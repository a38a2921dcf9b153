package layout

import (
	"testing"

	"github.com/graphscene/core"
)

func TestForceDirectedConvergesOnThreeNodeChain(t *testing.T) {
	// Scenario S3: three nodes at (0,0,0),(2,0,0),(0,2,0); edges 1-2, 2-3.
	scene := graphscene.NewScene()
	n1 := scene.AddNode(graphscene.NewSceneNode(graphscene.NodeType{Kind: graphscene.NodeConcept}))
	n2 := scene.AddNode(graphscene.NewSceneNode(graphscene.NodeType{Kind: graphscene.NodeConcept}))
	n3 := scene.AddNode(graphscene.NewSceneNode(graphscene.NodeType{Kind: graphscene.NodeConcept}))
	scene.SetNodePosition(n1, graphscene.Vec3{X: 0, Y: 0})
	scene.SetNodePosition(n2, graphscene.Vec3{X: 2, Y: 0})
	scene.SetNodePosition(n3, graphscene.Vec3{X: 0, Y: 2})

	cfg := DefaultForceDirectedConfig()
	cfg.ConvergenceThreshold = 0.1
	cfg.MaxIterations = 500
	L := cfg.OptimalEdgeLength

	fd := NewForceDirected(scene, cfg)
	edges := []Edge{{Source: n1, Target: n2}, {Source: n2, Target: n3}}

	result, err := fd.CalculateLayout([]graphscene.SceneId{n1, n2, n3}, edges)
	if err != nil {
 t.Fatalf("CalculateLayout: %v", err)
	}
	if !result.Converged {
 t.Fatalf("expected convergence within %d iterations, got energy=%v after %d iterations",
 cfg.MaxIterations, result.Energy, result.Iterations)
	}

	check := func(a, b graphscene.SceneId) {
 d := result.Positions[a].Distance(result.Positions[b])
 if d < 0.8*L || d > 1.2*L {
 t.Errorf("distance %v not within [%.2f, %.2f]", d, 0.8*L, 1.2*L)
 }
	}
	check(n1, n2)
	check(n2, n3)
}

func TestHierarchicalLayersAndOrdering(t *testing.T) {
	// Scenario S4: nodes 1..4; edges 1->2, 1->3, 2->4; TopToBottom.
	n1, n2, n3, n4 := graphscene.SceneId(1), graphscene.SceneId(2), graphscene.SceneId(3), graphscene.SceneId(4)
	edges := []Edge{{Source: n1, Target: n2}, {Source: n1, Target: n3}, {Source: n2, Target: n4}}

	h := NewHierarchical(DefaultHierarchicalConfig())
	result, err := h.CalculateLayout([]graphscene.SceneId{n1, n2, n3, n4}, edges)
	if err != nil {
 t.Fatalf("CalculateLayout: %v", err)
	}

	if result.Positions[n1].Y <= result.Positions[n2].Y {
 t.Errorf("expected y(1) > y(2), got y(1)=%v y(2)=%v", result.Positions[n1].Y, result.Positions[n2].Y)
	}
	if result.Positions[n2].Y != result.Positions[n3].Y {
 t.Errorf("expected y(2) == y(3), got y(2)=%v y(3)=%v", result.Positions[n2].Y, result.Positions[n3].Y)
	}
	if result.Positions[n2].Y <= result.Positions[n4].Y {
 t.Errorf("expected y(2) > y(4), got y(2)=%v y(4)=%v", result.Positions[n2].Y, result.Positions[n4].Y)
	}
}

func TestCircularPlacesNodesOnConfiguredRadius(t *testing.T) {
	c := NewCircular(CircularConfig{Radius: 10})
	ids := []graphscene.SceneId{1, 2, 3, 4}
	result, err := c.CalculateLayout(ids, nil)
	if err != nil {
 t.Fatalf("CalculateLayout: %v", err)
	}
	for _, id := range ids {
 p := result.Positions[id]
 d := (p.X*p.X + p.Z*p.Z)
 want := 10.0 * 10.0
 if d < want-1e-6 || d > want+1e-6 {
 t.Errorf("node %d not on radius 10 circle: %+v", id, p)
 }
	}
}

func TestGridRowMajorWithColumnCap(t *testing.T) {
	cols := 2
	g := NewGrid(GridConfig{CellSize: 1, Columns: &cols})
	ids := []graphscene.SceneId{1, 2, 3, 4}
	result, err := g.CalculateLayout(ids, nil)
	if err != nil {
 t.Fatalf("CalculateLayout: %v", err)
	}
	if result.Positions[1].X != 0 || result.Positions[1].Z != 0 {
 t.Errorf("expected node 1 at origin, got %+v", result.Positions[1])
	}
	if result.Positions[2].X != 1 || result.Positions[2].Z != 0 {
 t.Errorf("expected node 2 at (1,0), got %+v", result.Positions[2])
	}
	if result.Positions[3].X != 0 || result.Positions[3].Z != 1 {
 t.Errorf("expected node 3 at (0,1) after wrap, got %+v", result.Positions[3])
	}
}

func TestLayoutWithFewerThanTwoNodesIsInsufficientNodes(t *testing.T) {
	c := NewCircular(CircularConfig{Radius: 1})
	_, err := c.CalculateLayout([]graphscene.SceneId{1}, nil)
	if err == nil {
 t.Fatal("expected error for single-node layout")
	}
	se, ok := err.(*graphscene.SceneError)
	if !ok {
 t.Fatalf("expected *SceneError, got %T", err)
	}
	if se.Kind != graphscene.KindInsufficientNodes {
 t.Errorf("Kind = %v, want KindInsufficientNodes", se.Kind)
	}
}

func TestManagerHistoryUndoRoundTrip(t *testing.T) {
	scene := graphscene.NewScene()
	a := scene.AddNode(graphscene.NewSceneNode(graphscene.NodeType{Kind: graphscene.NodeConcept}))
	b := scene.AddNode(graphscene.NewSceneNode(graphscene.NodeType{Kind: graphscene.NodeConcept}))
	scene.SetNodePosition(a, graphscene.Vec3{X: 1})
	scene.SetNodePosition(b, graphscene.Vec3{X: 2})

	mgr := NewManager(scene)
	grid := NewGrid(GridConfig{CellSize: 5})
	if _, err := mgr.Run(grid, []graphscene.SceneId{a, b}, nil, nil); err != nil {
 t.Fatalf("Run: %v", err)
	}

	if mgr.HistoryLen() != 1 {
 t.Fatalf("HistoryLen = %d, want 1", mgr.HistoryLen())
	}
	metrics, ok := mgr.LastMetrics()
	if !ok {
 t.Fatal("expected metrics recorded after Run")
	}
	_ = metrics

	if !mgr.Undo() {
 t.Fatal("expected Undo to succeed")
	}
	posA, _ := scene.GetNodePosition(a)
	if posA.X != 1 {
 t.Errorf("expected undo to restore node a to x=1, got %v", posA.X)
	}
}

func TestManagerHistoryCapped(t *testing.T) {
	scene := graphscene.NewScene()
	a := scene.AddNode(graphscene.NewSceneNode(graphscene.NodeType{Kind: graphscene.NodeConcept}))
	b := scene.AddNode(graphscene.NewSceneNode(graphscene.NodeType{Kind: graphscene.NodeConcept}))

	mgr := NewManager(scene)
	grid := NewGrid(GridConfig{CellSize: 1})
	for i := 0; i < historyCap+10; i++ {
 if _, err := mgr.Run(grid, []graphscene.SceneId{a, b}, nil, nil); err != nil {
 t.Fatalf("Run: %v", err)
 }
	}
	if mgr.HistoryLen() != historyCap {
 t.Errorf("HistoryLen = %d, want %d", mgr.HistoryLen(), historyCap)
	}
}

func TestComputeMetricsEdgeCrossingsAndUniformity(t *testing.T) {
	positions := map[graphscene.SceneId]graphscene.Vec3{
 1: {X: 0, Y: 0},
 2: {X: 10, Y: 10},
 3: {X: 10, Y: 0},
 4: {X: 0, Y: 10},
	}
	edges := []Edge{{Source: 1, Target: 2}, {Source: 3, Target: 4}}
	m := ComputeMetrics(positions, edges, nil)
	if m.EdgeCrossings != 1 {
 t.Errorf("EdgeCrossings = %d, want 1 (diagonals of a square cross)", m.EdgeCrossings)
	}
	if m.AvgEdgeLength <= 0 {
 t.Errorf("AvgEdgeLength = %v, want > 0", m.AvgEdgeLength)
	}
	if m.DistributionUniformity <= 0 || m.DistributionUniformity > 1 {
 t.Errorf("DistributionUniformity = %v, want in (0,1]", m.DistributionUniformity)
	}
}
