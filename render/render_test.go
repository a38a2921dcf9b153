package render

import (
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/graphscene/core"
	"github.com/graphscene/core/camera"
	"github.com/graphscene/core/clusters"
)

func testCamera() *camera.Camera {
	c := camera.New(math.Pi/3, 800.0/600.0, 0.1, 1000)
	c.Position = graphscene.Vec3{Z: 10}
	c.LookAt(graphscene.Vec3{})
	return c
}

func TestProjectCenterPointLandsNearScreenCenter(t *testing.T) {
	cam := testCamera()
	proj := Project(cam, graphscene.Vec3{}, 800, 600)
	if !proj.InFront {
 t.Fatal("expected origin to project in front of camera")
	}
	if math.Abs(proj.X-400) > 1 || math.Abs(proj.Y-300) > 1 {
 t.Errorf("expected near screen center, got (%v, %v)", proj.X, proj.Y)
	}
}

func TestProjectBehindCameraIsNotInFront(t *testing.T) {
	cam := testCamera()
	behind := cam.Position.Add(cam.Forward.Scale(-5))
	proj := Project(cam, behind, 800, 600)
	if proj.InFront {
 t.Error("expected point behind the camera to not be in front")
	}
}

func TestProjectedRadiusShrinksWithDistance(t *testing.T) {
	cam := testCamera()
	near := ProjectedRadius(cam, graphscene.Vec3{Z: 5}, 1, 600)
	far := ProjectedRadius(cam, graphscene.Vec3{Z: -10}, 1, 600)
	if far >= near {
 t.Errorf("expected radius to shrink with distance: near=%v far=%v", near, far)
	}
}

func TestInstanceBufferGrowsByDoublingAndCapsAtMax(t *testing.T) {
	b := NewInstanceBuffer(1, 4, 10)
	if cap(b.Verts) != 4 {
 t.Fatalf("initial vert cap = %d, want 4", cap(b.Verts))
	}
	got := b.EnsureCapacity(3)
	if got != 3 {
 t.Errorf("EnsureCapacity(3) = %d, want 3 (within max)", got)
	}
	if cap(b.Verts) < 12 {
 t.Errorf("expected verts capacity grown to at least 12, got %d", cap(b.Verts))
	}

	// Requesting more than max (2 instances) truncates the returned count.
	b2 := NewInstanceBuffer(1, 4, 2)
	got2 := b2.EnsureCapacity(5)
	if got2 != 2 {
 t.Errorf("EnsureCapacity(5) with max=2 = %d, want 2", got2)
	}
}

func TestLODSystemAssignsTierByDistance(t *testing.T) {
	lod := NewLODSystem()
	if lvl := lod.LevelFor(1, 5); lvl != LODHigh {
 t.Errorf("distance 5 -> %v, want LODHigh", lvl)
	}
	if lvl := lod.LevelFor(1, 1000); lvl != LODCulled {
 t.Errorf("distance 1000 -> %v, want LODCulled", lvl)
	}
}

func TestLODSystemOverrideWins(t *testing.T) {
	lod := NewLODSystem()
	lod.SetOverride(7, LODLow)
	if lvl := lod.LevelFor(7, 1); lvl != LODLow {
 t.Errorf("override ignored, got %v", lvl)
	}
	lod.ClearOverride(7)
	if lvl := lod.LevelFor(7, 1); lvl != LODHigh {
 t.Errorf("expected override cleared, got %v", lvl)
	}
}

func TestLODAdjustForPerformanceShrinksBelowThreshold(t *testing.T) {
	lod := NewLODSystem()
	before := lod.distanceMultiplier
	lod.AdjustForPerformance(20, 60) // far below target
	if lod.distanceMultiplier >= before {
 t.Errorf("expected multiplier to shrink, got %v (was %v)", lod.distanceMultiplier, before)
	}
}

func TestNodePassDrawProducesNonEmptyBatchForVisibleNodes(t *testing.T) {
	cam := testCamera()
	pass := NewNodePass(64)
	target := ebiten.NewImage(800, 600)
	lod := NewLODSystem()

	instances := []NodeInstance{
 {ID: 1, Position: graphscene.Vec3{}, Color: graphscene.ColorWhite, Radius: 1},
 {ID: 2, Position: graphscene.Vec3{X: 1}, Color: graphscene.ColorWhite, Radius: 1, Selected: true},
	}
	pass.Draw(target, cam, instances, lod, 800, 600)
	if len(pass.buffer.Verts) != 8 {
 t.Errorf("expected 4 verts per instance x2 = 8, got %d", len(pass.buffer.Verts))
	}
	if len(pass.buffer.Inds) != 12 {
 t.Errorf("expected 6 indices per instance x2 = 12, got %d", len(pass.buffer.Inds))
	}
}

func TestNodePassCullsOutOfRangeNodes(t *testing.T) {
	cam := testCamera()
	pass := NewNodePass(64)
	target := ebiten.NewImage(800, 600)
	lod := NewLODSystem()

	far := []NodeInstance{{ID: 1, Position: graphscene.Vec3{Z: -10000}, Color: graphscene.ColorWhite, Radius: 1}}
	pass.Draw(target, cam, far, lod, 800, 600)
	if len(pass.buffer.Verts) != 0 {
 t.Errorf("expected culled node to produce no verts, got %d", len(pass.buffer.Verts))
	}
}

func TestEdgePassProducesQuadPerVisibleEdge(t *testing.T) {
	cam := testCamera()
	pass := NewEdgePass(64)
	target := ebiten.NewImage(800, 600)

	edges := []EdgeInstance{
 {ID: 1, Source: graphscene.Vec3{X: -1}, Target: graphscene.Vec3{X: 1}, EdgeType: graphscene.EdgeType{Kind: graphscene.EdgeDependsOn}, Color: graphscene.ColorWhite},
	}
	pass.Draw(target, cam, edges, 800, 600, 0)
	if len(pass.buffer.Verts) != 4 {
 t.Errorf("expected 4 verts for one edge quad, got %d", len(pass.buffer.Verts))
	}
}

func TestEdgePassDropsZeroLengthEdge(t *testing.T) {
	cam := testCamera()
	pass := NewEdgePass(64)
	target := ebiten.NewImage(800, 600)

	edges := []EdgeInstance{
 {ID: 1, Source: graphscene.Vec3{}, Target: graphscene.Vec3{}, EdgeType: graphscene.EdgeType{Kind: graphscene.EdgeDependsOn}, Color: graphscene.ColorWhite},
	}
	pass.Draw(target, cam, edges, 800, 600, 0)
	if len(pass.buffer.Verts) != 0 {
 t.Errorf("expected zero-length edge to produce no verts, got %d", len(pass.buffer.Verts))
	}
}

func TestClusterPassDrawsFillAndOutlineForCircleBoundary(t *testing.T) {
	cam := testCamera()
	pass := NewClusterPass(8)
	target := ebiten.NewImage(800, 600)

	boundary := clusters.Boundary{Kind: clusters.BoundaryCircle, Center: clusters.Point2{}, Radius: 2}
	instances := []ClusterInstance{
 {Boundary: boundary, Style: clusters.DefaultStyle(), GroundY: 0},
	}
	pass.Draw(target, cam, instances, 800, 600)
	if len(pass.fillBuffer.Verts) == 0 {
 t.Error("expected fill buffer to receive the tessellated circle")
	}
	if len(pass.outlineBuffer.Verts) == 0 {
 t.Error("expected outline buffer to receive polygon edges")
	}
}

func TestEffectsPassEmitAndUpdateLifecycle(t *testing.T) {
	pass := NewEffectsPass(256)
	pass.EmitSpark(graphscene.Vec3{}, graphscene.ColorWhite, 10)
	if pass.ActiveSparkCount() != 1 {
 t.Fatalf("expected 1 active spark, got %d", pass.ActiveSparkCount())
	}
	for i := 0; i < 200; i++ {
 pass.Update(0.05)
	}
	if pass.ActiveSparkCount() != 0 {
 t.Errorf("expected spark to expire after enough updates, got %d active", pass.ActiveSparkCount())
	}
}

func TestGlowPassDrawWithNoInstancesDoesNotAllocateOffscreen(t *testing.T) {
	pass := NewGlowPass()
	target := ebiten.NewImage(800, 600)
	pass.Draw(target, testCamera(), nil, 800, 600)
	if pass.offscreen != nil {
 t.Error("expected no offscreen buffer allocated for an empty instance list")
	}
}

func TestGlowPassDrawWithInstanceAllocatesAndComposites(t *testing.T) {
	pass := NewGlowPass()
	target := ebiten.NewImage(800, 600)
	instances := []GlowInstance{{WorldPos: graphscene.Vec3{}, Radius: 2, Color: graphscene.ColorWhite}}
	pass.Draw(target, testCamera(), instances, 800, 600)
	if pass.offscreen == nil {
 t.Fatal("expected offscreen buffer to be allocated once an instance is drawn")
	}
}

func TestSelectedGlowsDerivesOnlyFromSelectedNodes(t *testing.T) {
	nodes := []NodeInstance{
 {ID: 1, Position: graphscene.Vec3{}, Radius: 1, Selected: false},
 {ID: 2, Position: graphscene.Vec3{X: 1}, Radius: 1, Selected: true},
	}
	glows := selectedGlows(nodes)
	if len(glows) != 1 {
 t.Fatalf("expected exactly one glow from the selected node, got %d", len(glows))
	}
}

func TestRendererDrawRunsAllPassesWithoutPanicking(t *testing.T) {
	cam := testCamera()
	r := NewRenderer(cam, 800, 600)
	target := ebiten.NewImage(800, 600)

	in := FrameInput{
 Nodes: []NodeInstance{{ID: 1, Position: graphscene.Vec3{}, Color: graphscene.ColorWhite, Radius: 1, Selected: true}},
 Edges: []EdgeInstance{{ID: 1, Source: graphscene.Vec3{X: -1}, Target: graphscene.Vec3{X: 1}, EdgeType: graphscene.EdgeType{Kind: graphscene.EdgeDependsOn}, Color: graphscene.ColorWhite}},
 Clusters: []ClusterInstance{
 {Boundary: clusters.Boundary{Kind: clusters.BoundaryCircle, Radius: 1}, Style: clusters.DefaultStyle()},
 },
	}
	r.Draw(target, in)
	r.Resize(1024, 768)
	if r.Camera.Aspect != 1024.0/768.0 {
 t.Errorf("expected resize to update camera aspect, got %v", r.Camera.Aspect)
	}
}
