package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/graphscene/core"
	"github.com/graphscene/core/camera"
)

// ClearColor is the renderer's background fill, applied before any pass
// runs.
var ClearColor = color.RGBA{R: 12, G: 12, B: 18, A: 255}

// FrameInput bundles everything a single Renderer.Draw call needs: the
// visible scene content already culled/resolved by the caller (runtime
// package) plus the animated-edge phase. The camera and LOD system are the
// Renderer's own fields, not part of FrameInput.
type FrameInput struct {
	Nodes []NodeInstance
	Edges []EdgeInstance
	Clusters []ClusterInstance
	AnimPhase float64
}

// Renderer orchestrates every render pass in a fixed order: Clear, Node
// pass, Glow pass, Edge pass, Cluster boundary pass, Effects. It owns the
// camera and LOD system so the runtime package only has to supply
// per-frame scene content.
type Renderer struct {
	Camera *camera.Camera
	LOD *LODSystem

	nodes *NodePass
	edges *EdgePass
	clusters *ClusterPass
	effects *EffectsPass
	glow *GlowPass

	width, height float64
}

// NewRenderer constructs a Renderer sized to an initial viewport, with
// generous default instance caps per pass — callers needing different caps
// can construct the passes directly instead of going through NewRenderer.
func NewRenderer(cam *camera.Camera, width, height float64) *Renderer {
	return &Renderer{
 Camera: cam,
 LOD: NewLODSystem(),
 nodes: NewNodePass(4096),
 edges: NewEdgePass(8192),
 clusters: NewClusterPass(256),
 effects: NewEffectsPass(1024),
 glow: NewGlowPass(),
 width: width,
 height: height,
	}
}

// Resize reconfigures the camera's aspect ratio and the renderer's
// viewport dimensions, called on a host window-resize event.
func (r *Renderer) Resize(width, height float64) {
	if width <= 0 || height <= 0 {
 return
	}
	r.width, r.height = width, height
	r.Camera.SetAspect(width, height)
}

// Draw runs the full render-pass pipeline onto target in the fixed pass
// order. Each pass uploads the camera's view-projection matrix implicitly
// through the shared Project helper rather than a persisted GPU uniform
// buffer, since ebiten has no explicit uniform-upload step for 2D draws —
// every Project call computes cam.ViewProjectionMatrix() afresh; nothing is
// cached across calls.
func (r *Renderer) Draw(target *ebiten.Image, in FrameInput) {
	target.Fill(ClearColor)

	r.nodes.Draw(target, r.Camera, in.Nodes, r.LOD, r.width, r.height)
	r.glow.Draw(target, r.Camera, selectedGlows(in.Nodes), int(r.width), int(r.height))
	r.edges.Draw(target, r.Camera, in.Edges, r.width, r.height, in.AnimPhase)
	r.clusters.Draw(target, r.Camera, in.Clusters, r.width, r.height)
	r.effects.Draw(target, r.Camera, r.width, r.height)
}

// selectedGlows derives one GlowInstance per selected node, sized larger
// than the node's own radius so the halo reads as a ring around it.
func selectedGlows(nodes []NodeInstance) []GlowInstance {
	var out []GlowInstance
	for _, n := range nodes {
 if !n.Selected {
 continue
 }
 out = append(out, GlowInstance{WorldPos: n.Position, Radius: n.Radius * 2.5, Color: n.Color})
	}
	return out
}

// UpdateEffects advances the effects pass's particle simulation by dt
// seconds; called once per runtime tick, before Draw.
func (r *Renderer) UpdateEffects(dt float64) {
	r.effects.Update(dt)
}

// EmitSelectSpark triggers a selection-feedback particle burst at a world
// position (a node action handler's Select/Focus), exposed so the
// runtime/ecs bridge can react to host-dispatched actions without reaching
// into the effects pass directly.
func (r *Renderer) EmitSelectSpark(worldPos graphscene.Vec3, c graphscene.Color) {
	r.effects.EmitSpark(worldPos, c, 16)
}

// AdjustLOD feeds a measured frame rate into the LOD system's adaptive
// distance-tier scaling. The runtime loop does not call it; the host
// chooses when to pass in a measured frame rate.
func (r *Renderer) AdjustLOD(currentFPS, targetFPS float64) {
	r.LOD.AdjustForPerformance(currentFPS, targetFPS)
}
