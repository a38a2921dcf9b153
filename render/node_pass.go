package render

import (
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/graphscene/core"
	"github.com/graphscene/core/camera"
)

// whitePixel is a 1x1 opaque image used as the node/edge pass's source
// texture so DrawTriangles can tint purely via vertex color.
var whitePixel = newWhitePixel()

func newWhitePixel() *ebiten.Image {
	img := ebiten.NewImage(1, 1)
	img.Fill(color.White)
	return img
}

// NodePass draws one instanced quad per visible node: position, color,
// radius, and selected state packed into one instance buffer and submitted
// in a single DrawTriangles32 call per frame. A true GPU instanced sphere
// mesh is out of reach of ebiten's 2D draw surface; this pass approximates
// it with camera-facing billboard quads in one flat color per instance
// (brightened when selected), sized by ProjectedRadius.
type NodePass struct {
	buffer *InstanceBuffer
}

func NewNodePass(maxInstances int) *NodePass {
	return &NodePass{buffer: NewInstanceBuffer(256, 4, maxInstances)}
}

// NodeInstance is the per-instance data the node pass consumes, mirroring
// its instance buffer fields.
type NodeInstance struct {
	ID graphscene.SceneId
	Position graphscene.Vec3
	Color graphscene.Color
	Radius float64
	Selected bool
}

// Draw submits every instance whose LOD level is not Culled, sorted
// back-to-front by depth for correct alpha blending, as a single batched
// draw call onto target.
func (p *NodePass) Draw(target *ebiten.Image, cam *camera.Camera, instances []NodeInstance, lod *LODSystem, screenW, screenH float64) {
	p.buffer.Reset()

	type visible struct {
 inst NodeInstance
 proj Projected
 level Level
	}
	var vis []visible
	for _, inst := range instances {
 proj := Project(cam, inst.Position, screenW, screenH)
 if !proj.InFront {
 continue
 }
 level := lod.LevelFor(inst.ID, cam.Position.Distance(inst.Position))
 if level == LODCulled {
 continue
 }
 vis = append(vis, visible{inst: inst, proj: proj, level: level})
	}
	// Painter's algorithm: far first.
	sort.Slice(vis, func(i, j int) bool { return vis[i].proj.Depth > vis[j].proj.Depth })

	p.buffer.EnsureCapacity(len(vis))
	for _, v := range vis {
 radiusPx := ProjectedRadius(cam, v.inst.Position, v.inst.Radius, screenH)
 if radiusPx < 0.5 {
 radiusPx = 0.5
 }
 // Emissive boost when selected ("boosts emissive when
 // selected").
 c := v.inst.Color
 if v.inst.Selected {
 c = graphscene.Color{
 R: clamp01(c.R*1.4 + 0.1), G: clamp01(c.G*1.4 + 0.1), B: clamp01(c.B*1.4 + 0.1), A: c.A,
 }
 }
 appendBillboardQuad(p.buffer, v.proj.X, v.proj.Y, radiusPx, c)
	}

	if len(p.buffer.Verts) == 0 {
 return
	}
	var op ebiten.DrawTrianglesOptions
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	target.DrawTriangles32(p.buffer.Verts, p.buffer.Inds, whitePixel, &op)
}

func appendBillboardQuad(b *InstanceBuffer, cx, cy, radius float64, c graphscene.Color) {
	base := uint32(len(b.Verts))
	cr, cg, cbv, ca := premultiply(c)
	b.Verts = append(b.Verts,
 ebiten.Vertex{DstX: float32(cx - radius), DstY: float32(cy - radius), SrcX: 0, SrcY: 0, ColorR: cr, ColorG: cg, ColorB: cbv, ColorA: ca},
 ebiten.Vertex{DstX: float32(cx + radius), DstY: float32(cy - radius), SrcX: 1, SrcY: 0, ColorR: cr, ColorG: cg, ColorB: cbv, ColorA: ca},
 ebiten.Vertex{DstX: float32(cx - radius), DstY: float32(cy + radius), SrcX: 0, SrcY: 1, ColorR: cr, ColorG: cg, ColorB: cbv, ColorA: ca},
 ebiten.Vertex{DstX: float32(cx + radius), DstY: float32(cy + radius), SrcX: 1, SrcY: 1, ColorR: cr, ColorG: cg, ColorB: cbv, ColorA: ca},
	)
	b.Inds = append(b.Inds, base+0, base+1, base+2, base+1, base+3, base+2)
}

func premultiply(c graphscene.Color) (r, g, b, a float32) {
	a = float32(c.A)
	return float32(c.R) * a, float32(c.G) * a, float32(c.B) * a, a
}

func clamp01(v float64) float64 {
	if v < 0 {
 return 0
	}
	if v > 1 {
 return 1
	}
	return v
}
