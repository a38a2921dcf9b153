package render

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/graphscene/core"
	"github.com/graphscene/core/camera"
)

// EdgePass draws every visible SceneEdge as a thin screen-space quad, line
// primitives whose thickness derives from the edge's type. ebiten's
// DrawTriangles only accepts triangle lists, so each line segment is
// expanded into a quad two triangles wide, using the same batch-append
// idiom as the node pass.
type EdgePass struct {
	buffer *InstanceBuffer
}

func NewEdgePass(maxEdges int) *EdgePass {
	return &EdgePass{buffer: NewInstanceBuffer(512, 4, maxEdges)}
}

// EdgeInstance is the per-edge data the edge pass consumes.
type EdgeInstance struct {
	ID graphscene.SceneId
	Source, Target graphscene.Vec3
	EdgeType graphscene.EdgeType
	Color graphscene.Color
	Animated bool
}

// animPhase advances a dash-like pulse for animated edges; callers supply
// the running clock value (seconds) rather than this package tracking time,
// keeping EdgePass itself free of a wall-clock dependency.
func (p *EdgePass) Draw(target *ebiten.Image, cam *camera.Camera, edges []EdgeInstance, screenW, screenH, animPhase float64) {
	p.buffer.Reset()
	p.buffer.EnsureCapacity(len(edges))

	for _, e := range edges {
 a := Project(cam, e.Source, screenW, screenH)
 b := Project(cam, e.Target, screenW, screenH)
 if !a.InFront || !b.InFront {
 continue
 }
 thickness := e.EdgeType.DefaultThickness()
 c := e.Color
 if e.Animated {
 pulse := 0.5 + 0.5*pulseWave(animPhase)
 c.A = clamp01(c.A * (0.5 + 0.5*pulse))
 }
 appendLineQuad(p.buffer, a.X, a.Y, b.X, b.Y, thickness, c)
	}

	if len(p.buffer.Verts) == 0 {
 return
	}
	var op ebiten.DrawTrianglesOptions
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	target.DrawTriangles32(p.buffer.Verts, p.buffer.Inds, whitePixel, &op)
}

func pulseWave(phase float64) float64 {
	// Cheap triangle wave in [0,1], used instead of math.Sin.
	f := phase - float64(int64(phase))
	if f < 0 {
 f += 1
	}
	if f < 0.5 {
 return f * 2
	}
	return (1 - f) * 2
}

func appendLineQuad(b *InstanceBuffer, ax, ay, bx, by, thickness float64, c graphscene.Color) {
	dx, dy := bx-ax, by-ay
	length := dx*dx + dy*dy
	if length < 1e-12 {
 return
	}
	inv := 1 / math.Sqrt(length)
	nx, ny := -dy*inv*thickness/2, dx*inv*thickness/2

	base := uint32(len(b.Verts))
	cr, cg, cbv, ca := premultiply(c)
	b.Verts = append(b.Verts,
 ebiten.Vertex{DstX: float32(ax + nx), DstY: float32(ay + ny), ColorR: cr, ColorG: cg, ColorB: cbv, ColorA: ca},
 ebiten.Vertex{DstX: float32(ax - nx), DstY: float32(ay - ny), ColorR: cr, ColorG: cg, ColorB: cbv, ColorA: ca},
 ebiten.Vertex{DstX: float32(bx + nx), DstY: float32(by + ny), ColorR: cr, ColorG: cg, ColorB: cbv, ColorA: ca},
 ebiten.Vertex{DstX: float32(bx - nx), DstY: float32(by - ny), ColorR: cr, ColorG: cg, ColorB: cbv, ColorA: ca},
	)
	b.Inds = append(b.Inds, base+0, base+1, base+2, base+1, base+3, base+2)
}
