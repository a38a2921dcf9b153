package render

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/graphscene/core"
	"github.com/graphscene/core/camera"
	"github.com/graphscene/core/clusters"
)

// ClusterPass draws each visible cluster's Boundary as a translucent,
// fan-triangulated fill plus a thin polygon outline, with style drawn from
// the cluster's own Style. Boundaries are already projected into the XZ
// plane by clusters.ComputeBoundary, so each vertex is lifted back to a
// Vec3 on the ground plane (Y=0) before going through the shared camera
// projection used by the node/edge passes.
type ClusterPass struct {
	fillBuffer *InstanceBuffer
	outlineBuffer *InstanceBuffer
}

func NewClusterPass(maxClusters int) *ClusterPass {
	// A boundary polygon is rarely more than a few dozen points; budget
	// generously per cluster.
	const vertsPerCluster = 64
	return &ClusterPass{
 fillBuffer: NewInstanceBuffer(maxClusters, vertsPerCluster, maxClusters*vertsPerCluster),
 outlineBuffer: NewInstanceBuffer(maxClusters, vertsPerCluster, maxClusters*vertsPerCluster),
	}
}

// ClusterInstance pairs a cluster's boundary geometry with its style and a
// ground-plane Y to lift the 2D boundary back into world space.
type ClusterInstance struct {
	Boundary clusters.Boundary
	Style clusters.Style
	GroundY float64
}

func (p *ClusterPass) Draw(target *ebiten.Image, cam *camera.Camera, instances []ClusterInstance, screenW, screenH float64) {
	p.fillBuffer.Reset()
	p.outlineBuffer.Reset()

	for _, inst := range instances {
 poly := boundaryPolygon(inst.Boundary)
 if len(poly) < 3 {
 continue
 }
 fillColor := fillColorFor(inst.Style)
 outlineColor := outlineColorFor(inst.Style)

 screenPts := make([][2]float64, len(poly))
 allVisible := true
 for i, pt := range poly {
 proj := Project(cam, liftToGround(pt, inst.GroundY), screenW, screenH)
 if !proj.InFront {
 allVisible = false
 break
 }
 screenPts[i] = [2]float64{proj.X, proj.Y}
 }
 if !allVisible {
 continue
 }

 appendPolygonFan(p.fillBuffer, screenPts, fillColor)
 for i := range screenPts {
 j := (i + 1) % len(screenPts)
 appendLineQuad(p.outlineBuffer, screenPts[i][0], screenPts[i][1], screenPts[j][0], screenPts[j][1], inst.Style.BorderWidth, outlineColor)
 }
	}

	var op ebiten.DrawTrianglesOptions
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	if len(p.fillBuffer.Verts) > 0 {
 target.DrawTriangles32(p.fillBuffer.Verts, p.fillBuffer.Inds, whitePixel, &op)
	}
	if len(p.outlineBuffer.Verts) > 0 {
 target.DrawTriangles32(p.outlineBuffer.Verts, p.outlineBuffer.Inds, whitePixel, &op)
	}
}

// boundaryPolygon returns the point list to render: the explicit Polygon
// for hull/alpha-shape/AABB boundaries, or a tessellated approximation of
// the circle boundary otherwise.
func boundaryPolygon(b clusters.Boundary) []clusters.Point2 {
	if len(b.Polygon) >= 3 {
 return b.Polygon
	}
	const segments = 24
	pts := make([]clusters.Point2, segments)
	for i := 0; i < segments; i++ {
 theta := 2 * math.Pi * float64(i) / float64(segments)
 pts[i] = clusters.Point2{
 X: b.Center.X + b.Radius*math.Cos(theta),
 Z: b.Center.Z + b.Radius*math.Sin(theta),
 }
	}
	return pts
}

// liftToGround places a boundary's 2D (X,Z) point back into world space at
// the given ground height, the inverse of clusters.ProjectXZ.
func liftToGround(p clusters.Point2, groundY float64) graphscene.Vec3 {
	return graphscene.Vec3{X: p.X, Y: groundY, Z: p.Z}
}

func fillColorFor(s clusters.Style) graphscene.Color {
	c := s.Color
	c.A = clamp01(c.A * s.Opacity)
	return c
}

func outlineColorFor(s clusters.Style) graphscene.Color {
	c := s.Color
	c.A = clamp01(c.A)
	return c
}

// appendPolygonFan triangulates a convex-ish screen-space polygon as a
// triangle fan around its first vertex.
func appendPolygonFan(b *InstanceBuffer, pts [][2]float64, c graphscene.Color) {
	if len(pts) < 3 {
 return
	}
	base := uint32(len(b.Verts))
	cr, cg, cbv, ca := premultiply(c)
	for _, pt := range pts {
 b.Verts = append(b.Verts, ebiten.Vertex{
 DstX: float32(pt[0]), DstY: float32(pt[1]),
 ColorR: cr, ColorG: cg, ColorB: cbv, ColorA: ca,
 })
	}
	for i := 1; i < len(pts)-1; i++ {
 b.Inds = append(b.Inds, base, base+uint32(i), base+uint32(i+1))
	}
}
