package clusters

import (
	"math"
	"sort"

	"github.com/graphscene/core"
)

// Point2 is a 2D projection of a node position, used for boundary geometry
// (the renderer draws cluster outlines on the XZ plane; Y is handled
// separately for vertical extent).
type Point2 struct{ X, Z float64 }

// BoundaryKind distinguishes the outline algorithm a cluster's boundary was
// computed with.
type BoundaryKind uint8

const (
	BoundaryCircle BoundaryKind = iota
	BoundaryConvexHull
	BoundaryAlphaShape
	BoundaryAABB
)

// Boundary is the computed outline for a cluster: either a circle (Center,
// Radius set) or a polygon (Polygon set).
type Boundary struct {
	Kind BoundaryKind
	Center Point2
	Radius float64
	Polygon []Point2
}

const defaultPadding = 0.5

// ComputeBoundary selects the outline algorithm by node count: n<=3 circle,
// 3<n<=10 convex hull (Graham scan) pushed outward by padding, n>10
// alpha-shape (falls back to the padded hull, which is an explicitly
// allowed default).
func ComputeBoundary(points []Point2) Boundary {
	n := len(points)
	switch {
	case n == 0:
 return Boundary{Kind: BoundaryCircle}
	case n <= 3:
 return circleBoundary(points)
	case n <= 10:
 return Boundary{Kind: BoundaryConvexHull, Polygon: paddedHull(points, defaultPadding)}
	default:
 // Alpha-shape fallback: a true alpha-shape triangulation isn't
 // implemented, so large clusters take the padded convex hull too,
 // tagged BoundaryAlphaShape so callers can tell it was the
 // large-cluster path.
 return Boundary{Kind: BoundaryAlphaShape, Polygon: paddedHull(points, defaultPadding)}
	}
}

func centroid(points []Point2) Point2 {
	var c Point2
	for _, p := range points {
 c.X += p.X
 c.Z += p.Z
	}
	n := float64(len(points))
	return Point2{X: c.X / n, Z: c.Z / n}
}

func circleBoundary(points []Point2) Boundary {
	c := centroid(points)
	var maxR float64
	for _, p := range points {
 d := math.Hypot(p.X-c.X, p.Z-c.Z)
 if d > maxR {
 maxR = d
 }
	}
	return Boundary{Kind: BoundaryCircle, Center: c, Radius: maxR + defaultPadding}
}

// convexHull computes the 2D convex hull via a monotone-chain Graham scan,
// returning vertices in counterclockwise order.
func convexHull(points []Point2) []Point2 {
	pts := append([]Point2(nil), points...)
	sort.Slice(pts, func(i, j int) bool {
 if pts[i].X != pts[j].X {
 return pts[i].X < pts[j].X
 }
 return pts[i].Z < pts[j].Z
	})
	// Deduplicate.
	uniq := pts[:0]
	for i, p := range pts {
 if i == 0 || p != pts[i-1] {
 uniq = append(uniq, p)
 }
	}
	pts = uniq
	if len(pts) < 3 {
 return pts
	}

	cross := func(o, a, b Point2) float64 {
 return (a.X-o.X)*(b.Z-o.Z) - (a.Z-o.Z)*(b.X-o.X)
	}

	var lower []Point2
	for _, p := range pts {
 for len(lower) >= 2 && cross(lower[len(lower)-2], lower[len(lower)-1], p) <= 0 {
 lower = lower[:len(lower)-1]
 }
 lower = append(lower, p)
	}
	var upper []Point2
	for i := len(pts) - 1; i >= 0; i-- {
 p := pts[i]
 for len(upper) >= 2 && cross(upper[len(upper)-2], upper[len(upper)-1], p) <= 0 {
 upper = upper[:len(upper)-1]
 }
 upper = append(upper, p)
	}
	return append(lower[:len(lower)-1], upper[:len(upper)-1]...)
}

// paddedHull computes the convex hull and pushes each vertex outward from
// the centroid by padding along the center-to-vertex direction.
func paddedHull(points []Point2, padding float64) []Point2 {
	hull := convexHull(points)
	if len(hull) < 3 {
 // Degenerate (collinear) input: fall back to the padded
 // axis-aligned bounding box around the points we do have.
 return AABB(points).Polygon
	}
	c := centroid(hull)
	out := make([]Point2, len(hull))
	for i, p := range hull {
 dx, dz := p.X-c.X, p.Z-c.Z
 d := math.Hypot(dx, dz)
 if d < 1e-9 {
 out[i] = p
 continue
 }
 out[i] = Point2{X: p.X + dx/d*padding, Z: p.Z + dz/d*padding}
	}
	return out
}

// AABB computes the axis-aligned bounding box boundary, an alternative to
// the circle/hull/alpha-shape family the renderer may select independently
// ("Also supported: axis-aligned bounding box").
func AABB(points []Point2) Boundary {
	if len(points) == 0 {
 return Boundary{Kind: BoundaryAABB}
	}
	minX, minZ := points[0].X, points[0].Z
	maxX, maxZ := points[0].X, points[0].Z
	for _, p := range points[1:] {
 minX = math.Min(minX, p.X)
 minZ = math.Min(minZ, p.Z)
 maxX = math.Max(maxX, p.X)
 maxZ = math.Max(maxZ, p.Z)
	}
	minX -= defaultPadding
	minZ -= defaultPadding
	maxX += defaultPadding
	maxZ += defaultPadding
	return Boundary{
 Kind: BoundaryAABB,
 Polygon: []Point2{
 {X: minX, Z: minZ}, {X: maxX, Z: minZ}, {X: maxX, Z: maxZ}, {X: minX, Z: maxZ},
 },
	}
}

// Contains runs the point-in-cluster test: a direct distance
// check for a circle, ray-casting for a polygon. O(k) in boundary
// vertices.
func (b Boundary) Contains(p Point2) bool {
	if b.Kind == BoundaryCircle {
 return math.Hypot(p.X-b.Center.X, p.Z-b.Center.Z) <= b.Radius
	}
	return pointInPolygon(p, b.Polygon)
}

// pointInPolygon is the standard ray-casting test: count polygon edges
// crossing a horizontal ray from p to +X infinity; odd crossings means
// inside.
func pointInPolygon(p Point2, poly []Point2) bool {
	inside := false
	n := len(poly)
	if n < 3 {
 return false
	}
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
 vi, vj := poly[i], poly[j]
 if (vi.Z > p.Z) != (vj.Z > p.Z) {
 xCross := (vj.X-vi.X)*(p.Z-vi.Z)/(vj.Z-vi.Z) + vi.X
 if p.X < xCross {
 inside = !inside
 }
 }
	}
	return inside
}

// ProjectXZ converts a Vec3 to its XZ-plane Point2 for boundary computation.
func ProjectXZ(v graphscene.Vec3) Point2 { return Point2{X: v.X, Z: v.Z} }
