// Package camera implements a first-person 3D camera: state, view/
// projection matrices, screen-space picking, and smooth move/look
// interpolation.
package camera

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/graphscene/core"
)

const (
	minFOV = math.Pi / 6
	maxFOV = math.Pi / 2
	// pitchGuard keeps forward from aligning with world-up so right/up stay
	// well defined ("pitch clamped so |forward·world_up| < 0.99").
	pitchGuard = 0.99
)

var worldUp = graphscene.Vec3{Y: 1}

// Mat4 is a column-major 4x4 matrix: m[col*4+row].
type Mat4 [16]float64

// Camera is a first-person 3D camera: position, orientation basis, and
// projection parameters.
type Camera struct {
	Position graphscene.Vec3
	Forward graphscene.Vec3
	Up graphscene.Vec3
	Right graphscene.Vec3

	FOV, Aspect, Near, Far float64

	moveTarget *graphscene.Vec3
	moveRate float64
	lookTarget *graphscene.Vec3
	lookRate float64

	zoomTween *gween.Tween
}

// New creates a Camera looking down -Z from the origin, with fov/near/far
// from cfg and the given aspect ratio.
func New(fov, aspect, near, far float64) *Camera {
	c := &Camera{
 Position: graphscene.Vec3{},
 Forward: graphscene.Vec3{Z: -1},
 FOV: clampFOV(fov),
 Aspect: aspect,
 Near: near,
 Far: far,
	}
	c.recomputeBasis()
	return c
}

func clampFOV(fov float64) float64 {
	if fov < minFOV {
 return minFOV
	}
	if fov > maxFOV {
 return maxFOV
	}
	return fov
}

// recomputeBasis derives Right and Up from Forward and world-up, guarding
// against gimbal lock.
func (c *Camera) recomputeBasis() {
	f := c.Forward.Normalize()
	if dot := f.Dot(worldUp); math.Abs(dot) > pitchGuard {
 // Tilt forward back toward the horizon so |forward·world_up| is
 // pitchGuard, keeping its horizontal heading.
 y := math.Copysign(pitchGuard, dot)
 h := graphscene.Vec3{X: f.X, Z: f.Z}
 if h.Length() < 1e-9 {
 h = graphscene.Vec3{Z: -1}
 }
 f = h.Normalize().Scale(math.Sqrt(1 - y*y))
 f.Y = y
	}
	c.Right = f.Cross(worldUp).Normalize()
	if c.Right.Length() < 1e-9 {
 c.Right = graphscene.Vec3{X: 1}
	}
	c.Up = c.Right.Cross(f).Normalize()
	c.Forward = f
}

// LookAt points the camera at target from its current position.
func (c *Camera) LookAt(target graphscene.Vec3) {
	c.Forward = target.Sub(c.Position)
	c.recomputeBasis()
}

// Zoom adjusts fov by delta (positive zooms in / narrows fov), clamped to
// [pi/6, pi/2].
func (c *Camera) Zoom(delta float64) {
	c.FOV = clampFOV(c.FOV - delta)
}

// ZoomTo animates fov toward target over duration seconds using gween.
func (c *Camera) ZoomTo(target float64, duration float32, easeFn ease.TweenFunc) {
	c.zoomTween = gween.New(float32(c.FOV), float32(clampFOV(target)), duration, easeFn)
}

// SetMoveTarget arms smooth interpolation of Position toward target at
// rate (units per second of LERP factor).
func (c *Camera) SetMoveTarget(target graphscene.Vec3, rate float64) {
	t := target
	c.moveTarget = &t
	c.moveRate = rate
}

// ClearMoveTarget disarms smooth move.
func (c *Camera) ClearMoveTarget() { c.moveTarget = nil }

// SetLookTarget arms smooth interpolation of Forward toward a point at
// rate.
func (c *Camera) SetLookTarget(target graphscene.Vec3, rate float64) {
	t := target
	c.lookTarget = &t
	c.lookRate = rate
}

// ClearLookTarget disarms smooth look.
func (c *Camera) ClearLookTarget() { c.lookTarget = nil }

// Update advances any active zoom tween and smooth move/look interpolation
// by dt seconds.
func (c *Camera) Update(dt float64) {
	if c.zoomTween != nil {
 fov, finished := c.zoomTween.Update(float32(dt))
 c.FOV = clampFOV(float64(fov))
 if finished {
 c.zoomTween = nil
 }
	}
	if c.moveTarget != nil {
 t := 1 - math.Exp(-c.moveRate*dt)
 c.Position = lerpVec3(c.Position, *c.moveTarget, t)
	}
	if c.lookTarget != nil {
 t := 1 - math.Exp(-c.lookRate*dt)
 wantForward := c.lookTarget.Sub(c.Position).Normalize()
 c.Forward = lerpVec3(c.Forward, wantForward, t)
 c.recomputeBasis()
	}
}

func lerpVec3(a, b graphscene.Vec3, t float64) graphscene.Vec3 {
	return graphscene.Vec3{
 X: a.X + (b.X-a.X)*t,
 Y: a.Y + (b.Y-a.Y)*t,
 Z: a.Z + (b.Z-a.Z)*t,
	}
}

// SetAspect updates the camera's aspect ratio, called on surface resize
// ("Resize path").
func (c *Camera) SetAspect(width, height float64) {
	if height <= 0 {
 return
	}
	c.Aspect = width / height
}

// ViewMatrix returns the right-handed look-at view matrix.
func (c *Camera) ViewMatrix() Mat4 {
	f := c.Forward.Normalize()
	s := f.Cross(c.Up).Normalize()
	u := s.Cross(f)
	return Mat4{
 s.X, u.X, -f.X, 0,
 s.Y, u.Y, -f.Y, 0,
 s.Z, u.Z, -f.Z, 0,
 -s.Dot(c.Position), -u.Dot(c.Position), f.Dot(c.Position), 1,
	}
}

// ProjectionMatrix returns the right-handed perspective projection matrix.
func (c *Camera) ProjectionMatrix() Mat4 {
	tanHalf := math.Tan(c.FOV / 2)
	a := 1 / (c.Aspect * tanHalf)
	b := 1 / tanHalf
	rangeInv := 1 / (c.Near - c.Far)
	return Mat4{
 a, 0, 0, 0,
 0, b, 0, 0,
 0, 0, (c.Far + c.Near) * rangeInv, -1,
 0, 0, c.Far * c.Near * rangeInv * 2, 0,
	}
}

// ViewProjectionMatrix returns Projection * View, the uniform uploaded once
// per frame and shared across render passes.
func (c *Camera) ViewProjectionMatrix() Mat4 {
	return mulMat4(c.ProjectionMatrix(), c.ViewMatrix())
}

func mulMat4(a, b Mat4) Mat4 {
	var out Mat4
	for col := 0; col < 4; col++ {
 for row := 0; row < 4; row++ {
 var sum float64
 for k := 0; k < 4; k++ {
 sum += a[k*4+row] * b[col*4+k]
 }
 out[col*4+row] = sum
 }
	}
	return out
}

// Ray is a parametric ray: point(t) = Origin + Direction*t.
type Ray struct {
	Origin, Direction graphscene.Vec3
}

// ScreenToRay unprojects a screen-space point (x,y) within a w×h viewport
// into a world-space ray, the inverse of projection+view.
func (c *Camera) ScreenToRay(x, y, w, h float64) Ray {
	ndcX := (2*x)/w - 1
	ndcY := 1 - (2*y)/h

	tanHalf := math.Tan(c.FOV / 2)
	camX := ndcX * tanHalf * c.Aspect
	camY := ndcY * tanHalf

	f := c.Forward.Normalize()
	s := f.Cross(c.Up).Normalize()
	u := s.Cross(f)

	dir := f.Add(s.Scale(camX)).Add(u.Scale(camY)).Normalize()
	return Ray{Origin: c.Position, Direction: dir}
}

// IntersectSphere returns the nearest positive t along the ray that hits a
// sphere of radius r centered at center, or false if there is no forward
// intersection.
func (r Ray) IntersectSphere(center graphscene.Vec3, radius float64) (float64, bool) {
	oc := r.Origin.Sub(center)
	dir := r.Direction.Normalize()
	b := oc.Dot(dir)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
 return 0, false
	}
	sqrtDisc := math.Sqrt(disc)
	t0 := -b - sqrtDisc
	t1 := -b + sqrtDisc
	if t0 > 1e-9 {
 return t0, true
	}
	if t1 > 1e-9 {
 return t1, true
	}
	return 0, false
}
