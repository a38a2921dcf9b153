package camera

import (
	"math"
	"testing"

	"github.com/graphscene/core"
)

func TestNewClampsFOV(t *testing.T) {
	c := New(10, 1.0, 0.1, 100) // absurdly large fov, must clamp to max
	if c.FOV != maxFOV {
 t.Errorf("FOV = %v, want %v", c.FOV, maxFOV)
	}
	c2 := New(0.0001, 1.0, 0.1, 100)
	if c2.FOV != minFOV {
 t.Errorf("FOV = %v, want %v", c2.FOV, minFOV)
	}
}

func TestZoomClampsToRange(t *testing.T) {
	c := New(math.Pi/3, 1.0, 0.1, 100)
	c.Zoom(10) // would drive fov far below minFOV
	if c.FOV != minFOV {
 t.Errorf("FOV = %v, want %v", c.FOV, minFOV)
	}
	c.Zoom(-10) // would drive fov far above maxFOV
	if c.FOV != maxFOV {
 t.Errorf("FOV = %v, want %v", c.FOV, maxFOV)
	}
}

func TestRecomputeBasisOrthonormal(t *testing.T) {
	c := New(math.Pi/3, 16.0/9.0, 0.1, 1000)
	c.LookAt(graphscene.Vec3{X: 3, Y: 1, Z: 5})

	if math.Abs(c.Forward.Dot(c.Right)) > 1e-9 {
 t.Error("expected forward orthogonal to right")
	}
	if math.Abs(c.Forward.Dot(c.Up)) > 1e-9 {
 t.Error("expected forward orthogonal to up")
	}
	if math.Abs(c.Right.Dot(c.Up)) > 1e-9 {
 t.Error("expected right orthogonal to up")
	}
}

func TestScreenToRayIsInverseOfProjectionForCenterPoint(t *testing.T) {
	// Scenario-adjacent to property 8: a ray cast through the
	// screen center should point straight down Forward.
	c := New(math.Pi/3, 1.0, 0.1, 1000)
	c.Position = graphscene.Vec3{X: 0, Y: 0, Z: 0}
	c.Forward = graphscene.Vec3{Z: -1}
	c.recomputeBasis()

	ray := c.ScreenToRay(400, 300, 800, 600)
	dot := ray.Direction.Normalize().Dot(c.Forward.Normalize())
	if dot < 0.999 {
 t.Errorf("expected center-screen ray to align with Forward, dot=%v", dot)
	}
}

func TestScreenToRayRoundTripsKnownWorldPoint(t *testing.T) {
	c := New(math.Pi/3, 1.0, 0.1, 1000)
	target := graphscene.Vec3{X: 0, Y: 0, Z: -10}

	ray := c.ScreenToRay(400, 300, 800, 600) // screen center
	// The center ray should pass very close to a point directly in front.
	t0, hit := ray.IntersectSphere(target, 0.01)
	if !hit {
 t.Fatal("expected center ray to hit a small sphere placed directly ahead")
	}
	hitPoint := ray.Origin.Add(ray.Direction.Scale(t0))
	if hitPoint.Distance(target) > 0.05 {
 t.Errorf("hit point %+v too far from target %+v", hitPoint, target)
	}
}

func TestIntersectSphereReturnsNearestPositiveT(t *testing.T) {
	ray := Ray{Origin: graphscene.Vec3{}, Direction: graphscene.Vec3{Z: -1}}
	t0, hit := ray.IntersectSphere(graphscene.Vec3{Z: -10}, 2)
	if !hit {
 t.Fatal("expected hit")
	}
	if t0 <= 0 || t0 >= 10 {
 t.Errorf("t0 = %v, want in (0, 10)", t0)
	}
}

func TestIntersectSphereMissesWhenBehindCamera(t *testing.T) {
	ray := Ray{Origin: graphscene.Vec3{}, Direction: graphscene.Vec3{Z: -1}}
	_, hit := ray.IntersectSphere(graphscene.Vec3{Z: 10}, 2)
	if hit {
 t.Error("expected no intersection for sphere entirely behind the camera")
	}
}

func TestUpdateInterpolatesTowardMoveTarget(t *testing.T) {
	c := New(math.Pi/3, 1.0, 0.1, 1000)
	c.SetMoveTarget(graphscene.Vec3{X: 10}, 2.0)

	for i := 0; i < 60; i++ {
 c.Update(1.0 / 60.0)
	}
	if c.Position.X <= 0 || c.Position.X >= 10 {
 t.Errorf("expected partial progress toward target, got x=%v", c.Position.X)
	}
}

func TestSetAspectIgnoresNonPositiveHeight(t *testing.T) {
	c := New(math.Pi/3, 1.0, 0.1, 1000)
	before := c.Aspect
	c.SetAspect(800, 0)
	if c.Aspect != before {
 t.Errorf("expected aspect unchanged for zero height, got %v", c.Aspect)
	}
	c.SetAspect(1600, 900)
	want := 1600.0 / 900.0
	if math.Abs(c.Aspect-want) > 1e-9 {
 t.Errorf("Aspect = %v, want %v", c.Aspect, want)
	}
}
