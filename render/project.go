package render

import (
	"math"

	"github.com/graphscene/core"

	"github.com/graphscene/core/camera"
)

// Projected is a world point's screen-space result: pixel coordinates, the
// view-space depth (for sorting/LOD), and whether it landed in front of the
// camera at all.
type Projected struct {
	X, Y float64
	Depth float64
	InFront bool
}

// Project maps a world-space point through cam's view-projection matrix
// into pixel coordinates within a screenW x screenH viewport.
func Project(cam *camera.Camera, p graphscene.Vec3, screenW, screenH float64) Projected {
	vp := cam.ViewProjectionMatrix()
	x := vp[0]*p.X + vp[4]*p.Y + vp[8]*p.Z + vp[12]
	y := vp[1]*p.X + vp[5]*p.Y + vp[9]*p.Z + vp[13]
	z := vp[2]*p.X + vp[6]*p.Y + vp[10]*p.Z + vp[14]
	w := vp[3]*p.X + vp[7]*p.Y + vp[11]*p.Z + vp[15]

	if w <= 1e-9 {
 return Projected{InFront: false}
	}
	ndcX := x / w
	ndcY := y / w
	return Projected{
 X: (ndcX + 1) / 2 * screenW,
 Y: (1 - ndcY) / 2 * screenH,
 Depth: z / w,
 InFront: true,
	}
}

// ProjectedRadius estimates the on-screen radius of a sphere of world
// radius r centered at p, used to size the node pass's billboard quads.
func ProjectedRadius(cam *camera.Camera, p graphscene.Vec3, r, screenH float64) float64 {
	dist := cam.Position.Distance(p)
	if dist < 1e-6 {
 dist = 1e-6
	}
	// Standard perspective size-at-distance: screen_px = (r / (dist*tan(fov/2))) * (screenH/2)
	return (r / (dist * math.Tan(cam.FOV/2))) * (screenH / 2)
}
