package render

import (
	"math"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/graphscene/core"
	"github.com/graphscene/core/camera"
)

// effectParticle holds per-particle simulation state for the effects
// pass's CPU-simulated pool: a spawn/update/die lifecycle reused rather
// than reallocated each frame.
type effectParticle struct {
	x, y float64
	vx, vy float64
	life float64
	maxLife float64
	startScale float64
	endScale float64
	color graphscene.Color
}

// Spark is a one-shot screen-space burst emitted at a projected world
// point, used for optional particle effects on focus/select feedback. A
// real volumetric shadow-map pass is out of scope for a 2D draw surface;
// this pass implements the particle-burst portion concretely, leaving the
// emissive halo itself to GlowPass.
type Spark struct {
	worldPos graphscene.Vec3
	color graphscene.Color
	particles []effectParticle
}

// EffectsPass manages a pool of active Sparks, simulating and drawing them
// each frame by reusing their particle slices rather than reallocating.
type EffectsPass struct {
	buffer *InstanceBuffer
	sparks []*Spark
	maxSparks int
}

func NewEffectsPass(maxParticles int) *EffectsPass {
	return &EffectsPass{
 buffer: NewInstanceBuffer(256, 4, maxParticles),
 maxSparks: 32,
	}
}

// EmitSpark spawns a short-lived particle burst at worldPos, e.g. on node
// selection or focus-action feedback. Silently drops the oldest spark if
// at capacity rather than growing the pool unbounded.
func (p *EffectsPass) EmitSpark(worldPos graphscene.Vec3, c graphscene.Color, count int) {
	if len(p.sparks) >= p.maxSparks {
 p.sparks = p.sparks[1:]
	}
	s := &Spark{worldPos: worldPos, color: c}
	for i := 0; i < count; i++ {
 angle := rand.Float64() * 2 * math.Pi
 speed := 20 + rand.Float64()*40
 s.particles = append(s.particles, effectParticle{
 vx: math.Cos(angle) * speed,
 vy: math.Sin(angle) * speed,
 life: 0.4 + rand.Float64()*0.3,
 maxLife: 0.7,
 startScale: 3,
 endScale: 0,
 color: c,
 })
	}
	p.sparks = append(p.sparks, s)
}

// Update advances every active spark's particles by dt seconds, culling
// particles (and then empty sparks) whose life has expired.
func (p *EffectsPass) Update(dt float64) {
	live := p.sparks[:0]
	for _, s := range p.sparks {
 alive := s.particles[:0]
 for _, pt := range s.particles {
 pt.life -= dt
 if pt.life <= 0 {
 continue
 }
 pt.x += pt.vx * dt
 pt.y += pt.vy * dt
 alive = append(alive, pt)
 }
 s.particles = alive
 if len(s.particles) > 0 {
 live = append(live, s)
 }
	}
	p.sparks = live
}

// Draw renders every active spark's particles as small screen-space quads
// projected from each spark's anchor world position.
func (p *EffectsPass) Draw(target *ebiten.Image, cam *camera.Camera, screenW, screenH float64) {
	p.buffer.Reset()

	for _, s := range p.sparks {
 anchor := Project(cam, s.worldPos, screenW, screenH)
 if !anchor.InFront {
 continue
 }
 p.buffer.EnsureCapacity(len(s.particles))
 for _, pt := range s.particles {
 t := 1 - pt.life/pt.maxLife
 scale := pt.startScale + (pt.endScale-pt.startScale)*t
 c := pt.color
 c.A = clamp01(c.A * pt.life / pt.maxLife)
 appendBillboardQuad(p.buffer, anchor.X+pt.x, anchor.Y+pt.y, scale, c)
 }
	}

	if len(p.buffer.Verts) == 0 {
 return
	}
	var op ebiten.DrawTrianglesOptions
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	target.DrawTriangles32(p.buffer.Verts, p.buffer.Inds, whitePixel, &op)
}

// ActiveSparkCount reports the number of in-flight bursts, exposed for
// tests and for a host HUD's debug overlay.
func (p *EffectsPass) ActiveSparkCount() int { return len(p.sparks) }
