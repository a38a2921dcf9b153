package render

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/graphscene/core"
	"github.com/graphscene/core/camera"
)

// radialGlowShaderSrc renders a soft radial falloff across a quad, the
// nearest equivalent a 2D draw surface has to GPU Lambert+rim node shading.
// Uses the lazy-compile-and-cache idiom every Kage shader in this codebase
// follows.
const radialGlowShaderSrc = `//kage:unit pixels
package main

var Tint vec4
var Intensity float

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	uv := color.rg*2 - 1 // color.rg carries 0..1 quad UV, see appendGlowQuad
	falloff := clamp(1-length(uv), 0, 1)
	falloff = falloff * falloff * Intensity
	a := Tint.a * falloff
	return vec4(Tint.rgb*a, a)
}
`

var radialGlowShader *ebiten.Shader

func ensureRadialGlowShader() *ebiten.Shader {
	if radialGlowShader == nil {
 s, err := ebiten.NewShader([]byte(radialGlowShaderSrc))
 if err != nil {
 panic("graphscene/render: failed to compile radial glow shader: " + err.Error())
 }
 radialGlowShader = s
	}
	return radialGlowShader
}

// GlowPass renders an additive emissive halo over each GlowInstance; the
// Renderer feeds it one instance per selected node, right after the node
// pass — the glow half of the effects pass, complementing the particle
// bursts EffectsPass already covers. It composites through a
// half-resolution offscreen buffer softened with a downscale/upscale pass,
// since Ebitengine has no single-pass Gaussian primitive.
type GlowPass struct {
	offscreen *ebiten.Image
	downscale *ebiten.Image
	quad [4]ebiten.Vertex
	inds [6]uint32
	intensity float32
}

// NewGlowPass constructs an idle GlowPass; offscreen buffers are allocated
// lazily at first Draw once the target size is known.
func NewGlowPass() *GlowPass {
	return &GlowPass{
 inds: [6]uint32{0, 1, 2, 1, 3, 2},
 intensity: 1.4,
	}
}

// GlowInstance is one halo to draw this frame: a world-space anchor, a
// world-space radius, and a tint.
type GlowInstance struct {
	WorldPos graphscene.Vec3
	Radius float64
	Color graphscene.Color
}

func (p *GlowPass) ensureOffscreen(screenW, screenH int) {
	w, h := maxInt(screenW/2, 1), maxInt(screenH/2, 1)
	if p.offscreen != nil && p.offscreen.Bounds().Dx() == w && p.offscreen.Bounds().Dy() == h {
 return
	}
	if p.offscreen != nil {
 p.offscreen.Deallocate()
	}
	if p.downscale != nil {
 p.downscale.Deallocate()
	}
	p.offscreen = ebiten.NewImage(w, h)
	p.downscale = ebiten.NewImage(maxInt(w/2, 1), maxInt(h/2, 1))
}

// Draw projects each halo into the half-resolution offscreen buffer with
// the radial falloff shader, softens it with one downscale/upscale pass,
// then composites the result onto target with additive blending.
func (p *GlowPass) Draw(target *ebiten.Image, cam *camera.Camera, instances []GlowInstance, screenW, screenH int) {
	if len(instances) == 0 {
 return
	}
	p.ensureOffscreen(screenW, screenH)
	p.offscreen.Clear()

	half := 0.5
	for _, in := range instances {
 proj := Project(cam, in.WorldPos, float64(screenW)*half, float64(screenH)*half)
 if !proj.InFront {
 continue
 }
 radiusPx := ProjectedRadius(cam, in.WorldPos, in.Radius, float64(screenH)*half)
 if radiusPx < 1 {
 continue
 }
 p.drawGlowQuad(proj.X, proj.Y, radiusPx, in.Color)
	}

	down := ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	down.GeoM.Scale(0.5, 0.5)
	p.downscale.Clear()
	p.downscale.DrawImage(p.offscreen, &down)

	composite := ebiten.DrawImageOptions{Filter: ebiten.FilterLinear, Blend: ebiten.BlendLighter}
	composite.GeoM.Scale(4, 4)
	target.DrawImage(p.downscale, &composite)
}

// drawGlowQuad submits one quad through the radial glow shader directly;
// halo counts per frame are small (one per selected node) so a
// per-instance shader draw keeps each tint/intensity pair independent
// rather than batching into one InstanceBuffer call.
func (p *GlowPass) drawGlowQuad(cx, cy, radius float64, c graphscene.Color) {
	corners := [4][2]float32{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	for i, uv := range corners {
 dx := float64(uv[0]*2-1) * radius
 dy := float64(uv[1]*2-1) * radius
 p.quad[i] = ebiten.Vertex{
 DstX: float32(cx + dx), DstY: float32(cy + dy),
 SrcX: uv[0], SrcY: uv[1],
 ColorR: uv[0], ColorG: uv[1], ColorB: 0, ColorA: 1,
 }
	}
	var op ebiten.DrawTrianglesShaderOptions
	op.Uniforms = map[string]any{
 "Tint": [4]float32{float32(c.R), float32(c.G), float32(c.B), float32(c.A)},
 "Intensity": p.intensity,
	}
	p.offscreen.DrawTrianglesShader32(p.quad[:], p.inds[:], ensureRadialGlowShader(), &op)
}

func maxInt(a, b int) int {
	if a > b {
 return a
	}
	return b
}
