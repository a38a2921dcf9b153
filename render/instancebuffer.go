package render

import "github.com/hajimehoshi/ebiten/v2"

// InstanceBuffer holds a growable vertex/index pair reused across frames.
// Capacity doubles whenever an append would exceed it, instead of
// reallocating exactly to size every frame.
type InstanceBuffer struct {
	Verts []ebiten.Vertex
	Inds []uint32

	maxInstances int
	perInstance int // vertices contributed by one instance (4 for a quad)
}

// NewInstanceBuffer preallocates capacity for initialInstances instances of
// perInstance vertices each, capped at maxInstances.
func NewInstanceBuffer(initialInstances, perInstance, maxInstances int) *InstanceBuffer {
	return &InstanceBuffer{
 Verts: make([]ebiten.Vertex, 0, initialInstances*perInstance),
 Inds: make([]uint32, 0, initialInstances*perInstance*2),
 maxInstances: maxInstances,
 perInstance: perInstance,
	}
}

// Reset clears the buffer for reuse this frame without releasing capacity.
func (b *InstanceBuffer) Reset() {
	b.Verts = b.Verts[:0]
	b.Inds = b.Inds[:0]
}

// EnsureCapacity grows the underlying slices by doubling until they can
// hold count more instances, silently capping the growth at maxInstances,
// and returns how many of count fit under the cap. It does not stop later
// appends: the node, edge and effects passes ignore the returned count and
// append every instance, so the slices then grow past the cap by append.
func (b *InstanceBuffer) EnsureCapacity(count int) int {
	wantInstances := (len(b.Verts) / max1(b.perInstance)) + count
	if wantInstances > b.maxInstances {
 count = max0(b.maxInstances - len(b.Verts)/max1(b.perInstance))
	}
	wantVerts := len(b.Verts) + count*b.perInstance
	if cap(b.Verts) < wantVerts {
 newCap := cap(b.Verts)
 if newCap == 0 {
 newCap = b.perInstance
 }
 for newCap < wantVerts {
 newCap *= 2
 }
 grown := make([]ebiten.Vertex, len(b.Verts), newCap)
 copy(grown, b.Verts)
 b.Verts = grown

 newIndCap := cap(b.Inds)
 if newIndCap == 0 {
 newIndCap = b.perInstance * 2
 }
 wantInds := len(b.Inds) + count*b.perInstance*2
 for newIndCap < wantInds {
 newIndCap *= 2
 }
 grownInds := make([]uint32, len(b.Inds), newIndCap)
 copy(grownInds, b.Inds)
 b.Inds = grownInds
	}
	return count
}

func max1(v int) int {
	if v <= 0 {
 return 1
	}
	return v
}

func max0(v int) int {
	if v < 0 {
 return 0
	}
	return v
}
