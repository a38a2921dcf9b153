package render

import (
	"sort"

	"github.com/graphscene/core"
)

// Level is a rendering level-of-detail tier, from full detail down to
// fully culled.
type Level uint8

const (
	LODHigh Level = iota
	LODMedium
	LODLow
	LODVeryLow
	LODCulled
)

// distanceTier pairs a max-distance threshold with the Level used at or
// below it.
type distanceTier struct {
	maxDistance float64
	level Level
}

// LODSystem assigns a Level to each node by camera distance, with manual
// per-node overrides and an adaptive distance multiplier that widens or
// narrows tiers in response to measured frame time.
type LODSystem struct {
	tiers []distanceTier
	overrides map[graphscene.SceneId]Level
	distanceMultiplier float64
	adaptiveEnabled bool
	performanceThreshold float64
	minLevel Level
}

// NewLODSystem returns an LODSystem with four distance tiers (High/Medium/
// Low/VeryLow) and adaptive adjustment enabled.
func NewLODSystem() *LODSystem {
	return &LODSystem{
 tiers: []distanceTier{
 {maxDistance: 20, level: LODHigh},
 {maxDistance: 60, level: LODMedium},
 {maxDistance: 150, level: LODLow},
 {maxDistance: 400, level: LODVeryLow},
 },
 overrides: make(map[graphscene.SceneId]Level),
 distanceMultiplier: 1.0,
 adaptiveEnabled: true,
 performanceThreshold: 0.9,
 minLevel: LODVeryLow,
	}
}

// SetOverride pins id to level regardless of distance.
func (s *LODSystem) SetOverride(id graphscene.SceneId, level Level) { s.overrides[id] = level }

// ClearOverride removes any manual override for id.
func (s *LODSystem) ClearOverride(id graphscene.SceneId) { delete(s.overrides, id) }

// LevelFor returns the LOD level for a node at the given distance from the
// camera, honoring manual overrides.
func (s *LODSystem) LevelFor(id graphscene.SceneId, distance float64) Level {
	if lvl, ok := s.overrides[id]; ok {
 return lvl
	}
	for _, tier := range s.tiers {
 if distance <= tier.maxDistance*s.distanceMultiplier {
 return tier.level
 }
	}
	return LODCulled
}

// AdjustForPerformance widens or narrows every tier's distance threshold in
// response to currentFPS vs targetFPS: below threshold, shrink distances
// (demote detail sooner); comfortably above it, grow them back, capped at
// 1.5x the original.
func (s *LODSystem) AdjustForPerformance(currentFPS, targetFPS float64) {
	if !s.adaptiveEnabled || targetFPS <= 0 {
 return
	}
	ratio := currentFPS / targetFPS
	switch {
	case ratio < s.performanceThreshold:
 reduction := 1.0 - ratio/s.performanceThreshold
 s.distanceMultiplier *= 1.0 - reduction*0.5
	case ratio > 1.2:
 increase := (ratio - 1.0) * 0.1
 s.distanceMultiplier = minFloat(s.distanceMultiplier*(1.0+increase), 1.5)
	}
	if s.distanceMultiplier < 0.1 {
 s.distanceMultiplier = 0.1
	}
}

func minFloat(a, b float64) float64 {
	if a < b {
 return a
	}
	return b
}

// SortByLevel partitions ids into per-level buckets keyed by Level, for
// passes that want to batch by detail tier.
func (s *LODSystem) SortByLevel(ids []graphscene.SceneId, distanceOf func(graphscene.SceneId) float64) map[Level][]graphscene.SceneId {
	out := make(map[Level][]graphscene.SceneId)
	for _, id := range ids {
 lvl := s.LevelFor(id, distanceOf(id))
 out[lvl] = append(out[lvl], id)
	}
	for lvl := range out {
 sort.Slice(out[lvl], func(i, j int) bool { return out[lvl][i] < out[lvl][j] })
	}
	return out
}
