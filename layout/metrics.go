package layout

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/graphscene/core"
)

// Metrics is the quality-metrics record computed after each layout run
//: edge-crossing count, average edge length, distribution
// uniformity, stress, elapsed ms (elapsed is left to the caller, which
// already has Result.Elapsed).
type Metrics struct {
	EdgeCrossings int
	AvgEdgeLength float64
	DistributionUniformity float64
	Stress float64
}

// ComputeMetrics evaluates edge crossings, average edge length, distribution
// uniformity, and stress from positions, edges, and shortestPath — the
// graph-distance oracle stress compares against (nil means stress is
// skipped, reported as 0).
func ComputeMetrics(positions map[graphscene.SceneId]graphscene.Vec3, edges []Edge, shortestPath func(a, b graphscene.SceneId) (float64, bool)) Metrics {
	return Metrics{
 EdgeCrossings: countCrossings(positions, edges),
 AvgEdgeLength: avgEdgeLength(positions, edges),
 DistributionUniformity: distributionUniformity(positions),
 Stress: stressMetric(positions, shortestPath),
	}
}

// countCrossings does pairwise segment intersection in the XY projection
//, O(E^2).
func countCrossings(positions map[graphscene.SceneId]graphscene.Vec3, edges []Edge) int {
	count := 0
	for i := 0; i < len(edges); i++ {
 a1, ok1 := positions[edges[i].Source]
 a2, ok2 := positions[edges[i].Target]
 if !ok1 || !ok2 {
 continue
 }
 for j := i + 1; j < len(edges); j++ {
 if edges[i].Source == edges[j].Source || edges[i].Source == edges[j].Target ||
 edges[i].Target == edges[j].Source || edges[i].Target == edges[j].Target {
 continue // shared endpoint; not a crossing
 }
 b1, ok3 := positions[edges[j].Source]
 b2, ok4 := positions[edges[j].Target]
 if !ok3 || !ok4 {
 continue
 }
 if segmentsIntersectXY(a1, a2, b1, b2) {
 count++
 }
 }
	}
	return count
}

func segmentsIntersectXY(p1, p2, p3, p4 graphscene.Vec3) bool {
	d1 := cross2(p4.X-p3.X, p4.Y-p3.Y, p1.X-p3.X, p1.Y-p3.Y)
	d2 := cross2(p4.X-p3.X, p4.Y-p3.Y, p2.X-p3.X, p2.Y-p3.Y)
	d3 := cross2(p2.X-p1.X, p2.Y-p1.Y, p3.X-p1.X, p3.Y-p1.Y)
	d4 := cross2(p2.X-p1.X, p2.Y-p1.Y, p4.X-p1.X, p4.Y-p1.Y)
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) && ((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

func cross2(ax, ay, bx, by float64) float64 { return ax*by - ay*bx }

func avgEdgeLength(positions map[graphscene.SceneId]graphscene.Vec3, edges []Edge) float64 {
	if len(edges) == 0 {
 return 0
	}
	var sum float64
	n := 0
	for _, e := range edges {
 a, ok1 := positions[e.Source]
 b, ok2 := positions[e.Target]
 if !ok1 || !ok2 {
 continue
 }
 sum += a.Distance(b)
 n++
	}
	if n == 0 {
 return 0
	}
	return sum / float64(n)
}

// distributionUniformity is 1/(1+CV) of pairwise distances,
// computed with gonum/stat's StdDev and Mean.
func distributionUniformity(positions map[graphscene.SceneId]graphscene.Vec3) float64 {
	var ids []graphscene.SceneId
	for id := range positions {
 ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var distances []float64
	for i := 0; i < len(ids); i++ {
 for j := i + 1; j < len(ids); j++ {
 distances = append(distances, positions[ids[i]].Distance(positions[ids[j]]))
 }
	}
	if len(distances) == 0 {
 return 1
	}
	mean := stat.Mean(distances, nil)
	if mean == 0 {
 return 1
	}
	sd := stat.StdDev(distances, nil)
	cv := sd / mean
	return 1 / (1 + cv)
}

// stressMetric is Σ (Euclidean − shortest-path)² over node pairs
// shortestPath knows about. Uses gonum/floats for the
// accumulation to keep the same summation idiom the rest of the corpus
// uses for numeric reductions.
func stressMetric(positions map[graphscene.SceneId]graphscene.Vec3, shortestPath func(a, b graphscene.SceneId) (float64, bool)) float64 {
	if shortestPath == nil {
 return 0
	}
	var ids []graphscene.SceneId
	for id := range positions {
 ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var terms []float64
	for i := 0; i < len(ids); i++ {
 for j := i + 1; j < len(ids); j++ {
 graphDist, ok := shortestPath(ids[i], ids[j])
 if !ok {
 continue
 }
 euclidean := positions[ids[i]].Distance(positions[ids[j]])
 diff := euclidean - graphDist
 terms = append(terms, diff*diff)
 }
	}
	return floats.Sum(terms)
}
