package runtime

import (
	"github.com/graphscene/core"
	"github.com/graphscene/core/clusters"
	"github.com/graphscene/core/render"
)

// BuildFrame assembles a render.FrameInput from the current Scene state
// plus cluster boundaries, the glue leaves to "the embedder"
// between the Scene/ClusterManager and the render passes.
func (l *Loop) BuildFrame() render.FrameInput {
	in := render.FrameInput{AnimPhase: l.animClock}

	for _, id := range l.Scene.Nodes() {
 n := l.Scene.GetNode(id)
 if n == nil || !n.Visible {
 continue
 }
 in.Nodes = append(in.Nodes, render.NodeInstance{
 ID: id,
 Position: n.Position,
 Color: n.Color,
 Radius: n.Radius,
 Selected: n.Selected,
 })
	}

	for _, id := range l.Scene.Edges() {
 e := l.Scene.GetEdge(id)
 if e == nil || !e.Visible {
 continue
 }
 src := l.Scene.GetNode(e.Source)
 dst := l.Scene.GetNode(e.Target)
 if src == nil || dst == nil {
 continue
 }
 in.Edges = append(in.Edges, render.EdgeInstance{
 ID: id,
 Source: src.Position,
 Target: dst.Position,
 EdgeType: e.EdgeType,
 Color: e.Color,
 Animated: e.Animated,
 })
	}

	if l.Clusters != nil {
 for _, c := range l.Clusters.All() {
 if !c.Visible || c.Size() == 0 {
 continue
 }
 in.Clusters = append(in.Clusters, render.ClusterInstance{
 Boundary: clusterBoundary(l.Scene, c),
 Style: c.Style,
 })
 }
	}

	return in
}

func clusterBoundary(scene *graphscene.Scene, c *clusters.Cluster) clusters.Boundary {
	points := make([]clusters.Point2, 0, c.Size())
	for _, id := range c.NodeList {
 n := scene.GetNode(id)
 if n == nil {
 continue
 }
 points = append(points, clusters.ProjectXZ(n.Position))
	}
	return clusters.ComputeBoundary(points)
}
