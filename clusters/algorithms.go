package clusters

import (
	"fmt"
	"sort"
	"time"

	"github.com/graphscene/core"
)

// ConnectedComponents builds an undirected graph from scene's edges and
// emits each component with at least minSize nodes as a Connected cluster,
// via a plain DFS traversal over the adjacency map.
func ConnectedComponents(scene *graphscene.Scene, minSize int) []*Cluster {
	adj := make(map[graphscene.SceneId][]graphscene.SceneId)
	for _, eid := range scene.Edges() {
 e := scene.GetEdge(eid)
 if e == nil {
 continue
 }
 adj[e.Source] = append(adj[e.Source], e.Target)
 adj[e.Target] = append(adj[e.Target], e.Source)
	}

	visited := make(map[graphscene.SceneId]bool)
	var clusters []*Cluster
	idx := 0
	for _, id := range scene.Nodes() {
 if visited[id] {
 continue
 }
 var component []graphscene.SceneId
 stack := []graphscene.SceneId{id}
 visited[id] = true
 for len(stack) > 0 {
 cur := stack[len(stack)-1]
 stack = stack[:len(stack)-1]
 component = append(component, cur)
 neighbors := append([]graphscene.SceneId(nil), adj[cur]...)
 sort.Slice(neighbors, func(i, j int) bool { return neighbors[i] < neighbors[j] })
 for _, n := range neighbors {
 if !visited[n] {
 visited[n] = true
 stack = append(stack, n)
 }
 }
 }
 if len(component) >= minSize {
 clusters = append(clusters, NewCluster(fmt.Sprintf("component-%d", idx), KindConnected, component))
 idx++
 }
	}
	return clusters
}

// Proximity performs iterative flood-fill on positions: for each unvisited
// node, transitively adds every node within maxDistance to the same
// cluster.
func Proximity(scene *graphscene.Scene, maxDistance float64, minSize int) []*Cluster {
	ids := scene.Nodes()
	positions := make(map[graphscene.SceneId]graphscene.Vec3, len(ids))
	for _, id := range ids {
 if n := scene.GetNode(id); n != nil {
 positions[id] = n.Position
 }
	}

	visited := make(map[graphscene.SceneId]bool)
	var clusters []*Cluster
	idx := 0
	for _, id := range ids {
 if visited[id] {
 continue
 }
 var group []graphscene.SceneId
 queue := []graphscene.SceneId{id}
 visited[id] = true
 for len(queue) > 0 {
 cur := queue[0]
 queue = queue[1:]
 group = append(group, cur)
 for _, other := range ids {
 if visited[other] {
 continue
 }
 if positions[cur].Distance(positions[other]) <= maxDistance {
 visited[other] = true
 queue = append(queue, other)
 }
 }
 }
 if len(group) >= minSize {
 clusters = append(clusters, NewCluster(fmt.Sprintf("proximity-%d", idx), KindProximity, group))
 idx++
 }
	}
	return clusters
}

// Semantic buckets nodes by NodeType variant (and file extension for File
// nodes) into named clusters.
func Semantic(scene *graphscene.Scene, minSize int) []*Cluster {
	buckets := make(map[string][]graphscene.SceneId)
	for _, id := range scene.Nodes() {
 n := scene.GetNode(id)
 if n == nil {
 continue
 }
 key := n.NodeType.Kind.String()
 if n.NodeType.Kind == graphscene.NodeFile && n.NodeType.File != nil {
 key = key + ":" + extOf(n.NodeType.File.Path)
 }
 buckets[key] = append(buckets[key], id)
	}
	var keys []string
	for k := range buckets {
 keys = append(keys, k)
	}
	sort.Strings(keys)

	var clusters []*Cluster
	for _, k := range keys {
 if len(buckets[k]) >= minSize {
 clusters = append(clusters, NewCluster(k, KindSemantic, buckets[k]))
 }
	}
	return clusters
}

func extOf(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
 if path[i] == '.' {
 return path[i+1:]
 }
 if path[i] == '/' {
 break
 }
	}
	return ""
}

// Temporal buckets nodes by CreatedAt into fixed-width windows of
// windowHours.
func Temporal(scene *graphscene.Scene, windowHours float64, minSize int) []*Cluster {
	if windowHours <= 0 {
 windowHours = 24
	}
	window := time.Duration(windowHours * float64(time.Hour))

	buckets := make(map[int64][]graphscene.SceneId)
	for _, id := range scene.Nodes() {
 n := scene.GetNode(id)
 if n == nil {
 continue
 }
 bucket := n.Metadata.CreatedAt.Unix() / int64(window.Seconds())
 buckets[bucket] = append(buckets[bucket], id)
	}
	var keys []int64
	for k := range buckets {
 keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	var clusters []*Cluster
	for _, k := range keys {
 if len(buckets[k]) >= minSize {
 start := time.Unix(k*int64(window.Seconds()), 0).UTC()
 clusters = append(clusters, NewCluster(
 fmt.Sprintf("temporal-%s", start.Format("2006-01-02T15:04")), KindTemporal, buckets[k]))
 }
	}
	return clusters
}

// DBSCAN is density-based clustering: for each unvisited node, find its
// eps-neighbors; if at least minPoints, start a cluster and expand by BFS
// on density-reachable points; otherwise mark noise (omitted from the
// result).
func DBSCAN(scene *graphscene.Scene, eps float64, minPoints int) []*Cluster {
	ids := scene.Nodes()
	positions := make(map[graphscene.SceneId]graphscene.Vec3, len(ids))
	for _, id := range ids {
 if n := scene.GetNode(id); n != nil {
 positions[id] = n.Position
 }
	}

	neighbors := func(id graphscene.SceneId) []graphscene.SceneId {
 var out []graphscene.SceneId
 for _, other := range ids {
 if other != id && positions[id].Distance(positions[other]) <= eps {
 out = append(out, other)
 }
 }
 return out
	}

	visited := make(map[graphscene.SceneId]bool)
	assigned := make(map[graphscene.SceneId]bool)
	var clusters []*Cluster
	idx := 0

	for _, id := range ids {
 if visited[id] {
 continue
 }
 visited[id] = true
 neigh := neighbors(id)
 if len(neigh) < minPoints {
 continue // noise
 }

 members := map[graphscene.SceneId]bool{id: true}
 queue := append([]graphscene.SceneId(nil), neigh...)
 for len(queue) > 0 {
 cur := queue[0]
 queue = queue[1:]
 if !visited[cur] {
 visited[cur] = true
 curNeigh := neighbors(cur)
 if len(curNeigh) >= minPoints {
 for _, n := range curNeigh {
 if !members[n] {
 queue = append(queue, n)
 }
 }
 }
 }
 members[cur] = true
 }

 var list []graphscene.SceneId
 for m := range members {
 list = append(list, m)
 assigned[m] = true
 }
 sort.Slice(list, func(i, j int) bool { return list[i] < list[j] })
 clusters = append(clusters, NewCluster(fmt.Sprintf("dbscan-%d", idx), KindProximity, list))
 idx++
	}
	return clusters
}
