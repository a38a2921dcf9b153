package graphscene

import "sort"

// Scene is the authoritative in-memory graph: nodes, edges, a spatial index
// for radius queries, and an ordered change journal. A Scene
// is mutated only on the main thread; worker threads (e.g. a
// Layout algorithm's partitioned force accumulation) operate on read
// snapshots taken by the caller.
type Scene struct {
	nodes map[SceneId]*SceneNode
	edges map[SceneId]*SceneEdge

	// incident maps every SceneId to the edge ids touching it (as source or
	// target), giving get_connected_edges its O(deg(id)) contract.
	incident map[SceneId][]SceneId

	index *spatialIndex
	journal *changeJournal

	animTime float64 // accumulated time for animation-phase updates (Update)
}

// NewScene creates an empty Scene with a fresh spatial index and journal.
func NewScene() *Scene {
	return &Scene{
 nodes: make(map[SceneId]*SceneNode),
 edges: make(map[SceneId]*SceneEdge),
 incident: make(map[SceneId][]SceneId),
 index: newSpatialIndex(),
 journal: newChangeJournal(),
	}
}

// AddNode generates the next node id, stores node, and updates the spatial
// index. There is no failure mode except memory exhaustion.
func (s *Scene) AddNode(node SceneNode) SceneId {
	id := nextNodeID()
	node.ID = id
	s.nodes[id] = &node
	s.index.insert(id, node.Position)
	s.journal.record(Change{Kind: ChangeNodeAdded, NodeID: id})
	return id
}

// RemoveNode removes a node and cascades to every incident edge.
// Returns whether the node existed. O(deg(id)).
func (s *Scene) RemoveNode(id SceneId) bool {
	_, ok := s.nodes[id]
	if !ok {
 return false
	}
	// Cascade: remove every edge touching this node first.
	for _, eid := range append([]SceneId(nil), s.incident[id]...) {
 s.RemoveEdge(eid)
	}
	delete(s.nodes, id)
	delete(s.incident, id)
	s.index.remove(id)
	s.journal.record(Change{Kind: ChangeNodeRemoved, NodeID: id})
	return true
}

// GetNode returns the node, or nil if absent.
func (s *Scene) GetNode(id SceneId) *SceneNode {
	return s.nodes[id]
}

// GetNodeMut returns a mutable pointer to the stored node, or nil if
// absent. Callers that change Position should go through SetNodePosition
// instead so the spatial index and change journal stay consistent.
func (s *Scene) GetNodeMut(id SceneId) *SceneNode {
	return s.nodes[id]
}

// GetNodePosition returns the node's position and whether it was found.
func (s *Scene) GetNodePosition(id SceneId) (Vec3, bool) {
	n, ok := s.nodes[id]
	if !ok {
 return Vec3{}, false
	}
	return n.Position, true
}

// SetNodePosition updates a node's position, rebucketing the spatial index
// and recording a ChangeNodeMoved entry. This is the only sanctioned write
// path for Position; Physics and Layout both go through it each tick
// ("position and velocity are owned by whichever of Physics or
// Layout last wrote them this tick").
func (s *Scene) SetNodePosition(id SceneId, pos Vec3) bool {
	n, ok := s.nodes[id]
	if !ok {
 return false
	}
	old := n.Position
	n.Position = pos
	s.index.move(id, pos, s.forEachPosition)
	s.journal.record(Change{Kind: ChangeNodeMoved, NodeID: id, OldPos: old, NewPos: pos})
	return true
}

func (s *Scene) forEachPosition(visit func(SceneId, Vec3)) {
	for id, n := range s.nodes {
 visit(id, n.Position)
	}
}

// AddEdge inserts edge into the Scene and updates incidence maps. Scene-level
// add does not enforce cycle rules or fan-out caps — that is EdgeManager's
// job. If edge.ID is zero, a new edge id is generated.
func (s *Scene) AddEdge(edge SceneEdge) SceneId {
	if edge.ID == 0 {
 edge.ID = nextEdgeID()
	}
	s.edges[edge.ID] = &edge
	s.incident[edge.Source] = append(s.incident[edge.Source], edge.ID)
	s.incident[edge.Target] = append(s.incident[edge.Target], edge.ID)
	s.journal.record(Change{Kind: ChangeEdgeAdded, EdgeID: edge.ID})
	return edge.ID
}

// RemoveEdge removes an edge by id, returning whether it existed.
func (s *Scene) RemoveEdge(id SceneId) bool {
	e, ok := s.edges[id]
	if !ok {
 return false
	}
	removeIncident(s.incident, e.Source, id)
	if e.Target != e.Source {
 removeIncident(s.incident, e.Target, id)
	}
	delete(s.edges, id)
	s.journal.record(Change{Kind: ChangeEdgeRemoved, EdgeID: id})
	return true
}

func removeIncident(m map[SceneId][]SceneId, node, edge SceneId) {
	bucket := m[node]
	for i, id := range bucket {
 if id == edge {
 bucket[i] = bucket[len(bucket)-1]
 m[node] = bucket[:len(bucket)-1]
 return
 }
	}
}

// GetEdge returns the edge, or nil if absent.
func (s *Scene) GetEdge(id SceneId) *SceneEdge {
	return s.edges[id]
}

// SetEdgeWeight updates an edge's weight and records a
// ChangeEdgeWeightChanged journal entry.
func (s *Scene) SetEdgeWeight(id SceneId, weight float64) bool {
	e, ok := s.edges[id]
	if !ok {
 return false
	}
	old := e.Weight
	e.Weight = weight
	s.journal.record(Change{Kind: ChangeEdgeWeightChanged, EdgeID: id, OldWeight: old, NewWeight: weight})
	return true
}

// GetConnectedEdges returns every edge where id is source or target.
// O(deg(id)).
func (s *Scene) GetConnectedEdges(id SceneId) []*SceneEdge {
	ids := s.incident[id]
	out := make([]*SceneEdge, 0, len(ids))
	for _, eid := range ids {
 if e, ok := s.edges[eid]; ok {
 out = append(out, e)
 }
	}
	return out
}

// FindNodesInRadius returns the ids of visible nodes within Euclidean
// distance r of center, using the spatial index for sublinear expected-time
// queries up to 10^5 nodes.
func (s *Scene) FindNodesInRadius(center Vec3, r float64) []SceneId {
	var out []SceneId
	s.index.queryRadius(center, r, func(id SceneId) {
 n, ok := s.nodes[id]
 if !ok || !n.Visible {
 return
 }
 if n.Position.Distance(center) <= r {
 out = append(out, id)
 }
	})
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Nodes returns every node id currently stored, in a stable (sorted) order.
// The returned slice is a snapshot, safe to range over while mutating the
// Scene (a plain slice snapshot over a map-backed store, safe against
// concurrent mutation of the map during iteration).
func (s *Scene) Nodes() []SceneId {
	out := make([]SceneId, 0, len(s.nodes))
	for id := range s.nodes {
 out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Edges returns every edge id currently stored, in a stable (sorted) order.
func (s *Scene) Edges() []SceneId {
	out := make([]SceneId, 0, len(s.edges))
	for id := range s.edges {
 out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// NodeCount and EdgeCount report the current sizes.
func (s *Scene) NodeCount() int { return len(s.nodes) }
func (s *Scene) EdgeCount() int { return len(s.edges) }

// Journal returns the Scene's change journal for consumers (Layout's
// incremental path, ClusterManager's change subscription) to Drain.
func (s *Scene) Journal() []Change { return s.journal.Drain() }

// Update advances time-dependent visual state (animation phases). It does
// not integrate physics — that is Physics.Step's job.
func (s *Scene) Update(delta float64) {
	s.animTime += delta
}

// AnimTime returns the Scene's accumulated animation-phase time.
func (s *Scene) AnimTime() float64 { return s.animTime }
