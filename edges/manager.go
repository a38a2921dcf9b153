// Package edges manages typed relationships between scene nodes: cycle/
// fan-out invariants, adjacency indices, strength and frequency evolution,
// expiry, and statistics.
package edges

import (
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/graphscene/core"
)

// RelationshipData carries the evolving, non-rendered state of a managed
// edge ("GraphEdge").
type RelationshipData struct {
	Strength float64
	Confidence float64
	Frequency uint32
	CreatedAt time.Time
	LastAccessed time.Time
	Bidirectional bool
}

// VisualStyle is derived from RelationshipData by UpdateEdgeStrength /
// RecordEdgeAccess and consumed by SyncToScene.
type VisualStyle struct {
	Thickness float64
	Opacity float64
	Glow bool
	Animated bool
}

// EdgeMetadata holds the managed, non-rendered descriptive fields.
type EdgeMetadata struct {
	Labels []string
	Tags []string
	UserCreated bool
	Pinned bool
	Temporary bool
	ExpiresAt *time.Time
}

// GraphEdge wraps a graphscene.SceneEdge with the relationship data,
// visual style, and metadata assigns to the managed form.
type GraphEdge struct {
	Scene graphscene.SceneEdge
	Relationship RelationshipData
	Visual VisualStyle
	Metadata EdgeMetadata
}

// EndpointResolver checks whether a node id currently exists. *graphscene.Scene
// satisfies this via a thin adapter (see SceneEndpoints) so the Manager
// doesn't otherwise depend on the Scene's full API.
type EndpointResolver interface {
	NodeExists(id graphscene.SceneId) bool
}

// SceneEndpoints adapts a *graphscene.Scene to EndpointResolver.
type SceneEndpoints struct{ Scene *graphscene.Scene }

func (s SceneEndpoints) NodeExists(id graphscene.SceneId) bool {
	return s.Scene.GetNode(id) != nil
}

// Stats is the aggregate statistics snapshot returned by Manager.Stats:
// total edge count, a per-kind breakdown, and running strength/confidence
// averages.
type Stats struct {
	TotalEdges int
	ByType map[graphscene.EdgeKind]int
	AvgStrength float64
	AvgConfidence float64
	ExpiredLastCleanup int
}

// Manager owns the graph's edges: creation, typed metadata, access
// tracking, and expiry. It synchronizes internally with a read-write lock
// so read-heavy adjacency queries (e.g. from the renderer) don't block
// writers.
type Manager struct {
	mu sync.RWMutex

	endpoints EndpointResolver

	edges map[graphscene.SceneId]*GraphEdge
	outgoing map[graphscene.SceneId][]graphscene.SceneId
	incoming map[graphscene.SceneId][]graphscene.SceneId

	// containsParent enforces the "a node has at most one incoming Contains"
	// policy; a second incoming Contains is rejected rather than coerced or
	// silently allowed.
	containsParent map[graphscene.SceneId]graphscene.SceneId

	MaxEdgesPerNode int

	expiredLastCleanup int
}

// NewManager creates an EdgeManager bound to endpoints for existence checks.
// maxEdgesPerNode is the per-node fan-out cap (default 100).
func NewManager(endpoints EndpointResolver, maxEdgesPerNode int) *Manager {
	if maxEdgesPerNode <= 0 {
 maxEdgesPerNode = 100
	}
	return &Manager{
 endpoints: endpoints,
 edges: make(map[graphscene.SceneId]*GraphEdge),
 outgoing: make(map[graphscene.SceneId][]graphscene.SceneId),
 incoming: make(map[graphscene.SceneId][]graphscene.SceneId),
 containsParent: make(map[graphscene.SceneId]graphscene.SceneId),
 MaxEdgesPerNode: maxEdgesPerNode,
	}
}

// AddEdge validates and inserts a new managed edge, 's
// contract. All mutations are all-or-nothing: on error nothing is recorded.
func (m *Manager) AddEdge(source, target graphscene.SceneId, et graphscene.EdgeType) (graphscene.SceneId, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.endpoints.NodeExists(source) || !m.endpoints.NodeExists(target) {
 return 0, graphscene.NewError(graphscene.KindInvalidRelationship, "unknown endpoint")
	}

	if et.Kind == graphscene.EdgeContains {
 if _, exists := m.containsParent[target]; exists {
 return 0, graphscene.NewError(graphscene.KindInvalidRelationship,
 fmt.Sprintf("node %d already has a Contains parent", target))
 }
	}

	if et.Kind == graphscene.EdgeDependsOn {
 if m.reachable(target, source) {
 return 0, graphscene.NewError(graphscene.KindCircularDependency,
 fmt.Sprintf("adding DependsOn %d->%d would close a cycle", source, target))
 }
	}

	fanOut := len(m.outgoing[source]) + len(m.incoming[source])
	if fanOut >= m.MaxEdgesPerNode {
 return 0, graphscene.NewError(graphscene.KindMaxEdgesExceeded,
 fmt.Sprintf("node %d fan-out %d reached cap %d", source, fanOut, m.MaxEdgesPerNode))
	}

	id := graphscene.NewEdgeID()
	now := time.Now()
	ge := &GraphEdge{
 Scene: graphscene.SceneEdge{
 ID: id,
 Source: source,
 Target: target,
 EdgeType: et,
 Weight: 0.5,
 Color: graphscene.ColorWhite,
 Visible: true,
 },
 Relationship: RelationshipData{
 Strength: 0.5,
 Confidence: 1.0,
 CreatedAt: now,
 LastAccessed: now,
 },
	}
	ge.Visual = deriveVisualStyle(ge.Relationship)

	m.edges[id] = ge
	m.outgoing[source] = append(m.outgoing[source], id)
	m.incoming[target] = append(m.incoming[target], id)
	if et.Kind == graphscene.EdgeContains {
 m.containsParent[target] = source
	}
	return id, nil
}

// reachable reports whether target is reachable from start by DFS over
// outgoing DependsOn edges only (the cycle check new DependsOn edges go
// through). Cost O(V+E) worst case; a single-target reachability query
// rather than full cycle enumeration, since that's all a new-edge check
// needs.
func (m *Manager) reachable(start, target graphscene.SceneId) bool {
	if start == target {
 return true
	}
	visited := map[graphscene.SceneId]bool{start: true}
	stack := []graphscene.SceneId{start}
	for len(stack) > 0 {
 cur := stack[len(stack)-1]
 stack = stack[:len(stack)-1]
 for _, eid := range m.outgoing[cur] {
 e := m.edges[eid]
 if e == nil || e.Scene.EdgeType.Kind != graphscene.EdgeDependsOn {
 continue
 }
 next := e.Scene.Target
 if next == target {
 return true
 }
 if !visited[next] {
 visited[next] = true
 stack = append(stack, next)
 }
 }
	}
	return false
}

// RemoveEdge removes the managed edge by id, returning it, or
// graphscene.KindNotFound.
func (m *Manager) RemoveEdge(id graphscene.SceneId) (*GraphEdge, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ge, ok := m.edges[id]
	if !ok {
 return nil, graphscene.NewError(graphscene.KindNotFound, fmt.Sprintf("edge %d", id))
	}
	removeFrom(m.outgoing, ge.Scene.Source, id)
	removeFrom(m.incoming, ge.Scene.Target, id)
	if ge.Scene.EdgeType.Kind == graphscene.EdgeContains {
 delete(m.containsParent, ge.Scene.Target)
	}
	delete(m.edges, id)
	return ge, nil
}

func removeFrom(m map[graphscene.SceneId][]graphscene.SceneId, node, edge graphscene.SceneId) {
	bucket := m[node]
	for i, id := range bucket {
 if id == edge {
 bucket[i] = bucket[len(bucket)-1]
 m[node] = bucket[:len(bucket)-1]
 return
 }
	}
}

// GetOutgoingEdges / GetIncomingEdges / GetAllEdges run in O(deg).
func (m *Manager) GetOutgoingEdges(id graphscene.SceneId) []*GraphEdge {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.collect(m.outgoing[id])
}

func (m *Manager) GetIncomingEdges(id graphscene.SceneId) []*GraphEdge {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.collect(m.incoming[id])
}

func (m *Manager) GetAllEdges(id graphscene.SceneId) []*GraphEdge {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := m.collect(m.outgoing[id])
	out = append(out, m.collect(m.incoming[id])...)
	return out
}

func (m *Manager) collect(ids []graphscene.SceneId) []*GraphEdge {
	out := make([]*GraphEdge, 0, len(ids))
	for _, id := range ids {
 if ge, ok := m.edges[id]; ok {
 out = append(out, ge)
 }
	}
	return out
}

// GetEdge returns the managed edge, or nil.
func (m *Manager) GetEdge(id graphscene.SceneId) *GraphEdge {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.edges[id]
}

// UpdateEdgeStrength clamps x to [0,1] and recomputes the derived visual
// style : thickness = 0.5+2x, opacity = 0.3+0.7*confidence,
// glow when strength>0.8, animated when frequency>10.
func (m *Manager) UpdateEdgeStrength(id graphscene.SceneId, x float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ge, ok := m.edges[id]
	if !ok {
 return graphscene.NewError(graphscene.KindNotFound, fmt.Sprintf("edge %d", id))
	}
	if x < 0 {
 x = 0
	} else if x > 1 {
 x = 1
	}
	ge.Relationship.Strength = x
	ge.Visual = deriveVisualStyle(ge.Relationship)
	return nil
}

func deriveVisualStyle(rel RelationshipData) VisualStyle {
	return VisualStyle{
 Thickness: 0.5 + 2*rel.Strength,
 Opacity: 0.3 + 0.7*rel.Confidence,
 Glow: rel.Strength > 0.8,
 Animated: rel.Frequency > 10,
	}
}

// RecordEdgeAccess bumps frequency, boosts strength logarithmically
// (bounded to 1), and stamps last_accessed.
func (m *Manager) RecordEdgeAccess(id graphscene.SceneId) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ge, ok := m.edges[id]
	if !ok {
 return graphscene.NewError(graphscene.KindNotFound, fmt.Sprintf("edge %d", id))
	}
	ge.Relationship.Frequency++
	boost := 0.01 * math.Log(float64(ge.Relationship.Frequency))
	s := ge.Relationship.Strength + boost
	if s > 1 {
 s = 1
	}
	ge.Relationship.Strength = s
	ge.Relationship.LastAccessed = time.Now()
	ge.Visual = deriveVisualStyle(ge.Relationship)
	return nil
}

// CleanupExpiredEdges removes every edge whose ExpiresAt is before now and
// returns the count removed.
func (m *Manager) CleanupExpiredEdges(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	var expired []graphscene.SceneId
	for id, ge := range m.edges {
 if ge.Metadata.ExpiresAt != nil && ge.Metadata.ExpiresAt.Before(now) {
 expired = append(expired, id)
 }
	}
	for _, id := range expired {
 ge := m.edges[id]
 removeFrom(m.outgoing, ge.Scene.Source, id)
 removeFrom(m.incoming, ge.Scene.Target, id)
 if ge.Scene.EdgeType.Kind == graphscene.EdgeContains {
 delete(m.containsParent, ge.Scene.Target)
 }
 delete(m.edges, id)
	}
	m.expiredLastCleanup = len(expired)
	return len(expired)
}

// SyncToScene inserts the visible projection of every managed edge into
// scene, overwriting any prior projection with the same id.
func (m *Manager) SyncToScene(scene *graphscene.Scene) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for id, ge := range m.edges {
 if !ge.Scene.Visible {
 continue
 }
 se := ge.Scene
 se.Weight = ge.Relationship.Strength
 se.Animated = ge.Visual.Animated
 if scene.GetEdge(id) == nil {
 scene.AddEdge(se)
 } else {
 scene.SetEdgeWeight(id, se.Weight)
 }
	}
}

// Stats returns a snapshot of the current edge population's statistics.
func (m *Manager) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st := Stats{
 TotalEdges: len(m.edges),
 ByType: make(map[graphscene.EdgeKind]int),
 ExpiredLastCleanup: m.expiredLastCleanup,
	}
	var strengthSum, confidenceSum float64
	for _, ge := range m.edges {
 st.ByType[ge.Scene.EdgeType.Kind]++
 strengthSum += ge.Relationship.Strength
 confidenceSum += ge.Relationship.Confidence
	}
	if st.TotalEdges > 0 {
 st.AvgStrength = strengthSum / float64(st.TotalEdges)
 st.AvgConfidence = confidenceSum / float64(st.TotalEdges)
	}
	return st
}

// AllIDs returns every managed edge id, sorted — used by tests that check
// the adjacency indices stay consistent with a recomputed-from-edges view.
func (m *Manager) AllIDs() []graphscene.SceneId {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]graphscene.SceneId, 0, len(m.edges))
	for id := range m.edges {
 out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
