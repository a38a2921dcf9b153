package clusters

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/graphscene/core"
)

// Manager owns the full set of clusters: a map of Cluster by id, a
// per-node multi-membership index, and a parent/children forest. Internally
// synchronized with a read-write lock so renderer boundary queries don't
// block discovery/merge/split writers.
type Manager struct {
	mu sync.RWMutex

	clusters map[uuid.UUID]*Cluster
	byNode map[graphscene.SceneId]map[uuid.UUID]struct{}
	children map[uuid.UUID]map[uuid.UUID]struct{}
}

// NewManager creates an empty ClusterManager.
func NewManager() *Manager {
	return &Manager{
 clusters: make(map[uuid.UUID]*Cluster),
 byNode: make(map[graphscene.SceneId]map[uuid.UUID]struct{}),
 children: make(map[uuid.UUID]map[uuid.UUID]struct{}),
	}
}

// AddCluster registers cluster and updates the per-node index.
func (m *Manager) AddCluster(c *Cluster) uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clusters[c.ID] = c
	for id := range c.Nodes {
 m.indexNode(id, c.ID)
	}
	return c.ID
}

func (m *Manager) indexNode(node graphscene.SceneId, cluster uuid.UUID) {
	set, ok := m.byNode[node]
	if !ok {
 set = make(map[uuid.UUID]struct{})
 m.byNode[node] = set
	}
	set[cluster] = struct{}{}
}

func (m *Manager) deindexNode(node graphscene.SceneId, cluster uuid.UUID) {
	if set, ok := m.byNode[node]; ok {
 delete(set, cluster)
 if len(set) == 0 {
 delete(m.byNode, node)
 }
	}
}

// RemoveCluster detaches id from the hierarchy (its children become roots)
// and from the per-node index.
func (m *Manager) RemoveCluster(id uuid.UUID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.clusters[id]
	if !ok {
 return false
	}
	for node := range c.Nodes {
 m.deindexNode(node, id)
	}
	for childID := range m.children[id] {
 if child, ok := m.clusters[childID]; ok {
 child.ParentID = nil
 }
	}
	delete(m.children, id)
	if c.ParentID != nil {
 if siblings, ok := m.children[*c.ParentID]; ok {
 delete(siblings, id)
 }
	}
	delete(m.clusters, id)
	return true
}

// GetCluster returns the cluster, or nil.
func (m *Manager) GetCluster(id uuid.UUID) *Cluster {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.clusters[id]
}

// ClustersForNode returns every cluster containing node.
func (m *Manager) ClustersForNode(node graphscene.SceneId) []*Cluster {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := m.byNode[node]
	out := make([]*Cluster, 0, len(ids))
	for id := range ids {
 out = append(out, m.clusters[id])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out
}

// All returns every cluster, sorted by id for deterministic iteration.
func (m *Manager) All() []*Cluster {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Cluster, 0, len(m.clusters))
	for _, c := range m.clusters {
 out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out
}

// SetClusterParent rejects self-parenting and any assignment that would
// close a cycle, walking the parent chain looking for child. Calling it
// twice with the same (child, parent) is a no-op.
func (m *Manager) SetClusterParent(child, parent uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	childC, ok := m.clusters[child]
	if !ok {
 return graphscene.NewError(graphscene.KindNotFound, "cluster "+child.String())
	}
	if _, ok := m.clusters[parent]; !ok {
 return graphscene.NewError(graphscene.KindNotFound, "cluster "+parent.String())
	}
	if child == parent {
 return graphscene.NewError(graphscene.KindInvalidRelationship, "cluster cannot parent itself")
	}
	// Walk parent's ancestor chain; if child appears, linking would close a
	// cycle.
	cur := &parent
	depth := 0
	for cur != nil && depth < len(m.clusters)+1 {
 if *cur == child {
 return graphscene.NewError(graphscene.KindInvalidRelationship, "would close a cluster hierarchy cycle")
 }
 next := m.clusters[*cur].ParentID
 cur = next
 depth++
	}

	if childC.ParentID != nil && *childC.ParentID == parent {
 return nil // idempotent no-op
	}
	if childC.ParentID != nil {
 if siblings, ok := m.children[*childC.ParentID]; ok {
 delete(siblings, child)
 }
	}
	childC.ParentID = &parent
	set, ok := m.children[parent]
	if !ok {
 set = make(map[uuid.UUID]struct{})
 m.children[parent] = set
	}
	set[child] = struct{}{}
	return nil
}

// ParentDepth walks the parent chain from id and returns its length,
// erroring with InvalidRelationship if it does not terminate within
// len(clusters) steps (the cycle-safety property: "following parents from any
// cluster terminates in ≤ depth steps without revisiting").
func (m *Manager) ParentDepth(id uuid.UUID) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	seen := make(map[uuid.UUID]struct{})
	cur := id
	depth := 0
	for {
 if _, dup := seen[cur]; dup {
 return depth, graphscene.NewError(graphscene.KindInvalidRelationship, "cluster hierarchy cycle detected")
 }
 seen[cur] = struct{}{}
 c, ok := m.clusters[cur]
 if !ok || c.ParentID == nil {
 return depth, nil
 }
 cur = *c.ParentID
 depth++
 if depth > len(m.clusters) {
 return depth, graphscene.NewError(graphscene.KindInvalidRelationship, "cluster hierarchy cycle detected")
 }
	}
}

// Merge unions b's nodes into a and removes b. Manual clusters dominate
// auto clusters: if exactly one of a/b is Manual, the result keeps that
// one's id, name, and type.
func (m *Manager) Merge(a, b uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ca, ok := m.clusters[a]
	if !ok {
 return graphscene.NewError(graphscene.KindNotFound, "cluster "+a.String())
	}
	cb, ok := m.clusters[b]
	if !ok {
 return graphscene.NewError(graphscene.KindNotFound, "cluster "+b.String())
	}

	dst, src := ca, cb
	if cb.Type == KindManual && ca.Type != KindManual {
 dst, src = cb, ca
	}

	for node := range src.Nodes {
 dst.Add(node)
 m.deindexNode(node, src.ID)
 m.indexNode(node, dst.ID)
	}
	for childID := range m.children[src.ID] {
 if child, ok := m.clusters[childID]; ok {
 child.ParentID = &dst.ID
 }
	}
	delete(m.children, src.ID)
	if src.ParentID != nil {
 if siblings, ok := m.children[*src.ParentID]; ok {
 delete(siblings, src.ID)
 }
	}
	delete(m.clusters, src.ID)
	return nil
}

// Split partitions id's nodes by bucket(node) and replaces id with one new
// cluster per nonempty bucket. Returns the new cluster ids,
// sorted by bucket key for determinism.
func (m *Manager) Split(id uuid.UUID, bucket func(graphscene.SceneId) string) ([]uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.clusters[id]
	if !ok {
 return nil, graphscene.NewError(graphscene.KindNotFound, "cluster "+id.String())
	}

	buckets := make(map[string][]graphscene.SceneId)
	for node := range c.Nodes {
 key := bucket(node)
 buckets[key] = append(buckets[key], node)
	}

	var keys []string
	for k := range buckets {
 keys = append(keys, k)
	}
	sort.Strings(keys)

	var newIDs []uuid.UUID
	for _, k := range keys {
 nodes := buckets[k]
 if len(nodes) == 0 {
 continue
 }
 nc := NewCluster(c.Name+"/"+k, c.Type, nodes)
 m.clusters[nc.ID] = nc
 for _, n := range nodes {
 m.deindexNode(n, id)
 m.indexNode(n, nc.ID)
 }
 newIDs = append(newIDs, nc.ID)
	}

	delete(m.children, id)
	if c.ParentID != nil {
 if siblings, ok := m.children[*c.ParentID]; ok {
 delete(siblings, id)
 }
	}
	delete(m.clusters, id)
	return newIDs, nil
}
