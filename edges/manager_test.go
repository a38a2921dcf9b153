package edges

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphscene/core"
)

func newTestScene(t *testing.T) (*graphscene.Scene, graphscene.SceneId, graphscene.SceneId) {
	t.Helper()
	scene := graphscene.NewScene()
	a := scene.AddNode(graphscene.NewSceneNode(graphscene.NodeType{Kind: graphscene.NodeConcept}))
	b := scene.AddNode(graphscene.NewSceneNode(graphscene.NodeType{Kind: graphscene.NodeConcept}))
	return scene, a, b
}

func TestAddEdgeRejectsUnknownEndpoints(t *testing.T) {
	scene, a, _ := newTestScene(t)
	m := NewManager(SceneEndpoints{scene}, 100)

	_, err := m.AddEdge(a, 9999, graphscene.EdgeType{Kind: graphscene.EdgeRelatedTo})
	require.Error(t, err)
	se, ok := err.(*graphscene.SceneError)
	require.True(t, ok)
	assert.Equal(t, graphscene.KindInvalidRelationship, se.Kind)
}

func TestAddEdgeRoundTrip(t *testing.T) {
	scene, a, b := newTestScene(t)
	m := NewManager(SceneEndpoints{scene}, 100)

	id, err := m.AddEdge(a, b, graphscene.EdgeType{Kind: graphscene.EdgeRelatedTo})
	require.NoError(t, err)

	ge := m.GetEdge(id)
	require.NotNil(t, ge)
	assert.Equal(t, a, ge.Scene.Source)
	assert.Equal(t, b, ge.Scene.Target)
	assert.Equal(t, 0.5, ge.Relationship.Strength)
	assert.Equal(t, 1.0, ge.Relationship.Confidence)

	removed, err := m.RemoveEdge(id)
	require.NoError(t, err)
	assert.Equal(t, id, removed.Scene.ID)
	assert.Nil(t, m.GetEdge(id))
	assert.Empty(t, m.GetOutgoingEdges(a))
	assert.Empty(t, m.GetIncomingEdges(b))
}

func TestAddEdgeRejectsDependsOnCycle(t *testing.T) {
	scene, a, b := newTestScene(t)
	m := NewManager(SceneEndpoints{scene}, 100)

	_, err := m.AddEdge(a, b, graphscene.EdgeType{Kind: graphscene.EdgeDependsOn})
	require.NoError(t, err)

	_, err = m.AddEdge(b, a, graphscene.EdgeType{Kind: graphscene.EdgeDependsOn})
	require.Error(t, err)
	se, ok := err.(*graphscene.SceneError)
	require.True(t, ok)
	assert.Equal(t, graphscene.KindCircularDependency, se.Kind)
}

func TestAddEdgeRejectsSelfDependsOnCycle(t *testing.T) {
	scene, a, _ := newTestScene(t)
	m := NewManager(SceneEndpoints{scene}, 100)

	_, err := m.AddEdge(a, a, graphscene.EdgeType{Kind: graphscene.EdgeDependsOn})
	require.Error(t, err)
	se, ok := err.(*graphscene.SceneError)
	require.True(t, ok)
	assert.Equal(t, graphscene.KindCircularDependency, se.Kind)
}

func TestAddEdgeRejectsSecondContainsParent(t *testing.T) {
	scene, a, b := newTestScene(t)
	c := scene.AddNode(graphscene.NewSceneNode(graphscene.NodeType{Kind: graphscene.NodeConcept}))
	m := NewManager(SceneEndpoints{scene}, 100)

	_, err := m.AddEdge(a, c, graphscene.EdgeType{Kind: graphscene.EdgeContains})
	require.NoError(t, err)

	_, err = m.AddEdge(b, c, graphscene.EdgeType{Kind: graphscene.EdgeContains})
	require.Error(t, err)
	se, ok := err.(*graphscene.SceneError)
	require.True(t, ok)
	assert.Equal(t, graphscene.KindInvalidRelationship, se.Kind)
}

func TestAddEdgeEnforcesFanOutCap(t *testing.T) {
	scene, a, _ := newTestScene(t)
	m := NewManager(SceneEndpoints{scene}, 1)

	b := scene.AddNode(graphscene.NewSceneNode(graphscene.NodeType{Kind: graphscene.NodeConcept}))
	c := scene.AddNode(graphscene.NewSceneNode(graphscene.NodeType{Kind: graphscene.NodeConcept}))

	_, err := m.AddEdge(a, b, graphscene.EdgeType{Kind: graphscene.EdgeRelatedTo})
	require.NoError(t, err)

	_, err = m.AddEdge(a, c, graphscene.EdgeType{Kind: graphscene.EdgeRelatedTo})
	require.Error(t, err)
	se, ok := err.(*graphscene.SceneError)
	require.True(t, ok)
	assert.Equal(t, graphscene.KindMaxEdgesExceeded, se.Kind)
}

func TestUpdateEdgeStrengthClampsAndDerivesVisualStyle(t *testing.T) {
	scene, a, b := newTestScene(t)
	m := NewManager(SceneEndpoints{scene}, 100)
	id, _ := m.AddEdge(a, b, graphscene.EdgeType{Kind: graphscene.EdgeRelatedTo})

	require.NoError(t, m.UpdateEdgeStrength(id, 2.0))
	ge := m.GetEdge(id)
	assert.Equal(t, 1.0, ge.Relationship.Strength)
	assert.True(t, ge.Visual.Glow)

	require.NoError(t, m.UpdateEdgeStrength(id, -5.0))
	ge = m.GetEdge(id)
	assert.Equal(t, 0.0, ge.Relationship.Strength)
	assert.False(t, ge.Visual.Glow)
	assert.Equal(t, 0.5, ge.Visual.Thickness)
}

func TestRecordEdgeAccessIncreasesFrequencyAndStrength(t *testing.T) {
	scene, a, b := newTestScene(t)
	m := NewManager(SceneEndpoints{scene}, 100)
	id, _ := m.AddEdge(a, b, graphscene.EdgeType{Kind: graphscene.EdgeRelatedTo})
	require.NoError(t, m.UpdateEdgeStrength(id, 0.0))

	var lastStrength float64
	for i := 0; i < 5; i++ {
 require.NoError(t, m.RecordEdgeAccess(id))
 ge := m.GetEdge(id)
 assert.GreaterOrEqual(t, ge.Relationship.Strength, lastStrength)
 lastStrength = ge.Relationship.Strength
	}
	assert.Equal(t, uint32(5), m.GetEdge(id).Relationship.Frequency)
}

func TestCleanupExpiredEdgesRemovesOnlyExpired(t *testing.T) {
	scene, a, b := newTestScene(t)
	c := scene.AddNode(graphscene.NewSceneNode(graphscene.NodeType{Kind: graphscene.NodeConcept}))
	m := NewManager(SceneEndpoints{scene}, 100)

	expiredID, _ := m.AddEdge(a, b, graphscene.EdgeType{Kind: graphscene.EdgeRelatedTo})
	past := time.Now().Add(-time.Hour)
	m.GetEdge(expiredID).Metadata.ExpiresAt = &past

	liveID, _ := m.AddEdge(a, c, graphscene.EdgeType{Kind: graphscene.EdgeRelatedTo})

	removed := m.CleanupExpiredEdges(time.Now())
	assert.Equal(t, 1, removed)
	assert.Nil(t, m.GetEdge(expiredID))
	assert.NotNil(t, m.GetEdge(liveID))
	assert.Equal(t, 1, m.Stats().ExpiredLastCleanup)
}

func TestSyncToSceneInsertsVisibleEdges(t *testing.T) {
	scene, a, b := newTestScene(t)
	m := NewManager(SceneEndpoints{scene}, 100)
	id, _ := m.AddEdge(a, b, graphscene.EdgeType{Kind: graphscene.EdgeRelatedTo})
	require.NoError(t, m.UpdateEdgeStrength(id, 0.9))

	m.SyncToScene(scene)

	se := scene.GetEdge(id)
	require.NotNil(t, se)
	assert.Equal(t, 0.9, se.Weight)
}

func TestStatsReportsByTypeAndAverages(t *testing.T) {
	scene, a, b := newTestScene(t)
	c := scene.AddNode(graphscene.NewSceneNode(graphscene.NodeType{Kind: graphscene.NodeConcept}))
	m := NewManager(SceneEndpoints{scene}, 100)

	empty := m.Stats()
	assert.Equal(t, 0, empty.TotalEdges)
	assert.Equal(t, 0.0, empty.AvgStrength)

	id1, _ := m.AddEdge(a, b, graphscene.EdgeType{Kind: graphscene.EdgeRelatedTo})
	_, _ = m.AddEdge(a, c, graphscene.EdgeType{Kind: graphscene.EdgeDependsOn})
	require.NoError(t, m.UpdateEdgeStrength(id1, 1.0))

	stats := m.Stats()
	assert.Equal(t, 2, stats.TotalEdges)
	assert.Equal(t, 1, stats.ByType[graphscene.EdgeRelatedTo])
	assert.Equal(t, 1, stats.ByType[graphscene.EdgeDependsOn])
	assert.InDelta(t, 0.75, stats.AvgStrength, 1e-9)
}

func TestAllIDsMatchesAdjacencyView(t *testing.T) {
	scene, a, b := newTestScene(t)
	m := NewManager(SceneEndpoints{scene}, 100)
	id1, _ := m.AddEdge(a, b, graphscene.EdgeType{Kind: graphscene.EdgeRelatedTo})

	ids := m.AllIDs()
	require.Len(t, ids, 1)
	assert.Equal(t, id1, ids[0])

	outgoing := m.GetOutgoingEdges(a)
	require.Len(t, outgoing, 1)
	assert.Equal(t, id1, outgoing[0].Scene.ID)
}
