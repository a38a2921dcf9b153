package clusters

import (
	"path/filepath"
	"testing"

	"github.com/graphscene/core"
)

func TestClusterJSONRoundTrip(t *testing.T) {
	c := NewCluster("team", KindManual, []graphscene.SceneId{1, 2, 3})
	data, err := ClusterJSON(c)
	if err != nil {
 t.Fatalf("ClusterJSON: %v", err)
	}
	got, err := ClusterFromJSON(data)
	if err != nil {
 t.Fatalf("ClusterFromJSON: %v", err)
	}
	assertClustersEqual(t, c, got)
}

func TestClusterYAMLRoundTrip(t *testing.T) {
	c := NewCluster("team", KindSemantic, []graphscene.SceneId{4, 5})
	data, err := ClusterYAML(c)
	if err != nil {
 t.Fatalf("ClusterYAML: %v", err)
	}
	got, err := ClusterFromYAML(data)
	if err != nil {
 t.Fatalf("ClusterFromYAML: %v", err)
	}
	assertClustersEqual(t, c, got)
}

func TestClusterTOMLRoundTrip(t *testing.T) {
	c := NewCluster("team", KindProximity, []graphscene.SceneId{6, 7})
	path := filepath.Join(t.TempDir(), "cluster.toml")
	if err := ClusterSaveTOML(path, c); err != nil {
 t.Fatalf("ClusterSaveTOML: %v", err)
	}
	got, err := ClusterLoadTOML(path)
	if err != nil {
 t.Fatalf("ClusterLoadTOML: %v", err)
	}
	assertClustersEqual(t, c, got)
}

func assertClustersEqual(t *testing.T, want, got *Cluster) {
	t.Helper()
	if got.ID != want.ID {
 t.Errorf("ID = %v, want %v", got.ID, want.ID)
	}
	if got.Name != want.Name {
 t.Errorf("Name = %v, want %v", got.Name, want.Name)
	}
	if got.Type != want.Type {
 t.Errorf("Type = %v, want %v", got.Type, want.Type)
	}
	if got.Size() != want.Size() {
 t.Fatalf("Size = %d, want %d", got.Size(), want.Size())
	}
	for id := range want.Nodes {
 if !got.Contains(id) {
 t.Errorf("expected round-tripped cluster to contain node %d", id)
 }
	}
}
