package graphscene

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfigHasDocumentedDefaults(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Edges.MaxEdgesPerNode != 100 {
 t.Errorf("MaxEdgesPerNode = %d, want 100", cfg.Edges.MaxEdgesPerNode)
	}
	if cfg.Clusters.MinClusterSize != 2 {
 t.Errorf("MinClusterSize = %d, want 2", cfg.Clusters.MinClusterSize)
	}
	if cfg.Rendering.MaxNodeInstances != 10000 {
 t.Errorf("MaxNodeInstances = %d, want 10000", cfg.Rendering.MaxNodeInstances)
	}
	if cfg.Rendering.MaxEdgeVertices != 20000 {
 t.Errorf("MaxEdgeVertices = %d, want 20000", cfg.Rendering.MaxEdgeVertices)
	}
}

func TestConfigYAMLRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Edges.MaxEdgesPerNode = 42
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := SaveConfigYAML(path, cfg); err != nil {
 t.Fatalf("SaveConfigYAML: %v", err)
	}
	got, err := LoadConfigYAML(path)
	if err != nil {
 t.Fatalf("LoadConfigYAML: %v", err)
	}
	if got.Edges.MaxEdgesPerNode != 42 {
 t.Errorf("MaxEdgesPerNode = %d, want 42", got.Edges.MaxEdgesPerNode)
	}
}

func TestConfigTOMLRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Clusters.MinClusterSize = 7
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := SaveConfigTOML(path, cfg); err != nil {
 t.Fatalf("SaveConfigTOML: %v", err)
	}
	got, err := LoadConfigTOML(path)
	if err != nil {
 t.Fatalf("LoadConfigTOML: %v", err)
	}
	if got.Clusters.MinClusterSize != 7 {
 t.Errorf("MinClusterSize = %d, want 7", got.Clusters.MinClusterSize)
	}
}

func TestLoadConfigMissingFileIsSystemIO(t *testing.T) {
	_, err := LoadConfigYAML(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
 t.Fatal("expected error for missing file")
	}
	var se *SceneError
	if !isSceneError(err, &se) {
 t.Fatalf("expected *SceneError, got %T", err)
	}
	if se.Kind != KindSystemIO {
 t.Errorf("Kind = %v, want KindSystemIO", se.Kind)
	}
}

func isSceneError(err error, out **SceneError) bool {
	se, ok := err.(*SceneError)
	if ok {
 *out = se
	}
	return ok
}
