package main

import (
	"testing"

	"github.com/graphscene/core"
)

func TestSeedGraphCreatesChainOfEdges(t *testing.T) {
	scene := graphscene.NewScene()
	seedGraph(scene, 5)

	if scene.NodeCount() != 5 {
 t.Fatalf("NodeCount() = %d, want 5", scene.NodeCount())
	}
	if scene.EdgeCount() != 4 {
 t.Fatalf("EdgeCount() = %d, want 4 (chain of 5 nodes)", scene.EdgeCount())
	}
}

func TestSeedGraphClampsBelowOneNode(t *testing.T) {
	scene := graphscene.NewScene()
	seedGraph(scene, 0)
	if scene.NodeCount() != 1 {
 t.Errorf("NodeCount() = %d, want 1 for n<1 input", scene.NodeCount())
	}
}

func TestResolveAlgorithmRejectsUnknownName(t *testing.T) {
	scene := graphscene.NewScene()
	cfg := graphscene.DefaultConfig()
	_, _, err := resolveAlgorithm(scene, "not-a-real-algorithm", cfg)
	if err == nil {
 t.Fatal("expected an error for an unknown algorithm name")
	}
}

func TestResolveAlgorithmAcceptsEachKnownName(t *testing.T) {
	scene := graphscene.NewScene()
	cfg := graphscene.DefaultConfig()
	for _, name := range []string{"force-directed", "hierarchical", "circular", "grid"} {
 algo, drive, err := resolveAlgorithm(scene, name, cfg)
 if err != nil {
 t.Errorf("%s: unexpected error %v", name, err)
 }
 if algo == nil {
 t.Errorf("%s: expected a non-nil Algorithm", name)
 }
 if drive == 0 {
 t.Errorf("%s: expected a non-zero DrivePhase", name)
 }
	}
}
