// Command graphdemo drives the graph runtime headlessly from the command
// line: it seeds a Scene with a small synthetic graph, runs the runtime
// loop for a configured number of ticks, and prints layout/edge/cluster
// statistics. It exists to exercise graphscene/runtime without a real GPU
// surface, using a real cobra command per capability rather than a bare
// main.go.
package main

import (
	"fmt"
	"math"
	"os"

	"github.com/spf13/cobra"

	"github.com/graphscene/core"
	"github.com/graphscene/core/camera"
	"github.com/graphscene/core/clusters"
	"github.com/graphscene/core/edges"
	"github.com/graphscene/core/layout"
	"github.com/graphscene/core/physics"
	"github.com/graphscene/core/render"
	"github.com/graphscene/core/runtime"
)

func main() {
	rootCmd := &cobra.Command{
 Use: "graphdemo",
 Short: "Exercise the graph runtime loop headlessly",
 Long: `graphdemo seeds a synthetic node/edge graph, drives the
fixed-timestep runtime loop for a configured number of ticks, and reports
layout convergence and edge/cluster statistics.`,
	}

	rootCmd.AddCommand(newRunCommand())
	rootCmd.AddCommand(newConfigCommand())

	if err := rootCmd.Execute(); err != nil {
 os.Exit(1)
	}
}

func newRunCommand() *cobra.Command {
	cmd := &cobra.Command{
 Use: "run",
 Short: "Run the runtime loop for N ticks against a synthetic graph",
 RunE: runDemo,
	}
	cmd.Flags().Int("nodes", 12, "number of synthetic nodes to seed")
	cmd.Flags().Int("ticks", 180, "number of fixed-timestep ticks to run")
	cmd.Flags().String("algorithm", "force-directed", "layout algorithm: force-directed|hierarchical|circular|grid")
	return cmd
}

func runDemo(cmd *cobra.Command, args []string) error {
	nodeCount, _ := cmd.Flags().GetInt("nodes")
	ticks, _ := cmd.Flags().GetInt("ticks")
	algoName, _ := cmd.Flags().GetString("algorithm")

	cfg := graphscene.DefaultConfig()
	scene := graphscene.NewScene()
	seedGraph(scene, nodeCount)

	sim := physics.NewSimulation(physics.DefaultSettings())
	em := edges.NewManager(edges.SceneEndpoints{Scene: scene}, cfg.Edges.MaxEdgesPerNode)
	cm := clusters.NewManager()
	lm := layout.NewManager(scene)

	cam := camera.New(cfg.Camera.FOV, 16.0/9.0, cfg.Camera.Near, cfg.Camera.Far)
	renderer := render.NewRenderer(cam, 1280, 720)

	loop := runtime.New(scene, sim, em, cm, lm, renderer, cam, cfg.Physics.TimeStep)
	algo, drive, err := resolveAlgorithm(scene, algoName, cfg)
	if err != nil {
 return err
	}
	loop.SetActiveLayout(algo)

	for i := 0; i < ticks; i++ {
 loop.Advance(cfg.Physics.TimeStep, drive, nil, func(err error) {
 fmt.Fprintf(os.Stderr, "renderer error: %v\n", err)
 })
	}

	components := clusters.ConnectedComponents(scene, cfg.Clusters.MinClusterSize)
	for _, c := range components {
 cm.AddCluster(c)
	}

	fmt.Printf("nodes=%d edges=%d ticks=%d algorithm=%s\n", scene.NodeCount(), scene.EdgeCount(), ticks, algoName)
	if metrics, ok := lm.LastMetrics(); ok {
 fmt.Printf("layout metrics: edge_crossings=%d avg_edge_length=%.2f distribution_uniformity=%.3f stress=%.3f\n",
 metrics.EdgeCrossings, metrics.AvgEdgeLength, metrics.DistributionUniformity, metrics.Stress)
	}
	fmt.Printf("edge stats: %+v\n", em.Stats())
	fmt.Printf("connected components: %d\n", len(components))
	return nil
}

func resolveAlgorithm(scene *graphscene.Scene, name string, cfg graphscene.Config) (layout.Algorithm, runtime.DrivePhase, error) {
	switch name {
	case "force-directed":
 fdCfg := layout.DefaultForceDirectedConfig()
 fdCfg.AttractionStrength = cfg.ForceDirected.AttractionStrength
 fdCfg.RepulsionStrength = cfg.ForceDirected.RepulsionStrength
 fdCfg.OptimalEdgeLength = cfg.ForceDirected.OptimalEdgeLength
 fdCfg.MaxForce = cfg.ForceDirected.MaxForce
 return layout.NewForceDirected(scene, fdCfg), runtime.DriveLayout, nil
	case "hierarchical":
 return layout.NewHierarchical(layout.DefaultHierarchicalConfig()), runtime.DriveLayout, nil
	case "circular":
 return layout.NewCircular(layout.CircularConfig{Radius: 20}), runtime.DriveLayout, nil
	case "grid":
 return layout.NewGrid(layout.GridConfig{CellSize: 5}), runtime.DriveLayout, nil
	default:
 return nil, runtime.DriveNone, fmt.Errorf("unknown algorithm %q", name)
	}
}

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
 Use: "config",
 Short: "Print the default configuration surface as YAML",
 RunE: func(cmd *cobra.Command, args []string) error {
 tmp, err := os.CreateTemp("", "graphdemo-config-*.yaml")
 if err != nil {
 return err
 }
 defer os.Remove(tmp.Name())
 tmp.Close()

 if err := graphscene.SaveConfigYAML(tmp.Name(), graphscene.DefaultConfig()); err != nil {
 return err
 }
 data, err := os.ReadFile(tmp.Name())
 if err != nil {
 return err
 }
 fmt.Print(string(data))
 return nil
 },
	}
	return cmd
}

// seedGraph populates scene with n Concept nodes placed on a circle and a
// chain of DependsOn edges linking each to the next, giving the layout
// algorithms and cluster discovery something non-trivial to act on.
func seedGraph(scene *graphscene.Scene, n int) {
	if n < 1 {
 n = 1
	}
	ids := make([]graphscene.SceneId, n)
	for i := 0; i < n; i++ {
 node := graphscene.NewSceneNode(graphscene.NodeType{Kind: graphscene.NodeConcept})
 theta := 2 * math.Pi * float64(i) / float64(n)
 node.Position = graphscene.Vec3{X: 30 * math.Cos(theta), Z: 30 * math.Sin(theta)}
 ids[i] = scene.AddNode(node)
	}
	for i := 1; i < n; i++ {
 scene.AddEdge(graphscene.NewSceneEdge(ids[i-1], ids[i], graphscene.EdgeType{Kind: graphscene.EdgeDependsOn}))
	}
}
