package graphscene

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration surface, grouped by area. Every
// field has a documented default, set by DefaultConfig.
type Config struct {
	Physics PhysicsConfig `yaml:"physics" toml:"physics"`
	ForceDirected ForceDirectedConfig `yaml:"force_directed" toml:"force_directed"`
	Layout LayoutSurfaceConfig `yaml:"layout" toml:"layout"`
	Edges EdgesConfig `yaml:"edges" toml:"edges"`
	Clusters ClustersConfig `yaml:"clusters" toml:"clusters"`
	Rendering RenderingConfig `yaml:"rendering" toml:"rendering"`
	Camera CameraConfig `yaml:"camera" toml:"camera"`
}

type PhysicsConfig struct {
	Damping float64 `yaml:"damping" toml:"damping"`
	TimeStep float64 `yaml:"time_step" toml:"time_step"`
	MaxVelocity float64 `yaml:"max_velocity" toml:"max_velocity"`
	CollisionDetection bool `yaml:"collision_detection" toml:"collision_detection"`
}

type ForceDirectedConfig struct {
	AttractionStrength float64 `yaml:"attraction_strength" toml:"attraction_strength"`
	RepulsionStrength float64 `yaml:"repulsion_strength" toml:"repulsion_strength"`
	OptimalEdgeLength float64 `yaml:"optimal_edge_length" toml:"optimal_edge_length"`
	MaxForce float64 `yaml:"max_force" toml:"max_force"`
}

// LayoutSurfaceConfig names the active algorithm plus bounds/seed options.
// Algorithm-specific knobs live on the sibling layout package's own
// per-algorithm config structs; this struct is the host-facing selection
// surface.
type LayoutSurfaceConfig struct {
	Algorithm string `yaml:"algorithm" toml:"algorithm"` // force-directed | hierarchical | circular | grid
	BoundsMin Vec3 `yaml:"bounds_min" toml:"bounds_min"`
	BoundsMax Vec3 `yaml:"bounds_max" toml:"bounds_max"`
	RandomSeed *int64 `yaml:"random_seed,omitempty" toml:"random_seed,omitempty"`
}

type EdgesConfig struct {
	MaxEdgesPerNode int `yaml:"max_edges_per_node" toml:"max_edges_per_node"`
}

type ClustersConfig struct {
	MinClusterSize int `yaml:"min_cluster_size" toml:"min_cluster_size"`
	DBSCAN DBSCANConfig `yaml:"dbscan" toml:"dbscan"`
}

type DBSCANConfig struct {
	Eps float64 `yaml:"eps" toml:"eps"`
	MinPoints int `yaml:"min_points" toml:"min_points"`
}

type RenderingConfig struct {
	MaxFPS int `yaml:"max_fps" toml:"max_fps"`
	LevelOfDetail bool `yaml:"level_of_detail" toml:"level_of_detail"`
	FrustumCulling bool `yaml:"frustum_culling" toml:"frustum_culling"`
	MaxNodeInstances int `yaml:"max_node_instances" toml:"max_node_instances"`
	MaxEdgeVertices int `yaml:"max_edge_vertices" toml:"max_edge_vertices"`
}

type CameraConfig struct {
	FOV float64 `yaml:"fov" toml:"fov"`
	Near float64 `yaml:"near" toml:"near"`
	Far float64 `yaml:"far" toml:"far"`
	MovementSpeed float64 `yaml:"movement_speed" toml:"movement_speed"`
	MouseSensitivity float64 `yaml:"mouse_sensitivity" toml:"mouse_sensitivity"`
	ZoomSpeed float64 `yaml:"zoom_speed" toml:"zoom_speed"`
}

// DefaultConfig returns the documented default values for every
// per-component configuration knob.
func DefaultConfig() Config {
	return Config{
 Physics: PhysicsConfig{
 Damping: 0.1,
 TimeStep: 1.0 / 60.0,
 MaxVelocity: 50,
 CollisionDetection: true,
 },
 ForceDirected: ForceDirectedConfig{
 AttractionStrength: 1.0,
 RepulsionStrength: 1.0,
 OptimalEdgeLength: 5.0,
 MaxForce: 50,
 },
 Layout: LayoutSurfaceConfig{
 Algorithm: "force-directed",
 BoundsMin: Vec3{X: -50, Y: -50, Z: -50},
 BoundsMax: Vec3{X: 50, Y: 50, Z: 50},
 },
 Edges: EdgesConfig{
 MaxEdgesPerNode: 100,
 },
 Clusters: ClustersConfig{
 MinClusterSize: 2,
 DBSCAN: DBSCANConfig{Eps: 5, MinPoints: 3},
 },
 Rendering: RenderingConfig{
 MaxFPS: 60,
 LevelOfDetail: true,
 FrustumCulling: true,
 MaxNodeInstances: 10000,
 MaxEdgeVertices: 20000,
 },
 Camera: CameraConfig{
 FOV: 1.0471975512, // pi/3
 Near: 0.1,
 Far: 1000,
 MovementSpeed: 10,
 MouseSensitivity: 0.0025,
 ZoomSpeed: 1.0,
 },
	}
}

// LoadConfigYAML reads and parses a YAML config file, starting from
// DefaultConfig so any field the file omits keeps its documented default.
func LoadConfigYAML(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
 return cfg, WrapError(KindSystemIO, fmt.Sprintf("read config %s", path), err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
 return cfg, WrapError(KindSystemIO, fmt.Sprintf("parse config %s", path), err)
	}
	return cfg, nil
}

// SaveConfigYAML serializes cfg to YAML and writes it to path.
func SaveConfigYAML(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
 return WrapError(KindSystemIO, "marshal config", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
 return WrapError(KindSystemIO, fmt.Sprintf("write config %s", path), err)
	}
	return nil
}

// LoadConfigTOML reads and parses a TOML config file, starting from
// DefaultConfig.
func LoadConfigTOML(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
 return cfg, WrapError(KindSystemIO, fmt.Sprintf("parse config %s", path), err)
	}
	return cfg, nil
}

// SaveConfigTOML serializes cfg to TOML and writes it to path.
func SaveConfigTOML(path string, cfg Config) error {
	f, err := os.Create(path)
	if err != nil {
 return WrapError(KindSystemIO, fmt.Sprintf("create config %s", path), err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
 return WrapError(KindSystemIO, "marshal config", err)
	}
	return nil
}
