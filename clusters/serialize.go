package clusters

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/graphscene/core"
)

// UnmarshalJSON/UnmarshalYAML round trip through NodeList only; Nodes (the
// membership set) is rebuilt from it on unmarshal since it carries no
// additional information ("Serializing a Cluster to
// JSON/TOML/YAML and back yields a structurally equal Cluster").
func (c *Cluster) UnmarshalJSON(data []byte) error {
	type alias Cluster
	aux := &struct{ *alias }{alias: (*alias)(c)}
	if err := json.Unmarshal(data, aux); err != nil {
 return err
	}
	c.syncSetFromList()
	return nil
}

func (c *Cluster) UnmarshalYAML(value *yaml.Node) error {
	type alias Cluster
	if err := value.Decode((*alias)(c)); err != nil {
 return err
	}
	c.syncSetFromList()
	return nil
}

// ClusterJSON serializes c to JSON bytes.
func ClusterJSON(c *Cluster) ([]byte, error) {
	data, err := json.Marshal(c)
	if err != nil {
 return nil, graphscene.WrapError(graphscene.KindSystemIO, "marshal cluster json", err)
	}
	return data, nil
}

// ClusterFromJSON parses a Cluster from JSON bytes.
func ClusterFromJSON(data []byte) (*Cluster, error) {
	var c Cluster
	if err := json.Unmarshal(data, &c); err != nil {
 return nil, graphscene.WrapError(graphscene.KindSystemIO, "unmarshal cluster json", err)
	}
	return &c, nil
}

// ClusterYAML serializes c to YAML bytes.
func ClusterYAML(c *Cluster) ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
 return nil, graphscene.WrapError(graphscene.KindSystemIO, "marshal cluster yaml", err)
	}
	return data, nil
}

// ClusterFromYAML parses a Cluster from YAML bytes.
func ClusterFromYAML(data []byte) (*Cluster, error) {
	var c Cluster
	if err := yaml.Unmarshal(data, &c); err != nil {
 return nil, graphscene.WrapError(graphscene.KindSystemIO, "unmarshal cluster yaml", err)
	}
	return &c, nil
}

// clusterTOML is the mirror struct ClusterSaveTOML and ClusterLoadTOML go
// through. BurntSushi/toml has no native map-skip-tag support matching
// encoding/json's "-", so TOML round trips through this plain mirror struct
// instead of Cluster's json/yaml tags.
type clusterTOML struct {
	ID string `toml:"id"`
	Name string `toml:"name"`
	Type Kind `toml:"type"`
	NodeList []graphscene.SceneId `toml:"nodes"`
	ParentID string `toml:"parent_id"`
	Style Style `toml:"style"`
	Visible bool `toml:"visible"`
	Expanded bool `toml:"expanded"`
	CreatedAt string `toml:"created_at"`
}

func ClusterSaveTOML(path string, c *Cluster) error {
	mirror := clusterTOML{
 ID: c.ID.String(),
 Name: c.Name,
 Type: c.Type,
 NodeList: c.NodeList,
 Style: c.Style,
 Visible: c.Visible,
 Expanded: c.Expanded,
 CreatedAt: c.CreatedAt.Format("2006-01-02T15:04:05.999999999Z07:00"),
	}
	if c.ParentID != nil {
 mirror.ParentID = c.ParentID.String()
	}
	f, err := os.Create(path)
	if err != nil {
 return graphscene.WrapError(graphscene.KindSystemIO, fmt.Sprintf("create %s", path), err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(mirror); err != nil {
 return graphscene.WrapError(graphscene.KindSystemIO, fmt.Sprintf("encode %s", path), err)
	}
	return nil
}

func ClusterLoadTOML(path string) (*Cluster, error) {
	var mirror clusterTOML
	if _, err := toml.DecodeFile(path, &mirror); err != nil {
 return nil, graphscene.WrapError(graphscene.KindSystemIO, fmt.Sprintf("decode %s", path), err)
	}
	c := &Cluster{
 Name: mirror.Name,
 Type: mirror.Type,
 NodeList: mirror.NodeList,
 Style: mirror.Style,
 Visible: mirror.Visible,
 Expanded: mirror.Expanded,
	}
	if id, err := parseUUID(mirror.ID); err == nil {
 c.ID = id
	}
	if mirror.ParentID != "" {
 if pid, err := parseUUID(mirror.ParentID); err == nil {
 c.ParentID = &pid
 }
	}
	if t, err := parseTime(mirror.CreatedAt); err == nil {
 c.CreatedAt = t
	}
	c.syncSetFromList()
	return c, nil
}
