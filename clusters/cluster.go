// Package clusters groups scene nodes into clusters: discovery algorithms,
// a parent/children forest, merge/split, and boundary geometry for the
// rendered outline of each cluster.
package clusters

import (
	"time"

	"github.com/google/uuid"

	"github.com/graphscene/core"
)

// Kind is the Cluster's cluster_type tag.
type Kind uint8

const (
	KindConnected Kind = iota
	KindProximity
	KindSemantic
	KindTemporal
	KindManual
	KindAISuggested
)

func (k Kind) String() string {
	switch k {
	case KindConnected:
 return "Connected"
	case KindProximity:
 return "Proximity"
	case KindSemantic:
 return "Semantic"
	case KindTemporal:
 return "Temporal"
	case KindManual:
 return "Manual"
	case KindAISuggested:
 return "AISuggested"
	default:
 return "Unknown"
	}
}

// Style carries the rendered appearance of a cluster boundary.
type Style struct {
	Color graphscene.Color
	Opacity float64
	BorderWidth float64
}

// DefaultStyle returns the rendering default for a newly discovered cluster.
func DefaultStyle() Style {
	return Style{Color: graphscene.Color{R: 0.5, G: 0.7, B: 1.0, A: 1}, Opacity: 0.15, BorderWidth: 1.5}
}

// Cluster is a managed grouping of nodes. Nodes is kept as a map for O(1)
// membership tests; insertion order is explicitly not preserved.
type Cluster struct {
	ID uuid.UUID `json:"id" yaml:"id" toml:"id"`
	Name string `json:"name" yaml:"name" toml:"name"`
	Type Kind `json:"type" yaml:"type" toml:"type"`
	Nodes map[graphscene.SceneId]struct{} `json:"-" yaml:"-" toml:"-"`
	NodeList []graphscene.SceneId `json:"nodes" yaml:"nodes" toml:"nodes"`
	ParentID *uuid.UUID `json:"parent_id,omitempty" yaml:"parent_id,omitempty" toml:"parent_id,omitempty"`
	Style Style `json:"style" yaml:"style" toml:"style"`
	Visible bool `json:"visible" yaml:"visible" toml:"visible"`
	Expanded bool `json:"expanded" yaml:"expanded" toml:"expanded"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at" toml:"created_at"`
}

// NewCluster creates a Cluster containing nodes, with a fresh UUID and
// the documented defaults (visible, collapsed, default style).
func NewCluster(name string, kind Kind, nodes []graphscene.SceneId) *Cluster {
	set := make(map[graphscene.SceneId]struct{}, len(nodes))
	list := make([]graphscene.SceneId, 0, len(nodes))
	for _, id := range nodes {
 if _, dup := set[id]; dup {
 continue
 }
 set[id] = struct{}{}
 list = append(list, id)
	}
	return &Cluster{
 ID: uuid.New(),
 Name: name,
 Type: kind,
 Nodes: set,
 NodeList: list,
 Style: DefaultStyle(),
 Visible: true,
 CreatedAt: time.Now(),
	}
}

// Contains reports whether id is a member.
func (c *Cluster) Contains(id graphscene.SceneId) bool {
	_, ok := c.Nodes[id]
	return ok
}

// Add inserts id if absent.
func (c *Cluster) Add(id graphscene.SceneId) {
	if _, ok := c.Nodes[id]; ok {
 return
	}
	c.Nodes[id] = struct{}{}
	c.NodeList = append(c.NodeList, id)
}

// Remove deletes id if present, returning whether it was.
func (c *Cluster) Remove(id graphscene.SceneId) bool {
	if _, ok := c.Nodes[id]; !ok {
 return false
	}
	delete(c.Nodes, id)
	for i, n := range c.NodeList {
 if n == id {
 c.NodeList[i] = c.NodeList[len(c.NodeList)-1]
 c.NodeList = c.NodeList[:len(c.NodeList)-1]
 break
 }
	}
	return true
}

// Size returns the member count.
func (c *Cluster) Size() int { return len(c.Nodes) }

// syncSetFromList rebuilds Nodes from NodeList after a direct field mutation
// (e.g. the JSON/YAML/TOML unmarshalers populate NodeList but not Nodes).
func (c *Cluster) syncSetFromList() {
	c.Nodes = make(map[graphscene.SceneId]struct{}, len(c.NodeList))
	for _, id := range c.NodeList {
 c.Nodes[id] = struct{}{}
	}
}
