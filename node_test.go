package graphscene

import "testing"

func TestNewSceneNodeDefaults(t *testing.T) {
	n := NewSceneNode(NodeType{Kind: NodeTask, Task: &TaskData{Title: "ship it", Status: "open"}})
	if n.Radius != 1 {
 t.Errorf("Radius = %v, want 1", n.Radius)
	}
	if !n.Visible {
 t.Error("expected new node to be visible")
	}
	if n.Selected {
 t.Error("expected new node to be unselected")
	}
	if n.Metadata.CreatedAt.IsZero() {
 t.Error("expected CreatedAt to be set")
	}
	if n.Color != (NodeType{Kind: NodeTask}).DefaultColor() {
 t.Errorf("Color = %+v, want Task default color", n.Color)
	}
}

func TestNodeKindStringCoversAllVariants(t *testing.T) {
	for k := NodeApplication; k <= NodeConfigGroup; k++ {
 if k.String() == "Unknown" {
 t.Errorf("NodeKind(%d).String() = Unknown", k)
 }
	}
}

func TestEdgeKindStringCoversAllVariants(t *testing.T) {
	for k := EdgeContains; k <= EdgeWorksOn; k++ {
 if k.String() == "Unknown" {
 t.Errorf("EdgeKind(%d).String() = Unknown", k)
 }
	}
}

func TestEdgeTypeDefaultThickness(t *testing.T) {
	cases := []struct {
 et EdgeType
 want float64
	}{
 {EdgeType{Kind: EdgeContains}, 2.0},
 {EdgeType{Kind: EdgeDependsOn}, 1.5},
 {EdgeType{Kind: EdgeRelatedTo, Similarity: 0.5}, 2.0},
 {EdgeType{Kind: EdgeRelatedTo, Similarity: 2.0}, 3.0}, // clamped
 {EdgeType{Kind: EdgeWorksOn}, 1.0},
	}
	for _, c := range cases {
 if got := c.et.DefaultThickness(); got != c.want {
 t.Errorf("DefaultThickness(%+v) = %v, want %v", c.et, got, c.want)
 }
	}
}
