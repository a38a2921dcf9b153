package graphscene

// EdgeKind is the tag of the closed EdgeType variant.
type EdgeKind uint8

const (
	EdgeContains EdgeKind = iota
	EdgeDependsOn
	EdgeCommunicatesWith
	EdgeCreatedBy
	EdgeRelatedTo
	EdgeTemporal
	EdgeTaggedAs
	EdgeWorksOn
)

func (k EdgeKind) String() string {
	switch k {
	case EdgeContains:
 return "Contains"
	case EdgeDependsOn:
 return "DependsOn"
	case EdgeCommunicatesWith:
 return "CommunicatesWith"
	case EdgeCreatedBy:
 return "CreatedBy"
	case EdgeRelatedTo:
 return "RelatedTo"
	case EdgeTemporal:
 return "Temporal"
	case EdgeTaggedAs:
 return "TaggedAs"
	case EdgeWorksOn:
 return "WorksOn"
	default:
 return "Unknown"
	}
}

// EdgeType is the closed tagged-variant describing the relationship a
// SceneEdge represents.
type EdgeType struct {
	Kind EdgeKind

	// RelatedTo payload: similarity drives rendered thickness, 0..1.
	Similarity float64
	// Temporal payload.
	SequenceOrder int
	// TaggedAs payload.
	Tag string
}

// DefaultThickness returns the render pass's default line thickness for
// this edge type for the render passes.
func (t EdgeType) DefaultThickness() float64 {
	switch t.Kind {
	case EdgeContains:
 return 2.0
	case EdgeDependsOn:
 return 1.5
	case EdgeRelatedTo:
 clamped := t.Similarity
 if clamped < 0 {
 clamped = 0
 } else if clamped > 1 {
 clamped = 1
 }
 return 1 + 2*clamped
	default:
 return 1.0
	}
}

// SceneEdge is the rendered form of an edge stored directly in the Scene
//. EdgeManager wraps this in a GraphEdge to add relationship
// metadata; Scene itself only ever stores SceneEdge values.
type SceneEdge struct {
	ID SceneId
	Source SceneId
	Target SceneId
	EdgeType EdgeType
	Weight float64
	Color Color
	Visible bool
	Animated bool
}

// NewSceneEdge constructs a SceneEdge with defaults: weight 1, visible,
// not animated, and the default color white (EdgeManager overrides Color
// from GraphEdge.visual_style when syncing to scene).
func NewSceneEdge(source, target SceneId, et EdgeType) SceneEdge {
	return SceneEdge{
 Source: source,
 Target: target,
 EdgeType: et,
 Weight: 1,
 Color: ColorWhite,
 Visible: true,
	}
}
