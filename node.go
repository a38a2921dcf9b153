package graphscene

import "time"

// SceneId is an opaque 64-bit handle, unique across the process for nodes
// and edges — but the two are disjoint id spaces (a node and an edge may
// share the same numeric value without colliding). Ids are monotonic within
// a session; freed ids are never reused.
type SceneId uint64

// nodeIDCounter and edgeIDCounter are plain counters (no atomic — the Scene
// is mutated only on the main thread), split into two disjoint id spaces:
// nodes and edges.
var (
	nodeIDCounter uint64
	edgeIDCounter uint64
)

func nextNodeID() SceneId {
	nodeIDCounter++
	return SceneId(nodeIDCounter)
}

func nextEdgeID() SceneId {
	edgeIDCounter++
	return SceneId(edgeIDCounter)
}

// NewEdgeID draws the next id from the shared edge id space. EdgeManager
// (package edges) uses this so ids it assigns come from the same counter
// Scene.AddEdge uses, keeping the "two disjoint id spaces" rule a property
// of the whole process rather than of any one type.
func NewEdgeID() SceneId { return nextEdgeID() }

// NodeKind is the tag of the NodeType closed variant.
type NodeKind uint8

const (
	NodeApplication NodeKind = iota
	NodeFile
	NodePerson
	NodeTask
	NodeDevice
	NodeAIAgent
	NodeConcept
	NodeSystem
	NodeURL
	NodeAutomation
	NodeSetting
	NodeConfigGroup
)

func (k NodeKind) String() string {
	switch k {
	case NodeApplication:
 return "Application"
	case NodeFile:
 return "File"
	case NodePerson:
 return "Person"
	case NodeTask:
 return "Task"
	case NodeDevice:
 return "Device"
	case NodeAIAgent:
 return "AIAgent"
	case NodeConcept:
 return "Concept"
	case NodeSystem:
 return "System"
	case NodeURL:
 return "URL"
	case NodeAutomation:
 return "Automation"
	case NodeSetting:
 return "Setting"
	case NodeConfigGroup:
 return "ConfigGroup"
	default:
 return "Unknown"
	}
}

// Payload structs for each NodeKind variant. Only the field matching
// NodeType.Kind is populated; the core treats the rest as opaque payload,
// using Kind only for rendering color defaults and edge-default styling.
type (
	ApplicationData struct {
 PID int
 Name string
 Icon string // optional; empty means no icon
	}
	FileData struct {
 Path string
 FileType string
	}
	PersonData struct {
 Name string
 Contact string
	}
	TaskData struct {
 Title string
 Status string
 Due *time.Time // optional
	}
	DeviceData struct {
 Kind string
 Status string
	}
	AIAgentData struct {
 Name string
 Model string
	}
	ConceptData struct {
 Title string
 Content string
	}
	SystemData struct {
 Component string
 Status string
	}
	URLData struct {
 Href string
 Title string // optional
	}
	AutomationData struct {
 Name string
 Trigger string
	}
	SettingData struct {
 Key string
 Value string
	}
	ConfigGroupData struct {
 Name string
 Kind string
 Items []string
	}
)

// NodeType is the closed tagged-variant describing what kind of entity a
// SceneNode represents. Exactly one of the payload pointers
// matching Kind should be non-nil; the core never inspects payload content
// beyond default color/style lookups.
type NodeType struct {
	Kind NodeKind

	Application *ApplicationData
	File *FileData
	Person *PersonData
	Task *TaskData
	Device *DeviceData
	AIAgent *AIAgentData
	Concept *ConceptData
	System *SystemData
	URL *URLData
	Automation *AutomationData
	Setting *SettingData
	ConfigGroup *ConfigGroupData
}

// DefaultColor returns the rendering default tint for this node's Kind,
// which NewSceneNode assigns as the node's initial Color.
func (t NodeType) DefaultColor() Color {
	switch t.Kind {
	case NodeApplication:
 return Color{R: 0.35, G: 0.55, B: 0.95, A: 1}
	case NodeFile:
 return Color{R: 0.85, G: 0.75, B: 0.35, A: 1}
	case NodePerson:
 return Color{R: 0.95, G: 0.45, B: 0.55, A: 1}
	case NodeTask:
 return Color{R: 0.45, G: 0.85, B: 0.55, A: 1}
	case NodeDevice:
 return Color{R: 0.6, G: 0.6, B: 0.65, A: 1}
	case NodeAIAgent:
 return Color{R: 0.65, G: 0.4, B: 0.9, A: 1}
	case NodeConcept:
 return Color{R: 0.4, G: 0.8, B: 0.85, A: 1}
	case NodeSystem:
 return Color{R: 0.7, G: 0.7, B: 0.3, A: 1}
	case NodeURL:
 return Color{R: 0.3, G: 0.6, B: 0.9, A: 1}
	case NodeAutomation:
 return Color{R: 0.9, G: 0.6, B: 0.3, A: 1}
	case NodeSetting:
 return Color{R: 0.5, G: 0.5, B: 0.5, A: 1}
	case NodeConfigGroup:
 return Color{R: 0.55, G: 0.55, B: 0.75, A: 1}
	default:
 return ColorWhite
	}
}

// Metadata holds descriptive information shared by all node kinds.
type Metadata struct {
	CreatedAt time.Time
	UpdatedAt time.Time
	Description string
	Tags []string
	Properties map[string]string
}

// SceneNode is the authoritative per-node record stored in the Scene.
// Position and velocity are owned by whichever of Physics or Layout last
// wrote them this tick; the Scene itself never mutates them except through
// AddNode/SetNodePosition.
type SceneNode struct {
	ID SceneId
	Position Vec3
	Velocity Vec3
	Radius float64
	Color Color
	NodeType NodeType
	Metadata Metadata
	Visible bool
	Selected bool
}

// NewSceneNode constructs a SceneNode with the documented defaults: radius 1,
// the node type's default color, visible, unselected, and metadata
// timestamps set to now.
func NewSceneNode(nt NodeType) SceneNode {
	now := time.Now()
	return SceneNode{
 Position: Vec3{},
 Velocity: Vec3{},
 Radius: 1,
 Color: nt.DefaultColor(),
 NodeType: nt,
 Metadata: Metadata{
 CreatedAt: now,
 UpdatedAt: now,
 Properties: map[string]string{},
 },
 Visible: true,
	}
}
