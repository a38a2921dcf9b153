// Package ecs bridges the graph runtime to an embedder's entity system: a
// node-provider interface plus an action dispatch boundary. It forwards
// resolved node picks and host-issued Actions onto a donburi.World via typed
// events, owning no state of its own — the embedder's ECS is the source of
// truth, this package only republishes.
package ecs

import (
	"fmt"

	"github.com/graphscene/core"
)

// Action is the closed set of user-triggered node actions the core
// dispatches to a NodeProvider: Open, Edit, Focus, Select, Toggle, or
// ShowContextMenu.
type Action uint8

const (
	ActionOpen Action = iota
	ActionEdit
	ActionFocus
	ActionSelect
	ActionToggle
	ActionShowContextMenu
)

func (a Action) String() string {
	switch a {
	case ActionOpen:
 return "Open"
	case ActionEdit:
 return "Edit"
	case ActionFocus:
 return "Focus"
	case ActionSelect:
 return "Select"
	case ActionToggle:
 return "Toggle"
	case ActionShowContextMenu:
 return "ShowContextMenu"
	default:
 return "Unknown"
	}
}

// VisualData is the NodeProvider's rendering-relevant projection of its
// underlying domain state.
type VisualData struct {
	Position graphscene.Vec3
	Radius float64
	Color graphscene.Color
	Icon string
	Badge string
	Visible bool
	Selected bool
}

// Metadata is the NodeProvider's descriptive, non-visual projection.
type Metadata struct {
	CreatedAt, UpdatedAt string // ISO-8601, kept as strings at this boundary
	Description string
	Tags []string
	Properties map[string]string
}

// NodeProvider is the capability interface an embedder's domain type (an
// Application node backed by a process handle, a File node backed by a
// filesystem watcher, …) implements to plug into the core without the
// core's closed NodeType taxonomy needing to know about it.
type NodeProvider interface {
	NodeType() graphscene.NodeType
	Metadata() Metadata
	VisualData() VisualData
	ToSceneNode() graphscene.SceneNode
	HandleAction(Action) (Result, error)
}

// Result is the outcome of a dispatched Action, surfaced back to the host
// UI so failures become user-visible rather than silently swallowed.
type Result struct {
	OK bool
	Message string
}

// ErrUnsupportedAction is returned by a NodeProvider that does not
// implement a given Action (e.g. a read-only node rejecting Edit).
func ErrUnsupportedAction(a Action) error {
	return fmt.Errorf("action %s not supported by this node provider", a)
}
