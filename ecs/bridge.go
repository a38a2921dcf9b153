package ecs

import (
	"sort"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	"github.com/graphscene/core"
	"github.com/graphscene/core/camera"
)

// ActionEvent is published onto a donburi.World whenever the core dispatches
// an Action to a node, so an embedder's own ECS systems can react (e.g. an
// inspector-panel system subscribing to ActionEventType to open an editor).
type ActionEvent struct {
	NodeID graphscene.SceneId
	Action Action
	Result Result
}

// ActionEventType is the donburi event type for dispatched node actions.
var ActionEventType = events.NewEventType[ActionEvent]()

// PickEvent is published whenever a screen-space pick resolves to a node,
// before any Action is dispatched — useful for hover-highlight systems that
// don't want to wait for a click.
type PickEvent struct {
	NodeID graphscene.SceneId
	Hit bool
}

// PickEventType is the donburi event type for resolved picks.
var PickEventType = events.NewEventType[PickEvent]()

// Registry maps SceneIds to the NodeProvider implementing their domain
// behavior. The Scene owns geometry/visibility; Registry owns the
// capability dispatch that an embedder's domain logic needs instead.
type Registry struct {
	world donburi.World
	providers map[graphscene.SceneId]NodeProvider
}

// NewRegistry creates a Registry that publishes onto world.
func NewRegistry(world donburi.World) *Registry {
	return &Registry{world: world, providers: make(map[graphscene.SceneId]NodeProvider)}
}

// Register associates id with a NodeProvider. Passing a nil provider clears
// it, as RemoveNode cascades do.
func (r *Registry) Register(id graphscene.SceneId, p NodeProvider) {
	if p == nil {
 delete(r.providers, id)
 return
	}
	r.providers[id] = p
}

// Unregister removes id's provider, for use when a node is removed from the
// Scene. Nothing in the core calls it; the host that registered the provider
// does.
func (r *Registry) Unregister(id graphscene.SceneId) { delete(r.providers, id) }

// Dispatch invokes action on id's provider and publishes the ActionEvent
// onto the donburi world regardless of outcome, so observers can react to
// failures too.
func (r *Registry) Dispatch(id graphscene.SceneId, action Action) (Result, error) {
	p, ok := r.providers[id]
	if !ok {
 res := Result{OK: false, Message: "no provider registered for node"}
 ActionEventType.Publish(r.world, ActionEvent{NodeID: id, Action: action, Result: res})
 return res, ErrUnsupportedAction(action)
	}
	res, err := p.HandleAction(action)
	ActionEventType.Publish(r.world, ActionEvent{NodeID: id, Action: action, Result: res})
	return res, err
}

// PickCandidate is the geometry a Picker tests a ray against: a node's
// current position and collision radius.
type PickCandidate struct {
	ID graphscene.SceneId
	Position graphscene.Vec3
	Radius float64
}

// Picker resolves a screen-space pointer position to the nearest node under
// the ray: a 3D analytic ray-sphere test built on the camera's ray-casting
// helpers, picking the closest of every node whose collision sphere the ray
// enters.
type Picker struct {
	registry *Registry
}

// NewPicker wraps registry so Pick can publish PickEvents through the same
// donburi world the Registry dispatches actions on.
func NewPicker(registry *Registry) *Picker { return &Picker{registry: registry} }

// Pick casts a ray from the camera through (screenX, screenY) and returns
// the id of the nearest candidate it intersects, or (0, false) if none hit.
func (p *Picker) Pick(cam *camera.Camera, screenX, screenY, screenW, screenH float64, candidates []PickCandidate) (graphscene.SceneId, bool) {
	ray := cam.ScreenToRay(screenX, screenY, screenW, screenH)

	type hit struct {
 id graphscene.SceneId
 t float64
	}
	var hits []hit
	for _, c := range candidates {
 if t, ok := ray.IntersectSphere(c.Position, c.Radius); ok {
 hits = append(hits, hit{id: c.ID, t: t})
 }
	}
	if len(hits) == 0 {
 p.registry.publishMiss()
 return 0, false
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].t < hits[j].t })
	nearest := hits[0].id
	PickEventType.Publish(p.registry.world, PickEvent{NodeID: nearest, Hit: true})
	return nearest, true
}

func (r *Registry) publishMiss() {
	PickEventType.Publish(r.world, PickEvent{Hit: false})
}
