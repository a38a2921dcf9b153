package ecs

import (
	"math"
	"testing"

	"github.com/yohamta/donburi"

	"github.com/graphscene/core"
	"github.com/graphscene/core/camera"
)

type fakeProvider struct {
	nt graphscene.NodeType
	last Action
}

func (f *fakeProvider) NodeType() graphscene.NodeType { return f.nt }
func (f *fakeProvider) Metadata() Metadata { return Metadata{} }
func (f *fakeProvider) VisualData() VisualData { return VisualData{Visible: true} }
func (f *fakeProvider) ToSceneNode() graphscene.SceneNode {
	return graphscene.SceneNode{NodeType: f.nt}
}
func (f *fakeProvider) HandleAction(a Action) (Result, error) {
	f.last = a
	if a == ActionEdit {
 return Result{}, ErrUnsupportedAction(a)
	}
	return Result{OK: true}, nil
}

func TestRegistryDispatchRoutesToProviderAndPublishesEvent(t *testing.T) {
	world := donburi.NewWorld()
	reg := NewRegistry(world)
	p := &fakeProvider{}
	reg.Register(1, p)

	var received []ActionEvent
	ActionEventType.Subscribe(world, func(w donburi.World, e ActionEvent) {
 received = append(received, e)
	})

	res, err := reg.Dispatch(1, ActionSelect)
	ActionEventType.ProcessEvents(world)

	if err != nil {
 t.Fatalf("unexpected error: %v", err)
	}
	if !res.OK {
 t.Error("expected OK result")
	}
	if p.last != ActionSelect {
 t.Errorf("provider received %v, want ActionSelect", p.last)
	}
	if len(received) != 1 || received[0].NodeID != 1 {
 t.Errorf("expected one published ActionEvent for node 1, got %+v", received)
	}
}

func TestRegistryDispatchUnknownNodeReturnsError(t *testing.T) {
	world := donburi.NewWorld()
	reg := NewRegistry(world)

	_, err := reg.Dispatch(99, ActionOpen)
	if err == nil {
 t.Fatal("expected error dispatching to an unregistered node")
	}
}

func TestRegistryDispatchPropagatesProviderError(t *testing.T) {
	world := donburi.NewWorld()
	reg := NewRegistry(world)
	reg.Register(1, &fakeProvider{})

	_, err := reg.Dispatch(1, ActionEdit)
	if err == nil {
 t.Fatal("expected the provider's unsupported-action error to propagate")
	}
}

func TestRegistryUnregisterRemovesProvider(t *testing.T) {
	world := donburi.NewWorld()
	reg := NewRegistry(world)
	reg.Register(1, &fakeProvider{})
	reg.Unregister(1)

	_, err := reg.Dispatch(1, ActionOpen)
	if err == nil {
 t.Fatal("expected dispatch to an unregistered node to fail")
	}
}

func TestPickerResolvesNearestHitAlongRay(t *testing.T) {
	world := donburi.NewWorld()
	reg := NewRegistry(world)
	picker := NewPicker(reg)

	cam := camera.New(math.Pi/3, 800.0/600.0, 0.1, 1000)
	cam.Position = graphscene.Vec3{Z: 10}
	cam.LookAt(graphscene.Vec3{})

	candidates := []PickCandidate{
 {ID: 1, Position: graphscene.Vec3{Z: 5}, Radius: 1}, // nearer
 {ID: 2, Position: graphscene.Vec3{Z: -5}, Radius: 1}, // farther, same ray
	}

	id, hit := picker.Pick(cam, 400, 300, 800, 600, candidates)
	if !hit {
 t.Fatal("expected a hit")
	}
	if id != 1 {
 t.Errorf("expected nearest candidate (id 1), got %v", id)
	}
}

func TestPickerMissPublishesNoHitEvent(t *testing.T) {
	world := donburi.NewWorld()
	reg := NewRegistry(world)
	picker := NewPicker(reg)

	var received []PickEvent
	PickEventType.Subscribe(world, func(w donburi.World, e PickEvent) {
 received = append(received, e)
	})

	cam := camera.New(math.Pi/3, 800.0/600.0, 0.1, 1000)
	_, hit := picker.Pick(cam, 400, 300, 800, 600, nil)
	PickEventType.ProcessEvents(world)

	if hit {
 t.Error("expected no hit with empty candidate list")
	}
	if len(received) != 1 || received[0].Hit {
 t.Errorf("expected one miss event, got %+v", received)
	}
}
