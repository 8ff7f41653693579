package ecs

import (
	"testing"

	"github.com/phanxgames/lumen"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func openMap(w, h int) *lumen.SenseMap {
	return lumen.NewSenseMap(lumen.NewResistanceGrid(w, h))
}

func spawnTorch(w donburi.World, x, y int, radius float64) (*donburi.Entry, *lumen.SenseSource) {
	e := w.Entry(w.Create(Position, Source))
	Position.SetValue(e, PositionData{X: x, Y: y})
	src := lumen.NewSenseSource(lumen.SourceShadow, lumen.Position{X: x, Y: y}, radius, lumen.RadiusCircle)
	Source.SetValue(e, SourceData{Source: src})
	return e, src
}

func TestNewSenseSystem(t *testing.T) {
	sys := NewSenseSystem(openMap(10, 10))
	if sys == nil {
		t.Fatal("NewSenseSystem returned nil")
	}
	if sys.Map() == nil {
		t.Fatal("Map returned nil")
	}

	defer func() {
		if recover() == nil {
			t.Error("nil map should panic")
		}
	}()
	NewSenseSystem(nil)
}

func TestSenseSystem_SyncsAndCalculates(t *testing.T) {
	m := openMap(20, 20)
	sys := NewSenseSystem(m)
	world := donburi.NewWorld()

	_, src := spawnTorch(world, 5, 5, 3)
	sys.Update(world)

	if len(m.Sources()) != 1 {
		t.Fatalf("expected 1 registered source, got %d", len(m.Sources()))
	}
	if !m.IsLit(5, 5) {
		t.Error("source cell should be lit")
	}
	if src.Position != (lumen.Position{X: 5, Y: 5}) {
		t.Errorf("source position = %+v", src.Position)
	}
}

func TestSenseSystem_FollowsEntityPosition(t *testing.T) {
	m := openMap(20, 20)
	sys := NewSenseSystem(m)
	world := donburi.NewWorld()

	e, src := spawnTorch(world, 5, 5, 2)
	sys.Update(world)

	Position.SetValue(e, PositionData{X: 14, Y: 14})
	sys.Update(world)

	if src.Position != (lumen.Position{X: 14, Y: 14}) {
		t.Errorf("source position = %+v, want (14,14)", src.Position)
	}
	if m.IsLit(5, 5) {
		t.Error("old cell should be dark after the move")
	}
	if !m.IsLit(14, 14) {
		t.Error("new cell should be lit")
	}
}

func TestSenseSystem_RemovesDeletedEntities(t *testing.T) {
	m := openMap(20, 20)
	sys := NewSenseSystem(m)
	world := donburi.NewWorld()

	e, _ := spawnTorch(world, 5, 5, 2)
	spawnTorch(world, 15, 15, 2)
	sys.Update(world)
	if len(m.Sources()) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(m.Sources()))
	}

	world.Remove(e.Entity())
	sys.Update(world)

	if len(m.Sources()) != 1 {
		t.Fatalf("expected 1 source after removal, got %d", len(m.Sources()))
	}
	if m.IsLit(5, 5) {
		t.Error("removed entity's cell should be dark")
	}
	if !m.IsLit(15, 15) {
		t.Error("surviving entity's cell should stay lit")
	}
}

func TestSenseSystem_PublishesVisibilityEvents(t *testing.T) {
	m := openMap(20, 20)
	sys := NewSenseSystem(m)
	world := donburi.NewWorld()

	var got []VisibilityEvent
	VisibilityEventType.Subscribe(world, func(w donburi.World, e VisibilityEvent) {
		got = append(got, e)
	})

	e, _ := spawnTorch(world, 5, 5, 2)
	sys.Update(world)
	events.ProcessAllEvents(world)

	if len(got) != 1 {
		t.Fatalf("expected 1 event, got %d", len(got))
	}
	if len(got[0].NewlySeen) == 0 || len(got[0].NewlyUnseen) != 0 {
		t.Errorf("first event: %d seen, %d unseen", len(got[0].NewlySeen), len(got[0].NewlyUnseen))
	}

	// A no-op update publishes nothing.
	sys.Update(world)
	events.ProcessAllEvents(world)
	if len(got) != 1 {
		t.Fatalf("steady state should publish no event, got %d total", len(got))
	}

	// Moving the entity publishes both sides of the diff.
	Position.SetValue(e, PositionData{X: 15, Y: 15})
	sys.Update(world)
	events.ProcessAllEvents(world)

	if len(got) != 2 {
		t.Fatalf("expected 2 events after move, got %d", len(got))
	}
	if len(got[1].NewlySeen) == 0 || len(got[1].NewlyUnseen) == 0 {
		t.Errorf("move event: %d seen, %d unseen", len(got[1].NewlySeen), len(got[1].NewlyUnseen))
	}
}

func TestSenseSystem_IgnoresNilSources(t *testing.T) {
	m := openMap(10, 10)
	sys := NewSenseSystem(m)
	world := donburi.NewWorld()

	e := world.Entry(world.Create(Position, Source))
	Position.SetValue(e, PositionData{X: 3, Y: 3})
	Source.SetValue(e, SourceData{})

	sys.Update(world)
	if len(m.Sources()) != 0 {
		t.Errorf("nil source should not register, got %d", len(m.Sources()))
	}
}
