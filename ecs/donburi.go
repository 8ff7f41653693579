package ecs

import (
	"github.com/phanxgames/lumen"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// PositionData is the grid cell an entity occupies.
type PositionData struct {
	X, Y int
}

// SourceData attaches a sense source to an entity. The system keeps the
// source's position in lockstep with the entity's PositionData; everything
// else on the source (intensity, radius, Enabled) stays under the caller's
// control.
type SourceData struct {
	Source *lumen.SenseSource
}

// Position is the Donburi component type for PositionData.
var Position = donburi.NewComponentType[PositionData]()

// Source is the Donburi component type for SourceData.
var Source = donburi.NewComponentType[SourceData]()

// VisibilityEvent describes the cell changes of one SenseMap
// recalculation.
type VisibilityEvent struct {
	NewlySeen   []lumen.Position
	NewlyUnseen []lumen.Position
}

// VisibilityEventType is the Donburi event type for visibility changes.
// Events are queued; call events.ProcessAllEvents (or ProcessEvents on the
// type) to deliver them.
var VisibilityEventType = events.NewEventType[VisibilityEvent]()

// SenseSystem keeps a SenseMap in sync with a Donburi world. Each Update
// it registers sources for entities that gained the components, drops
// sources whose entities are gone, copies entity positions into their
// sources, recalculates, and publishes a VisibilityEvent when any cell
// changed.
type SenseSystem struct {
	senseMap *lumen.SenseMap
	query    *donburi.Query
	tracked  map[*lumen.SenseSource]bool
}

// NewSenseSystem creates a system feeding the given map.
func NewSenseSystem(m *lumen.SenseMap) *SenseSystem {
	if m == nil {
		panic("lumen: NewSenseSystem requires a sense map")
	}
	return &SenseSystem{
		senseMap: m,
		query:    donburi.NewQuery(filter.Contains(Position, Source)),
		tracked:  map[*lumen.SenseSource]bool{},
	}
}

// Map returns the SenseMap the system feeds.
func (s *SenseSystem) Map() *lumen.SenseMap { return s.senseMap }

// Update syncs the world into the map and recalculates it.
func (s *SenseSystem) Update(w donburi.World) {
	// Mark-and-sweep over tracked sources so deleted entities drop out.
	for src := range s.tracked {
		s.tracked[src] = false
	}
	s.query.Each(w, func(entry *donburi.Entry) {
		src := Source.Get(entry).Source
		if src == nil {
			return
		}
		pos := Position.Get(entry)
		src.Position = lumen.Position{X: pos.X, Y: pos.Y}
		if _, ok := s.tracked[src]; !ok {
			s.senseMap.AddSource(src)
		}
		s.tracked[src] = true
	})
	for src, live := range s.tracked {
		if !live {
			s.senseMap.RemoveSource(src)
			delete(s.tracked, src)
		}
	}

	s.senseMap.Calculate()

	var ev VisibilityEvent
	for p := range s.senseMap.NewlySeen() {
		ev.NewlySeen = append(ev.NewlySeen, p)
	}
	for p := range s.senseMap.NewlyUnseen() {
		ev.NewlyUnseen = append(ev.NewlyUnseen, p)
	}
	if len(ev.NewlySeen) > 0 || len(ev.NewlyUnseen) > 0 {
		VisibilityEventType.Publish(w, ev)
	}
}
