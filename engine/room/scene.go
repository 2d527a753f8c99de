package room

import (
	"github.com/Carmen-Shannon/oxy-planner/engine/interaction"
	"github.com/Carmen-Shannon/oxy-planner/engine/notify"
)

// Scene is an in-memory item list that announces additions and removals.
type Scene struct {
	items   []interaction.Item
	loaded  *notify.Signal[interaction.Item]
	removed *notify.Signal[interaction.Item]
}

var (
	_ interaction.Scene       = &Scene{}
	_ interaction.SceneEvents = &Scene{}
)

// NewScene creates an empty scene.
func NewScene() *Scene {
	return &Scene{
		loaded:  notify.NewSignal[interaction.Item]("itemLoaded"),
		removed: notify.NewSignal[interaction.Item]("itemRemoved"),
	}
}

func (s *Scene) Items() []interaction.Item {
	return s.items
}

func (s *Scene) ItemLoaded() *notify.Signal[interaction.Item] {
	return s.loaded
}

func (s *Scene) ItemRemoved() *notify.Signal[interaction.Item] {
	return s.removed
}

// Add appends item and fires ItemLoaded.
func (s *Scene) Add(item interaction.Item) {
	if item == nil {
		return
	}
	s.items = append(s.items, item)
	s.loaded.Fire(item)
}

// Remove deletes item and fires ItemRemoved. Unknown items are ignored.
//
// Returns:
//   - bool: true if the item was part of the scene
func (s *Scene) Remove(item interaction.Item) bool {
	for i, it := range s.items {
		if it == item {
			s.items = append(s.items[:i:i], s.items[i+1:]...)
			s.removed.Fire(item)
			return true
		}
	}
	return false
}
