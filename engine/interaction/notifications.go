package interaction

import "github.com/Carmen-Shannon/oxy-planner/engine/notify"

// Notifications are the signals the controller fires. Subscribers run synchronously on the tick goroutine.
type Notifications struct {
	ItemSelected   *notify.Signal[Item]
	ItemUnselected *notify.Signal[notify.Empty]
	WallClicked    *notify.Signal[WallEdge]
	FloorClicked   *notify.Signal[Room]
	NothingClicked *notify.Signal[notify.Empty]
}

// NewNotifications creates an empty set of signals.
func NewNotifications() *Notifications {
	return &Notifications{
		ItemSelected:   notify.NewSignal[Item]("itemSelected"),
		ItemUnselected: notify.NewSignal[notify.Empty]("itemUnselected"),
		WallClicked:    notify.NewSignal[WallEdge]("wallClicked"),
		FloorClicked:   notify.NewSignal[Room]("floorClicked"),
		NothingClicked: notify.NewSignal[notify.Empty]("nothingClicked"),
	}
}
