package tetris

// EventType tags an Event.
type EventType uint8

const (
	// EventLocked fires when the current piece commits to the board. Rows
	// lists the full rows awaiting removal and Anchor is where it landed.
	EventLocked EventType = iota
	// EventLinesCleared fires when pending rows are removed and scored.
	EventLinesCleared
	EventLevelUp
	EventSpawned
	// EventGameOver is terminal; the grid ignores further updates.
	EventGameOver
)

var eventNames = [...]string{
	EventLocked:       "locked",
	EventLinesCleared: "lines-cleared",
	EventLevelUp:      "level-up",
	EventSpawned:      "spawned",
	EventGameOver:     "game-over",
}

func (t EventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return "unknown"
}

// Event reports a state transition of the grid. Only the fields relevant to
// Type are set.
type Event struct {
	Type        EventType
	Kind        Kind
	Anchor      Vec
	Rows        []int
	Lines       int
	Points      int
	Level       int
	Score       int
	Drought     int
	LastDrought int
}

// Tetris reports whether a clear event removed four rows at once.
func (e Event) Tetris() bool {
	return (e.Type == EventLinesCleared && e.Lines == 4) ||
		(e.Type == EventLocked && len(e.Rows) == 4)
}
