package debugui

import "github.com/plus3/tetrispi/ecs"

// Target is the ECS world the panels observe. It is usually not the storage
// the panels themselves live in.
type Target struct {
	Storage   *ecs.Storage
	Scheduler *ecs.Scheduler
}

type PerformanceStatsComponent struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
}

// InspectorComponent shows the exported fields of a live value. Value must
// return a pointer to a struct; numeric, bool and string fields are edited
// in place.
type InspectorComponent struct {
	Title string
	Value func() any
}
