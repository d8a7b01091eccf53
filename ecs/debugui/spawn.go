package debugui

import "github.com/plus3/tetrispi/ecs"

// HistoryFrames is the length of the frame time graph.
const HistoryFrames = 120

// SpawnDebugUI adds the performance panel for target and one panel per
// inspector to storage. It also creates the ImguiInputState singleton.
func SpawnDebugUI(storage *ecs.Storage, target Target, inspectors ...InspectorComponent) {
	ecs.NewSingleton[ImguiInputState](storage)

	perf := NewPerformanceStatsComponent(HistoryFrames)
	timer := NewFrameTimer()
	storage.Spawn(ImguiItem{Render: func() {
		perf.Render(target, timer.GetDeltaTime())
	}})

	for _, in := range inspectors {
		storage.Spawn(ImguiItem{Render: in.Render})
	}
}

func RegisterDebugUIComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
}
