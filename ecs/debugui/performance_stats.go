package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
)

func NewPerformanceStatsComponent(historyFrames int) PerformanceStatsComponent {
	return PerformanceStatsComponent{
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
	}
}

// record stores one frame duration in milliseconds.
func (ps *PerformanceStatsComponent) record(deltaTime float32) {
	ps.frameHistory[ps.frameIndex] = deltaTime * 1000.0
	ps.frameIndex = (ps.frameIndex + 1) % ps.historyFrames
}

// average returns the mean frame time in milliseconds and the matching
// frame rate. Empty history slots count as zero.
func (ps *PerformanceStatsComponent) average() (ms, fps float32) {
	for _, ft := range ps.frameHistory {
		ms += ft
	}
	ms /= float32(ps.historyFrames)
	if ms > 0 {
		fps = 1000.0 / ms
	}
	return ms, fps
}

func (ps *PerformanceStatsComponent) Render(target Target, deltaTime float32) {
	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	ps.record(deltaTime)
	ms, fps := ps.average()
	imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", ms, fps))
	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &ps.frameHistory[0], int32(len(ps.frameHistory)))

	if target.Scheduler != nil {
		sched := target.Scheduler.GetStats()
		imgui.Text(fmt.Sprintf("Ticks: %d", sched.Ticks))

		if imgui.TreeNodeStr("Systems") {
			const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
			if imgui.BeginTableV("SystemStatsTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
				imgui.TableSetupColumn("System")
				imgui.TableSetupColumn("Last")
				imgui.TableSetupColumn("Avg")
				imgui.TableSetupColumn("Max")
				imgui.TableHeadersRow()

				for _, sys := range sched.Systems {
					imgui.TableNextRow()
					imgui.TableNextColumn()
					imgui.Text(sys.Name)
					imgui.TableNextColumn()
					imgui.Text(micros(sys.LastDuration))
					imgui.TableNextColumn()
					imgui.Text(micros(sys.AvgDuration))
					imgui.TableNextColumn()
					imgui.Text(micros(sys.MaxDuration))
				}

				imgui.EndTable()
			}
			imgui.TreePop()
		}
	}

	if target.Storage != nil {
		stats := target.Storage.CollectStats()
		imgui.Text(fmt.Sprintf("Entities: %d", stats.EntityCount))
		imgui.Text(fmt.Sprintf("Components: %d", stats.ComponentCount))

		if imgui.TreeNodeStr("Component Pools") {
			for _, pool := range stats.Pools {
				imgui.BulletText(fmt.Sprintf("%s: %d / %d", pool.Type, pool.Live, pool.Capacity))
			}
			imgui.TreePop()
		}

		if imgui.TreeNodeStr("Singleton Details") {
			for _, singletonType := range stats.SingletonTypes {
				imgui.BulletText(singletonType)
			}
			imgui.TreePop()
		}
	}

	imgui.End()
}

func micros(d time.Duration) string {
	return fmt.Sprintf("%.1f us", float64(d.Nanoseconds())/1000)
}

type FrameTimer struct {
	lastFrameTime time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{
		lastFrameTime: time.Now(),
	}
}

// GetDeltaTime returns the seconds since the previous call.
func (ft *FrameTimer) GetDeltaTime() float32 {
	now := time.Now()
	delta := float32(now.Sub(ft.lastFrameTime).Seconds())
	ft.lastFrameTime = now
	return delta
}
