package ebitenui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/tetrispi/ecs"
	"github.com/plus3/tetrispi/ecs/debugui"
	debugui_ebiten "github.com/plus3/tetrispi/ecs/debugui/ebiten"
	"github.com/plus3/tetrispi/session"
)

// debugOverlay is the Dear ImGui layer drawn over the game. It runs its own
// ECS world whose panels observe the session's.
type debugOverlay struct {
	scheduler  *ecs.Scheduler
	backend    *ecs.Singleton[debugui_ebiten.ImguiBackend]
	inputState *ecs.Singleton[debugui.ImguiInputState]
}

func newDebugOverlay(s *session.Session, title string, width, height int) *debugOverlay {
	registry := ecs.NewComponentRegistry()
	debugui.RegisterDebugUIComponents(registry)
	storage := ecs.NewStorage(registry)

	backend := ecs.NewSingleton(storage, debugui_ebiten.NewImguiBackend(title, width, height))
	debugui.SpawnDebugUI(storage,
		debugui.Target{Storage: s.Storage(), Scheduler: s.Scheduler()},
		debugui.NewInspectorComponent("Session", func() any { return s.State() }),
		debugui.NewInspectorComponent("Music", func() any { return &s.State().Music }),
	)
	storage.Spawn(debugui.ImguiItem{Render: func() { renderCandidates(s) }})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&debugui.ImguiSystem{})

	return &debugOverlay{
		scheduler:  scheduler,
		backend:    backend,
		inputState: ecs.NewSingleton[debugui.ImguiInputState](storage),
	}
}

func (d *debugOverlay) begin() { d.backend.Get().BeginFrame() }

func (d *debugOverlay) end() {
	d.scheduler.Once()
	d.backend.Get().EndFrame()
}

func (d *debugOverlay) draw(screen *ebiten.Image) { d.backend.Get().Draw(screen) }
func (d *debugOverlay) layout(w, h int)          { d.backend.Get().Layout(w, h) }

func (d *debugOverlay) wantsKeyboard() bool {
	return d.inputState.Get().WantCaptureKeyboard
}

// renderCandidates lists every placement the search scores for the current
// piece, marking the one the agent is steering towards.
func renderCandidates(s *session.Session) {
	if !imgui.BeginV("Placement Search", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	g := s.State().Grid
	target := g.Target()
	cur := g.Current()
	imgui.Text(fmt.Sprintf("Piece: %v at %.1f, %.1f", cur.Kind, cur.Anchor.X, cur.Anchor.Y))
	if target.Valid {
		imgui.Text(fmt.Sprintf("Target: x=%.1f orientation=%d", target.X, target.Orientation))
	} else {
		imgui.Text("Target: none")
	}
	imgui.Separator()

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("CandidatesTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Rotations")
		imgui.TableSetupColumn("Shift")
		imgui.TableSetupColumn("Column")
		imgui.TableSetupColumn("Score")
		imgui.TableHeadersRow()

		for _, c := range s.Searcher().Candidates(g) {
			if !c.Target.Valid {
				continue
			}
			mark := ""
			if target.Valid && c.Target == target {
				mark = " *"
			}
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprint(c.Rotations))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprint(c.Shift))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%.1f", c.Target.X))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%.3f%s", c.Score, mark))
		}

		imgui.EndTable()
	}

	imgui.End()
}
