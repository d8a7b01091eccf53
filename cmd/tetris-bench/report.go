package main

import (
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/google/uuid"
	"github.com/plus3/tetrispi/ecs"
)

type Report struct {
	// Configuration
	RunID    uuid.UUID
	Games    int
	Level    int
	Seed     uint64
	Duration time.Duration

	// Results
	Results        []GameResult
	Score          IntStats
	Lines          IntStats
	Pieces         IntStats
	TotalUpdates   int64
	TotalTime      time.Duration
	UpdateTime     Stats
	Systems        []ecs.SystemStats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type GameResult struct {
	Score  int
	Lines  int
	Level  int
	Pieces int
}

// Stats accumulates durations without keeping the samples; a long run
// ticks millions of times.
type Stats struct {
	Min   time.Duration
	Max   time.Duration
	Avg   time.Duration
	Count int64
	total time.Duration
}

func (s *Stats) Add(d time.Duration) {
	if s.Count == 0 || d < s.Min {
		s.Min = d
	}
	if d > s.Max {
		s.Max = d
	}
	s.Count++
	s.total += d
	s.Avg = s.total / time.Duration(s.Count)
}

type IntStats struct {
	Min int
	Max int
	Avg float64
}

func intStats(values []int) IntStats {
	if len(values) == 0 {
		return IntStats{}
	}
	s := IntStats{Min: values[0], Max: values[0]}
	total := 0
	for _, v := range values {
		s.Min = min(s.Min, v)
		s.Max = max(s.Max, v)
		total += v
	}
	s.Avg = float64(total) / float64(len(values))
	return s
}

func (r *Report) Finalize(stats *ecs.SchedulerStats) {
	var score, lines, pieces []int
	for _, g := range r.Results {
		score = append(score, g.Score)
		lines = append(lines, g.Lines)
		pieces = append(pieces, g.Pieces)
	}
	r.Score = intStats(score)
	r.Lines = intStats(lines)
	r.Pieces = intStats(pieces)
	r.Systems = stats.Systems
}

// TicksPerSecond is the simulated rate, against 60 for real play.
func (r *Report) TicksPerSecond() float64 {
	if r.TotalTime <= 0 {
		return 0
	}
	return float64(r.TotalUpdates) / r.TotalTime.Seconds()
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Agent Benchmark Report

## Run Configuration
- **Run ID:** {{.RunID}}
- **Games Requested:** {{.Games}}
- **Start Level:** {{.Level}}
- **Seed:** {{.Seed}}
- **Time Limit:** {{.Duration}}

## Games
- **Games Finished:** {{len .Results}}
- **Score:** avg {{printf "%.1f" .Score.Avg}}, min {{.Score.Min}}, max {{.Score.Max}}
- **Lines:** avg {{printf "%.1f" .Lines.Avg}}, min {{.Lines.Min}}, max {{.Lines.Max}}
- **Pieces:** avg {{printf "%.1f" .Pieces.Avg}}, min {{.Pieces.Min}}, max {{.Pieces.Max}}
{{range $i, $g := .Results}}  {{inc $i}}. score {{$g.Score}}, lines {{$g.Lines}}, level {{$g.Level}}, pieces {{$g.Pieces}}
{{end}}
## Performance Results
- **Total Ticks:** {{.TotalUpdates}}
- **Total Time:** {{.TotalTime}}
- **Ticks/sec:** {{printf "%.0f" .TicksPerSecond}}
- **Tick Time:**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}

## Systems
{{range .Systems}}- {{.Name}}: avg {{.AvgDuration}}, max {{.MaxDuration}}, total {{.TotalDuration}}
{{end}}
## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
{{end}}`

	fm := template.FuncMap{
		"inc": func(i int) int {
			return i + 1
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
