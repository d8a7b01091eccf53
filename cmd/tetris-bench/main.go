package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/plus3/tetrispi/audio"
	"github.com/plus3/tetrispi/menu"
	"github.com/plus3/tetrispi/session"
)

// pieceCounter counts locked pieces through the cues played on lock.
type pieceCounter struct {
	audio.Nop
	pieces int
}

func (p *pieceCounter) PlayEffect(c audio.Cue) {
	switch c {
	case audio.Drop, audio.Clear, audio.Tetris,
		audio.IntenseDrop, audio.IntenseClear, audio.IntenseTetris:
		p.pieces++
	}
}

func main() {
	games := flag.Int("games", 10, "The number of agent games to play.")
	level := flag.Int("level", 0, "The level every game starts at.")
	seed := flag.Uint64("seed", 1, "Seed for the piece order; 0 picks a random one.")
	duration := flag.Duration("duration", 5*time.Minute, "Stop after this long even if games remain.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	log.Println("Starting agent benchmark...")

	counter := &pieceCounter{}
	s := session.New(session.Options{
		Settings:   menu.Settings{Name: session.AIName, StartLevel: *level},
		Inactivity: 1,
		Seed:       *seed,
		Audio:      counter,
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	st := s.State()

	report := &Report{
		RunID:          uuid.New(),
		Games:          *games,
		Level:          *level,
		Seed:           *seed,
		Duration:       *duration,
		GCPauseMetrics: *gcPauseMetrics,
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	log.Printf("Playing %d games from level %d...\n", *games, *level)
	startTime := time.Now()
	game := st.Games
	pieces := counter.pieces

Loop:
	for len(report.Results) < *games {
		select {
		case <-ctx.Done():
			log.Println("Time limit reached.")
			break Loop
		default:
			updateStart := time.Now()
			s.Tick()
			report.UpdateTime.Add(time.Since(updateStart))
			report.TotalUpdates++

			if st.Games != game {
				game = st.Games
				r := st.Last
				report.Results = append(report.Results, GameResult{
					Score:  r.Score,
					Lines:  r.Lines,
					Level:  r.Level,
					Pieces: counter.pieces - pieces,
				})
				pieces = counter.pieces
				log.Printf("Game %d: score %d, lines %d, level %d\n", len(report.Results), r.Score, r.Lines, r.Level)
			}
		}
	}

	report.TotalTime = time.Since(startTime)
	report.Finalize(s.Scheduler().GetStats())
	runtime.ReadMemStats(&report.MemStatsEnd)

	fmt.Println("\n\n--- Agent Benchmark Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}
