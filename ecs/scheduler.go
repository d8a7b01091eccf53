package ecs

import (
	"context"
	"reflect"
	"strings"
	"time"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	Ticks           uint64
	SystemCount     int
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

func (s *systemStatsInternal) record(d time.Duration) {
	s.executionCount++
	s.lastDuration = d
	s.totalDuration += d
	s.minDuration = min(s.minDuration, d)
	s.maxDuration = max(s.maxDuration, d)
}

// Scheduler runs registered systems in order, one pass per tick.
type Scheduler struct {
	storage     *Storage
	frame       *UpdateFrame
	systems     []System
	systemStats []*systemStatsInternal
}

func NewScheduler(storage *Storage) *Scheduler {
	return &Scheduler{
		storage: storage,
		frame: &UpdateFrame{
			Commands: newCommands(),
			Storage:  storage,
		},
	}
}

// Register appends a system and binds its Query and Singleton fields.
func (s *Scheduler) Register(system System) {
	s.bindFields(system)
	s.systems = append(s.systems, system)

	t := reflect.TypeOf(system)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	s.systemStats = append(s.systemStats, &systemStatsInternal{
		name:        t.Name(),
		minDuration: time.Duration(1<<63 - 1),
	})
}

func (s *Scheduler) bindFields(system System) {
	v := reflect.ValueOf(system)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return
	}

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}

		name := field.Type().Name()
		if !strings.HasPrefix(name, "Query[") && !strings.HasPrefix(name, "Singleton[") {
			continue
		}

		init := field.Addr().MethodByName("Init")
		if !init.IsValid() {
			panic("Init method not found on field: " + v.Type().Field(i).Name)
		}
		init.Call([]reflect.Value{reflect.ValueOf(s.storage)})
	}
}

// Tick is the number of completed passes.
func (s *Scheduler) Tick() uint64 {
	return s.frame.Tick
}

// Once runs every system for one tick and flushes the queued commands.
func (s *Scheduler) Once() {
	s.frame.Tick++
	for i, system := range s.systems {
		start := time.Now()
		system.Execute(s.frame)
		s.systemStats[i].record(time.Since(start))
	}
	s.frame.Commands.Flush(s.storage)
}

// Run calls Once every interval until ctx is done.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Once()
		}
	}
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		Ticks:       s.frame.Tick,
		SystemCount: len(s.systems),
		Systems:     make([]SystemStats, len(s.systemStats)),
	}

	for i, internal := range s.systemStats {
		avg := time.Duration(0)
		minDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avg = internal.totalDuration / time.Duration(internal.executionCount)
			minDuration = internal.minDuration
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avg,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		stats.TotalExecutions += internal.executionCount
	}

	return stats
}
