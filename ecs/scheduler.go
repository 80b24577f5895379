package ecs

import (
	"context"
	"path/filepath"
	"reflect"
	"runtime"
	"time"

	"github.com/rotisserie/eris"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
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

// timing accumulates the run durations of one system.
type timing struct {
	runs  int64
	total time.Duration
	last  time.Duration
	min   time.Duration
	max   time.Duration
}

func (t *timing) record(d time.Duration) {
	if t.runs == 0 || d < t.min {
		t.min = d
	}
	t.max = max(t.max, d)
	t.runs++
	t.last = d
	t.total += d
}

func (t *timing) snapshot(name string) SystemStats {
	out := SystemStats{
		Name:           name,
		ExecutionCount: t.runs,
		MinDuration:    t.min,
		MaxDuration:    t.max,
		LastDuration:   t.last,
		TotalDuration:  t.total,
	}
	if t.runs > 0 {
		out.AvgDuration = t.total / time.Duration(t.runs)
	}
	return out
}

type scheduledSystem struct {
	System
	name   string
	timing timing
}

// Scheduler runs the systems of a scene in registration order. Every scene owns
// one; use Scene.AddSystem, Scene.InitSystems and Scene.UpdateSystems to drive it.
type Scheduler struct {
	scene   *Scene
	systems []*scheduledSystem
	started bool
}

func newScheduler(scene *Scene) *Scheduler {
	return &Scheduler{scene: scene}
}

// sceneBinder is implemented by Query and Singleton fields of systems.
type sceneBinder interface {
	Init(scene *Scene)
}

// Register adds a system to the scheduler and binds its Query and Singleton fields.
// Systems can only be added before Start.
func (s *Scheduler) Register(system System) error {
	name := systemName(system)
	if s.started {
		err := eris.Wrapf(ErrSchedulerStarted, "cannot add system %s", name)
		s.scene.logger.Warn().Err(err).Str("system", name).Msg("ignoring system added after start")
		return err
	}

	s.bindFields(system)
	s.systems = append(s.systems, &scheduledSystem{System: system, name: name})

	s.scene.logger.Debug().Str("system", name).Int("order", len(s.systems)-1).Msg("system registered")
	return nil
}

func (s *Scheduler) bindFields(system System) {
	systemValue := reflect.ValueOf(system)
	if systemValue.Kind() == reflect.Ptr {
		systemValue = systemValue.Elem()
	}

	if systemValue.Kind() != reflect.Struct {
		return
	}

	for i := 0; i < systemValue.NumField(); i++ {
		field := systemValue.Field(i)
		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}

		if binder, ok := field.Addr().Interface().(sceneBinder); ok {
			binder.Init(s.scene)
		}
	}
}

func systemName(system System) string {
	if fn, ok := system.(SystemFunc); ok {
		return filepath.Base(runtime.FuncForPC(reflect.ValueOf(fn).Pointer()).Name())
	}

	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}
	return systemType.Name()
}

// Start calls OnStart on every system in registration order. A second call is
// reported and ignored.
func (s *Scheduler) Start() error {
	if s.started {
		err := eris.Wrap(ErrSchedulerStarted, "cannot start systems twice")
		s.scene.logger.Warn().Err(err).Msg("ignoring repeated system start")
		return err
	}

	s.started = true
	for _, entry := range s.systems {
		s.runGuarded(entry, func() { entry.OnStart(s.scene) })
	}
	s.scene.logger.Debug().Int("systems", len(s.systems)).Msg("systems started")
	return nil
}

// Once executes all registered systems once with the given delta time, then
// flushes the scene's command buffer. Calling it before Start is reported and ignored.
func (s *Scheduler) Once(dt float64) error {
	if !s.started {
		err := eris.Wrap(ErrSchedulerNotStarted, "cannot update systems")
		s.scene.logger.Warn().Err(err).Msg("ignoring system update before start")
		return err
	}

	for _, entry := range s.systems {
		start := time.Now()
		s.runGuarded(entry, func() { entry.OnUpdate(s.scene, dt) })
		entry.timing.record(time.Since(start))
	}

	if err := s.scene.commands.Flush(s.scene); err != nil {
		s.scene.logger.Warn().Err(err).Msg("deferred commands failed")
		return eris.Wrap(err, "failed to flush deferred commands")
	}
	return nil
}

// runGuarded logs which system was running if fn panics, then re-panics.
func (s *Scheduler) runGuarded(entry *scheduledSystem, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			s.scene.logger.Error().
				Str("system", entry.name).
				Interface("panic", r).
				Msg("system panicked")
			panic(r)
		}
	}()
	fn()
}

// Run starts the systems if needed and executes them repeatedly at the given
// interval until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	if !s.started {
		_ = s.Start()
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			_ = s.Once(dt)
		}
	}
}

// Started reports whether Start has run.
func (s *Scheduler) Started() bool {
	return s.started
}

// SystemNames returns the names of the registered systems in execution order.
func (s *Scheduler) SystemNames() []string {
	names := make([]string, len(s.systems))
	for i, entry := range s.systems {
		names[i] = entry.name
	}
	return names
}

// GetStats returns statistics about system execution. A system that never ran
// reports zero durations.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Systems:     make([]SystemStats, len(s.systems)),
	}
	for i, entry := range s.systems {
		stats.Systems[i] = entry.timing.snapshot(entry.name)
		stats.TotalExecutions += entry.timing.runs
	}
	return stats
}

// Scheduler returns the scene's system scheduler.
func (s *Scene) Scheduler() *Scheduler {
	return s.scheduler
}

// AddSystem appends a system to the update order. It must be called before InitSystems.
func (s *Scene) AddSystem(system System) error {
	return s.scheduler.Register(system)
}

// InitSystems calls OnStart on every system, once.
func (s *Scene) InitSystems() error {
	return s.scheduler.Start()
}

// UpdateSystems calls OnUpdate on every system in registration order, then
// flushes deferred commands.
func (s *Scene) UpdateSystems(dt float64) error {
	return s.scheduler.Once(dt)
}
