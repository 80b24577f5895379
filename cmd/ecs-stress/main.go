package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/plus3/scene/ecs"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type options struct {
	duration       time.Duration
	entities       int
	churn          float64
	seed           int64
	gcPauseMetrics bool
	pretty         bool
}

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCmd builds the ecs-stress command. Scene limits come from the
// ECS_* environment variables.
func NewRootCmd() *cobra.Command {
	opts := options{}
	cmd := &cobra.Command{
		Use:          "ecs-stress",
		Short:        "Run a synthetic workload against a scene and report frame timings",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}

	flags := cmd.Flags()
	flags.DurationVar(&opts.duration, "duration", 10*time.Second, "The total duration the test should run for.")
	flags.IntVar(&opts.entities, "entities", 10000, "The initial number of entities to create.")
	flags.Float64Var(&opts.churn, "churn", 0.01, "Fraction of entities destroyed and replaced every frame.")
	flags.Int64Var(&opts.seed, "seed", 1, "Random seed.")
	flags.BoolVar(&opts.gcPauseMetrics, "gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flags.BoolVar(&opts.pretty, "pretty", false, "Human readable log output.")
	return cmd
}

func newLogger(pretty bool) zerolog.Logger {
	if pretty {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}

func run(ctx context.Context, opts options) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := newLogger(opts.pretty)

	cfg, err := ecs.ConfigFromEnv()
	if err != nil {
		return err
	}
	if opts.entities > cfg.MaxEntities {
		return eris.Errorf("--entities %d exceeds ECS_MAX_ENTITIES %d", opts.entities, cfg.MaxEntities)
	}

	logger.Info().Msg("Starting ECS stress test...")

	// 1. Setup scene and systems
	scene := ecs.NewScene(ecs.WithConfig(cfg), ecs.WithLogger(logger))
	rng := rand.New(rand.NewSource(opts.seed))
	churn := &ChurnSystem{Target: opts.entities, Fraction: opts.churn, Rng: rng}
	if err := registerSystems(scene, churn); err != nil {
		return err
	}

	// 2. Populate the scene with initial entities
	logger.Info().Int("entities", opts.entities).Msg("Populating scene...")
	for i := 0; i < opts.entities; i++ {
		// Spawn an entity with 1 to 5 random components
		if _, err := SpawnRandomEntity(scene, rng, rng.Intn(5)+1); err != nil {
			return eris.Wrap(err, "failed to populate scene")
		}
	}
	logger.Info().Msg("Population complete.")

	if err := scene.InitSystems(); err != nil {
		return err
	}

	// 3. Run the simulation loop
	report := &Report{
		Duration:       opts.duration,
		Entities:       opts.entities,
		Components:     componentCount,
		Systems:        len(scene.Scheduler().SystemNames()),
		Churn:          opts.churn,
		GCPauseMetrics: opts.gcPauseMetrics,
	}

	runtime.ReadMemStats(&report.MemBefore)

	logger.Info().Dur("duration", opts.duration).Msg("Running simulation...")
	ctx, cancel := context.WithTimeout(ctx, opts.duration)
	defer cancel()

	startTime := time.Now()
	var totalUpdates int64
	var commandErrors int64
	lastFrameTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			updateStart := time.Now()
			if err := scene.UpdateSystems(deltaTime.Seconds()); err != nil {
				commandErrors++
			}
			updateDuration := time.Since(updateStart)

			report.FrameTimes.Record(updateDuration)
			totalUpdates++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalUpdates = totalUpdates
	report.CommandErrors = commandErrors
	report.Spawned = churn.Spawned
	report.Killed = churn.Killed
	report.FrameTimes.Summarize()
	report.Scene = scene.CollectStats()
	report.Scheduler = scene.Scheduler().GetStats()
	runtime.ReadMemStats(&report.MemAfter)

	logger.Info().Msg("Simulation finished.")
	scene.LogScene(zerolog.DebugLevel)

	// 4. Generate Report to Console
	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		return eris.Wrap(err, "failed to generate report")
	}
	fmt.Println("--- End of Report ---")

	logger.Info().Msg("Stress test complete.")
	return nil
}
