package main

import (
	"encoding/json"
	"io"
	"os"
	"time"

	ebitengine "github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/scene/ecs"
	"github.com/plus3/scene/ecs/debugui"
	debugui_ebiten "github.com/plus3/scene/ecs/debugui/ebiten"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type options struct {
	strict bool
	pretty bool
	width  float32
	height float32
}

type statsOptions struct {
	frames int
	dt     float64
	asJSON bool
}

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCmd builds the ecs-scene command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:          "ecs-scene",
		Short:        "Load TOML scene files into a scene and inspect them",
		SilenceUsage: true,
	}

	flags := cmd.PersistentFlags()
	flags.BoolVar(&opts.strict, "strict", false, "Fail on scene keys that do not map to component fields.")
	flags.BoolVar(&opts.pretty, "pretty", false, "Human readable log output.")
	flags.Float32Var(&opts.width, "width", 1280, "World width.")
	flags.Float32Var(&opts.height, "height", 720, "World height.")

	cmd.AddCommand(newStatsCmd(opts), newViewCmd(opts))
	return cmd
}

func newStatsCmd(opts *options) *cobra.Command {
	statsOpts := statsOptions{}
	cmd := &cobra.Command{
		Use:   "stats <scene.toml>",
		Short: "Load a scene, step it and print occupancy and system timings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scene, _, err := loadScene(*opts, args[0])
			if err != nil {
				return err
			}
			return runStats(scene, statsOpts, cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&statsOpts.frames, "frames", 60, "Number of updates to run before reporting.")
	flags.Float64Var(&statsOpts.dt, "dt", 1.0/60.0, "Delta time per update in seconds.")
	flags.BoolVar(&statsOpts.asJSON, "json", false, "Print the report as JSON.")
	return cmd
}

func newViewCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "view <scene.toml>",
		Short: "Open a window that runs the scene with the debug tools",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scene, _, err := loadScene(*opts, args[0])
			if err != nil {
				return err
			}
			return runView(scene, *opts)
		},
	}
}

func newLogger(pretty bool) zerolog.Logger {
	if pretty {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}

func loadScene(opts options, path string) (*ecs.Scene, *LifespanSystem, error) {
	logger := newLogger(opts.pretty)

	cfg, err := ecs.ConfigFromEnv()
	if err != nil {
		return nil, nil, err
	}
	scene := ecs.NewScene(ecs.WithConfig(cfg), ecs.WithLogger(logger))

	lifespan, err := registerSystems(scene, Bounds{Width: opts.width, Height: opts.height})
	if err != nil {
		return nil, nil, err
	}

	ids, err := newLoader(opts.strict).LoadFile(scene, path)
	if err != nil {
		return nil, nil, err
	}
	logger.Info().Str("path", path).Int("entities", len(ids)).Msg("scene loaded")
	return scene, lifespan, nil
}

// Report is what the stats command prints.
type Report struct {
	Frames    int                 `json:"frames"`
	Scene     *ecs.SceneStats     `json:"scene"`
	Scheduler *ecs.SchedulerStats `json:"scheduler"`
}

func runStats(scene *ecs.Scene, opts statsOptions, w io.Writer) error {
	if err := scene.InitSystems(); err != nil {
		return err
	}
	for i := 0; i < opts.frames; i++ {
		if err := scene.UpdateSystems(opts.dt); err != nil {
			return eris.Wrapf(err, "frame %d", i)
		}
	}

	report := Report{
		Frames:    opts.frames,
		Scene:     scene.CollectStats(),
		Scheduler: scene.Scheduler().GetStats(),
	}
	if opts.asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(report), "failed to encode report")
	}
	return eris.Wrap(report.Generate(w), "failed to generate report")
}

func runView(scene *ecs.Scene, opts options) error {
	if err := debugui.SpawnDebugUI(scene); err != nil {
		return err
	}
	if err := scene.AddSystem(&debugui.ImguiSystem{}); err != nil {
		return err
	}
	if err := scene.AddSystem(&debugui.ToolsSystem{}); err != nil {
		return err
	}

	backend := debugui_ebiten.NewImguiBackend("ecs-scene", int(opts.width), int(opts.height))
	game, err := debugui_ebiten.NewGame(scene, backend)
	if err != nil {
		return err
	}
	game.DrawScene = func(screen *ebitengine.Image) {
		drawScene(scene, screen)
	}

	ebitengine.SetWindowResizingMode(ebitengine.WindowResizingModeEnabled)
	return eris.Wrap(ebitengine.RunGame(game), "game loop exited")
}
