package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/Carmen-Shannon/oxy-swim/common"
	"github.com/Carmen-Shannon/oxy-swim/engine"
	"github.com/Carmen-Shannon/oxy-swim/engine/capture"
	"github.com/Carmen-Shannon/oxy-swim/engine/loader"
	"github.com/Carmen-Shannon/oxy-swim/engine/overlay"
	"github.com/Carmen-Shannon/oxy-swim/engine/rig"
	"github.com/Carmen-Shannon/oxy-swim/engine/scene"
	"github.com/Carmen-Shannon/oxy-swim/internal/config"
	"github.com/Carmen-Shannon/oxy-swim/internal/printer"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// LaneWidth is the distance between the rest positions of neighbouring swimmers.
const LaneWidth = 2.5

func newRunCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Animate swimmers headlessly",
		Long: `Spawn one or more swimmers in lanes, load their character and run the
stroke animation at the configured tick rate.

The run stops after --frames ticks, or on interrupt when --frames is 0.
With --capture every sampled frame is recorded to SQLite; --dump writes
the capture database to a file when the run ends.`,
		Example: `  swimmer run --frames 600 --fixed-step
  swimmer run --preset drift --swimmers 4 --asset ./character.glb
  swimmer run --frames 120 --capture --dump poses.db`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runSwim(ctx, a.cfg, a.logger, cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.StringP("preset", "p", "freestyle", "stroke preset: freestyle or drift")
	flags.IntP("swimmers", "n", 1, "number of swimmers")
	flags.StringP("asset", "a", loader.BuiltinMixamo, "glTF/GLB path or builtin rig")
	flags.Uint64P("frames", "f", 0, "stop after this many ticks, 0 runs until interrupted")
	flags.Float64("tick-rate", 60, "ticks per second")
	flags.Bool("fixed-step", false, "advance the clock by the nominal tick interval")
	flags.Int("workers", 0, "swimmer update workers (default CPUs-1)")
	flags.Bool("profile", false, "log runtime statistics once per second")
	flags.Bool("overlay", false, "create the debug skeleton overlay visible")
	flags.Bool("capture", false, "record poses to SQLite")
	flags.String("capture-path", "", "capture database file, in memory when empty")
	flags.String("dump", "", "write the capture database here when the run ends")
	flags.Uint64("capture-every", 1, "record every Nth frame")

	bindFlag(flags, "preset", "preset")
	bindFlag(flags, "swimmers", "swimmers")
	bindFlag(flags, "asset", "asset")
	bindFlag(flags, "frames", "frames")
	bindFlag(flags, "tick-rate", "tickRate")
	bindFlag(flags, "fixed-step", "fixedStep")
	bindFlag(flags, "workers", "workers")
	bindFlag(flags, "profile", "profiling")
	bindFlag(flags, "overlay", "overlay")
	bindFlag(flags, "capture", "capture.enabled")
	bindFlag(flags, "capture-path", "capture.path")
	bindFlag(flags, "dump", "capture.dumpPath")
	bindFlag(flags, "capture-every", "capture.every")

	return cmd
}

// runSwim builds the pool scene from cfg, runs the engine until it stops and prints a summary.
func runSwim(ctx context.Context, cfg *config.Config, logger zerolog.Logger, out io.Writer) error {
	bt := cfg.BackendType()

	ld := loader.NewLoader(loader.BackendTypeGLTF, loader.WithLogger(logger))
	res := rig.NewResolver(
		rig.WithLogger(logger),
		rig.WithOverlayOptions(overlay.WithVisible(cfg.Overlay)),
	)
	pool := scene.NewScene("pool",
		scene.WithActive(true),
		scene.WithLogger(logger),
		scene.WithUpdateWorkers(cfg.Workers),
	)

	var rec capture.Recorder
	if cfg.Capture.Enabled || cfg.Capture.Path != "" || cfg.Capture.DumpPath != "" {
		var err error
		rec, err = capture.NewRecorder(
			capture.WithPath(cfg.Capture.Path),
			capture.WithBatchSize(cfg.Capture.BatchSize),
			capture.WithEvery(cfg.Capture.Every),
			capture.WithSessionInfo(bt.String(), cfg.Asset),
			capture.WithLogger(logger),
		)
		if err != nil {
			return printer.Error("Cannot open capture database", err.Error(), []string{
				"check --capture-path points to a writable location",
			})
		}
		defer func() {
			if err := rec.Close(); err != nil {
				logger.Warn().Err(err).Msg("closing capture")
			}
		}()
		pool.Observe(rec.Observe)
	}

	loadCtx, cancelLoads := context.WithCancel(ctx)
	defer cancelLoads()
	for i := range cfg.Swimmers {
		pool.Spawn(loadCtx, ld, res, cfg.Asset,
			scene.WithName(fmt.Sprintf("lane-%d", i+1)),
			scene.WithPreset(bt),
			scene.WithRestPosition(common.Vec3{
				X: float64(i) * LaneWidth,
				Y: scene.DefaultRestPosition.Y,
				Z: scene.DefaultRestPosition.Z,
			}),
			scene.WithSwimmerLogger(logger),
		)
	}

	eng := engine.NewEngine(
		engine.WithTickRate(cfg.TickRate),
		engine.WithFixedStep(cfg.FixedStep),
		engine.WithMaxFrames(cfg.Frames),
		engine.WithProfiling(cfg.Profiling),
		engine.WithScene(0, pool),
		engine.WithLogger(logger),
	)

	if err := eng.Run(ctx); err != nil {
		return printer.Error("Animation stopped", err.Error(), nil)
	}

	printer.Success(out, "%d frames, preset %s\n", eng.Frames(), bt)
	if err := printSwimmers(out, pool.Swimmers()); err != nil {
		return err
	}

	if rec == nil {
		return nil
	}
	if err := rec.Flush(); err != nil {
		return printer.Error("Capture flush failed", err.Error(), nil)
	}
	session, err := rec.Session()
	if err != nil {
		return printer.Error("Capture session unreadable", err.Error(), nil)
	}
	printer.Info(out, "captured %d frames of %d swimmers (session %s)\n", session.Frames, session.Swimmers, session.ID)

	if cfg.Capture.DumpPath != "" {
		if err := rec.Dump(cfg.Capture.DumpPath); err != nil {
			return printer.Error("Capture dump failed", err.Error(), []string{
				"check the --dump directory exists and is writable",
			})
		}
		printer.Success(out, "capture written to %s\n", cfg.Capture.DumpPath)
	}
	return nil
}

func printSwimmers(out io.Writer, swimmers []scene.Swimmer) error {
	rows := make([]printer.Row, 0, len(swimmers))
	for _, sw := range swimmers {
		row := printer.Row{Label: sw.Name(), Value: "pending"}
		if r := sw.Resolution(); r != nil {
			row.Value = fmt.Sprintf("%d/%d joints", r.Resolved, rig.JointCount)
			row.OK = true
		}
		pos := sw.Root().Position()
		row.Detail = fmt.Sprintf("t=%.3f root=(%.3f, %.3f, %.3f)", sw.StrokeTime(), pos.X, pos.Y, pos.Z)
		rows = append(rows, row)
	}
	return printer.Table(out, [3]string{"SWIMMER", "SKELETON", "STATE"}, rows)
}
