package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/Carmen-Shannon/oxy-swim/internal/config"
	"github.com/Carmen-Shannon/oxy-swim/internal/logging"
	"github.com/Carmen-Shannon/oxy-swim/internal/printer"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// configKeyAnnotation marks a flag with the config key it overrides.
const configKeyAnnotation = "swimmer/config-key"

// app carries the state shared by every command of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string

	cfg     *config.Config
	logger  zerolog.Logger
	logFile io.Closer
}

// Execute builds the root command and runs it. This is called by main.main().
func Execute() error {
	return NewRootCmd().Execute()
}

// SetVersionInfo sets the version information for the CLI.
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

// NewRootCmd builds a fresh command tree with its own config state.
func NewRootCmd() *cobra.Command {
	a := &app{v: config.New(), logger: zerolog.Nop()}

	cmd := &cobra.Command{
		Use:   "swimmer",
		Short: "Swimmer - procedural freestyle stroke animator",
		Long: `Swimmer drives the skeleton of a rigged character through a freestyle
swimming stroke computed from closed-form trigonometric curves.

It loads glTF/GLB characters or a builtin rig, binds their bones to the
joints the stroke uses, and animates any number of swimmers headlessly.
Poses can be captured to SQLite for inspection.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
		SilenceErrors:      true,
		SilenceUsage:       true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&a.cfgFile, "config", "c", "", "config file (yaml, json or toml)")
	flags.String("log-level", "info", "log level: trace, debug, info, warn, error")
	flags.String("log-file", "", "also write logs to this file")
	bindFlag(flags, "log-level", "logLevel")
	bindFlag(flags, "log-file", "logFile")

	cmd.AddCommand(
		newRunCmd(a),
		newBonesCmd(a),
		newPoseCmd(a),
		newPresetsCmd(a),
	)
	return cmd
}

// bindFlag annotates a flag so setup binds it to a config key. Binding happens only for the
// command that actually runs, so several commands may share a key.
func bindFlag(flags *pflag.FlagSet, name, key string) {
	_ = flags.SetAnnotation(name, configKeyAnnotation, []string{key})
}

// setup binds the running command's flags, loads the config and builds the logger.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if keys, ok := f.Annotations[configKeyAnnotation]; ok && len(keys) > 0 && bindErr == nil {
			bindErr = a.v.BindPFlag(keys[0], f)
		}
	})
	if bindErr != nil {
		return printer.Ferror(cmd.ErrOrStderr(), "Invalid flags", bindErr.Error(), nil)
	}

	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return printer.Ferror(cmd.ErrOrStderr(), "Invalid configuration", err.Error(), []string{
			"check the file passed with --config",
			"check OXYSWIM_* environment variables",
		})
	}
	a.cfg = cfg

	var file io.Writer
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return printer.Ferror(cmd.ErrOrStderr(), "Cannot open log file", err.Error(), nil)
		}
		a.logFile = f
		file = f
	}
	a.logger = logging.New(cfg.LogLevel, cmd.ErrOrStderr(), file)
	return nil
}

func (a *app) teardown(cmd *cobra.Command, args []string) error {
	if a.logFile != nil {
		return a.logFile.Close()
	}
	return nil
}

// write encodes v as yaml or json.
func write(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}
