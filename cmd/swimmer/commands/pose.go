package commands

import (
	"io"

	"github.com/Carmen-Shannon/oxy-swim/engine/animator"
	"github.com/Carmen-Shannon/oxy-swim/internal/printer"
	"github.com/spf13/cobra"
)

// poseSample is one evaluated pose in the pose command's output.
type poseSample struct {
	T      float64                       `json:"t" yaml:"t"`
	Joints map[string]map[string]float64 `json:"joints" yaml:"joints"`
}

// poseOutput is the structured output of the pose command.
type poseOutput struct {
	Preset  string       `json:"preset" yaml:"preset"`
	Samples []poseSample `json:"samples" yaml:"samples"`
}

func newPoseCmd(a *app) *cobra.Command {
	var (
		times  []float64
		format string
	)

	cmd := &cobra.Command{
		Use:   "pose",
		Short: "Print joint rotations at given stroke times",
		Long: `Evaluate the stroke at one or more stroke times and print the Euler
angles, in radians, written to each joint axis. No character is needed.`,
		Example: `  swimmer pose --time 0
  swimmer pose --preset drift --time 0,0.785 -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printPoses(cmd.OutOrStdout(), a.cfg.BackendType(), times, format)
		},
	}

	flags := cmd.Flags()
	flags.StringP("preset", "p", "freestyle", "stroke preset: freestyle or drift")
	flags.Float64SliceVarP(&times, "time", "t", []float64{0}, "stroke times in seconds")
	flags.StringVarP(&format, "format", "o", "yaml", "output format: yaml or json")
	bindFlag(flags, "preset", "preset")

	return cmd
}

func printPoses(out io.Writer, bt animator.AnimatorBackendType, times []float64, format string) error {
	anim := animator.NewAnimator(bt)
	result := poseOutput{Preset: bt.String(), Samples: make([]poseSample, 0, len(times))}
	for _, t := range times {
		result.Samples = append(result.Samples, poseSample{T: t, Joints: anim.Pose(t).Map()})
	}

	if err := write(out, format, result); err != nil {
		return printer.Error("Cannot print pose", err.Error(), []string{"use --format yaml or --format json"})
	}
	return nil
}
