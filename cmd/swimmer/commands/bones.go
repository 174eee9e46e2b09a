package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/Carmen-Shannon/oxy-swim/common"
	"github.com/Carmen-Shannon/oxy-swim/engine/loader"
	"github.com/Carmen-Shannon/oxy-swim/engine/rig"
	"github.com/Carmen-Shannon/oxy-swim/internal/printer"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// boneReport is the structured output of the bones command.
type boneReport struct {
	Asset    string             `json:"asset" yaml:"asset"`
	Mesh     string             `json:"mesh" yaml:"mesh"`
	Resolved int                `json:"resolved" yaml:"resolved"`
	Joints   []rig.Availability `json:"joints" yaml:"joints"`
	Ignored  []string           `json:"ignored,omitempty" yaml:"ignored,omitempty"`
}

func newBonesCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "bones [asset]",
		Short: "Show which joints a character's skeleton provides",
		Long: `Load a character, bind its bones to the stroke joints and report which
joints were found. Bone names are matched case-insensitively after
stripping a Mixamo prefix. Missing joints are simply not animated.`,
		Example: `  swimmer bones
  swimmer bones ./character.glb --format yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var arg string
			if len(args) == 1 {
				arg = args[0]
			}
			asset := common.Coalesce(arg, a.cfg.Asset)
			return showBones(cmd.OutOrStdout(), a.logger, asset, format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "o", "table", "output format: table, yaml or json")
	return cmd
}

func showBones(out io.Writer, logger zerolog.Logger, asset, format string) error {
	report, err := inspectBones(logger, asset)
	if err != nil {
		if errors.Is(err, rig.ErrNoSkinnedMesh) {
			return printer.Error("No skeleton", fmt.Sprintf("%s has no skinned mesh, nothing can be animated.", asset), []string{
				"export the character with its armature and skin",
			})
		}
		return printer.Error("Cannot load character", err.Error(), []string{
			"check the path and that the file is .gltf or .glb",
			"use builtin:mixamo to try the builtin rig",
		})
	}

	if format != "table" {
		return write(out, format, report)
	}

	printer.Heading(out, fmt.Sprintf("%s (%s)", report.Asset, report.Mesh))
	rows := make([]printer.Row, 0, len(report.Joints))
	for _, j := range report.Joints {
		row := printer.Row{Label: j.Key, Value: "missing", Detail: j.Bone}
		if j.Resolved {
			row.Value = "ok"
			row.OK = true
		}
		rows = append(rows, row)
	}
	if err := printer.Table(out, [3]string{"JOINT", "STATUS", "BONE"}, rows); err != nil {
		return err
	}

	if missing := int(rig.JointCount) - report.Resolved; missing > 0 {
		printer.Warning(out, "%d of %d joints missing, they will not be animated\n", missing, rig.JointCount)
	} else {
		printer.Success(out, "all %d joints resolved\n", rig.JointCount)
	}
	if len(report.Ignored) > 0 {
		printer.Info(out, "%d bones ignored\n", len(report.Ignored))
	}
	return nil
}

// inspectBones loads and resolves asset into a fresh registry.
func inspectBones(logger zerolog.Logger, asset string) (*boneReport, error) {
	ld := loader.NewLoader(loader.BackendTypeGLTF, loader.WithLogger(logger))
	m, err := ld.Load(asset)
	if err != nil {
		return nil, err
	}
	inst, err := m.Instantiate()
	if err != nil {
		return nil, err
	}

	reg := rig.NewRegistry()
	res, err := rig.NewResolver(rig.WithLogger(logger)).Resolve(inst, reg)
	if err != nil {
		return nil, err
	}

	return &boneReport{
		Asset:    asset,
		Mesh:     res.Mesh.Name,
		Resolved: res.Resolved,
		Joints:   rig.Report(reg),
		Ignored:  res.Ignored,
	}, nil
}
