package scene

import (
	"github.com/Carmen-Shannon/oxy-swim/common"
	"github.com/Carmen-Shannon/oxy-swim/engine/animator"
	"github.com/rs/zerolog"
)

// SwimmerBuilderOption is a functional option for configuring a Swimmer via NewSwimmer.
type SwimmerBuilderOption func(*swimmer)

// WithName sets the swimmer's display name, which is also the root node's name.
//
// Parameters:
//   - name: the display name
//
// Returns:
//   - SwimmerBuilderOption: option function to apply
func WithName(name string) SwimmerBuilderOption {
	return func(s *swimmer) {
		s.name = name
	}
}

// WithPreset selects the stroke preset the swimmer's animator computes.
//
// Parameters:
//   - backendType: the stroke preset
//
// Returns:
//   - SwimmerBuilderOption: option function to apply
func WithPreset(backendType animator.AnimatorBackendType) SwimmerBuilderOption {
	return func(s *swimmer) {
		s.backendType = backendType
	}
}

// WithParameters overrides the preset's stroke constants.
//
// Parameters:
//   - params: the stroke constants
//
// Returns:
//   - SwimmerBuilderOption: option function to apply
func WithParameters(params animator.StrokeParameters) SwimmerBuilderOption {
	return func(s *swimmer) {
		s.params = &params
	}
}

// WithRestPosition sets the root position root motion oscillates around.
//
// Parameters:
//   - p: the rest position
//
// Returns:
//   - SwimmerBuilderOption: option function to apply
func WithRestPosition(p common.Vec3) SwimmerBuilderOption {
	return func(s *swimmer) {
		s.rest = p
	}
}

// WithFaceDown controls whether the root is turned onto its front. Defaults to true.
//
// Parameters:
//   - faceDown: false to keep the asset's authored orientation
//
// Returns:
//   - SwimmerBuilderOption: option function to apply
func WithFaceDown(faceDown bool) SwimmerBuilderOption {
	return func(s *swimmer) {
		s.faceDown = faceDown
	}
}

// WithSwimmerLogger sets the logger used by the swimmer and its animator.
//
// Parameters:
//   - logger: the zerolog logger
//
// Returns:
//   - SwimmerBuilderOption: option function to apply
func WithSwimmerLogger(logger zerolog.Logger) SwimmerBuilderOption {
	return func(s *swimmer) {
		s.logger = logger
	}
}
