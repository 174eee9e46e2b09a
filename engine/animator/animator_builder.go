package animator

import (
	"github.com/Carmen-Shannon/oxy-swim/engine/scene_node"
	"github.com/rs/zerolog"
)

// AnimatorBuilderOption is a functional option for configuring an Animator during construction.
type AnimatorBuilderOption func(*animator)

// WithParameters is an option builder that replaces the preset's stroke constants.
//
// Parameters:
//   - params: the stroke constants to use
//
// Returns:
//   - AnimatorBuilderOption: a function that applies the parameters option to an animator
func WithParameters(params StrokeParameters) AnimatorBuilderOption {
	return func(a *animator) {
		a.params = params
	}
}

// WithRoot is an option builder that sets the node moved by root motion.
// The node's current position is captured as the rest position the bob oscillates around.
//
// Parameters:
//   - root: the character root node
//
// Returns:
//   - AnimatorBuilderOption: a function that applies the root option to an animator
func WithRoot(root scene_node.Node) AnimatorBuilderOption {
	return func(a *animator) {
		a.root = root
		if root != nil {
			a.rest = root.Position()
		}
	}
}

// WithLogger is an option builder that sets the animator's logger.
//
// Parameters:
//   - logger: the zerolog logger
//
// Returns:
//   - AnimatorBuilderOption: a function that applies the logger option to an animator
func WithLogger(logger zerolog.Logger) AnimatorBuilderOption {
	return func(a *animator) {
		a.logger = logger
	}
}
