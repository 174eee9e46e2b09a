package rig

import (
	"github.com/Carmen-Shannon/oxy-swim/engine/overlay"
	"github.com/rs/zerolog"
)

// ResolverBuilderOption is a functional option for configuring a Resolver via NewResolver.
type ResolverBuilderOption func(*resolver)

// WithLogger sets the logger used to report resolution results.
//
// Parameters:
//   - logger: the zerolog logger
//
// Returns:
//   - ResolverBuilderOption: a function that applies the logger option to a resolver
func WithLogger(logger zerolog.Logger) ResolverBuilderOption {
	return func(r *resolver) {
		r.logger = logger
	}
}

// WithOverlayOptions adds options applied to every debug overlay the resolver creates.
//
// Parameters:
//   - options: overlay builder options, e.g. overlay.WithVisible(true)
//
// Returns:
//   - ResolverBuilderOption: a function that applies the overlay options to a resolver
func WithOverlayOptions(options ...overlay.SkeletonBuilderOption) ResolverBuilderOption {
	return func(r *resolver) {
		r.overlayOptions = append(r.overlayOptions, options...)
	}
}
