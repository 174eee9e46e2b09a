package overlay

// SkeletonBuilderOption is a functional option for configuring a Skeleton via NewSkeleton.
type SkeletonBuilderOption func(*skeleton)

// WithName sets the name of the mesh the overlay is bound to.
//
// Parameters:
//   - name: the mesh name
//
// Returns:
//   - SkeletonBuilderOption: a function that sets the overlay name
func WithName(name string) SkeletonBuilderOption {
	return func(s *skeleton) {
		s.name = name
	}
}

// WithOpacity overrides the default line opacity. Values are clamped to [0, 1].
//
// Parameters:
//   - opacity: the line opacity
//
// Returns:
//   - SkeletonBuilderOption: a function that sets the overlay opacity
func WithOpacity(opacity float64) SkeletonBuilderOption {
	return func(s *skeleton) {
		s.opacity = min(max(opacity, 0), 1)
	}
}

// WithDepthTest overrides whether the overlay lines are depth tested.
//
// Parameters:
//   - enabled: true to hide lines behind the mesh
//
// Returns:
//   - SkeletonBuilderOption: a function that sets the depth test flag
func WithDepthTest(enabled bool) SkeletonBuilderOption {
	return func(s *skeleton) {
		s.depthTest = enabled
	}
}

// WithVisible sets the initial visibility.
//
// Parameters:
//   - visible: the initial visibility
//
// Returns:
//   - SkeletonBuilderOption: a function that sets the initial visibility
func WithVisible(visible bool) SkeletonBuilderOption {
	return func(s *skeleton) {
		s.visible = visible
	}
}
