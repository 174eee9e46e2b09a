package scene

import "github.com/rs/zerolog"

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithActive sets whether the scene is active.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithSwimmers adds initial swimmers to the scene.
//
// Parameters:
//   - swimmers: the swimmers to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithSwimmers(swimmers ...Swimmer) SceneBuilderOption {
	return func(s *scene) {
		for _, sw := range swimmers {
			if _, exists := s.byID[sw.ID()]; exists {
				continue
			}
			s.byID[sw.ID()] = sw
			s.swimmers = append(s.swimmers, sw)
		}
	}
}

// WithUpdateWorkers sets the number of worker goroutines used for the parallel swimmer
// update. Defaults to runtime.NumCPU()-1.
//
// Parameters:
//   - n: the number of update workers (minimum 1)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithUpdateWorkers(n int) SceneBuilderOption {
	return func(s *scene) {
		if n < 1 {
			n = 1
		}
		s.updateWorkers = n
	}
}

// WithLogger sets the logger used by the scene and the swimmers it spawns.
//
// Parameters:
//   - logger: the zerolog logger
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLogger(logger zerolog.Logger) SceneBuilderOption {
	return func(s *scene) {
		s.logger = logger
	}
}

// WithObserver registers a per-frame observer at construction.
//
// Parameters:
//   - fn: the observer
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithObserver(fn Observer) SceneBuilderOption {
	return func(s *scene) {
		if fn != nil {
			s.observers = append(s.observers, fn)
		}
	}
}
