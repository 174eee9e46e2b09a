package capture

import "github.com/rs/zerolog"

// RecorderBuilderOption is a functional option for configuring a Recorder via NewRecorder.
type RecorderBuilderOption func(*recorder)

// WithPath is an option builder that sets the SQLite file to record into.
// An empty path, the default, records into a private in-memory database.
//
// Parameters:
//   - path: the database file path
//
// Returns:
//   - RecorderBuilderOption: a function that applies the path option to a recorder
func WithPath(path string) RecorderBuilderOption {
	return func(r *recorder) {
		r.path = path
	}
}

// WithBatchSize is an option builder that sets how many buffered samples trigger a write.
//
// Parameters:
//   - n: the batch size (minimum 1)
//
// Returns:
//   - RecorderBuilderOption: a function that applies the batch size option to a recorder
func WithBatchSize(n int) RecorderBuilderOption {
	return func(r *recorder) {
		r.batchSize = max(n, 1)
	}
}

// WithEvery is an option builder that samples only every n-th frame.
//
// Parameters:
//   - n: the sampling interval in frames (minimum 1)
//
// Returns:
//   - RecorderBuilderOption: a function that applies the sampling option to a recorder
func WithEvery(n uint64) RecorderBuilderOption {
	return func(r *recorder) {
		r.every = max(n, 1)
	}
}

// WithSessionInfo is an option builder that labels the session row.
//
// Parameters:
//   - preset: the stroke preset name
//   - asset: the asset path or builtin identifier
//
// Returns:
//   - RecorderBuilderOption: a function that applies the session labels to a recorder
func WithSessionInfo(preset, asset string) RecorderBuilderOption {
	return func(r *recorder) {
		r.session.Preset = preset
		r.session.Asset = asset
	}
}

// WithLogger is an option builder that sets the recorder's logger.
//
// Parameters:
//   - logger: the zerolog logger
//
// Returns:
//   - RecorderBuilderOption: a function that applies the logger option to a recorder
func WithLogger(logger zerolog.Logger) RecorderBuilderOption {
	return func(r *recorder) {
		r.logger = logger
	}
}
