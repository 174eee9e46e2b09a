package loader

import (
	"io"

	"github.com/Carmen-Shannon/oxy-swim/engine/model"
)

// loaderBackend defines the generic interface for loading models from files or streams.
// Concrete implementations (gltfLoaderBackend, builtinLoaderBackend) handle source-specific details.
type loaderBackend interface {
	// Load performs a full model import from the given path.
	// This extracts the node hierarchy, mesh descriptors and skeletons.
	//
	// Parameters:
	//   - path: the path or builtin identifier to load
	//
	// Returns:
	//   - *model.ImportedModel: the imported model data
	//   - error: error if loading fails
	Load(path string) (*model.ImportedModel, error)

	// LoadReader imports a model from a reader stream.
	//
	// Parameters:
	//   - name: fallback model name when the stream carries none
	//   - r: the reader providing model data
	//
	// Returns:
	//   - *model.ImportedModel: the imported model data
	//   - error: error if loading fails
	LoadReader(name string, r io.Reader) (*model.ImportedModel, error)
}
