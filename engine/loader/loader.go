package loader

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-swim/engine/model"
	"github.com/rs/zerolog"
)

// LoaderBackendType identifies the model file format backend used for stream loads.
type LoaderBackendType int

const (
	// BackendTypeGLTF selects the glTF/GLB loader backend.
	BackendTypeGLTF LoaderBackendType = iota
)

// Result is the outcome of an asynchronous load.
// Exactly one of Model and Err is set.
type Result struct {
	// Path is the path that was requested.
	Path string

	// Model is the loaded model on success.
	Model model.Model

	// Err is the failure reason.
	Err error
}

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	logger zerolog.Logger

	modelCache map[string]model.Model

	backend  loaderBackend
	builtins loaderBackend
}

// Loader defines the public-facing interface for loading and caching character assets.
// It abstracts the file format (glTF, GLB, builtin rigs) behind a generic backend and
// manages a cache of previously loaded models.
type Loader interface {
	// Load imports a model and caches the result.
	// If the model is already cached (by path), the cached version is returned.
	// Paths starting with "builtin:" are served by the builtin rig backend; .gltf and .glb
	// files by the glTF backend.
	//
	// Parameters:
	//   - path: the file path or builtin identifier
	//
	// Returns:
	//   - model.Model: the loaded and cached model
	//   - error: error if loading fails
	Load(path string) (model.Model, error)

	// LoadReader imports a model from a reader stream and caches it by the given name.
	// Both glTF JSON and GLB streams are accepted.
	//
	// Parameters:
	//   - name: the cache key for the loaded model
	//   - r: the reader providing model data
	//
	// Returns:
	//   - model.Model: the loaded model
	//   - error: error if loading fails
	LoadReader(name string, r io.Reader) (model.Model, error)

	// LoadAsync runs Load on its own goroutine.
	// The returned channel receives exactly one Result and is then closed. If ctx is done
	// before the load finishes, the Result carries the context error instead of the model.
	//
	// Parameters:
	//   - ctx: context bounding the wait
	//   - path: the file path or builtin identifier
	//
	// Returns:
	//   - <-chan Result: a channel delivering the single load result
	LoadAsync(ctx context.Context, path string) <-chan Result

	// Get retrieves a cached model by name. Returns nil if not found.
	//
	// Parameters:
	//   - name: the cache key to look up
	//
	// Returns:
	//   - model.Model: the cached model or nil
	Get(name string) model.Model

	// Models returns a copy of the model cache.
	//
	// Returns:
	//   - map[string]model.Model: all cached models keyed by name
	Models() map[string]model.Model
}

var _ Loader = &loader{}

// NewLoader creates a new Loader instance with the specified backend type and options applied.
//
// Parameters:
//   - backendType: the type of loader backend to use for files and streams (e.g., BackendTypeGLTF)
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new instance of Loader configured with the provided backend and options
func NewLoader(backendType LoaderBackendType, options ...LoaderBuilderOption) Loader {
	l := &loader{
		mu:         sync.RWMutex{},
		logger:     zerolog.Nop(),
		modelCache: make(map[string]model.Model),
		builtins:   newBuiltinLoaderBackend(),
	}

	switch backendType {
	case BackendTypeGLTF:
		l.backend = newGLTFLoaderBackend()
	}

	for _, option := range options {
		option(l)
	}
	return l
}

func (l *loader) Load(path string) (model.Model, error) {
	if cached := l.Get(path); cached != nil {
		return cached, nil
	}

	backend, err := l.resolveBackend(path)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	imported, err := backend.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	m := l.store(path, imported)
	l.logger.Debug().
		Str("path", path).
		Int("nodes", len(imported.Nodes)).
		Int("skins", len(imported.Skeletons)).
		Dur("took", time.Since(start)).
		Msg("model loaded")

	return m, nil
}

func (l *loader) LoadReader(name string, r io.Reader) (model.Model, error) {
	if cached := l.Get(name); cached != nil {
		return cached, nil
	}
	if l.backend == nil {
		return nil, fmt.Errorf("no stream backend configured")
	}

	imported, err := l.backend.LoadReader(name, r)
	if err != nil {
		return nil, fmt.Errorf("failed to load from reader %q: %w", name, err)
	}

	return l.store(name, imported), nil
}

func (l *loader) LoadAsync(ctx context.Context, path string) <-chan Result {
	out := make(chan Result, 1)

	go func() {
		defer close(out)

		done := make(chan Result, 1)
		go func() {
			m, err := l.Load(path)
			done <- Result{Path: path, Model: m, Err: err}
		}()

		select {
		case res := <-done:
			if res.Err != nil {
				l.logger.Warn().Err(res.Err).Str("path", path).Msg("async load failed")
			}
			out <- res
		case <-ctx.Done():
			out <- Result{Path: path, Err: ctx.Err()}
		}
	}()

	return out
}

func (l *loader) Get(name string) model.Model {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.modelCache[name]
}

func (l *loader) Models() map[string]model.Model {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make(map[string]model.Model, len(l.modelCache))
	for k, v := range l.modelCache {
		result[k] = v
	}
	return result
}

// store wraps an ImportedModel in a Model and caches it under key.
// When two loads of the same key race, the first one stored wins so every caller shares one Model.
func (l *loader) store(key string, imported *model.ImportedModel) model.Model {
	m := model.NewModel(model.WithImported(imported))

	l.mu.Lock()
	defer l.mu.Unlock()
	if existing, ok := l.modelCache[key]; ok {
		return existing
	}
	l.modelCache[key] = m
	return m
}

// resolveBackend selects an appropriate loader backend based on the builtin prefix or file extension.
func (l *loader) resolveBackend(path string) (loaderBackend, error) {
	if strings.HasPrefix(path, BuiltinPrefix) {
		return l.builtins, nil
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".gltf", ".glb":
		if l.backend == nil {
			return nil, fmt.Errorf("no backend configured for %s", ext)
		}
		return l.backend, nil
	default:
		return nil, fmt.Errorf("unsupported model format: %q", ext)
	}
}
