package scene

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-swim/engine/loader"
	"github.com/Carmen-Shannon/oxy-swim/engine/rig"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/metric"
)

// Observer is called once per frame after every swimmer has been updated.
// It runs on the goroutine that called Update, so it may read swimmer node trees safely.
type Observer func(frame uint64, swimmers []Swimmer)

// Scene manages a collection of Swimmers and advances them once per frame.
// Scenes can be hot-swapped via the Active flag; the host only updates active scenes.
// Thread-safe for concurrent access, but Update itself must not be called concurrently.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// SetName sets the scene's identifier.
	SetName(name string)

	// Active returns whether this scene is currently active.
	Active() bool

	// SetActive sets whether this scene is active.
	SetActive(active bool)

	// Add registers a swimmer with the scene.
	//
	// Parameters:
	//   - sw: the swimmer to add
	//
	// Returns:
	//   - uuid.UUID: the swimmer's ID
	Add(sw Swimmer) uuid.UUID

	// Spawn creates a swimmer, adds it to the scene and starts loading its asset in the
	// background. The swimmer animates immediately; its joints start moving on the first
	// frame after the asset resolves. Load and resolution failures are logged and leave the
	// swimmer's registry empty.
	//
	// Parameters:
	//   - ctx: context bounding the background load
	//   - ld: the loader providing the asset
	//   - res: the resolver binding the asset's bones
	//   - asset: the asset path or builtin identifier
	//   - options: options for the new swimmer
	//
	// Returns:
	//   - Swimmer: the new swimmer
	Spawn(ctx context.Context, ld loader.Loader, res rig.Resolver, asset string, options ...SwimmerBuilderOption) Swimmer

	// Get retrieves a swimmer by ID. Returns nil if not found.
	//
	// Parameters:
	//   - id: the swimmer ID
	//
	// Returns:
	//   - Swimmer: the swimmer or nil
	Get(id uuid.UUID) Swimmer

	// Remove removes a swimmer by ID.
	//
	// Parameters:
	//   - id: the swimmer ID
	Remove(id uuid.UUID)

	// Swimmers returns the swimmers in insertion order.
	//
	// Returns:
	//   - []Swimmer: a copy of the swimmer list
	Swimmers() []Swimmer

	// Count returns the number of swimmers in the scene.
	//
	// Returns:
	//   - int: the swimmer count
	Count() int

	// Clear removes every swimmer and observer.
	Clear()

	// Observe registers a per-frame observer.
	//
	// Parameters:
	//   - fn: the observer
	Observe(fn Observer)

	// Update advances every swimmer by dt. Swimmers are independent, so they are updated in
	// parallel on the scene's worker pool; Update returns once all of them are done and the
	// observers have run.
	//
	// Parameters:
	//   - dt: elapsed time since the last frame in seconds
	Update(dt float64)

	// Frame returns the number of completed Update calls.
	//
	// Returns:
	//   - uint64: the frame count
	Frame() uint64
}

type scene struct {
	mu *sync.RWMutex

	name   string
	active bool
	logger zerolog.Logger

	swimmers  []Swimmer
	byID      map[uuid.UUID]Swimmer
	observers []Observer
	frame     atomic.Uint64

	// updatePool manages a bounded set of reusable goroutines for the parallel
	// swimmer update. Workers persist across frames, avoiding per-frame goroutine
	// spawn/teardown overhead.
	updatePool    worker.DynamicWorkerPool
	updateWorkers int

	framesCounter metric.Int64Counter
	updateTime    metric.Float64Histogram
}

// Ensure scene implements Scene interface.
var _ Scene = &scene{}

// NewScene creates a new, inactive Scene.
//
// Parameters:
//   - name: the name of the scene
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, options ...SceneBuilderOption) Scene {
	s := &scene{
		mu:            &sync.RWMutex{},
		name:          name,
		logger:        zerolog.Nop(),
		byID:          make(map[uuid.UUID]Swimmer),
		updateWorkers: max(runtime.NumCPU()-1, 1),
	}

	for _, option := range options {
		option(s)
	}

	// Initialize the pool after options so WithUpdateWorkers can override the default.
	// Queue size of 256 accommodates typical swimmer counts with headroom.
	s.updatePool = worker.NewDynamicWorkerPool(s.updateWorkers, 256, 1*time.Second)

	s.initMetrics()
	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Add(sw Swimmer) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := sw.ID()
	if _, exists := s.byID[id]; exists {
		return id
	}
	s.byID[id] = sw
	s.swimmers = append(s.swimmers, sw)

	s.logger.Debug().Str("scene", s.name).Str("swimmer", sw.Name()).Str("id", id.String()).Msg("swimmer added")
	return id
}

func (s *scene) Spawn(ctx context.Context, ld loader.Loader, res rig.Resolver, asset string, options ...SwimmerBuilderOption) Swimmer {
	opts := append([]SwimmerBuilderOption{WithSwimmerLogger(s.logger)}, options...)
	sw := NewSwimmer(opts...)
	s.Add(sw)

	results := ld.LoadAsync(ctx, asset)
	go func() {
		r, err := res.ResolveAsync(ctx, results, sw.Registry())
		if err != nil {
			s.logger.Warn().Err(err).Str("swimmer", sw.Name()).Str("asset", asset).Msg("swimmer will animate without a skeleton")
			return
		}
		sw.Attach(r)
	}()

	return sw
}

func (s *scene) Get(id uuid.UUID) Swimmer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.byID[id]
}

func (s *scene) Remove(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[id]; !exists {
		return
	}
	delete(s.byID, id)
	for i, sw := range s.swimmers {
		if sw.ID() == id {
			s.swimmers = append(s.swimmers[:i], s.swimmers[i+1:]...)
			break
		}
	}
}

func (s *scene) Swimmers() []Swimmer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Swimmer, len(s.swimmers))
	copy(out, s.swimmers)
	return out
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.swimmers)
}

func (s *scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.swimmers = nil
	s.byID = make(map[uuid.UUID]Swimmer)
	s.observers = nil
}

func (s *scene) Observe(fn Observer) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

func (s *scene) Update(dt float64) {
	start := time.Now()

	s.mu.RLock()
	swimmers := make([]Swimmer, len(s.swimmers))
	copy(swimmers, s.swimmers)
	observers := make([]Observer, len(s.observers))
	copy(observers, s.observers)
	s.mu.RUnlock()

	// Fan out one task per swimmer. A WaitGroup provides the per-frame barrier since
	// pool.Wait() blocks until workers idle-exit which is unsuitable for frame-rate workloads.
	var wg sync.WaitGroup
	for i, sw := range swimmers {
		wg.Add(1)
		swCap := sw
		s.updatePool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()
				swCap.Update(dt)
				return nil, nil
			},
		})
	}
	wg.Wait()

	frame := s.frame.Add(1)
	for _, fn := range observers {
		fn(frame, swimmers)
	}

	if s.framesCounter != nil {
		s.framesCounter.Add(context.Background(), 1)
	}
	if s.updateTime != nil {
		s.updateTime.Record(context.Background(), time.Since(start).Seconds())
	}
}

func (s *scene) Frame() uint64 {
	return s.frame.Load()
}
