package capture

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-swim/engine/scene"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// DefaultBatchSize is the number of buffered samples that triggers a write.
const DefaultBatchSize = 500

// ErrClosed is returned by operations on a closed Recorder.
var ErrClosed = errors.New("recorder closed")

// recorder is the implementation of the Recorder interface.
type recorder struct {
	mu sync.Mutex

	db     *gorm.DB
	logger zerolog.Logger

	path      string
	batchSize int
	every     uint64

	session CaptureSession
	poses   []PoseSample
	roots   []RootSample
	closed  bool
}

// Recorder persists the poses of a scene's swimmers to SQLite.
//
// A Recorder is a pure observer: register Observe with Scene.Observe and it samples every
// swimmer after each frame. Samples are buffered and written in batches. Nothing it stores
// is ever fed back into the animation.
type Recorder interface {
	// SessionID returns the ID of the capture session being recorded.
	//
	// Returns:
	//   - uuid.UUID: the session ID
	SessionID() uuid.UUID

	// Observe samples the swimmers of one frame. Its signature matches scene.Observer.
	// Write errors are logged rather than returned so the frame loop is never interrupted.
	//
	// Parameters:
	//   - frame: the scene frame number
	//   - swimmers: the swimmers updated this frame
	Observe(frame uint64, swimmers []scene.Swimmer)

	// Flush writes all buffered samples and updates the session row.
	//
	// Returns:
	//   - error: error if the write fails
	Flush() error

	// Session returns the session row as last written.
	//
	// Returns:
	//   - CaptureSession: the session
	//   - error: error if the query fails
	Session() (CaptureSession, error)

	// PoseSamples returns the flushed pose samples of one swimmer, ordered by frame and joint.
	//
	// Parameters:
	//   - swimmerID: the swimmer to query
	//
	// Returns:
	//   - []PoseSample: the samples
	//   - error: error if the query fails
	PoseSamples(swimmerID uuid.UUID) ([]PoseSample, error)

	// RootSamples returns the flushed root positions of one swimmer, ordered by frame.
	//
	// Parameters:
	//   - swimmerID: the swimmer to query
	//
	// Returns:
	//   - []RootSample: the samples
	//   - error: error if the query fails
	RootSamples(swimmerID uuid.UUID) ([]RootSample, error)

	// Dump flushes and writes a point-in-time copy of the database to path.
	//
	// Parameters:
	//   - path: the destination file, replaced if it exists
	//
	// Returns:
	//   - error: error if flushing or dumping fails
	Dump(path string) error

	// Close flushes and closes the database. Later calls are no-ops.
	//
	// Returns:
	//   - error: error if flushing or closing fails
	Close() error
}

var _ Recorder = &recorder{}

// NewRecorder opens the capture database, migrates it and inserts a new session row.
//
// Parameters:
//   - options: variadic list of RecorderBuilderOption functions to configure the Recorder
//
// Returns:
//   - Recorder: the recorder
//   - error: error if the database cannot be opened or migrated
func NewRecorder(options ...RecorderBuilderOption) (Recorder, error) {
	r := &recorder{
		logger:    zerolog.Nop(),
		batchSize: DefaultBatchSize,
		every:     1,
		session: CaptureSession{
			ID:        uuid.NewString(),
			StartedAt: time.Now().UTC(),
		},
	}
	for _, opt := range options {
		opt(r)
	}

	db, err := openDB(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open capture DB: %w", err)
	}
	r.db = db

	if err := r.db.Create(&r.session).Error; err != nil {
		return nil, fmt.Errorf("failed to create capture session: %w", err)
	}

	r.logger.Info().
		Str("session", r.session.ID).
		Str("path", r.path).
		Int("batchSize", r.batchSize).
		Msg("capture started")
	return r, nil
}

func (r *recorder) SessionID() uuid.UUID {
	return uuid.MustParse(r.session.ID)
}

func (r *recorder) Observe(frame uint64, swimmers []scene.Swimmer) {
	if r.every > 1 && frame%r.every != 0 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}

	for _, sw := range swimmers {
		id := sw.ID().String()
		pose := sw.Pose()
		reg := sw.Registry()
		for _, j := range pose.Written() {
			// unresolved joints are never written to a bone, so there is nothing to record
			if _, ok := reg.Get(j); !ok {
				continue
			}
			e, mask := pose.Get(j)
			r.poses = append(r.poses, PoseSample{
				SessionID: r.session.ID,
				SwimmerID: id,
				Frame:     frame,
				T:         pose.T,
				Joint:     j.Key(),
				Mask:      uint8(mask),
				X:         e.X,
				Y:         e.Y,
				Z:         e.Z,
			})
		}

		pos := sw.Root().Position()
		r.roots = append(r.roots, RootSample{
			SessionID: r.session.ID,
			SwimmerID: id,
			Frame:     frame,
			X:         pos.X,
			Y:         pos.Y,
			Z:         pos.Z,
		})
	}

	r.session.Frames++
	r.session.LastFrame = frame
	if len(swimmers) > r.session.Swimmers {
		r.session.Swimmers = len(swimmers)
	}

	if len(r.poses)+len(r.roots) >= r.batchSize {
		if err := r.flushLocked(); err != nil {
			r.logger.Error().Err(err).Uint64("frame", frame).Msg("capture write failed")
		}
	}
}

func (r *recorder) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrClosed
	}
	return r.flushLocked()
}

func (r *recorder) Session() (CaptureSession, error) {
	var s CaptureSession
	err := r.db.First(&s, "id = ?", r.session.ID).Error
	return s, err
}

func (r *recorder) PoseSamples(swimmerID uuid.UUID) ([]PoseSample, error) {
	var out []PoseSample
	err := r.db.
		Where("session_id = ? AND swimmer_id = ?", r.session.ID, swimmerID.String()).
		Order("frame, joint").
		Find(&out).Error
	return out, err
}

func (r *recorder) RootSamples(swimmerID uuid.UUID) ([]RootSample, error) {
	var out []RootSample
	err := r.db.
		Where("session_id = ? AND swimmer_id = ?", r.session.ID, swimmerID.String()).
		Order("frame").
		Find(&out).Error
	return out, err
}

func (r *recorder) Dump(path string) error {
	if err := r.Flush(); err != nil {
		return err
	}

	start := time.Now()
	if err := dumpToDisk(r.db, path); err != nil {
		return err
	}
	r.logger.Debug().Str("path", path).Dur("took", time.Since(start)).Msg("capture dumped")
	return nil
}

func (r *recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true

	flushErr := r.flushLocked()

	sqlDB, err := r.db.DB()
	if err != nil {
		return errors.Join(flushErr, err)
	}
	return errors.Join(flushErr, sqlDB.Close())
}

// flushLocked writes the buffered samples in one transaction. Callers must hold r.mu.
func (r *recorder) flushLocked() error {
	poses, roots := r.poses, r.roots
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if len(poses) > 0 {
			if err := tx.CreateInBatches(poses, r.batchSize).Error; err != nil {
				return fmt.Errorf("writing pose samples: %w", err)
			}
		}
		if len(roots) > 0 {
			if err := tx.CreateInBatches(roots, r.batchSize).Error; err != nil {
				return fmt.Errorf("writing root samples: %w", err)
			}
		}
		return tx.Model(&CaptureSession{}).
			Where("id = ?", r.session.ID).
			Updates(map[string]any{
				"frames":     r.session.Frames,
				"last_frame": r.session.LastFrame,
				"swimmers":   r.session.Swimmers,
			}).Error
	})
	if err != nil {
		return err
	}

	r.poses = r.poses[:0]
	r.roots = r.roots[:0]
	return nil
}
