package session

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/philipparndt/gomesh/internal/metrics"
	"github.com/philipparndt/gomesh/pkg/mesh"
)

// DefaultInterval is the elapsed time between autosaves
const DefaultInterval = 3 * time.Second

// Canceler aborts in-progress interaction, such as a drag
type Canceler interface {
	Cancel()
}

// Options configures a session. All fields are optional.
type Options struct {
	Logger *slog.Logger
	// Interval between autosaves; zero uses DefaultInterval
	Interval time.Duration
}

// Session owns the mesh of one editor session. Tick is meant to be called
// once per frame from the event loop.
type Session struct {
	mesh     *mesh.EditableMesh
	store    Store
	key      string
	interval time.Duration
	logger   *slog.Logger
	canceler Canceler

	sinceSave    time.Duration
	savedVersion uint64
	saved        bool
}

// Open loads the document stored under key. A missing or unreadable
// document seeds the default triangle. A nil store disables autosave.
func Open(ctx context.Context, store Store, key string, opts Options) (*Session, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	s := &Session{
		store:    store,
		key:      key,
		interval: interval,
		logger:   logger.With("key", key),
	}

	if store == nil {
		s.mesh = mesh.NewDefault()
		return s, nil
	}

	doc, err := store.Load(ctx, key)
	switch {
	case err == nil:
		m, err := mesh.FromDocument(doc)
		if err != nil {
			return nil, err
		}
		s.mesh = m
		s.savedVersion = m.Version()
		s.saved = true
		s.logger.Info("session restored", "vertices", m.VertexCount(), "faces", m.FaceCount())
	case errors.Is(err, ErrNotFound):
		s.mesh = mesh.NewDefault()
		s.logger.Info("new session")
	case errors.Is(err, mesh.ErrInvalidDocument):
		s.mesh = mesh.NewDefault()
		s.logger.Warn("discarding unreadable autosave", "error", err)
	default:
		return nil, err
	}
	return s, nil
}

// Mesh returns the session mesh
func (s *Session) Mesh() *mesh.EditableMesh {
	return s.mesh
}

// Key returns the autosave key
func (s *Session) Key() string {
	return s.key
}

// Bind registers the interaction layer to cancel on Close
func (s *Session) Bind(c Canceler) {
	s.canceler = c
}

// Tick syncs the render buffers and, once the autosave interval has elapsed,
// saves the synced document. It returns the current buffers.
func (s *Session) Tick(ctx context.Context, elapsed time.Duration) (*mesh.Buffers, error) {
	buffers := s.sync()
	if s.store == nil {
		return buffers, nil
	}
	s.sinceSave += elapsed
	if s.sinceSave < s.interval {
		return buffers, nil
	}
	s.sinceSave = 0
	return buffers, s.save(ctx)
}

func (s *Session) sync() *mesh.Buffers {
	if !s.mesh.NeedsSync() {
		return s.mesh.Sync()
	}
	start := time.Now()
	buffers := s.mesh.Sync()
	metrics.ObserveSync(time.Since(start), buffers.TriangleCount())
	return buffers
}

// save writes the mesh when it changed since the last save
func (s *Session) save(ctx context.Context) error {
	if s.saved && s.mesh.Version() == s.savedVersion {
		return nil
	}
	err := s.store.Save(ctx, s.key, s.mesh.ToJSON())
	metrics.RecordAutosave(err)
	if err != nil {
		s.logger.Error("autosave failed", "error", err)
		return err
	}
	s.savedVersion = s.mesh.Version()
	s.saved = true
	s.logger.Debug("autosaved", "version", s.savedVersion)
	return nil
}

// Close cancels any running interaction and flushes a final save
func (s *Session) Close(ctx context.Context) error {
	if s.canceler != nil {
		s.canceler.Cancel()
	}
	s.sync()
	if s.store == nil {
		return nil
	}
	return s.save(ctx)
}
