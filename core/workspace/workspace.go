package workspace

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/Speakceo/speakceo-education-platform-sub002/core"
	"github.com/Speakceo/speakceo-education-platform-sub002/core/brand"
	"github.com/Speakceo/speakceo-education-platform-sub002/core/canvas"
	"github.com/Speakceo/speakceo-education-platform-sub002/core/financial"
	"github.com/Speakceo/speakceo-education-platform-sub002/core/pitch"
	"github.com/Speakceo/speakceo-education-platform-sub002/core/progress"
)

var (
	// errors
	ErrNoLearner = errors.New("learner id is required")
)

type (
	Options struct {
		Docs     core.DocumentStore
		Brands   brand.Repository
		Logger   core.Logger
		Recorder core.Recorder // optional

		// IdleTimeout drops a cached workspace that has not been opened for that long.
		// Zero keeps workspaces until they are closed.
		IdleTimeout time.Duration
	}

	// Workspace groups the simulator tools of one learner.
	Workspace struct {
		Learner   core.Learner
		Canvas    *canvas.Store
		Financial *financial.Store
		Pitch     *pitch.Store

		brands brand.Repository
	}

	// Manager opens workspaces and keeps them until they are closed or go idle.
	Manager struct {
		opts Options
		now  func() time.Time

		mu   sync.Mutex
		open map[string]*entry
	}

	entry struct {
		ws       *Workspace
		lastUsed time.Time
	}
)

func NewManager(opts Options) *Manager {
	if opts.Recorder == nil {
		opts.Recorder = core.NopRecorder{}
	}
	if opts.Brands == nil {
		opts.Brands = brand.NewRepository(opts.Docs)
	}
	return &Manager{opts: opts, now: time.Now, open: make(map[string]*entry)}
}

// Open returns the workspace of learnerID, loading its stores on first use.
func (m *Manager) Open(ctx context.Context, learnerID string) (*Workspace, error) {
	learnerID = core.CleanString(learnerID)
	if learnerID == "" {
		return nil, ErrNoLearner
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.evictIdle(now)
	if e, ok := m.open[learnerID]; ok {
		e.lastUsed = now
		return e.ws, nil
	}

	docs, logger, rec := m.opts.Docs, m.opts.Logger, m.opts.Recorder
	ws := &Workspace{
		Learner: core.Learner{ID: learnerID},
		Canvas: canvas.NewStore(ctx, core.DocumentKey(core.DocCanvas, learnerID), canvas.Options{
			Docs: docs, Logger: logger, Recorder: rec,
		}),
		Financial: financial.NewStore(ctx, core.DocumentKey(core.DocFinancial, learnerID), financial.Options{
			Docs: docs, Logger: logger, Recorder: rec,
		}),
		Pitch: pitch.NewStore(ctx, core.DocumentKey(core.DocPitch, learnerID), pitch.Options{
			Docs: docs, Logger: logger, Recorder: rec,
		}),
		brands: m.opts.Brands,
	}
	m.open[learnerID] = &entry{ws: ws, lastUsed: now}
	return ws, nil
}

// evictIdle must be called with m.mu held.
func (m *Manager) evictIdle(now time.Time) {
	if m.opts.IdleTimeout <= 0 {
		return
	}
	for id, e := range m.open {
		if now.Sub(e.lastUsed) > m.opts.IdleTimeout {
			delete(m.open, id)
		}
	}
}

// Close forgets the workspace of learnerID. Its state stays persisted.
func (m *Manager) Close(learnerID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.open, core.CleanString(learnerID))
}

// Len returns the number of open workspaces.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.open)
}

func (ws *Workspace) Brand(ctx context.Context) (brand.Identity, error) {
	return ws.brands.Get(ctx, ws.Learner.ID)
}

func (ws *Workspace) SetBrand(ctx context.Context, id brand.Identity) error {
	return ws.brands.Put(ctx, ws.Learner.ID, id)
}

// Snapshot reads the state of every tool of the workspace.
func (ws *Workspace) Snapshot(ctx context.Context) (progress.Snapshot, error) {
	id, err := ws.Brand(ctx)
	if err != nil {
		return progress.Snapshot{}, errors.Wrap(err, "getting brand identity")
	}
	fin := ws.Financial.State()
	return progress.Snapshot{
		ComponentCount: len(ws.Canvas.State().Components),
		Financial:      progress.Financial{Revenues: len(fin.Revenues), Expenses: len(fin.Expenses)},
		Pitch:          progress.Pitch{Content: ws.Pitch.State().Content},
		Brand:          id.Snapshot(),
	}, nil
}

// Progress aggregates the workspace's Snapshot.
func (ws *Workspace) Progress(ctx context.Context) (progress.Report, error) {
	snap, err := ws.Snapshot(ctx)
	if err != nil {
		return progress.Report{}, err
	}
	return progress.Aggregate(snap), nil
}
