package canvas

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/Speakceo/speakceo-education-platform-sub002/core"
)

const toolName = "business_model"

var (
	// errors
	ErrUnknownCellType   = errors.New("unknown cell type")
	ErrComponentNotFound = errors.New("component not found")
	ErrInvalidPlacement  = errors.New("position is outside the component's cell")
	ErrDuplicateID       = errors.New("component ids must be unique")
)

type (
	// Advisor produces advisory suggestions for a list of components.
	Advisor interface {
		Suggest(ctx context.Context, components []Component) ([]string, error)
	}

	Options struct {
		Docs     core.DocumentStore
		Logger   core.Logger
		Recorder core.Recorder // optional
		NewID    func() string // optional; defaults to uuid
	}

	// Store owns a learner's BusinessModel. Every mutation is persisted synchronously;
	// persistence failures are logged, never returned.
	Store struct {
		key    string
		docs   core.DocumentStore
		logger core.Logger
		rec    core.Recorder
		newID  func() string

		mu    sync.Mutex
		model BusinessModel
	}
)

// NewStore loads the document stored under key and repairs it.
func NewStore(ctx context.Context, key string, opts Options) *Store {
	s := &Store{
		key:    key,
		docs:   opts.Docs,
		logger: opts.Logger,
		rec:    opts.Recorder,
		newID:  opts.NewID,
		model:  emptyModel(),
	}
	if s.rec == nil {
		s.rec = core.NopRecorder{}
	}
	if s.newID == nil {
		s.newID = func() string { return uuid.New().String() }
	}
	s.load(ctx)
	return s
}

func (s *Store) load(ctx context.Context) {
	data, err := s.docs.Load(ctx, s.key)
	if err != nil {
		if errors.Cause(err) != core.ErrNotFound {
			s.logger.Error(fmt.Sprintf("loading %s", s.key), errors.Wrap(err, "loading business model"))
		}
		return
	}

	model, report, err := Rehydrate(data)
	if err != nil {
		s.logger.Error(fmt.Sprintf("rehydrating %s", s.key), err)
	}
	if !report.IsClean() {
		s.logger.Warn(fmt.Sprintf("repaired %s", s.key), map[string]interface{}{
			"dropped": report.Dropped,
			"snapped": report.Snapped,
		})
		s.rec.ObserveRepair(toolName, report.Dropped, report.Snapped)
	}
	s.model = model
}

// persist must be called with s.mu held.
func (s *Store) persist(ctx context.Context) {
	if err := core.SaveJSON(ctx, s.docs, s.key, s.model); err != nil {
		s.logger.Error(fmt.Sprintf("persisting %s", s.key), errors.Wrap(err, "saving business model"))
		s.rec.ObservePersistFailure(toolName)
	}
}

// commit must be called with s.mu held.
func (s *Store) commit(ctx context.Context, op string) {
	s.model.IsDirty = true
	s.model.Version++
	s.persist(ctx)
	s.rec.ObserveMutation(toolName, op, core.OutcomeApplied)
}

// State returns a copy of the current BusinessModel.
func (s *Store) State() BusinessModel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model.clone()
}

// AddComponent places a new, empty component at the origin of the cell owning cellType.
func (s *Store) AddComponent(ctx context.Context, cellType string) (Component, error) {
	cell, ok := CellByType(cellType)
	if !ok {
		s.rec.ObserveMutation(toolName, "add", core.OutcomeRejected)
		return Component{}, ErrUnknownCellType
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	comp := Component{
		ID:           s.newID(),
		Type:         cell.Type,
		GridPosition: cell.Origin(),
		Position:     GridToPixel(cell.Origin()),
	}
	s.model.Components = append(s.model.Components, comp)
	s.commit(ctx, "add")
	return comp, nil
}

// UpdateComponents replaces the component list, re-deriving every Position from its GridPosition.
// Only the first component of a repeated id is kept. A nil suggestions keeps the current suggestions.
func (s *Store) UpdateComponents(ctx context.Context, components []Component, suggestions []string) []Component {
	comps := make([]Component, 0, len(components))
	seen := make(map[string]bool, len(components))
	for _, comp := range components {
		if seen[comp.ID] {
			continue
		}
		seen[comp.ID] = true
		comp.Position = GridToPixel(comp.GridPosition)
		comps = append(comps, comp)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.model.Components = comps
	if suggestions != nil {
		s.model.Suggestions = append(make([]string, 0, len(suggestions)), suggestions...)
	}
	s.commit(ctx, "update")
	return append(make([]Component, 0, len(comps)), comps...)
}

// Relocate moves component id by a pixel delta. A drop outside the component's cell
// returns ErrInvalidPlacement and leaves the state untouched.
func (s *Store) Relocate(ctx context.Context, id string, delta Position) (Component, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.model.indexOf(id)
	if idx < 0 {
		s.rec.ObserveMutation(toolName, "relocate", core.OutcomeRejected)
		return Component{}, ErrComponentNotFound
	}
	comp := s.model.Components[idx]

	cell, ok := CellByType(comp.Type)
	candidate := PixelToGrid(GridToPixel(comp.GridPosition).Add(delta))
	if !ok || !IsValidGridPosition(candidate, cell) {
		s.rec.ObserveMutation(toolName, "relocate", core.OutcomeRejected)
		return comp, ErrInvalidPlacement
	}
	if candidate == comp.GridPosition {
		s.rec.ObserveMutation(toolName, "relocate", core.OutcomeNoop)
		return comp, nil
	}

	comp.GridPosition = candidate
	comp.Position = GridToPixel(candidate)
	s.model.Components[idx] = comp
	s.commit(ctx, "relocate")
	return comp, nil
}

// EditContent replaces the text of component id.
func (s *Store) EditContent(ctx context.Context, id, content string) (Component, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.model.indexOf(id)
	if idx < 0 {
		s.rec.ObserveMutation(toolName, "edit", core.OutcomeRejected)
		return Component{}, ErrComponentNotFound
	}
	s.model.Components[idx].Content = content
	s.commit(ctx, "edit")
	return s.model.Components[idx], nil
}

// RemoveComponent deletes component id.
func (s *Store) RemoveComponent(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.model.indexOf(id)
	if idx < 0 {
		s.rec.ObserveMutation(toolName, "remove", core.OutcomeRejected)
		return ErrComponentNotFound
	}
	comps := s.model.Components
	s.model.Components = append(comps[:idx:idx], comps[idx+1:]...)
	s.commit(ctx, "remove")
	return nil
}

// RefreshSuggestions asks adv for suggestions on the current components and stores them.
func (s *Store) RefreshSuggestions(ctx context.Context, adv Advisor) ([]string, error) {
	suggestions, err := adv.Suggest(ctx, s.State().Components)
	if err != nil {
		s.rec.ObserveMutation(toolName, "suggest", core.OutcomeFailed)
		return nil, errors.Wrap(err, "generating suggestions")
	}
	if suggestions == nil {
		suggestions = []string{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.model.Suggestions = append(make([]string, 0, len(suggestions)), suggestions...)
	s.commit(ctx, "suggest")
	return suggestions, nil
}

// Save marks the model as saved.
func (s *Store) Save(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.model.IsDirty = false
	s.model.Version++
	s.persist(ctx)
	s.rec.ObserveMutation(toolName, "save", core.OutcomeApplied)
}

// Reset replaces the model with the empty initial value.
func (s *Store) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.model = emptyModel()
	s.persist(ctx)
	s.rec.ObserveMutation(toolName, "reset", core.OutcomeApplied)
}
