package financial

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/Speakceo/speakceo-education-platform-sub002/core"
)

const toolName = "financial"

var (
	// errors
	ErrItemNotFound = errors.New("line item not found")
)

type (
	Options struct {
		Docs     core.DocumentStore
		Logger   core.Logger
		Recorder core.Recorder // optional
		NewID    func() string // optional
	}

	// Store owns a learner's financial Projection.
	Store struct {
		key    string
		docs   core.DocumentStore
		logger core.Logger
		rec    core.Recorder
		newID  func() string

		mu   sync.Mutex
		proj Projection
	}

	storedProjection struct {
		Revenues []LineItem `json:"revenues"`
		Expenses []LineItem `json:"expenses"`
		Version  int        `json:"version"`
	}
)

func NewStore(ctx context.Context, key string, opts Options) *Store {
	s := &Store{
		key:    key,
		docs:   opts.Docs,
		logger: opts.Logger,
		rec:    opts.Recorder,
		newID:  opts.NewID,
		proj:   emptyProjection(),
	}
	if s.rec == nil {
		s.rec = core.NopRecorder{}
	}
	if s.newID == nil {
		s.newID = func() string { return uuid.New().String() }
	}

	var stored storedProjection
	if err := core.LoadJSON(ctx, s.docs, key, &stored); err != nil {
		if errors.Cause(err) != core.ErrNotFound {
			s.logger.Error(fmt.Sprintf("loading %s", key), err)
		}
		return s
	}
	s.proj.Revenues = validItems(stored.Revenues)
	s.proj.Expenses = validItems(stored.Expenses)
	s.proj.Metrics = ComputeMetrics(s.proj.Revenues, s.proj.Expenses)
	s.proj.Version = stored.Version
	if dropped := len(stored.Revenues) + len(stored.Expenses) - len(s.proj.Revenues) - len(s.proj.Expenses); dropped > 0 {
		s.logger.Warn(fmt.Sprintf("repaired %s", key), map[string]interface{}{"dropped": dropped})
		s.rec.ObserveRepair(toolName, dropped, 0)
	}
	return s
}

func validItems(items []LineItem) []LineItem {
	valid := make([]LineItem, 0, len(items))
	for _, it := range items {
		if it.ID == "" || it.Amount < 0 {
			continue
		}
		valid = append(valid, it)
	}
	return valid
}

func (s *Store) document() storedProjection {
	return storedProjection{Revenues: s.proj.Revenues, Expenses: s.proj.Expenses, Version: s.proj.Version}
}

// persist must be called with s.mu held.
func (s *Store) persist(ctx context.Context) {
	if err := core.SaveJSON(ctx, s.docs, s.key, s.document()); err != nil {
		s.logger.Error(fmt.Sprintf("persisting %s", s.key), errors.Wrap(err, "saving projection"))
		s.rec.ObservePersistFailure(toolName)
	}
}

// commit must be called with s.mu held.
func (s *Store) commit(ctx context.Context, op string) {
	s.proj.Metrics = ComputeMetrics(s.proj.Revenues, s.proj.Expenses)
	s.proj.IsDirty = true
	s.proj.Version++
	s.persist(ctx)
	s.rec.ObserveMutation(toolName, op, core.OutcomeApplied)
}

func (s *Store) State() Projection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.proj.clone()
}

// AddRevenue appends a validated revenue item.
func (s *Store) AddRevenue(ctx context.Context, ni NewLineItem) LineItem {
	return s.add(ctx, Revenue, ni)
}

// AddExpense appends a validated expense item.
func (s *Store) AddExpense(ctx context.Context, ni NewLineItem) LineItem {
	return s.add(ctx, Expense, ni)
}

func (s *Store) add(ctx context.Context, kind Kind, ni NewLineItem) LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	it := LineItem{ID: s.newID(), Name: ni.Name, Amount: ni.Amount}
	if kind == Revenue {
		s.proj.Revenues = append(s.proj.Revenues, it)
	} else {
		s.proj.Expenses = append(s.proj.Expenses, it)
	}
	s.commit(ctx, "add_"+string(kind))
	return it
}

// RemoveItem deletes the revenue or expense item with the given id.
func (s *Store) RemoveItem(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var found bool
	s.proj.Revenues, found = without(s.proj.Revenues, id)
	if !found {
		s.proj.Expenses, found = without(s.proj.Expenses, id)
	}
	if !found {
		s.rec.ObserveMutation(toolName, "remove", core.OutcomeRejected)
		return ErrItemNotFound
	}
	s.commit(ctx, "remove")
	return nil
}

func without(items []LineItem, id string) ([]LineItem, bool) {
	for i, it := range items {
		if it.ID == id {
			return append(items[:i:i], items[i+1:]...), true
		}
	}
	return items, false
}

func (s *Store) Save(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.proj.IsDirty = false
	s.proj.Version++
	s.persist(ctx)
	s.rec.ObserveMutation(toolName, "save", core.OutcomeApplied)
}

func (s *Store) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.proj = emptyProjection()
	s.persist(ctx)
	s.rec.ObserveMutation(toolName, "reset", core.OutcomeApplied)
}
