package pitch

import (
	"context"
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/Speakceo/speakceo-education-platform-sub002/core"
)

const (
	toolName = "pitch"

	// MaxContentLen bounds the length of a pitch, in characters.
	MaxContentLen = 5000
)

var (
	// errors
	ErrContentTooLong = errors.Errorf("pitch cannot be longer than %d characters", MaxContentLen)
)

type (
	Pitch struct {
		Content string `json:"content"`
		IsDirty bool   `json:"isDirty"`
		Version int    `json:"version"`
	}

	// UpdatePitch defines what may be provided to modify a Pitch.
	UpdatePitch struct {
		Content string `json:"content" validate:"max=5000"`
	}

	Options struct {
		Docs     core.DocumentStore
		Logger   core.Logger
		Recorder core.Recorder // optional
	}

	// Store owns a learner's Pitch.
	Store struct {
		key    string
		docs   core.DocumentStore
		logger core.Logger
		rec    core.Recorder

		mu    sync.Mutex
		pitch Pitch
	}
)

func NewStore(ctx context.Context, key string, opts Options) *Store {
	s := &Store{
		key:    key,
		docs:   opts.Docs,
		logger: opts.Logger,
		rec:    opts.Recorder,
	}
	if s.rec == nil {
		s.rec = core.NopRecorder{}
	}

	var stored Pitch
	if err := core.LoadJSON(ctx, s.docs, key, &stored); err != nil {
		if errors.Cause(err) != core.ErrNotFound {
			s.logger.Error(fmt.Sprintf("loading %s", key), err)
		}
		return s
	}
	s.pitch = Pitch{Content: stored.Content, Version: stored.Version}
	return s
}

// persist must be called with s.mu held.
func (s *Store) persist(ctx context.Context) {
	if err := core.SaveJSON(ctx, s.docs, s.key, s.pitch); err != nil {
		s.logger.Error(fmt.Sprintf("persisting %s", s.key), errors.Wrap(err, "saving pitch"))
		s.rec.ObservePersistFailure(toolName)
	}
}

func (s *Store) State() Pitch {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pitch
}

// SetContent replaces the pitch text.
func (s *Store) SetContent(ctx context.Context, content string) error {
	if utf8.RuneCountInString(content) > MaxContentLen {
		s.rec.ObserveMutation(toolName, "set_content", core.OutcomeRejected)
		return core.NewValidationError(ErrContentTooLong, core.FieldError{Field: "content", Error: ErrContentTooLong.Error()})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pitch.Content = content
	s.pitch.IsDirty = true
	s.pitch.Version++
	s.persist(ctx)
	s.rec.ObserveMutation(toolName, "set_content", core.OutcomeApplied)
	return nil
}

func (s *Store) Save(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pitch.IsDirty = false
	s.pitch.Version++
	s.persist(ctx)
	s.rec.ObserveMutation(toolName, "save", core.OutcomeApplied)
}

func (s *Store) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pitch = Pitch{}
	s.persist(ctx)
	s.rec.ObserveMutation(toolName, "reset", core.OutcomeApplied)
}
