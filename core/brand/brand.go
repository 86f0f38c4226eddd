package brand

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/Speakceo/speakceo-education-platform-sub002/core"
	"github.com/Speakceo/speakceo-education-platform-sub002/core/progress"
)

// Identity is the brand a learner designs with the brand creator.
type Identity struct {
	Name    string `json:"name" validate:"required,notblank,max=100"`
	Tagline string `json:"tagline" validate:"max=200"`
	LogoURL string `json:"logoUrl" validate:"omitempty,url"`
}

// Placeholder is the identity of a learner who has not created a brand yet.
func Placeholder() Identity {
	return Identity{Name: progress.DefaultBrandName}
}

func (id *Identity) Validate(validate *validator.Validate) error {
	id.Name = core.CleanString(id.Name)
	id.Tagline = core.CleanString(id.Tagline)
	id.LogoURL = core.CleanString(id.LogoURL)
	return validate.Struct(id)
}

type Repository interface {
	// Get returns the Placeholder when the learner has no identity yet.
	Get(ctx context.Context, learnerID string) (Identity, error)
	Put(ctx context.Context, learnerID string, id Identity) error
}

type repository struct {
	docs core.DocumentStore
}

var _ Repository = (*repository)(nil)

// NewRepository returns a Repository keeping identities in docs.
func NewRepository(docs core.DocumentStore) Repository {
	return &repository{docs: docs}
}

func (r *repository) Get(ctx context.Context, learnerID string) (Identity, error) {
	var id Identity
	if err := core.LoadJSON(ctx, r.docs, core.DocumentKey(core.DocBrand, learnerID), &id); err != nil {
		if errors.Cause(err) == core.ErrNotFound {
			return Placeholder(), nil
		}
		return Identity{}, errors.Wrap(err, "loading brand identity")
	}
	return id, nil
}

func (r *repository) Put(ctx context.Context, learnerID string, id Identity) error {
	return errors.Wrap(
		core.SaveJSON(ctx, r.docs, core.DocumentKey(core.DocBrand, learnerID), id),
		"saving brand identity",
	)
}

// Snapshot returns the part of id the progress report reads.
func (id Identity) Snapshot() progress.Brand {
	return progress.Brand{Name: id.Name, Tagline: id.Tagline, LogoURL: id.LogoURL}
}
