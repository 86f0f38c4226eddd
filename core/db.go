package core

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
)

// DocumentStore is a durable key-value storage of JSON documents.
// Load returns ErrNotFound when nothing was stored under key.
type DocumentStore interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}

// Document kinds
const (
	DocCanvas    = "canvas"
	DocFinancial = "financial"
	DocPitch     = "pitch"
	DocBrand     = "brand"
)

// DocumentKey builds the storage key of a learner's document.
func DocumentKey(kind, learnerID string) string {
	return fmt.Sprintf("%s:%s", kind, learnerID)
}

// LoadJSON decodes the document stored under key into v.
func LoadJSON(ctx context.Context, docs DocumentStore, key string, v interface{}) error {
	data, err := docs.Load(ctx, key)
	if err != nil {
		return err
	}
	return errors.Wrapf(json.Unmarshal(data, v), "decoding %s", key)
}

// SaveJSON encodes v and stores it under key.
func SaveJSON(ctx context.Context, docs DocumentStore, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "encoding %s", key)
	}
	return docs.Save(ctx, key, data)
}

// DocumentLister is implemented by the stores able to enumerate their documents.
type DocumentLister interface {
	Keys(ctx context.Context, kind string) ([]string, error)
}
