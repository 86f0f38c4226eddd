package inmemdb

import (
	"context"
	"sort"
	"strings"

	"github.com/Speakceo/speakceo-education-platform-sub002/core"
)

type documentStore struct {
	db *documentTable
}

var _ core.DocumentStore = (*documentStore)(nil) // interface compliance check

func NewDocumentStore(db *DB) *documentStore {
	return &documentStore{db: db.document}
}

func (store *documentStore) Load(_ context.Context, key string) ([]byte, error) {
	store.db.RLock()
	defer store.db.RUnlock()

	if data, ok := store.db.table[key]; ok {
		return append([]byte(nil), data...), nil
	}
	return nil, core.ErrNotFound
}

func (store *documentStore) Save(_ context.Context, key string, data []byte) error {
	store.db.Lock()
	defer store.db.Unlock()

	store.db.table[key] = append([]byte(nil), data...)
	return nil
}

func (store *documentStore) Keys(_ context.Context, kind string) ([]string, error) {
	store.db.RLock()
	defer store.db.RUnlock()

	keys := []string{}
	for k := range store.db.table {
		if strings.HasPrefix(k, kind+":") {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}
