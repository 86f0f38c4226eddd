package sqlxdb

import (
	"context"
	"database/sql"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/Speakceo/speakceo-education-platform-sub002/core"
)

const (
	loadQuery = `SELECT data FROM documents WHERE key = $1`
	saveQuery = `INSERT INTO documents (key, data) VALUES ($1, $2)
ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`
	keysQuery = `SELECT key FROM documents WHERE key LIKE $1 ESCAPE '\' ORDER BY key`
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type documentStore struct {
	db *sqlx.DB
}

var _ core.DocumentStore = (*documentStore)(nil) // interface compliance check

// NewDocumentStore returns a DocumentStore over the `documents` table.
func NewDocumentStore(db *sqlx.DB) *documentStore {
	return &documentStore{db: db}
}

func (store *documentStore) Load(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	if err := store.db.GetContext(ctx, &data, loadQuery, key); err != nil {
		if err == sql.ErrNoRows {
			return nil, core.ErrNotFound
		}
		return nil, errors.Wrapf(checkConn(err), "loading document %s", key)
	}
	return data, nil
}

func (store *documentStore) Save(ctx context.Context, key string, data []byte) error {
	_, err := store.db.ExecContext(ctx, saveQuery, key, data)
	return errors.Wrapf(checkConn(err), "saving document %s", key)
}

// Keys lists the stored keys of a document kind.
func (store *documentStore) Keys(ctx context.Context, kind string) ([]string, error) {
	keys := []string{}
	err := store.db.SelectContext(ctx, &keys, keysQuery, likeEscaper.Replace(kind)+":%")
	return keys, errors.Wrap(checkConn(err), "listing document keys")
}

// checkConn turns the loss of the database connection into a shutdown error.
func checkConn(err error) error {
	if err == sql.ErrConnDone {
		return core.NewShutdownError(err.Error())
	}
	return err
}
