package sqlxdb

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Speakceo/speakceo-education-platform-sub002/core"
)

func newMock(t *testing.T) (*documentStore, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return NewDocumentStore(sqlx.NewDb(db, "postgres")), mock
}

func TestDocumentStore_Load(t *testing.T) {
	ctx := context.Background()
	store, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(loadQuery)).
		WithArgs("canvas:learner-1").
		WillReturnRows(sqlmock.NewRows([]string{"data"}).AddRow([]byte(`{"version":1}`)))
	data, err := store.Load(ctx, "canvas:learner-1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":1}`, string(data))

	mock.ExpectQuery(regexp.QuoteMeta(loadQuery)).
		WithArgs("canvas:ghost").
		WillReturnError(sql.ErrNoRows)
	_, err = store.Load(ctx, "canvas:ghost")
	assert.Equal(t, core.ErrNotFound, err)

	boom := errors.New("connection reset")
	mock.ExpectQuery(regexp.QuoteMeta(loadQuery)).
		WithArgs("canvas:learner-2").
		WillReturnError(boom)
	_, err = store.Load(ctx, "canvas:learner-2")
	assert.Equal(t, boom, errors.Cause(err))
}

func TestDocumentStore_Save(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta(saveQuery)).
		WithArgs("pitch:learner-1", []byte(`{"content":"hi"}`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, store.Save(context.Background(), "pitch:learner-1", []byte(`{"content":"hi"}`)))
}

func TestDocumentStore_Keys(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(keysQuery)).
		WithArgs("canvas:%").
		WillReturnRows(sqlmock.NewRows([]string{"key"}).AddRow("canvas:a").AddRow("canvas:b"))
	keys, err := store.Keys(context.Background(), core.DocCanvas)
	require.NoError(t, err)
	assert.Equal(t, []string{"canvas:a", "canvas:b"}, keys)
}

func TestDocumentStore_Keys_escapesWildcards(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(keysQuery)).
		WithArgs(`a\_b\%c:%`).
		WillReturnRows(sqlmock.NewRows([]string{"key"}))
	keys, err := store.Keys(context.Background(), "a_b%c")
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestDocumentStore_connectionDone(t *testing.T) {
	ctx := context.Background()
	store, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(loadQuery)).
		WithArgs("canvas:learner-1").
		WillReturnError(sql.ErrConnDone)
	_, err := store.Load(ctx, "canvas:learner-1")
	assert.True(t, core.IsShutdown(err))

	mock.ExpectExec(regexp.QuoteMeta(saveQuery)).
		WithArgs("canvas:learner-1", []byte(`{}`)).
		WillReturnError(sql.ErrConnDone)
	assert.True(t, core.IsShutdown(store.Save(ctx, "canvas:learner-1", []byte(`{}`))))

	mock.ExpectExec(regexp.QuoteMeta(saveQuery)).
		WithArgs("canvas:learner-1", []byte(`{}`)).
		WillReturnError(errors.New("connection reset"))
	assert.False(t, core.IsShutdown(store.Save(ctx, "canvas:learner-1", []byte(`{}`))))
}
