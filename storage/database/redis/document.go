package redisdb

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/Speakceo/speakceo-education-platform-sub002/core"
)

const scanCount = 100

var globEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)

// Open connects to the configured redis server.
func Open(ctx context.Context, conf *core.Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     conf.Redis.Addr,
		Password: conf.Redis.Password,
		DB:       conf.Redis.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, errors.Wrap(err, "pinging redis")
	}
	return rdb, nil
}

type documentStore struct {
	rdb redis.Cmdable
	ttl time.Duration
}

var _ core.DocumentStore = (*documentStore)(nil) // interface compliance check

// NewDocumentStore returns a DocumentStore keeping documents as redis strings.
// A zero ttl keeps them forever.
func NewDocumentStore(rdb redis.Cmdable, ttl time.Duration) *documentStore {
	return &documentStore{rdb: rdb, ttl: ttl}
}

func (store *documentStore) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := store.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, core.ErrNotFound
		}
		return nil, errors.Wrapf(checkConn(err), "loading document %s", key)
	}
	return data, nil
}

func (store *documentStore) Save(ctx context.Context, key string, data []byte) error {
	return errors.Wrapf(checkConn(store.rdb.Set(ctx, key, data, store.ttl).Err()), "saving document %s", key)
}

func (store *documentStore) Keys(ctx context.Context, kind string) ([]string, error) {
	keys := []string{}
	seen := make(map[string]bool)
	var cursor uint64
	for {
		page, next, err := store.rdb.Scan(ctx, cursor, globEscaper.Replace(kind)+":*", scanCount).Result()
		if err != nil {
			return nil, errors.Wrap(checkConn(err), "listing document keys")
		}
		// SCAN may return a key more than once
		for _, key := range page {
			if !seen[key] {
				seen[key] = true
				keys = append(keys, key)
			}
		}
		if next == 0 {
			break
		}
		cursor = next
	}
	sort.Strings(keys)
	return keys, nil
}

// checkConn turns a closed client into a shutdown error.
func checkConn(err error) error {
	if err == redis.ErrClosed {
		return core.NewShutdownError(err.Error())
	}
	return err
}
