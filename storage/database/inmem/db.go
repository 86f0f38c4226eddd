package inmemdb

import "sync"

type (
	DB struct {
		document *documentTable
	}

	documentTable struct {
		sync.RWMutex
		table map[string][]byte
	}
)

func Open() (*DB, error) {
	db := &DB{
		document: &documentTable{table: make(map[string][]byte)},
	}
	return db, nil
}
