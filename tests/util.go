package testutil

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/Speakceo/speakceo-education-platform-sub002/core"
	"github.com/Speakceo/speakceo-education-platform-sub002/storage/database/inmem"
)

var errDiskFull = errors.New("disk full")

// Logger is a core.Logger that records messages and mirrors them to the test log.
type Logger struct {
	t  *testing.T
	mu sync.Mutex

	Messages []string
}

var _ core.Logger = (*Logger)(nil)

func NewLogger(t *testing.T) *Logger {
	return &Logger{t: t}
}

func (l *Logger) log(level, msg string, args []interface{}) {
	l.mu.Lock()
	l.Messages = append(l.Messages, level+": "+msg)
	l.mu.Unlock()
	l.t.Logf("%s: %s %v", level, msg, args)
}

func (l *Logger) Debug(msg string, args ...interface{}) { l.log("DEBUG", msg, args) }
func (l *Logger) Info(msg string, args ...interface{})  { l.log("INFO", msg, args) }
func (l *Logger) Warn(msg string, args ...interface{})  { l.log("WARN", msg, args) }
func (l *Logger) Error(msg string, args ...interface{}) { l.log("ERROR", msg, args) }
func (l *Logger) Fatal(msg string, args ...interface{}) {
	l.log("FATAL", msg, args)
	l.t.FailNow()
}

// Count returns how many messages were logged at level.
func (l *Logger) Count(level string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	var n int
	for _, m := range l.Messages {
		if len(m) > len(level) && m[:len(level)+1] == level+":" {
			n++
		}
	}
	return n
}

// OpenDocs returns an empty in-memory document store.
func OpenDocs(t *testing.T) core.DocumentStore {
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("OpenDocs() failed: %v", err)
	}
	return inmemdb.NewDocumentStore(db)
}

// SeedDocument stores v (raw []byte, string or any JSON-marshallable value) under key.
func SeedDocument(t *testing.T, docs core.DocumentStore, key string, v interface{}) {
	var data []byte
	switch val := v.(type) {
	case []byte:
		data = val
	case string:
		data = []byte(val)
	default:
		var err error
		if data, err = json.Marshal(v); err != nil {
			t.Fatalf("SeedDocument() failed: %v", err)
		}
	}
	if err := docs.Save(context.Background(), key, data); err != nil {
		t.Fatalf("SeedDocument() failed: %v", err)
	}
}

// LoadDocument decodes the document stored under key into v.
func LoadDocument(t *testing.T, docs core.DocumentStore, key string, v interface{}) {
	data, err := docs.Load(context.Background(), key)
	if err != nil {
		t.Fatalf("LoadDocument(%s) failed: %v", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		t.Fatalf("LoadDocument(%s) failed: %v", key, err)
	}
}

// FailingDocs is a document store whose writes always fail.
type FailingDocs struct {
	core.DocumentStore
	Writes int
}

func (f *FailingDocs) Save(context.Context, string, []byte) error {
	f.Writes++
	return fmt.Errorf("saving: %w", errDiskFull)
}

// Recorder counts what the stores report.
type Recorder struct {
	mu sync.Mutex

	Mutations       map[string]int // "tool/op/outcome"
	Dropped         int
	Snapped         int
	PersistFailures int
}

var _ core.Recorder = (*Recorder)(nil)

func NewRecorder() *Recorder {
	return &Recorder{Mutations: make(map[string]int)}
}

func (r *Recorder) ObserveMutation(tool, op, outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Mutations[tool+"/"+op+"/"+outcome]++
}

func (r *Recorder) ObserveRepair(_ string, dropped, snapped int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Dropped += dropped
	r.Snapped += snapped
}

func (r *Recorder) ObservePersistFailure(string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.PersistFailures++
}
