package dig_container

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/dig"

	echoapi "github.com/Speakceo/speakceo-education-platform-sub002/apps/api/echo"
	"github.com/Speakceo/speakceo-education-platform-sub002/core"
	"github.com/Speakceo/speakceo-education-platform-sub002/core/canvas"
	"github.com/Speakceo/speakceo-education-platform-sub002/core/workspace"
	advisorsvc "github.com/Speakceo/speakceo-education-platform-sub002/services/advisor"
	logsvc "github.com/Speakceo/speakceo-education-platform-sub002/services/logger"
	metricsvc "github.com/Speakceo/speakceo-education-platform-sub002/services/metrics"
	"github.com/Speakceo/speakceo-education-platform-sub002/storage/database"
	inmemdb "github.com/Speakceo/speakceo-education-platform-sub002/storage/database/inmem"
	redisdb "github.com/Speakceo/speakceo-education-platform-sub002/storage/database/redis"
	sqlxdb "github.com/Speakceo/speakceo-education-platform-sub002/storage/database/sqlx"
)

type DBLoggerParam struct {
	dig.In
	Logger core.Logger `name:"dbLogger"`
}

// Storage is the document store selected by core.StorageConfig.Backend.
type Storage struct {
	dig.Out
	Docs   core.DocumentStore
	Lister core.DocumentLister
	Closer io.Closer
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

type documentBackend interface {
	core.DocumentStore
	core.DocumentLister
}

func newLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "API : ", log.LstdFlags)
	return logsvc.NewRollbarLogger(stdLogger, conf)
}

func newDBLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	return logsvc.NewRollbarLogger(stdLogger, conf)
}

func openPostgres(ctx context.Context, conf *core.Config) (documentBackend, io.Closer, error) {
	if err := database.CreateIfNotExist(ctx, conf); err != nil {
		return nil, nil, err
	}
	db, err := database.Open(ctx, conf)
	if err != nil {
		return nil, nil, err
	}
	if err = database.Migrate(db, "up"); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return sqlxdb.NewDocumentStore(db), db, nil
}

func openRedis(ctx context.Context, conf *core.Config) (documentBackend, io.Closer, error) {
	rdb, err := redisdb.Open(ctx, conf)
	if err != nil {
		return nil, nil, err
	}
	return redisdb.NewDocumentStore(rdb, conf.Redis.TTL), rdb, nil
}

func openMemory(context.Context, *core.Config) (documentBackend, io.Closer, error) {
	db, err := inmemdb.Open()
	if err != nil {
		return nil, nil, err
	}
	return inmemdb.NewDocumentStore(db), closerFunc(func() error { return nil }), nil
}

func newStorage(conf *core.Config, loggerParam DBLoggerParam) Storage {
	var open func(context.Context, *core.Config) (documentBackend, io.Closer, error)
	switch conf.Storage.Backend {
	case core.StoragePostgres:
		open = openPostgres
	case core.StorageRedis:
		open = openRedis
	case core.StorageMemory, "":
		open = openMemory
	default:
		err := errors.Errorf("unknown storage backend %q", conf.Storage.Backend)
		loggerParam.Logger.Fatal(err.Error(), err)
		return Storage{}
	}

	ctx, cancel := context.WithTimeout(context.Background(), conf.Storage.ConnectTimeout)
	defer cancel()

	docs, closer, err := open(ctx, conf)
	if err != nil {
		loggerParam.Logger.Fatal(fmt.Sprintf("setting up %s storage: %v", conf.Storage.Backend, err), err)
	}
	return Storage{Docs: docs, Lister: docs, Closer: closer}
}

func newRecorder() (*metricsvc.PrometheusRecorder, core.Recorder) {
	rec := metricsvc.NewPrometheusRecorder()
	return rec, rec
}

func newAdvisor() canvas.Advisor {
	return advisorsvc.NewRuleAdvisor()
}

func newWorkspaceManager(conf *core.Config, docs core.DocumentStore, logger core.Logger, rec *metricsvc.PrometheusRecorder) *workspace.Manager {
	m := workspace.NewManager(workspace.Options{
		Docs:        docs,
		Logger:      logger,
		Recorder:    rec,
		IdleTimeout: conf.Workspace.IdleTimeout,
	})
	rec.ObserveOpenWorkspaces(m.Len)
	return m
}

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(newLogger))
	must(c.Provide(newDBLogger, dig.Name("dbLogger")))
	must(c.Provide(newStorage))
	must(c.Provide(newRecorder))
	must(c.Provide(newAdvisor))
	must(c.Provide(newWorkspaceManager))
	must(c.Provide(validator.New))
	must(c.Provide(core.NewTranslator))
	must(c.Provide(echoapi.NewServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
