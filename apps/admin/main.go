package main

import (
	"context"
	"log"
	"os"

	"github.com/Speakceo/speakceo-education-platform-sub002/core"
	"github.com/Speakceo/speakceo-education-platform-sub002/core/workspace"
	logsvc "github.com/Speakceo/speakceo-education-platform-sub002/services/logger"
	"github.com/Speakceo/speakceo-education-platform-sub002/storage/database"
	inmemdb "github.com/Speakceo/speakceo-education-platform-sub002/storage/database/inmem"
	redisdb "github.com/Speakceo/speakceo-education-platform-sub002/storage/database/redis"
	sqlxdb "github.com/Speakceo/speakceo-education-platform-sub002/storage/database/sqlx"
)

var logger core.Logger

func main() {
	defer os.Exit(0)

	conf := core.NewConfig()
	stdLogger := log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	rbLogger := logsvc.NewRollbarLogger(stdLogger, conf)
	defer rbLogger.Close()
	logger = rbLogger

	ctx, cancel := context.WithTimeout(context.Background(), conf.Storage.ConnectTimeout)
	defer cancel()
	cli := commandLine{secretKey: conf.SecretKey, out: os.Stdout}

	// set up storage
	switch conf.Storage.Backend {
	case core.StoragePostgres:
		errAndDie(database.CreateIfNotExist(ctx, conf))
		db, err := database.Open(ctx, conf)
		errAndDie(err)
		defer db.Close()
		docs := sqlxdb.NewDocumentStore(db)
		cli.db, cli.docs, cli.lister = db, docs, docs
	case core.StorageRedis:
		rdb, err := redisdb.Open(ctx, conf)
		errAndDie(err)
		defer rdb.Close()
		docs := redisdb.NewDocumentStore(rdb, conf.Redis.TTL)
		cli.docs, cli.lister = docs, docs
	default:
		db, err := inmemdb.Open()
		errAndDie(err)
		docs := inmemdb.NewDocumentStore(db)
		cli.docs, cli.lister = docs, docs
	}
	cli.workspaces = workspace.NewManager(workspace.Options{Docs: cli.docs, Logger: logger})

	// start CLI
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			stdLogger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err.Error(), err)
	}
}
