package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/term"

	"github.com/Speakceo/speakceo-education-platform-sub002/core"
	"github.com/Speakceo/speakceo-education-platform-sub002/core/workspace"
)

var (
	isTerminalFunc = func() bool { return term.IsTerminal(int(os.Stdout.Fd())) } // mockable

	errHelp       = errors.New("help provided")
	errNoDatabase = errors.New("migrations require the postgres storage backend")
	errBadTTL     = errors.New("ttl must be positive")
)

type commandLine struct {
	db         *sqlx.DB // nil unless the postgres backend is configured
	docs       core.DocumentStore
	lister     core.DocumentLister
	workspaces *workspace.Manager
	secretKey  string
	out        io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate COMMAND [ARGS] - run a goose migration command (up, down, status, ...)")
	fmt.Println("  cells [-format yaml|json] - print the canvas cell catalog")
	fmt.Println("  list [-kind KIND] - list stored document keys (canvas, financial, pitch, brand)")
	fmt.Println("  inspect -learner ID - print a learner's business model")
	fmt.Println("  repair -learner ID - repair and save a learner's stored business model")
	fmt.Println("  reset -learner ID - reset every tool of a learner")
	fmt.Println("  progress -learner ID - print a learner's progress report")
	fmt.Println("  token -learner ID [-ttl DURATION] - issue an API token for a learner")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	cellsCmd := flag.NewFlagSet("cells", flag.ContinueOnError)
	cellsFormat := cellsCmd.String("format", formatYAML, "Output format: yaml or json.")

	listCmd := flag.NewFlagSet("list", flag.ContinueOnError)
	listKind := listCmd.String("kind", core.DocCanvas, "The kind of documents to list.")

	learnerCmds := make(map[string]*flag.FlagSet)
	learnerIDs := make(map[string]*string)
	for _, name := range []string{"inspect", "repair", "reset", "progress", "token"} {
		fs := flag.NewFlagSet(name, flag.ContinueOnError)
		learnerIDs[name] = fs.String("learner", "", "The learner's id.")
		learnerCmds[name] = fs
	}
	tokenTTL := learnerCmds["token"].Duration("ttl", 24*time.Hour, "How long the token stays valid.")

	switch cmd := args[1]; cmd {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "cells":
		if err := cellsCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.cells(*cellsFormat)
	case "list":
		if err := listCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.list(*listKind)
	case "inspect", "repair", "reset", "progress", "token":
		if err := learnerCmds[cmd].Parse(args[2:]); err != nil {
			return err
		}
		learnerID := core.CleanString(*learnerIDs[cmd])
		if learnerID == "" {
			learnerCmds[cmd].Usage()
			return errHelp
		}
		switch cmd {
		case "inspect":
			return cli.inspect(learnerID)
		case "repair":
			return cli.repair(learnerID)
		case "reset":
			return cli.reset(learnerID)
		case "token":
			return cli.token(learnerID, *tokenTTL)
		default:
			return cli.progress(learnerID)
		}
	default:
		cli.printUsage()
		return errHelp
	}
}
