package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/Speakceo/speakceo-education-platform-sub002/core"
	"github.com/Speakceo/speakceo-education-platform-sub002/core/brand"
	"github.com/Speakceo/speakceo-education-platform-sub002/core/canvas"
	"github.com/Speakceo/speakceo-education-platform-sub002/core/financial"
	"github.com/Speakceo/speakceo-education-platform-sub002/core/pitch"
)

const (
	formatYAML = "yaml"
	formatJSON = "json"
)

var errUnknownFormat = errors.New("format must be yaml or json")

// cells prints the canvas cell catalog.
func (cli *commandLine) cells(format string) error {
	cells := canvas.Cells()
	switch format {
	case formatYAML:
		enc := yaml.NewEncoder(cli.out)
		enc.SetIndent(2)
		if err := enc.Encode(cells); err != nil {
			return errors.Wrap(err, "encoding cells")
		}
		return enc.Close()
	case formatJSON:
		return cli.printJSON(cells)
	default:
		return errUnknownFormat
	}
}

// list prints the keys of the stored documents of a kind.
func (cli *commandLine) list(kind string) error {
	keys, err := cli.lister.Keys(context.Background(), kind)
	if err != nil {
		return errors.Wrapf(err, "listing %s documents", kind)
	}
	for _, key := range keys {
		fmt.Fprintln(cli.out, key)
	}
	return nil
}

func (cli *commandLine) inspect(learnerID string) error {
	ws, err := cli.workspaces.Open(context.Background(), learnerID)
	if err != nil {
		return err
	}
	return cli.printJSON(ws.Canvas.State())
}

// repair rewrites a stored business model once Rehydrate had to fix it.
func (cli *commandLine) repair(learnerID string) error {
	ctx := context.Background()
	key := core.DocumentKey(core.DocCanvas, learnerID)

	data, err := cli.docs.Load(ctx, key)
	if err != nil {
		if errors.Cause(err) == core.ErrNotFound {
			fmt.Fprintf(cli.out, "%s: nothing stored\n", key)
			return nil
		}
		return errors.Wrapf(err, "loading %s", key)
	}
	model, report, err := canvas.Rehydrate(data)
	if err != nil {
		return err
	}
	if report.IsClean() {
		fmt.Fprintf(cli.out, "%s: clean\n", key)
		return nil
	}

	model.Version++
	if err = core.SaveJSON(ctx, cli.docs, key, model); err != nil {
		return errors.Wrapf(err, "saving %s", key)
	}
	fmt.Fprintf(cli.out, "%s: dropped %d, snapped %d\n", key, report.Dropped, report.Snapped)
	return nil
}

// reset overwrites every tool document of a learner with its empty value.
func (cli *commandLine) reset(learnerID string) error {
	ctx := context.Background()
	empty := map[string]interface{}{
		core.DocCanvas:    canvas.BusinessModel{Components: []canvas.Component{}, Suggestions: []string{}},
		core.DocFinancial: financial.Projection{Revenues: []financial.LineItem{}, Expenses: []financial.LineItem{}},
		core.DocPitch:     pitch.Pitch{},
	}
	for _, kind := range []string{core.DocCanvas, core.DocFinancial, core.DocPitch} {
		key := core.DocumentKey(kind, learnerID)
		if err := core.SaveJSON(ctx, cli.docs, key, empty[kind]); err != nil {
			return errors.Wrapf(err, "resetting %s", key)
		}
	}
	if err := brand.NewRepository(cli.docs).Put(ctx, learnerID, brand.Placeholder()); err != nil {
		return errors.Wrap(err, "resetting brand identity")
	}
	fmt.Fprintf(cli.out, "%s: reset\n", learnerID)
	return nil
}

func (cli *commandLine) progress(learnerID string) error {
	ctx := context.Background()
	ws, err := cli.workspaces.Open(ctx, learnerID)
	if err != nil {
		return err
	}
	report, err := ws.Progress(ctx)
	if err != nil {
		return err
	}
	return cli.printJSON(report)
}

// printJSON indents its output when writing to a terminal.
func (cli *commandLine) printJSON(v interface{}) error {
	enc := json.NewEncoder(cli.out)
	if isTerminalFunc() {
		enc.SetIndent("", "  ")
	}
	return errors.Wrap(enc.Encode(v), "encoding json")
}
