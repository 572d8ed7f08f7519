package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	tgapp "github.com/tollgate-dao/tollgate/cmd/tollgate/app"
	"github.com/tollgate-dao/tollgate/errors"
)

// execResult is the outcome of a single transaction.
type execResult struct {
	Path  string            `json:"path"`
	Data  string            `json:"data,omitempty"`
	Log   string            `json:"log,omitempty"`
	Tags  map[string]string `json:"tags,omitempty"`
	Code  uint32            `json:"code,omitempty"`
	Error string            `json:"error,omitempty"`
}

func cmdExec(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Read JSON transactions from the standard input and execute them in a single
block. A transaction is an object with "signers", "path" and "msg"
attributes. A failed transaction does not change the state and does not stop
the execution of the following ones. The block is committed at the end and
the result of each transaction is printed.
`)
		fl.PrintDefaults()
	}
	var (
		homeFl    = homeFlag(fl)
		verboseFl = verboseFlag(fl)
		timeFl    = fl.String("time", "", "Block time in RFC 3339 format. Defaults to now.")
		metricsFl = fl.String("metrics", "", "Write the collected metrics to this file in the prometheus text format.")
	)
	fl.Parse(args)

	blockTime, err := parseTime(*timeFl)
	if err != nil {
		return err
	}
	txs, err := tgapp.ReadTxs(input)
	if err != nil {
		return err
	}

	base, _, err := openApp(*homeFl, *verboseFl)
	if err != nil {
		return err
	}
	defer base.Close()
	if err := base.BeginBlock(blockTime); err != nil {
		return err
	}

	results := make([]execResult, 0, len(txs))
	for _, tx := range txs {
		r := execResult{Path: tx.Path}
		res, err := base.DeliverTx(tx)
		if err != nil {
			r.Code, r.Error = errors.ABCIInfo(err, false)
		} else {
			r.Data = fmt.Sprintf("%X", res.Data)
			r.Log = res.Log
			if len(res.Tags) != 0 {
				r.Tags = make(map[string]string, len(res.Tags))
				for _, t := range res.Tags {
					r.Tags[string(t.Key)] = string(t.Value)
				}
			}
		}
		results = append(results, r)
	}

	id, err := base.Commit()
	if err != nil {
		return err
	}
	if *metricsFl != "" {
		if err := writeMetrics(*metricsFl); err != nil {
			return err
		}
	}
	return writeJSON(output, map[string]interface{}{
		"height":  id.Version,
		"hash":    fmt.Sprintf("%X", id.Hash),
		"results": results,
	})
}

func writeMetrics(path string) error {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return fmt.Errorf("cannot gather metrics: %s", err)
	}
	fd, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("cannot create metrics file: %s", err)
	}
	defer fd.Close()
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(fd, mf); err != nil {
			return fmt.Errorf("cannot write metrics: %s", err)
		}
	}
	return fd.Close()
}
