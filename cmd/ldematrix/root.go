// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/ldematrix/batch"
	"github.com/katalvlaran/ldematrix/config"
	"github.com/katalvlaran/ldematrix/pattern"
	"github.com/katalvlaran/ldematrix/refdata"
	"github.com/katalvlaran/ldematrix/store"
)

const shutdownTimeout = 5 * time.Second

// app carries the state shared by every subcommand.
type app struct {
	// flags
	cfgPath  string
	logLevel string
	workers  int
	inMemory bool

	cfg     config.Config
	logger  *slog.Logger
	reg     *prometheus.Registry
	metrics *batch.Metrics
	server  *http.Server
	errOut  io.Writer
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{errOut: errOut}
	root := &cobra.Command{
		Use:   "ldematrix",
		Short: "Case matching, rearrangement and dedupe of 6x6 count-matrix patterns",
		Long: `ldematrix works on 6x6 patterns over the values 0..3 written as
"[a,b,c,d,e,f][...]..." (six rows), or with legacy "N M" pair tokens.

Subcommands:
  classify   - match case, sub-case and first rearrangement for a pattern file
  rearrange  - list the arrangements of one pattern aligned with its case
  subcase    - report case and sub-case of one pattern
  dedupe     - drop patterns equivalent under transpose, 2<->3 swap and permutation
  tgate      - apply T-gate products, LDE reductions and expand assignments
  ortho      - check the orthonormality conditions of one pattern`,
		SilenceUsage:       true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
	}
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgPath, "config", "", "YAML config file")
	pf.StringVar(&a.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	pf.IntVar(&a.workers, "workers", 0, "override the worker limit")
	pf.BoolVar(&a.inMemory, "in-memory", false, "keep the result store in memory")

	root.AddCommand(
		a.classifyCmd(),
		a.rearrangeCmd(),
		a.subcaseCmd(),
		a.dedupeCmd(),
		a.tgateCmd(),
		a.orthoCmd(),
	)

	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	config.LoadEnv()
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.workers != 0 {
		cfg.Workers = a.workers
	}
	if a.inMemory {
		cfg.Store.InMemory = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = cfg.Logger(a.errOut)

	a.reg = prometheus.NewRegistry()
	a.metrics = batch.NewMetrics(a.reg)
	if cfg.Metrics.Addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(a.reg, promhttp.HandlerOpts{}))
		a.server = &http.Server{Addr: cfg.Metrics.Addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.logger.Error("metrics endpoint", slog.String("error", err.Error()))
			}
		}()
		a.logger.Info("serving metrics", slog.String("addr", cfg.Metrics.Addr))
	}

	return nil
}

func (a *app) teardown(*cobra.Command, []string) error {
	if a.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return a.server.Shutdown(ctx)
}

// batchOptions maps the configuration onto driver options.
func (a *app) batchOptions(extra ...batch.Option) []batch.Option {
	opts := []batch.Option{
		batch.WithWorkers(a.cfg.Workers),
		batch.WithLogger(a.logger),
		batch.WithMetrics(a.metrics),
	}
	if a.cfg.ExtraBrackets {
		opts = append(opts, batch.WithExtraBrackets())
	}

	return append(opts, extra...)
}

func (a *app) table() (refdata.Table, error) {
	if a.cfg.RefData == "" {
		return refdata.Default()
	}
	tbl, err := refdata.LoadFile(a.cfg.RefData)
	if err != nil {
		return nil, err
	}
	if err := tbl.Validate(); err != nil {
		return nil, fmt.Errorf("reference table %s: %w", a.cfg.RefData, err)
	}

	return tbl, nil
}

func (a *app) openStore() (*store.Store, error) {
	return store.Open(store.Config{
		Path:       a.cfg.Store.Path,
		InMemory:   a.cfg.Store.InMemory,
		SyncWrites: a.cfg.Store.SyncWrites,
		Logger:     a.logger.With(slog.String("component", "badger")),
	})
}

// parsePattern reads a pattern argument in the configured line form.
func (a *app) parsePattern(arg string) (*pattern.Pattern, error) {
	if a.cfg.ExtraBrackets {
		arg = pattern.NormalizeBracketed(arg)
	}

	return pattern.New(1, arg)
}
