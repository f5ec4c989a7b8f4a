// Copyright 2026 PingCAP, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pingcap/log"
	"github.com/pingcap/mru-cleaner/cmd/mru-cleaner/config"
	"github.com/pingcap/mru-cleaner/pkg/cleaner"
	"github.com/pingcap/mru-cleaner/pkg/errors"
	"github.com/pingcap/mru-cleaner/pkg/host"
	"github.com/pingcap/mru-cleaner/pkg/host/regfile"
	"github.com/pingcap/mru-cleaner/pkg/host/sqlstore"
	"github.com/pingcap/mru-cleaner/pkg/logutil"
	"github.com/pingcap/mru-cleaner/pkg/metrics"
	"github.com/pingcap/mru-cleaner/pkg/mru"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	ExitCodeInvalidConfig      = 2
	ExitCodeDecodeConfigFailed = 3
)

const (
	FlagConfig   = "config"
	FlagDryRun   = "dry-run"
	FlagLogLevel = "log-level"
	FlagLogFile  = "log-file"
)

type options struct {
	cfgPath  string
	dryRun   bool
	logLevel string
	logFile  string
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

func execute(args []string, stdout, stderr io.Writer) int {
	var (
		opts     options
		exitCode int
	)
	rootCmd := &cobra.Command{
		Use:   "mru-cleaner",
		Short: "Remove stale entries from host MRU lists",
		Long: "Remove entries whose file no longer exists from the most-recently-used lists of a host application. " +
			"Lists that cannot be resolved are skipped silently.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			exitCode = run(cmd, &opts, stdout, stderr)
			return nil
		},
	}
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.Flags().StringVarP(&opts.cfgPath, FlagConfig, "c", "", "configuration file path (required)")
	rootCmd.Flags().BoolVar(&opts.dryRun, FlagDryRun, false, "report stale entries without removing them")
	rootCmd.Flags().StringVar(&opts.logLevel, FlagLogLevel, "", "log level, overrides the configuration file")
	rootCmd.Flags().StringVar(&opts.logFile, FlagLogFile, "", "log file path, overrides the configuration file")
	_ = rootCmd.MarkFlagRequired(FlagConfig)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitCodeInvalidConfig
	}
	return exitCode
}

func run(cmd *cobra.Command, opts *options, stdout, stderr io.Writer) int {
	cfg, err := config.LoadConfig(opts.cfgPath)
	if err != nil {
		fmt.Fprintf(stderr, "failed to load config: %v\n", err)
		return ExitCodeDecodeConfigFailed
	}
	if cmd.Flags().Changed(FlagDryRun) {
		cfg.DryRun = opts.dryRun
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	if opts.logFile != "" {
		cfg.LogFile = opts.logFile
	}
	if err := logutil.InitLogger(&logutil.Config{Level: cfg.LogLevel, File: cfg.LogFile}); err != nil {
		fmt.Fprintf(stderr, "failed to init logger: %v\n", err)
		return ExitCodeInvalidConfig
	}
	defer func() {
		_ = log.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	metrics.InitCleanerMetrics(registry)

	cleaners, closers := buildCleaners(cfg)
	defer func() {
		for _, c := range closers {
			if err := c.Close(); err != nil {
				log.Warn("close mru store failed", zap.Error(err))
			}
		}
	}()

	reports := cleaner.RunAll(ctx, cleaners)
	for _, r := range reports {
		fmt.Fprintf(stdout, "%s: %s, removed %d of %d", r.List, r.Outcome, r.Result.Removed, r.Result.Scanned)
		if r.DryRun {
			fmt.Fprint(stdout, " (dry run)")
		}
		fmt.Fprintln(stdout)
		for _, path := range r.Result.RemovedPaths {
			fmt.Fprintf(stdout, "  - %s\n", path)
		}
	}

	if cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsFile, registry); err != nil {
			log.Warn("write metrics file failed",
				zap.String("path", cfg.MetricsFile),
				zap.Error(err))
		}
	}
	return 0
}

// buildCleaners creates a cleaner per configured list. A list whose store
// cannot even be opened still gets a cleaner, which skips it at run time.
func buildCleaners(cfg *config.Config) ([]*cleaner.Cleaner, []io.Closer) {
	var (
		cleaners []*cleaner.Cleaner
		closers  []io.Closer
	)
	for _, l := range cfg.Lists {
		var accessor host.Accessor
		switch l.Kind {
		case config.KindRegfile:
			accessor = regfile.New(l.Path, l.Key)
		case config.KindMySQL:
			store, err := sqlstore.Open(l.DSN, l.ListID)
			if err != nil {
				log.Warn("open mru store failed",
					zap.String("list", l.Name),
					zap.Error(err))
				accessor = unavailable(l.Name, err)
				break
			}
			accessor = store
			closers = append(closers, store)
		default:
			accessor = unavailable(l.Name, errors.Errorf("unsupported kind %s", l.Kind))
		}
		cleaners = append(cleaners, cleaner.New(l.Name, accessor,
			cleaner.WithDryRun(cfg.DryRun),
			cleaner.WithExistsFunc(mru.NewExistsFunc(mru.ExistsOptions{AllowDirectories: l.AllowDirectories})),
		))
	}
	return cleaners, closers
}

func unavailable(name string, cause error) host.Accessor {
	return host.AccessorFunc(func(context.Context) (mru.List, error) {
		return nil, errors.WrapError(errors.ErrMRUListUnavailable, cause, name)
	})
}
