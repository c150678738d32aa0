// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package main

import (
	"fmt"
	"io"

	"github.com/go-air/viable"
	"github.com/go-air/viable/internal/scenario"
	"github.com/go-air/viable/metrics"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
)

// RunOptions holds the flags of the run command.
type RunOptions struct {
	Stats   bool
	Metrics bool
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{}
	cmd := &cobra.Command{
		Use:   "run <scenario>...",
		Short: "Replay scenarios and print their transcripts",
		Long: `Replay each scenario on a fresh tracker and print a transcript of
the domains after each step.  Files ending in .gz or .bz2 are decompressed;
"-" reads standard input.  Logs go to standard error.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range args {
				if err := runScenario(rootOpts, opts, p, cmd); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&opts.Stats, "stats", false, "print statistics after each scenario")
	cmd.Flags().BoolVar(&opts.Metrics, "metrics", false, "print prometheus metrics after each scenario")
	cmd.MarkFlagsMutuallyExclusive("stats", "metrics")
	return cmd
}

func runScenario(rootOpts *RootOptions, opts *RunOptions, p string, cmd *cobra.Command) error {
	sc, err := loadScenario(p, cmd.InOrStdin())
	if err != nil {
		return err
	}
	if err := rootOpts.apply(&sc.Config); err != nil {
		return errors.Wrap(err, p)
	}
	out := cmd.OutOrStdout()
	log := sc.Config.NewLogger(cmd.ErrOrStderr())
	fmt.Fprintf(out, "# %s (%s)\n", sc.Name, sc.Config.Strategy)
	v, err := scenario.Run(sc, out, viable.WithLogger(log))
	if err != nil {
		return err
	}
	switch {
	case opts.Metrics:
		return writeMetrics(out, v)
	case opts.Stats:
		st := &viable.Stats{}
		v.ReadStats(st)
		fmt.Fprint(out, st)
		fmt.Fprint(out, v.DiagramStats())
	}
	return nil
}

func writeMetrics(w io.Writer, v *viable.Viable) error {
	c := metrics.NewCollector(v)
	reg := prometheus.NewRegistry()
	if err := c.Register(reg); err != nil {
		return err
	}
	if err := c.HandleMetrics(); err != nil {
		return err
	}
	mfs, err := reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "check <scenario>...",
		Short:         "Parse and validate scenarios without running them",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range args {
				sc, err := loadScenario(p, cmd.InOrStdin())
				if err != nil {
					return err
				}
				if err := rootOpts.apply(&sc.Config); err != nil {
					return errors.Wrap(err, p)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "ok %s: %d steps\n", sc.Name, len(sc.Steps))
			}
			return nil
		},
	}
}
