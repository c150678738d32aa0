// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package main

import (
	"fmt"

	"github.com/go-air/viable/config"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// Version is the version printed by the version command.
var Version = "0.1.0"

// RootOptions holds global flags for all commands.
type RootOptions struct {
	LogLevel    string
	Strategy    string
	Imprecision string
}

// apply overrides the fields of cfg set by flags.
func (o *RootOptions) apply(cfg *config.Config) error {
	if o.Strategy != "" {
		cfg.Strategy = config.Strategy(o.Strategy)
	}
	if o.Imprecision != "" {
		cfg.Imprecision = config.Imprecision(o.Imprecision)
	}
	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
	}
	return cfg.Validate()
}

// NewRootCommand creates the root command of the viable CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "viable",
		Short: "viable - bit-vector domain tracker",
		Long:  "Replay scenarios of narrowing and backtracking on the viable values of bit-vector variables.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if err := opts.apply(&cfg); err != nil {
				return errors.Wrap(err, "invalid flags")
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level (overrides scenario config)")
	cmd.PersistentFlags().StringVar(&opts.Strategy, "strategy", "", "domain strategy: symbolic|interval (overrides scenario config)")
	cmd.PersistentFlags().StringVar(&opts.Imprecision, "imprecision", "", "interval imprecision policy: over|under (overrides scenario config)")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewCheckCommand(opts))
	cmd.AddCommand(NewVersionCommand())

	return cmd
}

// NewVersionCommand creates the version command.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "viable %s\n", Version)
		},
	}
}
