// SPDX-License-Identifier: MIT
// Package: fieldsim/cmd/fieldsim
//
// fieldsim is the console host: it runs gradient scenarios, prints the field
// round by round, verifies settled fields and inspects neighbourhoods.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fieldsim",
		Short: "Gradient field simulator",
		Long: `fieldsim simulates self-stabilising gradients over a network of devices.

Each round every device reads its neighbours' latest values and computes its
own: hop counts over a degree-capped topology, or accumulated Euclidean
distance over a distance-threshold topology that follows moving devices.`,
		SilenceUsage: true,
	}

	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.StringP("config", "c", "", "Scenario YAML file (defaults reproduce the console host)")
	pf.String("log-level", "", "Log level: panic, fatal, error, warn, info, debug, trace")
	pf.String("log-format", "", "Log format: text or json")
	pf.String("metrics-addr", "", "Serve Prometheus metrics on this address while running")
	pf.String("trace", "", "Record every round into this SQLite file")

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(),
		newVerifyCmd(),
		newBatchCmd(),
		newNeighborsCmd(),
	)

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "fieldsim version %s\n", version)
		},
	}
}
