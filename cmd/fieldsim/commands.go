// SPDX-License-Identifier: MIT
// Package: fieldsim/cmd/fieldsim

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/fieldsim/config"
	"github.com/katalvlaran/fieldsim/sim"
	"github.com/katalvlaran/fieldsim/topology"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a scenario and print every device's value each round",
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := loadScenario(cmd)
			if err != nil {
				return err
			}
			env, err := setup(cmd.Context(), cmd, sc)
			if err != nil {
				return err
			}
			defer env.close()

			out := cmd.OutOrStdout()
			jsonOut, _ := cmd.Flags().GetBool("json")
			opts := env.opts
			if !jsonOut {
				opts = append(opts, sim.WithRoundHook(func(round uint64, values []float64) {
					printRound(out, round, values)
				}))
			}

			res, err := sim.Run(cmd.Context(), sc, opts...)
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(out, summarize(res))
			}
			if res.RunID != "" {
				fmt.Fprintf(out, "trace run %s\n", res.RunID)
			}

			return nil
		},
	}
	addScenarioFlags(cmd)
	cmd.Flags().Bool("json", false, "Print the final result as JSON instead of per-round values")

	return cmd
}

func newVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Run a scenario and check the final field against shortest paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := loadScenario(cmd)
			if err != nil {
				return err
			}
			env, err := setup(cmd.Context(), cmd, sc)
			if err != nil {
				return err
			}
			defer env.close()

			out := cmd.OutOrStdout()
			res, err := sim.Verify(cmd.Context(), sc, env.opts...)
			if res != nil {
				for _, m := range res.Mismatches {
					fmt.Fprintf(out, "  Device %d -> %s, expected %s\n", m.Node, formatValue(m.Got), formatValue(m.Expected))
				}
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "settled after %d rounds: %d of %d devices reached\n", res.Rounds, res.Reached, res.Nodes)

			return nil
		},
	}
	addScenarioFlags(cmd)

	return cmd
}

func newBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <scenario.yaml>...",
		Short: "Run several scenario files concurrently and summarise them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scenarios := make([]*config.Scenario, 0, len(args))
			for _, path := range args {
				sc, err := config.Load(path)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				applyRuntimeFlags(cmd, sc)
				if sc.Name == config.Default().Name {
					sc.Name = path
				}
				scenarios = append(scenarios, sc)
			}

			// runtime settings come from the flags and the first file
			env, err := setup(cmd.Context(), cmd, scenarios[0])
			if err != nil {
				return err
			}
			defer env.close()

			parallel, _ := cmd.Flags().GetInt("parallel")
			opts := append(env.opts, sim.WithParallelism(parallel))
			results, err := sim.RunBatch(cmd.Context(), scenarios, opts...)
			if err != nil {
				return err
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			out := cmd.OutOrStdout()
			if jsonOut {
				sums := make([]summary, len(results))
				for i, r := range results {
					sums[i] = summarize(r)
				}
				return writeJSON(out, sums)
			}
			for _, r := range results {
				fmt.Fprintf(out, "%-20s %-8s nodes=%-5d rounds=%-5d reached=%-5d settled=%t\n",
					r.Name, r.Kind, r.Nodes, r.Rounds, r.Reached, r.Settled())
			}

			return nil
		},
	}
	cmd.Flags().Int("parallel", 0, "Concurrent runs (0 = GOMAXPROCS)")
	cmd.Flags().Bool("json", false, "Output as JSON")

	return cmd
}

func newNeighborsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "neighbors",
		Short: "Print each device's neighbourhood after the scenario's rounds",
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := loadScenario(cmd)
			if err != nil {
				return err
			}
			env, err := setup(cmd.Context(), cmd, sc)
			if err != nil {
				return err
			}
			defer env.close()

			res, err := sim.Run(cmd.Context(), sc, env.opts...)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for id, nbrs := range adjacency(res.Nodes, res.Edges) {
				parts := make([]string, len(nbrs))
				for i, n := range nbrs {
					parts[i] = strconv.Itoa(int(n))
				}
				fmt.Fprintf(out, "%d: %s\n", id, strings.Join(parts, " "))
			}
			fmt.Fprintf(out, "components: %d\n", len(res.Components))

			return nil
		},
	}
	addScenarioFlags(cmd)

	return cmd
}

// printRound writes one round in the console host's format.
func printRound(w io.Writer, round uint64, values []float64) {
	fmt.Fprintf(w, "Round %d\n", round)
	for id, v := range values {
		fmt.Fprintf(w, "  Device %d -> %s\n", id, formatValue(v))
	}
	fmt.Fprintln(w)
}

func formatValue(v float64) string {
	if math.IsInf(v, 1) {
		return "unreached"
	}

	return strconv.FormatFloat(v, 'g', -1, 64)
}

// adjacency turns sorted edges into per-node ascending neighbour lists.
func adjacency(n int, edges []topology.Edge) [][]topology.NodeID {
	out := make([][]topology.NodeID, n)
	for _, e := range edges {
		out[e.A] = append(out[e.A], e.B)
		out[e.B] = append(out[e.B], e.A)
	}
	for _, nbrs := range out {
		slices.Sort(nbrs)
	}

	return out
}

type summary struct {
	Name    string     `json:"name"`
	Kind    string     `json:"topology"`
	Program string     `json:"program"`
	Nodes   int        `json:"nodes"`
	Rounds  uint64     `json:"rounds"`
	Reached int        `json:"reached"`
	Settled bool       `json:"settled"`
	Values  []*float64 `json:"values"`
	RunID   string     `json:"run_id,omitempty"`
}

// summarize renders unreached values as JSON null.
func summarize(r *sim.Result) summary {
	values := make([]*float64, len(r.Values))
	for i := range r.Values {
		if !math.IsInf(r.Values[i], 1) {
			values[i] = &r.Values[i]
		}
	}

	return summary{
		Name:    r.Name,
		Kind:    r.Kind,
		Program: r.Program,
		Nodes:   r.Nodes,
		Rounds:  r.Rounds,
		Reached: r.Reached,
		Settled: r.Settled(),
		Values:  values,
		RunID:   r.RunID,
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}
