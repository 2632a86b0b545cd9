package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/aretw0/palisade/internal/cli"
	"github.com/aretw0/palisade/internal/presentation/tui"
	"github.com/aretw0/palisade/pkg/domain"
	"github.com/spf13/cobra"
)

var evalCmd = &cobra.Command{
	Use:   "eval <target>",
	Short: "Evaluate one transition",
	Long: `Runs the guard chain for a single transition and prints the decision.
Parameters are passed as key=value pairs:

  palisade eval /admin --param subject=alice --dir ./routes`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := optionsFromFlags(cmd)
		origin, _ := cmd.Flags().GetString("origin")
		paramPairs, _ := cmd.Flags().GetStringToString("param")
		queryPairs, _ := cmd.Flags().GetStringToString("query")
		jsonOut, _ := cmd.Flags().GetBool("json")

		logger := cli.CreateLogger(opts.Debug)

		engine, _, err := cli.NewEngine(opts, logger)
		if err != nil {
			return fmt.Errorf("error initializing palisade: %w", err)
		}

		sigCtx := cli.NewSignalContext(context.Background())
		defer sigCtx.Cancel()

		req := domain.NewTransitionRequest(args[0], origin, paramPairs, queryPairs)
		decision, err := engine.Evaluate(sigCtx, req)
		if err != nil {
			return fmt.Errorf("evaluation failed: %w", err)
		}

		if jsonOut {
			return json.NewEncoder(os.Stdout).Encode(decision)
		}

		fmt.Print(tui.FormatDecision(decision))
		if !decision.Allowed() {
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(evalCmd)
	evalCmd.Flags().String("origin", "", "Route the navigation starts from")
	evalCmd.Flags().StringToString("param", nil, "Path parameters (key=value)")
	evalCmd.Flags().StringToString("query", nil, "Query parameters (key=value)")
	evalCmd.Flags().Bool("json", false, "Print the decision as JSON")
}
