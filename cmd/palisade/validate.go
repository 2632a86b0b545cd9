package main

import (
	"fmt"
	"os"

	"github.com/aretw0/palisade/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the route table for consistency",
	Long:  `Loads the route table and reports unknown guard references and redirect metadata pointing at missing routes.`,
	Run: func(cmd *cobra.Command, args []string) {
		opts := optionsFromFlags(cmd)
		logger := cli.CreateLogger(opts.Debug)

		// NewEngine validates the table as part of construction.
		if _, _, err := cli.NewEngine(opts, logger); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Route table is valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
