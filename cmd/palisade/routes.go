package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/palisade/internal/cli"
	"github.com/aretw0/palisade/internal/presentation/graph"
	"github.com/aretw0/palisade/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List the route table",
	Long:  `Inspects the route table and prints each route with its guard chain. With --graph, outputs a Mermaid diagram instead.`,
	Run: func(cmd *cobra.Command, args []string) {
		opts := optionsFromFlags(cmd)
		asGraph, _ := cmd.Flags().GetBool("graph")

		logger := cli.CreateLogger(opts.Debug)

		engine, _, err := cli.NewEngine(opts, logger)
		if err != nil {
			fmt.Printf("Error initializing palisade: %v\n", err)
			os.Exit(1)
		}

		routes, err := engine.Inspect()
		if err != nil {
			fmt.Printf("Error inspecting routes: %v\n", err)
			os.Exit(1)
		}

		if asGraph {
			fmt.Print(graph.GenerateMermaid(routes, nil))
			return
		}

		render := tui.NewRenderer()
		for _, route := range routes {
			line := route.ID
			if route.Title != "" {
				line += "  " + route.Title
			}
			fmt.Println(line)

			if len(route.Guards) > 0 {
				names := make([]string, 0, len(route.Guards))
				for _, g := range route.Guards {
					names = append(names, g.String())
				}
				fmt.Printf("    guards: %s\n", strings.Join(names, " -> "))
			}
			if route.Description != "" {
				if out, err := render(route.Description); err == nil {
					fmt.Print(out)
				}
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(routesCmd)
	routesCmd.Flags().Bool("graph", false, "Output a Mermaid diagram")
}
