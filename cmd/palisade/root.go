package main

import (
	"fmt"
	"os"

	"github.com/aretw0/palisade/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "palisade",
	Short: "Palisade is a navigation guard engine",
	Long: `Palisade evaluates ordered guard chains for navigation transitions:
each route declares its guards, and every transition is allowed, redirected
or aborted by the first guard that says so.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("dir", "", "Loam directory containing one document per route")
	rootCmd.PersistentFlags().String("table", "", "YAML route table file")
	rootCmd.PersistentFlags().String("login-route", "/login", "Route the 'auth' guard redirects to")
	rootCmd.PersistentFlags().String("redis", "", "Redis address for session storage (host:port)")
	rootCmd.PersistentFlags().Int("max-hops", 0, "Redirect hop bound (0 = default)")
	rootCmd.PersistentFlags().Bool("trace", false, "Register the global trace guard")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging and lifecycle hooks")
}

// optionsFromFlags collects the persistent flags into cli.Options.
func optionsFromFlags(cmd *cobra.Command) cli.Options {
	dir, _ := cmd.Flags().GetString("dir")
	table, _ := cmd.Flags().GetString("table")
	login, _ := cmd.Flags().GetString("login-route")
	redis, _ := cmd.Flags().GetString("redis")
	maxHops, _ := cmd.Flags().GetInt("max-hops")
	trace, _ := cmd.Flags().GetBool("trace")
	debug, _ := cmd.Flags().GetBool("debug")

	return cli.Options{
		Dir:        dir,
		Table:      table,
		LoginRoute: login,
		RedisURL:   redis,
		MaxHops:    maxHops,
		Trace:      trace,
		Debug:      debug,
	}
}
