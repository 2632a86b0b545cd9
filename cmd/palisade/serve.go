package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/aretw0/palisade/internal/cli"
	"github.com/aretw0/palisade/internal/presentation/tui"
	httpadapter "github.com/aretw0/palisade/pkg/adapters/http"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Starts the palisade engine in server mode, exposing evaluation and route inspection over a JSON API.`,
	Run: func(cmd *cobra.Command, args []string) {
		opts := optionsFromFlags(cmd)
		port, _ := cmd.Flags().GetString("port")

		tui.PrintBanner()
		logger := cli.CreateLogger(opts.Debug)

		engine, _, err := cli.NewEngine(opts, logger)
		if err != nil {
			fmt.Printf("Error initializing palisade: %v\n", err)
			os.Exit(1)
		}

		handler := httpadapter.NewHandler(engine, logger, httpadapter.NewMetrics())
		srv := &http.Server{
			Addr:    ":" + port,
			Handler: handler,
		}

		sigCtx := cli.NewSignalContext(context.Background())
		defer sigCtx.Cancel()

		cli.WatchRoutes(sigCtx, engine, logger)

		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("palisade server listening", "addr", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case <-sigCtx.Done():
			fmt.Println()
			cli.PrintSystemMessage("Shutdown signal received: %v", sigCtx.Signal())

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			cli.PrintSystemMessage("palisade server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
}
