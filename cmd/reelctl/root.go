package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/reelpanel/internal/app"
	"github.com/MrSnakeDoc/reelpanel/internal/config"
	"github.com/MrSnakeDoc/reelpanel/internal/logger"
	"github.com/MrSnakeDoc/reelpanel/internal/version"
)

var (
	verbose bool
	backend *app.Backend
)

var rootCmd = &cobra.Command{
	Use:   "reelctl",
	Short: "Manage reel promotion records from the terminal",
	Long: `reelctl talks to the same persistence as the reelpanel server.

Configuration comes from the REELS_* environment variables
(REELS_MODE, REELS_BACKEND_URL, REELS_DATA_FILE, ...).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		log := logger.NewNop()
		if verbose {
			log = logger.New("debug", true)
		}

		backend, err = app.OpenBackend(cmd.Context(), cfg, log)
		if err != nil {
			return err
		}
		if err := backend.Store.Reload(cmd.Context()); err != nil {
			return fmt.Errorf("failed to load reels: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if backend != nil {
			if err := backend.Close(); err != nil {
				return fmt.Errorf("failed to close backend: %w", err)
			}
		}
		return nil
	},
}

// loadConfig turns the configuration panics into a plain error for the CLI.
func loadConfig() (cfg *config.Config, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return config.Load(), nil
}

func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.Version = version.String()
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log adapter activity to stderr")

	rootCmd.AddCommand(listCmd, addCmd, toggleCmd, deleteCmd, statsCmd, importCmd)
}
