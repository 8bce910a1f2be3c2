package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/reelpanel/internal/logger"
	"github.com/MrSnakeDoc/reelpanel/internal/sources/seed"
)

var importCmd = &cobra.Command{
	Use:   "import <seed.yaml>",
	Short: "Import reels from a YAML seed file, skipping ones already present",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := seed.NewLoader(args[0]).Load()
		if err != nil {
			return err
		}

		res, err := seed.Import(cmd.Context(), backend.Store, f, logger.NewNop())
		if err != nil {
			return fmt.Errorf("import stopped after %d reels: %w", res.Imported, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "imported %d reels, skipped %d already present\n", res.Imported, res.Skipped)
		return nil
	},
}
