package cmd

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Raise sticker sequence counters to the highest sticker issued",
	Long: `Scans every asset sticker and makes sure each sequence counter is at least the
highest number already used for its prefix. Run it after importing assets.`,
	Run: func(cmd *cobra.Command, args []string) {

		// Load the config, initialize the database and set up logging
		commonSetUp()
		defer assetDB.Close()

		log.Info().Msg("Starting sticker reconciliation...")

		n, err := assetDB.ReconcileStickerSequences(context.Background())
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to reconcile sticker sequences")
		}

		log.Info().Int("prefixes", n).Msg("Sticker reconciliation completed")
	},
}

func init() {
	rootCmd.AddCommand(reconcileCmd)
}
