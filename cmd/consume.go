package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/api/services"
	awsclient "github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/internal/aws"
	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/internal/events"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var consumeCmd = &cobra.Command{
	Use:   "consume",
	Short: "Run the consumer that emails assignees when assets are assigned",
	Run: func(cmd *cobra.Command, args []string) {

		// Load the config, initialize the database and set up logging
		commonSetUp()
		defer assetDB.Close()

		// Initialize event consumer
		consumer, err := events.NewConsumer(appCfg.Events)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize event consumer")
		}
		defer consumer.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		notifications := &services.NotificationService{DB: assetDB}

		if appCfg.AWS.SES.FromAddress != "" {
			awsCfg, err := awsclient.LoadAWSConfig(ctx, appCfg.AWS.Region)
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to load AWS config")
			}
			notifications.Mailer = &awsclient.Mailer{
				From:   appCfg.AWS.SES.FromAddress,
				Client: awsclient.NewSESClient(awsCfg),
			}
		} else {
			log.Warn().Msg("No sender address configured, emails will not be sent")
		}

		log.Info().Str("broker", appCfg.Events.Broker).Msg("Waiting for asset events...")
		if err := consumer.Run(ctx, notifications.HandleAssetEvent); err != nil {
			log.Fatal().Err(err).Msg("Event consumer stopped")
		}
		log.Info().Msg("Event consumer stopped")
	},
}

func init() {
	rootCmd.AddCommand(consumeCmd)
}
