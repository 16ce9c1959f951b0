package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path"
	"syscall"
	"time"

	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/api/handlers"
	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/api/middleware"
	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/api/services"
	docs "github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/docs"
	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/internal/appconfig"
	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/internal/authn"
	awsclient "github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/internal/aws"
	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/internal/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	httpSwagger "github.com/swaggo/http-swagger"
)

// @title Asset Management System API
// @version v1
// @description This is the API for the Asset Management System.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server for handling API requests",
	Run: func(cmd *cobra.Command, args []string) {

		// Load the config, initialize the database and set up logging
		commonSetUp()
		defer assetDB.Close()

		// Initialize event notifier
		notifier, err := events.NewNotifier(appCfg.Events)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize event notifier")
		}
		defer notifier.Close()

		awsCfg, err := awsclient.LoadAWSConfig(context.Background(), appCfg.AWS.Region)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load AWS config")
		}

		issuer, err := initializeIssuer(awsCfg, appCfg.Auth)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize token issuer")
		}

		service := &services.Service{
			Config:   appCfg,
			DB:       assetDB,
			Notifier: notifier,
			Tokens:   issuer,
		}

		// Invoices are optional; uploads are rejected when no bucket is configured
		if appCfg.AWS.S3.Bucket != "" {
			log.Info().Str("bucket", appCfg.AWS.S3.Bucket).Msg("Storing invoices in S3")
			service.Invoices = awsclient.NewInvoiceStore(awsclient.NewS3Client(awsCfg),
				appCfg.AWS.S3.Bucket, appCfg.AWS.S3.Prefix, appCfg.AWS.S3.TTL())
		} else {
			log.Warn().Msg("No invoice bucket configured, invoice uploads are disabled")
		}

		// Create routes
		r := mux.NewRouter()

		// Register the routes
		api := r.PathPrefix(appCfg.BasePath).Subrouter()

		// Apply the middleware to the API routes
		api.Use(middleware.WithLogger)
		handlers.RegisterRoutes(api, service, issuer)

		// Docs
		docs.SwaggerInfo.Host = appCfg.Host
		docs.SwaggerInfo.BasePath = appCfg.BasePath
		r.PathPrefix(appCfg.DocsPath).Handler(httpSwagger.Handler(
			httpSwagger.URL(path.Join(appCfg.DocsPath, "/doc.json")),
			httpSwagger.DeepLinking(true),
			httpSwagger.DocExpansion("none"),
			httpSwagger.DomID("swagger-ui"),
		)).Methods(http.MethodGet)

		srv := &http.Server{
			Addr:              fmt.Sprintf("%s:%d", host, port),
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("could not shut down server cleanly")
			}
		}()

		log.Info().Msg(fmt.Sprintf("Server started at %s:%d", host, port))

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("could not start server")
		}
		log.Info().Msg("Server stopped")
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&host, "host", "0.0.0.0", "host to run the server on")
	serveCmd.Flags().IntVar(&port, "port", 3487, "port to run the server on")
}

// initializeIssuer builds the token issuer, reading the signing secret from
// AWS Secrets Manager when an ARN is configured.
func initializeIssuer(awsCfg aws.Config, authCfg appconfig.AuthConfig) (*authn.Issuer, error) {
	secret := authCfg.JWTSecret

	if authCfg.JWTSecretArn != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var err error
		secret, err = awsclient.ResolveSecret(ctx, awsclient.NewSecretsManagerClient(awsCfg), authCfg.JWTSecretArn)
		if err != nil {
			return nil, err
		}
	}

	return authn.NewIssuer(secret, authCfg.TTL())
}
