/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/db"
	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/internal/appconfig"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
	host       string
	port       int
	appCfg     *appconfig.Config
	assetDB    *db.AssetDB
)

var rootCmd = &cobra.Command{
	Use:   "asset-management",
	Short: "Asset Management System",
	Long:  `Asset Management System tracks organisational property from purchase to disposal.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml",
		"path to the config file template")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn",
		"sets the log level")
}

// loadConfig sets up logging and reads the config file into appCfg.
func loadConfig() {
	setLogging(logLevel)

	var err error
	appCfg, err = appconfig.LoadConfig(configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
}

// commonSetUp loads the config and opens the database.
func commonSetUp() {
	loadConfig()

	if appCfg.Database.Source != "" {
		if err := os.Setenv("DATABASE_URL", appCfg.Database.Source); err != nil {
			log.Fatal().Err(err).Msg("Error setting DATABASE_URL")
		}
	}

	var err error
	assetDB, err = db.NewAssetDB(&log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize AssetDB")
	}
}

func setLogging(level string) {
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}

	switch strings.ToLower(level) {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "fatal":
		zerolog.SetGlobalLevel(zerolog.FatalLevel)
	case "panic":
		zerolog.SetGlobalLevel(zerolog.PanicLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}
}
