package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yeremiapane/retail-manager/config"
	"github.com/yeremiapane/retail-manager/database"
	"github.com/yeremiapane/retail-manager/utils"
	"gorm.io/gorm"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "retail",
	Short: "Retail manager - customers, products, suppliers, orders and payments",
	Long: `Retail manager serves a JSON API over a retail database. Every mutation is
validated against the entity rules and runs as one transaction, deletes
cascade through the dependent tables.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to a config file (default: config.yaml in ./deploy, . or /etc/retail)")
}

// bootstrap loads the config, sets up logging and connects to the store.
func bootstrap() (*config.Config, *gorm.DB, error) {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	utils.InitLogger(cfg.Log.Level, cfg.Log.Format)

	db, err := database.Open(cfg.DB)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return cfg, db, nil
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
