package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	// Import built-in indexers to register them
	_ "github.com/goran-ethernal/LendingIndexor/indexers/moneymarket"
	"github.com/goran-ethernal/LendingIndexor/internal/common"
	"github.com/goran-ethernal/LendingIndexor/internal/config"
	"github.com/goran-ethernal/LendingIndexor/internal/db"
	"github.com/goran-ethernal/LendingIndexor/internal/downloader"
	downloadermig "github.com/goran-ethernal/LendingIndexor/internal/downloader/migrations"
	"github.com/goran-ethernal/LendingIndexor/internal/logger"
	"github.com/goran-ethernal/LendingIndexor/internal/metrics"
	"github.com/goran-ethernal/LendingIndexor/internal/rpc"
	pkgconfig "github.com/goran-ethernal/LendingIndexor/pkg/config"
	"github.com/goran-ethernal/LendingIndexor/pkg/indexer"
	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"
)

const (
	version = "1.0.0"
	banner  = `
╔═══════════════════════════════════════════╗
║         LendingIndexor v%s              ║
║   Money Market Event Indexing Service     ║
╚═══════════════════════════════════════════╝
`
	shutdownTimeout = 5 * time.Second
)

var (
	configPath  string
	rewindBlock uint64
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "indexer",
	Short: "LendingIndexor - money market event indexer",
	Long: `LendingIndexor follows the events of a Compound style money market and
projects them into markets, accounts, positions and protocol parameters stored
in SQLite. Logs are read up to the finalized block only.`,
	Version: version,
	RunE:    runIndexer,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available indexer types",
	Long:  `List all registered indexer types that can be used in the configuration file.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Available indexer types:")
		types := indexer.ListRegistered()
		if len(types) == 0 {
			fmt.Println("  (no indexers registered)")
			return
		}
		for _, t := range types {
			fmt.Printf("  - %s\n", t)
		}
	},
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		reflector := &jsonschema.Reflector{FieldNameTag: "json"}
		schema := reflector.Reflect(&pkgconfig.Config{})

		out, err := json.MarshalIndent(schema, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode schema: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

var rewindCmd = &cobra.Command{
	Use:   "rewind",
	Short: "Move the download checkpoint back to a block",
	Long: `Rewind resets the downloader checkpoint so that the next run fetches logs
again from --block + 1. Indexers skip blocks they already applied, so rewinding
is only useful after an indexer database was removed or restored from a backup.`,
	RunE: runRewind,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to configuration file")
	rewindCmd.Flags().Uint64Var(&rewindBlock, "block", 0, "last block considered indexed after the rewind")
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(rewindCmd)
}

func runRewind(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.NewComponentLoggerFromConfig(common.ComponentSyncManager, cfg.Logging)
	logger.SetDefaultLogger(log)

	if err := downloadermig.RunMigrations(cfg.Downloader.DB); err != nil {
		return fmt.Errorf("failed to run downloader migrations: %w", err)
	}

	database, err := db.NewSQLiteDBFromConfig(cfg.Downloader.DB)
	if err != nil {
		return fmt.Errorf("failed to open downloader database: %w", err)
	}

	syncManager, err := downloader.NewSyncManager(database, log, nil)
	if err != nil {
		database.Close()
		return err
	}
	defer syncManager.Close()

	previous, err := syncManager.GetLastIndexedBlock()
	if err != nil {
		return err
	}

	if err := syncManager.Reset(rewindBlock); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "checkpoint moved from block %d to block %d\n", previous, rewindBlock)
	return nil
}

func runIndexer(cmd *cobra.Command, args []string) error {
	fmt.Printf(banner, version)

	// Load configuration
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.NewComponentLoggerFromConfig(common.ComponentDownloader, cfg.Logging)
	logger.SetDefaultLogger(log)

	if len(cfg.Indexers) == 0 {
		log.Warn("No indexers configured. Exiting.")
		return nil
	}

	// Initialize metrics server if enabled
	if cfg.Metrics != nil && cfg.Metrics.Enabled {
		metricsServer := metrics.NewServer(cfg.Metrics, log)
		if err := metricsServer.Start(ctx); err != nil {
			return fmt.Errorf("failed to start metrics server: %w", err)
		}
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := metricsServer.Stop(stopCtx); err != nil {
				log.Warnf("Failed to stop metrics server: %v", err)
			}
		}()
	}

	log.Info("Connecting to Ethereum node...")
	ethClient, err := rpc.NewClient(ctx, cfg.Downloader.RPCURL, cfg.Downloader.Retry)
	if err != nil {
		return fmt.Errorf("failed to create RPC client: %w", err)
	}
	log.Infof("Connected to Ethereum node: %s", cfg.Downloader.RPCURL)

	log.Info("Running database migrations...")
	if err := downloadermig.RunMigrations(cfg.Downloader.DB); err != nil {
		ethClient.Close()
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	database, err := db.NewSQLiteDBFromConfig(cfg.Downloader.DB)
	if err != nil {
		ethClient.Close()
		return fmt.Errorf("failed to create database: %w", err)
	}

	dbMaintenance := db.NewMaintenanceCoordinator(
		"downloader",
		cfg.Downloader.DB.Path,
		database,
		cfg.Downloader.DB.Maintenance,
		logger.NewComponentLoggerFromConfig(common.ComponentDBMaintenance, cfg.Logging),
	)

	syncManager, err := downloader.NewSyncManager(
		database,
		logger.NewComponentLoggerFromConfig(common.ComponentSyncManager, cfg.Logging),
		dbMaintenance,
	)
	if err != nil {
		database.Close()
		ethClient.Close()
		return fmt.Errorf("failed to create sync manager: %w", err)
	}

	// From here on the downloader owns the client and the sync manager
	dl, err := downloader.New(
		cfg.Downloader,
		ethClient,
		syncManager,
		logger.NewComponentLoggerFromConfig(common.ComponentDownloader, cfg.Logging),
	)
	if err != nil {
		syncManager.Close()
		ethClient.Close()
		return fmt.Errorf("failed to create downloader: %w", err)
	}
	defer func() {
		if err := dl.Close(); err != nil {
			log.Warnf("Failed to close downloader: %v", err)
		}
	}()

	// stopped by the sync manager when the downloader closes
	if err := dbMaintenance.Start(ctx); err != nil {
		return fmt.Errorf("failed to start downloader database maintenance: %w", err)
	}

	log.Infof("Registering %d indexer(s)...", len(cfg.Indexers))
	for i, idxCfg := range cfg.Indexers {
		if idxCfg.Type == "" {
			return fmt.Errorf("indexer #%d (%s) is missing 'type' field in configuration", i+1, idxCfg.Name)
		}

		log.Infof("Creating indexer: %s (type: %s)", idxCfg.Name, idxCfg.Type)

		idx, err := indexer.Create(
			idxCfg.Type,
			idxCfg,
			ethClient,
			logger.NewComponentLoggerFromConfig(common.ComponentMoneyMarket, cfg.Logging),
		)
		if err != nil {
			return err
		}

		dl.RegisterIndexer(idx)
		log.Infof("✓ Registered indexer: %s", idxCfg.Name)
	}

	log.Info("Starting LendingIndexor...")

	if err := dl.Download(ctx); err != nil && ctx.Err() == nil {
		return fmt.Errorf("downloader failed: %w", err)
	}

	log.Info("LendingIndexor stopped successfully")
	return nil
}
