package config

import (
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	internalcommon "github.com/goran-ethernal/LendingIndexor/internal/common"
	"github.com/goran-ethernal/LendingIndexor/internal/logger"
	"github.com/goran-ethernal/LendingIndexor/internal/types"
)

// Config represents the complete configuration for the LendingIndexor.
type Config struct {
	// Downloader contains the downloader configuration
	Downloader DownloaderConfig `yaml:"downloader" json:"downloader" toml:"downloader"`

	// Indexers contains the configuration for all indexers
	Indexers []IndexerConfig `yaml:"indexers" json:"indexers" toml:"indexers"`

	// Logging contains logging configuration
	Logging *LoggingConfig `yaml:"logging,omitempty" json:"logging,omitempty" toml:"logging,omitempty"`

	// Metrics contains Prometheus metrics configuration
	Metrics *MetricsConfig `yaml:"metrics,omitempty" json:"metrics,omitempty" toml:"metrics,omitempty"`
}

// DownloaderConfig represents the configuration for the downloader.
type DownloaderConfig struct {
	// RPCURL is the Ethereum RPC endpoint URL
	RPCURL string `yaml:"rpc_url" json:"rpc_url" toml:"rpc_url"`

	// ChunkSize is the block range per eth_getLogs call
	ChunkSize uint64 `yaml:"chunk_size" json:"chunk_size" toml:"chunk_size"`

	// Finality specifies the finality mode: "finalized", "safe", or "latest"
	Finality string `yaml:"finality" json:"finality" toml:"finality"`

	// FinalizedLag is the number of blocks behind head to consider finalized
	// Only used when Finality is set to "latest"
	FinalizedLag uint64 `yaml:"finalized_lag" json:"finalized_lag" toml:"finalized_lag"`

	// PollInterval is how long to wait for new blocks once the downloader caught up
	PollInterval internalcommon.Duration `yaml:"poll_interval" json:"poll_interval" toml:"poll_interval"`

	// Retry contains RPC retry configuration with exponential backoff
	Retry *RetryConfig `yaml:"retry,omitempty" json:"retry,omitempty" toml:"retry,omitempty"`

	// DB contains database configuration for the downloader
	DB DatabaseConfig `yaml:"db" json:"db" toml:"db"`
}

// ApplyDefaults sets default values for optional downloader configuration fields.
func (d *DownloaderConfig) ApplyDefaults() {
	if d.ChunkSize == 0 {
		d.ChunkSize = 5000
	}
	if d.Finality == "" {
		d.Finality = string(types.FinalityFinalized)
	}
	if d.PollInterval.Duration == 0 {
		d.PollInterval = internalcommon.NewDuration(12 * time.Second) //nolint:mnd
	}

	if d.Retry != nil {
		d.Retry.ApplyDefaults()
	}

	d.DB.ApplyDefaults()
}

// Validate checks the downloader configuration.
func (d *DownloaderConfig) Validate() error {
	if d.RPCURL == "" {
		return fmt.Errorf("downloader.rpc_url is required")
	}

	if _, err := types.ParseBlockFinality(d.Finality); err != nil {
		return fmt.Errorf("downloader.finality must be one of: 'finalized', 'safe', or 'latest'")
	}

	if d.ChunkSize == 0 {
		return fmt.Errorf("downloader.chunk_size must be greater than 0")
	}

	if d.DB.Path == "" {
		return fmt.Errorf("downloader.db.path is required")
	}

	if err := d.DB.Validate(); err != nil {
		return fmt.Errorf("downloader.db.%w", err)
	}

	if d.Retry != nil {
		if err := d.Retry.Validate(); err != nil {
			return fmt.Errorf("downloader.retry: %w", err)
		}
	}

	return nil
}

// RetryConfig represents RPC retry configuration with exponential backoff.
type RetryConfig struct {
	// MaxAttempts is the maximum number of attempts (including initial request)
	MaxAttempts int `yaml:"max_attempts" json:"max_attempts" toml:"max_attempts"`

	// InitialBackoff is the initial backoff duration before first retry
	InitialBackoff internalcommon.Duration `yaml:"initial_backoff" json:"initial_backoff" toml:"initial_backoff"`

	// MaxBackoff is the maximum backoff duration
	MaxBackoff internalcommon.Duration `yaml:"max_backoff" json:"max_backoff" toml:"max_backoff"`

	// BackoffMultiplier is the multiplier for exponential backoff
	BackoffMultiplier float64 `yaml:"backoff_multiplier" json:"backoff_multiplier" toml:"backoff_multiplier"`
}

// ApplyDefaults sets default values for retry configuration.
func (r *RetryConfig) ApplyDefaults() {
	if r.MaxAttempts == 0 {
		r.MaxAttempts = 5
	}
	if r.InitialBackoff.Duration == 0 {
		r.InitialBackoff = internalcommon.NewDuration(1 * time.Second)
	}
	if r.MaxBackoff.Duration == 0 {
		r.MaxBackoff = internalcommon.NewDuration(30 * time.Second) //nolint:mnd
	}
	if r.BackoffMultiplier == 0 {
		r.BackoffMultiplier = 2.0
	}
}

// Validate checks the retry configuration.
func (r *RetryConfig) Validate() error {
	if r.MaxAttempts < 1 {
		return fmt.Errorf("max_attempts must be at least 1")
	}
	if r.BackoffMultiplier < 1 {
		return fmt.Errorf("backoff_multiplier must be at least 1")
	}
	if r.MaxBackoff.Duration < r.InitialBackoff.Duration {
		return fmt.Errorf("max_backoff must not be lower than initial_backoff")
	}
	return nil
}

// DatabaseConfig represents database configuration.
type DatabaseConfig struct {
	// Path is the file path to the SQLite database
	Path string `yaml:"path" json:"path" toml:"path"`

	// JournalMode sets the SQLite journal mode (e.g., "WAL", "DELETE")
	// WAL mode is recommended for better concurrency
	JournalMode string `yaml:"journal_mode" json:"journal_mode" toml:"journal_mode"`

	// Synchronous sets the synchronization level ("FULL", "NORMAL", "OFF")
	// NORMAL provides a good balance between safety and performance
	Synchronous string `yaml:"synchronous" json:"synchronous" toml:"synchronous"`

	// BusyTimeout is the time in milliseconds to wait when the database is locked
	BusyTimeout int `yaml:"busy_timeout" json:"busy_timeout" toml:"busy_timeout"`

	// CacheSize is the size of the page cache (negative = KB, positive = pages)
	CacheSize int `yaml:"cache_size" json:"cache_size" toml:"cache_size"`

	// MaxOpenConnections is the maximum number of open database connections
	MaxOpenConnections int `yaml:"max_open_connections" json:"max_open_connections" toml:"max_open_connections"`

	// MaxIdleConnections is the maximum number of idle connections in the pool
	MaxIdleConnections int `yaml:"max_idle_connections" json:"max_idle_connections" toml:"max_idle_connections"`

	// EnableForeignKeys enables foreign key constraint enforcement
	EnableForeignKeys bool `yaml:"enable_foreign_keys" json:"enable_foreign_keys" toml:"enable_foreign_keys"`

	// Maintenance configures periodic WAL checkpoints and VACUUM of this database
	Maintenance *MaintenanceConfig `yaml:"maintenance,omitempty" json:"maintenance,omitempty" toml:"maintenance,omitempty"`
}

// ApplyDefaults sets default values for optional database configuration fields.
func (d *DatabaseConfig) ApplyDefaults() {
	if d.JournalMode == "" {
		d.JournalMode = "WAL"
	}
	if d.Synchronous == "" {
		d.Synchronous = "NORMAL"
	}
	if d.BusyTimeout == 0 {
		d.BusyTimeout = 5000
	}
	if d.CacheSize == 0 {
		d.CacheSize = 10000
	}
	if d.MaxOpenConnections == 0 {
		d.MaxOpenConnections = 25
	}
	if d.MaxIdleConnections == 0 {
		d.MaxIdleConnections = 5
	}
	if d.Maintenance != nil {
		d.Maintenance.ApplyDefaults()
	}
}

// Validate checks the SQLite pragmas.
func (d *DatabaseConfig) Validate() error {
	switch d.JournalMode {
	case "", "WAL", "DELETE", "TRUNCATE", "PERSIST", "MEMORY":
	default:
		return fmt.Errorf("journal_mode must be one of: WAL, DELETE, TRUNCATE, PERSIST, MEMORY")
	}

	switch d.Synchronous {
	case "", "FULL", "NORMAL", "OFF":
	default:
		return fmt.Errorf("synchronous must be one of: FULL, NORMAL, OFF")
	}

	if d.Maintenance != nil {
		if err := d.Maintenance.Validate(); err != nil {
			return fmt.Errorf("maintenance.%w", err)
		}
	}

	return nil
}

// MaintenanceConfig configures background database maintenance.
type MaintenanceConfig struct {
	// Enabled controls whether background maintenance runs
	Enabled bool `yaml:"enabled" json:"enabled" toml:"enabled"`

	// CheckInterval is how often maintenance runs (e.g. "30m", "1h")
	CheckInterval internalcommon.Duration `yaml:"check_interval" json:"check_interval" toml:"check_interval"`

	// VacuumOnStartup runs maintenance once before the first interval elapses
	VacuumOnStartup bool `yaml:"vacuum_on_startup" json:"vacuum_on_startup" toml:"vacuum_on_startup"`

	// WALCheckpointMode is the wal_checkpoint mode: PASSIVE, FULL, RESTART or TRUNCATE
	WALCheckpointMode string `yaml:"wal_checkpoint_mode" json:"wal_checkpoint_mode" toml:"wal_checkpoint_mode"`
}

// ApplyDefaults sets default values for optional maintenance fields.
func (m *MaintenanceConfig) ApplyDefaults() {
	if m.CheckInterval.Duration == 0 {
		m.CheckInterval = internalcommon.NewDuration(30 * time.Minute) //nolint:mnd
	}
	if m.WALCheckpointMode == "" {
		m.WALCheckpointMode = "TRUNCATE"
	}
}

// Validate checks the checkpoint mode and interval.
func (m *MaintenanceConfig) Validate() error {
	switch m.WALCheckpointMode {
	case "PASSIVE", "FULL", "RESTART", "TRUNCATE":
	default:
		return fmt.Errorf("wal_checkpoint_mode must be one of: PASSIVE, FULL, RESTART, TRUNCATE")
	}
	if m.Enabled && m.CheckInterval.Duration <= 0 {
		return fmt.Errorf("check_interval must be positive")
	}
	return nil
}

// LoggingConfig configures logging behavior with per-component log levels.
type LoggingConfig struct {
	// DefaultLevel is the default log level for all components
	// Options: "debug", "info", "warn", "error"
	DefaultLevel string `yaml:"default_level" json:"default_level" toml:"default_level"`

	// Development enables development mode (stack traces, console encoder)
	Development bool `yaml:"development" json:"development" toml:"development"`

	// ComponentLevels sets log levels for specific components
	// Available components:
	//   - downloader: Main downloader orchestration
	//   - log-fetcher: Blockchain log fetching
	//   - sync-manager: Sync state management
	//   - indexer-coordinator: Indexer coordination
	//   - lending-engine: Event projection
	//   - market-registry: Market creation and refresh
	//   - contract-view: Contract state reads
	//   - lending-store: Lending entity storage
	//   - db-maintenance: WAL checkpoints and VACUUM
	ComponentLevels map[string]string `yaml:"component_levels,omitempty" json:"component_levels,omitempty" toml:"component_levels,omitempty"` //nolint:lll
}

var _ logger.LoggingConfig = (*LoggingConfig)(nil)

// ApplyDefaults sets default values for optional logging configuration fields.
func (l *LoggingConfig) ApplyDefaults() {
	if l.DefaultLevel == "" {
		l.DefaultLevel = "info"
	}
	if l.ComponentLevels == nil {
		l.ComponentLevels = make(map[string]string)
	}
}

// Validate checks if the logging configuration is valid.
func (l *LoggingConfig) Validate() error {
	if l.DefaultLevel != "" {
		if _, valid := logger.ValidLogLevels[internalcommon.ToLowerWithTrim(l.DefaultLevel)]; !valid {
			return fmt.Errorf("logging.default_level: must be one of: debug, info, warn, error")
		}
	}

	for component, level := range l.ComponentLevels {
		if _, validComponent := internalcommon.AllComponents[internalcommon.ToLowerWithTrim(component)]; !validComponent {
			return fmt.Errorf("logging.component_levels: unknown component '%s'", component)
		}

		if _, valid := logger.ValidLogLevels[internalcommon.ToLowerWithTrim(level)]; !valid {
			return fmt.Errorf("logging.component_levels[%s]: must be one of: debug, info, warn, error", component)
		}
	}

	return nil
}

// GetComponentLevel returns the log level for a specific component.
// Falls back to DefaultLevel if no component-specific level is set.
// A nil config reports "info".
func (l *LoggingConfig) GetComponentLevel(component string) string {
	if l == nil {
		return "info"
	}
	if level, ok := l.ComponentLevels[component]; ok {
		return internalcommon.ToLowerWithTrim(level)
	}
	return l.GetDefaultLevel()
}

// GetDefaultLevel returns the default log level.
func (l *LoggingConfig) GetDefaultLevel() string {
	if l == nil || l.DefaultLevel == "" {
		return "info"
	}
	return internalcommon.ToLowerWithTrim(l.DefaultLevel)
}

// IsDevelopment returns whether development mode is enabled.
func (l *LoggingConfig) IsDevelopment() bool {
	return l != nil && l.Development
}

// MetricsConfig configures Prometheus metrics exposition.
type MetricsConfig struct {
	// Enabled controls whether metrics collection and HTTP endpoint are active
	Enabled bool `yaml:"enabled" json:"enabled" toml:"enabled"`

	// ListenAddress is the address to bind the metrics HTTP server to
	// Format: "host:port" or ":port"
	ListenAddress string `yaml:"listen_address" json:"listen_address" toml:"listen_address"`

	// Path is the HTTP path where metrics are exposed
	Path string `yaml:"path" json:"path" toml:"path"`
}

// ApplyDefaults sets default values for optional metrics configuration fields.
func (m *MetricsConfig) ApplyDefaults() {
	if m.ListenAddress == "" {
		m.ListenAddress = ":9090"
	}
	if m.Path == "" {
		m.Path = "/metrics"
	}
}

// Validate checks if the metrics configuration is valid.
func (m *MetricsConfig) Validate() error {
	if m.Enabled {
		if m.ListenAddress == "" {
			return fmt.Errorf("listen_address is required when metrics are enabled")
		}
		if m.Path == "" {
			return fmt.Errorf("path is required when metrics are enabled")
		}
		if m.Path[0] != '/' {
			return fmt.Errorf("path must start with '/'")
		}
	}
	return nil
}

// IndexerConfig represents the configuration for a single indexer.
type IndexerConfig struct {
	// Name is a unique identifier for this indexer
	Name string `yaml:"name" json:"name" toml:"name"`

	// Type selects the registered indexer implementation (see `indexer list`)
	Type string `yaml:"type" json:"type" toml:"type"`

	// StartBlock is the block number to start indexing from
	StartBlock uint64 `yaml:"start_block" json:"start_block" toml:"start_block"`

	// DB contains database configuration for the indexer
	DB DatabaseConfig `yaml:"db" json:"db" toml:"db"`

	// MoneyMarket configures the moneymarket indexer type
	MoneyMarket *MoneyMarketConfig `yaml:"money_market,omitempty" json:"money_market,omitempty" toml:"money_market,omitempty"` //nolint:lll
}

// ApplyDefaults sets default values for optional indexer configuration fields.
func (i *IndexerConfig) ApplyDefaults() {
	i.DB.ApplyDefaults()

	if i.MoneyMarket != nil {
		i.MoneyMarket.ApplyDefaults()
	}
}

// Validate checks the indexer configuration.
func (i *IndexerConfig) Validate() error {
	if i.Name == "" {
		return fmt.Errorf("name is required")
	}

	if i.Type == "" {
		return fmt.Errorf("type is required")
	}

	if i.DB.Path == "" {
		return fmt.Errorf("db.path is required")
	}

	if err := i.DB.Validate(); err != nil {
		return fmt.Errorf("db.%w", err)
	}

	if i.MoneyMarket != nil {
		if err := i.MoneyMarket.Validate(); err != nil {
			return fmt.Errorf("money_market: %w", err)
		}
	}

	return nil
}

// MoneyMarketConfig describes one deployment of a Compound style money market.
type MoneyMarketConfig struct {
	// Comptroller is the risk manager contract; its events carry market listings,
	// governance parameters and incentive distributions
	Comptroller string `yaml:"comptroller" json:"comptroller" toml:"comptroller"`

	// PriceOracle is the oracle whose PricePosted events trigger market refreshes.
	// It is also used for price reads until a NewPriceOracle event is seen.
	PriceOracle string `yaml:"price_oracle" json:"price_oracle" toml:"price_oracle"`

	// Markets are the pool tokens to index
	Markets []string `yaml:"markets" json:"markets" toml:"markets"`

	// UnderlyingTokens are the ERC20 underlying tokens whose approvals are tracked
	UnderlyingTokens []string `yaml:"underlying_tokens,omitempty" json:"underlying_tokens,omitempty" toml:"underlying_tokens,omitempty"` //nolint:lll

	// NativeMarket is the pool token whose underlying is the native asset
	NativeMarket string `yaml:"native_market" json:"native_market" toml:"native_market"`

	// ReferenceMarket is the USD stablecoin market used to derive USD prices
	ReferenceMarket string `yaml:"reference_market" json:"reference_market" toml:"reference_market"`

	// BlocksPerYear annualizes per-block interest rates
	BlocksPerYear uint64 `yaml:"blocks_per_year" json:"blocks_per_year" toml:"blocks_per_year"`

	// PoolTokenMarker is the marker method pool tokens expose (e.g. "isCToken")
	PoolTokenMarker string `yaml:"pool_token_marker" json:"pool_token_marker" toml:"pool_token_marker"`

	// EventAliases renames events of the deployment, canonical name -> emitted name
	// (e.g. Mint: MintToken)
	EventAliases map[string]string `yaml:"event_aliases,omitempty" json:"event_aliases,omitempty" toml:"event_aliases,omitempty"` //nolint:lll

	// CacheSize is the number of entries of each reverse lookup cache
	CacheSize int `yaml:"cache_size" json:"cache_size" toml:"cache_size"`

	// AuditTransfers warns about Mint, Redeem and LiquidateBorrow events without
	// the pool token Transfer that should accompany them
	AuditTransfers bool `yaml:"audit_transfers" json:"audit_transfers" toml:"audit_transfers"`
}

// Default addresses of the reference deployment.
const (
	DefaultNativeMarket    = "0x1d8eb5a97ce0b8812d7e17893018467a47e2f7d9"
	DefaultReferenceMarket = "0x565b245fc6c9f9783f148e56e93d998968f89c7e"
	DefaultBlocksPerYear   = 2102400
	DefaultPoolTokenMarker = "isCToken"
	DefaultCacheSize       = 1024
)

// ApplyDefaults sets default values for optional money market fields.
func (m *MoneyMarketConfig) ApplyDefaults() {
	if m.NativeMarket == "" {
		m.NativeMarket = DefaultNativeMarket
	}
	if m.ReferenceMarket == "" {
		m.ReferenceMarket = DefaultReferenceMarket
	}
	if m.BlocksPerYear == 0 {
		m.BlocksPerYear = DefaultBlocksPerYear
	}
	if m.PoolTokenMarker == "" {
		m.PoolTokenMarker = DefaultPoolTokenMarker
	}
	if m.CacheSize == 0 {
		m.CacheSize = DefaultCacheSize
	}
}

// Validate checks that every configured address is well formed.
func (m *MoneyMarketConfig) Validate() error {
	if len(m.Markets) == 0 && m.Comptroller == "" {
		return fmt.Errorf("at least one market or a comptroller is required")
	}

	single := map[string]string{
		"comptroller":      m.Comptroller,
		"price_oracle":     m.PriceOracle,
		"native_market":    m.NativeMarket,
		"reference_market": m.ReferenceMarket,
	}
	for field, addr := range single {
		if addr != "" && !common.IsHexAddress(addr) {
			return fmt.Errorf("%s: invalid address %q", field, addr)
		}
	}

	for i, addr := range m.Markets {
		if !common.IsHexAddress(addr) {
			return fmt.Errorf("markets[%d]: invalid address %q", i, addr)
		}
	}
	for i, addr := range m.UnderlyingTokens {
		if !common.IsHexAddress(addr) {
			return fmt.Errorf("underlying_tokens[%d]: invalid address %q", i, addr)
		}
	}

	if m.NativeMarket != "" && common.HexToAddress(m.NativeMarket) == common.HexToAddress(m.ReferenceMarket) {
		return fmt.Errorf("native_market and reference_market must differ")
	}

	return nil
}

// ApplyDefaults sets default values for optional configuration fields.
func (c *Config) ApplyDefaults() {
	c.Downloader.ApplyDefaults()

	for i := range c.Indexers {
		c.Indexers[i].ApplyDefaults()
	}

	if c.Logging != nil {
		c.Logging.ApplyDefaults()
	}

	if c.Metrics != nil {
		c.Metrics.ApplyDefaults()
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := c.Downloader.Validate(); err != nil {
		return err
	}

	if c.Logging != nil {
		if err := c.Logging.Validate(); err != nil {
			return err
		}
	}

	if c.Metrics != nil {
		if err := c.Metrics.Validate(); err != nil {
			return fmt.Errorf("metrics: %w", err)
		}
	}

	if len(c.Indexers) == 0 {
		return fmt.Errorf("at least one indexer must be configured")
	}

	indexerNames := make(map[string]bool)
	for i, indexer := range c.Indexers {
		if err := indexer.Validate(); err != nil {
			return fmt.Errorf("indexer[%d] (%s): %w", i, indexer.Name, err)
		}

		if indexerNames[indexer.Name] {
			return fmt.Errorf("indexer[%d]: duplicate indexer name '%s'", i, indexer.Name)
		}
		indexerNames[indexer.Name] = true
	}

	return nil
}
