package common

const (
	ComponentDownloader         = "downloader"
	ComponentLogFetcher         = "log-fetcher"
	ComponentSyncManager        = "sync-manager"
	ComponentIndexerCoordinator = "indexer-coordinator"
	ComponentLendingEngine      = "lending-engine"
	ComponentMarketRegistry     = "market-registry"
	ComponentContractView       = "contract-view"
	ComponentLendingStore       = "lending-store"
	ComponentMoneyMarket        = "moneymarket-indexer"
	ComponentDBMaintenance      = "db-maintenance"
)

var AllComponents = map[string]struct{}{
	ComponentDownloader:         {},
	ComponentLogFetcher:         {},
	ComponentSyncManager:        {},
	ComponentIndexerCoordinator: {},
	ComponentLendingEngine:      {},
	ComponentMarketRegistry:     {},
	ComponentContractView:       {},
	ComponentLendingStore:       {},
	ComponentMoneyMarket:        {},
	ComponentDBMaintenance:      {},
}
