// Package moneymarket is the indexer type that projects the events of a
// Compound style money market into lending entities.
package moneymarket

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	internalcommon "github.com/goran-ethernal/LendingIndexor/internal/common"
	"github.com/goran-ethernal/LendingIndexor/internal/db"
	"github.com/goran-ethernal/LendingIndexor/internal/lending"
	"github.com/goran-ethernal/LendingIndexor/internal/lending/chain"
	"github.com/goran-ethernal/LendingIndexor/internal/lending/contracts"
	"github.com/goran-ethernal/LendingIndexor/internal/lending/decoder"
	"github.com/goran-ethernal/LendingIndexor/internal/lending/sqlstore"
	"github.com/goran-ethernal/LendingIndexor/internal/lending/sqlstore/migrations"
	"github.com/goran-ethernal/LendingIndexor/internal/logger"
	"github.com/goran-ethernal/LendingIndexor/pkg/config"
	"github.com/goran-ethernal/LendingIndexor/pkg/indexer"
	pkgrpc "github.com/goran-ethernal/LendingIndexor/pkg/rpc"
)

// Type is the registry name of the indexer.
const Type = "moneymarket"

func init() {
	indexer.Register(Type, func(cfg config.IndexerConfig, client pkgrpc.EthClient,
		log *logger.Logger) (indexer.Indexer, error) {
		idx, err := New(context.Background(), cfg, client, log)
		if err != nil {
			return nil, err
		}
		return idx, nil
	})
}

// Compile-time check to ensure Indexer implements indexer.HeaderConsumer interface.
var _ indexer.HeaderConsumer = (*Indexer)(nil)

// Indexer feeds the logs of one money market deployment through the lending
// engine. Every batch is applied in a single database transaction together
// with the last block it covers, so a batch delivered again after a crash is
// recognized and dropped instead of being counted twice.
type Indexer struct {
	cfg    config.IndexerConfig
	client pkgrpc.EthClient
	log    *logger.Logger

	db          *sql.DB
	maintenance db.Maintenance
	store       *sqlstore.Store
	engine  *lending.Engine
	decoder *decoder.Decoder

	eventsToIndex map[common.Address]map[common.Hash]struct{}

	mu        sync.Mutex
	lastBlock uint64
}

// New creates the indexer described by cfg. When cfg lists no markets they
// are read from the comptroller at the current head.
func New(ctx context.Context, cfg config.IndexerConfig, client pkgrpc.EthClient,
	log *logger.Logger) (*Indexer, error) {
	if cfg.MoneyMarket == nil {
		return nil, errors.New("money_market configuration is required")
	}
	if client == nil {
		return nil, errors.New("RPC client is required")
	}

	abis, err := contracts.Load(cfg.MoneyMarket.EventAliases)
	if err != nil {
		return nil, fmt.Errorf("failed to load contract ABIs: %w", err)
	}

	view, err := chain.NewView(client, abis, cfg.MoneyMarket.PoolTokenMarker, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create contract view: %w", err)
	}

	if len(cfg.MoneyMarket.Markets) == 0 {
		if err := discoverMarkets(ctx, &cfg, client, view, log); err != nil {
			return nil, err
		}
	}

	return newIndexer(cfg, client, view, abis, log)
}

func newIndexer(cfg config.IndexerConfig, client pkgrpc.EthClient, view lending.ContractView,
	abis *contracts.Set, log *logger.Logger) (*Indexer, error) {
	params, err := paramsFromConfig(cfg.MoneyMarket)
	if err != nil {
		return nil, err
	}

	engine, err := lending.NewEngine(view, params, log)
	if err != nil {
		return nil, err
	}

	dec, err := decoder.New(abis)
	if err != nil {
		return nil, fmt.Errorf("failed to create event decoder: %w", err)
	}

	database, err := db.NewSQLiteDBFromConfig(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to create database: %w", err)
	}

	if err := migrations.RunMigrationsDB(log, database); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	idx := &Indexer{
		cfg:           cfg,
		client:        client,
		log:           log.WithComponent(internalcommon.ComponentMoneyMarket),
		db:            database,
		maintenance:   db.NewMaintenanceCoordinator(cfg.Name, cfg.DB.Path, database, cfg.DB.Maintenance, log),
		store:         sqlstore.New(database, cfg.MoneyMarket.CacheSize, log),
		engine:        engine,
		decoder:       dec,
		eventsToIndex: eventsToIndex(cfg.MoneyMarket, dec),
	}

	if idx.lastBlock, err = idx.loadLastBlock(); err != nil {
		database.Close()
		return nil, err
	}

	if err := idx.maintenance.Start(context.Background()); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to start database maintenance: %w", err)
	}

	idx.log.Infow("money market indexer created",
		"name", cfg.Name,
		"markets", len(cfg.MoneyMarket.Markets),
		"comptroller", cfg.MoneyMarket.Comptroller,
		"price_oracle", cfg.MoneyMarket.PriceOracle,
		"last_block", idx.lastBlock,
	)

	return idx, nil
}

func paramsFromConfig(mm *config.MoneyMarketConfig) (lending.Params, error) {
	params := lending.Params{
		NativeMarket:    common.HexToAddress(mm.NativeMarket),
		ReferenceMarket: common.HexToAddress(mm.ReferenceMarket),
		BlocksPerYear:   mm.BlocksPerYear,
		AuditTransfers:  mm.AuditTransfers,
	}
	if mm.PriceOracle != "" {
		params.FallbackOracle = common.HexToAddress(mm.PriceOracle)
	}

	if err := params.Validate(); err != nil {
		return params, fmt.Errorf("invalid money market configuration: %w", err)
	}

	return params, nil
}

// eventsToIndex binds every configured contract to the events of its role.
func eventsToIndex(mm *config.MoneyMarketConfig, dec *decoder.Decoder) map[common.Address]map[common.Hash]struct{} {
	events := make(map[common.Address]map[common.Hash]struct{})

	add := func(addr string, source decoder.Source) {
		if addr == "" {
			return
		}
		address := common.HexToAddress(addr)
		if events[address] == nil {
			events[address] = make(map[common.Hash]struct{})
		}
		for _, topic := range dec.Topics(source) {
			events[address][topic] = struct{}{}
		}
	}

	for _, market := range mm.Markets {
		add(market, decoder.SourcePoolToken)
	}
	add(mm.Comptroller, decoder.SourceComptroller)
	add(mm.PriceOracle, decoder.SourcePriceOracle)
	for _, token := range mm.UnderlyingTokens {
		add(token, decoder.SourceUnderlying)
	}

	return events
}

// GetName returns the name of the indexer.
func (idx *Indexer) GetName() string {
	return idx.cfg.Name
}

// GetType returns the registry type of the indexer.
func (idx *Indexer) GetType() string {
	return Type
}

// StartBlock returns the block from which the indexer wants logs.
func (idx *Indexer) StartBlock() uint64 {
	return idx.cfg.StartBlock
}

// EventsToIndex returns the map of contract addresses to event topic hashes.
func (idx *Indexer) EventsToIndex() map[common.Address]map[common.Hash]struct{} {
	return idx.eventsToIndex
}

// Engine returns the lending engine of the indexer.
func (idx *Indexer) Engine() *lending.Engine {
	return idx.engine
}

// HandleLogs decodes logs and applies them through the engine in one
// transaction. On error nothing of the batch is kept.
func (idx *Indexer) HandleLogs(ctx context.Context, logs []types.Log) error {
	return idx.HandleLogsWithHeaders(ctx, logs, nil)
}

// HandleLogsWithHeaders is HandleLogs taking block timestamps from headers.
// Only blocks without a header are fetched.
func (idx *Indexer) HandleLogsWithHeaders(ctx context.Context, logs []types.Log, headers []*types.Header) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	pending := make([]types.Log, 0, len(logs))
	for _, l := range logs {
		if l.BlockNumber > idx.lastBlock {
			pending = append(pending, l)
		}
	}
	if skipped := len(logs) - len(pending); skipped > 0 {
		idx.log.Infow("skipping logs of already applied blocks",
			"skipped", skipped,
			"last_block", idx.lastBlock,
		)
	}
	if len(pending) == 0 {
		return nil
	}

	events, err := idx.decode(ctx, pending, headers)
	if err != nil {
		return err
	}

	lastBlock := pending[len(pending)-1].BlockNumber
	if err := idx.apply(ctx, events, lastBlock); err != nil {
		return err
	}

	idx.lastBlock = lastBlock
	batchApplied(len(events))
	if err := db.ReportSize(idx.cfg.Name, idx.cfg.DB.Path); err != nil {
		idx.log.Debugf("failed to report database size: %v", err)
	}

	idx.log.Infow("applied money market events",
		"events", len(events),
		"logs", len(pending),
		"last_block", lastBlock,
	)

	return nil
}

// apply runs events through the engine inside one store transaction. Database
// maintenance waits for it to finish.
func (idx *Indexer) apply(ctx context.Context, events []lending.Event, lastBlock uint64) (err error) {
	unlock := idx.maintenance.AcquireOperationLock()
	defer unlock()

	tx, err := idx.store.Begin(ctx)
	if err != nil {
		return err
	}

	cursor := idx.engine.Cursor()
	defer func() {
		if err == nil {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			idx.log.Errorf("failed to rollback transaction: %v", rbErr)
		}
		idx.engine.Rewind(cursor)
	}()

	for _, ev := range events {
		if err = idx.engine.Apply(ctx, tx, ev); err != nil {
			return err
		}
	}
	idx.engine.Flush()

	if err = tx.SetLastBlock(lastBlock); err != nil {
		return err
	}

	return tx.Commit()
}

// decode turns logs into engine events. Logs of unknown events are dropped.
func (idx *Indexer) decode(ctx context.Context, logs []types.Log, headers []*types.Header) ([]lending.Event, error) {
	timestamps, err := idx.blockTimestamps(ctx, logs, headers)
	if err != nil {
		return nil, err
	}

	positions, err := idx.txLogPositions(ctx, logs)
	if err != nil {
		return nil, err
	}

	events := make([]lending.Event, 0, len(logs))
	for _, l := range logs {
		meta := lending.Meta{
			Address:        l.Address,
			TxHash:         l.TxHash,
			TxIndex:        l.TxIndex,
			LogIndex:       positions[logKey{tx: l.TxHash, index: l.Index}],
			BlockLogIndex:  l.Index,
			BlockNumber:    l.BlockNumber,
			BlockTimestamp: timestamps[l.BlockNumber],
		}

		ev, err := idx.decoder.Decode(l, meta)
		if errors.Is(err, decoder.ErrUnknownEvent) {
			unknownLogs.Inc()
			idx.log.Warnw("dropping log of unknown event",
				"address", l.Address.Hex(),
				"tx", l.TxHash.Hex(),
				"error", err,
			)
			continue
		}
		if err != nil {
			return nil, err
		}

		events = append(events, ev)
	}

	return events, nil
}

// blockTimestamps returns the timestamp of every block logs come from. Blocks
// absent from known are fetched in one batch.
func (idx *Indexer) blockTimestamps(ctx context.Context, logs []types.Log,
	known []*types.Header) (map[uint64]uint64, error) {
	timestamps := make(map[uint64]uint64, len(known))
	for _, h := range known {
		if h != nil && h.Number != nil {
			timestamps[h.Number.Uint64()] = h.Time
		}
	}

	blocks := make([]uint64, 0)
	missing := make([]uint64, 0)
	seen := make(map[uint64]struct{})
	for _, l := range logs {
		if _, ok := seen[l.BlockNumber]; ok {
			continue
		}
		seen[l.BlockNumber] = struct{}{}
		blocks = append(blocks, l.BlockNumber)
		if _, ok := timestamps[l.BlockNumber]; !ok {
			missing = append(missing, l.BlockNumber)
		}
	}

	if len(missing) > 0 {
		fetched, err := idx.client.BatchGetBlockHeaders(ctx, missing)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch block headers: %w", err)
		}
		for _, h := range fetched {
			if h != nil && h.Number != nil {
				timestamps[h.Number.Uint64()] = h.Time
			}
		}
	}

	for _, b := range blocks {
		if _, ok := timestamps[b]; !ok {
			return nil, fmt.Errorf("missing header of block %d", b)
		}
	}

	return timestamps, nil
}

type logKey struct {
	tx    common.Hash
	index uint
}

// txLogPositions maps every log to its position within its transaction's
// receipt. Logs only carry their position within the block.
func (idx *Indexer) txLogPositions(ctx context.Context, logs []types.Log) (map[logKey]uint, error) {
	txs := make([]common.Hash, 0)
	seen := make(map[common.Hash]struct{})
	for _, l := range logs {
		if _, ok := seen[l.TxHash]; !ok {
			seen[l.TxHash] = struct{}{}
			txs = append(txs, l.TxHash)
		}
	}

	receipts, err := idx.client.BatchGetReceipts(ctx, txs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch receipts: %w", err)
	}

	if len(receipts) != len(txs) {
		return nil, fmt.Errorf("expected %d receipts, got %d", len(txs), len(receipts))
	}

	positions := make(map[logKey]uint)
	for i, receipt := range receipts {
		if receipt == nil {
			continue
		}
		for pos, rl := range receipt.Logs {
			positions[logKey{tx: txs[i], index: rl.Index}] = uint(pos)
		}
	}

	for _, l := range logs {
		if _, ok := positions[logKey{tx: l.TxHash, index: l.Index}]; !ok {
			return nil, fmt.Errorf("log %d of block %d missing from receipt of tx %s",
				l.Index, l.BlockNumber, l.TxHash.Hex())
		}
	}

	return positions, nil
}

func (idx *Indexer) loadLastBlock() (uint64, error) {
	tx, err := idx.store.Begin(context.Background())
	if err != nil {
		return 0, err
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			idx.log.Errorf("failed to rollback transaction: %v", err)
		}
	}()

	return tx.LastBlock()
}

// Close stops database maintenance and closes the indexer database.
func (idx *Indexer) Close() error {
	return errors.Join(idx.maintenance.Stop(), idx.db.Close())
}
