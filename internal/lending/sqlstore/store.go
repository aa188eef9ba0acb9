package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bluele/gcache"
	internalcommon "github.com/goran-ethernal/LendingIndexor/internal/common"
	"github.com/goran-ethernal/LendingIndexor/internal/lending"
	"github.com/goran-ethernal/LendingIndexor/internal/logger"
	"github.com/russross/meddler"

	// registers the address and decimal meddlers used by the entity tags
	_ "github.com/goran-ethernal/LendingIndexor/internal/db"
)

// DefaultCacheSize is the number of entries kept per reverse lookup cache.
const DefaultCacheSize = 1024

const (
	tableMarkets          = "markets"
	tableAccounts         = "accounts"
	tablePositions        = "positions"
	tableProtocol         = "protocol"
	tableMarketTokens     = "market_tokens"
	tableUnderlyingTokens = "underlying_tokens"

	insertOrReplace = "INSERT OR REPLACE"
	insertOrIgnore  = "INSERT OR IGNORE"
)

var recordTables = map[lending.RecordKind]string{
	lending.RecordMint:              "mints",
	lending.RecordRedeem:            "redeems",
	lending.RecordBorrow:            "borrows",
	lending.RecordRepay:             "repays",
	lending.RecordLiquidation:       "liquidations",
	lending.RecordTransfer:          "transfers",
	lending.RecordApproval:          "approvals",
	lending.RecordSupplierIncentive: "supplier_incentives",
	lending.RecordBorrowerIncentive: "borrower_incentives",
}

// Store persists lending entities in SQLite.
//
// Market tokens and underlying tokens are written once and looked up on almost
// every event, so committed rows are kept in LRU caches.
type Store struct {
	db  *sql.DB
	log *logger.Logger

	marketTokens     gcache.Cache
	underlyingTokens gcache.Cache
}

// New creates a store on an already migrated database.
func New(database *sql.DB, cacheSize int, log *logger.Logger) *Store {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}

	return &Store{
		db:               database,
		log:              log.WithComponent(internalcommon.ComponentLendingStore),
		marketTokens:     gcache.New(cacheSize).LRU().Build(),
		underlyingTokens: gcache.New(cacheSize).LRU().Build(),
	}
}

// Begin starts a transaction. Every write of a batch goes through one Tx so
// that a failed batch leaves no partial state behind.
func (s *Store) Begin(ctx context.Context) (*Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	return &Tx{
		store:             s,
		tx:                tx,
		pendingTokens:     make(map[string]lending.MarketToken),
		pendingUnderlying: make(map[string]lending.UnderlyingToken),
	}, nil
}

// Tx is a lending.Repository bound to a database transaction.
type Tx struct {
	store *Store
	tx    *sql.Tx

	// rows seen inside the transaction, published to the caches on commit
	pendingTokens     map[string]lending.MarketToken
	pendingUnderlying map[string]lending.UnderlyingToken
}

var _ lending.Repository = (*Tx)(nil)

// Commit commits the transaction and publishes the rows it saw to the caches.
func (t *Tx) Commit() error {
	if err := t.tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	for symbol, token := range t.pendingTokens {
		if err := t.store.marketTokens.Set(symbol, token); err != nil {
			t.store.log.Warnf("failed to cache market token %s: %v", symbol, err)
		}
	}
	for id, token := range t.pendingUnderlying {
		if err := t.store.underlyingTokens.Set(id, token); err != nil {
			t.store.log.Warnf("failed to cache underlying token %s: %v", id, err)
		}
	}

	return nil
}

// Rollback aborts the transaction. It returns sql.ErrTxDone after a commit.
func (t *Tx) Rollback() error {
	return t.tx.Rollback()
}

func queryOne[T any](q meddler.DB, query string, args ...interface{}) (lending.Lookup[T], error) {
	var v T
	err := meddler.QueryRow(q, &v, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return lending.Absent[T](), nil
	}
	if err != nil {
		return lending.Absent[T](), err
	}
	return lending.Found(&v), nil
}

// write stores src in table with the given conflict verb. meddler has no
// upsert, so the statement is assembled from its column helpers.
func write(q meddler.DB, verb, table string, src interface{}) error {
	columns, err := meddler.ColumnsQuoted(src, true)
	if err != nil {
		return err
	}

	placeholders, err := meddler.PlaceholdersString(src, true)
	if err != nil {
		return err
	}

	values, err := meddler.Values(src, true)
	if err != nil {
		return err
	}

	query := fmt.Sprintf("%s INTO %s (%s) VALUES (%s)", verb, table, columns, placeholders)
	if _, err := q.Exec(query, values...); err != nil {
		return err
	}

	return nil
}

// LastBlock returns the last block committed through SetLastBlock.
func (t *Tx) LastBlock() (uint64, error) {
	var block uint64
	if err := t.tx.QueryRow(`SELECT last_block FROM progress WHERE id = 1`).Scan(&block); err != nil {
		return 0, fmt.Errorf("failed to read progress: %w", err)
	}
	return block, nil
}

// SetLastBlock records block as fully applied. It commits with the entities
// written in the same transaction.
func (t *Tx) SetLastBlock(block uint64) error {
	if _, err := t.tx.Exec(`UPDATE progress SET last_block = ? WHERE id = 1`, block); err != nil {
		return fmt.Errorf("failed to write progress: %w", err)
	}
	return nil
}
