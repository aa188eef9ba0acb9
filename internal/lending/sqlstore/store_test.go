package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/LendingIndexor/internal/db"
	"github.com/goran-ethernal/LendingIndexor/internal/lending"
	"github.com/goran-ethernal/LendingIndexor/internal/lending/sqlstore/migrations"
	"github.com/goran-ethernal/LendingIndexor/internal/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var (
	marketAddress     = common.HexToAddress("0x00000000000000000000000000000000000000d1")
	underlyingAddress = common.HexToAddress("0x00000000000000000000000000000000000000d2")
	accountAddress    = common.HexToAddress("0x000000000000000000000000000000000000a11c")
)

func setupTestStore(t *testing.T) (*Store, *sql.DB) {
	t.Helper()

	database, err := db.NewSQLiteDB(filepath.Join(t.TempDir(), "lending.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	require.NoError(t, migrations.RunMigrationsDB(logger.NewNopLogger(), database))

	return New(database, 16, logger.NewNopLogger()), database
}

// inTx runs fn in a transaction and commits it.
func inTx(t *testing.T, store *Store, fn func(tx *Tx)) {
	t.Helper()

	tx, err := store.Begin(context.Background())
	require.NoError(t, err)
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Errorf("rollback failed: %v", err)
		}
	}()

	fn(tx)

	require.NoError(t, tx.Commit())
}

func requireEqualDecimal(t *testing.T, expected, actual decimal.Decimal) {
	t.Helper()
	require.Truef(t, expected.Equal(actual), "expected %s, got %s", expected, actual)
}

func TestStore_MarketRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, _ := setupTestStore(t)

	market := &lending.Market{
		ID:                       lending.EntityID(marketAddress),
		Symbol:                   "bDAI",
		Name:                     "Bird DAI",
		UnderlyingAddress:        underlyingAddress,
		UnderlyingDecimals:       18,
		UnderlyingName:           "Dai Stablecoin",
		UnderlyingSymbol:         "DAI",
		ExchangeRate:             decimal.RequireFromString("0.020000000000000001"),
		BorrowIndex:              decimal.RequireFromString("1.05"),
		ReserveFactor:            decimal.RequireFromString("100000000000000000"),
		UnderlyingPriceUSD:       decimal.RequireFromString("1"),
		NumberOfSuppliers:        3,
		NumberOfBorrowers:        1,
		AccrualBlockNumber:       120,
		RefreshBlockNumber:       121,
		BlockTimestamp:           1_700_000_000,
		InterestRateModelAddress: common.HexToAddress("0x1111"),
	}

	inTx(t, store, func(tx *Tx) {
		found, err := tx.LoadMarket(ctx, market.ID)
		require.NoError(t, err)
		require.True(t, found.IsAbsent())

		require.NoError(t, tx.StoreMarket(ctx, market))
	})

	inTx(t, store, func(tx *Tx) {
		found, err := tx.LoadMarket(ctx, market.ID)
		require.NoError(t, err)
		loaded, ok := found.Get()
		require.True(t, ok)

		require.Equal(t, market.Symbol, loaded.Symbol)
		require.Equal(t, market.UnderlyingAddress, loaded.UnderlyingAddress)
		require.Equal(t, market.InterestRateModelAddress, loaded.InterestRateModelAddress)
		require.Equal(t, market.UnderlyingDecimals, loaded.UnderlyingDecimals)
		requireEqualDecimal(t, market.ExchangeRate, loaded.ExchangeRate)
		requireEqualDecimal(t, market.ReserveFactor, loaded.ReserveFactor)
		require.True(t, loaded.Cash.IsZero())
		require.Equal(t, market.NumberOfSuppliers, loaded.NumberOfSuppliers)
		require.Equal(t, market.RefreshBlockNumber, loaded.RefreshBlockNumber)
		require.Equal(t, market.BlockTimestamp, loaded.BlockTimestamp)

		loaded.NumberOfSuppliers = 4
		require.NoError(t, tx.StoreMarket(ctx, loaded))
	})

	inTx(t, store, func(tx *Tx) {
		found, err := tx.LoadMarket(ctx, market.ID)
		require.NoError(t, err)
		loaded, _ := found.Get()
		require.Equal(t, int64(4), loaded.NumberOfSuppliers)
	})
}

func TestStore_PositionKeepsTransactionHistory(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, _ := setupTestStore(t)

	position := &lending.Position{
		ID:                lending.PositionID(lending.EntityID(marketAddress), lending.EntityID(accountAddress)),
		Market:            lending.EntityID(marketAddress),
		Account:           lending.EntityID(accountAddress),
		Symbol:            "bDAI",
		PoolTokenBalance:  decimal.RequireFromString("12.5"),
		EnteredMarket:     true,
		TransactionHashes: []string{common.HexToHash("0x01").Hex(), common.HexToHash("0x02").Hex()},
		TransactionTimes:  []uint64{1, 2},
	}

	inTx(t, store, func(tx *Tx) {
		require.NoError(t, tx.StorePosition(ctx, position))
	})

	inTx(t, store, func(tx *Tx) {
		found, err := tx.LoadPosition(ctx, position.ID)
		require.NoError(t, err)
		loaded, ok := found.Get()
		require.True(t, ok)

		require.Equal(t, position.TransactionHashes, loaded.TransactionHashes)
		require.Equal(t, position.TransactionTimes, loaded.TransactionTimes)
		require.True(t, loaded.EnteredMarket)
		require.False(t, loaded.IsUnderlyingApproved)
		requireEqualDecimal(t, position.PoolTokenBalance, loaded.PoolTokenBalance)
	})
}

func TestStore_AccountAndProtocol(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, _ := setupTestStore(t)

	inTx(t, store, func(tx *Tx) {
		found, err := tx.LoadProtocol(ctx)
		require.NoError(t, err)
		require.True(t, found.IsAbsent())

		require.NoError(t, tx.StoreAccount(ctx, &lending.Account{
			ID: lending.EntityID(accountAddress), HasBorrowed: true, CountLiquidated: 2,
		}))
		require.NoError(t, tx.StoreProtocol(ctx, &lending.Protocol{
			ID:          lending.ProtocolID,
			CloseFactor: decimal.RequireFromString("500000000000000000"),
			PriceOracle: common.HexToAddress("0xaa"),
		}))
	})

	inTx(t, store, func(tx *Tx) {
		account, err := tx.LoadAccount(ctx, lending.EntityID(accountAddress))
		require.NoError(t, err)
		a, ok := account.Get()
		require.True(t, ok)
		require.True(t, a.HasBorrowed)
		require.Equal(t, int64(2), a.CountLiquidated)

		protocol, err := tx.LoadProtocol(ctx)
		require.NoError(t, err)
		p, ok := protocol.Get()
		require.True(t, ok)
		require.Equal(t, common.HexToAddress("0xaa"), p.PriceOracle)
		requireEqualDecimal(t, decimal.RequireFromString("500000000000000000"), p.CloseFactor)
	})
}

func TestStore_InsertRecordIsWriteOnce(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, database := setupTestStore(t)

	first := &lending.TransferRecord{
		ID:              common.HexToHash("0xabc").Hex() + "-0",
		Amount:          decimal.RequireFromString("50"),
		To:              accountAddress,
		From:            marketAddress,
		BlockNumber:     10,
		BlockTime:       100,
		PoolTokenSymbol: "bDAI",
	}
	replay := *first
	replay.Amount = decimal.RequireFromString("99")

	inTx(t, store, func(tx *Tx) {
		require.NoError(t, tx.InsertRecord(ctx, first))
		require.NoError(t, tx.InsertRecord(ctx, &replay))
	})

	var (
		count  int
		amount string
	)
	require.NoError(t, database.QueryRow(`SELECT COUNT(*), MAX(amount) FROM transfers`).Scan(&count, &amount))
	require.Equal(t, 1, count)
	require.Equal(t, "50", amount)
}

func TestStore_InsertEveryRecordKind(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, database := setupTestStore(t)
	amount := decimal.RequireFromString("1.5")

	records := []lending.Record{
		&lending.MintRecord{ID: "m", Amount: amount, UnderlyingAmount: amount},
		&lending.RedeemRecord{ID: "r", Amount: amount, UnderlyingAmount: amount},
		&lending.BorrowRecord{ID: "b", Amount: amount, AccountBorrows: amount},
		&lending.RepayRecord{ID: "p", Amount: amount, AccountBorrows: amount},
		&lending.LiquidationRecord{ID: "l", Amount: amount, UnderlyingRepayAmount: amount},
		&lending.TransferRecord{ID: "t", Amount: amount},
		&lending.ApprovalRecord{ID: "a", Amount: amount},
		&lending.SupplierIncentiveRecord{ID: "s", IncentiveAmount: amount, SupplyIndex: amount},
		&lending.BorrowerIncentiveRecord{ID: "i", IncentiveAmount: amount, BorrowIndex: amount},
	}

	inTx(t, store, func(tx *Tx) {
		for _, rec := range records {
			require.NoError(t, tx.InsertRecord(ctx, rec), rec.Kind())
		}
	})

	for _, rec := range records {
		var count int
		require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM `+recordTables[rec.Kind()]).Scan(&count))
		require.Equal(t, 1, count, rec.Kind())
	}
}

func TestStore_MarketTokenFirstWriterWins(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, _ := setupTestStore(t)
	other := common.HexToAddress("0xb1")

	inTx(t, store, func(tx *Tx) {
		require.NoError(t, tx.StoreMarketToken(ctx, &lending.MarketToken{Symbol: "bDAI", Address: marketAddress}))
		require.NoError(t, tx.StoreMarketToken(ctx, &lending.MarketToken{Symbol: "bDAI", Address: other}))

		found, err := tx.LoadMarketToken(ctx, "bDAI")
		require.NoError(t, err)
		token, ok := found.Get()
		require.True(t, ok)
		require.Equal(t, marketAddress, token.Address)
	})

	require.True(t, store.marketTokens.Has("bDAI"), "committed lookups are cached")
}

func TestStore_RolledBackLookupsAreNotCached(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, _ := setupTestStore(t)
	id := lending.EntityID(underlyingAddress)

	tx, err := store.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.StoreUnderlyingToken(ctx, &lending.UnderlyingToken{
		ID: id, MarketAddress: marketAddress, Symbol: "bDAI",
	}))
	found, err := tx.LoadUnderlyingToken(ctx, id)
	require.NoError(t, err)
	require.False(t, found.IsAbsent())
	require.NoError(t, tx.Rollback())

	require.False(t, store.underlyingTokens.Has(id))

	inTx(t, store, func(tx *Tx) {
		found, err := tx.LoadUnderlyingToken(ctx, id)
		require.NoError(t, err)
		require.True(t, found.IsAbsent())
	})
}

func TestStore_UnderlyingTokenServedFromCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, database := setupTestStore(t)
	id := lending.EntityID(underlyingAddress)

	inTx(t, store, func(tx *Tx) {
		require.NoError(t, tx.StoreUnderlyingToken(ctx, &lending.UnderlyingToken{
			ID: id, MarketAddress: marketAddress, Symbol: "bDAI",
		}))
	})

	// the first load after the write reads the row and caches it on commit
	inTx(t, store, func(tx *Tx) {
		_, err := tx.LoadUnderlyingToken(ctx, id)
		require.NoError(t, err)
	})

	_, err := database.Exec(`DELETE FROM underlying_tokens`)
	require.NoError(t, err)

	inTx(t, store, func(tx *Tx) {
		found, err := tx.LoadUnderlyingToken(ctx, id)
		require.NoError(t, err)
		token, ok := found.Get()
		require.True(t, ok)
		require.Equal(t, marketAddress, token.MarketAddress)
	})
}

func TestStore_ProgressCommitsWithBatch(t *testing.T) {
	t.Parallel()

	store, _ := setupTestStore(t)
	ctx := context.Background()

	inTx(t, store, func(tx *Tx) {
		block, err := tx.LastBlock()
		require.NoError(t, err)
		require.Zero(t, block)
		require.NoError(t, tx.SetLastBlock(120))
	})

	tx, err := store.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.SetLastBlock(130))
	require.NoError(t, tx.Rollback())

	inTx(t, store, func(tx *Tx) {
		block, err := tx.LastBlock()
		require.NoError(t, err)
		require.Equal(t, uint64(120), block)
	})
}
