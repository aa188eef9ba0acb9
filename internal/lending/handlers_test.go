package lending

import (
	"context"
	"math/big"
	"math/rand"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// testChain applies events at strictly increasing positions of a single block.
type testChain struct {
	t      *testing.T
	engine *Engine
	repo   *memRepo
	block  uint64
	tx     uint
}

func newTestChain(t *testing.T) (*testChain, *memRepo) {
	t.Helper()

	repo := newMemRepo()
	return &testChain{
		t:      t,
		engine: newTestEngine(t, newTestView(t)),
		repo:   repo,
		block:  100,
	}, repo
}

// next returns the meta of the next transaction at addr.
func (c *testChain) next(addr common.Address) Meta {
	c.tx++
	return metaAt(addr, c.block, c.tx, 0)
}

func (c *testChain) apply(ev Event) {
	c.t.Helper()
	require.NoError(c.t, c.engine.Apply(context.Background(), c.repo, ev))
}

func TestEngine_Borrow(t *testing.T) {
	t.Parallel()

	chain, repo := newTestChain(t)
	repo.seedMarket(daiMarket, "bDAI", 18, 100)

	meta := chain.next(daiMarket)
	chain.apply(&Borrow{
		Meta:           meta,
		Borrower:       aliceAddress,
		BorrowAmount:   exp(100, 18),
		AccountBorrows: exp(100, 18),
		TotalBorrows:   exp(100, 18),
	})

	position := repo.position(t, daiMarket, aliceAddress)
	requireDecimal(t, "100", position.StoredBorrowBalance)
	requireDecimal(t, "100", position.TotalUnderlyingBorrowed)
	requireDecimal(t, "1.5", position.AccountBorrowIndex)
	assert.Equal(t, []string{meta.TxHash.Hex()}, position.TransactionHashes)
	assert.Equal(t, []uint64{meta.BlockTimestamp}, position.TransactionTimes)
	assert.Equal(t, uint64(100), position.AccrualBlockNumber)
	assert.Equal(t, "bDAI", position.Symbol)

	assert.True(t, repo.accounts[EntityID(aliceAddress)].HasBorrowed)
	assert.Equal(t, int64(1), repo.market(t, daiMarket).NumberOfBorrowers)

	record, ok := repo.record(t, RecordBorrow, meta).(*BorrowRecord)
	require.True(t, ok)
	requireDecimal(t, "100", record.Amount)
	requireDecimal(t, "100", record.AccountBorrows)
	assert.Equal(t, aliceAddress, record.Borrower)
	assert.Equal(t, "DAI", record.UnderlyingSymbol)
	assert.Equal(t, meta.BlockTimestamp, record.BlockTime)
}

func TestEngine_BorrowWithZeroBalanceDoesNotCountBorrower(t *testing.T) {
	t.Parallel()

	chain, repo := newTestChain(t)
	repo.seedMarket(daiMarket, "bDAI", 18, 100)

	chain.apply(&Borrow{
		Meta:           chain.next(daiMarket),
		Borrower:       aliceAddress,
		BorrowAmount:   big.NewInt(0),
		AccountBorrows: big.NewInt(0),
		TotalBorrows:   big.NewInt(0),
	})

	assert.Zero(t, repo.market(t, daiMarket).NumberOfBorrowers)
	assert.True(t, repo.accounts[EntityID(aliceAddress)].HasBorrowed)
	assert.Equal(t, 1, repo.recordCount(RecordBorrow))
}

func TestEngine_BorrowNeverDecrementsBorrowerCount(t *testing.T) {
	t.Parallel()

	chain, repo := newTestChain(t)
	repo.seedMarket(daiMarket, "bDAI", 18, 100)

	chain.apply(&Borrow{
		Meta:           chain.next(daiMarket),
		Borrower:       aliceAddress,
		BorrowAmount:   exp(1, 18),
		AccountBorrows: exp(1, 18),
		TotalBorrows:   exp(1, 18),
	})
	require.Equal(t, int64(1), repo.market(t, daiMarket).NumberOfBorrowers)

	// a zero balance reported by a borrow leaves the count to repayments
	chain.apply(&Borrow{
		Meta:           chain.next(daiMarket),
		Borrower:       aliceAddress,
		BorrowAmount:   big.NewInt(0),
		AccountBorrows: big.NewInt(0),
		TotalBorrows:   big.NewInt(0),
	})

	assert.Equal(t, int64(1), repo.market(t, daiMarket).NumberOfBorrowers)
	assert.True(t, repo.position(t, daiMarket, aliceAddress).StoredBorrowBalance.IsZero())
	assert.Equal(t, 2, repo.recordCount(RecordBorrow))
}

func TestEngine_BorrowOnUnknownMarketIsSkipped(t *testing.T) {
	t.Parallel()

	chain, repo := newTestChain(t)

	chain.apply(&Borrow{
		Meta:           chain.next(unknownAddress),
		Borrower:       aliceAddress,
		BorrowAmount:   exp(1, 18),
		AccountBorrows: exp(1, 18),
		TotalBorrows:   exp(1, 18),
	})

	assert.Empty(t, repo.accounts)
	assert.Empty(t, repo.positions)
	assert.Zero(t, repo.recordCount(RecordBorrow))
}

func TestEngine_RepayBorrow(t *testing.T) {
	t.Parallel()

	chain, repo := newTestChain(t)
	repo.seedMarket(daiMarket, "bDAI", 18, 100)

	chain.apply(&Borrow{
		Meta:           chain.next(daiMarket),
		Borrower:       aliceAddress,
		BorrowAmount:   exp(100, 18),
		AccountBorrows: exp(100, 18),
		TotalBorrows:   exp(100, 18),
	})

	partial := chain.next(daiMarket)
	chain.apply(&RepayBorrow{
		Meta:           partial,
		Payer:          bobAddress,
		Borrower:       aliceAddress,
		RepayAmount:    exp(40, 18),
		AccountBorrows: exp(60, 18),
		TotalBorrows:   exp(60, 18),
	})
	assert.Equal(t, int64(1), repo.market(t, daiMarket).NumberOfBorrowers)

	chain.apply(&RepayBorrow{
		Meta:           chain.next(daiMarket),
		Payer:          aliceAddress,
		Borrower:       aliceAddress,
		RepayAmount:    exp(60, 18),
		AccountBorrows: big.NewInt(0),
		TotalBorrows:   big.NewInt(0),
	})

	position := repo.position(t, daiMarket, aliceAddress)
	assert.True(t, position.StoredBorrowBalance.IsZero())
	requireDecimal(t, "100", position.TotalUnderlyingRepaid)
	assert.Len(t, position.TransactionHashes, 3)
	assert.Zero(t, repo.market(t, daiMarket).NumberOfBorrowers)

	record, ok := repo.record(t, RecordRepay, partial).(*RepayRecord)
	require.True(t, ok)
	requireDecimal(t, "40", record.Amount)
	requireDecimal(t, "60", record.AccountBorrows)
	assert.Equal(t, bobAddress, record.Payer)
	assert.Equal(t, aliceAddress, record.Borrower)

	// the payer is not a borrower and gets no position
	_, ok = repo.positions[PositionID(EntityID(daiMarket), EntityID(bobAddress))]
	assert.False(t, ok)
}

func TestEngine_RepayBorrowNeverUnderflowsBorrowerCount(t *testing.T) {
	t.Parallel()

	chain, repo := newTestChain(t)
	repo.seedMarket(daiMarket, "bDAI", 18, 100)

	// a balance carried over from before the market had any counted borrower
	repo.seedAccount(aliceAddress)
	id := PositionID(EntityID(daiMarket), EntityID(aliceAddress))
	repo.positions[id] = Position{
		ID:                  id,
		Market:              EntityID(daiMarket),
		Account:             EntityID(aliceAddress),
		Symbol:              "bDAI",
		StoredBorrowBalance: decimal.NewFromInt(5),
	}

	chain.apply(&RepayBorrow{
		Meta:           chain.next(daiMarket),
		Payer:          aliceAddress,
		Borrower:       aliceAddress,
		RepayAmount:    exp(5, 18),
		AccountBorrows: big.NewInt(0),
		TotalBorrows:   big.NewInt(0),
	})

	assert.Zero(t, repo.market(t, daiMarket).NumberOfBorrowers)
	assert.True(t, repo.position(t, daiMarket, aliceAddress).StoredBorrowBalance.IsZero())
}

func TestEngine_BorrowerCountTracksNonZeroBalances(t *testing.T) {
	t.Parallel()

	chain, repo := newTestChain(t)
	repo.seedMarket(daiMarket, "bDAI", 18, 100)

	accounts := []common.Address{aliceAddress, bobAddress, carolAddress}
	balances := make(map[common.Address]int64)
	rnd := rand.New(rand.NewSource(7))

	for range 300 {
		account := accounts[rnd.Intn(len(accounts))]
		balance := balances[account]

		if balance == 0 || rnd.Intn(2) == 0 {
			amount := rnd.Int63n(3)
			balance += amount
			chain.apply(&Borrow{
				Meta:           chain.next(daiMarket),
				Borrower:       account,
				BorrowAmount:   exp(amount, 18),
				AccountBorrows: exp(balance, 18),
				TotalBorrows:   big.NewInt(0),
			})
		} else {
			amount := rnd.Int63n(balance + 1)
			balance -= amount
			chain.apply(&RepayBorrow{
				Meta:           chain.next(daiMarket),
				Payer:          account,
				Borrower:       account,
				RepayAmount:    exp(amount, 18),
				AccountBorrows: exp(balance, 18),
				TotalBorrows:   big.NewInt(0),
			})
		}
		balances[account] = balance

		var borrowers int64
		for _, p := range repo.positions {
			if !p.StoredBorrowBalance.IsZero() {
				borrowers++
			}
		}
		require.Equal(t, borrowers, repo.market(t, daiMarket).NumberOfBorrowers)
	}
}

func TestEngine_TransferMintAndRedeemLegs(t *testing.T) {
	t.Parallel()

	chain, repo := newTestChain(t)
	repo.seedMarket(daiMarket, "bDAI", 18, 100)

	mint := chain.next(daiMarket)
	chain.apply(&Mint{
		Meta:       mint,
		Minter:     aliceAddress,
		MintAmount: exp(1, 18),
		MintTokens: exp(50, 8),
	})
	mintLeg := mint
	mintLeg.LogIndex, mintLeg.BlockLogIndex = 1, 1
	chain.apply(&Transfer{Meta: mintLeg, From: daiMarket, To: aliceAddress, Amount: exp(50, 8)})

	position := repo.position(t, daiMarket, aliceAddress)
	requireDecimal(t, "50", position.PoolTokenBalance)
	requireDecimal(t, "1", position.TotalUnderlyingSupplied)
	assert.Len(t, position.TransactionHashes, 1)
	assert.Equal(t, int64(1), repo.market(t, daiMarket).NumberOfSuppliers)

	_, ok := repo.positions[PositionID(EntityID(daiMarket), EntityID(daiMarket))]
	assert.False(t, ok, "the pool contract has no position")

	mintRecord, ok := repo.record(t, RecordMint, mint).(*MintRecord)
	require.True(t, ok)
	requireDecimal(t, "50", mintRecord.Amount)
	requireDecimal(t, "1", mintRecord.UnderlyingAmount)
	assert.Equal(t, aliceAddress, mintRecord.To)
	assert.Equal(t, daiMarket, mintRecord.From)
	assert.Equal(t, "bDAI", mintRecord.PoolTokenSymbol)

	transferRecord, ok := repo.record(t, RecordTransfer, mintLeg).(*TransferRecord)
	require.True(t, ok)
	requireDecimal(t, "50", transferRecord.Amount)

	redeem := chain.next(daiMarket)
	redeemLeg := redeem
	chain.apply(&Transfer{Meta: redeemLeg, From: aliceAddress, To: daiMarket, Amount: exp(50, 8)})
	redeem.LogIndex, redeem.BlockLogIndex = 1, 1
	chain.apply(&Redeem{
		Meta:         redeem,
		Redeemer:     aliceAddress,
		RedeemAmount: exp(1, 18),
		RedeemTokens: exp(50, 8),
	})

	position = repo.position(t, daiMarket, aliceAddress)
	assert.True(t, position.PoolTokenBalance.IsZero())
	requireDecimal(t, "1", position.TotalUnderlyingRedeemed)
	assert.Len(t, position.TransactionHashes, 2)
	assert.Zero(t, repo.market(t, daiMarket).NumberOfSuppliers)

	redeemRecord, ok := repo.record(t, RecordRedeem, redeem).(*RedeemRecord)
	require.True(t, ok)
	assert.Equal(t, daiMarket, redeemRecord.To)
	assert.Equal(t, aliceAddress, redeemRecord.From)
	requireDecimal(t, "50", redeemRecord.Amount)
}

func TestEngine_TransferBetweenAccounts(t *testing.T) {
	t.Parallel()

	chain, repo := newTestChain(t)
	repo.seedMarket(daiMarket, "bDAI", 18, 100)

	chain.apply(&Transfer{Meta: chain.next(daiMarket), From: daiMarket, To: aliceAddress, Amount: exp(50, 8)})
	chain.apply(&Transfer{Meta: chain.next(daiMarket), From: aliceAddress, To: bobAddress, Amount: exp(20, 8)})

	alice := repo.position(t, daiMarket, aliceAddress)
	bob := repo.position(t, daiMarket, bobAddress)
	requireDecimal(t, "30", alice.PoolTokenBalance)
	requireDecimal(t, "0.4", alice.TotalUnderlyingRedeemed)
	requireDecimal(t, "20", bob.PoolTokenBalance)
	requireDecimal(t, "0.4", bob.TotalUnderlyingSupplied)
	assert.Equal(t, int64(2), repo.market(t, daiMarket).NumberOfSuppliers)
	assert.Contains(t, repo.accounts, EntityID(bobAddress))
}

func TestEngine_TransferOfZeroTokens(t *testing.T) {
	t.Parallel()

	chain, repo := newTestChain(t)
	repo.seedMarket(daiMarket, "bDAI", 18, 100)

	meta := chain.next(daiMarket)
	chain.apply(&Transfer{Meta: meta, From: aliceAddress, To: bobAddress, Amount: big.NewInt(0)})

	alice := repo.position(t, daiMarket, aliceAddress)
	bob := repo.position(t, daiMarket, bobAddress)
	assert.True(t, alice.PoolTokenBalance.IsZero())
	assert.True(t, bob.PoolTokenBalance.IsZero())
	assert.Equal(t, []string{meta.TxHash.Hex()}, alice.TransactionHashes)
	assert.Equal(t, []string{meta.TxHash.Hex()}, bob.TransactionHashes)
	assert.Zero(t, repo.market(t, daiMarket).NumberOfSuppliers)
	assert.Equal(t, 1, repo.recordCount(RecordTransfer))
}

func TestEngine_TransferRefreshesStaleMarket(t *testing.T) {
	t.Parallel()

	repo := newMemRepo()
	repo.seedMarket(daiMarket, "bDAI", 18, 100)

	view := newTestView(t)
	expectRefresh(view, daiMarket, oracleAddress, 101, refreshReads{
		exchangeRate:   exp(4, 26),
		borrowIndex:    exp(2, 18),
		reserves:       big.NewInt(0),
		totalBorrows:   big.NewInt(0),
		totalSupply:    exp(10, 8),
		cash:           big.NewInt(0),
		borrowRate:     big.NewInt(0),
		supplyRate:     big.NewInt(0),
		accrualBlock:   big.NewInt(101),
		price:          exp(1, 15),
		referencePrice: exp(1, 15),
	})

	engine := newTestEngine(t, view)
	ctx := context.Background()

	require.NoError(t, engine.Apply(ctx, repo,
		&Transfer{Meta: metaAt(daiMarket, 101, 0, 0), From: daiMarket, To: aliceAddress, Amount: exp(10, 8)}))
	// same block: no second refresh
	require.NoError(t, engine.Apply(ctx, repo,
		&Transfer{Meta: metaAt(daiMarket, 101, 1, 1), From: aliceAddress, To: bobAddress, Amount: exp(5, 8)}))

	market := repo.market(t, daiMarket)
	requireDecimal(t, "0.04", market.ExchangeRate)
	assert.Equal(t, uint64(101), market.RefreshBlockNumber)
	assert.Equal(t, int64(2), market.NumberOfSuppliers)

	requireDecimal(t, "0.4", repo.position(t, daiMarket, aliceAddress).TotalUnderlyingSupplied)
	requireDecimal(t, "0.2", repo.position(t, daiMarket, bobAddress).TotalUnderlyingSupplied)
}

func TestEngine_TransferOnUnknownMarketIsSkipped(t *testing.T) {
	t.Parallel()

	chain, repo := newTestChain(t)

	chain.apply(&Transfer{Meta: chain.next(unknownAddress), From: aliceAddress, To: bobAddress, Amount: exp(1, 8)})

	assert.Empty(t, repo.markets)
	assert.Empty(t, repo.positions)
	assert.Zero(t, repo.recordCount(RecordTransfer))
}

func TestEngine_SupplierCountTracksNonZeroBalances(t *testing.T) {
	t.Parallel()

	chain, repo := newTestChain(t)
	repo.seedMarket(daiMarket, "bDAI", 18, 100)

	holders := []common.Address{aliceAddress, bobAddress, carolAddress}
	balances := make(map[common.Address]int64)
	rnd := rand.New(rand.NewSource(42))

	for range 300 {
		from := holders[rnd.Intn(len(holders))]
		to := holders[rnd.Intn(len(holders))]

		var amount int64
		switch rnd.Intn(3) {
		case 0: // mint leg
			from = daiMarket
			amount = rnd.Int63n(5)
			balances[to] += amount
		case 1: // redeem leg
			to = daiMarket
			amount = rnd.Int63n(balances[from] + 1)
			balances[from] -= amount
		default:
			if from == to {
				continue
			}
			amount = rnd.Int63n(balances[from] + 1)
			balances[from] -= amount
			balances[to] += amount
		}

		chain.apply(&Transfer{Meta: chain.next(daiMarket), From: from, To: to, Amount: exp(amount, 8)})

		var suppliers int64
		for _, holder := range holders {
			p, ok := repo.positions[PositionID(EntityID(daiMarket), EntityID(holder))]
			if ok {
				requireDecimal(t, big.NewInt(balances[holder]).String(), p.PoolTokenBalance)
				if !p.PoolTokenBalance.IsZero() {
					suppliers++
				}
			}
		}
		require.Equal(t, suppliers, repo.market(t, daiMarket).NumberOfSuppliers)
	}
}

func TestEngine_LiquidateBorrow(t *testing.T) {
	t.Parallel()

	chain, repo := newTestChain(t)
	repo.seedMarket(daiMarket, "bDAI", 18, 100)
	repo.seedMarket(wbtcMarket, "bWBTC", 8, 100)

	meta := chain.next(daiMarket)
	chain.apply(&LiquidateBorrow{
		Meta:                meta,
		Liquidator:          bobAddress,
		Borrower:            aliceAddress,
		RepayAmount:         exp(250, 18),
		PoolTokenCollateral: wbtcMarket,
		SeizeTokens:         exp(3, 8),
	})

	assert.Equal(t, int64(1), repo.accounts[EntityID(bobAddress)].CountLiquidator)
	assert.Equal(t, int64(1), repo.accounts[EntityID(aliceAddress)].CountLiquidated)
	assert.Empty(t, repo.positions, "seized collateral moves through the collateral transfer")

	record, ok := repo.record(t, RecordLiquidation, meta).(*LiquidationRecord)
	require.True(t, ok)
	requireDecimal(t, "3", record.Amount)
	requireDecimal(t, "250", record.UnderlyingRepayAmount)
	assert.Equal(t, "bWBTC", record.PoolTokenSymbol)
	assert.Equal(t, "DAI", record.UnderlyingSymbol)
	assert.Equal(t, bobAddress, record.To)
	assert.Equal(t, aliceAddress, record.From)
}

func TestEngine_LiquidateBorrowWithUnknownCollateralIsSkipped(t *testing.T) {
	t.Parallel()

	chain, repo := newTestChain(t)
	repo.seedMarket(daiMarket, "bDAI", 18, 100)

	chain.apply(&LiquidateBorrow{
		Meta:                chain.next(daiMarket),
		Liquidator:          bobAddress,
		Borrower:            aliceAddress,
		RepayAmount:         exp(1, 18),
		PoolTokenCollateral: unknownAddress,
		SeizeTokens:         exp(1, 8),
	})

	assert.Empty(t, repo.accounts)
	assert.Zero(t, repo.recordCount(RecordLiquidation))
}

func TestEngine_Incentives(t *testing.T) {
	t.Parallel()

	chain, repo := newTestChain(t)
	repo.seedMarket(daiMarket, "bDAI", 18, 100)
	repo.seedAccount(aliceAddress)

	zero := chain.next(oracleAddress)
	chain.apply(&DistributedSupplierIncentive{
		Meta: zero, PoolToken: daiMarket, Supplier: aliceAddress,
		Delta: big.NewInt(0), SupplyIndex: exp(1, 36),
	})
	assert.Zero(t, repo.recordCount(RecordSupplierIncentive))

	supplied := chain.next(oracleAddress)
	chain.apply(&DistributedSupplierIncentive{
		Meta: supplied, PoolToken: daiMarket, Supplier: aliceAddress,
		Delta: exp(15, 17), SupplyIndex: exp(1, 36),
	})
	supplierRecord, ok := repo.record(t, RecordSupplierIncentive, supplied).(*SupplierIncentiveRecord)
	require.True(t, ok)
	requireDecimal(t, "1.5", supplierRecord.IncentiveAmount)
	assert.Equal(t, exp(1, 36).String(), supplierRecord.SupplyIndex.String())
	assert.Equal(t, "bDAI", supplierRecord.PoolTokenSymbol)

	borrowed := chain.next(oracleAddress)
	chain.apply(&DistributedBorrowerIncentive{
		Meta: borrowed, PoolToken: daiMarket, Borrower: aliceAddress,
		Delta: big.NewInt(1), BorrowIndex: exp(2, 36),
	})
	borrowerRecord, ok := repo.record(t, RecordBorrowerIncentive, borrowed).(*BorrowerIncentiveRecord)
	require.True(t, ok)
	requireDecimal(t, "0.000000000000000001", borrowerRecord.IncentiveAmount)

	// unknown accounts are neither created nor credited
	chain.apply(&DistributedBorrowerIncentive{
		Meta: chain.next(oracleAddress), PoolToken: daiMarket, Borrower: bobAddress,
		Delta: exp(1, 18), BorrowIndex: exp(2, 36),
	})
	assert.Equal(t, 1, repo.recordCount(RecordBorrowerIncentive))
	assert.NotContains(t, repo.accounts, EntityID(bobAddress))
}

func TestEngine_Approval(t *testing.T) {
	t.Parallel()

	chain, repo := newTestChain(t)
	repo.seedMarket(daiMarket, "bDAI", 18, 100)
	repo.underlying[EntityID(daiToken)] = UnderlyingToken{ID: EntityID(daiToken), MarketAddress: daiMarket, Symbol: "bDAI"}

	meta := chain.next(daiToken)
	chain.apply(&Approval{Meta: meta, Owner: aliceAddress, Spender: daiMarket, Value: big.NewInt(123)})

	position := repo.position(t, daiMarket, aliceAddress)
	assert.True(t, position.IsUnderlyingApproved)
	assert.Len(t, position.TransactionHashes, 1)

	record, ok := repo.record(t, RecordApproval, meta).(*ApprovalRecord)
	require.True(t, ok)
	requireDecimal(t, "123", record.Amount)
	assert.Equal(t, "bDAI", record.PoolTokenSymbol)

	// approvals of tokens that are not a market underlying are ignored
	chain.apply(&Approval{Meta: chain.next(unknownAddress), Owner: bobAddress, Spender: daiMarket, Value: big.NewInt(1)})
	// as are approvals to a spender that is not a market
	chain.apply(&Approval{Meta: chain.next(daiToken), Owner: bobAddress, Spender: unknownAddress, Value: big.NewInt(1)})

	assert.Equal(t, 1, repo.recordCount(RecordApproval))
	assert.NotContains(t, repo.accounts, EntityID(bobAddress))
}

func TestEngine_MarketEnteredAndExited(t *testing.T) {
	t.Parallel()

	chain, repo := newTestChain(t)
	repo.seedMarket(daiMarket, "bDAI", 18, 100)

	chain.apply(&MarketEntered{Meta: chain.next(oracleAddress), PoolToken: daiMarket, Account: aliceAddress})
	assert.True(t, repo.position(t, daiMarket, aliceAddress).EnteredMarket)

	chain.apply(&MarketExited{Meta: chain.next(oracleAddress), PoolToken: daiMarket, Account: aliceAddress})
	position := repo.position(t, daiMarket, aliceAddress)
	assert.False(t, position.EnteredMarket)
	assert.Len(t, position.TransactionHashes, 2)

	chain.apply(&MarketEntered{Meta: chain.next(oracleAddress), PoolToken: unknownAddress, Account: bobAddress})
	assert.NotContains(t, repo.accounts, EntityID(bobAddress))
}

func TestEngine_Governance(t *testing.T) {
	t.Parallel()

	chain, repo := newTestChain(t)
	repo.seedMarket(daiMarket, "bDAI", 18, 100)
	oracle := common.HexToAddress("0x00000000000000000000000000000000000000cc")

	chain.apply(&NewCloseFactor{Meta: chain.next(oracleAddress), NewCloseFactorMantissa: exp(5, 17)})
	chain.apply(&NewLiquidationIncentive{Meta: chain.next(oracleAddress), NewLiquidationIncentiveMantissa: exp(108, 16)})
	chain.apply(&NewMaxAssets{Meta: chain.next(oracleAddress), NewMaxAssets: big.NewInt(20)})
	chain.apply(&NewPriceOracle{Meta: chain.next(oracleAddress), NewPriceOracle: oracle})
	chain.apply(&NewIncentiveRate{Meta: chain.next(oracleAddress), NewRate: big.NewInt(500_000)})
	chain.apply(&NewCollateralFactor{
		Meta: chain.next(oracleAddress), PoolToken: daiMarket, NewCollateralFactorMantissa: exp(75, 16),
	})
	chain.apply(&IncentiveSpeedUpdated{Meta: chain.next(oracleAddress), PoolToken: daiMarket, NewSpeed: exp(1, 17)})
	chain.apply(&NewReserveFactor{Meta: chain.next(daiMarket), NewReserveFactorMantissa: exp(2, 17)})
	model := common.HexToAddress("0x00000000000000000000000000000000000000dd")
	chain.apply(&NewInterestRateModel{Meta: chain.next(daiMarket), NewInterestRateModel: model})

	require.NotNil(t, repo.protocol)
	assert.Equal(t, ProtocolID, repo.protocol.ID)
	requireDecimal(t, "500000000000000000", repo.protocol.CloseFactor)
	requireDecimal(t, "1080000000000000000", repo.protocol.LiquidationIncentive)
	requireDecimal(t, "20", repo.protocol.MaxAssets)
	requireDecimal(t, "0.5", repo.protocol.IncentiveRate)
	assert.Equal(t, oracle, repo.protocol.PriceOracle)

	market := repo.market(t, daiMarket)
	requireDecimal(t, "0.75", market.CollateralFactor)
	requireDecimal(t, "0.1", market.IncentiveSpeed)
	requireDecimal(t, "200000000000000000", market.ReserveFactor)
	assert.Equal(t, model, market.InterestRateModelAddress)
}

func TestEngine_NewReserveFactorOnNonPoolTokenIsSkipped(t *testing.T) {
	t.Parallel()

	repo := newMemRepo()
	view := newTestView(t)
	view.EXPECT().IsPoolToken(mock.Anything, unknownAddress, uint64(100)).Return(false, nil).Once()

	engine := newTestEngine(t, view)
	require.NoError(t, engine.Apply(context.Background(), repo,
		&NewReserveFactor{Meta: metaAt(unknownAddress, 100, 0, 0), NewReserveFactorMantissa: exp(1, 17)}))

	assert.Empty(t, repo.markets)
}

func TestEngine_MarketListedCreatesMarket(t *testing.T) {
	t.Parallel()

	repo := newMemRepo()
	view := newTestView(t)
	expectERC20Market(view, daiMarket, daiToken, "bDAI", "DAI", 18)

	engine := newTestEngine(t, view)
	require.NoError(t, engine.Apply(context.Background(), repo,
		&MarketListed{Meta: metaAt(oracleAddress, 100, 0, 0), PoolToken: daiMarket}))

	market := repo.market(t, daiMarket)
	assert.Equal(t, "bDAI", market.Symbol)
	assert.Zero(t, market.RefreshBlockNumber)
}

func TestEngine_PricePostedRefreshesKnownMarket(t *testing.T) {
	t.Parallel()

	repo := newMemRepo()
	repo.seedMarket(daiMarket, "bDAI", 18, 100)

	view := newTestView(t)
	expectRefresh(view, daiMarket, oracleAddress, 105, refreshReads{
		exchangeRate:   exp(2, 26),
		borrowIndex:    exp(1, 18),
		reserves:       big.NewInt(0),
		totalBorrows:   big.NewInt(0),
		totalSupply:    big.NewInt(0),
		cash:           big.NewInt(0),
		borrowRate:     big.NewInt(0),
		supplyRate:     big.NewInt(0),
		accrualBlock:   big.NewInt(100),
		price:          exp(3, 14),
		referencePrice: exp(6, 14),
	})

	engine := newTestEngine(t, view)
	ctx := context.Background()

	// the oracle posts prices keyed by the market, not the emitting contract
	require.NoError(t, engine.Apply(ctx, repo, &PricePosted{
		Meta:             metaAt(oracleAddress, 105, 0, 0),
		Asset:            daiMarket,
		NewPriceMantissa: exp(3, 14),
	}))
	require.NoError(t, engine.Apply(ctx, repo, &PricePosted{
		Meta:             metaAt(oracleAddress, 105, 1, 1),
		Asset:            unknownAddress,
		NewPriceMantissa: exp(3, 14),
	}))

	market := repo.market(t, daiMarket)
	requireDecimal(t, "0.0003", market.UnderlyingPrice)
	requireDecimal(t, "0.5", market.UnderlyingPriceUSD)
	assert.Equal(t, uint64(105), market.RefreshBlockNumber)
	assert.Len(t, repo.markets, 1)
}

func TestEngine_AccrueInterestRefreshesMarket(t *testing.T) {
	t.Parallel()

	repo := newMemRepo()
	repo.seedMarket(daiMarket, "bDAI", 18, 100)

	view := newTestView(t)
	expectRefresh(view, daiMarket, oracleAddress, 110, refreshReads{
		exchangeRate:   exp(21, 25),
		borrowIndex:    exp(11, 17),
		reserves:       exp(3, 18),
		totalBorrows:   exp(400, 18),
		totalSupply:    exp(1000, 8),
		cash:           exp(600, 18),
		borrowRate:     exp(2, 10),
		supplyRate:     exp(1, 10),
		accrualBlock:   big.NewInt(110),
		price:          exp(1, 15),
		referencePrice: exp(1, 15),
	})

	engine := newTestEngine(t, view)
	require.NoError(t, engine.Apply(context.Background(), repo, &AccrueInterest{
		Meta:                metaAt(daiMarket, 110, 0, 0),
		InterestAccumulated: exp(1, 18),
		BorrowIndex:         exp(11, 17),
		TotalBorrows:        exp(400, 18),
	}))

	market := repo.market(t, daiMarket)
	requireDecimal(t, "0.021", market.ExchangeRate)
	requireDecimal(t, "1.1", market.BorrowIndex)
	requireDecimal(t, "400", market.TotalBorrows)
	requireDecimal(t, "1000", market.TotalSupply)
	requireDecimal(t, "0.042048", market.BorrowRate)
	requireDecimal(t, "0.021024", market.SupplyRate)
	assert.Equal(t, uint64(110), market.AccrualBlockNumber)
}

func TestEngine_ReplayedEventsKeepRecordsUnique(t *testing.T) {
	t.Parallel()

	chain, repo := newTestChain(t)
	repo.seedMarket(daiMarket, "bDAI", 18, 100)

	meta := chain.next(daiMarket)
	mint := &Mint{Meta: meta, Minter: aliceAddress, MintAmount: exp(1, 18), MintTokens: exp(50, 8)}
	chain.apply(mint)
	first := repo.record(t, RecordMint, meta)

	// a rolled back batch is applied again from the previous cursor
	chain.engine.Rewind(Cursor{})
	chain.apply(mint)

	assert.Equal(t, 1, repo.recordCount(RecordMint))
	assert.Same(t, first, repo.record(t, RecordMint, meta))
	assert.Equal(t, meta.TxHash.Hex()+"-0", RecordID(meta))
}
