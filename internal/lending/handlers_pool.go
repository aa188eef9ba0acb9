package lending

import (
	"context"
	"fmt"

	"github.com/goran-ethernal/LendingIndexor/pkg/mantissa"
	"github.com/shopspring/decimal"
)

const (
	reasonUnknownMarket     = "unknown_market"
	reasonUnknownCollateral = "unknown_collateral"
	reasonUnknownAccount    = "unknown_account"
	reasonUnknownUnderlying = "unknown_underlying"
	reasonNotPoolToken      = "not_pool_token"
	reasonZeroAmount        = "zero_amount"
)

func poolTokens(raw decimal.Decimal) decimal.Decimal {
	return mantissa.Truncate(mantissa.DivScale(raw, mantissa.PoolTokenDecimals), mantissa.PoolTokenDecimals)
}

func underlyingAmount(raw decimal.Decimal, market *Market) decimal.Decimal {
	return mantissa.Truncate(mantissa.DivScale(raw, market.UnderlyingDecimals), market.UnderlyingDecimals)
}

// adjustBorrowers keeps the borrower count in step with the accounts holding a
// non-zero stored borrow balance. Only repayments may decrement it.
func adjustBorrowers(market *Market, prev, next decimal.Decimal) bool {
	switch {
	case prev.IsZero() && !next.IsZero():
		market.NumberOfBorrowers++
		return true
	case !prev.IsZero() && next.IsZero() && market.NumberOfBorrowers > 0:
		market.NumberOfBorrowers--
		return true
	}
	return false
}

func (e *Engine) handleMint(ctx context.Context, repo Repository, ev *Mint) error {
	found, err := e.markets.Load(ctx, repo, ev.Address)
	if err != nil {
		return err
	}
	market, ok := found.Get()
	if !ok {
		e.skip("Mint", reasonUnknownMarket, ev.Meta)
		return nil
	}

	return repo.InsertRecord(ctx, &MintRecord{
		ID:               RecordID(ev.Meta),
		Amount:           poolTokens(mantissa.FromRaw(ev.MintTokens)),
		To:               ev.Minter,
		From:             ev.Address,
		BlockNumber:      ev.BlockNumber,
		BlockTime:        ev.BlockTimestamp,
		PoolTokenSymbol:  market.Symbol,
		UnderlyingAmount: underlyingAmount(mantissa.FromRaw(ev.MintAmount), market),
	})
}

func (e *Engine) handleRedeem(ctx context.Context, repo Repository, ev *Redeem) error {
	found, err := e.markets.Load(ctx, repo, ev.Address)
	if err != nil {
		return err
	}
	market, ok := found.Get()
	if !ok {
		e.skip("Redeem", reasonUnknownMarket, ev.Meta)
		return nil
	}

	return repo.InsertRecord(ctx, &RedeemRecord{
		ID:               RecordID(ev.Meta),
		Amount:           poolTokens(mantissa.FromRaw(ev.RedeemTokens)),
		To:               ev.Address,
		From:             ev.Redeemer,
		BlockNumber:      ev.BlockNumber,
		BlockTime:        ev.BlockTimestamp,
		PoolTokenSymbol:  market.Symbol,
		UnderlyingAmount: underlyingAmount(mantissa.FromRaw(ev.RedeemAmount), market),
	})
}

func (e *Engine) handleBorrow(ctx context.Context, repo Repository, ev *Borrow) error {
	found, err := e.markets.Load(ctx, repo, ev.Address)
	if err != nil {
		return err
	}
	market, ok := found.Get()
	if !ok {
		e.skip("Borrow", reasonUnknownMarket, ev.Meta)
		return nil
	}

	accountID := EntityID(ev.Borrower)
	account, err := getOrCreateAccount(ctx, repo, accountID)
	if err != nil {
		return err
	}
	account.HasBorrowed = true
	if err := repo.StoreAccount(ctx, account); err != nil {
		return fmt.Errorf("failed to store account %s: %w", accountID, err)
	}

	position, err := getOrCreatePosition(ctx, repo, market, accountID)
	if err != nil {
		return err
	}
	position.touch(ev.Meta)

	accountBorrows := underlyingAmount(mantissa.FromRaw(ev.AccountBorrows), market)
	previous := position.StoredBorrowBalance
	position.StoredBorrowBalance = accountBorrows
	position.AccountBorrowIndex = market.BorrowIndex
	position.TotalUnderlyingBorrowed = position.TotalUnderlyingBorrowed.Add(
		mantissa.FromMantissa(ev.BorrowAmount, market.UnderlyingDecimals))
	if err := repo.StorePosition(ctx, position); err != nil {
		return fmt.Errorf("failed to store position %s: %w", position.ID, err)
	}

	// a borrow only ever adds a borrower
	if previous.IsZero() && !accountBorrows.IsZero() {
		market.NumberOfBorrowers++
		if err := repo.StoreMarket(ctx, market); err != nil {
			return fmt.Errorf("failed to store market %s: %w", market.ID, err)
		}
	}

	return repo.InsertRecord(ctx, &BorrowRecord{
		ID:               RecordID(ev.Meta),
		Amount:           underlyingAmount(mantissa.FromRaw(ev.BorrowAmount), market),
		AccountBorrows:   accountBorrows,
		Borrower:         ev.Borrower,
		BlockNumber:      ev.BlockNumber,
		BlockTime:        ev.BlockTimestamp,
		UnderlyingSymbol: market.UnderlyingSymbol,
	})
}

func (e *Engine) handleRepayBorrow(ctx context.Context, repo Repository, ev *RepayBorrow) error {
	found, err := e.markets.Load(ctx, repo, ev.Address)
	if err != nil {
		return err
	}
	market, ok := found.Get()
	if !ok {
		e.skip("RepayBorrow", reasonUnknownMarket, ev.Meta)
		return nil
	}

	position, err := touchPosition(ctx, repo, market, EntityID(ev.Borrower), ev.Meta)
	if err != nil {
		return err
	}

	accountBorrows := underlyingAmount(mantissa.FromRaw(ev.AccountBorrows), market)
	previous := position.StoredBorrowBalance
	position.StoredBorrowBalance = accountBorrows
	position.AccountBorrowIndex = market.BorrowIndex
	position.TotalUnderlyingRepaid = position.TotalUnderlyingRepaid.Add(
		mantissa.FromMantissa(ev.RepayAmount, market.UnderlyingDecimals))
	if err := repo.StorePosition(ctx, position); err != nil {
		return fmt.Errorf("failed to store position %s: %w", position.ID, err)
	}

	if adjustBorrowers(market, previous, accountBorrows) {
		if err := repo.StoreMarket(ctx, market); err != nil {
			return fmt.Errorf("failed to store market %s: %w", market.ID, err)
		}
	}

	return repo.InsertRecord(ctx, &RepayRecord{
		ID:               RecordID(ev.Meta),
		Amount:           underlyingAmount(mantissa.FromRaw(ev.RepayAmount), market),
		AccountBorrows:   accountBorrows,
		Borrower:         ev.Borrower,
		Payer:            ev.Payer,
		BlockNumber:      ev.BlockNumber,
		BlockTime:        ev.BlockTimestamp,
		UnderlyingSymbol: market.UnderlyingSymbol,
	})
}

// handleLiquidateBorrow only counts the liquidation. The seized collateral moves
// through the Transfer emitted by the collateral market.
func (e *Engine) handleLiquidateBorrow(ctx context.Context, repo Repository, ev *LiquidateBorrow) error {
	found, err := e.markets.Load(ctx, repo, ev.Address)
	if err != nil {
		return err
	}
	repayMarket, ok := found.Get()
	if !ok {
		e.skip("LiquidateBorrow", reasonUnknownMarket, ev.Meta)
		return nil
	}

	found, err = e.markets.Load(ctx, repo, ev.PoolTokenCollateral)
	if err != nil {
		return err
	}
	collateralMarket, ok := found.Get()
	if !ok {
		e.skip("LiquidateBorrow", reasonUnknownCollateral, ev.Meta)
		return nil
	}

	liquidator, err := getOrCreateAccount(ctx, repo, EntityID(ev.Liquidator))
	if err != nil {
		return err
	}
	liquidator.CountLiquidator++
	if err := repo.StoreAccount(ctx, liquidator); err != nil {
		return fmt.Errorf("failed to store account %s: %w", liquidator.ID, err)
	}

	borrower, err := getOrCreateAccount(ctx, repo, EntityID(ev.Borrower))
	if err != nil {
		return err
	}
	borrower.CountLiquidated++
	if err := repo.StoreAccount(ctx, borrower); err != nil {
		return fmt.Errorf("failed to store account %s: %w", borrower.ID, err)
	}

	return repo.InsertRecord(ctx, &LiquidationRecord{
		ID:                    RecordID(ev.Meta),
		Amount:                poolTokens(mantissa.FromRaw(ev.SeizeTokens)),
		To:                    ev.Liquidator,
		From:                  ev.Borrower,
		BlockNumber:           ev.BlockNumber,
		BlockTime:             ev.BlockTimestamp,
		PoolTokenSymbol:       collateralMarket.Symbol,
		UnderlyingSymbol:      repayMarket.UnderlyingSymbol,
		UnderlyingRepayAmount: underlyingAmount(mantissa.FromRaw(ev.RepayAmount), repayMarket),
	})
}

// handleTransfer moves pool tokens between positions. The side that is the pool
// contract itself is skipped: it is the mint or redeem leg. Tokens sent to the
// pool contract outside a redeem are not credited anywhere.
func (e *Engine) handleTransfer(ctx context.Context, repo Repository, ev *Transfer) error {
	found, err := e.markets.Load(ctx, repo, ev.Address)
	if err != nil {
		return err
	}
	if found.IsAbsent() {
		e.skip("Transfer", reasonUnknownMarket, ev.Meta)
		return nil
	}

	found, err = e.markets.Refresh(ctx, repo, ev.Address, ev.BlockNumber, ev.BlockTimestamp)
	if err != nil {
		return err
	}
	market, ok := found.Get()
	if !ok {
		e.skip("Transfer", reasonUnknownMarket, ev.Meta)
		return nil
	}

	amount := poolTokens(mantissa.FromRaw(ev.Amount))
	underlying := mantissa.Truncate(market.ExchangeRate.Mul(amount), market.UnderlyingDecimals)
	marketChanged := false

	if ev.From != ev.Address {
		position, err := touchPosition(ctx, repo, market, EntityID(ev.From), ev.Meta)
		if err != nil {
			return err
		}

		previous := position.PoolTokenBalance
		position.PoolTokenBalance = previous.Sub(amount)
		position.TotalUnderlyingRedeemed = position.TotalUnderlyingRedeemed.Add(underlying)
		if err := repo.StorePosition(ctx, position); err != nil {
			return fmt.Errorf("failed to store position %s: %w", position.ID, err)
		}

		if !previous.IsZero() && position.PoolTokenBalance.IsZero() && market.NumberOfSuppliers > 0 {
			market.NumberOfSuppliers--
			marketChanged = true
		}
	}

	if ev.To != ev.Address {
		position, err := touchPosition(ctx, repo, market, EntityID(ev.To), ev.Meta)
		if err != nil {
			return err
		}

		previous := position.PoolTokenBalance
		position.PoolTokenBalance = previous.Add(amount)
		position.TotalUnderlyingSupplied = position.TotalUnderlyingSupplied.Add(underlying)
		if err := repo.StorePosition(ctx, position); err != nil {
			return fmt.Errorf("failed to store position %s: %w", position.ID, err)
		}

		if previous.IsZero() && !amount.IsZero() {
			market.NumberOfSuppliers++
			marketChanged = true
		}
	}

	if marketChanged {
		if err := repo.StoreMarket(ctx, market); err != nil {
			return fmt.Errorf("failed to store market %s: %w", market.ID, err)
		}
	}

	return repo.InsertRecord(ctx, &TransferRecord{
		ID:              RecordID(ev.Meta),
		Amount:          mantissa.FromMantissa(ev.Amount, mantissa.PoolTokenDecimals),
		To:              ev.To,
		From:            ev.From,
		BlockNumber:     ev.BlockNumber,
		BlockTime:       ev.BlockTimestamp,
		PoolTokenSymbol: market.Symbol,
	})
}

func (e *Engine) handleAccrueInterest(ctx context.Context, repo Repository, ev *AccrueInterest) error {
	found, err := e.markets.Refresh(ctx, repo, ev.Address, ev.BlockNumber, ev.BlockTimestamp)
	if err != nil {
		return err
	}
	if found.IsAbsent() {
		e.skip("AccrueInterest", reasonNotPoolToken, ev.Meta)
	}
	return nil
}

func (e *Engine) handleNewReserveFactor(ctx context.Context, repo Repository, ev *NewReserveFactor) error {
	found, err := e.markets.GetOrCreate(ctx, repo, ev.Address, ev.BlockNumber)
	if err != nil {
		return err
	}
	market, ok := found.Get()
	if !ok {
		e.skip("NewReserveFactor", reasonNotPoolToken, ev.Meta)
		return nil
	}

	market.ReserveFactor = mantissa.FromRaw(ev.NewReserveFactorMantissa)

	return repo.StoreMarket(ctx, market)
}

func (e *Engine) handleNewInterestRateModel(ctx context.Context, repo Repository, ev *NewInterestRateModel) error {
	found, err := e.markets.GetOrCreate(ctx, repo, ev.Address, ev.BlockNumber)
	if err != nil {
		return err
	}
	market, ok := found.Get()
	if !ok {
		e.skip("NewInterestRateModel", reasonNotPoolToken, ev.Meta)
		return nil
	}

	market.InterestRateModelAddress = ev.NewInterestRateModel

	return repo.StoreMarket(ctx, market)
}

func (e *Engine) handlePricePosted(ctx context.Context, repo Repository, ev *PricePosted) error {
	found, err := e.markets.Load(ctx, repo, ev.Asset)
	if err != nil {
		return err
	}
	if found.IsAbsent() {
		e.skip("PricePosted", reasonUnknownMarket, ev.Meta)
		return nil
	}

	_, err = e.markets.Refresh(ctx, repo, ev.Asset, ev.BlockNumber, ev.BlockTimestamp)
	return err
}
