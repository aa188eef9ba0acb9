package lending

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/LendingIndexor/pkg/mantissa"
)

// getOrCreateProtocol returns the protocol singleton. A new one is not stored
// until the caller does so.
func getOrCreateProtocol(ctx context.Context, repo Repository) (*Protocol, error) {
	found, err := repo.LoadProtocol(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load protocol: %w", err)
	}
	if protocol, ok := found.Get(); ok {
		return protocol, nil
	}
	return &Protocol{ID: ProtocolID}, nil
}

func (e *Engine) updateProtocol(ctx context.Context, repo Repository, update func(*Protocol)) error {
	protocol, err := getOrCreateProtocol(ctx, repo)
	if err != nil {
		return err
	}

	update(protocol)

	if err := repo.StoreProtocol(ctx, protocol); err != nil {
		return fmt.Errorf("failed to store protocol: %w", err)
	}
	return nil
}

func (e *Engine) handleMarketListed(ctx context.Context, repo Repository, ev *MarketListed) error {
	found, err := e.markets.GetOrCreate(ctx, repo, ev.PoolToken, ev.BlockNumber)
	if err != nil {
		return err
	}
	if found.IsAbsent() {
		e.skip("MarketListed", reasonNotPoolToken, ev.Meta)
	}
	return nil
}

func (e *Engine) handleMarketEntered(ctx context.Context, repo Repository, ev *MarketEntered) error {
	return e.setEnteredMarket(ctx, repo, "MarketEntered", ev.Meta, ev.PoolToken, ev.Account, true)
}

func (e *Engine) handleMarketExited(ctx context.Context, repo Repository, ev *MarketExited) error {
	return e.setEnteredMarket(ctx, repo, "MarketExited", ev.Meta, ev.PoolToken, ev.Account, false)
}

func (e *Engine) setEnteredMarket(ctx context.Context, repo Repository, event string, meta Meta,
	poolToken, account common.Address, entered bool) error {
	found, err := e.markets.Load(ctx, repo, poolToken)
	if err != nil {
		return err
	}
	market, ok := found.Get()
	if !ok {
		e.skip(event, reasonUnknownMarket, meta)
		return nil
	}

	position, err := touchPosition(ctx, repo, market, EntityID(account), meta)
	if err != nil {
		return err
	}
	position.EnteredMarket = entered

	if err := repo.StorePosition(ctx, position); err != nil {
		return fmt.Errorf("failed to store position %s: %w", position.ID, err)
	}
	return nil
}

func (e *Engine) handleNewCloseFactor(ctx context.Context, repo Repository, ev *NewCloseFactor) error {
	return e.updateProtocol(ctx, repo, func(p *Protocol) {
		p.CloseFactor = mantissa.FromRaw(ev.NewCloseFactorMantissa)
	})
}

// handleNewCollateralFactor stores the factor scaled, unlike the close factor
// and liquidation incentive which stay raw.
func (e *Engine) handleNewCollateralFactor(ctx context.Context, repo Repository, ev *NewCollateralFactor) error {
	found, err := e.markets.Load(ctx, repo, ev.PoolToken)
	if err != nil {
		return err
	}
	market, ok := found.Get()
	if !ok {
		e.skip("NewCollateralFactor", reasonUnknownMarket, ev.Meta)
		return nil
	}

	market.CollateralFactor = mantissa.FromMantissa(ev.NewCollateralFactorMantissa, mantissa.MantissaDecimals)

	return repo.StoreMarket(ctx, market)
}

func (e *Engine) handleNewLiquidationIncentive(ctx context.Context, repo Repository, ev *NewLiquidationIncentive) error {
	return e.updateProtocol(ctx, repo, func(p *Protocol) {
		p.LiquidationIncentive = mantissa.FromRaw(ev.NewLiquidationIncentiveMantissa)
	})
}

func (e *Engine) handleNewMaxAssets(ctx context.Context, repo Repository, ev *NewMaxAssets) error {
	return e.updateProtocol(ctx, repo, func(p *Protocol) {
		p.MaxAssets = mantissa.FromRaw(ev.NewMaxAssets)
	})
}

func (e *Engine) handleNewPriceOracle(ctx context.Context, repo Repository, ev *NewPriceOracle) error {
	return e.updateProtocol(ctx, repo, func(p *Protocol) {
		p.PriceOracle = ev.NewPriceOracle
	})
}

func (e *Engine) handleNewIncentiveRate(ctx context.Context, repo Repository, ev *NewIncentiveRate) error {
	return e.updateProtocol(ctx, repo, func(p *Protocol) {
		p.IncentiveRate = mantissa.FromMantissa(ev.NewRate, mantissa.IncentiveDecimals)
	})
}

func (e *Engine) handleIncentiveSpeedUpdated(ctx context.Context, repo Repository, ev *IncentiveSpeedUpdated) error {
	found, err := e.markets.Load(ctx, repo, ev.PoolToken)
	if err != nil {
		return err
	}
	market, ok := found.Get()
	if !ok {
		e.skip("IncentiveSpeedUpdated", reasonUnknownMarket, ev.Meta)
		return nil
	}

	market.IncentiveSpeed = mantissa.FromMantissa(ev.NewSpeed, mantissa.MantissaDecimals)

	return repo.StoreMarket(ctx, market)
}

func (e *Engine) handleDistributedSupplierIncentive(ctx context.Context, repo Repository,
	ev *DistributedSupplierIncentive) error {
	market, ok, err := e.incentiveTarget(ctx, repo, "DistributedSupplierIncentive", ev.Meta, ev.PoolToken, ev.Supplier)
	if err != nil || !ok {
		return err
	}

	amount := mantissa.Truncate(mantissa.FromMantissa(ev.Delta, mantissa.MantissaDecimals), mantissa.MantissaDecimals)
	if !amount.IsPositive() {
		e.skip("DistributedSupplierIncentive", reasonZeroAmount, ev.Meta)
		return nil
	}

	return repo.InsertRecord(ctx, &SupplierIncentiveRecord{
		ID:              RecordID(ev.Meta),
		Supplier:        ev.Supplier,
		IncentiveAmount: amount,
		SupplyIndex:     mantissa.FromRaw(ev.SupplyIndex),
		BlockNumber:     ev.BlockNumber,
		BlockTime:       ev.BlockTimestamp,
		PoolTokenSymbol: market.Symbol,
	})
}

func (e *Engine) handleDistributedBorrowerIncentive(ctx context.Context, repo Repository,
	ev *DistributedBorrowerIncentive) error {
	market, ok, err := e.incentiveTarget(ctx, repo, "DistributedBorrowerIncentive", ev.Meta, ev.PoolToken, ev.Borrower)
	if err != nil || !ok {
		return err
	}

	amount := mantissa.Truncate(mantissa.FromMantissa(ev.Delta, mantissa.MantissaDecimals), mantissa.MantissaDecimals)
	if !amount.IsPositive() {
		e.skip("DistributedBorrowerIncentive", reasonZeroAmount, ev.Meta)
		return nil
	}

	return repo.InsertRecord(ctx, &BorrowerIncentiveRecord{
		ID:              RecordID(ev.Meta),
		Borrower:        ev.Borrower,
		IncentiveAmount: amount,
		BorrowIndex:     mantissa.FromRaw(ev.BorrowIndex),
		BlockNumber:     ev.BlockNumber,
		BlockTime:       ev.BlockTimestamp,
		PoolTokenSymbol: market.Symbol,
	})
}

// incentiveTarget resolves the market and account of an incentive distribution.
// Neither is created: a distribution to an unknown account is ignored.
func (e *Engine) incentiveTarget(ctx context.Context, repo Repository, event string, meta Meta,
	poolToken, account common.Address) (*Market, bool, error) {
	found, err := e.markets.Load(ctx, repo, poolToken)
	if err != nil {
		return nil, false, err
	}
	market, ok := found.Get()
	if !ok {
		e.skip(event, reasonUnknownMarket, meta)
		return nil, false, nil
	}

	accountID := EntityID(account)
	known, err := repo.LoadAccount(ctx, accountID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load account %s: %w", accountID, err)
	}
	if known.IsAbsent() {
		e.skip(event, reasonUnknownAccount, meta)
		return nil, false, nil
	}

	return market, true, nil
}
