package lending

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	internalcommon "github.com/goran-ethernal/LendingIndexor/internal/common"
	"github.com/goran-ethernal/LendingIndexor/internal/logger"
	"github.com/goran-ethernal/LendingIndexor/pkg/mantissa"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// MarketRegistry creates markets on first sight and keeps their contract state fresh.
type MarketRegistry struct {
	view   ContractView
	params Params
	log    *logger.Logger
}

// NewMarketRegistry creates a market registry reading contract state through view.
func NewMarketRegistry(view ContractView, params Params, log *logger.Logger) *MarketRegistry {
	return &MarketRegistry{
		view:   view,
		params: params,
		log:    log.WithComponent(internalcommon.ComponentMarketRegistry),
	}
}

// Load returns the market stored for addr without creating it.
func (r *MarketRegistry) Load(ctx context.Context, repo Repository, addr common.Address) (Lookup[Market], error) {
	found, err := repo.LoadMarket(ctx, EntityID(addr))
	if err != nil {
		return Absent[Market](), fmt.Errorf("failed to load market %s: %w", EntityID(addr), err)
	}
	return found, nil
}

// GetOrCreate returns the market for addr, creating it from contract state read
// at block when it does not exist. The lookup is absent when addr is not a pool
// token or its symbol is already claimed by another market.
func (r *MarketRegistry) GetOrCreate(ctx context.Context, repo Repository,
	addr common.Address, block uint64) (Lookup[Market], error) {
	found, err := r.Load(ctx, repo, addr)
	if err != nil || !found.IsAbsent() {
		return found, err
	}

	market, err := r.create(ctx, repo, addr, block)
	if err != nil || market == nil {
		return Absent[Market](), err
	}

	if err := repo.StoreMarket(ctx, market); err != nil {
		return Absent[Market](), fmt.Errorf("failed to store market %s: %w", market.ID, err)
	}

	r.log.Infow("market created",
		"market", market.ID,
		"symbol", market.Symbol,
		"underlying", market.UnderlyingSymbol,
		"block", block)

	return Found(market), nil
}

// create builds a new market. It returns nil without an error when the pool token check fails.
func (r *MarketRegistry) create(ctx context.Context, repo Repository,
	addr common.Address, block uint64) (*Market, error) {
	id := EntityID(addr)

	isPoolToken, err := r.view.IsPoolToken(ctx, addr, block)
	if err != nil && !errors.Is(err, ErrReverted) {
		return nil, fmt.Errorf("failed to check market %s: %w", id, err)
	}
	if err != nil || !isPoolToken {
		r.log.Debugw("address is not a pool token", "address", id, "block", block)
		return nil, nil
	}

	symbol, err := r.view.Symbol(ctx, addr, block)
	if errors.Is(err, ErrReverted) {
		r.log.Debugw("pool token symbol reverted", "address", id, "block", block)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read symbol of market %s: %w", id, err)
	}

	claimed, err := r.claimSymbol(ctx, repo, symbol, addr)
	if err != nil || !claimed {
		return nil, err
	}

	name, err := r.view.Name(ctx, addr, block)
	if err != nil {
		return nil, fmt.Errorf("failed to read name of market %s: %w", id, err)
	}

	market := &Market{
		ID:     id,
		Symbol: symbol,
		Name:   name,
	}

	if addr == r.params.NativeMarket {
		market.UnderlyingDecimals = nativeUnderlyingDecimals
		market.UnderlyingName = nativeUnderlyingName
		market.UnderlyingSymbol = nativeUnderlyingSymbol
		market.UnderlyingPrice = decimal.NewFromInt(1)
	} else if err := r.describeUnderlying(ctx, repo, market, block); err != nil {
		return nil, err
	}

	if addr == r.params.ReferenceMarket {
		market.UnderlyingPriceUSD = decimal.NewFromInt(1)
	}

	model, err := r.view.InterestRateModel(ctx, addr, block)
	if err := r.tolerate(err, id, "interestRateModel"); err != nil {
		return nil, err
	}
	market.InterestRateModelAddress = model

	reserveFactor, err := r.view.ReserveFactorMantissa(ctx, addr, block)
	if err := r.tolerate(err, id, "reserveFactorMantissa"); err != nil {
		return nil, err
	}
	market.ReserveFactor = mantissa.FromRaw(reserveFactor)

	return market, nil
}

// claimSymbol binds symbol to addr. It reports false when another market owns it.
func (r *MarketRegistry) claimSymbol(ctx context.Context, repo Repository,
	symbol string, addr common.Address) (bool, error) {
	found, err := repo.LoadMarketToken(ctx, symbol)
	if err != nil {
		return false, fmt.Errorf("failed to load market token %s: %w", symbol, err)
	}

	if token, ok := found.Get(); ok {
		if token.Address != addr {
			r.log.Debugw("symbol already claimed by another market",
				"symbol", symbol, "owner", EntityID(token.Address), "address", EntityID(addr))
			return false, nil
		}
		return true, nil
	}

	if err := repo.StoreMarketToken(ctx, &MarketToken{Symbol: symbol, Address: addr}); err != nil {
		return false, fmt.Errorf("failed to store market token %s: %w", symbol, err)
	}

	return true, nil
}

// describeUnderlying fills the underlying asset metadata of an ERC20 market and
// registers the reverse lookup from the underlying token to the market.
func (r *MarketRegistry) describeUnderlying(ctx context.Context, repo Repository, market *Market, block uint64) error {
	addr := market.Address()

	underlying, err := r.view.Underlying(ctx, addr, block)
	if err != nil {
		return fmt.Errorf("failed to read underlying of market %s: %w", market.ID, err)
	}

	decimals, err := r.view.Decimals(ctx, underlying, block)
	if err != nil {
		return fmt.Errorf("failed to read decimals of underlying %s: %w", EntityID(underlying), err)
	}

	name, err := r.view.Name(ctx, underlying, block)
	if err != nil {
		return fmt.Errorf("failed to read name of underlying %s: %w", EntityID(underlying), err)
	}

	symbol, err := r.view.Symbol(ctx, underlying, block)
	if err != nil {
		return fmt.Errorf("failed to read symbol of underlying %s: %w", EntityID(underlying), err)
	}

	market.UnderlyingAddress = underlying
	market.UnderlyingDecimals = int32(decimals)
	market.UnderlyingName = name
	market.UnderlyingSymbol = symbol

	underlyingID := EntityID(underlying)
	found, err := repo.LoadUnderlyingToken(ctx, underlyingID)
	if err != nil {
		return fmt.Errorf("failed to load underlying token %s: %w", underlyingID, err)
	}
	if !found.IsAbsent() {
		return nil
	}

	return repo.StoreUnderlyingToken(ctx, &UnderlyingToken{
		ID:            underlyingID,
		MarketAddress: addr,
		Symbol:        market.Symbol,
	})
}

// tolerate swallows a reverted read and reports any other failure.
func (r *MarketRegistry) tolerate(err error, market, call string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrReverted) {
		r.log.Infow("contract call reverted, using default", "market", market, "call", call)
		toleratedReadInc(call)
		return nil
	}
	return fmt.Errorf("failed to read %s of market %s: %w", call, market, err)
}

// marketState is the raw contract state read by a refresh.
type marketState struct {
	exchangeRate       *big.Int
	borrowIndex        *big.Int
	reserves           *big.Int
	totalBorrows       *big.Int
	totalSupply        *big.Int
	cash               *big.Int
	borrowRate         *big.Int
	supplyRate         *big.Int
	accrualBlockNumber *big.Int
	price              *big.Int
	usdPrice           *big.Int
}

// Refresh re-reads the contract state of the market at block and stores it.
// It is a no-op, without any contract read, when the market was already
// refreshed at block. Nothing is stored unless every required read succeeds.
func (r *MarketRegistry) Refresh(ctx context.Context, repo Repository,
	addr common.Address, block, timestamp uint64) (Lookup[Market], error) {
	found, err := r.GetOrCreate(ctx, repo, addr, block)
	if err != nil {
		return found, err
	}

	market, ok := found.Get()
	if !ok || market.RefreshBlockNumber == block {
		return found, nil
	}

	start := time.Now()

	oracle, err := r.priceOracle(ctx, repo)
	if err != nil {
		marketRefreshInc("failed")
		return Absent[Market](), &RefreshError{Market: market.ID, Block: block, Call: "priceOracle", Err: err}
	}

	state, err := r.read(ctx, market, oracle, block)
	if err != nil {
		marketRefreshInc("failed")
		return Absent[Market](), err
	}

	refreshed := r.apply(*market, state, block, timestamp)
	if err := repo.StoreMarket(ctx, &refreshed); err != nil {
		return Absent[Market](), fmt.Errorf("failed to store market %s: %w", refreshed.ID, err)
	}

	marketRefreshInc("refreshed")
	marketRefreshDuration(time.Since(start))

	return Found(&refreshed), nil
}

// priceOracle resolves the oracle to read prices from.
func (r *MarketRegistry) priceOracle(ctx context.Context, repo Repository) (common.Address, error) {
	found, err := repo.LoadProtocol(ctx)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to load protocol: %w", err)
	}

	if protocol, ok := found.Get(); ok && protocol.PriceOracle != (common.Address{}) {
		return protocol.PriceOracle, nil
	}

	if r.params.FallbackOracle != (common.Address{}) {
		return r.params.FallbackOracle, nil
	}

	return common.Address{}, ErrPriceOracleUnknown
}

// read performs the refresh reads concurrently, all pinned to block.
func (r *MarketRegistry) read(ctx context.Context, market *Market,
	oracle common.Address, block uint64) (*marketState, error) {
	addr := market.Address()
	state := &marketState{}

	g, gctx := errgroup.WithContext(ctx)

	call := func(name string, dst **big.Int, fn func(context.Context) (*big.Int, error)) {
		g.Go(func() error {
			v, err := fn(gctx)
			if err != nil {
				return &RefreshError{Market: market.ID, Block: block, Call: name, Err: err}
			}
			*dst = v
			return nil
		})
	}

	marketCall := func(name string, dst **big.Int,
		fn func(context.Context, common.Address, uint64) (*big.Int, error)) {
		call(name, dst, func(ctx context.Context) (*big.Int, error) {
			return fn(ctx, addr, block)
		})
	}

	marketCall("exchangeRateStored", &state.exchangeRate, r.view.ExchangeRateStored)
	marketCall("borrowIndex", &state.borrowIndex, r.view.BorrowIndex)
	marketCall("totalReserves", &state.reserves, r.view.TotalReserves)
	marketCall("totalBorrows", &state.totalBorrows, r.view.TotalBorrows)
	marketCall("totalSupply", &state.totalSupply, r.view.TotalSupply)
	marketCall("getCash", &state.cash, r.view.GetCash)
	marketCall("borrowRatePerBlock", &state.borrowRate, r.view.BorrowRatePerBlock)
	marketCall("accrualBlockNumber", &state.accrualBlockNumber, r.view.AccrualBlockNumber)

	g.Go(func() error {
		v, err := r.view.SupplyRatePerBlock(gctx, addr, block)
		if errors.Is(err, ErrReverted) {
			r.log.Infow("supplyRatePerBlock reverted, using zero", "market", market.ID, "block", block)
			toleratedReadInc("supplyRatePerBlock")
			v, err = big.NewInt(0), nil
		}
		if err != nil {
			return &RefreshError{Market: market.ID, Block: block, Call: "supplyRatePerBlock", Err: err}
		}
		state.supplyRate = v
		return nil
	})

	call("getUnderlyingPrice(reference)", &state.usdPrice, func(ctx context.Context) (*big.Int, error) {
		return r.view.UnderlyingPrice(ctx, oracle, r.params.ReferenceMarket, block)
	})

	if addr != r.params.NativeMarket {
		call("getUnderlyingPrice", &state.price, func(ctx context.Context) (*big.Int, error) {
			return r.view.UnderlyingPrice(ctx, oracle, addr, block)
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return state, nil
}

// apply converts the raw state into the market's decimal fields.
func (r *MarketRegistry) apply(m Market, state *marketState, block, timestamp uint64) Market {
	ud := m.UnderlyingDecimals
	usdPriceInNative := mantissa.FromMantissa(state.usdPrice, mantissa.MantissaDecimals)

	switch m.Address() {
	case r.params.NativeMarket:
		m.UnderlyingPriceUSD = mantissa.Div(m.UnderlyingPrice, usdPriceInNative, ud)
	case r.params.ReferenceMarket:
		m.UnderlyingPrice = mantissa.Truncate(mantissa.FromMantissa(state.price, mantissa.MantissaDecimals), ud)
	default:
		m.UnderlyingPrice = mantissa.Truncate(mantissa.FromMantissa(state.price, mantissa.MantissaDecimals), ud)
		m.UnderlyingPriceUSD = mantissa.Div(m.UnderlyingPrice, usdPriceInNative, ud)
	}

	// raw / 10^ud * 10^8 / 10^18
	m.ExchangeRate = mantissa.Truncate(
		mantissa.DivScale(
			mantissa.FromMantissa(state.exchangeRate, ud).Mul(mantissa.PoolTokenScale),
			mantissa.MantissaDecimals),
		mantissa.MantissaDecimals)

	m.BorrowIndex = mantissa.Truncate(
		mantissa.FromMantissa(state.borrowIndex, mantissa.MantissaDecimals), mantissa.MantissaDecimals)
	m.Reserves = mantissa.Truncate(mantissa.FromMantissa(state.reserves, ud), ud)
	m.TotalBorrows = mantissa.Truncate(mantissa.FromMantissa(state.totalBorrows, ud), ud)
	m.Cash = mantissa.Truncate(mantissa.FromMantissa(state.cash, ud), ud)
	m.TotalSupply = mantissa.FromMantissa(state.totalSupply, mantissa.PoolTokenDecimals)
	m.BorrowRate = r.annualize(state.borrowRate)
	m.SupplyRate = r.annualize(state.supplyRate)

	if state.accrualBlockNumber.IsUint64() && state.accrualBlockNumber.Uint64() > m.AccrualBlockNumber {
		m.AccrualBlockNumber = state.accrualBlockNumber.Uint64()
	}
	m.RefreshBlockNumber = block
	m.BlockTimestamp = timestamp

	return m
}

// annualize converts a per-block rate mantissa into a yearly rate.
func (r *MarketRegistry) annualize(perBlock *big.Int) decimal.Decimal {
	yearly := mantissa.FromRaw(perBlock).Mul(decimal.NewFromInt(int64(r.params.BlocksPerYear)))
	return mantissa.Truncate(mantissa.DivScale(yearly, mantissa.MantissaDecimals), mantissa.MantissaDecimals)
}
