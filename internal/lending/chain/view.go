// Package chain implements lending.ContractView with eth_call against an RPC node.
package chain

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	internalcommon "github.com/goran-ethernal/LendingIndexor/internal/common"
	"github.com/goran-ethernal/LendingIndexor/internal/lending"
	"github.com/goran-ethernal/LendingIndexor/internal/lending/contracts"
	"github.com/goran-ethernal/LendingIndexor/internal/logger"
	"github.com/goran-ethernal/LendingIndexor/internal/rpc"
)

// Caller executes read only contract calls at a block.
type Caller interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNum uint64) ([]byte, error)
}

var errEmptyResult = errors.New("empty return data")

// View reads money market contract state at a given block.
//
// A call is reported as reverted (lending.ErrReverted) when the node says it
// reverted, when it returns no data, as calls to accounts without code do, or
// when the returned data does not decode as the expected type. Everything else
// is a failure to perform the read.
type View struct {
	client Caller
	log    *logger.Logger

	poolToken    abi.ABI
	comptroller  abi.ABI
	oracle       abi.ABI
	erc20        abi.ABI
	erc20Bytes32 abi.ABI
	marker       string
}

var _ lending.ContractView = (*View)(nil)

// NewView creates a view. marker is the name of the pool token marker method;
// an empty value selects contracts.DefaultPoolTokenMarker.
func NewView(client Caller, abis *contracts.Set, marker string, log *logger.Logger) (*View, error) {
	if marker == "" {
		marker = contracts.DefaultPoolTokenMarker
	}

	poolToken, err := contracts.WithMarker(abis.PoolToken, marker)
	if err != nil {
		return nil, fmt.Errorf("failed to register marker %s: %w", marker, err)
	}

	return &View{
		client:       client,
		log:          log.WithComponent(internalcommon.ComponentContractView),
		poolToken:    poolToken,
		comptroller:  abis.Comptroller,
		oracle:       abis.PriceOracle,
		erc20:        abis.ERC20,
		erc20Bytes32: abis.ERC20Bytes32,
		marker:       marker,
	}, nil
}

func (v *View) IsPoolToken(ctx context.Context, market common.Address, block uint64) (bool, error) {
	return callOne[bool](ctx, v, &v.poolToken, market, block, v.marker)
}

// Symbol reads the token symbol, falling back to the bytes32 encoding some
// older tokens use.
func (v *View) Symbol(ctx context.Context, token common.Address, block uint64) (string, error) {
	return v.text(ctx, token, block, "symbol")
}

func (v *View) Name(ctx context.Context, token common.Address, block uint64) (string, error) {
	return v.text(ctx, token, block, "name")
}

func (v *View) Decimals(ctx context.Context, token common.Address, block uint64) (uint8, error) {
	return callOne[uint8](ctx, v, &v.erc20, token, block, "decimals")
}

func (v *View) Underlying(ctx context.Context, market common.Address, block uint64) (common.Address, error) {
	return callOne[common.Address](ctx, v, &v.poolToken, market, block, "underlying")
}

func (v *View) ExchangeRateStored(ctx context.Context, market common.Address, block uint64) (*big.Int, error) {
	return callOne[*big.Int](ctx, v, &v.poolToken, market, block, "exchangeRateStored")
}

func (v *View) BorrowIndex(ctx context.Context, market common.Address, block uint64) (*big.Int, error) {
	return callOne[*big.Int](ctx, v, &v.poolToken, market, block, "borrowIndex")
}

func (v *View) TotalReserves(ctx context.Context, market common.Address, block uint64) (*big.Int, error) {
	return callOne[*big.Int](ctx, v, &v.poolToken, market, block, "totalReserves")
}

func (v *View) TotalBorrows(ctx context.Context, market common.Address, block uint64) (*big.Int, error) {
	return callOne[*big.Int](ctx, v, &v.poolToken, market, block, "totalBorrows")
}

func (v *View) TotalSupply(ctx context.Context, market common.Address, block uint64) (*big.Int, error) {
	return callOne[*big.Int](ctx, v, &v.poolToken, market, block, "totalSupply")
}

func (v *View) GetCash(ctx context.Context, market common.Address, block uint64) (*big.Int, error) {
	return callOne[*big.Int](ctx, v, &v.poolToken, market, block, "getCash")
}

func (v *View) BorrowRatePerBlock(ctx context.Context, market common.Address, block uint64) (*big.Int, error) {
	return callOne[*big.Int](ctx, v, &v.poolToken, market, block, "borrowRatePerBlock")
}

func (v *View) SupplyRatePerBlock(ctx context.Context, market common.Address, block uint64) (*big.Int, error) {
	return callOne[*big.Int](ctx, v, &v.poolToken, market, block, "supplyRatePerBlock")
}

func (v *View) AccrualBlockNumber(ctx context.Context, market common.Address, block uint64) (*big.Int, error) {
	return callOne[*big.Int](ctx, v, &v.poolToken, market, block, "accrualBlockNumber")
}

func (v *View) InterestRateModel(ctx context.Context, market common.Address, block uint64) (common.Address, error) {
	return callOne[common.Address](ctx, v, &v.poolToken, market, block, "interestRateModel")
}

func (v *View) ReserveFactorMantissa(ctx context.Context, market common.Address, block uint64) (*big.Int, error) {
	return callOne[*big.Int](ctx, v, &v.poolToken, market, block, "reserveFactorMantissa")
}

func (v *View) UnderlyingPrice(
	ctx context.Context, oracle, market common.Address, block uint64,
) (*big.Int, error) {
	return callOne[*big.Int](ctx, v, &v.oracle, oracle, block, "getUnderlyingPrice", market)
}

// AllMarkets lists the pool tokens registered with comptroller at block.
func (v *View) AllMarkets(ctx context.Context, comptroller common.Address, block uint64) ([]common.Address, error) {
	return callOne[[]common.Address](ctx, v, &v.comptroller, comptroller, block, "getAllMarkets")
}

func (v *View) text(ctx context.Context, token common.Address, block uint64, method string) (string, error) {
	s, err := callOne[string](ctx, v, &v.erc20, token, block, method)
	if err == nil || !errors.Is(err, lending.ErrReverted) {
		return s, err
	}

	raw, fallbackErr := callOne[[32]byte](ctx, v, &v.erc20Bytes32, token, block, method)
	if fallbackErr != nil {
		// report the string read, it is the one most tokens implement
		return "", err
	}

	v.log.Debugf("%s of %s read as bytes32", method, token.Hex())
	return strings.TrimRight(string(raw[:]), "\x00"), nil
}

// callOne calls method on to at block and decodes its single return value.
func callOne[T any](
	ctx context.Context, v *View, parsed *abi.ABI, to common.Address, block uint64, method string, args ...any,
) (T, error) {
	var zero T

	input, err := parsed.Pack(method, args...)
	if err != nil {
		return zero, fmt.Errorf("failed to pack %s: %w", method, err)
	}

	output, err := v.client.CallContract(ctx, ethereum.CallMsg{To: &to, Data: input}, block)
	if err != nil {
		if rpc.IsRevertError(err) {
			return zero, fmt.Errorf("%s on %s at block %d: %w: %w", method, to.Hex(), block, lending.ErrReverted, err)
		}
		return zero, fmt.Errorf("failed to call %s on %s at block %d: %w", method, to.Hex(), block, err)
	}

	if len(output) == 0 {
		return zero, fmt.Errorf("%s on %s at block %d: %w: %w",
			method, to.Hex(), block, lending.ErrReverted, errEmptyResult)
	}

	values, err := parsed.Unpack(method, output)
	if err != nil {
		return zero, fmt.Errorf("%s on %s at block %d: %w: %w", method, to.Hex(), block, lending.ErrReverted, err)
	}
	if len(values) != 1 {
		return zero, fmt.Errorf("%s on %s at block %d: %w: expected 1 return value, got %d",
			method, to.Hex(), block, lending.ErrReverted, len(values))
	}

	value, ok := values[0].(T)
	if !ok {
		return zero, fmt.Errorf("%s on %s at block %d: %w: unexpected return type %T",
			method, to.Hex(), block, lending.ErrReverted, values[0])
	}

	return value, nil
}
