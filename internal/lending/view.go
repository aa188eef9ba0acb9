package lending

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// ContractView reads point-in-time contract state. Every read targets the given
// block. A call that reverted on chain returns an error wrapping ErrReverted; any
// other error means the read could not be performed at all.
type ContractView interface {
	// IsPoolToken checks whether market implements the pool token interface.
	IsPoolToken(ctx context.Context, market common.Address, block uint64) (bool, error)

	Symbol(ctx context.Context, token common.Address, block uint64) (string, error)
	Name(ctx context.Context, token common.Address, block uint64) (string, error)
	Decimals(ctx context.Context, token common.Address, block uint64) (uint8, error)

	Underlying(ctx context.Context, market common.Address, block uint64) (common.Address, error)
	ExchangeRateStored(ctx context.Context, market common.Address, block uint64) (*big.Int, error)
	BorrowIndex(ctx context.Context, market common.Address, block uint64) (*big.Int, error)
	TotalReserves(ctx context.Context, market common.Address, block uint64) (*big.Int, error)
	TotalBorrows(ctx context.Context, market common.Address, block uint64) (*big.Int, error)
	TotalSupply(ctx context.Context, market common.Address, block uint64) (*big.Int, error)
	GetCash(ctx context.Context, market common.Address, block uint64) (*big.Int, error)
	BorrowRatePerBlock(ctx context.Context, market common.Address, block uint64) (*big.Int, error)
	SupplyRatePerBlock(ctx context.Context, market common.Address, block uint64) (*big.Int, error)
	AccrualBlockNumber(ctx context.Context, market common.Address, block uint64) (*big.Int, error)
	InterestRateModel(ctx context.Context, market common.Address, block uint64) (common.Address, error)
	ReserveFactorMantissa(ctx context.Context, market common.Address, block uint64) (*big.Int, error)

	// UnderlyingPrice asks oracle for the price of the underlying of market.
	UnderlyingPrice(ctx context.Context, oracle, market common.Address, block uint64) (*big.Int, error)
}
