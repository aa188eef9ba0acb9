package lending

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

const (
	// DefaultBlocksPerYear is the block count used to annualize per-block rates.
	DefaultBlocksPerYear uint64 = 2102400

	nativeUnderlyingName     = "Ether"
	nativeUnderlyingSymbol   = "ETH"
	nativeUnderlyingDecimals = 18
)

var (
	// DefaultNativeMarket is the pool token whose underlying is the chain's native asset.
	DefaultNativeMarket = common.HexToAddress("0x1d8eb5a97ce0b8812d7e17893018467a47e2f7d9")
	// DefaultReferenceMarket is the USD stablecoin market used to derive USD prices.
	DefaultReferenceMarket = common.HexToAddress("0x565b245fc6c9f9783f148e56e93d998968f89c7e")
)

// Params are the deployment specific constants of the projection.
type Params struct {
	NativeMarket    common.Address
	ReferenceMarket common.Address
	BlocksPerYear   uint64
	// FallbackOracle is used when no NewPriceOracle event has been seen yet.
	FallbackOracle common.Address
	// AuditTransfers enables the transfer auditor.
	AuditTransfers bool
}

// DefaultParams returns the parameters of the reference deployment.
func DefaultParams() Params {
	return Params{
		NativeMarket:    DefaultNativeMarket,
		ReferenceMarket: DefaultReferenceMarket,
		BlocksPerYear:   DefaultBlocksPerYear,
	}
}

// Validate checks that the parameters are usable.
func (p Params) Validate() error {
	if p.BlocksPerYear == 0 {
		return fmt.Errorf("blocks per year must be greater than 0")
	}
	if p.ReferenceMarket == (common.Address{}) {
		return fmt.Errorf("reference market address is required")
	}
	if p.NativeMarket == p.ReferenceMarket {
		return fmt.Errorf("native market and reference market must differ")
	}
	return nil
}
