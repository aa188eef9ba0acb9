package lending

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Meta locates an event on chain.
type Meta struct {
	// Address is the contract that emitted the event.
	Address common.Address
	TxHash  common.Hash
	TxIndex uint
	// LogIndex is the position of the log within its transaction.
	LogIndex uint
	// BlockLogIndex is the position of the log within its block.
	BlockLogIndex  uint
	BlockNumber    uint64
	BlockTimestamp uint64
}

// Event is a decoded contract event ready to be projected.
type Event interface {
	EventMeta() Meta
}

// Pool token events.

// Mint is emitted by a pool token when underlying is supplied.
type Mint struct {
	Meta
	Minter     common.Address
	MintAmount *big.Int
	MintTokens *big.Int
}

// Redeem is emitted by a pool token when pool tokens are returned for underlying.
type Redeem struct {
	Meta
	Redeemer     common.Address
	RedeemAmount *big.Int
	RedeemTokens *big.Int
}

// Borrow is emitted by a pool token when underlying is borrowed.
type Borrow struct {
	Meta
	Borrower       common.Address
	BorrowAmount   *big.Int
	AccountBorrows *big.Int
	TotalBorrows   *big.Int
}

// RepayBorrow is emitted by a pool token when a borrow is repaid.
type RepayBorrow struct {
	Meta
	Payer          common.Address
	Borrower       common.Address
	RepayAmount    *big.Int
	AccountBorrows *big.Int
	TotalBorrows   *big.Int
}

// LiquidateBorrow is emitted by the pool token whose debt was repaid.
type LiquidateBorrow struct {
	Meta
	Liquidator          common.Address
	Borrower            common.Address
	RepayAmount         *big.Int
	PoolTokenCollateral common.Address
	SeizeTokens         *big.Int
}

// Transfer is a pool token transfer.
type Transfer struct {
	Meta
	From   common.Address
	To     common.Address
	Amount *big.Int
}

// AccrueInterest is emitted whenever a pool token accrues interest.
type AccrueInterest struct {
	Meta
	InterestAccumulated *big.Int
	BorrowIndex         *big.Int
	TotalBorrows        *big.Int
}

// NewReserveFactor changes the reserve factor of the emitting market.
type NewReserveFactor struct {
	Meta
	OldReserveFactorMantissa *big.Int
	NewReserveFactorMantissa *big.Int
}

// NewInterestRateModel changes the interest rate model of the emitting market.
type NewInterestRateModel struct {
	Meta
	OldInterestRateModel common.Address
	NewInterestRateModel common.Address
}

// Oracle events.

// PricePosted is emitted by the price oracle when an asset price changes.
type PricePosted struct {
	Meta
	Asset                  common.Address
	PreviousPriceMantissa  *big.Int
	RequestedPriceMantissa *big.Int
	NewPriceMantissa       *big.Int
}

// Comptroller events.

// MarketListed is emitted when a market is admitted to the protocol.
type MarketListed struct {
	Meta
	PoolToken common.Address
}

// MarketEntered is emitted when an account enters a market as collateral.
type MarketEntered struct {
	Meta
	PoolToken common.Address
	Account   common.Address
}

// MarketExited is emitted when an account leaves a market.
type MarketExited struct {
	Meta
	PoolToken common.Address
	Account   common.Address
}

// NewCloseFactor changes the protocol close factor.
type NewCloseFactor struct {
	Meta
	OldCloseFactorMantissa *big.Int
	NewCloseFactorMantissa *big.Int
}

// NewCollateralFactor changes the collateral factor of a market.
type NewCollateralFactor struct {
	Meta
	PoolToken                   common.Address
	OldCollateralFactorMantissa *big.Int
	NewCollateralFactorMantissa *big.Int
}

// NewLiquidationIncentive changes the protocol liquidation incentive.
type NewLiquidationIncentive struct {
	Meta
	OldLiquidationIncentiveMantissa *big.Int
	NewLiquidationIncentiveMantissa *big.Int
}

// NewMaxAssets changes the number of markets an account may enter.
type NewMaxAssets struct {
	Meta
	OldMaxAssets *big.Int
	NewMaxAssets *big.Int
}

// NewPriceOracle changes the protocol price oracle.
type NewPriceOracle struct {
	Meta
	OldPriceOracle common.Address
	NewPriceOracle common.Address
}

// NewIncentiveRate changes the protocol incentive emission rate.
type NewIncentiveRate struct {
	Meta
	OldRate *big.Int
	NewRate *big.Int
}

// IncentiveSpeedUpdated changes the incentive emission speed of a market.
type IncentiveSpeedUpdated struct {
	Meta
	PoolToken common.Address
	NewSpeed  *big.Int
}

// DistributedSupplierIncentive is an incentive payout to a supplier.
type DistributedSupplierIncentive struct {
	Meta
	PoolToken   common.Address
	Supplier    common.Address
	Delta       *big.Int
	SupplyIndex *big.Int
}

// DistributedBorrowerIncentive is an incentive payout to a borrower.
type DistributedBorrowerIncentive struct {
	Meta
	PoolToken   common.Address
	Borrower    common.Address
	Delta       *big.Int
	BorrowIndex *big.Int
}

// Underlying token events.

// Approval is an ERC20 approval emitted by an underlying token.
type Approval struct {
	Meta
	Owner   common.Address
	Spender common.Address
	Value   *big.Int
}

// EventMeta returns the on-chain location of the event.
func (m Meta) EventMeta() Meta { return m }
