package lending

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// ProtocolID is the fixed identity of the protocol parameters singleton.
const ProtocolID = "1"

// Market is one lending pool contract.
type Market struct {
	ID                       string          `meddler:"id"`
	Symbol                   string          `meddler:"symbol"`
	Name                     string          `meddler:"name"`
	UnderlyingAddress        common.Address  `meddler:"underlying_address,address"`
	UnderlyingDecimals       int32           `meddler:"underlying_decimals"`
	UnderlyingName           string          `meddler:"underlying_name"`
	UnderlyingSymbol         string          `meddler:"underlying_symbol"`
	ExchangeRate             decimal.Decimal `meddler:"exchange_rate,decimal"`
	BorrowIndex              decimal.Decimal `meddler:"borrow_index,decimal"`
	Cash                     decimal.Decimal `meddler:"cash,decimal"`
	Reserves                 decimal.Decimal `meddler:"reserves,decimal"`
	TotalBorrows             decimal.Decimal `meddler:"total_borrows,decimal"`
	TotalSupply              decimal.Decimal `meddler:"total_supply,decimal"`
	BorrowRate               decimal.Decimal `meddler:"borrow_rate,decimal"`
	SupplyRate               decimal.Decimal `meddler:"supply_rate,decimal"`
	CollateralFactor         decimal.Decimal `meddler:"collateral_factor,decimal"`
	ReserveFactor            decimal.Decimal `meddler:"reserve_factor,decimal"` // raw mantissa
	IncentiveSpeed           decimal.Decimal `meddler:"incentive_speed,decimal"`
	InterestRateModelAddress common.Address  `meddler:"interest_rate_model_address,address"`
	UnderlyingPrice          decimal.Decimal `meddler:"underlying_price,decimal"`
	UnderlyingPriceUSD       decimal.Decimal `meddler:"underlying_price_usd,decimal"`
	NumberOfSuppliers        int64           `meddler:"number_of_suppliers"`
	NumberOfBorrowers        int64           `meddler:"number_of_borrowers"`
	AccrualBlockNumber       uint64          `meddler:"accrual_block_number"`
	RefreshBlockNumber       uint64          `meddler:"refresh_block_number"`
	BlockTimestamp           uint64          `meddler:"block_timestamp"`
}

// Address returns the pool contract address of the market.
func (m *Market) Address() common.Address {
	return common.HexToAddress(m.ID)
}

// Account is one protocol participant.
type Account struct {
	ID              string `meddler:"id"`
	HasBorrowed     bool   `meddler:"has_borrowed"`
	CountLiquidated int64  `meddler:"count_liquidated"`
	CountLiquidator int64  `meddler:"count_liquidator"`
}

// Position is the running ledger of one account in one market.
type Position struct {
	ID                      string          `meddler:"id"`
	Market                  string          `meddler:"market"`
	Account                 string          `meddler:"account"`
	Symbol                  string          `meddler:"symbol"`
	PoolTokenBalance        decimal.Decimal `meddler:"pool_token_balance,decimal"`
	TotalUnderlyingSupplied decimal.Decimal `meddler:"total_underlying_supplied,decimal"`
	TotalUnderlyingRedeemed decimal.Decimal `meddler:"total_underlying_redeemed,decimal"`
	TotalUnderlyingBorrowed decimal.Decimal `meddler:"total_underlying_borrowed,decimal"`
	TotalUnderlyingRepaid   decimal.Decimal `meddler:"total_underlying_repaid,decimal"`
	StoredBorrowBalance     decimal.Decimal `meddler:"stored_borrow_balance,decimal"`
	AccountBorrowIndex      decimal.Decimal `meddler:"account_borrow_index,decimal"`
	EnteredMarket           bool            `meddler:"entered_market"`
	IsUnderlyingApproved    bool            `meddler:"is_underlying_approved"`
	TransactionHashes       []string        `meddler:"transaction_hashes,json"`
	TransactionTimes        []uint64        `meddler:"transaction_times,json"`
	AccrualBlockNumber      uint64          `meddler:"accrual_block_number"`
}

// Protocol holds the comptroller-wide parameters.
type Protocol struct {
	ID                   string          `meddler:"id"`
	CloseFactor          decimal.Decimal `meddler:"close_factor,decimal"`          // raw mantissa
	LiquidationIncentive decimal.Decimal `meddler:"liquidation_incentive,decimal"` // raw mantissa
	MaxAssets            decimal.Decimal `meddler:"max_assets,decimal"`            // raw
	PriceOracle          common.Address  `meddler:"price_oracle,address"`
	IncentiveRate        decimal.Decimal `meddler:"incentive_rate,decimal"`
}

// MarketToken binds a pool token symbol to the first market that claimed it.
type MarketToken struct {
	Symbol  string         `meddler:"symbol"`
	Address common.Address `meddler:"address,address"`
}

// UnderlyingToken maps an underlying asset back to its market.
type UnderlyingToken struct {
	ID            string         `meddler:"id"`
	MarketAddress common.Address `meddler:"market_address,address"`
	Symbol        string         `meddler:"symbol"`
}

// EntityID is the canonical string identity of an address.
func EntityID(addr common.Address) string {
	return strings.ToLower(addr.Hex())
}

// PositionID composes the identity of a position from its market and account.
func PositionID(marketID, accountID string) string {
	return marketID + "-" + accountID
}
