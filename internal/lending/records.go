package lending

import (
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// RecordKind names a kind of historical record.
type RecordKind string

const (
	RecordMint              RecordKind = "mint"
	RecordRedeem            RecordKind = "redeem"
	RecordBorrow            RecordKind = "borrow"
	RecordRepay             RecordKind = "repay"
	RecordLiquidation       RecordKind = "liquidation"
	RecordTransfer          RecordKind = "transfer"
	RecordApproval          RecordKind = "approval"
	RecordSupplierIncentive RecordKind = "supplier_incentive"
	RecordBorrowerIncentive RecordKind = "borrower_incentive"
)

// Record is an immutable historical event record.
type Record interface {
	RecordID() string
	Kind() RecordKind
}

// RecordID derives the identity of the record produced by the event at meta.
func RecordID(meta Meta) string {
	return meta.TxHash.Hex() + "-" + strconv.FormatUint(uint64(meta.LogIndex), 10)
}

// MintRecord is a supply of underlying in exchange for pool tokens.
type MintRecord struct {
	ID               string          `meddler:"id"`
	Amount           decimal.Decimal `meddler:"amount,decimal"`
	To               common.Address  `meddler:"to_address,address"`
	From             common.Address  `meddler:"from_address,address"`
	BlockNumber      uint64          `meddler:"block_number"`
	BlockTime        uint64          `meddler:"block_time"`
	PoolTokenSymbol  string          `meddler:"pool_token_symbol"`
	UnderlyingAmount decimal.Decimal `meddler:"underlying_amount,decimal"`
}

func (r *MintRecord) RecordID() string { return r.ID }
func (r *MintRecord) Kind() RecordKind { return RecordMint }

// RedeemRecord is a return of pool tokens for underlying.
type RedeemRecord struct {
	ID               string          `meddler:"id"`
	Amount           decimal.Decimal `meddler:"amount,decimal"`
	To               common.Address  `meddler:"to_address,address"`
	From             common.Address  `meddler:"from_address,address"`
	BlockNumber      uint64          `meddler:"block_number"`
	BlockTime        uint64          `meddler:"block_time"`
	PoolTokenSymbol  string          `meddler:"pool_token_symbol"`
	UnderlyingAmount decimal.Decimal `meddler:"underlying_amount,decimal"`
}

func (r *RedeemRecord) RecordID() string { return r.ID }
func (r *RedeemRecord) Kind() RecordKind { return RecordRedeem }

// BorrowRecord is a borrow of underlying.
type BorrowRecord struct {
	ID               string          `meddler:"id"`
	Amount           decimal.Decimal `meddler:"amount,decimal"`
	AccountBorrows   decimal.Decimal `meddler:"account_borrows,decimal"`
	Borrower         common.Address  `meddler:"borrower,address"`
	BlockNumber      uint64          `meddler:"block_number"`
	BlockTime        uint64          `meddler:"block_time"`
	UnderlyingSymbol string          `meddler:"underlying_symbol"`
}

func (r *BorrowRecord) RecordID() string { return r.ID }
func (r *BorrowRecord) Kind() RecordKind { return RecordBorrow }

// RepayRecord is a repayment, possibly by a third party.
type RepayRecord struct {
	ID               string          `meddler:"id"`
	Amount           decimal.Decimal `meddler:"amount,decimal"`
	AccountBorrows   decimal.Decimal `meddler:"account_borrows,decimal"`
	Borrower         common.Address  `meddler:"borrower,address"`
	Payer            common.Address  `meddler:"payer,address"`
	BlockNumber      uint64          `meddler:"block_number"`
	BlockTime        uint64          `meddler:"block_time"`
	UnderlyingSymbol string          `meddler:"underlying_symbol"`
}

func (r *RepayRecord) RecordID() string { return r.ID }
func (r *RepayRecord) Kind() RecordKind { return RecordRepay }

// LiquidationRecord is a liquidation of an underwater borrower.
type LiquidationRecord struct {
	ID                    string          `meddler:"id"`
	Amount                decimal.Decimal `meddler:"amount,decimal"` // seized pool tokens
	To                    common.Address  `meddler:"to_address,address"`
	From                  common.Address  `meddler:"from_address,address"`
	BlockNumber           uint64          `meddler:"block_number"`
	BlockTime             uint64          `meddler:"block_time"`
	PoolTokenSymbol       string          `meddler:"pool_token_symbol"`
	UnderlyingSymbol      string          `meddler:"underlying_symbol"`
	UnderlyingRepayAmount decimal.Decimal `meddler:"underlying_repay_amount,decimal"`
}

func (r *LiquidationRecord) RecordID() string { return r.ID }
func (r *LiquidationRecord) Kind() RecordKind { return RecordLiquidation }

// TransferRecord is a pool token transfer.
type TransferRecord struct {
	ID              string          `meddler:"id"`
	Amount          decimal.Decimal `meddler:"amount,decimal"`
	To              common.Address  `meddler:"to_address,address"`
	From            common.Address  `meddler:"from_address,address"`
	BlockNumber     uint64          `meddler:"block_number"`
	BlockTime       uint64          `meddler:"block_time"`
	PoolTokenSymbol string          `meddler:"pool_token_symbol"`
}

func (r *TransferRecord) RecordID() string { return r.ID }
func (r *TransferRecord) Kind() RecordKind { return RecordTransfer }

// ApprovalRecord is an underlying token approval granted to a market.
type ApprovalRecord struct {
	ID              string          `meddler:"id"`
	Amount          decimal.Decimal `meddler:"amount,decimal"` // raw, unscaled
	Owner           common.Address  `meddler:"owner,address"`
	Spender         common.Address  `meddler:"spender,address"`
	BlockNumber     uint64          `meddler:"block_number"`
	BlockTime       uint64          `meddler:"block_time"`
	PoolTokenSymbol string          `meddler:"pool_token_symbol"`
}

func (r *ApprovalRecord) RecordID() string { return r.ID }
func (r *ApprovalRecord) Kind() RecordKind { return RecordApproval }

// SupplierIncentiveRecord is an incentive distribution to a supplier.
type SupplierIncentiveRecord struct {
	ID              string          `meddler:"id"`
	Supplier        common.Address  `meddler:"supplier,address"`
	IncentiveAmount decimal.Decimal `meddler:"incentive_amount,decimal"`
	SupplyIndex     decimal.Decimal `meddler:"supply_index,decimal"`
	BlockNumber     uint64          `meddler:"block_number"`
	BlockTime       uint64          `meddler:"block_time"`
	PoolTokenSymbol string          `meddler:"pool_token_symbol"`
}

func (r *SupplierIncentiveRecord) RecordID() string { return r.ID }
func (r *SupplierIncentiveRecord) Kind() RecordKind { return RecordSupplierIncentive }

// BorrowerIncentiveRecord is an incentive distribution to a borrower.
type BorrowerIncentiveRecord struct {
	ID              string          `meddler:"id"`
	Borrower        common.Address  `meddler:"borrower,address"`
	IncentiveAmount decimal.Decimal `meddler:"incentive_amount,decimal"`
	BorrowIndex     decimal.Decimal `meddler:"borrow_index,decimal"`
	BlockNumber     uint64          `meddler:"block_number"`
	BlockTime       uint64          `meddler:"block_time"`
	PoolTokenSymbol string          `meddler:"pool_token_symbol"`
}

func (r *BorrowerIncentiveRecord) RecordID() string { return r.ID }
func (r *BorrowerIncentiveRecord) Kind() RecordKind { return RecordBorrowerIncentive }
