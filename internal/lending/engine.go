package lending

import (
	"context"
	"fmt"

	internalcommon "github.com/goran-ethernal/LendingIndexor/internal/common"
	"github.com/goran-ethernal/LendingIndexor/internal/logger"
)

// Cursor is the on-chain position of the last applied event.
type Cursor struct {
	BlockNumber   uint64
	TxIndex       uint
	BlockLogIndex uint
	valid         bool
}

// IsZero reports whether no event has been applied since the cursor was reset.
func (c Cursor) IsZero() bool {
	return !c.valid
}

func (c Cursor) before(meta Meta) bool {
	if !c.valid {
		return true
	}
	if c.BlockNumber != meta.BlockNumber {
		return c.BlockNumber < meta.BlockNumber
	}
	if c.TxIndex != meta.TxIndex {
		return c.TxIndex < meta.TxIndex
	}
	return c.BlockLogIndex < meta.BlockLogIndex
}

// Engine projects decoded events into lending entities.
//
// Events must be applied one at a time in chain order: block number, then
// transaction index, then log index. Handlers read the counters and balances
// written by earlier events, so Apply rejects any event that does not strictly
// follow the previous one with ErrOutOfOrder. The engine does not deduplicate:
// delivering the same event twice double counts its balance effects.
//
// Mint, Redeem and LiquidateBorrow only produce records. Their balance effects
// come from the pool token Transfer emitted in the same transaction.
type Engine struct {
	markets *MarketRegistry
	params  Params
	log     *logger.Logger
	cursor  Cursor
	auditor *TransferAuditor
}

// NewEngine creates an engine reading contract state through view.
func NewEngine(view ContractView, params Params, log *logger.Logger) (*Engine, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid lending params: %w", err)
	}

	e := &Engine{
		markets: NewMarketRegistry(view, params, log),
		params:  params,
		log:     log.WithComponent(internalcommon.ComponentLendingEngine),
	}

	if params.AuditTransfers {
		e.auditor = NewTransferAuditor()
	}

	return e, nil
}

// Markets returns the market registry used by the engine.
func (e *Engine) Markets() *MarketRegistry {
	return e.markets
}

// Cursor returns the position of the last applied event.
func (e *Engine) Cursor() Cursor {
	return e.cursor
}

// Rewind moves the cursor back to c, typically after the batch that advanced it
// was rolled back. Pending audit state is discarded.
func (e *Engine) Rewind(c Cursor) {
	e.cursor = c
	if e.auditor != nil {
		e.auditor.Flush()
	}
}

// Apply projects a single event through repo.
func (e *Engine) Apply(ctx context.Context, repo Repository, ev Event) error {
	meta := ev.EventMeta()
	if !e.cursor.before(meta) {
		return fmt.Errorf("%w: block %d tx %d log %d is not after block %d tx %d log %d", ErrOutOfOrder,
			meta.BlockNumber, meta.TxIndex, meta.BlockLogIndex,
			e.cursor.BlockNumber, e.cursor.TxIndex, e.cursor.BlockLogIndex)
	}
	e.cursor = Cursor{
		BlockNumber:   meta.BlockNumber,
		TxIndex:       meta.TxIndex,
		BlockLogIndex: meta.BlockLogIndex,
		valid:         true,
	}

	if e.auditor != nil {
		e.report(e.auditor.Observe(ev))
	}

	name, err := e.dispatch(ctx, repo, ev)
	if err != nil {
		return fmt.Errorf("failed to apply %s at block %d tx %s: %w", name, meta.BlockNumber, meta.TxHash.Hex(), err)
	}

	eventAppliedInc(name)

	return nil
}

// Flush completes the audit of the last transaction. Call it at the end of a batch.
func (e *Engine) Flush() {
	if e.auditor != nil {
		e.report(e.auditor.Flush())
	}
}

func (e *Engine) dispatch(ctx context.Context, repo Repository, ev Event) (string, error) {
	switch ev := ev.(type) {
	case *Mint:
		return "Mint", e.handleMint(ctx, repo, ev)
	case *Redeem:
		return "Redeem", e.handleRedeem(ctx, repo, ev)
	case *Borrow:
		return "Borrow", e.handleBorrow(ctx, repo, ev)
	case *RepayBorrow:
		return "RepayBorrow", e.handleRepayBorrow(ctx, repo, ev)
	case *LiquidateBorrow:
		return "LiquidateBorrow", e.handleLiquidateBorrow(ctx, repo, ev)
	case *Transfer:
		return "Transfer", e.handleTransfer(ctx, repo, ev)
	case *AccrueInterest:
		return "AccrueInterest", e.handleAccrueInterest(ctx, repo, ev)
	case *NewReserveFactor:
		return "NewReserveFactor", e.handleNewReserveFactor(ctx, repo, ev)
	case *NewInterestRateModel:
		return "NewInterestRateModel", e.handleNewInterestRateModel(ctx, repo, ev)
	case *PricePosted:
		return "PricePosted", e.handlePricePosted(ctx, repo, ev)
	case *MarketListed:
		return "MarketListed", e.handleMarketListed(ctx, repo, ev)
	case *MarketEntered:
		return "MarketEntered", e.handleMarketEntered(ctx, repo, ev)
	case *MarketExited:
		return "MarketExited", e.handleMarketExited(ctx, repo, ev)
	case *NewCloseFactor:
		return "NewCloseFactor", e.handleNewCloseFactor(ctx, repo, ev)
	case *NewCollateralFactor:
		return "NewCollateralFactor", e.handleNewCollateralFactor(ctx, repo, ev)
	case *NewLiquidationIncentive:
		return "NewLiquidationIncentive", e.handleNewLiquidationIncentive(ctx, repo, ev)
	case *NewMaxAssets:
		return "NewMaxAssets", e.handleNewMaxAssets(ctx, repo, ev)
	case *NewPriceOracle:
		return "NewPriceOracle", e.handleNewPriceOracle(ctx, repo, ev)
	case *NewIncentiveRate:
		return "NewIncentiveRate", e.handleNewIncentiveRate(ctx, repo, ev)
	case *IncentiveSpeedUpdated:
		return "IncentiveSpeedUpdated", e.handleIncentiveSpeedUpdated(ctx, repo, ev)
	case *DistributedSupplierIncentive:
		return "DistributedSupplierIncentive", e.handleDistributedSupplierIncentive(ctx, repo, ev)
	case *DistributedBorrowerIncentive:
		return "DistributedBorrowerIncentive", e.handleDistributedBorrowerIncentive(ctx, repo, ev)
	case *Approval:
		return "Approval", e.handleApproval(ctx, repo, ev)
	default:
		return fmt.Sprintf("%T", ev), fmt.Errorf("unsupported event type %T", ev)
	}
}

// skip records that an event was ignored because something it references is unknown.
func (e *Engine) skip(event, reason string, meta Meta) {
	e.log.Debugw("event skipped",
		"event", event,
		"reason", reason,
		"address", EntityID(meta.Address),
		"block", meta.BlockNumber,
		"tx", meta.TxHash.Hex())
	eventSkippedInc(event, reason)
}

func (e *Engine) report(findings []AuditFinding) {
	for _, f := range findings {
		e.log.Warnw("event without accompanying pool token transfer",
			"event", f.Event,
			"market", EntityID(f.Market),
			"tx", f.TxHash.Hex(),
			"log_index", f.LogIndex)
		auditWarningInc(f.Event)
	}
}
