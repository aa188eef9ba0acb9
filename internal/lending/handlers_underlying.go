package lending

import (
	"context"
	"fmt"

	"github.com/goran-ethernal/LendingIndexor/pkg/mantissa"
)

// handleApproval marks that the owner approved a market to pull its underlying.
// Approvals of any other spender are ignored.
func (e *Engine) handleApproval(ctx context.Context, repo Repository, ev *Approval) error {
	underlyingID := EntityID(ev.Address)
	underlying, err := repo.LoadUnderlyingToken(ctx, underlyingID)
	if err != nil {
		return fmt.Errorf("failed to load underlying token %s: %w", underlyingID, err)
	}
	if underlying.IsAbsent() {
		e.skip("Approval", reasonUnknownUnderlying, ev.Meta)
		return nil
	}

	found, err := e.markets.Load(ctx, repo, ev.Spender)
	if err != nil {
		return err
	}
	market, ok := found.Get()
	if !ok {
		e.skip("Approval", reasonUnknownMarket, ev.Meta)
		return nil
	}

	position, err := touchPosition(ctx, repo, market, EntityID(ev.Owner), ev.Meta)
	if err != nil {
		return err
	}
	position.IsUnderlyingApproved = true
	if err := repo.StorePosition(ctx, position); err != nil {
		return fmt.Errorf("failed to store position %s: %w", position.ID, err)
	}

	return repo.InsertRecord(ctx, &ApprovalRecord{
		ID:              RecordID(ev.Meta),
		Amount:          mantissa.FromRaw(ev.Value),
		Owner:           ev.Owner,
		Spender:         ev.Spender,
		BlockNumber:     ev.BlockNumber,
		BlockTime:       ev.BlockTimestamp,
		PoolTokenSymbol: market.Symbol,
	})
}
