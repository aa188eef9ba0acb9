package lending

import (
	"context"
	"fmt"
)

// getOrCreatePosition returns the ledger entry of account in market. A new entry
// starts with every counter at zero and is not stored until the caller does so.
func getOrCreatePosition(ctx context.Context, repo Repository, market *Market, accountID string) (*Position, error) {
	id := PositionID(market.ID, accountID)

	found, err := repo.LoadPosition(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load position %s: %w", id, err)
	}

	if position, ok := found.Get(); ok {
		return position, nil
	}

	return &Position{
		ID:                id,
		Market:            market.ID,
		Account:           accountID,
		Symbol:            market.Symbol,
		TransactionHashes: []string{},
		TransactionTimes:  []uint64{},
	}, nil
}

// touch records that the transaction at meta modified the position.
// Handlers call it once per position before mutating any other field.
func (p *Position) touch(meta Meta) {
	p.TransactionHashes = append(p.TransactionHashes, meta.TxHash.Hex())
	p.TransactionTimes = append(p.TransactionTimes, meta.BlockTimestamp)
	p.AccrualBlockNumber = meta.BlockNumber
}

// touchPosition ensures the account and its position exist and touches the position.
func touchPosition(ctx context.Context, repo Repository, market *Market, accountID string, meta Meta) (*Position, error) {
	if _, err := getOrCreateAccount(ctx, repo, accountID); err != nil {
		return nil, err
	}

	position, err := getOrCreatePosition(ctx, repo, market, accountID)
	if err != nil {
		return nil, err
	}

	position.touch(meta)

	return position, nil
}
