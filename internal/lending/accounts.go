package lending

import (
	"context"
	"fmt"
)

// getOrCreateAccount returns the account with the given id, creating and storing
// it with zeroed counters if it does not exist yet.
func getOrCreateAccount(ctx context.Context, repo Repository, id string) (*Account, error) {
	found, err := repo.LoadAccount(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load account %s: %w", id, err)
	}

	if account, ok := found.Get(); ok {
		return account, nil
	}

	account := &Account{ID: id}
	if err := repo.StoreAccount(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create account %s: %w", id, err)
	}

	return account, nil
}
