package moneymarket

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/LendingIndexor/internal/logger"
	"github.com/goran-ethernal/LendingIndexor/pkg/config"
	pkgrpc "github.com/goran-ethernal/LendingIndexor/pkg/rpc"
)

// MarketLister lists the markets a comptroller has listed at a block and
// resolves their underlying tokens.
type MarketLister interface {
	AllMarkets(ctx context.Context, comptroller common.Address, block uint64) ([]common.Address, error)
	Underlying(ctx context.Context, market common.Address, block uint64) (common.Address, error)
}

// discoverMarkets fills cfg.MoneyMarket.Markets with the markets the
// comptroller lists at the current head, and adds the underlying token of each
// non-native market to cfg.MoneyMarket.UnderlyingTokens. Markets listed
// afterwards are only picked up after a restart, since the log filter is fixed
// at registration.
func discoverMarkets(ctx context.Context, cfg *config.IndexerConfig, client pkgrpc.EthClient,
	lister MarketLister, log *logger.Logger) error {
	if cfg.MoneyMarket.Comptroller == "" {
		return errors.New("no markets configured and no comptroller to discover them from")
	}

	head, err := client.GetLatestBlockHeader(ctx)
	if err != nil {
		return fmt.Errorf("failed to get latest block header: %w", err)
	}

	comptroller := common.HexToAddress(cfg.MoneyMarket.Comptroller)
	markets, err := lister.AllMarkets(ctx, comptroller, head.Number.Uint64())
	if err != nil {
		return fmt.Errorf("failed to list markets of comptroller %s: %w", comptroller.Hex(), err)
	}

	// copy so the caller's config is left untouched
	mm := *cfg.MoneyMarket
	mm.Markets = make([]string, 0, len(markets))
	for _, m := range markets {
		mm.Markets = append(mm.Markets, m.Hex())
	}

	known := make(map[common.Address]struct{}, len(mm.UnderlyingTokens))
	for _, token := range mm.UnderlyingTokens {
		known[common.HexToAddress(token)] = struct{}{}
	}
	mm.UnderlyingTokens = slices.Clone(mm.UnderlyingTokens)

	native := common.HexToAddress(mm.NativeMarket)
	for _, m := range markets {
		if m == native {
			continue
		}

		token, err := lister.Underlying(ctx, m, head.Number.Uint64())
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			// approvals of this token are not tracked, the market itself still is
			log.Warnw("failed to read underlying token of market",
				"market", m.Hex(),
				"error", err,
			)
			continue
		}
		if _, ok := known[token]; ok {
			continue
		}
		known[token] = struct{}{}
		mm.UnderlyingTokens = append(mm.UnderlyingTokens, token.Hex())
	}
	cfg.MoneyMarket = &mm

	log.Infow("discovered markets from comptroller",
		"comptroller", comptroller.Hex(),
		"block", head.Number.Uint64(),
		"markets", len(markets),
		"underlying_tokens", len(mm.UnderlyingTokens),
	)

	return nil
}
