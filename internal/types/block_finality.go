package types

import (
	"context"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/core/types"
)

// BlockFinality selects the block tag the indexer treats as final. Logs are
// never read past it, since applied events cannot be undone.
type BlockFinality string

const (
	FinalityFinalized BlockFinality = "finalized"
	FinalitySafe      BlockFinality = "safe"
	// FinalityLatest follows the head minus a configured lag.
	FinalityLatest BlockFinality = "latest"
)

func (f BlockFinality) String() string {
	return string(f)
}

// IsValid checks if the BlockFinality value is valid.
func (f BlockFinality) IsValid() bool {
	switch f {
	case FinalityFinalized, FinalitySafe, FinalityLatest:
		return true
	default:
		return false
	}
}

// ParseBlockFinality parses s, ignoring case and surrounding spaces.
func ParseBlockFinality(s string) (BlockFinality, error) {
	f := BlockFinality(strings.ToLower(strings.TrimSpace(s)))
	if !f.IsValid() {
		return "", fmt.Errorf("invalid block finality: %s (must be one of: finalized, safe, latest)", s)
	}
	return f, nil
}

// HeadSource returns the headers behind each finality tag.
type HeadSource interface {
	GetFinalizedBlockHeader(ctx context.Context) (*types.Header, error)
	GetSafeBlockHeader(ctx context.Context) (*types.Header, error)
	GetLatestBlockHeader(ctx context.Context) (*types.Header, error)
}

// FinalBlock returns the highest block number that may be indexed. lag only
// applies to FinalityLatest; a head not above lag yields 0.
func (f BlockFinality) FinalBlock(ctx context.Context, src HeadSource, lag uint64) (uint64, error) {
	var (
		header *types.Header
		err    error
	)

	switch f {
	case FinalityFinalized:
		header, err = src.GetFinalizedBlockHeader(ctx)
	case FinalitySafe:
		header, err = src.GetSafeBlockHeader(ctx)
	case FinalityLatest:
		header, err = src.GetLatestBlockHeader(ctx)
	default:
		return 0, fmt.Errorf("invalid finality mode: %s", f)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get %s block header: %w", f, err)
	}

	head := header.Number.Uint64()
	if f != FinalityLatest {
		return head, nil
	}
	if head <= lag {
		return 0, nil
	}
	return head - lag, nil
}
