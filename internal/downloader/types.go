package downloader

import (
	"errors"

	"github.com/goran-ethernal/LendingIndexor/pkg/fetcher"
)

type (
	FetchMode   = fetcher.FetchMode
	FetchResult = fetcher.FetchResult
)

const (
	ModeBackfill = fetcher.ModeBackfill
	ModeLive     = fetcher.ModeLive
)

// ErrInconsistentBlock is returned when logs and headers of a fetched range
// belong to different versions of the same block.
var ErrInconsistentBlock = errors.New("inconsistent block data")
