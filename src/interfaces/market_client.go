package interfaces

import (
	"context"
	"time"

	"brokerage-client/src/models"
)

// -----------------------------------------------------------------------------
// IMarketClient is the read side of the protocol client that the HTTP facade
// and the polling loop consume.
// -----------------------------------------------------------------------------

type IMarketClient interface {

	// -----------------------------------------------------------------------------

	// GetQuotes fetches one quote per symbol, preserving order.
	GetQuotes(ctx context.Context, symbols []string) ([]models.MQuote, error)

	// -----------------------------------------------------------------------------

	// GetHistoricalPrices fetches daily bars for the symbols between the two
	// dates, ascending by timestamp per symbol.
	GetHistoricalPrices(ctx context.Context, symbols []string, start, end time.Time) (*models.MPriceHistoryResult, error)

	// -----------------------------------------------------------------------------

	// FindSymbols performs a free-text symbol lookup.
	FindSymbols(ctx context.Context, search string) ([]models.MSymbolMatch, error)
}
