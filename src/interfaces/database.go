package interfaces

import "brokerage-client/src/models"

// -----------------------------------------------------------------------------
// IDatabase defines the contract for storage operations.
// -----------------------------------------------------------------------------

type IDatabase interface {

	// -----------------------------------------------------------------------------

	// Initialize sets up the database schema and tables.
	Initialize() error

	// -----------------------------------------------------------------------------

	// SavePriceBars inserts one symbol's decoded bars.
	SavePriceBars(symbol string, bars []models.MPriceBar) error

	// -----------------------------------------------------------------------------

	// LoadPriceBars returns the stored bars for a symbol between the two
	// unix-second timestamps, ascending by timestamp.
	LoadPriceBars(symbol string, from, to int64) ([]models.MPriceBar, error)

	// -----------------------------------------------------------------------------

	// SaveSymbolMatches records symbol-lookup results.
	SaveSymbolMatches(matches []models.MSymbolMatch) error

	// -----------------------------------------------------------------------------

	// CleanupOldData removes bars older than the retention policy.
	CleanupOldData() error

	// -----------------------------------------------------------------------------

	// Close the database connection
	Close() error
}
