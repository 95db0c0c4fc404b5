package models

// MWatchlist is a named list of watched symbols kept server-side.
type MWatchlist struct {
	ID      string           `json:"id"`
	Name    string           `json:"name"`
	Symbols []MWatchedSymbol `json:"symbols"`
}

// MWatchedSymbol is one position-like entry inside a watchlist.
type MWatchedSymbol struct {
	Quantity     float64          `json:"quantity"`
	PositionType string           `json:"position_type"` // LONG or SHORT
	AveragePrice float64          `json:"average_price"`
	Commission   float64          `json:"commission"`
	OpenDate     string           `json:"open_date"`
	Security     MWatchedSecurity `json:"security"`
}

// MWatchedSecurity identifies the instrument a watchlist entry refers to.
type MWatchedSecurity struct {
	Symbol               string    `json:"symbol"`
	SymbolWithTypePrefix string    `json:"symbol_with_type_prefix"`
	Description          string    `json:"description"`
	AssetType            AssetType `json:"asset_type"`
}

// -----------------------------------------------------------------------------

// MSymbolMatch is one symbol-lookup hit.
type MSymbolMatch struct {
	Symbol      string `json:"symbol"`
	Description string `json:"description"`
}
