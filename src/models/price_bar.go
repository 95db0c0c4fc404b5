package models

// MPriceBar is one OHLCV record decoded from the historical price stream.
// Prices and volume are float32 because that is exactly what travels on the
// wire; widening them would break byte-identical re-encoding.
type MPriceBar struct {
	Open      float32 `json:"open"`
	High      float32 `json:"high"`
	Low       float32 `json:"low"`
	Close     float32 `json:"close"`
	Volume    float32 `json:"volume"`
	Timestamp int64   `json:"timestamp"` // unix seconds, UTC
}

// -----------------------------------------------------------------------------

// MPriceHistoryResult is the decoded form of one historical price stream.
// Symbols preserves the wire order of the entries. For every symbol exactly
// one of Series and Errors has an entry: a symbol either decoded to bars
// (ascending by Timestamp) or was rejected by the service with a message.
type MPriceHistoryResult struct {
	Symbols []string               `json:"symbols"`
	Series  map[string][]MPriceBar `json:"series"`
	Errors  map[string]string      `json:"errors"`
}
