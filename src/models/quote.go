package models

// AssetType is the one-character type tag the quote service attaches to
// every quote element.
type AssetType string

const (
	AssetTypeUnknown AssetType = ""
	AssetTypeStock   AssetType = "E"
	AssetTypeFund    AssetType = "F"
	AssetTypeOption  AssetType = "O"
	AssetTypeBond    AssetType = "B"
	AssetTypeIndex   AssetType = "I"
)

// -----------------------------------------------------------------------------

// MQuote is one decoded quote. Concrete variants: MStockQuote, MOptionQuote,
// MIndexQuote, MFundQuote and MErrorQuote. A batch decode never fails as a
// whole; records the service (or the decoder) rejected come back as
// MErrorQuote values in their original position.
type MQuote interface {
	QuoteSymbol() string
}

// -----------------------------------------------------------------------------

// MStockQuote is a quote for an equity or ETF (asset type "E").
type MStockQuote struct {
	Symbol        string  `json:"symbol"`
	Description   string  `json:"description"`
	Bid           float32 `json:"bid"`
	Ask           float32 `json:"ask"`
	BidAskSize    string  `json:"bid_ask_size"`
	Last          float32 `json:"last"`
	LastTradeSize int     `json:"last_trade_size"`
	LastTradeDate string  `json:"last_trade_date"`
	Open          float32 `json:"open"`
	High          float32 `json:"high"`
	Low           float32 `json:"low"`
	Close         float32 `json:"close"`
	Volume        int64   `json:"volume"`
	YearHigh      float32 `json:"year_high"`
	YearLow       float32 `json:"year_low"`
	RealTime      bool    `json:"real_time"`
	Exchange      string  `json:"exchange"`
	Change        float32 `json:"change"`
	ChangePercent string  `json:"change_percent"`
}

func (q MStockQuote) QuoteSymbol() string { return q.Symbol }

// -----------------------------------------------------------------------------

// MOptionQuote is a quote for an option contract (asset type "O").
type MOptionQuote struct {
	Symbol            string  `json:"symbol"`
	Description       string  `json:"description"`
	Bid               float32 `json:"bid"`
	Ask               float32 `json:"ask"`
	BidAskSize        string  `json:"bid_ask_size"`
	Last              float32 `json:"last"`
	LastTradeSize     int     `json:"last_trade_size"`
	LastTradeDate     string  `json:"last_trade_date"`
	Open              float32 `json:"open"`
	High              float32 `json:"high"`
	Low               float32 `json:"low"`
	Close             float32 `json:"close"`
	Volume            int64   `json:"volume"`
	StrikePrice       float32 `json:"strike_price"`
	OpenInterest      int     `json:"open_interest"`
	ExpirationMonth   int     `json:"expiration_month"`
	ExpirationDay     int     `json:"expiration_day"`
	ExpirationYear    int     `json:"expiration_year"`
	RealTime          bool    `json:"real_time"`
	Exchange          string  `json:"exchange"`
	UnderlyingSymbol  string  `json:"underlying_symbol"`
	Delta             float32 `json:"delta"`
	Gamma             float32 `json:"gamma"`
	Theta             float32 `json:"theta"`
	Vega              float32 `json:"vega"`
	Rho               float32 `json:"rho"`
	ImpliedVolatility float32 `json:"implied_volatility"`
	DaysToExpiration  int     `json:"days_to_expiration"`
	TimeValueIndex    float32 `json:"time_value_index"`
	Multiplier        float32 `json:"multiplier"`
}

func (q MOptionQuote) QuoteSymbol() string { return q.Symbol }

// -----------------------------------------------------------------------------

// MIndexQuote is a quote for a market index (asset type "I").
type MIndexQuote struct {
	Symbol      string  `json:"symbol"`
	Description string  `json:"description"`
	Open        float32 `json:"open"`
	High        float32 `json:"high"`
	Low         float32 `json:"low"`
	Last        float32 `json:"last"`
	Close       float32 `json:"close"`
	YearHigh    float32 `json:"year_high"`
	YearLow     float32 `json:"year_low"`
	RealTime    bool    `json:"real_time"`
}

func (q MIndexQuote) QuoteSymbol() string { return q.Symbol }

// -----------------------------------------------------------------------------

// MFundQuote is a quote for a mutual fund (asset type "F").
type MFundQuote struct {
	Symbol      string  `json:"symbol"`
	Description string  `json:"description"`
	Nav         float32 `json:"nav"`
	Change      float32 `json:"change"`
	RealTime    bool    `json:"real_time"`
}

func (q MFundQuote) QuoteSymbol() string { return q.Symbol }

// -----------------------------------------------------------------------------

// MErrorQuote stands in for a record the service rejected or that failed to
// decode. It carries the symbol (when known) and the error text.
type MErrorQuote struct {
	Symbol  string `json:"symbol"`
	Message string `json:"error"`
}

func (q MErrorQuote) QuoteSymbol() string { return q.Symbol }
