package models

// OptionTradingType is the level of option trading an account is approved for.
type OptionTradingType string

const (
	OptionTradingNone    OptionTradingType = "none"
	OptionTradingLong    OptionTradingType = "long"
	OptionTradingCovered OptionTradingType = "covered"
	OptionTradingSpread  OptionTradingType = "spread"
	OptionTradingFull    OptionTradingType = "full"
)

// -----------------------------------------------------------------------------

// MAccount is an immutable snapshot of one brokerage account, built once
// from the login response and never mutated afterwards.
type MAccount struct {
	AccountID      string                 `json:"account_id"`
	DisplayName    string                 `json:"display_name"`
	Description    string                 `json:"description"`
	IsAssociated   bool                   `json:"is_associated"`
	Company        string                 `json:"company"`
	Segment        string                 `json:"segment"`
	IsUnified      bool                   `json:"is_unified"`
	Preferences    MAccountPreferences    `json:"preferences"`
	Authorizations MAccountAuthorizations `json:"authorizations"`
}

// MAccountPreferences holds the per-account trading defaults.
type MAccountPreferences struct {
	ExpressTrading                  bool   `json:"express_trading"`
	OptionDirectRouting             bool   `json:"option_direct_routing"`
	StockDirectRouting              bool   `json:"stock_direct_routing"`
	DefaultStockAction              string `json:"default_stock_action"`
	DefaultStockOrderType           string `json:"default_stock_order_type"`
	DefaultStockQuantity            string `json:"default_stock_quantity"`
	DefaultStockExpiration          string `json:"default_stock_expiration"`
	DefaultStockSpecialInstructions string `json:"default_stock_special_instructions"`
	DefaultStockRouting             string `json:"default_stock_routing"`
	DefaultStockDisplaySize         string `json:"default_stock_display_size"`
	StockTaxLotMethod               string `json:"stock_tax_lot_method"`
	OptionTaxLotMethod              string `json:"option_tax_lot_method"`
	MutualFundTaxLotMethod          string `json:"mutual_fund_tax_lot_method"`
	DefaultAdvancedToolLaunch       string `json:"default_advanced_tool_launch"`
}

// MAccountAuthorizations holds the per-account entitlement flags.
type MAccountAuthorizations struct {
	Apex           bool              `json:"apex"`
	Level2         bool              `json:"level2"`
	StockTrading   bool              `json:"stock_trading"`
	MarginTrading  bool              `json:"margin_trading"`
	StreamingNews  bool              `json:"streaming_news"`
	OptionTrading  OptionTradingType `json:"option_trading"`
	Streamer       bool              `json:"streamer"`
	AdvancedMargin bool              `json:"advanced_margin"`
}
