package wire

import (
	"encoding/xml"
	"time"

	"brokerage-client/src/helpers"
	"brokerage-client/src/models"
)

// -----------------------------------------------------------------------------
// Login Response
// -----------------------------------------------------------------------------

type namedFlag struct {
	XMLName xml.Name
	Value   string `xml:",chardata"`
}

type accountAuthorizationsNode struct {
	Apex           string `xml:"apex"`
	Level2         string `xml:"level2"`
	StockTrading   string `xml:"stock-trading"`
	MarginTrading  string `xml:"margin-trading"`
	StreamingNews  string `xml:"streaming-news"`
	OptionTrading  string `xml:"option-trading"`
	Streamer       string `xml:"streamer"`
	AdvancedMargin string `xml:"advanced-margin"`
}

type accountPreferencesNode struct {
	ExpressTrading                  string `xml:"express-trading"`
	OptionDirectRouting             string `xml:"option-direct-routing"`
	StockDirectRouting              string `xml:"stock-direct-routing"`
	DefaultStockAction              string `xml:"default-stock-action"`
	DefaultStockOrderType           string `xml:"default-stock-order-type"`
	DefaultStockQuantity            string `xml:"default-stock-quantity"`
	DefaultStockExpiration          string `xml:"default-stock-expiration"`
	DefaultStockSpecialInstructions string `xml:"default-stock-special-instructions"`
	DefaultStockRouting             string `xml:"default-stock-routing"`
	DefaultStockDisplaySize         string `xml:"default-stock-display-size"`
	StockTaxLotMethod               string `xml:"stock-tax-lot-method"`
	OptionTaxLotMethod              string `xml:"option-tax-lot-method"`
	MutualFundTaxLotMethod          string `xml:"mutual-fund-tax-lot-method"`
	DefaultAdvancedToolLaunch       string `xml:"default-advanced-tool-launch"`
}

type accountNode struct {
	AccountID         string                    `xml:"account-id"`
	DisplayName       string                    `xml:"display-name"`
	Description       string                    `xml:"description"`
	AssociatedAccount string                    `xml:"associated-account"`
	Company           string                    `xml:"company"`
	Segment           string                    `xml:"segment"`
	Unified           string                    `xml:"unified"`
	Preferences       accountPreferencesNode    `xml:"preferences"`
	Authorizations    accountAuthorizationsNode `xml:"authorizations"`
}

type loginNode struct {
	UserID              string            `xml:"user-id"`
	SessionID           string            `xml:"session-id"`
	Timeout             string            `xml:"timeout"`
	AssociatedAccountID string            `xml:"associated-account-id"`
	NYSEQuotes          string            `xml:"nyse-quotes"`
	NASDAQQuotes        string            `xml:"nasdaq-quotes"`
	OPRAQuotes          string            `xml:"opra-quotes"`
	AMEXQuotes          string            `xml:"amex-quotes"`
	CMEQuotes           string            `xml:"cme-quotes"`
	ICEQuotes           string            `xml:"ice-quotes"`
	ForexQuotes         string            `xml:"forex-quotes"`
	ExchangeStatus      string            `xml:"exchange-status"`
	Authorizations      rawAuthorizations `xml:"authorizations"`
	Accounts            struct {
		Accounts []accountNode `xml:"account"`
	} `xml:"accounts"`
}

// rawAuthorizations collects the authorization children without knowing
// their names up front; the service adds entitlements over time.
type rawAuthorizations struct {
	Flags []namedFlag `xml:",any"`
}

type loginResponse struct {
	Result string    `xml:"result"`
	Error  string    `xml:"error"`
	Login  loginNode `xml:"xml-log-in"`
}

// -----------------------------------------------------------------------------

// DecodeLoginResponse parses a login response body. A non-OK result becomes
// an AuthenticationFailedError; nothing is returned unless the whole body
// parsed cleanly.
func DecodeLoginResponse(data []byte, now time.Time) (*models.MLoginResult, error) {
	var resp loginResponse
	if err := xml.Unmarshal(data, &resp); err != nil {
		return nil, helpers.NewEnvelopeError("", "unparseable response: "+err.Error())
	}
	if resp.Result != ResultOK {
		return nil, helpers.NewAuthenticationFailedError(resp.Error)
	}

	node := resp.Login
	var f fieldSet
	timeoutMinutes := f.int("timeout", node.Timeout)
	if f.err != nil {
		return nil, f.err
	}

	result := &models.MLoginResult{
		Session: models.MSession{
			SessionID: node.SessionID,
			UserID:    node.UserID,
			IssuedAt:  now,
			Timeout:   time.Duration(timeoutMinutes) * time.Minute,
		},
		ExchangeStatus: exchangeStatusFromWire(node.ExchangeStatus),
		RealTimeQuotes: map[models.Market]bool{
			models.MarketNYSE:   realtimeFromWire(node.NYSEQuotes),
			models.MarketNASDAQ: realtimeFromWire(node.NASDAQQuotes),
			models.MarketOPRA:   realtimeFromWire(node.OPRAQuotes),
			models.MarketAMEX:   realtimeFromWire(node.AMEXQuotes),
			models.MarketCME:    realtimeFromWire(node.CMEQuotes),
			models.MarketICE:    realtimeFromWire(node.ICEQuotes),
			models.MarketForex:  realtimeFromWire(node.ForexQuotes),
		},
		Authorizations: make(map[string]bool, len(node.Authorizations.Flags)),
	}

	for _, flag := range node.Authorizations.Flags {
		result.Authorizations[flag.XMLName.Local] = flag.Value == "true"
	}

	result.Accounts = make([]models.MAccount, 0, len(node.Accounts.Accounts))
	for _, n := range node.Accounts.Accounts {
		account, err := decodeAccount(n)
		if err != nil {
			return nil, err
		}
		result.Accounts = append(result.Accounts, account)
		if account.AccountID == node.AssociatedAccountID {
			result.PrimaryAccount = &result.Accounts[len(result.Accounts)-1]
		}
	}

	return result, nil
}

// -----------------------------------------------------------------------------

func decodeAccount(n accountNode) (models.MAccount, error) {
	var f fieldSet
	account := models.MAccount{
		AccountID:    n.AccountID,
		DisplayName:  n.DisplayName,
		Description:  n.Description,
		IsAssociated: f.bool("associated-account", n.AssociatedAccount),
		Company:      n.Company,
		Segment:      n.Segment,
		IsUnified:    f.bool("unified", n.Unified),
		Preferences: models.MAccountPreferences{
			ExpressTrading:                  f.bool("express-trading", n.Preferences.ExpressTrading),
			OptionDirectRouting:             f.bool("option-direct-routing", n.Preferences.OptionDirectRouting),
			StockDirectRouting:              f.bool("stock-direct-routing", n.Preferences.StockDirectRouting),
			DefaultStockAction:              n.Preferences.DefaultStockAction,
			DefaultStockOrderType:           n.Preferences.DefaultStockOrderType,
			DefaultStockQuantity:            n.Preferences.DefaultStockQuantity,
			DefaultStockExpiration:          n.Preferences.DefaultStockExpiration,
			DefaultStockSpecialInstructions: n.Preferences.DefaultStockSpecialInstructions,
			DefaultStockRouting:             n.Preferences.DefaultStockRouting,
			DefaultStockDisplaySize:         n.Preferences.DefaultStockDisplaySize,
			StockTaxLotMethod:               n.Preferences.StockTaxLotMethod,
			OptionTaxLotMethod:              n.Preferences.OptionTaxLotMethod,
			MutualFundTaxLotMethod:          n.Preferences.MutualFundTaxLotMethod,
			DefaultAdvancedToolLaunch:       n.Preferences.DefaultAdvancedToolLaunch,
		},
		Authorizations: models.MAccountAuthorizations{
			Apex:           f.bool("apex", n.Authorizations.Apex),
			Level2:         f.bool("level2", n.Authorizations.Level2),
			StockTrading:   f.bool("stock-trading", n.Authorizations.StockTrading),
			MarginTrading:  f.bool("margin-trading", n.Authorizations.MarginTrading),
			StreamingNews:  f.bool("streaming-news", n.Authorizations.StreamingNews),
			OptionTrading:  optionTradingFromWire(n.Authorizations.OptionTrading),
			Streamer:       f.bool("streamer", n.Authorizations.Streamer),
			AdvancedMargin: f.bool("advanced-margin", n.Authorizations.AdvancedMargin),
		},
	}
	if f.err != nil {
		return models.MAccount{}, f.err
	}
	return account, nil
}

// -----------------------------------------------------------------------------
// Streamer Info
// -----------------------------------------------------------------------------

type streamerInfoResponse struct {
	Result string `xml:"result"`
	Error  string `xml:"error"`
	Info   struct {
		StreamerURL string `xml:"streamer-url"`
		Token       string `xml:"token"`
		Timestamp   string `xml:"timestamp"`
		CDDomainID  string `xml:"cd-domain-id"`
		UserGroup   string `xml:"usergroup"`
		AccessLevel string `xml:"access-level"`
		ACL         string `xml:"acl"`
		AppID       string `xml:"app-id"`
		Authorized  string `xml:"authorized"`
		ErrorMsg    string `xml:"error-msg"`
	} `xml:"streamer-info"`
}

// DecodeStreamerInfo parses a streamer-info response body.
func DecodeStreamerInfo(data []byte) (*models.MStreamerInfo, error) {
	var resp streamerInfoResponse
	if err := xml.Unmarshal(data, &resp); err != nil {
		return nil, helpers.NewEnvelopeError("", "unparseable response: "+err.Error())
	}
	if resp.Result != ResultOK {
		return nil, helpers.NewEnvelopeError(resp.Result, resp.Error)
	}

	var f fieldSet
	info := &models.MStreamerInfo{
		StreamerURL: resp.Info.StreamerURL,
		Token:       resp.Info.Token,
		Timestamp:   f.int64("timestamp", resp.Info.Timestamp),
		CDDomainID:  resp.Info.CDDomainID,
		UserGroup:   resp.Info.UserGroup,
		AccessLevel: resp.Info.AccessLevel,
		ACL:         resp.Info.ACL,
		AppID:       resp.Info.AppID,
		Authorized:  resp.Info.Authorized,
		ErrorMsg:    resp.Info.ErrorMsg,
	}
	if f.err != nil {
		return nil, f.err
	}
	return info, nil
}
