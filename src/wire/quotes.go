package wire

import (
	"encoding/xml"
	"fmt"

	"brokerage-client/src/helpers"
	"brokerage-client/src/models"
)

// -----------------------------------------------------------------------------
// Quote Batch Decoding
//
// One response carries one quote element per requested symbol. Every element
// shares the same envelope but its real shape depends on the asset-type tag,
// so each node is kept as raw text first and converted per variant. A record
// that fails conversion becomes an MErrorQuote in place; the batch never
// aborts because of one bad record.
// -----------------------------------------------------------------------------

// quoteNode is the raw text form of one quote element.
type quoteNode struct {
	Error             string `xml:"error"`
	AssetType         string `xml:"asset-type"`
	Symbol            string `xml:"symbol"`
	Description       string `xml:"description"`
	Bid               string `xml:"bid"`
	Ask               string `xml:"ask"`
	BidAskSize        string `xml:"bid-ask-size"`
	Last              string `xml:"last"`
	LastTradeSize     string `xml:"last-trade-size"`
	LastTradeDate     string `xml:"last-trade-date"`
	Open              string `xml:"open"`
	High              string `xml:"high"`
	Low               string `xml:"low"`
	Close             string `xml:"close"`
	Volume            string `xml:"volume"`
	YearHigh          string `xml:"year-high"`
	YearLow           string `xml:"year-low"`
	RealTime          string `xml:"real-time"`
	Exchange          string `xml:"exchange"`
	Change            string `xml:"change"`
	ChangePercent     string `xml:"change-percent"`
	Nav               string `xml:"nav"`
	StrikePrice       string `xml:"strike-price"`
	OpenInterest      string `xml:"open-interest"`
	ExpirationMonth   string `xml:"expiration-month"`
	ExpirationDay     string `xml:"expiration-day"`
	ExpirationYear    string `xml:"expiration-year"`
	UnderlyingSymbol  string `xml:"underlying-symbol"`
	Delta             string `xml:"delta"`
	Gamma             string `xml:"gamma"`
	Theta             string `xml:"theta"`
	Vega              string `xml:"vega"`
	Rho               string `xml:"rho"`
	ImpliedVolatility string `xml:"implied-volatility"`
	DaysToExpiration  string `xml:"days-to-expiration"`
	TimeValueIndex    string `xml:"time-value-index"`
	Multiplier        string `xml:"multiplier"`
}

type quoteListResponse struct {
	Result string      `xml:"result"`
	Error  string      `xml:"error"`
	Quotes []quoteNode `xml:"quote-list>quote"`
}

// -----------------------------------------------------------------------------

// DecodeQuoteBatch decodes a whole quote response. The returned slice keeps
// the order the service sent.
func DecodeQuoteBatch(data []byte) ([]models.MQuote, error) {
	var resp quoteListResponse
	if err := xml.Unmarshal(data, &resp); err != nil {
		return nil, helpers.NewEnvelopeError("", "unparseable response: "+err.Error())
	}
	if resp.Result != ResultOK {
		return nil, helpers.NewEnvelopeError(resp.Result, resp.Error)
	}

	quotes := make([]models.MQuote, 0, len(resp.Quotes))
	for _, node := range resp.Quotes {
		quotes = append(quotes, decodeQuoteNode(node))
	}
	return quotes, nil
}

// -----------------------------------------------------------------------------

// decodeQuoteNode resolves exactly one variant for one node: a non-empty
// error element wins over everything, then the asset-type tag dispatches,
// and anything unrecognized degrades to MErrorQuote rather than failing.
func decodeQuoteNode(node quoteNode) models.MQuote {
	if node.Error != "" {
		return models.MErrorQuote{Symbol: node.Symbol, Message: node.Error}
	}

	switch models.AssetType(node.AssetType) {
	case models.AssetTypeStock:
		return decodeStockQuote(node)
	case models.AssetTypeOption:
		return decodeOptionQuote(node)
	case models.AssetTypeIndex:
		return decodeIndexQuote(node)
	case models.AssetTypeFund:
		return decodeFundQuote(node)
	default:
		return models.MErrorQuote{
			Symbol:  node.Symbol,
			Message: fmt.Sprintf("unrecognized asset type %q", node.AssetType),
		}
	}
}

// -----------------------------------------------------------------------------

func decodeStockQuote(node quoteNode) models.MQuote {
	var f fieldSet
	q := models.MStockQuote{
		Symbol:        node.Symbol,
		Description:   node.Description,
		Bid:           f.float32("bid", node.Bid),
		Ask:           f.float32("ask", node.Ask),
		BidAskSize:    node.BidAskSize,
		Last:          f.float32("last", node.Last),
		LastTradeSize: f.int("last-trade-size", node.LastTradeSize),
		LastTradeDate: node.LastTradeDate,
		Open:          f.float32("open", node.Open),
		High:          f.float32("high", node.High),
		Low:           f.float32("low", node.Low),
		Close:         f.float32("close", node.Close),
		Volume:        f.int64("volume", node.Volume),
		YearHigh:      f.float32("year-high", node.YearHigh),
		YearLow:       f.float32("year-low", node.YearLow),
		RealTime:      f.bool("real-time", node.RealTime),
		Exchange:      node.Exchange,
		Change:        f.float32("change", node.Change),
		ChangePercent: node.ChangePercent,
	}
	if f.err != nil {
		return models.MErrorQuote{Symbol: node.Symbol, Message: f.err.Error()}
	}
	return q
}

// -----------------------------------------------------------------------------

func decodeOptionQuote(node quoteNode) models.MQuote {
	var f fieldSet
	q := models.MOptionQuote{
		Symbol:            node.Symbol,
		Description:       node.Description,
		Bid:               f.float32("bid", node.Bid),
		Ask:               f.float32("ask", node.Ask),
		BidAskSize:        node.BidAskSize,
		Last:              f.float32("last", node.Last),
		LastTradeSize:     f.int("last-trade-size", node.LastTradeSize),
		LastTradeDate:     node.LastTradeDate,
		Open:              f.float32("open", node.Open),
		High:              f.float32("high", node.High),
		Low:               f.float32("low", node.Low),
		Close:             f.float32("close", node.Close),
		Volume:            f.int64("volume", node.Volume),
		StrikePrice:       f.float32("strike-price", node.StrikePrice),
		OpenInterest:      f.int("open-interest", node.OpenInterest),
		ExpirationMonth:   f.int("expiration-month", node.ExpirationMonth),
		ExpirationDay:     f.int("expiration-day", node.ExpirationDay),
		ExpirationYear:    f.int("expiration-year", node.ExpirationYear),
		RealTime:          f.bool("real-time", node.RealTime),
		Exchange:          node.Exchange,
		UnderlyingSymbol:  node.UnderlyingSymbol,
		Delta:             f.float32("delta", node.Delta),
		Gamma:             f.float32("gamma", node.Gamma),
		Theta:             f.float32("theta", node.Theta),
		Vega:              f.float32("vega", node.Vega),
		Rho:               f.float32("rho", node.Rho),
		ImpliedVolatility: f.float32("implied-volatility", node.ImpliedVolatility),
		DaysToExpiration:  f.int("days-to-expiration", node.DaysToExpiration),
		TimeValueIndex:    f.float32("time-value-index", node.TimeValueIndex),
		Multiplier:        f.float32("multiplier", node.Multiplier),
	}
	if f.err != nil {
		return models.MErrorQuote{Symbol: node.Symbol, Message: f.err.Error()}
	}
	return q
}

// -----------------------------------------------------------------------------

func decodeIndexQuote(node quoteNode) models.MQuote {
	var f fieldSet
	q := models.MIndexQuote{
		Symbol:      node.Symbol,
		Description: node.Description,
		Open:        f.float32("open", node.Open),
		High:        f.float32("high", node.High),
		Low:         f.float32("low", node.Low),
		Last:        f.float32("last", node.Last),
		Close:       f.float32("close", node.Close),
		YearHigh:    f.float32("year-high", node.YearHigh),
		YearLow:     f.float32("year-low", node.YearLow),
		RealTime:    f.bool("real-time", node.RealTime),
	}
	if f.err != nil {
		return models.MErrorQuote{Symbol: node.Symbol, Message: f.err.Error()}
	}
	return q
}

// -----------------------------------------------------------------------------

func decodeFundQuote(node quoteNode) models.MQuote {
	var f fieldSet
	q := models.MFundQuote{
		Symbol:      node.Symbol,
		Description: node.Description,
		Nav:         f.float32("nav", node.Nav),
		Change:      f.float32("change", node.Change),
		RealTime:    f.bool("real-time", node.RealTime),
	}
	if f.err != nil {
		return models.MErrorQuote{Symbol: node.Symbol, Message: f.err.Error()}
	}
	return q
}
