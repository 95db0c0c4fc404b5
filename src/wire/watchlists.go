package wire

import (
	"encoding/xml"

	"brokerage-client/src/helpers"
	"brokerage-client/src/models"
)

// -----------------------------------------------------------------------------
// Watchlists, Symbol Lookup, Order Cancel
// -----------------------------------------------------------------------------

type watchedSymbolNode struct {
	Quantity     string `xml:"quantity"`
	PositionType string `xml:"position-type"`
	AveragePrice string `xml:"average-price"`
	Commission   string `xml:"commission"`
	OpenDate     string `xml:"open-date"`
	Security     struct {
		Symbol               string `xml:"symbol"`
		SymbolWithTypePrefix string `xml:"symbol-with-type-prefix"`
		Description          string `xml:"description"`
		AssetType            string `xml:"asset-type"`
	} `xml:"security"`
}

type watchlistNode struct {
	Name    string              `xml:"name"`
	ID      string              `xml:"id"`
	Symbols []watchedSymbolNode `xml:"symbol-list>watched-symbol"`
}

type watchlistsResponse struct {
	Result     string          `xml:"result"`
	Error      string          `xml:"error"`
	Watchlists []watchlistNode `xml:"watchlist-result>watchlist"`
}

type createdWatchlistResponse struct {
	Result    string        `xml:"result"`
	Error     string        `xml:"error"`
	Watchlist watchlistNode `xml:"created-watchlist>watchlist"`
}

// -----------------------------------------------------------------------------

// DecodeWatchlists parses a GetWatchlists response body.
func DecodeWatchlists(data []byte) ([]models.MWatchlist, error) {
	var resp watchlistsResponse
	if err := xml.Unmarshal(data, &resp); err != nil {
		return nil, helpers.NewEnvelopeError("", "unparseable response: "+err.Error())
	}
	if resp.Result != ResultOK {
		return nil, helpers.NewEnvelopeError(resp.Result, resp.Error)
	}

	lists := make([]models.MWatchlist, 0, len(resp.Watchlists))
	for _, node := range resp.Watchlists {
		list, err := decodeWatchlist(node)
		if err != nil {
			return nil, err
		}
		lists = append(lists, list)
	}
	return lists, nil
}

// -----------------------------------------------------------------------------

// DecodeCreatedWatchlist parses a CreateWatchlist response body, returning
// the server's view of the new list.
func DecodeCreatedWatchlist(data []byte) (*models.MWatchlist, error) {
	var resp createdWatchlistResponse
	if err := xml.Unmarshal(data, &resp); err != nil {
		return nil, helpers.NewEnvelopeError("", "unparseable response: "+err.Error())
	}
	if resp.Result != ResultOK {
		return nil, helpers.NewEnvelopeError(resp.Result, resp.Error)
	}

	list, err := decodeWatchlist(resp.Watchlist)
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// -----------------------------------------------------------------------------

func decodeWatchlist(node watchlistNode) (models.MWatchlist, error) {
	list := models.MWatchlist{
		ID:      node.ID,
		Name:    node.Name,
		Symbols: make([]models.MWatchedSymbol, 0, len(node.Symbols)),
	}
	for _, s := range node.Symbols {
		var f fieldSet
		entry := models.MWatchedSymbol{
			Quantity:     f.float64("quantity", s.Quantity),
			PositionType: s.PositionType,
			AveragePrice: f.float64("average-price", s.AveragePrice),
			Commission:   f.float64("commission", s.Commission),
			OpenDate:     s.OpenDate,
			Security: models.MWatchedSecurity{
				Symbol:               s.Security.Symbol,
				SymbolWithTypePrefix: s.Security.SymbolWithTypePrefix,
				Description:          s.Security.Description,
				AssetType:            models.AssetType(s.Security.AssetType),
			},
		}
		if f.err != nil {
			return models.MWatchlist{}, f.err
		}
		list.Symbols = append(list.Symbols, entry)
	}
	return list, nil
}

// -----------------------------------------------------------------------------

type symbolLookupResponse struct {
	Result  string `xml:"result"`
	Error   string `xml:"error"`
	Matches []struct {
		Symbol      string `xml:"symbol"`
		Description string `xml:"description"`
	} `xml:"symbol-lookup-result>symbol-result"`
}

// DecodeSymbolLookup parses a SymbolLookup response body.
func DecodeSymbolLookup(data []byte) ([]models.MSymbolMatch, error) {
	var resp symbolLookupResponse
	if err := xml.Unmarshal(data, &resp); err != nil {
		return nil, helpers.NewEnvelopeError("", "unparseable response: "+err.Error())
	}
	if resp.Result != ResultOK {
		return nil, helpers.NewEnvelopeError(resp.Result, resp.Error)
	}

	matches := make([]models.MSymbolMatch, 0, len(resp.Matches))
	for _, m := range resp.Matches {
		matches = append(matches, models.MSymbolMatch{Symbol: m.Symbol, Description: m.Description})
	}
	return matches, nil
}

// -----------------------------------------------------------------------------

type orderCancelResponse struct {
	Result string `xml:"result"`
	Error  string `xml:"error"`
	Order  struct {
		Error string `xml:"error"`
	} `xml:"order"`
}

// DecodeOrderCancel parses an OrderCancel response body. The cancel
// succeeded only when the envelope says OK and the order element carries no
// error of its own.
func DecodeOrderCancel(data []byte) error {
	var resp orderCancelResponse
	if err := xml.Unmarshal(data, &resp); err != nil {
		return helpers.NewEnvelopeError("", "unparseable response: "+err.Error())
	}
	if resp.Result != ResultOK {
		return helpers.NewEnvelopeError(resp.Result, resp.Error)
	}
	if resp.Order.Error != "" {
		return helpers.NewEnvelopeError(resp.Result, resp.Order.Error)
	}
	return nil
}
