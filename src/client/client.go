package client

import (
	"context"
	"net/url"
	"strings"
	"time"

	"brokerage-client/src/helpers"
	"brokerage-client/src/interfaces"
	"brokerage-client/src/logger"
	"brokerage-client/src/models"
	"brokerage-client/src/session"
	"brokerage-client/src/wire"
)

// -----------------------------------------------------------------------------
// Protocol Client
//
// The one entry point callers use. Each operation ensures a live session,
// builds the request, hands the raw response to the wire package, and
// returns typed values. No state of its own beyond the session manager.
// -----------------------------------------------------------------------------

type Client struct {
	Session   *session.Manager
	transport interfaces.ITransport
	logger    *logger.Logger
	sourceKey string
}

// -----------------------------------------------------------------------------

func NewClient(transport interfaces.ITransport, log *logger.Logger, cfg *models.MAPIConfig) *Client {
	version := cfg.AppName + " " + cfg.AppVersion
	return &Client{
		Session:   session.NewManager(transport, log, cfg.SourceKey, version),
		transport: transport,
		logger:    log,
		sourceKey: cfg.SourceKey,
	}
}

// -----------------------------------------------------------------------------

// Login authenticates and holds the resulting session.
func (c *Client) Login(ctx context.Context, userName, password string) (*models.MLoginResult, error) {
	return c.Session.Login(ctx, userName, password)
}

// Logout ends the session.
func (c *Client) Logout(ctx context.Context) error {
	return c.Session.Logout(ctx)
}

// KeepAlive refreshes the server-side session timer.
func (c *Client) KeepAlive(ctx context.Context) error {
	return c.Session.KeepAlive(ctx)
}

// -----------------------------------------------------------------------------

// symbolListParam trims, escapes and comma-joins symbols for a query string.
// Each symbol is escaped individually so the separating commas stay literal.
func symbolListParam(symbols []string) string {
	escaped := make([]string, len(symbols))
	for i, s := range symbols {
		escaped[i] = url.QueryEscape(strings.TrimSpace(s))
	}
	return strings.Join(escaped, ",")
}

// -----------------------------------------------------------------------------

// GetQuotes fetches one quote per symbol. A symbol the service cannot quote
// comes back as an MErrorQuote in its slot; the batch itself only fails on
// transport or envelope problems.
func (c *Client) GetQuotes(ctx context.Context, symbols []string) ([]models.MQuote, error) {
	if len(symbols) == 0 {
		return nil, helpers.NewValidationError("at least one symbol is required")
	}
	if err := c.Session.EnsureAuthenticated(); err != nil {
		return nil, err
	}

	rawQuery := "source=" + url.QueryEscape(c.sourceKey) + "&symbol=" + symbolListParam(symbols)
	body, err := c.transport.Get(ctx, "/apps/100/Quote", rawQuery)
	if err != nil {
		return nil, err
	}
	return wire.DecodeQuoteBatch(body)
}

// -----------------------------------------------------------------------------

const historyDateLayout = "20060102"

// GetHistoricalPrices fetches daily bars for the symbols between the two
// dates. Per-symbol service errors are reported in the result's Errors map
// alongside the successful series.
func (c *Client) GetHistoricalPrices(ctx context.Context, symbols []string, start, end time.Time) (*models.MPriceHistoryResult, error) {
	if len(symbols) == 0 {
		return nil, helpers.NewValidationError("at least one symbol is required")
	}
	if end.Before(start) {
		return nil, helpers.NewValidationError("end date %s precedes start date %s",
			end.Format(historyDateLayout), start.Format(historyDateLayout))
	}
	if err := c.Session.EnsureAuthenticated(); err != nil {
		return nil, err
	}

	rawQuery := "source=" + url.QueryEscape(c.sourceKey) +
		"&requestidentifiertype=SYMBOL" +
		"&requestvalue=" + symbolListParam(symbols) +
		"&intervaltype=DAILY" +
		"&intervalduration=1" +
		"&startdate=" + start.Format(historyDateLayout) +
		"&enddate=" + end.Format(historyDateLayout)
	body, err := c.transport.Get(ctx, "/apps/100/PriceHistory", rawQuery)
	if err != nil {
		return nil, err
	}
	return wire.DecodePriceHistory(body)
}

// -----------------------------------------------------------------------------

// FindSymbols performs a free-text symbol lookup.
func (c *Client) FindSymbols(ctx context.Context, search string) ([]models.MSymbolMatch, error) {
	if strings.TrimSpace(search) == "" {
		return nil, helpers.NewValidationError("search text cannot be empty")
	}
	if err := c.Session.EnsureAuthenticated(); err != nil {
		return nil, err
	}

	rawQuery := "source=" + url.QueryEscape(c.sourceKey) + "&matchstring=" + url.QueryEscape(search)
	body, err := c.transport.Get(ctx, "/apps/100/SymbolLookup", rawQuery)
	if err != nil {
		return nil, err
	}
	return wire.DecodeSymbolLookup(body)
}

// -----------------------------------------------------------------------------

// CancelOrder cancels a pending order. A nil error means the server both
// accepted the request and reported no order-level error.
func (c *Client) CancelOrder(ctx context.Context, orderID, accountID string) error {
	if strings.TrimSpace(orderID) == "" {
		return helpers.NewValidationError("order id cannot be empty")
	}
	if err := c.Session.EnsureAuthenticated(); err != nil {
		return err
	}

	rawQuery := "source=" + url.QueryEscape(c.sourceKey) + "&orderid=" + url.QueryEscape(orderID)
	if strings.TrimSpace(accountID) != "" {
		rawQuery += "&accountid=" + url.QueryEscape(accountID)
	}
	body, err := c.transport.Get(ctx, "/apps/100/OrderCancel", rawQuery)
	if err != nil {
		return err
	}
	return wire.DecodeOrderCancel(body)
}

// -----------------------------------------------------------------------------

// GetWatchlists fetches all watchlists of the session's user.
func (c *Client) GetWatchlists(ctx context.Context) ([]models.MWatchlist, error) {
	if err := c.Session.EnsureAuthenticated(); err != nil {
		return nil, err
	}

	body, err := c.transport.Get(ctx, "/apps/100/GetWatchlists", "source="+url.QueryEscape(c.sourceKey))
	if err != nil {
		return nil, err
	}
	return wire.DecodeWatchlists(body)
}

// -----------------------------------------------------------------------------

// CreateWatchlist creates a named watchlist holding the given symbols and
// returns the server's view of it, id included.
func (c *Client) CreateWatchlist(ctx context.Context, name string, symbols []string) (*models.MWatchlist, error) {
	if strings.TrimSpace(name) == "" {
		return nil, helpers.NewValidationError("watchlist name cannot be empty")
	}
	if len(symbols) == 0 {
		return nil, helpers.NewValidationError("at least one symbol is required")
	}
	if err := c.Session.EnsureAuthenticated(); err != nil {
		return nil, err
	}

	rawQuery := "source=" + url.QueryEscape(c.sourceKey) +
		"&watchlistname=" + url.QueryEscape(name) +
		"&symbollist=" + symbolListParam(symbols)
	body, err := c.transport.Get(ctx, "/apps/100/CreateWatchlist", rawQuery)
	if err != nil {
		return nil, err
	}
	return wire.DecodeCreatedWatchlist(body)
}

// -----------------------------------------------------------------------------

// DeleteWatchlist removes a watchlist by id.
func (c *Client) DeleteWatchlist(ctx context.Context, watchlistID, accountID string) error {
	if strings.TrimSpace(watchlistID) == "" {
		return helpers.NewValidationError("watchlist id cannot be empty")
	}
	if err := c.Session.EnsureAuthenticated(); err != nil {
		return err
	}

	rawQuery := "source=" + url.QueryEscape(c.sourceKey) + "&listid=" + url.QueryEscape(watchlistID)
	if strings.TrimSpace(accountID) != "" {
		rawQuery += "&accountid=" + url.QueryEscape(accountID)
	}
	body, err := c.transport.Get(ctx, "/apps/100/DeleteWatchlist", rawQuery)
	if err != nil {
		return err
	}
	return wire.CheckOK(body)
}

// -----------------------------------------------------------------------------

// GetStreamerInfo fetches the per-session streaming endpoint description.
func (c *Client) GetStreamerInfo(ctx context.Context, accountID string) (*models.MStreamerInfo, error) {
	if err := c.Session.EnsureAuthenticated(); err != nil {
		return nil, err
	}

	rawQuery := "source=" + url.QueryEscape(c.sourceKey)
	if strings.TrimSpace(accountID) != "" {
		rawQuery += "&accountid=" + url.QueryEscape(accountID)
	}
	body, err := c.transport.Get(ctx, "/apps/100/StreamerInfo", rawQuery)
	if err != nil {
		return nil, err
	}
	return wire.DecodeStreamerInfo(body)
}
