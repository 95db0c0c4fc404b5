package models

import "time"

// ExchangeStatus is the user's exchange agreement classification.
type ExchangeStatus string

const (
	ExchangeStatusUnknown         ExchangeStatus = "unknown"
	ExchangeStatusNonProfessional ExchangeStatus = "non-professional"
	ExchangeStatusProfessional    ExchangeStatus = "professional"
)

// Market identifies one of the exchanges the service reports quote
// entitlements for at login.
type Market string

const (
	MarketNYSE   Market = "NYSE"
	MarketNASDAQ Market = "NASDAQ"
	MarketOPRA   Market = "OPRA"
	MarketAMEX   Market = "AMEX"
	MarketCME    Market = "CME"
	MarketICE    Market = "ICE"
	MarketForex  Market = "FOREX"
)

// -----------------------------------------------------------------------------

// MSession is the server-issued authenticated context. It is immutable:
// a new value is built from each successful login response and the whole
// value is discarded on logout or expiry.
type MSession struct {
	SessionID string        `json:"-"`
	UserID    string        `json:"user_id"`
	IssuedAt  time.Time     `json:"issued_at"`
	Timeout   time.Duration `json:"timeout"`
}

// -----------------------------------------------------------------------------

// MLoginResult bundles everything parsed out of one login response.
type MLoginResult struct {
	Session        MSession
	Accounts       []MAccount
	PrimaryAccount *MAccount // the account matching associated-account-id, nil if none matched
	ExchangeStatus ExchangeStatus
	RealTimeQuotes map[Market]bool
	Authorizations map[string]bool
}

// -----------------------------------------------------------------------------

// MStreamerInfo describes the streaming endpoint issued per session.
type MStreamerInfo struct {
	StreamerURL string `json:"streamer_url"`
	Token       string `json:"token"`
	Timestamp   int64  `json:"timestamp"`
	CDDomainID  string `json:"cd_domain_id"`
	UserGroup   string `json:"usergroup"`
	AccessLevel string `json:"access_level"`
	ACL         string `json:"acl"`
	AppID       string `json:"app_id"`
	Authorized  string `json:"authorized"`
	ErrorMsg    string `json:"error_msg"`
}
