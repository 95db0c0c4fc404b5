package session

import (
	"context"
	"net/url"
	"time"

	"brokerage-client/src/helpers"
	"brokerage-client/src/interfaces"
	"brokerage-client/src/logger"
	"brokerage-client/src/models"
	"brokerage-client/src/wire"
)

// -----------------------------------------------------------------------------
// Session Manager
//
// Tracks the authenticated state against the service. The state only moves
// after a response has been fully parsed: a login that fails to parse leaves
// the manager logged out, a failed logout leaves the old session in place.
//
// The manager expects a single goroutine to drive Login, Logout and
// KeepAlive. Concurrent readers of the accessors are safe once logged in
// because the session value is replaced whole, never mutated.
// -----------------------------------------------------------------------------

const keepAliveToken = "LoggedOn"

type Manager struct {
	transport interfaces.ITransport
	logger    *logger.Logger
	sourceKey string
	version   string

	loginResult *models.MLoginResult
}

// -----------------------------------------------------------------------------

func NewManager(transport interfaces.ITransport, log *logger.Logger, sourceKey, version string) *Manager {
	return &Manager{
		transport: transport,
		logger:    log,
		sourceKey: sourceKey,
		version:   version,
	}
}

// -----------------------------------------------------------------------------

// IsAuthenticated reports whether a live session is held.
func (m *Manager) IsAuthenticated() bool {
	return m.loginResult != nil
}

// Current returns the held login result, or nil when logged out.
func (m *Manager) Current() *models.MLoginResult {
	return m.loginResult
}

// SourceKey returns the application key stamped on every request.
func (m *Manager) SourceKey() string {
	return m.sourceKey
}

// -----------------------------------------------------------------------------

// EnsureAuthenticated fails with a NotAuthenticatedError when no live
// session is held.
func (m *Manager) EnsureAuthenticated() error {
	if m.loginResult == nil {
		return helpers.NewNotAuthenticatedError()
	}
	return nil
}

// -----------------------------------------------------------------------------

// Login authenticates against the service. On success the parsed session
// replaces any previous one. A rejection from the server drops any held
// session; transport and parse failures leave the state untouched.
func (m *Manager) Login(ctx context.Context, userName, password string) (*models.MLoginResult, error) {
	if userName == "" {
		return nil, helpers.NewValidationError("user name cannot be empty")
	}
	if password == "" {
		return nil, helpers.NewValidationError("password cannot be empty")
	}

	rawQuery := "source=" + url.QueryEscape(m.sourceKey) + "&version=" + url.QueryEscape(m.version)
	body, err := m.transport.PostForm(ctx, "/apps/300/LogIn", rawQuery, map[string]string{
		"userid":   userName,
		"password": password,
		"source":   m.sourceKey,
		"version":  m.version,
	})
	if err != nil {
		return nil, err
	}

	result, err := wire.DecodeLoginResponse(body, time.Now())
	if err != nil {
		// Only a server-side rejection invalidates a held session; an
		// unparseable response changes nothing.
		if _, ok := err.(*helpers.AuthenticationFailedError); ok {
			m.loginResult = nil
		}
		return nil, err
	}

	m.loginResult = result
	m.logger.Info("Logged in as %s (%d account(s), session timeout %v)",
		result.Session.UserID, len(result.Accounts), result.Session.Timeout)
	return result, nil
}

// -----------------------------------------------------------------------------

// Logout ends the session server-side. The local state is reset only when
// the server confirms; a failed logout keeps the session so the caller can
// retry.
func (m *Manager) Logout(ctx context.Context) error {
	body, err := m.transport.Get(ctx, "/apps/100/LogOut", "source="+url.QueryEscape(m.sourceKey))
	if err != nil {
		return err
	}

	result, errMsg, err := wire.DecodeEnvelope(body)
	if err != nil {
		return err
	}
	if result != wire.ResultLoggedOut {
		return helpers.NewEnvelopeError(result, errMsg)
	}

	m.loginResult = nil
	m.logger.Info("Logged out")
	return nil
}

// -----------------------------------------------------------------------------

// KeepAlive refreshes the server-side session timer. The response body is a
// bare token, not XML; anything but the expected token means the session is
// gone, so the local state is dropped and a SessionExpiredError returned.
func (m *Manager) KeepAlive(ctx context.Context) error {
	if err := m.EnsureAuthenticated(); err != nil {
		return err
	}

	body, err := m.transport.Get(ctx, "/apps/KeepAlive", "source="+url.QueryEscape(m.sourceKey))
	if err != nil {
		return err
	}

	if string(body) != keepAliveToken {
		m.loginResult = nil
		m.logger.Warning("Keep-alive rejected, session dropped")
		return helpers.NewSessionExpiredError()
	}
	return nil
}
