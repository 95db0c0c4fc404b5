package session

import (
	"context"
	"fmt"
	"testing"

	"brokerage-client/src/helpers"
	"brokerage-client/src/logger"
)

// scriptedTransport replays canned responses keyed by request path and
// records what was sent.
type scriptedTransport struct {
	responses map[string][]byte
	failWith  error

	lastPath     string
	lastRawQuery string
	lastForm     map[string]string
}

func (s *scriptedTransport) Get(_ context.Context, path, rawQuery string) ([]byte, error) {
	s.lastPath = path
	s.lastRawQuery = rawQuery
	if s.failWith != nil {
		return nil, s.failWith
	}
	body, ok := s.responses[path]
	if !ok {
		return nil, fmt.Errorf("unexpected path %s", path)
	}
	return body, nil
}

func (s *scriptedTransport) PostForm(_ context.Context, path, rawQuery string, form map[string]string) ([]byte, error) {
	s.lastForm = form
	return s.Get(context.Background(), path, rawQuery)
}

// -----------------------------------------------------------------------------

const loginOK = `<amtd><result>OK</result><xml-log-in>
	<session-id>SESS1</session-id><user-id>demo_user</user-id><timeout>55</timeout>
	<associated-account-id>222</associated-account-id>
	<nyse-quotes>realtime</nyse-quotes><nasdaq-quotes>delayed</nasdaq-quotes>
	<opra-quotes>delayed</opra-quotes><amex-quotes>delayed</amex-quotes>
	<cme-quotes>delayed</cme-quotes><ice-quotes>delayed</ice-quotes>
	<forex-quotes>delayed</forex-quotes>
	<exchange-status>professional</exchange-status>
	<authorizations><apex>true</apex></authorizations>
	<accounts>
		<account><account-id>111</account-id><display-name>first</display-name>
			<associated-account>false</associated-account><unified>true</unified>
			<preferences><express-trading>false</express-trading><option-direct-routing>false</option-direct-routing><stock-direct-routing>false</stock-direct-routing></preferences>
			<authorizations><apex>false</apex><level2>false</level2><stock-trading>true</stock-trading><margin-trading>false</margin-trading><streaming-news>false</streaming-news><option-trading>none</option-trading><streamer>false</streamer><advanced-margin>false</advanced-margin></authorizations>
		</account>
		<account><account-id>222</account-id><display-name>second</display-name>
			<associated-account>true</associated-account><unified>true</unified>
			<preferences><express-trading>true</express-trading><option-direct-routing>false</option-direct-routing><stock-direct-routing>false</stock-direct-routing></preferences>
			<authorizations><apex>true</apex><level2>true</level2><stock-trading>true</stock-trading><margin-trading>true</margin-trading><streaming-news>true</streaming-news><option-trading>full</option-trading><streamer>true</streamer><advanced-margin>true</advanced-margin></authorizations>
		</account>
	</accounts>
</xml-log-in></amtd>`

func newTestManager(transport *scriptedTransport) *Manager {
	log := logger.NewLogger("ERROR", "test")
	return NewManager(transport, log, "TESTKEY", "TestApp 1.0")
}

// -----------------------------------------------------------------------------

func TestLogin_Success(t *testing.T) {
	transport := &scriptedTransport{responses: map[string][]byte{
		"/apps/300/LogIn": []byte(loginOK),
	}}
	m := newTestManager(transport)

	result, err := m.Login(context.Background(), "demo_user", "secret")
	if err != nil {
		t.Fatalf("Login() returned an unexpected error: %v", err)
	}

	if !m.IsAuthenticated() {
		t.Error("expected authenticated state after login")
	}
	if result.Session.SessionID != "SESS1" {
		t.Errorf("expected session SESS1, got %q", result.Session.SessionID)
	}
	if result.PrimaryAccount == nil || result.PrimaryAccount.AccountID != "222" {
		t.Errorf("expected primary account 222, got %+v", result.PrimaryAccount)
	}
	if len(result.Accounts) != 2 {
		t.Errorf("expected 2 accounts, got %d", len(result.Accounts))
	}

	if transport.lastForm["userid"] != "demo_user" || transport.lastForm["source"] != "TESTKEY" {
		t.Errorf("unexpected login form: %v", transport.lastForm)
	}
	if transport.lastRawQuery != "source=TESTKEY&version=TestApp+1.0" {
		t.Errorf("unexpected login query: %q", transport.lastRawQuery)
	}
}

func TestLogin_Rejected(t *testing.T) {
	transport := &scriptedTransport{responses: map[string][]byte{
		"/apps/300/LogIn": []byte(`<amtd><result>FAIL</result><error>Invalid password</error></amtd>`),
	}}
	m := newTestManager(transport)

	_, err := m.Login(context.Background(), "demo_user", "wrong")
	if _, ok := err.(*helpers.AuthenticationFailedError); !ok {
		t.Fatalf("expected AuthenticationFailedError, got %T: %v", err, err)
	}
	if m.IsAuthenticated() {
		t.Error("expected logged out state after rejection")
	}
}

func TestLogin_TransportFailureKeepsSession(t *testing.T) {
	transport := &scriptedTransport{responses: map[string][]byte{
		"/apps/300/LogIn": []byte(loginOK),
	}}
	m := newTestManager(transport)

	if _, err := m.Login(context.Background(), "u", "p"); err != nil {
		t.Fatalf("Login() returned an unexpected error: %v", err)
	}

	transport.failWith = fmt.Errorf("connection reset")
	if _, err := m.Login(context.Background(), "u", "p"); err == nil {
		t.Fatal("expected an error")
	}
	if !m.IsAuthenticated() {
		t.Error("transport failure during re-login must keep the prior session")
	}
}

func TestLogin_RejectedReloginDropsSession(t *testing.T) {
	transport := &scriptedTransport{responses: map[string][]byte{
		"/apps/300/LogIn": []byte(loginOK),
	}}
	m := newTestManager(transport)

	if _, err := m.Login(context.Background(), "u", "p"); err != nil {
		t.Fatalf("Login() returned an unexpected error: %v", err)
	}

	transport.responses["/apps/300/LogIn"] = []byte(`<amtd><result>FAIL</result><error>Invalid password</error></amtd>`)
	_, err := m.Login(context.Background(), "u", "wrong")
	if _, ok := err.(*helpers.AuthenticationFailedError); !ok {
		t.Fatalf("expected AuthenticationFailedError, got %T: %v", err, err)
	}
	if m.IsAuthenticated() {
		t.Error("a server-rejected re-login must drop the prior session")
	}
}

func TestLogin_EmptyCredentials(t *testing.T) {
	m := newTestManager(&scriptedTransport{})

	if _, err := m.Login(context.Background(), "", "pw"); err == nil {
		t.Error("expected an error for empty user name")
	}
	if _, err := m.Login(context.Background(), "user", ""); err == nil {
		t.Error("expected an error for empty password")
	}
}

func TestLogout(t *testing.T) {
	transport := &scriptedTransport{responses: map[string][]byte{
		"/apps/300/LogIn":  []byte(loginOK),
		"/apps/100/LogOut": []byte(`<amtd><result>LoggedOut</result></amtd>`),
	}}
	m := newTestManager(transport)

	if _, err := m.Login(context.Background(), "u", "p"); err != nil {
		t.Fatalf("Login() returned an unexpected error: %v", err)
	}
	if err := m.Logout(context.Background()); err != nil {
		t.Fatalf("Logout() returned an unexpected error: %v", err)
	}
	if m.IsAuthenticated() {
		t.Error("expected logged out state")
	}
}

func TestLogout_Refused(t *testing.T) {
	// A logout the server does not confirm keeps the session alive.
	transport := &scriptedTransport{responses: map[string][]byte{
		"/apps/300/LogIn":  []byte(loginOK),
		"/apps/100/LogOut": []byte(`<amtd><result>FAIL</result><error>try again</error></amtd>`),
	}}
	m := newTestManager(transport)

	if _, err := m.Login(context.Background(), "u", "p"); err != nil {
		t.Fatalf("Login() returned an unexpected error: %v", err)
	}
	if err := m.Logout(context.Background()); err == nil {
		t.Fatal("expected an error")
	}
	if !m.IsAuthenticated() {
		t.Error("failed logout must keep the session")
	}
}

func TestKeepAlive(t *testing.T) {
	transport := &scriptedTransport{responses: map[string][]byte{
		"/apps/300/LogIn":  []byte(loginOK),
		"/apps/KeepAlive":  []byte("LoggedOn"),
		"/apps/100/LogOut": []byte(`<amtd><result>LoggedOut</result></amtd>`),
	}}
	m := newTestManager(transport)

	if _, err := m.Login(context.Background(), "u", "p"); err != nil {
		t.Fatalf("Login() returned an unexpected error: %v", err)
	}
	if err := m.KeepAlive(context.Background()); err != nil {
		t.Fatalf("KeepAlive() returned an unexpected error: %v", err)
	}
	if !m.IsAuthenticated() {
		t.Error("keep-alive success must keep the session")
	}
}

func TestKeepAlive_Expired(t *testing.T) {
	transport := &scriptedTransport{responses: map[string][]byte{
		"/apps/300/LogIn": []byte(loginOK),
		"/apps/KeepAlive": []byte("InvalidSession"),
	}}
	m := newTestManager(transport)

	if _, err := m.Login(context.Background(), "u", "p"); err != nil {
		t.Fatalf("Login() returned an unexpected error: %v", err)
	}

	err := m.KeepAlive(context.Background())
	if _, ok := err.(*helpers.SessionExpiredError); !ok {
		t.Fatalf("expected SessionExpiredError, got %T: %v", err, err)
	}
	if m.IsAuthenticated() {
		t.Error("expired keep-alive must drop the session")
	}
}

func TestKeepAlive_NotAuthenticated(t *testing.T) {
	m := newTestManager(&scriptedTransport{})

	err := m.KeepAlive(context.Background())
	if _, ok := err.(*helpers.NotAuthenticatedError); !ok {
		t.Fatalf("expected NotAuthenticatedError, got %T: %v", err, err)
	}
}
