package network

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"brokerage-client/src/helpers"
	"brokerage-client/src/interfaces"
	"brokerage-client/src/logger"
	"brokerage-client/src/models"
)

// -----------------------------------------------------------------------------

// HTTPTransport carries every request to the brokerage service. It owns
// retries, proxy rotation and the User-Agent header; callers hand it a path
// and a pre-encoded query string and get the raw response body back.
type HTTPTransport struct {
	Config       *models.MConfig
	ProxyManager interfaces.IProxyManager
	Client       *http.Client
	Logger       *logger.Logger
}

// -----------------------------------------------------------------------------

func NewHTTPTransport(cfg *models.MConfig, log *logger.Logger) *HTTPTransport {
	var proxies []string
	if cfg.Network.Enabled {
		proxies = cfg.Network.Proxies
	}

	t := &HTTPTransport{
		Config:       cfg,
		ProxyManager: helpers.NewProxyManager(proxies, log),
		Logger:       log,
	}
	t.Client = t.createClient()
	return t
}

// -----------------------------------------------------------------------------

func (t *HTTPTransport) createClient() *http.Client {
	transport := &http.Transport{}

	if t.ProxyManager.HasProxies() {
		proxyStr, err := t.ProxyManager.GetCurrentProxy()
		if err == nil && proxyStr != "" {
			proxyURL, err := url.Parse(proxyStr)
			if err == nil {
				transport.Proxy = http.ProxyURL(proxyURL)
			}
		}
	}

	return &http.Client{
		Transport: transport,
		Timeout:   time.Duration(t.Config.Network.RequestTimeout) * time.Second,
	}
}

// -----------------------------------------------------------------------------

func (t *HTTPTransport) rotateProxy() {
	if !t.ProxyManager.HasProxies() {
		return
	}

	t.ProxyManager.RotateProxy()
	t.Client = t.createClient()
}

// -----------------------------------------------------------------------------

// buildURL joins the configured base URL with a path and an already-encoded
// query string. The query is appended verbatim so callers control escaping
// of individual values.
func (t *HTTPTransport) buildURL(path, rawQuery string) string {
	base := strings.TrimRight(t.Config.API.BaseURL, "/")
	if rawQuery == "" {
		return base + path
	}
	return base + path + "?" + rawQuery
}

// -----------------------------------------------------------------------------

// Get performs a GET request with retries and proxy rotation.
func (t *HTTPTransport) Get(ctx context.Context, path, rawQuery string) ([]byte, error) {
	return t.do(ctx, func() (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, t.buildURL(path, rawQuery), nil)
	})
}

// -----------------------------------------------------------------------------

// PostForm performs a POST request with a form-encoded body, with the same
// retry and rotation behavior as Get.
func (t *HTTPTransport) PostForm(ctx context.Context, path, rawQuery string, form map[string]string) ([]byte, error) {
	values := url.Values{}
	for k, v := range form {
		values.Set(k, v)
	}
	body := values.Encode()

	return t.do(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.buildURL(path, rawQuery), strings.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return req, nil
	})
}

// -----------------------------------------------------------------------------

func (t *HTTPTransport) do(ctx context.Context, build func() (*http.Request, error)) ([]byte, error) {
	maxRetries := t.Config.Network.MaxRetries
	var lastErr error

	for i := 0; i <= maxRetries; i++ {
		if i > 0 {
			select {
			case <-time.After(time.Duration(i*i) * time.Second): // Exponential backoff
			case <-ctx.Done():
				return nil, helpers.NewTransportError(ctx.Err())
			}
			t.rotateProxy()
		}

		req, err := build()
		if err != nil {
			return nil, helpers.NewTransportError(err)
		}

		// Use dynamic User-Agent
		req.Header.Set("User-Agent", t.ProxyManager.GetUserAgent())

		resp, err := t.Client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, helpers.NewTransportError(ctx.Err())
			}
			lastErr = err
			t.Logger.Info("Request failed (attempt %d/%d): %v", i+1, maxRetries+1, err)
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusForbidden {
			resp.Body.Close()
			lastErr = fmt.Errorf("blocked (status %d)", resp.StatusCode)
			t.Logger.Info("Request blocked (%d). Rotating proxy.", resp.StatusCode)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			lastErr = fmt.Errorf("bad status: %d", resp.StatusCode)
			t.Logger.Info("Bad status %d", resp.StatusCode)
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}

		return body, nil
	}

	return nil, helpers.NewTransportError(fmt.Errorf("max retries exceeded: %v", lastErr))
}
