package server

import (
	"strconv"
	"strings"

	"brokerage-client/src/models"
)

// -----------------------------------------------------------------------------

// filterQuotes keeps only the listed symbols. An empty list keeps everything.
func filterQuotes(quotes map[string]models.MQuote, symbols []string) map[string]models.MQuote {
	if len(symbols) == 0 {
		return quotes
	}
	filtered := make(map[string]models.MQuote, len(symbols))
	for _, sym := range symbols {
		sym = strings.TrimSpace(sym)
		if q, ok := quotes[sym]; ok {
			filtered[sym] = q
		}
	}
	return filtered
}

// -----------------------------------------------------------------------------

func filterErrors(errors map[string]string, symbols []string) map[string]string {
	if len(symbols) == 0 {
		return errors
	}
	filtered := make(map[string]string, len(symbols))
	for _, sym := range symbols {
		sym = strings.TrimSpace(sym)
		if msg, ok := errors[sym]; ok {
			filtered[sym] = msg
		}
	}
	return filtered
}

// -----------------------------------------------------------------------------

func parseUnixParam(value string, fallback int64) int64 {
	if value == "" {
		return fallback
	}
	v, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fallback
	}
	return v
}
