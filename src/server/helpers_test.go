package server

import (
	"testing"

	"brokerage-client/src/models"

	"github.com/google/go-cmp/cmp"
)

func TestFilterQuotes(t *testing.T) {
	quotes := map[string]models.MQuote{
		"AAPL": models.MStockQuote{Symbol: "AAPL", Last: 450.10},
		"GOOG": models.MStockQuote{Symbol: "GOOG", Last: 871.22},
	}

	got := filterQuotes(quotes, []string{" AAPL ", "MSFT"})
	want := map[string]models.MQuote{
		"AAPL": models.MStockQuote{Symbol: "AAPL", Last: 450.10},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("filterQuotes() mismatch (-want +got):\n%s", diff)
	}

	// An empty subscription keeps everything.
	if got := filterQuotes(quotes, nil); len(got) != 2 {
		t.Errorf("expected all quotes without a filter, got %d", len(got))
	}
}

func TestFilterErrors(t *testing.T) {
	errors := map[string]string{
		"NOPE":  "Symbol not found",
		"WEIRD": "unrecognized asset type",
	}

	got := filterErrors(errors, []string{"NOPE"})
	want := map[string]string{"NOPE": "Symbol not found"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("filterErrors() mismatch (-want +got):\n%s", diff)
	}

	if got := filterErrors(errors, nil); len(got) != 2 {
		t.Errorf("expected all errors without a filter, got %d", len(got))
	}
}

func TestParseUnixParam(t *testing.T) {
	if got := parseUnixParam("1370390000", 0); got != 1370390000 {
		t.Errorf("expected 1370390000, got %d", got)
	}
	if got := parseUnixParam("", 42); got != 42 {
		t.Errorf("expected fallback 42, got %d", got)
	}
	if got := parseUnixParam("not-a-number", 42); got != 42 {
		t.Errorf("expected fallback 42 for bad input, got %d", got)
	}
}
