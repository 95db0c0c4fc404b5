package wire

import (
	"testing"

	"brokerage-client/src/helpers"
	"brokerage-client/src/models"

	"github.com/google/go-cmp/cmp"
)

func TestDecodeWatchlists(t *testing.T) {
	data := []byte(`<amtd><result>OK</result><watchlist-result>
		<watchlist>
			<name>Tech</name>
			<id>10001</id>
			<symbol-list>
				<watched-symbol>
					<quantity>100</quantity>
					<security>
						<symbol>AAPL</symbol>
						<symbol-with-type-prefix>AAPL</symbol-with-type-prefix>
						<description>Apple Inc</description>
						<asset-type>E</asset-type>
					</security>
					<position-type>LONG</position-type>
					<average-price>425.50</average-price>
					<commission>9.99</commission>
					<open-date>2013-01-15</open-date>
				</watched-symbol>
			</symbol-list>
		</watchlist>
		<watchlist>
			<name>Empty</name>
			<id>10002</id>
			<symbol-list/>
		</watchlist>
	</watchlist-result></amtd>`)

	got, err := DecodeWatchlists(data)
	if err != nil {
		t.Fatalf("DecodeWatchlists() returned an unexpected error: %v", err)
	}

	want := []models.MWatchlist{
		{
			ID:   "10001",
			Name: "Tech",
			Symbols: []models.MWatchedSymbol{
				{
					Quantity:     100,
					PositionType: "LONG",
					AveragePrice: 425.50,
					Commission:   9.99,
					OpenDate:     "2013-01-15",
					Security: models.MWatchedSecurity{
						Symbol:               "AAPL",
						SymbolWithTypePrefix: "AAPL",
						Description:          "Apple Inc",
						AssetType:            models.AssetTypeStock,
					},
				},
			},
		},
		{ID: "10002", Name: "Empty", Symbols: []models.MWatchedSymbol{}},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DecodeWatchlists() mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeCreatedWatchlist(t *testing.T) {
	data := []byte(`<amtd><result>OK</result><created-watchlist>
		<watchlist>
			<name>New List</name>
			<id>20001</id>
			<symbol-list>
				<watched-symbol>
					<quantity>0</quantity>
					<security>
						<symbol>GOOG</symbol>
						<symbol-with-type-prefix>GOOG</symbol-with-type-prefix>
						<description>Google Inc</description>
						<asset-type>E</asset-type>
					</security>
					<position-type>LONG</position-type>
					<average-price>0</average-price>
					<commission>0</commission>
				</watched-symbol>
			</symbol-list>
		</watchlist>
	</created-watchlist></amtd>`)

	got, err := DecodeCreatedWatchlist(data)
	if err != nil {
		t.Fatalf("DecodeCreatedWatchlist() returned an unexpected error: %v", err)
	}
	if got.ID != "20001" || got.Name != "New List" {
		t.Errorf("unexpected watchlist identity: %s %q", got.ID, got.Name)
	}
	if len(got.Symbols) != 1 || got.Symbols[0].Security.Symbol != "GOOG" {
		t.Errorf("unexpected symbols: %+v", got.Symbols)
	}
}

func TestDecodeSymbolLookup(t *testing.T) {
	data := []byte(`<amtd><result>OK</result><symbol-lookup-result>
		<search-string>bank</search-string>
		<symbol-result><symbol>BAC</symbol><description>Bank of America Corp</description></symbol-result>
		<symbol-result><symbol>BK</symbol><description>Bank of New York Mellon Corp</description></symbol-result>
	</symbol-lookup-result></amtd>`)

	got, err := DecodeSymbolLookup(data)
	if err != nil {
		t.Fatalf("DecodeSymbolLookup() returned an unexpected error: %v", err)
	}

	want := []models.MSymbolMatch{
		{Symbol: "BAC", Description: "Bank of America Corp"},
		{Symbol: "BK", Description: "Bank of New York Mellon Corp"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DecodeSymbolLookup() mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeOrderCancel(t *testing.T) {
	cases := []struct {
		name    string
		data    string
		wantErr bool
	}{
		{
			name:    "success",
			data:    `<amtd><result>OK</result><order><error></error></order></amtd>`,
			wantErr: false,
		},
		{
			name:    "envelope failure",
			data:    `<amtd><result>FAIL</result><error>bad session</error></amtd>`,
			wantErr: true,
		},
		{
			name:    "order-level error despite OK envelope",
			data:    `<amtd><result>OK</result><order><error>order already filled</error></order></amtd>`,
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := DecodeOrderCancel([]byte(tc.data))
			if tc.wantErr && err == nil {
				t.Error("expected an error")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tc.wantErr {
				if _, ok := err.(*helpers.EnvelopeError); !ok {
					t.Errorf("expected EnvelopeError, got %T", err)
				}
			}
		})
	}
}

func TestDecodeEnvelope(t *testing.T) {
	result, errMsg, err := DecodeEnvelope([]byte(`<amtd><result>LoggedOut</result></amtd>`))
	if err != nil {
		t.Fatalf("DecodeEnvelope() returned an unexpected error: %v", err)
	}
	if result != ResultLoggedOut || errMsg != "" {
		t.Errorf("unexpected envelope: result=%q error=%q", result, errMsg)
	}

	if _, _, err := DecodeEnvelope([]byte(`this is not xml`)); err == nil {
		t.Error("expected an error for unparseable input")
	}
}
