package wire

import (
	"bytes"
	"encoding/binary"
	"testing"

	"brokerage-client/src/helpers"
	"brokerage-client/src/models"

	"github.com/google/go-cmp/cmp"
)

// streamBuilder assembles binary fixtures in wire order.
type streamBuilder struct {
	buf bytes.Buffer
}

func (b *streamBuilder) write(v interface{}) *streamBuilder {
	binary.Write(&b.buf, binary.BigEndian, v)
	return b
}

func (b *streamBuilder) str16(s string) *streamBuilder {
	b.write(int16(len(s)))
	b.buf.WriteString(s)
	return b
}

// bar appends one bar in wire field order: close, high, low, open, volume,
// then the timestamp in epoch milliseconds.
func (b *streamBuilder) bar(close, high, low, open, volume float32, unixSec int64) *streamBuilder {
	b.write(close)
	b.write(high)
	b.write(low)
	b.write(open)
	b.write(volume)
	b.write(unixSec * 1000)
	return b
}

func (b *streamBuilder) bytes() []byte {
	return b.buf.Bytes()
}

// -----------------------------------------------------------------------------

func TestDecodePriceHistory_SingleSymbol(t *testing.T) {
	// Two bars, most recent first on the wire.
	var b streamBuilder
	b.write(int32(1))
	b.str16("GOOG")
	b.write(uint8(0))
	b.write(int32(2))
	b.bar(101.5, 103.0, 99.0, 100.0, 2000000, 1700092800)
	b.bar(100.0, 102.0, 98.5, 99.5, 1500000, 1700006400)

	got, err := DecodePriceHistory(b.bytes())
	if err != nil {
		t.Fatalf("DecodePriceHistory() returned an unexpected error: %v", err)
	}

	want := &models.MPriceHistoryResult{
		Symbols: []string{"GOOG"},
		Series: map[string][]models.MPriceBar{
			"GOOG": {
				{Open: 99.5, High: 102.0, Low: 98.5, Close: 100.0, Volume: 1500000, Timestamp: 1700006400},
				{Open: 100.0, High: 103.0, Low: 99.0, Close: 101.5, Volume: 2000000, Timestamp: 1700092800},
			},
		},
		Errors: map[string]string{},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DecodePriceHistory() mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodePriceHistory_AscendingTimestamps(t *testing.T) {
	var b streamBuilder
	b.write(int32(1))
	b.str16("MSFT")
	b.write(uint8(0))
	b.write(int32(3))
	b.bar(3, 3, 3, 3, 3, 300)
	b.bar(2, 2, 2, 2, 2, 200)
	b.bar(1, 1, 1, 1, 1, 100)

	got, err := DecodePriceHistory(b.bytes())
	if err != nil {
		t.Fatalf("DecodePriceHistory() returned an unexpected error: %v", err)
	}

	bars := got.Series["MSFT"]
	for i := 1; i < len(bars); i++ {
		if bars[i].Timestamp <= bars[i-1].Timestamp {
			t.Errorf("bars not ascending at index %d: %d then %d", i, bars[i-1].Timestamp, bars[i].Timestamp)
		}
	}
}

func TestDecodePriceHistory_ErrorEntry(t *testing.T) {
	var b streamBuilder
	b.write(int32(2))
	b.str16("GOOG")
	b.write(uint8(0))
	b.write(int32(1))
	b.bar(100.0, 102.0, 98.5, 99.5, 1500000, 1700006400)
	b.write(uint16(0xFFFF))
	b.str16("BOGUS")
	b.write(uint8(1))
	b.str16("Invalid symbol")

	got, err := DecodePriceHistory(b.bytes())
	if err != nil {
		t.Fatalf("DecodePriceHistory() returned an unexpected error: %v", err)
	}

	if got.Errors["BOGUS"] != "Invalid symbol" {
		t.Errorf("expected error message for BOGUS, got %q", got.Errors["BOGUS"])
	}
	if _, ok := got.Series["BOGUS"]; ok {
		t.Error("error entry must not produce a series")
	}
	if len(got.Series["GOOG"]) != 1 {
		t.Errorf("expected 1 bar for GOOG, got %d", len(got.Series["GOOG"]))
	}
	if want := []string{"GOOG", "BOGUS"}; !cmp.Equal(want, got.Symbols) {
		t.Errorf("expected symbol order %v, got %v", want, got.Symbols)
	}
}

func TestDecodePriceHistory_BadTerminator(t *testing.T) {
	var b streamBuilder
	b.write(int32(2))
	b.str16("GOOG")
	b.write(uint8(0))
	b.write(int32(1))
	b.bar(100.0, 102.0, 98.5, 99.5, 1500000, 1700006400)
	b.write(uint16(0xABCD)) // not the terminator
	b.str16("MSFT")
	b.write(uint8(0))
	b.write(int32(0))

	got, err := DecodePriceHistory(b.bytes())
	if got != nil {
		t.Error("expected no partial result on framing violation")
	}
	if _, ok := err.(*helpers.MalformedStreamError); !ok {
		t.Fatalf("expected MalformedStreamError, got %T: %v", err, err)
	}
}

func TestDecodePriceHistory_Truncated(t *testing.T) {
	var b streamBuilder
	b.write(int32(1))
	b.str16("GOOG")
	b.write(uint8(0))
	b.write(int32(2)) // promises two bars, delivers one
	b.bar(100.0, 102.0, 98.5, 99.5, 1500000, 1700006400)

	got, err := DecodePriceHistory(b.bytes())
	if got != nil {
		t.Error("expected no partial result on truncation")
	}
	if _, ok := err.(*helpers.TruncatedStreamError); !ok {
		t.Fatalf("expected TruncatedStreamError, got %T: %v", err, err)
	}
}

func TestDecodePriceHistory_Malformed(t *testing.T) {
	cases := []struct {
		name  string
		build func() []byte
	}{
		{
			name: "negative symbol count",
			build: func() []byte {
				var b streamBuilder
				b.write(int32(-1))
				return b.bytes()
			},
		},
		{
			name: "negative bar count",
			build: func() []byte {
				var b streamBuilder
				b.write(int32(1))
				b.str16("GOOG")
				b.write(uint8(0))
				b.write(int32(-5))
				return b.bytes()
			},
		},
		{
			name: "unknown error flag",
			build: func() []byte {
				var b streamBuilder
				b.write(int32(1))
				b.str16("GOOG")
				b.write(uint8(7))
				return b.bytes()
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodePriceHistory(tc.build())
			if _, ok := err.(*helpers.MalformedStreamError); !ok {
				t.Fatalf("expected MalformedStreamError, got %T: %v", err, err)
			}
		})
	}
}

func TestEncodePriceHistory_RoundTrip(t *testing.T) {
	var b streamBuilder
	b.write(int32(3))
	b.str16("GOOG")
	b.write(uint8(0))
	b.write(int32(2))
	b.bar(101.5, 103.0, 99.0, 100.0, 2000000, 1700092800)
	b.bar(100.0, 102.0, 98.5, 99.5, 1500000, 1700006400)
	b.write(uint16(0xFFFF))
	b.str16("BOGUS")
	b.write(uint8(1))
	b.str16("Invalid symbol")
	b.write(uint16(0xFFFF))
	b.str16("EMPTY")
	b.write(uint8(0))
	b.write(int32(0))

	original := b.bytes()

	decoded, err := DecodePriceHistory(original)
	if err != nil {
		t.Fatalf("DecodePriceHistory() returned an unexpected error: %v", err)
	}

	encoded, err := EncodePriceHistory(decoded)
	if err != nil {
		t.Fatalf("EncodePriceHistory() returned an unexpected error: %v", err)
	}

	if !bytes.Equal(original, encoded) {
		t.Errorf("round trip not byte-identical:\n want %x\n  got %x", original, encoded)
	}
}

func TestDecodePriceHistory_Empty(t *testing.T) {
	var b streamBuilder
	b.write(int32(0))

	got, err := DecodePriceHistory(b.bytes())
	if err != nil {
		t.Fatalf("DecodePriceHistory() returned an unexpected error: %v", err)
	}
	if len(got.Symbols) != 0 || len(got.Series) != 0 || len(got.Errors) != 0 {
		t.Errorf("expected empty result, got %+v", got)
	}
}
