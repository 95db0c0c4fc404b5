package wire

import (
	"bytes"
	"encoding/binary"
	"math"

	"brokerage-client/src/helpers"
	"brokerage-client/src/models"
)

// -----------------------------------------------------------------------------
// Binary Price History Codec
//
// The price history endpoint answers with a big-endian binary stream instead
// of XML:
//
//   int32   symbol count
//   per symbol entry:
//     int16   symbol length, then that many ASCII bytes
//     uint8   error flag
//     flag=1: int16 message length, then that many ASCII bytes
//     flag=0: int32 bar count, then per bar
//             close, high, low, open, volume as float32
//             timestamp as int64 epoch milliseconds
//   0xFF 0xFF terminator after every entry except the last
//
// Bars arrive most recent first; the decoder stores them oldest first. A
// structural violation aborts the whole decode, nothing partial escapes.
// -----------------------------------------------------------------------------

const entryTerminator = 0xFFFF

// streamReader walks a byte slice and converts running out of bytes into a
// TruncatedStreamError instead of a panic.
type streamReader struct {
	data []byte
	pos  int
}

func (r *streamReader) take(n int) ([]byte, error) {
	if remaining := len(r.data) - r.pos; remaining < n {
		return nil, helpers.NewTruncatedStreamError(n-remaining, remaining)
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *streamReader) int16BE() (int16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return int16(binary.BigEndian.Uint16(b)), nil
}

func (r *streamReader) uint16BE() (uint16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (r *streamReader) int32BE() (int32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(b)), nil
}

func (r *streamReader) int64BE() (int64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(b)), nil
}

func (r *streamReader) float32BE() (float32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.BigEndian.Uint32(b)), nil
}

func (r *streamReader) byte() (byte, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// -----------------------------------------------------------------------------

// DecodePriceHistory decodes the full binary stream. Per-symbol service
// errors land in the result's Errors map; any framing violation aborts with
// a MalformedStreamError or TruncatedStreamError and no partial result.
func DecodePriceHistory(data []byte) (*models.MPriceHistoryResult, error) {
	r := &streamReader{data: data}

	symbolCount, err := r.int32BE()
	if err != nil {
		return nil, err
	}
	if symbolCount < 0 {
		return nil, helpers.NewMalformedStreamError("negative symbol count %d", symbolCount)
	}

	result := &models.MPriceHistoryResult{
		Symbols: make([]string, 0, symbolCount),
		Series:  make(map[string][]models.MPriceBar),
		Errors:  make(map[string]string),
	}

	for i := int32(0); i < symbolCount; i++ {
		symbol, err := r.readASCII16()
		if err != nil {
			return nil, err
		}

		errorFlag, err := r.byte()
		if err != nil {
			return nil, err
		}

		switch errorFlag {
		case 1:
			msg, err := r.readASCII16()
			if err != nil {
				return nil, err
			}
			result.Errors[symbol] = msg
		case 0:
			bars, err := r.readBars()
			if err != nil {
				return nil, err
			}
			result.Series[symbol] = bars
		default:
			return nil, helpers.NewMalformedStreamError("entry %q has error flag %d", symbol, errorFlag)
		}

		result.Symbols = append(result.Symbols, symbol)

		// Terminator separates entries; the last entry runs to end of stream.
		if i < symbolCount-1 {
			term, err := r.uint16BE()
			if err != nil {
				return nil, err
			}
			if term != entryTerminator {
				return nil, helpers.NewMalformedStreamError("entry %q not followed by terminator (got 0x%04X)", symbol, term)
			}
		}
	}

	return result, nil
}

// -----------------------------------------------------------------------------

// readASCII16 reads an int16 length prefix followed by that many ASCII bytes.
func (r *streamReader) readASCII16() (string, error) {
	n, err := r.int16BE()
	if err != nil {
		return "", err
	}
	if n < 0 {
		return "", helpers.NewMalformedStreamError("negative string length %d", n)
	}
	b, err := r.take(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// readBars reads an int32 bar count and the bars themselves, reversing the
// wire's most-recent-first order so the returned slice ascends by timestamp.
func (r *streamReader) readBars() ([]models.MPriceBar, error) {
	count, err := r.int32BE()
	if err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, helpers.NewMalformedStreamError("negative bar count %d", count)
	}

	bars := make([]models.MPriceBar, count)
	for i := int32(0); i < count; i++ {
		var bar models.MPriceBar
		if bar.Close, err = r.float32BE(); err != nil {
			return nil, err
		}
		if bar.High, err = r.float32BE(); err != nil {
			return nil, err
		}
		if bar.Low, err = r.float32BE(); err != nil {
			return nil, err
		}
		if bar.Open, err = r.float32BE(); err != nil {
			return nil, err
		}
		if bar.Volume, err = r.float32BE(); err != nil {
			return nil, err
		}
		millis, err := r.int64BE()
		if err != nil {
			return nil, err
		}
		bar.Timestamp = millis / 1000
		bars[count-1-i] = bar
	}
	return bars, nil
}

// -----------------------------------------------------------------------------

// EncodePriceHistory is the exact inverse of DecodePriceHistory: encoding a
// decoded result reproduces the original stream byte for byte.
func EncodePriceHistory(result *models.MPriceHistoryResult) ([]byte, error) {
	var buf bytes.Buffer

	write := func(v interface{}) {
		binary.Write(&buf, binary.BigEndian, v)
	}

	write(int32(len(result.Symbols)))

	for i, symbol := range result.Symbols {
		if len(symbol) > math.MaxInt16 {
			return nil, helpers.NewValidationError("symbol %q too long to encode", symbol)
		}
		write(int16(len(symbol)))
		buf.WriteString(symbol)

		if msg, ok := result.Errors[symbol]; ok {
			write(uint8(1))
			if len(msg) > math.MaxInt16 {
				return nil, helpers.NewValidationError("error message for %q too long to encode", symbol)
			}
			write(int16(len(msg)))
			buf.WriteString(msg)
		} else {
			write(uint8(0))
			bars := result.Series[symbol]
			write(int32(len(bars)))
			// Wire order is most recent first.
			for j := len(bars) - 1; j >= 0; j-- {
				bar := bars[j]
				write(bar.Close)
				write(bar.High)
				write(bar.Low)
				write(bar.Open)
				write(bar.Volume)
				write(bar.Timestamp * 1000)
			}
		}

		if i < len(result.Symbols)-1 {
			write(uint16(entryTerminator))
		}
	}

	return buf.Bytes(), nil
}
