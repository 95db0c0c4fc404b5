package wire

import (
	"encoding/xml"
	"strconv"

	"brokerage-client/src/helpers"
	"brokerage-client/src/models"
)

// -----------------------------------------------------------------------------
// XML Envelope
// -----------------------------------------------------------------------------

// Result tokens the service places in the envelope of every XML response.
const (
	ResultOK        = "OK"
	ResultFail      = "FAIL"
	ResultLoggedOut = "LoggedOut"
)

// envelope mirrors the outer shape of every XML response: a root element
// carrying a result token and, on failure, a sibling error message.
type envelope struct {
	Result string `xml:"result"`
	Error  string `xml:"error"`
}

// -----------------------------------------------------------------------------

// DecodeEnvelope extracts the result token and error message from a raw XML
// response body.
func DecodeEnvelope(data []byte) (result, errMsg string, err error) {
	var env envelope
	if err := xml.Unmarshal(data, &env); err != nil {
		return "", "", helpers.NewEnvelopeError("", "unparseable response: "+err.Error())
	}
	return env.Result, env.Error, nil
}

// -----------------------------------------------------------------------------

// CheckOK fails with an EnvelopeError unless the envelope carries the OK
// result token.
func CheckOK(data []byte) error {
	result, errMsg, err := DecodeEnvelope(data)
	if err != nil {
		return err
	}
	if result != ResultOK {
		return helpers.NewEnvelopeError(result, errMsg)
	}
	return nil
}

// -----------------------------------------------------------------------------
// Field Conversion
// -----------------------------------------------------------------------------

// fieldSet converts the text content of XML elements into typed values,
// remembering the first failure. Missing elements (empty text) decode to the
// zero value; only a present, unparseable token is an error.
type fieldSet struct {
	err *helpers.RecordDecodeError
}

func (f *fieldSet) fail(field, value string, cause error) {
	if f.err == nil {
		f.err = helpers.NewRecordDecodeError(field, value, cause)
	}
}

func (f *fieldSet) float32(field, value string) float32 {
	if value == "" {
		return 0
	}
	v, err := strconv.ParseFloat(value, 32)
	if err != nil {
		f.fail(field, value, err)
		return 0
	}
	return float32(v)
}

func (f *fieldSet) float64(field, value string) float64 {
	if value == "" {
		return 0
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		f.fail(field, value, err)
		return 0
	}
	return v
}

func (f *fieldSet) int(field, value string) int {
	if value == "" {
		return 0
	}
	v, err := strconv.Atoi(value)
	if err != nil {
		f.fail(field, value, err)
		return 0
	}
	return v
}

func (f *fieldSet) int64(field, value string) int64 {
	if value == "" {
		return 0
	}
	v, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		f.fail(field, value, err)
		return 0
	}
	return v
}

// bool accepts exactly the literal tokens "true" and "false".
func (f *fieldSet) bool(field, value string) bool {
	switch value {
	case "true":
		return true
	case "false", "":
		return false
	default:
		f.fail(field, value, nil)
		return false
	}
}

// -----------------------------------------------------------------------------
// Enumeration Tables
//
// Every enum-like token on the wire maps through one of these tables with a
// defined fallback, instead of ad hoc switches at each call site.
// -----------------------------------------------------------------------------

var optionTradingTable = map[string]models.OptionTradingType{
	"long":    models.OptionTradingLong,
	"covered": models.OptionTradingCovered,
	"spread":  models.OptionTradingSpread,
	"full":    models.OptionTradingFull,
}

func optionTradingFromWire(value string) models.OptionTradingType {
	if t, ok := optionTradingTable[value]; ok {
		return t
	}
	return models.OptionTradingNone
}

var exchangeStatusTable = map[string]models.ExchangeStatus{
	"non-professional": models.ExchangeStatusNonProfessional,
	"professional":     models.ExchangeStatusProfessional,
}

func exchangeStatusFromWire(value string) models.ExchangeStatus {
	if s, ok := exchangeStatusTable[value]; ok {
		return s
	}
	return models.ExchangeStatusUnknown
}

// realtimeFromWire maps a per-market quote entitlement token; every token
// other than "realtime" means delayed.
func realtimeFromWire(value string) bool {
	return value == "realtime"
}
