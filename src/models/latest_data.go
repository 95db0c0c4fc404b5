package models

// -----------------------------------------------------------------------------
// Server State Structure
// -----------------------------------------------------------------------------

// MLatestData is the snapshot the HTTP/websocket facade holds and pushes to
// connected clients after each polling round.
type MLatestData struct {
	Type      string            `json:"type"` // "INITIAL" or "UPDATE"
	Quotes    map[string]MQuote `json:"quotes"`
	Errors    map[string]string `json:"errors"`
	Timestamp int64             `json:"timestamp"`
}

// -----------------------------------------------------------------------------
// SubscribeCommand for client messages
// -----------------------------------------------------------------------------

type MSubscribeCommand struct {
	Command string   `json:"command"`
	Symbols []string `json:"symbols"`
}
