package interfaces

import "brokerage-client/src/models"

// -----------------------------------------------------------------------------
// IDataExchanger defines the interface for sharing data with external
// consumers (HTTP API and websocket push).
// -----------------------------------------------------------------------------

type IDataExchanger interface {

	// -----------------------------------------------------------------------------

	// Broadcast pushes a snapshot to all connected listeners.
	Broadcast(data *models.MLatestData)

	// -----------------------------------------------------------------------------

	// UpdateAllDatas updates the internal state without broadcasting.
	UpdateAllDatas(data *models.MLatestData)

	// -----------------------------------------------------------------------------

	// Start the server
	Start() error

	// -----------------------------------------------------------------------------

	// Stop the server gracefully
	Stop() error
}
