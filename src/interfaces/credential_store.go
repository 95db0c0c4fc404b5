package interfaces

// -----------------------------------------------------------------------------
// ICredentialStore supplies previously remembered credentials and accepts
// updated ones. Implementations own the at-rest protection; the protocol
// layer only ever sees plaintext at call time and retains nothing.
// -----------------------------------------------------------------------------

type ICredentialStore interface {

	// -----------------------------------------------------------------------------

	// Load returns the remembered user name and password. A store with
	// nothing remembered returns empty strings and no error.
	Load() (userName, password string, err error)

	// -----------------------------------------------------------------------------

	// Save remembers the credentials for the next session.
	Save(userName, password string) error

	// -----------------------------------------------------------------------------

	// Clear forgets any remembered credentials.
	Clear() error
}
