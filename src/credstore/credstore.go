package credstore

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// -----------------------------------------------------------------------------
// FileStore keeps credentials in a YAML file readable only by the owner.
// The protocol layer never touches disk; it only sees what Load returns.
// -----------------------------------------------------------------------------

type credentialsFile struct {
	UserName string `yaml:"username"`
	Password string `yaml:"password"`
}

type FileStore struct {
	Path string
}

// -----------------------------------------------------------------------------

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// -----------------------------------------------------------------------------

// Load returns the remembered credentials. A missing file is not an error;
// it just means nothing is remembered yet.
func (s *FileStore) Load() (string, string, error) {
	data, err := os.ReadFile(s.Path)
	if os.IsNotExist(err) {
		return "", "", nil
	}
	if err != nil {
		return "", "", fmt.Errorf("failed to read credentials file '%s': %w", s.Path, err)
	}

	var creds credentialsFile
	if err := yaml.Unmarshal(data, &creds); err != nil {
		return "", "", fmt.Errorf("failed to parse credentials from YAML: %w", err)
	}
	return creds.UserName, creds.Password, nil
}

// -----------------------------------------------------------------------------

func (s *FileStore) Save(userName, password string) error {
	data, err := yaml.Marshal(credentialsFile{UserName: userName, Password: password})
	if err != nil {
		return fmt.Errorf("failed to marshal credentials to YAML: %w", err)
	}

	if err := os.WriteFile(s.Path, data, 0600); err != nil {
		return fmt.Errorf("failed to write credentials file '%s': %w", s.Path, err)
	}
	return nil
}

// -----------------------------------------------------------------------------

func (s *FileStore) Clear() error {
	err := os.Remove(s.Path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
