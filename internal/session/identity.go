package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Identity is the non-sensitive display data persisted between runs so the
// CLI can label its output before the first profile fetch. The access
// credential is never written here; losing the process loses the token.
type Identity struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role,omitempty"`
}

// DefaultIdentityPath resolves the identity file under XDG_CONFIG_HOME,
// falling back to ~/.config.
func DefaultIdentityPath() string {
	xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfigHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		xdgConfigHome = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(xdgConfigHome, "vasfood", "identity.json")
}

// LoadIdentity reads the persisted identity; a missing file is not an error
func LoadIdentity(path string) (*Identity, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read identity file: %w", err)
	}

	var id Identity
	if err := json.Unmarshal(b, &id); err != nil {
		return nil, fmt.Errorf("failed to parse identity file: %w", err)
	}
	return &id, nil
}

// SaveIdentity writes the identity file, creating parent directories
func SaveIdentity(path string, id *Identity) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(id, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal identity: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write identity file: %w", err)
	}
	return nil
}

// ClearIdentity removes the identity file; a missing file is fine
func ClearIdentity(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove identity file: %w", err)
	}
	return nil
}
