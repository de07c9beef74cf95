// Package secrets provides access to the OS secret store for credential lookups.
//
// Secrets are stored in the system keyring (macOS Keychain, Windows Credential
// Manager, Linux Secret Service) via github.com/99designs/keyring, keyed by a
// (service, account) pair to match how tools like secret-tool and the macOS
// `security` command address generic passwords. A file-based keyring is used as
// a fallback for headless environments.
package secrets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/99designs/keyring"
)

const (
	// ServiceName is the keyring service name for mcp-credhook's own storage.
	ServiceName = "mcp-credhook"
	// KeyringPasswordEnvVarName sets the file keyring passphrase for
	// non-interactive setups.
	KeyringPasswordEnvVarName = "MCP_CREDHOOK_KEYRING_PASSWORD"
	// CredentialsDirEnvVarName controls the file keyring root directory.
	// Fallback keyring files are stored under: <dir>/mcp-credhook/keyring
	CredentialsDirEnvVarName = "MCP_CREDHOOK_CREDENTIALS_DIR"
	// DBUSSessionAddressEnvVarName is used to detect Linux headless mode.
	DBUSSessionAddressEnvVarName = "DBUS_SESSION_BUS_ADDRESS"
)

// ErrNotFound is returned by Store.Get when no secret exists for the
// (service, account) pair.
var ErrNotFound = errors.New("secret not found")

// Store reads and writes secrets addressed by a (service, account) pair.
type Store interface {
	// Get returns the secret for the pair, or ErrNotFound.
	Get(service, account string) (string, error)
	// Set stores the secret under the pair. Label is a human-readable
	// description shown by keychain UIs.
	Set(service, account, label, secret string) error
	// Delete removes the secret for the pair. Returns ErrNotFound if no
	// secret is stored.
	Delete(service, account string) error
}

// Ring is the subset of keyring.Keyring the store needs.
// It exists so tests can substitute an in-memory ring.
type Ring interface {
	Get(key string) (keyring.Item, error)
	Set(item keyring.Item) error
	Remove(key string) error
}

type keyringStore struct {
	ring Ring
}

func keyringFileDir() string {
	if dir := strings.TrimSpace(os.Getenv(CredentialsDirEnvVarName)); dir != "" {
		return filepath.Join(dir, ServiceName, "keyring")
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = os.Getenv("HOME")
	}

	configDir = strings.TrimSpace(configDir)
	if configDir == "" {
		return string(os.PathSeparator) + filepath.Join(ServiceName, "keyring")
	}
	return filepath.Join(configDir, ServiceName, "keyring")
}

func keyringFilePassword() string {
	if password := strings.TrimSpace(os.Getenv(KeyringPasswordEnvVarName)); password != "" {
		return password
	}
	return ServiceName
}

func shouldForceFileBackend(goos string, dbusAddr string) bool {
	return goos == "linux" && strings.TrimSpace(dbusAddr) == ""
}

func openOSRing() (Ring, error) {
	cfg := keyring.Config{
		ServiceName: ServiceName,
		// macOS Keychain settings
		KeychainTrustApplication:       true,
		KeychainSynchronizable:         false,
		KeychainAccessibleWhenUnlocked: true,
		// File-based fallback (for environments without GUI keyring)
		FileDir:          keyringFileDir(),
		FilePasswordFunc: func(_ string) (string, error) { return keyringFilePassword(), nil },
	}

	if shouldForceFileBackend(runtime.GOOS, os.Getenv(DBUSSessionAddressEnvVarName)) {
		cfg.AllowedBackends = []keyring.BackendType{keyring.FileBackend}
	}

	return keyring.Open(cfg)
}

// openRing is the ring constructor used by Open.
// Can be overridden for testing using SetOpenFunc (in testing.go).
var openRing func() (Ring, error) = openOSRing

// Open constructs the secret store backed by the OS keyring.
// This is the capability check: if it fails, no secret operations are possible
// and callers should report a fatal condition before touching any files.
func Open() (Store, error) {
	ring, err := openRing()
	if err != nil {
		return nil, fmt.Errorf("failed to open secret store: %w", err)
	}
	return &keyringStore{ring: ring}, nil
}

// itemKey composes the keyring item key from the (service, account) pair.
func itemKey(service, account string) string {
	return service + "/" + account
}

func (s *keyringStore) Get(service, account string) (string, error) {
	item, err := s.ring.Get(itemKey(service, account))
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	if len(item.Data) == 0 {
		return "", ErrNotFound
	}
	return string(item.Data), nil
}

func (s *keyringStore) Set(service, account, label, secret string) error {
	if secret == "" {
		return fmt.Errorf("secret cannot be empty")
	}
	err := s.ring.Set(keyring.Item{
		Key:   itemKey(service, account),
		Label: label,
		Data:  []byte(secret),
	})
	if err != nil {
		return fmt.Errorf("failed to store secret in keyring: %w", err)
	}
	return nil
}

func (s *keyringStore) Delete(service, account string) error {
	err := s.ring.Remove(itemKey(service, account))
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete secret from keyring: %w", err)
	}
	return nil
}
