package credential

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/99designs/keyring"
)

const serviceName = "notifywatch"

// EnvSession names the environment variable that overrides the stored
// session cookie.
const EnvSession = "NOTIFYWATCH_SESSION"

// ErrNoSession is returned when neither the environment nor the keyring
// holds a session cookie for the portal.
var ErrNoSession = errors.New("no session cookie stored, run with --login")

// Sessions stores portal session cookies keyed by portal host.
type Sessions struct {
	ring keyring.Keyring
}

// Open returns Sessions backed by the system keyring, falling back to an
// encrypted file under dir.
func Open(dir string) (*Sessions, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  filepath.Join(dir, "credentials"),
		FilePasswordFunc:         keyring.FixedStringPrompt("notifywatch-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return &Sessions{ring: ring}, nil
}

// NewSessions wraps an already opened keyring.
func NewSessions(ring keyring.Keyring) *Sessions {
	return &Sessions{ring: ring}
}

// SessionKey returns the keyring key for the portal at baseURL.
func SessionKey(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" {
		return "session:" + baseURL
	}
	return "session:" + u.Host
}

// Lookup returns the session cookie for baseURL. NOTIFYWATCH_SESSION wins
// over the keyring.
func (s *Sessions) Lookup(baseURL string) (string, error) {
	if v := os.Getenv(EnvSession); v != "" {
		return v, nil
	}

	item, err := s.ring.Get(SessionKey(baseURL))
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return "", ErrNoSession
	}
	if err != nil {
		return "", fmt.Errorf("getting session for %s: %w", baseURL, err)
	}
	if len(item.Data) == 0 {
		return "", ErrNoSession
	}

	return string(item.Data), nil
}

// Save stores the session cookie for baseURL.
func (s *Sessions) Save(baseURL, cookie string) error {
	err := s.ring.Set(keyring.Item{
		Key:   SessionKey(baseURL),
		Data:  []byte(cookie),
		Label: "notifywatch session",
	})
	if err != nil {
		return fmt.Errorf("setting session for %s: %w", baseURL, err)
	}
	return nil
}

// Forget removes the stored session for baseURL. A missing entry is not an
// error.
func (s *Sessions) Forget(baseURL string) error {
	err := s.ring.Remove(SessionKey(baseURL))
	if err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return fmt.Errorf("deleting session for %s: %w", baseURL, err)
	}
	return nil
}
