package credential

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/99designs/keyring"
)

const tokenKey = "auth_token"

// Store persists the session's bearer token.
type Store interface {
	Get() (string, bool)
	Set(token string) error
	Clear() error
}

type Config struct {
	ServiceName string
	Backend     string
	Dir         string
	Passphrase  string
}

// Keyring is a Store backed by a keyring. The token is read once when the
// keyring is opened and served from memory afterwards.
type Keyring struct {
	ring keyring.Keyring

	mu    sync.RWMutex
	token string
}

func OpenKeyring(cfg Config) (*Keyring, error) {
	dir, err := expandHome(cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("resolving credentials dir: %w", err)
	}

	kcfg := keyring.Config{
		ServiceName:      cfg.ServiceName,
		FileDir:          dir,
		FilePasswordFunc: keyring.FixedStringPrompt(cfg.Passphrase),
	}

	if cfg.Backend != "" {
		kcfg.AllowedBackends = []keyring.BackendType{keyring.BackendType(cfg.Backend)}
	}

	ring, err := keyring.Open(kcfg)
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}

	k := &Keyring{ring: ring}

	item, err := ring.Get(tokenKey)
	switch {
	case err == nil:
		k.token = string(item.Data)
	case errors.Is(err, keyring.ErrKeyNotFound), errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("reading stored token: %w", err)
	}

	return k, nil
}

func (k *Keyring) Get() (string, bool) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	return k.token, k.token != ""
}

func (k *Keyring) Set(token string) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if err := k.ring.Set(keyring.Item{
		Key:   tokenKey,
		Data:  []byte(token),
		Label: "PeachTree session token",
	}); err != nil {
		return fmt.Errorf("storing token: %w", err)
	}

	k.token = token

	return nil
}

func (k *Keyring) Clear() error {
	k.mu.Lock()
	defer k.mu.Unlock()

	k.token = ""

	err := k.ring.Remove(tokenKey)
	if err != nil && !errors.Is(err, keyring.ErrKeyNotFound) && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing token: %w", err)
	}

	return nil
}

// Memory is a non-persistent Store.
type Memory struct {
	mu    sync.RWMutex
	token string
}

func NewMemory(token string) *Memory {
	return &Memory{token: token}
}

func (m *Memory) Get() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.token, m.token != ""
}

func (m *Memory) Set(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.token = token

	return nil
}

func (m *Memory) Clear() error {
	return m.Set("")
}

func expandHome(dir string) (string, error) {
	if dir != "~" && !strings.HasPrefix(dir, "~/") {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, strings.TrimPrefix(dir, "~")), nil
}
