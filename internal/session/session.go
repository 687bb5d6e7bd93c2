// Package session persists the shopper's store id and cart between CLI runs.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"storefront/internal/domain"
)

// ErrInvalidQuantity is returned when a cart entry has a non-positive quantity.
var ErrInvalidQuantity = errors.New("quantity must be positive")

type state struct {
	StoreID string            `json:"storeID"`
	Cart    []domain.CartItem `json:"cart"`
}

// File is a JSON-backed session. A missing file is an empty session.
type File struct {
	path string

	mu    sync.Mutex
	state state
}

// Load reads the session at path.
func Load(path string) (*File, error) {
	f := &File{path: path}
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return f, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	if len(raw) == 0 {
		return f, nil
	}
	if err := json.Unmarshal(raw, &f.state); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", path, err)
	}
	return f, nil
}

// DefaultPath is the session location used when none is configured.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".storefront-session.json"
	}
	return filepath.Join(dir, "storefront", "session.json")
}

// Save writes the session atomically.
func (f *File) Save() error {
	f.mu.Lock()
	raw, err := json.MarshalIndent(f.state, "", "  ")
	f.mu.Unlock()
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if dir := filepath.Dir(f.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create session dir: %w", err)
		}
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return os.Rename(tmp, f.path)
}

func (f *File) StoreID() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.StoreID
}

// SetStoreID selects the active store and persists it.
func (f *File) SetStoreID(id string) error {
	f.mu.Lock()
	f.state.StoreID = id
	f.mu.Unlock()
	return f.Save()
}

// AddToCart appends item, merging quantities with an entry of the same title
// and price.
func (f *File) AddToCart(item domain.CartItem) error {
	if item.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	f.mu.Lock()
	merged := false
	for i := range f.state.Cart {
		existing := &f.state.Cart[i]
		if existing.Title == item.Title && existing.Price == item.Price {
			existing.Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		f.state.Cart = append(f.state.Cart, item)
	}
	f.mu.Unlock()
	return f.Save()
}

// Cart returns a copy of the persisted cart.
func (f *File) Cart() ([]domain.CartItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.CartItem(nil), f.state.Cart...), nil
}

func (f *File) ClearCart() error {
	f.mu.Lock()
	f.state.Cart = nil
	f.mu.Unlock()
	return f.Save()
}
