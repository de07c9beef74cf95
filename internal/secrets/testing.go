package secrets

import "github.com/99designs/keyring"

// MockRing is an in-memory test double for the keyring.
type MockRing struct {
	items map[string]keyring.Item
}

// NewMockRing creates an empty mock ring.
// Exported for use in tests outside the secrets package.
func NewMockRing() *MockRing {
	return &MockRing{items: make(map[string]keyring.Item)}
}

// Get retrieves an item from the mock ring.
func (m *MockRing) Get(key string) (keyring.Item, error) {
	item, ok := m.items[key]
	if !ok {
		return keyring.Item{}, keyring.ErrKeyNotFound
	}
	return item, nil
}

// Set stores an item in the mock ring.
func (m *MockRing) Set(item keyring.Item) error {
	m.items[item.Key] = item
	return nil
}

// Remove deletes an item from the mock ring.
func (m *MockRing) Remove(key string) error {
	if _, ok := m.items[key]; !ok {
		return keyring.ErrKeyNotFound
	}
	delete(m.items, key)
	return nil
}

// SetSecret seeds a secret for the (service, account) pair.
func (m *MockRing) SetSecret(service, account, secret string) {
	key := itemKey(service, account)
	m.items[key] = keyring.Item{Key: key, Data: []byte(secret)}
}

// SetOpenFunc allows tests to inject a mock ring constructor.
// Passing nil restores the OS keyring constructor.
func SetOpenFunc(fn func() (Ring, error)) {
	if fn == nil {
		openRing = openOSRing
	} else {
		openRing = fn
	}
}

// OpenMock returns a store backed by the given mock ring, bypassing Open.
func OpenMock(ring *MockRing) Store {
	return &keyringStore{ring: ring}
}
