package cart

import (
	"context"
	"encoding/json"
	"sync"
)

// SchemaVersion tags persisted carts. A stored cart whose version does
// not match is discarded on load, never surfaced as an error.
const SchemaVersion = 1

// Storage persists cart snapshots keyed by owner. Load on a missing,
// unparseable, or version-mismatched record returns an empty state and
// a nil error.
type Storage interface {
	Load(ctx context.Context, ownerID string) (State, error)
	Save(ctx context.Context, ownerID string, state State) error
	Clear(ctx context.Context, ownerID string) error
}

type envelope struct {
	Version int    `json:"version"`
	Items   []Item `json:"items"`
}

func encodeState(state State) ([]byte, error) {
	return json.Marshal(envelope{Version: SchemaVersion, Items: state.Items})
}

func decodeState(raw []byte) State {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return State{}
	}
	if env.Version != SchemaVersion {
		return State{}
	}
	return State{Items: env.Items}
}

// MemoryStorage keeps serialized carts in process memory. Used in tests
// and as a fallback when no Redis is configured.
type MemoryStorage struct {
	mu    sync.RWMutex
	carts map[string][]byte
}

// NewMemoryStorage builds an empty in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{carts: map[string][]byte{}}
}

func (m *MemoryStorage) Load(_ context.Context, ownerID string) (State, error) {
	m.mu.RLock()
	raw, ok := m.carts[ownerID]
	m.mu.RUnlock()
	if !ok {
		return State{}, nil
	}
	return decodeState(raw), nil
}

func (m *MemoryStorage) Save(_ context.Context, ownerID string, state State) error {
	raw, err := encodeState(state)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.carts[ownerID] = raw
	m.mu.Unlock()
	return nil
}

func (m *MemoryStorage) Clear(_ context.Context, ownerID string) error {
	m.mu.Lock()
	delete(m.carts, ownerID)
	m.mu.Unlock()
	return nil
}
