package cart

import (
	"context"
	"encoding/json"
	"testing"
)

func TestMemoryStorageRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	storage := NewMemoryStorage()

	state, _ := AddItem(State{}, testProduct("p1", 2500, 5), 2)
	if err := storage.Save(ctx, "user-1", state); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := storage.Load(ctx, "user-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded.Items) != 1 || loaded.Items[0].Quantity != 2 {
		t.Fatalf("unexpected loaded state: %+v", loaded)
	}
}

func TestMemoryStorageLoadMissingOwnerIsEmpty(t *testing.T) {
	t.Parallel()

	loaded, err := NewMemoryStorage().Load(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded.Items) != 0 {
		t.Fatalf("expected empty state, got %+v", loaded)
	}
}

func TestDecodeStateVersionMismatchResetsToEmpty(t *testing.T) {
	t.Parallel()

	raw, err := json.Marshal(envelope{Version: SchemaVersion + 1, Items: []Item{
		{Product: testProduct("p1", 2500, 5), Quantity: 2},
	}})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	if state := decodeState(raw); len(state.Items) != 0 {
		t.Fatalf("expected version mismatch to reset, got %+v", state)
	}
}

func TestDecodeStateGarbageResetsToEmpty(t *testing.T) {
	t.Parallel()

	if state := decodeState([]byte("{not json")); len(state.Items) != 0 {
		t.Fatalf("expected parse failure to reset, got %+v", state)
	}
}

func TestMemoryStorageClear(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	storage := NewMemoryStorage()

	state, _ := AddItem(State{}, testProduct("p1", 2500, 5), 1)
	if err := storage.Save(ctx, "user-1", state); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := storage.Clear(ctx, "user-1"); err != nil {
		t.Fatalf("clear: %v", err)
	}

	loaded, err := storage.Load(ctx, "user-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded.Items) != 0 {
		t.Fatalf("expected empty state after clear, got %+v", loaded)
	}
}
