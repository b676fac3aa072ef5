package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Lixing-Zhang/foodie-express/internal/storage"
)

var (
	ErrMalformedSnapshot = errors.New("malformed cart snapshot")
)

// EncodeSnapshot serializes lines as a JSON array
func EncodeSnapshot(items []LineItem) ([]byte, error) {
	if items == nil {
		items = []LineItem{}
	}
	return json.Marshal(items)
}

// DecodeSnapshot parses a snapshot written by EncodeSnapshot. A snapshot that
// cannot be decoded, or whose lines break the ledger invariants (quantity
// below one, empty or duplicate product IDs), is rejected with
// ErrMalformedSnapshot.
func DecodeSnapshot(data []byte) ([]LineItem, error) {
	var items []LineItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}

	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if item.Product.ID == "" {
			return nil, fmt.Errorf("%w: line without product id", ErrMalformedSnapshot)
		}
		if item.Quantity < 1 {
			return nil, fmt.Errorf("%w: product %s has quantity %d", ErrMalformedSnapshot, item.Product.ID, item.Quantity)
		}
		if item.Product.Price.IsNegative() {
			return nil, fmt.Errorf("%w: product %s has a negative price", ErrMalformedSnapshot, item.Product.ID)
		}
		if seen[item.Product.ID] {
			return nil, fmt.Errorf("%w: duplicate product %s", ErrMalformedSnapshot, item.Product.ID)
		}
		seen[item.Product.ID] = true
	}

	return items, nil
}

func (l *Ledger) load(ctx context.Context) []LineItem {
	if l.store == nil {
		return nil
	}

	data, err := l.store.Load(ctx, l.key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			l.log.Warn("failed to load cart snapshot, starting empty", "key", l.key, "error", err)
		}
		return nil
	}

	items, err := DecodeSnapshot(data)
	if err != nil {
		l.log.Warn("discarding cart snapshot", "key", l.key, "error", err)
		return nil
	}

	l.log.Debug("cart rehydrated", "key", l.key, "lines", len(items))
	return items
}

// save writes the current lines. Failures are logged, never returned.
func (l *Ledger) save(ctx context.Context) {
	if l.store == nil {
		return
	}

	data, err := EncodeSnapshot(l.items)
	if err != nil {
		l.log.Error("failed to encode cart snapshot", "key", l.key, "error", err)
		return
	}

	if err := l.store.Save(ctx, l.key, data); err != nil {
		l.log.Error("failed to save cart snapshot", "key", l.key, "error", err)
	}
}
