// Package cart implements the cart ledger: the per-session record of selected
// menu items and quantities, with derived totals and snapshot persistence.
package cart

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/Lixing-Zhang/foodie-express/internal/models"
)

// SnapshotStore is the key-value store a ledger persists itself to
type SnapshotStore interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}

// LineItem is one (product, quantity, note) entry in the ledger.
// An empty Note means no note was given.
type LineItem struct {
	Product  models.MenuItem `json:"menuItem"`
	Quantity int             `json:"quantity"`
	Note     string          `json:"specialInstructions,omitempty"`
}

// Subtotal returns quantity × unit price for the line
func (l LineItem) Subtotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Totals are the values derived from the ledger contents
type Totals struct {
	Amount    decimal.Decimal `json:"totalAmount"`
	ItemCount int             `json:"totalItems"`
}

// Ledger holds the line items of one cart.
//
// Lines are unique by product ID and every line has a quantity of at least
// one. Insertion order is kept for display only.
type Ledger struct {
	mu        sync.Mutex
	key       string
	items     []LineItem
	store     SnapshotStore
	log       *slog.Logger
	observers map[int]func(Totals)
	nextObs   int
}

// Open creates a ledger persisted under key and rehydrates it from store.
// A missing or malformed snapshot yields an empty ledger.
func Open(ctx context.Context, key string, store SnapshotStore, log *slog.Logger) *Ledger {
	l := &Ledger{
		key:       key,
		store:     store,
		log:       log,
		observers: make(map[int]func(Totals)),
	}
	l.items = l.load(ctx)
	return l
}

// Key returns the snapshot key the ledger is persisted under
func (l *Ledger) Key() string {
	return l.key
}

// Add merges quantity of product into the ledger. An existing line has its
// quantity incremented and its note replaced by note, even when note is
// empty. Otherwise a new line is appended.
func (l *Ledger) Add(ctx context.Context, product models.MenuItem, quantity int, note string) Totals {
	l.mu.Lock()
	defer l.mu.Unlock()

	if i := l.indexOf(product.ID); i >= 0 {
		l.items[i].Quantity += quantity
		l.items[i].Note = note
		if l.items[i].Quantity <= 0 {
			l.items = slices.Delete(l.items, i, i+1)
		}
	} else if quantity > 0 {
		l.items = append(l.items, LineItem{Product: product, Quantity: quantity, Note: note})
	}

	return l.commit(ctx)
}

// Remove drops the line for productID. Unknown IDs are ignored.
func (l *Ledger) Remove(ctx context.Context, productID string) Totals {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.removeLocked(productID)
	return l.commit(ctx)
}

// SetQuantity replaces the quantity of the line for productID, keeping its
// note. A quantity of zero or less removes the line. Unknown IDs are ignored.
func (l *Ledger) SetQuantity(ctx context.Context, productID string, quantity int) Totals {
	l.mu.Lock()
	defer l.mu.Unlock()

	if quantity <= 0 {
		l.removeLocked(productID)
	} else if i := l.indexOf(productID); i >= 0 {
		l.items[i].Quantity = quantity
	}

	return l.commit(ctx)
}

// Deduct takes the quantities of lines out of the ledger, keeping notes.
// Lines that drop to zero are removed; products not in the ledger are
// ignored. Changes made after lines were read survive.
func (l *Ledger) Deduct(ctx context.Context, lines []LineItem) Totals {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, line := range lines {
		i := l.indexOf(line.Product.ID)
		if i < 0 {
			continue
		}
		l.items[i].Quantity -= line.Quantity
		if l.items[i].Quantity <= 0 {
			l.items = slices.Delete(l.items, i, i+1)
		}
	}

	return l.commit(ctx)
}

// Clear empties the ledger
func (l *Ledger) Clear(ctx context.Context) Totals {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.items = nil
	return l.commit(ctx)
}

// Items returns a copy of the lines in insertion order
func (l *Ledger) Items() []LineItem {
	l.mu.Lock()
	defer l.mu.Unlock()

	return slices.Clone(l.items)
}

// Get returns the line for productID
func (l *Ledger) Get(productID string) (LineItem, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if i := l.indexOf(productID); i >= 0 {
		return l.items[i], true
	}
	return LineItem{}, false
}

// Len returns the number of lines
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.items)
}

// TotalAmount returns Σ quantity × unit price
func (l *Ledger) TotalAmount() decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.totalsLocked().Amount
}

// TotalItemCount returns Σ quantity
func (l *Ledger) TotalItemCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.totalsLocked().ItemCount
}

// Totals returns both derived values
func (l *Ledger) Totals() Totals {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.totalsLocked()
}

// Subscribe registers fn to receive the totals after every mutation.
// The returned func removes the subscription. fn runs while the ledger is
// locked and must not call back into it.
func (l *Ledger) Subscribe(fn func(Totals)) (unsubscribe func()) {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := l.nextObs
	l.nextObs++
	l.observers[id] = fn

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.observers, id)
	}
}

func (l *Ledger) indexOf(productID string) int {
	return slices.IndexFunc(l.items, func(item LineItem) bool {
		return item.Product.ID == productID
	})
}

func (l *Ledger) removeLocked(productID string) {
	if i := l.indexOf(productID); i >= 0 {
		l.items = slices.Delete(l.items, i, i+1)
	}
}

func (l *Ledger) totalsLocked() Totals {
	totals := Totals{Amount: decimal.Zero}
	for _, item := range l.items {
		totals.Amount = totals.Amount.Add(item.Subtotal())
		totals.ItemCount += item.Quantity
	}
	return totals
}

// commit persists the snapshot and notifies observers. Must hold l.mu.
func (l *Ledger) commit(ctx context.Context) Totals {
	l.save(ctx)

	totals := l.totalsLocked()
	for _, fn := range l.observers {
		fn(totals)
	}
	return totals
}
