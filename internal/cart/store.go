package cart

import (
	"sync"

	"github.com/noah-isme/sivakasi-crackers/internal/catalog"
	"github.com/noah-isme/sivakasi-crackers/internal/pricing"
)

// LineItem is a product snapshot plus the quantity held in the cart.
type LineItem struct {
	catalog.Product
	Quantity int `json:"quantity"`
}

// DiscountedUnitPrice is the product price after its percentage discount.
func (li LineItem) DiscountedUnitPrice() float64 {
	return pricing.DiscountedUnitPrice(li.Price, li.DiscountPercentage)
}

func (li LineItem) line() pricing.Line {
	return pricing.Line{Price: li.Price, DiscountPercentage: li.DiscountPercentage, Quantity: li.Quantity}
}

// Snapshot is a consistent copy of the cart and its aggregates.
type Snapshot struct {
	Items     []LineItem
	Subtotal  float64
	Discount  float64
	Total     float64
	ItemCount int
}

// Listener receives a snapshot after every state change.
type Listener func(Snapshot)

// Store owns the process-wide cart. Line items are keyed by product id and kept in
// insertion order. Every operation is atomic. Listeners run in mutation order after the
// data lock is released; they may read the store but must not mutate it.
type Store struct {
	pub       sync.Mutex
	mu        sync.RWMutex
	items     []LineItem
	listeners map[uint64]Listener
	nextID    uint64
}

// NewStore returns an empty cart.
func NewStore() *Store {
	return &Store{listeners: make(map[uint64]Listener)}
}

// AddItem increments the quantity of an existing line or inserts a new one.
// Quantities below one are ignored; stock is not enforced.
func (s *Store) AddItem(product catalog.Product, quantity int) {
	if quantity < 1 {
		return
	}
	s.mutate(func() bool {
		if i := s.indexOf(product.ID); i >= 0 {
			s.items[i].Quantity += quantity
		} else {
			s.items = append(s.items, LineItem{Product: product, Quantity: quantity})
		}
		return true
	})
}

// UpdateQuantity sets the quantity exactly. A quantity of zero or less removes the line.
// Unknown product ids are ignored.
func (s *Store) UpdateQuantity(productID string, quantity int) {
	if quantity <= 0 {
		s.RemoveItem(productID)
		return
	}
	s.mutate(func() bool {
		i := s.indexOf(productID)
		if i < 0 || s.items[i].Quantity == quantity {
			return false
		}
		s.items[i].Quantity = quantity
		return true
	})
}

// RemoveItem deletes the line for productID if present.
func (s *Store) RemoveItem(productID string) {
	s.mutate(func() bool {
		i := s.indexOf(productID)
		if i < 0 {
			return false
		}
		s.items = append(s.items[:i], s.items[i+1:]...)
		return true
	})
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.mutate(func() bool {
		if len(s.items) == 0 {
			return false
		}
		s.items = nil
		return true
	})
}

// Checkout empties the cart and returns what it held, as one operation.
// An empty cart returns an empty snapshot and notifies nobody.
func (s *Store) Checkout() Snapshot {
	var taken Snapshot
	s.mutate(func() bool {
		taken = s.snapshotLocked()
		if len(s.items) == 0 {
			return false
		}
		s.items = nil
		return true
	})
	return taken
}

// Items returns a copy of the line items in insertion order.
func (s *Store) Items() []LineItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]LineItem(nil), s.items...)
}

// Item returns the line for productID.
func (s *Store) Item(productID string) (LineItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(productID); i >= 0 {
		return s.items[i], true
	}
	return LineItem{}, false
}

// Subtotal is the pre-discount sum of price × quantity.
func (s *Store) Subtotal() float64 {
	return s.summary().Subtotal
}

// TotalDiscount is the sum of per-line discounts.
func (s *Store) TotalDiscount() float64 {
	return s.summary().Discount
}

// Total is Subtotal minus TotalDiscount.
func (s *Store) Total() float64 {
	return s.summary().Total
}

// ItemCount is the sum of quantities.
func (s *Store) ItemCount() int {
	return s.summary().ItemCount
}

// Snapshot returns the items and aggregates computed under one read lock.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Subscribe registers l for change notifications and returns its unsubscribe handle.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	if l == nil {
		return func() {}
	}
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

// mutate serialises fn and the notification that follows it. fn runs under the write
// lock and reports whether state changed.
func (s *Store) mutate(fn func() bool) {
	s.pub.Lock()
	defer s.pub.Unlock()

	s.mu.Lock()
	if !fn() {
		s.mu.Unlock()
		return
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.publish(snap)
}

func (s *Store) summary() pricing.Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return summarize(s.items)
}

func (s *Store) snapshotLocked() Snapshot {
	sum := summarize(s.items)
	return Snapshot{
		Items:     append([]LineItem(nil), s.items...),
		Subtotal:  sum.Subtotal,
		Discount:  sum.Discount,
		Total:     sum.Total,
		ItemCount: sum.ItemCount,
	}
}

func (s *Store) publish(snap Snapshot) {
	s.mu.RLock()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.RUnlock()
	for _, l := range listeners {
		l(snap)
	}
}

func (s *Store) indexOf(productID string) int {
	for i := range s.items {
		if s.items[i].ID == productID {
			return i
		}
	}
	return -1
}

func summarize(items []LineItem) pricing.Summary {
	lines := make([]pricing.Line, 0, len(items))
	for _, it := range items {
		lines = append(lines, it.line())
	}
	return pricing.Summarize(lines)
}
