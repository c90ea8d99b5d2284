package cart

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sivakasi-crackers/internal/catalog"
)

const tolerance = 1e-6

func product(id string, price, discount float64) catalog.Product {
	return catalog.Product{ID: id, Name: "Product " + id, Category: "shots", Unit: "1 box", Price: price, DiscountPercentage: discount, StockQuantity: 1}
}

func requireIdentity(t *testing.T, s *Store) {
	t.Helper()
	require.InDelta(t, s.Total(), s.Subtotal()-s.TotalDiscount(), tolerance)
}

func TestAddItemIsAdditive(t *testing.T) {
	s := NewStore()
	p := product("7", 100, 20)
	s.AddItem(p, 2)
	s.AddItem(p, 3)

	items := s.Items()
	require.Len(t, items, 1)
	require.Equal(t, 5, items[0].Quantity)
	require.Equal(t, 5, s.ItemCount())
}

func TestAddItemIgnoresNonPositiveQuantity(t *testing.T) {
	s := NewStore()
	s.AddItem(product("1", 10, 0), 0)
	s.AddItem(product("1", 10, 0), -2)
	require.Empty(t, s.Items())
}

func TestAddItemDoesNotEnforceStock(t *testing.T) {
	s := NewStore()
	p := product("1", 10, 0)
	p.StockQuantity = 0
	s.AddItem(p, 50)
	item, ok := s.Item("1")
	require.True(t, ok)
	require.Equal(t, 50, item.Quantity)
}

func TestUpdateQuantitySetsExactly(t *testing.T) {
	s := NewStore()
	s.AddItem(product("1", 10, 0), 4)
	s.UpdateQuantity("1", 2)
	item, ok := s.Item("1")
	require.True(t, ok)
	require.Equal(t, 2, item.Quantity)
}

func TestUpdateQuantityZeroRemovesIdempotently(t *testing.T) {
	s := NewStore()
	s.AddItem(product("1", 10, 0), 9)
	s.UpdateQuantity("1", 0)
	_, ok := s.Item("1")
	require.False(t, ok)

	before := s.Snapshot()
	s.UpdateQuantity("1", 0)
	s.UpdateQuantity("1", -4)
	require.Equal(t, before, s.Snapshot())
}

func TestUpdateQuantityUnknownIDIsNoop(t *testing.T) {
	s := NewStore()
	s.AddItem(product("1", 10, 0), 1)
	before := s.Snapshot()
	s.UpdateQuantity("missing", 3)
	require.Equal(t, before, s.Snapshot())
}

func TestPricingExample(t *testing.T) {
	s := NewStore()
	s.AddItem(product("1", 100, 20), 3)
	require.InDelta(t, 300.0, s.Subtotal(), tolerance)
	require.InDelta(t, 60.0, s.TotalDiscount(), tolerance)
	require.InDelta(t, 240.0, s.Total(), tolerance)
	requireIdentity(t, s)

	item, _ := s.Item("1")
	require.InDelta(t, 80.0, item.DiscountedUnitPrice(), tolerance)
}

func TestIdentityHoldsAcrossStates(t *testing.T) {
	s := NewStore()
	requireIdentity(t, s)
	s.AddItem(product("1", 99.99, 12.5), 3)
	requireIdentity(t, s)
	s.AddItem(product("2", 0.1, 33.3), 7)
	requireIdentity(t, s)
	s.UpdateQuantity("1", 11)
	requireIdentity(t, s)
	s.RemoveItem("2")
	requireIdentity(t, s)
}

func TestClearResetsAggregates(t *testing.T) {
	s := NewStore()
	s.AddItem(product("1", 100, 20), 3)
	s.AddItem(product("2", 50, 0), 1)
	s.Clear()
	require.Equal(t, 0, s.ItemCount())
	require.Equal(t, 0.0, s.Subtotal())
	require.Equal(t, 0.0, s.Total())
	require.Empty(t, s.Items())
}

func TestCheckoutTakesAndEmpties(t *testing.T) {
	s := NewStore()
	var notified []Snapshot
	s.Subscribe(func(snap Snapshot) { notified = append(notified, snap) })

	empty := s.Checkout()
	require.Empty(t, empty.Items)
	require.Empty(t, notified)

	s.AddItem(product("1", 100, 10), 2)
	s.AddItem(product("2", 50, 0), 1)
	taken := s.Checkout()
	require.Len(t, taken.Items, 2)
	require.Equal(t, 3, taken.ItemCount)
	require.InDelta(t, 230.0, taken.Total, tolerance)

	require.Empty(t, s.Items())
	require.Equal(t, 0, s.ItemCount())
	require.Len(t, notified, 3)
	require.Empty(t, notified[2].Items)
}

func TestRemoveUnknownIDLeavesStateUnchanged(t *testing.T) {
	s := NewStore()
	s.AddItem(product("1", 100, 20), 3)
	before := s.Snapshot()
	s.RemoveItem("nope")
	require.Equal(t, before, s.Snapshot())
}

func TestRemoveDoesNotAffectOtherItems(t *testing.T) {
	s := NewStore()
	s.AddItem(product("1", 100, 20), 3)
	s.AddItem(product("2", 40, 10), 2)
	s.RemoveItem("1")

	item, ok := s.Item("2")
	require.True(t, ok)
	require.Equal(t, 2, item.Quantity)
	require.InDelta(t, 80.0, s.Subtotal(), tolerance)
	require.InDelta(t, 8.0, s.TotalDiscount(), tolerance)
	require.InDelta(t, 72.0, s.Total(), tolerance)
}

func TestItemsReturnsCopy(t *testing.T) {
	s := NewStore()
	s.AddItem(product("1", 10, 0), 1)
	items := s.Items()
	items[0].Quantity = 99
	item, _ := s.Item("1")
	require.Equal(t, 1, item.Quantity)
}

func TestInsertionOrderPreserved(t *testing.T) {
	s := NewStore()
	s.AddItem(product("3", 1, 0), 1)
	s.AddItem(product("1", 1, 0), 1)
	s.AddItem(product("2", 1, 0), 1)
	s.AddItem(product("3", 1, 0), 1)
	ids := []string{}
	for _, it := range s.Items() {
		ids = append(ids, it.ID)
	}
	require.Equal(t, []string{"3", "1", "2"}, ids)
}

func TestSubscribeReceivesChangesOnly(t *testing.T) {
	s := NewStore()
	var got []Snapshot
	unsubscribe := s.Subscribe(func(snap Snapshot) { got = append(got, snap) })

	s.AddItem(product("1", 100, 20), 1)
	s.RemoveItem("missing")
	s.UpdateQuantity("1", 1)
	s.UpdateQuantity("1", 4)
	require.Len(t, got, 2)
	require.Equal(t, 4, got[1].ItemCount)
	require.InDelta(t, 320.0, got[1].Total, tolerance)

	unsubscribe()
	unsubscribe()
	s.Clear()
	require.Len(t, got, 2)
}

func TestSubscribeNilListener(t *testing.T) {
	s := NewStore()
	unsubscribe := s.Subscribe(nil)
	s.AddItem(product("1", 1, 0), 1)
	unsubscribe()
}

func TestListenerMayReadStore(t *testing.T) {
	s := NewStore()
	var count int
	s.Subscribe(func(Snapshot) { count = s.ItemCount() })
	s.AddItem(product("1", 1, 0), 2)
	require.Equal(t, 2, count)
}

func TestConcurrentAddsAreAtomic(t *testing.T) {
	s := NewStore()
	p := product("1", 10, 0)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.AddItem(p, 2)
		}()
	}
	wg.Wait()
	require.Equal(t, 100, s.ItemCount())
	require.Len(t, s.Items(), 1)
}
