package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 14, 22, 30, 0, 0, time.UTC)

func TestNewOrder_TotalIsExactSum(t *testing.T) {
	items := []CartItem{
		{Product: product("1", "12.99"), CartQuantity: 2},
		{Product: product("2", "15.99"), CartQuantity: 3},
	}

	o := NewOrder("ORD-1001", "farmerX", "client1", items, fixedNow)

	assert.Equal(t, "ORD-1001", o.ID)
	assert.Equal(t, "2025-03-14", o.Date)
	assert.Equal(t, OrderPending, o.Status)
	assert.True(t, decimal.RequireFromString("73.95").Equal(o.Total), o.Total.String())

	items[0].CartQuantity = 10
	assert.Equal(t, 2, o.Items[0].CartQuantity, "order must snapshot the cart")
}

func TestOrderLedger_PrependAndFilter(t *testing.T) {
	var l OrderLedger
	l.Prepend(Order{ID: "ORD-1001", FarmerID: "f1"})
	l.Prepend(Order{ID: "ORD-1002", FarmerID: "f2"})
	l.Prepend(Order{ID: "ORD-1003", FarmerID: "f1"})

	all := l.All()
	require.Len(t, all, 3)
	assert.Equal(t, "ORD-1003", all[0].ID)

	mine := l.ByFarmer("f1")
	require.Len(t, mine, 2)
	assert.Equal(t, "ORD-1003", mine[0].ID)
	assert.Equal(t, "ORD-1001", mine[1].ID)

	assert.NotNil(t, l.ByFarmer("unknown"))
	assert.Empty(t, l.ByFarmer("unknown"))
}

func TestOrderLedger_ReturnsCopies(t *testing.T) {
	var l OrderLedger
	l.Prepend(Order{ID: "ORD-1001", Items: []CartItem{{Product: product("1", "1"), CartQuantity: 1}}})

	got := l.All()
	got[0].Items[0].CartQuantity = 50
	got[0].Status = OrderCancelled

	again := l.All()
	assert.Equal(t, 1, again[0].Items[0].CartQuantity)
	assert.Equal(t, OrderStatus(""), again[0].Status)
}

func TestSampleLedger(t *testing.T) {
	var l SampleLedger
	first := NewSample("SMP-1001", SampleDraft{HoneyType: "wildflower", FarmerID: "f1"}, fixedNow)
	second := NewSample("SMP-1002", SampleDraft{HoneyType: "forest", FarmerID: "f2"}, fixedNow)
	l.Prepend(first)
	l.Prepend(second)

	assert.Equal(t, SampleWaitingForCollection, first.Status)
	assert.Equal(t, "2025-03-14", first.SubmittedAt)
	assert.Equal(t, "SMP-1002", l.All()[0].ID)

	require.True(t, l.UpdateStatus("SMP-1001", SampleVerified))
	got, ok := l.Find("SMP-1001")
	require.True(t, ok)
	assert.Equal(t, SampleVerified, got.Status)
	other, _ := l.Find("SMP-1002")
	assert.Equal(t, SampleWaitingForCollection, other.Status)

	assert.False(t, l.UpdateStatus("SMP-9999", SampleRejected))
	assert.Len(t, l.ByFarmer("f2"), 1)
	assert.Empty(t, l.ByFarmer("nobody"))
}

func TestStatusValidity(t *testing.T) {
	assert.True(t, SampleInVerification.Valid())
	assert.False(t, SampleStatus("Lost").Valid())
	assert.True(t, OrderShipped.Valid())
	assert.False(t, OrderStatus("pending").Valid())
}

func TestNewOrderPlaced(t *testing.T) {
	o := NewOrder("ORD-1001", "f1", "c1", []CartItem{{Product: product("1", "12.99"), CartQuantity: 2}}, fixedNow)

	ev := NewOrderPlaced(o)

	assert.Equal(t, "ORD-1001", ev.OrderID)
	require.Len(t, ev.Items, 1)
	assert.Equal(t, OrderLine{ProductID: "1", Quantity: 2, Price: decimal.RequireFromString("12.99")}, ev.Items[0])
	assert.True(t, decimal.RequireFromString("25.98").Equal(ev.Total))
}
