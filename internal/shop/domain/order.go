package domain

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-date format used for order and sample dates.
const DateLayout = "2006-01-02"

type OrderStatus string

const (
	OrderPending    OrderStatus = "Pending"
	OrderProcessing OrderStatus = "Processing"
	OrderShipped    OrderStatus = "Shipped"
	OrderDelivered  OrderStatus = "Delivered"
	OrderCancelled  OrderStatus = "Cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

type Order struct {
	ID       string          `json:"id"`
	Date     string          `json:"date"`
	Status   OrderStatus     `json:"status"`
	Total    decimal.Decimal `json:"total"`
	Items    []CartItem      `json:"items"`
	FarmerID string          `json:"farmerId"`
	ClientID string          `json:"clientId,omitempty"`
}

// NewOrder snapshots items and fixes the total at creation time.
func NewOrder(id, farmerID, clientID string, items []CartItem, now time.Time) Order {
	snapshot := slices.Clone(items)
	return Order{
		ID:       id,
		Date:     now.UTC().Format(DateLayout),
		Status:   OrderPending,
		Total:    Total(snapshot),
		Items:    snapshot,
		FarmerID: farmerID,
		ClientID: clientID,
	}
}

func (o Order) clone() Order {
	o.Items = slices.Clone(o.Items)
	return o
}

// OrderLedger holds orders newest first. Orders are never removed.
type OrderLedger struct {
	orders []Order
}

func (l *OrderLedger) Prepend(o Order) {
	l.orders = slices.Insert(l.orders, 0, o.clone())
}

func (l *OrderLedger) Len() int { return len(l.orders) }

func (l *OrderLedger) All() []Order {
	out := make([]Order, 0, len(l.orders))
	for _, o := range l.orders {
		out = append(out, o.clone())
	}
	return out
}

// ByFarmer returns copies of the farmer's orders in ledger order.
func (l *OrderLedger) ByFarmer(farmerID string) []Order {
	out := make([]Order, 0)
	for _, o := range l.orders {
		if o.FarmerID == farmerID {
			out = append(out, o.clone())
		}
	}
	return out
}
