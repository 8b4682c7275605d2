package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trustabee/honey-marketplace/internal/notification/domain"
	"github.com/trustabee/honey-marketplace/internal/notification/infrastructure/memory"
	shop "github.com/trustabee/honey-marketplace/internal/shop/domain"
	"github.com/trustabee/honey-marketplace/pkg/metrics"
)

type failingInbox struct{}

func (failingInbox) Push(context.Context, domain.Notification) error { return errors.New("redis down") }

func (failingInbox) List(context.Context, string, int) ([]domain.Notification, error) {
	return nil, errors.New("redis down")
}

func newTestService(t *testing.T, inbox Inbox) (*Service, *metrics.Metrics) {
	t.Helper()
	m := metrics.New(prometheus.NewRegistry())
	s := NewService(slog.New(slog.NewTextHandler(io.Discard, nil)), inbox, m)
	s.now = func() time.Time { return time.Date(2024, 6, 11, 9, 30, 0, 0, time.UTC) }
	n := 0
	s.newID = func() string { n++; return fmt.Sprintf("n%d", n) }
	return s, m
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return raw
}

func TestHandle_OrderPlacedNotifiesFarmerAndClient(t *testing.T) {
	ctx := context.Background()
	inbox := memory.NewInbox(10)
	s, m := newTestService(t, inbox)

	ev := shop.OrderPlaced{
		OrderID: "ORD-1001", FarmerID: "farmer1", ClientID: "client1",
		Total: decimal.RequireFromString("25.98"),
		Items: []shop.OrderLine{{ProductID: "1", Quantity: 2, Price: decimal.RequireFromString("12.99")}},
	}
	require.NoError(t, s.Handle(ctx, shop.EventOrderPlaced, mustJSON(t, ev)))

	farmer, err := s.List(ctx, "farmer1", 0)
	require.NoError(t, err)
	require.Len(t, farmer, 1)
	assert.Equal(t, domain.TypeOrder, farmer[0].Type)
	assert.Equal(t, "New order", farmer[0].Title)
	assert.Contains(t, farmer[0].Message, "ORD-1001")
	assert.Contains(t, farmer[0].Message, "25.98")
	assert.False(t, farmer[0].Read)

	client, err := s.List(ctx, "client1", 0)
	require.NoError(t, err)
	require.Len(t, client, 1)
	assert.Equal(t, "Order placed", client[0].Title)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.NotificationsDelivered.WithLabelValues("order")))
}

func TestHandle_SampleEvents(t *testing.T) {
	ctx := context.Background()
	s, m := newTestService(t, memory.NewInbox(10))

	require.NoError(t, s.Handle(ctx, shop.EventSampleSubmitted,
		mustJSON(t, shop.SampleSubmitted{SampleID: "SMP-1001", FarmerID: "farmer1", HoneyType: "Wildflower"})))
	require.NoError(t, s.Handle(ctx, shop.EventSampleStatusChanged,
		mustJSON(t, shop.SampleStatusChanged{SampleID: "SMP-1001", FarmerID: "farmer1", Status: shop.SampleVerified})))

	got, err := s.List(ctx, "farmer1", 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Sample Verified", got[0].Title)
	assert.Equal(t, "Sample received", got[1].Title)
	assert.Equal(t, time.Date(2024, 6, 11, 9, 30, 0, 0, time.UTC), got[0].CreatedAt)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.NotificationsDelivered.WithLabelValues("verification")))
}

func TestHandle_UnknownAndMalformed(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t, memory.NewInbox(10))

	assert.NoError(t, s.Handle(ctx, "InventoryReserved", []byte(`{}`)))
	assert.ErrorIs(t, s.Handle(ctx, shop.EventOrderPlaced, []byte(`{`)), ErrMalformedEvent)
}

func TestHandle_InboxFailure(t *testing.T) {
	s, _ := newTestService(t, failingInbox{})
	err := s.Handle(context.Background(), shop.EventSampleSubmitted,
		mustJSON(t, shop.SampleSubmitted{SampleID: "SMP-1001", FarmerID: "farmer1"}))
	assert.ErrorContains(t, err, "redis down")
}

func TestList_ClampsLimit(t *testing.T) {
	ctx := context.Background()
	inbox := memory.NewInbox(0)
	s, _ := newTestService(t, inbox)
	for range MaxLimit + 5 {
		require.NoError(t, inbox.Push(ctx, domain.Notification{UserID: "farmer1"}))
	}

	got, err := s.List(ctx, "farmer1", 0)
	require.NoError(t, err)
	assert.Len(t, got, DefaultLimit)

	got, err = s.List(ctx, "farmer1", 1000)
	require.NoError(t, err)
	assert.Len(t, got, MaxLimit)
}
