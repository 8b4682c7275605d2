package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/trustabee/honey-marketplace/internal/notification/domain"
	shop "github.com/trustabee/honey-marketplace/internal/shop/domain"
	"github.com/trustabee/honey-marketplace/pkg/metrics"
)

var ErrMalformedEvent = errors.New("malformed event")

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

type Service struct {
	log     *slog.Logger
	inbox   Inbox
	metrics *metrics.Metrics
	now     func() time.Time
	newID   func() string
}

func NewService(log *slog.Logger, inbox Inbox, m *metrics.Metrics) *Service {
	return &Service{log: log, inbox: inbox, metrics: m, now: time.Now, newID: uuid.NewString}
}

// Handle turns one shop event into inbox entries. Event types it does not
// know about are skipped.
func (s *Service) Handle(ctx context.Context, eventType string, payload []byte) error {
	var notes []domain.Notification
	switch eventType {
	case shop.EventOrderPlaced:
		var ev shop.OrderPlaced
		if err := json.Unmarshal(payload, &ev); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrMalformedEvent, eventType, err)
		}
		notes = s.orderPlaced(ev)
	case shop.EventSampleSubmitted:
		var ev shop.SampleSubmitted
		if err := json.Unmarshal(payload, &ev); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrMalformedEvent, eventType, err)
		}
		notes = []domain.Notification{s.note(ev.FarmerID, domain.TypeVerification,
			"Sample received",
			fmt.Sprintf("Your %s honey sample %s is waiting for collection.", ev.HoneyType, ev.SampleID))}
	case shop.EventSampleStatusChanged:
		var ev shop.SampleStatusChanged
		if err := json.Unmarshal(payload, &ev); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrMalformedEvent, eventType, err)
		}
		notes = []domain.Notification{s.note(ev.FarmerID, domain.TypeVerification,
			"Sample "+string(ev.Status),
			fmt.Sprintf("Sample %s is now %s.", ev.SampleID, ev.Status))}
	default:
		s.log.Debug("event ignored", "type", eventType)
		return nil
	}

	for _, n := range notes {
		if n.UserID == "" {
			continue
		}
		if err := s.inbox.Push(ctx, n); err != nil {
			return fmt.Errorf("push notification for %s: %w", n.UserID, err)
		}
		s.metrics.NotificationsDelivered.WithLabelValues(string(n.Type)).Inc()
	}
	return nil
}

func (s *Service) orderPlaced(ev shop.OrderPlaced) []domain.Notification {
	out := []domain.Notification{
		s.note(ev.FarmerID, domain.TypeOrder, "New order",
			fmt.Sprintf("Order %s for %s (%d items) is pending.", ev.OrderID, ev.Total.StringFixed(2), len(ev.Items))),
	}
	if ev.ClientID != ev.FarmerID {
		out = append(out, s.note(ev.ClientID, domain.TypeOrder, "Order placed",
			fmt.Sprintf("Your order %s totalling %s was placed.", ev.OrderID, ev.Total.StringFixed(2))))
	}
	return out
}

func (s *Service) note(userID string, t domain.Type, title, message string) domain.Notification {
	return domain.Notification{
		ID:        s.newID(),
		UserID:    userID,
		Type:      t,
		Title:     title,
		Message:   message,
		CreatedAt: s.now().UTC(),
	}
}

// List returns the newest notifications for userID. limit is clamped to
// [1, MaxLimit]; zero means DefaultLimit.
func (s *Service) List(ctx context.Context, userID string, limit int) ([]domain.Notification, error) {
	switch {
	case limit <= 0:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}
	return s.inbox.List(ctx, userID, limit)
}
