package application

import (
	"context"

	"github.com/trustabee/honey-marketplace/internal/notification/domain"
)

// Inbox stores notifications per user, newest first.
type Inbox interface {
	Push(ctx context.Context, n domain.Notification) error
	List(ctx context.Context, userID string, limit int) ([]domain.Notification, error)
}
