package application

//go:generate mockgen -source=ports.go -destination=mocks/ports_mock.go -package=mocks

import (
	"context"
	"time"

	"github.com/trustabee/honey-marketplace/internal/shop/domain"
	"github.com/trustabee/honey-marketplace/pkg/outbox"
)

// LedgerRepository stores orders and samples durably. Each write carries the
// outbox message that must be committed with it.
type LedgerRepository interface {
	SaveOrder(ctx context.Context, o domain.Order, msg outbox.Message) error
	SaveSample(ctx context.Context, s domain.SampleSubmission, msg outbox.Message) error
	// UpdateSampleStatus returns ErrSampleNotFound for unknown ids. msgFor
	// builds the outbox message from the updated sample.
	UpdateSampleStatus(ctx context.Context, id string, status domain.SampleStatus, msgFor func(domain.SampleSubmission) (outbox.Message, error)) (domain.SampleSubmission, error)
	FarmerOrders(ctx context.Context, farmerID string) ([]domain.Order, error)
	FarmerSamples(ctx context.Context, farmerID string) ([]domain.SampleSubmission, error)
	Samples(ctx context.Context, status domain.SampleStatus) ([]domain.SampleSubmission, error)
}

// Recorder is told about ledger appends before a container commits them. An
// error aborts the operation and leaves the container unchanged.
type Recorder interface {
	OrderPlaced(ctx context.Context, o domain.Order) error
	SampleSubmitted(ctx context.Context, s domain.SampleSubmission) error
}

type PhotoStore interface {
	UploadURL(ctx context.Context, farmerID, contentType string) (PhotoUpload, error)
}

type PhotoUpload struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}
