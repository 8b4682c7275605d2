package application

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/trustabee/honey-marketplace/internal/shop/domain"
	"github.com/trustabee/honey-marketplace/pkg/idgen"
	"github.com/trustabee/honey-marketplace/pkg/metrics"
	"github.com/trustabee/honey-marketplace/pkg/outbox"
	"github.com/trustabee/honey-marketplace/pkg/tracing"
)

const eventSource = "shop-service"

type Service struct {
	log      *slog.Logger
	catalog  *domain.Catalog
	ids      idgen.Generator
	metrics  *metrics.Metrics
	repo     LedgerRepository
	photos   PhotoStore
	ttl      time.Duration
	now      func() time.Time
	sessions *Sessions
}

type Option func(*Service)

// WithRepository makes orders and samples durable and visible across
// sessions. Without it every ledger lives only in its session.
func WithRepository(repo LedgerRepository) Option {
	return func(s *Service) { s.repo = repo }
}

func WithPhotoStore(p PhotoStore) Option {
	return func(s *Service) { s.photos = p }
}

func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Service) { s.ttl = ttl }
}

func WithNow(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(log *slog.Logger, catalog *domain.Catalog, ids idgen.Generator, m *metrics.Metrics, opts ...Option) *Service {
	s := &Service{
		log:     log,
		catalog: catalog,
		ids:     ids,
		metrics: m,
		ttl:     30 * time.Minute,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.sessions = NewSessions(log, s.ttl, s.newContainer)
	s.sessions.now = s.now
	s.sessions.onChange = func(active int) { m.ActiveSessions.Set(float64(active)) }
	return s
}

func (s *Service) newContainer(owner Owner) *Container {
	return NewContainer(owner, s.catalog, s.ids, WithRecorder(s), WithClock(s.now))
}

func (s *Service) Catalog() *domain.Catalog { return s.catalog }

func (s *Service) Sessions() *Sessions { return s.sessions }

func (s *Service) OpenSession(owner Owner) string {
	id, _ := s.sessions.Open(owner)
	s.log.Info("session opened", "user_id", owner.UserID, "role", owner.Role)
	return id
}

func (s *Service) Session(id string, owner Owner) *Container {
	return s.sessions.Acquire(id, owner)
}

func (s *Service) CloseSession(id string) {
	s.sessions.Close(id)
}

func headers() map[string]string {
	return map[string]string{"source": eventSource}
}

// OrderPlaced implements Recorder.
func (s *Service) OrderPlaced(ctx context.Context, o domain.Order) error {
	if s.repo != nil {
		msg, err := outbox.NewMessage(domain.EventOrderPlaced, domain.NewOrderPlaced(o), headers(), tracing.Traceparent(ctx))
		if err != nil {
			return err
		}
		if err := s.repo.SaveOrder(ctx, o, msg); err != nil {
			return fmt.Errorf("save order %s: %w", o.ID, err)
		}
	}
	s.metrics.OrdersPlaced.Inc()
	s.metrics.OrderRevenue.Add(o.Total.InexactFloat64())
	s.log.Info("order placed", "order_id", o.ID, "farmer_id", o.FarmerID, "total", o.Total.String(), "items", len(o.Items))
	return nil
}

// SampleSubmitted implements Recorder.
func (s *Service) SampleSubmitted(ctx context.Context, smp domain.SampleSubmission) error {
	if s.repo != nil {
		ev := domain.SampleSubmitted{SampleID: smp.ID, FarmerID: smp.FarmerID, HoneyType: smp.HoneyType}
		msg, err := outbox.NewMessage(domain.EventSampleSubmitted, ev, headers(), tracing.Traceparent(ctx))
		if err != nil {
			return err
		}
		if err := s.repo.SaveSample(ctx, smp, msg); err != nil {
			return fmt.Errorf("save sample %s: %w", smp.ID, err)
		}
	}
	s.metrics.SamplesSubmitted.Inc()
	s.log.Info("sample submitted", "sample_id", smp.ID, "farmer_id", smp.FarmerID, "honey_type", smp.HoneyType)
	return nil
}

// FarmerOrders lists orders owned by farmerID across all sessions, newest first.
func (s *Service) FarmerOrders(ctx context.Context, farmerID string) ([]domain.Order, error) {
	if s.repo != nil {
		return s.repo.FarmerOrders(ctx, farmerID)
	}
	out := make([]domain.Order, 0)
	s.sessions.Range(func(c *Container) {
		out = append(out, c.FarmerOrders(farmerID)...)
	})
	sortOrders(out)
	return out, nil
}

func (s *Service) FarmerSamples(ctx context.Context, farmerID string) ([]domain.SampleSubmission, error) {
	if s.repo != nil {
		return s.repo.FarmerSamples(ctx, farmerID)
	}
	out := make([]domain.SampleSubmission, 0)
	s.sessions.Range(func(c *Container) {
		out = append(out, c.FarmerSamples(farmerID)...)
	})
	sortSamples(out)
	return out, nil
}

// VerificationQueue lists samples for review. An empty status lists all.
func (s *Service) VerificationQueue(ctx context.Context, status domain.SampleStatus) ([]domain.SampleSubmission, error) {
	if status != "" && !status.Valid() {
		return nil, ErrInvalidStatus
	}
	if s.repo != nil {
		return s.repo.Samples(ctx, status)
	}
	out := make([]domain.SampleSubmission, 0)
	s.sessions.Range(func(c *Container) {
		for _, smp := range c.Samples() {
			if status == "" || smp.Status == status {
				out = append(out, smp)
			}
		}
	})
	sortSamples(out)
	return out, nil
}

// UpdateSampleStatus moves a sample to status in durable storage (when
// configured) and in every live session holding it.
func (s *Service) UpdateSampleStatus(ctx context.Context, sampleID string, status domain.SampleStatus) (domain.SampleSubmission, error) {
	if !status.Valid() {
		return domain.SampleSubmission{}, ErrInvalidStatus
	}

	var updated domain.SampleSubmission
	found := false
	if s.repo != nil {
		tp := tracing.Traceparent(ctx)
		smp, err := s.repo.UpdateSampleStatus(ctx, sampleID, status, func(smp domain.SampleSubmission) (outbox.Message, error) {
			ev := domain.SampleStatusChanged{SampleID: smp.ID, FarmerID: smp.FarmerID, Status: smp.Status}
			return outbox.NewMessage(domain.EventSampleStatusChanged, ev, headers(), tp)
		})
		if err != nil {
			return domain.SampleSubmission{}, err
		}
		updated, found = smp, true
	}

	s.sessions.Range(func(c *Container) {
		if !c.UpdateSampleStatus(sampleID, status) {
			return
		}
		if !found {
			updated, _ = c.Sample(sampleID)
			found = true
		}
	})
	if !found {
		return domain.SampleSubmission{}, ErrSampleNotFound
	}

	s.metrics.SampleStatusChanges.WithLabelValues(string(status)).Inc()
	s.log.Info("sample status updated", "sample_id", sampleID, "status", status)
	return updated, nil
}

func (s *Service) PhotoUploadURL(ctx context.Context, farmerID, contentType string) (PhotoUpload, error) {
	if s.photos == nil {
		return PhotoUpload{}, ErrPhotosUnavailable
	}
	return s.photos.UploadURL(ctx, farmerID, contentType)
}

// Newest first. Ids break ties between records of the same day.
func sortOrders(orders []domain.Order) {
	slices.SortFunc(orders, func(a, b domain.Order) int {
		return cmp.Or(cmp.Compare(b.Date, a.Date), cmp.Compare(idgen.Number(b.ID), idgen.Number(a.ID)))
	})
}

func sortSamples(samples []domain.SampleSubmission) {
	slices.SortFunc(samples, func(a, b domain.SampleSubmission) int {
		return cmp.Or(cmp.Compare(b.SubmittedAt, a.SubmittedAt), cmp.Compare(idgen.Number(b.ID), idgen.Number(a.ID)))
	})
}
