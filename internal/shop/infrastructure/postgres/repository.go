package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/trustabee/honey-marketplace/internal/shop/application"
	"github.com/trustabee/honey-marketplace/internal/shop/domain"
	"github.com/trustabee/honey-marketplace/pkg/outbox"
)

const (
	aggregateOrder  = "order"
	aggregateSample = "sample"
)

// Repository implements application.LedgerRepository. Every write commits
// the aggregate and its outbox row in one transaction.
type Repository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewRepository(log *slog.Logger, pool *pgxpool.Pool) *Repository {
	return &Repository{log: log, pool: pool}
}

func (r *Repository) inTx(ctx context.Context, fn func(pgx.Tx) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func insertOutbox(ctx context.Context, tx pgx.Tx, aggregateType, aggregateID string, msg outbox.Message) error {
	headers := msg.Headers
	if headers == nil {
		headers = map[string]string{}
	}
	_, err := tx.Exec(ctx, `INSERT INTO outbox (aggregate_type, aggregate_id, type, payload, headers, traceparent, status)
		VALUES ($1,$2,$3,$4,$5,$6,'pending')`,
		aggregateType, aggregateID, msg.Type, msg.Payload, headers, msg.Traceparent)
	if err != nil {
		return fmt.Errorf("insert outbox: %w", err)
	}
	return nil
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(domain.DateLayout, s)
}

func (r *Repository) SaveOrder(ctx context.Context, o domain.Order, msg outbox.Message) error {
	date, err := parseDate(o.Date)
	if err != nil {
		return fmt.Errorf("order date: %w", err)
	}
	return r.inTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `INSERT INTO orders (id, client_id, farmer_id, status, total, order_date)
			VALUES ($1,$2,$3,$4,$5::numeric,$6)`,
			o.ID, o.ClientID, o.FarmerID, string(o.Status), o.Total.String(), date)
		if err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		batch := &pgx.Batch{}
		for i, item := range o.Items {
			product, err := json.Marshal(item.Product)
			if err != nil {
				return err
			}
			batch.Queue(`INSERT INTO order_items (order_id, line_no, product_id, product, price, quantity)
				VALUES ($1,$2,$3,$4,$5::numeric,$6)`,
				o.ID, i, item.ID, product, item.Price.String(), item.CartQuantity)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert order items: %w", err)
		}
		return insertOutbox(ctx, tx, aggregateOrder, o.ID, msg)
	})
}

func (r *Repository) FarmerOrders(ctx context.Context, farmerID string) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, client_id, farmer_id, status, total::text, order_date
		FROM orders WHERE farmer_id=$1 ORDER BY order_date DESC, created_at DESC`, farmerID)
	if err != nil {
		return nil, err
	}
	orders := make([]domain.Order, 0)
	for rows.Next() {
		var (
			o     domain.Order
			total string
			date  time.Time
		)
		if err := rows.Scan(&o.ID, &o.ClientID, &o.FarmerID, &o.Status, &total, &date); err != nil {
			rows.Close()
			return nil, err
		}
		if o.Total, err = decimal.NewFromString(total); err != nil {
			rows.Close()
			return nil, fmt.Errorf("order %s total: %w", o.ID, err)
		}
		o.Date = date.Format(domain.DateLayout)
		orders = append(orders, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(orders) == 0 {
		return orders, nil
	}
	ids := make([]string, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}
	items, err := r.orderItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = items[orders[i].ID]
	}
	return orders, nil
}

// orderItems loads the lines of every order in orderIDs in one query,
// keyed by order id.
func (r *Repository) orderItems(ctx context.Context, orderIDs []string) (map[string][]domain.CartItem, error) {
	rows, err := r.pool.Query(ctx, `SELECT order_id, product, price::text, quantity FROM order_items
		WHERE order_id = ANY($1) ORDER BY order_id, line_no`, orderIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make(map[string][]domain.CartItem, len(orderIDs))
	for rows.Next() {
		var (
			orderID string
			raw     []byte
			price   string
			item    domain.CartItem
		)
		if err := rows.Scan(&orderID, &raw, &price, &item.CartQuantity); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &item.Product); err != nil {
			return nil, fmt.Errorf("order %s product: %w", orderID, err)
		}
		if item.Price, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("order %s price: %w", orderID, err)
		}
		items[orderID] = append(items[orderID], item)
	}
	return items, rows.Err()
}

const sampleColumns = `id, farmer_id, honey_type, harvest_date, quantity, photo, address,
	collection_date, contact_pref, status, submitted_at`

func scanSample(row pgx.Row) (domain.SampleSubmission, error) {
	var (
		s         domain.SampleSubmission
		submitted time.Time
	)
	err := row.Scan(&s.ID, &s.FarmerID, &s.HoneyType, &s.HarvestDate, &s.Quantity, &s.Photo, &s.Address,
		&s.CollectionDate, &s.ContactPref, &s.Status, &submitted)
	if err != nil {
		return domain.SampleSubmission{}, err
	}
	s.SubmittedAt = submitted.Format(domain.DateLayout)
	return s, nil
}

func (r *Repository) SaveSample(ctx context.Context, s domain.SampleSubmission, msg outbox.Message) error {
	submitted, err := parseDate(s.SubmittedAt)
	if err != nil {
		return fmt.Errorf("sample date: %w", err)
	}
	return r.inTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `INSERT INTO samples (`+sampleColumns+`)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
			s.ID, s.FarmerID, s.HoneyType, s.HarvestDate, s.Quantity, s.Photo, s.Address,
			s.CollectionDate, s.ContactPref, string(s.Status), submitted)
		if err != nil {
			return fmt.Errorf("insert sample: %w", err)
		}
		return insertOutbox(ctx, tx, aggregateSample, s.ID, msg)
	})
}

func (r *Repository) UpdateSampleStatus(ctx context.Context, id string, status domain.SampleStatus, msgFor func(domain.SampleSubmission) (outbox.Message, error)) (domain.SampleSubmission, error) {
	var updated domain.SampleSubmission
	err := r.inTx(ctx, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `UPDATE samples SET status=$2, updated_at=now() WHERE id=$1
			RETURNING `+sampleColumns, id, string(status))
		s, err := scanSample(row)
		if errors.Is(err, pgx.ErrNoRows) {
			return application.ErrSampleNotFound
		}
		if err != nil {
			return fmt.Errorf("update sample: %w", err)
		}
		msg, err := msgFor(s)
		if err != nil {
			return err
		}
		if err := insertOutbox(ctx, tx, aggregateSample, s.ID, msg); err != nil {
			return err
		}
		updated = s
		return nil
	})
	return updated, err
}

func (r *Repository) FarmerSamples(ctx context.Context, farmerID string) ([]domain.SampleSubmission, error) {
	return r.querySamples(ctx, `SELECT `+sampleColumns+` FROM samples WHERE farmer_id=$1
		ORDER BY submitted_at DESC, created_at DESC`, farmerID)
}

// Samples lists every sample, or only those in status when it is non-empty.
func (r *Repository) Samples(ctx context.Context, status domain.SampleStatus) ([]domain.SampleSubmission, error) {
	return r.querySamples(ctx, `SELECT `+sampleColumns+` FROM samples WHERE $1 = '' OR status = $1
		ORDER BY submitted_at DESC, created_at DESC`, string(status))
}

func (r *Repository) querySamples(ctx context.Context, sql string, args ...any) ([]domain.SampleSubmission, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	samples := make([]domain.SampleSubmission, 0)
	for rows.Next() {
		s, err := scanSample(rows)
		if err != nil {
			return nil, err
		}
		samples = append(samples, s)
	}
	return samples, rows.Err()
}
