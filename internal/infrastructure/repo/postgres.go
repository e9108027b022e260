package repo

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"milanfood-backend/internal/domain"
)

//go:embed migrations/*.sql
var migrations embed.FS

type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(dsn string) (*PostgresRepo, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	r := &PostgresRepo{db: db}
	if err := r.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return r, nil
}

func (r *PostgresRepo) migrate() error {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	if err := goose.Up(r.db, "migrations"); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func (r *PostgresRepo) Submit(ctx context.Context, o *domain.Order) error {
	payload, err := json.Marshal(o)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `INSERT INTO orders (order_id,session_id,payment_method,subtotal,delivery_fee,discount,total,payload,created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		o.OrderID, o.SessionID, string(o.PaymentMethod), o.Totals.Subtotal, o.Totals.DeliveryFee, o.Totals.Discount, o.Totals.Total, string(payload), o.CreatedAt)
	return err
}

func (r *PostgresRepo) Append(ctx context.Context, id string, payload json.RawMessage) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO order_intake (intake_id,payload) VALUES ($1,$2)`, id, string(payload))
	return err
}

func (r *PostgresRepo) Get(ctx context.Context, id string) (*domain.Order, bool, error) {
	var payload string
	err := r.db.QueryRowContext(ctx, `SELECT payload FROM orders WHERE order_id=$1`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var o domain.Order
	if err := json.Unmarshal([]byte(payload), &o); err != nil {
		return nil, false, err
	}
	return &o, true, nil
}

func (r *PostgresRepo) Close() error {
	return r.db.Close()
}
