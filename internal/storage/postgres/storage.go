package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/abdelrahman464/blackbox/internal/domain/errors"
	"github.com/abdelrahman464/blackbox/internal/domain/model"
	"github.com/abdelrahman464/blackbox/internal/domain/repository"
)

// dbPool is the subset of pgxpool.Pool used by the storage, kept as an
// interface so tests can substitute a mock pool.
type dbPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   dbPool
	logger *slog.Logger
}

type userRepository struct {
	storage *Storage
}

type serviceRepository struct {
	storage *Storage
}

type requestRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

type reconciliationRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Services() repository.ServiceRepository {
	return &serviceRepository{storage: s}
}

func (s *Storage) Requests() repository.RequestRepository {
	return &requestRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Reconciliations() repository.ReconciliationRepository {
	return &reconciliationRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            email TEXT UNIQUE NOT NULL,
            profile_img TEXT NOT NULL DEFAULT '',
            role TEXT NOT NULL DEFAULT 'user',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS services (
            id SERIAL PRIMARY KEY,
            title TEXT NOT NULL,
            category TEXT NOT NULL,
            price DOUBLE PRECISION NOT NULL,
            price_after_discount DOUBLE PRECISION,
            sold BIGINT NOT NULL DEFAULT 0,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS requests (
            id SERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL REFERENCES users(id),
            service_id BIGINT NOT NULL REFERENCES services(id),
            text TEXT NOT NULL,
            status TEXT NOT NULL DEFAULT 'pending',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id SERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL REFERENCES users(id),
            total_price DOUBLE PRECISION NOT NULL,
            paid BOOLEAN NOT NULL DEFAULT FALSE,
            paid_at TIMESTAMPTZ,
            payment_method TEXT NOT NULL,
            provider_session_id TEXT UNIQUE NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS reconciliation_failures (
            id SERIAL PRIMARY KEY,
            event_id TEXT NOT NULL,
            session_id TEXT NOT NULL,
            correlation_token TEXT NOT NULL,
            email TEXT NOT NULL,
            amount_minor BIGINT NOT NULL,
            reason TEXT NOT NULL,
            attempts INT NOT NULL DEFAULT 0,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            resolved_at TIMESTAMPTZ
        )`,
		`CREATE INDEX IF NOT EXISTS idx_requests_user ON requests(user_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_reconciliation_unresolved ON reconciliation_failures(created_at) WHERE resolved_at IS NULL`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- UserRepository implementation ---

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT id, name, email, profile_img, role, created_at FROM users WHERE id=$1`
	return r.scanUser(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	const query = `SELECT id, name, email, profile_img, role, created_at FROM users WHERE email=$1`
	return r.scanUser(r.storage.pool.QueryRow(ctx, query, email))
}

func (r *userRepository) scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	var role string
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.ProfileImg, &role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	parsed, err := model.ParseRole(role)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainErrors.ErrIntegrity, err)
	}
	u.Role = parsed
	return &u, nil
}

// --- ServiceRepository implementation ---

func (r *serviceRepository) GetByID(ctx context.Context, id int64) (*model.Service, error) {
	const query = `SELECT id, title, category, price, price_after_discount, sold, created_at
                   FROM services WHERE id=$1`
	var svc model.Service
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(
		&svc.ID, &svc.Title, &svc.Category, &svc.Price, &svc.PriceAfterDiscount, &svc.Sold, &svc.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &svc, nil
}

// --- RequestRepository implementation ---

func (r *requestRepository) Create(ctx context.Context, userID, serviceID int64, text string) (*model.Request, error) {
	const query = `INSERT INTO requests (user_id, service_id, text, status)
                   VALUES ($1, $2, $3, $4)
                   RETURNING id, status, created_at, updated_at`
	var req model.Request
	err := r.storage.pool.QueryRow(ctx, query, userID, serviceID, text, model.RequestStatusPending).
		Scan(&req.ID, &req.Status, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return nil, err
	}
	req.UserID = userID
	req.ServiceID = serviceID
	req.Text = text
	return &req, nil
}

func requestSelect(rel repository.Relations) string {
	query := `SELECT r.id, r.user_id, r.service_id, r.text, r.status, r.created_at, r.updated_at`
	if rel.User {
		query += `, u.name, u.email, u.profile_img`
	}
	if rel.Service {
		query += `, s.title, s.category`
	}
	query += ` FROM requests r`
	if rel.User {
		query += ` JOIN users u ON u.id = r.user_id`
	}
	if rel.Service {
		query += ` JOIN services s ON s.id = r.service_id`
	}
	return query
}

func scanRequest(row pgx.Row, rel repository.Relations) (*model.Request, error) {
	var req model.Request
	dest := []any{&req.ID, &req.UserID, &req.ServiceID, &req.Text, &req.Status, &req.CreatedAt, &req.UpdatedAt}
	if rel.User {
		req.User = &model.UserSummary{}
		dest = append(dest, &req.User.Name, &req.User.Email, &req.User.ProfileImg)
	}
	if rel.Service {
		req.Service = &model.ServiceSummary{}
		dest = append(dest, &req.Service.Title, &req.Service.Category)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *requestRepository) GetByID(ctx context.Context, id int64, rel repository.Relations) (*model.Request, error) {
	query := requestSelect(rel) + ` WHERE r.id=$1`
	req, err := scanRequest(r.storage.pool.QueryRow(ctx, query, id), rel)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return req, nil
}

func (r *requestRepository) List(ctx context.Context, rel repository.Relations) ([]model.Request, error) {
	query := requestSelect(rel) + ` ORDER BY r.created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Request
	for rows.Next() {
		req, err := scanRequest(rows, rel)
		if err != nil {
			return nil, err
		}
		result = append(result, *req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *requestRepository) UpdateText(ctx context.Context, id int64, text string) (*model.Request, error) {
	const query = `UPDATE requests SET text=$1, updated_at=NOW() WHERE id=$2
                   RETURNING id, user_id, service_id, text, status, created_at, updated_at`
	req, err := scanRequest(r.storage.pool.QueryRow(ctx, query, text, id), repository.Relations{})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return req, nil
}

func (r *requestRepository) UpdateStatus(ctx context.Context, id int64, status model.RequestStatus) (*model.Request, error) {
	const query = `UPDATE requests SET status=$1, updated_at=NOW() WHERE id=$2
                   RETURNING id, user_id, service_id, text, status, created_at, updated_at`
	req, err := scanRequest(r.storage.pool.QueryRow(ctx, query, status, id), repository.Relations{})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return req, nil
}

func (r *requestRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM requests WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- OrderRepository implementation ---

// CreatePaid inserts the order and increments the service sold counter in one
// transaction. The unique provider session id turns redelivered webhook
// events into a no-op: the insert returns no row and the increment is skipped.
func (r *orderRepository) CreatePaid(ctx context.Context, p repository.PaidOrderParams) (*model.Order, bool, error) {
	const insertQuery = `INSERT INTO orders (user_id, total_price, paid, paid_at, payment_method, provider_session_id)
                         VALUES ($1, $2, TRUE, $3, $4, $5)
                         ON CONFLICT (provider_session_id) DO NOTHING
                         RETURNING id, created_at`
	const incrementQuery = `UPDATE services SET sold = sold + 1 WHERE id=$1`

	var order *model.Order
	var created bool
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var o model.Order
		err := tx.QueryRow(ctx, insertQuery, p.UserID, p.TotalPrice, p.PaidAt, p.PaymentMethod, p.ProviderSessionID).
			Scan(&o.ID, &o.CreatedAt)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				existing, err := getOrderBySessionTx(ctx, tx, p.ProviderSessionID)
				if err != nil {
					return err
				}
				order = existing
				return nil
			}
			return err
		}

		tag, err := tx.Exec(ctx, incrementQuery, p.ServiceID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: service %d missing for sold increment", domainErrors.ErrIntegrity, p.ServiceID)
		}

		o.UserID = p.UserID
		o.TotalPrice = p.TotalPrice
		o.Paid = true
		paidAt := p.PaidAt
		o.PaidAt = &paidAt
		o.PaymentMethod = p.PaymentMethod
		o.ProviderSessionID = p.ProviderSessionID
		order = &o
		created = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return order, created, nil
}

func getOrderBySessionTx(ctx context.Context, tx pgx.Tx, sessionID string) (*model.Order, error) {
	const query = `SELECT id, user_id, total_price, paid, paid_at, payment_method, provider_session_id, created_at
                   FROM orders WHERE provider_session_id=$1`
	var o model.Order
	err := tx.QueryRow(ctx, query, sessionID).
		Scan(&o.ID, &o.UserID, &o.TotalPrice, &o.Paid, &o.PaidAt, &o.PaymentMethod, &o.ProviderSessionID, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	const query = `SELECT id, user_id, total_price, paid, paid_at, payment_method, provider_session_id, created_at
                   FROM orders WHERE id=$1`
	var o model.Order
	err := r.storage.pool.QueryRow(ctx, query, id).
		Scan(&o.ID, &o.UserID, &o.TotalPrice, &o.Paid, &o.PaidAt, &o.PaymentMethod, &o.ProviderSessionID, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) List(ctx context.Context) ([]model.Order, error) {
	const query = `SELECT id, user_id, total_price, paid, paid_at, payment_method, provider_session_id, created_at
                   FROM orders ORDER BY created_at DESC`
	return r.listOrders(ctx, query)
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	const query = `SELECT id, user_id, total_price, paid, paid_at, payment_method, provider_session_id, created_at
                   FROM orders WHERE user_id=$1 ORDER BY created_at DESC`
	return r.listOrders(ctx, query, userID)
}

func (r *orderRepository) listOrders(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.TotalPrice, &o.Paid, &o.PaidAt, &o.PaymentMethod, &o.ProviderSessionID, &o.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- ReconciliationRepository implementation ---

func (r *reconciliationRepository) RecordFailure(ctx context.Context, f model.ReconciliationFailure) (*model.ReconciliationFailure, error) {
	const query = `INSERT INTO reconciliation_failures (event_id, session_id, correlation_token, email, amount_minor, reason)
                   VALUES ($1, $2, $3, $4, $5, $6)
                   RETURNING id, attempts, created_at`
	err := r.storage.pool.QueryRow(ctx, query, f.EventID, f.SessionID, f.CorrelationToken, f.Email, f.AmountMinor, f.Reason).
		Scan(&f.ID, &f.Attempts, &f.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *reconciliationRepository) SelectBatchForRetry(ctx context.Context, limit, maxAttempts int) ([]model.ReconciliationFailure, error) {
	const selectQuery = `SELECT id, event_id, session_id, correlation_token, email, amount_minor, reason, attempts, created_at
                         FROM reconciliation_failures
                         WHERE resolved_at IS NULL AND attempts < $2
                         ORDER BY created_at
                         LIMIT $1
                         FOR UPDATE SKIP LOCKED`

	var failures []model.ReconciliationFailure
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, selectQuery, limit, maxAttempts)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var f model.ReconciliationFailure
			if err := rows.Scan(&f.ID, &f.EventID, &f.SessionID, &f.CorrelationToken, &f.Email, &f.AmountMinor, &f.Reason, &f.Attempts, &f.CreatedAt); err != nil {
				return err
			}
			if _, err := tx.Exec(ctx, `UPDATE reconciliation_failures SET attempts = attempts + 1 WHERE id=$1`, f.ID); err != nil {
				return err
			}
			f.Attempts++
			failures = append(failures, f)
		}
		if err := rows.Err(); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return failures, nil
}

func (r *reconciliationRepository) MarkResolved(ctx context.Context, id int64) error {
	const query = `UPDATE reconciliation_failures SET resolved_at=NOW() WHERE id=$1 AND resolved_at IS NULL`
	_, err := r.storage.pool.Exec(ctx, query, id)
	return err
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
