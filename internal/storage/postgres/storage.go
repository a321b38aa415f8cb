package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/polkiloo/foodshare/internal/domain/errors"
	"github.com/polkiloo/foodshare/internal/domain/model"
	"github.com/polkiloo/foodshare/internal/domain/repository"
)

// pgxPool is the subset of *pgxpool.Pool used by Storage.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage keeps one JSONB document per user. Row locks serialise updates of
// the same user, so concurrent lifecycle operations never lose writes.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type userRepository struct {
	storage *Storage
}

type activityRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
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
func (s *Storage) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}

// Factory methods for domain repositories.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Activity() repository.ActivityRepository {
	return &activityRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id BIGSERIAL PRIMARY KEY,
            email TEXT UNIQUE NOT NULL,
            document JSONB NOT NULL,
            version BIGINT NOT NULL DEFAULT 1,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS activity_log (
            id BIGSERIAL PRIMARY KEY,
            kind TEXT NOT NULL,
            user_id BIGINT NOT NULL,
            order_id TEXT,
            occurred_at TIMESTAMPTZ NOT NULL
        )`,
		`CREATE INDEX IF NOT EXISTS idx_users_active_orders ON users USING GIN ((document->'activeOrders') jsonb_path_ops)`,
		`CREATE INDEX IF NOT EXISTS idx_activity_occurred ON activity_log(occurred_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

func decodeUser(id int64, document []byte, version int64) (*model.User, error) {
	var u model.User
	if err := json.Unmarshal(document, &u); err != nil {
		return nil, domainErrors.NewIOError("decode user document", err)
	}
	u.ID = id
	u.Version = version
	return &u, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, user model.User) (*model.User, error) {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	user.Email = normalizeEmail(user.Email)
	user.Version = 1
	document, err := json.Marshal(user)
	if err != nil {
		return nil, err
	}

	const query = `INSERT INTO users (email, document, version) VALUES ($1, $2, 1) RETURNING id`
	var id int64
	if err := r.storage.pool.QueryRow(ctx, query, user.Email, document).Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, domainErrors.NewIOError("insert user", err)
	}
	user.ID = id
	return &user, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT id, document, version FROM users WHERE id=$1`
	return r.getOne(ctx, query, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	const query = `SELECT id, document, version FROM users WHERE email=$1`
	return r.getOne(ctx, query, normalizeEmail(email))
}

func (r *userRepository) getOne(ctx context.Context, query string, arg any) (*model.User, error) {
	var (
		id       int64
		document []byte
		version  int64
	)
	err := r.storage.pool.QueryRow(ctx, query, arg).Scan(&id, &document, &version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, domainErrors.NewIOError("select user", err)
	}
	return decodeUser(id, document, version)
}

func (r *userRepository) FindOrderOwner(ctx context.Context, orderID string) (int64, error) {
	const query = `SELECT id FROM users
                   WHERE document->'activeOrders' @> jsonb_build_array(jsonb_build_object('id', $1::text))
                   LIMIT 1`
	var id int64
	if err := r.storage.pool.QueryRow(ctx, query, orderID).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domainErrors.ErrNotFound
		}
		return 0, domainErrors.NewIOError("find order owner", err)
	}
	return id, nil
}

func (r *userRepository) Update(ctx context.Context, id int64, fn repository.UpdateFunc) (*model.User, error) {
	var updated *model.User
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const selectQuery = `SELECT document, version FROM users WHERE id=$1 FOR UPDATE`
		var (
			document []byte
			version  int64
		)
		if err := tx.QueryRow(ctx, selectQuery, id).Scan(&document, &version); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return domainErrors.NewIOError("lock user", err)
		}

		u, err := decodeUser(id, document, version)
		if err != nil {
			return err
		}
		if err := fn(u); err != nil {
			return err
		}
		u.ID = id
		u.Version = version + 1
		u.Email = normalizeEmail(u.Email)

		encoded, err := json.Marshal(u)
		if err != nil {
			return err
		}
		const updateQuery = `UPDATE users SET email=$1, document=$2, version=$3, updated_at=NOW() WHERE id=$4`
		if _, err := tx.Exec(ctx, updateQuery, u.Email, encoded, u.Version, id); err != nil {
			return domainErrors.NewIOError("update user", err)
		}
		updated = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *userRepository) LoadAll(ctx context.Context) ([]model.User, error) {
	return loadUsers(ctx, r.storage.pool)
}

// SaveAll upserts every user in one transaction, keeping the given versions.
func (r *userRepository) SaveAll(ctx context.Context, users []model.User) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		for _, u := range users {
			u.Email = normalizeEmail(u.Email)
			if u.ID == 0 {
				document, err := json.Marshal(u)
				if err != nil {
					return err
				}
				const insert = `INSERT INTO users (email, document, version) VALUES ($1, $2, $3)`
				if _, err := tx.Exec(ctx, insert, u.Email, document, u.Version); err != nil {
					return domainErrors.NewIOError("insert user", err)
				}
				continue
			}

			document, err := json.Marshal(u)
			if err != nil {
				return err
			}
			const upsert = `INSERT INTO users (id, email, document, version) VALUES ($1, $2, $3, $4)
                            ON CONFLICT (id) DO UPDATE
                            SET email = EXCLUDED.email,
                                document = EXCLUDED.document,
                                version = EXCLUDED.version,
                                updated_at = NOW()`
			if _, err := tx.Exec(ctx, upsert, u.ID, u.Email, document, u.Version); err != nil {
				return domainErrors.NewIOError("upsert user", err)
			}
		}

		const resync = `SELECT setval(pg_get_serial_sequence('users', 'id'), GREATEST((SELECT MAX(id) FROM users), 1))`
		if _, err := tx.Exec(ctx, resync); err != nil {
			return domainErrors.NewIOError("resync user sequence", err)
		}
		return nil
	})
}

// --- ActivityRepository implementation ---

func (r *activityRepository) Append(ctx context.Context, event model.Activity) error {
	const query = `INSERT INTO activity_log (kind, user_id, order_id, occurred_at) VALUES ($1, $2, NULLIF($3, ''), $4)`
	if _, err := r.storage.pool.Exec(ctx, query, string(event.Kind), event.UserID, event.OrderID, event.OccurredAt); err != nil {
		return domainErrors.NewIOError("append activity", err)
	}
	return nil
}

func (r *activityRepository) List(ctx context.Context) ([]model.Activity, error) {
	return listActivity(ctx, r.storage.pool)
}

// querier is satisfied by both the pool and a transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func loadUsers(ctx context.Context, q querier) ([]model.User, error) {
	const query = `SELECT id, document, version FROM users ORDER BY id`
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, domainErrors.NewIOError("load users", err)
	}
	defer rows.Close()

	result := []model.User{}
	for rows.Next() {
		var (
			id       int64
			document []byte
			version  int64
		)
		if err := rows.Scan(&id, &document, &version); err != nil {
			return nil, domainErrors.NewIOError("scan user", err)
		}
		u, err := decodeUser(id, document, version)
		if err != nil {
			return nil, err
		}
		result = append(result, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, domainErrors.NewIOError("load users", err)
	}
	return result, nil
}

func listActivity(ctx context.Context, q querier) ([]model.Activity, error) {
	const query = `SELECT kind, user_id, COALESCE(order_id, ''), occurred_at
                   FROM activity_log ORDER BY occurred_at, id`
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, domainErrors.NewIOError("list activity", err)
	}
	defer rows.Close()

	var result []model.Activity
	for rows.Next() {
		var (
			a    model.Activity
			kind string
		)
		if err := rows.Scan(&kind, &a.UserID, &a.OrderID, &a.OccurredAt); err != nil {
			return nil, domainErrors.NewIOError("scan activity", err)
		}
		a.Kind = model.ActivityKind(kind)
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, domainErrors.NewIOError("list activity", err)
	}
	return result, nil
}

// Snapshot reads users and the activity log from one repeatable-read transaction.
func (s *Storage) Snapshot(ctx context.Context) ([]model.User, []model.Activity, error) {
	var (
		users  []model.User
		events []model.Activity
	)
	opts := pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}
	err := s.withinTx(ctx, opts, func(tx pgx.Tx) error {
		var err error
		if users, err = loadUsers(ctx, tx); err != nil {
			return err
		}
		events, err = listActivity(ctx, tx)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return users, events, nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) error {
	return s.withinTx(ctx, pgx.TxOptions{}, fn)
}

func (s *Storage) withinTx(ctx context.Context, opts pgx.TxOptions, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, opts)
	if err != nil {
		return domainErrors.NewIOError("begin transaction", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else if cerr := tx.Commit(ctx); cerr != nil {
			err = domainErrors.NewIOError("commit transaction", cerr)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := s.pool.Ping(ctx); err != nil {
		s.logger.Warn("database ping failed", slog.String("error", err.Error()))
		return domainErrors.NewIOError("ping database", err)
	}
	return nil
}
