package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"reminder-engine/internal/domain/client"
	"reminder-engine/internal/domain/reminder"
	"reminder-engine/internal/domain/rule"
	"reminder-engine/internal/domain/sendwindow"
	"reminder-engine/internal/infra/readstore"
	"reminder-engine/internal/infra/repository"
	sqlc "reminder-engine/internal/infra/sqlc/generated"
	"reminder-engine/internal/pkg/errs"
	"reminder-engine/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type PostgresUoW struct {
	pool *pgxpool.Pool
	q    *sqlc.Queries
}

func NewPostgresUoW(pool *pgxpool.Pool, q *sqlc.Queries) shared.UnitOfWork {
	return &PostgresUoW{
		pool: pool,
		q:    q,
	}
}

// ReadCommitted prevents dirty reads while allowing concurrent writes
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

// Reads run on the pool, outside any transaction
func (u *PostgresUoW) Reads() shared.CommandReads {
	return newCommandReads(u.q, u.pool)
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTxWithOptions(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	const maxRetries = 3
	base := 100 * time.Millisecond

	for attempt := 0; attempt <= maxRetries; attempt++ {
		pgxTx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return errs.Mark(err, errTransactionBegin)
		}

		tx := &pgTx{
			dbtx: pgxTx,
			uow:  u,
		}

		err = fn(ctx, tx)
		if err == nil {
			if err = pgxTx.Commit(ctx); err == nil {
				return nil
			}
			err = errs.Mark(err, errTransactionCommit)
		}

		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
			}
		}

		if !shouldRetry(err, attempt, maxRetries) {
			if attempt == maxRetries {
				slog.Error("transaction failed after max retries",
					"attempts", attempt+1,
					"error", err.Error())
				return errs.Mark(err, errMaxRetriesExceeded)
			}
			return err
		}

		waitTime := calculateBackoff(attempt, base)

		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return errMaxRetriesExceeded
}

func shouldRetry(err error, attempt, maxRetries int) bool {
	return isRetryableError(err) && attempt < maxRetries
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// Fallback to a simple calculation if crypto/rand fails
		return 0
	}
	// Safe conversion: mask high bit to ensure positive int64
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	// #nosec G115 -- Intentionally safe conversion after masking
	return int64(uval) % n
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}

type pgTx struct {
	dbtx sqlc.DBTX
	uow  *PostgresUoW

	// Lazy-initialized repositories
	reminderRepo    shared.ReminderRepository
	dispatchLogRepo shared.DispatchLogRepository
	clientRepo      shared.ClientRepository
	commandReads    shared.CommandReads
}

func (t *pgTx) Reminders() shared.ReminderRepository {
	if t.reminderRepo == nil {
		t.reminderRepo = repository.NewReminderRepository(t.uow.q, t.dbtx)
	}
	return t.reminderRepo
}

func (t *pgTx) DispatchLogs() shared.DispatchLogRepository {
	if t.dispatchLogRepo == nil {
		t.dispatchLogRepo = repository.NewDispatchLogRepository(t.uow.q, t.dbtx)
	}
	return t.dispatchLogRepo
}

func (t *pgTx) Clients() shared.ClientRepository {
	if t.clientRepo == nil {
		t.clientRepo = repository.NewClientRepository(t.uow.q, t.dbtx)
	}
	return t.clientRepo
}

func (t *pgTx) Reads() shared.CommandReads {
	if t.commandReads == nil {
		t.commandReads = newCommandReads(t.uow.q, t.dbtx)
	}
	return t.commandReads
}

type commandReads struct {
	reminders *readstore.ReminderReadStore
	clients   *readstore.ClientReadStore
	rules     *readstore.RuleReadStore
	settings  *readstore.SettingsReadStore
}

func newCommandReads(q *sqlc.Queries, db sqlc.DBTX) *commandReads {
	return &commandReads{
		reminders: readstore.NewReminderReadStore(q, db),
		clients:   readstore.NewClientReadStore(q, db),
		rules:     readstore.NewRuleReadStore(q, db),
		settings:  readstore.NewSettingsReadStore(q, db),
	}
}

func (r *commandReads) ReminderByID(ctx context.Context, tenantID, id uuid.UUID) (*reminder.Reminder, error) {
	return r.reminders.FindByID(ctx, tenantID, id)
}

func (r *commandReads) ClientByID(ctx context.Context, id uuid.UUID) (*client.Client, error) {
	return r.clients.FindByID(ctx, id)
}

func (r *commandReads) SendWindowPolicy(ctx context.Context, tenantID uuid.UUID) (*sendwindow.Policy, error) {
	return r.settings.SendWindowPolicy(ctx, tenantID)
}

func (r *commandReads) EnabledRules(ctx context.Context, tenantID uuid.UUID, ruleIDs []uuid.UUID) ([]rule.Rule, error) {
	return r.rules.ListEnabled(ctx, tenantID, ruleIDs)
}

func (r *commandReads) EligibleClients(ctx context.Context, tenantID uuid.UUID, limit int) ([]client.Client, error) {
	return r.clients.ListEligible(ctx, tenantID, limit)
}
