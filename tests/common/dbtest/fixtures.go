//go:build unit || e2e

package dbtest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"reminder-engine/internal/domain/reminder"
	"reminder-engine/internal/domain/sendwindow"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func CreateTestClient(t *testing.T, db DBLike, tenantID uuid.UUID, email, phone string) uuid.UUID {
	t.Helper()

	clientID := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO clients (id, tenant_id, email, phone, first_name, last_name) VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), 'Test', 'Client')",
		clientID, tenantID, email, phone)
	require.NoError(t, err)
	return clientID
}

func CreateTestRule(t *testing.T, db DBLike, tenantID uuid.UUID, delayDays int, ch reminder.Channel, template string, position int) uuid.UUID {
	t.Helper()

	ruleID := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO reminder_rules (id, tenant_id, delay_days, channel, template, position, enabled) VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, true)",
		ruleID, tenantID, delayDays, string(ch), template, position)
	require.NoError(t, err)
	return ruleID
}

func SetTenantWindow(t *testing.T, db DBLike, tenantID uuid.UUID, timezone string, window *sendwindow.RawWindow) {
	t.Helper()

	var raw []byte
	if window != nil {
		var err error
		raw, err = json.Marshal(window)
		require.NoError(t, err)
	}
	_, err := db.Exec(context.Background(), `
		INSERT INTO tenant_settings (tenant_id, timezone, send_window) VALUES ($1, $2, $3)
		ON CONFLICT (tenant_id) DO UPDATE SET timezone = EXCLUDED.timezone, send_window = EXCLUDED.send_window`,
		tenantID, timezone, raw)
	require.NoError(t, err)
}

// CreateDueReminder inserts a scheduled reminder whose next attempt is at.
func CreateDueReminder(t *testing.T, db DBLike, tenantID, clientID uuid.UUID, ch reminder.Channel, message string, at time.Time) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(context.Background(), `
		INSERT INTO reminders (id, tenant_id, client_id, channel, message, status, scheduled_at, next_attempt_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), 'scheduled', $6, $6)`,
		id, tenantID, clientID, string(ch), message, at)
	require.NoError(t, err)
	return id
}

func ReminderStatus(t *testing.T, db DBLike, id uuid.UUID) (string, int) {
	t.Helper()

	var status string
	var retries int
	err := db.QueryRow(context.Background(), "SELECT status, retry_count FROM reminders WHERE id = $1", id).Scan(&status, &retries)
	require.NoError(t, err)
	return status, retries
}

func CountDispatchLogs(t *testing.T, db DBLike, reminderID uuid.UUID) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(), "SELECT COUNT(*) FROM dispatch_logs WHERE reminder_id = $1", reminderID).Scan(&n)
	require.NoError(t, err)
	return n
}

// inserts reference data needed by tests; the schema has none today
func SeedReferenceData(_ *pgxpool.Pool) error {
	return nil
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
