//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// CreateAvailability inserts an active weekly row with no breaks. Times are HH:MM.
func CreateAvailability(t *testing.T, db DBLike, providerID uuid.UUID, day time.Weekday, start, end string, slotMinutes int) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(context.Background(), `
		INSERT INTO availability (id, provider_id, day_of_week, start_time, end_time, slot_minutes, breaks, is_active)
		VALUES ($1, $2, $3, $4::time, $5::time, $6, '[]'::jsonb, true)`,
		id, providerID, int16(day), start, end, slotMinutes)
	require.NoError(t, err)
	return id
}

// CreateFullDayHoliday blocks date (YYYY-MM-DD) for providerID.
func CreateFullDayHoliday(t *testing.T, db DBLike, providerID uuid.UUID, date string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(context.Background(), `
		INSERT INTO holidays (id, provider_id, holiday_date, holiday_type, reason)
		VALUES ($1, $2, $3::date, 'FULL_DAY', 'fixture')`,
		id, providerID, date)
	require.NoError(t, err)
	return id
}

// CountBooked returns the number of BOOKED rows for the provider on date.
func CountBooked(t *testing.T, db DBLike, providerID uuid.UUID, date string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(), `
		SELECT count(*) FROM appointments
		WHERE provider_id = $1 AND appointment_date = $2::date AND status = 'BOOKED'`,
		providerID, date).Scan(&n)
	require.NoError(t, err)
	return n
}

// AppointmentStatus reads the stored status of one appointment.
func AppointmentStatus(t *testing.T, db DBLike, id uuid.UUID) string {
	t.Helper()

	var status string
	err := db.QueryRow(context.Background(), "SELECT status FROM appointments WHERE id = $1", id).Scan(&status)
	require.NoError(t, err)
	return status
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables
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
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
