package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Golffzza/wellness-server/internal/domain"
)

type BookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

// InsertAtomic serializes writers on the (date, slot) key with a
// transaction-scoped advisory lock, then counts and inserts inside the same
// transaction. Writers for distinct keys take distinct locks and do not block
// each other. Returns domain.ErrSlotFull when the slot is at capacity.
func (r *BookingRepository) InsertAtomic(ctx context.Context, capacity int, b domain.Booking) (domain.Booking, error) {
	committed := b
	err := withTx(ctx, r.pool, func(txCtx context.Context) error {
		if err := r.lockSlot(txCtx, b.Date, b.Slot); err != nil {
			return err
		}

		count, err := r.CountConfirmed(txCtx, b.Date, b.Slot)
		if err != nil {
			return err
		}
		if count >= capacity {
			return domain.ErrSlotFull
		}

		const stmt = `
INSERT INTO bookings (user_id, name, slot_date, slot_time, note, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, created_at`

		err = r.queryRow(txCtx, stmt,
			b.UserID,
			b.Name,
			b.Date,
			b.Slot,
			b.Note,
			b.Status,
			b.CreatedAt,
		).Scan(&committed.ID, &committed.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert booking: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Booking{}, err
	}
	return committed, nil
}

// lockSlot takes pg_advisory_xact_lock on a key derived from (date, slot).
// The lock is released automatically at commit or rollback.
func (r *BookingRepository) lockSlot(ctx context.Context, date, slot string) error {
	const stmt = `SELECT pg_advisory_xact_lock(hashtext($1 || '|' || $2))`
	if _, err := r.exec(ctx, stmt, date, slot); err != nil {
		return fmt.Errorf("lock slot: %w", err)
	}
	return nil
}

func (r *BookingRepository) CountConfirmed(ctx context.Context, date, slot string) (int, error) {
	const query = `
SELECT COUNT(*)
FROM bookings
WHERE slot_date = $1 AND slot_time = $2 AND status = 'CONFIRMED'`

	var count int
	if err := r.queryRow(ctx, query, date, slot).Scan(&count); err != nil {
		return 0, fmt.Errorf("count confirmed: %w", err)
	}
	return count, nil
}

func (r *BookingRepository) CountConfirmedByDate(ctx context.Context, date string) (map[string]int, error) {
	const query = `
SELECT slot_time, COUNT(*)
FROM bookings
WHERE slot_date = $1 AND status = 'CONFIRMED'
GROUP BY slot_time`

	rows, err := r.query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("count confirmed by date: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var slot string
		var count int
		if err := rows.Scan(&slot, &count); err != nil {
			return nil, fmt.Errorf("scan slot count: %w", err)
		}
		counts[slot] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("count confirmed by date: %w", err)
	}
	return counts, nil
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	const query = `
SELECT id, user_id, name, slot_date, slot_time, note, status, created_at
FROM bookings
WHERE user_id = $1
ORDER BY slot_date, slot_time`

	rows, err := r.query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list by user: %w", err)
	}
	defer rows.Close()
	return scanBookings(rows)
}

func (r *BookingRepository) ListBySlot(ctx context.Context, date, slot string) ([]domain.Booking, error) {
	const query = `
SELECT id, user_id, name, slot_date, slot_time, note, status, created_at
FROM bookings
WHERE slot_date = $1 AND slot_time = $2
ORDER BY id`

	rows, err := r.query(ctx, query, date, slot)
	if err != nil {
		return nil, fmt.Errorf("list by slot: %w", err)
	}
	defer rows.Close()
	return scanBookings(rows)
}

func scanBookings(rows pgx.Rows) ([]domain.Booking, error) {
	var out []domain.Booking
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(&b.ID, &b.UserID, &b.Name, &b.Date, &b.Slot, &b.Note, &b.Status, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read bookings: %w", err)
	}
	return out, nil
}

func (r *BookingRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *BookingRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}

func (r *BookingRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
