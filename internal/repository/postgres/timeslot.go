package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/kabz8/Nextcare/internal/model"
)

// claimSlotQuery flips a single available row. FOR UPDATE makes a concurrent claimer
// wait and then re-check availability, so only one of them sees a row affected.
const claimSlotQuery = `
	UPDATE time_slots
	SET available = false
	WHERE id = (
		SELECT id FROM time_slots
		WHERE date = $1 AND time = $2 AND available = true
		ORDER BY id
		LIMIT 1
		FOR UPDATE
	)
`

func (r *timeSlotRepository) CountByDate(ctx context.Context, date string) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM time_slots WHERE date = $1`, date); err != nil {
		return 0, fmt.Errorf("failed to count time slots: %w", err)
	}
	return n, nil
}

func (r *timeSlotRepository) ListAvailable(ctx context.Context, date string) ([]*model.TimeSlot, error) {
	query := `
		SELECT id, date, time, available
		FROM time_slots
		WHERE date = $1 AND available = true
		ORDER BY id
	`
	slots := []*model.TimeSlot{}
	if err := r.db.SelectContext(ctx, &slots, query, date); err != nil {
		return nil, fmt.Errorf("failed to list time slots: %w", err)
	}
	return slots, nil
}

func (r *timeSlotRepository) CreateBatch(ctx context.Context, date string, times []string) (int, error) {
	if len(times) == 0 {
		return 0, nil
	}

	values := make([]string, 0, len(times))
	args := make([]interface{}, 0, len(times)+1)
	args = append(args, date)
	for i, t := range times {
		values = append(values, fmt.Sprintf("($1, $%d, true)", i+2))
		args = append(args, t)
	}

	query := `INSERT INTO time_slots (date, time, available) VALUES ` +
		strings.Join(values, ", ") +
		` ON CONFLICT (date, time) DO NOTHING`

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to create time slots: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return int(rows), nil
}

func (r *timeSlotRepository) MarkBooked(ctx context.Context, date, time string) (bool, error) {
	result, err := r.db.ExecContext(ctx, claimSlotQuery, date, time)
	if err != nil {
		return false, fmt.Errorf("failed to mark time slot booked: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows > 0, nil
}

func (r *timeSlotRepository) Count(ctx context.Context) (int, error) {
	return count(ctx, r.db, "time_slots")
}
