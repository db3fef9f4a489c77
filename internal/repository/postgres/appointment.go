package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/kabz8/Nextcare/internal/model"
	"github.com/kabz8/Nextcare/internal/repository"
)

const appointmentColumns = `
	id, service_id, patient_name, patient_last_name, patient_dob,
	email, phone, appointment_date, appointment_time, patient_type,
	payment_method, insurance_provider, message, booking_for_someone_else,
	confirmed, created_at
`

func (r *appointmentRepository) CreateWithSlot(ctx context.Context, apt *model.Appointment) error {
	query := `
		INSERT INTO appointments (
			service_id, patient_name, patient_last_name, patient_dob,
			email, phone, appointment_date, appointment_time, patient_type,
			payment_method, insurance_provider, message, booking_for_someone_else,
			confirmed
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at
	`

	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, claimSlotQuery, apt.AppointmentDate, apt.AppointmentTime)
		if err != nil {
			return fmt.Errorf("failed to claim time slot: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rows == 0 {
			return repository.ErrSlotUnavailable
		}

		err = tx.QueryRowxContext(ctx, query,
			apt.ServiceID,
			apt.PatientName,
			apt.PatientLastName,
			apt.PatientDob,
			apt.Email,
			apt.Phone,
			apt.AppointmentDate,
			apt.AppointmentTime,
			apt.PatientType,
			apt.PaymentMethod,
			apt.InsuranceProvider,
			apt.Message,
			apt.BookingForSomeoneElse,
			apt.Confirmed,
		).Scan(&apt.ID, &apt.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to create appointment: %w", err)
		}
		return nil
	})
}

func (r *appointmentRepository) Confirm(ctx context.Context, id int64) (*model.Appointment, error) {
	query := `
		UPDATE appointments
		SET confirmed = true
		WHERE id = $1
		RETURNING ` + appointmentColumns

	var apt model.Appointment
	if err := r.db.GetContext(ctx, &apt, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to confirm appointment: %w", err)
	}
	return &apt, nil
}

func (r *appointmentRepository) Get(ctx context.Context, id int64) (*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE id = $1`

	var apt model.Appointment
	if err := r.db.GetContext(ctx, &apt, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &apt, nil
}

func (r *appointmentRepository) List(ctx context.Context) ([]*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments ORDER BY created_at DESC, id DESC`

	appointments := []*model.Appointment{}
	if err := r.db.SelectContext(ctx, &appointments, query); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}
