package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/AlexandraCulea/Car-Service-RESTful-API/internal/domain"
	"github.com/AlexandraCulea/Car-Service-RESTful-API/internal/repository"
)

type pgAppointmentRepository struct {
	db *sql.DB
}

func NewPgAppointmentRepository(db *sql.DB) repository.AppointmentRepository {
	return &pgAppointmentRepository{db: db}
}

const appointmentColumns = `id, client_id, car_id, contact_method, action, date, time, duration,
	reception_notes, processing_notes, repair_duration`

func (r *pgAppointmentRepository) Find(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments`
	var conds []string
	var args []any

	if filter.ClientID != "" {
		args = append(args, filter.ClientID)
		conds = append(conds, fmt.Sprintf("client_id = $%d", len(args)))
	}
	if filter.Date != "" {
		args = append(args, filter.Date)
		conds = append(conds, fmt.Sprintf("date = $%d", len(args)))
	}
	if filter.Action != "" {
		args = append(args, "%"+filter.Action+"%")
		conds = append(conds, fmt.Sprintf("action ILIKE $%d", len(args)))
	}
	if filter.ContactMethod != "" {
		args = append(args, filter.ContactMethod)
		conds = append(conds, fmt.Sprintf("contact_method = $%d", len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("AppointmentRepository.Find: %w", err)
	}
	defer rows.Close()

	appts := []domain.Appointment{}
	for rows.Next() {
		var a domain.Appointment
		if err := scanAppointment(rows, &a); err != nil {
			return nil, fmt.Errorf("AppointmentRepository.Find (scanning row): %w", err)
		}
		appts = append(appts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("AppointmentRepository.Find (rows error): %w", err)
	}
	return appts, nil
}

func (r *pgAppointmentRepository) FindByID(ctx context.Context, id string) (*domain.Appointment, error) {
	a := &domain.Appointment{}
	row := r.db.QueryRowContext(ctx,
		`SELECT `+appointmentColumns+` FROM appointments WHERE id = $1`, id)
	if err := scanAppointment(row, a); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("AppointmentRepository.FindByID: %w", err)
	}
	return a, nil
}

func (r *pgAppointmentRepository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO appointments (id, client_id, car_id, contact_method, action, date, time, duration)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		appt.ID, appt.ClientID, appt.CarID, appt.ContactMethod, appt.Action,
		appt.Date, appt.Time, appt.Duration)
	if err != nil {
		return nil, fmt.Errorf("AppointmentRepository.Create: %w", err)
	}
	return appt, nil
}

func (r *pgAppointmentRepository) Update(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE appointments SET client_id = $1, car_id = $2, contact_method = $3, action = $4,
		        date = $5, time = $6, duration = $7,
		        reception_notes = $8, processing_notes = $9, repair_duration = $10
		 WHERE id = $11`,
		appt.ClientID, appt.CarID, appt.ContactMethod, appt.Action,
		appt.Date, appt.Time, appt.Duration,
		appt.ReceptionNotes, appt.ProcessingNotes, appt.RepairDuration, appt.ID)
	if err != nil {
		return nil, fmt.Errorf("AppointmentRepository.Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, repository.ErrNotFound
	}
	return appt, nil
}

func (r *pgAppointmentRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("AppointmentRepository.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanAppointment(row rowScanner, a *domain.Appointment) error {
	return row.Scan(&a.ID, &a.ClientID, &a.CarID, &a.ContactMethod, &a.Action,
		&a.Date, &a.Time, &a.Duration,
		&a.ReceptionNotes, &a.ProcessingNotes, &a.RepairDuration)
}
