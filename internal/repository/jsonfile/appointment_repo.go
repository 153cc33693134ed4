package jsonfile

import (
	"context"

	"github.com/AlexandraCulea/Car-Service-RESTful-API/internal/domain"
	"github.com/AlexandraCulea/Car-Service-RESTful-API/internal/repository"
)

type appointmentRepository struct {
	db *DB
}

func NewAppointmentRepository(db *DB) repository.AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) Find(_ context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error) {
	var out []domain.Appointment
	err := r.db.view(func(doc *document) error {
		out = []domain.Appointment{}
		for _, a := range doc.Appointments {
			if filter.Matches(a) {
				out = append(out, a)
			}
		}
		return nil
	})
	return out, err
}

func (r *appointmentRepository) FindByID(_ context.Context, id string) (*domain.Appointment, error) {
	var out *domain.Appointment
	err := r.db.view(func(doc *document) error {
		for i := range doc.Appointments {
			if doc.Appointments[i].ID == id {
				a := doc.Appointments[i]
				out = &a
				return nil
			}
		}
		return repository.ErrNotFound
	})
	return out, err
}

func (r *appointmentRepository) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	err := r.db.update(func(doc *document) error {
		doc.Appointments = append(doc.Appointments, *appt)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return appt, nil
}

func (r *appointmentRepository) Update(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	err := r.db.update(func(doc *document) error {
		for i := range doc.Appointments {
			if doc.Appointments[i].ID == appt.ID {
				doc.Appointments[i] = *appt
				return nil
			}
		}
		return repository.ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return appt, nil
}

func (r *appointmentRepository) Delete(_ context.Context, id string) error {
	return r.db.update(func(doc *document) error {
		for i := range doc.Appointments {
			if doc.Appointments[i].ID == id {
				doc.Appointments = append(doc.Appointments[:i], doc.Appointments[i+1:]...)
				return nil
			}
		}
		return repository.ErrNotFound
	})
}
