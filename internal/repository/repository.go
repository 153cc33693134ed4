package repository

import (
	"context"
	"errors"

	"github.com/AlexandraCulea/Car-Service-RESTful-API/internal/domain"
)

var ErrNotFound = errors.New("record not found")
var ErrDuplicateEntry = errors.New("record already exists")

// ClientRepository is the storage port for clients and their owned cars.
// Implementations reload the backing store before every operation and
// persist the full state after every mutation.
type ClientRepository interface {
	FindAll(ctx context.Context) ([]domain.Client, error)
	FindByID(ctx context.Context, id string) (*domain.Client, error)
	Create(ctx context.Context, client *domain.Client) (*domain.Client, error)
	// Update replaces the client's scalar fields; the car list is managed
	// through the car methods below.
	Update(ctx context.Context, client *domain.Client) (*domain.Client, error)
	Delete(ctx context.Context, id string) error

	AddCar(ctx context.Context, clientID string, car *domain.Car) (*domain.Car, error)
	UpdateCar(ctx context.Context, clientID string, car *domain.Car) (*domain.Car, error)
	DeleteCar(ctx context.Context, clientID, carID string) error
}

type AppointmentRepository interface {
	Find(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error)
	FindByID(ctx context.Context, id string) (*domain.Appointment, error)
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	Update(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	Delete(ctx context.Context, id string) error
}
