package jsonfile

import (
	"context"
	"fmt"

	"github.com/AlexandraCulea/Car-Service-RESTful-API/internal/domain"
	"github.com/AlexandraCulea/Car-Service-RESTful-API/internal/repository"
)

type clientRepository struct {
	db *DB
}

func NewClientRepository(db *DB) repository.ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) FindAll(_ context.Context) ([]domain.Client, error) {
	var out []domain.Client
	err := r.db.view(func(doc *document) error {
		out = make([]domain.Client, len(doc.Clients))
		for i := range doc.Clients {
			out[i] = copyClient(&doc.Clients[i])
		}
		return nil
	})
	return out, err
}

func (r *clientRepository) FindByID(_ context.Context, id string) (*domain.Client, error) {
	var out *domain.Client
	err := r.db.view(func(doc *document) error {
		c := findClient(doc, id)
		if c == nil {
			return repository.ErrNotFound
		}
		cp := copyClient(c)
		out = &cp
		return nil
	})
	return out, err
}

func (r *clientRepository) Create(_ context.Context, client *domain.Client) (*domain.Client, error) {
	err := r.db.update(func(doc *document) error {
		doc.Clients = append(doc.Clients, copyClient(client))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}

func (r *clientRepository) Update(_ context.Context, client *domain.Client) (*domain.Client, error) {
	err := r.db.update(func(doc *document) error {
		c := findClient(doc, client.ID)
		if c == nil {
			return repository.ErrNotFound
		}
		c.FirstName = client.FirstName
		c.LastName = client.LastName
		c.Email = client.Email
		c.PhoneNumbers = append([]string(nil), client.PhoneNumbers...)
		c.IsActive = client.IsActive
		client.Cars = append([]domain.Car(nil), c.Cars...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}

func (r *clientRepository) Delete(_ context.Context, id string) error {
	return r.db.update(func(doc *document) error {
		for i := range doc.Clients {
			if doc.Clients[i].ID == id {
				doc.Clients = append(doc.Clients[:i], doc.Clients[i+1:]...)
				return nil
			}
		}
		return repository.ErrNotFound
	})
}

func (r *clientRepository) AddCar(_ context.Context, clientID string, car *domain.Car) (*domain.Car, error) {
	err := r.db.update(func(doc *document) error {
		c := findClient(doc, clientID)
		if c == nil {
			return repository.ErrNotFound
		}
		for i := range c.Cars {
			if c.Cars[i].NumberPlate == car.NumberPlate {
				return fmt.Errorf("%w: number plate %q", repository.ErrDuplicateEntry, car.NumberPlate)
			}
		}
		c.Cars = append(c.Cars, *car)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return car, nil
}

func (r *clientRepository) UpdateCar(_ context.Context, clientID string, car *domain.Car) (*domain.Car, error) {
	err := r.db.update(func(doc *document) error {
		c := findClient(doc, clientID)
		if c == nil {
			return repository.ErrNotFound
		}
		for i := range c.Cars {
			if c.Cars[i].NumberPlate == car.NumberPlate && c.Cars[i].ID != car.ID {
				return fmt.Errorf("%w: number plate %q", repository.ErrDuplicateEntry, car.NumberPlate)
			}
		}
		for i := range c.Cars {
			if c.Cars[i].ID == car.ID {
				c.Cars[i] = *car
				return nil
			}
		}
		return repository.ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return car, nil
}

func (r *clientRepository) DeleteCar(_ context.Context, clientID, carID string) error {
	return r.db.update(func(doc *document) error {
		c := findClient(doc, clientID)
		if c == nil {
			return repository.ErrNotFound
		}
		for i := range c.Cars {
			if c.Cars[i].ID == carID {
				c.Cars = append(c.Cars[:i], c.Cars[i+1:]...)
				return nil
			}
		}
		return repository.ErrNotFound
	})
}

func findClient(doc *document, id string) *domain.Client {
	for i := range doc.Clients {
		if doc.Clients[i].ID == id {
			return &doc.Clients[i]
		}
	}
	return nil
}

func copyClient(c *domain.Client) domain.Client {
	cp := *c
	cp.PhoneNumbers = append([]string(nil), c.PhoneNumbers...)
	cp.Cars = append([]domain.Car(nil), c.Cars...)
	if cp.PhoneNumbers == nil {
		cp.PhoneNumbers = []string{}
	}
	if cp.Cars == nil {
		cp.Cars = []domain.Car{}
	}
	return cp
}
