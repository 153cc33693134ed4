package postgresql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/AlexandraCulea/Car-Service-RESTful-API/internal/domain"
	"github.com/AlexandraCulea/Car-Service-RESTful-API/internal/repository"
)

const uniqueViolation = "23505"

type pgClientRepository struct {
	db *sql.DB
}

func NewPgClientRepository(db *sql.DB) repository.ClientRepository {
	return &pgClientRepository{db: db}
}

func (r *pgClientRepository) FindAll(ctx context.Context) ([]domain.Client, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, first_name, last_name, email, phone_numbers, is_active FROM clients ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("ClientRepository.FindAll: %w", err)
	}
	defer rows.Close()

	clients := []domain.Client{}
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("ClientRepository.FindAll (scanning row): %w", err)
		}
		clients = append(clients, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ClientRepository.FindAll (rows error): %w", err)
	}

	for i := range clients {
		cars, err := r.findCars(ctx, clients[i].ID)
		if err != nil {
			return nil, err
		}
		clients[i].Cars = cars
	}
	return clients, nil
}

func (r *pgClientRepository) FindByID(ctx context.Context, id string) (*domain.Client, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, first_name, last_name, email, phone_numbers, is_active FROM clients WHERE id = $1`, id)
	c, err := scanClient(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("ClientRepository.FindByID: %w", err)
	}
	cars, err := r.findCars(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	c.Cars = cars
	return c, nil
}

func (r *pgClientRepository) Create(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	phones, err := json.Marshal(client.PhoneNumbers)
	if err != nil {
		return nil, fmt.Errorf("ClientRepository.Create (encoding phones): %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO clients (id, first_name, last_name, email, phone_numbers, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		client.ID, client.FirstName, client.LastName, client.Email, phones, client.IsActive)
	if err != nil {
		return nil, fmt.Errorf("ClientRepository.Create: %w", err)
	}
	return client, nil
}

func (r *pgClientRepository) Update(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	phones, err := json.Marshal(client.PhoneNumbers)
	if err != nil {
		return nil, fmt.Errorf("ClientRepository.Update (encoding phones): %w", err)
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE clients SET first_name = $1, last_name = $2, email = $3, phone_numbers = $4, is_active = $5
		 WHERE id = $6`,
		client.FirstName, client.LastName, client.Email, phones, client.IsActive, client.ID)
	if err != nil {
		return nil, fmt.Errorf("ClientRepository.Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, repository.ErrNotFound
	}
	cars, err := r.findCars(ctx, client.ID)
	if err != nil {
		return nil, err
	}
	client.Cars = cars
	return client, nil
}

func (r *pgClientRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ClientRepository.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *pgClientRepository) AddCar(ctx context.Context, clientID string, car *domain.Car) (*domain.Car, error) {
	var exists bool
	if err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM clients WHERE id = $1)`, clientID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("ClientRepository.AddCar: %w", err)
	}
	if !exists {
		return nil, repository.ErrNotFound
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO cars (id, client_id, number_plate, vin, brand, model, year, engine_type, engine_capacity, horsepower, kilowatts)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		car.ID, clientID, car.NumberPlate, car.VIN, car.Brand, car.Model,
		car.Year, car.EngineType, car.EngineCapacity, car.Horsepower, car.Kilowatts)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, fmt.Errorf("%w: number plate %q", repository.ErrDuplicateEntry, car.NumberPlate)
		}
		return nil, fmt.Errorf("ClientRepository.AddCar: %w", err)
	}
	return car, nil
}

func (r *pgClientRepository) UpdateCar(ctx context.Context, clientID string, car *domain.Car) (*domain.Car, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE cars SET number_plate = $1, vin = $2, brand = $3, model = $4, year = $5,
		        engine_type = $6, engine_capacity = $7, horsepower = $8, kilowatts = $9
		 WHERE id = $10 AND client_id = $11`,
		car.NumberPlate, car.VIN, car.Brand, car.Model, car.Year,
		car.EngineType, car.EngineCapacity, car.Horsepower, car.Kilowatts,
		car.ID, clientID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, fmt.Errorf("%w: number plate %q", repository.ErrDuplicateEntry, car.NumberPlate)
		}
		return nil, fmt.Errorf("ClientRepository.UpdateCar: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, repository.ErrNotFound
	}
	return car, nil
}

func (r *pgClientRepository) DeleteCar(ctx context.Context, clientID, carID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM cars WHERE id = $1 AND client_id = $2`, carID, clientID)
	if err != nil {
		return fmt.Errorf("ClientRepository.DeleteCar: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *pgClientRepository) findCars(ctx context.Context, clientID string) ([]domain.Car, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, number_plate, vin, brand, model, year, engine_type, engine_capacity, horsepower, kilowatts
		 FROM cars WHERE client_id = $1 ORDER BY created_at`, clientID)
	if err != nil {
		return nil, fmt.Errorf("ClientRepository.findCars: %w", err)
	}
	defer rows.Close()

	cars := []domain.Car{}
	for rows.Next() {
		var c domain.Car
		if err := rows.Scan(&c.ID, &c.NumberPlate, &c.VIN, &c.Brand, &c.Model,
			&c.Year, &c.EngineType, &c.EngineCapacity, &c.Horsepower, &c.Kilowatts); err != nil {
			return nil, fmt.Errorf("ClientRepository.findCars (scanning row): %w", err)
		}
		cars = append(cars, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ClientRepository.findCars (rows error): %w", err)
	}
	return cars, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanClient(row rowScanner) (*domain.Client, error) {
	c := &domain.Client{}
	var phones []byte
	if err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &phones, &c.IsActive); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(phones, &c.PhoneNumbers); err != nil {
		return nil, fmt.Errorf("decoding phones: %w", err)
	}
	return c, nil
}
