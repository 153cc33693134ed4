package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/AlexandraCulea/Car-Service-RESTful-API/internal/domain"
	"github.com/AlexandraCulea/Car-Service-RESTful-API/internal/repository"
)

type ClientService struct {
	clients repository.ClientRepository
}

func NewClientService(clients repository.ClientRepository) *ClientService {
	return &ClientService{clients: clients}
}

func (s *ClientService) ListClients(ctx context.Context) ([]domain.Client, error) {
	return s.clients.FindAll(ctx)
}

func (s *ClientService) GetClient(ctx context.Context, id string) (*domain.Client, error) {
	return s.clients.FindByID(ctx, id)
}

func (s *ClientService) CreateClient(ctx context.Context, dto domain.ClientDTO) (*domain.Client, error) {
	if dto.FirstName == "" || dto.LastName == "" || dto.Email == "" || dto.PhoneNumbers == nil {
		return nil, validationErrorf("client data is incomplete or invalid")
	}
	if !emailPattern.MatchString(dto.Email) {
		return nil, validationErrorf("invalid email format")
	}
	if !validPhoneNumbers(dto.PhoneNumbers) {
		return nil, validationErrorf("phoneNumbers must be a list of numeric strings")
	}

	client := &domain.Client{
		ID:           uuid.NewString(),
		FirstName:    dto.FirstName,
		LastName:     dto.LastName,
		Email:        dto.Email,
		PhoneNumbers: dto.PhoneNumbers,
		IsActive:     true,
		Cars:         []domain.Car{},
	}
	return s.clients.Create(ctx, client)
}

var clientUpdateFields = []string{"firstName", "lastName", "email", "phoneNumbers", "isActive"}

// UpdateClient applies a partial field set; fields outside the allowed set
// are rejected by name, unspecified fields keep their prior values.
func (s *ClientService) UpdateClient(ctx context.Context, id string, body map[string]json.RawMessage) (*domain.Client, error) {
	client, err := s.clients.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if unknown := unknownFields(body, clientUpdateFields...); len(unknown) > 0 {
		return nil, validationErrorf("unknown fields: %s", strings.Join(unknown, ", "))
	}

	email, err := fieldString(body, "email")
	if err != nil {
		return nil, err
	}
	if email != nil {
		if !emailPattern.MatchString(*email) {
			return nil, validationErrorf("invalid email format")
		}
		client.Email = *email
	}

	phones, ok, err := fieldStringSlice(body, "phoneNumbers")
	if err != nil {
		return nil, err
	}
	if ok {
		if !validPhoneNumbers(phones) {
			return nil, validationErrorf("phoneNumbers must be a list of numeric strings")
		}
		client.PhoneNumbers = phones
	}

	firstName, err := fieldString(body, "firstName")
	if err != nil {
		return nil, err
	}
	if firstName != nil {
		client.FirstName = *firstName
	}

	lastName, err := fieldString(body, "lastName")
	if err != nil {
		return nil, err
	}
	if lastName != nil {
		client.LastName = *lastName
	}

	isActive, err := fieldBool(body, "isActive")
	if err != nil {
		return nil, err
	}
	if isActive != nil {
		client.IsActive = *isActive
	}

	return s.clients.Update(ctx, client)
}

// DeleteClient removes the client and its cars. Appointments referencing
// the client are left untouched; the references dangle.
func (s *ClientService) DeleteClient(ctx context.Context, id string) error {
	return s.clients.Delete(ctx, id)
}

func (s *ClientService) ListCars(ctx context.Context, clientID string) ([]domain.Car, error) {
	client, err := s.clients.FindByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return client.Cars, nil
}

func (s *ClientService) AddCar(ctx context.Context, clientID string, dto domain.CarDTO) (*domain.Car, error) {
	client, err := s.clients.FindByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	if dto.NumberPlate == "" || dto.VIN == "" || dto.Brand == "" || dto.Model == "" ||
		dto.Year == 0 || dto.EngineType == "" || dto.EngineCapacity == 0 {
		return nil, validationErrorf("car data is incomplete")
	}

	for _, c := range client.Cars {
		if c.NumberPlate == dto.NumberPlate {
			return nil, fmt.Errorf("%w: client already has a car with number plate %q",
				repository.ErrDuplicateEntry, dto.NumberPlate)
		}
	}

	engineType := domain.EngineType(dto.EngineType)
	if !engineType.Valid() {
		return nil, validationErrorf("engineType must be one of: %s", joinEngineTypes())
	}

	hp, kw := dto.Horsepower, dto.Kilowatts
	switch {
	case hp != 0 && kw == 0:
		kw = domain.KilowattsFromHorsepower(hp)
	case hp == 0 && kw != 0:
		hp = domain.HorsepowerFromKilowatts(kw)
	case hp == 0 && kw == 0:
		return nil, validationErrorf("either horsepower or kilowatts must be provided")
	}

	car := &domain.Car{
		ID:             uuid.NewString(),
		NumberPlate:    dto.NumberPlate,
		VIN:            dto.VIN,
		Brand:          dto.Brand,
		Model:          dto.Model,
		Year:           dto.Year,
		EngineType:     engineType,
		EngineCapacity: dto.EngineCapacity,
		Horsepower:     hp,
		Kilowatts:      kw,
	}
	return s.clients.AddCar(ctx, clientID, car)
}

var carUpdateFields = []string{
	"numberPlate", "vin", "brand", "model",
	"year", "engineType", "engineCapacity", "horsepower", "kilowatts",
}

// UpdateCar applies a partial field set. Supplying only one of
// horsepower/kilowatts recomputes the other; supplying both stores them as
// given, which is the intentional override path.
func (s *ClientService) UpdateCar(ctx context.Context, clientID, carID string, body map[string]json.RawMessage) (*domain.Car, error) {
	client, err := s.clients.FindByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	var car *domain.Car
	for i := range client.Cars {
		if client.Cars[i].ID == carID {
			car = &client.Cars[i]
			break
		}
	}
	if car == nil {
		return nil, repository.ErrNotFound
	}

	if unknown := unknownFields(body, carUpdateFields...); len(unknown) > 0 {
		return nil, validationErrorf("unknown fields: %s", strings.Join(unknown, ", "))
	}

	plate, err := fieldString(body, "numberPlate")
	if err != nil {
		return nil, err
	}
	if plate != nil {
		for _, c := range client.Cars {
			if c.NumberPlate == *plate && c.ID != carID {
				return nil, fmt.Errorf("%w: another car of this client already has number plate %q",
					repository.ErrDuplicateEntry, *plate)
			}
		}
		car.NumberPlate = *plate
	}

	if v, err := fieldString(body, "vin"); err != nil {
		return nil, err
	} else if v != nil {
		car.VIN = *v
	}
	if v, err := fieldString(body, "brand"); err != nil {
		return nil, err
	} else if v != nil {
		car.Brand = *v
	}
	if v, err := fieldString(body, "model"); err != nil {
		return nil, err
	} else if v != nil {
		car.Model = *v
	}
	if v, err := fieldInt(body, "year"); err != nil {
		return nil, err
	} else if v != nil {
		car.Year = *v
	}
	if v, err := fieldString(body, "engineType"); err != nil {
		return nil, err
	} else if v != nil {
		car.EngineType = domain.EngineType(*v)
	}
	if v, err := fieldInt(body, "engineCapacity"); err != nil {
		return nil, err
	} else if v != nil {
		car.EngineCapacity = *v
	}

	hp, err := fieldInt(body, "horsepower")
	if err != nil {
		return nil, err
	}
	kw, err := fieldInt(body, "kilowatts")
	if err != nil {
		return nil, err
	}
	switch {
	case hp != nil && kw == nil:
		car.Horsepower = *hp
		car.Kilowatts = domain.KilowattsFromHorsepower(*hp)
	case kw != nil && hp == nil:
		car.Kilowatts = *kw
		car.Horsepower = domain.HorsepowerFromKilowatts(*kw)
	case hp != nil && kw != nil:
		car.Horsepower = *hp
		car.Kilowatts = *kw
	}

	return s.clients.UpdateCar(ctx, clientID, car)
}

func (s *ClientService) DeleteCar(ctx context.Context, clientID, carID string) error {
	return s.clients.DeleteCar(ctx, clientID, carID)
}

func joinEngineTypes() string {
	parts := make([]string, len(domain.EngineTypes))
	for i, t := range domain.EngineTypes {
		parts[i] = string(t)
	}
	return strings.Join(parts, ", ")
}
