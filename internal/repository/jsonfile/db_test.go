package jsonfile_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/AlexandraCulea/Car-Service-RESTful-API/internal/domain"
	"github.com/AlexandraCulea/Car-Service-RESTful-API/internal/repository"
	"github.com/AlexandraCulea/Car-Service-RESTful-API/internal/repository/jsonfile"
)

func testClient(id string) *domain.Client {
	return &domain.Client{
		ID:           id,
		FirstName:    "Ana",
		LastName:     "Pop",
		Email:        "ana@x.com",
		PhoneNumbers: []string{"0711111111"},
		IsActive:     true,
		Cars:         []domain.Car{},
	}
}

func TestOpenCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "db.json")

	db, err := jsonfile.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("store file not created: %v", err)
	}
	var doc struct {
		Clients      []json.RawMessage `json:"clients"`
		Appointments []json.RawMessage `json:"appointments"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("store file is not valid JSON: %v", err)
	}
	if doc.Clients == nil || doc.Appointments == nil {
		t.Error("new store should contain empty clients and appointments arrays")
	}

	clients, err := jsonfile.NewClientRepository(db).FindAll(context.Background())
	if err != nil {
		t.Fatalf("find all: %v", err)
	}
	if len(clients) != 0 {
		t.Errorf("new store should be empty, got %d clients", len(clients))
	}
}

func TestPersistenceAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")

	db, err := jsonfile.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	repo := jsonfile.NewClientRepository(db)
	if _, err := repo.Create(context.Background(), testClient("c1")); err != nil {
		t.Fatalf("create: %v", err)
	}

	db2, err := jsonfile.Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, err := jsonfile.NewClientRepository(db2).FindByID(context.Background(), "c1")
	if err != nil {
		t.Fatalf("find after reopen: %v", err)
	}
	if got.FirstName != "Ana" {
		t.Errorf("firstName = %q, want Ana", got.FirstName)
	}
}

// Every operation re-reads the file, so edits made outside the process are
// visible on the next call.
func TestReloadPicksUpExternalEdits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")

	db, err := jsonfile.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	repo := jsonfile.NewClientRepository(db)

	external := `{"clients":[{"id":"x1","firstName":"Ion","lastName":"Ionescu","email":"ion@x.com","phoneNumbers":["0722"],"isActive":true,"cars":[]}],"appointments":[]}`
	if err := os.WriteFile(path, []byte(external), 0o644); err != nil {
		t.Fatalf("write external edit: %v", err)
	}

	got, err := repo.FindByID(context.Background(), "x1")
	if err != nil {
		t.Fatalf("find externally added client: %v", err)
	}
	if got.FirstName != "Ion" {
		t.Errorf("firstName = %q, want Ion", got.FirstName)
	}
}

func TestReturnedRecordsAreCopies(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")

	db, err := jsonfile.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	repo := jsonfile.NewClientRepository(db)
	if _, err := repo.Create(context.Background(), testClient("c1")); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.FindByID(context.Background(), "c1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	got.PhoneNumbers[0] = "mutated"

	again, err := repo.FindByID(context.Background(), "c1")
	if err != nil {
		t.Fatalf("second find: %v", err)
	}
	if again.PhoneNumbers[0] != "0711111111" {
		t.Error("mutating a returned record must not touch the store")
	}
}

func TestCarPlateUniquePerClient(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")

	db, err := jsonfile.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	repo := jsonfile.NewClientRepository(db)
	if _, err := repo.Create(context.Background(), testClient("c1")); err != nil {
		t.Fatalf("create client: %v", err)
	}

	car := &domain.Car{ID: "car1", NumberPlate: "B01ABC", VIN: "V1", Brand: "Dacia",
		Model: "Logan", Year: 2020, EngineType: domain.EnginePetrol, EngineCapacity: 1200,
		Horsepower: 90, Kilowatts: 66}
	if _, err := repo.AddCar(context.Background(), "c1", car); err != nil {
		t.Fatalf("add car: %v", err)
	}

	dup := *car
	dup.ID = "car2"
	if _, err := repo.AddCar(context.Background(), "c1", &dup); !errors.Is(err, repository.ErrDuplicateEntry) {
		t.Errorf("expected ErrDuplicateEntry, got %v", err)
	}
}
