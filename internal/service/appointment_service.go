package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AlexandraCulea/Car-Service-RESTful-API/internal/domain"
	"github.com/AlexandraCulea/Car-Service-RESTful-API/internal/repository"
)

// Working window and slot granularity. Appointments may start in
// [WorkStart, WorkEnd) on SlotMinutes boundaries and must end by
// WorkEnd:00.
const (
	WorkStart   = 8
	WorkEnd     = 17
	SlotMinutes = 30
)

type AppointmentService struct {
	appointments repository.AppointmentRepository
	clients      repository.ClientRepository
}

func NewAppointmentService(appointments repository.AppointmentRepository, clients repository.ClientRepository) *AppointmentService {
	return &AppointmentService{appointments: appointments, clients: clients}
}

func (s *AppointmentService) ListAppointments(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error) {
	return s.appointments.Find(ctx, filter)
}

func (s *AppointmentService) GetAppointment(ctx context.Context, id string) (*domain.Appointment, error) {
	return s.appointments.FindByID(ctx, id)
}

// CreateAppointment validates the proposed slot and the client/car
// references, then persists the appointment. The referential checks report
// validation failures, not lookup failures: a bad clientId in the payload
// is the caller's mistake.
func (s *AppointmentService) CreateAppointment(ctx context.Context, dto domain.AppointmentDTO) (*domain.Appointment, error) {
	if dto.ClientID == "" || dto.CarID == "" || dto.ContactMethod == "" ||
		dto.Action == "" || dto.Date == "" || dto.Time == "" || dto.Duration == nil {
		return nil, validationErrorf("appointment data is incomplete")
	}

	client, err := s.clients.FindByID(ctx, dto.ClientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, validationErrorf("invalid client")
		}
		return nil, err
	}
	carOwned := false
	for _, c := range client.Cars {
		if c.ID == dto.CarID {
			carOwned = true
			break
		}
	}
	if !carOwned {
		return nil, validationErrorf("invalid car for this client")
	}

	contactMethod := domain.ContactMethod(dto.ContactMethod)
	if !contactMethod.Valid() {
		return nil, validationErrorf("invalid contactMethod")
	}

	if !datePattern.MatchString(dto.Date) {
		return nil, validationErrorf("invalid date format, use YYYY-MM-DD")
	}
	if !timePattern.MatchString(dto.Time) {
		return nil, validationErrorf("invalid time format, use HH:mm")
	}
	start, err := composeInstant(dto.Date, dto.Time)
	if err != nil {
		return nil, err
	}

	if start.Hour() < WorkStart || start.Hour() >= WorkEnd || start.Minute()%SlotMinutes != 0 {
		return nil, validationErrorf("appointments must start between %d:00 and %d:00, on a multiple of %d minutes",
			WorkStart, WorkEnd, SlotMinutes)
	}

	duration := *dto.Duration
	if duration <= 0 || duration%SlotMinutes != 0 {
		return nil, validationErrorf("duration must be a positive multiple of %d minutes", SlotMinutes)
	}

	end := start.Add(time.Duration(duration) * time.Minute)
	closing := time.Date(start.Year(), start.Month(), start.Day(), WorkEnd, 0, 0, 0, time.UTC)
	if end.After(closing) {
		return nil, validationErrorf("appointment runs past %d:00", WorkEnd)
	}

	appt := &domain.Appointment{
		ID:            uuid.NewString(),
		ClientID:      dto.ClientID,
		CarID:         dto.CarID,
		ContactMethod: contactMethod,
		Action:        dto.Action,
		Date:          dto.Date,
		Time:          dto.Time,
		Duration:      duration,
	}
	return s.appointments.Create(ctx, appt)
}

func (s *AppointmentService) DeleteAppointment(ctx context.Context, id string) error {
	return s.appointments.Delete(ctx, id)
}

func (s *AppointmentService) GetHistory(ctx context.Context, id string) (*domain.AppointmentHistory, error) {
	appt, err := s.appointments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &domain.AppointmentHistory{
		ReceptionNotes:  appt.ReceptionNotes,
		ProcessingNotes: appt.ProcessingNotes,
		RepairDuration:  appt.RepairDuration,
	}, nil
}

// UpdateHistory applies a partial subset of the three history fields.
// Fields outside the set are ignored; fields of the wrong type or value
// are all reported by name. repairDuration must be a multiple of 10.
func (s *AppointmentService) UpdateHistory(ctx context.Context, id string, body map[string]json.RawMessage) (*domain.AppointmentHistory, error) {
	appt, err := s.appointments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var invalid []string

	reception, err := fieldString(body, "receptionNotes")
	if err != nil {
		invalid = append(invalid, "receptionNotes")
	}
	processing, err := fieldString(body, "processingNotes")
	if err != nil {
		invalid = append(invalid, "processingNotes")
	}
	repair, err := fieldInt(body, "repairDuration")
	if err != nil || (repair != nil && *repair%10 != 0) {
		invalid = append(invalid, "repairDuration")
	}

	if len(invalid) > 0 {
		return nil, validationErrorf("invalid fields: %s", strings.Join(invalid, ", "))
	}

	if reception != nil {
		appt.ReceptionNotes.SetValid(*reception)
	}
	if processing != nil {
		appt.ProcessingNotes.SetValid(*processing)
	}
	if repair != nil {
		appt.RepairDuration.SetValid(int64(*repair))
	}

	if _, err := s.appointments.Update(ctx, appt); err != nil {
		return nil, err
	}
	return &domain.AppointmentHistory{
		ReceptionNotes:  appt.ReceptionNotes,
		ProcessingNotes: appt.ProcessingNotes,
		RepairDuration:  appt.RepairDuration,
	}, nil
}

// composeInstant builds the start instant from the already shape-checked
// date and time strings, rejecting values that do not form a real calendar
// instant (e.g. 2024-02-31 or 25:00).
func composeInstant(date, clock string) (time.Time, error) {
	year, _ := strconv.Atoi(date[0:4])
	month, _ := strconv.Atoi(date[5:7])
	day, _ := strconv.Atoi(date[8:10])
	hour, _ := strconv.Atoi(clock[0:2])
	minute, _ := strconv.Atoi(clock[3:5])

	if month < 1 || month > 12 || hour > 23 || minute > 59 {
		return time.Time{}, validationErrorf("invalid date/time")
	}
	t := time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return time.Time{}, validationErrorf("invalid date/time")
	}
	return t, nil
}
