package domain

import (
	"strings"

	"gopkg.in/guregu/null.v4"
)

type ContactMethod string

const (
	ContactEmail    ContactMethod = "email"
	ContactPhone    ContactMethod = "phone"
	ContactInPerson ContactMethod = "inPerson"
)

var ContactMethods = []ContactMethod{ContactEmail, ContactPhone, ContactInPerson}

func (m ContactMethod) Valid() bool {
	for _, c := range ContactMethods {
		if m == c {
			return true
		}
	}
	return false
}

// Appointment references a client and one of its cars by id. The references
// are weak: checked at creation time, never re-validated and never cascaded
// on delete.
type Appointment struct {
	ID            string        `json:"id"`
	ClientID      string        `json:"clientId"`
	CarID         string        `json:"carId"`
	ContactMethod ContactMethod `json:"contactMethod"`
	Action        string        `json:"action"`
	Date          string        `json:"date"`     // YYYY-MM-DD
	Time          string        `json:"time"`     // HH:mm
	Duration      int           `json:"duration"` // minutes

	ReceptionNotes  null.String `json:"receptionNotes"`
	ProcessingNotes null.String `json:"processingNotes"`
	RepairDuration  null.Int    `json:"repairDuration"`
}

type AppointmentDTO struct {
	ClientID      string `json:"clientId"`
	CarID         string `json:"carId"`
	ContactMethod string `json:"contactMethod"`
	Action        string `json:"action"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	Duration      *int   `json:"duration"`
}

// AppointmentHistory is the post-appointment sub-record, read and updated
// separately from the core fields.
type AppointmentHistory struct {
	ReceptionNotes  null.String `json:"receptionNotes"`
	ProcessingNotes null.String `json:"processingNotes"`
	RepairDuration  null.Int    `json:"repairDuration"`
}

type AppointmentFilter struct {
	ClientID      string `form:"clientId"`
	Date          string `form:"date"`
	Action        string `form:"action"`
	ContactMethod string `form:"contactMethod"`
}

// Matches reports whether a passes every filter that is set. Filters
// compose as a logical AND; an empty filter matches everything.
func (f AppointmentFilter) Matches(a Appointment) bool {
	if f.ClientID != "" && a.ClientID != f.ClientID {
		return false
	}
	if f.Date != "" && a.Date != f.Date {
		return false
	}
	if f.Action != "" && !strings.Contains(strings.ToLower(a.Action), strings.ToLower(f.Action)) {
		return false
	}
	if f.ContactMethod != "" && string(a.ContactMethod) != f.ContactMethod {
		return false
	}
	return true
}
