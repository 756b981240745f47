package roster

import "time"

// Row is one result row of the doctor roster join: an appointment with its
// patient and at most one of its treatments.
type Row struct {
	Patient PatientSummary

	AppointmentID int64
	Date          string
	Time          string
	Status        string

	// Treatment columns are all null when the appointment has no treatment.
	TreatmentID   *int64
	TreatmentType *string
	Description   *string
	Cost          *float64
	TreatmentDate *time.Time
}

type PatientSummary struct {
	ID                int64   `json:"patient_id"`
	FirstName         string  `json:"first_name"`
	LastName          string  `json:"last_name"`
	Gender            *string `json:"gender"`
	DateOfBirth       *string `json:"date_of_birth"`
	ContactNumber     *string `json:"contact_number"`
	Address           *string `json:"address"`
	InsuranceProvider *string `json:"insurance_provider"`
	InsuranceNumber   *string `json:"insurance_number"`
	Email             *string `json:"email"`
}

type TreatmentEntry struct {
	ID            int64     `json:"treatment_id"`
	TreatmentType *string   `json:"treatment_type"`
	Description   *string   `json:"description"`
	Cost          *float64  `json:"cost"`
	TreatmentDate time.Time `json:"treatment_date"`
}

type AppointmentEntry struct {
	ID         int64             `json:"appointment_id"`
	Date       string            `json:"appointment_date"`
	Time       string            `json:"appointment_time"`
	Status     string            `json:"status"`
	Treatments []*TreatmentEntry `json:"treatments"`
}

// PatientEntry is one patient a doctor has seen, with the appointments
// between them.
type PatientEntry struct {
	Patient      PatientSummary      `json:"patient"`
	Appointments []*AppointmentEntry `json:"appointments"`
}
