package scheduling

import (
	"github.com/lepufeng/SDSC-5003-Hospital-Management-System/internal/platform/store"
)

// Appointment statuses the service itself writes. Any other non-empty string
// is accepted from callers.
const (
	StatusScheduled = "scheduled"
	StatusCancelled = "cancelled"
)

type Appointment struct {
	ID             int64   `json:"appointment_id"`
	PatientID      int64   `json:"patient_id"`
	DoctorID       int64   `json:"doctor_id"`
	Date           string  `json:"appointment_date"`
	Time           string  `json:"appointment_time"`
	ReasonForVisit *string `json:"reason_for_visit"`
	Status         string  `json:"status"`
}

// AppointmentDetail is an appointment with both participants' names.
type AppointmentDetail struct {
	Appointment
	PatientFirstName string `json:"patient_first_name"`
	PatientLastName  string `json:"patient_last_name"`
	DoctorFirstName  string `json:"doctor_first_name"`
	DoctorLastName   string `json:"doctor_last_name"`
}

// PatientAppointment is an entry of a patient's history.
type PatientAppointment struct {
	Appointment
	DoctorFirstName string  `json:"doctor_first_name"`
	DoctorLastName  string  `json:"doctor_last_name"`
	Specialization  *string `json:"specialization"`
}

// DoctorAppointment is an entry of a doctor's agenda. PatientContact is only
// filled for the daily schedule.
type DoctorAppointment struct {
	Appointment
	PatientFirstName string  `json:"patient_first_name"`
	PatientLastName  string  `json:"patient_last_name"`
	PatientContact   *string `json:"patient_contact,omitempty"`
}

var AppointmentColumns = store.Columns{
	{Name: "patient_id", Kind: store.Reference, Required: true},
	{Name: "doctor_id", Kind: store.Reference, Required: true},
	{Name: "appointment_date", Kind: store.Date, Required: true},
	{Name: "appointment_time", Kind: store.Clock, Required: true},
	{Name: "reason_for_visit", Kind: store.Text},
	{Name: "status", Kind: store.Text, Required: true, Defaulted: true},
}

// rescheduleColumns may be changed by the booking surface; reassigning the
// patient is reserved to administrators.
var rescheduleColumns = AppointmentColumns.Only(
	"appointment_date", "appointment_time", "reason_for_visit", "status", "doctor_id")
