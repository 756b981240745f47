package identity

import (
	"time"

	"github.com/lepufeng/SDSC-5003-Hospital-Management-System/internal/platform/store"
)

type Patient struct {
	ID                int64     `json:"patient_id"`
	FirstName         string    `json:"first_name"`
	LastName          string    `json:"last_name"`
	Gender            *string   `json:"gender"`
	DateOfBirth       *string   `json:"date_of_birth"`
	ContactNumber     *string   `json:"contact_number"`
	Address           *string   `json:"address"`
	RegistrationDate  time.Time `json:"registration_date"`
	InsuranceProvider *string   `json:"insurance_provider"`
	InsuranceNumber   *string   `json:"insurance_number"`
	Email             *string   `json:"email"`
}

// PatientColumns are the attributes a caller may set. registration_date is
// assigned by the store.
var PatientColumns = store.Columns{
	{Name: "first_name", Kind: store.Text, Required: true},
	{Name: "last_name", Kind: store.Text, Required: true},
	{Name: "gender", Kind: store.Text},
	{Name: "date_of_birth", Kind: store.Date},
	{Name: "contact_number", Kind: store.Text},
	{Name: "address", Kind: store.Text},
	{Name: "insurance_provider", Kind: store.Text},
	{Name: "insurance_number", Kind: store.Text},
	{Name: "email", Kind: store.Text},
}

type Doctor struct {
	ID              int64   `json:"doctor_id"`
	FirstName       string  `json:"first_name"`
	LastName        string  `json:"last_name"`
	Specialization  *string `json:"specialization"`
	PhoneNumber     *string `json:"phone_number"`
	YearsExperience *int64  `json:"years_experience"`
	HospitalBranch  *string `json:"hospital_branch"`
	Email           *string `json:"email"`
}

var DoctorColumns = store.Columns{
	{Name: "first_name", Kind: store.Text, Required: true},
	{Name: "last_name", Kind: store.Text, Required: true},
	{Name: "specialization", Kind: store.Text},
	{Name: "phone_number", Kind: store.Text},
	{Name: "years_experience", Kind: store.Integer, NonNegative: true},
	{Name: "hospital_branch", Kind: store.Text},
	{Name: "email", Kind: store.Text},
}
