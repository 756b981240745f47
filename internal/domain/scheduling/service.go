package scheduling

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lepufeng/SDSC-5003-Hospital-Management-System/internal/platform/store"
)

// Directory answers whether the patients and doctors an appointment list is
// scoped to exist.
type Directory interface {
	PatientExists(ctx context.Context, id int64) (bool, error)
	DoctorExists(ctx context.Context, id int64) (bool, error)
}

type Service struct {
	appointments AppointmentRepository
	directory    Directory
	now          func() time.Time
}

func NewService(appt AppointmentRepository, dir Directory) *Service {
	return &Service{appointments: appt, directory: dir, now: time.Now}
}

// CreateAppointment books an appointment. patient_id, doctor_id,
// appointment_date and appointment_time are required; status defaults to
// "scheduled".
func (s *Service) CreateAppointment(ctx context.Context, f store.Fields) (int64, error) {
	ch, err := AppointmentColumns.ForInsert(f)
	if err != nil {
		return 0, err
	}
	id, err := s.appointments.Create(ctx, ch)
	if err != nil {
		return 0, fmt.Errorf("create appointment: %w", err)
	}
	return id, nil
}

// UpdateAppointment reschedules an appointment. The patient cannot be changed.
func (s *Service) UpdateAppointment(ctx context.Context, id int64, f store.Fields) error {
	ch, err := rescheduleColumns.ForUpdate(f)
	if err != nil {
		return err
	}
	return s.appointments.Update(ctx, id, ch)
}

// AdminUpdateAppointment is UpdateAppointment that may also reassign the patient.
func (s *Service) AdminUpdateAppointment(ctx context.Context, id int64, f store.Fields) error {
	ch, err := AppointmentColumns.ForUpdate(f)
	if err != nil {
		return err
	}
	return s.appointments.Update(ctx, id, ch)
}

// Cancel forces the status to "cancelled" whatever it was before. Cancelling
// twice, or cancelling an unknown id, succeeds.
func (s *Service) Cancel(ctx context.Context, id int64) error {
	return s.appointments.SetStatus(ctx, id, StatusCancelled)
}

// SetStatus overwrites the status with any non-empty value. No transition is
// refused.
func (s *Service) SetStatus(ctx context.Context, id int64, status string) error {
	status = strings.TrimSpace(status)
	if status == "" {
		return store.Invalid("status is required")
	}
	return s.appointments.SetStatus(ctx, id, status)
}

func (s *Service) DeleteAppointment(ctx context.Context, id int64) error {
	return s.appointments.Delete(ctx, id)
}

func (s *Service) GetAppointment(ctx context.Context, id int64) (*AppointmentDetail, error) {
	return s.appointments.GetDetail(ctx, id)
}

func (s *Service) ListAppointments(ctx context.Context) ([]*AppointmentDetail, error) {
	return s.appointments.ListDetails(ctx)
}

// PatientHistory lists a patient's appointments, most recent first.
func (s *Service) PatientHistory(ctx context.Context, patientID int64) ([]*PatientAppointment, error) {
	if err := s.requirePatient(ctx, patientID); err != nil {
		return nil, err
	}
	return s.appointments.ListByPatient(ctx, patientID)
}

// DoctorAppointments lists every appointment of a doctor, most recent first.
func (s *Service) DoctorAppointments(ctx context.Context, doctorID int64) ([]*DoctorAppointment, error) {
	if err := s.requireDoctor(ctx, doctorID); err != nil {
		return nil, err
	}
	return s.appointments.ListByDoctor(ctx, doctorID)
}

// TodaySchedule lists a doctor's appointments for the current local date in
// time order.
func (s *Service) TodaySchedule(ctx context.Context, doctorID int64) ([]*DoctorAppointment, error) {
	if err := s.requireDoctor(ctx, doctorID); err != nil {
		return nil, err
	}
	return s.appointments.ListByDoctorOn(ctx, doctorID, s.now())
}

func (s *Service) requirePatient(ctx context.Context, id int64) error {
	ok, err := s.directory.PatientExists(ctx, id)
	if err != nil {
		return fmt.Errorf("look up patient: %w", err)
	}
	if !ok {
		return store.NotFound("Patient", id)
	}
	return nil
}

func (s *Service) requireDoctor(ctx context.Context, id int64) error {
	ok, err := s.directory.DoctorExists(ctx, id)
	if err != nil {
		return fmt.Errorf("look up doctor: %w", err)
	}
	if !ok {
		return store.NotFound("Doctor", id)
	}
	return nil
}
