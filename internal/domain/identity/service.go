package identity

import (
	"context"
	"fmt"

	"github.com/lepufeng/SDSC-5003-Hospital-Management-System/internal/platform/store"
)

type Service struct {
	patients PatientRepository
	doctors  DoctorRepository
}

func NewService(patients PatientRepository, doctors DoctorRepository) *Service {
	return &Service{patients: patients, doctors: doctors}
}

// -- Patient --

// RegisterPatient stores a new patient. first_name and last_name are required;
// every other attribute is optional and stored null when absent.
func (s *Service) RegisterPatient(ctx context.Context, f store.Fields) (int64, error) {
	ch, err := PatientColumns.ForInsert(f)
	if err != nil {
		return 0, err
	}
	id, err := s.patients.Create(ctx, ch)
	if err != nil {
		return 0, fmt.Errorf("register patient: %w", err)
	}
	return id, nil
}

func (s *Service) GetPatient(ctx context.Context, id int64) (*Patient, error) {
	return s.patients.GetByID(ctx, id)
}

func (s *Service) ListPatients(ctx context.Context) ([]*Patient, error) {
	return s.patients.List(ctx)
}

// UpdatePatient changes only the attributes present in f. Updating an id that
// does not exist touches no row and is not an error.
func (s *Service) UpdatePatient(ctx context.Context, id int64, f store.Fields) error {
	ch, err := PatientColumns.ForUpdate(f)
	if err != nil {
		return err
	}
	return s.patients.Update(ctx, id, ch)
}

// DeletePatient removes the patient together with its appointments, their
// treatments and the patient's bills.
func (s *Service) DeletePatient(ctx context.Context, id int64) error {
	return s.patients.Delete(ctx, id)
}

func (s *Service) PatientExists(ctx context.Context, id int64) (bool, error) {
	return s.patients.Exists(ctx, id)
}

// -- Doctor --

func (s *Service) CreateDoctor(ctx context.Context, f store.Fields) (int64, error) {
	ch, err := DoctorColumns.ForInsert(f)
	if err != nil {
		return 0, err
	}
	id, err := s.doctors.Create(ctx, ch)
	if err != nil {
		return 0, fmt.Errorf("create doctor: %w", err)
	}
	return id, nil
}

func (s *Service) GetDoctor(ctx context.Context, id int64) (*Doctor, error) {
	return s.doctors.GetByID(ctx, id)
}

func (s *Service) ListDoctors(ctx context.Context) ([]*Doctor, error) {
	return s.doctors.List(ctx)
}

func (s *Service) UpdateDoctor(ctx context.Context, id int64, f store.Fields) error {
	ch, err := DoctorColumns.ForUpdate(f)
	if err != nil {
		return err
	}
	return s.doctors.Update(ctx, id, ch)
}

func (s *Service) DeleteDoctor(ctx context.Context, id int64) error {
	return s.doctors.Delete(ctx, id)
}

func (s *Service) DoctorExists(ctx context.Context, id int64) (bool, error) {
	return s.doctors.Exists(ctx, id)
}
