package treatment

import (
	"context"
	"fmt"

	"github.com/lepufeng/SDSC-5003-Hospital-Management-System/internal/platform/store"
)

// PatientDirectory reports whether a patient exists.
type PatientDirectory interface {
	PatientExists(ctx context.Context, id int64) (bool, error)
}

type Service struct {
	treatments TreatmentRepository
	patients   PatientDirectory
}

func NewService(treatments TreatmentRepository, patients PatientDirectory) *Service {
	return &Service{treatments: treatments, patients: patients}
}

// CreateTreatment records a treatment against an existing appointment.
func (s *Service) CreateTreatment(ctx context.Context, f store.Fields) (int64, error) {
	ch, err := TreatmentColumns.ForInsert(f)
	if err != nil {
		return 0, err
	}
	id, err := s.treatments.Create(ctx, ch)
	if err != nil {
		return 0, fmt.Errorf("create treatment: %w", err)
	}
	return id, nil
}

func (s *Service) ListTreatments(ctx context.Context) ([]*Treatment, error) {
	return s.treatments.List(ctx)
}

// PatientTreatments lists every treatment given during the patient's
// appointments, most recent first.
func (s *Service) PatientTreatments(ctx context.Context, patientID int64) ([]*Treatment, error) {
	ok, err := s.patients.PatientExists(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("look up patient: %w", err)
	}
	if !ok {
		return nil, store.NotFound("Patient", patientID)
	}
	return s.treatments.ListByPatient(ctx, patientID)
}

// DeleteTreatment removes a treatment. Bills that referenced it keep existing
// with no treatment.
func (s *Service) DeleteTreatment(ctx context.Context, id int64) error {
	return s.treatments.Delete(ctx, id)
}
