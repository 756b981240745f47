package billing

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
	bills    BillRepository
	patients PatientDirectory
}

func NewService(bills BillRepository, patients PatientDirectory) *Service {
	return &Service{bills: bills, patients: patients}
}

func (s *Service) CreateBill(ctx context.Context, f store.Fields) (int64, error) {
	ch, err := BillColumns.ForInsert(f)
	if err != nil {
		return 0, err
	}
	id, err := s.bills.Create(ctx, ch)
	if err != nil {
		return 0, fmt.Errorf("create bill: %w", err)
	}
	return id, nil
}

func (s *Service) GetBill(ctx context.Context, id int64) (*BillDetail, error) {
	return s.bills.GetDetail(ctx, id)
}

// ListBills returns every bill with the patient's name, most recent first.
func (s *Service) ListBills(ctx context.Context) ([]*BillDetail, error) {
	return s.bills.ListDetails(ctx)
}

// UpdateBill applies a partial update. A missing id is not an error.
func (s *Service) UpdateBill(ctx context.Context, id int64, f store.Fields) error {
	ch, err := updateColumns.ForUpdate(f)
	if err != nil {
		return err
	}
	if err := s.bills.Update(ctx, id, ch); err != nil {
		return fmt.Errorf("update bill %d: %w", id, err)
	}
	return nil
}

func (s *Service) DeleteBill(ctx context.Context, id int64) error {
	return s.bills.Delete(ctx, id)
}

// PatientBills lists the patient's bills, most recent first.
func (s *Service) PatientBills(ctx context.Context, patientID int64) ([]*Bill, error) {
	ok, err := s.patients.PatientExists(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("look up patient: %w", err)
	}
	if !ok {
		return nil, store.NotFound("Patient", patientID)
	}
	return s.bills.ListByPatient(ctx, patientID)
}
