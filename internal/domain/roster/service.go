package roster

import (
	"context"
	"fmt"

	"github.com/lepufeng/SDSC-5003-Hospital-Management-System/internal/platform/store"
)

// DoctorDirectory reports whether a doctor exists.
type DoctorDirectory interface {
	DoctorExists(ctx context.Context, id int64) (bool, error)
}

type Service struct {
	rows    RosterRepository
	doctors DoctorDirectory
}

func NewService(rows RosterRepository, doctors DoctorDirectory) *Service {
	return &Service{rows: rows, doctors: doctors}
}

// DoctorPatients returns every patient the doctor has seen, each with the
// appointments between them and the treatments given at each.
func (s *Service) DoctorPatients(ctx context.Context, doctorID int64) ([]*PatientEntry, error) {
	ok, err := s.doctors.DoctorExists(ctx, doctorID)
	if err != nil {
		return nil, fmt.Errorf("look up doctor: %w", err)
	}
	if !ok {
		return nil, store.NotFound("Doctor", doctorID)
	}
	rows, err := s.rows.RowsForDoctor(ctx, doctorID)
	if err != nil {
		return nil, fmt.Errorf("load roster for doctor %d: %w", doctorID, err)
	}
	return Fold(rows), nil
}
