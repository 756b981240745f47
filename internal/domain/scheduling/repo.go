package scheduling

import (
	"context"
	"time"

	"github.com/lepufeng/SDSC-5003-Hospital-Management-System/internal/platform/store"
)

type AppointmentRepository interface {
	Create(ctx context.Context, ch store.Changes) (int64, error)
	Update(ctx context.Context, id int64, ch store.Changes) error
	SetStatus(ctx context.Context, id int64, status string) error
	Delete(ctx context.Context, id int64) error
	GetDetail(ctx context.Context, id int64) (*AppointmentDetail, error)
	ListDetails(ctx context.Context) ([]*AppointmentDetail, error)
	ListByPatient(ctx context.Context, patientID int64) ([]*PatientAppointment, error)
	ListByDoctor(ctx context.Context, doctorID int64) ([]*DoctorAppointment, error)
	ListByDoctorOn(ctx context.Context, doctorID int64, day time.Time) ([]*DoctorAppointment, error)
}
