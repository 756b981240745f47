package treatment

import (
	"context"

	"github.com/lepufeng/SDSC-5003-Hospital-Management-System/internal/platform/store"
)

type TreatmentRepository interface {
	Create(ctx context.Context, ch store.Changes) (int64, error)
	List(ctx context.Context) ([]*Treatment, error)
	ListByPatient(ctx context.Context, patientID int64) ([]*Treatment, error)
	Delete(ctx context.Context, id int64) error
}
