package billing

import (
	"context"

	"github.com/lepufeng/SDSC-5003-Hospital-Management-System/internal/platform/store"
)

type BillRepository interface {
	Create(ctx context.Context, ch store.Changes) (int64, error)
	GetDetail(ctx context.Context, id int64) (*BillDetail, error)
	ListDetails(ctx context.Context) ([]*BillDetail, error)
	ListByPatient(ctx context.Context, patientID int64) ([]*Bill, error)
	Update(ctx context.Context, id int64, ch store.Changes) error
	Delete(ctx context.Context, id int64) error
}
