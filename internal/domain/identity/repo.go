package identity

import (
	"context"

	"github.com/lepufeng/SDSC-5003-Hospital-Management-System/internal/platform/store"
)

type PatientRepository interface {
	Create(ctx context.Context, ch store.Changes) (int64, error)
	GetByID(ctx context.Context, id int64) (*Patient, error)
	List(ctx context.Context) ([]*Patient, error)
	Update(ctx context.Context, id int64, ch store.Changes) error
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
}

type DoctorRepository interface {
	Create(ctx context.Context, ch store.Changes) (int64, error)
	GetByID(ctx context.Context, id int64) (*Doctor, error)
	List(ctx context.Context) ([]*Doctor, error)
	Update(ctx context.Context, id int64, ch store.Changes) error
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
}
