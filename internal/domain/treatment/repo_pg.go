package treatment

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lepufeng/SDSC-5003-Hospital-Management-System/internal/platform/db"
	"github.com/lepufeng/SDSC-5003-Hospital-Management-System/internal/platform/store"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type treatmentRepoPG struct{ pool *pgxpool.Pool }

func NewTreatmentRepoPG(pool *pgxpool.Pool) TreatmentRepository { return &treatmentRepoPG{pool: pool} }

func (r *treatmentRepoPG) conn(ctx context.Context) queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const treatmentCols = `t.treatment_id, t.appointment_id, t.treatment_type, t.description, t.cost, t.treatment_date`

func scanTreatment(row pgx.Row) (*Treatment, error) {
	var t Treatment
	err := row.Scan(&t.ID, &t.AppointmentID, &t.TreatmentType, &t.Description, &t.Cost, &t.TreatmentDate)
	return &t, err
}

func (r *treatmentRepoPG) collect(rows pgx.Rows, err error) ([]*Treatment, error) {
	if err != nil {
		return nil, store.Translate(err)
	}
	defer rows.Close()
	items := []*Treatment{}
	for rows.Next() {
		t, err := scanTreatment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

func (r *treatmentRepoPG) Create(ctx context.Context, ch store.Changes) (int64, error) {
	q, args := ch.InsertSQL("treatments", "treatment_id")
	var id int64
	if err := r.conn(ctx).QueryRow(ctx, q, args...).Scan(&id); err != nil {
		return 0, store.Translate(err)
	}
	return id, nil
}

func (r *treatmentRepoPG) List(ctx context.Context) ([]*Treatment, error) {
	return r.collect(r.conn(ctx).Query(ctx, `SELECT `+treatmentCols+` FROM treatments t
		ORDER BY t.treatment_date DESC, t.treatment_id DESC`))
}

func (r *treatmentRepoPG) ListByPatient(ctx context.Context, patientID int64) ([]*Treatment, error) {
	return r.collect(r.conn(ctx).Query(ctx, `SELECT `+treatmentCols+` FROM treatments t
		JOIN appointments a ON t.appointment_id = a.appointment_id
		WHERE a.patient_id = $1
		ORDER BY t.treatment_date DESC, t.treatment_id DESC`, patientID))
}

func (r *treatmentRepoPG) Delete(ctx context.Context, id int64) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM treatments WHERE treatment_id = $1`, id)
	return store.Translate(err)
}
