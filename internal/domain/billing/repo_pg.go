package billing

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

type billRepoPG struct{ pool *pgxpool.Pool }

func NewBillRepoPG(pool *pgxpool.Pool) BillRepository { return &billRepoPG{pool: pool} }

func (r *billRepoPG) conn(ctx context.Context) queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const billCols = `b.bill_id, b.patient_id, b.treatment_id, b.bill_date, b.amount, b.payment_method, b.payment_status`

const billRecentFirst = `ORDER BY b.bill_date DESC, b.bill_id DESC`

func billDest(b *Bill) []interface{} {
	return []interface{}{&b.ID, &b.PatientID, &b.TreatmentID, &b.BillDate, &b.Amount, &b.PaymentMethod, &b.PaymentStatus}
}

const detailQuery = `SELECT ` + billCols + `, p.first_name, p.last_name
	FROM billing b
	JOIN patients p ON b.patient_id = p.patient_id`

func scanDetail(row pgx.Row) (*BillDetail, error) {
	var b BillDetail
	err := row.Scan(append(billDest(&b.Bill), &b.FirstName, &b.LastName)...)
	return &b, err
}

func (r *billRepoPG) Create(ctx context.Context, ch store.Changes) (int64, error) {
	q, args := ch.InsertSQL("billing", "bill_id")
	var id int64
	if err := r.conn(ctx).QueryRow(ctx, q, args...).Scan(&id); err != nil {
		return 0, store.Translate(err)
	}
	return id, nil
}

func (r *billRepoPG) GetDetail(ctx context.Context, id int64) (*BillDetail, error) {
	b, err := scanDetail(r.conn(ctx).QueryRow(ctx, detailQuery+` WHERE b.bill_id = $1`, id))
	if err != nil {
		return nil, store.TranslateRow(err, "Bill", id)
	}
	return b, nil
}

func (r *billRepoPG) ListDetails(ctx context.Context) ([]*BillDetail, error) {
	rows, err := r.conn(ctx).Query(ctx, detailQuery+` `+billRecentFirst)
	if err != nil {
		return nil, store.Translate(err)
	}
	defer rows.Close()
	items := []*BillDetail{}
	for rows.Next() {
		b, err := scanDetail(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, b)
	}
	return items, rows.Err()
}

func (r *billRepoPG) ListByPatient(ctx context.Context, patientID int64) ([]*Bill, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+billCols+` FROM billing b
		WHERE b.patient_id = $1 `+billRecentFirst, patientID)
	if err != nil {
		return nil, store.Translate(err)
	}
	defer rows.Close()
	items := []*Bill{}
	for rows.Next() {
		var b Bill
		if err := rows.Scan(billDest(&b)...); err != nil {
			return nil, err
		}
		items = append(items, &b)
	}
	return items, rows.Err()
}

func (r *billRepoPG) Update(ctx context.Context, id int64, ch store.Changes) error {
	q, args := ch.UpdateSQL("billing", "bill_id", id)
	_, err := r.conn(ctx).Exec(ctx, q, args...)
	return store.Translate(err)
}

func (r *billRepoPG) Delete(ctx context.Context, id int64) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM billing WHERE bill_id = $1`, id)
	return store.Translate(err)
}
