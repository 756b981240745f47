package roster

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lepufeng/SDSC-5003-Hospital-Management-System/internal/platform/db"
	"github.com/lepufeng/SDSC-5003-Hospital-Management-System/internal/platform/store"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
}

type rosterRepoPG struct{ pool *pgxpool.Pool }

func NewRosterRepoPG(pool *pgxpool.Pool) RosterRepository { return &rosterRepoPG{pool: pool} }

func (r *rosterRepoPG) conn(ctx context.Context) queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const rosterQuery = `SELECT p.patient_id, p.first_name, p.last_name, p.gender,
	to_char(p.date_of_birth, 'YYYY-MM-DD'), p.contact_number, p.address,
	p.insurance_provider, p.insurance_number, p.email,
	a.appointment_id, to_char(a.appointment_date, 'YYYY-MM-DD'),
	to_char(a.appointment_time, 'HH24:MI'), a.status,
	t.treatment_id, t.treatment_type, t.description, t.cost, t.treatment_date
	FROM appointments a
	JOIN patients p ON a.patient_id = p.patient_id
	LEFT JOIN treatments t ON a.appointment_id = t.appointment_id
	WHERE a.doctor_id = $1
	ORDER BY a.appointment_date DESC, a.appointment_time DESC, a.appointment_id DESC,
		t.treatment_date, t.treatment_id`

func (r *rosterRepoPG) RowsForDoctor(ctx context.Context, doctorID int64) ([]Row, error) {
	rows, err := r.conn(ctx).Query(ctx, rosterQuery, doctorID)
	if err != nil {
		return nil, store.Translate(err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var row Row
		p := &row.Patient
		if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Gender,
			&p.DateOfBirth, &p.ContactNumber, &p.Address,
			&p.InsuranceProvider, &p.InsuranceNumber, &p.Email,
			&row.AppointmentID, &row.Date, &row.Time, &row.Status,
			&row.TreatmentID, &row.TreatmentType, &row.Description, &row.Cost, &row.TreatmentDate); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
