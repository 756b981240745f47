package identity

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

// =========== Patient Repository ===========

type patientRepoPG struct{ pool *pgxpool.Pool }

func NewPatientRepoPG(pool *pgxpool.Pool) PatientRepository { return &patientRepoPG{pool: pool} }

func (r *patientRepoPG) conn(ctx context.Context) queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const patientCols = `patient_id, first_name, last_name, gender,
	to_char(date_of_birth, 'YYYY-MM-DD'), contact_number, address, registration_date,
	insurance_provider, insurance_number, email`

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Gender,
		&p.DateOfBirth, &p.ContactNumber, &p.Address, &p.RegistrationDate,
		&p.InsuranceProvider, &p.InsuranceNumber, &p.Email)
	return &p, err
}

func (r *patientRepoPG) Create(ctx context.Context, ch store.Changes) (int64, error) {
	q, args := ch.InsertSQL("patients", "patient_id")
	var id int64
	if err := r.conn(ctx).QueryRow(ctx, q, args...).Scan(&id); err != nil {
		return 0, store.Translate(err)
	}
	return id, nil
}

func (r *patientRepoPG) GetByID(ctx context.Context, id int64) (*Patient, error) {
	p, err := scanPatient(r.conn(ctx).QueryRow(ctx, `SELECT `+patientCols+` FROM patients WHERE patient_id = $1`, id))
	if err != nil {
		return nil, store.TranslateRow(err, "Patient", id)
	}
	return p, nil
}

func (r *patientRepoPG) List(ctx context.Context) ([]*Patient, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+patientCols+` FROM patients ORDER BY patient_id`)
	if err != nil {
		return nil, store.Translate(err)
	}
	defer rows.Close()
	items := []*Patient{}
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

func (r *patientRepoPG) Update(ctx context.Context, id int64, ch store.Changes) error {
	q, args := ch.UpdateSQL("patients", "patient_id", id)
	_, err := r.conn(ctx).Exec(ctx, q, args...)
	return store.Translate(err)
}

func (r *patientRepoPG) Delete(ctx context.Context, id int64) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM patients WHERE patient_id = $1`, id)
	return store.Translate(err)
}

func (r *patientRepoPG) Exists(ctx context.Context, id int64) (bool, error) {
	var ok bool
	err := r.conn(ctx).QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM patients WHERE patient_id = $1)`, id).Scan(&ok)
	return ok, store.Translate(err)
}

// =========== Doctor Repository ===========

type doctorRepoPG struct{ pool *pgxpool.Pool }

func NewDoctorRepoPG(pool *pgxpool.Pool) DoctorRepository { return &doctorRepoPG{pool: pool} }

func (r *doctorRepoPG) conn(ctx context.Context) queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const doctorCols = `doctor_id, first_name, last_name, specialization, phone_number,
	years_experience, hospital_branch, email`

func scanDoctor(row pgx.Row) (*Doctor, error) {
	var d Doctor
	err := row.Scan(&d.ID, &d.FirstName, &d.LastName, &d.Specialization, &d.PhoneNumber,
		&d.YearsExperience, &d.HospitalBranch, &d.Email)
	return &d, err
}

func (r *doctorRepoPG) Create(ctx context.Context, ch store.Changes) (int64, error) {
	q, args := ch.InsertSQL("doctors", "doctor_id")
	var id int64
	if err := r.conn(ctx).QueryRow(ctx, q, args...).Scan(&id); err != nil {
		return 0, store.Translate(err)
	}
	return id, nil
}

func (r *doctorRepoPG) GetByID(ctx context.Context, id int64) (*Doctor, error) {
	d, err := scanDoctor(r.conn(ctx).QueryRow(ctx, `SELECT `+doctorCols+` FROM doctors WHERE doctor_id = $1`, id))
	if err != nil {
		return nil, store.TranslateRow(err, "Doctor", id)
	}
	return d, nil
}

func (r *doctorRepoPG) List(ctx context.Context) ([]*Doctor, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+doctorCols+` FROM doctors ORDER BY doctor_id`)
	if err != nil {
		return nil, store.Translate(err)
	}
	defer rows.Close()
	items := []*Doctor{}
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

func (r *doctorRepoPG) Update(ctx context.Context, id int64, ch store.Changes) error {
	q, args := ch.UpdateSQL("doctors", "doctor_id", id)
	_, err := r.conn(ctx).Exec(ctx, q, args...)
	return store.Translate(err)
}

func (r *doctorRepoPG) Delete(ctx context.Context, id int64) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM doctors WHERE doctor_id = $1`, id)
	return store.Translate(err)
}

func (r *doctorRepoPG) Exists(ctx context.Context, id int64) (bool, error) {
	var ok bool
	err := r.conn(ctx).QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM doctors WHERE doctor_id = $1)`, id).Scan(&ok)
	return ok, store.Translate(err)
}
