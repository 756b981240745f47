package scheduling

import (
	"context"
	"time"

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

// =========== Appointment Repository ===========

type appointmentRepoPG struct{ pool *pgxpool.Pool }

func NewAppointmentRepoPG(pool *pgxpool.Pool) AppointmentRepository {
	return &appointmentRepoPG{pool: pool}
}

func (r *appointmentRepoPG) conn(ctx context.Context) queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const apptCols = `a.appointment_id, a.patient_id, a.doctor_id,
	to_char(a.appointment_date, 'YYYY-MM-DD'), to_char(a.appointment_time, 'HH24:MI'),
	a.reason_for_visit, a.status`

// Most recent first; the id breaks ties between identical slots.
const apptRecentFirst = `ORDER BY a.appointment_date DESC, a.appointment_time DESC, a.appointment_id DESC`

func apptDest(a *Appointment) []interface{} {
	return []interface{}{&a.ID, &a.PatientID, &a.DoctorID, &a.Date, &a.Time, &a.ReasonForVisit, &a.Status}
}

func (r *appointmentRepoPG) Create(ctx context.Context, ch store.Changes) (int64, error) {
	q, args := ch.InsertSQL("appointments", "appointment_id")
	var id int64
	if err := r.conn(ctx).QueryRow(ctx, q, args...).Scan(&id); err != nil {
		return 0, store.Translate(err)
	}
	return id, nil
}

func (r *appointmentRepoPG) Update(ctx context.Context, id int64, ch store.Changes) error {
	q, args := ch.UpdateSQL("appointments", "appointment_id", id)
	_, err := r.conn(ctx).Exec(ctx, q, args...)
	return store.Translate(err)
}

func (r *appointmentRepoPG) SetStatus(ctx context.Context, id int64, status string) error {
	_, err := r.conn(ctx).Exec(ctx, `UPDATE appointments SET status = $1 WHERE appointment_id = $2`, status, id)
	return store.Translate(err)
}

func (r *appointmentRepoPG) Delete(ctx context.Context, id int64) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM appointments WHERE appointment_id = $1`, id)
	return store.Translate(err)
}

const detailQuery = `SELECT ` + apptCols + `,
	p.first_name, p.last_name, d.first_name, d.last_name
	FROM appointments a
	JOIN patients p ON a.patient_id = p.patient_id
	JOIN doctors d ON a.doctor_id = d.doctor_id`

func scanDetail(row pgx.Row) (*AppointmentDetail, error) {
	var a AppointmentDetail
	dest := append(apptDest(&a.Appointment),
		&a.PatientFirstName, &a.PatientLastName, &a.DoctorFirstName, &a.DoctorLastName)
	err := row.Scan(dest...)
	return &a, err
}

func (r *appointmentRepoPG) GetDetail(ctx context.Context, id int64) (*AppointmentDetail, error) {
	a, err := scanDetail(r.conn(ctx).QueryRow(ctx, detailQuery+` WHERE a.appointment_id = $1`, id))
	if err != nil {
		return nil, store.TranslateRow(err, "Appointment", id)
	}
	return a, nil
}

func (r *appointmentRepoPG) ListDetails(ctx context.Context) ([]*AppointmentDetail, error) {
	rows, err := r.conn(ctx).Query(ctx, detailQuery+` `+apptRecentFirst)
	if err != nil {
		return nil, store.Translate(err)
	}
	defer rows.Close()
	items := []*AppointmentDetail{}
	for rows.Next() {
		a, err := scanDetail(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

func (r *appointmentRepoPG) ListByPatient(ctx context.Context, patientID int64) ([]*PatientAppointment, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+apptCols+`,
		d.first_name, d.last_name, d.specialization
		FROM appointments a
		JOIN doctors d ON a.doctor_id = d.doctor_id
		WHERE a.patient_id = $1 `+apptRecentFirst, patientID)
	if err != nil {
		return nil, store.Translate(err)
	}
	defer rows.Close()
	items := []*PatientAppointment{}
	for rows.Next() {
		var a PatientAppointment
		dest := append(apptDest(&a.Appointment), &a.DoctorFirstName, &a.DoctorLastName, &a.Specialization)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		items = append(items, &a)
	}
	return items, rows.Err()
}

func (r *appointmentRepoPG) ListByDoctor(ctx context.Context, doctorID int64) ([]*DoctorAppointment, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+apptCols+`,
		p.first_name, p.last_name
		FROM appointments a
		JOIN patients p ON a.patient_id = p.patient_id
		WHERE a.doctor_id = $1 `+apptRecentFirst, doctorID)
	if err != nil {
		return nil, store.Translate(err)
	}
	defer rows.Close()
	items := []*DoctorAppointment{}
	for rows.Next() {
		var a DoctorAppointment
		dest := append(apptDest(&a.Appointment), &a.PatientFirstName, &a.PatientLastName)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		items = append(items, &a)
	}
	return items, rows.Err()
}

func (r *appointmentRepoPG) ListByDoctorOn(ctx context.Context, doctorID int64, day time.Time) ([]*DoctorAppointment, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+apptCols+`,
		p.first_name, p.last_name, p.contact_number
		FROM appointments a
		JOIN patients p ON a.patient_id = p.patient_id
		WHERE a.doctor_id = $1 AND a.appointment_date = $2::date
		ORDER BY a.appointment_time ASC, a.appointment_id ASC`,
		doctorID, day.Format(store.DateLayout))
	if err != nil {
		return nil, store.Translate(err)
	}
	defer rows.Close()
	items := []*DoctorAppointment{}
	for rows.Next() {
		var a DoctorAppointment
		dest := append(apptDest(&a.Appointment), &a.PatientFirstName, &a.PatientLastName, &a.PatientContact)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		items = append(items, &a)
	}
	return items, rows.Err()
}
