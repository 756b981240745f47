package roster

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepufeng/SDSC-5003-Hospital-Management-System/internal/domain/identity"
	"github.com/lepufeng/SDSC-5003-Hospital-Management-System/internal/domain/scheduling"
	"github.com/lepufeng/SDSC-5003-Hospital-Management-System/internal/domain/treatment"
	"github.com/lepufeng/SDSC-5003-Hospital-Management-System/internal/platform/db/dbtest"
	"github.com/lepufeng/SDSC-5003-Hospital-Management-System/internal/platform/store"
)

func fields(t *testing.T, body string) store.Fields {
	t.Helper()
	f := store.Fields{}
	require.NoError(t, json.Unmarshal([]byte(body), &f))
	return f
}

func TestRosterRepoPG_FirstBooking(t *testing.T) {
	pool := dbtest.Open(t)
	ctx := context.Background()
	people := identity.NewService(identity.NewPatientRepoPG(pool), identity.NewDoctorRepoPG(pool))
	visits := scheduling.NewService(scheduling.NewAppointmentRepoPG(pool), people)
	svc := NewService(NewRosterRepoPG(pool), people)

	doctorID, err := people.CreateDoctor(ctx, fields(t, `{"first_name":"A","last_name":"B","email":"a@b.com"}`))
	require.NoError(t, err)
	require.Equal(t, int64(1), doctorID)
	patientID, err := people.RegisterPatient(ctx, fields(t, `{"first_name":"C","last_name":"D"}`))
	require.NoError(t, err)
	require.Equal(t, int64(1), patientID)
	apptID, err := visits.CreateAppointment(ctx, fields(t,
		`{"patient_id":1,"doctor_id":1,"appointment_date":"2024-01-01","appointment_time":"09:00"}`))
	require.NoError(t, err)
	require.Equal(t, int64(1), apptID)

	out, err := svc.DoctorPatients(ctx, doctorID)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, int64(1), out[0].Patient.ID)
	assert.Equal(t, "C", out[0].Patient.FirstName)
	require.Len(t, out[0].Appointments, 1)
	a := out[0].Appointments[0]
	assert.Equal(t, int64(1), a.ID)
	assert.Equal(t, scheduling.StatusScheduled, a.Status)
	assert.Equal(t, "2024-01-01", a.Date)
	assert.Equal(t, "09:00", a.Time)
	assert.Empty(t, a.Treatments)

	_, err = svc.DoctorPatients(ctx, 999)
	assert.True(t, store.IsNotFound(err))
}

func TestRosterRepoPG_CollapsesTreatments(t *testing.T) {
	pool := dbtest.Open(t)
	ctx := context.Background()
	people := identity.NewService(identity.NewPatientRepoPG(pool), identity.NewDoctorRepoPG(pool))
	visits := scheduling.NewService(scheduling.NewAppointmentRepoPG(pool), people)
	care := treatment.NewService(treatment.NewTreatmentRepoPG(pool), people)
	svc := NewService(NewRosterRepoPG(pool), people)

	_, err := people.CreateDoctor(ctx, fields(t, `{"first_name":"A","last_name":"B"}`))
	require.NoError(t, err)
	for _, name := range []string{"X", "Y"} {
		_, err := people.RegisterPatient(ctx, fields(t, `{"first_name":"`+name+`","last_name":"Z"}`))
		require.NoError(t, err)
	}
	book := func(patient, date string) int64 {
		id, err := visits.CreateAppointment(ctx, fields(t,
			`{"patient_id":`+patient+`,"doctor_id":1,"appointment_date":"`+date+`","appointment_time":"10:00"}`))
		require.NoError(t, err)
		return id
	}
	a1 := book("1", "2024-02-01")
	a2 := book("1", "2024-01-01")
	a3 := book("2", "2024-03-01")
	for _, at := range []string{"2024-02-01 10:15:00", "2024-02-01 10:45:00"} {
		_, err := care.CreateTreatment(ctx, fields(t, `{"appointment_id":1,"cost":10,"treatment_date":"`+at+`"}`))
		require.NoError(t, err)
	}

	out, err := svc.DoctorPatients(ctx, 1)
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, "Y", out[0].Patient.FirstName)
	require.Len(t, out[0].Appointments, 1)
	assert.Equal(t, a3, out[0].Appointments[0].ID)

	x := out[1]
	require.Len(t, x.Appointments, 2)
	assert.Equal(t, a1, x.Appointments[0].ID)
	require.Len(t, x.Appointments[0].Treatments, 2)
	assert.True(t, x.Appointments[0].Treatments[0].TreatmentDate.Before(x.Appointments[0].Treatments[1].TreatmentDate))
	assert.Equal(t, a2, x.Appointments[1].ID)
	assert.Empty(t, x.Appointments[1].Treatments)
}
