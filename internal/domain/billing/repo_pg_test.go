package billing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepufeng/SDSC-5003-Hospital-Management-System/internal/domain/identity"
	"github.com/lepufeng/SDSC-5003-Hospital-Management-System/internal/domain/scheduling"
	"github.com/lepufeng/SDSC-5003-Hospital-Management-System/internal/domain/treatment"
	"github.com/lepufeng/SDSC-5003-Hospital-Management-System/internal/platform/db/dbtest"
	"github.com/lepufeng/SDSC-5003-Hospital-Management-System/internal/platform/store"
)

func TestBillRepoPG_Lifecycle(t *testing.T) {
	pool := dbtest.Open(t)
	ctx := context.Background()
	people := identity.NewService(identity.NewPatientRepoPG(pool), identity.NewDoctorRepoPG(pool))
	svc := NewService(NewBillRepoPG(pool), people)

	patientID, err := people.RegisterPatient(ctx, fields(t, `{"first_name":"C","last_name":"D"}`))
	require.NoError(t, err)

	older, err := svc.CreateBill(ctx, fields(t, `{"patient_id":1,"amount":10,"bill_date":"2024-01-01T08:00:00Z"}`))
	require.NoError(t, err)
	newer, err := svc.CreateBill(ctx, fields(t, `{"patient_id":1,"amount":"99.95","bill_date":"2024-02-01T08:00:00Z"}`))
	require.NoError(t, err)

	b, err := svc.GetBill(ctx, older)
	require.NoError(t, err)
	assert.Equal(t, PaymentUnpaid, b.PaymentStatus)
	assert.Equal(t, "C", b.FirstName)
	assert.Nil(t, b.TreatmentID)

	all, err := svc.ListBills(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, newer, all[0].ID)
	assert.Equal(t, 99.95, all[0].Amount)

	require.NoError(t, svc.UpdateBill(ctx, older, fields(t, `{"payment_status":"paid","payment_method":"cash"}`)))
	b, _ = svc.GetBill(ctx, older)
	assert.Equal(t, "paid", b.PaymentStatus)
	assert.Equal(t, "cash", *b.PaymentMethod)

	_, err = svc.CreateBill(ctx, fields(t, `{"patient_id":5,"amount":1}`))
	assert.True(t, store.IsIntegrity(err))

	require.NoError(t, svc.DeleteBill(ctx, newer))
	require.NoError(t, svc.DeleteBill(ctx, newer))
	_, err = svc.GetBill(ctx, newer)
	assert.True(t, store.IsNotFound(err))

	items, err := svc.PatientBills(ctx, patientID)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestBillRepoPG_TreatmentDeleteNullifies(t *testing.T) {
	pool := dbtest.Open(t)
	ctx := context.Background()
	people := identity.NewService(identity.NewPatientRepoPG(pool), identity.NewDoctorRepoPG(pool))
	visits := scheduling.NewService(scheduling.NewAppointmentRepoPG(pool), people)
	care := treatment.NewService(treatment.NewTreatmentRepoPG(pool), people)
	svc := NewService(NewBillRepoPG(pool), people)

	_, err := people.CreateDoctor(ctx, fields(t, `{"first_name":"A","last_name":"B"}`))
	require.NoError(t, err)
	_, err = people.RegisterPatient(ctx, fields(t, `{"first_name":"C","last_name":"D"}`))
	require.NoError(t, err)
	_, err = visits.CreateAppointment(ctx, fields(t,
		`{"patient_id":1,"doctor_id":1,"appointment_date":"2024-01-01","appointment_time":"09:00"}`))
	require.NoError(t, err)
	treatmentID, err := care.CreateTreatment(ctx, fields(t, `{"appointment_id":1,"cost":40}`))
	require.NoError(t, err)

	billID, err := svc.CreateBill(ctx, fields(t, `{"patient_id":1,"treatment_id":1,"amount":40}`))
	require.NoError(t, err)
	b, _ := svc.GetBill(ctx, billID)
	require.NotNil(t, b.TreatmentID)
	assert.Equal(t, treatmentID, *b.TreatmentID)

	require.NoError(t, care.DeleteTreatment(ctx, treatmentID))
	b, err = svc.GetBill(ctx, billID)
	require.NoError(t, err)
	assert.Nil(t, b.TreatmentID)
	assert.Equal(t, 40.0, b.Amount)

	require.NoError(t, people.DeletePatient(ctx, 1))
	_, err = svc.GetBill(ctx, billID)
	assert.True(t, store.IsNotFound(err))
}
