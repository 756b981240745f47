package identity

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepufeng/SDSC-5003-Hospital-Management-System/internal/platform/store"
)

// -- Mock Repositories --

func strPtr(v interface{}) *string {
	if v == nil {
		return nil
	}
	s := v.(string)
	return &s
}

type mockPatientRepo struct {
	nextID  int64
	records map[int64]*Patient
	updates int
}

func newMockPatientRepo() *mockPatientRepo {
	return &mockPatientRepo{records: make(map[int64]*Patient)}
}

func (m *mockPatientRepo) apply(p *Patient, ch store.Changes) {
	for _, name := range ch.Names() {
		v, _ := ch.Value(name)
		switch name {
		case "first_name":
			p.FirstName = v.(string)
		case "last_name":
			p.LastName = v.(string)
		case "gender":
			p.Gender = strPtr(v)
		case "date_of_birth":
			p.DateOfBirth = strPtr(v)
		case "contact_number":
			p.ContactNumber = strPtr(v)
		case "address":
			p.Address = strPtr(v)
		case "insurance_provider":
			p.InsuranceProvider = strPtr(v)
		case "insurance_number":
			p.InsuranceNumber = strPtr(v)
		case "email":
			p.Email = strPtr(v)
		}
	}
}

func (m *mockPatientRepo) Create(_ context.Context, ch store.Changes) (int64, error) {
	m.nextID++
	p := &Patient{ID: m.nextID, RegistrationDate: time.Now()}
	m.apply(p, ch)
	m.records[p.ID] = p
	return p.ID, nil
}

func (m *mockPatientRepo) GetByID(_ context.Context, id int64) (*Patient, error) {
	p, ok := m.records[id]
	if !ok {
		return nil, store.NotFound("Patient", id)
	}
	return p, nil
}

func (m *mockPatientRepo) List(_ context.Context) ([]*Patient, error) {
	items := []*Patient{}
	for id := int64(1); id <= m.nextID; id++ {
		if p, ok := m.records[id]; ok {
			items = append(items, p)
		}
	}
	return items, nil
}

func (m *mockPatientRepo) Update(_ context.Context, id int64, ch store.Changes) error {
	m.updates++
	if p, ok := m.records[id]; ok {
		m.apply(p, ch)
	}
	return nil
}

func (m *mockPatientRepo) Delete(_ context.Context, id int64) error {
	delete(m.records, id)
	return nil
}

func (m *mockPatientRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := m.records[id]
	return ok, nil
}

type mockDoctorRepo struct {
	nextID  int64
	records map[int64]*Doctor
}

func newMockDoctorRepo() *mockDoctorRepo {
	return &mockDoctorRepo{records: make(map[int64]*Doctor)}
}

func (m *mockDoctorRepo) apply(d *Doctor, ch store.Changes) {
	for _, name := range ch.Names() {
		v, _ := ch.Value(name)
		switch name {
		case "first_name":
			d.FirstName = v.(string)
		case "last_name":
			d.LastName = v.(string)
		case "specialization":
			d.Specialization = strPtr(v)
		case "email":
			d.Email = strPtr(v)
		case "years_experience":
			if v == nil {
				d.YearsExperience = nil
			} else {
				n := v.(int64)
				d.YearsExperience = &n
			}
		}
	}
}

func (m *mockDoctorRepo) Create(_ context.Context, ch store.Changes) (int64, error) {
	m.nextID++
	d := &Doctor{ID: m.nextID}
	m.apply(d, ch)
	m.records[d.ID] = d
	return d.ID, nil
}

func (m *mockDoctorRepo) GetByID(_ context.Context, id int64) (*Doctor, error) {
	d, ok := m.records[id]
	if !ok {
		return nil, store.NotFound("Doctor", id)
	}
	return d, nil
}

func (m *mockDoctorRepo) List(_ context.Context) ([]*Doctor, error) {
	items := []*Doctor{}
	for id := int64(1); id <= m.nextID; id++ {
		if d, ok := m.records[id]; ok {
			items = append(items, d)
		}
	}
	return items, nil
}

func (m *mockDoctorRepo) Update(_ context.Context, id int64, ch store.Changes) error {
	if d, ok := m.records[id]; ok {
		m.apply(d, ch)
	}
	return nil
}

func (m *mockDoctorRepo) Delete(_ context.Context, id int64) error {
	delete(m.records, id)
	return nil
}

func (m *mockDoctorRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := m.records[id]
	return ok, nil
}

func newTestService() (*Service, *mockPatientRepo, *mockDoctorRepo) {
	p, d := newMockPatientRepo(), newMockDoctorRepo()
	return NewService(p, d), p, d
}

func fields(t *testing.T, body string) store.Fields {
	t.Helper()
	f := store.Fields{}
	require.NoError(t, json.Unmarshal([]byte(body), &f))
	return f
}

// -- Patient Tests --

func TestService_RegisterPatient(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	id, err := svc.RegisterPatient(ctx, fields(t, `{"first_name":"C","last_name":"D","email":"c@d.com"}`))
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	p, err := svc.GetPatient(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "C", p.FirstName)
	assert.Equal(t, "D", p.LastName)
	require.NotNil(t, p.Email)
	assert.Equal(t, "c@d.com", *p.Email)
	assert.Nil(t, p.Gender)
	assert.False(t, p.RegistrationDate.IsZero())
}

func TestService_RegisterPatient_RequiresNames(t *testing.T) {
	svc, repo, _ := newTestService()
	for _, body := range []string{`{}`, `{"first_name":"C"}`, `{"first_name":"","last_name":"D"}`, `{"first_name":"C","last_name":null}`} {
		_, err := svc.RegisterPatient(context.Background(), fields(t, body))
		assert.True(t, store.IsValidation(err), "body %s: got %v", body, err)
	}
	assert.Empty(t, repo.records)
}

func TestService_RegisterPatient_BadDate(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.RegisterPatient(context.Background(), fields(t, `{"first_name":"C","last_name":"D","date_of_birth":"31/12/1990"}`))
	assert.True(t, store.IsValidation(err))
}

func TestService_GetPatient_NotFound(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.GetPatient(context.Background(), 999)
	assert.True(t, store.IsNotFound(err))
}

func TestService_UpdatePatient_Partial(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	id, err := svc.RegisterPatient(ctx, fields(t, `{"first_name":"C","last_name":"D","address":"1 Main St"}`))
	require.NoError(t, err)

	require.NoError(t, svc.UpdatePatient(ctx, id, fields(t, `{"last_name":"E"}`)))

	p, _ := svc.GetPatient(ctx, id)
	assert.Equal(t, "C", p.FirstName)
	assert.Equal(t, "E", p.LastName)
	require.NotNil(t, p.Address)
	assert.Equal(t, "1 Main St", *p.Address)
}

func TestService_UpdatePatient_EmptyRejected(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()
	id, _ := svc.RegisterPatient(ctx, fields(t, `{"first_name":"C","last_name":"D"}`))

	err := svc.UpdatePatient(ctx, id, store.Fields{})
	require.Error(t, err)
	assert.True(t, store.IsValidation(err))
	assert.Zero(t, repo.updates, "a rejected update must not reach the store")
}

func TestService_UpdatePatient_MissingIDIsNoop(t *testing.T) {
	svc, _, _ := newTestService()
	assert.NoError(t, svc.UpdatePatient(context.Background(), 42, fields(t, `{"email":"x@y.z"}`)))
}

func TestService_DeletePatient_Idempotent(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	id, _ := svc.RegisterPatient(ctx, fields(t, `{"first_name":"C","last_name":"D"}`))

	require.NoError(t, svc.DeletePatient(ctx, id))
	require.NoError(t, svc.DeletePatient(ctx, id))

	ok, err := svc.PatientExists(ctx, id)
	require.NoError(t, err)
	assert.False(t, ok)
}

// -- Doctor Tests --

func TestService_CreateDoctor(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	id, err := svc.CreateDoctor(ctx, fields(t, `{"first_name":"A","last_name":"B","email":"a@b.com","years_experience":12}`))
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	d, err := svc.GetDoctor(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, d.YearsExperience)
	assert.Equal(t, int64(12), *d.YearsExperience)

	ok, _ := svc.DoctorExists(ctx, id)
	assert.True(t, ok)
}

func TestService_CreateDoctor_NegativeExperience(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.CreateDoctor(context.Background(), fields(t, `{"first_name":"A","last_name":"B","years_experience":-2}`))
	assert.True(t, store.IsValidation(err))
}

func TestService_Doctor_ExperienceOutOfRange(t *testing.T) {
	svc, _, doctors := newTestService()
	ctx := context.Background()

	_, err := svc.CreateDoctor(ctx, fields(t, `{"first_name":"A","last_name":"B","years_experience":9999999999}`))
	assert.True(t, store.IsValidation(err))
	assert.Empty(t, doctors.records)

	id, err := svc.CreateDoctor(ctx, fields(t, `{"first_name":"A","last_name":"B"}`))
	require.NoError(t, err)
	err = svc.UpdateDoctor(ctx, id, fields(t, `{"years_experience":"2147483648"}`))
	assert.True(t, store.IsValidation(err))
}

func TestService_UpdateDoctor_ClearOptional(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	id, _ := svc.CreateDoctor(ctx, fields(t, `{"first_name":"A","last_name":"B","specialization":"Cardiology"}`))

	require.NoError(t, svc.UpdateDoctor(ctx, id, fields(t, `{"specialization":null}`)))
	d, _ := svc.GetDoctor(ctx, id)
	assert.Nil(t, d.Specialization)
}

func TestService_ListDoctors(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	_, _ = svc.CreateDoctor(ctx, fields(t, `{"first_name":"A","last_name":"B"}`))
	_, _ = svc.CreateDoctor(ctx, fields(t, `{"first_name":"E","last_name":"F"}`))

	items, err := svc.ListDoctors(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, int64(1), items[0].ID)
	assert.Equal(t, int64(2), items[1].ID)
}
