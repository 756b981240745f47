package roster

// Fold nests join rows into per-patient entries in a single pass. Patients
// appear in order of first appearance, appointments keep row order within
// their patient and treatments keep row order within their appointment.
// Rows sharing an appointment id collapse into one appointment entry.
func Fold(rows []Row) []*PatientEntry {
	out := []*PatientEntry{}
	patients := make(map[int64]*PatientEntry)
	type apptKey struct{ patient, appointment int64 }
	appts := make(map[apptKey]*AppointmentEntry)

	for i := range rows {
		r := &rows[i]
		p, ok := patients[r.Patient.ID]
		if !ok {
			p = &PatientEntry{Patient: r.Patient, Appointments: []*AppointmentEntry{}}
			patients[r.Patient.ID] = p
			out = append(out, p)
		}

		key := apptKey{r.Patient.ID, r.AppointmentID}
		a, ok := appts[key]
		if !ok {
			a = &AppointmentEntry{
				ID:         r.AppointmentID,
				Date:       r.Date,
				Time:       r.Time,
				Status:     r.Status,
				Treatments: []*TreatmentEntry{},
			}
			appts[key] = a
			p.Appointments = append(p.Appointments, a)
		}

		if r.TreatmentID == nil {
			continue
		}
		t := &TreatmentEntry{
			ID:            *r.TreatmentID,
			TreatmentType: r.TreatmentType,
			Description:   r.Description,
			Cost:          r.Cost,
		}
		if r.TreatmentDate != nil {
			t.TreatmentDate = *r.TreatmentDate
		}
		a.Treatments = append(a.Treatments, t)
	}
	return out
}
