package admin

// Counts is the number of rows held for each clinic entity.
type Counts struct {
	Patients     int64 `json:"patients"`
	Doctors      int64 `json:"doctors"`
	Appointments int64 `json:"appointments"`
	Treatments   int64 `json:"treatments"`
	Billing      int64 `json:"billing"`
}

// Census is the daily snapshot logged by the census job.
type Census struct {
	Counts
	Day               string `json:"day"`
	AppointmentsToday int64  `json:"appointments_today"`
}
