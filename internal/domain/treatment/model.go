package treatment

import (
	"time"

	"github.com/lepufeng/SDSC-5003-Hospital-Management-System/internal/platform/store"
)

type Treatment struct {
	ID            int64     `json:"treatment_id"`
	AppointmentID int64     `json:"appointment_id"`
	TreatmentType *string   `json:"treatment_type"`
	Description   *string   `json:"description"`
	Cost          *float64  `json:"cost"`
	TreatmentDate time.Time `json:"treatment_date"`
}

var TreatmentColumns = store.Columns{
	{Name: "appointment_id", Kind: store.Reference, Required: true},
	{Name: "treatment_type", Kind: store.Text},
	{Name: "description", Kind: store.Text},
	{Name: "cost", Kind: store.Real, NonNegative: true},
	{Name: "treatment_date", Kind: store.Timestamp, Required: true, Defaulted: true},
}
