package billing

import (
	"time"

	"github.com/lepufeng/SDSC-5003-Hospital-Management-System/internal/platform/store"
)

// PaymentUnpaid is the store default for a new bill.
const PaymentUnpaid = "unpaid"

type Bill struct {
	ID            int64     `json:"bill_id"`
	PatientID     int64     `json:"patient_id"`
	TreatmentID   *int64    `json:"treatment_id"`
	BillDate      time.Time `json:"bill_date"`
	Amount        float64   `json:"amount"`
	PaymentMethod *string   `json:"payment_method"`
	PaymentStatus string    `json:"payment_status"`
}

// BillDetail is a bill with the billed patient's name.
type BillDetail struct {
	Bill
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

var BillColumns = store.Columns{
	{Name: "patient_id", Kind: store.Reference, Required: true},
	{Name: "treatment_id", Kind: store.Reference},
	{Name: "bill_date", Kind: store.Timestamp, Required: true, Defaulted: true},
	{Name: "amount", Kind: store.Real, Required: true, NonNegative: true},
	{Name: "payment_method", Kind: store.Text},
	{Name: "payment_status", Kind: store.Text, Required: true, Defaulted: true},
}

// updateColumns are the attributes an admin may change after billing.
var updateColumns = BillColumns.Only("amount", "payment_method", "payment_status", "treatment_id", "patient_id")
