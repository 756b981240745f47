package roster

import "context"

type RosterRepository interface {
	// RowsForDoctor returns the appointment/patient/treatment join for one
	// doctor, most recent appointment first.
	RowsForDoctor(ctx context.Context, doctorID int64) ([]Row, error)
}
