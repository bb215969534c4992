package evolution

import "github.com/jackc/pgx/v5/pgtype"

// Record is one session entry in a patient's evolution log, signed by the
// professional who ran the session. Date is a calendar date; pgtype.Date
// keeps the "YYYY-MM-DD" wire format on both the SQL and JSON side.
type Record struct {
	ID                    int64       `db:"record_id" json:"record_id"`
	PatientID             int64       `db:"patient_id" json:"patient_id"`
	Date                  pgtype.Date `db:"date" json:"date"`
	Procedures            *string     `db:"procedures" json:"procedures"`
	Complications         *string     `db:"complications" json:"complications"`
	HealthStatusEvolution *string     `db:"health_status_evolution" json:"health_status_evolution"`
	ProfessionalID        *int64      `db:"professional_id" json:"professional_id"`
}
