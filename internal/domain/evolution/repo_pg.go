package evolution

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/physiorec/physiorec/internal/platform/db"
)

type recordRepoPG struct{ pool *pgxpool.Pool }

func NewRecordRepoPG(pool *pgxpool.Pool) RecordRepository {
	return &recordRepoPG{pool: pool}
}

const recordCols = `record_id, patient_id, date, procedures, complications, health_status_evolution, professional_id`

func scanRecord(row pgx.Row) (*Record, error) {
	var r Record
	err := row.Scan(&r.ID, &r.PatientID, &r.Date, &r.Procedures,
		&r.Complications, &r.HealthStatusEvolution, &r.ProfessionalID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *recordRepoPG) Create(ctx context.Context, rec *Record) error {
	return db.Conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO evolution_records
			(patient_id, date, procedures, complications, health_status_evolution, professional_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+recordCols,
		rec.PatientID, rec.Date, rec.Procedures, rec.Complications,
		rec.HealthStatusEvolution, rec.ProfessionalID).Scan(
		&rec.ID, &rec.PatientID, &rec.Date, &rec.Procedures,
		&rec.Complications, &rec.HealthStatusEvolution, &rec.ProfessionalID)
}

func (r *recordRepoPG) list(ctx context.Context, sql string, args ...interface{}) ([]*Record, error) {
	rows, err := db.Conn(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recs := []*Record{}
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.PatientID, &rec.Date, &rec.Procedures,
			&rec.Complications, &rec.HealthStatusEvolution, &rec.ProfessionalID); err != nil {
			return nil, err
		}
		recs = append(recs, &rec)
	}
	return recs, rows.Err()
}

func (r *recordRepoPG) ListByPatient(ctx context.Context, patientID int64, limit, offset int) ([]*Record, error) {
	return r.list(ctx, `
		SELECT `+recordCols+` FROM evolution_records
		WHERE patient_id = $1 ORDER BY record_id LIMIT $2 OFFSET $3`,
		patientID, limit, offset)
}

func (r *recordRepoPG) AllByPatient(ctx context.Context, patientID int64) ([]*Record, error) {
	return r.list(ctx, `
		SELECT `+recordCols+` FROM evolution_records
		WHERE patient_id = $1 ORDER BY record_id`, patientID)
}

func (r *recordRepoPG) AllByProfessional(ctx context.Context, professionalID int64) ([]*Record, error) {
	return r.list(ctx, `
		SELECT `+recordCols+` FROM evolution_records
		WHERE professional_id = $1 ORDER BY record_id`, professionalID)
}

// Replace overwrites every mutable field of the record. The subquery scopes
// the write to records whose patient belongs to the user.
func (r *recordRepoPG) Replace(ctx context.Context, id, userID int64, rec *Record) (*Record, error) {
	return scanRecord(db.Conn(ctx, r.pool).QueryRow(ctx, `
		UPDATE evolution_records
		SET date = $1, procedures = $2, complications = $3,
		    health_status_evolution = $4, professional_id = $5
		WHERE record_id = $6
		  AND patient_id IN (SELECT id FROM patients WHERE user_id = $7)
		RETURNING `+recordCols,
		rec.Date, rec.Procedures, rec.Complications,
		rec.HealthStatusEvolution, rec.ProfessionalID, id, userID))
}

func (r *recordRepoPG) Delete(ctx context.Context, id, userID int64) (*Record, error) {
	return scanRecord(db.Conn(ctx, r.pool).QueryRow(ctx, `
		DELETE FROM evolution_records
		WHERE record_id = $1
		  AND patient_id IN (SELECT id FROM patients WHERE user_id = $2)
		RETURNING `+recordCols, id, userID))
}
