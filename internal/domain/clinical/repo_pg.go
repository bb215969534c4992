package clinical

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/physiorec/physiorec/internal/platform/db"
)

// Repo is the PostgreSQL store shared by the six narrative record types,
// parameterized over the table mapping.
type Repo[T any] struct {
	pool *pgxpool.Pool
	t    Table[T]
}

func NewRepo[T any](pool *pgxpool.Pool, t Table[T]) *Repo[T] {
	return &Repo[T]{pool: pool, t: t}
}

func (r *Repo[T]) selectCols() string {
	return r.t.IDCol + ", patient_id, " + strings.Join(r.t.Cols, ", ")
}

func (r *Repo[T]) scanRow(row pgx.Row) (*T, error) {
	rec := new(T)
	err := row.Scan(r.t.Dest(rec)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *Repo[T]) Create(ctx context.Context, patientID int64, rec *T) error {
	ph := make([]string, len(r.t.Cols))
	for i := range r.t.Cols {
		ph[i] = fmt.Sprintf("$%d", i+2)
	}
	sql := fmt.Sprintf(
		"INSERT INTO %s (patient_id, %s) VALUES ($1, %s) RETURNING %s",
		r.t.Name, strings.Join(r.t.Cols, ", "), strings.Join(ph, ", "), r.selectCols())

	args := append([]interface{}{patientID}, r.t.Args(rec)...)
	return db.Conn(ctx, r.pool).QueryRow(ctx, sql, args...).Scan(r.t.Dest(rec)...)
}

func (r *Repo[T]) list(ctx context.Context, sql string, args ...interface{}) ([]*T, error) {
	rows, err := db.Conn(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recs := []*T{}
	for rows.Next() {
		rec := new(T)
		if err := rows.Scan(r.t.Dest(rec)...); err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func (r *Repo[T]) ListByPatient(ctx context.Context, patientID int64, limit, offset int) ([]*T, error) {
	sql := fmt.Sprintf(
		"SELECT %s FROM %s WHERE patient_id = $1 ORDER BY %s LIMIT $2 OFFSET $3",
		r.selectCols(), r.t.Name, r.t.IDCol)
	return r.list(ctx, sql, patientID, limit, offset)
}

func (r *Repo[T]) AllByPatient(ctx context.Context, patientID int64) ([]*T, error) {
	sql := fmt.Sprintf(
		"SELECT %s FROM %s WHERE patient_id = $1 ORDER BY %s",
		r.selectCols(), r.t.Name, r.t.IDCol)
	return r.list(ctx, sql, patientID)
}

// Update merges the non-nil fields of rec into the stored row. The subquery
// restricts the write to records whose patient belongs to the user, so a
// foreign record is indistinguishable from a missing one.
func (r *Repo[T]) Update(ctx context.Context, id, userID int64, rec *T) (*T, error) {
	set := make([]string, len(r.t.Cols))
	for i, col := range r.t.Cols {
		set[i] = fmt.Sprintf("%s = COALESCE($%d, %s)", col, i+1, col)
	}
	n := len(r.t.Cols)
	sql := fmt.Sprintf(
		`UPDATE %s SET %s
		 WHERE %s = $%d
		   AND patient_id IN (SELECT id FROM patients WHERE user_id = $%d)
		 RETURNING %s`,
		r.t.Name, strings.Join(set, ", "), r.t.IDCol, n+1, n+2, r.selectCols())

	args := append(r.t.Args(rec), id, userID)
	return r.scanRow(db.Conn(ctx, r.pool).QueryRow(ctx, sql, args...))
}

func (r *Repo[T]) Delete(ctx context.Context, id, userID int64) (*T, error) {
	sql := fmt.Sprintf(
		`DELETE FROM %s
		 WHERE %s = $1
		   AND patient_id IN (SELECT id FROM patients WHERE user_id = $2)
		 RETURNING %s`,
		r.t.Name, r.t.IDCol, r.selectCols())
	return r.scanRow(db.Conn(ctx, r.pool).QueryRow(ctx, sql, id, userID))
}

// PatientGate checks patient visibility directly against the patients table.
type PatientGate struct {
	pool *pgxpool.Pool
}

func NewPatientGate(pool *pgxpool.Pool) *PatientGate {
	return &PatientGate{pool: pool}
}

func (g *PatientGate) Visible(ctx context.Context, patientID, userID int64) (bool, error) {
	var ok bool
	err := db.Conn(ctx, g.pool).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM patients WHERE id = $1 AND user_id = $2)`,
		patientID, userID).Scan(&ok)
	return ok, err
}
