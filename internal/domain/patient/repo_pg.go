package patient

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/physiorec/physiorec/internal/platform/db"
	"github.com/physiorec/physiorec/internal/platform/query"
)

type patientRepoPG struct{ pool *pgxpool.Pool }

func NewPatientRepoPG(pool *pgxpool.Pool) PatientRepository {
	return &patientRepoPG{pool: pool}
}

const patientCols = `id, full_name, age, place_of_birth, marital_status, gender, profession, residential_address, commercial_address, user_id`

var filterConfigs = map[string]query.ParamConfig{
	"full_name":      {Type: query.ParamString, Column: "full_name"},
	"age":            {Type: query.ParamNumber, Column: "age"},
	"gender":         {Type: query.ParamString, Column: "gender"},
	"profession":     {Type: query.ParamString, Column: "profession"},
	"marital_status": {Type: query.ParamString, Column: "marital_status"},
	"place_of_birth": {Type: query.ParamString, Column: "place_of_birth"},
}

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.FullName, &p.Age, &p.PlaceOfBirth, &p.MaritalStatus,
		&p.Gender, &p.Profession, &p.ResidentialAddress, &p.CommercialAddress, &p.UserID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *patientRepoPG) Create(ctx context.Context, p *Patient) error {
	return db.Conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO patients
			(full_name, age, place_of_birth, marital_status, gender, profession,
			 residential_address, commercial_address, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		p.FullName, p.Age, p.PlaceOfBirth, p.MaritalStatus, p.Gender,
		p.Profession, p.ResidentialAddress, p.CommercialAddress, p.UserID).Scan(&p.ID)
}

func (r *patientRepoPG) GetByID(ctx context.Context, id, userID int64) (*Patient, error) {
	return scanPatient(db.Conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+patientCols+` FROM patients WHERE id = $1 AND user_id = $2`, id, userID))
}

func (r *patientRepoPG) List(ctx context.Context, userID int64, filters map[string]string, limit, offset int) ([]*Patient, error) {
	b := query.NewBuilder("patients", patientCols)
	b.Add("user_id = $1", userID)
	b.ApplyParams(filters, filterConfigs)
	b.OrderBy("id")

	rows, err := db.Conn(ctx, r.pool).Query(ctx, b.SQL(), b.Args(limit, offset)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	patients := []*Patient{}
	for rows.Next() {
		var p Patient
		if err := rows.Scan(&p.ID, &p.FullName, &p.Age, &p.PlaceOfBirth, &p.MaritalStatus,
			&p.Gender, &p.Profession, &p.ResidentialAddress, &p.CommercialAddress, &p.UserID); err != nil {
			return nil, err
		}
		patients = append(patients, &p)
	}
	return patients, rows.Err()
}

func (r *patientRepoPG) Update(ctx context.Context, id, userID int64, in UpdateInput) (*Patient, error) {
	return scanPatient(db.Conn(ctx, r.pool).QueryRow(ctx, `
		UPDATE patients
		SET full_name = COALESCE($1, full_name),
		    age = COALESCE($2, age),
		    place_of_birth = COALESCE($3, place_of_birth),
		    marital_status = COALESCE($4, marital_status),
		    gender = COALESCE($5, gender),
		    profession = COALESCE($6, profession),
		    residential_address = COALESCE($7, residential_address),
		    commercial_address = COALESCE($8, commercial_address)
		WHERE id = $9 AND user_id = $10
		RETURNING `+patientCols,
		in.FullName, in.Age, in.PlaceOfBirth, in.MaritalStatus, in.Gender,
		in.Profession, in.ResidentialAddress, in.CommercialAddress, id, userID))
}

// Delete removes the patient; its clinical records go with it through the
// CASCADE constraints.
func (r *patientRepoPG) Delete(ctx context.Context, id, userID int64) (*Patient, error) {
	return scanPatient(db.Conn(ctx, r.pool).QueryRow(ctx, `
		DELETE FROM patients WHERE id = $1 AND user_id = $2
		RETURNING `+patientCols, id, userID))
}
