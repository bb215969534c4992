package professional

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/physiorec/physiorec/internal/platform/db"
	"github.com/physiorec/physiorec/internal/platform/query"
)

type professionalRepoPG struct{ pool *pgxpool.Pool }

func NewProfessionalRepoPG(pool *pgxpool.Pool) ProfessionalRepository {
	return &professionalRepoPG{pool: pool}
}

const professionalCols = `professional_id, full_name, position, registration_number`

var filterConfigs = map[string]query.ParamConfig{
	"full_name":           {Type: query.ParamString, Column: "full_name"},
	"position":            {Type: query.ParamExact, Column: "position"},
	"registration_number": {Type: query.ParamString, Column: "registration_number"},
}

func scanProfessional(row pgx.Row) (*Professional, error) {
	var p Professional
	err := row.Scan(&p.ID, &p.FullName, &p.Position, &p.RegistrationNumber)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *professionalRepoPG) Create(ctx context.Context, p *Professional) error {
	return db.Conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO professionals (full_name, position, registration_number)
		VALUES ($1, $2, $3)
		RETURNING professional_id`,
		p.FullName, p.Position, p.RegistrationNumber).Scan(&p.ID)
}

func (r *professionalRepoPG) GetByID(ctx context.Context, id int64) (*Professional, error) {
	return scanProfessional(db.Conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+professionalCols+` FROM professionals WHERE professional_id = $1`, id))
}

func (r *professionalRepoPG) List(ctx context.Context, filters map[string]string, limit, offset int) ([]*Professional, error) {
	b := query.NewBuilder("professionals", professionalCols)
	b.ApplyParams(filters, filterConfigs)
	b.OrderBy("professional_id")

	rows, err := db.Conn(ctx, r.pool).Query(ctx, b.SQL(), b.Args(limit, offset)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pros := []*Professional{}
	for rows.Next() {
		var p Professional
		if err := rows.Scan(&p.ID, &p.FullName, &p.Position, &p.RegistrationNumber); err != nil {
			return nil, err
		}
		pros = append(pros, &p)
	}
	return pros, rows.Err()
}

func (r *professionalRepoPG) Update(ctx context.Context, id int64, in UpdateInput) (*Professional, error) {
	return scanProfessional(db.Conn(ctx, r.pool).QueryRow(ctx, `
		UPDATE professionals
		SET full_name = COALESCE($1, full_name),
		    position = COALESCE($2, position),
		    registration_number = COALESCE($3, registration_number)
		WHERE professional_id = $4
		RETURNING `+professionalCols,
		in.FullName, in.Position, in.RegistrationNumber, id))
}

func (r *professionalRepoPG) Delete(ctx context.Context, id int64) (*Professional, error) {
	return scanProfessional(db.Conn(ctx, r.pool).QueryRow(ctx, `
		DELETE FROM professionals WHERE professional_id = $1
		RETURNING `+professionalCols, id))
}
