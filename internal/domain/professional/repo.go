package professional

import "context"

// ProfessionalRepository persists the clinic staff directory. Lookups return
// (nil, nil) on absence.
type ProfessionalRepository interface {
	Create(ctx context.Context, p *Professional) error
	GetByID(ctx context.Context, id int64) (*Professional, error)
	List(ctx context.Context, filters map[string]string, limit, offset int) ([]*Professional, error)
	Update(ctx context.Context, id int64, in UpdateInput) (*Professional, error)
	Delete(ctx context.Context, id int64) (*Professional, error)
}
