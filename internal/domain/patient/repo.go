package patient

import "context"

// PatientRepository persists patients. Every method is scoped to the owning
// user; a patient owned by someone else behaves exactly like a missing one,
// so scoped lookups return (nil, nil) on both absence and foreign ownership.
type PatientRepository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id, userID int64) (*Patient, error)
	List(ctx context.Context, userID int64, filters map[string]string, limit, offset int) ([]*Patient, error)
	Update(ctx context.Context, id, userID int64, in UpdateInput) (*Patient, error)
	Delete(ctx context.Context, id, userID int64) (*Patient, error)
}
