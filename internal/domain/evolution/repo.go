package evolution

import "context"

// RecordRepository persists evolution records. Scoped lookups return
// (nil, nil) when no row matches the id and the caller's ownership.
type RecordRepository interface {
	Create(ctx context.Context, rec *Record) error
	ListByPatient(ctx context.Context, patientID int64, limit, offset int) ([]*Record, error)
	AllByPatient(ctx context.Context, patientID int64) ([]*Record, error)
	AllByProfessional(ctx context.Context, professionalID int64) ([]*Record, error)
	Replace(ctx context.Context, id, userID int64, rec *Record) (*Record, error)
	Delete(ctx context.Context, id, userID int64) (*Record, error)
}
