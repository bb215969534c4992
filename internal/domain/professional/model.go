package professional

import "github.com/physiorec/physiorec/internal/domain/evolution"

// Position is the professional's role within the clinic.
const (
	PositionPhysiotherapist = "physiotherapist"
	PositionIntern          = "intern"
)

// Professional is a clinic staff member. The directory is shared across
// users, not ownership-scoped.
type Professional struct {
	ID                 int64   `db:"professional_id" json:"professional_id"`
	FullName           string  `db:"full_name" json:"full_name"`
	Position           string  `db:"position" json:"position"`
	RegistrationNumber *string `db:"registration_number" json:"registration_number"`

	EvolutionRecords []*evolution.Record `json:"evolution_records"`
}

type CreateInput struct {
	FullName           string  `json:"full_name"`
	Position           string  `json:"position"`
	RegistrationNumber *string `json:"registration_number"`
}

// UpdateInput carries a partial update; nil fields are left untouched.
type UpdateInput struct {
	FullName           *string `json:"full_name"`
	Position           *string `json:"position"`
	RegistrationNumber *string `json:"registration_number"`
}
