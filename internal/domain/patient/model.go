package patient

import (
	"github.com/physiorec/physiorec/internal/domain/clinical"
	"github.com/physiorec/physiorec/internal/domain/evolution"
)

// Patient is the central record: demographic columns plus the embedded
// clinical record lists the payload has always carried. The owning user is
// internal and never serialized.
type Patient struct {
	ID                 int64   `db:"id" json:"patient_id"`
	FullName           string  `db:"full_name" json:"full_name"`
	Age                int     `db:"age" json:"age"`
	PlaceOfBirth       *string `db:"place_of_birth" json:"place_of_birth"`
	MaritalStatus      *string `db:"marital_status" json:"marital_status"`
	Gender             *string `db:"gender" json:"gender"`
	Profession         *string `db:"profession" json:"profession"`
	ResidentialAddress *string `db:"residential_address" json:"residential_address"`
	CommercialAddress  *string `db:"commercial_address" json:"commercial_address"`
	UserID             int64   `db:"user_id" json:"-"`

	ClinicalHistory        []*clinical.ClinicalHistory        `json:"clinical_history"`
	ClinicalExamination    []*clinical.ClinicalExamination    `json:"clinical_examination"`
	ComplementaryExams     []*clinical.ComplementaryExam      `json:"complementary_exams"`
	PhysiotherapyDiagnosis []*clinical.PhysiotherapyDiagnosis `json:"physiotherapy_diagnosis"`
	Prognosis              []*clinical.Prognosis              `json:"prognosis"`
	TreatmentPlan          []*clinical.TreatmentPlan          `json:"treatment_plan"`
	EvolutionRecords       []*evolution.Record                `json:"evolution_records"`
}

// CreateInput is the intake payload. Age is a pointer so a missing age can
// be told apart from a newborn.
type CreateInput struct {
	FullName           string  `json:"full_name"`
	Age                *int    `json:"age"`
	PlaceOfBirth       *string `json:"place_of_birth"`
	MaritalStatus      *string `json:"marital_status"`
	Gender             *string `json:"gender"`
	Profession         *string `json:"profession"`
	ResidentialAddress *string `json:"residential_address"`
	CommercialAddress  *string `json:"commercial_address"`
}

// UpdateInput carries a partial update; nil fields are left untouched.
type UpdateInput struct {
	FullName           *string `json:"full_name"`
	Age                *int    `json:"age"`
	PlaceOfBirth       *string `json:"place_of_birth"`
	MaritalStatus      *string `json:"marital_status"`
	Gender             *string `json:"gender"`
	Profession         *string `json:"profession"`
	ResidentialAddress *string `json:"residential_address"`
	CommercialAddress  *string `json:"commercial_address"`
}
