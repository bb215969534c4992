package clinical

import "context"

// Store is the persistence contract shared by the narrative record types.
// Lookups and scoped writes return (nil, nil) when no row matches the id and
// the caller's ownership; errors are reserved for storage failures.
type Store[T any] interface {
	Create(ctx context.Context, patientID int64, rec *T) error
	ListByPatient(ctx context.Context, patientID int64, limit, offset int) ([]*T, error)
	AllByPatient(ctx context.Context, patientID int64) ([]*T, error)
	Update(ctx context.Context, id, userID int64, rec *T) (*T, error)
	Delete(ctx context.Context, id, userID int64) (*T, error)
}

// Gate answers whether a patient is visible to a user. Create and list
// operations consult it before touching the record tables so that another
// user's patient behaves exactly like a missing one.
type Gate interface {
	Visible(ctx context.Context, patientID, userID int64) (bool, error)
}

// Table maps a record type onto its SQL table. Dest returns scan targets in
// column order (id, patient_id, then data columns); Args returns the data
// column values for inserts and updates, in the same column order.
type Table[T any] struct {
	Name  string
	IDCol string
	Cols  []string
	Dest  func(rec *T) []interface{}
	Args  func(rec *T) []interface{}
}

var HistoryTable = Table[ClinicalHistory]{
	Name:  "clinical_histories",
	IDCol: "history_id",
	Cols: []string{
		"main_complaint", "disease_history", "lifestyle_habits",
		"previous_treatments", "personal_family_history", "other_information",
	},
	Dest: func(r *ClinicalHistory) []interface{} {
		return []interface{}{
			&r.ID, &r.PatientID, &r.MainComplaint, &r.DiseaseHistory,
			&r.LifestyleHabits, &r.PreviousTreatments,
			&r.PersonalFamilyHistory, &r.OtherInformation,
		}
	},
	Args: func(r *ClinicalHistory) []interface{} {
		return []interface{}{
			r.MainComplaint, r.DiseaseHistory, r.LifestyleHabits,
			r.PreviousTreatments, r.PersonalFamilyHistory, r.OtherInformation,
		}
	},
}

var ExaminationTable = Table[ClinicalExamination]{
	Name:  "clinical_examinations",
	IDCol: "exam_id",
	Cols:  []string{"exam_details"},
	Dest: func(r *ClinicalExamination) []interface{} {
		return []interface{}{&r.ID, &r.PatientID, &r.ExamDetails}
	},
	Args: func(r *ClinicalExamination) []interface{} {
		return []interface{}{r.ExamDetails}
	},
}

var CompExamTable = Table[ComplementaryExam]{
	Name:  "complementary_exams",
	IDCol: "comp_exam_id",
	Cols:  []string{"exam_details"},
	Dest: func(r *ComplementaryExam) []interface{} {
		return []interface{}{&r.ID, &r.PatientID, &r.ExamDetails}
	},
	Args: func(r *ComplementaryExam) []interface{} {
		return []interface{}{r.ExamDetails}
	},
}

var DiagnosisTable = Table[PhysiotherapyDiagnosis]{
	Name:  "physiotherapy_diagnosis",
	IDCol: "diagnosis_id",
	Cols:  []string{"diagnosis_details"},
	Dest: func(r *PhysiotherapyDiagnosis) []interface{} {
		return []interface{}{&r.ID, &r.PatientID, &r.DiagnosisDetails}
	},
	Args: func(r *PhysiotherapyDiagnosis) []interface{} {
		return []interface{}{r.DiagnosisDetails}
	},
}

var PrognosisTable = Table[Prognosis]{
	Name:  "prognosis",
	IDCol: "prognosis_id",
	Cols:  []string{"prognosis_details"},
	Dest: func(r *Prognosis) []interface{} {
		return []interface{}{&r.ID, &r.PatientID, &r.PrognosisDetails}
	},
	Args: func(r *Prognosis) []interface{} {
		return []interface{}{r.PrognosisDetails}
	},
}

var PlanTable = Table[TreatmentPlan]{
	Name:  "treatments_plan",
	IDCol: "plan_id",
	Cols:  []string{"objectives", "probable_sessions", "procedures"},
	Dest: func(r *TreatmentPlan) []interface{} {
		return []interface{}{&r.ID, &r.PatientID, &r.Objectives, &r.ProbableSessions, &r.Procedures}
	},
	Args: func(r *TreatmentPlan) []interface{} {
		return []interface{}{r.Objectives, r.ProbableSessions, r.Procedures}
	},
}
