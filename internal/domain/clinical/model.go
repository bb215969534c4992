package clinical

// The six narrative record types share one table shape: a serial primary key,
// a patient foreign key, and a handful of nullable free-text columns. Each
// type keeps its historical JSON field names.

type ClinicalHistory struct {
	ID                    int64   `db:"history_id" json:"history_id"`
	PatientID             int64   `db:"patient_id" json:"patient_id"`
	MainComplaint         *string `db:"main_complaint" json:"main_complaint"`
	DiseaseHistory        *string `db:"disease_history" json:"disease_history"`
	LifestyleHabits       *string `db:"lifestyle_habits" json:"lifestyle_habits"`
	PreviousTreatments    *string `db:"previous_treatments" json:"previous_treatments"`
	PersonalFamilyHistory *string `db:"personal_family_history" json:"personal_family_history"`
	OtherInformation      *string `db:"other_information" json:"other_information"`
}

type ClinicalExamination struct {
	ID          int64   `db:"exam_id" json:"exam_id"`
	PatientID   int64   `db:"patient_id" json:"patient_id"`
	ExamDetails *string `db:"exam_details" json:"exam_details"`
}

type ComplementaryExam struct {
	ID          int64   `db:"comp_exam_id" json:"comp_exam_id"`
	PatientID   int64   `db:"patient_id" json:"patient_id"`
	ExamDetails *string `db:"exam_details" json:"exam_details"`
}

type PhysiotherapyDiagnosis struct {
	ID               int64   `db:"diagnosis_id" json:"diagnosis_id"`
	PatientID        int64   `db:"patient_id" json:"patient_id"`
	DiagnosisDetails *string `db:"diagnosis_details" json:"diagnosis_details"`
}

type Prognosis struct {
	ID               int64   `db:"prognosis_id" json:"prognosis_id"`
	PatientID        int64   `db:"patient_id" json:"patient_id"`
	PrognosisDetails *string `db:"prognosis_details" json:"prognosis_details"`
}

type TreatmentPlan struct {
	ID               int64   `db:"plan_id" json:"plan_id"`
	PatientID        int64   `db:"patient_id" json:"patient_id"`
	Objectives       *string `db:"objectives" json:"objectives"`
	ProbableSessions *int    `db:"probable_sessions" json:"probable_sessions"`
	Procedures       *string `db:"procedures" json:"procedures"`
}

// Records bundles every narrative record of one patient, in the shape the
// patient payload embeds.
type Records struct {
	Histories    []*ClinicalHistory
	Examinations []*ClinicalExamination
	CompExams    []*ComplementaryExam
	Diagnoses    []*PhysiotherapyDiagnosis
	Prognoses    []*Prognosis
	Plans        []*TreatmentPlan
}
