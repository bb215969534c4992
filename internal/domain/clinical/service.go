package clinical

import (
	"context"
	"errors"
)

// ErrPatientNotFound signals that the addressed patient does not exist or is
// owned by another user. Handlers translate it to a 404.
var ErrPatientNotFound = errors.New("patient not found")

// Service groups the narrative record stores behind one patient gate.
type Service struct {
	gate Gate

	Histories    Store[ClinicalHistory]
	Examinations Store[ClinicalExamination]
	CompExams    Store[ComplementaryExam]
	Diagnoses    Store[PhysiotherapyDiagnosis]
	Prognoses    Store[Prognosis]
	Plans        Store[TreatmentPlan]
}

func NewService(gate Gate,
	histories Store[ClinicalHistory],
	examinations Store[ClinicalExamination],
	compExams Store[ComplementaryExam],
	diagnoses Store[PhysiotherapyDiagnosis],
	prognoses Store[Prognosis],
	plans Store[TreatmentPlan],
) *Service {
	return &Service{
		gate:         gate,
		Histories:    histories,
		Examinations: examinations,
		CompExams:    compExams,
		Diagnoses:    diagnoses,
		Prognoses:    prognoses,
		Plans:        plans,
	}
}

func (s *Service) Gate() Gate { return s.gate }

// CreateRecord adds a record under a patient after checking the patient is
// visible to the user.
func CreateRecord[T any](ctx context.Context, g Gate, store Store[T], patientID, userID int64, rec *T) error {
	ok, err := g.Visible(ctx, patientID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrPatientNotFound
	}
	return store.Create(ctx, patientID, rec)
}

// ListRecords pages through a patient's records after the same visibility
// check.
func ListRecords[T any](ctx context.Context, g Gate, store Store[T], patientID, userID int64, limit, offset int) ([]*T, error) {
	ok, err := g.Visible(ctx, patientID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrPatientNotFound
	}
	return store.ListByPatient(ctx, patientID, limit, offset)
}

// RecordsForPatient loads every narrative record of a patient whose
// visibility the caller has already established.
func (s *Service) RecordsForPatient(ctx context.Context, patientID int64) (*Records, error) {
	recs := &Records{}
	var err error
	if recs.Histories, err = s.Histories.AllByPatient(ctx, patientID); err != nil {
		return nil, err
	}
	if recs.Examinations, err = s.Examinations.AllByPatient(ctx, patientID); err != nil {
		return nil, err
	}
	if recs.CompExams, err = s.CompExams.AllByPatient(ctx, patientID); err != nil {
		return nil, err
	}
	if recs.Diagnoses, err = s.Diagnoses.AllByPatient(ctx, patientID); err != nil {
		return nil, err
	}
	if recs.Prognoses, err = s.Prognoses.AllByPatient(ctx, patientID); err != nil {
		return nil, err
	}
	if recs.Plans, err = s.Plans.AllByPatient(ctx, patientID); err != nil {
		return nil, err
	}
	return recs, nil
}
