package patient

import (
	"context"
	"errors"

	"github.com/physiorec/physiorec/internal/domain/clinical"
	"github.com/physiorec/physiorec/internal/domain/evolution"
)

var ErrMissingFields = errors.New("full_name and age are required")

// ClinicalLoader supplies the narrative records embedded in the patient
// payload.
type ClinicalLoader interface {
	RecordsForPatient(ctx context.Context, patientID int64) (*clinical.Records, error)
}

// EvolutionLoader supplies the patient's evolution log.
type EvolutionLoader interface {
	AllByPatient(ctx context.Context, patientID int64) ([]*evolution.Record, error)
}

type Service struct {
	repo      PatientRepository
	clinical  ClinicalLoader
	evolution EvolutionLoader
}

func NewService(repo PatientRepository, cl ClinicalLoader, ev EvolutionLoader) *Service {
	return &Service{repo: repo, clinical: cl, evolution: ev}
}

func emptyRecords(p *Patient) {
	p.ClinicalHistory = []*clinical.ClinicalHistory{}
	p.ClinicalExamination = []*clinical.ClinicalExamination{}
	p.ComplementaryExams = []*clinical.ComplementaryExam{}
	p.PhysiotherapyDiagnosis = []*clinical.PhysiotherapyDiagnosis{}
	p.Prognosis = []*clinical.Prognosis{}
	p.TreatmentPlan = []*clinical.TreatmentPlan{}
	p.EvolutionRecords = []*evolution.Record{}
}

func (s *Service) attachRecords(ctx context.Context, p *Patient) error {
	recs, err := s.clinical.RecordsForPatient(ctx, p.ID)
	if err != nil {
		return err
	}
	p.ClinicalHistory = recs.Histories
	p.ClinicalExamination = recs.Examinations
	p.ComplementaryExams = recs.CompExams
	p.PhysiotherapyDiagnosis = recs.Diagnoses
	p.Prognosis = recs.Prognoses
	p.TreatmentPlan = recs.Plans

	p.EvolutionRecords, err = s.evolution.AllByPatient(ctx, p.ID)
	return err
}

// Create registers a patient owned by the calling user. The returned payload
// carries the empty record lists a fresh patient has.
func (s *Service) Create(ctx context.Context, userID int64, in CreateInput) (*Patient, error) {
	if in.FullName == "" || in.Age == nil {
		return nil, ErrMissingFields
	}

	p := &Patient{
		FullName:           in.FullName,
		Age:                *in.Age,
		PlaceOfBirth:       in.PlaceOfBirth,
		MaritalStatus:      in.MaritalStatus,
		Gender:             in.Gender,
		Profession:         in.Profession,
		ResidentialAddress: in.ResidentialAddress,
		CommercialAddress:  in.CommercialAddress,
		UserID:             userID,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	emptyRecords(p)
	return p, nil
}

func (s *Service) Get(ctx context.Context, id, userID int64) (*Patient, error) {
	p, err := s.repo.GetByID(ctx, id, userID)
	if err != nil || p == nil {
		return nil, err
	}
	if err := s.attachRecords(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) List(ctx context.Context, userID int64, filters map[string]string, limit, offset int) ([]*Patient, error) {
	patients, err := s.repo.List(ctx, userID, filters, limit, offset)
	if err != nil {
		return nil, err
	}
	for _, p := range patients {
		if err := s.attachRecords(ctx, p); err != nil {
			return nil, err
		}
	}
	return patients, nil
}

func (s *Service) Update(ctx context.Context, id, userID int64, in UpdateInput) (*Patient, error) {
	p, err := s.repo.Update(ctx, id, userID, in)
	if err != nil || p == nil {
		return nil, err
	}
	if err := s.attachRecords(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id, userID int64) (*Patient, error) {
	return s.repo.Delete(ctx, id, userID)
}
