package evolution

import (
	"context"
	"errors"
)

var (
	ErrPatientNotFound      = errors.New("patient not found")
	ErrProfessionalNotFound = errors.New("professional not found")
)

// PatientGate answers whether a patient is visible to a user.
type PatientGate interface {
	Visible(ctx context.Context, patientID, userID int64) (bool, error)
}

// ProfessionalDirectory answers whether a professional exists. Records carry
// an optional professional reference that must point at a real row.
type ProfessionalDirectory interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type Service struct {
	repo          RecordRepository
	gate          PatientGate
	professionals ProfessionalDirectory
}

func NewService(repo RecordRepository, gate PatientGate, professionals ProfessionalDirectory) *Service {
	return &Service{repo: repo, gate: gate, professionals: professionals}
}

func (s *Service) checkProfessional(ctx context.Context, rec *Record) error {
	if rec.ProfessionalID == nil {
		return nil
	}
	ok, err := s.professionals.Exists(ctx, *rec.ProfessionalID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrProfessionalNotFound
	}
	return nil
}

func (s *Service) Create(ctx context.Context, patientID, userID int64, rec *Record) error {
	ok, err := s.gate.Visible(ctx, patientID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrPatientNotFound
	}
	if err := s.checkProfessional(ctx, rec); err != nil {
		return err
	}
	rec.PatientID = patientID
	return s.repo.Create(ctx, rec)
}

func (s *Service) List(ctx context.Context, patientID, userID int64, limit, offset int) ([]*Record, error) {
	ok, err := s.gate.Visible(ctx, patientID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrPatientNotFound
	}
	return s.repo.ListByPatient(ctx, patientID, limit, offset)
}

// Replace swaps every mutable field of the record for the supplied values.
func (s *Service) Replace(ctx context.Context, id, userID int64, rec *Record) (*Record, error) {
	if err := s.checkProfessional(ctx, rec); err != nil {
		return nil, err
	}
	return s.repo.Replace(ctx, id, userID, rec)
}

func (s *Service) Delete(ctx context.Context, id, userID int64) (*Record, error) {
	return s.repo.Delete(ctx, id, userID)
}

// AllByPatient loads a patient's full evolution log for embedding in the
// patient payload. Visibility is the caller's responsibility.
func (s *Service) AllByPatient(ctx context.Context, patientID int64) ([]*Record, error) {
	return s.repo.AllByPatient(ctx, patientID)
}

// AllByProfessional loads the records signed by one professional.
func (s *Service) AllByProfessional(ctx context.Context, professionalID int64) ([]*Record, error) {
	return s.repo.AllByProfessional(ctx, professionalID)
}
