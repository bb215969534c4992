package professional

import (
	"context"
	"errors"

	"github.com/physiorec/physiorec/internal/domain/evolution"
)

var (
	ErrMissingFields   = errors.New("full_name and position are required")
	ErrInvalidPosition = errors.New("position must be physiotherapist or intern")
)

var validPositions = map[string]bool{
	PositionPhysiotherapist: true,
	PositionIntern:          true,
}

// EvolutionLoader supplies the records a professional has signed, embedded
// in the professional payload.
type EvolutionLoader interface {
	AllByProfessional(ctx context.Context, professionalID int64) ([]*evolution.Record, error)
}

type Service struct {
	repo      ProfessionalRepository
	evolution EvolutionLoader
}

func NewService(repo ProfessionalRepository, ev EvolutionLoader) *Service {
	return &Service{repo: repo, evolution: ev}
}

func (s *Service) attachRecords(ctx context.Context, p *Professional) error {
	var err error
	p.EvolutionRecords, err = s.evolution.AllByProfessional(ctx, p.ID)
	return err
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*Professional, error) {
	if in.FullName == "" || in.Position == "" {
		return nil, ErrMissingFields
	}
	if !validPositions[in.Position] {
		return nil, ErrInvalidPosition
	}

	p := &Professional{
		FullName:           in.FullName,
		Position:           in.Position,
		RegistrationNumber: in.RegistrationNumber,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	p.EvolutionRecords = []*evolution.Record{}
	return p, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Professional, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil || p == nil {
		return nil, err
	}
	if err := s.attachRecords(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) List(ctx context.Context, filters map[string]string, limit, offset int) ([]*Professional, error) {
	pros, err := s.repo.List(ctx, filters, limit, offset)
	if err != nil {
		return nil, err
	}
	for _, p := range pros {
		if err := s.attachRecords(ctx, p); err != nil {
			return nil, err
		}
	}
	return pros, nil
}

func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (*Professional, error) {
	if in.Position != nil && !validPositions[*in.Position] {
		return nil, ErrInvalidPosition
	}
	p, err := s.repo.Update(ctx, id, in)
	if err != nil || p == nil {
		return nil, err
	}
	if err := s.attachRecords(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id int64) (*Professional, error) {
	return s.repo.Delete(ctx, id)
}

// Exists implements evolution.ProfessionalDirectory.
func (s *Service) Exists(ctx context.Context, id int64) (bool, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	return p != nil, nil
}
