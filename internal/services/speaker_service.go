package services

import (
	"time"

	"speakerbureau/internal/models"
	"speakerbureau/internal/repositories"
)

type SpeakerService struct {
	Repo *repositories.SpeakerRepository
}

func NewSpeakerService(repo *repositories.SpeakerRepository) *SpeakerService {
	return &SpeakerService{Repo: repo}
}

func (s *SpeakerService) Create(sp *models.Speaker) (int64, error) {
	if sp.CreatedAt.IsZero() {
		sp.CreatedAt = time.Now()
	}
	return s.Repo.Create(sp)
}

func (s *SpeakerService) GetByID(id int) (*models.Speaker, error) {
	return s.Repo.GetByID(id)
}

func (s *SpeakerService) Update(sp *models.Speaker) error {
	return s.Repo.Update(sp)
}

func (s *SpeakerService) Delete(id int) error {
	return s.Repo.Delete(id)
}

func (s *SpeakerService) ListPaginated(limit, offset int) ([]*models.Speaker, error) {
	return s.Repo.ListPaginated(limit, offset)
}

// Roster is the public marketing listing: active speakers only, no contact
// details.
func (s *SpeakerService) Roster() ([]*models.RosterEntry, error) {
	speakers, err := s.Repo.ListActive()
	if err != nil {
		return nil, err
	}
	entries := make([]*models.RosterEntry, 0, len(speakers))
	for _, sp := range speakers {
		entries = append(entries, &models.RosterEntry{
			ID:               sp.ID,
			Name:             sp.Name,
			Bio:              sp.Bio,
			Topics:           sp.Topics,
			FeeRange:         sp.FeeRange,
			Location:         sp.Location,
			VirtualAvailable: sp.VirtualAvailable,
		})
	}
	return entries, nil
}
