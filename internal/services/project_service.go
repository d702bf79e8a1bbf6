package services

import (
	"time"

	"speakerbureau/internal/models"
	"speakerbureau/internal/repositories"
)

type ProjectService struct {
	Repo *repositories.ProjectRepository
}

func NewProjectService(repo *repositories.ProjectRepository) *ProjectService {
	return &ProjectService{Repo: repo}
}

func (s *ProjectService) Create(p *models.Project) (int64, error) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = p.CreatedAt
	}
	return s.Repo.Create(p)
}

func (s *ProjectService) GetByID(id int) (*models.Project, error) {
	return s.Repo.GetByID(id)
}

func (s *ProjectService) ListPaginated(limit, offset int) ([]*models.Project, error) {
	return s.Repo.ListPaginated(limit, offset)
}

// ApplyUpdate merges a partial patch onto the stored project.
func (s *ProjectService) ApplyUpdate(current *models.Project, patch *models.ProjectPatch) (*models.Project, error) {
	updated := *current
	if patch.ProjectName != nil {
		updated.ProjectName = *patch.ProjectName
	}
	if patch.Status != nil {
		updated.Status = *patch.Status
	}
	if patch.EventDate != nil {
		updated.EventDate = patch.EventDate
	}
	if patch.EventLocation != nil {
		updated.EventLocation = *patch.EventLocation
	}
	if patch.AttendeeCount != nil {
		updated.AttendeeCount = *patch.AttendeeCount
	}
	if patch.Budget != nil {
		updated.Budget = *patch.Budget
	}
	if patch.ContractSigned != nil {
		updated.ContractSigned = *patch.ContractSigned
	}
	if patch.InvoiceSent != nil {
		updated.InvoiceSent = *patch.InvoiceSent
	}
	if patch.PaymentReceived != nil {
		updated.PaymentReceived = *patch.PaymentReceived
	}
	if patch.PresentationReady != nil {
		updated.PresentationReady = *patch.PresentationReady
	}
	if patch.MaterialsSent != nil {
		updated.MaterialsSent = *patch.MaterialsSent
	}
	if patch.Notes != nil {
		updated.Notes = *patch.Notes
	}
	updated.UpdatedAt = time.Now()
	if err := s.Repo.Update(&updated); err != nil {
		return nil, err
	}
	return &updated, nil
}
