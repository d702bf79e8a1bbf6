package services

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"speakerbureau/internal/models"
	"speakerbureau/internal/repositories"
)

type DealService struct {
	Repo     *repositories.DealRepository
	Events   *repositories.DealEventRepository
	Projects *ProjectService
	Notifier *Notifier
	Log      *zap.Logger
}

func NewDealService(
	repo *repositories.DealRepository,
	events *repositories.DealEventRepository,
	projects *ProjectService,
	notifier *Notifier,
	log *zap.Logger,
) *DealService {
	return &DealService{Repo: repo, Events: events, Projects: projects, Notifier: notifier, Log: log}
}

func (s *DealService) Create(deal *models.Deal) (int64, error) {
	if deal.Status == "" {
		deal.Status = models.DealStatusLead
	}
	if deal.Priority == "" {
		deal.Priority = "medium"
	}
	now := time.Now()
	if deal.CreatedAt.IsZero() {
		deal.CreatedAt = now
	}
	deal.UpdatedAt = now
	return s.Repo.Create(deal)
}

func (s *DealService) GetByID(id int) (*models.Deal, error) {
	return s.Repo.GetByID(id)
}

func (s *DealService) List(status, priority string, limit, offset int) ([]*models.Deal, error) {
	return s.Repo.List(status, priority, limit, offset)
}

func (s *DealService) ListByOwner(ownerID, limit, offset int) ([]*models.Deal, error) {
	return s.Repo.ListByOwner(ownerID, limit, offset)
}

func (s *DealService) Delete(id int) error {
	return s.Repo.Delete(id)
}

func (s *DealService) EventsByDeal(dealID int) ([]*models.DealEvent, error) {
	return s.Events.ListByDeal(dealID)
}

// ApplyUpdate merges a partial patch onto the stored deal, persists it, and
// runs the won-transition side effect: when the status moves into "won" from
// any other value, exactly one project is synthesized. Synthesis failure is
// logged and audited but never fails the deal update; the deal write has
// already committed and is reported as a success regardless.
func (s *DealService) ApplyUpdate(current *models.Deal, patch *models.DealPatch) (*models.Deal, error) {
	updated := *current
	applyDealPatch(&updated, patch)
	updated.UpdatedAt = time.Now()

	if err := s.Repo.Update(&updated); err != nil {
		return nil, err
	}

	if current.Status != updated.Status {
		s.recordEvent(updated.ID, models.DealEventStatusChange, current.Status, updated.Status, "")
	}
	if current.Status != models.DealStatusWon && updated.Status == models.DealStatusWon {
		s.synthesizeProject(&updated)
	}
	return &updated, nil
}

func (s *DealService) synthesizeProject(d *models.Deal) {
	project := BuildProjectFromDeal(d, time.Now())
	id, err := s.Projects.Create(project)
	if err != nil {
		// Deliberate: the deal is already won, a broken project write must
		// not roll that back. The audit row is the retry breadcrumb.
		s.Log.Error("project synthesis failed",
			zap.Int("deal_id", d.ID),
			zap.Error(err))
		s.recordEvent(d.ID, models.DealEventProjectCreateErr, "", "", err.Error())
		return
	}
	s.Log.Info("project synthesized from won deal",
		zap.Int("deal_id", d.ID),
		zap.Int64("project_id", id))
	s.recordEvent(d.ID, models.DealEventProjectCreated, "", "", fmt.Sprintf("project #%d", id))

	s.Notifier.DealWon(d)
}

func (s *DealService) recordEvent(dealID int, kind, from, to, detail string) {
	err := s.Events.Record(&models.DealEvent{
		DealID:     dealID,
		Kind:       kind,
		FromStatus: from,
		ToStatus:   to,
		Detail:     detail,
		CreatedAt:  time.Now(),
	})
	if err != nil {
		s.Log.Warn("failed to record deal event",
			zap.Int("deal_id", dealID),
			zap.String("kind", kind),
			zap.Error(err))
	}
}

func applyDealPatch(d *models.Deal, p *models.DealPatch) {
	if p.ClientName != nil {
		d.ClientName = *p.ClientName
	}
	if p.ClientEmail != nil {
		d.ClientEmail = *p.ClientEmail
	}
	if p.ClientPhone != nil {
		d.ClientPhone = *p.ClientPhone
	}
	if p.Company != nil {
		d.Company = *p.Company
	}
	if p.EventTitle != nil {
		d.EventTitle = *p.EventTitle
	}
	if p.EventDate != nil {
		d.EventDate = p.EventDate
	}
	if p.EventLocation != nil {
		d.EventLocation = *p.EventLocation
	}
	if p.EventType != nil {
		d.EventType = *p.EventType
	}
	if p.AttendeeCount != nil {
		d.AttendeeCount = *p.AttendeeCount
	}
	if p.DealValue != nil {
		d.DealValue = *p.DealValue
	}
	if p.Status != nil {
		d.Status = *p.Status
	}
	if p.Priority != nil {
		d.Priority = *p.Priority
	}
	if p.Notes != nil {
		d.Notes = *p.Notes
	}
	if p.FirmOfferID != nil {
		d.FirmOfferID = p.FirmOfferID
	}
}
