package services

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"speakerbureau/internal/models"
	"speakerbureau/internal/repositories"
	"speakerbureau/internal/utils"
)

var ErrInvalidTransition = errors.New("invalid status transition")

type ProposalService struct {
	Repo    *repositories.ProposalRepository
	Email   EmailService
	BaseURL string
	Log     *zap.Logger
}

func NewProposalService(repo *repositories.ProposalRepository, email EmailService, baseURL string, log *zap.Logger) *ProposalService {
	return &ProposalService{Repo: repo, Email: email, BaseURL: baseURL, Log: log}
}

func (s *ProposalService) Create(p *models.Proposal) (int64, error) {
	token, err := utils.NewAccessToken(32)
	if err != nil {
		return 0, err
	}
	p.AccessToken = token
	if p.Status == "" {
		p.Status = models.ProposalStatusDraft
	}
	if p.TotalAmount == 0 {
		p.TotalAmount = p.SpeakerFee + p.TravelExpenses
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	id, err := s.Repo.Create(p)
	if err != nil {
		return 0, err
	}
	p.ID = int(id)
	return id, nil
}

func (s *ProposalService) GetByID(id int) (*models.Proposal, error) {
	return s.Repo.GetByID(id)
}

func (s *ProposalService) ListPaginated(limit, offset int) ([]*models.Proposal, error) {
	return s.Repo.ListPaginated(limit, offset)
}

// ApplyUpdate merges a partial patch onto the stored proposal. When a fee
// component changes without an explicit total, the total is recomputed.
func (s *ProposalService) ApplyUpdate(current *models.Proposal, patch *models.ProposalPatch) (*models.Proposal, error) {
	updated := *current
	if patch.ClientName != nil {
		updated.ClientName = *patch.ClientName
	}
	if patch.ClientEmail != nil {
		updated.ClientEmail = *patch.ClientEmail
	}
	if patch.EventTitle != nil {
		updated.EventTitle = *patch.EventTitle
	}
	if patch.SpeakerFee != nil {
		updated.SpeakerFee = *patch.SpeakerFee
	}
	if patch.TravelExpenses != nil {
		updated.TravelExpenses = *patch.TravelExpenses
	}
	if patch.TotalAmount != nil {
		updated.TotalAmount = *patch.TotalAmount
	} else if patch.SpeakerFee != nil || patch.TravelExpenses != nil {
		updated.TotalAmount = updated.SpeakerFee + updated.TravelExpenses
	}
	if patch.ValidUntil != nil {
		updated.ValidUntil = patch.ValidUntil
	}
	updated.UpdatedAt = time.Now()

	if err := s.Repo.Update(&updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *ProposalService) Delete(id int) error {
	return s.Repo.Delete(id)
}

// Send emails the client their access link and moves the proposal to "sent".
func (s *ProposalService) Send(id int) (*models.Proposal, error) {
	p, err := s.Repo.GetByID(id)
	if err != nil || p == nil {
		return nil, err
	}
	if !canTransition(p.Status, models.ProposalStatusSent, ProposalTransitions) {
		return nil, ErrInvalidTransition
	}

	link := s.BaseURL + "/proposal-view/" + p.AccessToken
	if s.Email != nil {
		if err := s.Email.SendProposalEmail(p.ClientEmail, p.ClientName, link); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	if err := s.Repo.MarkSent(p.ID, now); err != nil {
		return nil, err
	}
	p.Status = models.ProposalStatusSent
	p.SentAt = &now
	return p, nil
}

// ViewByToken is the public client view. First view flips sent→viewed and
// stamps viewed_at; a proposal past its valid_until date renders as expired.
func (s *ProposalService) ViewByToken(token string) (*models.Proposal, error) {
	p, err := s.Repo.GetByAccessToken(token)
	if err != nil || p == nil {
		return nil, err
	}

	if p.ValidUntil != nil && time.Now().After(*p.ValidUntil) &&
		(p.Status == models.ProposalStatusSent || p.Status == models.ProposalStatusViewed) {
		if err := s.Repo.UpdateStatus(p.ID, models.ProposalStatusExpired); err != nil {
			s.Log.Warn("failed to expire proposal", zap.Int("proposal_id", p.ID), zap.Error(err))
		} else {
			p.Status = models.ProposalStatusExpired
		}
		return p, nil
	}

	if p.Status == models.ProposalStatusSent {
		now := time.Now()
		if err := s.Repo.MarkViewed(p.ID, now); err != nil {
			s.Log.Warn("failed to mark proposal viewed", zap.Int("proposal_id", p.ID), zap.Error(err))
		} else {
			p.Status = models.ProposalStatusViewed
			if p.ViewedAt == nil {
				p.ViewedAt = &now
			}
		}
	}
	return p, nil
}

func (s *ProposalService) UpdateStatus(id int, to string) (*models.Proposal, error) {
	p, err := s.Repo.GetByID(id)
	if err != nil || p == nil {
		return nil, err
	}
	if !canTransition(p.Status, to, ProposalTransitions) {
		return nil, ErrInvalidTransition
	}
	if err := s.Repo.UpdateStatus(id, to); err != nil {
		return nil, err
	}
	p.Status = to
	return p, nil
}
