package services

import (
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"speakerbureau/internal/models"
	"speakerbureau/internal/repositories"
	"speakerbureau/internal/utils"
)

var (
	// ErrOfferExists guards the 1:1 proposal↔offer relation.
	ErrOfferExists = errors.New("firm offer already exists for this proposal")
	// ErrAlreadyResponded guards the one-way confirmation latch.
	ErrAlreadyResponded = errors.New("speaker response already recorded")
	// ErrProposalNotFound is returned when creating an offer for an unknown proposal.
	ErrProposalNotFound = errors.New("proposal not found")
	// ErrConfirmationViaStatus rejects status writes that claim a speaker
	// response without setting speaker_confirmed.
	ErrConfirmationViaStatus = errors.New("confirmation must be recorded through speaker_confirmed")
)

type FirmOfferService struct {
	Repo      *repositories.FirmOfferRepository
	Proposals *repositories.ProposalRepository
	Speakers  *repositories.SpeakerRepository
	Email     EmailService
	Notifier  *Notifier
	BaseURL   string
	Log       *zap.Logger
}

func NewFirmOfferService(
	repo *repositories.FirmOfferRepository,
	proposals *repositories.ProposalRepository,
	speakers *repositories.SpeakerRepository,
	email EmailService,
	notifier *Notifier,
	baseURL string,
	log *zap.Logger,
) *FirmOfferService {
	return &FirmOfferService{
		Repo:      repo,
		Proposals: proposals,
		Speakers:  speakers,
		Email:     email,
		Notifier:  notifier,
		BaseURL:   baseURL,
		Log:       log,
	}
}

func emptyObjectIfNil(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 {
		return json.RawMessage("{}")
	}
	return raw
}

// Create mints a new firm offer for a proposal. Exactly one offer may exist
// per proposal; the speaker token is generated here and never reissued.
func (s *FirmOfferService) Create(o *models.FirmOffer) (int64, error) {
	proposal, err := s.Proposals.GetByID(o.ProposalID)
	if err != nil {
		return 0, err
	}
	if proposal == nil {
		return 0, ErrProposalNotFound
	}

	existing, err := s.Repo.GetByProposalID(o.ProposalID)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return 0, ErrOfferExists
	}

	token, err := utils.NewAccessToken(32)
	if err != nil {
		return 0, err
	}
	o.SpeakerAccessToken = token
	o.Status = models.FirmOfferStatusPending
	o.EventOverview = emptyObjectIfNil(o.EventOverview)
	o.SpeakerProgram = emptyObjectIfNil(o.SpeakerProgram)
	o.FinancialDetails = emptyObjectIfNil(o.FinancialDetails)
	now := time.Now()
	o.CreatedAt = now
	o.UpdatedAt = now

	id, err := s.Repo.Create(o)
	if err != nil {
		return 0, err
	}
	o.ID = int(id)
	return id, nil
}

func (s *FirmOfferService) GetByID(id int) (*models.FirmOffer, error) {
	return s.Repo.GetByID(id)
}

func (s *FirmOfferService) ListPaginated(limit, offset int) ([]*models.FirmOffer, error) {
	return s.Repo.ListPaginated(limit, offset)
}

// SpeakerView resolves the capability token and stamps the first view.
// Repeated loads keep the original speaker_viewed_at.
func (s *FirmOfferService) SpeakerView(token string) (*models.FirmOfferView, error) {
	o, err := s.Repo.GetBySpeakerToken(token)
	if err != nil || o == nil {
		return nil, err
	}

	if o.SpeakerViewedAt == nil {
		now := time.Now()
		if err := s.Repo.MarkSpeakerViewed(o.ID, now); err != nil {
			s.Log.Warn("failed to mark firm offer viewed", zap.Int("offer_id", o.ID), zap.Error(err))
		} else {
			o.SpeakerViewedAt = &now
		}
	}
	return composeView(o), nil
}

// SpeakerRespond is the one-way latch: pending → confirmed or declined, once.
// The row-level guard in the repository makes concurrent double submissions
// lose cleanly.
func (s *FirmOfferService) SpeakerRespond(token string, confirmed bool, notes string) (*models.FirmOffer, error) {
	o, err := s.Repo.GetBySpeakerToken(token)
	if err != nil || o == nil {
		return nil, err
	}
	if !o.Pending() {
		return nil, ErrAlreadyResponded
	}

	status := models.FirmOfferStatusDeclined
	if confirmed {
		status = models.FirmOfferStatusConfirmed
	}
	now := time.Now()
	ok, err := s.Repo.RecordSpeakerResponse(o.ID, status, confirmed, notes, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAlreadyResponded
	}

	o.Status = status
	o.SpeakerConfirmed = &confirmed
	o.SpeakerNotes = notes
	o.SpeakerRespondedAt = &now

	s.Log.Info("speaker responded to firm offer",
		zap.Int("offer_id", o.ID),
		zap.Bool("confirmed", confirmed))
	s.Notifier.SpeakerResponded(o, confirmed)
	return o, nil
}

// AdminUpdate applies a back-office patch. Content sections and status are
// editable while the offer is pending; once a speaker response is on file
// the confirmation fields are frozen. An admin may record a response taken
// offline (e.g. by phone) by setting speaker_confirmed on a pending offer.
func (s *FirmOfferService) AdminUpdate(id int, patch *models.FirmOfferPatch) (*models.FirmOffer, error) {
	o, err := s.Repo.GetByID(id)
	if err != nil || o == nil {
		return nil, err
	}

	if patch.SpeakerConfirmed != nil {
		if !o.Pending() {
			return nil, ErrAlreadyResponded
		}
		notes := o.SpeakerNotes
		if patch.SpeakerNotes != nil {
			notes = *patch.SpeakerNotes
		}
		return s.recordResponse(o, *patch.SpeakerConfirmed, notes)
	}
	if !o.Pending() && patch.Status != nil && *patch.Status != o.Status {
		return nil, ErrAlreadyResponded
	}
	// a bare status write may not forge a response; the terminal labels only
	// ever come out of recordResponse, which also sets speaker_confirmed
	if patch.Status != nil && *patch.Status != o.Status {
		switch *patch.Status {
		case models.FirmOfferStatusConfirmed, models.FirmOfferStatusDeclined:
			return nil, ErrConfirmationViaStatus
		}
	}

	if len(patch.EventOverview) > 0 {
		o.EventOverview = patch.EventOverview
	}
	if len(patch.SpeakerProgram) > 0 {
		o.SpeakerProgram = patch.SpeakerProgram
	}
	if len(patch.FinancialDetails) > 0 {
		o.FinancialDetails = patch.FinancialDetails
	}
	if patch.Status != nil {
		o.Status = *patch.Status
	}
	o.UpdatedAt = time.Now()

	if err := s.Repo.UpdateSections(o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *FirmOfferService) recordResponse(o *models.FirmOffer, confirmed bool, notes string) (*models.FirmOffer, error) {
	status := models.FirmOfferStatusDeclined
	if confirmed {
		status = models.FirmOfferStatusConfirmed
	}
	now := time.Now()
	ok, err := s.Repo.RecordSpeakerResponse(o.ID, status, confirmed, notes, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAlreadyResponded
	}
	o.Status = status
	o.SpeakerConfirmed = &confirmed
	o.SpeakerNotes = notes
	o.SpeakerRespondedAt = &now
	return o, nil
}

// Send emails the linked speaker their review link.
func (s *FirmOfferService) Send(id int) (*models.FirmOffer, error) {
	o, err := s.Repo.GetByID(id)
	if err != nil || o == nil {
		return nil, err
	}
	if o.SpeakerID == nil {
		return nil, errors.New("firm offer has no speaker assigned")
	}
	speaker, err := s.Speakers.GetByID(*o.SpeakerID)
	if err != nil {
		return nil, err
	}
	if speaker == nil {
		return nil, errors.New("assigned speaker not found")
	}

	link := s.BaseURL + "/speaker-review/" + o.SpeakerAccessToken
	if s.Email != nil {
		if err := s.Email.SendFirmOfferEmail(speaker.Email, speaker.Name, link); err != nil {
			return nil, err
		}
	}
	return o, nil
}

func composeView(o *models.FirmOffer) *models.FirmOfferView {
	status := models.FirmOfferStatusPending
	if !o.Pending() {
		status = o.Status
	}
	return &models.FirmOfferView{
		ID:               o.ID,
		EventOverview:    o.EventOverview,
		SpeakerProgram:   o.SpeakerProgram,
		FinancialDetails: o.FinancialDetails,
		Confirmation: models.Confirmation{
			Status:      status,
			Confirmed:   o.SpeakerConfirmed,
			Notes:       o.SpeakerNotes,
			ViewedAt:    o.SpeakerViewedAt,
			RespondedAt: o.SpeakerRespondedAt,
		},
		ReadOnly: !o.Pending(),
	}
}
