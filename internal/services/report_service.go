package services

import (
	"speakerbureau/internal/models"
	"speakerbureau/internal/repositories"
)

type ReportService struct {
	Deals    *repositories.DealRepository
	Projects *repositories.ProjectRepository
	Offers   *repositories.FirmOfferRepository
}

func NewReportService(
	deals *repositories.DealRepository,
	projects *repositories.ProjectRepository,
	offers *repositories.FirmOfferRepository,
) *ReportService {
	return &ReportService{Deals: deals, Projects: projects, Offers: offers}
}

type Summary struct {
	DealCounts      map[string]int `json:"deal_counts"`
	PipelineValue   float64        `json:"pipeline_value"`
	WonValue        float64        `json:"won_value"`
	ProjectCount    int            `json:"project_count"`
	OffersPending   int            `json:"offers_pending"`
	OffersConfirmed int            `json:"offers_confirmed"`
}

// Pipeline value counts every open status; won and lost are settled.
var openDealStatuses = []string{
	models.DealStatusLead,
	models.DealStatusQualified,
	models.DealStatusProposal,
	models.DealStatusNegotiation,
}

func (s *ReportService) GetSummary() (*Summary, error) {
	counts, err := s.Deals.CountByStatus()
	if err != nil {
		return nil, err
	}

	var pipeline float64
	for _, status := range openDealStatuses {
		v, err := s.Deals.SumValueByStatus(status)
		if err != nil {
			return nil, err
		}
		pipeline += v
	}
	won, err := s.Deals.SumValueByStatus(models.DealStatusWon)
	if err != nil {
		return nil, err
	}

	projectCount, err := s.Projects.Count()
	if err != nil {
		return nil, err
	}
	pending, err := s.Offers.CountByPending(true)
	if err != nil {
		return nil, err
	}
	confirmed, err := s.Offers.CountByPending(false)
	if err != nil {
		return nil, err
	}

	return &Summary{
		DealCounts:      counts,
		PipelineValue:   pipeline,
		WonValue:        won,
		ProjectCount:    projectCount,
		OffersPending:   pending,
		OffersConfirmed: confirmed,
	}, nil
}
