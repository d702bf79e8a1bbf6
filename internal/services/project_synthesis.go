package services

import (
	"fmt"
	"strings"
	"time"

	"speakerbureau/internal/models"
)

// Keywords that mark an engagement as virtual when found in the event type
// or location.
var virtualKeywords = []string{"virtual", "webinar", "remote"}

// ClassifyProjectType buckets a deal's event type into a project type.
// Exact-string match; anything unrecognized is Other.
func ClassifyProjectType(eventType string) string {
	switch eventType {
	case "Workshop":
		return models.ProjectTypeWorkshop
	case "Keynote":
		return models.ProjectTypeSpeaking
	case "Consulting":
		return models.ProjectTypeConsulting
	default:
		return models.ProjectTypeOther
	}
}

// ClassifyEventFormat returns "virtual" when the event type or location
// mentions a virtual keyword (case-insensitive substring), "local" otherwise.
func ClassifyEventFormat(eventType, eventLocation string) string {
	haystack := strings.ToLower(eventType + " " + eventLocation)
	for _, kw := range virtualKeywords {
		if strings.Contains(haystack, kw) {
			return "virtual"
		}
	}
	return "local"
}

func coalesce(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// BuildProjectFromDeal maps a won deal onto a fresh project payload. The
// mapping is total: every consumed field has a fallback, so it never fails
// on a sparsely filled deal. The deal carries a single client contact, so
// billing and logistics both start from it; ops splits them later if needed.
func BuildProjectFromDeal(d *models.Deal, now time.Time) *models.Project {
	return &models.Project{
		ProjectName:         coalesce(d.EventTitle, "To be determined"),
		ProjectType:         ClassifyProjectType(d.EventType),
		EventClassification: ClassifyEventFormat(d.EventType, d.EventLocation),
		Status:              models.ProjectStatusInitial,
		EventDate:           d.EventDate,
		EventLocation:       coalesce(d.EventLocation, "To be determined"),
		AttendeeCount:       d.AttendeeCount,
		Budget:              d.DealValue,

		BillingName:    d.ClientName,
		BillingEmail:   d.ClientEmail,
		BillingPhone:   d.ClientPhone,
		LogisticsName:  d.ClientName,
		LogisticsEmail: d.ClientEmail,
		LogisticsPhone: d.ClientPhone,

		ContractSigned:    false,
		InvoiceSent:       false,
		PaymentReceived:   false,
		PresentationReady: false,
		MaterialsSent:     false,

		Notes:     fmt.Sprintf("Created from deal #%d", d.ID),
		CreatedAt: now,
		UpdatedAt: now,
	}
}
