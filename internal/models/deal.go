package models

import "time"

// Deal statuses. Transitions between them are not constrained; the only
// business rule is the project synthesis triggered on entry into "won"
// (see services.DealService).
const (
	DealStatusLead        = "lead"
	DealStatusQualified   = "qualified"
	DealStatusProposal    = "proposal"
	DealStatusNegotiation = "negotiation"
	DealStatusWon         = "won"
	DealStatusLost        = "lost"
)

type Deal struct {
	ID            int        `json:"id"`
	OwnerID       int        `json:"owner_id"`
	ClientName    string     `json:"client_name"`
	ClientEmail   string     `json:"client_email"`
	ClientPhone   string     `json:"client_phone"`
	Company       string     `json:"company"`
	EventTitle    string     `json:"event_title"`
	EventDate     *time.Time `json:"event_date,omitempty"`
	EventLocation string     `json:"event_location"`
	EventType     string     `json:"event_type"`
	AttendeeCount int        `json:"attendee_count"`
	DealValue     float64    `json:"deal_value"`
	Status        string     `json:"status"`
	Priority      string     `json:"priority"`
	Notes         string     `json:"notes"`
	FirmOfferID   *int       `json:"firm_offer_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// DealPatch is a partial update; nil fields are left untouched.
type DealPatch struct {
	ClientName    *string    `json:"client_name"`
	ClientEmail   *string    `json:"client_email"`
	ClientPhone   *string    `json:"client_phone"`
	Company       *string    `json:"company"`
	EventTitle    *string    `json:"event_title"`
	EventDate     *time.Time `json:"event_date"`
	EventLocation *string    `json:"event_location"`
	EventType     *string    `json:"event_type"`
	AttendeeCount *int       `json:"attendee_count"`
	DealValue     *float64   `json:"deal_value"`
	Status        *string    `json:"status"`
	Priority      *string    `json:"priority"`
	Notes         *string    `json:"notes"`
	FirmOfferID   *int       `json:"firm_offer_id"`
}

// DealEvent is the audit trail row written on every status change and on
// project synthesis outcomes.
type DealEvent struct {
	ID         int       `json:"id"`
	DealID     int       `json:"deal_id"`
	Kind       string    `json:"kind"`
	FromStatus string    `json:"from_status,omitempty"`
	ToStatus   string    `json:"to_status,omitempty"`
	Detail     string    `json:"detail,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

const (
	DealEventStatusChange     = "status_change"
	DealEventProjectCreated   = "project_created"
	DealEventProjectCreateErr = "project_create_failed"
)
