package models

import "time"

const (
	ProposalStatusDraft    = "draft"
	ProposalStatusSent     = "sent"
	ProposalStatusViewed   = "viewed"
	ProposalStatusAccepted = "accepted"
	ProposalStatusRejected = "rejected"
	ProposalStatusExpired  = "expired"
)

// Proposal is the client-facing sales document. AccessToken is a bearer
// capability: anyone holding the link can view the proposal, there is no
// client login.
type Proposal struct {
	ID             int        `json:"id"`
	DealID         *int       `json:"deal_id,omitempty"`
	ClientName     string     `json:"client_name"`
	ClientEmail    string     `json:"client_email"`
	EventTitle     string     `json:"event_title"`
	SpeakerFee     float64    `json:"speaker_fee"`
	TravelExpenses float64    `json:"travel_expenses"`
	TotalAmount    float64    `json:"total_amount"`
	Status         string     `json:"status"`
	AccessToken    string     `json:"access_token"`
	ValidUntil     *time.Time `json:"valid_until,omitempty"`
	SentAt         *time.Time `json:"sent_at,omitempty"`
	ViewedAt       *time.Time `json:"viewed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// ProposalPatch mirrors DealPatch: nil fields keep the stored value, so an
// update that omits the money fields cannot silently zero them.
type ProposalPatch struct {
	ClientName     *string    `json:"client_name"`
	ClientEmail    *string    `json:"client_email"`
	EventTitle     *string    `json:"event_title"`
	SpeakerFee     *float64   `json:"speaker_fee"`
	TravelExpenses *float64   `json:"travel_expenses"`
	TotalAmount    *float64   `json:"total_amount"`
	ValidUntil     *time.Time `json:"valid_until"`
}
