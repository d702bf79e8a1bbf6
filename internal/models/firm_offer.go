package models

import (
	"encoding/json"
	"time"
)

// Firm-offer confirmation states. The offer starts pending and latches into
// exactly one of the terminal labels when the speaker responds.
const (
	FirmOfferStatusPending   = "pending"
	FirmOfferStatusConfirmed = "speaker_confirmed"
	FirmOfferStatusDeclined  = "speaker_declined"
)

// FirmOffer is the speaker-facing confirmation packet, a 1:1 child of a
// Proposal. The three content sections are stored as jsonb blobs; the
// confirmation section lives in dedicated columns so the one-way latch can
// be enforced in SQL and service code. SpeakerAccessToken is scoped to the
// speaker view only and is distinct from the proposal's client token.
type FirmOffer struct {
	ID                 int             `json:"id"`
	ProposalID         int             `json:"proposal_id"`
	SpeakerID          *int            `json:"speaker_id,omitempty"`
	EventOverview      json.RawMessage `json:"event_overview"`
	SpeakerProgram     json.RawMessage `json:"speaker_program"`
	FinancialDetails   json.RawMessage `json:"financial_details"`
	Status             string          `json:"status"`
	SpeakerAccessToken string          `json:"speaker_access_token"`
	SpeakerViewedAt    *time.Time      `json:"speaker_viewed_at,omitempty"`
	SpeakerConfirmed   *bool           `json:"speaker_confirmed,omitempty"`
	SpeakerNotes       string          `json:"speaker_notes"`
	SpeakerRespondedAt *time.Time      `json:"speaker_responded_at,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// Pending reports whether the speaker has not responded yet.
func (o *FirmOffer) Pending() bool {
	return o.SpeakerConfirmed == nil
}

// FirmOfferPatch is the admin-side partial update. Confirmation fields are
// accepted here so the back office can record a response taken over the
// phone, but never once a speaker response is already on file.
type FirmOfferPatch struct {
	EventOverview    json.RawMessage `json:"event_overview"`
	SpeakerProgram   json.RawMessage `json:"speaker_program"`
	FinancialDetails json.RawMessage `json:"financial_details"`
	Status           *string         `json:"status"`
	SpeakerConfirmed *bool           `json:"speaker_confirmed"`
	SpeakerNotes     *string         `json:"speaker_notes"`
}

// FirmOfferView is what the token-gated speaker page receives. The
// confirmation section is composed from the latch columns.
type FirmOfferView struct {
	ID               int             `json:"id"`
	EventOverview    json.RawMessage `json:"event_overview"`
	SpeakerProgram   json.RawMessage `json:"speaker_program"`
	FinancialDetails json.RawMessage `json:"financial_details"`
	Confirmation     Confirmation    `json:"confirmation"`
	ReadOnly         bool            `json:"read_only"`
}

type Confirmation struct {
	Status      string     `json:"status"`
	Confirmed   *bool      `json:"confirmed,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	ViewedAt    *time.Time `json:"viewed_at,omitempty"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`
}
