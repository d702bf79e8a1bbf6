package models

import "time"

// Project types produced by classification of a deal's event type.
const (
	ProjectTypeWorkshop   = "Workshop"
	ProjectTypeSpeaking   = "Speaking"
	ProjectTypeConsulting = "Consulting"
	ProjectTypeOther      = "Other"
)

// Initial pipeline bucket for every synthesized project, regardless of how
// close the event actually is. Ops re-buckets manually.
const ProjectStatusInitial = "2plus_months"

type Project struct {
	ID                  int        `json:"id"`
	ProjectName         string     `json:"project_name"`
	ProjectType         string     `json:"project_type"`
	EventClassification string     `json:"event_classification"`
	Status              string     `json:"status"`
	EventDate           *time.Time `json:"event_date,omitempty"`
	EventLocation       string     `json:"event_location"`
	AttendeeCount       int        `json:"attendee_count"`
	Budget              float64    `json:"budget"`

	BillingName    string `json:"billing_name"`
	BillingEmail   string `json:"billing_email"`
	BillingPhone   string `json:"billing_phone"`
	LogisticsName  string `json:"logistics_name"`
	LogisticsEmail string `json:"logistics_email"`
	LogisticsPhone string `json:"logistics_phone"`

	ContractSigned    bool `json:"contract_signed"`
	InvoiceSent       bool `json:"invoice_sent"`
	PaymentReceived   bool `json:"payment_received"`
	PresentationReady bool `json:"presentation_ready"`
	MaterialsSent     bool `json:"materials_sent"`

	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProjectPatch mirrors DealPatch: nil means keep the stored value.
type ProjectPatch struct {
	ProjectName       *string    `json:"project_name"`
	Status            *string    `json:"status"`
	EventDate         *time.Time `json:"event_date"`
	EventLocation     *string    `json:"event_location"`
	AttendeeCount     *int       `json:"attendee_count"`
	Budget            *float64   `json:"budget"`
	ContractSigned    *bool      `json:"contract_signed"`
	InvoiceSent       *bool      `json:"invoice_sent"`
	PaymentReceived   *bool      `json:"payment_received"`
	PresentationReady *bool      `json:"presentation_ready"`
	MaterialsSent     *bool      `json:"materials_sent"`
	Notes             *string    `json:"notes"`
}
