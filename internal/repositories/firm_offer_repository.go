package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"speakerbureau/internal/models"
)

type FirmOfferRepository struct {
	db *sql.DB
}

func NewFirmOfferRepository(db *sql.DB) *FirmOfferRepository {
	return &FirmOfferRepository{db: db}
}

const firmOfferColumns = `id, proposal_id, speaker_id, event_overview, speaker_program, financial_details,
	status, speaker_access_token, speaker_viewed_at, speaker_confirmed,
	speaker_notes, speaker_responded_at, created_at, updated_at`

func scanFirmOffer(row interface{ Scan(...interface{}) error }) (*models.FirmOffer, error) {
	o := &models.FirmOffer{}
	err := row.Scan(
		&o.ID, &o.ProposalID, &o.SpeakerID, &o.EventOverview, &o.SpeakerProgram, &o.FinancialDetails,
		&o.Status, &o.SpeakerAccessToken, &o.SpeakerViewedAt, &o.SpeakerConfirmed,
		&o.SpeakerNotes, &o.SpeakerRespondedAt, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *FirmOfferRepository) Create(o *models.FirmOffer) (int64, error) {
	query := `
        INSERT INTO firm_offers (proposal_id, speaker_id, event_overview, speaker_program,
            financial_details, status, speaker_access_token, speaker_notes,
            created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id
    `
	var id int64
	err := r.db.QueryRow(query,
		o.ProposalID, o.SpeakerID, o.EventOverview, o.SpeakerProgram,
		o.FinancialDetails, o.Status, o.SpeakerAccessToken, o.SpeakerNotes,
		o.CreatedAt, o.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create firm offer: %w", err)
	}
	return id, nil
}

func (r *FirmOfferRepository) GetByID(id int) (*models.FirmOffer, error) {
	query := `SELECT ` + firmOfferColumns + ` FROM firm_offers WHERE id = $1`
	o, err := scanFirmOffer(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get firm offer by id: %w", err)
	}
	return o, nil
}

// GetByProposalID enforces the 1:1 relation at the service layer: an existing
// row means no second offer may be created for the proposal.
func (r *FirmOfferRepository) GetByProposalID(proposalID int) (*models.FirmOffer, error) {
	query := `SELECT ` + firmOfferColumns + ` FROM firm_offers WHERE proposal_id = $1`
	o, err := scanFirmOffer(r.db.QueryRow(query, proposalID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get firm offer by proposal_id: %w", err)
	}
	return o, nil
}

// GetBySpeakerToken resolves the speaker capability token.
func (r *FirmOfferRepository) GetBySpeakerToken(token string) (*models.FirmOffer, error) {
	query := `SELECT ` + firmOfferColumns + ` FROM firm_offers WHERE speaker_access_token = $1`
	o, err := scanFirmOffer(r.db.QueryRow(query, token))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get firm offer by speaker token: %w", err)
	}
	return o, nil
}

// MarkSpeakerViewed is write-once: the guard in the WHERE clause keeps the
// first-view timestamp stable under repeated loads.
func (r *FirmOfferRepository) MarkSpeakerViewed(id int, at time.Time) error {
	_, err := r.db.Exec(
		`UPDATE firm_offers SET speaker_viewed_at = $1, updated_at = $1
		 WHERE id = $2 AND speaker_viewed_at IS NULL`,
		at, id)
	return err
}

// RecordSpeakerResponse latches the confirmation. The speaker_confirmed IS
// NULL guard makes the latch one-way even under concurrent submissions; zero
// rows affected means a response was already on file.
func (r *FirmOfferRepository) RecordSpeakerResponse(id int, status string, confirmed bool, notes string, at time.Time) (bool, error) {
	result, err := r.db.Exec(
		`UPDATE firm_offers
		 SET status = $1, speaker_confirmed = $2, speaker_notes = $3,
		     speaker_responded_at = $4, updated_at = $4
		 WHERE id = $5 AND speaker_confirmed IS NULL`,
		status, confirmed, notes, at, id)
	if err != nil {
		return false, fmt.Errorf("record speaker response: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// UpdateSections rewrites the admin-editable content of the offer.
func (r *FirmOfferRepository) UpdateSections(o *models.FirmOffer) error {
	query := `
        UPDATE firm_offers
        SET event_overview=$1, speaker_program=$2, financial_details=$3,
            status=$4, updated_at=$5
        WHERE id=$6
    `
	_, err := r.db.Exec(query,
		o.EventOverview, o.SpeakerProgram, o.FinancialDetails,
		o.Status, o.UpdatedAt, o.ID,
	)
	if err != nil {
		return fmt.Errorf("update firm offer: %w", err)
	}
	return nil
}

func (r *FirmOfferRepository) CountByPending(pending bool) (int, error) {
	var n int
	var err error
	if pending {
		err = r.db.QueryRow(`SELECT COUNT(*) FROM firm_offers WHERE speaker_confirmed IS NULL`).Scan(&n)
	} else {
		err = r.db.QueryRow(`SELECT COUNT(*) FROM firm_offers WHERE speaker_confirmed = TRUE`).Scan(&n)
	}
	return n, err
}

func (r *FirmOfferRepository) ListPaginated(limit, offset int) ([]*models.FirmOffer, error) {
	query := `SELECT ` + firmOfferColumns + ` FROM firm_offers
	          ORDER BY created_at DESC
	          LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list firm offers: %w", err)
	}
	defer rows.Close()

	var offers []*models.FirmOffer
	for rows.Next() {
		o, err := scanFirmOffer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan firm offer: %w", err)
		}
		offers = append(offers, o)
	}
	return offers, rows.Err()
}
