package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"speakerbureau/internal/models"
)

type ProposalRepository struct {
	db *sql.DB
}

func NewProposalRepository(db *sql.DB) *ProposalRepository {
	return &ProposalRepository{db: db}
}

const proposalColumns = `id, deal_id, client_name, client_email, event_title,
	speaker_fee, travel_expenses, total_amount, status, access_token,
	valid_until, sent_at, viewed_at, created_at, updated_at`

func scanProposal(row interface{ Scan(...interface{}) error }) (*models.Proposal, error) {
	p := &models.Proposal{}
	err := row.Scan(
		&p.ID, &p.DealID, &p.ClientName, &p.ClientEmail, &p.EventTitle,
		&p.SpeakerFee, &p.TravelExpenses, &p.TotalAmount, &p.Status, &p.AccessToken,
		&p.ValidUntil, &p.SentAt, &p.ViewedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *ProposalRepository) Create(p *models.Proposal) (int64, error) {
	query := `
        INSERT INTO proposals (deal_id, client_name, client_email, event_title,
            speaker_fee, travel_expenses, total_amount, status, access_token,
            valid_until, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
        RETURNING id
    `
	var id int64
	err := r.db.QueryRow(query,
		p.DealID, p.ClientName, p.ClientEmail, p.EventTitle,
		p.SpeakerFee, p.TravelExpenses, p.TotalAmount, p.Status, p.AccessToken,
		p.ValidUntil, p.CreatedAt, p.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create proposal: %w", err)
	}
	return id, nil
}

func (r *ProposalRepository) GetByID(id int) (*models.Proposal, error) {
	query := `SELECT ` + proposalColumns + ` FROM proposals WHERE id = $1`
	p, err := scanProposal(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get proposal by id: %w", err)
	}
	return p, nil
}

// GetByAccessToken resolves the client capability token. No identity check:
// the token is the credential.
func (r *ProposalRepository) GetByAccessToken(token string) (*models.Proposal, error) {
	query := `SELECT ` + proposalColumns + ` FROM proposals WHERE access_token = $1`
	p, err := scanProposal(r.db.QueryRow(query, token))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get proposal by token: %w", err)
	}
	return p, nil
}

func (r *ProposalRepository) Update(p *models.Proposal) error {
	query := `
        UPDATE proposals
        SET client_name=$1, client_email=$2, event_title=$3,
            speaker_fee=$4, travel_expenses=$5, total_amount=$6,
            valid_until=$7, updated_at=$8
        WHERE id=$9
    `
	_, err := r.db.Exec(query,
		p.ClientName, p.ClientEmail, p.EventTitle,
		p.SpeakerFee, p.TravelExpenses, p.TotalAmount,
		p.ValidUntil, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return fmt.Errorf("update proposal: %w", err)
	}
	return nil
}

func (r *ProposalRepository) UpdateStatus(id int, status string) error {
	_, err := r.db.Exec(`UPDATE proposals SET status = $1, updated_at = $2 WHERE id = $3`,
		status, time.Now(), id)
	return err
}

func (r *ProposalRepository) MarkSent(id int, at time.Time) error {
	_, err := r.db.Exec(
		`UPDATE proposals SET status = $1, sent_at = $2, updated_at = $2 WHERE id = $3`,
		models.ProposalStatusSent, at, id)
	return err
}

// MarkViewed records the first client view; later views keep the original
// timestamp.
func (r *ProposalRepository) MarkViewed(id int, at time.Time) error {
	_, err := r.db.Exec(
		`UPDATE proposals SET status = $1, viewed_at = COALESCE(viewed_at, $2), updated_at = $2 WHERE id = $3`,
		models.ProposalStatusViewed, at, id)
	return err
}

func (r *ProposalRepository) Delete(id int) error {
	result, err := r.db.Exec(`DELETE FROM proposals WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete proposal: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *ProposalRepository) ListPaginated(limit, offset int) ([]*models.Proposal, error) {
	query := `SELECT ` + proposalColumns + ` FROM proposals
	          ORDER BY created_at DESC
	          LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list proposals: %w", err)
	}
	defer rows.Close()

	var proposals []*models.Proposal
	for rows.Next() {
		p, err := scanProposal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan proposal: %w", err)
		}
		proposals = append(proposals, p)
	}
	return proposals, rows.Err()
}
