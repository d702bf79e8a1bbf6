package repositories

import (
	"database/sql"
	"fmt"

	"speakerbureau/internal/models"
)

type DealRepository struct {
	db *sql.DB
}

func NewDealRepository(db *sql.DB) *DealRepository {
	return &DealRepository{db: db}
}

const dealColumns = `id, owner_id, client_name, client_email, client_phone, company,
	event_title, event_date, event_location, event_type, attendee_count,
	deal_value, status, priority, notes, firm_offer_id, created_at, updated_at`

func scanDeal(row interface{ Scan(...interface{}) error }) (*models.Deal, error) {
	d := &models.Deal{}
	err := row.Scan(
		&d.ID, &d.OwnerID, &d.ClientName, &d.ClientEmail, &d.ClientPhone, &d.Company,
		&d.EventTitle, &d.EventDate, &d.EventLocation, &d.EventType, &d.AttendeeCount,
		&d.DealValue, &d.Status, &d.Priority, &d.Notes, &d.FirmOfferID,
		&d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *DealRepository) Create(deal *models.Deal) (int64, error) {
	query := `
        INSERT INTO deals (owner_id, client_name, client_email, client_phone, company,
            event_title, event_date, event_location, event_type, attendee_count,
            deal_value, status, priority, notes, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
        RETURNING id
    `
	var id int64
	err := r.db.QueryRow(
		query,
		deal.OwnerID, deal.ClientName, deal.ClientEmail, deal.ClientPhone, deal.Company,
		deal.EventTitle, deal.EventDate, deal.EventLocation, deal.EventType, deal.AttendeeCount,
		deal.DealValue, deal.Status, deal.Priority, deal.Notes, deal.CreatedAt, deal.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create deal: %w", err)
	}
	return id, nil
}

func (r *DealRepository) GetByID(id int) (*models.Deal, error) {
	query := `SELECT ` + dealColumns + ` FROM deals WHERE id = $1`
	deal, err := scanDeal(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get deal by id: %w", err)
	}
	return deal, nil
}

func (r *DealRepository) Update(deal *models.Deal) error {
	query := `
        UPDATE deals
        SET client_name=$1, client_email=$2, client_phone=$3, company=$4,
            event_title=$5, event_date=$6, event_location=$7, event_type=$8,
            attendee_count=$9, deal_value=$10, status=$11, priority=$12,
            notes=$13, firm_offer_id=$14, updated_at=$15
        WHERE id=$16
    `
	_, err := r.db.Exec(query,
		deal.ClientName, deal.ClientEmail, deal.ClientPhone, deal.Company,
		deal.EventTitle, deal.EventDate, deal.EventLocation, deal.EventType,
		deal.AttendeeCount, deal.DealValue, deal.Status, deal.Priority,
		deal.Notes, deal.FirmOfferID, deal.UpdatedAt, deal.ID,
	)
	if err != nil {
		return fmt.Errorf("update deal: %w", err)
	}
	return nil
}

// Delete removes the deal and its audit trail, and detaches any proposals
// that referenced it. The proposals themselves (and their firm offers) are
// left in place; an offer stays reachable by its speaker token.
func (r *DealRepository) Delete(id int) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("delete deal: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM deal_events WHERE deal_id=$1`, id); err != nil {
		return fmt.Errorf("delete deal events: %w", err)
	}
	if _, err := tx.Exec(`UPDATE proposals SET deal_id = NULL WHERE deal_id=$1`, id); err != nil {
		return fmt.Errorf("detach deal proposals: %w", err)
	}

	result, err := tx.Exec(`DELETE FROM deals WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete deal: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete deal: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return tx.Commit()
}

func (r *DealRepository) CountByStatus() (map[string]int, error) {
	rows, err := r.db.Query(`SELECT status, COUNT(*) FROM deals GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

func (r *DealRepository) SumValueByStatus(status string) (float64, error) {
	var total float64
	err := r.db.QueryRow(`SELECT COALESCE(SUM(deal_value), 0) FROM deals WHERE status = $1`, status).Scan(&total)
	return total, err
}

// List applies optional status/priority filters with pagination.
func (r *DealRepository) List(status, priority string, limit, offset int) ([]*models.Deal, error) {
	query := `SELECT ` + dealColumns + ` FROM deals WHERE 1=1`
	args := []interface{}{}
	i := 1

	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", i)
		args = append(args, status)
		i++
	}
	if priority != "" {
		query += fmt.Sprintf(" AND priority = $%d", i)
		args = append(args, priority)
		i++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", i, i+1)
	args = append(args, limit, offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list deals: %w", err)
	}
	defer rows.Close()

	var deals []*models.Deal
	for rows.Next() {
		d, err := scanDeal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan deal: %w", err)
		}
		deals = append(deals, d)
	}
	return deals, rows.Err()
}

func (r *DealRepository) ListByOwner(ownerID, limit, offset int) ([]*models.Deal, error) {
	query := `SELECT ` + dealColumns + ` FROM deals
	          WHERE owner_id = $1
	          ORDER BY created_at DESC
	          LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(query, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deals []*models.Deal
	for rows.Next() {
		d, err := scanDeal(rows)
		if err != nil {
			return nil, err
		}
		deals = append(deals, d)
	}
	return deals, rows.Err()
}
