package repositories

import (
	"database/sql"
	"fmt"

	"speakerbureau/internal/models"
)

type DealEventRepository struct {
	db *sql.DB
}

func NewDealEventRepository(db *sql.DB) *DealEventRepository {
	return &DealEventRepository{db: db}
}

func (r *DealEventRepository) Record(e *models.DealEvent) error {
	query := `
        INSERT INTO deal_events (deal_id, kind, from_status, to_status, detail, created_at)
        VALUES ($1,$2,$3,$4,$5,$6)
    `
	_, err := r.db.Exec(query, e.DealID, e.Kind, e.FromStatus, e.ToStatus, e.Detail, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("record deal event: %w", err)
	}
	return nil
}

func (r *DealEventRepository) ListByDeal(dealID int) ([]*models.DealEvent, error) {
	query := `SELECT id, deal_id, kind, from_status, to_status, detail, created_at
	          FROM deal_events
	          WHERE deal_id = $1
	          ORDER BY created_at ASC, id ASC`
	rows, err := r.db.Query(query, dealID)
	if err != nil {
		return nil, fmt.Errorf("list deal events: %w", err)
	}
	defer rows.Close()

	var events []*models.DealEvent
	for rows.Next() {
		e := &models.DealEvent{}
		if err := rows.Scan(&e.ID, &e.DealID, &e.Kind, &e.FromStatus, &e.ToStatus, &e.Detail, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan deal event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
