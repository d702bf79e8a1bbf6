package repositories

import (
	"database/sql"
	"fmt"

	"speakerbureau/internal/models"
)

type ProjectRepository struct {
	db *sql.DB
}

func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectColumns = `id, project_name, project_type, event_classification, status,
	event_date, event_location, attendee_count, budget,
	billing_name, billing_email, billing_phone,
	logistics_name, logistics_email, logistics_phone,
	contract_signed, invoice_sent, payment_received, presentation_ready, materials_sent,
	notes, created_at, updated_at`

func scanProject(row interface{ Scan(...interface{}) error }) (*models.Project, error) {
	p := &models.Project{}
	err := row.Scan(
		&p.ID, &p.ProjectName, &p.ProjectType, &p.EventClassification, &p.Status,
		&p.EventDate, &p.EventLocation, &p.AttendeeCount, &p.Budget,
		&p.BillingName, &p.BillingEmail, &p.BillingPhone,
		&p.LogisticsName, &p.LogisticsEmail, &p.LogisticsPhone,
		&p.ContractSigned, &p.InvoiceSent, &p.PaymentReceived, &p.PresentationReady, &p.MaterialsSent,
		&p.Notes, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *ProjectRepository) Create(p *models.Project) (int64, error) {
	query := `
        INSERT INTO projects (project_name, project_type, event_classification, status,
            event_date, event_location, attendee_count, budget,
            billing_name, billing_email, billing_phone,
            logistics_name, logistics_email, logistics_phone,
            contract_signed, invoice_sent, payment_received, presentation_ready, materials_sent,
            notes, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22)
        RETURNING id
    `
	var id int64
	err := r.db.QueryRow(query,
		p.ProjectName, p.ProjectType, p.EventClassification, p.Status,
		p.EventDate, p.EventLocation, p.AttendeeCount, p.Budget,
		p.BillingName, p.BillingEmail, p.BillingPhone,
		p.LogisticsName, p.LogisticsEmail, p.LogisticsPhone,
		p.ContractSigned, p.InvoiceSent, p.PaymentReceived, p.PresentationReady, p.MaterialsSent,
		p.Notes, p.CreatedAt, p.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create project: %w", err)
	}
	return id, nil
}

func (r *ProjectRepository) GetByID(id int) (*models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`
	p, err := scanProject(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get project by id: %w", err)
	}
	return p, nil
}

func (r *ProjectRepository) Update(p *models.Project) error {
	query := `
        UPDATE projects
        SET project_name=$1, status=$2, event_date=$3, event_location=$4,
            attendee_count=$5, budget=$6,
            contract_signed=$7, invoice_sent=$8, payment_received=$9,
            presentation_ready=$10, materials_sent=$11, notes=$12, updated_at=$13
        WHERE id=$14
    `
	_, err := r.db.Exec(query,
		p.ProjectName, p.Status, p.EventDate, p.EventLocation,
		p.AttendeeCount, p.Budget,
		p.ContractSigned, p.InvoiceSent, p.PaymentReceived,
		p.PresentationReady, p.MaterialsSent, p.Notes, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	return nil
}

func (r *ProjectRepository) ListPaginated(limit, offset int) ([]*models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects
	          ORDER BY created_at DESC
	          LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []*models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (r *ProjectRepository) Count() (int, error) {
	var n int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM projects`).Scan(&n)
	return n, err
}
