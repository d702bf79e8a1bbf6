package repositories

import (
	"database/sql"
	"fmt"

	"speakerbureau/internal/models"
)

type SpeakerRepository struct {
	db *sql.DB
}

func NewSpeakerRepository(db *sql.DB) *SpeakerRepository {
	return &SpeakerRepository{db: db}
}

const speakerColumns = `id, name, email, phone, bio, topics, fee_range, location,
	virtual_available, active, created_at`

func scanSpeaker(row interface{ Scan(...interface{}) error }) (*models.Speaker, error) {
	s := &models.Speaker{}
	err := row.Scan(
		&s.ID, &s.Name, &s.Email, &s.Phone, &s.Bio, &s.Topics, &s.FeeRange,
		&s.Location, &s.VirtualAvailable, &s.Active, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SpeakerRepository) Create(s *models.Speaker) (int64, error) {
	query := `
        INSERT INTO speakers (name, email, phone, bio, topics, fee_range, location,
            virtual_available, active, created_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id
    `
	var id int64
	err := r.db.QueryRow(query,
		s.Name, s.Email, s.Phone, s.Bio, s.Topics, s.FeeRange, s.Location,
		s.VirtualAvailable, s.Active, s.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create speaker: %w", err)
	}
	return id, nil
}

func (r *SpeakerRepository) GetByID(id int) (*models.Speaker, error) {
	query := `SELECT ` + speakerColumns + ` FROM speakers WHERE id = $1`
	s, err := scanSpeaker(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get speaker by id: %w", err)
	}
	return s, nil
}

func (r *SpeakerRepository) Update(s *models.Speaker) error {
	query := `
        UPDATE speakers
        SET name=$1, email=$2, phone=$3, bio=$4, topics=$5, fee_range=$6,
            location=$7, virtual_available=$8, active=$9
        WHERE id=$10
    `
	_, err := r.db.Exec(query,
		s.Name, s.Email, s.Phone, s.Bio, s.Topics, s.FeeRange,
		s.Location, s.VirtualAvailable, s.Active, s.ID,
	)
	if err != nil {
		return fmt.Errorf("update speaker: %w", err)
	}
	return nil
}

func (r *SpeakerRepository) Delete(id int) error {
	result, err := r.db.Exec(`DELETE FROM speakers WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete speaker: %w", err)
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

func (r *SpeakerRepository) ListPaginated(limit, offset int) ([]*models.Speaker, error) {
	query := `SELECT ` + speakerColumns + ` FROM speakers
	          ORDER BY name ASC
	          LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list speakers: %w", err)
	}
	defer rows.Close()

	var speakers []*models.Speaker
	for rows.Next() {
		s, err := scanSpeaker(rows)
		if err != nil {
			return nil, fmt.Errorf("scan speaker: %w", err)
		}
		speakers = append(speakers, s)
	}
	return speakers, rows.Err()
}

// ListActive feeds the public roster.
func (r *SpeakerRepository) ListActive() ([]*models.Speaker, error) {
	query := `SELECT ` + speakerColumns + ` FROM speakers WHERE active = TRUE ORDER BY name ASC`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list active speakers: %w", err)
	}
	defer rows.Close()

	var speakers []*models.Speaker
	for rows.Next() {
		s, err := scanSpeaker(rows)
		if err != nil {
			return nil, fmt.Errorf("scan speaker: %w", err)
		}
		speakers = append(speakers, s)
	}
	return speakers, rows.Err()
}
