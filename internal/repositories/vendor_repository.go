package repositories

import (
	"database/sql"
	"fmt"

	"speakerbureau/internal/models"
)

type VendorRepository struct {
	db *sql.DB
}

func NewVendorRepository(db *sql.DB) *VendorRepository {
	return &VendorRepository{db: db}
}

const vendorColumns = `id, company_name, contact_name, email, phone, service_type, notes, active, created_at`

func scanVendor(row interface{ Scan(...interface{}) error }) (*models.Vendor, error) {
	v := &models.Vendor{}
	err := row.Scan(
		&v.ID, &v.CompanyName, &v.ContactName, &v.Email, &v.Phone,
		&v.ServiceType, &v.Notes, &v.Active, &v.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *VendorRepository) Create(v *models.Vendor) (int64, error) {
	query := `
        INSERT INTO vendors (company_name, contact_name, email, phone, service_type, notes, active, created_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id
    `
	var id int64
	err := r.db.QueryRow(query,
		v.CompanyName, v.ContactName, v.Email, v.Phone, v.ServiceType, v.Notes, v.Active, v.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create vendor: %w", err)
	}
	return id, nil
}

func (r *VendorRepository) GetByID(id int) (*models.Vendor, error) {
	query := `SELECT ` + vendorColumns + ` FROM vendors WHERE id = $1`
	v, err := scanVendor(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get vendor by id: %w", err)
	}
	return v, nil
}

func (r *VendorRepository) Update(v *models.Vendor) error {
	query := `
        UPDATE vendors
        SET company_name=$1, contact_name=$2, email=$3, phone=$4,
            service_type=$5, notes=$6, active=$7
        WHERE id=$8
    `
	_, err := r.db.Exec(query,
		v.CompanyName, v.ContactName, v.Email, v.Phone,
		v.ServiceType, v.Notes, v.Active, v.ID,
	)
	if err != nil {
		return fmt.Errorf("update vendor: %w", err)
	}
	return nil
}

func (r *VendorRepository) Delete(id int) error {
	result, err := r.db.Exec(`DELETE FROM vendors WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete vendor: %w", err)
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

func (r *VendorRepository) ListPaginated(limit, offset int) ([]*models.Vendor, error) {
	query := `SELECT ` + vendorColumns + ` FROM vendors
	          ORDER BY company_name ASC
	          LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list vendors: %w", err)
	}
	defer rows.Close()

	var vendors []*models.Vendor
	for rows.Next() {
		v, err := scanVendor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan vendor: %w", err)
		}
		vendors = append(vendors, v)
	}
	return vendors, rows.Err()
}
