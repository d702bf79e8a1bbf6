package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"speakerbureau/internal/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, name, email, password_hash, role_id, refresh_token, refresh_expires_at, created_at`

func scanUser(row interface{ Scan(...interface{}) error }) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.RoleID,
		&u.RefreshToken, &u.RefreshExpiresAt, &u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) Create(u *models.User) (int64, error) {
	query := `
        INSERT INTO users (name, email, password_hash, role_id, created_at)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id
    `
	var id int64
	err := r.db.QueryRow(query, u.Name, u.Email, u.PasswordHash, u.RoleID, u.CreatedAt).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create user: %w", err)
	}
	return id, nil
}

func (r *UserRepository) GetByID(id int) (*models.User, error) {
	u, err := scanUser(r.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return u, nil
}

func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	u, err := scanUser(r.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

func (r *UserRepository) GetByRefreshToken(token string) (*models.User, error) {
	u, err := scanUser(r.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE refresh_token = $1`, token))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user by refresh token: %w", err)
	}
	return u, nil
}

func (r *UserRepository) SetRefreshToken(userID int, token string, expiresAt time.Time) error {
	_, err := r.db.Exec(
		`UPDATE users SET refresh_token = $1, refresh_expires_at = $2 WHERE id = $3`,
		token, expiresAt, userID)
	return err
}

func (r *UserRepository) Update(u *models.User) error {
	query := `UPDATE users SET name=$1, email=$2, role_id=$3 WHERE id=$4`
	_, err := r.db.Exec(query, u.Name, u.Email, u.RoleID, u.ID)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func (r *UserRepository) Delete(id int) error {
	result, err := r.db.Exec(`DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
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

func (r *UserRepository) ListPaginated(limit, offset int) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id ASC LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
