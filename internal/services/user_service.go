package services

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"speakerbureau/internal/models"
	"speakerbureau/internal/repositories"
)

type UserService struct {
	Repo *repositories.UserRepository
}

func NewUserService(repo *repositories.UserRepository) *UserService {
	return &UserService{Repo: repo}
}

func (s *UserService) Create(u *models.User, password string) (int64, error) {
	u.Email = strings.TrimSpace(strings.ToLower(u.Email))
	if u.Email == "" {
		return 0, errors.New("email is required")
	}
	if password == "" {
		return 0, errors.New("password is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}
	u.PasswordHash = string(hash)
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	return s.Repo.Create(u)
}

func (s *UserService) GetByID(id int) (*models.User, error) {
	return s.Repo.GetByID(id)
}

func (s *UserService) GetByEmail(email string) (*models.User, error) {
	return s.Repo.GetByEmail(strings.TrimSpace(strings.ToLower(email)))
}

func (s *UserService) GetByRefreshToken(token string) (*models.User, error) {
	return s.Repo.GetByRefreshToken(token)
}

func (s *UserService) SetRefreshToken(userID int, token string, expiresAt time.Time) error {
	return s.Repo.SetRefreshToken(userID, token, expiresAt)
}

func (s *UserService) Update(u *models.User) error {
	return s.Repo.Update(u)
}

func (s *UserService) Delete(id int) error {
	return s.Repo.Delete(id)
}

func (s *UserService) ListPaginated(limit, offset int) ([]*models.User, error) {
	return s.Repo.ListPaginated(limit, offset)
}
