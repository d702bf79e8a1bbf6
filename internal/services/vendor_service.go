package services

import (
	"time"

	"speakerbureau/internal/models"
	"speakerbureau/internal/repositories"
)

type VendorService struct {
	Repo *repositories.VendorRepository
}

func NewVendorService(repo *repositories.VendorRepository) *VendorService {
	return &VendorService{Repo: repo}
}

func (s *VendorService) Create(v *models.Vendor) (int64, error) {
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now()
	}
	return s.Repo.Create(v)
}

func (s *VendorService) GetByID(id int) (*models.Vendor, error) {
	return s.Repo.GetByID(id)
}

func (s *VendorService) Update(v *models.Vendor) error {
	return s.Repo.Update(v)
}

func (s *VendorService) Delete(id int) error {
	return s.Repo.Delete(id)
}

func (s *VendorService) ListPaginated(limit, offset int) ([]*models.Vendor, error) {
	return s.Repo.ListPaginated(limit, offset)
}
