package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/sitesgtech-app/crm-gtech-sub000/internal/application/dto"
	"github.com/sitesgtech-app/crm-gtech-sub000/internal/domain"
	"github.com/sitesgtech-app/crm-gtech-sub000/internal/domain/entity"
	"github.com/sitesgtech-app/crm-gtech-sub000/internal/domain/repository"
)

// OrganizationUseCase casos de uso para organizaciones (tenant).
type OrganizationUseCase struct {
	repo repository.OrganizationRepository
}

// NewOrganizationUseCase construye el caso de uso.
func NewOrganizationUseCase(repo repository.OrganizationRepository) *OrganizationUseCase {
	return &OrganizationUseCase{repo: repo}
}

// Create crea una organización nueva. El NIT es único a nivel global.
func (uc *OrganizationUseCase) Create(in dto.CreateOrganizationRequest) (*dto.OrganizationResponse, error) {
	if in.Name == "" || in.NIT == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetByNIT(in.NIT)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	org := &entity.Organization{
		ID:        uuid.New().String(),
		Name:      in.Name,
		NIT:       in.NIT,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(org); err != nil {
		return nil, err
	}
	return toOrganizationResponse(org), nil
}

// GetByID obtiene una organización por ID.
func (uc *OrganizationUseCase) GetByID(id string) (*dto.OrganizationResponse, error) {
	org, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, nil
	}
	return toOrganizationResponse(org), nil
}

func toOrganizationResponse(o *entity.Organization) *dto.OrganizationResponse {
	return &dto.OrganizationResponse{
		ID:        o.ID,
		Name:      o.Name,
		NIT:       o.NIT,
		Email:     o.Email,
		Phone:     o.Phone,
		Address:   o.Address,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}
