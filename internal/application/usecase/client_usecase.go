package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/sitesgtech-app/crm-gtech-sub000/internal/application/dto"
	"github.com/sitesgtech-app/crm-gtech-sub000/internal/domain"
	"github.com/sitesgtech-app/crm-gtech-sub000/internal/domain/entity"
	"github.com/sitesgtech-app/crm-gtech-sub000/internal/domain/pricing"
	"github.com/sitesgtech-app/crm-gtech-sub000/internal/domain/repository"
)

// ClientUseCase casos de uso CRUD para clientes.
type ClientUseCase struct {
	repo repository.ClientRepository
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{repo: repo}
}

// Create crea un nuevo cliente. NIT único por organización.
func (uc *ClientUseCase) Create(organizationID string, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	v := domain.NewValidation()
	if in.Name == "" {
		v.Add("name", "es requerido")
	}
	if in.NIT == "" {
		v.Add("nit", "es requerido")
	}
	if v.HasErrors() {
		return nil, v
	}
	existing, _ := uc.repo.GetByOrganizationAndNIT(organizationID, in.NIT)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	client := &entity.Client{
		ID:             uuid.New().String(),
		OrganizationID: organizationID,
		Name:           in.Name,
		Company:        in.Company,
		NIT:            in.NIT,
		Email:          in.Email,
		Phone:          in.Phone,
		Address:        in.Address,
		Sector:         string(pricing.ParseSector(in.Sector)),
		Status:         entity.StatusActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// GetByID obtiene un cliente del alcance de la organización.
func (uc *ClientUseCase) GetByID(id, organizationID string) (*dto.ClientResponse, error) {
	client, err := uc.repo.GetByID(id, organizationID)
	if err != nil {
		return nil, err
	}
	if client == nil || client.Status != entity.StatusActive {
		return nil, nil
	}
	return toClientResponse(client), nil
}

// Update actualiza campos del cliente.
func (uc *ClientUseCase) Update(id, organizationID string, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	client, err := uc.repo.GetByID(id, organizationID)
	if err != nil {
		return nil, err
	}
	if client == nil || client.Status != entity.StatusActive {
		return nil, nil
	}
	if in.Name != nil {
		client.Name = *in.Name
	}
	if in.Company != nil {
		client.Company = *in.Company
	}
	if in.NIT != nil && *in.NIT != client.NIT {
		existing, _ := uc.repo.GetByOrganizationAndNIT(organizationID, *in.NIT)
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
		client.NIT = *in.NIT
	}
	if in.Email != nil {
		client.Email = *in.Email
	}
	if in.Phone != nil {
		client.Phone = *in.Phone
	}
	if in.Address != nil {
		client.Address = *in.Address
	}
	if in.Sector != nil {
		client.Sector = string(pricing.ParseSector(*in.Sector))
	}
	client.UpdatedAt = time.Now()
	if err := uc.repo.Update(client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// List lista clientes de la organización con paginación.
func (uc *ClientUseCase) List(organizationID string, limit, offset int) (*dto.ClientListResponse, error) {
	list, err := uc.repo.ListByOrganization(organizationID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toClientResponse(c))
	}
	return &dto.ClientListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete marca el cliente como eliminado (borrado lógico).
func (uc *ClientUseCase) Delete(id, organizationID string) error {
	client, err := uc.repo.GetByID(id, organizationID)
	if err != nil {
		return err
	}
	if client == nil || client.Status != entity.StatusActive {
		return domain.ErrNotFound
	}
	return uc.repo.SoftDelete(id, organizationID)
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	if c == nil {
		return nil
	}
	return &dto.ClientResponse{
		ID:             c.ID,
		OrganizationID: c.OrganizationID,
		Name:           c.Name,
		Company:        c.Company,
		NIT:            c.NIT,
		Email:          c.Email,
		Phone:          c.Phone,
		Address:        c.Address,
		Sector:         c.Sector,
		Status:         c.Status,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}
