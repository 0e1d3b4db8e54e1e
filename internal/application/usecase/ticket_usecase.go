package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/sitesgtech-app/crm-gtech-sub000/internal/application/dto"
	"github.com/sitesgtech-app/crm-gtech-sub000/internal/domain"
	"github.com/sitesgtech-app/crm-gtech-sub000/internal/domain/entity"
	"github.com/sitesgtech-app/crm-gtech-sub000/internal/domain/repository"
)

// TicketUseCase casos de uso para tickets de soporte.
type TicketUseCase struct {
	repo    repository.TicketRepository
	clients repository.ClientRepository
}

// NewTicketUseCase construye el caso de uso.
func NewTicketUseCase(repo repository.TicketRepository, clients repository.ClientRepository) *TicketUseCase {
	return &TicketUseCase{repo: repo, clients: clients}
}

var validTicketStatus = map[string]bool{
	entity.TicketOpen:       true,
	entity.TicketInProgress: true,
	entity.TicketClosed:     true,
}

var validPriorities = map[string]bool{
	entity.PriorityLow:    true,
	entity.PriorityMedium: true,
	entity.PriorityHigh:   true,
}

// Create crea un ticket para un cliente de la organización.
func (uc *TicketUseCase) Create(organizationID string, in dto.CreateTicketRequest) (*dto.TicketResponse, error) {
	v := domain.NewValidation()
	if in.ClientID == "" {
		v.Add("client_id", "es requerido")
	}
	if in.Subject == "" {
		v.Add("subject", "es requerido")
	}
	priority := in.Priority
	if priority == "" {
		priority = entity.PriorityMedium
	}
	if !validPriorities[priority] {
		v.Add("priority", "debe ser low, medium o high")
	}
	if v.HasErrors() {
		return nil, v
	}

	client, err := uc.clients.GetByID(in.ClientID, organizationID)
	if err != nil {
		return nil, err
	}
	if client == nil || client.Status != entity.StatusActive {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	ticket := &entity.Ticket{
		ID:             uuid.New().String(),
		OrganizationID: organizationID,
		ClientID:       in.ClientID,
		AssigneeID:     in.AssigneeID,
		Subject:        in.Subject,
		Description:    in.Description,
		TicketStatus:   entity.TicketOpen,
		Priority:       priority,
		Status:         entity.StatusActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(ticket); err != nil {
		return nil, err
	}
	return toTicketResponse(ticket), nil
}

// GetByID obtiene un ticket del alcance de la organización.
func (uc *TicketUseCase) GetByID(id, organizationID string) (*dto.TicketResponse, error) {
	ticket, err := uc.repo.GetByID(id, organizationID)
	if err != nil {
		return nil, err
	}
	if ticket == nil || ticket.Status != entity.StatusActive {
		return nil, nil
	}
	return toTicketResponse(ticket), nil
}

// Update actualiza campos del ticket, incluido su estado de atención.
func (uc *TicketUseCase) Update(id, organizationID string, in dto.UpdateTicketRequest) (*dto.TicketResponse, error) {
	ticket, err := uc.repo.GetByID(id, organizationID)
	if err != nil {
		return nil, err
	}
	if ticket == nil || ticket.Status != entity.StatusActive {
		return nil, nil
	}
	if in.Subject != nil {
		ticket.Subject = *in.Subject
	}
	if in.Description != nil {
		ticket.Description = *in.Description
	}
	if in.Priority != nil {
		if !validPriorities[*in.Priority] {
			return nil, domain.NewValidation().Add("priority", "debe ser low, medium o high")
		}
		ticket.Priority = *in.Priority
	}
	if in.AssigneeID != nil {
		ticket.AssigneeID = *in.AssigneeID
	}
	if in.TicketStatus != nil {
		if !validTicketStatus[*in.TicketStatus] {
			return nil, domain.NewValidation().Add("ticket_status", "debe ser open, in_progress o closed")
		}
		ticket.TicketStatus = *in.TicketStatus
	}
	ticket.UpdatedAt = time.Now()
	if err := uc.repo.Update(ticket); err != nil {
		return nil, err
	}
	return toTicketResponse(ticket), nil
}

// List lista tickets de la organización.
func (uc *TicketUseCase) List(organizationID string, limit, offset int) ([]*dto.TicketResponse, error) {
	list, err := uc.repo.ListByOrganization(organizationID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.TicketResponse, 0, len(list))
	for _, t := range list {
		out = append(out, toTicketResponse(t))
	}
	return out, nil
}

// Delete marca el ticket como eliminado.
func (uc *TicketUseCase) Delete(id, organizationID string) error {
	ticket, err := uc.repo.GetByID(id, organizationID)
	if err != nil {
		return err
	}
	if ticket == nil || ticket.Status != entity.StatusActive {
		return domain.ErrNotFound
	}
	return uc.repo.SoftDelete(id, organizationID)
}

func toTicketResponse(t *entity.Ticket) *dto.TicketResponse {
	return &dto.TicketResponse{
		ID:             t.ID,
		OrganizationID: t.OrganizationID,
		ClientID:       t.ClientID,
		AssigneeID:     t.AssigneeID,
		Subject:        t.Subject,
		Description:    t.Description,
		TicketStatus:   t.TicketStatus,
		Priority:       t.Priority,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}
