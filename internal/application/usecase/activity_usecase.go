package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/sitesgtech-app/crm-gtech-sub000/internal/application/dto"
	"github.com/sitesgtech-app/crm-gtech-sub000/internal/domain"
	"github.com/sitesgtech-app/crm-gtech-sub000/internal/domain/entity"
	"github.com/sitesgtech-app/crm-gtech-sub000/internal/domain/repository"
)

// ActivityUseCase casos de uso para la bitácora de actividades (append-only).
type ActivityUseCase struct {
	repo repository.ActivityRepository
	opps repository.OpportunityRepository
}

// NewActivityUseCase construye el caso de uso.
func NewActivityUseCase(repo repository.ActivityRepository, opps repository.OpportunityRepository) *ActivityUseCase {
	return &ActivityUseCase{repo: repo, opps: opps}
}

var validActivityTypes = map[string]bool{
	entity.ActivityCall:    true,
	entity.ActivityEmail:   true,
	entity.ActivityMeeting: true,
	entity.ActivityNote:    true,
}

// Create registra una actividad sobre una oportunidad del alcance del usuario.
// Las actividades nunca se modifican después de creadas.
func (uc *ActivityUseCase) Create(organizationID, userID string, isAdmin bool, in dto.CreateActivityRequest) (*dto.ActivityResponse, error) {
	v := domain.NewValidation()
	if in.OpportunityID == "" {
		v.Add("opportunity_id", "es requerido")
	}
	if !validActivityTypes[in.Type] {
		v.Add("type", "debe ser call, email, meeting o note")
	}
	if in.Description == "" {
		v.Add("description", "es requerida")
	}
	if v.HasErrors() {
		return nil, v
	}

	opp, err := uc.opps.GetByID(in.OpportunityID, organizationID)
	if err != nil {
		return nil, err
	}
	if opp == nil || opp.Status != entity.StatusActive {
		return nil, domain.ErrNotFound
	}
	if !isAdmin && opp.OwnerID != userID {
		return nil, domain.ErrNotFound
	}

	activity := &entity.Activity{
		ID:             uuid.New().String(),
		OrganizationID: organizationID,
		OpportunityID:  opp.ID,
		ClientID:       opp.ClientID,
		UserID:         userID,
		Type:           in.Type,
		Description:    in.Description,
		CreatedAt:      time.Now(),
	}
	if err := uc.repo.Create(activity); err != nil {
		return nil, err
	}
	return toActivityResponse(activity), nil
}

// ListByOpportunity lista la bitácora de una oportunidad del alcance del usuario.
func (uc *ActivityUseCase) ListByOpportunity(organizationID, userID string, isAdmin bool, opportunityID string, limit, offset int) ([]*dto.ActivityResponse, error) {
	opp, err := uc.opps.GetByID(opportunityID, organizationID)
	if err != nil {
		return nil, err
	}
	if opp == nil {
		return nil, domain.ErrNotFound
	}
	if !isAdmin && opp.OwnerID != userID {
		return nil, domain.ErrNotFound
	}
	list, err := uc.repo.ListByOpportunity(opportunityID, organizationID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ActivityResponse, 0, len(list))
	for _, a := range list {
		out = append(out, toActivityResponse(a))
	}
	return out, nil
}

func toActivityResponse(a *entity.Activity) *dto.ActivityResponse {
	return &dto.ActivityResponse{
		ID:             a.ID,
		OrganizationID: a.OrganizationID,
		OpportunityID:  a.OpportunityID,
		ClientID:       a.ClientID,
		UserID:         a.UserID,
		Type:           a.Type,
		Description:    a.Description,
		CreatedAt:      a.CreatedAt,
	}
}
