package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sitesgtech-app/crm-gtech-sub000/internal/application/dto"
	"github.com/sitesgtech-app/crm-gtech-sub000/internal/domain"
	"github.com/sitesgtech-app/crm-gtech-sub000/internal/domain/entity"
	"github.com/sitesgtech-app/crm-gtech-sub000/internal/domain/pricing"
	"github.com/sitesgtech-app/crm-gtech-sub000/internal/domain/repository"
)

const defaultQuotationValidDays = 15

// QuotationPDFGenerator genera el documento PDF de una cotización.
type QuotationPDFGenerator interface {
	Generate(q *entity.Quotation, client *entity.Client, org *entity.Organization) ([]byte, error)
}

// QuotationUseCase casos de uso para cotizaciones. Una cotización congela los
// montos de la oportunidad en el momento de emitirla.
type QuotationUseCase struct {
	repo    repository.QuotationRepository
	opps    repository.OpportunityRepository
	clients repository.ClientRepository
	orgs    repository.OrganizationRepository
	pdf     QuotationPDFGenerator
}

// NewQuotationUseCase construye el caso de uso.
func NewQuotationUseCase(
	repo repository.QuotationRepository,
	opps repository.OpportunityRepository,
	clients repository.ClientRepository,
	orgs repository.OrganizationRepository,
	pdf QuotationPDFGenerator,
) *QuotationUseCase {
	return &QuotationUseCase{repo: repo, opps: opps, clients: clients, orgs: orgs, pdf: pdf}
}

var validQuotationStatus = map[string]bool{
	entity.QuotationDraft:    true,
	entity.QuotationSent:     true,
	entity.QuotationAccepted: true,
	entity.QuotationRejected: true,
}

// Create emite una cotización a partir de una oportunidad del alcance del
// usuario. El consecutivo es por organización (COT-000001, COT-000002, ...).
func (uc *QuotationUseCase) Create(organizationID, userID string, isAdmin bool, in dto.CreateQuotationRequest) (*dto.QuotationResponse, error) {
	if in.OpportunityID == "" {
		return nil, domain.NewValidation().Add("opportunity_id", "es requerido")
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

	seq, err := uc.repo.NextNumber(organizationID)
	if err != nil {
		return nil, err
	}

	validDays := in.ValidDays
	if validDays <= 0 {
		validDays = defaultQuotationValidDays
	}
	description := in.Description
	if description == "" {
		description = opp.Title
	}

	amount := pricing.LineTotal(opp.UnitPrice, opp.Quantity)
	b := pricing.ProfitBreakdown(amount, opp.UnitCost, opp.Quantity, pricing.ParseSector(opp.Sector))

	now := time.Now()
	quotation := &entity.Quotation{
		ID:             uuid.New().String(),
		OrganizationID: organizationID,
		OpportunityID:  opp.ID,
		ClientID:       opp.ClientID,
		Number:         fmt.Sprintf("COT-%06d", seq),
		Date:           now,
		Description:    description,
		Quantity:       opp.Quantity,
		UnitPrice:      opp.UnitPrice,
		Subtotal:       b.BaseAmount,
		Tax:            b.Tax,
		Total:          amount,
		ValidDays:      validDays,
		Status:         entity.QuotationDraft,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(quotation); err != nil {
		return nil, err
	}
	return toQuotationResponse(quotation), nil
}

// getScoped obtiene la cotización y aplica la regla de alcance: un no-admin
// solo accede a cotizaciones cuya oportunidad le pertenece. Fuera de alcance es
// indistinguible de inexistente.
func (uc *QuotationUseCase) getScoped(id, organizationID, userID string, isAdmin bool) (*entity.Quotation, error) {
	quotation, err := uc.repo.GetByID(id, organizationID)
	if err != nil {
		return nil, err
	}
	if quotation == nil {
		return nil, domain.ErrNotFound
	}
	if !isAdmin {
		opp, err := uc.opps.GetByID(quotation.OpportunityID, organizationID)
		if err != nil {
			return nil, err
		}
		if opp == nil || opp.OwnerID != userID {
			return nil, domain.ErrNotFound
		}
	}
	return quotation, nil
}

// GetByID obtiene una cotización del alcance del usuario.
func (uc *QuotationUseCase) GetByID(id, organizationID, userID string, isAdmin bool) (*dto.QuotationResponse, error) {
	quotation, err := uc.getScoped(id, organizationID, userID, isAdmin)
	if err != nil {
		return nil, err
	}
	return toQuotationResponse(quotation), nil
}

// List lista cotizaciones: admin ve toda la organización, vendedor solo las de
// sus propias oportunidades.
func (uc *QuotationUseCase) List(organizationID, userID string, isAdmin bool, limit, offset int) ([]*dto.QuotationResponse, error) {
	ownerID := userID
	if isAdmin {
		ownerID = ""
	}
	list, err := uc.repo.ListByOrganization(organizationID, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.QuotationResponse, 0, len(list))
	for _, q := range list {
		out = append(out, toQuotationResponse(q))
	}
	return out, nil
}

// UpdateStatus cambia el estado de la cotización. Una cotización aceptada o
// rechazada ya no cambia de estado.
func (uc *QuotationUseCase) UpdateStatus(id, organizationID, userID string, isAdmin bool, in dto.UpdateQuotationStatusRequest) (*dto.QuotationResponse, error) {
	if !validQuotationStatus[in.Status] {
		return nil, domain.NewValidation().Add("status", "debe ser draft, sent, accepted o rejected")
	}
	quotation, err := uc.getScoped(id, organizationID, userID, isAdmin)
	if err != nil {
		return nil, err
	}
	if quotation.Status == entity.QuotationAccepted || quotation.Status == entity.QuotationRejected {
		return nil, domain.ErrConflict
	}
	if err := uc.repo.UpdateStatus(id, organizationID, in.Status); err != nil {
		return nil, err
	}
	quotation.Status = in.Status
	return toQuotationResponse(quotation), nil
}

// GeneratePDF produce el documento PDF de la cotización. Devuelve el nombre de
// archivo sugerido junto con el contenido.
func (uc *QuotationUseCase) GeneratePDF(id, organizationID, userID string, isAdmin bool) (string, []byte, error) {
	quotation, err := uc.getScoped(id, organizationID, userID, isAdmin)
	if err != nil {
		return "", nil, err
	}
	client, err := uc.clients.GetByID(quotation.ClientID, organizationID)
	if err != nil {
		return "", nil, err
	}
	org, err := uc.orgs.GetByID(organizationID)
	if err != nil {
		return "", nil, err
	}
	content, err := uc.pdf.Generate(quotation, client, org)
	if err != nil {
		return "", nil, fmt.Errorf("%w: generando PDF de cotización: %v", domain.ErrDependency, err)
	}
	return fmt.Sprintf("%s.pdf", quotation.Number), content, nil
}

func toQuotationResponse(q *entity.Quotation) *dto.QuotationResponse {
	return &dto.QuotationResponse{
		ID:             q.ID,
		OrganizationID: q.OrganizationID,
		OpportunityID:  q.OpportunityID,
		ClientID:       q.ClientID,
		Number:         q.Number,
		Date:           q.Date,
		Description:    q.Description,
		Quantity:       q.Quantity,
		UnitPrice:      q.UnitPrice,
		Subtotal:       q.Subtotal,
		Tax:            q.Tax,
		Total:          q.Total,
		ValidDays:      q.ValidDays,
		Status:         q.Status,
		CreatedAt:      q.CreatedAt,
	}
}
