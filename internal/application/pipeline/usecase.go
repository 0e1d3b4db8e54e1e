// Package pipeline implementa el controlador del pipeline de ventas: el único
// componente que muta el estado persistido de una oportunidad. Orquesta el
// motor de precios, el mapeo de etapas, la persistencia y las notificaciones.
package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sitesgtech-app/crm-gtech-sub000/internal/application/dto"
	"github.com/sitesgtech-app/crm-gtech-sub000/internal/domain"
	"github.com/sitesgtech-app/crm-gtech-sub000/internal/domain/entity"
	"github.com/sitesgtech-app/crm-gtech-sub000/internal/domain/pricing"
	"github.com/sitesgtech-app/crm-gtech-sub000/internal/domain/repository"
	"github.com/sitesgtech-app/crm-gtech-sub000/internal/domain/stage"
	"github.com/sitesgtech-app/crm-gtech-sub000/pkg/logger"
)

// UseCase casos de uso del pipeline de oportunidades.
type UseCase struct {
	tx         TxRunner
	opps       repository.OpportunityRepository
	clients    repository.ClientRepository
	activities repository.ActivityRepository
	notifier   Notifier
	log        *logger.Logger
}

// NewUseCase construye el controlador del pipeline.
func NewUseCase(
	tx TxRunner,
	opps repository.OpportunityRepository,
	clients repository.ClientRepository,
	activities repository.ActivityRepository,
	notifier Notifier,
	log *logger.Logger,
) *UseCase {
	return &UseCase{tx: tx, opps: opps, clients: clients, activities: activities, notifier: notifier, log: log}
}

// ── Create ────────────────────────────────────────────────────────────────────

// Create valida, resuelve el cliente (existente por ID o alta en línea dentro
// de la misma transacción), deriva precio/margen/monto con el motor de precios
// y persiste la oportunidad con la etapa inicial. La notificación al
// responsable es best-effort después del commit.
func (uc *UseCase) Create(ctx context.Context, actor Actor, in dto.CreateOpportunityRequest) (*dto.OpportunityResponse, error) {
	v := domain.NewValidation()
	if in.Title == "" {
		v.Add("title", "es requerido")
	}
	if in.ClientID == "" && in.Client == nil {
		v.Add("client_id", "se requiere client_id o client en línea")
	}
	if in.ClientID != "" && in.Client != nil {
		v.Add("client", "client_id y client en línea son excluyentes")
	}
	if in.Client != nil {
		if in.Client.Name == "" {
			v.Add("client.name", "es requerido")
		}
		if in.Client.NIT == "" {
			v.Add("client.nit", "es requerido")
		}
	}
	if in.Quantity.IsNegative() {
		v.Add("quantity", "no puede ser negativa")
	}
	if in.UnitCost.IsNegative() {
		v.Add("unit_cost", "no puede ser negativo")
	}
	if in.UnitPrice != nil && in.UnitPrice.IsNegative() {
		v.Add("unit_price", "no puede ser negativo")
	}
	if in.ProfitMargin != nil && in.ProfitMargin.IsNegative() {
		v.Add("profit_margin", "no puede ser negativo")
	}
	if in.Probability < 0 || in.Probability > 100 {
		v.Add("probability", "debe estar entre 0 y 100")
	}
	if v.HasErrors() {
		return nil, v
	}

	qty := in.Quantity
	if qty.LessThanOrEqual(decimal.Zero) {
		qty = decimal.NewFromInt(1)
	}
	unitPrice, margin := derivePricing(in.UnitCost, in.ProfitMargin, in.UnitPrice)
	amount := pricing.LineTotal(unitPrice, qty)

	now := time.Now()
	opp := &entity.Opportunity{
		ID:             uuid.New().String(),
		OrganizationID: actor.OrganizationID,
		OwnerID:        actor.UserID,
		Title:          in.Title,
		Stage:          string(stage.CreationDefault),
		Quantity:       qty,
		UnitCost:       in.UnitCost,
		UnitPrice:      unitPrice,
		ProfitMargin:   margin,
		Amount:         amount,
		Probability:    in.Probability,
		ExpectedClose:  in.ExpectedClose,
		Notes:          in.Notes,
		Status:         entity.StatusActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	// Alta en dos pasos dentro de UNA transacción: primero el cliente (si es
	// en línea), después la oportunidad. Si algo falla no queda estado a medias.
	err := uc.tx.RunPipeline(ctx, func(
		clientRepo repository.ClientRepository,
		oppRepo repository.OpportunityRepository,
		activityRepo repository.ActivityRepository,
	) error {
		client, err := uc.resolveClient(clientRepo, actor, in)
		if err != nil {
			return err
		}
		opp.ClientID = client.ID
		opp.Sector = string(resolveSector(in.Sector, client.Sector))

		if err := oppRepo.Create(opp); err != nil {
			return err
		}
		return activityRepo.Create(&entity.Activity{
			ID:             uuid.New().String(),
			OrganizationID: actor.OrganizationID,
			OpportunityID:  opp.ID,
			ClientID:       client.ID,
			UserID:         actor.UserID,
			Type:           entity.ActivityNote,
			Description:    "Oportunidad creada en etapa " + stage.Display(stage.CreationDefault),
			CreatedAt:      now,
		})
	})
	if err != nil {
		return nil, err
	}

	uc.notify(actor.OrganizationID, opp.OwnerID,
		"Nueva oportunidad", "Se creó la oportunidad \""+opp.Title+"\"",
		entity.NotificationDealCreated)

	return toResponse(opp), nil
}

// resolveClient devuelve el cliente referenciado o crea el cliente en línea.
// Corre dentro de la transacción del alta.
func (uc *UseCase) resolveClient(clientRepo repository.ClientRepository, actor Actor, in dto.CreateOpportunityRequest) (*entity.Client, error) {
	if in.ClientID != "" {
		client, err := clientRepo.GetByID(in.ClientID, actor.OrganizationID)
		if err != nil {
			return nil, err
		}
		if client == nil || client.Status != entity.StatusActive {
			return nil, domain.ErrNotFound
		}
		return client, nil
	}

	existing, err := clientRepo.GetByOrganizationAndNIT(actor.OrganizationID, in.Client.NIT)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	client := &entity.Client{
		ID:             uuid.New().String(),
		OrganizationID: actor.OrganizationID,
		Name:           in.Client.Name,
		Company:        in.Client.Company,
		NIT:            in.Client.NIT,
		Email:          in.Client.Email,
		Phone:          in.Client.Phone,
		Address:        in.Client.Address,
		Sector:         string(pricing.ParseSector(in.Client.Sector)),
		Status:         entity.StatusActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := clientRepo.Create(client); err != nil {
		return nil, err
	}
	return client, nil
}

// ── Update ────────────────────────────────────────────────────────────────────

// Update aplica una actualización read-modify-write sobre el registro actual.
// La etapa persistida NUNCA cambia por esta vía: solo ChangeStage la mueve.
// Los campos monetarios derivados se recalculan siempre.
func (uc *UseCase) Update(ctx context.Context, actor Actor, id string, in dto.UpdateOpportunityRequest) (*dto.OpportunityResponse, error) {
	opp, err := uc.getScoped(id, actor)
	if err != nil {
		return nil, err
	}

	v := domain.NewValidation()
	if in.Title != nil {
		if *in.Title == "" {
			v.Add("title", "no puede quedar vacío")
		} else {
			opp.Title = *in.Title
		}
	}
	if in.ClientID != nil {
		client, err := uc.clients.GetByID(*in.ClientID, actor.OrganizationID)
		if err != nil {
			return nil, err
		}
		if client == nil || client.Status != entity.StatusActive {
			v.Add("client_id", "cliente no encontrado")
		} else {
			opp.ClientID = client.ID
		}
	}
	if in.Sector != nil {
		opp.Sector = string(pricing.ParseSector(*in.Sector))
	}
	if in.Quantity != nil {
		if in.Quantity.IsNegative() {
			v.Add("quantity", "no puede ser negativa")
		} else {
			opp.Quantity = *in.Quantity
			if opp.Quantity.LessThanOrEqual(decimal.Zero) {
				opp.Quantity = decimal.NewFromInt(1)
			}
		}
	}
	if in.UnitCost != nil {
		if in.UnitCost.IsNegative() {
			v.Add("unit_cost", "no puede ser negativo")
		} else {
			opp.UnitCost = *in.UnitCost
		}
	}
	if in.UnitPrice != nil && in.UnitPrice.IsNegative() {
		v.Add("unit_price", "no puede ser negativo")
	}
	if in.ProfitMargin != nil && in.ProfitMargin.IsNegative() {
		v.Add("profit_margin", "no puede ser negativo")
	}
	if in.Probability != nil {
		if *in.Probability < 0 || *in.Probability > 100 {
			v.Add("probability", "debe estar entre 0 y 100")
		} else {
			opp.Probability = *in.Probability
		}
	}
	if in.OwnerID != nil && *in.OwnerID != opp.OwnerID {
		if !actor.IsAdmin() {
			return nil, domain.ErrForbidden
		}
		opp.OwnerID = *in.OwnerID
	}
	if v.HasErrors() {
		return nil, v
	}
	if in.ExpectedClose != nil {
		opp.ExpectedClose = in.ExpectedClose
	}
	if in.Notes != nil {
		opp.Notes = *in.Notes
	}

	// Recalcular derivados: el último campo editado por el usuario manda.
	switch {
	case in.ProfitMargin != nil:
		opp.ProfitMargin = *in.ProfitMargin
		opp.UnitPrice = pricing.PriceFromCostAndMargin(opp.UnitCost, opp.ProfitMargin)
	case in.UnitPrice != nil:
		opp.UnitPrice = *in.UnitPrice
		opp.ProfitMargin = pricing.MarginFromCostAndPrice(opp.UnitCost, opp.UnitPrice)
	default:
		opp.UnitPrice = pricing.PriceFromCostAndMargin(opp.UnitCost, opp.ProfitMargin)
	}
	opp.Amount = pricing.LineTotal(opp.UnitPrice, opp.Quantity)
	opp.UpdatedAt = time.Now()

	if err := uc.opps.Update(opp); err != nil {
		return nil, err
	}
	return toResponse(opp), nil
}

// ── ChangeStage ───────────────────────────────────────────────────────────────

// ChangeStage mueve la oportunidad a otra etapa. Acepta etiqueta de Kanban o
// código de persistencia; entradas desconocidas se rechazan con error de
// validación (el mapeo sigue siendo total; la anomalía se registra aquí).
// Mover a Perdida exige un motivo, que se anexa a las notas con fecha.
func (uc *UseCase) ChangeStage(ctx context.Context, actor Actor, id string, in dto.ChangeStageRequest) (*dto.OpportunityResponse, error) {
	opp, err := uc.getScoped(id, actor)
	if err != nil {
		return nil, err
	}

	newStage, ok := stage.FromDisplay(in.Stage)
	if !ok {
		uc.log.Warn().
			Str("opportunity_id", id).
			Str("stage_input", in.Stage).
			Msg("etapa no reconocida")
		return nil, domain.NewValidation().Add("stage", "etapa no reconocida")
	}

	if newStage == stage.ClosedLost && in.Reason == "" {
		return nil, domain.NewValidation().Add("reason", "el motivo es obligatorio al marcar como perdida")
	}

	current := stage.Stage(opp.Stage)
	if current == newStage {
		return toResponse(opp), nil // no-op
	}
	if !stage.CanTransition(current, newStage) {
		return nil, domain.ErrConflict
	}

	now := time.Now()
	opp.Stage = string(newStage)
	if newStage == stage.ClosedLost {
		note := "[" + now.Format("2006-01-02 15:04") + "] " + stage.DisplayLost + ": " + in.Reason
		if opp.Notes != "" {
			opp.Notes += "\n"
		}
		opp.Notes += note
	}
	opp.UpdatedAt = now

	if err := uc.opps.Update(opp); err != nil {
		return nil, err
	}

	// Bitácora del movimiento; si falla no revierte el cambio de etapa.
	if err := uc.activities.Create(&entity.Activity{
		ID:             uuid.New().String(),
		OrganizationID: actor.OrganizationID,
		OpportunityID:  opp.ID,
		ClientID:       opp.ClientID,
		UserID:         actor.UserID,
		Type:           entity.ActivityStage,
		Description:    stage.Display(current) + " → " + stage.Display(newStage),
		CreatedAt:      now,
	}); err != nil {
		uc.log.Error().Err(err).Str("opportunity_id", opp.ID).Msg("registrar actividad de etapa")
	}

	uc.notify(actor.OrganizationID, opp.OwnerID,
		"Cambio de etapa",
		"\""+opp.Title+"\" pasó a "+stage.Display(newStage),
		entity.NotificationStageChanged)

	return toResponse(opp), nil
}

// ── Delete / Get / List ───────────────────────────────────────────────────────

// Delete marca la oportunidad como eliminada (borrado lógico). El borrado duro
// rompería el historial de actividades y cotizaciones que referencian el ID.
func (uc *UseCase) Delete(ctx context.Context, actor Actor, id string) error {
	opp, err := uc.getScoped(id, actor)
	if err != nil {
		return err
	}
	return uc.opps.SoftDelete(opp.ID, actor.OrganizationID)
}

// Get devuelve una oportunidad del alcance del actor.
func (uc *UseCase) Get(ctx context.Context, actor Actor, id string) (*dto.OpportunityResponse, error) {
	opp, err := uc.getScoped(id, actor)
	if err != nil {
		return nil, err
	}
	return toResponse(opp), nil
}

// Breakdown devuelve el desglose de utilidad de la oportunidad.
func (uc *UseCase) Breakdown(ctx context.Context, actor Actor, id string) (*pricing.Breakdown, error) {
	opp, err := uc.getScoped(id, actor)
	if err != nil {
		return nil, err
	}
	b := pricing.ProfitBreakdown(opp.Amount, opp.UnitCost, opp.Quantity, pricing.Sector(opp.Sector))
	return &b, nil
}

// List devuelve las oportunidades activas visibles para el actor: toda la
// organización si es admin, solo las propias si no. Esta regla de alcance vale
// para toda lectura del sistema.
func (uc *UseCase) List(ctx context.Context, actor Actor, limit, offset int) (*dto.OpportunityListResponse, error) {
	ownerScope := actor.UserID
	if actor.IsAdmin() {
		ownerScope = ""
	}
	list, err := uc.opps.ListByOrganization(actor.OrganizationID, ownerScope, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OpportunityResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toResponse(o))
	}
	return &dto.OpportunityListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

// getScoped lee la oportunidad aplicando el alcance del actor. Un registro de
// otra organización o de otro dueño (si no es admin) responde ErrNotFound para
// no filtrar su existencia.
func (uc *UseCase) getScoped(id string, actor Actor) (*entity.Opportunity, error) {
	opp, err := uc.opps.GetByID(id, actor.OrganizationID)
	if err != nil {
		return nil, err
	}
	if opp == nil || opp.Status != entity.StatusActive {
		return nil, domain.ErrNotFound
	}
	if !actor.IsAdmin() && opp.OwnerID != actor.UserID {
		return nil, domain.ErrNotFound
	}
	return opp, nil
}

// derivePricing decide el campo autoritativo (margen o precio) y deriva el
// otro. Sin ninguno de los dos, el margen es 0 y el precio es costo + IVA.
func derivePricing(cost decimal.Decimal, marginIn, priceIn *decimal.Decimal) (unitPrice, margin decimal.Decimal) {
	switch {
	case marginIn != nil:
		margin = *marginIn
		unitPrice = pricing.PriceFromCostAndMargin(cost, margin)
	case priceIn != nil:
		unitPrice = *priceIn
		margin = pricing.MarginFromCostAndPrice(cost, unitPrice)
	default:
		margin = decimal.Zero
		unitPrice = pricing.PriceFromCostAndMargin(cost, margin)
	}
	return unitPrice, margin
}

func resolveSector(requested, clientSector string) pricing.Sector {
	if requested != "" {
		return pricing.ParseSector(requested)
	}
	return pricing.ParseSector(clientSector)
}

// notify envía el aviso al responsable. Best-effort: cualquier error se
// registra y se descarta.
func (uc *UseCase) notify(organizationID, userID, title, message, kind string) {
	if uc.notifier == nil {
		return
	}
	if err := uc.notifier.Notify(organizationID, userID, title, message, kind); err != nil {
		uc.log.Warn().Err(err).Str("user_id", userID).Msg("notificación fallida")
	}
}

func toResponse(o *entity.Opportunity) *dto.OpportunityResponse {
	if o == nil {
		return nil
	}
	return &dto.OpportunityResponse{
		ID:             o.ID,
		OrganizationID: o.OrganizationID,
		OwnerID:        o.OwnerID,
		ClientID:       o.ClientID,
		Title:          o.Title,
		Stage:          o.Stage,
		StageDisplay:   stage.Display(stage.Stage(o.Stage)),
		Sector:         o.Sector,
		Quantity:       o.Quantity,
		UnitCost:       o.UnitCost,
		UnitPrice:      o.UnitPrice,
		ProfitMargin:   o.ProfitMargin,
		Amount:         o.Amount,
		Probability:    o.Probability,
		ExpectedClose:  o.ExpectedClose,
		Notes:          o.Notes,
		Status:         o.Status,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}
