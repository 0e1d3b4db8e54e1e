package pipeline_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitesgtech-app/crm-gtech-sub000/internal/application/dto"
	"github.com/sitesgtech-app/crm-gtech-sub000/internal/application/pipeline"
	"github.com/sitesgtech-app/crm-gtech-sub000/internal/domain"
	"github.com/sitesgtech-app/crm-gtech-sub000/internal/domain/entity"
	"github.com/sitesgtech-app/crm-gtech-sub000/internal/domain/repository"
	"github.com/sitesgtech-app/crm-gtech-sub000/internal/domain/stage"
	"github.com/sitesgtech-app/crm-gtech-sub000/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria. El txRunner simula rollback restaurando un snapshot de los
// stores si la función falla, para poder probar que el alta en dos pasos
// (cliente en línea + oportunidad) no deja estado a medias.
// ──────────────────────────────────────────────────────────────────────────────

type memClients struct {
	items      map[string]*entity.Client
	failCreate bool
}

func (m *memClients) Create(c *entity.Client) error {
	if m.failCreate {
		return errors.New("db caída")
	}
	cp := *c
	m.items[c.ID] = &cp
	return nil
}

func (m *memClients) GetByID(id, orgID string) (*entity.Client, error) {
	c, ok := m.items[id]
	if !ok || c.OrganizationID != orgID {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (m *memClients) GetByOrganizationAndNIT(orgID, nit string) (*entity.Client, error) {
	for _, c := range m.items {
		if c.OrganizationID == orgID && c.NIT == nit {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memClients) ListByOrganization(orgID string, limit, offset int) ([]*entity.Client, error) {
	var out []*entity.Client
	for _, c := range m.items {
		if c.OrganizationID == orgID && c.Status == entity.StatusActive {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memClients) Update(c *entity.Client) error {
	cp := *c
	m.items[c.ID] = &cp
	return nil
}

func (m *memClients) SoftDelete(id, orgID string) error {
	if c, ok := m.items[id]; ok && c.OrganizationID == orgID {
		c.Status = entity.StatusDeleted
	}
	return nil
}

type memOpps struct {
	items      map[string]*entity.Opportunity
	failCreate bool
}

func (m *memOpps) Create(o *entity.Opportunity) error {
	if m.failCreate {
		return errors.New("db caída")
	}
	cp := *o
	m.items[o.ID] = &cp
	return nil
}

func (m *memOpps) GetByID(id, orgID string) (*entity.Opportunity, error) {
	o, ok := m.items[id]
	if !ok || o.OrganizationID != orgID {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (m *memOpps) ListByOrganization(orgID, ownerID string, limit, offset int) ([]*entity.Opportunity, error) {
	var out []*entity.Opportunity
	for _, o := range m.items {
		if o.OrganizationID != orgID || o.Status != entity.StatusActive {
			continue
		}
		if ownerID != "" && o.OwnerID != ownerID {
			continue
		}
		cp := *o
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memOpps) Update(o *entity.Opportunity) error {
	cp := *o
	m.items[o.ID] = &cp
	return nil
}

func (m *memOpps) SoftDelete(id, orgID string) error {
	if o, ok := m.items[id]; ok && o.OrganizationID == orgID {
		o.Status = entity.StatusDeleted
	}
	return nil
}

type memActivities struct {
	items []*entity.Activity
}

func (m *memActivities) Create(a *entity.Activity) error {
	cp := *a
	m.items = append(m.items, &cp)
	return nil
}

func (m *memActivities) ListByOpportunity(oppID, orgID string, limit, offset int) ([]*entity.Activity, error) {
	var out []*entity.Activity
	for _, a := range m.items {
		if a.OpportunityID == oppID && a.OrganizationID == orgID {
			out = append(out, a)
		}
	}
	return out, nil
}

type memTx struct {
	clients    *memClients
	opps       *memOpps
	activities *memActivities
}

func (t *memTx) RunPipeline(ctx context.Context, fn func(
	clientRepo repository.ClientRepository,
	oppRepo repository.OpportunityRepository,
	activityRepo repository.ActivityRepository,
) error) error {
	// snapshot para simular rollback
	clientSnap := make(map[string]*entity.Client, len(t.clients.items))
	for k, v := range t.clients.items {
		cp := *v
		clientSnap[k] = &cp
	}
	oppSnap := make(map[string]*entity.Opportunity, len(t.opps.items))
	for k, v := range t.opps.items {
		cp := *v
		oppSnap[k] = &cp
	}
	actSnap := append([]*entity.Activity(nil), t.activities.items...)

	if err := fn(t.clients, t.opps, t.activities); err != nil {
		t.clients.items = clientSnap
		t.opps.items = oppSnap
		t.activities.items = actSnap
		return err
	}
	return nil
}

type memNotifier struct {
	sent []string // "userID|title"
	fail bool
}

func (n *memNotifier) Notify(orgID, userID, title, message, kind string) error {
	if n.fail {
		return errors.New("smtp caído")
	}
	n.sent = append(n.sent, userID+"|"+title)
	return nil
}

// ── fixture ───────────────────────────────────────────────────────────────────

const (
	testOrg   = "org-1"
	otherOrg  = "org-2"
	admin1    = "user-admin"
	seller1   = "user-v1"
	seller2   = "user-v2"
	clientID1 = "client-1"
)

type fixture struct {
	uc         *pipeline.UseCase
	clients    *memClients
	opps       *memOpps
	activities *memActivities
	notifier   *memNotifier
}

func newFixture() *fixture {
	clients := &memClients{items: map[string]*entity.Client{
		clientID1: {
			ID: clientID1, OrganizationID: testOrg, Name: "ACME S.A.",
			NIT: "1234567-8", Sector: "PRIVATE", Status: entity.StatusActive,
		},
	}}
	opps := &memOpps{items: map[string]*entity.Opportunity{}}
	activities := &memActivities{}
	notifier := &memNotifier{}
	tx := &memTx{clients: clients, opps: opps, activities: activities}
	uc := pipeline.NewUseCase(tx, opps, clients, activities, notifier, logger.Nop())
	return &fixture{uc: uc, clients: clients, opps: opps, activities: activities, notifier: notifier}
}

func sellerActor() pipeline.Actor {
	return pipeline.Actor{UserID: seller1, OrganizationID: testOrg, Role: entity.RoleVendedor}
}

func adminActor() pipeline.Actor {
	return pipeline.Actor{UserID: admin1, OrganizationID: testOrg, Role: entity.RoleAdmin}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// ── Create ────────────────────────────────────────────────────────────────────

func TestCreate_DerivaPrecioYMonto(t *testing.T) {
	f := newFixture()

	out, err := f.uc.Create(context.Background(), sellerActor(), dto.CreateOpportunityRequest{
		Title:        "Licencias ERP",
		ClientID:     clientID1,
		Quantity:     dec("10"),
		UnitCost:     dec("1000"),
		ProfitMargin: decPtr("20"),
	})
	require.NoError(t, err)

	assert.Equal(t, string(stage.CreationDefault), out.Stage, "la etapa inicial es Contactado")
	assert.Equal(t, stage.DisplayContacted, out.StageDisplay)
	assert.Equal(t, seller1, out.OwnerID)
	assert.True(t, dec("1400").Equal(out.UnitPrice.Round(2)), "precio: %s", out.UnitPrice)
	assert.True(t, dec("14000").Equal(out.Amount.Round(2)), "monto = precio*cantidad: %s", out.Amount)
	assert.Len(t, f.notifier.sent, 1, "el alta notifica al responsable")
}

func TestCreate_CantidadCeroSeVuelveUno(t *testing.T) {
	f := newFixture()
	out, err := f.uc.Create(context.Background(), sellerActor(), dto.CreateOpportunityRequest{
		Title:     "Consultoría",
		ClientID:  clientID1,
		UnitPrice: decPtr("500"),
	})
	require.NoError(t, err)
	assert.True(t, dec("1").Equal(out.Quantity))
	assert.True(t, dec("500").Equal(out.Amount))
}

func TestCreate_ValidacionConDetallePorCampo(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Create(context.Background(), sellerActor(), dto.CreateOpportunityRequest{
		Quantity: dec("-1"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	fields := make(map[string]bool)
	for _, fe := range vErr.Fields {
		fields[fe.Field] = true
	}
	assert.True(t, fields["title"])
	assert.True(t, fields["client_id"])
	assert.True(t, fields["quantity"])
}

func TestCreate_ClienteEnLinea_TransaccionCompleta(t *testing.T) {
	f := newFixture()
	out, err := f.uc.Create(context.Background(), sellerActor(), dto.CreateOpportunityRequest{
		Title: "Obra municipal",
		Client: &dto.CreateClientRequest{
			Name: "Municipalidad", NIT: "555555-1", Sector: "Government",
		},
		Quantity:     dec("1"),
		UnitCost:     dec("20000"),
		ProfitMargin: decPtr("30"),
	})
	require.NoError(t, err)

	assert.Equal(t, "GOVERNMENT", out.Sector, "el sector hereda del cliente en línea")
	created, _ := f.clients.GetByOrganizationAndNIT(testOrg, "555555-1")
	require.NotNil(t, created, "el cliente en línea quedó persistido")
	assert.Equal(t, created.ID, out.ClientID)
}

// TestCreate_FalloEnDeal_NoDejaClienteHuerfano: si la persistencia de la
// oportunidad falla después de crear el cliente en línea, el rollback de la
// transacción elimina también al cliente.
func TestCreate_FalloEnDeal_NoDejaClienteHuerfano(t *testing.T) {
	f := newFixture()
	f.opps.failCreate = true

	_, err := f.uc.Create(context.Background(), sellerActor(), dto.CreateOpportunityRequest{
		Title:  "Venta fallida",
		Client: &dto.CreateClientRequest{Name: "Nuevo", NIT: "999999-9"},
	})
	require.Error(t, err)

	orphan, _ := f.clients.GetByOrganizationAndNIT(testOrg, "999999-9")
	assert.Nil(t, orphan, "no debe quedar cliente huérfano")
	assert.Empty(t, f.opps.items)
	assert.Empty(t, f.notifier.sent, "sin commit no hay notificación")
}

func TestCreate_ClienteInexistente(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Create(context.Background(), sellerActor(), dto.CreateOpportunityRequest{
		Title:    "Sin cliente",
		ClientID: "no-existe",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate_NotificacionFallidaNoFallaElAlta(t *testing.T) {
	f := newFixture()
	f.notifier.fail = true
	_, err := f.uc.Create(context.Background(), sellerActor(), dto.CreateOpportunityRequest{
		Title:    "Venta",
		ClientID: clientID1,
	})
	assert.NoError(t, err, "la notificación es best-effort")
}

// ── ChangeStage ───────────────────────────────────────────────────────────────

func createDeal(t *testing.T, f *fixture, actor pipeline.Actor) *dto.OpportunityResponse {
	t.Helper()
	out, err := f.uc.Create(context.Background(), actor, dto.CreateOpportunityRequest{
		Title:        "Deal",
		ClientID:     clientID1,
		Quantity:     dec("2"),
		UnitCost:     dec("100"),
		ProfitMargin: decPtr("25"),
	})
	require.NoError(t, err)
	return out
}

func TestChangeStage_PerdidaSinMotivoFalla(t *testing.T) {
	f := newFixture()
	deal := createDeal(t, f, sellerActor())

	_, err := f.uc.ChangeStage(context.Background(), sellerActor(), deal.ID,
		dto.ChangeStageRequest{Stage: stage.DisplayLost})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestChangeStage_PerdidaConMotivoAnexaNota(t *testing.T) {
	f := newFixture()
	deal := createDeal(t, f, sellerActor())

	out, err := f.uc.ChangeStage(context.Background(), sellerActor(), deal.ID,
		dto.ChangeStageRequest{Stage: stage.DisplayLost, Reason: "precio muy alto"})
	require.NoError(t, err)

	assert.Equal(t, string(stage.ClosedLost), out.Stage)
	assert.Contains(t, out.Notes, "precio muy alto")
	assert.Contains(t, out.Notes, stage.DisplayLost)
}

func TestChangeStage_AceptaEtiquetaYCodigo(t *testing.T) {
	f := newFixture()
	deal := createDeal(t, f, sellerActor())

	out, err := f.uc.ChangeStage(context.Background(), sellerActor(), deal.ID,
		dto.ChangeStageRequest{Stage: stage.DisplayProposal})
	require.NoError(t, err)
	assert.Equal(t, string(stage.Proposal), out.Stage)

	out, err = f.uc.ChangeStage(context.Background(), sellerActor(), deal.ID,
		dto.ChangeStageRequest{Stage: "NEGOTIATION"})
	require.NoError(t, err)
	assert.Equal(t, string(stage.Negotiation), out.Stage)
}

func TestChangeStage_TransicionInvalida(t *testing.T) {
	f := newFixture()
	deal := createDeal(t, f, sellerActor())

	// Contactado → Ganada no está permitido (falta propuesta).
	_, err := f.uc.ChangeStage(context.Background(), sellerActor(), deal.ID,
		dto.ChangeStageRequest{Stage: stage.DisplayWon})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestChangeStage_EntradaDesconocidaEsRechazada(t *testing.T) {
	f := newFixture()
	deal := createDeal(t, f, sellerActor())

	// "cerrada" no es etiqueta ni código: se rechaza con validación en vez de
	// caer silenciosamente en otra etapa.
	_, err := f.uc.ChangeStage(context.Background(), sellerActor(), deal.ID,
		dto.ChangeStageRequest{Stage: "cerrada"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := f.uc.Get(context.Background(), sellerActor(), deal.ID)
	require.NoError(t, err)
	assert.Equal(t, string(stage.CreationDefault), got.Stage, "la etapa no debe moverse")
}

func TestChangeStage_RegistraActividadYNotifica(t *testing.T) {
	f := newFixture()
	deal := createDeal(t, f, sellerActor())
	f.notifier.sent = nil

	_, err := f.uc.ChangeStage(context.Background(), sellerActor(), deal.ID,
		dto.ChangeStageRequest{Stage: stage.DisplayProposal})
	require.NoError(t, err)

	acts, _ := f.activities.ListByOpportunity(deal.ID, testOrg, 100, 0)
	var stageActs int
	for _, a := range acts {
		if a.Type == entity.ActivityStage {
			stageActs++
			assert.Contains(t, a.Description, stage.DisplayProposal)
		}
	}
	assert.Equal(t, 1, stageActs, "cada movimiento deja exactamente una entrada")
	require.Len(t, f.notifier.sent, 1)
	assert.True(t, strings.HasPrefix(f.notifier.sent[0], seller1+"|"))
}

// ── Update ────────────────────────────────────────────────────────────────────

func TestUpdate_NoTocaLaEtapa(t *testing.T) {
	f := newFixture()
	deal := createDeal(t, f, sellerActor())

	_, err := f.uc.ChangeStage(context.Background(), sellerActor(), deal.ID,
		dto.ChangeStageRequest{Stage: stage.DisplayNegotiation})
	require.NoError(t, err)

	title := "Deal renombrado"
	out, err := f.uc.Update(context.Background(), sellerActor(), deal.ID,
		dto.UpdateOpportunityRequest{Title: &title})
	require.NoError(t, err)

	assert.Equal(t, string(stage.Negotiation), out.Stage,
		"una edición de campos nunca debe resetear la etapa")
	assert.Equal(t, "Deal renombrado", out.Title)
}

func TestUpdate_RecalculaDerivados(t *testing.T) {
	f := newFixture()
	deal := createDeal(t, f, sellerActor())

	out, err := f.uc.Update(context.Background(), sellerActor(), deal.ID,
		dto.UpdateOpportunityRequest{
			UnitCost:     decPtr("1000"),
			ProfitMargin: decPtr("20"),
			Quantity:     decPtr("5"),
		})
	require.NoError(t, err)
	assert.True(t, dec("1400").Equal(out.UnitPrice.Round(2)))
	assert.True(t, dec("7000").Equal(out.Amount.Round(2)))

	// Ahora el usuario edita el precio: el margen se rederiva.
	out, err = f.uc.Update(context.Background(), sellerActor(), deal.ID,
		dto.UpdateOpportunityRequest{UnitPrice: decPtr("1400")})
	require.NoError(t, err)
	assert.True(t, out.ProfitMargin.Sub(dec("20")).Abs().LessThan(dec("0.0001")),
		"margen rederivado: %s", out.ProfitMargin)
}

func TestUpdate_ReasignacionSoloAdmin(t *testing.T) {
	f := newFixture()
	deal := createDeal(t, f, sellerActor())

	owner := seller2
	_, err := f.uc.Update(context.Background(), sellerActor(), deal.ID,
		dto.UpdateOpportunityRequest{OwnerID: &owner})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	out, err := f.uc.Update(context.Background(), adminActor(), deal.ID,
		dto.UpdateOpportunityRequest{OwnerID: &owner})
	require.NoError(t, err)
	assert.Equal(t, seller2, out.OwnerID)
}

// ── Alcance (list/get/delete) ─────────────────────────────────────────────────

func TestList_VendedorSoloVeLoSuyo(t *testing.T) {
	f := newFixture()
	createDeal(t, f, sellerActor())
	createDeal(t, f, pipeline.Actor{UserID: seller2, OrganizationID: testOrg, Role: entity.RoleVendedor})

	mine, err := f.uc.List(context.Background(), sellerActor(), 20, 0)
	require.NoError(t, err)
	require.Len(t, mine.Items, 1)
	for _, o := range mine.Items {
		assert.Equal(t, seller1, o.OwnerID,
			"un no-admin jamás ve registros de otro dueño")
	}

	all, err := f.uc.List(context.Background(), adminActor(), 20, 0)
	require.NoError(t, err)
	assert.Len(t, all.Items, 2, "admin ve toda la organización")
}

func TestGet_OtroDuenoResponde404(t *testing.T) {
	f := newFixture()
	deal := createDeal(t, f, sellerActor())

	other := pipeline.Actor{UserID: seller2, OrganizationID: testOrg, Role: entity.RoleVendedor}
	_, err := f.uc.Get(context.Background(), other, deal.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound,
		"acceso fuera de alcance es indistinguible de inexistente")
}

func TestGet_OtraOrganizacionResponde404(t *testing.T) {
	f := newFixture()
	deal := createDeal(t, f, sellerActor())

	foreign := pipeline.Actor{UserID: admin1, OrganizationID: otherOrg, Role: entity.RoleAdmin}
	_, err := f.uc.Get(context.Background(), foreign, deal.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete_EsLogicoYListaLoExcluye(t *testing.T) {
	f := newFixture()
	deal := createDeal(t, f, sellerActor())

	require.NoError(t, f.uc.Delete(context.Background(), sellerActor(), deal.ID))

	list, err := f.uc.List(context.Background(), sellerActor(), 20, 0)
	require.NoError(t, err)
	assert.Empty(t, list.Items)

	// El registro sigue existiendo con status deleted (historial intacto).
	raw := f.opps.items[deal.ID]
	require.NotNil(t, raw)
	assert.Equal(t, entity.StatusDeleted, raw.Status)

	_, err = f.uc.Get(context.Background(), sellerActor(), deal.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── Breakdown ─────────────────────────────────────────────────────────────────

func TestBreakdown_UsaSectorDeLaOportunidad(t *testing.T) {
	f := newFixture()
	deal := createDeal(t, f, sellerActor())

	b, err := f.uc.Breakdown(context.Background(), sellerActor(), deal.ID)
	require.NoError(t, err)
	assert.True(t, b.CashReceived.Equal(deal.Amount), "sector privado recibe el monto completo")
	assert.True(t, b.TaxRetention.IsZero())
}
