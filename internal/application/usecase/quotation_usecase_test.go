package usecase_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitesgtech-app/crm-gtech-sub000/internal/application/dto"
	"github.com/sitesgtech-app/crm-gtech-sub000/internal/application/usecase"
	"github.com/sitesgtech-app/crm-gtech-sub000/internal/domain"
	"github.com/sitesgtech-app/crm-gtech-sub000/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memQuotations struct {
	items    map[string]*entity.Quotation
	counters map[string]int
	opps     *memOppsQ // para el filtro por dueño de ListByOrganization
}

func (m *memQuotations) Create(q *entity.Quotation) error {
	cp := *q
	m.items[q.ID] = &cp
	return nil
}

func (m *memQuotations) GetByID(id, orgID string) (*entity.Quotation, error) {
	q, ok := m.items[id]
	if !ok || q.OrganizationID != orgID {
		return nil, nil
	}
	cp := *q
	return &cp, nil
}

func (m *memQuotations) ListByOrganization(orgID, ownerID string, limit, offset int) ([]*entity.Quotation, error) {
	var out []*entity.Quotation
	for _, q := range m.items {
		if q.OrganizationID != orgID {
			continue
		}
		if ownerID != "" {
			opp := m.opps.items[q.OpportunityID]
			if opp == nil || opp.OwnerID != ownerID {
				continue
			}
		}
		cp := *q
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memQuotations) UpdateStatus(id, orgID, status string) error {
	if q, ok := m.items[id]; ok && q.OrganizationID == orgID {
		q.Status = status
	}
	return nil
}

func (m *memQuotations) NextNumber(orgID string) (int, error) {
	m.counters[orgID]++
	return m.counters[orgID], nil
}

type memOppsQ struct {
	items map[string]*entity.Opportunity
}

func (m *memOppsQ) Create(o *entity.Opportunity) error {
	cp := *o
	m.items[o.ID] = &cp
	return nil
}

func (m *memOppsQ) GetByID(id, orgID string) (*entity.Opportunity, error) {
	o, ok := m.items[id]
	if !ok || o.OrganizationID != orgID {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (m *memOppsQ) ListByOrganization(orgID, ownerID string, limit, offset int) ([]*entity.Opportunity, error) {
	return nil, nil
}

func (m *memOppsQ) Update(o *entity.Opportunity) error { return nil }

func (m *memOppsQ) SoftDelete(id, orgID string) error { return nil }

type memClientsQ struct {
	items map[string]*entity.Client
}

func (m *memClientsQ) Create(c *entity.Client) error { return nil }

func (m *memClientsQ) GetByID(id, orgID string) (*entity.Client, error) {
	c, ok := m.items[id]
	if !ok || c.OrganizationID != orgID {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (m *memClientsQ) GetByOrganizationAndNIT(orgID, nit string) (*entity.Client, error) {
	return nil, nil
}

func (m *memClientsQ) ListByOrganization(orgID string, limit, offset int) ([]*entity.Client, error) {
	return nil, nil
}

func (m *memClientsQ) Update(c *entity.Client) error { return nil }

func (m *memClientsQ) SoftDelete(id, orgID string) error { return nil }

type memOrgs struct {
	items map[string]*entity.Organization
}

func (m *memOrgs) Create(o *entity.Organization) error { return nil }

func (m *memOrgs) GetByID(id string) (*entity.Organization, error) {
	o, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (m *memOrgs) GetByNIT(nit string) (*entity.Organization, error) { return nil, nil }

type fakePDF struct {
	fail bool
}

func (f *fakePDF) Generate(q *entity.Quotation, client *entity.Client, org *entity.Organization) ([]byte, error) {
	if f.fail {
		return nil, errors.New("motor PDF caído")
	}
	return []byte("%PDF-1.7 " + q.Number), nil
}

// ── fixture ───────────────────────────────────────────────────────────────────

const (
	quoTestOrg    = "org-1"
	quoTestSeller = "user-v1"
	quoOppID      = "opp-1"
	quoClientID   = "client-1"
)

type quotationFixture struct {
	uc         *usecase.QuotationUseCase
	quotations *memQuotations
	pdf        *fakePDF
}

func newQuotationFixture() *quotationFixture {
	opps := &memOppsQ{items: map[string]*entity.Opportunity{
		quoOppID: {
			ID: quoOppID, OrganizationID: quoTestOrg, OwnerID: quoTestSeller,
			ClientID: quoClientID, Title: "Licencias ERP", Sector: "PRIVATE",
			Quantity:  decimal.NewFromInt(2),
			UnitCost:  decimal.NewFromInt(60),
			UnitPrice: decimal.NewFromInt(112),
			Amount:    decimal.NewFromInt(224),
			Status:    entity.StatusActive,
		},
	}}
	quotations := &memQuotations{items: map[string]*entity.Quotation{}, counters: map[string]int{}, opps: opps}
	clients := &memClientsQ{items: map[string]*entity.Client{
		quoClientID: {ID: quoClientID, OrganizationID: quoTestOrg, Name: "ACME S.A.", NIT: "1234567-8", Status: entity.StatusActive},
	}}
	orgs := &memOrgs{items: map[string]*entity.Organization{
		quoTestOrg: {ID: quoTestOrg, Name: "GTech"},
	}}
	pdf := &fakePDF{}
	uc := usecase.NewQuotationUseCase(quotations, opps, clients, orgs, pdf)
	return &quotationFixture{uc: uc, quotations: quotations, pdf: pdf}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestQuotationCreate_CongelaMontosYNumera(t *testing.T) {
	f := newQuotationFixture()

	out, err := f.uc.Create(quoTestOrg, quoTestSeller, false, dto.CreateQuotationRequest{
		OpportunityID: quoOppID,
	})
	require.NoError(t, err)

	assert.Equal(t, "COT-000001", out.Number)
	assert.Equal(t, entity.QuotationDraft, out.Status)
	assert.Equal(t, 15, out.ValidDays, "vigencia por defecto")
	assert.Equal(t, "Licencias ERP", out.Description, "descripción hereda el título del deal")
	assert.True(t, decimal.NewFromInt(224).Equal(out.Total))
	assert.True(t, decimal.NewFromInt(200).Equal(out.Subtotal.Round(2)), "subtotal sin IVA: %s", out.Subtotal)
	assert.True(t, decimal.NewFromInt(24).Equal(out.Tax.Round(2)), "IVA 12%%: %s", out.Tax)

	// El consecutivo avanza por organización.
	out2, err := f.uc.Create(quoTestOrg, quoTestSeller, false, dto.CreateQuotationRequest{
		OpportunityID: quoOppID,
	})
	require.NoError(t, err)
	assert.Equal(t, "COT-000002", out2.Number)
}

func TestQuotationCreate_VendedorNoEmiteSobreDealAjeno(t *testing.T) {
	f := newQuotationFixture()

	_, err := f.uc.Create(quoTestOrg, "user-v2", false, dto.CreateQuotationRequest{
		OpportunityID: quoOppID,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound,
		"deal de otro dueño es indistinguible de inexistente")

	// Admin sí puede emitir sobre cualquier deal de la organización.
	_, err = f.uc.Create(quoTestOrg, "user-admin", true, dto.CreateQuotationRequest{
		OpportunityID: quoOppID,
	})
	assert.NoError(t, err)
}

func TestQuotationUpdateStatus_EstadosFinalesNoSeMueven(t *testing.T) {
	f := newQuotationFixture()
	q, err := f.uc.Create(quoTestOrg, quoTestSeller, false, dto.CreateQuotationRequest{
		OpportunityID: quoOppID,
	})
	require.NoError(t, err)

	out, err := f.uc.UpdateStatus(q.ID, quoTestOrg, quoTestSeller, false, dto.UpdateQuotationStatusRequest{Status: entity.QuotationSent})
	require.NoError(t, err)
	assert.Equal(t, entity.QuotationSent, out.Status)

	_, err = f.uc.UpdateStatus(q.ID, quoTestOrg, quoTestSeller, false, dto.UpdateQuotationStatusRequest{Status: entity.QuotationAccepted})
	require.NoError(t, err)

	// Aceptada es final: ningún cambio posterior es válido.
	_, err = f.uc.UpdateStatus(q.ID, quoTestOrg, quoTestSeller, false, dto.UpdateQuotationStatusRequest{Status: entity.QuotationDraft})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestQuotationUpdateStatus_EstadoDesconocido(t *testing.T) {
	f := newQuotationFixture()
	q, err := f.uc.Create(quoTestOrg, quoTestSeller, false, dto.CreateQuotationRequest{
		OpportunityID: quoOppID,
	})
	require.NoError(t, err)

	_, err = f.uc.UpdateStatus(q.ID, quoTestOrg, quoTestSeller, false, dto.UpdateQuotationStatusRequest{Status: "archived"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestQuotationPDF_NombreDeArchivoYContenido(t *testing.T) {
	f := newQuotationFixture()
	q, err := f.uc.Create(quoTestOrg, quoTestSeller, false, dto.CreateQuotationRequest{
		OpportunityID: quoOppID,
	})
	require.NoError(t, err)

	name, content, err := f.uc.GeneratePDF(q.ID, quoTestOrg, quoTestSeller, false)
	require.NoError(t, err)
	assert.Equal(t, "COT-000001.pdf", name)
	assert.NotEmpty(t, content)
}

func TestQuotationPDF_CotizacionInexistente(t *testing.T) {
	f := newQuotationFixture()
	_, _, err := f.uc.GeneratePDF("no-existe", quoTestOrg, quoTestSeller, false)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── Alcance por dueño en lecturas ─────────────────────────────────────────────

func TestQuotationLecturas_VendedorNoAccedeCotizacionAjena(t *testing.T) {
	f := newQuotationFixture()
	q, err := f.uc.Create(quoTestOrg, quoTestSeller, false, dto.CreateQuotationRequest{
		OpportunityID: quoOppID,
	})
	require.NoError(t, err)

	// Otro vendedor de la misma organización: toda lectura responde como si la
	// cotización no existiera.
	_, err = f.uc.GetByID(q.ID, quoTestOrg, "user-v2", false)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, _, err = f.uc.GeneratePDF(q.ID, quoTestOrg, "user-v2", false)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.UpdateStatus(q.ID, quoTestOrg, "user-v2", false, dto.UpdateQuotationStatusRequest{Status: entity.QuotationSent})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// El dueño y el admin sí acceden.
	_, err = f.uc.GetByID(q.ID, quoTestOrg, quoTestSeller, false)
	assert.NoError(t, err)
	_, err = f.uc.GetByID(q.ID, quoTestOrg, "user-admin", true)
	assert.NoError(t, err)
}

func TestQuotationList_FiltraPorDuenoDeLaOportunidad(t *testing.T) {
	f := newQuotationFixture()
	_, err := f.uc.Create(quoTestOrg, quoTestSeller, false, dto.CreateQuotationRequest{
		OpportunityID: quoOppID,
	})
	require.NoError(t, err)

	mine, err := f.uc.List(quoTestOrg, quoTestSeller, false, 20, 0)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	others, err := f.uc.List(quoTestOrg, "user-v2", false, 20, 0)
	require.NoError(t, err)
	assert.Empty(t, others, "un vendedor no ve cotizaciones de deals ajenos")

	all, err := f.uc.List(quoTestOrg, "user-admin", true, 20, 0)
	require.NoError(t, err)
	assert.Len(t, all, 1, "admin ve toda la organización")
}
