package usecase_test

import (
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

type memProducts struct {
	items map[string]*entity.Product
}

func (m *memProducts) Create(p *entity.Product) error {
	cp := *p
	m.items[p.ID] = &cp
	return nil
}

func (m *memProducts) GetByID(id, orgID string) (*entity.Product, error) {
	p, ok := m.items[id]
	if !ok || p.OrganizationID != orgID {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *memProducts) GetByOrganizationAndSKU(orgID, sku string) (*entity.Product, error) {
	for _, p := range m.items {
		if p.OrganizationID == orgID && p.SKU == sku && p.Status == entity.StatusActive {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memProducts) ListByOrganization(orgID string, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range m.items {
		if p.OrganizationID == orgID && p.Status == entity.StatusActive {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memProducts) Update(p *entity.Product) error {
	cp := *p
	m.items[p.ID] = &cp
	return nil
}

func (m *memProducts) SoftDelete(id, orgID string) error {
	if p, ok := m.items[id]; ok && p.OrganizationID == orgID {
		p.Status = entity.StatusDeleted
	}
	return nil
}

type memMovements struct {
	items []*entity.StockMovement
}

func (m *memMovements) Create(mov *entity.StockMovement) error {
	cp := *mov
	m.items = append(m.items, &cp)
	return nil
}

func (m *memMovements) ListByProduct(productID, orgID string, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, mov := range m.items {
		if mov.ProductID == productID && mov.OrganizationID == orgID {
			out = append(out, mov)
		}
	}
	return out, nil
}

const (
	prodTestOrg  = "org-1"
	prodTestUser = "user-1"
)

func newProductFixture() (*usecase.ProductUseCase, *memProducts, *memMovements) {
	products := &memProducts{items: map[string]*entity.Product{}}
	movements := &memMovements{}
	return usecase.NewProductUseCase(products, movements), products, movements
}

func pdec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestProductCreate_SKUDuplicadoFalla(t *testing.T) {
	uc, _, _ := newProductFixture()

	_, err := uc.Create(prodTestOrg, dto.CreateProductRequest{SKU: "LIC-001", Name: "Licencia"})
	require.NoError(t, err)

	_, err = uc.Create(prodTestOrg, dto.CreateProductRequest{SKU: "LIC-001", Name: "Otra licencia"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductCreate_StockIniciaEnCero(t *testing.T) {
	uc, _, _ := newProductFixture()

	out, err := uc.Create(prodTestOrg, dto.CreateProductRequest{
		SKU: "LIC-002", Name: "Licencia", Price: pdec("100"), Cost: pdec("60"),
	})
	require.NoError(t, err)
	assert.True(t, out.Stock.IsZero())
}

func TestMovimiento_EntradaYSalidaActualizanStock(t *testing.T) {
	uc, _, movements := newProductFixture()
	p, err := uc.Create(prodTestOrg, dto.CreateProductRequest{SKU: "HW-01", Name: "Router"})
	require.NoError(t, err)

	out, err := uc.RegisterMovement(prodTestOrg, prodTestUser, p.ID, dto.RegisterMovementRequest{
		Type: entity.MovementIn, Quantity: pdec("10"), Reference: "compra #44",
	})
	require.NoError(t, err)
	assert.True(t, pdec("10").Equal(out.Stock))

	out, err = uc.RegisterMovement(prodTestOrg, prodTestUser, p.ID, dto.RegisterMovementRequest{
		Type: entity.MovementOut, Quantity: pdec("4"),
	})
	require.NoError(t, err)
	assert.True(t, pdec("6").Equal(out.Stock))

	// Cada movimiento queda en el historial con el usuario que lo hizo.
	list, err := uc.ListMovements(prodTestOrg, p.ID, 20, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, prodTestUser, list[0].UserID)
	require.Len(t, movements.items, 2)
}

func TestMovimiento_SalidaSinStockFalla(t *testing.T) {
	uc, _, _ := newProductFixture()
	p, err := uc.Create(prodTestOrg, dto.CreateProductRequest{SKU: "HW-02", Name: "Switch"})
	require.NoError(t, err)

	_, err = uc.RegisterMovement(prodTestOrg, prodTestUser, p.ID, dto.RegisterMovementRequest{
		Type: entity.MovementOut, Quantity: pdec("1"),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// El stock no debe haber cambiado.
	got, err := uc.GetByID(p.ID, prodTestOrg)
	require.NoError(t, err)
	assert.True(t, got.Stock.IsZero())
}

func TestMovimiento_TipoYCantidadInvalidos(t *testing.T) {
	uc, _, _ := newProductFixture()
	p, err := uc.Create(prodTestOrg, dto.CreateProductRequest{SKU: "HW-03", Name: "AP"})
	require.NoError(t, err)

	_, err = uc.RegisterMovement(prodTestOrg, prodTestUser, p.ID, dto.RegisterMovementRequest{
		Type: "TRANSFER", Quantity: pdec("1"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RegisterMovement(prodTestOrg, prodTestUser, p.ID, dto.RegisterMovementRequest{
		Type: entity.MovementIn, Quantity: pdec("0"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductUpdate_NoPermiteEditarStock(t *testing.T) {
	uc, _, _ := newProductFixture()
	p, err := uc.Create(prodTestOrg, dto.CreateProductRequest{SKU: "HW-04", Name: "Firewall"})
	require.NoError(t, err)

	_, err = uc.RegisterMovement(prodTestOrg, prodTestUser, p.ID, dto.RegisterMovementRequest{
		Type: entity.MovementIn, Quantity: pdec("3"),
	})
	require.NoError(t, err)

	name := "Firewall NG"
	out, err := uc.Update(p.ID, prodTestOrg, dto.UpdateProductRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Firewall NG", out.Name)
	assert.True(t, pdec("3").Equal(out.Stock), "el update de campos no toca el stock")
}

func TestProductDelete_EsLogico(t *testing.T) {
	uc, products, _ := newProductFixture()
	p, err := uc.Create(prodTestOrg, dto.CreateProductRequest{SKU: "HW-05", Name: "Cable"})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(p.ID, prodTestOrg))

	got, err := uc.GetByID(p.ID, prodTestOrg)
	require.NoError(t, err)
	assert.Nil(t, got)

	raw := products.items[p.ID]
	require.NotNil(t, raw, "el registro sigue existiendo")
	assert.Equal(t, entity.StatusDeleted, raw.Status)
}
