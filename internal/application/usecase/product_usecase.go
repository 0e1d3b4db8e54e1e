package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sitesgtech-app/crm-gtech-sub000/internal/application/dto"
	"github.com/sitesgtech-app/crm-gtech-sub000/internal/domain"
	"github.com/sitesgtech-app/crm-gtech-sub000/internal/domain/entity"
	"github.com/sitesgtech-app/crm-gtech-sub000/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. Stock se maneja vía
// movimientos explícitos.
type ProductUseCase struct {
	repo      repository.ProductRepository
	movements repository.StockMovementRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, movements repository.StockMovementRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, movements: movements}
}

// Create crea un nuevo producto. Stock inicia en 0.
func (uc *ProductUseCase) Create(organizationID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	v := domain.NewValidation()
	if in.SKU == "" {
		v.Add("sku", "es requerido")
	}
	if in.Name == "" {
		v.Add("name", "es requerido")
	}
	if in.Price.IsNegative() {
		v.Add("price", "no puede ser negativo")
	}
	if in.Cost.IsNegative() {
		v.Add("cost", "no puede ser negativo")
	}
	if v.HasErrors() {
		return nil, v
	}
	existing, _ := uc.repo.GetByOrganizationAndSKU(organizationID, in.SKU)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	product := &entity.Product{
		ID:             uuid.New().String(),
		OrganizationID: organizationID,
		SKU:            in.SKU,
		Name:           in.Name,
		Description:    in.Description,
		Price:          in.Price,
		Cost:           in.Cost,
		Stock:          decimal.Zero,
		Status:         entity.StatusActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto del alcance de la organización.
func (uc *ProductUseCase) GetByID(id, organizationID string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id, organizationID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.Status != entity.StatusActive {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto. No permite modificar Stock (vía movimientos).
func (uc *ProductUseCase) Update(id, organizationID string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id, organizationID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.Status != entity.StatusActive {
		return nil, nil
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.NewValidation().Add("price", "no puede ser negativo")
		}
		product.Price = *in.Price
	}
	if in.Cost != nil {
		if in.Cost.IsNegative() {
			return nil, domain.NewValidation().Add("cost", "no puede ser negativo")
		}
		product.Cost = *in.Cost
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// RegisterMovement aplica una entrada o salida de stock. Las salidas que
// dejarían stock negativo fallan con ErrInsufficientStock.
func (uc *ProductUseCase) RegisterMovement(organizationID, userID, productID string, in dto.RegisterMovementRequest) (*dto.ProductResponse, error) {
	if in.Type != entity.MovementIn && in.Type != entity.MovementOut {
		return nil, domain.NewValidation().Add("type", "debe ser IN u OUT")
	}
	if in.Quantity.LessThanOrEqual(decimal.Zero) {
		return nil, domain.NewValidation().Add("quantity", "debe ser mayor que cero")
	}
	product, err := uc.repo.GetByID(productID, organizationID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.Status != entity.StatusActive {
		return nil, domain.ErrNotFound
	}

	if in.Type == entity.MovementIn {
		product.Stock = product.Stock.Add(in.Quantity)
	} else {
		if product.Stock.LessThan(in.Quantity) {
			return nil, domain.ErrInsufficientStock
		}
		product.Stock = product.Stock.Sub(in.Quantity)
	}
	product.UpdatedAt = time.Now()

	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	if err := uc.movements.Create(&entity.StockMovement{
		ID:             uuid.New().String(),
		OrganizationID: organizationID,
		ProductID:      productID,
		UserID:         userID,
		Type:           in.Type,
		Quantity:       in.Quantity,
		Reference:      in.Reference,
		CreatedAt:      time.Now(),
	}); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// ListMovements lista los movimientos de un producto.
func (uc *ProductUseCase) ListMovements(organizationID, productID string, limit, offset int) ([]*dto.MovementResponse, error) {
	list, err := uc.movements.ListByProduct(productID, organizationID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, &dto.MovementResponse{
			ID:        m.ID,
			ProductID: m.ProductID,
			UserID:    m.UserID,
			Type:      m.Type,
			Quantity:  m.Quantity,
			Reference: m.Reference,
			CreatedAt: m.CreatedAt,
		})
	}
	return out, nil
}

// List lista productos de la organización.
func (uc *ProductUseCase) List(organizationID string, limit, offset int) ([]*dto.ProductResponse, error) {
	list, err := uc.repo.ListByOrganization(organizationID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// Delete marca el producto como eliminado.
func (uc *ProductUseCase) Delete(id, organizationID string) error {
	product, err := uc.repo.GetByID(id, organizationID)
	if err != nil {
		return err
	}
	if product == nil || product.Status != entity.StatusActive {
		return domain.ErrNotFound
	}
	return uc.repo.SoftDelete(id, organizationID)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:             p.ID,
		OrganizationID: p.OrganizationID,
		SKU:            p.SKU,
		Name:           p.Name,
		Description:    p.Description,
		Price:          p.Price,
		Cost:           p.Cost,
		Stock:          p.Stock,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
