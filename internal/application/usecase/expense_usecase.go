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

// ExpenseUseCase casos de uso para gastos y compras.
type ExpenseUseCase struct {
	repo repository.ExpenseRepository
}

// NewExpenseUseCase construye el caso de uso.
func NewExpenseUseCase(repo repository.ExpenseRepository) *ExpenseUseCase {
	return &ExpenseUseCase{repo: repo}
}

// Create registra un gasto.
func (uc *ExpenseUseCase) Create(organizationID, userID string, in dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	v := domain.NewValidation()
	if in.Category == "" {
		v.Add("category", "es requerida")
	}
	if in.Amount.LessThanOrEqual(decimal.Zero) {
		v.Add("amount", "debe ser mayor que cero")
	}
	if v.HasErrors() {
		return nil, v
	}
	date := time.Now()
	if in.Date != nil {
		date = *in.Date
	}
	now := time.Now()
	expense := &entity.Expense{
		ID:             uuid.New().String(),
		OrganizationID: organizationID,
		UserID:         userID,
		Category:       in.Category,
		Supplier:       in.Supplier,
		Description:    in.Description,
		Amount:         in.Amount,
		Date:           date,
		Status:         entity.StatusActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(expense); err != nil {
		return nil, err
	}
	return toExpenseResponse(expense), nil
}

// GetByID obtiene un gasto del alcance de la organización.
func (uc *ExpenseUseCase) GetByID(id, organizationID string) (*dto.ExpenseResponse, error) {
	expense, err := uc.repo.GetByID(id, organizationID)
	if err != nil {
		return nil, err
	}
	if expense == nil || expense.Status != entity.StatusActive {
		return nil, nil
	}
	return toExpenseResponse(expense), nil
}

// Update actualiza campos del gasto.
func (uc *ExpenseUseCase) Update(id, organizationID string, in dto.UpdateExpenseRequest) (*dto.ExpenseResponse, error) {
	expense, err := uc.repo.GetByID(id, organizationID)
	if err != nil {
		return nil, err
	}
	if expense == nil || expense.Status != entity.StatusActive {
		return nil, nil
	}
	if in.Category != nil {
		expense.Category = *in.Category
	}
	if in.Supplier != nil {
		expense.Supplier = *in.Supplier
	}
	if in.Description != nil {
		expense.Description = *in.Description
	}
	if in.Amount != nil {
		if in.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, domain.NewValidation().Add("amount", "debe ser mayor que cero")
		}
		expense.Amount = *in.Amount
	}
	if in.Date != nil {
		expense.Date = *in.Date
	}
	expense.UpdatedAt = time.Now()
	if err := uc.repo.Update(expense); err != nil {
		return nil, err
	}
	return toExpenseResponse(expense), nil
}

// List lista gastos de la organización.
func (uc *ExpenseUseCase) List(organizationID string, limit, offset int) ([]*dto.ExpenseResponse, error) {
	list, err := uc.repo.ListByOrganization(organizationID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ExpenseResponse, 0, len(list))
	for _, e := range list {
		out = append(out, toExpenseResponse(e))
	}
	return out, nil
}

// Delete marca el gasto como eliminado.
func (uc *ExpenseUseCase) Delete(id, organizationID string) error {
	expense, err := uc.repo.GetByID(id, organizationID)
	if err != nil {
		return err
	}
	if expense == nil || expense.Status != entity.StatusActive {
		return domain.ErrNotFound
	}
	return uc.repo.SoftDelete(id, organizationID)
}

func toExpenseResponse(e *entity.Expense) *dto.ExpenseResponse {
	return &dto.ExpenseResponse{
		ID:             e.ID,
		OrganizationID: e.OrganizationID,
		UserID:         e.UserID,
		Category:       e.Category,
		Supplier:       e.Supplier,
		Description:    e.Description,
		Amount:         e.Amount,
		Date:           e.Date,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}
