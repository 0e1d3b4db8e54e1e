package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/sitesgtech-app/crm-gtech-sub000/internal/application/dto"
	"github.com/sitesgtech-app/crm-gtech-sub000/internal/domain"
	"github.com/sitesgtech-app/crm-gtech-sub000/internal/domain/entity"
	"github.com/sitesgtech-app/crm-gtech-sub000/internal/domain/repository"
)

// EmployeeUseCase casos de uso para el registro de empleados. El acceso a este
// módulo se restringe a administradores en la capa HTTP.
type EmployeeUseCase struct {
	repo repository.EmployeeRepository
}

// NewEmployeeUseCase construye el caso de uso.
func NewEmployeeUseCase(repo repository.EmployeeRepository) *EmployeeUseCase {
	return &EmployeeUseCase{repo: repo}
}

// Create registra un empleado.
func (uc *EmployeeUseCase) Create(organizationID string, in dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	v := domain.NewValidation()
	if in.Name == "" {
		v.Add("name", "es requerido")
	}
	if in.DPI == "" {
		v.Add("dpi", "es requerido")
	}
	if in.Salary.IsNegative() {
		v.Add("salary", "no puede ser negativo")
	}
	if v.HasErrors() {
		return nil, v
	}
	hireDate := time.Now()
	if in.HireDate != nil {
		hireDate = *in.HireDate
	}
	now := time.Now()
	employee := &entity.Employee{
		ID:             uuid.New().String(),
		OrganizationID: organizationID,
		Name:           in.Name,
		DPI:            in.DPI,
		Position:       in.Position,
		Salary:         in.Salary,
		HireDate:       hireDate,
		Active:         true,
		Status:         entity.StatusActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(employee); err != nil {
		return nil, err
	}
	return toEmployeeResponse(employee), nil
}

// GetByID obtiene un empleado del alcance de la organización.
func (uc *EmployeeUseCase) GetByID(id, organizationID string) (*dto.EmployeeResponse, error) {
	employee, err := uc.repo.GetByID(id, organizationID)
	if err != nil {
		return nil, err
	}
	if employee == nil || employee.Status != entity.StatusActive {
		return nil, nil
	}
	return toEmployeeResponse(employee), nil
}

// Update actualiza campos del empleado. Active en falso marca la baja laboral
// sin borrar el registro.
func (uc *EmployeeUseCase) Update(id, organizationID string, in dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	employee, err := uc.repo.GetByID(id, organizationID)
	if err != nil {
		return nil, err
	}
	if employee == nil || employee.Status != entity.StatusActive {
		return nil, nil
	}
	if in.Name != nil {
		employee.Name = *in.Name
	}
	if in.Position != nil {
		employee.Position = *in.Position
	}
	if in.Salary != nil {
		if in.Salary.IsNegative() {
			return nil, domain.NewValidation().Add("salary", "no puede ser negativo")
		}
		employee.Salary = *in.Salary
	}
	if in.Active != nil {
		employee.Active = *in.Active
	}
	employee.UpdatedAt = time.Now()
	if err := uc.repo.Update(employee); err != nil {
		return nil, err
	}
	return toEmployeeResponse(employee), nil
}

// List lista empleados de la organización.
func (uc *EmployeeUseCase) List(organizationID string, limit, offset int) ([]*dto.EmployeeResponse, error) {
	list, err := uc.repo.ListByOrganization(organizationID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.EmployeeResponse, 0, len(list))
	for _, e := range list {
		out = append(out, toEmployeeResponse(e))
	}
	return out, nil
}

// Delete marca el empleado como eliminado.
func (uc *EmployeeUseCase) Delete(id, organizationID string) error {
	employee, err := uc.repo.GetByID(id, organizationID)
	if err != nil {
		return err
	}
	if employee == nil || employee.Status != entity.StatusActive {
		return domain.ErrNotFound
	}
	return uc.repo.SoftDelete(id, organizationID)
}

func toEmployeeResponse(e *entity.Employee) *dto.EmployeeResponse {
	return &dto.EmployeeResponse{
		ID:             e.ID,
		OrganizationID: e.OrganizationID,
		Name:           e.Name,
		DPI:            e.DPI,
		Position:       e.Position,
		Salary:         e.Salary,
		HireDate:       e.HireDate,
		Active:         e.Active,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}
