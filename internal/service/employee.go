package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/RajatSinghRajawat/maanvibackend/internal/apperr"
	"github.com/RajatSinghRajawat/maanvibackend/internal/models"
	"github.com/RajatSinghRajawat/maanvibackend/internal/repository"
	"github.com/RajatSinghRajawat/maanvibackend/internal/validation"
	"github.com/google/uuid"
)

const (
	msgEmployeeNotFound = "Employee not found"
	msgEmployeeExists   = "Employee with this email already exists"
)

// EmployeeService manages the employee directory.
type EmployeeService struct {
	log       *slog.Logger
	employees repository.EmployeeManager
	settings
}

// NewEmployeeService creates an EmployeeService.
func NewEmployeeService(log *slog.Logger, employees repository.EmployeeManager, opts ...Option) *EmployeeService {
	return &EmployeeService{log: log, employees: employees, settings: newSettings(opts)}
}

// List returns one page of employees, newest first.
func (s *EmployeeService) List(ctx context.Context, filter models.EmployeeFilter) (models.Page[models.Employee], error) {
	filter.Paging = normalizePaging(filter.Paging, DefaultEmployeePageSize)
	filter.Search = strings.TrimSpace(filter.Search)

	employees, total, err := s.employees.ListEmployees(ctx, filter)
	if err != nil {
		return models.Page[models.Employee]{}, apperr.Internal(err)
	}

	return models.NewPage(employees, total, filter.Paging), nil
}

// Get returns a single employee.
func (s *EmployeeService) Get(ctx context.Context, id uuid.UUID) (models.Employee, error) {
	employee, err := s.employees.GetEmployee(ctx, id)
	if err != nil {
		return models.Employee{}, storeError(err, msgEmployeeNotFound)
	}
	return employee, nil
}

// Create validates and stores a new employee. The status defaults to Active.
func (s *EmployeeService) Create(ctx context.Context, in models.EmployeeInput) (models.Employee, error) {
	normalizeEmployeeInput(&in)
	if err := validation.Struct(in); err != nil {
		return models.Employee{}, err
	}

	var employee models.Employee
	if err := s.apply(&employee, in); err != nil {
		return models.Employee{}, err
	}

	if err := s.employees.CreateEmployee(ctx, &employee); err != nil {
		return models.Employee{}, s.writeError(err)
	}

	s.log.InfoContext(ctx, "Employee created", "employee_id", employee.ID)

	return employee, nil
}

// Update merges the patch into the stored employee, validates the result and saves it.
func (s *EmployeeService) Update(ctx context.Context, id uuid.UUID, patch models.EmployeePatch) (models.Employee, error) {
	if err := validation.Struct(patch); err != nil {
		return models.Employee{}, err
	}

	employee, err := s.employees.GetEmployee(ctx, id)
	if err != nil {
		return models.Employee{}, storeError(err, msgEmployeeNotFound)
	}

	merged := mergeEmployee(employee, patch)
	normalizeEmployeeInput(&merged)
	if err = validation.Struct(merged); err != nil {
		return models.Employee{}, err
	}

	if err = s.apply(&employee, merged); err != nil {
		return models.Employee{}, err
	}

	if err = s.employees.UpdateEmployee(ctx, &employee); err != nil {
		return models.Employee{}, s.writeError(err)
	}

	return employee, nil
}

// Delete removes the employee together with its attendance records.
func (s *EmployeeService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.employees.DeleteEmployee(ctx, id); err != nil {
		return storeError(err, msgEmployeeNotFound)
	}

	s.log.InfoContext(ctx, "Employee deleted", "employee_id", id)

	return nil
}

// Stats counts employees per status. Every status is present in the result.
func (s *EmployeeService) Stats(ctx context.Context) (models.EmployeeStats, error) {
	counts, err := s.employees.CountEmployeesByStatus(ctx)
	if err != nil {
		return models.EmployeeStats{}, apperr.Internal(err)
	}

	stats := models.EmployeeStats{Stats: make(map[models.EmployeeStatus]int)}
	for _, status := range models.AllEmployeeStatuses() {
		stats.Stats[status] = counts[status]
		stats.Total += counts[status]
	}
	stats.Active = counts[models.EmployeeActive]

	return stats, nil
}

func (s *EmployeeService) writeError(err error) error {
	switch {
	case errors.Is(err, repository.ErrDuplicate):
		return apperr.Conflict(msgEmployeeExists)
	case errors.Is(err, repository.ErrNotFound):
		return apperr.NotFound(msgEmployeeNotFound)
	}
	return apperr.Internal(err)
}

// apply copies a validated input onto the employee.
func (s *EmployeeService) apply(employee *models.Employee, in models.EmployeeInput) error {
	employee.Name = in.Name
	employee.Email = in.Email
	employee.Role = in.Role
	employee.Status = models.EmployeeActive
	if in.Status != nil {
		employee.Status = *in.Status
	}
	employee.Phone = in.Phone
	employee.Department = in.Department
	employee.Address = in.Address

	employee.JoiningDate = nil
	if in.JoiningDate != nil {
		joined, err := models.ParseDate(*in.JoiningDate, s.loc)
		if err != nil {
			return apperr.Validation("Validation failed",
				apperr.FieldError{Field: "joiningDate", Message: "Valid joiningDate is required"})
		}
		day := models.TruncateDay(joined, s.loc)
		employee.JoiningDate = &day
	}

	return nil
}

func normalizeEmployeeInput(in *models.EmployeeInput) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	in.Role = strings.TrimSpace(in.Role)
	in.Phone = optional(in.Phone)
	in.Department = optional(in.Department)
	in.Address = optional(in.Address)
	in.JoiningDate = optional(in.JoiningDate)
}

// mergeEmployee returns the stored employee as an input with the patch applied on top.
func mergeEmployee(employee models.Employee, patch models.EmployeePatch) models.EmployeeInput {
	status := employee.Status
	merged := models.EmployeeInput{
		Name:       employee.Name,
		Email:      employee.Email,
		Role:       employee.Role,
		Status:     &status,
		Phone:      employee.Phone,
		Department: employee.Department,
		Address:    employee.Address,
	}
	if employee.JoiningDate != nil {
		joined := employee.JoiningDate.Format(time.DateOnly)
		merged.JoiningDate = &joined
	}

	if patch.Name != nil {
		merged.Name = *patch.Name
	}
	if patch.Email != nil {
		merged.Email = *patch.Email
	}
	if patch.Role != nil {
		merged.Role = *patch.Role
	}
	if patch.Status != nil {
		merged.Status = patch.Status
	}
	if patch.Phone != nil {
		merged.Phone = patch.Phone
	}
	if patch.Department != nil {
		merged.Department = patch.Department
	}
	if patch.JoiningDate != nil {
		merged.JoiningDate = patch.JoiningDate
	}
	if patch.Address != nil {
		merged.Address = patch.Address
	}

	return merged
}
