package repository

import (
	"context"
	"fmt"

	"github.com/RajatSinghRajawat/maanvibackend/internal/models"
	"github.com/google/uuid"
)

func scanEmployee(row rowScanner) (models.Employee, error) {
	var employee models.Employee
	err := row.Scan(
		&employee.ID, &employee.Name, &employee.Email, &employee.Role, &employee.Status,
		&employee.Phone, &employee.Department, &employee.JoiningDate, &employee.Address,
		&employee.CreatedAt, &employee.UpdatedAt,
	)
	return employee, err
}

func employeeWhere(filter models.EmployeeFilter) *whereClause {
	where := &whereClause{}
	if filter.Status != nil {
		where.add("status = ?", string(*filter.Status))
	}
	if filter.Search != "" {
		where.add(employeeSearchCondition, containsPattern(filter.Search))
	}
	return where
}

// ListEmployees returns one page of employees matching the filter, newest first,
// together with the number of matching employees across all pages.
func (r *Repository) ListEmployees(ctx context.Context, filter models.EmployeeFilter) ([]models.Employee, int, error) {
	where := employeeWhere(filter)

	var total int
	if err := r.db.QueryRow(ctx, CountEmployeesSQL+where.String(), where.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	limit, args := where.paginate(filter.Limit, filter.Offset())
	rows, err := r.db.Query(ctx, SelectEmployeesSQL+where.String()+newestFirst+limit, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var employees []models.Employee
	for rows.Next() {
		employee, errScan := scanEmployee(rows)
		if errScan != nil {
			return nil, 0, fmt.Errorf("failed to scan employee row: %w", errScan)
		}
		employees = append(employees, employee)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read employee rows: %w", err)
	}

	return employees, total, nil
}

// GetEmployee returns the employee with the given id.
func (r *Repository) GetEmployee(ctx context.Context, id uuid.UUID) (models.Employee, error) {
	employee, err := scanEmployee(r.db.QueryRow(ctx, SelectEmployeeByIDSQL, id))
	if err != nil {
		return models.Employee{}, fmt.Errorf("failed to get employee %s: %w", id, classify(err))
	}

	return employee, nil
}

// CreateEmployee inserts the employee and fills in the generated id and timestamps.
// A taken email is reported as ErrDuplicate.
func (r *Repository) CreateEmployee(ctx context.Context, employee *models.Employee) error {
	err := r.db.QueryRow(ctx, InsertEmployeeSQL,
		employee.Name, employee.Email, employee.Role, string(employee.Status),
		employee.Phone, employee.Department, employee.JoiningDate, employee.Address,
	).Scan(&employee.ID, &employee.CreatedAt, &employee.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert employee: %w", classify(err))
	}

	return nil
}

// UpdateEmployee writes every mutable field of the employee and refreshes UpdatedAt.
func (r *Repository) UpdateEmployee(ctx context.Context, employee *models.Employee) error {
	err := r.db.QueryRow(ctx, UpdateEmployeeSQL,
		employee.ID, employee.Name, employee.Email, employee.Role, string(employee.Status),
		employee.Phone, employee.Department, employee.JoiningDate, employee.Address,
	).Scan(&employee.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update employee %s: %w", employee.ID, classify(err))
	}

	return nil
}

// DeleteEmployee removes the employee. Its attendance records are removed by the cascade.
func (r *Repository) DeleteEmployee(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, DeleteEmployeeSQL, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee %s: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("failed to delete employee %s: %w", id, ErrNotFound)
	}

	return nil
}

// CountEmployeesByStatus returns the number of employees per status.
// Statuses without employees are absent from the map.
func (r *Repository) CountEmployeesByStatus(ctx context.Context) (map[models.EmployeeStatus]int, error) {
	rows, err := r.db.Query(ctx, CountEmployeesByStatusSQL)
	if err != nil {
		return nil, fmt.Errorf("error querying employee counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.EmployeeStatus]int)
	for rows.Next() {
		var (
			status string
			count  int
		)
		if err = rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("error scanning employee count row: %w", err)
		}
		counts[models.EmployeeStatus(status)] = count
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employee count rows: %w", err)
	}

	return counts, nil
}
