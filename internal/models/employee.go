package models

import (
	"time"

	"github.com/google/uuid"
)

// EmployeeStatus is the lifecycle stage of an employee.
type EmployeeStatus string

const (
	EmployeeActive    EmployeeStatus = "Active"
	EmployeeProbation EmployeeStatus = "Probation"
	EmployeeNotice    EmployeeStatus = "Notice"
	EmployeeInactive  EmployeeStatus = "Inactive"
)

// AllEmployeeStatuses lists every employee status in display order.
func AllEmployeeStatuses() []EmployeeStatus {
	return []EmployeeStatus{EmployeeActive, EmployeeProbation, EmployeeNotice, EmployeeInactive}
}

// IsValid reports whether s is one of the known statuses.
func (s EmployeeStatus) IsValid() bool {
	switch s {
	case EmployeeActive, EmployeeProbation, EmployeeNotice, EmployeeInactive:
		return true
	}
	return false
}

// Employee represents an individual employee managed by the admins.
// It contains the employee's contact details, job role, lifecycle status
// and the timestamps maintained by the store.
type Employee struct {
	ID          uuid.UUID      `json:"id"`                    // Unique identifier for the employee
	Name        string         `json:"name"`                  // Full name of the employee
	Email       string         `json:"email"`                 // Email address, unique across employees
	Role        string         `json:"role"`                  // Job role or title
	Status      EmployeeStatus `json:"status"`                // Lifecycle status
	Phone       *string        `json:"phone,omitempty"`       // Phone number of the employee
	Department  *string        `json:"department,omitempty"`  // Department the employee belongs to
	JoiningDate *time.Time     `json:"joiningDate,omitempty"` // Date the employee joined
	Address     *string        `json:"address,omitempty"`     // Postal address
	CreatedAt   time.Time      `json:"createdAt"`             // Timestamp of when the record was created
	UpdatedAt   time.Time      `json:"updatedAt"`             // Timestamp of the last modification
}

// EmployeeSummary is the short employee view attached to attendance records.
type EmployeeSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}

// EmployeeInput is the payload accepted when creating an employee.
type EmployeeInput struct {
	Name        string          `json:"name"        validate:"required,notblank"`
	Email       string          `json:"email"       validate:"required,email"`
	Role        string          `json:"role"        validate:"required,notblank"`
	Status      *EmployeeStatus `json:"status"      validate:"omitempty,enum"`
	Phone       *string         `json:"phone"`
	Department  *string         `json:"department"`
	JoiningDate *string         `json:"joiningDate" validate:"omitempty,isodate"`
	Address     *string         `json:"address"`
}

// EmployeePatch is the payload accepted when updating an employee. Nil fields are left untouched.
type EmployeePatch struct {
	Name        *string         `json:"name"        validate:"omitempty,notblank"`
	Email       *string         `json:"email"       validate:"omitempty,email"`
	Role        *string         `json:"role"        validate:"omitempty,notblank"`
	Status      *EmployeeStatus `json:"status"      validate:"omitempty,enum"`
	Phone       *string         `json:"phone"`
	Department  *string         `json:"department"`
	JoiningDate *string         `json:"joiningDate" validate:"omitempty,isodate"`
	Address     *string         `json:"address"`
}

// EmployeeFilter narrows an employee listing.
type EmployeeFilter struct {
	Status *EmployeeStatus
	Search string
	Paging
}

// EmployeeStats is the aggregate view over all employees.
type EmployeeStats struct {
	Total  int                    `json:"total"`
	Active int                    `json:"active"`
	Stats  map[EmployeeStatus]int `json:"stats"`
}
