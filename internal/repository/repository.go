package repository

import (
	"context"
	"time"

	"github.com/RajatSinghRajawat/maanvibackend/internal/models"
	"github.com/google/uuid"
)

type Repository struct {
	db Database
}

// AdminManager defines the persistence operations for admin accounts.
type AdminManager interface {
	CreateAdmin(ctx context.Context, admin *models.Admin) error
	GetAdminByEmail(ctx context.Context, email string) (models.Admin, error)
	GetAdminByID(ctx context.Context, id uuid.UUID) (models.Admin, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error
}

// EmployeeManager defines the persistence operations for employees.
type EmployeeManager interface {
	ListEmployees(ctx context.Context, filter models.EmployeeFilter) ([]models.Employee, int, error)
	GetEmployee(ctx context.Context, id uuid.UUID) (models.Employee, error)
	CreateEmployee(ctx context.Context, employee *models.Employee) error
	UpdateEmployee(ctx context.Context, employee *models.Employee) error
	DeleteEmployee(ctx context.Context, id uuid.UUID) error
	CountEmployeesByStatus(ctx context.Context) (map[models.EmployeeStatus]int, error)
}

// AttendanceManager defines the persistence operations for attendance records.
type AttendanceManager interface {
	ListAttendance(ctx context.Context, filter models.AttendanceFilter) ([]models.Attendance, int, error)
	ListEmployeeAttendance(ctx context.Context, employeeID uuid.UUID, from, to time.Time) ([]models.Attendance, error)
	ListAttendanceBetween(ctx context.Context, from, to time.Time) ([]models.Attendance, error)
	GetAttendance(ctx context.Context, id uuid.UUID) (models.Attendance, error)
	UpsertAttendance(ctx context.Context, record *models.Attendance) (bool, error)
	UpdateAttendance(ctx context.Context, record *models.Attendance) error
	DeleteAttendance(ctx context.Context, id uuid.UUID) error
	CountAttendanceByStatus(ctx context.Context, from, to time.Time) (map[models.AttendanceStatus]int, error)
}

// EnquiryManager defines the persistence operations for enquiries.
type EnquiryManager interface {
	ListEnquiries(ctx context.Context, filter models.EnquiryFilter) ([]models.Enquiry, int, error)
	GetEnquiry(ctx context.Context, id uuid.UUID) (models.Enquiry, error)
	CreateEnquiry(ctx context.Context, enquiry *models.Enquiry) error
	UpdateEnquiry(ctx context.Context, enquiry *models.Enquiry, resolvedAt time.Time) error
	DeleteEnquiry(ctx context.Context, id uuid.UUID) error
	CountEnquiriesBy(ctx context.Context, dimension EnquiryDimension) (map[string]int, error)
}

// NewRepository creates a new instance of Repository with the provided Database.
// It returns a pointer to the newly created Repository.
func NewRepository(db Database) *Repository {
	return &Repository{db: db}
}
