package service_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/RajatSinghRajawat/maanvibackend/internal/metrics"
	"github.com/RajatSinghRajawat/maanvibackend/internal/models"
	"github.com/RajatSinghRajawat/maanvibackend/internal/repository"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

func ptr[T any](v T) *T { return &v }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newMetrics() *metrics.Metrics {
	return metrics.NewMetrics(prometheus.NewRegistry())
}

// fakeAdmins is an in-memory AdminManager keyed by email.
type fakeAdmins struct {
	mu      sync.Mutex
	byEmail map[string]models.Admin
	err     error
}

func newFakeAdmins(admins ...models.Admin) *fakeAdmins {
	f := &fakeAdmins{byEmail: make(map[string]models.Admin)}
	for _, admin := range admins {
		f.byEmail[admin.Email] = admin
	}
	return f
}

func (f *fakeAdmins) CreateAdmin(_ context.Context, admin *models.Admin) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if _, ok := f.byEmail[admin.Email]; ok {
		return repository.ErrDuplicate
	}
	admin.ID = uuid.New()
	admin.IsActive = true
	f.byEmail[admin.Email] = *admin
	return nil
}

func (f *fakeAdmins) GetAdminByEmail(_ context.Context, email string) (models.Admin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return models.Admin{}, f.err
	}
	admin, ok := f.byEmail[email]
	if !ok {
		return models.Admin{}, repository.ErrNotFound
	}
	return admin, nil
}

func (f *fakeAdmins) GetAdminByID(_ context.Context, id uuid.UUID) (models.Admin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return models.Admin{}, f.err
	}
	for _, admin := range f.byEmail {
		if admin.ID == id {
			return admin, nil
		}
	}
	return models.Admin{}, repository.ErrNotFound
}

func (f *fakeAdmins) UpdateLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	return f.update(id, func(admin *models.Admin) { admin.LastLogin = &at })
}

func (f *fakeAdmins) UpdatePasswordHash(_ context.Context, id uuid.UUID, hash string) error {
	return f.update(id, func(admin *models.Admin) { admin.PasswordHash = hash })
}

func (f *fakeAdmins) update(id uuid.UUID, change func(*models.Admin)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for email, admin := range f.byEmail {
		if admin.ID == id {
			change(&admin)
			f.byEmail[email] = admin
			return nil
		}
	}
	return repository.ErrNotFound
}

// fakeEmployees is an in-memory EmployeeManager.
type fakeEmployees struct {
	mu        sync.Mutex
	employees map[uuid.UUID]models.Employee
	lastList  models.EmployeeFilter
	err       error
}

func newFakeEmployees(employees ...models.Employee) *fakeEmployees {
	f := &fakeEmployees{employees: make(map[uuid.UUID]models.Employee)}
	for _, employee := range employees {
		f.employees[employee.ID] = employee
	}
	return f
}

func (f *fakeEmployees) ListEmployees(_ context.Context, filter models.EmployeeFilter) ([]models.Employee, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastList = filter
	if f.err != nil {
		return nil, 0, f.err
	}
	list := make([]models.Employee, 0, len(f.employees))
	for _, employee := range f.employees {
		list = append(list, employee)
	}
	return list, len(list), nil
}

func (f *fakeEmployees) GetEmployee(_ context.Context, id uuid.UUID) (models.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	employee, ok := f.employees[id]
	if !ok {
		return models.Employee{}, repository.ErrNotFound
	}
	return employee, nil
}

func (f *fakeEmployees) CreateEmployee(_ context.Context, employee *models.Employee) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	for _, existing := range f.employees {
		if existing.Email == employee.Email {
			return repository.ErrDuplicate
		}
	}
	employee.ID = uuid.New()
	f.employees[employee.ID] = *employee
	return nil
}

func (f *fakeEmployees) UpdateEmployee(_ context.Context, employee *models.Employee) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.employees[employee.ID]; !ok {
		return repository.ErrNotFound
	}
	for _, existing := range f.employees {
		if existing.ID != employee.ID && existing.Email == employee.Email {
			return repository.ErrDuplicate
		}
	}
	f.employees[employee.ID] = *employee
	return nil
}

func (f *fakeEmployees) DeleteEmployee(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.employees[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.employees, id)
	return nil
}

func (f *fakeEmployees) CountEmployeesByStatus(context.Context) (map[models.EmployeeStatus]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	counts := make(map[models.EmployeeStatus]int)
	for _, employee := range f.employees {
		counts[employee.Status]++
	}
	return counts, nil
}

// fakeAttendance is an in-memory AttendanceManager enforcing one record per employee and day.
type fakeAttendance struct {
	mu        sync.Mutex
	records   map[uuid.UUID]models.Attendance
	employees *fakeEmployees
	counts    map[models.AttendanceStatus]int
	from, to  time.Time
	lastList  models.AttendanceFilter
}

func newFakeAttendance(employees *fakeEmployees, records ...models.Attendance) *fakeAttendance {
	f := &fakeAttendance{records: make(map[uuid.UUID]models.Attendance), employees: employees}
	for _, record := range records {
		f.records[record.ID] = record
	}
	return f
}

func (f *fakeAttendance) ListAttendance(_ context.Context, filter models.AttendanceFilter) ([]models.Attendance, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastList = filter
	list := make([]models.Attendance, 0, len(f.records))
	for _, record := range f.records {
		list = append(list, record)
	}
	return list, len(list), nil
}

func (f *fakeAttendance) ListEmployeeAttendance(
	_ context.Context, employeeID uuid.UUID, from, to time.Time,
) ([]models.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.from, f.to = from, to
	var list []models.Attendance
	for _, record := range f.records {
		if record.EmployeeID == employeeID && !record.Date.Before(from) && !record.Date.After(to) {
			list = append(list, record)
		}
	}
	return list, nil
}

func (f *fakeAttendance) ListAttendanceBetween(_ context.Context, from, to time.Time) ([]models.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.from, f.to = from, to
	var list []models.Attendance
	for _, record := range f.records {
		if !record.Date.Before(from) && !record.Date.After(to) {
			list = append(list, record)
		}
	}
	return list, nil
}

func (f *fakeAttendance) GetAttendance(_ context.Context, id uuid.UUID) (models.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	record, ok := f.records[id]
	if !ok {
		return models.Attendance{}, repository.ErrNotFound
	}
	return record, nil
}

func (f *fakeAttendance) UpsertAttendance(_ context.Context, record *models.Attendance) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	employee, err := f.employees.GetEmployee(context.Background(), record.EmployeeID)
	if err != nil {
		return false, repository.ErrReferenceMissing
	}
	record.Employee = &models.EmployeeSummary{
		ID: employee.ID, Name: employee.Name, Email: employee.Email, Role: employee.Role,
	}
	for id, existing := range f.records {
		if existing.EmployeeID == record.EmployeeID && existing.Date.Equal(record.Date) {
			existing.Status = record.Status
			if record.CheckInTime != nil {
				existing.CheckInTime = record.CheckInTime
			}
			if record.CheckOutTime != nil {
				existing.CheckOutTime = record.CheckOutTime
			}
			if record.Location != nil {
				existing.Location = record.Location
			}
			if record.Notes != nil {
				existing.Notes = record.Notes
			}
			existing.MarkedBy = record.MarkedBy
			existing.Employee = record.Employee
			f.records[id] = existing
			*record = existing
			return false, nil
		}
	}
	record.ID = uuid.New()
	f.records[record.ID] = *record
	return true, nil
}

func (f *fakeAttendance) UpdateAttendance(_ context.Context, record *models.Attendance) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.records[record.ID]; !ok {
		return repository.ErrNotFound
	}
	for id, existing := range f.records {
		if id != record.ID && existing.EmployeeID == record.EmployeeID && existing.Date.Equal(record.Date) {
			return repository.ErrDuplicate
		}
	}
	f.records[record.ID] = *record
	return nil
}

func (f *fakeAttendance) DeleteAttendance(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.records[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.records, id)
	return nil
}

func (f *fakeAttendance) CountAttendanceByStatus(
	_ context.Context, from, to time.Time,
) (map[models.AttendanceStatus]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.from, f.to = from, to
	return f.counts, nil
}

// fakeEnquiries is an in-memory EnquiryManager that stamps the resolution time like the store does.
type fakeEnquiries struct {
	mu        sync.Mutex
	enquiries map[uuid.UUID]models.Enquiry
	admins    map[uuid.UUID]bool
	counts    map[repository.EnquiryDimension]map[string]int
	lastList  models.EnquiryFilter
}

func newFakeEnquiries(enquiries ...models.Enquiry) *fakeEnquiries {
	f := &fakeEnquiries{enquiries: make(map[uuid.UUID]models.Enquiry), admins: make(map[uuid.UUID]bool)}
	for _, enquiry := range enquiries {
		f.enquiries[enquiry.ID] = enquiry
	}
	return f
}

func (f *fakeEnquiries) ListEnquiries(_ context.Context, filter models.EnquiryFilter) ([]models.Enquiry, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastList = filter
	list := make([]models.Enquiry, 0, len(f.enquiries))
	for _, enquiry := range f.enquiries {
		list = append(list, enquiry)
	}
	return list, len(list), nil
}

func (f *fakeEnquiries) GetEnquiry(_ context.Context, id uuid.UUID) (models.Enquiry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	enquiry, ok := f.enquiries[id]
	if !ok {
		return models.Enquiry{}, repository.ErrNotFound
	}
	return enquiry, nil
}

func (f *fakeEnquiries) CreateEnquiry(_ context.Context, enquiry *models.Enquiry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if enquiry.AssignedTo != nil && !f.admins[*enquiry.AssignedTo] {
		return repository.ErrReferenceMissing
	}
	enquiry.ID = uuid.New()
	f.enquiries[enquiry.ID] = *enquiry
	return nil
}

func (f *fakeEnquiries) UpdateEnquiry(_ context.Context, enquiry *models.Enquiry, resolvedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.enquiries[enquiry.ID]; !ok {
		return repository.ErrNotFound
	}
	if enquiry.AssignedTo != nil && !f.admins[*enquiry.AssignedTo] {
		return repository.ErrReferenceMissing
	}
	if enquiry.Status.IsFinal() && enquiry.ResolvedAt == nil {
		enquiry.ResolvedAt = &resolvedAt
	}
	f.enquiries[enquiry.ID] = *enquiry
	return nil
}

func (f *fakeEnquiries) DeleteEnquiry(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.enquiries[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.enquiries, id)
	return nil
}

func (f *fakeEnquiries) CountEnquiriesBy(
	_ context.Context, dimension repository.EnquiryDimension,
) (map[string]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.counts[dimension], nil
}
