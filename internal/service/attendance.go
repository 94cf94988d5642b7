package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/RajatSinghRajawat/maanvibackend/internal/apperr"
	"github.com/RajatSinghRajawat/maanvibackend/internal/metrics"
	"github.com/RajatSinghRajawat/maanvibackend/internal/models"
	"github.com/RajatSinghRajawat/maanvibackend/internal/report"
	"github.com/RajatSinghRajawat/maanvibackend/internal/repository"
	"github.com/RajatSinghRajawat/maanvibackend/internal/validation"
	"github.com/google/uuid"
)

const (
	msgAttendanceNotFound = "Attendance record not found"
	msgAttendanceExists   = "Attendance already marked for this employee on this date"
	msgNoAttendance       = "No attendance records found for this month"
)

// AttendanceService records and aggregates daily attendance.
type AttendanceService struct {
	log        *slog.Logger
	attendance repository.AttendanceManager
	employees  repository.EmployeeManager
	metrics    *metrics.Metrics
	settings
}

// NewAttendanceService creates an AttendanceService.
func NewAttendanceService(
	log *slog.Logger,
	attendance repository.AttendanceManager,
	employees repository.EmployeeManager,
	m *metrics.Metrics,
	opts ...Option,
) *AttendanceService {
	return &AttendanceService{
		log:        log,
		attendance: attendance,
		employees:  employees,
		metrics:    m,
		settings:   newSettings(opts),
	}
}

// List returns one page of attendance records, latest day first. A complete
// month and year in the period take precedence over explicit start and end days.
func (s *AttendanceService) List(
	ctx context.Context, filter models.AttendanceFilter, period models.PeriodQuery,
) (models.Page[models.Attendance], error) {
	filter.Paging = normalizePaging(filter.Paging, DefaultAttendancePageSize)

	from, to, err := s.periodBounds(period)
	if err != nil {
		return models.Page[models.Attendance]{}, err
	}
	filter.From, filter.To = from, to

	records, total, err := s.attendance.ListAttendance(ctx, filter)
	if err != nil {
		return models.Page[models.Attendance]{}, apperr.Internal(err)
	}

	return models.NewPage(records, total, filter.Paging), nil
}

// EmployeeMonth returns the monthly sheet of one employee with per-status counts.
// The total is the number of calendar days in the month.
func (s *AttendanceService) EmployeeMonth(
	ctx context.Context, employeeID uuid.UUID, q models.MonthQuery,
) (models.EmployeeMonth, error) {
	if err := validation.Struct(q); err != nil {
		return models.EmployeeMonth{}, err
	}

	from, to := models.MonthBounds(q.Year, q.Month, s.loc)
	records, err := s.attendance.ListEmployeeAttendance(ctx, employeeID, from, to)
	if err != nil {
		return models.EmployeeMonth{}, apperr.Internal(err)
	}
	if records == nil {
		records = []models.Attendance{}
	}

	stats := models.MonthCounts{Total: models.DaysInMonth(q.Year, q.Month)}
	for _, record := range records {
		switch record.Status {
		case models.AttendancePresent:
			stats.Present++
		case models.AttendanceAbsent:
			stats.Absent++
		case models.AttendanceLate:
			stats.Late++
		case models.AttendanceWFH:
			stats.WFH++
		}
	}

	return models.EmployeeMonth{Records: records, Stats: stats, Month: q.Month, Year: q.Year}, nil
}

// Get returns a single attendance record.
func (s *AttendanceService) Get(ctx context.Context, id uuid.UUID) (models.Attendance, error) {
	record, err := s.attendance.GetAttendance(ctx, id)
	if err != nil {
		return models.Attendance{}, storeError(err, msgAttendanceNotFound)
	}
	return record, nil
}

// Mark creates or updates the record of an employee for a day. The day is the
// calendar day of the given date in the configured location. The status is always
// replaced, optional fields only when supplied.
func (s *AttendanceService) Mark(
	ctx context.Context, in models.AttendanceInput, markedBy uuid.UUID,
) (models.MarkResult, error) {
	in.CheckInTime = optional(in.CheckInTime)
	in.CheckOutTime = optional(in.CheckOutTime)
	in.Location = optional(in.Location)
	in.Notes = optional(in.Notes)
	if err := validation.Struct(in); err != nil {
		return models.MarkResult{}, err
	}

	employeeID, day, err := s.parseTarget(in.Employee, in.Date)
	if err != nil {
		return models.MarkResult{}, err
	}

	record := models.Attendance{
		EmployeeID:   employeeID,
		Date:         day,
		Status:       in.Status,
		CheckInTime:  in.CheckInTime,
		CheckOutTime: in.CheckOutTime,
		Location:     in.Location,
		Notes:        in.Notes,
	}
	if markedBy != uuid.Nil {
		record.MarkedBy = &markedBy
	}

	created, err := s.attendance.UpsertAttendance(ctx, &record)
	if err != nil {
		return models.MarkResult{}, s.writeError(err)
	}

	outcome := "updated"
	if created {
		outcome = "created"
	}
	s.metrics.AttendanceMarks.WithLabelValues(outcome).Inc()
	s.log.InfoContext(ctx, "Attendance marked",
		"attendance_id", record.ID, "employee_id", employeeID, "date", day.Format(time.DateOnly), "outcome", outcome)

	return models.MarkResult{Attendance: record, Created: created}, nil
}

// Update merges the patch into the stored record and saves it.
func (s *AttendanceService) Update(
	ctx context.Context, id uuid.UUID, patch models.AttendancePatch,
) (models.Attendance, error) {
	if err := validation.Struct(patch); err != nil {
		return models.Attendance{}, err
	}

	record, err := s.attendance.GetAttendance(ctx, id)
	if err != nil {
		return models.Attendance{}, storeError(err, msgAttendanceNotFound)
	}

	employee := record.EmployeeID.String()
	if patch.Employee != nil {
		employee = *patch.Employee
	}
	date := record.Date.Format(time.DateOnly)
	if patch.Date != nil {
		date = *patch.Date
	}
	if record.EmployeeID, record.Date, err = s.parseTarget(employee, date); err != nil {
		return models.Attendance{}, err
	}

	if patch.Status != nil {
		record.Status = *patch.Status
	}
	if patch.CheckInTime != nil {
		record.CheckInTime = optional(patch.CheckInTime)
	}
	if patch.CheckOutTime != nil {
		record.CheckOutTime = optional(patch.CheckOutTime)
	}
	if patch.Location != nil {
		record.Location = optional(patch.Location)
	}
	if patch.Notes != nil {
		record.Notes = optional(patch.Notes)
	}

	if err = s.attendance.UpdateAttendance(ctx, &record); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.Attendance{}, apperr.NotFound(msgAttendanceNotFound)
		}
		return models.Attendance{}, s.writeError(err)
	}

	// Reload so the employee summary follows a moved record.
	return s.Get(ctx, id)
}

// Delete removes an attendance record.
func (s *AttendanceService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.attendance.DeleteAttendance(ctx, id); err != nil {
		return storeError(err, msgAttendanceNotFound)
	}
	return nil
}

// Stats aggregates attendance over a month, over explicit start and end days, or,
// when neither is complete, over the current month. The present percentage is
// relative to the number of active employees, rounded to two decimals.
func (s *AttendanceService) Stats(ctx context.Context, period models.PeriodQuery) (models.AttendanceStats, error) {
	from, to, err := s.statsBounds(period)
	if err != nil {
		return models.AttendanceStats{}, err
	}

	counts, err := s.attendance.CountAttendanceByStatus(ctx, from, to)
	if err != nil {
		return models.AttendanceStats{}, apperr.Internal(err)
	}

	employees, err := s.employees.CountEmployeesByStatus(ctx)
	if err != nil {
		return models.AttendanceStats{}, apperr.Internal(err)
	}

	stats := models.AttendanceStats{
		Present:        counts[models.AttendancePresent],
		Absent:         counts[models.AttendanceAbsent],
		Late:           counts[models.AttendanceLate],
		WFH:            counts[models.AttendanceWFH],
		TotalEmployees: employees[models.EmployeeActive],
	}
	stats.Total = stats.Present + stats.Absent + stats.Late + stats.WFH
	if stats.TotalEmployees > 0 {
		stats.PresentPercentage = round2(float64(stats.Present) / float64(stats.TotalEmployees) * 100) //nolint:mnd // percent
	}

	return stats, nil
}

// ExportMonth renders every record of the month into an xlsx workbook with one
// sheet per attendance status.
func (s *AttendanceService) ExportMonth(ctx context.Context, q models.MonthQuery) ([]byte, error) {
	if err := validation.Struct(q); err != nil {
		return nil, err
	}

	from, to := models.MonthBounds(q.Year, q.Month, s.loc)
	records, err := s.attendance.ListAttendanceBetween(ctx, from, to)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	rows := make([]report.AttendanceRow, 0, len(records))
	for _, record := range records {
		rows = append(rows, reportRow(record))
	}

	statuses := make([]string, 0, len(models.AllAttendanceStatuses()))
	for _, status := range models.AllAttendanceStatuses() {
		statuses = append(statuses, string(status))
	}

	start := time.Now()
	buffer, err := report.GenerateAttendanceReport(fmt.Sprintf("Attendance %02d/%d", q.Month, q.Year), statuses, rows)
	if errors.Is(err, report.ErrNoRecords) {
		return nil, apperr.NotFound(msgNoAttendance)
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}
	s.metrics.ReportGeneration.WithLabelValues("attendance_month").Observe(time.Since(start).Seconds())

	return buffer.Bytes(), nil
}

func reportRow(record models.Attendance) report.AttendanceRow {
	row := report.AttendanceRow{
		Date:     record.Date,
		Status:   string(record.Status),
		CheckIn:  deref(record.CheckInTime),
		CheckOut: deref(record.CheckOutTime),
		Location: deref(record.Location),
		Notes:    deref(record.Notes),
	}
	if record.Employee != nil {
		row.Employee = record.Employee.Name
		row.Email = record.Employee.Email
		row.Role = record.Employee.Role
	}
	return row
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

// parseTarget resolves the employee id and the calendar day of a record.
func (s *AttendanceService) parseTarget(employee, date string) (uuid.UUID, time.Time, error) {
	employeeID, err := uuid.Parse(employee)
	if err != nil {
		return uuid.Nil, time.Time{}, apperr.Validation("Validation failed",
			apperr.FieldError{Field: "employee", Message: "Valid employee ID is required"})
	}

	parsed, err := models.ParseDate(date, s.loc)
	if err != nil {
		return uuid.Nil, time.Time{}, apperr.Validation("Validation failed",
			apperr.FieldError{Field: "date", Message: "Valid date is required"})
	}

	return employeeID, models.TruncateDay(parsed, s.loc), nil
}

func (s *AttendanceService) writeError(err error) error {
	switch {
	case errors.Is(err, repository.ErrReferenceMissing), errors.Is(err, repository.ErrNotFound):
		return apperr.NotFound(msgEmployeeNotFound)
	case errors.Is(err, repository.ErrDuplicate):
		return apperr.Conflict(msgAttendanceExists)
	}
	return apperr.Internal(err)
}

// periodBounds resolves the optional day range of a listing.
func (s *AttendanceService) periodBounds(period models.PeriodQuery) (*time.Time, *time.Time, error) {
	if period.Month != 0 && period.Year != 0 {
		if err := validation.Struct(models.MonthQuery{Month: period.Month, Year: period.Year}); err != nil {
			return nil, nil, err
		}
		from, to := models.MonthBounds(period.Year, period.Month, s.loc)
		return &from, &to, nil
	}

	var from, to *time.Time
	if period.StartDate != nil {
		day := models.TruncateDay(*period.StartDate, s.loc)
		from = &day
	}
	if period.EndDate != nil {
		day := models.TruncateDay(*period.EndDate, s.loc)
		to = &day
	}
	return from, to, nil
}

// statsBounds resolves the always-bounded day range of the aggregate view.
func (s *AttendanceService) statsBounds(period models.PeriodQuery) (time.Time, time.Time, error) {
	if period.Month != 0 && period.Year != 0 {
		from, to, err := s.periodBounds(period)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		return *from, *to, nil
	}

	if period.StartDate != nil && period.EndDate != nil {
		return models.TruncateDay(*period.StartDate, s.loc), models.TruncateDay(*period.EndDate, s.loc), nil
	}

	now := s.now().In(s.loc)
	from, to := models.MonthBounds(now.Year(), int(now.Month()), s.loc)
	return from, to, nil
}
