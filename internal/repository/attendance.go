package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/RajatSinghRajawat/maanvibackend/internal/models"
	"github.com/google/uuid"
)

func attendanceTargets(record *models.Attendance, summary *models.EmployeeSummary) []any {
	return []any{
		&record.ID, &record.EmployeeID, &record.Date, &record.Status,
		&record.CheckInTime, &record.CheckOutTime, &record.Location, &record.Notes,
		&record.MarkedBy, &record.CreatedAt, &record.UpdatedAt,
		&summary.Name, &summary.Email, &summary.Role,
	}
}

func scanAttendance(row rowScanner) (models.Attendance, error) {
	var (
		record  models.Attendance
		summary models.EmployeeSummary
	)
	if err := row.Scan(attendanceTargets(&record, &summary)...); err != nil {
		return models.Attendance{}, err
	}
	summary.ID = record.EmployeeID
	record.Employee = &summary
	return record, nil
}

func (r *Repository) queryAttendance(ctx context.Context, sql string, args ...any) ([]models.Attendance, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance: %w", err)
	}
	defer rows.Close()

	var records []models.Attendance
	for rows.Next() {
		record, errScan := scanAttendance(rows)
		if errScan != nil {
			return nil, fmt.Errorf("failed to scan attendance row: %w", errScan)
		}
		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read attendance rows: %w", err)
	}

	return records, nil
}

func attendanceWhere(filter models.AttendanceFilter) *whereClause {
	where := &whereClause{}
	if filter.EmployeeID != nil {
		where.add("a.employee_id = ?", *filter.EmployeeID)
	}
	if filter.Status != nil {
		where.add("a.status = ?", string(*filter.Status))
	}
	if filter.From != nil {
		where.add("a.date >= ?", *filter.From)
	}
	if filter.To != nil {
		where.add("a.date <= ?", *filter.To)
	}
	return where
}

// ListAttendance returns one page of attendance records matching the filter,
// latest day first, each carrying the employee summary.
func (r *Repository) ListAttendance(ctx context.Context, filter models.AttendanceFilter) (
	[]models.Attendance, int, error,
) {
	where := attendanceWhere(filter)

	var total int
	if err := r.db.QueryRow(ctx, CountAttendanceSQL+where.String(), where.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance: %w", err)
	}

	limit, args := where.paginate(filter.Limit, filter.Offset())
	records, err := r.queryAttendance(ctx, SelectAttendanceSQL+where.String()+attendanceNewestFirst+limit, args...)
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// ListEmployeeAttendance returns the records of one employee between two days inclusive, oldest first.
func (r *Repository) ListEmployeeAttendance(ctx context.Context, employeeID uuid.UUID, from, to time.Time) (
	[]models.Attendance, error,
) {
	return r.queryAttendance(ctx, SelectEmployeeAttendanceSQL, employeeID, from, to)
}

// ListAttendanceBetween returns every record between two days inclusive, ordered by day and employee name.
func (r *Repository) ListAttendanceBetween(ctx context.Context, from, to time.Time) ([]models.Attendance, error) {
	return r.queryAttendance(ctx, SelectAttendanceBetweenSQL, from, to)
}

// GetAttendance returns the record with the given id.
func (r *Repository) GetAttendance(ctx context.Context, id uuid.UUID) (models.Attendance, error) {
	record, err := scanAttendance(r.db.QueryRow(ctx, SelectAttendanceByIDSQL, id))
	if err != nil {
		return models.Attendance{}, fmt.Errorf("failed to get attendance %s: %w", id, classify(err))
	}

	return record, nil
}

// UpsertAttendance creates the record for (EmployeeID, Date) or updates the existing one
// in a single statement. Nil optional fields keep their stored values. On return the
// record holds the stored row and the employee summary; the flag reports whether a new
// row was inserted. An unknown employee is reported as ErrReferenceMissing.
func (r *Repository) UpsertAttendance(ctx context.Context, record *models.Attendance) (bool, error) {
	var (
		stored   models.Attendance
		summary  models.EmployeeSummary
		inserted bool
	)

	err := r.db.QueryRow(ctx, UpsertAttendanceSQL,
		record.EmployeeID, record.Date, string(record.Status),
		record.CheckInTime, record.CheckOutTime, record.Location, record.Notes, record.MarkedBy,
	).Scan(append(attendanceTargets(&stored, &summary), &inserted)...)
	if err != nil {
		return false, fmt.Errorf("failed to upsert attendance: %w", classify(err))
	}

	summary.ID = stored.EmployeeID
	stored.Employee = &summary
	*record = stored

	return inserted, nil
}

// UpdateAttendance writes every mutable field of the record and refreshes UpdatedAt.
// Moving a record onto an occupied (employee, day) pair is reported as ErrDuplicate.
func (r *Repository) UpdateAttendance(ctx context.Context, record *models.Attendance) error {
	err := r.db.QueryRow(ctx, UpdateAttendanceSQL,
		record.ID, record.EmployeeID, record.Date, string(record.Status),
		record.CheckInTime, record.CheckOutTime, record.Location, record.Notes,
	).Scan(&record.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update attendance %s: %w", record.ID, classify(err))
	}

	return nil
}

// DeleteAttendance removes the record with the given id.
func (r *Repository) DeleteAttendance(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, DeleteAttendanceSQL, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance %s: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("failed to delete attendance %s: %w", id, ErrNotFound)
	}

	return nil
}

// CountAttendanceByStatus returns the number of records per status between two days inclusive.
func (r *Repository) CountAttendanceByStatus(ctx context.Context, from, to time.Time) (
	map[models.AttendanceStatus]int, error,
) {
	rows, err := r.db.Query(ctx, CountAttendanceByStatusSQL, from, to)
	if err != nil {
		return nil, fmt.Errorf("error querying attendance counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.AttendanceStatus]int)
	for rows.Next() {
		var (
			status string
			count  int
		)
		if err = rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("error scanning attendance count row: %w", err)
		}
		counts[models.AttendanceStatus(status)] = count
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance count rows: %w", err)
	}

	return counts, nil
}
