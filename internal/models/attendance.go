package models

import (
	"time"

	"github.com/google/uuid"
)

// AttendanceStatus is the outcome recorded for an employee on a given day.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "Present"
	AttendanceAbsent  AttendanceStatus = "Absent"
	AttendanceLate    AttendanceStatus = "Late"
	AttendanceWFH     AttendanceStatus = "WFH"
)

// AllAttendanceStatuses lists every attendance status in display order.
func AllAttendanceStatuses() []AttendanceStatus {
	return []AttendanceStatus{AttendancePresent, AttendanceAbsent, AttendanceLate, AttendanceWFH}
}

// IsValid reports whether s is one of the known statuses.
func (s AttendanceStatus) IsValid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLate, AttendanceWFH:
		return true
	}
	return false
}

// Attendance is the record of one employee on one calendar day.
// At most one record exists per (EmployeeID, Date).
type Attendance struct {
	ID           uuid.UUID        `json:"id"`
	EmployeeID   uuid.UUID        `json:"employeeId"`
	Employee     *EmployeeSummary `json:"employee,omitempty"`
	Date         time.Time        `json:"date"` // Calendar day, time part is always midnight
	Status       AttendanceStatus `json:"status"`
	CheckInTime  *string          `json:"checkInTime,omitempty"`
	CheckOutTime *string          `json:"checkOutTime,omitempty"`
	Location     *string          `json:"location,omitempty"`
	Notes        *string          `json:"notes,omitempty"`
	MarkedBy     *uuid.UUID       `json:"markedBy,omitempty"` // Admin who marked the record
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

// AttendanceInput is the payload for marking attendance.
type AttendanceInput struct {
	Employee     string           `json:"employee"     validate:"required,uuid"`
	Date         string           `json:"date"         validate:"required,isodate"`
	Status       AttendanceStatus `json:"status"       validate:"required,enum"`
	CheckInTime  *string          `json:"checkInTime"`
	CheckOutTime *string          `json:"checkOutTime"`
	Location     *string          `json:"location"`
	Notes        *string          `json:"notes"`
}

// AttendancePatch is the payload for editing an attendance record. Nil fields are left untouched.
type AttendancePatch struct {
	Employee     *string           `json:"employee"     validate:"omitempty,uuid"`
	Date         *string           `json:"date"         validate:"omitempty,isodate"`
	Status       *AttendanceStatus `json:"status"       validate:"omitempty,enum"`
	CheckInTime  *string           `json:"checkInTime"`
	CheckOutTime *string           `json:"checkOutTime"`
	Location     *string           `json:"location"`
	Notes        *string           `json:"notes"`
}

// AttendanceFilter narrows an attendance listing.
type AttendanceFilter struct {
	EmployeeID *uuid.UUID
	Status     *AttendanceStatus
	From       *time.Time // inclusive
	To         *time.Time // inclusive
	Paging
}

// PeriodQuery selects a reporting period either by month and year or by explicit bounds.
type PeriodQuery struct {
	StartDate *time.Time
	EndDate   *time.Time
	Month     int
	Year      int
}

// MonthQuery addresses a single calendar month.
type MonthQuery struct {
	Month int `json:"month" validate:"required,min=1,max=12"`
	Year  int `json:"year"  validate:"required,min=2000,max=2100"`
}

// MarkResult is the outcome of an attendance upsert.
type MarkResult struct {
	Attendance Attendance
	Created    bool
}

// MonthCounts holds per-status counts for one employee over a month.
// Total is the number of calendar days in the month.
type MonthCounts struct {
	Present int `json:"present"`
	Absent  int `json:"absent"`
	Late    int `json:"late"`
	WFH     int `json:"wfh"`
	Total   int `json:"total"`
}

// EmployeeMonth is the monthly attendance sheet of a single employee.
type EmployeeMonth struct {
	Records []Attendance `json:"data"`
	Stats   MonthCounts  `json:"stats"`
	Month   int          `json:"month"`
	Year    int          `json:"year"`
}

// AttendanceStats is the aggregate view over a reporting period.
type AttendanceStats struct {
	Present           int     `json:"present"`
	Absent            int     `json:"absent"`
	Late              int     `json:"late"`
	WFH               int     `json:"wfh"`
	Total             int     `json:"total"`
	TotalEmployees    int     `json:"totalEmployees"`
	PresentPercentage float64 `json:"presentPercentage"`
}
