package repository

const adminColumns = `id, name, email, password_hash, role, is_active, last_login, created_at, updated_at`

const (
	InsertAdminSQL = `
INSERT INTO admins (name, email, password_hash, role)
VALUES ($1, $2, $3, $4)
RETURNING id, is_active, created_at, updated_at;
`
	SelectAdminByEmailSQL = `SELECT ` + adminColumns + ` FROM admins WHERE email = $1;`
	SelectAdminByIDSQL    = `SELECT ` + adminColumns + ` FROM admins WHERE id = $1;`
	UpdateAdminLoginSQL   = `UPDATE admins SET last_login = $2 WHERE id = $1;`
	UpdateAdminPassSQL    = `UPDATE admins SET password_hash = $2, updated_at = now() WHERE id = $1;`
)

const employeeColumns = `id, name, email, role, status, phone, department, joining_date, address, created_at, updated_at`

const (
	InsertEmployeeSQL = `
INSERT INTO employees (name, email, role, status, phone, department, joining_date, address)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, created_at, updated_at;
`
	SelectEmployeeByIDSQL = `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1;`
	SelectEmployeesSQL    = `SELECT ` + employeeColumns + ` FROM employees`
	CountEmployeesSQL     = `SELECT count(*) FROM employees`
	UpdateEmployeeSQL     = `
UPDATE employees
SET name = $2, email = $3, role = $4, status = $5, phone = $6,
    department = $7, joining_date = $8, address = $9, updated_at = now()
WHERE id = $1
RETURNING updated_at;
`
	DeleteEmployeeSQL         = `DELETE FROM employees WHERE id = $1;`
	CountEmployeesByStatusSQL = `SELECT status, count(*) FROM employees GROUP BY status;`
)

// Fragments of the dynamically filtered listings.
const (
	newestFirst                = ` ORDER BY created_at DESC, id DESC`
	employeeSearchCondition    = `(name ILIKE ? OR email ILIKE ? OR role ILIKE ?)`
	enquirySearchCondition     = `(name ILIKE ? OR email ILIKE ? OR topic ILIKE ? OR message ILIKE ?)`
	attendanceNewestFirst      = ` ORDER BY a.date DESC, a.created_at DESC`
	attendanceWithEmployeeFrom = ` FROM attendance a JOIN employees e ON e.id = a.employee_id`
)

const attendanceColumns = `a.id, a.employee_id, a.date, a.status, a.check_in_time, a.check_out_time,
       a.location, a.notes, a.marked_by, a.created_at, a.updated_at, e.name, e.email, e.role`

const (
	SelectAttendanceSQL     = `SELECT ` + attendanceColumns + attendanceWithEmployeeFrom
	CountAttendanceSQL      = `SELECT count(*)` + attendanceWithEmployeeFrom
	SelectAttendanceByIDSQL = SelectAttendanceSQL + ` WHERE a.id = $1;`

	SelectEmployeeAttendanceSQL = SelectAttendanceSQL + `
WHERE a.employee_id = $1 AND a.date BETWEEN $2 AND $3 ORDER BY a.date ASC;`

	SelectAttendanceBetweenSQL = SelectAttendanceSQL + `
WHERE a.date BETWEEN $1 AND $2 ORDER BY a.date ASC, e.name ASC;`

	// UpsertAttendanceSQL marks one (employee, day) pair. The status is always
	// replaced; optional fields only when a new value is supplied.
	// xmax is zero only for freshly inserted tuples.
	UpsertAttendanceSQL = `
WITH upserted AS (
    INSERT INTO attendance AS t (employee_id, date, status, check_in_time, check_out_time, location, notes, marked_by)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    ON CONFLICT ON CONSTRAINT attendance_employee_date_key DO UPDATE SET
        status         = EXCLUDED.status,
        check_in_time  = COALESCE(EXCLUDED.check_in_time, t.check_in_time),
        check_out_time = COALESCE(EXCLUDED.check_out_time, t.check_out_time),
        location       = COALESCE(EXCLUDED.location, t.location),
        notes          = COALESCE(EXCLUDED.notes, t.notes),
        marked_by      = COALESCE(EXCLUDED.marked_by, t.marked_by),
        updated_at     = now()
    RETURNING t.*, (t.xmax = 0) AS inserted
)
SELECT a.id, a.employee_id, a.date, a.status, a.check_in_time, a.check_out_time,
       a.location, a.notes, a.marked_by, a.created_at, a.updated_at, e.name, e.email, e.role, a.inserted
FROM upserted a JOIN employees e ON e.id = a.employee_id;
`

	UpdateAttendanceSQL = `
UPDATE attendance
SET employee_id = $2, date = $3, status = $4, check_in_time = $5, check_out_time = $6,
    location = $7, notes = $8, updated_at = now()
WHERE id = $1
RETURNING updated_at;
`
	DeleteAttendanceSQL        = `DELETE FROM attendance WHERE id = $1;`
	CountAttendanceByStatusSQL = `
SELECT status, count(*) FROM attendance
WHERE date BETWEEN $1 AND $2
GROUP BY status;
`
)

const enquiryColumns = `id, name, email, phone, topic, message, priority, channel, status,
       assigned_to, sla, response, resolved_at, created_at, updated_at`

const (
	InsertEnquirySQL = `
INSERT INTO enquiries (name, email, phone, topic, message, priority, channel, status, assigned_to, sla, response)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING id, resolved_at, created_at, updated_at;
`
	SelectEnquiryByIDSQL = `SELECT ` + enquiryColumns + ` FROM enquiries WHERE id = $1;`
	SelectEnquiriesSQL   = `SELECT ` + enquiryColumns + ` FROM enquiries`
	CountEnquiriesSQL    = `SELECT count(*) FROM enquiries`

	// UpdateEnquirySQL stamps resolved_at from the pre-update row, so only the
	// first move into a final status sets it.
	UpdateEnquirySQL = `
UPDATE enquiries
SET name = $2, email = $3, phone = $4, topic = $5, message = $6, priority = $7,
    channel = $8, status = $9, assigned_to = $10, sla = $11, response = $12,
    resolved_at = CASE WHEN $13::boolean AND resolved_at IS NULL THEN $14::timestamptz ELSE resolved_at END,
    updated_at = now()
WHERE id = $1
RETURNING resolved_at, updated_at;
`
	DeleteEnquirySQL = `DELETE FROM enquiries WHERE id = $1;`
)
