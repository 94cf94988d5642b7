package api

import (
	"fmt"

	"github.com/RajatSinghRajawat/maanvibackend/internal/models"
	"github.com/gofiber/fiber/v2"
)

const (
	msgInvalidAttendanceID = "Invalid attendance ID"
	xlsxContentType        = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

func (h *handler) listAttendance(c *fiber.Ctx) error {
	var (
		filter models.AttendanceFilter
		err    error
	)
	if filter.Paging, err = paging(c); err != nil {
		return err
	}
	if filter.Status, err = queryEnum[models.AttendanceStatus](c, "status"); err != nil {
		return err
	}
	if raw := c.Query("employeeId"); raw != "" {
		employeeID, parseErr := parseID(raw, "employeeId", msgInvalidEmployeeID)
		if parseErr != nil {
			return parseErr
		}
		filter.EmployeeID = &employeeID
	}
	period, err := h.period(c)
	if err != nil {
		return err
	}

	page, err := h.services.Attendance.List(c.UserContext(), filter, period)
	if err != nil {
		return err
	}
	return listEnvelope(c, page)
}

func (h *handler) employeeMonth(c *fiber.Ctx) error {
	employeeID, err := pathID(c, "employeeId", msgInvalidEmployeeID)
	if err != nil {
		return err
	}
	q, err := monthQuery(c)
	if err != nil {
		return err
	}

	sheet, err := h.services.Attendance.EmployeeMonth(c.UserContext(), employeeID, q)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    sheet.Records,
		"stats":   sheet.Stats,
		"month":   sheet.Month,
		"year":    sheet.Year,
	})
}

func (h *handler) getAttendance(c *fiber.Ctx) error {
	id, err := pathID(c, "id", msgInvalidAttendanceID)
	if err != nil {
		return err
	}

	record, err := h.services.Attendance.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return dataEnvelope(c, fiber.StatusOK, record)
}

// markAttendance upserts the record of an employee for a day. Both outcomes answer 201.
func (h *handler) markAttendance(c *fiber.Ctx) error {
	var in models.AttendanceInput
	if err := parseBody(c, &in); err != nil {
		return err
	}

	result, err := h.services.Attendance.Mark(c.UserContext(), in, currentAdmin(c).ID)
	if err != nil {
		return err
	}

	message := "Attendance updated successfully"
	if result.Created {
		message = "Attendance created successfully"
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    result.Attendance,
		"message": message,
	})
}

func (h *handler) updateAttendance(c *fiber.Ctx) error {
	id, err := pathID(c, "id", msgInvalidAttendanceID)
	if err != nil {
		return err
	}
	var patch models.AttendancePatch
	if err = parseBody(c, &patch); err != nil {
		return err
	}

	record, err := h.services.Attendance.Update(c.UserContext(), id, patch)
	if err != nil {
		return err
	}
	return dataEnvelope(c, fiber.StatusOK, record)
}

func (h *handler) deleteAttendance(c *fiber.Ctx) error {
	id, err := pathID(c, "id", msgInvalidAttendanceID)
	if err != nil {
		return err
	}

	if err = h.services.Attendance.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return deletedEnvelope(c, "Attendance")
}

func (h *handler) attendanceStats(c *fiber.Ctx) error {
	period, err := h.period(c)
	if err != nil {
		return err
	}

	stats, err := h.services.Attendance.Stats(c.UserContext(), period)
	if err != nil {
		return err
	}
	return dataEnvelope(c, fiber.StatusOK, stats)
}

// exportAttendance streams the monthly workbook as an attachment.
func (h *handler) exportAttendance(c *fiber.Ctx) error {
	q, err := monthQuery(c)
	if err != nil {
		return err
	}

	content, err := h.services.Attendance.ExportMonth(c.UserContext(), q)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Attachment(fmt.Sprintf("attendance_%d_%02d.xlsx", q.Year, q.Month))
	return c.Send(content)
}
