package api

import (
	"strings"

	"github.com/RajatSinghRajawat/maanvibackend/internal/models"
	"github.com/gofiber/fiber/v2"
)

const msgInvalidEmployeeID = "Invalid employee ID"

func (h *handler) listEmployees(c *fiber.Ctx) error {
	var (
		filter models.EmployeeFilter
		err    error
	)
	if filter.Paging, err = paging(c); err != nil {
		return err
	}
	if filter.Status, err = queryEnum[models.EmployeeStatus](c, "status"); err != nil {
		return err
	}
	filter.Search = strings.TrimSpace(c.Query("search"))

	page, err := h.services.Employees.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return listEnvelope(c, page)
}

func (h *handler) getEmployee(c *fiber.Ctx) error {
	id, err := pathID(c, "id", msgInvalidEmployeeID)
	if err != nil {
		return err
	}

	employee, err := h.services.Employees.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return dataEnvelope(c, fiber.StatusOK, employee)
}

func (h *handler) createEmployee(c *fiber.Ctx) error {
	var in models.EmployeeInput
	if err := parseBody(c, &in); err != nil {
		return err
	}

	employee, err := h.services.Employees.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return dataEnvelope(c, fiber.StatusCreated, employee)
}

func (h *handler) updateEmployee(c *fiber.Ctx) error {
	id, err := pathID(c, "id", msgInvalidEmployeeID)
	if err != nil {
		return err
	}
	var patch models.EmployeePatch
	if err = parseBody(c, &patch); err != nil {
		return err
	}

	employee, err := h.services.Employees.Update(c.UserContext(), id, patch)
	if err != nil {
		return err
	}
	return dataEnvelope(c, fiber.StatusOK, employee)
}

func (h *handler) deleteEmployee(c *fiber.Ctx) error {
	id, err := pathID(c, "id", msgInvalidEmployeeID)
	if err != nil {
		return err
	}

	if err = h.services.Employees.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return deletedEnvelope(c, "Employee")
}

func (h *handler) employeeStats(c *fiber.Ctx) error {
	stats, err := h.services.Employees.Stats(c.UserContext())
	if err != nil {
		return err
	}
	return dataEnvelope(c, fiber.StatusOK, stats)
}
