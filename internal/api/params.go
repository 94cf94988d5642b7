package api

import (
	"strconv"
	"strings"
	"time"

	"github.com/RajatSinghRajawat/maanvibackend/internal/apperr"
	"github.com/RajatSinghRajawat/maanvibackend/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const msgInvalidBody = "Invalid request body"

// pathID parses a UUID path parameter. message is reported for malformed values.
func pathID(c *fiber.Ctx, param, message string) (uuid.UUID, error) {
	return parseID(c.Params(param), param, message)
}

func parseID(raw, field, message string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperr.Validation(message, apperr.FieldError{Field: field, Message: message})
	}
	return id, nil
}

// parseBody decodes the JSON body into payload.
func parseBody(c *fiber.Ctx, payload any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(payload); err != nil {
		return apperr.Validation(msgInvalidBody)
	}
	return nil
}

// queryInt parses an optional integer query parameter; absent values yield 0.
func queryInt(c *fiber.Ctx, key string) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.Validation("Invalid "+key, apperr.FieldError{Field: key, Message: key + " must be a number"})
	}
	return value, nil
}

func paging(c *fiber.Ctx) (models.Paging, error) {
	page, err := queryInt(c, "page")
	if err != nil {
		return models.Paging{}, err
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		return models.Paging{}, err
	}
	return models.Paging{Page: page, Limit: limit}, nil
}

// queryDate parses an optional ISO 8601 query parameter.
func (h *handler) queryDate(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil //nolint:nilnil // absent parameter
	}
	value, err := models.ParseDate(raw, h.loc)
	if err != nil {
		return nil, apperr.Validation("Invalid "+key, apperr.FieldError{Field: key, Message: "Valid " + key + " is required"})
	}
	return &value, nil
}

// queryEnum reads an optional closed-enum query parameter.
func queryEnum[T interface {
	~string
	IsValid() bool
}](c *fiber.Ctx, key string) (*T, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil //nolint:nilnil // absent parameter
	}
	value := T(raw)
	if !value.IsValid() {
		return nil, apperr.Validation("Invalid "+key, apperr.FieldError{Field: key, Message: "Invalid " + key})
	}
	return &value, nil
}

func (h *handler) period(c *fiber.Ctx) (models.PeriodQuery, error) {
	var (
		period models.PeriodQuery
		err    error
	)
	if period.StartDate, err = h.queryDate(c, "startDate"); err != nil {
		return period, err
	}
	if period.EndDate, err = h.queryDate(c, "endDate"); err != nil {
		return period, err
	}
	if period.Month, err = queryInt(c, "month"); err != nil {
		return period, err
	}
	if period.Year, err = queryInt(c, "year"); err != nil {
		return period, err
	}
	return period, nil
}

func monthQuery(c *fiber.Ctx) (models.MonthQuery, error) {
	month, err := queryInt(c, "month")
	if err != nil {
		return models.MonthQuery{}, err
	}
	year, err := queryInt(c, "year")
	if err != nil {
		return models.MonthQuery{}, err
	}
	return models.MonthQuery{Month: month, Year: year}, nil
}

// listEnvelope renders one page of a listing.
func listEnvelope[T any](c *fiber.Ctx, page models.Page[T]) error {
	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(page.Items),
		"total":   page.Total,
		"page":    page.Page,
		"pages":   page.Pages,
		"data":    page.Items,
	})
}

func dataEnvelope(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(fiber.Map{"success": true, "data": data})
}

func deletedEnvelope(c *fiber.Ctx, entity string) error {
	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{}, "message": entity + " deleted successfully"})
}
